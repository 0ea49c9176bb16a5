package algo

import (
	"context"

	"github.com/san-kum/algoviz/internal/highlight"
)

type Outcome int

const (
	Sorted Outcome = iota
	Found
	NotFound
)

func (o Outcome) String() string {
	switch o {
	case Sorted:
		return "sorted"
	case Found:
		return "found"
	case NotFound:
		return "not found"
	default:
		return "unknown"
	}
}

// Result is the terminal report of a completed run. Index is only
// meaningful when Outcome is Found.
type Result struct {
	Algorithm string
	Outcome   Outcome
	Index     int
	Stats     Stats
}

type Runner interface {
	Name() string
	Run(ctx context.Context, e *Env) (Result, error)
}

// sorter adapts a sorting body to Runner. Sequences shorter than two
// elements finish immediately with every position marked sorted.
type sorter struct {
	name string
	body func(ctx context.Context, e *Env) error
}

func (s sorter) Name() string { return s.name }

func (s sorter) Run(ctx context.Context, e *Env) (Result, error) {
	if e.Len() >= 2 {
		if err := s.body(ctx, e); err != nil {
			return Result{}, err
		}
	}
	e.MarkAllSorted()
	e.Show(highlight.Done)
	e.Narrate("Array is sorted!")
	return Result{Outcome: Sorted, Index: -1}, nil
}

// searcher adapts a search body returning the found index, or -1.
type searcher struct {
	name        string
	target      int
	needsSorted bool
	body        func(ctx context.Context, e *Env, target int) (int, error)
}

func (s searcher) Name() string { return s.name }

func (s searcher) Run(ctx context.Context, e *Env) (Result, error) {
	if s.needsSorted && !e.Store.IsSorted() {
		return Result{Index: -1}, ErrUnsorted
	}
	idx := -1
	if e.Len() > 0 {
		var err error
		if idx, err = s.body(ctx, e, s.target); err != nil {
			return Result{Index: -1}, err
		}
	}
	if idx < 0 {
		e.Show(highlight.Missing)
		e.Narrate("Element Not Found")
		return Result{Outcome: NotFound, Index: -1}, nil
	}
	e.ColorRange(idx, idx, ColorFound)
	e.Show(highlight.Found)
	e.Narrate("Element Found At Index %d", idx)
	return Result{Outcome: Found, Index: idx}, nil
}

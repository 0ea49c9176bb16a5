package algo

import (
	"context"

	"github.com/san-kum/algoviz/internal/sequence"
)

type Color int

const (
	ColorNone Color = iota
	ColorDivide
	ColorMerge
	ColorFixed
	ColorMiss
	ColorFound
)

func (c Color) String() string {
	switch c {
	case ColorDivide:
		return "divide"
	case ColorMerge:
		return "merge"
	case ColorFixed:
		return "fixed"
	case ColorMiss:
		return "miss"
	case ColorFound:
		return "found"
	default:
		return "none"
	}
}

type Kind int

const (
	KindCompare Kind = iota
	KindSwap
	KindOverwrite
	KindMarkSorted
	KindRangeColor
)

func (k Kind) String() string {
	switch k {
	case KindCompare:
		return "compare"
	case KindSwap:
		return "swap"
	case KindOverwrite:
		return "overwrite"
	case KindMarkSorted:
		return "mark_sorted"
	case KindRangeColor:
		return "range_color"
	default:
		return "unknown"
	}
}

// Event describes one observable micro-action. J is -1 for single index
// events such as a search probe. Step is the number of completed steps
// when the event was emitted.
type Event struct {
	Kind  Kind
	I     int
	J     int
	Value int
	Color Color
	Step  uint64
}

// Renderer receives visual feedback for the sequence. Implementations must
// be safe to call from the runner goroutine while a UI reads them.
type Renderer interface {
	Render(items []sequence.Item)
	SetActive(indices ...int)
	ClearActive()
	MarkSorted(i int)
	ColorRange(lo, hi int, c Color)
	UpdateValue(i, value int)
}

// ItemRenderer is implemented by renderers that also track which input
// element sits at each index. Moves reach it through UpdateItem instead of
// UpdateValue.
type ItemRenderer interface {
	UpdateItem(i int, it sequence.Item)
}

// Cues is fire-and-forget; implementations swallow their own failures.
type Cues interface {
	PlayComparisonCue()
	PlaySwapCue()
}

// CodeView is told which program points of the listing are executing.
type CodeView interface {
	Show(labels ...string)
}

type Narrator interface {
	Narrate(msg string)
}

type Observer interface {
	OnEvent(ev Event)
}

type Pacer interface {
	Wait(ctx context.Context) error
}

type NopRenderer struct{}

func (NopRenderer) Render([]sequence.Item)     {}
func (NopRenderer) SetActive(...int)           {}
func (NopRenderer) ClearActive()               {}
func (NopRenderer) MarkSorted(int)             {}
func (NopRenderer) ColorRange(int, int, Color) {}
func (NopRenderer) UpdateValue(int, int)       {}

type NopCues struct{}

func (NopCues) PlayComparisonCue() {}
func (NopCues) PlaySwapCue()       {}

type NopCodeView struct{}

func (NopCodeView) Show(...string) {}

type NopNarrator struct{}

func (NopNarrator) Narrate(string) {}

// NoDelay never suspends; it still honors cancellation.
type NoDelay struct{}

func (NoDelay) Wait(ctx context.Context) error { return ctx.Err() }

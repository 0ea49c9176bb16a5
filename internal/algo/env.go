package algo

import (
	"context"
	"fmt"

	"github.com/san-kum/algoviz/internal/sequence"
)

type Stats struct {
	Steps       uint64
	Comparisons uint64
	Swaps       uint64
	Writes      uint64
}

// Env is the per-run wiring every runner body drives. Micro-step methods
// apply their logical and visual mutation immediately; Step is the only
// suspension point, so the display matches the store whenever a runner is
// suspended.
type Env struct {
	Store    *sequence.Store
	Renderer Renderer
	Cues     Cues
	Code     CodeView
	Narrator Narrator
	Pacer    Pacer

	observers []Observer
	stats     Stats
}

func NewEnv(store *sequence.Store, pacer Pacer) *Env {
	if pacer == nil {
		pacer = NoDelay{}
	}
	return &Env{
		Store:    store,
		Renderer: NopRenderer{},
		Cues:     NopCues{},
		Code:     NopCodeView{},
		Narrator: NopNarrator{},
		Pacer:    pacer,
	}
}

func (e *Env) AddObserver(o Observer) { e.observers = append(e.observers, o) }

func (e *Env) Stats() Stats { return e.stats }

func (e *Env) Len() int                 { return e.Store.Len() }
func (e *Env) At(i int) int             { return e.Store.At(i) }
func (e *Env) Item(i int) sequence.Item { return e.Store.Item(i) }
func (e *Env) Show(labels ...string)    { e.Code.Show(labels...) }

func (e *Env) Narrate(format string, args ...any) {
	e.Narrator.Narrate(fmt.Sprintf(format, args...))
}

func (e *Env) emit(ev Event) {
	ev.Step = e.stats.Steps
	for _, o := range e.observers {
		o.OnEvent(ev)
	}
}

// Compare highlights i and j and returns their values.
func (e *Env) Compare(i, j int) (int, int) {
	e.stats.Comparisons++
	e.Renderer.SetActive(i, j)
	e.Cues.PlayComparisonCue()
	e.emit(Event{Kind: KindCompare, I: i, J: j})
	return e.Store.At(i), e.Store.At(j)
}

// Probe is a single index comparison against an external value.
func (e *Env) Probe(i int) int {
	e.stats.Comparisons++
	v := e.Store.At(i)
	e.Renderer.SetActive(i)
	e.Cues.PlayComparisonCue()
	e.emit(Event{Kind: KindCompare, I: i, J: -1, Value: v})
	return v
}

func (e *Env) Swap(i, j int) {
	e.stats.Swaps++
	e.Store.Swap(i, j)
	e.update(i)
	e.update(j)
	e.Renderer.SetActive(i, j)
	e.Cues.PlaySwapCue()
	e.emit(Event{Kind: KindSwap, I: i, J: j})
}

func (e *Env) Overwrite(i int, it sequence.Item) {
	e.stats.Writes++
	e.Store.Set(i, it)
	e.update(i)
	e.Renderer.SetActive(i)
	e.Cues.PlaySwapCue()
	e.emit(Event{Kind: KindOverwrite, I: i, J: -1, Value: it.Value})
}

func (e *Env) update(i int) {
	it := e.Store.Item(i)
	if r, ok := e.Renderer.(ItemRenderer); ok {
		r.UpdateItem(i, it)
		return
	}
	e.Renderer.UpdateValue(i, it.Value)
}

func (e *Env) MarkSorted(i int) {
	e.Renderer.MarkSorted(i)
	e.emit(Event{Kind: KindMarkSorted, I: i, J: -1})
}

func (e *Env) MarkAllSorted() {
	for i := 0; i < e.Store.Len(); i++ {
		e.MarkSorted(i)
	}
}

func (e *Env) ColorRange(lo, hi int, c Color) {
	e.Renderer.ColorRange(lo, hi, c)
	e.emit(Event{Kind: KindRangeColor, I: lo, J: hi, Color: c})
}

// Step suspends through the pacer. A canceled wait is reported as
// ErrCanceled and is not counted.
func (e *Env) Step(ctx context.Context) error {
	if err := e.Pacer.Wait(ctx); err != nil {
		return fmt.Errorf("%w at step %d: %w", ErrCanceled, e.stats.Steps, err)
	}
	e.stats.Steps++
	return nil
}

// Execute runs r against e. The renderer is redrawn from the store before
// the runner body starts; afterwards only incremental updates reach it.
// Failures come back as *RunError.
func Execute(ctx context.Context, r Runner, e *Env) (Result, error) {
	e.stats = Stats{}
	e.Renderer.Render(e.Store.Items())
	e.Renderer.ClearActive()

	res, err := r.Run(ctx, e)
	res.Algorithm = r.Name()
	res.Stats = e.stats
	if err != nil {
		return res, &RunError{Algorithm: r.Name(), Stats: e.stats, Wrapped: err}
	}

	e.Renderer.ClearActive()
	return res, nil
}

// Package session owns one visualization session: the sequence, the pacer
// and at most one running algorithm.
package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/pacer"
	"github.com/san-kum/algoviz/internal/sequence"
)

type State int

const (
	Idle State = iota
	Running
	Paused
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

const DefaultSpeedMs = 50

var (
	// ErrBusy rejects Start while a run is active. Callers treat it as a
	// no-op.
	ErrBusy = errors.New("session: a run is already active")

	ErrInvalidSpeed = errors.New("session: speed must be a positive number of milliseconds")
	ErrClosed       = errors.New("session: controller closed")
)

// Listener is told about every state transition. It is called outside the
// controller lock, so it may call back into the controller.
type Listener interface {
	StateChanged(from, to State)
}

type ListenerFunc func(from, to State)

func (f ListenerFunc) StateChanged(from, to State) { f(from, to) }

type Options struct {
	Registry  *algo.Registry
	Renderer  algo.Renderer
	Cues      algo.Cues
	Code      algo.CodeView
	Narrator  algo.Narrator
	Observers []algo.Observer
	Listeners []Listener
	SpeedMs   int
	Logger    *slog.Logger
}

type transition struct{ from, to State }

type Controller struct {
	// ops serializes Start, NewSequence, Reset and Close so a store is only
	// replaced once the previous run goroutine has exited.
	ops sync.Mutex

	mu        sync.Mutex
	state     State
	speedMs   int
	gen       uint64
	cancel    context.CancelFunc
	done      chan struct{}
	initial   []int
	algorithm string
	result    *algo.Result
	err       error
	closed    bool

	listeners []Listener
	store     *sequence.Store
	pacer     *pacer.Pacer
	opts      Options
	log       *slog.Logger
}

func New(values []int, opts Options) *Controller {
	if opts.Registry == nil {
		opts.Registry = algo.NewRegistry()
	}
	if opts.Renderer == nil {
		opts.Renderer = algo.NopRenderer{}
	}
	if opts.Cues == nil {
		opts.Cues = algo.NopCues{}
	}
	if opts.Code == nil {
		opts.Code = algo.NopCodeView{}
	}
	if opts.Narrator == nil {
		opts.Narrator = algo.NopNarrator{}
	}
	if opts.SpeedMs <= 0 {
		opts.SpeedMs = DefaultSpeedMs
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	c := &Controller{
		speedMs:   opts.SpeedMs,
		listeners: append([]Listener(nil), opts.Listeners...),
		store:     sequence.New(values),
		pacer:     pacer.New(msToDuration(opts.SpeedMs)),
		opts:      opts,
		log:       log,
	}
	c.opts.Renderer.Render(c.store.Items())
	return c
}

func msToDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// Start launches algorithm id on the current sequence. It returns ErrBusy
// while a run is active and algo.ErrUnsorted when a search that needs
// sorted input is started on an unsorted sequence.
func (c *Controller) Start(id string, p algo.Params) error {
	info, err := c.opts.Registry.Info(id)
	if err != nil {
		return err
	}
	runner, err := c.opts.Registry.Get(id, p)
	if err != nil {
		return err
	}

	c.ops.Lock()
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		c.ops.Unlock()
		return ErrClosed
	}
	if c.state == Running || c.state == Paused {
		c.mu.Unlock()
		c.ops.Unlock()
		return ErrBusy
	}
	if info.RequiresSorted && !c.store.IsSorted() {
		c.mu.Unlock()
		c.ops.Unlock()
		return algo.ErrUnsorted
	}

	var changes []transition
	if c.state == Done {
		changes = append(changes, c.setLocked(Idle))
	}

	c.gen++
	gen := c.gen
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	c.cancel = cancel
	c.done = done
	c.initial = c.store.Values()
	c.algorithm = id
	c.result, c.err = nil, nil
	c.pacer.Resume()

	env := algo.NewEnv(c.store, c.pacer)
	env.Renderer = c.opts.Renderer
	env.Cues = c.opts.Cues
	env.Code = c.opts.Code
	env.Narrator = c.opts.Narrator
	for _, o := range c.opts.Observers {
		env.AddObserver(o)
	}

	changes = append(changes, c.setLocked(Running))
	c.mu.Unlock()

	c.log.Info("run started", "algorithm", id, "size", c.store.Len(), "speed_ms", c.Speed())
	go c.run(ctx, gen, runner, env, done)

	c.ops.Unlock()
	c.notify(changes)
	return nil
}

func (c *Controller) run(ctx context.Context, gen uint64, r algo.Runner, env *algo.Env, done chan struct{}) {
	res, err := algo.Execute(ctx, r, env)

	c.mu.Lock()
	// a pause after the last step holds the finished run until resume
	for err == nil && c.gen == gen && c.state == Paused {
		c.mu.Unlock()
		c.pacer.AwaitResume(ctx)
		c.mu.Lock()
	}
	if c.gen != gen {
		c.mu.Unlock()
		close(done)
		c.log.Debug("run abandoned", "algorithm", r.Name(), "steps", res.Stats.Steps)
		return
	}
	c.cancel()
	c.cancel = nil

	var changes []transition
	if err != nil {
		c.err = err
		changes = append(changes, c.setLocked(Idle))
	} else {
		c.result = &res
		changes = append(changes, c.setLocked(Done))
	}
	c.mu.Unlock()
	close(done)

	if err != nil {
		c.log.Error("run failed", "algorithm", r.Name(), "error", err)
	} else {
		c.log.Info("run finished",
			"algorithm", res.Algorithm,
			"outcome", res.Outcome.String(),
			"index", res.Index,
			"steps", res.Stats.Steps,
			"comparisons", res.Stats.Comparisons,
			"swaps", res.Stats.Swaps,
			"writes", res.Stats.Writes)
	}
	c.notify(changes)
}

// PauseResume toggles between Running and Paused and does nothing in any
// other state.
func (c *Controller) PauseResume() {
	c.mu.Lock()
	var changes []transition
	switch c.state {
	case Running:
		c.pacer.Pause()
		changes = append(changes, c.setLocked(Paused))
	case Paused:
		c.pacer.Resume()
		changes = append(changes, c.setLocked(Running))
	}
	c.mu.Unlock()
	c.notify(changes)
}

// SetSpeed changes the per-step delay. It applies to the next step of an
// active run.
func (c *Controller) SetSpeed(ms int) error {
	if ms <= 0 {
		return ErrInvalidSpeed
	}
	c.mu.Lock()
	c.speedMs = ms
	c.mu.Unlock()
	c.pacer.SetDelay(msToDuration(ms))
	c.log.Debug("speed changed", "speed_ms", ms)
	return nil
}

func (c *Controller) Speed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speedMs
}

// NewSequence aborts any active run and replaces the sequence. The session
// is Idle afterwards.
func (c *Controller) NewSequence(values []int) error {
	if len(values) == 0 {
		return sequence.ErrInvalidInput
	}
	c.ops.Lock()
	changes := c.abort()
	c.store.Replace(values)
	c.mu.Lock()
	c.initial = nil
	c.mu.Unlock()
	c.redraw()
	c.ops.Unlock()

	c.log.Info("new sequence", "size", len(values))
	c.notify(changes)
	return nil
}

// Reset aborts any active run and restores the values captured when the
// last run started.
func (c *Controller) Reset() {
	c.ops.Lock()
	changes := c.abort()
	c.mu.Lock()
	initial := c.initial
	c.mu.Unlock()
	if initial != nil {
		c.store.Replace(initial)
	}
	c.redraw()
	c.ops.Unlock()

	c.log.Info("session reset", "size", c.store.Len())
	c.notify(changes)
}

// Close aborts any active run. Start fails with ErrClosed afterwards.
func (c *Controller) Close() {
	c.ops.Lock()
	changes := c.abort()
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.ops.Unlock()

	c.notify(changes)
}

// abort cancels the active run, waits for its goroutine to exit and moves
// the session to Idle. The caller holds ops and notifies the returned
// transitions once it has released it.
func (c *Controller) abort() []transition {
	c.mu.Lock()
	c.gen++
	cancel, done := c.cancel, c.done
	c.cancel = nil
	from := c.state
	active := from == Running || from == Paused
	if active {
		c.result = nil
		c.err = algo.ErrCanceled
	}
	var changes []transition
	if from != Idle {
		changes = append(changes, c.setLocked(Idle))
	}
	algorithm := c.algorithm
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
	if active {
		c.log.Info("run canceled", "algorithm", algorithm)
	}
	return changes
}

func (c *Controller) redraw() {
	c.opts.Renderer.Render(c.store.Items())
	c.opts.Code.Show()
	c.opts.Narrator.Narrate("")
}

// Wait blocks until the current run goroutine has exited and returns its
// outcome. A canceled run reports algo.ErrCanceled.
func (c *Controller) Wait(ctx context.Context) (*algo.Result, error) {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()

	if done != nil {
		select {
		case <-done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result, c.err
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Algorithm() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.algorithm
}

func (c *Controller) Result() *algo.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

func (c *Controller) Values() []int          { return c.store.Values() }
func (c *Controller) Items() []sequence.Item { return c.store.Items() }
func (c *Controller) IsSorted() bool         { return c.store.IsSorted() }

func (c *Controller) setLocked(to State) transition {
	t := transition{from: c.state, to: to}
	c.state = to
	return t
}

func (c *Controller) notify(changes []transition) {
	if len(changes) == 0 {
		return
	}
	for _, t := range changes {
		c.log.Debug("state changed", "from", t.from.String(), "to", t.to.String())
		for _, l := range c.listeners {
			l.StateChanged(t.from, t.to)
		}
	}
}

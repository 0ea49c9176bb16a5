package pacer

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Pacer is the single suspension point every runner step goes through.
// Pausing is event driven: resumed is closed while the pacer is running and
// replaced by a fresh channel on Pause.
type Pacer struct {
	mu      sync.Mutex
	delay   time.Duration
	paused  bool
	resumed chan struct{}
	steps   atomic.Uint64
}

func New(delay time.Duration) *Pacer {
	resumed := make(chan struct{})
	close(resumed)
	if delay < 0 {
		delay = 0
	}
	return &Pacer{delay: delay, resumed: resumed}
}

func (p *Pacer) SetDelay(d time.Duration) {
	if d < 0 {
		d = 0
	}
	p.mu.Lock()
	p.delay = d
	p.mu.Unlock()
}

func (p *Pacer) Delay() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.delay
}

func (p *Pacer) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.paused {
		return
	}
	p.paused = true
	p.resumed = make(chan struct{})
}

func (p *Pacer) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.paused {
		return
	}
	p.paused = false
	close(p.resumed)
}

func (p *Pacer) IsPaused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// Steps reports how many Wait calls have completed.
func (p *Pacer) Steps() uint64 { return p.steps.Load() }

// Wait blocks until the delay has elapsed and the pacer is not paused. A
// pause that arrives during the delay holds the caller until Resume. Only
// ctx cancellation ends a wait early.
func (p *Pacer) Wait(ctx context.Context) error {
	if err := p.AwaitResume(ctx); err != nil {
		return err
	}

	if d := p.Delay(); d > 0 {
		t := time.NewTimer(d)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	} else if err := ctx.Err(); err != nil {
		return err
	}

	if err := p.AwaitResume(ctx); err != nil {
		return err
	}
	p.steps.Add(1)
	return nil
}

// AwaitResume blocks while the pacer is paused.
func (p *Pacer) AwaitResume(ctx context.Context) error {
	p.mu.Lock()
	ch := p.resumed
	p.mu.Unlock()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

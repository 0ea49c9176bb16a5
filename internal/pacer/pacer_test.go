package pacer

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWait_NoDelay(t *testing.T) {
	p := New(0)
	for i := 0; i < 3; i++ {
		if err := p.Wait(context.Background()); err != nil {
			t.Fatalf("wait failed: %v", err)
		}
	}
	if p.Steps() != 3 {
		t.Errorf("expected 3 steps, got %d", p.Steps())
	}
}

func TestWait_HonorsDelay(t *testing.T) {
	p := New(20 * time.Millisecond)
	start := time.Now()
	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("wait failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("wait returned after %v, expected at least 20ms", elapsed)
	}
}

func TestWait_BlocksWhilePaused(t *testing.T) {
	p := New(0)
	p.Pause()

	done := make(chan error, 1)
	go func() { done <- p.Wait(context.Background()) }()

	select {
	case <-done:
		t.Fatal("wait returned while paused")
	case <-time.After(30 * time.Millisecond):
	}

	p.Resume()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("wait failed: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("wait did not return after resume")
	}
	if p.Steps() != 1 {
		t.Errorf("expected exactly 1 step, got %d", p.Steps())
	}
}

func TestWait_PauseDuringDelay(t *testing.T) {
	p := New(20 * time.Millisecond)

	done := make(chan error, 1)
	go func() { done <- p.Wait(context.Background()) }()
	time.Sleep(5 * time.Millisecond)
	p.Pause()

	select {
	case <-done:
		t.Fatal("wait returned although a pause arrived during the delay")
	case <-time.After(60 * time.Millisecond):
	}

	p.Resume()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("wait failed: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("wait did not return after resume")
	}
}

func TestWait_CanceledWhilePaused(t *testing.T) {
	p := New(0)
	p.Pause()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Wait(ctx) }()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("cancel did not release a paused wait")
	}
	if p.Steps() != 0 {
		t.Errorf("canceled wait counted as a step")
	}
}

func TestPauseResumeIdempotent(t *testing.T) {
	p := New(0)
	p.Resume()
	if p.IsPaused() {
		t.Fatal("resume on a running pacer paused it")
	}
	p.Pause()
	p.Pause()
	if !p.IsPaused() {
		t.Fatal("expected paused")
	}
	p.Resume()
	p.Resume()
	if p.IsPaused() {
		t.Fatal("expected running")
	}
}

func TestSetDelay(t *testing.T) {
	p := New(time.Second)
	p.SetDelay(-5)
	if p.Delay() != 0 {
		t.Errorf("negative delay should clamp to 0, got %v", p.Delay())
	}
	p.SetDelay(15 * time.Millisecond)
	if p.Delay() != 15*time.Millisecond {
		t.Errorf("got %v", p.Delay())
	}
}

func TestAwaitResume(t *testing.T) {
	p := New(time.Hour)
	if err := p.AwaitResume(context.Background()); err != nil {
		t.Fatalf("running pacer should not block: %v", err)
	}

	p.Pause()
	done := make(chan error, 1)
	go func() { done <- p.AwaitResume(context.Background()) }()

	select {
	case <-done:
		t.Fatal("returned while paused")
	case <-time.After(30 * time.Millisecond):
	}

	p.Resume()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("not released by Resume")
	}
}

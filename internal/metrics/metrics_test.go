package metrics

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/sequence"
)

func TestCounter(t *testing.T) {
	c := NewCounter("swaps", algo.KindSwap)
	c.Observe(algo.Event{Kind: algo.KindSwap})
	c.Observe(algo.Event{Kind: algo.KindCompare})
	c.Observe(algo.Event{Kind: algo.KindSwap})

	if c.Value() != 2 {
		t.Errorf("expected 2 swaps, got %f", c.Value())
	}
	c.Reset()
	if c.Value() != 0 {
		t.Errorf("expected 0 after reset, got %f", c.Value())
	}
}

func TestDistance(t *testing.T) {
	d := NewDistance()
	d.Observe(algo.Event{Kind: algo.KindCompare, I: 0, J: 1})
	d.Observe(algo.Event{Kind: algo.KindSwap, I: 5, J: 2})
	d.Observe(algo.Event{Kind: algo.KindCompare, I: 4, J: -1})
	d.Observe(algo.Event{Kind: algo.KindOverwrite, I: 9, J: -1})

	if math.Abs(d.Value()-2.0) > 1e-9 {
		t.Errorf("expected mean distance 2, got %f", d.Value())
	}
}

func TestSet_MatchesRunStats(t *testing.T) {
	set := Standard()
	hist := NewHistory(0)

	env := algo.NewEnv(sequence.New([]int{6, 2, 9, 1, 5, 5, 3}), nil)
	env.AddObserver(set)
	env.AddObserver(hist)

	r, err := algo.NewRegistry().Get("quick", algo.Params{})
	if err != nil {
		t.Fatal(err)
	}
	res, err := algo.Execute(context.Background(), r, env)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	v := set.Values()
	if v["comparisons"] != float64(res.Stats.Comparisons) {
		t.Errorf("comparisons %f, stats %d", v["comparisons"], res.Stats.Comparisons)
	}
	if v["swaps"] != float64(res.Stats.Swaps) {
		t.Errorf("swaps %f, stats %d", v["swaps"], res.Stats.Swaps)
	}
	if len(set.Names()) != 4 {
		t.Errorf("expected 4 metrics, got %v", set.Names())
	}

	comps := hist.Comparisons()
	if len(comps) == 0 {
		t.Fatal("history recorded nothing")
	}
	for i := 1; i < len(comps); i++ {
		if comps[i] < comps[i-1] {
			t.Fatalf("cumulative series decreased at %d: %v", i, comps)
		}
	}
}

func TestHistory_Limit(t *testing.T) {
	h := NewHistory(3)
	for step := uint64(0); step < 10; step++ {
		h.OnEvent(algo.Event{Kind: algo.KindCompare, Step: step})
	}
	if h.Len() != 3 {
		t.Errorf("expected 3 samples, got %d", h.Len())
	}
	got := h.Comparisons()
	if got[2] != 9 {
		t.Errorf("expected newest sample 9, got %v", got)
	}

	h.Reset()
	if h.Len() != 0 || len(h.Moves()) != 0 {
		t.Error("reset left samples behind")
	}
}

package metrics

import (
	"sync"

	"github.com/san-kum/algoviz/internal/algo"
)

// History samples cumulative comparison and swap counts once per completed
// step, for charting.
type History struct {
	mu          sync.Mutex
	limit       int
	lastStep    uint64
	comparisons int
	swaps       int
	compSeries  []float64
	swapSeries  []float64
}

// NewHistory keeps at most limit samples; older ones are dropped. A limit
// of zero keeps everything.
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

func (h *History) OnEvent(ev algo.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for h.lastStep < ev.Step {
		h.lastStep++
		h.sample()
	}

	switch ev.Kind {
	case algo.KindCompare:
		h.comparisons++
	case algo.KindSwap, algo.KindOverwrite:
		h.swaps++
	}
}

func (h *History) sample() {
	h.compSeries = append(h.compSeries, float64(h.comparisons))
	h.swapSeries = append(h.swapSeries, float64(h.swaps))
	if h.limit > 0 && len(h.compSeries) > h.limit {
		h.compSeries = h.compSeries[1:]
		h.swapSeries = h.swapSeries[1:]
	}
}

// Comparisons returns a copy of the cumulative comparison series.
func (h *History) Comparisons() []float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]float64(nil), h.compSeries...)
}

// Moves returns a copy of the cumulative swap and overwrite series.
func (h *History) Moves() []float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]float64(nil), h.swapSeries...)
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.compSeries)
}

func (h *History) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastStep = 0
	h.comparisons = 0
	h.swaps = 0
	h.compSeries = nil
	h.swapSeries = nil
}

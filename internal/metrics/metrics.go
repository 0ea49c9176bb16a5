// Package metrics aggregates the step events of a run.
package metrics

import (
	"sort"
	"sync"

	"github.com/san-kum/algoviz/internal/algo"
)

type Metric interface {
	Name() string
	Observe(ev algo.Event)
	Value() float64
	Reset()
}

// Counter counts events of one kind.
type Counter struct {
	name  string
	kind  algo.Kind
	count int
}

func NewCounter(name string, kind algo.Kind) *Counter {
	return &Counter{name: name, kind: kind}
}

func (c *Counter) Name() string { return c.name }

func (c *Counter) Observe(ev algo.Event) {
	if ev.Kind == c.kind {
		c.count++
	}
}

func (c *Counter) Value() float64 { return float64(c.count) }

func (c *Counter) Reset() { c.count = 0 }

// Distance is the mean index distance between the two positions of
// compare and swap events. Probes are skipped.
type Distance struct {
	name    string
	sum     float64
	samples int
}

func NewDistance() *Distance {
	return &Distance{name: "distance"}
}

func (d *Distance) Name() string { return d.name }

func (d *Distance) Observe(ev algo.Event) {
	if ev.Kind != algo.KindCompare && ev.Kind != algo.KindSwap {
		return
	}
	if ev.J < 0 {
		return
	}
	diff := ev.I - ev.J
	if diff < 0 {
		diff = -diff
	}
	d.sum += float64(diff)
	d.samples++
}

func (d *Distance) Value() float64 {
	if d.samples == 0 {
		return 0
	}
	return d.sum / float64(d.samples)
}

func (d *Distance) Reset() {
	d.sum = 0
	d.samples = 0
}

// Set fans events out to its metrics. It is an algo.Observer and is safe
// to read while a run is writing to it.
type Set struct {
	mu      sync.Mutex
	metrics []Metric
}

func NewSet(ms ...Metric) *Set {
	return &Set{metrics: ms}
}

// Standard is the set every command reports.
func Standard() *Set {
	return NewSet(
		NewCounter("comparisons", algo.KindCompare),
		NewCounter("swaps", algo.KindSwap),
		NewCounter("writes", algo.KindOverwrite),
		NewDistance(),
	)
}

func (s *Set) OnEvent(ev algo.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.metrics {
		m.Observe(ev)
	}
}

func (s *Set) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.metrics {
		m.Reset()
	}
}

func (s *Set) Values() map[string]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (s *Set) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.metrics))
	for _, m := range s.metrics {
		names = append(names, m.Name())
	}
	sort.Strings(names)
	return names
}

var _ algo.Observer = (*Set)(nil)

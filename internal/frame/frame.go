// Package frame keeps the latest visual state of a run. The runner
// goroutine writes it through the algo collaborator interfaces and a UI
// reads consistent copies with Snapshot.
package frame

import (
	"sync"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/sequence"
)

type View struct {
	Items   []sequence.Item
	Active  []int
	Sorted  []bool
	Colors  []algo.Color
	Labels  []string
	Message string
	Version uint64
}

// IsActive reports whether i is one of the highlighted indices.
func (v View) IsActive(i int) bool {
	for _, a := range v.Active {
		if a == i {
			return true
		}
	}
	return false
}

func (v View) Values() []int {
	out := make([]int, len(v.Items))
	for i, it := range v.Items {
		out[i] = it.Value
	}
	return out
}

type Frame struct {
	mu   sync.RWMutex
	view View
}

func New() *Frame {
	return &Frame{}
}

func (f *Frame) Render(items []sequence.Item) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.view.Items = append(f.view.Items[:0:0], items...)
	f.view.Active = nil
	f.view.Sorted = make([]bool, len(items))
	f.view.Colors = make([]algo.Color, len(items))
	f.view.Version++
}

func (f *Frame) SetActive(indices ...int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.view.Active = append(f.view.Active[:0:0], indices...)
	f.view.Version++
}

func (f *Frame) ClearActive() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.view.Active = nil
	f.view.Version++
}

func (f *Frame) MarkSorted(i int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i < 0 || i >= len(f.view.Sorted) {
		return
	}
	f.view.Sorted[i] = true
	f.view.Version++
}

func (f *Frame) ColorRange(lo, hi int, c algo.Color) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if lo < 0 {
		lo = 0
	}
	if hi >= len(f.view.Colors) {
		hi = len(f.view.Colors) - 1
	}
	for i := lo; i <= hi; i++ {
		f.view.Colors[i] = c
	}
	f.view.Version++
}

func (f *Frame) UpdateValue(i, value int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i < 0 || i >= len(f.view.Items) {
		return
	}
	f.view.Items[i].Value = value
	f.view.Version++
}

// UpdateItem moves it, origin ID included, into position i.
func (f *Frame) UpdateItem(i int, it sequence.Item) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i < 0 || i >= len(f.view.Items) {
		return
	}
	f.view.Items[i] = it
	f.view.Version++
}

func (f *Frame) Show(labels ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.view.Labels = append(f.view.Labels[:0:0], labels...)
	f.view.Version++
}

func (f *Frame) Narrate(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.view.Message = msg
	f.view.Version++
}

// Snapshot returns a deep copy of the current view.
func (f *Frame) Snapshot() View {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v := f.view
	v.Items = append([]sequence.Item(nil), f.view.Items...)
	v.Active = append([]int(nil), f.view.Active...)
	v.Sorted = append([]bool(nil), f.view.Sorted...)
	v.Colors = append([]algo.Color(nil), f.view.Colors...)
	v.Labels = append([]string(nil), f.view.Labels...)
	return v
}

var (
	_ algo.Renderer     = (*Frame)(nil)
	_ algo.ItemRenderer = (*Frame)(nil)
	_ algo.CodeView     = (*Frame)(nil)
	_ algo.Narrator     = (*Frame)(nil)
)

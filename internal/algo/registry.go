package algo

import (
	"context"
	"fmt"
)

type Params struct {
	Target int
}

type Info struct {
	ID             string
	Title          string
	Description    string
	Search         bool
	RequiresSorted bool
}

type entry struct {
	info Info
	new  func(Params) Runner
}

type Registry struct {
	entries map[string]entry
	order   []string
}

func NewRegistry() *Registry {
	r := &Registry{entries: make(map[string]entry)}

	r.addSort(Info{ID: "bubble", Title: "Bubble Sort",
		Description: "Repeatedly swaps adjacent out-of-order pairs"}, bubbleSort)
	r.addSort(Info{ID: "selection", Title: "Selection Sort",
		Description: "Selects the minimum of the unsorted suffix"}, selectionSort)
	r.addSort(Info{ID: "insertion", Title: "Insertion Sort",
		Description: "Shifts larger elements right and inserts the key"}, insertionSort)
	r.addSort(Info{ID: "merge", Title: "Merge Sort",
		Description: "Divides in halves and merges them stably"}, mergeSort)
	r.addSort(Info{ID: "quick", Title: "Quick Sort",
		Description: "Lomuto partition around the last element"}, quickSort)
	r.addSort(Info{ID: "heap", Title: "Heap Sort",
		Description: "Builds a max-heap and extracts the root"}, heapSort)

	r.addSearch(Info{ID: "linear", Title: "Linear Search",
		Description: "Scans every index in order"}, linearSearch)
	r.addSearch(Info{ID: "binary", Title: "Binary Search",
		Description: "Halves a sorted range around the midpoint", RequiresSorted: true}, binarySearch)

	return r
}

func (r *Registry) addSort(info Info, body func(ctx context.Context, e *Env) error) {
	r.register(info, func(Params) Runner { return sorter{name: info.ID, body: body} })
}

func (r *Registry) addSearch(info Info, body func(ctx context.Context, e *Env, target int) (int, error)) {
	info.Search = true
	r.register(info, func(p Params) Runner {
		return searcher{name: info.ID, target: p.Target, needsSorted: info.RequiresSorted, body: body}
	})
}

func (r *Registry) register(info Info, fn func(Params) Runner) {
	r.entries[info.ID] = entry{info: info, new: fn}
	r.order = append(r.order, info.ID)
}

func (r *Registry) Get(id string, p Params) (Runner, error) {
	e, ok := r.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, id)
	}
	return e.new(p), nil
}

func (r *Registry) Info(id string) (Info, error) {
	e, ok := r.entries[id]
	if !ok {
		return Info{}, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, id)
	}
	return e.info, nil
}

// List returns every algorithm in menu order.
func (r *Registry) List() []Info {
	infos := make([]Info, 0, len(r.order))
	for _, id := range r.order {
		infos = append(infos, r.entries[id].info)
	}
	return infos
}

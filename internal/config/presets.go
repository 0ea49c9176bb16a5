package config

import (
	"math/rand"
	"sort"

	"github.com/san-kum/algoviz/internal/sequence"
)

type Preset struct {
	Name        string
	Description string
	Generate    func(r *rand.Rand, size, maxValue int) []int
}

func fixed(values ...int) func(*rand.Rand, int, int) []int {
	return func(*rand.Rand, int, int) []int {
		return append([]int(nil), values...)
	}
}

var Presets = map[string]*Preset{
	"random": {
		Description: "uniform random values",
		Generate:    sequence.Random,
	},
	"sorted": {
		Description: "already ascending",
		Generate: func(r *rand.Rand, size, maxValue int) []int {
			return sequence.Sorted(sequence.Random(r, size, maxValue))
		},
	},
	"reversed": {
		Description: "strictly descending, worst case for the quadratic sorts",
		Generate: func(r *rand.Rand, size, maxValue int) []int {
			values := sequence.Sorted(sequence.Random(r, size, maxValue))
			sort.Sort(sort.Reverse(sort.IntSlice(values)))
			return values
		},
	},
	"nearly_sorted": {
		Description: "ascending with a few swapped pairs",
		Generate: func(r *rand.Rand, size, maxValue int) []int {
			values := sequence.Sorted(sequence.Random(r, size, maxValue))
			for i := 0; i < size/10+1 && size > 1; i++ {
				a, b := r.Intn(size), r.Intn(size)
				values[a], values[b] = values[b], values[a]
			}
			return values
		},
	},
	"few_unique": {
		Description: "only four distinct values",
		Generate: func(r *rand.Rand, size, maxValue int) []int {
			values := make([]int, size)
			step := maxValue / 4
			if step < 1 {
				step = 1
			}
			for i := range values {
				values[i] = step * (1 + r.Intn(4))
			}
			return values
		},
	},
	"bubble_example": {
		Description: "bubble sort walkthrough",
		Generate:    fixed(5, 3, 8, 1),
	},
	"stable_example": {
		Description: "equal values for merge sort stability",
		Generate:    fixed(4, 2, 2, 3),
	},
	"search_example": {
		Description: "linear search for 9 finds index 2",
		Generate:    fixed(7, 2, 9, 4),
	},
}

func init() {
	for name, p := range Presets {
		p.Name = name
	}
}

func GetPreset(name string) *Preset {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

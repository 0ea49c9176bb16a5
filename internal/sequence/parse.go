package sequence

import (
	"errors"
	"math/rand"
	"sort"
	"strconv"
	"strings"
)

const (
	DefaultSize     = 30
	DefaultMaxValue = 100
	MinSize         = 1
	MaxSize         = 200
)

// ErrInvalidInput is returned when a custom array has no usable value.
var ErrInvalidInput = errors.New("sequence: input has no usable values")

// Parse reads a comma separated list of non-negative integers. Tokens that
// are empty, non-numeric or negative are dropped.
func Parse(input string) ([]int, error) {
	tokens := strings.Split(input, ",")
	values := make([]int, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		v, err := strconv.Atoi(tok)
		if err != nil || v < 0 {
			continue
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil, ErrInvalidInput
	}
	return values, nil
}

// Random returns size values drawn uniformly from [1, maxValue].
func Random(r *rand.Rand, size, maxValue int) []int {
	if size < 0 {
		size = 0
	}
	if maxValue < 1 {
		maxValue = DefaultMaxValue
	}
	values := make([]int, size)
	for i := range values {
		values[i] = r.Intn(maxValue) + 1
	}
	return values
}

// Sorted returns an ascending copy of values.
func Sorted(values []int) []int {
	out := make([]int, len(values))
	copy(out, values)
	sort.Ints(out)
	return out
}

func Format(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

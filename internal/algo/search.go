package algo

import (
	"context"

	hl "github.com/san-kum/algoviz/internal/highlight"
)

func linearSearch(ctx context.Context, e *Env, target int) (int, error) {
	for i := 0; i < e.Len(); i++ {
		e.Show(hl.Probe)
		v := e.Probe(i)
		if err := e.Step(ctx); err != nil {
			return -1, err
		}
		if v == target {
			return i, nil
		}
		e.ColorRange(i, i, ColorMiss)
	}
	return -1, nil
}

func binarySearch(ctx context.Context, e *Env, target int) (int, error) {
	return binaryRange(ctx, e, target, 0, e.Len()-1)
}

func binaryRange(ctx context.Context, e *Env, target, start, end int) (int, error) {
	if start > end {
		return -1, nil
	}
	mid := (start + end) / 2

	e.Show(hl.Probe)
	v := e.Probe(mid)
	if err := e.Step(ctx); err != nil {
		return -1, err
	}
	if v == target {
		return mid, nil
	}
	e.ColorRange(mid, mid, ColorMiss)

	if target < v {
		e.Show(hl.GoLeft)
		return binaryRange(ctx, e, target, start, mid-1)
	}
	e.Show(hl.GoRight)
	return binaryRange(ctx, e, target, mid+1, end)
}

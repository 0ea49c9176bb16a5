package algo

import (
	"context"

	hl "github.com/san-kum/algoviz/internal/highlight"
	"github.com/san-kum/algoviz/internal/sequence"
)

func bubbleSort(ctx context.Context, e *Env) error {
	n := e.Len()
	for i := 0; i < n-1; i++ {
		e.Show(hl.Outer)
		for j := 0; j < n-i-1; j++ {
			e.Show(hl.Compare)
			e.Narrate("Comparing index %d and %d", j, j+1)
			a, b := e.Compare(j, j+1)
			if err := e.Step(ctx); err != nil {
				return err
			}
			if a > b {
				e.Show(hl.Swap)
				e.Swap(j, j+1)
				if err := e.Step(ctx); err != nil {
					return err
				}
			}
		}
		e.Show(hl.Pass)
		e.MarkSorted(n - i - 1)
	}
	return nil
}

func selectionSort(ctx context.Context, e *Env) error {
	n := e.Len()
	for i := 0; i < n-1; i++ {
		e.Show(hl.Outer)
		minIndex := i
		for j := i + 1; j < n; j++ {
			e.Show(hl.Compare)
			e.Narrate("Comparing index %d (value: %d) and index %d (value: %d)", minIndex, e.At(minIndex), j, e.At(j))
			v, m := e.Compare(j, minIndex)
			if err := e.Step(ctx); err != nil {
				return err
			}
			if v < m {
				minIndex = j
				e.Show(hl.NewMin)
			}
		}
		if minIndex != i {
			e.Show(hl.Swap)
			e.Swap(i, minIndex)
			if err := e.Step(ctx); err != nil {
				return err
			}
		}
		e.MarkSorted(i)
	}
	return nil
}

func insertionSort(ctx context.Context, e *Env) error {
	n := e.Len()
	for i := 1; i < n; i++ {
		e.Show(hl.Outer, hl.Key)
		key := e.Item(i)
		j := i - 1
		for j >= 0 {
			e.Show(hl.Compare)
			v, _ := e.Compare(j, j+1)
			if err := e.Step(ctx); err != nil {
				return err
			}
			if v <= key.Value {
				break
			}
			e.Show(hl.Shift)
			e.Narrate("Shifting index %d (value: %d)", j, v)
			e.Overwrite(j+1, e.Item(j))
			if err := e.Step(ctx); err != nil {
				return err
			}
			j--
		}
		e.Show(hl.Place)
		e.Overwrite(j+1, key)
		if err := e.Step(ctx); err != nil {
			return err
		}
		e.MarkSorted(i)
	}
	return nil
}

func mergeSort(ctx context.Context, e *Env) error {
	return mergeRange(ctx, e, 0, e.Len()-1)
}

func mergeRange(ctx context.Context, e *Env, lo, hi int) error {
	if lo >= hi {
		return nil
	}
	mid := lo + (hi-lo)/2

	e.Show(hl.Divide)
	e.ColorRange(lo, hi, ColorDivide)
	if err := e.Step(ctx); err != nil {
		return err
	}

	e.Show(hl.Recurse)
	if err := mergeRange(ctx, e, lo, mid); err != nil {
		return err
	}
	if err := mergeRange(ctx, e, mid+1, hi); err != nil {
		return err
	}
	return merge(ctx, e, lo, mid, hi)
}

// merge takes from the left half on ties, which keeps equal values in
// input order.
func merge(ctx context.Context, e *Env, lo, mid, hi int) error {
	e.Show(hl.Merge)
	e.ColorRange(lo, hi, ColorMerge)

	left := make([]sequence.Item, 0, mid-lo+1)
	for i := lo; i <= mid; i++ {
		left = append(left, e.Item(i))
	}
	right := make([]sequence.Item, 0, hi-mid)
	for i := mid + 1; i <= hi; i++ {
		right = append(right, e.Item(i))
	}

	i, j, k := 0, 0, lo
	for i < len(left) && j < len(right) {
		e.Compare(lo+i, mid+1+j)
		if left[i].Value <= right[j].Value {
			e.Show(hl.TakeLeft)
			e.Overwrite(k, left[i])
			i++
		} else {
			e.Show(hl.TakeRight)
			e.Overwrite(k, right[j])
			j++
		}
		k++
		if err := e.Step(ctx); err != nil {
			return err
		}
	}
	for ; i < len(left); i++ {
		e.Show(hl.DrainLeft)
		e.Overwrite(k, left[i])
		k++
		if err := e.Step(ctx); err != nil {
			return err
		}
	}
	for ; j < len(right); j++ {
		e.Show(hl.DrainRight)
		e.Overwrite(k, right[j])
		k++
		if err := e.Step(ctx); err != nil {
			return err
		}
	}
	return nil
}

func quickSort(ctx context.Context, e *Env) error {
	return quickRange(ctx, e, 0, e.Len()-1)
}

func quickRange(ctx context.Context, e *Env, low, high int) error {
	if low >= high {
		if low == high {
			e.MarkSorted(low)
		}
		return nil
	}

	e.Show(hl.Partition)
	p, err := partition(ctx, e, low, high)
	if err != nil {
		return err
	}
	e.MarkSorted(p)

	e.Show(hl.Recurse)
	if err := quickRange(ctx, e, low, p-1); err != nil {
		return err
	}
	return quickRange(ctx, e, p+1, high)
}

// partition is Lomuto's scheme with the last element as pivot.
func partition(ctx context.Context, e *Env, low, high int) (int, error) {
	e.Show(hl.Pivot)
	pivot := e.At(high)
	i := low - 1
	for j := low; j < high; j++ {
		e.Show(hl.Compare)
		e.Narrate("Comparing index %d with pivot %d", j, pivot)
		v, _ := e.Compare(j, high)
		if err := e.Step(ctx); err != nil {
			return 0, err
		}
		if v <= pivot {
			i++
			if i != j {
				e.Show(hl.Swap)
				e.Swap(i, j)
				if err := e.Step(ctx); err != nil {
					return 0, err
				}
			}
		}
	}
	if i+1 != high {
		e.Show(hl.Place)
		e.Swap(i+1, high)
		if err := e.Step(ctx); err != nil {
			return 0, err
		}
	}
	return i + 1, nil
}

func heapSort(ctx context.Context, e *Env) error {
	n := e.Len()
	e.Show(hl.Build)
	for i := n/2 - 1; i >= 0; i-- {
		if err := heapify(ctx, e, n, i); err != nil {
			return err
		}
	}

	for i := n - 1; i > 0; i-- {
		e.Show(hl.Extract)
		e.Swap(0, i)
		if err := e.Step(ctx); err != nil {
			return err
		}
		e.MarkSorted(i)
		e.ColorRange(i, i, ColorFixed)

		e.Show(hl.Reheap)
		if err := heapify(ctx, e, i, 0); err != nil {
			return err
		}
	}
	return nil
}

func heapify(ctx context.Context, e *Env, n, i int) error {
	e.Show(hl.Heapify)
	largest := i
	left, right := 2*i+1, 2*i+2

	if left < n {
		e.Show(hl.CompareLeft)
		a, b := e.Compare(left, largest)
		if err := e.Step(ctx); err != nil {
			return err
		}
		if a > b {
			largest = left
		}
	}
	if right < n {
		e.Show(hl.CompareRight)
		a, b := e.Compare(right, largest)
		if err := e.Step(ctx); err != nil {
			return err
		}
		if a > b {
			largest = right
		}
	}

	if largest == i {
		return nil
	}
	e.Show(hl.Swap)
	e.Swap(i, largest)
	if err := e.Step(ctx); err != nil {
		return err
	}
	e.Show(hl.Sift)
	return heapify(ctx, e, n, largest)
}

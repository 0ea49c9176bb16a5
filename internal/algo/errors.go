package algo

import "errors"

var (
	// ErrCanceled is returned by a runner that observed cancellation at a
	// suspension point. It wraps the context error.
	ErrCanceled = errors.New("algo: run canceled")

	// ErrUnsorted rejects a binary search over unsorted input.
	ErrUnsorted = errors.New("algo: binary search requires sorted input")

	ErrUnknownAlgorithm = errors.New("algo: unknown algorithm")
)

// RunError carries the run context of a failed run.
type RunError struct {
	Algorithm string
	Stats     Stats
	Wrapped   error
}

func (e *RunError) Error() string {
	return e.Algorithm + ": " + e.Wrapped.Error()
}

func (e *RunError) Unwrap() error {
	return e.Wrapped
}

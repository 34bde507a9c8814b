// Package profile measures the wall-clock duration and peak memory of a
// single function call.
package profile

import "time"

// Result holds the output of a profiled call along with its measurements.
type Result[T any] struct {
	Value T
	// Elapsed is the wall-clock (monotonic) duration of the call.
	Elapsed time.Duration
	// PeakBytes is the largest live heap growth observed during the call.
	PeakBytes uint64
}

// Seconds returns the elapsed time in seconds.
func (r Result[T]) Seconds() float64 {
	return r.Elapsed.Seconds()
}

// Run calls fn exactly once and measures it.
func Run[T any](fn func() T) (Result[T], error) {
	return RunErr(func() (T, error) {
		return fn(), nil
	})
}

// RunErr calls fn exactly once and measures it. The error returned by fn is
// passed through along with the measurements. Tracing is torn down on every
// exit path, including a panic in fn, which keeps propagating.
func RunErr[T any](fn func() (T, error)) (res Result[T], err error) {
	tr, err := StartTracing()
	if err != nil {
		return res, err
	}
	defer func() {
		res.PeakBytes = tr.Stop()
	}()

	start := time.Now()
	res.Value, err = fn()
	res.Elapsed = time.Since(start)
	return res, err
}

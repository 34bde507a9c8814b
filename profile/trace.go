package profile

import (
	"errors"
	"runtime"
	"runtime/metrics"
	"sync/atomic"
	"time"
)

// ErrTracingActive is returned when memory tracing is requested while
// another trace is still running.
var ErrTracingActive = errors.New("memory tracing already active")

// SampleInterval is how often a running Tracer samples the live heap.
var SampleInterval = 100 * time.Microsecond

// heapObjects is the size of all heap objects that are not yet known to be
// free.
const heapObjects = "/memory/classes/heap/objects:bytes"

// Only one Tracer may exist at a time: the live heap is process-wide.
var tracing atomic.Bool

// A Tracer measures the peak growth of the live heap between StartTracing
// and Stop.
type Tracer struct {
	baseline uint64
	peak     atomic.Uint64

	stop chan struct{}
	done chan struct{}

	stopped bool
	result  uint64
}

// StartTracing collects garbage, records the live heap as a baseline and
// starts sampling it in the background. The returned Tracer must be stopped.
func StartTracing() (*Tracer, error) {
	if !tracing.CompareAndSwap(false, true) {
		return nil, ErrTracingActive
	}

	runtime.GC()
	t := &Tracer{
		baseline: liveHeap(),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	t.peak.Store(t.baseline)
	go t.sample()
	return t, nil
}

// Stop ends tracing and returns the peak live heap growth, in bytes, observed
// since StartTracing. Calling Stop again returns the same value.
func (t *Tracer) Stop() uint64 {
	if t.stopped {
		return t.result
	}

	t.observe()
	close(t.stop)
	<-t.done
	t.stopped = true
	tracing.Store(false)

	if peak := t.peak.Load(); peak > t.baseline {
		t.result = peak - t.baseline
	}
	return t.result
}

func (t *Tracer) sample() {
	defer close(t.done)

	tick := time.NewTicker(SampleInterval)
	defer tick.Stop()
	for {
		select {
		case <-t.stop:
			return
		case <-tick.C:
			t.observe()
		}
	}
}

func (t *Tracer) observe() {
	cur := liveHeap()
	for {
		peak := t.peak.Load()
		if cur <= peak || t.peak.CompareAndSwap(peak, cur) {
			return
		}
	}
}

func liveHeap() uint64 {
	s := []metrics.Sample{{Name: heapObjects}}
	metrics.Read(s)
	if s[0].Value.Kind() != metrics.KindUint64 {
		return 0
	}
	return s[0].Value.Uint64()
}

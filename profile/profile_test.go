package profile

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMeasuresTimeAndMemory(t *testing.T) {
	const size = 8 << 20
	const nap = 20 * time.Millisecond

	res, err := Run(func() []byte {
		buf := make([]byte, size)
		for i := range buf {
			buf[i] = byte(i)
		}
		time.Sleep(nap)
		return buf
	})
	require.NoError(t, err)

	assert.Len(t, res.Value, size)
	assert.GreaterOrEqual(t, res.Elapsed, nap)
	assert.GreaterOrEqual(t, res.Seconds(), nap.Seconds())
	assert.GreaterOrEqual(t, res.PeakBytes, uint64(size))
}

func TestRunCountsTransientPeak(t *testing.T) {
	const size = 4 << 20

	res, err := Run(func() int {
		buf := make([]byte, size)
		buf[size-1] = 1
		// Give the sampler time to see buf before it becomes garbage.
		time.Sleep(10 * time.Millisecond)
		return int(buf[size-1])
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Value)
	assert.GreaterOrEqual(t, res.PeakBytes, uint64(size))
}

func TestRunCallsOnce(t *testing.T) {
	calls := 0
	_, err := Run(func() int {
		calls++
		return calls
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRunErrPassesError(t *testing.T) {
	boom := errors.New("boom")
	res, err := RunErr(func() (string, error) {
		return "partial", boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "partial", res.Value)
	assert.False(t, tracing.Load())
}

func TestNestedTracingRejected(t *testing.T) {
	var inner error
	_, err := Run(func() int {
		_, inner = Run(func() int { return 0 })
		return 0
	})
	require.NoError(t, err)
	assert.ErrorIs(t, inner, ErrTracingActive)

	// The outer trace was released.
	tr, err := StartTracing()
	require.NoError(t, err)
	tr.Stop()
}

func TestStartTracingExclusive(t *testing.T) {
	tr, err := StartTracing()
	require.NoError(t, err)

	_, err = StartTracing()
	assert.ErrorIs(t, err, ErrTracingActive)

	first := tr.Stop()
	assert.Equal(t, first, tr.Stop())

	tr, err = StartTracing()
	require.NoError(t, err)
	tr.Stop()
}

func TestPanicReleasesTracing(t *testing.T) {
	assert.PanicsWithValue(t, "boom", func() {
		Run(func() int { panic("boom") })
	})
	assert.False(t, tracing.Load())

	_, err := Run(func() int { return 1 })
	assert.NoError(t, err)
}

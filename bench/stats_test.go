package bench

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	ms := []Measurement{
		{Converter: "b", Elapsed: 2 * time.Second, PeakBytes: 10},
		{Converter: "a", Elapsed: time.Second, PeakBytes: 5},
		{Converter: "b", Elapsed: 4 * time.Second, PeakBytes: 30},
		{Converter: "b", Elapsed: 6 * time.Second, PeakBytes: 20},
	}

	stats := summarize(ms)
	require.Len(t, stats, 2)

	b := stats[0]
	assert.Equal(t, "b", b.Converter)
	assert.Equal(t, 3, b.Runs)
	assert.InDelta(t, 4.0, b.Mean, 1e-9)
	assert.InDelta(t, 2.0, b.StdDev, 1e-9)
	assert.InDelta(t, 2.0, b.Min, 1e-9)
	assert.Equal(t, uint64(30), b.PeakBytes)

	a := stats[1]
	assert.Equal(t, 1, a.Runs)
	assert.InDelta(t, 1.0, a.Mean, 1e-9)
	assert.Zero(t, a.StdDev)
}

func TestSummaryStats(t *testing.T) {
	s := &Summary{Files: []FileResult{
		{Measurements: []Measurement{{Converter: "x", Elapsed: time.Second}}},
		{Measurements: []Measurement{{Converter: "x", Elapsed: 3 * time.Second}}},
	}}
	stats := s.Stats()
	require.Len(t, stats, 1)
	assert.Equal(t, 2, stats[0].Runs)
	assert.InDelta(t, 2.0, stats[0].Mean, 1e-9)
}

func TestPrintStats(t *testing.T) {
	var b bytes.Buffer
	printStats(&b, Stats{Converter: "vectorized", Runs: 1, Mean: 0.0123456, PeakBytes: 4096})
	assert.Equal(t, "vectorized:    0.01235 seconds, 4096 bytes\n", b.String())

	b.Reset()
	printStats(&b, Stats{Converter: "compiled_loop", Runs: 4, Mean: 1.5, StdDev: 0.25, PeakBytes: 7})
	assert.Equal(t, "compiled_loop: 1.50000 ± 0.25000 seconds (n=4), 7 bytes\n", b.String())
}

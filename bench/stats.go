package bench

import (
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// A Measurement is one profiled converter call.
type Measurement struct {
	Converter string
	Iteration int
	Elapsed   time.Duration
	PeakBytes uint64
}

// Seconds returns the elapsed time in seconds.
func (m Measurement) Seconds() float64 {
	return m.Elapsed.Seconds()
}

// Stats aggregates the measurements of one converter.
type Stats struct {
	Converter string
	Runs      int
	// Mean, StdDev and Min are in seconds.
	Mean   float64
	StdDev float64
	Min    float64
	// PeakBytes is the largest peak over all runs.
	PeakBytes uint64
}

// FileResult holds the measurements taken on one image.
type FileResult struct {
	Name string
	// Output is the grayscale file written, if any.
	Output       string
	Width        int
	Height       int
	Measurements []Measurement
}

// Stats aggregates the measurements of the image per converter.
func (f FileResult) Stats() []Stats {
	return summarize(f.Measurements)
}

// Summary holds the results of a whole run.
type Summary struct {
	Started    time.Time
	Elapsed    time.Duration
	Converters []string
	Files      []FileResult
}

// Stats aggregates the measurements of every image per converter.
func (s *Summary) Stats() []Stats {
	var all []Measurement
	for _, f := range s.Files {
		all = append(all, f.Measurements...)
	}
	return summarize(all)
}

// summarize groups measurements by converter, in order of first appearance.
func summarize(ms []Measurement) []Stats {
	var order []string
	secs := make(map[string][]float64)
	res := make(map[string]*Stats)
	for _, m := range ms {
		s, ok := res[m.Converter]
		if !ok {
			s = &Stats{Converter: m.Converter}
			res[m.Converter] = s
			order = append(order, m.Converter)
		}
		s.Runs++
		if m.PeakBytes > s.PeakBytes {
			s.PeakBytes = m.PeakBytes
		}
		secs[m.Converter] = append(secs[m.Converter], m.Seconds())
	}

	stats := make([]Stats, 0, len(order))
	for _, name := range order {
		s := res[name]
		xs := secs[name]
		if len(xs) > 1 {
			s.Mean, s.StdDev = stat.MeanStdDev(xs, nil)
		} else {
			s.Mean = xs[0]
		}
		s.Min = floats.Min(xs)
		stats = append(stats, *s)
	}
	return stats
}

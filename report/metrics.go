package report

import (
	"github.com/ArnaudCalmettes/graybench/bench"
	"github.com/prometheus/client_golang/prometheus"
)

// NewRegistry returns a Prometheus registry holding the per-file and
// per-converter figures of a summary.
func NewRegistry(s *bench.Summary) *prometheus.Registry {
	seconds := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "graybench",
		Subsystem: "convert",
		Name:      "seconds",
		Help:      "Mean wall-clock time of a grayscale conversion",
	}, []string{"file", "converter"})
	peak := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "graybench",
		Subsystem: "convert",
		Name:      "peak_bytes",
		Help:      "Peak live heap growth during a grayscale conversion",
	}, []string{"file", "converter"})
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "graybench",
		Subsystem: "convert",
		Name:      "runs_total",
		Help:      "Measured grayscale conversions",
	}, []string{"file", "converter"})
	files := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "graybench",
		Name:      "files",
		Help:      "Images benchmarked in the run",
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(seconds, peak, runs, files)

	files.Set(float64(len(s.Files)))
	for _, f := range s.Files {
		for _, st := range f.Stats() {
			seconds.WithLabelValues(f.Name, st.Converter).Set(st.Mean)
			peak.WithLabelValues(f.Name, st.Converter).Set(float64(st.PeakBytes))
			runs.WithLabelValues(f.Name, st.Converter).Add(float64(st.Runs))
		}
	}
	return reg
}

// WriteMetrics writes a summary as a Prometheus textfile, as read by the
// node exporter's textfile collector.
func WriteMetrics(filename string, s *bench.Summary) error {
	return prometheus.WriteToTextfile(filename, NewRegistry(s))
}

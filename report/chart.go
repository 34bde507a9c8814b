package report

import (
	"errors"
	"image/color"

	"github.com/ArnaudCalmettes/graybench/bench"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var barColor = color.RGBA{R: 50, G: 100, B: 200, A: 255}

// NewChart plots the mean conversion time of every converter over the whole
// run.
func NewChart(s *bench.Summary) (*plot.Plot, error) {
	stats := s.Stats()
	if len(stats) == 0 {
		return nil, errors.New("nothing to plot")
	}

	values := make(plotter.Values, len(stats))
	names := make([]string, len(stats))
	for i, st := range stats {
		values[i] = st.Mean * 1000
		names[i] = st.Converter
	}

	p := plot.New()
	p.Title.Text = "Grayscale conversion time"
	p.Y.Label.Text = "Mean time (ms)"

	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return nil, err
	}
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = barColor
	p.Add(bars)
	p.NominalX(names...)
	return p, nil
}

// WriteChart saves the chart of a summary. The format is taken from the file
// extension (svg, png, pdf...).
func WriteChart(filename string, s *bench.Summary) error {
	p, err := NewChart(s)
	if err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, filename)
}

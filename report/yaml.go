package report

import (
	"os"
	"time"

	"github.com/ArnaudCalmettes/graybench/bench"
	"gopkg.in/yaml.v3"
)

type document struct {
	Started    time.Time  `yaml:"started"`
	Elapsed    float64    `yaml:"elapsed_seconds"`
	Converters []statsDoc `yaml:"converters"`
	Files      []fileDoc  `yaml:"files"`
}

type statsDoc struct {
	Converter string  `yaml:"converter"`
	Runs      int     `yaml:"runs"`
	Mean      float64 `yaml:"mean_seconds"`
	StdDev    float64 `yaml:"stddev_seconds"`
	Min       float64 `yaml:"min_seconds"`
	PeakBytes uint64  `yaml:"peak_bytes"`
}

type fileDoc struct {
	Name   string     `yaml:"name"`
	Output string     `yaml:"output,omitempty"`
	Width  int        `yaml:"width"`
	Height int        `yaml:"height"`
	Stats  []statsDoc `yaml:"converters"`
}

func newStatsDocs(stats []bench.Stats) []statsDoc {
	docs := make([]statsDoc, len(stats))
	for i, s := range stats {
		docs[i] = statsDoc{
			Converter: s.Converter,
			Runs:      s.Runs,
			Mean:      s.Mean,
			StdDev:    s.StdDev,
			Min:       s.Min,
			PeakBytes: s.PeakBytes,
		}
	}
	return docs
}

// MarshalYAML encodes a summary as a YAML document.
func MarshalYAML(s *bench.Summary) ([]byte, error) {
	doc := document{
		Started:    s.Started,
		Elapsed:    s.Elapsed.Seconds(),
		Converters: newStatsDocs(s.Stats()),
	}
	for _, f := range s.Files {
		doc.Files = append(doc.Files, fileDoc{
			Name:   f.Name,
			Output: f.Output,
			Width:  f.Width,
			Height: f.Height,
			Stats:  newStatsDocs(f.Stats()),
		})
	}
	return yaml.Marshal(&doc)
}

// WriteYAML writes a summary to a YAML file.
func WriteYAML(filename string, s *bench.Summary) error {
	data, err := MarshalYAML(s)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

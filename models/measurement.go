package models

import (
	"time"

	"github.com/ArnaudCalmettes/graybench/bench"
	"github.com/jinzhu/gorm"
)

// A Measurement is one profiled converter call of a run.
type Measurement struct {
	gorm.Model
	RunID     string `gorm:"index"`
	File      string
	Width     int
	Height    int
	Converter string
	Iteration int
	Seconds   float64
	PeakBytes int64
}

// Bench converts back to a bench measurement.
func (m Measurement) Bench() bench.Measurement {
	return bench.Measurement{
		Converter: m.Converter,
		Iteration: m.Iteration,
		Elapsed:   time.Duration(m.Seconds * float64(time.Second)),
		PeakBytes: uint64(m.PeakBytes),
	}
}

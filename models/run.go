package models

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/ArnaudCalmettes/graybench/bench"
	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

// ErrAmbiguousID is returned when an ID prefix matches more than one run.
var ErrAmbiguousID = errors.New("ambiguous run id")

// A Run is one recorded benchmark: a CLI invocation or a bot command.
type Run struct {
	ID           string `gorm:"primary_key"`
	CreatedAt    time.Time
	Source       string
	Host         string
	GoVersion    string
	Platform     string
	Files        int
	Elapsed      float64
	Measurements []Measurement
}

// NewRunFromSummary builds a run, with a fresh ID, out of a benchmark summary.
func NewRunFromSummary(source string, s *bench.Summary) *Run {
	host, _ := os.Hostname()
	r := &Run{
		ID:        uuid.New().String(),
		CreatedAt: s.Started,
		Source:    source,
		Host:      host,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		Files:     len(s.Files),
		Elapsed:   s.Elapsed.Seconds(),
	}
	for _, f := range s.Files {
		for _, m := range f.Measurements {
			r.Measurements = append(r.Measurements, Measurement{
				File:      f.Name,
				Width:     f.Width,
				Height:    f.Height,
				Converter: m.Converter,
				Iteration: m.Iteration,
				Seconds:   m.Seconds(),
				PeakBytes: int64(m.PeakBytes),
			})
		}
	}
	return r
}

// ShortID returns the first 8 characters of the run ID.
func (r *Run) ShortID() string {
	if len(r.ID) > 8 {
		return r.ID[:8]
	}
	return r.ID
}

func (r Run) String() string {
	return fmt.Sprintf("%s %s (%d files, %s)", r.ShortID(), r.CreatedAt.Format(time.RFC3339), r.Files, r.Source)
}

// Create creates the run and its measurements in the DB
func (r *Run) Create(db *gorm.DB) error {
	return db.Create(r).Error
}

// Delete deletes the run and its measurements from the DB
func (r *Run) Delete(db *gorm.DB) error {
	if err := db.Unscoped().Where("run_id = ?", r.ID).Delete(Measurement{}).Error; err != nil {
		return err
	}
	return db.Where("id = ?", r.ID).Delete(Run{}).Error
}

// DeleteRun deletes the run matching an ID prefix and returns it.
func DeleteRun(db *gorm.DB, idPrefix string) (*Run, error) {
	r, err := FindRun(db, idPrefix)
	if err != nil {
		return nil, err
	}
	return r, r.Delete(db)
}

// Summary rebuilds a benchmark summary out of the recorded measurements.
func (r *Run) Summary() *bench.Summary {
	s := &bench.Summary{
		Started: r.CreatedAt,
		Elapsed: time.Duration(r.Elapsed * float64(time.Second)),
	}
	files := make(map[string]int)
	convs := make(map[string]bool)
	for _, m := range r.Measurements {
		i, ok := files[m.File]
		if !ok {
			i = len(s.Files)
			files[m.File] = i
			s.Files = append(s.Files, bench.FileResult{Name: m.File, Width: m.Width, Height: m.Height})
		}
		if !convs[m.Converter] {
			convs[m.Converter] = true
			s.Converters = append(s.Converters, m.Converter)
		}
		s.Files[i].Measurements = append(s.Files[i].Measurements, m.Bench())
	}
	return s
}

// ListRuns returns the most recent runs, newest first. A limit <= 0 returns
// all of them.
func ListRuns(db *gorm.DB, limit int) (runs []Run, err error) {
	q := db.Order("created_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err = q.Find(&runs).Error
	return
}

// FindRun finds a run, along with its measurements, from a prefix of its ID.
func FindRun(db *gorm.DB, idPrefix string) (*Run, error) {
	if idPrefix == "" {
		return nil, gorm.ErrRecordNotFound
	}
	var runs []Run
	err := db.Preload("Measurements", func(db *gorm.DB) *gorm.DB {
		return db.Order("measurements.id")
	}).Where("id LIKE ?", idPrefix+"%").Limit(2).Find(&runs).Error
	if err != nil {
		return nil, err
	}
	switch len(runs) {
	case 0:
		return nil, gorm.ErrRecordNotFound
	case 1:
		return &runs[0], nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrAmbiguousID, idPrefix)
	}
}

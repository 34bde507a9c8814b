// Package bench runs every grayscale converter on a set of images, checks
// that they all agree and reports how long each took and how much memory it
// needed.
package bench

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/ArnaudCalmettes/graybench/imp"
	"github.com/ArnaudCalmettes/graybench/input"
	"github.com/ArnaudCalmettes/graybench/profile"
	"github.com/disintegration/imaging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/ArnaudCalmettes/graybench/bench"

// A Runner measures a list of converters. Converters run one after the
// other; the first one is the baseline every other output is checked
// against.
type Runner struct {
	Config     Config
	Converters []imp.Converter
	// Out receives the console report. Nil discards it.
	Out io.Writer
	// Tracer records one span per image and per converter call. Nil uses
	// the global tracer provider.
	Tracer trace.Tracer
}

// NewRunner creates a runner writing its console report to out.
func NewRunner(cfg Config, converters []imp.Converter, out io.Writer) *Runner {
	if cfg.Repeat < 1 {
		cfg.Repeat = 1
	}
	return &Runner{
		Config:     cfg,
		Converters: converters,
		Out:        out,
	}
}

func (r *Runner) out() io.Writer {
	if r.Out == nil {
		return io.Discard
	}
	return r.Out
}

func (r *Runner) tracer() trace.Tracer {
	if r.Tracer == nil {
		return otel.Tracer(tracerName)
	}
	return r.Tracer
}

// Names returns the names of the converters, in order.
func (r *Runner) Names() []string {
	names := make([]string, len(r.Converters))
	for i, c := range r.Converters {
		names[i] = c.Name
	}
	return names
}

// Run benchmarks every matching file of the input directory and writes one
// grayscale image per file to the output directory. It stops at the first
// error: the summary then holds the files completed so far. A converter
// disagreeing with the baseline yields a *MismatchError and nothing is
// written for that file.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	cfg := r.Config

	files, err := input.Discover(cfg.InputDir, cfg.Pattern)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, err
	}

	s := &Summary{
		Started:    time.Now(),
		Converters: r.Names(),
	}
	defer func() {
		s.Elapsed = time.Since(s.Started)
	}()

	for _, f := range files {
		img, err := input.Load(f)
		if err != nil {
			return s, err
		}

		res, gray, err := r.RunImage(ctx, f, img)
		if err != nil {
			return s, err
		}

		res.Output = filepath.Join(cfg.OutputDir, input.OutputName(f, cfg.Ext))
		if err := imp.Save(res.Output, gray, cfg.Quality); err != nil {
			return s, err
		}
		if cfg.Verify {
			if err := verifyOutput(res.Output, gray); err != nil {
				return s, err
			}
		}
		s.Files = append(s.Files, res)
	}
	return s, nil
}

// RunImage benchmarks every converter on an in-memory image and returns the
// measurements along with the baseline's grayscale output.
func (r *Runner) RunImage(ctx context.Context, name string, img *imp.RGB) (FileResult, *image.Gray, error) {
	res := FileResult{
		Name:   name,
		Width:  img.Rect.Dx(),
		Height: img.Rect.Dy(),
	}
	if err := img.Validate(); err != nil {
		return res, nil, fmt.Errorf("%s: %w", name, err)
	}
	if len(r.Converters) == 0 {
		return res, nil, fmt.Errorf("%s: no converter to run", name)
	}

	ctx, span := r.tracer().Start(ctx, "image", trace.WithAttributes(
		attribute.String("file", name),
		attribute.Int("width", res.Width),
		attribute.Int("height", res.Height),
	))
	defer span.End()

	w := r.out()
	fmt.Fprintln(w)

	repeat := max(1, r.Config.Repeat)
	var baseline *image.Gray
	baseName := r.Converters[0].Name
	for _, c := range r.Converters {
		ms := make([]Measurement, 0, repeat)
		outputs := make([]*image.Gray, 0, repeat)
		for i := 0; i < repeat; i++ {
			m, gray, err := r.measure(ctx, c, i, img)
			if err != nil {
				span.SetStatus(codes.Error, err.Error())
				return res, nil, err
			}
			ms = append(ms, m)
			outputs = append(outputs, gray)
		}
		printStats(w, summarize(ms)[0])
		res.Measurements = append(res.Measurements, ms...)

		if baseline == nil {
			baseline = outputs[0]
		}
		for _, gray := range outputs {
			if err := verify(name, baseName, c.Name, baseline, gray); err != nil {
				span.SetStatus(codes.Error, err.Error())
				return res, nil, err
			}
		}
	}
	return res, baseline, nil
}

func (r *Runner) measure(ctx context.Context, c imp.Converter, iteration int, img *imp.RGB) (Measurement, *image.Gray, error) {
	_, span := r.tracer().Start(ctx, "convert", trace.WithAttributes(
		attribute.String("converter", c.Name),
		attribute.Int("iteration", iteration),
	))
	defer span.End()

	m := Measurement{
		Converter: c.Name,
		Iteration: iteration,
	}
	res, err := profile.Run(func() *image.Gray {
		return c.Convert(img)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return m, nil, err
	}
	m.Elapsed = res.Elapsed
	m.PeakBytes = res.PeakBytes

	span.SetAttributes(
		attribute.Float64("elapsed_seconds", m.Seconds()),
		attribute.Int64("peak_bytes", int64(m.PeakBytes)),
	)
	return m, res.Value, nil
}

// verifyOutput reads a written file back. Lossless formats must decode to
// the exact same pixels; lossy ones only need to keep the size.
func verifyOutput(filename string, want *image.Gray) error {
	got, err := imp.ReadGrayFile(filename)
	if err != nil {
		return fmt.Errorf("couldn't read back %s: %w", filename, err)
	}
	if got.Rect.Size() != want.Rect.Size() {
		return fmt.Errorf("%s: size %v, want %v", filename, got.Rect.Size(), want.Rect.Size())
	}

	format, _ := imaging.FormatFromFilename(filename)
	switch format {
	case imaging.PNG, imaging.TIFF, imaging.BMP:
		if at, differ := imp.FirstDiff(want, got); differ {
			return fmt.Errorf("%s: pixel at %v changed when saved", filename, at)
		}
	}
	return nil
}

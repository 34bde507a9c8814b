package bench

import (
	"fmt"
	"image"

	"github.com/ArnaudCalmettes/graybench/imp"
)

// A MismatchError reports a converter whose output differs from the
// baseline converter's. It means a converter is numerically wrong, and is
// never caused by I/O.
type MismatchError struct {
	File      string
	Baseline  string
	Converter string
	// SizeDiffers is set when both outputs don't even have the same size.
	SizeDiffers bool
	// At is the first differing pixel, relative to the top-left corner.
	At        image.Point
	Want, Got uint8
}

func (e *MismatchError) Error() string {
	if e.SizeDiffers {
		return fmt.Sprintf("%s: %s output size differs from %s", e.File, e.Converter, e.Baseline)
	}
	return fmt.Sprintf("%s: %s output differs from %s at %v: got %d, want %d",
		e.File, e.Converter, e.Baseline, e.At, e.Got, e.Want)
}

// verify returns a *MismatchError if got differs from want.
func verify(file, baseline, converter string, want, got *image.Gray) error {
	at, differ := imp.FirstDiff(want, got)
	if !differ {
		return nil
	}
	err := &MismatchError{
		File:      file,
		Baseline:  baseline,
		Converter: converter,
		At:        at,
	}
	if want.Rect.Size() != got.Rect.Size() {
		err.SizeDiffers = true
		return err
	}
	err.Want = want.Pix[at.Y*want.Stride+at.X]
	err.Got = got.Pix[at.Y*got.Stride+at.X]
	return err
}

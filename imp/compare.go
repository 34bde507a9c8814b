package imp

import "image"

// Equal returns true if both grayscale images have the same size and the
// same pixel values.
func Equal(a, b *image.Gray) bool {
	_, differ := FirstDiff(a, b)
	return !differ
}

// FirstDiff returns the offset (relative to the top-left corner) of the
// first pixel that differs between a and b, scanning rows top to bottom.
// Images of different sizes differ at (0, 0).
func FirstDiff(a, b *image.Gray) (image.Point, bool) {
	if a.Rect.Size() != b.Rect.Size() {
		return image.Point{}, true
	}

	w, h := a.Rect.Dx(), a.Rect.Dy()
	for y := 0; y < h; y++ {
		ra := a.Pix[y*a.Stride : y*a.Stride+w]
		rb := b.Pix[y*b.Stride : y*b.Stride+w]
		for x := range ra {
			if ra[x] != rb[x] {
				return image.Point{X: x, Y: y}, true
			}
		}
	}
	return image.Point{}, false
}

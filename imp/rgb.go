package imp

import (
	"errors"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// RGB is an in-memory image whose Pix holds interleaved 8-bit red, green and
// blue samples. The pixel at (x, y) starts at Pix[(y-Rect.Min.Y)*Stride +
// (x-Rect.Min.X)*3].
type RGB struct {
	Pix    []uint8
	Stride int
	Rect   image.Rectangle
}

// NewRGB returns a new, black RGB image with the given bounds.
func NewRGB(r image.Rectangle) *RGB {
	w, h := r.Dx(), r.Dy()
	return &RGB{
		Pix:    make([]uint8, 3*w*h),
		Stride: 3 * w,
		Rect:   r,
	}
}

func (p *RGB) ColorModel() color.Model { return color.RGBAModel }

func (p *RGB) Bounds() image.Rectangle { return p.Rect }

func (p *RGB) At(x, y int) color.Color {
	return p.RGBAt(x, y)
}

// RGBAt returns the opaque color at (x, y).
func (p *RGB) RGBAt(x, y int) color.RGBA {
	if !(image.Point{x, y}.In(p.Rect)) {
		return color.RGBA{}
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+3 : i+3]
	return color.RGBA{s[0], s[1], s[2], 0xff}
}

// PixOffset returns the index of the red sample of the pixel at (x, y).
func (p *RGB) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*3
}

// SetRGB sets the three samples of the pixel at (x, y).
func (p *RGB) SetRGB(x, y int, r, g, b uint8) {
	if !(image.Point{x, y}.In(p.Rect)) {
		return
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+3 : i+3]
	s[0], s[1], s[2] = r, g, b
}

// Validate checks that Pix and Stride are large enough to hold Rect.
func (p *RGB) Validate() error {
	w, h := p.Rect.Dx(), p.Rect.Dy()
	if w == 0 || h == 0 {
		return nil
	}
	if p.Stride < 3*w {
		return errors.New("stride is smaller than three samples per pixel")
	}
	if len(p.Pix) < (h-1)*p.Stride+3*w {
		return errors.New("pixel buffer is too small for the image bounds")
	}
	return nil
}

// FromImage converts any image to an RGB image of the same size, dropping
// the alpha channel. The result's bounds start at (0, 0).
func FromImage(src image.Image) *RGB {
	if dst, ok := src.(*RGB); ok {
		return dst
	}

	nrgba := imaging.Clone(src)
	w, h := nrgba.Rect.Dx(), nrgba.Rect.Dy()
	dst := NewRGB(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		s := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+4*w]
		d := dst.Pix[y*dst.Stride : y*dst.Stride+3*w]
		for x := 0; x < w; x++ {
			d[3*x] = s[4*x]
			d[3*x+1] = s[4*x+1]
			d[3*x+2] = s[4*x+2]
		}
	}
	return dst
}

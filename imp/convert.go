package imp

import (
	"image"
	"math"

	"gonum.org/v1/gonum/mat"
)

// lanes is the block width of the compiled converter.
const lanes = 8

// ToGray converts any image in a grayscale picture of the same size
func ToGray(src image.Image) *image.Gray {
	if dst, ok := src.(*image.Gray); ok {
		return dst
	}

	bounds := src.Bounds()
	dst := image.NewGray(bounds)
	model := dst.ColorModel()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			dst.Set(x, y, model.Convert(src.At(x, y)))
		}
	}
	return dst
}

// Vectorized converts an RGB image to grayscale using whole-matrix
// arithmetic: each channel becomes a dense matrix, the weighted sum is
// computed matrix-wide and rounded in a single pass.
func Vectorized(src *RGB) *image.Gray {
	dst := image.NewGray(src.Rect)
	if src.Rect.Empty() {
		return dst
	}

	r, g, b := planes(src)

	var lum, tmp mat.Dense
	lum.Scale(weightR, r)
	tmp.Scale(weightG, g)
	lum.Add(&lum, &tmp)
	tmp.Scale(weightB, b)
	lum.Add(&lum, &tmp)
	lum.Apply(func(_, _ int, v float64) float64 {
		return math.RoundToEven(v / weightScale)
	}, &lum)

	narrow(dst, &lum)
	return dst
}

// planes splits an RGB image into one matrix per channel.
func planes(src *RGB) (r, g, b *mat.Dense) {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	rs := make([]float64, w*h)
	gs := make([]float64, w*h)
	bs := make([]float64, w*h)
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+3*w]
		for x := 0; x < w; x++ {
			i := y*w + x
			rs[i] = float64(row[3*x])
			gs[i] = float64(row[3*x+1])
			bs[i] = float64(row[3*x+2])
		}
	}
	return mat.NewDense(h, w, rs), mat.NewDense(h, w, gs), mat.NewDense(h, w, bs)
}

// narrow stores a matrix of already rounded values into dst.
func narrow(dst *image.Gray, m *mat.Dense) {
	raw := m.RawMatrix()
	for y := 0; y < raw.Rows; y++ {
		s := raw.Data[y*raw.Stride : y*raw.Stride+raw.Cols]
		d := dst.Pix[y*dst.Stride : y*dst.Stride+raw.Cols]
		for x, v := range s {
			d[x] = uint8(v)
		}
	}
}

// Compiled converts an RGB image to grayscale in a single pass over the
// pixel buffer, lanes pixels at a time.
func Compiled(src *RGB) *image.Gray {
	dst := image.NewGray(src.Rect)
	w, h := src.Rect.Dx(), src.Rect.Dy()
	if w == 0 || h == 0 {
		return dst
	}

	if src.Stride == 3*w {
		span(src.Pix[:3*w*h], dst.Pix[:w*h])
		return dst
	}
	for y := 0; y < h; y++ {
		span(src.Pix[y*src.Stride:y*src.Stride+3*w], dst.Pix[y*dst.Stride:y*dst.Stride+w])
	}
	return dst
}

// span converts len(dst) contiguous pixels: full blocks first, then the tail.
func span(src, dst []uint8) {
	var acc [lanes]float64
	n := len(dst)
	i := 0
	for ; i+lanes <= n; i += lanes {
		s := src[3*i : 3*(i+lanes)]
		for l := range acc {
			acc[l] = weightR*float64(s[3*l]) + weightG*float64(s[3*l+1]) + weightB*float64(s[3*l+2])
		}
		d := dst[i : i+lanes]
		for l, v := range acc {
			d[l] = uint8(math.RoundToEven(v / weightScale))
		}
	}
	for ; i < n; i++ {
		dst[i] = luma(src[3*i], src[3*i+1], src[3*i+2])
	}
}

// CompiledLoop converts an RGB image to grayscale pixel by pixel.
func CompiledLoop(src *RGB) *image.Gray {
	dst := image.NewGray(src.Rect)

	rect := src.Rect
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			i := src.PixOffset(x, y)
			dst.Pix[dst.PixOffset(x, y)] = luma(src.Pix[i], src.Pix[i+1], src.Pix[i+2])
		}
	}
	return dst
}

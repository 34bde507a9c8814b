package imp

import (
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniform(w, h int, r, g, b uint8) *RGB {
	img := NewRGB(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGB(x, y, r, g, b)
		}
	}
	return img
}

func noise(w, h int, seed int64) *RGB {
	rng := rand.New(rand.NewSource(seed))
	img := NewRGB(image.Rect(0, 0, w, h))
	rng.Read(img.Pix)
	return img
}

func TestConvertersAgree(t *testing.T) {
	tests := []struct {
		name string
		img  *RGB
	}{
		{"1x1", uniform(1, 1, 12, 200, 99)},
		{"all zero", uniform(5, 3, 0, 0, 0)},
		{"all 255", uniform(3, 5, 255, 255, 255)},
		{"mid gray", uniform(4, 4, 128, 128, 128)},
		{"tie", uniform(9, 2, 0, 0, 250)},
		{"noise lanes", noise(16, 4, 1)},
		{"noise tail", noise(37, 23, 2)},
		{"single column", noise(1, 17, 3)},
		{"empty", NewRGB(image.Rect(0, 0, 0, 0))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := Vectorized(tt.img)
			for _, c := range Converters() {
				got := c.Convert(tt.img)
				require.Equal(t, tt.img.Rect.Size(), got.Rect.Size(), c.Name)
				assert.True(t, Equal(base, got), "%s differs from vectorized", c.Name)
			}
		})
	}
}

func TestConvertersAgreeOnEveryTie(t *testing.T) {
	// Every pixel of this image lands exactly on a half.
	var ties [][3]uint8
	for r := 0; r < 256; r += 3 {
		for g := 0; g < 256; g++ {
			for b := 0; b < 256; b++ {
				if (weightR*r+weightG*g+weightB*b)%weightScale == weightScale/2 {
					ties = append(ties, [3]uint8{uint8(r), uint8(g), uint8(b)})
				}
			}
		}
	}
	require.NotEmpty(t, ties)

	img := NewRGB(image.Rect(0, 0, len(ties), 1))
	for x, p := range ties {
		img.SetRGB(x, 0, p[0], p[1], p[2])
	}

	base := Vectorized(img)
	for x, p := range ties {
		n := weightR*int(p[0]) + weightG*int(p[1]) + weightB*int(p[2])
		want := n / weightScale
		if want%2 == 1 {
			want++
		}
		require.Equal(t, uint8(want), base.GrayAt(x, 0).Y, "pixel %v", p)
	}
	for _, c := range Converters() {
		assert.True(t, Equal(base, c.Convert(img)), c.Name)
	}
}

func TestRounding(t *testing.T) {
	tests := []struct {
		r, g, b uint8
		want    uint8
	}{
		{255, 0, 0, 76},      // 76.2195
		{0, 255, 0, 150},     // 149.685
		{0, 0, 255, 29},      // 29.07
		{128, 128, 128, 128}, // 127.9872
		{255, 255, 255, 255}, // 254.9745
		{0, 0, 0, 0},
		{0, 0, 250, 28},  // 28.5, ties to even
		{0, 12, 4, 8},    // 7.5
		{0, 36, 12, 22},  // 22.5
		{0, 18, 131, 26}, // 25.5
	}

	for _, tt := range tests {
		img := uniform(1, 1, tt.r, tt.g, tt.b)
		for _, c := range Converters() {
			got := c.Convert(img).GrayAt(0, 0).Y
			assert.Equal(t, tt.want, got, "%s(%d, %d, %d)", c.Name, tt.r, tt.g, tt.b)
		}
	}
}

func TestMidGray4x4(t *testing.T) {
	img := uniform(4, 4, 128, 128, 128)
	for _, c := range Converters() {
		got := c.Convert(img)
		require.Equal(t, image.Rect(0, 0, 4, 4), got.Bounds())
		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				assert.Equal(t, color.Gray{128}, got.GrayAt(x, y), c.Name)
			}
		}
	}
}

func TestConvertersHonorStrideAndOrigin(t *testing.T) {
	full := noise(20, 10, 4)
	sub := &RGB{
		Pix:    full.Pix[full.PixOffset(3, 2):],
		Stride: full.Stride,
		Rect:   image.Rect(3, 2, 14, 9),
	}
	require.NoError(t, sub.Validate())

	for _, c := range Converters() {
		got := c.Convert(sub)
		require.Equal(t, sub.Rect, got.Rect, c.Name)
		for y := sub.Rect.Min.Y; y < sub.Rect.Max.Y; y++ {
			for x := sub.Rect.Min.X; x < sub.Rect.Max.X; x++ {
				p := full.RGBAt(x, y)
				want := luma(p.R, p.G, p.B)
				require.Equal(t, want, got.GrayAt(x, y).Y, "%s at (%d, %d)", c.Name, x, y)
			}
		}
	}
}

func TestLumaMatchesIntegerRounding(t *testing.T) {
	for r := 0; r < 256; r += 17 {
		for g := 0; g < 256; g++ {
			for b := 0; b < 256; b++ {
				n := weightR*r + weightG*g + weightB*b
				want, rem := n/weightScale, n%weightScale
				if rem > weightScale/2 || (rem == weightScale/2 && want%2 == 1) {
					want++
				}
				if got := luma(uint8(r), uint8(g), uint8(b)); got != uint8(want) {
					t.Fatalf("luma(%d, %d, %d) = %d, want %d", r, g, b, got, want)
				}
			}
		}
	}
}

func TestCompiledIsRepeatable(t *testing.T) {
	img := noise(33, 7, 5)
	first := Compiled(img)
	assert.True(t, Equal(first, Compiled(img)))
	assert.True(t, Equal(first, CompiledLoop(img)))
}

func TestToGray(t *testing.T) {
	src := noise(6, 5, 7)
	g := ToGray(src)
	assert.Equal(t, src.Bounds(), g.Bounds())

	same := image.NewGray(image.Rect(0, 0, 2, 2))
	assert.Same(t, same, ToGray(same))
}

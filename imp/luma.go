package imp

import "math"

// Luminance weights, in ten-thousandths: 0.2989 R + 0.5870 G + 0.1140 B.
const (
	weightR     = 2989
	weightG     = 5870
	weightB     = 1140
	weightScale = 10000
)

// luma returns the luminance of a single pixel. The weighted sum is an exact
// integer in float64, whatever the evaluation order, so the only rounding
// step is the final RoundToEven.
func luma(r, g, b uint8) uint8 {
	v := weightR*float64(r) + weightG*float64(g) + weightB*float64(b)
	return uint8(math.RoundToEven(v / weightScale))
}

package hdu

import (
	"fmt"
	"image"
	"math"
)

// Scrub returns a copy of vals with every NaN and infinity replaced by zero,
// so later min/max arithmetic stays finite. The input is left untouched.
func Scrub(vals []float64) []float64 {
	out := make([]float64, len(vals))
	for i, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out[i] = v
	}
	return out
}

// Normalize stretches a grid to an 8-bit grayscale bitmap: the smallest
// scrubbed value maps to 0, the largest to 255, everything between scales
// linearly and rounds to the nearest integer. A flat grid (min equals max)
// comes back all zeros. The grid itself is never modified.
func Normalize(g *Grid) (*image.Gray, error) {
	if g == nil {
		return nil, fmt.Errorf("no image data")
	}
	if g.Width <= 0 || g.Height <= 0 {
		return nil, fmt.Errorf("grid is %dx%d, want positive dimensions", g.Width, g.Height)
	}
	if len(g.Pix) != g.Width*g.Height {
		return nil, fmt.Errorf("grid holds %d samples, want %d", len(g.Pix), g.Width*g.Height)
	}

	vals := Scrub(g.Pix)
	min, max := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	out := image.NewGray(image.Rect(0, 0, g.Width, g.Height))
	if min == max {
		return out, nil // NewGray is already all zeros
	}

	scale := 255 / (max - min)
	for i, v := range vals {
		p := math.Round((v - min) * scale)
		if p < 0 {
			p = 0
		} else if p > 255 {
			p = 255
		}
		out.Pix[i] = uint8(p)
	}
	return out, nil
}

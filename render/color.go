package render

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/slidescan/slidescan/geometry"
)

// inkLuminanceCutoff separates text pixels from paper. Pixels darker than
// this (CIE L* in [0,1]) are treated as ink.
const inkLuminanceCutoff = 0.55

// InkColor estimates the text color inside a region of the page by averaging
// the pixels dark enough to be ink. It returns a "#rrggbb" hex string and
// true when the region contained ink pixels; otherwise black and false.
//
// The estimate lets a written text run approximate the page's original ink
// color instead of defaulting to black on every slide.
func (p Page) InkColor(region geometry.Rect) (string, bool) {
	bounds := p.Image.Bounds()

	x0 := clamp(region.Left, bounds.Min.X, bounds.Max.X)
	y0 := clamp(region.Top, bounds.Min.Y, bounds.Max.Y)
	x1 := clamp(region.Right(), bounds.Min.X, bounds.Max.X)
	y1 := clamp(region.Bottom(), bounds.Min.Y, bounds.Max.Y)

	var sumL, sumA, sumB float64
	var count int

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c, ok := colorful.MakeColor(p.Image.At(x, y))
			if !ok {
				continue
			}
			l, a, b := c.Lab()
			if l >= inkLuminanceCutoff {
				continue
			}
			sumL += l
			sumA += a
			sumB += b
			count++
		}
	}

	if count == 0 {
		return "#000000", false
	}

	avg := colorful.Lab(sumL/float64(count), sumA/float64(count), sumB/float64(count)).Clamped()
	return avg.Hex(), true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

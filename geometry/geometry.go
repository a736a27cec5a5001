// Package geometry provides coordinate conversion between pixel space and
// EMUs (English Metric Units), the device-independent unit used by
// presentation formats, plus the pixel rectangle type shared by the rest of
// the library.
//
// Conversions use truncating integer division throughout. Round-trips
// through PxToEMU and EMUToPx are therefore not exact inverses; whole-inch
// values convert without loss.
package geometry

import "errors"

// EMUPerInch is the number of English Metric Units in one inch.
const EMUPerInch = 914400

// Standard 4:3 slide dimensions, for reference.
const (
	StandardSlideWidthEMU  = 9144000 // 10 inches
	StandardSlideHeightEMU = 6858000 // 7.5 inches
)

// ErrZeroHeight is returned by AspectRatio when the height is zero.
var ErrZeroHeight = errors.New("geometry: height cannot be zero")

// PxToEMU converts a pixel measurement at the given resolution to EMUs.
// The result is truncated toward zero. A non-positive dpi is a domain-invalid
// resolution and converts to zero, never a silent overflow.
func PxToEMU(pixels, dpi int) int {
	if dpi <= 0 {
		return 0
	}
	inches := float64(pixels) / float64(dpi)
	return int(inches * EMUPerInch)
}

// EMUToPx converts an EMU measurement to pixels at the given resolution.
// The result is truncated toward zero. A non-positive dpi converts to zero.
func EMUToPx(emu, dpi int) int {
	if dpi <= 0 {
		return 0
	}
	inches := float64(emu) / EMUPerInch
	return int(inches * float64(dpi))
}

// SlideDimensions calculates slide dimensions in EMUs from an image's pixel
// size. Width and height are converted independently, so the slide keeps the
// image's aspect ratio up to truncation error. This is the only path by
// which canvas size is derived.
func SlideDimensions(imageWidthPx, imageHeightPx, dpi int) (widthEMU, heightEMU int) {
	return PxToEMU(imageWidthPx, dpi), PxToEMU(imageHeightPx, dpi)
}

// Rescale scales a box between resolutions. Each value is multiplied by
// targetDPI/sourceDPI and truncated. A non-positive source resolution scales
// everything to zero. The default pipeline never mixes resolutions, but
// detections captured at one DPI can be mapped onto a page rendered at
// another.
func Rescale(x, y, width, height, sourceDPI, targetDPI int) (int, int, int, int) {
	if sourceDPI <= 0 {
		return 0, 0, 0, 0
	}
	scale := float64(targetDPI) / float64(sourceDPI)
	return int(float64(x) * scale),
		int(float64(y) * scale),
		int(float64(width) * scale),
		int(float64(height) * scale)
}

// AspectRatio returns width/height. A zero height is a domain error, never a
// silent infinity.
func AspectRatio(width, height int) (float64, error) {
	if height == 0 {
		return 0, ErrZeroHeight
	}
	return float64(width) / float64(height), nil
}

// Rect is an axis-aligned rectangle in pixel coordinates with the origin in
// the upper-left corner of the image.
type Rect struct {
	Left   int
	Top    int
	Width  int
	Height int
}

// Right returns the right edge X coordinate.
func (r Rect) Right() int {
	return r.Left + r.Width
}

// Bottom returns the bottom edge Y coordinate.
func (r Rect) Bottom() int {
	return r.Top + r.Height
}

// CenterX returns the center X coordinate.
func (r Rect) CenterX() int {
	return r.Left + r.Width/2
}

// CenterY returns the center Y coordinate.
func (r Rect) CenterY() int {
	return r.Top + r.Height/2
}

// IsEmpty reports whether the rectangle has non-positive dimensions.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether other lies entirely within r.
func (r Rect) Contains(other Rect) bool {
	return other.Left >= r.Left && other.Right() <= r.Right() &&
		other.Top >= r.Top && other.Bottom() <= r.Bottom()
}

// Union returns the smallest rectangle covering both r and other.
func (r Rect) Union(other Rect) Rect {
	left := min(r.Left, other.Left)
	top := min(r.Top, other.Top)
	right := max(r.Right(), other.Right())
	bottom := max(r.Bottom(), other.Bottom())
	return Rect{Left: left, Top: top, Width: right - left, Height: bottom - top}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// ToEMU converts the rectangle's position and size to EMUs at the given
// resolution.
func (r Rect) ToEMU(dpi int) (left, top, width, height int) {
	return PxToEMU(r.Left, dpi), PxToEMU(r.Top, dpi),
		PxToEMU(r.Width, dpi), PxToEMU(r.Height, dpi)
}

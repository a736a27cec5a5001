package render

import (
	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/effect"
)

// PreprocessConfig holds configuration for OCR preprocessing.
type PreprocessConfig struct {
	// Grayscale converts the page to grayscale before recognition.
	Grayscale bool

	// Contrast adjusts contrast by the given amount (-1 to 1, 0 = no
	// change). Low-contrast scans often recognize better with a small
	// positive boost.
	Contrast float64

	// Sharpen applies a sharpening pass, which can recover thin strokes
	// from slightly blurred renders.
	Sharpen bool
}

// DefaultPreprocessConfig returns the configuration used when preprocessing
// is enabled without further tuning.
func DefaultPreprocessConfig() PreprocessConfig {
	return PreprocessConfig{
		Grayscale: true,
		Contrast:  0.15,
	}
}

// Preprocess returns a copy of the page with the configured adjustments
// applied, for OCR input only. The original image is kept for the slide
// background, so preprocessing never affects visual output.
func (p Page) Preprocess(config PreprocessConfig) Page {
	img := p.Image

	if config.Grayscale {
		img = effect.Grayscale(img)
	}
	if config.Contrast != 0 {
		img = adjust.Contrast(img, config.Contrast)
	}
	if config.Sharpen {
		img = effect.Sharpen(img)
	}

	return Page{Image: img, DPI: p.DPI, Name: p.Name}
}

package slidescan

import (
	"github.com/slidescan/slidescan/layout"
	"github.com/slidescan/slidescan/pptx"
	"github.com/slidescan/slidescan/render"
)

// Progress carries the conversion progress callbacks. Every field is
// optional; nil callbacks are skipped. Callbacks run synchronously on the
// conversion goroutine, so long-running handlers slow the conversion down.
type Progress struct {
	// PageStarted fires before a page's detection and grouping work.
	PageStarted func(pageIndex int, name string)

	// BlockPlaced fires after each text block is converted and queued for
	// placement on its slide.
	BlockPlaced func(pageIndex, blockIndex int, block layout.TextBlock)

	// PageDone fires after a page's slide has been assembled.
	PageDone func(pageIndex, blockCount int)
}

// convertOptions holds the converter configuration.
type convertOptions struct {
	languages              string
	confidenceThreshold    float64
	lineMergeThresholdPx   int
	paragraphGapMultiplier float64
	preprocess             *render.PreprocessConfig
	sampleInkColor         bool
	font                   pptx.Config
	progress               Progress
}

// defaultOptions returns the default conversion options.
func defaultOptions() convertOptions {
	return convertOptions{
		languages:              "eng",
		confidenceThreshold:    layout.DefaultFilterConfig().ConfidenceThreshold,
		lineMergeThresholdPx:   layout.DefaultLineConfig().MergeThresholdPx,
		paragraphGapMultiplier: layout.DefaultBlockConfig().GapMultiplier,
		preprocess:             nil,
		sampleInkColor:         false,
		font:                   pptx.DefaultConfig(),
	}
}

// Languages sets the OCR language string (e.g., "jpn+eng").
func (c *Converter) Languages(langs string) *Converter {
	c.options.languages = langs
	return c
}

// ConfidenceThreshold sets the minimum word confidence (0-100) kept by the
// word filter.
func (c *Converter) ConfidenceThreshold(threshold float64) *Converter {
	c.options.confidenceThreshold = threshold
	return c
}

// LineMergeThreshold sets the vertical distance in pixels within which words
// are grouped onto one line.
func (c *Converter) LineMergeThreshold(px int) *Converter {
	c.options.lineMergeThresholdPx = px
	return c
}

// ParagraphGapMultiplier sets the line-height multiplier used to detect
// paragraph breaks.
func (c *Converter) ParagraphGapMultiplier(multiplier float64) *Converter {
	c.options.paragraphGapMultiplier = multiplier
	return c
}

// Preprocess enables image preprocessing before OCR. The slide background
// always remains the unprocessed page.
func (c *Converter) Preprocess(config render.PreprocessConfig) *Converter {
	c.options.preprocess = &config
	return c
}

// SampleInkColor colors each text box with the ink color sampled from its
// region of the page image, instead of the default text color.
func (c *Converter) SampleInkColor() *Converter {
	c.options.sampleInkColor = true
	return c
}

// Font sets the text formatting used for written text boxes.
func (c *Converter) Font(config pptx.Config) *Converter {
	c.options.font = config
	return c
}

// Progress registers progress callbacks.
func (c *Converter) Progress(p Progress) *Converter {
	c.options.progress = p
	return c
}

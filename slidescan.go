// Package slidescan converts scanned or rendered document pages into slide
// decks with editable, positioned text.
//
// For every page image, word-level OCR detections are filtered, clustered
// into lines and paragraphs, and placed as transparent text boxes over the
// page image on a slide of matching aspect ratio.
//
// Basic usage:
//
//	pages, err := render.LoadDir("pages/", 300)
//	if err != nil {
//	    // handle error
//	}
//	client, err := ocr.New()
//	if err != nil {
//	    // handle error (OCR requires the "ocr" build tag and Tesseract)
//	}
//	defer client.Close()
//
//	err = slidescan.New().
//	    Languages("jpn+eng").
//	    Convert(ctx, pages, slidescan.TesseractSource(client), "out.pptx")
//
// With tuning:
//
//	conv := slidescan.New().
//	    ConfidenceThreshold(60).
//	    LineMergeThreshold(14).
//	    ParagraphGapMultiplier(1.2).
//	    Preprocess(render.DefaultPreprocessConfig())
//
// The lower-level layout, geometry, render, hocr, and pptx packages are also
// available for callers that need only part of the pipeline.
package slidescan

import (
	"github.com/slidescan/slidescan/layout"
	"github.com/slidescan/slidescan/ocr"
	"github.com/slidescan/slidescan/render"
)

// WordSource produces the word detections for a page. Implementations wrap
// an OCR engine or a pre-computed detection set; the conversion loop treats
// a source error as "zero words for this page" rather than failing the
// document, since single unreadable pages are routine in scanned input.
type WordSource interface {
	DetectWords(page render.Page) ([]ocr.Word, error)
}

// Converter drives the page conversion pipeline. Construct with New and
// configure with the fluent setters; a Converter is safe to reuse across
// documents but not to reconfigure concurrently with a running conversion.
type Converter struct {
	options convertOptions
}

// New creates a Converter with default options.
func New() *Converter {
	return &Converter{options: defaultOptions()}
}

// tesseractSource adapts an ocr.Client to the WordSource interface.
type tesseractSource struct {
	client     *ocr.Client
	preprocess *render.PreprocessConfig
}

// TesseractSource returns a WordSource backed by an OCR client. When the
// converter has preprocessing enabled, the preprocessed copy is what the
// engine sees; the original page still becomes the slide background.
func TesseractSource(client *ocr.Client) WordSource {
	return &tesseractSource{client: client}
}

func (s *tesseractSource) DetectWords(page render.Page) ([]ocr.Word, error) {
	if s.preprocess != nil {
		page = page.Preprocess(*s.preprocess)
	}

	data, err := page.EncodePNG()
	if err != nil {
		return nil, err
	}
	if page.DPI > 0 {
		if err := s.client.SetDPI(page.DPI); err != nil {
			return nil, err
		}
	}
	return s.client.DetectWords(data)
}

// staticSource serves pre-computed detections, page by page.
type staticSource struct {
	pages [][]ocr.Word
	next  int
}

// StaticSource returns a WordSource that yields the given detection lists in
// order, one per page, then empty lists. It serves detections parsed from
// hOCR files and is also the natural seam for tests.
func StaticSource(pages [][]ocr.Word) WordSource {
	return &staticSource{pages: pages}
}

func (s *staticSource) DetectWords(render.Page) ([]ocr.Word, error) {
	if s.next >= len(s.pages) {
		return nil, nil
	}
	words := s.pages[s.next]
	s.next++
	return words, nil
}

// PageBlocks runs the grouping pipeline for one page's detections: filter,
// line clustering, block clustering. It is pure given its input and never
// fails; pages with no usable words yield an empty block list.
func (c *Converter) PageBlocks(words []ocr.Word) []layout.TextBlock {
	filtered := layout.NewWordFilterWithConfig(layout.FilterConfig{
		ConfidenceThreshold: c.options.confidenceThreshold,
	}).Filter(words)

	lines := layout.NewLineDetectorWithConfig(layout.LineConfig{
		MergeThresholdPx: c.options.lineMergeThresholdPx,
	}).Detect(filtered)

	return layout.NewBlockDetectorWithConfig(layout.BlockConfig{
		GapMultiplier: c.options.paragraphGapMultiplier,
	}).Detect(lines)
}

// Package ocr provides word-level text detection for scanned page images.
//
// The package wraps the Tesseract OCR engine via gosseract. It requires
// Tesseract to be installed on the system and the "ocr" build tag to be set:
//
//	go build -tags ocr
//
// Without the tag a stub client is compiled in and all engine operations
// return ErrOCRNotEnabled. The Word model itself has no engine dependency
// and is always available; detections can also come from other sources such
// as the hocr package.
package ocr

import "github.com/slidescan/slidescan/geometry"

// Word is a single detected token on a page image. Words are ephemeral:
// they are produced fresh per page and discarded after grouping.
type Word struct {
	// Text is the recognized token, as reported by the engine.
	Text string

	// Box is the word's bounding box in pixel coordinates.
	Box geometry.Rect

	// Conf is the recognition confidence in [0, 100].
	Conf float64

	// Structural marks rows that describe page structure (blocks, columns,
	// whitespace) rather than recognized words. Engines that report
	// structure inline flag it here instead of using a sentinel confidence.
	Structural bool
}

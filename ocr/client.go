//go:build ocr

package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/slidescan/slidescan/geometry"
)

// Client wraps Tesseract for word-level detection.
type Client struct {
	client *gosseract.Client
}

// New creates a new OCR client. The client should be closed when no longer
// needed to release resources.
func New() (*Client, error) {
	client := gosseract.NewClient()
	return &Client{client: client}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// SetLanguages sets the language(s) for recognition. Multiple languages are
// given as a "+" separated string (e.g., "jpn+eng"). Default is "eng".
func (c *Client) SetLanguages(langs string) error {
	parts := strings.Split(langs, "+")
	return c.client.SetLanguage(parts...)
}

// SetPageSegMode sets the page segmentation mode. This affects how Tesseract
// analyzes the page layout. See gosseract.PageSegMode constants.
func (c *Client) SetPageSegMode(mode gosseract.PageSegMode) error {
	return c.client.SetPageSegMode(mode)
}

// SetDPI declares the resolution of subsequent images. Tesseract uses it for
// scaling and layout heuristics.
func (c *Client) SetDPI(dpi int) error {
	return c.client.SetVariable(gosseract.SettableVariable("user_defined_dpi"), fmt.Sprint(dpi))
}

// DetectWords performs OCR on encoded image data (PNG, TIFF, JPEG, etc.) and
// returns every recognized word with its pixel bounding box and confidence.
// Word order is not significant; the layout package re-sorts.
func (c *Client) DetectWords(imageData []byte) ([]Word, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := c.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	words := make([]Word, 0, len(boxes))
	for _, b := range boxes {
		words = append(words, Word{
			Text: b.Word,
			Box: geometry.Rect{
				Left:   b.Box.Min.X,
				Top:    b.Box.Min.Y,
				Width:  b.Box.Dx(),
				Height: b.Box.Dy(),
			},
			Conf: b.Confidence,
		})
	}

	return words, nil
}

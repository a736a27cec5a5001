package layout

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/slidescan/slidescan/ocr"
)

// FilterConfig holds configuration for word filtering.
type FilterConfig struct {
	// ConfidenceThreshold is the minimum recognition confidence (0-100) a
	// word must have to survive filtering (default: 40).
	ConfidenceThreshold float64
}

// DefaultFilterConfig returns sensible default configuration.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		ConfidenceThreshold: 40,
	}
}

// WordFilter reduces a raw detection list to the words worth keeping.
type WordFilter struct {
	config FilterConfig
}

// NewWordFilter creates a word filter with default configuration.
func NewWordFilter() *WordFilter {
	return &WordFilter{
		config: DefaultFilterConfig(),
	}
}

// NewWordFilterWithConfig creates a word filter with custom configuration.
func NewWordFilterWithConfig(config FilterConfig) *WordFilter {
	return &WordFilter{
		config: config,
	}
}

// Filter returns the words that survive filtering. A word is dropped when it
// is a structural row, when its text is empty after trimming surrounding
// whitespace, or when its confidence is below the configured threshold.
// Surviving text is trimmed and NFC-normalized; OCR engines can emit
// decomposed sequences for accented and CJK text.
//
// Filtering never fails: noise rows are dropped, not reported. The order of
// surviving words is not significant, the line detector re-sorts.
func (f *WordFilter) Filter(words []ocr.Word) []ocr.Word {
	if len(words) == 0 {
		return nil
	}

	kept := make([]ocr.Word, 0, len(words))
	for _, w := range words {
		if w.Structural {
			continue
		}

		text := strings.TrimSpace(w.Text)
		if text == "" {
			continue
		}

		if w.Conf < f.config.ConfidenceThreshold {
			continue
		}

		w.Text = norm.NFC.String(text)
		kept = append(kept, w)
	}

	if len(kept) == 0 {
		return nil
	}
	return kept
}

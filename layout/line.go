package layout

import (
	"sort"
	"strings"

	"github.com/slidescan/slidescan/geometry"
	"github.com/slidescan/slidescan/ocr"
)

// Line represents a single visual line of text on a page.
type Line struct {
	// Words are the words that make up this line, sorted left to right.
	Words []ocr.Word
}

// Text returns the line's content with words joined by single spaces.
func (l Line) Text() string {
	parts := make([]string, len(l.Words))
	for i, w := range l.Words {
		parts[i] = w.Text
	}
	return strings.Join(parts, " ")
}

// Box returns the tightest rectangle covering every word in the line.
func (l Line) Box() geometry.Rect {
	if len(l.Words) == 0 {
		return geometry.Rect{}
	}
	box := l.Words[0].Box
	for _, w := range l.Words[1:] {
		box = box.Union(w.Box)
	}
	return box
}

// MinTop returns the smallest top coordinate over the line's words.
func (l Line) MinTop() int {
	top := l.Words[0].Box.Top
	for _, w := range l.Words[1:] {
		if w.Box.Top < top {
			top = w.Box.Top
		}
	}
	return top
}

// MaxBottom returns the largest bottom coordinate over the line's words.
func (l Line) MaxBottom() int {
	bottom := l.Words[0].Box.Bottom()
	for _, w := range l.Words[1:] {
		if b := w.Box.Bottom(); b > bottom {
			bottom = b
		}
	}
	return bottom
}

// AverageWordHeight returns the mean pixel height of the line's words.
func (l Line) AverageWordHeight() float64 {
	if len(l.Words) == 0 {
		return 0
	}
	total := 0
	for _, w := range l.Words {
		total += w.Box.Height
	}
	return float64(total) / float64(len(l.Words))
}

// LineConfig holds configuration for line detection.
type LineConfig struct {
	// MergeThresholdPx is the vertical distance in pixels within which a
	// word is considered to belong to the line being built (default: 10).
	MergeThresholdPx int
}

// DefaultLineConfig returns sensible default configuration.
func DefaultLineConfig() LineConfig {
	return LineConfig{
		MergeThresholdPx: 10,
	}
}

// LineDetector clusters words into horizontal lines.
type LineDetector struct {
	config LineConfig
}

// NewLineDetector creates a line detector with default configuration.
func NewLineDetector() *LineDetector {
	return &LineDetector{
		config: DefaultLineConfig(),
	}
}

// NewLineDetectorWithConfig creates a line detector with custom configuration.
func NewLineDetectorWithConfig(config LineConfig) *LineDetector {
	return &LineDetector{
		config: config,
	}
}

// Detect groups words into lines by vertical proximity.
//
// Words are sorted by (top, left) and walked in order. The first word
// assigned to a line fixes that line's anchor; a word joins the current line
// while |word.top - anchor| < MergeThresholdPx, otherwise it starts a new
// line and becomes the new anchor. Membership is always tested against the
// anchor, never a running average, so tops within a line may drift up to the
// threshold away from the anchor yet farther than that from each other.
// Downstream grouping boundaries depend on this policy.
//
// Each finished line is re-sorted by left edge into reading order. The
// returned lines keep walk order, top to bottom.
func (d *LineDetector) Detect(words []ocr.Word) []Line {
	if len(words) == 0 {
		return nil
	}

	sorted := make([]ocr.Word, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Box.Top != sorted[j].Box.Top {
			return sorted[i].Box.Top < sorted[j].Box.Top
		}
		return sorted[i].Box.Left < sorted[j].Box.Left
	})

	var lines []Line
	current := []ocr.Word{sorted[0]}
	anchor := sorted[0].Box.Top

	for _, w := range sorted[1:] {
		if abs(w.Box.Top-anchor) < d.config.MergeThresholdPx {
			current = append(current, w)
		} else {
			lines = append(lines, finishLine(current))
			current = []ocr.Word{w}
			anchor = w.Box.Top
		}
	}

	// Don't forget the last line.
	lines = append(lines, finishLine(current))

	return lines
}

// finishLine sorts a line's words into reading order.
func finishLine(words []ocr.Word) Line {
	sort.SliceStable(words, func(i, j int) bool {
		return words[i].Box.Left < words[j].Box.Left
	})
	return Line{Words: words}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

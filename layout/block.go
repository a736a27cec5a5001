package layout

import (
	"strings"

	"github.com/slidescan/slidescan/geometry"
)

// TextBlock is one or more lines merged into a single positioned text
// region. A block is complete once returned: its box always encloses every
// contributing word.
type TextBlock struct {
	// Text is the block content. Words within a line are joined by single
	// spaces; lines are joined by "\n".
	Text string

	// Box is the tightest rectangle covering every word in the block.
	Box geometry.Rect

	// Confidence is the arithmetic mean of the confidences of all words
	// merged into the block.
	Confidence float64
}

// BlockConfig holds configuration for block detection.
type BlockConfig struct {
	// GapMultiplier scales the previous line's average word height to form
	// the paragraph-break threshold: a line starts a new block when the
	// vertical gap to the previous line is at least avgHeight*GapMultiplier
	// (default: 1.5).
	GapMultiplier float64
}

// DefaultBlockConfig returns sensible default configuration.
func DefaultBlockConfig() BlockConfig {
	return BlockConfig{
		GapMultiplier: 1.5,
	}
}

// BlockDetector clusters consecutive lines into text blocks.
type BlockDetector struct {
	config BlockConfig
}

// NewBlockDetector creates a block detector with default configuration.
func NewBlockDetector() *BlockDetector {
	return &BlockDetector{
		config: DefaultBlockConfig(),
	}
}

// NewBlockDetectorWithConfig creates a block detector with custom configuration.
func NewBlockDetectorWithConfig(config BlockConfig) *BlockDetector {
	return &BlockDetector{
		config: config,
	}
}

// Detect walks lines in order and merges runs of closely spaced lines into
// blocks. For each line after the first, the gap from the previous line
// (current minTop minus previous maxBottom) is compared against the previous
// line's average word height times GapMultiplier: a smaller gap joins the
// line to the current block, a larger one closes the block and starts a new
// one. The gap may be negative when boxes overlap; negative gaps always
// merge. The final block is always closed, even when only one line long.
func (d *BlockDetector) Detect(lines []Line) []TextBlock {
	if len(lines) == 0 {
		return nil
	}

	var blocks []TextBlock
	current := []Line{lines[0]}

	for i := 1; i < len(lines); i++ {
		prev := lines[i-1]
		curr := lines[i]

		threshold := prev.AverageWordHeight() * d.config.GapMultiplier
		gap := curr.MinTop() - prev.MaxBottom()

		if float64(gap) < threshold {
			current = append(current, curr)
		} else {
			blocks = append(blocks, mergeLines(current))
			current = []Line{curr}
		}
	}

	// Don't forget the last block.
	blocks = append(blocks, mergeLines(current))

	return blocks
}

// mergeLines combines lines into a single TextBlock with the tightest
// bounding box over all words and the flat mean confidence across every
// word, not a mean of per-line means.
func mergeLines(lines []Line) TextBlock {
	texts := make([]string, len(lines))
	for i, line := range lines {
		texts[i] = line.Text()
	}

	box := lines[0].Box()
	var confSum float64
	var wordCount int
	for _, line := range lines {
		box = box.Union(line.Box())
		for _, w := range line.Words {
			confSum += w.Conf
			wordCount++
		}
	}

	return TextBlock{
		Text:       strings.Join(texts, "\n"),
		Box:        box,
		Confidence: confSum / float64(wordCount),
	}
}

package layout

import (
	"reflect"
	"strings"
	"testing"

	"github.com/slidescan/slidescan/ocr"
)

// makeLine builds a line directly for block tests.
func makeLine(words ...ocr.Word) Line {
	return Line{Words: words}
}

func TestBlockDetector_Empty(t *testing.T) {
	detector := NewBlockDetector()
	if got := detector.Detect(nil); got != nil {
		t.Errorf("Detect(nil) = %v, want nil", got)
	}
}

func TestBlockDetector_SingleLine(t *testing.T) {
	detector := NewBlockDetector()
	lines := []Line{makeLine(makeWord("Hello", 0, 0, 50, 20, 90))}

	blocks := detector.Detect(lines)

	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Text != "Hello" {
		t.Errorf("Text = %q, want %q", blocks[0].Text, "Hello")
	}
}

func TestBlockDetector_LargeGapSplits(t *testing.T) {
	// Previous line: height 20, bottom 20. Threshold = 20 * 1.5 = 30.
	// Current line top 60 gives gap 40, which is not below the threshold, so
	// the lines land in separate blocks.
	detector := NewBlockDetector()
	lines := []Line{
		makeLine(makeWord("above", 0, 0, 50, 20, 90)),
		makeLine(makeWord("below", 0, 60, 50, 20, 90)),
	}

	blocks := detector.Detect(lines)

	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].Text != "above" || blocks[1].Text != "below" {
		t.Errorf("unexpected block texts: %q, %q", blocks[0].Text, blocks[1].Text)
	}
}

func TestBlockDetector_SmallGapMerges(t *testing.T) {
	// Same as above but current line top 40: gap 20 < threshold 30, so the
	// lines merge into one block joined by a line break.
	detector := NewBlockDetector()
	lines := []Line{
		makeLine(makeWord("above", 0, 0, 50, 20, 90)),
		makeLine(makeWord("below", 0, 40, 50, 20, 90)),
	}

	blocks := detector.Detect(lines)

	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Text != "above\nbelow" {
		t.Errorf("Text = %q, want %q", blocks[0].Text, "above\nbelow")
	}
	if !strings.Contains(blocks[0].Text, "\n") {
		t.Error("merged block must contain a line break")
	}
}

func TestBlockDetector_NegativeGapAlwaysMerges(t *testing.T) {
	// Overlapping boxes produce a negative gap, which always merges.
	detector := NewBlockDetector()
	lines := []Line{
		makeLine(makeWord("over", 0, 0, 50, 20, 90)),
		makeLine(makeWord("lap", 0, 15, 50, 20, 90)),
	}

	blocks := detector.Detect(lines)

	if len(blocks) != 1 {
		t.Fatalf("expected 1 block for overlapping lines, got %d", len(blocks))
	}
}

func TestBlockDetector_ThresholdUsesPreviousLineHeight(t *testing.T) {
	// A tall previous line tolerates a wide gap; a short one does not.
	detector := NewBlockDetector()

	tall := []Line{
		makeLine(makeWord("headline", 0, 0, 200, 40, 90)), // threshold 60
		makeLine(makeWord("next", 0, 90, 50, 20, 90)),     // gap 50 < 60
	}
	if blocks := detector.Detect(tall); len(blocks) != 1 {
		t.Errorf("tall previous line: expected 1 block, got %d", len(blocks))
	}

	short := []Line{
		makeLine(makeWord("small", 0, 0, 50, 10, 90)), // threshold 15
		makeLine(makeWord("next", 0, 60, 50, 20, 90)), // gap 50 >= 15
	}
	if blocks := detector.Detect(short); len(blocks) != 2 {
		t.Errorf("short previous line: expected 2 blocks, got %d", len(blocks))
	}
}

func TestBlockDetector_FinalBlockAlwaysClosed(t *testing.T) {
	detector := NewBlockDetector()
	lines := []Line{
		makeLine(makeWord("first", 0, 0, 50, 20, 90)),
		makeLine(makeWord("far", 0, 200, 50, 20, 90)),
	}

	blocks := detector.Detect(lines)
	if len(blocks) != 2 {
		t.Fatalf("expected trailing block to be emitted, got %d blocks", len(blocks))
	}
	if blocks[1].Text != "far" {
		t.Errorf("trailing block = %q, want %q", blocks[1].Text, "far")
	}
}

func TestBlockDetector_BoxEnclosesEveryWord(t *testing.T) {
	detector := NewBlockDetector()
	lines := []Line{
		makeLine(
			makeWord("wide", 5, 0, 300, 22, 90),
			makeWord("line", 320, 2, 60, 18, 85),
		),
		makeLine(makeWord("narrow", 40, 30, 80, 20, 92)),
	}

	blocks := detector.Detect(lines)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}

	block := blocks[0]
	for _, line := range lines {
		for _, w := range line.Words {
			if !block.Box.Contains(w.Box) {
				t.Errorf("block box %+v does not contain word %q box %+v", block.Box, w.Text, w.Box)
			}
		}
	}
}

func TestBlockDetector_ConfidenceIsFlatWordMean(t *testing.T) {
	// Lines of unequal word counts: the mean must run over every word, not
	// over per-line means. Three words at 90, 90, 60 average 80; a
	// mean-of-means would give 82.5.
	detector := NewBlockDetector()
	lines := []Line{
		makeLine(
			makeWord("two", 0, 0, 40, 20, 90),
			makeWord("words", 50, 0, 40, 20, 90),
		),
		makeLine(makeWord("one", 0, 25, 40, 20, 60)),
	}

	blocks := detector.Detect(lines)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Confidence != 80 {
		t.Errorf("Confidence = %v, want 80 (flat mean)", blocks[0].Confidence)
	}
}

func TestPipeline_Deterministic(t *testing.T) {
	// The full filter -> line -> block pipeline run twice on identical input
	// must yield identical block sequences.
	words := []ocr.Word{
		makeWord("Grouping", 12, 8, 110, 24, 91),
		makeWord("words", 130, 10, 70, 22, 88),
		makeWord("into", 208, 9, 50, 23, 93),
		makeWord("blocks", 12, 40, 85, 24, 90),
		makeWord("Second", 12, 150, 95, 24, 87),
		makeWord("paragraph", 115, 152, 120, 22, 89),
		makeWord("", 0, 0, 5, 5, 90),
		makeWord("noise", 300, 300, 20, 10, 12),
	}

	run := func() []TextBlock {
		filtered := NewWordFilter().Filter(words)
		lines := NewLineDetector().Detect(filtered)
		return NewBlockDetector().Detect(lines)
	}

	first := run()
	second := run()

	if !reflect.DeepEqual(first, second) {
		t.Errorf("pipeline is not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
	if len(first) != 2 {
		t.Errorf("expected 2 blocks from the scenario, got %d", len(first))
	}
}

package hocr

import (
	"strings"
	"testing"

	"github.com/slidescan/slidescan/layout"
)

const sampleHOCR = `<!DOCTYPE html>
<html>
<body>
 <div class='ocr_page' id='page_1' title='image "p1.png"; bbox 0 0 3000 2250; ppageno 0'>
  <div class='ocr_carea' id='block_1_1' title='bbox 100 100 900 400'>
   <p class='ocr_par' id='par_1_1' title='bbox 100 100 900 400'>
    <span class='ocr_line' id='line_1_1' title='bbox 100 100 900 160; baseline 0 -10'>
     <span class='ocrx_word' id='word_1_1' title='bbox 100 100 350 160; x_wconf 96'>Quarterly</span>
     <span class='ocrx_word' id='word_1_2' title='bbox 370 102 640 158; x_wconf 93'>Results</span>
    </span>
    <span class='ocr_line' id='line_1_2' title='bbox 100 180 700 240'>
     <span class='ocrx_word' id='word_1_3' title='bbox 100 180 400 240; x_wconf 88'>Revenue</span>
     <span class='ocrx_word' id='word_1_4' title='bbox 420 182 700 238; x_wconf 17'>smudged</span>
    </span>
   </p>
  </div>
 </div>
</body>
</html>`

func TestParse(t *testing.T) {
	words, err := Parse(strings.NewReader(sampleHOCR))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	// 1 page + 1 area + 1 paragraph + 2 lines structural, 4 words.
	var structural, real int
	for _, w := range words {
		if w.Structural {
			structural++
		} else {
			real++
		}
	}
	if structural != 5 {
		t.Errorf("structural rows = %d, want 5", structural)
	}
	if real != 4 {
		t.Errorf("word rows = %d, want 4", real)
	}
}

func TestParse_WordFields(t *testing.T) {
	words, err := Parse(strings.NewReader(sampleHOCR))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	var first *struct {
		text string
		conf float64
	}
	for _, w := range words {
		if !w.Structural {
			first = &struct {
				text string
				conf float64
			}{w.Text, w.Conf}
			if w.Box.Left != 100 || w.Box.Top != 100 || w.Box.Width != 250 || w.Box.Height != 60 {
				t.Errorf("first word box = %+v", w.Box)
			}
			break
		}
	}
	if first == nil {
		t.Fatal("no word rows parsed")
	}
	if first.text != "Quarterly" {
		t.Errorf("Text = %q, want %q", first.text, "Quarterly")
	}
	if first.conf != 96 {
		t.Errorf("Conf = %v, want 96", first.conf)
	}
}

func TestParse_FeedsPipeline(t *testing.T) {
	words, err := Parse(strings.NewReader(sampleHOCR))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	filtered := layout.NewWordFilter().Filter(words)
	lines := layout.NewLineDetector().Detect(filtered)
	blocks := layout.NewBlockDetector().Detect(lines)

	// The low-confidence word and all structural rows drop out; the two
	// remaining lines are close enough to merge into one block.
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Text != "Quarterly Results\nRevenue" {
		t.Errorf("block text = %q", blocks[0].Text)
	}
}

func TestParse_MissingBBoxSkipped(t *testing.T) {
	markup := `<span class='ocrx_word' title='x_wconf 80'>orphan</span>`

	words, err := Parse(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(words) != 0 {
		t.Errorf("expected element without bbox to be skipped, got %v", words)
	}
}

func TestParse_MalformedBBoxSkipped(t *testing.T) {
	markup := `<span class='ocrx_word' title='bbox 10 oops 30 40; x_wconf 80'>bad</span>`

	words, err := Parse(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(words) != 0 {
		t.Errorf("expected malformed bbox to be skipped, got %v", words)
	}
}

func TestParse_MissingConfidenceReadsZero(t *testing.T) {
	markup := `<span class='ocrx_word' title='bbox 0 0 10 10'>silent</span>`

	words, err := Parse(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(words) != 1 {
		t.Fatalf("expected 1 word, got %d", len(words))
	}
	if words[0].Conf != 0 {
		t.Errorf("Conf = %v, want 0 for missing x_wconf", words[0].Conf)
	}
}

func TestParse_Empty(t *testing.T) {
	words, err := Parse(strings.NewReader("<html><body></body></html>"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(words) != 0 {
		t.Errorf("expected no words, got %d", len(words))
	}
}

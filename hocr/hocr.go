// Package hocr parses hOCR output into word detections.
//
// hOCR is the HTML-based interchange format most OCR engines can emit
// (Tesseract via "tesseract img out hocr", among others). Parsing it lets
// the grouping pipeline run on detections from any engine without linking
// that engine in: title attributes carry the pixel bounding box ("bbox x0 y0
// x1 y1") and the word confidence ("x_wconf").
//
// Elements with class ocrx_word become words; page, area, paragraph, and
// line containers are reported as structural so the word filter drops them.
package hocr

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/slidescan/slidescan/geometry"
	"github.com/slidescan/slidescan/ocr"
)

// class attribute values defined by the hOCR format.
const (
	classPage      = "ocr_page"
	classArea      = "ocr_carea"
	classParagraph = "ocr_par"
	classLine      = "ocr_line"
	classWord      = "ocrx_word"
)

// ParseFile reads an hOCR file and returns its word detections.
func ParseFile(path string) ([]ocr.Word, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening hOCR file: %w", err)
	}
	defer f.Close()

	words, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return words, nil
}

// Parse reads hOCR markup and returns every element with positional data as
// an ocr.Word, in document order. Word elements carry text and confidence;
// container elements (pages, areas, paragraphs, lines) are marked
// Structural. Elements whose bbox cannot be parsed are skipped, matching the
// filter's contract that malformed rows are noise, not errors.
func Parse(r io.Reader) ([]ocr.Word, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing hOCR markup: %w", err)
	}

	var words []ocr.Word
	collect(doc, &words)
	return words, nil
}

// collect walks the node tree accumulating detections.
func collect(n *html.Node, words *[]ocr.Word) {
	if n.Type == html.ElementNode {
		if class := attr(n, "class"); isHOCRClass(class) {
			if w, ok := nodeToWord(n, class); ok {
				*words = append(*words, w)
			}
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collect(c, words)
	}
}

func isHOCRClass(class string) bool {
	switch class {
	case classPage, classArea, classParagraph, classLine, classWord:
		return true
	}
	return false
}

// nodeToWord converts an hOCR element into a Word. The second return value
// is false when the element carries no usable bbox.
func nodeToWord(n *html.Node, class string) (ocr.Word, bool) {
	box, ok := parseBBox(attr(n, "title"))
	if !ok {
		return ocr.Word{}, false
	}

	if class != classWord {
		return ocr.Word{Box: box, Structural: true}, true
	}

	return ocr.Word{
		Text: textContent(n),
		Box:  box,
		Conf: parseWConf(attr(n, "title")),
	}, true
}

// parseBBox extracts "bbox x0 y0 x1 y1" from an hOCR title attribute.
func parseBBox(title string) (geometry.Rect, bool) {
	for _, prop := range strings.Split(title, ";") {
		fields := strings.Fields(strings.TrimSpace(prop))
		if len(fields) != 5 || fields[0] != "bbox" {
			continue
		}

		coords := make([]int, 4)
		for i, f := range fields[1:] {
			v, err := strconv.Atoi(f)
			if err != nil {
				return geometry.Rect{}, false
			}
			coords[i] = v
		}

		return geometry.Rect{
			Left:   coords[0],
			Top:    coords[1],
			Width:  coords[2] - coords[0],
			Height: coords[3] - coords[1],
		}, true
	}
	return geometry.Rect{}, false
}

// parseWConf extracts "x_wconf N" from an hOCR title attribute. A missing
// confidence reads as zero, which the filter then drops.
func parseWConf(title string) float64 {
	for _, prop := range strings.Split(title, ";") {
		fields := strings.Fields(strings.TrimSpace(prop))
		if len(fields) != 2 || fields[0] != "x_wconf" {
			continue
		}
		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return 0
		}
		return v
	}
	return 0
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// textContent returns the concatenated text beneath a node.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}

package slidescan

import (
	"context"
	"errors"
	"fmt"

	"github.com/slidescan/slidescan/geometry"
	"github.com/slidescan/slidescan/pptx"
	"github.com/slidescan/slidescan/render"
)

// ErrNoPages is returned when a conversion is started with no page images.
var ErrNoPages = errors.New("slidescan: no pages to convert")

// Convert runs the full pipeline over the given pages and writes the
// resulting deck to outPath. Slide dimensions come from the first page, so
// every slide keeps that page's aspect ratio.
//
// Cancellation is cooperative: the context is polled before each page's
// detection and grouping work and again before each text block is placed.
// A grouping pass that has started runs to completion before the next
// checkpoint; the context is never blocked on. On cancellation the context's
// error is returned and no file is written.
//
// A WordSource error produces zero words for that page (an empty slide with
// just the background image), not a failed conversion.
func (c *Converter) Convert(ctx context.Context, pages []render.Page, source WordSource, outPath string) error {
	w, err := c.assemble(ctx, pages, source)
	if err != nil {
		return err
	}
	return w.Save(outPath)
}

// Assemble runs the pipeline like Convert but returns the in-memory
// presentation writer instead of saving it, for callers that serialize
// elsewhere. On cancellation the writer holding the slides completed so far
// is returned along with the context's error.
func (c *Converter) Assemble(ctx context.Context, pages []render.Page, source WordSource) (*pptx.Writer, error) {
	return c.assemble(ctx, pages, source)
}

func (c *Converter) assemble(ctx context.Context, pages []render.Page, source WordSource) (*pptx.Writer, error) {
	if len(pages) == 0 {
		return nil, ErrNoPages
	}

	c.configureSource(source)

	widthEMU, heightEMU := geometry.SlideDimensions(pages[0].WidthPx(), pages[0].HeightPx(), pages[0].DPI)
	w := pptx.NewWriterWithConfig(widthEMU, heightEMU, c.options.font)

	for i, page := range pages {
		if err := c.assemblePage(ctx, i, page, source, w); err != nil {
			// The writer still holds every slide completed before the
			// failure, so cancelled callers get the partial deck.
			return w, err
		}
	}

	return w, nil
}

// configureSource pushes converter-level OCR settings into an engine-backed
// source. Other sources carry their own detections and need no setup.
func (c *Converter) configureSource(source WordSource) {
	ts, ok := source.(*tesseractSource)
	if !ok {
		return
	}
	ts.preprocess = c.options.preprocess
	// Engine configuration failures surface later as detection errors,
	// which the page loop already treats as zero words.
	_ = ts.client.SetLanguages(c.options.languages)
}

// assemblePage converts one page into one slide.
func (c *Converter) assemblePage(ctx context.Context, pageIndex int, page render.Page, source WordSource, w *pptx.Writer) error {
	if cb := c.options.progress.PageStarted; cb != nil {
		cb(pageIndex, page.Name)
	}

	// Checkpoint: before any detection or grouping work for this page.
	if err := ctx.Err(); err != nil {
		return err
	}

	words, err := source.DetectWords(page)
	if err != nil {
		// Engine-level failure means zero words for this page.
		words = nil
	}

	blocks := c.PageBlocks(words)

	background, err := page.EncodePNG()
	if err != nil {
		return fmt.Errorf("page %d: %w", pageIndex+1, err)
	}

	boxes := make([]pptx.TextBox, 0, len(blocks))
	for blockIndex, block := range blocks {
		// Checkpoint: before emitting each block for placement.
		if err := ctx.Err(); err != nil {
			return err
		}

		left, top, width, height := block.Box.ToEMU(page.DPI)
		box := pptx.TextBox{
			Text:   block.Text,
			Left:   left,
			Top:    top,
			Width:  width,
			Height: height,
		}
		if c.options.sampleInkColor {
			if hex, ok := page.InkColor(block.Box); ok {
				box.ColorHex = hex
			}
		}
		boxes = append(boxes, box)

		if cb := c.options.progress.BlockPlaced; cb != nil {
			cb(pageIndex, blockIndex, block)
		}
	}

	w.AddSlide(background, boxes)

	if cb := c.options.progress.PageDone; cb != nil {
		cb(pageIndex, len(boxes))
	}
	return nil
}

// Command slidescan converts a directory of page images into a PowerPoint
// deck with editable, positioned text.
//
// Word detections come from Tesseract when the binary is built with the
// "ocr" tag, or from pre-computed hOCR files via -hocr.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"syscall"

	"github.com/slidescan/slidescan"
	"github.com/slidescan/slidescan/hocr"
	"github.com/slidescan/slidescan/ocr"
	"github.com/slidescan/slidescan/pptx"
	"github.com/slidescan/slidescan/render"
)

type options struct {
	inputDir   string
	outPath    string
	hocrDir    string
	dpi        int
	languages  string
	confidence float64
	lineMerge  int
	gapMult    float64
	preprocess bool
	inkColor   bool
	fontName   string
	fontSizePt float64
	verbose    bool
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "slidescan: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "slidescan: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (options, error) {
	var opts options
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: slidescan [flags] <image-dir>\n")
		flag.PrintDefaults()
	}
	flag.StringVar(&opts.outPath, "out", envOr("SLIDESCAN_OUT", "out.pptx"), "Output .pptx path")
	flag.StringVar(&opts.hocrDir, "hocr", "", "Directory of hOCR files, one per page in name order (skips the OCR engine)")
	flag.IntVar(&opts.dpi, "dpi", envInt("SLIDESCAN_DPI", render.DefaultDPI), "Resolution the page images were rendered at")
	flag.StringVar(&opts.languages, "lang", envOr("SLIDESCAN_LANG", "eng"), "Tesseract language string, e.g. jpn+eng")
	flag.Float64Var(&opts.confidence, "conf", 40, "Minimum word confidence (0-100)")
	flag.IntVar(&opts.lineMerge, "line-threshold", 10, "Vertical distance in pixels within which words share a line")
	flag.Float64Var(&opts.gapMult, "gap", 1.5, "Line-height multiplier for paragraph breaks")
	flag.BoolVar(&opts.preprocess, "preprocess", false, "Grayscale and contrast-boost pages before OCR")
	flag.BoolVar(&opts.inkColor, "ink", false, "Color text boxes with the ink color sampled from the page")
	flag.StringVar(&opts.fontName, "font", pptx.DefaultFontName, "Font for written text boxes")
	flag.Float64Var(&opts.fontSizePt, "font-size", pptx.DefaultFontSizePt, "Font size in points")
	flag.BoolVar(&opts.verbose, "v", false, "Log per-page progress")
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		return options{}, fmt.Errorf("missing image directory")
	}
	opts.inputDir = flag.Arg(0)
	return opts, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func run(opts options) error {
	log := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pages, err := render.LoadDir(opts.inputDir, opts.dpi)
	if err != nil {
		return fmt.Errorf("load pages: %w", err)
	}
	if len(pages) == 0 {
		return fmt.Errorf("no page images in %s", opts.inputDir)
	}
	log.Info("loaded pages", "count", len(pages), "dpi", opts.dpi)

	source, cleanup, err := wordSource(opts, len(pages))
	if err != nil {
		return err
	}
	defer cleanup()

	conv := slidescan.New().
		Languages(opts.languages).
		ConfidenceThreshold(opts.confidence).
		LineMergeThreshold(opts.lineMerge).
		ParagraphGapMultiplier(opts.gapMult).
		Font(pptx.Config{FontName: opts.fontName, FontSizePt: opts.fontSizePt})
	if opts.preprocess {
		conv.Preprocess(render.DefaultPreprocessConfig())
	}
	if opts.inkColor {
		conv.SampleInkColor()
	}
	if opts.verbose {
		conv.Progress(slidescan.Progress{
			PageStarted: func(i int, name string) {
				log.Info("page started", "page", i+1, "name", name)
			},
			PageDone: func(i, blocks int) {
				log.Info("page done", "page", i+1, "blocks", blocks)
			},
		})
	}

	if err := conv.Convert(ctx, pages, source, opts.outPath); err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	log.Info("wrote deck", "path", opts.outPath, "slides", len(pages))
	return nil
}

// wordSource picks the detection source: parsed hOCR files when -hocr is
// given, otherwise a live OCR client. The cleanup func releases the client.
func wordSource(opts options, pageCount int) (slidescan.WordSource, func(), error) {
	if opts.hocrDir != "" {
		detections, err := loadHOCRDir(opts.hocrDir)
		if err != nil {
			return nil, nil, err
		}
		if len(detections) != pageCount {
			return nil, nil, fmt.Errorf("%d hOCR files for %d pages", len(detections), pageCount)
		}
		return slidescan.StaticSource(detections), func() {}, nil
	}

	client, err := ocr.New()
	if err != nil {
		return nil, nil, fmt.Errorf("start ocr engine: %w", err)
	}
	return slidescan.TesseractSource(client), func() { client.Close() }, nil
}

// loadHOCRDir parses every hOCR file in dir, in name order.
func loadHOCRDir(dir string) ([][]ocr.Word, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read hocr dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".hocr", ".html", ".xml":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	detections := make([][]ocr.Word, 0, len(names))
	for _, name := range names {
		words, err := hocr.ParseFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		detections = append(detections, words)
	}
	return detections, nil
}

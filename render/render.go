// Package render loads rasterized page images for the conversion pipeline.
//
// The package does not rasterize documents itself; an external renderer (or
// a scanner) produces page images at a known resolution, and render loads
// them, tracks their DPI, and prepares them for OCR. Supported formats are
// PNG, JPEG, GIF, TIFF, BMP, and WebP.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"

	// Extend image.Decode with formats scanners commonly produce.
	_ "golang.org/x/image/webp"
)

// DefaultDPI is the assumed resolution when the caller does not know the
// resolution a page was rendered at.
const DefaultDPI = 300

// Page is one rasterized document page.
type Page struct {
	// Image is the decoded page raster.
	Image image.Image

	// DPI is the resolution the page was rendered or scanned at. Pixel
	// coordinates on this page are interpreted at this resolution.
	DPI int

	// Name identifies the page source (usually the file name), for
	// progress reporting.
	Name string
}

// WidthPx returns the page width in pixels.
func (p Page) WidthPx() int {
	return p.Image.Bounds().Dx()
}

// HeightPx returns the page height in pixels.
func (p Page) HeightPx() int {
	return p.Image.Bounds().Dy()
}

// EncodePNG encodes the page image as PNG. PNG is lossless, which keeps OCR
// input and slide backgrounds faithful to the source.
func (p Page) EncodePNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, p.Image); err != nil {
		return nil, fmt.Errorf("encoding page %s: %w", p.Name, err)
	}
	return buf.Bytes(), nil
}

// ResizeToDPI returns a copy of the page resampled so that its pixel
// coordinates are interpreted at the target resolution. Lanczos resampling
// keeps small glyphs legible for OCR.
func (p Page) ResizeToDPI(targetDPI int) Page {
	if targetDPI == p.DPI || p.DPI == 0 {
		return p
	}
	scale := float64(targetDPI) / float64(p.DPI)
	w := int(float64(p.WidthPx()) * scale)
	h := int(float64(p.HeightPx()) * scale)
	return Page{
		Image: imaging.Resize(p.Image, w, h, imaging.Lanczos),
		DPI:   targetDPI,
		Name:  p.Name,
	}
}

// Decode reads a page image from r.
func Decode(r io.Reader, dpi int, name string) (Page, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return Page{}, fmt.Errorf("decoding page %s: %w", name, err)
	}
	return Page{Image: img, DPI: dpi, Name: name}, nil
}

// LoadPage loads a single page image from disk.
func LoadPage(path string, dpi int) (Page, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return Page{}, fmt.Errorf("opening %s: %w", path, err)
	}
	return Page{Image: img, DPI: dpi, Name: filepath.Base(path)}, nil
}

// pageExtensions are the file extensions LoadDir treats as page images.
var pageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".tif":  true,
	".tiff": true,
	".bmp":  true,
	".webp": true,
}

// LoadDir loads every page image in a directory, sorted by file name so that
// zero-padded page numbering yields document order. Non-image files are
// skipped. An empty directory yields an empty page list, not an error.
func LoadDir(dir string, dpi int) ([]Page, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading page directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if pageExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			paths = append(paths, e.Name())
		}
	}
	sort.Strings(paths)

	pages := make([]Page, 0, len(paths))
	for _, name := range paths {
		page, err := LoadPage(filepath.Join(dir, name), dpi)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, nil
}

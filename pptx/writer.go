package pptx

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Default text formatting for written text boxes. The default font handles
// both Latin and Japanese glyphs, matching the OCR pipeline's common
// jpn+eng input.
const (
	DefaultFontName   = "Yu Gothic UI"
	DefaultFontSizePt = 11.0
)

// ErrNoSlides is returned when saving a presentation with no slides.
var ErrNoSlides = errors.New("pptx: presentation has no slides")

// TextBox is one positioned, editable text region on a slide. All
// coordinates are EMUs relative to the slide's top-left corner.
type TextBox struct {
	// Text is the box content; lines separated by "\n" become separate
	// paragraphs in the text frame.
	Text string

	Left   int
	Top    int
	Width  int
	Height int

	// ColorHex optionally sets the run color as "RRGGBB" (a leading '#'
	// is accepted). Empty means the format's default text color.
	ColorHex string
}

// Config holds text formatting configuration for the writer.
type Config struct {
	// FontName is the typeface applied to every run (default: Yu Gothic UI).
	FontName string

	// FontSizePt is the run font size in points (default: 11).
	FontSizePt float64
}

// DefaultConfig returns the default writer configuration.
func DefaultConfig() Config {
	return Config{
		FontName:   DefaultFontName,
		FontSizePt: DefaultFontSizePt,
	}
}

type slide struct {
	backgroundPNG []byte
	boxes         []TextBox
}

// Writer builds a presentation slide by slide and serializes it as a PPTX
// package. The zero value is not usable; construct with NewWriter.
type Writer struct {
	slideWidthEMU  int
	slideHeightEMU int
	config         Config
	slides         []slide
}

// NewWriter creates a presentation writer with the given slide dimensions in
// EMUs. Dimensions normally come from geometry.SlideDimensions of the first
// page so the deck keeps the source image's aspect ratio.
func NewWriter(slideWidthEMU, slideHeightEMU int) *Writer {
	return NewWriterWithConfig(slideWidthEMU, slideHeightEMU, DefaultConfig())
}

// NewWriterWithConfig creates a presentation writer with custom text
// formatting.
func NewWriterWithConfig(slideWidthEMU, slideHeightEMU int, config Config) *Writer {
	if config.FontName == "" {
		config.FontName = DefaultFontName
	}
	if config.FontSizePt <= 0 {
		config.FontSizePt = DefaultFontSizePt
	}
	return &Writer{
		slideWidthEMU:  slideWidthEMU,
		slideHeightEMU: slideHeightEMU,
		config:         config,
	}
}

// AddSlide appends a slide with a full-bleed background image and one
// borderless, transparent text box per TextBox. backgroundPNG must be
// PNG-encoded image data; it is stretched to cover the whole slide.
func (w *Writer) AddSlide(backgroundPNG []byte, boxes []TextBox) {
	copied := make([]TextBox, len(boxes))
	copy(copied, boxes)
	w.slides = append(w.slides, slide{
		backgroundPNG: backgroundPNG,
		boxes:         copied,
	})
}

// SlideCount returns the number of slides added so far.
func (w *Writer) SlideCount() int {
	return len(w.slides)
}

// Save writes the presentation to a file.
func (w *Writer) Save(path string) error {
	if len(w.slides) == 0 {
		return ErrNoSlides
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if err := w.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Write serializes the presentation package to out.
func (w *Writer) Write(out io.Writer) error {
	if len(w.slides) == 0 {
		return ErrNoSlides
	}

	zw := zip.NewWriter(out)

	parts := []struct {
		name string
		data func() ([]byte, error)
	}{
		{"[Content_Types].xml", w.contentTypes},
		{"_rels/.rels", packageRels},
		{"docProps/core.xml", staticPart(corePropsXML)},
		{"docProps/app.xml", staticPart(appPropsXML)},
		{"ppt/presentation.xml", w.presentation},
		{"ppt/_rels/presentation.xml.rels", w.presentationRels},
		{"ppt/slideMasters/slideMaster1.xml", staticPart(slideMasterXML)},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", staticPart(slideMasterRelsXML)},
		{"ppt/slideLayouts/slideLayout1.xml", staticPart(slideLayoutXML)},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", staticPart(slideLayoutRelsXML)},
		{"ppt/theme/theme1.xml", staticPart(themeXML)},
	}

	for _, part := range parts {
		if err := writePart(zw, part.name, part.data); err != nil {
			return err
		}
	}

	for i, s := range w.slides {
		n := i + 1
		s := s
		slideParts := []struct {
			name string
			data func() ([]byte, error)
		}{
			{fmt.Sprintf("ppt/slides/slide%d.xml", n), func() ([]byte, error) { return w.slideXML(s) }},
			{fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), func() ([]byte, error) { return slideRels(n) }},
			{fmt.Sprintf("ppt/media/image%d.png", n), func() ([]byte, error) { return s.backgroundPNG, nil }},
		}
		for _, part := range slideParts {
			if err := writePart(zw, part.name, part.data); err != nil {
				return err
			}
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing package: %w", err)
	}
	return nil
}

func writePart(zw *zip.Writer, name string, data func() ([]byte, error)) error {
	payload, err := data()
	if err != nil {
		return fmt.Errorf("building part %s: %w", name, err)
	}
	f, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("creating part %s: %w", name, err)
	}
	if _, err := f.Write(payload); err != nil {
		return fmt.Errorf("writing part %s: %w", name, err)
	}
	return nil
}

func staticPart(content string) func() ([]byte, error) {
	return func() ([]byte, error) { return []byte(content), nil }
}

func marshalPart(v any) ([]byte, error) {
	data, err := xml.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append([]byte(xmlHeader), data...), nil
}

// contentTypes builds [Content_Types].xml, listing every slide part.
func (w *Writer) contentTypes() ([]byte, error) {
	ct := contentTypesXML{
		Xmlns: nsContentTypes,
		Defaults: []ctDefaultXML{
			{Extension: "rels", ContentType: "application/vnd.openxmlformats-package.relationships+xml"},
			{Extension: "xml", ContentType: "application/xml"},
			{Extension: "png", ContentType: "image/png"},
		},
		Overrides: []ctOverrideXML{
			{PartName: "/ppt/presentation.xml", ContentType: ctPresentation},
			{PartName: "/ppt/slideMasters/slideMaster1.xml", ContentType: ctSlideMaster},
			{PartName: "/ppt/slideLayouts/slideLayout1.xml", ContentType: ctSlideLayout},
			{PartName: "/ppt/theme/theme1.xml", ContentType: ctTheme},
			{PartName: "/docProps/core.xml", ContentType: ctCoreProps},
			{PartName: "/docProps/app.xml", ContentType: ctAppProps},
		},
	}
	for i := range w.slides {
		ct.Overrides = append(ct.Overrides, ctOverrideXML{
			PartName:    fmt.Sprintf("/ppt/slides/slide%d.xml", i+1),
			ContentType: ctSlide,
		})
	}
	return marshalPart(ct)
}

func packageRels() ([]byte, error) {
	return marshalPart(relationshipsXML{
		Xmlns: nsPackageRels,
		Rels: []relationshipXML{
			{ID: "rId1", Type: relTypeOfficeDocument, Target: "ppt/presentation.xml"},
			{ID: "rId2", Type: relTypeCoreProps, Target: "docProps/core.xml"},
			{ID: "rId3", Type: relTypeAppProps, Target: "docProps/app.xml"},
		},
	})
}

func (w *Writer) presentation() ([]byte, error) {
	pres := presentationXML{
		XmlnsA: nsDrawingML,
		XmlnsR: nsRelationships,
		XmlnsP: nsPresentationML,
		SldMasterIdLst: sldMasterIdLstXML{
			Ids: []sldMasterIdXML{{ID: 2147483648, RID: "rId1"}},
		},
		SldSz:   sldSzXML{Cx: w.slideWidthEMU, Cy: w.slideHeightEMU},
		NotesSz: notesSzXML{Cx: 6858000, Cy: 9144000},
	}
	for i := range w.slides {
		pres.SldIdLst.Ids = append(pres.SldIdLst.Ids, sldIdXML{
			ID:  uint32(256 + i),
			RID: fmt.Sprintf("rId%d", i+2),
		})
	}
	return marshalPart(pres)
}

func (w *Writer) presentationRels() ([]byte, error) {
	rels := relationshipsXML{
		Xmlns: nsPackageRels,
		Rels: []relationshipXML{
			{ID: "rId1", Type: relTypeSlideMaster, Target: "slideMasters/slideMaster1.xml"},
		},
	}
	for i := range w.slides {
		rels.Rels = append(rels.Rels, relationshipXML{
			ID:     fmt.Sprintf("rId%d", i+2),
			Type:   relTypeSlide,
			Target: fmt.Sprintf("slides/slide%d.xml", i+1),
		})
	}
	return marshalPart(rels)
}

func slideRels(n int) ([]byte, error) {
	return marshalPart(relationshipsXML{
		Xmlns: nsPackageRels,
		Rels: []relationshipXML{
			{ID: "rId1", Type: relTypeSlideLayout, Target: "../slideLayouts/slideLayout1.xml"},
			{ID: "rId2", Type: relTypeImage, Target: fmt.Sprintf("../media/image%d.png", n)},
		},
	})
}

// slideXML builds one slide part: the background picture covering the full
// slide, then one text box shape per block.
func (w *Writer) slideXML(s slide) ([]byte, error) {
	tree := spTreeXML{
		NvGrpSpPr: nvGrpSpPrXML{
			CNvPr: cNvPrXML{ID: 1, Name: ""},
		},
		Pic: &picXML{
			NvPicPr: nvPicPrXML{
				CNvPr:    cNvPrXML{ID: 2, Name: "Background"},
				CNvPicPr: cNvPicPrXML{PicLocks: picLocksXML{NoChangeAspect: 1}},
			},
			BlipFill: blipFillXML{Blip: blipXML{Embed: "rId2"}},
			SpPr: spPrXML{
				Xfrm: &xfrmXML{
					Off: offXML{X: 0, Y: 0},
					Ext: extXML{Cx: w.slideWidthEMU, Cy: w.slideHeightEMU},
				},
				PrstGeom: &prstGeomXML{Prst: "rect"},
			},
		},
	}

	for i, box := range s.boxes {
		tree.Sp = append(tree.Sp, w.textBoxShape(box, i))
	}

	return marshalPart(slideXML{
		XmlnsA: nsDrawingML,
		XmlnsR: nsRelationships,
		XmlnsP: nsPresentationML,
		CSld:   cSldXML{SpTree: tree},
	})
}

// textBoxShape builds a borderless, unfilled text box so the background
// image shows through behind the editable text.
func (w *Writer) textBoxShape(box TextBox, index int) spXML {
	noFill := struct{}{}
	sp := spXML{
		NvSpPr: nvSpPrXML{
			CNvPr:   cNvPrXML{ID: index + 3, Name: fmt.Sprintf("TextBox %d", index+1)},
			CNvSpPr: cNvSpPrXML{TxBox: 1},
		},
		SpPr: spPrXML{
			Xfrm: &xfrmXML{
				Off: offXML{X: box.Left, Y: box.Top},
				Ext: extXML{Cx: box.Width, Cy: box.Height},
			},
			PrstGeom: &prstGeomXML{Prst: "rect"},
			NoFill:   &noFill,
			Ln:       &lnXML{},
		},
		TxBody: txBodyXML{
			BodyPr: bodyPrXML{Wrap: "square"},
		},
	}

	for _, line := range strings.Split(box.Text, "\n") {
		sp.TxBody.P = append(sp.TxBody.P, pXML{
			PPr: &pPrXML{Algn: "l"},
			R: []rXML{{
				RPr: w.runProperties(box.ColorHex),
				T:   line,
			}},
		})
	}

	return sp
}

func (w *Writer) runProperties(colorHex string) *rPrXML {
	rpr := &rPrXML{
		Sz:    int(w.config.FontSizePt * 100),
		Latin: &latinXML{Typeface: w.config.FontName},
		Ea:    &eaXML{Typeface: w.config.FontName},
	}
	if hex := normalizeHex(colorHex); hex != "" {
		rpr.SolidFill = &solidFillXML{SrgbClr: srgbClrXML{Val: hex}}
	}
	return rpr
}

// normalizeHex converts "#rrggbb" or "rrggbb" to upper-case "RRGGBB".
// Anything else is treated as unset.
func normalizeHex(hex string) string {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return ""
	}
	return strings.ToUpper(hex)
}

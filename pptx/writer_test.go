package pptx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"
)

// testPNG builds a tiny valid PNG for slide backgrounds.
func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// writeDeck serializes a writer and reopens it as a zip archive.
func writeDeck(t *testing.T, w *Writer) *zip.Reader {
	t.Helper()
	var buf bytes.Buffer
	if err := w.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("reopening package: %v", err)
	}
	return zr
}

func readPart(t *testing.T, zr *zip.Reader, name string) []byte {
	t.Helper()
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				t.Fatalf("opening %s: %v", name, err)
			}
			defer rc.Close()
			data, err := io.ReadAll(rc)
			if err != nil {
				t.Fatalf("reading %s: %v", name, err)
			}
			return data
		}
	}
	t.Fatalf("part %s not found in package", name)
	return nil
}

func TestWriter_EmptyPresentation(t *testing.T) {
	w := NewWriter(9144000, 6858000)

	var buf bytes.Buffer
	if err := w.Write(&buf); !errors.Is(err, ErrNoSlides) {
		t.Errorf("Write error = %v, want ErrNoSlides", err)
	}
	if err := w.Save("/tmp/should-not-exist.pptx"); !errors.Is(err, ErrNoSlides) {
		t.Errorf("Save error = %v, want ErrNoSlides", err)
	}
}

func TestWriter_PackageStructure(t *testing.T) {
	w := NewWriter(9144000, 6858000)
	w.AddSlide(testPNG(t), nil)
	w.AddSlide(testPNG(t), nil)

	zr := writeDeck(t, w)

	required := []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"ppt/presentation.xml",
		"ppt/_rels/presentation.xml.rels",
		"ppt/slideMasters/slideMaster1.xml",
		"ppt/slideLayouts/slideLayout1.xml",
		"ppt/theme/theme1.xml",
		"ppt/slides/slide1.xml",
		"ppt/slides/slide2.xml",
		"ppt/slides/_rels/slide1.xml.rels",
		"ppt/media/image1.png",
		"ppt/media/image2.png",
	}

	have := make(map[string]bool)
	for _, f := range zr.File {
		have[f.Name] = true
	}
	for _, name := range required {
		if !have[name] {
			t.Errorf("missing package part: %s", name)
		}
	}
}

func TestWriter_SlideSize(t *testing.T) {
	w := NewWriter(9144000, 6858000)
	w.AddSlide(testPNG(t), nil)

	zr := writeDeck(t, w)
	data := readPart(t, zr, "ppt/presentation.xml")

	var pres struct {
		SldSz struct {
			Cx int `xml:"cx,attr"`
			Cy int `xml:"cy,attr"`
		} `xml:"sldSz"`
		SldIds struct {
			Ids []struct {
				ID string `xml:"id,attr"`
			} `xml:"sldId"`
		} `xml:"sldIdLst"`
	}
	if err := xml.Unmarshal(data, &pres); err != nil {
		t.Fatalf("unmarshal presentation: %v", err)
	}

	if pres.SldSz.Cx != 9144000 || pres.SldSz.Cy != 6858000 {
		t.Errorf("slide size = (%d, %d), want (9144000, 6858000)", pres.SldSz.Cx, pres.SldSz.Cy)
	}
	if len(pres.SldIds.Ids) != 1 {
		t.Errorf("slide id count = %d, want 1", len(pres.SldIds.Ids))
	}
}

func TestWriter_TextBoxes(t *testing.T) {
	w := NewWriter(9144000, 6858000)
	w.AddSlide(testPNG(t), []TextBox{
		{Text: "Title line", Left: 914400, Top: 457200, Width: 4572000, Height: 914400},
		{Text: "first\nsecond", Left: 914400, Top: 2743200, Width: 4572000, Height: 1828800, ColorHex: "#1a2b3c"},
	})

	zr := writeDeck(t, w)
	data := readPart(t, zr, "ppt/slides/slide1.xml")

	var sld struct {
		CSld struct {
			SpTree struct {
				Pic []struct {
					BlipFill struct {
						Blip struct {
							Embed string `xml:"embed,attr"`
						} `xml:"blip"`
					} `xml:"blipFill"`
				} `xml:"pic"`
				Sp []struct {
					SpPr struct {
						Xfrm struct {
							Off struct {
								X int `xml:"x,attr"`
								Y int `xml:"y,attr"`
							} `xml:"off"`
							Ext struct {
								Cx int `xml:"cx,attr"`
								Cy int `xml:"cy,attr"`
							} `xml:"ext"`
						} `xml:"xfrm"`
					} `xml:"spPr"`
					TxBody struct {
						P []struct {
							R []struct {
								RPr *struct {
									Sz   int `xml:"sz,attr"`
									Fill *struct {
										Clr struct {
											Val string `xml:"val,attr"`
										} `xml:"srgbClr"`
									} `xml:"solidFill"`
									Latin struct {
										Typeface string `xml:"typeface,attr"`
									} `xml:"latin"`
								} `xml:"rPr"`
								T string `xml:"t"`
							} `xml:"r"`
						} `xml:"p"`
					} `xml:"txBody"`
				} `xml:"sp"`
			} `xml:"spTree"`
		} `xml:"cSld"`
	}
	if err := xml.Unmarshal(data, &sld); err != nil {
		t.Fatalf("unmarshal slide: %v", err)
	}

	if len(sld.CSld.SpTree.Pic) != 1 {
		t.Fatalf("expected 1 background picture, got %d", len(sld.CSld.SpTree.Pic))
	}
	if sld.CSld.SpTree.Pic[0].BlipFill.Blip.Embed != "rId2" {
		t.Errorf("background embed = %q, want rId2", sld.CSld.SpTree.Pic[0].BlipFill.Blip.Embed)
	}

	shapes := sld.CSld.SpTree.Sp
	if len(shapes) != 2 {
		t.Fatalf("expected 2 text boxes, got %d", len(shapes))
	}

	first := shapes[0]
	if first.SpPr.Xfrm.Off.X != 914400 || first.SpPr.Xfrm.Off.Y != 457200 {
		t.Errorf("first box offset = (%d, %d)", first.SpPr.Xfrm.Off.X, first.SpPr.Xfrm.Off.Y)
	}
	if first.SpPr.Xfrm.Ext.Cx != 4572000 || first.SpPr.Xfrm.Ext.Cy != 914400 {
		t.Errorf("first box extent = (%d, %d)", first.SpPr.Xfrm.Ext.Cx, first.SpPr.Xfrm.Ext.Cy)
	}
	if len(first.TxBody.P) != 1 || first.TxBody.P[0].R[0].T != "Title line" {
		t.Errorf("first box text mismatch: %+v", first.TxBody.P)
	}
	if first.TxBody.P[0].R[0].RPr.Sz != 1100 {
		t.Errorf("font size = %d, want 1100", first.TxBody.P[0].R[0].RPr.Sz)
	}
	if first.TxBody.P[0].R[0].RPr.Latin.Typeface != DefaultFontName {
		t.Errorf("typeface = %q, want %q", first.TxBody.P[0].R[0].RPr.Latin.Typeface, DefaultFontName)
	}

	second := shapes[1]
	if len(second.TxBody.P) != 2 {
		t.Fatalf("multi-line box: expected 2 paragraphs, got %d", len(second.TxBody.P))
	}
	if second.TxBody.P[0].R[0].T != "first" || second.TxBody.P[1].R[0].T != "second" {
		t.Errorf("paragraph texts = %q, %q", second.TxBody.P[0].R[0].T, second.TxBody.P[1].R[0].T)
	}
	if second.TxBody.P[0].R[0].RPr.Fill == nil {
		t.Fatal("expected run color on second box")
	}
	if got := second.TxBody.P[0].R[0].RPr.Fill.Clr.Val; got != "1A2B3C" {
		t.Errorf("run color = %q, want 1A2B3C", got)
	}
}

func TestWriter_BackgroundBytesPreserved(t *testing.T) {
	bg := testPNG(t)
	w := NewWriter(9144000, 6858000)
	w.AddSlide(bg, nil)

	zr := writeDeck(t, w)
	stored := readPart(t, zr, "ppt/media/image1.png")

	if !bytes.Equal(stored, bg) {
		t.Error("background image bytes were altered by packaging")
	}
}

func TestWriter_ContentTypesListSlides(t *testing.T) {
	w := NewWriter(9144000, 6858000)
	w.AddSlide(testPNG(t), nil)
	w.AddSlide(testPNG(t), nil)
	w.AddSlide(testPNG(t), nil)

	zr := writeDeck(t, w)
	data := string(readPart(t, zr, "[Content_Types].xml"))

	for _, part := range []string{"/ppt/slides/slide1.xml", "/ppt/slides/slide2.xml", "/ppt/slides/slide3.xml"} {
		if !strings.Contains(data, part) {
			t.Errorf("content types missing override for %s", part)
		}
	}
}

func TestWriter_CustomConfig(t *testing.T) {
	w := NewWriterWithConfig(9144000, 6858000, Config{FontName: "Arial", FontSizePt: 18})
	w.AddSlide(testPNG(t), []TextBox{{Text: "hi", Width: 914400, Height: 914400}})

	zr := writeDeck(t, w)
	data := string(readPart(t, zr, "ppt/slides/slide1.xml"))

	if !strings.Contains(data, `typeface="Arial"`) {
		t.Error("custom typeface not applied")
	}
	if !strings.Contains(data, `sz="1800"`) {
		t.Error("custom font size not applied")
	}
}

func TestNormalizeHex(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"#1a2b3c", "1A2B3C"},
		{"a1b2c3", "A1B2C3"},
		{"#fff", ""},
		{"not-a-color", ""},
	}
	for _, tt := range tests {
		if got := normalizeHex(tt.in); got != tt.want {
			t.Errorf("normalizeHex(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

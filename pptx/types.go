// Package pptx writes PPTX (Office Open XML Presentation) files with
// full-bleed background images and positioned, editable text boxes.
package pptx

import "encoding/xml"

// XML namespaces used in PPTX files.
const (
	nsPresentationML = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsDrawingML      = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsRelationships  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPackageRels    = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsContentTypes   = "http://schemas.openxmlformats.org/package/2006/content-types"
)

// Relationship types.
const (
	relTypeOfficeDocument = nsRelationships + "/officeDocument"
	relTypeSlideMaster    = nsRelationships + "/slideMaster"
	relTypeSlideLayout    = nsRelationships + "/slideLayout"
	relTypeSlide          = nsRelationships + "/slide"
	relTypeTheme          = nsRelationships + "/theme"
	relTypeImage          = nsRelationships + "/image"
	relTypeCoreProps      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relTypeAppProps       = nsRelationships + "/extended-properties"
)

// Content types for package parts.
const (
	ctPresentation = "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"
	ctSlideMaster  = "application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"
	ctSlideLayout  = "application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"
	ctSlide        = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
	ctTheme        = "application/vnd.openxmlformats-officedocument.theme+xml"
	ctCoreProps    = "application/vnd.openxmlformats-package.core-properties+xml"
	ctAppProps     = "application/vnd.openxmlformats-officedocument.extended-properties+xml"
)

// contentTypesXML represents the [Content_Types].xml part.
type contentTypesXML struct {
	XMLName   xml.Name        `xml:"Types"`
	Xmlns     string          `xml:"xmlns,attr"`
	Defaults  []ctDefaultXML  `xml:"Default"`
	Overrides []ctOverrideXML `xml:"Override"`
}

type ctDefaultXML struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type ctOverrideXML struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// relationshipsXML represents a .rels part.
type relationshipsXML struct {
	XMLName xml.Name          `xml:"Relationships"`
	Xmlns   string            `xml:"xmlns,attr"`
	Rels    []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

// presentationXML represents the ppt/presentation.xml part.
type presentationXML struct {
	XMLName        xml.Name          `xml:"p:presentation"`
	XmlnsA         string            `xml:"xmlns:a,attr"`
	XmlnsR         string            `xml:"xmlns:r,attr"`
	XmlnsP         string            `xml:"xmlns:p,attr"`
	SldMasterIdLst sldMasterIdLstXML `xml:"p:sldMasterIdLst"`
	SldIdLst       sldIdListXML      `xml:"p:sldIdLst"`
	SldSz          sldSzXML          `xml:"p:sldSz"`
	NotesSz        notesSzXML        `xml:"p:notesSz"`
}

type sldMasterIdLstXML struct {
	Ids []sldMasterIdXML `xml:"p:sldMasterId"`
}

type sldMasterIdXML struct {
	ID  uint32 `xml:"id,attr"`
	RID string `xml:"r:id,attr"`
}

type sldIdListXML struct {
	Ids []sldIdXML `xml:"p:sldId"`
}

type sldIdXML struct {
	ID  uint32 `xml:"id,attr"`
	RID string `xml:"r:id,attr"`
}

type sldSzXML struct {
	Cx int `xml:"cx,attr"` // Width in EMUs
	Cy int `xml:"cy,attr"` // Height in EMUs
}

type notesSzXML struct {
	Cx int `xml:"cx,attr"`
	Cy int `xml:"cy,attr"`
}

// slideXML represents a ppt/slides/slide*.xml part.
type slideXML struct {
	XMLName xml.Name `xml:"p:sld"`
	XmlnsA  string   `xml:"xmlns:a,attr"`
	XmlnsR  string   `xml:"xmlns:r,attr"`
	XmlnsP  string   `xml:"xmlns:p,attr"`
	CSld    cSldXML  `xml:"p:cSld"`
}

type cSldXML struct {
	SpTree spTreeXML `xml:"p:spTree"`
}

// spTreeXML is the shape tree containing all shapes on a slide.
type spTreeXML struct {
	NvGrpSpPr nvGrpSpPrXML `xml:"p:nvGrpSpPr"`
	GrpSpPr   struct{}     `xml:"p:grpSpPr"`
	Pic       *picXML      `xml:"p:pic,omitempty"`
	Sp        []spXML      `xml:"p:sp"`
}

type nvGrpSpPrXML struct {
	CNvPr      cNvPrXML `xml:"p:cNvPr"`
	CNvGrpSpPr struct{} `xml:"p:cNvGrpSpPr"`
	NvPr       struct{} `xml:"p:nvPr"`
}

type cNvPrXML struct {
	ID   int    `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

// picXML represents a picture shape (the slide background).
type picXML struct {
	NvPicPr  nvPicPrXML  `xml:"p:nvPicPr"`
	BlipFill blipFillXML `xml:"p:blipFill"`
	SpPr     spPrXML     `xml:"p:spPr"`
}

type nvPicPrXML struct {
	CNvPr    cNvPrXML    `xml:"p:cNvPr"`
	CNvPicPr cNvPicPrXML `xml:"p:cNvPicPr"`
	NvPr     struct{}    `xml:"p:nvPr"`
}

type cNvPicPrXML struct {
	PicLocks picLocksXML `xml:"a:picLocks"`
}

type picLocksXML struct {
	NoChangeAspect int `xml:"noChangeAspect,attr"`
}

type blipFillXML struct {
	Blip    blipXML    `xml:"a:blip"`
	Stretch stretchXML `xml:"a:stretch"`
}

type blipXML struct {
	Embed string `xml:"r:embed,attr"`
}

type stretchXML struct {
	FillRect struct{} `xml:"a:fillRect"`
}

// spXML represents a shape element (one per text block).
type spXML struct {
	NvSpPr nvSpPrXML `xml:"p:nvSpPr"`
	SpPr   spPrXML   `xml:"p:spPr"`
	TxBody txBodyXML `xml:"p:txBody"`
}

type nvSpPrXML struct {
	CNvPr   cNvPrXML   `xml:"p:cNvPr"`
	CNvSpPr cNvSpPrXML `xml:"p:cNvSpPr"`
	NvPr    struct{}   `xml:"p:nvPr"`
}

type cNvSpPrXML struct {
	TxBox int `xml:"txBox,attr"`
}

type spPrXML struct {
	Xfrm     *xfrmXML     `xml:"a:xfrm,omitempty"`
	PrstGeom *prstGeomXML `xml:"a:prstGeom,omitempty"`
	NoFill   *struct{}    `xml:"a:noFill,omitempty"`
	Ln       *lnXML       `xml:"a:ln,omitempty"`
}

type xfrmXML struct {
	Off offXML `xml:"a:off"`
	Ext extXML `xml:"a:ext"`
}

type offXML struct {
	X int `xml:"x,attr"` // X position in EMUs
	Y int `xml:"y,attr"` // Y position in EMUs
}

type extXML struct {
	Cx int `xml:"cx,attr"` // Width in EMUs
	Cy int `xml:"cy,attr"` // Height in EMUs
}

type prstGeomXML struct {
	Prst  string   `xml:"prst,attr"`
	AvLst struct{} `xml:"a:avLst"`
}

type lnXML struct {
	NoFill struct{} `xml:"a:noFill"`
}

// txBodyXML represents text body content.
type txBodyXML struct {
	BodyPr   bodyPrXML `xml:"a:bodyPr"`
	LstStyle struct{}  `xml:"a:lstStyle"`
	P        []pXML    `xml:"a:p"`
}

type bodyPrXML struct {
	Wrap string `xml:"wrap,attr,omitempty"`
}

// pXML represents a paragraph (one text line of a block).
type pXML struct {
	PPr *pPrXML `xml:"a:pPr,omitempty"`
	R   []rXML  `xml:"a:r"`
}

type pPrXML struct {
	Algn string `xml:"algn,attr,omitempty"`
}

// rXML represents a text run.
type rXML struct {
	RPr *rPrXML `xml:"a:rPr,omitempty"`
	T   string  `xml:"a:t"`
}

type rPrXML struct {
	Sz        int           `xml:"sz,attr,omitempty"` // Hundredths of a point
	SolidFill *solidFillXML `xml:"a:solidFill,omitempty"`
	Latin     *latinXML     `xml:"a:latin,omitempty"`
	Ea        *eaXML        `xml:"a:ea,omitempty"`
}

type solidFillXML struct {
	SrgbClr srgbClrXML `xml:"a:srgbClr"`
}

type srgbClrXML struct {
	Val string `xml:"val,attr"` // RRGGBB
}

type latinXML struct {
	Typeface string `xml:"typeface,attr"`
}

type eaXML struct {
	Typeface string `xml:"typeface,attr"`
}

package pagelayout

import (
	"encoding/xml"
	"strconv"

	"github.com/xietoby/scantailor-advanced/geom"
	"github.com/xietoby/scantailor-advanced/pages"
)

// PageEnumerator supplies the authoritative page list in the project's
// own enumeration order, pairing each durable identity with the small
// numeric ID used inside the project file.
type PageEnumerator interface {
	EnumPages(fn func(id pages.ID, numericID int))
}

// PageResolver resolves a numeric ID from the project file back to a
// durable page identity. False means the ID is unknown in this project.
type PageResolver interface {
	PageID(numericID int) (pages.ID, bool)
}

// Element is the <page-layout> element of the project file. Attribute
// values are kept as strings so a malformed entry degrades to a skipped
// entry instead of failing the whole load.
type Element struct {
	XMLName        xml.Name       `xml:"page-layout"`
	ShowMiddleRect string         `xml:"showMiddleRect,attr"`
	Guides         *GuidesElement `xml:"guides"`
	Pages          []PageElement  `xml:"page"`
}

// GuidesElement holds the ordered guide list. Child elements that are
// not <guide> are ignored by the XML decoder.
type GuidesElement struct {
	Guides []GuideElement `xml:"guide"`
}

// GuideElement is one persisted guide line.
type GuideElement struct {
	Orientation string `xml:"orientation,attr"`
	Position    string `xml:"position,attr"`
}

// PageElement associates a numeric page ID with its parameter payload.
type PageElement struct {
	ID     string         `xml:"id,attr"`
	Params *ParamsElement `xml:"params"`
}

// ParamsElement is the persisted form of a Params record.
type ParamsElement struct {
	HAlign        string          `xml:"halign,attr"`
	VAlign        string          `xml:"valign,attr"`
	NullAlign     string          `xml:"nullAlign,attr"`
	AutoMargins   string          `xml:"autoMargins,attr"`
	HardMarginsMM *MarginsElement `xml:"hardMarginsMM"`
	PageRect      *RectElement    `xml:"pageRect"`
	ContentRect   *RectElement    `xml:"contentRect"`
	ContentSizeMM *SizeElement    `xml:"contentSizeMM"`
}

// MarginsElement carries four-sided margins in millimetres.
type MarginsElement struct {
	Left   string `xml:"left,attr"`
	Top    string `xml:"top,attr"`
	Right  string `xml:"right,attr"`
	Bottom string `xml:"bottom,attr"`
}

// RectElement carries a rectangle in page-local coordinates.
type RectElement struct {
	X      string `xml:"x,attr"`
	Y      string `xml:"y,attr"`
	Width  string `xml:"width,attr"`
	Height string `xml:"height,attr"`
}

// SizeElement carries a physical size in millimetres.
type SizeElement struct {
	Width  string `xml:"width,attr"`
	Height string `xml:"height,attr"`
}

// SaveElement serializes the store. Pages are emitted in the project's
// enumeration order, not the store's map iteration order, so the file is
// stable across saves.
func SaveElement(s *Settings, enum PageEnumerator) *Element {
	el := &Element{ShowMiddleRect: boolAttr(s.ShowingMiddleRect())}

	if guides := s.Guides(); len(guides) > 0 {
		ge := &GuidesElement{}
		for _, g := range guides {
			ge.Guides = append(ge.Guides, GuideElement{
				Orientation: g.Orientation.String(),
				Position:    formatFloat(g.PositionMM),
			})
		}
		el.Guides = ge
	}

	enum.EnumPages(func(id pages.ID, numericID int) {
		p, ok := s.Params(id)
		if !ok {
			return
		}
		el.Pages = append(el.Pages, PageElement{
			ID:     strconv.Itoa(numericID),
			Params: paramsToElement(p),
		})
	})

	return el
}

// LoadElement replaces the store's contents with the element's. Load is
// destructive-replace, never merge. Malformed entries are dropped one by
// one — a page whose parameters cannot be read simply falls back to
// default population on its next visit — and nothing aborts the load.
func LoadElement(s *Settings, el *Element, res PageResolver) {
	s.Clear()
	if el == nil {
		return
	}

	s.EnableShowingMiddleRect(el.ShowMiddleRect == "1")

	if el.Guides != nil {
		var guides []Guide
		for _, ge := range el.Guides.Guides {
			orientation, err := ParseOrientation(ge.Orientation)
			if err != nil {
				continue
			}
			pos, err := strconv.ParseFloat(ge.Position, 64)
			if err != nil {
				continue
			}
			guides = append(guides, Guide{Orientation: orientation, PositionMM: pos})
		}
		s.SetGuides(guides)
	}

	for _, pe := range el.Pages {
		numericID, err := strconv.Atoi(pe.ID)
		if err != nil {
			continue
		}
		id, ok := res.PageID(numericID)
		if !ok || id.IsZero() {
			continue
		}
		if pe.Params == nil {
			continue
		}
		s.SetParams(id, paramsFromElement(pe.Params))
	}
}

func paramsToElement(p Params) *ParamsElement {
	m := p.HardMarginsMM()
	el := &ParamsElement{
		HAlign:      p.Alignment().Hor.String(),
		VAlign:      p.Alignment().Vert.String(),
		NullAlign:   boolAttr(p.Alignment().Null),
		AutoMargins: boolAttr(p.AutoMargins()),
		HardMarginsMM: &MarginsElement{
			Left:   formatFloat(m.Left),
			Top:    formatFloat(m.Top),
			Right:  formatFloat(m.Right),
			Bottom: formatFloat(m.Bottom),
		},
		PageRect:    rectToElement(p.PageRect()),
		ContentRect: rectToElement(p.ContentRect()),
	}
	if size, ok := p.ContentSizeMM(); ok {
		el.ContentSizeMM = &SizeElement{
			Width:  formatFloat(size.Width),
			Height: formatFloat(size.Height),
		}
	}
	return el
}

// paramsFromElement reconstructs a record, tolerating missing pieces:
// absent or unreadable values become zeros, and an unrecognized
// alignment degrades to centered. The record that results is always
// fully populated in the sense the store requires.
func paramsFromElement(el *ParamsElement) Params {
	hor, _ := ParseHAlign(el.HAlign)
	vert, _ := ParseVAlign(el.VAlign)
	align := Alignment{Hor: hor, Vert: vert, Null: el.NullAlign == "1"}

	var margins Margins
	if el.HardMarginsMM != nil {
		margins = Margins{
			Left:   parseFloat(el.HardMarginsMM.Left),
			Top:    parseFloat(el.HardMarginsMM.Top),
			Right:  parseFloat(el.HardMarginsMM.Right),
			Bottom: parseFloat(el.HardMarginsMM.Bottom),
		}
	}

	p := NewParams(margins, align, el.AutoMargins == "1")
	if el.ContentSizeMM != nil {
		p = p.WithContentBox(
			rectFromElement(el.PageRect),
			rectFromElement(el.ContentRect),
			geom.Size{
				Width:  parseFloat(el.ContentSizeMM.Width),
				Height: parseFloat(el.ContentSizeMM.Height),
			},
		)
	}
	return p
}

func rectToElement(r geom.Rect) *RectElement {
	return &RectElement{
		X:      formatFloat(r.X),
		Y:      formatFloat(r.Y),
		Width:  formatFloat(r.Width),
		Height: formatFloat(r.Height),
	}
}

func rectFromElement(el *RectElement) geom.Rect {
	if el == nil {
		return geom.Rect{}
	}
	return geom.Rect{
		X:      parseFloat(el.X),
		Y:      parseFloat(el.Y),
		Width:  parseFloat(el.Width),
		Height: parseFloat(el.Height),
	}
}

func boolAttr(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// parseFloat degrades unreadable values to zero; the codec never fails
// on malformed input.
func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

package project

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/xietoby/scantailor-advanced/pagelayout"
	"github.com/xietoby/scantailor-advanced/pages"
)

// formatVersion is bumped when the file structure changes shape.
const formatVersion = 1

type xmlProject struct {
	XMLName xml.Name   `xml:"project"`
	Version int        `xml:"version,attr"`
	ID      string     `xml:"id,attr"`
	Pages   xmlPages   `xml:"pages"`
	Filters xmlFilters `xml:"filters"`
}

type xmlPages struct {
	Pages []xmlPage `xml:"page"`
}

type xmlPage struct {
	ID       int    `xml:"id,attr"`
	Image    string `xml:"image,attr"`
	SubPage  string `xml:"subPage,attr"`
	WidthPx  int    `xml:"widthPx,attr"`
	HeightPx int    `xml:"heightPx,attr"`
	XDPI     int    `xml:"xdpi,attr"`
	YDPI     int    `xml:"ydpi,attr"`
}

type xmlFilters struct {
	PageLayout *pagelayout.Element `xml:"page-layout"`
}

// Save writes the project file: the page set with its numeric IDs, and
// each filter's element under <filters>.
func (p *Project) Save(w io.Writer, layout *pagelayout.Filter) error {
	doc := xmlProject{
		Version: formatVersion,
		ID:      p.ID().String(),
	}

	p.EnumPages(func(id pages.ID, numericID int) {
		info, _ := p.PageInfo(id)
		doc.Pages.Pages = append(doc.Pages.Pages, xmlPage{
			ID:       numericID,
			Image:    id.Image,
			SubPage:  id.Sub.String(),
			WidthPx:  info.Metadata.WidthPx,
			HeightPx: info.Metadata.HeightPx,
			XDPI:     info.Metadata.DPI.X,
			YDPI:     info.Metadata.DPI.Y,
		})
	})

	if layout != nil {
		doc.Filters.PageLayout = layout.SaveSettings(p)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode project: %w", err)
	}
	return nil
}

// loadResolver maps the file's own numeric page IDs to the identities
// reconstructed from the same file. Filter elements must resolve through
// this, not through the fresh project enumeration, so records survive
// even if page order in the file is unusual.
type loadResolver struct {
	byNumericID map[int]pages.ID
}

func (r loadResolver) PageID(numericID int) (pages.ID, bool) {
	id, ok := r.byNumericID[numericID]
	return id, ok
}

// Load reads a project file. The page set is rebuilt first; pages with
// no usable image path are skipped. Filter state is then restored with
// the filter's own tolerant codec.
func Load(r io.Reader, layout *pagelayout.Filter) (*Project, error) {
	var doc xmlProject
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode project: %w", err)
	}

	p := New()
	if id, err := uuid.Parse(doc.ID); err == nil {
		p.id = id
	}

	res := loadResolver{byNumericID: make(map[int]pages.ID)}
	for _, pe := range doc.Pages.Pages {
		if pe.Image == "" {
			continue
		}
		sub, err := pages.ParseSubPage(pe.SubPage)
		if err != nil {
			sub = pages.SinglePage
		}
		info := pages.Info{
			ID: pages.ID{Image: pe.Image, Sub: sub},
			Metadata: pages.Metadata{
				WidthPx:  pe.WidthPx,
				HeightPx: pe.HeightPx,
				DPI:      pages.DPI{X: pe.XDPI, Y: pe.YDPI},
			},
		}
		if err := p.AddPage(info); err != nil {
			continue
		}
		res.byNumericID[pe.ID] = info.ID
	}

	if layout != nil {
		layout.LoadSettings(doc.Filters.PageLayout, res)
	}
	return p, nil
}

package pagelayout

import "github.com/xietoby/scantailor-advanced/geom"

// Margins is a four-sided distance in millimetres.
type Margins struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// Params is the complete set of layout parameters for one page. Values
// are immutable once constructed: mutation happens by installing a new
// Params into the store, never by writing through a shared one. That
// whole-record replacement is what lets the store guarantee readers never
// observe a half-updated record under its coarse lock.
//
// A Params value always carries hard margins and an alignment. The
// content box (contentRect plus the derived contentSizeMM) is optional:
// it is absent until a content-detection pass supplies it, and absent
// again after invalidation.
type Params struct {
	hardMarginsMM  Margins
	pageRect       geom.Rect
	contentRect    geom.Rect
	contentSizeMM  geom.Size
	hasContentSize bool
	alignment      Alignment
	autoMargins    bool
}

// NewParams constructs a record with no content box yet.
func NewParams(hardMarginsMM Margins, alignment Alignment, autoMargins bool) Params {
	return Params{
		hardMarginsMM: hardMarginsMM,
		alignment:     alignment,
		autoMargins:   autoMargins,
	}
}

// HardMarginsMM returns the hard margins in millimetres.
func (p Params) HardMarginsMM() Margins { return p.hardMarginsMM }

// PageRect returns the page rectangle in page-local coordinates.
func (p Params) PageRect() geom.Rect { return p.pageRect }

// ContentRect returns the content rectangle in page-local coordinates.
// It is the zero rectangle until a content box has been set.
func (p Params) ContentRect() geom.Rect { return p.contentRect }

// ContentSizeMM returns the physical content size. The second return
// value is false while no content box is known.
func (p Params) ContentSizeMM() (geom.Size, bool) {
	return p.contentSizeMM, p.hasContentSize
}

// Alignment returns the placement policy.
func (p Params) Alignment() Alignment { return p.alignment }

// AutoMargins reports whether margins are derived automatically instead
// of taken from HardMarginsMM.
func (p Params) AutoMargins() bool { return p.autoMargins }

// WithHardMarginsMM returns a copy with different hard margins.
func (p Params) WithHardMarginsMM(m Margins) Params {
	p.hardMarginsMM = m
	return p
}

// WithAlignment returns a copy with a different placement policy.
func (p Params) WithAlignment(a Alignment) Params {
	p.alignment = a
	return p
}

// WithAutoMargins returns a copy with the auto-margins flag changed.
func (p Params) WithAutoMargins(auto bool) Params {
	p.autoMargins = auto
	return p
}

// WithContentBox returns a copy carrying a content box: the rectangles it
// was measured from and the derived physical size.
func (p Params) WithContentBox(pageRect, contentRect geom.Rect, sizeMM geom.Size) Params {
	p.pageRect = pageRect
	p.contentRect = contentRect
	p.contentSizeMM = sizeMM
	p.hasContentSize = true
	return p
}

// WithoutContentBox returns a copy with the content box cleared. Margins
// and alignment are untouched.
func (p Params) WithoutContentBox() Params {
	p.pageRect = geom.Rect{}
	p.contentRect = geom.Rect{}
	p.contentSizeMM = geom.Size{}
	p.hasContentSize = false
	return p
}

// Equal reports field-for-field equality.
func (p Params) Equal(other Params) bool {
	return p == other
}

package pages

import "fmt"

// SubPage identifies which half of a scanned image a page occupies.
// Two-page book scans are split into a left and a right page that share
// one source image.
type SubPage int

const (
	SinglePage SubPage = iota
	LeftPage
	RightPage
)

// String returns the persisted name of the sub-page.
func (s SubPage) String() string {
	switch s {
	case LeftPage:
		return "left"
	case RightPage:
		return "right"
	default:
		return "single"
	}
}

// ParseSubPage maps a persisted sub-page name back to its value.
func ParseSubPage(s string) (SubPage, error) {
	switch s {
	case "single":
		return SinglePage, nil
	case "left":
		return LeftPage, nil
	case "right":
		return RightPage, nil
	default:
		return SinglePage, fmt.Errorf("pages: unknown sub-page %q", s)
	}
}

// ID durably identifies one page within a project. It is a comparable
// value usable as a map key, and stays stable across sessions unless the
// project is explicitly relinked (for example after the underlying image
// files were moved).
type ID struct {
	// Image is the path of the source image file.
	Image string
	// Sub distinguishes pages that share a source image.
	Sub SubPage
}

// IsZero reports whether the ID identifies no page.
func (id ID) IsZero() bool {
	return id.Image == ""
}

// String formats the ID for logs and error messages.
func (id ID) String() string {
	if id.Sub == SinglePage {
		return id.Image
	}
	return id.Image + "#" + id.Sub.String()
}

// DPI is a page's resolution in dots per inch, per axis.
type DPI struct {
	X int
	Y int
}

// IsValid reports whether both resolutions are usable.
func (d DPI) IsValid() bool {
	return d.X > 0 && d.Y > 0
}

// Metadata describes the physical properties of a page's source image.
type Metadata struct {
	WidthPx  int
	HeightPx int
	DPI      DPI
}

// Info pairs a page identity with its metadata. It is the value handed to
// pipeline stages; stages that need more than this (the pixels themselves)
// receive them separately.
type Info struct {
	ID       ID
	Metadata Metadata
}

// Sequence is an ordered list of pages, in the project's own enumeration
// order.
type Sequence []Info

// IDSet returns the set of identities in the sequence.
func (s Sequence) IDSet() map[ID]struct{} {
	set := make(map[ID]struct{}, len(s))
	for _, info := range s {
		set[info.ID] = struct{}{}
	}
	return set
}

// Find returns the Info for the given identity.
func (s Sequence) Find(id ID) (Info, bool) {
	for _, info := range s {
		if info.ID == id {
			return info, true
		}
	}
	return Info{}, false
}

// View selects the granularity a stage observes the project at: whole
// source images, or the individual pages split out of them.
type View int

const (
	ImageView View = iota
	PageView
)

// Relinker remaps page identities after the project's underlying files
// were relocated or renumbered. A false second return value ("not
// mapped") means the page no longer exists.
type Relinker interface {
	Relink(old ID) (ID, bool)
}

// RelinkerFunc adapts a plain function to the Relinker interface.
type RelinkerFunc func(old ID) (ID, bool)

// Relink calls f.
func (f RelinkerFunc) Relink(old ID) (ID, bool) {
	return f(old)
}

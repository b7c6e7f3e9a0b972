package pagelayout

import (
	"fmt"
	"strings"
)

// HAlign anchors the content horizontally inside the page frame.
type HAlign int

const (
	HAlignCenter HAlign = iota
	HAlignLeft
	HAlignRight
)

// VAlign anchors the content vertically inside the page frame.
type VAlign int

const (
	VAlignCenter VAlign = iota
	VAlignTop
	VAlignBottom
)

// Alignment is the placement policy for a page's content within the
// uniform page frame. Null disables alignment entirely: the page keeps
// its own size instead of being grown to match the rest of the project.
type Alignment struct {
	Hor  HAlign
	Vert VAlign
	Null bool
}

func (h HAlign) String() string {
	switch h {
	case HAlignLeft:
		return "left"
	case HAlignRight:
		return "right"
	default:
		return "center"
	}
}

func (v VAlign) String() string {
	switch v {
	case VAlignTop:
		return "top"
	case VAlignBottom:
		return "bottom"
	default:
		return "center"
	}
}

// ParseHAlign maps a persisted name to its HAlign.
func ParseHAlign(s string) (HAlign, error) {
	switch s {
	case "left":
		return HAlignLeft, nil
	case "right":
		return HAlignRight, nil
	case "center", "":
		return HAlignCenter, nil
	default:
		return HAlignCenter, fmt.Errorf("pagelayout: unknown horizontal alignment %q", s)
	}
}

// ParseVAlign maps a persisted name to its VAlign.
func ParseVAlign(s string) (VAlign, error) {
	switch s {
	case "top":
		return VAlignTop, nil
	case "bottom":
		return VAlignBottom, nil
	case "center", "":
		return VAlignCenter, nil
	default:
		return VAlignCenter, fmt.Errorf("pagelayout: unknown vertical alignment %q", s)
	}
}

// ParseAlignment understands the combined form used in the defaults file:
// "center", "top-left", "bottom-right" and so on. "none" yields the null
// alignment.
func ParseAlignment(s string) (Alignment, error) {
	switch s {
	case "", "center":
		return Alignment{}, nil
	case "none":
		return Alignment{Null: true}, nil
	}
	vs, hs, found := strings.Cut(s, "-")
	if !found {
		// A single word is either a vertical or a horizontal anchor.
		if h, err := ParseHAlign(s); err == nil {
			return Alignment{Hor: h}, nil
		}
		v, err := ParseVAlign(s)
		if err != nil {
			return Alignment{}, fmt.Errorf("pagelayout: unknown alignment %q", s)
		}
		return Alignment{Vert: v}, nil
	}
	v, err := ParseVAlign(vs)
	if err != nil {
		return Alignment{}, err
	}
	h, err := ParseHAlign(hs)
	if err != nil {
		return Alignment{}, err
	}
	return Alignment{Hor: h, Vert: v}, nil
}

package pagelayout

import "fmt"

// Orientation of a guide line.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// ParseOrientation maps a persisted orientation name to its value.
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "horizontal":
		return Horizontal, nil
	case "vertical":
		return Vertical, nil
	default:
		return Horizontal, fmt.Errorf("pagelayout: unknown orientation %q", s)
	}
}

// Guide is a project-wide alignment guide line the user places in the
// editor. Guides are not keyed by page: the same set shows on every page.
type Guide struct {
	Orientation Orientation
	// PositionMM is the signed offset from the page frame's center,
	// in millimetres.
	PositionMM float64
}

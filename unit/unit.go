// Package unit provides the unit systems a user may configure margins in,
// and DPI-aware conversion between them.
//
// Conversion between physical units (millimetres, centimetres, inches) is
// a constant factor, but pixels are device-relative: converting to or from
// pixels must go through the specific page's resolution, which may differ
// per axis. That is why [Converter] is constructed from a DPI pair rather
// than being a set of package-level functions.
package unit

import "fmt"

// System identifies a measurement unit.
type System int

const (
	Pixels System = iota
	Millimetres
	Centimetres
	Inches
)

// String returns the conventional abbreviation for the unit.
func (s System) String() string {
	switch s {
	case Pixels:
		return "px"
	case Millimetres:
		return "mm"
	case Centimetres:
		return "cm"
	case Inches:
		return "in"
	default:
		return fmt.Sprintf("System(%d)", int(s))
	}
}

// Parse maps a unit abbreviation to its System. Unknown strings report
// an error so callers can fall back to their own default.
func Parse(s string) (System, error) {
	switch s {
	case "px":
		return Pixels, nil
	case "mm":
		return Millimetres, nil
	case "cm":
		return Centimetres, nil
	case "in":
		return Inches, nil
	default:
		return Millimetres, fmt.Errorf("unit: unknown unit system %q", s)
	}
}

const mmPerInch = 25.4

// Converter converts values between unit systems for one specific page.
// The horizontal and vertical resolutions are independent because scanners
// commonly produce non-square pixels.
type Converter struct {
	xdpi float64
	ydpi float64
}

// NewConverter creates a converter for a page with the given per-axis
// resolution in dots per inch.
func NewConverter(xdpi, ydpi float64) Converter {
	return Converter{xdpi: xdpi, ydpi: ydpi}
}

// Convert converts a horizontal and a vertical measurement from one unit
// system to another. The two values are converted together because
// pixel conversions apply a different factor per axis.
func (c Converter) Convert(horValue, vertValue float64, from, to System) (float64, float64) {
	if from == to {
		return horValue, vertValue
	}
	horMM, vertMM := c.toMM(horValue, vertValue, from)
	return c.fromMM(horMM, vertMM, to)
}

func (c Converter) toMM(hor, vert float64, from System) (float64, float64) {
	switch from {
	case Pixels:
		if c.xdpi <= 0 || c.ydpi <= 0 {
			return 0, 0
		}
		return hor / c.xdpi * mmPerInch, vert / c.ydpi * mmPerInch
	case Centimetres:
		return hor * 10, vert * 10
	case Inches:
		return hor * mmPerInch, vert * mmPerInch
	default:
		return hor, vert
	}
}

func (c Converter) fromMM(hor, vert float64, to System) (float64, float64) {
	switch to {
	case Pixels:
		return hor / mmPerInch * c.xdpi, vert / mmPerInch * c.ydpi
	case Centimetres:
		return hor / 10, vert / 10
	case Inches:
		return hor / mmPerInch, vert / mmPerInch
	default:
		return hor, vert
	}
}

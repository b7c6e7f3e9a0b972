package pagelayout

import (
	"github.com/xietoby/scantailor-advanced/config"
	"github.com/xietoby/scantailor-advanced/pages"
	"github.com/xietoby/scantailor-advanced/unit"
)

// Defaults is the global starting point for pages that have no record
// yet. Margin values are expressed in Units; they only become concrete
// millimetres once combined with a specific page's resolution.
type Defaults struct {
	Units       unit.System
	HardMargins Margins
	Alignment   Alignment
	AutoMargins bool
}

// DefaultsFromConfig interprets the configured defaults. Unrecognized
// unit or alignment names degrade to millimetres and centered rather
// than failing: defaults are never load-bearing.
func DefaultsFromConfig(cfg config.PageLayout) Defaults {
	units, err := unit.Parse(cfg.Units)
	if err != nil {
		units = unit.Millimetres
	}
	align, err := ParseAlignment(cfg.Alignment)
	if err != nil {
		align = Alignment{}
	}
	return Defaults{
		Units: units,
		HardMargins: Margins{
			Left:   cfg.MarginLeft,
			Top:    cfg.MarginTop,
			Right:  cfg.MarginRight,
			Bottom: cfg.MarginBottom,
		},
		Alignment:   align,
		AutoMargins: cfg.AutoMargins,
	}
}

// PopulateDefaults installs a default record for the page unless one
// already exists. Idempotent: a second application is a no-op.
//
// The configured margins are converted into millimetres through the
// page's own resolution. For physical source units the conversion is a
// constant factor, but pixel margins divide by the page's specific DPI,
// which is why a single global configuration still yields physically
// correct per-page values.
func PopulateDefaults(s *Settings, page pages.Info, d Defaults) {
	if _, ok := s.Params(page.ID); ok {
		return
	}

	dpi := page.Metadata.DPI
	conv := unit.NewConverter(float64(dpi.X), float64(dpi.Y))
	left, top := conv.Convert(d.HardMargins.Left, d.HardMargins.Top, d.Units, unit.Millimetres)
	right, bottom := conv.Convert(d.HardMargins.Right, d.HardMargins.Bottom, d.Units, unit.Millimetres)

	marginsMM := Margins{Left: left, Top: top, Right: right, Bottom: bottom}
	s.SetParams(page.ID, NewParams(marginsMM, d.Alignment, d.AutoMargins))
}

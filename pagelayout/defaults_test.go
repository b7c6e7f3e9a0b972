package pagelayout

import (
	"math"
	"testing"

	"github.com/xietoby/scantailor-advanced/config"
	"github.com/xietoby/scantailor-advanced/pages"
	"github.com/xietoby/scantailor-advanced/unit"
)

const epsilon = 0.0001

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestPopulateDefaultsIdempotent(t *testing.T) {
	s := NewSettings()
	page := testPageInfo(1)
	d := Defaults{
		Units:       unit.Millimetres,
		HardMargins: Margins{Left: 10, Top: 5, Right: 10, Bottom: 5},
	}

	PopulateDefaults(s, page, d)
	first, ok := s.Params(page.ID)
	if !ok {
		t.Fatal("no record after population")
	}

	// A user edit must survive later re-population.
	edited := first.WithHardMarginsMM(Margins{Left: 30, Top: 30, Right: 30, Bottom: 30})
	s.SetParams(page.ID, edited)
	PopulateDefaults(s, page, d)

	got, _ := s.Params(page.ID)
	if !got.Equal(edited) {
		t.Errorf("re-population overwrote the record: %+v", got)
	}
}

func TestPopulateDefaultsUnitConversion(t *testing.T) {
	tests := []struct {
		name    string
		units   unit.System
		margins Margins
		dpi     pages.DPI
		want    Margins
	}{
		{
			name:    "millimetres pass through",
			units:   unit.Millimetres,
			margins: Margins{Left: 10, Top: 5, Right: 10, Bottom: 5},
			dpi:     pages.DPI{X: 300, Y: 300},
			want:    Margins{Left: 10, Top: 5, Right: 10, Bottom: 5},
		},
		{
			name:    "inches scale by 25.4",
			units:   unit.Inches,
			margins: Margins{Left: 1, Top: 0.5, Right: 1, Bottom: 0.5},
			dpi:     pages.DPI{X: 300, Y: 300},
			want:    Margins{Left: 25.4, Top: 12.7, Right: 25.4, Bottom: 12.7},
		},
		{
			// Pixel margins divide by each page's own DPI per axis.
			name:    "pixels through per-axis dpi",
			units:   unit.Pixels,
			margins: Margins{Left: 300, Top: 150, Right: 600, Bottom: 300},
			dpi:     pages.DPI{X: 300, Y: 150},
			want:    Margins{Left: 25.4, Top: 25.4, Right: 50.8, Bottom: 50.8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSettings()
			page := testPageInfo(1)
			page.Metadata.DPI = tt.dpi
			PopulateDefaults(s, page, Defaults{Units: tt.units, HardMargins: tt.margins})

			got, ok := s.Params(page.ID)
			if !ok {
				t.Fatal("no record after population")
			}
			m := got.HardMarginsMM()
			for _, pair := range []struct{ got, want float64 }{
				{m.Left, tt.want.Left}, {m.Top, tt.want.Top},
				{m.Right, tt.want.Right}, {m.Bottom, tt.want.Bottom},
			} {
				if !almostEqual(pair.got, pair.want) {
					t.Errorf("margins = %+v, want %+v", m, tt.want)
					break
				}
			}
			if _, ok := got.ContentSizeMM(); ok {
				t.Error("fresh default record carries a content size")
			}
		})
	}
}

func TestDefaultsFromConfig(t *testing.T) {
	cfg := config.PageLayout{
		Units:        "in",
		MarginLeft:   1,
		MarginTop:    0.5,
		MarginRight:  1,
		MarginBottom: 0.5,
		Alignment:    "top-left",
		AutoMargins:  true,
	}

	d := DefaultsFromConfig(cfg)
	if d.Units != unit.Inches {
		t.Errorf("Units = %v, want inches", d.Units)
	}
	if d.Alignment != (Alignment{Hor: HAlignLeft, Vert: VAlignTop}) {
		t.Errorf("Alignment = %+v", d.Alignment)
	}
	if !d.AutoMargins {
		t.Error("AutoMargins not carried over")
	}
}

func TestDefaultsFromConfigDegrades(t *testing.T) {
	d := DefaultsFromConfig(config.PageLayout{Units: "furlongs", Alignment: "sideways"})
	if d.Units != unit.Millimetres {
		t.Errorf("Units = %v, want millimetres fallback", d.Units)
	}
	if d.Alignment != (Alignment{}) {
		t.Errorf("Alignment = %+v, want centered fallback", d.Alignment)
	}
}

package project

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/xietoby/scantailor-advanced/geom"
	"github.com/xietoby/scantailor-advanced/pagelayout"
	"github.com/xietoby/scantailor-advanced/pages"
	"github.com/xietoby/scantailor-advanced/unit"
)

func testInfo(n int) pages.Info {
	return pages.Info{
		ID: pages.ID{Image: fmt.Sprintf("/scans/page%02d.tif", n)},
		Metadata: pages.Metadata{
			WidthPx:  2480,
			HeightPx: 3508,
			DPI:      pages.DPI{X: 300, Y: 300},
		},
	}
}

// stubPages satisfies pagelayout.ProjectPages for filters whose project
// hook is never exercised in the test.
type stubPages struct{}

func (stubPages) ToPageSequence(v pages.View) pages.Sequence { return nil }

func testFilter() *pagelayout.Filter {
	return pagelayout.NewFilter(stubPages{}, pagelayout.Defaults{
		Units:       unit.Millimetres,
		HardMargins: pagelayout.Margins{Left: 10, Top: 5, Right: 10, Bottom: 5},
	})
}

func TestAddRemovePages(t *testing.T) {
	p := New()
	for n := 1; n <= 3; n++ {
		if err := p.AddPage(testInfo(n)); err != nil {
			t.Fatalf("AddPage(%d): %v", n, err)
		}
	}
	if err := p.AddPage(testInfo(2)); err == nil {
		t.Error("duplicate AddPage() succeeded")
	}
	if p.NumPages() != 3 {
		t.Fatalf("NumPages() = %d, want 3", p.NumPages())
	}

	p.RemovePage(testInfo(2).ID)
	if p.NumPages() != 2 {
		t.Fatalf("NumPages() after removal = %d, want 2", p.NumPages())
	}

	// Numeric IDs shift to stay dense after removal.
	if id, ok := p.PageID(1); !ok || id != testInfo(3).ID {
		t.Errorf("PageID(1) = %v, %v, want page 3", id, ok)
	}
	if _, ok := p.PageID(2); ok {
		t.Error("PageID() past the end reported ok")
	}
	if _, ok := p.PageID(-1); ok {
		t.Error("PageID(-1) reported ok")
	}

	// Removing an absent page is a no-op.
	p.RemovePage(testInfo(2).ID)
	if p.NumPages() != 2 {
		t.Error("removing an absent page changed the count")
	}
}

func TestEnumPages(t *testing.T) {
	p := New()
	for n := 1; n <= 3; n++ {
		if err := p.AddPage(testInfo(n)); err != nil {
			t.Fatal(err)
		}
	}

	var got []int
	p.EnumPages(func(id pages.ID, numericID int) {
		got = append(got, numericID)
		want, ok := p.PageID(numericID)
		if !ok || want != id {
			t.Errorf("enumeration and resolution disagree at %d", numericID)
		}
	})
	if len(got) != 3 || got[0] != 0 || got[2] != 2 {
		t.Errorf("numeric IDs = %v", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	p := New()
	layout := testFilter()
	for n := 1; n <= 3; n++ {
		info := testInfo(n)
		if n == 2 {
			info.ID.Sub = pages.LeftPage
		}
		if err := p.AddPage(info); err != nil {
			t.Fatal(err)
		}
		layout.LoadDefaultSettings(info)
	}

	// Give one page a full record so the optional pieces round-trip too.
	id1 := testInfo(1).ID
	params, _ := layout.Settings().Params(id1)
	layout.Settings().SetParams(id1, params.WithContentBox(
		geom.NewRect(0, 0, 2480, 3508),
		geom.NewRect(100, 150, 2200, 3100),
		geom.Size{Width: 186.267, Height: 262.467},
	))
	layout.Settings().AddGuide(pagelayout.Guide{Orientation: pagelayout.Vertical, PositionMM: 12.5})

	var buf bytes.Buffer
	if err := p.Save(&buf, layout); err != nil {
		t.Fatalf("Save(): %v", err)
	}

	layout2 := testFilter()
	p2, err := Load(&buf, layout2)
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}

	if p2.ID() != p.ID() {
		t.Error("project identifier lost in round trip")
	}
	if p2.NumPages() != 3 {
		t.Fatalf("NumPages() = %d, want 3", p2.NumPages())
	}
	split := pages.ID{Image: testInfo(2).ID.Image, Sub: pages.LeftPage}
	info, ok := p2.PageInfo(split)
	if !ok {
		t.Fatal("split page lost in round trip")
	}
	if info.Metadata.DPI != (pages.DPI{X: 300, Y: 300}) {
		t.Errorf("metadata = %+v", info.Metadata)
	}

	for n := 1; n <= 3; n++ {
		id := testInfo(n).ID
		if n == 2 {
			id.Sub = pages.LeftPage
		}
		want, _ := layout.Settings().Params(id)
		got, ok := layout2.Settings().Params(id)
		if !ok {
			t.Fatalf("record for %s lost in round trip", id)
		}
		if !got.Equal(want) {
			t.Errorf("record for %s = %+v, want %+v", id, got, want)
		}
	}

	guides := layout2.Settings().Guides()
	if len(guides) != 1 || guides[0].PositionMM != 12.5 {
		t.Errorf("guides = %+v", guides)
	}
}

func TestLoadToleratesBadPages(t *testing.T) {
	raw := `<?xml version="1.0" encoding="UTF-8"?>
<project version="1" id="not-a-uuid">
  <pages>
    <page id="0" image="/scans/page01.tif" subPage="single" widthPx="100" heightPx="100" xdpi="300" ydpi="300"></page>
    <page id="1" image="" subPage="single" widthPx="100" heightPx="100" xdpi="300" ydpi="300"></page>
    <page id="2" image="/scans/page03.tif" subPage="sideways" widthPx="100" heightPx="100" xdpi="300" ydpi="300"></page>
    <page id="3" image="/scans/page01.tif" subPage="single" widthPx="100" heightPx="100" xdpi="300" ydpi="300"></page>
  </pages>
  <filters>
    <page-layout showMiddleRect="0">
      <page id="2">
        <params halign="center" valign="center" nullAlign="0" autoMargins="0">
          <hardMarginsMM left="10" top="5" right="10" bottom="5"/>
        </params>
      </page>
    </page-layout>
  </filters>
</project>`

	layout := testFilter()
	p, err := Load(strings.NewReader(raw), layout)
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}

	// Empty image path skipped, duplicate skipped, bad subPage degrades.
	if p.NumPages() != 2 {
		t.Fatalf("NumPages() = %d, want 2", p.NumPages())
	}
	if _, ok := p.PageInfo(pages.ID{Image: "/scans/page03.tif"}); !ok {
		t.Error("page with unknown subPage was dropped instead of degraded")
	}

	// The filter record resolves through the file's own IDs, not positions.
	got, ok := layout.Settings().Params(pages.ID{Image: "/scans/page03.tif"})
	if !ok {
		t.Fatal("filter record for file ID 2 not resolved")
	}
	if got.HardMarginsMM() != (pagelayout.Margins{Left: 10, Top: 5, Right: 10, Bottom: 5}) {
		t.Errorf("margins = %+v", got.HardMarginsMM())
	}
}

func TestLoadMalformedDocument(t *testing.T) {
	if _, err := Load(strings.NewReader("<project"), testFilter()); err == nil {
		t.Error("Load() of truncated XML succeeded")
	}
}

func TestRelink(t *testing.T) {
	p := New()
	for n := 1; n <= 2; n++ {
		if err := p.AddPage(testInfo(n)); err != nil {
			t.Fatal(err)
		}
	}

	p.Relink(pages.RelinkerFunc(func(old pages.ID) (pages.ID, bool) {
		if old == testInfo(1).ID {
			return pages.ID{Image: "/moved/page01.tif"}, true
		}
		return pages.ID{}, false
	}))

	if _, ok := p.PageInfo(pages.ID{Image: "/moved/page01.tif"}); !ok {
		t.Error("relinked page not reachable under new identity")
	}
	if _, ok := p.PageInfo(testInfo(1).ID); ok {
		t.Error("relinked page still reachable under old identity")
	}
	// Unmapped pages keep their identity in the project.
	if _, ok := p.PageInfo(testInfo(2).ID); !ok {
		t.Error("unmapped page lost its identity")
	}
	if p.NumPages() != 2 {
		t.Errorf("NumPages() = %d, want 2", p.NumPages())
	}
}

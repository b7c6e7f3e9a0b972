package output

import (
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/xietoby/scantailor-advanced/geom"
	"github.com/xietoby/scantailor-advanced/pages"
	"github.com/xietoby/scantailor-advanced/pipeline"
)

func testInfo(img string) pages.Info {
	return pages.Info{
		ID: pages.ID{Image: img},
		Metadata: pages.Metadata{
			WidthPx: 100, HeightPx: 100,
			DPI: pages.DPI{X: 300, Y: 300},
		},
	}
}

func testData(info pages.Info) *pipeline.PageData {
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			img.Set(x, y, color.Gray{Y: 40})
		}
	}
	return &pipeline.PageData{Page: info, Image: img, Xform: geom.Identity()}
}

func testParams() Params {
	return Params{
		OutRect:     geom.NewRect(-10, -10, 120, 120),
		ContentRect: geom.NewRect(0, 0, 100, 100),
		DPI:         pages.DPI{X: 300, Y: 300},
	}
}

func TestFingerprint(t *testing.T) {
	base := testParams()

	same := testParams()
	if base.Fingerprint() != same.Fingerprint() {
		t.Error("equal params produced different fingerprints")
	}

	variants := []Params{
		{OutRect: geom.NewRect(-10, -10, 121, 120), ContentRect: base.ContentRect, DPI: base.DPI},
		{OutRect: base.OutRect, ContentRect: geom.NewRect(1, 0, 100, 100), DPI: base.DPI},
		{OutRect: base.OutRect, ContentRect: base.ContentRect, DPI: pages.DPI{X: 300, Y: 301}},
	}
	for i, v := range variants {
		if v.Fingerprint() == base.Fingerprint() {
			t.Errorf("variant %d collided with the base fingerprint", i)
		}
	}
}

func TestProcessWritesAndSkips(t *testing.T) {
	dir := t.TempDir()
	s := NewSettings(dir)
	info := testInfo("/scans/page01.tif")
	task := NewTask(s, info.ID, true, false)
	p := testParams()

	if err := task.Process(context.Background(), testData(info), p); err != nil {
		t.Fatalf("Process(): %v", err)
	}

	path := filepath.Join(dir, "page01.png")
	st, err := os.Stat(path)
	if err != nil {
		t.Fatalf("output file missing: %v", err)
	}

	if fp, ok := s.Fingerprint(info.ID); !ok || fp != p.Fingerprint() {
		t.Error("fingerprint not recorded")
	}
	if !NewCacheDrivenTask(s).Check(info, p) {
		t.Error("freshly rendered output reported stale")
	}

	// Unchanged params: the render is skipped, the file untouched.
	if err := task.Process(context.Background(), testData(info), p); err != nil {
		t.Fatalf("second Process(): %v", err)
	}
	st2, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if !st2.ModTime().Equal(st.ModTime()) {
		t.Error("unchanged params re-rendered the file")
	}

	// Changed params invalidate the check and force a render.
	p2 := p
	p2.OutRect = geom.NewRect(-20, -20, 140, 140)
	if NewCacheDrivenTask(s).Check(info, p2) {
		t.Error("changed params reported valid")
	}
	if err := task.Process(context.Background(), testData(info), p2); err != nil {
		t.Fatalf("re-render: %v", err)
	}
	if !NewCacheDrivenTask(s).Check(info, p2) {
		t.Error("re-render did not restore validity")
	}
}

func TestCheckRequiresFile(t *testing.T) {
	dir := t.TempDir()
	s := NewSettings(dir)
	info := testInfo("/scans/page01.tif")
	p := testParams()

	if err := NewTask(s, info.ID, true, false).Process(context.Background(), testData(info), p); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(filepath.Join(dir, "page01.png")); err != nil {
		t.Fatal(err)
	}

	if NewCacheDrivenTask(s).Check(info, p) {
		t.Error("missing file reported valid")
	}
}

func TestProcessInMemory(t *testing.T) {
	s := NewSettings("")
	info := testInfo("/scans/page01.tif")
	p := testParams()

	// No output directory: no pixels required, the store is authoritative.
	data := &pipeline.PageData{Page: info, Xform: geom.Identity()}
	if err := NewTask(s, info.ID, true, false).Process(context.Background(), data, p); err != nil {
		t.Fatalf("Process(): %v", err)
	}
	if !NewCacheDrivenTask(s).Check(info, p) {
		t.Error("in-memory output reported stale")
	}
}

func TestProcessMissingImage(t *testing.T) {
	s := NewSettings(t.TempDir())
	info := testInfo("/scans/page01.tif")
	data := &pipeline.PageData{Page: info, Xform: geom.Identity()}

	err := NewTask(s, info.ID, true, false).Process(context.Background(), data, testParams())
	if !errors.Is(err, ErrNoImage) {
		t.Errorf("Process() error = %v, want ErrNoImage", err)
	}
	if _, ok := s.Fingerprint(info.ID); ok {
		t.Error("failed render recorded a fingerprint")
	}
}

func TestSubPageOutputName(t *testing.T) {
	dir := t.TempDir()
	s := NewSettings(dir)
	info := testInfo("/scans/spread.tif")
	info.ID.Sub = pages.LeftPage

	if err := NewTask(s, info.ID, true, false).Process(context.Background(), testData(info), testParams()); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "spread_left.png")); err != nil {
		t.Errorf("left sub-page output missing: %v", err)
	}
}

func TestSettingsPruneAndRelink(t *testing.T) {
	s := NewSettings("")
	a := pages.ID{Image: "a.tif"}
	b := pages.ID{Image: "b.tif"}
	s.SetFingerprint(a, 1)
	s.SetFingerprint(b, 2)

	s.RemovePagesMissingFrom(pages.Sequence{{ID: a}})
	if _, ok := s.Fingerprint(b); ok {
		t.Error("pruned entry survived")
	}

	s.PerformRelinking(pages.RelinkerFunc(func(old pages.ID) (pages.ID, bool) {
		if old == a {
			return pages.ID{Image: "moved.tif"}, true
		}
		return pages.ID{}, false
	}))
	if fp, ok := s.Fingerprint(pages.ID{Image: "moved.tif"}); !ok || fp != 1 {
		t.Error("relinked entry missing under new key")
	}
	if _, ok := s.Fingerprint(a); ok {
		t.Error("relinked entry still under old key")
	}

	s.Invalidate(pages.ID{Image: "moved.tif"})
	if _, ok := s.Fingerprint(pages.ID{Image: "moved.tif"}); ok {
		t.Error("invalidated entry survived")
	}
}

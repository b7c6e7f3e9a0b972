package pagelayout

import (
	"sort"
	"testing"

	"github.com/xietoby/scantailor-advanced/pages"
)

func TestOrderByWidth(t *testing.T) {
	s := NewSettings()
	s.SetParams(testPageID(1), testParamsWithContent(200, 100))
	s.SetParams(testPageID(2), testParamsWithContent(100, 300))
	s.SetParams(testPageID(3), testParams()) // no content size
	order := OrderByWidth(s)

	infos := []pages.Info{testPageInfo(1), testPageInfo(2), testPageInfo(3)}
	sort.SliceStable(infos, func(i, j int) bool {
		return order.Precedes(infos[i], false, infos[j], false)
	})

	// No hard size sorts first, then increasing width.
	want := []pages.ID{testPageID(3), testPageID(2), testPageID(1)}
	for i, id := range want {
		if infos[i].ID != id {
			t.Fatalf("position %d = %s, want %s", i, infos[i].ID, id)
		}
	}
}

func TestOrderByHeight(t *testing.T) {
	s := NewSettings()
	s.SetParams(testPageID(1), testParamsWithContent(200, 100))
	s.SetParams(testPageID(2), testParamsWithContent(100, 300))
	order := OrderByHeight(s)

	if !order.Precedes(testPageInfo(1), false, testPageInfo(2), false) {
		t.Error("shorter page did not precede taller")
	}
	if order.Precedes(testPageInfo(2), false, testPageInfo(1), false) {
		t.Error("taller page preceded shorter")
	}
}

func TestOrderIncompleteFirst(t *testing.T) {
	s := NewSettings()
	s.SetParams(testPageID(1), testParamsWithContent(100, 100))
	s.SetParams(testPageID(2), testParamsWithContent(200, 200))
	order := OrderByWidth(s)

	if !order.Precedes(testPageInfo(2), true, testPageInfo(1), false) {
		t.Error("incomplete page did not sort first")
	}
	if order.Precedes(testPageInfo(1), false, testPageInfo(2), true) {
		t.Error("complete page preceded incomplete one")
	}
}

func TestOrderByDeviation(t *testing.T) {
	s := NewSettings()
	// Two typical pages and one outlier.
	s.SetParams(testPageID(1), testParamsWithContent(150, 200))
	s.SetParams(testPageID(2), testParamsWithContent(152, 202))
	s.SetParams(testPageID(3), testParamsWithContent(300, 420))
	order := OrderByDeviation(s)

	infos := []pages.Info{testPageInfo(1), testPageInfo(2), testPageInfo(3)}
	sort.SliceStable(infos, func(i, j int) bool {
		return order.Precedes(infos[i], false, infos[j], false)
	})

	if infos[0].ID != testPageID(3) {
		t.Errorf("outlier sorted at position of %s, want first", infos[0].ID)
	}
}

func TestOrderTieBreaksOnID(t *testing.T) {
	s := NewSettings()
	s.SetParams(testPageID(1), testParamsWithContent(100, 100))
	s.SetParams(testPageID(2), testParamsWithContent(100, 100))
	order := OrderByWidth(s)

	if !order.Precedes(testPageInfo(1), false, testPageInfo(2), false) {
		t.Error("equal sizes did not tie-break on identity")
	}
	if order.Precedes(testPageInfo(2), false, testPageInfo(1), false) {
		t.Error("tie-break is not antisymmetric")
	}
}

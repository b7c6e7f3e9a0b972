package pagelayout

import (
	"math"

	"github.com/xietoby/scantailor-advanced/geom"
	"github.com/xietoby/scantailor-advanced/pages"
)

// OrderOption is one ordering the stage offers the user. A nil Order
// means natural project order.
type OrderOption struct {
	Name  string
	Order pages.Order
}

// OrderByWidth orders pages by increasing hard width (content plus
// margins). Pages with incomplete parameters sort first so the user sees
// what still needs attention.
func OrderByWidth(s *Settings) pages.Order {
	return bySize{settings: s, width: true}
}

// OrderByHeight orders pages by increasing hard height.
func OrderByHeight(s *Settings) pages.Order {
	return bySize{settings: s, width: false}
}

type bySize struct {
	settings *Settings
	width    bool
}

func (o bySize) Precedes(lhs pages.Info, lhsIncomplete bool, rhs pages.Info, rhsIncomplete bool) bool {
	if lhsIncomplete != rhsIncomplete {
		return lhsIncomplete
	}
	lsize, lok := o.settings.HardSizeMM(lhs.ID)
	rsize, rok := o.settings.HardSizeMM(rhs.ID)
	if lok != rok {
		return !lok
	}
	lv, rv := lsize.Height, rsize.Height
	if o.width {
		lv, rv = lsize.Width, rsize.Width
	}
	if lv != rv {
		return lv < rv
	}
	return lhs.ID.String() < rhs.ID.String()
}

// OrderByDeviation orders pages by decreasing distance of their hard
// size from the project mean, surfacing outliers that likely need a
// manual look.
func OrderByDeviation(s *Settings) pages.Order {
	return byDeviation{settings: s}
}

type byDeviation struct {
	settings *Settings
}

func (o byDeviation) Precedes(lhs pages.Info, lhsIncomplete bool, rhs pages.Info, rhsIncomplete bool) bool {
	if lhsIncomplete != rhsIncomplete {
		return lhsIncomplete
	}
	mean, ok := o.meanHardSize()
	if !ok {
		return lhs.ID.String() < rhs.ID.String()
	}
	ld := o.deviation(lhs.ID, mean)
	rd := o.deviation(rhs.ID, mean)
	if ld != rd {
		return ld > rd
	}
	return lhs.ID.String() < rhs.ID.String()
}

func (o byDeviation) meanHardSize() (geom.Size, bool) {
	var sum geom.Size
	n := 0
	for _, id := range o.settings.pageIDs() {
		if size, ok := o.settings.HardSizeMM(id); ok {
			sum.Width += size.Width
			sum.Height += size.Height
			n++
		}
	}
	if n == 0 {
		return geom.Size{}, false
	}
	return geom.Size{Width: sum.Width / float64(n), Height: sum.Height / float64(n)}, true
}

func (o byDeviation) deviation(id pages.ID, mean geom.Size) float64 {
	size, ok := o.settings.HardSizeMM(id)
	if !ok {
		return 0
	}
	return math.Hypot(size.Width-mean.Width, size.Height-mean.Height)
}

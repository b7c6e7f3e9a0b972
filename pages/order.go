package pages

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Order compares two pages and reports whether lhs precedes rhs under
// some ordering strategy. The boolean accompanying each page signals
// that the stage considers that page's parameters incomplete; providers
// typically sort incomplete pages first so the user sees what still
// needs attention.
type Order interface {
	Precedes(lhs Info, lhsIncomplete bool, rhs Info, rhsIncomplete bool) bool
}

// SortNatural sorts image file paths the way a human reads them:
// "page2.tif" before "page10.tif". Scanner software numbers files
// without zero padding, so plain lexicographic order interleaves pages.
func SortNatural(paths []string) {
	c := collate.New(language.Und, collate.Numeric)
	c.SortStrings(paths)
}

package output

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"github.com/xietoby/scantailor-advanced/geom"
	"github.com/xietoby/scantailor-advanced/pages"
)

// Params is what the page-layout stage hands to output generation: the
// final page frame (content plus margins) and where the content sits
// inside it, both in virtual pixel coordinates, plus the resolution the
// output should be produced at.
type Params struct {
	OutRect     geom.Rect
	ContentRect geom.Rect
	DPI         pages.DPI
}

// Fingerprint condenses the parameters into a comparable value. Two
// Params with equal fingerprints produce identical output, so a stored
// fingerprint matching the freshly derived one means the cached output
// file is still valid.
func (p Params) Fingerprint() uint64 {
	h := fnv.New64a()
	buf := make([]byte, 8)
	for _, v := range []float64{
		p.OutRect.X, p.OutRect.Y, p.OutRect.Width, p.OutRect.Height,
		p.ContentRect.X, p.ContentRect.Y, p.ContentRect.Width, p.ContentRect.Height,
		float64(p.DPI.X), float64(p.DPI.Y),
	} {
		binary.LittleEndian.PutUint64(buf, math.Float64bits(v))
		h.Write(buf)
	}
	return h.Sum64()
}

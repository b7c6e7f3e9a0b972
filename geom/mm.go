package geom

// MMPerInch is the number of millimetres in an inch.
const MMPerInch = 25.4

// RectSizeMM measures the physical size of a rectangle given in
// transformed (virtual) page coordinates. The rectangle's edge midpoints
// are mapped back through the inverse of xform into source pixels, where
// the per-axis resolution is known, and the resulting pixel distances are
// converted to millimetres.
//
// Measuring through edge midpoints rather than corners keeps the result
// meaningful when xform includes a rotation: the reported width follows
// the rectangle's own horizontal axis, not the source image's.
func RectSizeMM(xform Matrix, rect Rect, xdpi, ydpi float64) (Size, bool) {
	inv, ok := xform.Invert()
	if !ok || xdpi <= 0 || ydpi <= 0 {
		return Size{}, false
	}

	cy := rect.Y + rect.Height/2
	left := inv.Transform(Point{X: rect.Left(), Y: cy})
	right := inv.Transform(Point{X: rect.Right(), Y: cy})

	cx := rect.X + rect.Width/2
	top := inv.Transform(Point{X: cx, Y: rect.Top()})
	bottom := inv.Transform(Point{X: cx, Y: rect.Bottom()})

	return Size{
		Width:  left.Distance(right) / xdpi * MMPerInch,
		Height: top.Distance(bottom) / ydpi * MMPerInch,
	}, true
}

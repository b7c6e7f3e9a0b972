// Package geom provides the geometric primitives shared by all pipeline
// stages: points, sizes, rectangles and affine transformation matrices.
//
// Rectangles use raster coordinates (origin top-left, Y growing downward)
// because every stage operates on scanned images. Physical measurements
// are derived from pixel geometry via [RectSizeMM], which maps a
// transformed rectangle back into source pixels and converts through the
// page's per-axis resolution.
package geom

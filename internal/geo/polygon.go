// Package geo provides the narrow coordinate-geometry primitive the
// lifecycle manager needs to gate a track's location against an Area Of
// Interest: a point-in-polygon test. Full camera-motion coordinate
// transforms belong to the stabilization stage and are out of scope here.
package geo

// Point is a plain 2D coordinate, kept independent of the root package's
// Point2 so this package has no dependency on tracker types.
type Point struct {
	X, Y float64
}

// PointInPolygon reports whether p lies inside the polygon described by
// vertices, using the even-odd (ray casting) rule. A polygon with fewer
// than 3 vertices is treated as unbounded (contains everything), matching
// the "no AOI configured" convention used by the lifecycle manager.
func PointInPolygon(vertices []Point, p Point) bool {
	if len(vertices) < 3 {
		return true
	}
	inside := false
	n := len(vertices)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi, vj := vertices[i], vertices[j]
		if (vi.Y > p.Y) != (vj.Y > p.Y) {
			xIntersect := (vj.X-vi.X)*(p.Y-vi.Y)/(vj.Y-vi.Y) + vi.X
			if p.X < xIntersect {
				inside = !inside
			}
		}
	}
	return inside
}

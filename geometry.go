package trackcore

import "github.com/kwvidtrack/trackcore/internal/geo"

// Point2 is a 2D coordinate in the stabilized plane or the world frame.
type Point2 struct {
	X, Y float64
}

// Point3 is a world-frame coordinate; Z is 0 on the ground plane.
type Point3 struct {
	X, Y, Z float64
}

// Rect is an axis-aligned bounding box in image coordinates.
type Rect struct {
	X, Y, Width, Height float64
}

// Homography is a 3x3 projective transform mapping the stabilized plane to
// a world frame, supplied per-frame by the stabilization stage.
type Homography [3][3]float64

// Apply maps a stabilized-plane point to world coordinates using
// homogeneous coordinates.
func (h Homography) Apply(p Point2) Point2 {
	x := h[0][0]*p.X + h[0][1]*p.Y + h[0][2]
	y := h[1][0]*p.X + h[1][1]*p.Y + h[1][2]
	w := h[2][0]*p.X + h[2][1]*p.Y + h[2][2]
	if w == 0 {
		return Point2{}
	}
	return Point2{X: x / w, Y: y / w}
}

// Polygon is an ordered sequence of vertices describing an Area Of
// Interest. A nil or empty Polygon means "no AOI configured" (nothing is
// terminated for leaving it).
type Polygon []Point2

// Contains reports whether p lies inside the polygon using the standard
// even-odd (ray casting) rule, delegated to internal/geo. A polygon with
// fewer than 3 vertices is treated as "no AOI configured" and contains
// everything.
func (poly Polygon) Contains(p Point2) bool {
	vertices := make([]geo.Point, len(poly))
	for i, v := range poly {
		vertices[i] = geo.Point{X: v.X, Y: v.Y}
	}
	return geo.PointInPolygon(vertices, geo.Point{X: p.X, Y: p.Y})
}

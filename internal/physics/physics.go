// Package physics provides circle collision tests and a broad-phase grid.
package physics

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// CirclesOverlap reports whether two circles strictly overlap.
// Touching circles (distance == r1+r2) do not count as a hit.
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(x1, y1, x2, y2) < minDist*minDist
}

// Circle is anything with a center and a radius.
type Circle interface {
	Center() (x, y float64)
	Radius() float64
}

// Overlap is CirclesOverlap for two Circle values.
func Overlap(a, b Circle) bool {
	ax, ay := a.Center()
	bx, by := b.Center()
	return CirclesOverlap(ax, ay, a.Radius(), bx, by, b.Radius())
}

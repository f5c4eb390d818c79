package game

type Point struct {
	X, Y float64
}

func (p Point) Add(d Direction) Point {
	return Point{X: p.X + d.DX, Y: p.Y + d.DY}
}

type Segment struct {
	A, B Point
}

// SegmentsIntersect reports whether a and b cross at a point strictly inside
// both of them. Parallel and collinear pairs never intersect, and neither does
// a pair that only meets at an endpoint: the live segment always touches the
// last turn vertex and that must not count.
func SegmentsIntersect(a, b Segment) bool {
	rx, ry := a.B.X-a.A.X, a.B.Y-a.A.Y
	sx, sy := b.B.X-b.A.X, b.B.Y-b.A.Y

	denom := rx*sy - ry*sx
	if denom == 0 {
		return false
	}

	qx, qy := b.A.X-a.A.X, b.A.Y-a.A.Y
	t := (qx*sy - qy*sx) / denom
	u := (qx*ry - qy*rx) / denom

	return t > 0 && t < 1 && u > 0 && u < 1
}

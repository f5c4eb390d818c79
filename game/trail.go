package game

// Trail holds the turn vertices of a player in the order they were laid down.
// The head is not part of it; the open end from the last vertex to the head is
// the live segment.
type Trail struct {
	Vertices []Point
}

func NewTrail(spawn Point) Trail {
	return Trail{Vertices: []Point{spawn}}
}

func (t *Trail) RecordTurn(p Point) {
	t.Vertices = append(t.Vertices, p)
}

func (t *Trail) Last() Point {
	return t.Vertices[len(t.Vertices)-1]
}

func (t *Trail) LiveSegment(head Point) Segment {
	return Segment{A: t.Last(), B: head}
}

// Fixed is the number of closed segments between consecutive vertices.
func (t *Trail) Fixed() int {
	if len(t.Vertices) < 2 {
		return 0
	}
	return len(t.Vertices) - 1
}

func (t *Trail) Segment(i int) Segment {
	return Segment{A: t.Vertices[i], B: t.Vertices[i+1]}
}

func (t *Trail) Turns() int {
	return len(t.Vertices) - 1
}

// Polyline returns a copy of the vertices with the head appended.
func (t *Trail) Polyline(head Point) []Point {
	out := make([]Point, 0, len(t.Vertices)+1)
	out = append(out, t.Vertices...)
	return append(out, head)
}

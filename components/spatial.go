package components

import "github.com/jakecoffman/cp"

// Trail defaults.
const (
	TrailCapacity  = 80
	TrailThreshold = 5.0
)

// Trail is a bounded FIFO of recent positions.
// A point is only recorded once the body has moved TrailThreshold units
// from the last recorded point.
type Trail struct {
	points []cp.Vector
	start  int
	count  int
}

// NewTrail creates an empty trail with the default capacity.
func NewTrail() Trail {
	return Trail{points: make([]cp.Vector, TrailCapacity)}
}

// Add records p if it is far enough from the newest point.
// Returns true if the point was recorded.
func (t *Trail) Add(p cp.Vector) bool {
	if t.points == nil {
		t.points = make([]cp.Vector, TrailCapacity)
	}
	if t.count > 0 && t.Last().Distance(p) <= TrailThreshold {
		return false
	}

	if t.count < len(t.points) {
		t.points[(t.start+t.count)%len(t.points)] = p
		t.count++
		return true
	}

	// Full: overwrite the oldest
	t.points[t.start] = p
	t.start = (t.start + 1) % len(t.points)
	return true
}

// Len returns the number of recorded points.
func (t *Trail) Len() int {
	return t.count
}

// Last returns the newest point. Returns the zero vector when empty.
func (t *Trail) Last() cp.Vector {
	if t.count == 0 {
		return cp.Vector{}
	}
	return t.points[(t.start+t.count-1)%len(t.points)]
}

// Points returns the recorded points, oldest first.
func (t *Trail) Points() []cp.Vector {
	out := make([]cp.Vector, t.count)
	for i := range out {
		out[i] = t.points[(t.start+i)%len(t.points)]
	}
	return out
}

// Clone returns an independent copy.
func (t *Trail) Clone() Trail {
	c := Trail{start: t.start, count: t.count}
	if t.points != nil {
		c.points = make([]cp.Vector, len(t.points))
		copy(c.points, t.points)
	}
	return c
}

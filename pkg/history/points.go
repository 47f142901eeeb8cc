package history

import (
	"github.com/google/uuid"

	"github.com/kusaanko/BatFi/pkg/power"
)

// PointSet is an insertion-ordered collection of state points with constant
// time lookup by identifier. Points are expected to arrive ordered by
// timestamp ascending, as returned by Store.PointsInRange.
type PointSet struct {
	points []power.StatePoint
	index  map[uuid.UUID]int
}

// NewPointSet builds a PointSet from an ordered slice of points.
func NewPointSet(points []power.StatePoint) *PointSet {
	s := &PointSet{
		points: points,
		index:  make(map[uuid.UUID]int, len(points)),
	}
	for i, p := range points {
		s.index[p.ID] = i
	}
	return s
}

// Len returns the number of points.
func (s *PointSet) Len() int {
	return len(s.points)
}

// Points returns the points in insertion order. Callers must not mutate the
// returned slice.
func (s *PointSet) Points() []power.StatePoint {
	return s.points
}

// IndexOf returns the position of the point with the given identifier.
func (s *PointSet) IndexOf(id uuid.UUID) (int, bool) {
	i, ok := s.index[id]
	return i, ok
}

// At returns the point at position i.
func (s *PointSet) At(i int) (power.StatePoint, bool) {
	if i < 0 || i >= len(s.points) {
		return power.StatePoint{}, false
	}
	return s.points[i], true
}

package state

// StrokeSet is the ordered list of strokes on one drawing surface, oldest
// first. It never holds more than its limit: pushing past the limit
// evicts from the front.
type StrokeSet struct {
	limit   int
	strokes []*Stroke
}

// NewStrokeSet returns an empty set holding at most limit strokes. A
// limit below one is raised to one.
func NewStrokeSet(limit int) *StrokeSet {
	if limit < 1 {
		limit = 1
	}
	return &StrokeSet{limit: limit}
}

// Push appends s and returns the strokes evicted to respect the limit,
// oldest first.
func (ss *StrokeSet) Push(s *Stroke) []*Stroke {
	ss.strokes = append(ss.strokes, s)
	if len(ss.strokes) <= ss.limit {
		return nil
	}
	n := len(ss.strokes) - ss.limit
	evicted := make([]*Stroke, n)
	copy(evicted, ss.strokes[:n])
	for i := 0; i < n; i++ {
		ss.strokes[i] = nil
	}
	ss.strokes = ss.strokes[n:]
	return evicted
}

// Clear empties the set and returns what it held.
func (ss *StrokeSet) Clear() []*Stroke {
	out := ss.strokes
	ss.strokes = nil
	return out
}

func (ss *StrokeSet) Len() int { return len(ss.strokes) }

func (ss *StrokeSet) Limit() int { return ss.limit }

// All returns a copy of the stroke list.
func (ss *StrokeSet) All() []*Stroke {
	out := make([]*Stroke, len(ss.strokes))
	copy(out, ss.strokes)
	return out
}

// Contains reports whether s is still in the set.
func (ss *StrokeSet) Contains(s *Stroke) bool {
	for _, x := range ss.strokes {
		if x == s {
			return true
		}
	}
	return false
}

package ui

import "atelier/internal/carousel"

// intersectionTracker reports gallery visibility the way an intersection
// observer does: once initially, then whenever a threshold is crossed.
type intersectionTracker struct {
	bucket int
	seen   bool
}

func bucketOf(s carousel.Intersection) int {
	if !s.IsIntersecting {
		return -1
	}
	b := 0
	for i, t := range carousel.Thresholds {
		if s.Ratio >= t {
			b = i
		}
	}
	return b
}

// Sample returns s and true when it should be delivered to the carousel.
func (t *intersectionTracker) Sample(s carousel.Intersection) (carousel.Intersection, bool) {
	b := bucketOf(s)
	if t.seen && b == t.bucket {
		return s, false
	}
	t.seen = true
	t.bucket = b
	return s, true
}

// Reset forgets the last bucket so the next sample is always delivered.
func (t *intersectionTracker) Reset() {
	t.seen = false
}

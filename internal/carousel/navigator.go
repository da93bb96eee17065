package carousel

import (
	"math"
	"time"
)

// Direction is a navigation intent.
type Direction int

const (
	Prev Direction = -1
	Next Direction = 1
)

func (d Direction) String() string {
	if d == Next {
		return "next"
	}
	return "prev"
}

// NavigatorHooks are the callbacks a Navigator reports to. Any of them may be nil.
type NavigatorHooks struct {
	OnExitNext func()
	OnExitPrev func()
	// OnChange is called after index changes, including re-clamps.
	OnChange func(oldIndex, newIndex int)
}

// Navigator owns the current slide index. It arbitrates between moving
// inside the carousel and handing control back to the page, rate limited by
// a cooldown and a gesture magnitude threshold.
type Navigator struct {
	index int
	total int

	threshold   float64
	cooldown    time.Duration
	accumulated float64

	lastTransitionAt time.Time
	transitioned     bool

	touchOrigin float64
	touching    bool

	now   Clock
	hooks NavigatorHooks
}

// NewNavigator creates a navigator over total slides starting at index 0.
func NewNavigator(total int, threshold float64, cooldown time.Duration, now Clock, hooks NavigatorHooks) *Navigator {
	if now == nil {
		now = time.Now
	}
	if total < 0 {
		total = 0
	}
	return &Navigator{
		total:     total,
		threshold: threshold,
		cooldown:  cooldown,
		now:       now,
		hooks:     hooks,
	}
}

// Index returns the current slide index.
func (n *Navigator) Index() int { return n.index }

// Total returns the number of slides.
func (n *Navigator) Total() int { return n.total }

// Accumulated returns the unconsumed gesture magnitude.
func (n *Navigator) Accumulated() float64 { return n.accumulated }

// AtStart reports whether a prev intent would exit the carousel.
func (n *Navigator) AtStart() bool { return n.total == 0 || n.index == 0 }

// AtEnd reports whether a next intent would exit the carousel.
func (n *Navigator) AtEnd() bool { return n.total == 0 || n.index == n.total-1 }

// RequestDirection moves one slide in dir, or fires the exit callback when
// already at that boundary. Requests inside the cooldown window are dropped.
// It returns false when the request was dropped.
func (n *Navigator) RequestDirection(dir Direction) bool {
	now := n.now()
	if n.transitioned && now.Sub(n.lastTransitionAt) < n.cooldown {
		return false
	}
	n.lastTransitionAt = now
	n.transitioned = true

	switch dir {
	case Next:
		if n.AtEnd() {
			if n.hooks.OnExitNext != nil {
				n.hooks.OnExitNext()
			}
			return true
		}
		n.move(min(n.index+1, n.total-1))
	case Prev:
		if n.AtStart() {
			if n.hooks.OnExitPrev != nil {
				n.hooks.OnExitPrev()
			}
			return true
		}
		n.move(max(n.index-1, 0))
	}
	return true
}

// GoToNext is RequestDirection(Next).
func (n *Navigator) GoToNext() bool { return n.RequestDirection(Next) }

// GoToPrev is RequestDirection(Prev).
func (n *Navigator) GoToPrev() bool { return n.RequestDirection(Prev) }

// SetIndex jumps straight to i, clamped into range. It ignores the cooldown
// and never exits.
func (n *Navigator) SetIndex(i int) {
	n.move(n.clamp(i))
}

// SetTotal updates the slide count and re-clamps the index without firing
// exit callbacks.
func (n *Navigator) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	n.total = total
	if n.index >= total {
		n.move(n.clamp(n.index))
	}
}

// Accumulate adds delta to the gesture accumulator. Crossing the threshold
// commits exactly one transition and zeroes the accumulator; residual motion
// does not carry over.
func (n *Navigator) Accumulate(delta float64) {
	if delta == 0 {
		return
	}
	n.accumulated += delta
	if math.Abs(n.accumulated) < n.threshold {
		return
	}
	dir := Prev
	if delta > 0 {
		dir = Next
	}
	n.accumulated = 0
	n.RequestDirection(dir)
}

// ResetGesture drops any partial gesture.
func (n *Navigator) ResetGesture() {
	n.accumulated = 0
}

// BeginTouch starts a drag at coordinate y.
func (n *Navigator) BeginTouch(y float64) {
	n.touchOrigin = y
	n.touching = true
	n.accumulated = 0
}

// MoveTouch feeds the distance travelled since the last recorded coordinate.
// Dragging towards smaller y advances. It reports whether a drag was in progress.
func (n *Navigator) MoveTouch(y float64) bool {
	if !n.touching {
		return false
	}
	delta := n.touchOrigin - y
	n.touchOrigin = y
	n.Accumulate(delta)
	return true
}

// EndTouch clears the drag and any partial gesture.
func (n *Navigator) EndTouch() {
	n.touching = false
	n.touchOrigin = 0
	n.accumulated = 0
}

// Touching reports whether a drag is in progress.
func (n *Navigator) Touching() bool { return n.touching }

func (n *Navigator) clamp(i int) int {
	if n.total == 0 || i < 0 {
		return 0
	}
	if i > n.total-1 {
		return n.total - 1
	}
	return i
}

func (n *Navigator) move(to int) {
	if to == n.index {
		return
	}
	from := n.index
	n.index = to
	if n.hooks.OnChange != nil {
		n.hooks.OnChange(from, to)
	}
}

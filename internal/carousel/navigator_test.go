package carousel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type exitCounter struct {
	next, prev int
	changes    [][2]int
}

func (e *exitCounter) hooks() NavigatorHooks {
	return NavigatorHooks{
		OnExitNext: func() { e.next++ },
		OnExitPrev: func() { e.prev++ },
		OnChange:   func(from, to int) { e.changes = append(e.changes, [2]int{from, to}) },
	}
}

func newTestNavigator(total int, clock *ManualClock, exits *exitCounter) *Navigator {
	return NewNavigator(total, 60, 450*time.Millisecond, clock.Now, exits.hooks())
}

func TestRequestDirectionCooldownDropsSecondRequest(t *testing.T) {
	clock := NewManualClock(epoch)
	var exits exitCounter
	nav := newTestNavigator(5, clock, &exits)

	require.True(t, nav.RequestDirection(Next))
	clock.Advance(100 * time.Millisecond)
	assert.False(t, nav.RequestDirection(Next))

	assert.Equal(t, 1, nav.Index())
	assert.Equal(t, [][2]int{{0, 1}}, exits.changes)
}

func TestRequestDirectionAcceptsAfterCooldown(t *testing.T) {
	clock := NewManualClock(epoch)
	var exits exitCounter
	nav := newTestNavigator(5, clock, &exits)

	nav.RequestDirection(Next)
	clock.Advance(449 * time.Millisecond)
	nav.RequestDirection(Next)
	assert.Equal(t, 1, nav.Index())

	clock.Advance(time.Millisecond)
	nav.RequestDirection(Next)
	assert.Equal(t, 2, nav.Index())
}

func TestDroppedRequestDoesNotExtendCooldown(t *testing.T) {
	clock := NewManualClock(epoch)
	var exits exitCounter
	nav := newTestNavigator(5, clock, &exits)

	nav.RequestDirection(Next)
	clock.Advance(300 * time.Millisecond)
	nav.RequestDirection(Next) // dropped
	clock.Advance(200 * time.Millisecond)
	nav.RequestDirection(Next)

	assert.Equal(t, 2, nav.Index())
}

func TestBoundaryExitNext(t *testing.T) {
	clock := NewManualClock(epoch)
	var exits exitCounter
	nav := newTestNavigator(3, clock, &exits)
	nav.SetIndex(2)
	exits.changes = nil

	nav.RequestDirection(Next)

	assert.Equal(t, 1, exits.next)
	assert.Equal(t, 0, exits.prev)
	assert.Equal(t, 2, nav.Index())
	assert.Empty(t, exits.changes)
}

func TestBoundaryExitPrev(t *testing.T) {
	clock := NewManualClock(epoch)
	var exits exitCounter
	nav := newTestNavigator(3, clock, &exits)

	nav.RequestDirection(Prev)

	assert.Equal(t, 1, exits.prev)
	assert.Equal(t, 0, exits.next)
	assert.Equal(t, 0, nav.Index())
}

func TestExitCountsAsTransitionForCooldown(t *testing.T) {
	clock := NewManualClock(epoch)
	var exits exitCounter
	nav := newTestNavigator(3, clock, &exits)

	nav.RequestDirection(Prev)
	clock.Advance(50 * time.Millisecond)
	nav.RequestDirection(Prev)
	nav.RequestDirection(Next)

	assert.Equal(t, 1, exits.prev)
	assert.Equal(t, 0, nav.Index())
}

func TestSingleSlideAlwaysExits(t *testing.T) {
	clock := NewManualClock(epoch)
	var exits exitCounter
	nav := newTestNavigator(1, clock, &exits)

	for i := 0; i < 3; i++ {
		nav.RequestDirection(Next)
		clock.Advance(time.Second)
		nav.RequestDirection(Prev)
		clock.Advance(time.Second)
	}

	assert.Equal(t, 3, exits.next)
	assert.Equal(t, 3, exits.prev)
	assert.Equal(t, 0, nav.Index())
	assert.Empty(t, exits.changes)
}

func TestEmptyCarouselAlwaysAtBoundary(t *testing.T) {
	clock := NewManualClock(epoch)
	var exits exitCounter
	nav := newTestNavigator(0, clock, &exits)

	nav.RequestDirection(Next)
	clock.Advance(time.Second)
	nav.RequestDirection(Prev)

	assert.Equal(t, 1, exits.next)
	assert.Equal(t, 1, exits.prev)
	assert.Equal(t, 0, nav.Index())
}

func TestSetIndexClampsAndIgnoresCooldown(t *testing.T) {
	clock := NewManualClock(epoch)
	var exits exitCounter
	nav := newTestNavigator(4, clock, &exits)

	nav.RequestDirection(Next)
	nav.SetIndex(3)
	assert.Equal(t, 3, nav.Index())

	nav.SetIndex(99)
	assert.Equal(t, 3, nav.Index())

	nav.SetIndex(-7)
	assert.Equal(t, 0, nav.Index())
	assert.Zero(t, exits.next+exits.prev)
}

func TestSetTotalReclampsWithoutExit(t *testing.T) {
	clock := NewManualClock(epoch)
	var exits exitCounter
	nav := newTestNavigator(6, clock, &exits)
	nav.SetIndex(5)

	nav.SetTotal(3)
	assert.Equal(t, 2, nav.Index())

	nav.SetTotal(0)
	assert.Equal(t, 0, nav.Index())

	nav.SetTotal(10)
	assert.Equal(t, 0, nav.Index())
	assert.Zero(t, exits.next+exits.prev)
}

func TestClampingInvariantAcrossOperations(t *testing.T) {
	clock := NewManualClock(epoch)
	var exits exitCounter
	nav := newTestNavigator(0, clock, &exits)

	steps := []struct {
		total int
		set   int
	}{
		{5, 4}, {2, 9}, {0, 3}, {7, -1}, {7, 6}, {1, 6}, {3, 2}, {0, 0},
	}
	for _, s := range steps {
		nav.SetTotal(s.total)
		nav.SetIndex(s.set)
		if nav.Total() == 0 {
			assert.Equal(t, 0, nav.Index())
			continue
		}
		assert.GreaterOrEqual(t, nav.Index(), 0)
		assert.Less(t, nav.Index(), nav.Total())
	}
}

func TestAccumulateThreshold(t *testing.T) {
	clock := NewManualClock(epoch)
	var exits exitCounter
	nav := newTestNavigator(5, clock, &exits)

	nav.Accumulate(30)
	assert.Equal(t, 0, nav.Index())
	nav.Accumulate(30)
	assert.Equal(t, 1, nav.Index())
	assert.Zero(t, nav.Accumulated())
}

func TestAccumulateBelowThresholdDoesNothing(t *testing.T) {
	clock := NewManualClock(epoch)
	var exits exitCounter
	nav := newTestNavigator(5, clock, &exits)

	nav.Accumulate(59)

	assert.Equal(t, 0, nav.Index())
	assert.Equal(t, 59.0, nav.Accumulated())
	assert.Empty(t, exits.changes)
}

func TestAccumulateResetsInsteadOfCarryingResidual(t *testing.T) {
	clock := NewManualClock(epoch)
	var exits exitCounter
	nav := newTestNavigator(5, clock, &exits)

	nav.Accumulate(170)
	assert.Equal(t, 1, nav.Index())
	assert.Zero(t, nav.Accumulated())

	clock.Advance(time.Second)
	nav.Accumulate(30)
	assert.Equal(t, 1, nav.Index())
}

func TestAccumulateNegativeGoesBack(t *testing.T) {
	clock := NewManualClock(epoch)
	var exits exitCounter
	nav := newTestNavigator(5, clock, &exits)
	nav.SetIndex(3)

	nav.Accumulate(-25)
	nav.Accumulate(-40)

	assert.Equal(t, 2, nav.Index())
}

func TestAccumulateDuringCooldownStillConsumesGesture(t *testing.T) {
	clock := NewManualClock(epoch)
	var exits exitCounter
	nav := newTestNavigator(5, clock, &exits)

	nav.Accumulate(80)
	clock.Advance(10 * time.Millisecond)
	nav.Accumulate(80)

	assert.Equal(t, 1, nav.Index())
	assert.Zero(t, nav.Accumulated())
}

func TestTouchEndDropsPartialGesture(t *testing.T) {
	clock := NewManualClock(epoch)
	var exits exitCounter
	nav := newTestNavigator(5, clock, &exits)

	nav.BeginTouch(300)
	nav.MoveTouch(260) // 40 upward, below 60
	assert.Equal(t, 40.0, nav.Accumulated())
	nav.EndTouch()

	nav.BeginTouch(300)
	nav.MoveTouch(270) // 30 more; would cross 60 with a stale 40
	assert.Equal(t, 0, nav.Index())
	assert.Equal(t, 30.0, nav.Accumulated())
}

func TestMoveTouchWithoutStartIsIgnored(t *testing.T) {
	clock := NewManualClock(epoch)
	var exits exitCounter
	nav := newTestNavigator(5, clock, &exits)

	assert.False(t, nav.MoveTouch(10))
	assert.Zero(t, nav.Accumulated())
}

func TestMoveTouchUsesIncrementalDelta(t *testing.T) {
	clock := NewManualClock(epoch)
	var exits exitCounter
	nav := newTestNavigator(5, clock, &exits)

	nav.BeginTouch(200)
	nav.MoveTouch(180)
	nav.MoveTouch(150)
	nav.MoveTouch(140)

	assert.Equal(t, 1, nav.Index(), "20+30+10 crosses 60 once")
}

func TestDirectionString(t *testing.T) {
	assert.Equal(t, "next", Next.String())
	assert.Equal(t, "prev", Prev.String())
}

package carousel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type binderFixture struct {
	clock   *ManualClock
	nav     *Navigator
	exits   *exitCounter
	surface *EventTarget
	global  *EventTarget
	active  bool
	unbind  func()
}

func newBinderFixture(t *testing.T, total int) *binderFixture {
	t.Helper()
	f := &binderFixture{
		clock:   NewManualClock(epoch),
		exits:   &exitCounter{},
		surface: NewEventTarget(),
		global:  NewEventTarget(),
		active:  true,
	}
	f.nav = NewNavigator(total, 60, 450*time.Millisecond, f.clock.Now, f.exits.hooks())
	b := NewBinder(f.nav, func() bool { return f.active }, nil)
	f.unbind = b.Bind(f.surface, f.global)
	return f
}

func (f *binderFixture) wheel(dy float64) *Event {
	e := &Event{Kind: EventWheel, DeltaY: dy}
	f.surface.Dispatch(e)
	return e
}

func (f *binderFixture) touch(kind EventKind, y float64) *Event {
	e := &Event{Kind: kind, Y: y}
	f.surface.Dispatch(e)
	return e
}

func (f *binderFixture) key(k Key) *Event {
	e := &Event{Kind: EventKey, Key: k}
	f.global.Dispatch(e)
	return e
}

func TestWheelScenarioWithCooldown(t *testing.T) {
	f := newBinderFixture(t, 6)

	f.wheel(80)
	assert.Equal(t, 1, f.nav.Index())

	f.clock.Advance(10 * time.Millisecond)
	f.wheel(80)
	assert.Equal(t, 1, f.nav.Index())

	f.clock.Set(epoch.Add(500 * time.Millisecond))
	f.wheel(80)
	assert.Equal(t, 2, f.nav.Index())
}

func TestWheelInactiveKeepsDefault(t *testing.T) {
	f := newBinderFixture(t, 6)
	f.active = false

	e := f.wheel(500)

	assert.False(t, e.DefaultPrevented())
	assert.Equal(t, 0, f.nav.Index())
	assert.Zero(t, f.nav.Accumulated())
}

func TestWheelActivePreventsDefaultEvenBelowThreshold(t *testing.T) {
	f := newBinderFixture(t, 6)

	e := f.wheel(10)

	assert.True(t, e.DefaultPrevented())
	assert.Equal(t, 10.0, f.nav.Accumulated())
}

func TestKeyboardMapping(t *testing.T) {
	tests := []struct {
		key  Key
		want int
	}{
		{KeyArrowRight, 3},
		{KeyArrowDown, 3},
		{KeyArrowLeft, 1},
		{KeyArrowUp, 1},
	}
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			f := newBinderFixture(t, 5)
			f.nav.SetIndex(2)

			e := f.key(tt.key)

			assert.True(t, e.DefaultPrevented())
			assert.Equal(t, tt.want, f.nav.Index())
		})
	}
}

func TestUnrelatedKeyKeepsDefault(t *testing.T) {
	f := newBinderFixture(t, 5)

	e := f.key("Enter")

	assert.False(t, e.DefaultPrevented())
	assert.Equal(t, 0, f.nav.Index())
}

func TestKeysIgnoredWhenInactive(t *testing.T) {
	f := newBinderFixture(t, 5)
	f.active = false

	e := f.key(KeyArrowRight)

	assert.False(t, e.DefaultPrevented())
	assert.Equal(t, 0, f.nav.Index())
}

func TestTouchDragAdvances(t *testing.T) {
	f := newBinderFixture(t, 5)

	f.touch(EventTouchStart, 400)
	move := f.touch(EventTouchMove, 330)
	f.touch(EventTouchEnd, 330)

	assert.True(t, move.DefaultPrevented())
	assert.Equal(t, 1, f.nav.Index())
	assert.False(t, f.nav.Touching())
}

func TestTouchEndResetsAccumulator(t *testing.T) {
	f := newBinderFixture(t, 5)

	f.touch(EventTouchStart, 400)
	f.touch(EventTouchMove, 360)
	f.touch(EventTouchEnd, 360)
	assert.Zero(t, f.nav.Accumulated())

	f.touch(EventTouchStart, 400)
	f.touch(EventTouchMove, 370)

	assert.Equal(t, 0, f.nav.Index())
	assert.Equal(t, 30.0, f.nav.Accumulated())
}

func TestTouchCancelResetsAccumulator(t *testing.T) {
	f := newBinderFixture(t, 5)

	f.touch(EventTouchStart, 100)
	f.touch(EventTouchMove, 130)
	f.touch(EventTouchCancel, 130)

	assert.Zero(t, f.nav.Accumulated())
	assert.False(t, f.nav.Touching())
}

func TestTouchMoveInactiveKeepsDefault(t *testing.T) {
	f := newBinderFixture(t, 5)
	f.active = false

	f.touch(EventTouchStart, 400)
	e := f.touch(EventTouchMove, 100)

	assert.False(t, e.DefaultPrevented())
	assert.Equal(t, 0, f.nav.Index())
}

func TestBindAttachesExpectedListeners(t *testing.T) {
	f := newBinderFixture(t, 5)

	for _, kind := range []EventKind{EventWheel, EventTouchStart, EventTouchMove, EventTouchEnd, EventTouchCancel} {
		assert.Equal(t, 1, f.surface.ListenerCount(kind), kind)
	}
	assert.Equal(t, 1, f.global.ListenerCount(EventKey))
	assert.Equal(t, 0, f.surface.ListenerCount(EventKey))
}

func TestUnbindIsIdempotentAndComplete(t *testing.T) {
	f := newBinderFixture(t, 5)
	other := func(*Event) {}
	f.surface.AddListener(EventWheel, other)

	require.NotPanics(t, func() {
		f.unbind()
		f.unbind()
	})

	assert.Equal(t, 1, f.surface.Listeners(), "only the foreign listener remains")
	assert.Zero(t, f.global.Listeners())

	e := f.wheel(500)
	f.key(KeyArrowRight)
	f.touch(EventTouchStart, 300)
	f.touch(EventTouchMove, 0)

	assert.False(t, e.DefaultPrevented())
	assert.Equal(t, 0, f.nav.Index())
	assert.Zero(t, f.nav.Accumulated())
}

func TestBindWithNilTargets(t *testing.T) {
	nav := NewNavigator(3, 60, 0, nil, NavigatorHooks{})
	b := NewBinder(nav, func() bool { return true }, nil)

	unbind := b.Bind(nil, nil)

	assert.NotPanics(t, func() {
		unbind()
		unbind()
	})
}

func TestEventTargetRemoveOnlyOwnListener(t *testing.T) {
	target := NewEventTarget()
	var calls []string
	removeA := target.AddListener(EventWheel, func(*Event) { calls = append(calls, "a") })
	target.AddListener(EventWheel, func(*Event) { calls = append(calls, "b") })

	removeA()
	removeA()
	target.Dispatch(&Event{Kind: EventWheel})

	assert.Equal(t, []string{"b"}, calls)
}

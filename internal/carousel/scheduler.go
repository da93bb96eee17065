package carousel

import (
	"sort"
	"time"
)

// Clock returns the current time. Navigator takes one so tests can drive a
// simulated clock.
type Clock func() time.Time

// Timer is a pending deferred callback.
type Timer interface {
	// Stop cancels the callback. It reports whether the call stopped the
	// timer; false means it already fired or was already stopped.
	Stop() bool
}

// Scheduler defers callbacks. Implementations must run callbacks on the
// goroutine that owns the controller.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// WallScheduler schedules on the wall clock with time.AfterFunc. Callbacks
// run on their own goroutine, so it is only suitable for hosts that
// serialise access to the controller themselves.
type WallScheduler struct{}

// AfterFunc implements Scheduler.
func (WallScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// ManualClock is a simulated clock and scheduler. Time only moves when
// Advance is called; due callbacks run synchronously inside Advance in
// deadline order.
type ManualClock struct {
	now    time.Time
	seq    uint64
	timers []*manualTimer
}

type manualTimer struct {
	clock *ManualClock
	seq   uint64
	at    time.Time
	f     func()
	done  bool
}

// NewManualClock starts a simulated clock at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the simulated time. It satisfies Clock.
func (c *ManualClock) Now() time.Time {
	return c.now
}

// Set jumps to t without running timers.
func (c *ManualClock) Set(t time.Time) {
	c.now = t
}

// AfterFunc implements Scheduler.
func (c *ManualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.seq++
	t := &manualTimer{clock: c, seq: c.seq, at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves time forward by d, firing every timer that comes due.
func (c *ManualClock) Advance(d time.Duration) {
	target := c.now.Add(d)
	for {
		next := c.nextDue(target)
		if next == nil {
			break
		}
		c.now = next.at
		next.done = true
		c.remove(next)
		next.f()
	}
	c.now = target
}

// Pending returns the number of timers that have neither fired nor been stopped.
func (c *ManualClock) Pending() int {
	return len(c.timers)
}

func (c *ManualClock) nextDue(limit time.Time) *manualTimer {
	if len(c.timers) == 0 {
		return nil
	}
	sort.SliceStable(c.timers, func(i, j int) bool {
		if c.timers[i].at.Equal(c.timers[j].at) {
			return c.timers[i].seq < c.timers[j].seq
		}
		return c.timers[i].at.Before(c.timers[j].at)
	})
	if c.timers[0].at.After(limit) {
		return nil
	}
	return c.timers[0]
}

func (c *ManualClock) remove(t *manualTimer) {
	for i, other := range c.timers {
		if other == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return
		}
	}
}

func (t *manualTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	t.clock.remove(t)
	return true
}

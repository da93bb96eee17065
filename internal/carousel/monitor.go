package carousel

import (
	"time"

	"go.uber.org/zap"
)

// Thresholds are the visibility ratios at which a host should report
// intersection samples.
var Thresholds = []float64{0, 0.2, 0.35, 0.5, 0.75, 1.0}

// EnterRatio is the visible fraction above which the section counts as entering.
const EnterRatio = 0.2

// Intersection is one visibility sample of the carousel section.
type Intersection struct {
	IsIntersecting bool
	Ratio          float64
}

// Entering reports whether the sample should claim the viewport.
func (s Intersection) Entering() bool {
	return s.IsIntersecting && s.Ratio > EnterRatio
}

// Monitor decides when the carousel seizes the viewport. The first entering
// sample snaps the section into view and activates after a settle delay;
// leaving deactivates at once and re-arms the snap.
type Monitor struct {
	sched     Scheduler
	settle    time.Duration
	smooth    bool
	scroll    func(smooth bool)
	setActive func(bool)
	log       *zap.Logger

	snapped bool
	pending Timer
	stopped bool
}

// NewMonitor creates a monitor. Under reduced motion the snap is immediate
// and activation happens without a settle delay.
func NewMonitor(sched Scheduler, settle time.Duration, reducedMotion bool, scroll func(smooth bool), setActive func(bool), log *zap.Logger) *Monitor {
	if log == nil {
		log = zap.NewNop()
	}
	if reducedMotion {
		settle = 0
	}
	return &Monitor{
		sched:     sched,
		settle:    settle,
		smooth:    !reducedMotion,
		scroll:    scroll,
		setActive: setActive,
		log:       log,
	}
}

// Observe handles one intersection sample.
func (m *Monitor) Observe(s Intersection) {
	if m.stopped {
		return
	}
	if !s.Entering() {
		m.cancel()
		m.snapped = false
		m.setActive(false)
		return
	}
	if m.snapped {
		return
	}
	m.snapped = true
	m.log.Debug("section entering, snapping", zap.Float64("ratio", s.Ratio))
	if m.scroll != nil {
		m.scroll(m.smooth)
	}

	m.cancel()
	if m.settle <= 0 {
		m.setActive(true)
		return
	}
	m.pending = m.sched.AfterFunc(m.settle, func() {
		m.pending = nil
		if m.stopped {
			return
		}
		m.setActive(true)
	})
}

// Pending reports whether an activation is scheduled.
func (m *Monitor) Pending() bool { return m.pending != nil }

// Stop cancels any scheduled activation and ignores further samples.
func (m *Monitor) Stop() {
	m.stopped = true
	m.cancel()
}

func (m *Monitor) cancel() {
	if m.pending != nil {
		m.pending.Stop()
		m.pending = nil
	}
}

package carousel

import (
	"time"

	"go.uber.org/zap"
)

// Page is the host around the carousel. The carousel knows nothing about
// the page's structure beyond these calls.
type Page interface {
	// ScrollIntoView scrolls the carousel section to fill the viewport.
	ScrollIntoView(smooth bool)
	// HasSibling reports whether there is content next to the carousel in dir.
	HasSibling(dir Direction) bool
	// ScrollToSibling scrolls to that content.
	ScrollToSibling(dir Direction, smooth bool)
}

// Handoff hands control back to the page when the navigator exits: it
// deactivates the carousel, then scrolls to the sibling after a short delay.
type Handoff struct {
	page       Page
	sched      Scheduler
	delay      time.Duration
	smooth     bool
	deactivate func()
	log        *zap.Logger

	pending Timer
	stopped bool
}

// NewHandoff creates a handoff.
func NewHandoff(page Page, sched Scheduler, delay time.Duration, reducedMotion bool, deactivate func(), log *zap.Logger) *Handoff {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handoff{
		page:       page,
		sched:      sched,
		delay:      delay,
		smooth:     !reducedMotion,
		deactivate: deactivate,
		log:        log,
	}
}

// Exit leaves the carousel in dir. Without a sibling in that direction it
// does nothing. It reports whether a handoff was started.
func (h *Handoff) Exit(dir Direction) bool {
	if h.stopped || h.page == nil || !h.page.HasSibling(dir) {
		h.log.Debug("exit ignored, no sibling", zap.Stringer("direction", dir))
		return false
	}
	h.deactivate()
	h.cancel()
	h.pending = h.sched.AfterFunc(h.delay, func() {
		h.pending = nil
		if h.stopped {
			return
		}
		h.page.ScrollToSibling(dir, h.smooth)
	})
	return true
}

// Pending reports whether a sibling scroll is scheduled.
func (h *Handoff) Pending() bool { return h.pending != nil }

// Stop cancels a scheduled scroll and ignores further exits.
func (h *Handoff) Stop() {
	h.stopped = true
	h.cancel()
}

func (h *Handoff) cancel() {
	if h.pending != nil {
		h.pending.Stop()
		h.pending = nil
	}
}

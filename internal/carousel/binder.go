package carousel

import (
	"sync"

	"go.uber.org/zap"
)

// Binder translates raw events on a surface into navigator calls. It never
// writes the index itself.
type Binder struct {
	nav    *Navigator
	active func() bool
	log    *zap.Logger
}

// NewBinder creates a binder feeding nav. active is read on every event.
func NewBinder(nav *Navigator, active func() bool, log *zap.Logger) *Binder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Binder{nav: nav, active: active, log: log}
}

// Bind attaches wheel and touch listeners to surface and a key listener to
// global. The returned function detaches exactly those listeners; it may be
// called any number of times. A nil surface or global is skipped.
func (b *Binder) Bind(surface, global Target) func() {
	var removers []func()
	if surface != nil {
		removers = append(removers,
			surface.AddListener(EventWheel, b.onWheel),
			surface.AddListener(EventTouchStart, b.onTouchStart),
			surface.AddListener(EventTouchMove, b.onTouchMove),
			surface.AddListener(EventTouchEnd, b.onTouchEnd),
			surface.AddListener(EventTouchCancel, b.onTouchEnd),
		)
	}
	if global != nil {
		removers = append(removers, global.AddListener(EventKey, b.onKey))
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			for _, remove := range removers {
				remove()
			}
			b.log.Debug("input listeners detached", zap.Int("count", len(removers)))
		})
	}
}

func (b *Binder) isActive() bool {
	return b.active != nil && b.active()
}

func (b *Binder) onWheel(e *Event) {
	if !b.isActive() {
		return
	}
	e.PreventDefault()
	b.nav.Accumulate(e.DeltaY)
}

func (b *Binder) onTouchStart(e *Event) {
	if !b.isActive() {
		return
	}
	b.nav.BeginTouch(e.Y)
}

func (b *Binder) onTouchMove(e *Event) {
	if !b.isActive() {
		return
	}
	e.PreventDefault()
	b.nav.MoveTouch(e.Y)
}

func (b *Binder) onTouchEnd(*Event) {
	// A released touch never leaves residual motion, active or not.
	b.nav.EndTouch()
}

func (b *Binder) onKey(e *Event) {
	if !b.isActive() {
		return
	}
	switch e.Key {
	case KeyArrowRight, KeyArrowDown:
		e.PreventDefault()
		b.nav.RequestDirection(Next)
	case KeyArrowLeft, KeyArrowUp:
		e.PreventDefault()
		b.nav.RequestDirection(Prev)
	}
}

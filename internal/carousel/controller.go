package carousel

import (
	"time"

	"go.uber.org/zap"

	"atelier/internal/domain"
	"atelier/internal/eventbus"
)

// Config is resolved once when a carousel is created.
type Config struct {
	ReducedMotion bool
	// CoarsePointer selects touch tuning (smaller threshold, shorter cooldown).
	CoarsePointer bool

	WheelThreshold float64
	TouchThreshold float64
	Cooldown       time.Duration
	TouchCooldown  time.Duration
	SettleDelay    time.Duration
	ExitDelay      time.Duration
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		WheelThreshold: 60,
		TouchThreshold: 45,
		Cooldown:       450 * time.Millisecond,
		TouchCooldown:  350 * time.Millisecond,
		SettleDelay:    350 * time.Millisecond,
		ExitDelay:      120 * time.Millisecond,
	}
}

// Threshold is the gesture magnitude for the configured pointer class.
func (c Config) Threshold() float64 {
	if c.CoarsePointer {
		return c.TouchThreshold
	}
	return c.WheelThreshold
}

// TransitionCooldown is the cooldown for the configured pointer class.
func (c Config) TransitionCooldown() time.Duration {
	if c.CoarsePointer {
		return c.TouchCooldown
	}
	return c.Cooldown
}

// Options wires a Controller to its host.
type Options struct {
	Config    Config
	Page      Page
	Scheduler Scheduler
	Clock     Clock
	// Global receives keyboard events regardless of focus.
	Global Target
	Bus    eventbus.EventBus
	Logger *zap.Logger
}

// FrameState selects what the gallery section renders.
type FrameState int

const (
	FrameLoading FrameState = iota
	FrameEmpty
	FrameSlide
)

// Frame is everything a renderer needs for one paint of the carousel.
type Frame struct {
	State   FrameState
	Slide   domain.Slide
	Index   int
	Total   int
	Active  bool
	AtStart bool
	AtEnd   bool
}

// Controller is one mounted carousel: navigator, input binder, visibility
// monitor and exit handoff sharing one lifecycle.
type Controller struct {
	cfg     Config
	nav     *Navigator
	binder  *Binder
	monitor *Monitor
	handoff *Handoff
	global  Target
	bus     eventbus.EventBus
	log     *zap.Logger

	slides  []domain.Slide
	loading bool
	active  bool

	unbind    func()
	bindGen   uint64
	destroyed bool
}

// New mounts a carousel. It starts inactive and loading.
func New(opts Options) *Controller {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("carousel")
	sched := opts.Scheduler
	if sched == nil {
		sched = WallScheduler{}
	}

	c := &Controller{
		cfg:     opts.Config,
		global:  opts.Global,
		bus:     opts.Bus,
		log:     log,
		loading: true,
	}

	c.nav = NewNavigator(0, opts.Config.Threshold(), opts.Config.TransitionCooldown(), opts.Clock, NavigatorHooks{
		OnExitNext: func() { c.exit(Next) },
		OnExitPrev: func() { c.exit(Prev) },
		OnChange:   c.indexChanged,
	})
	c.binder = NewBinder(c.nav, c.Active, log)

	scrollIntoView := func(smooth bool) {
		if opts.Page != nil {
			opts.Page.ScrollIntoView(smooth)
		}
	}
	c.monitor = NewMonitor(sched, opts.Config.SettleDelay, opts.Config.ReducedMotion, scrollIntoView, c.setActive, log)
	c.handoff = NewHandoff(opts.Page, sched, opts.Config.ExitDelay, opts.Config.ReducedMotion, func() { c.setActive(false) }, log)

	log.Debug("carousel mounted",
		zap.Float64("threshold", opts.Config.Threshold()),
		zap.Duration("cooldown", opts.Config.TransitionCooldown()),
		zap.Bool("reduced_motion", opts.Config.ReducedMotion))
	return c
}

// Index returns the current slide index.
func (c *Controller) Index() int { return c.nav.Index() }

// Total returns the number of slides.
func (c *Controller) Total() int { return c.nav.Total() }

// Active reports whether the carousel is capturing input.
func (c *Controller) Active() bool { return c.active }

// Loading reports whether slides are still being fetched.
func (c *Controller) Loading() bool { return c.loading }

// Navigator exposes the state machine, mainly for tests and diagnostics.
func (c *Controller) Navigator() *Navigator { return c.nav }

// Current returns the slide at the current index.
func (c *Controller) Current() (domain.Slide, bool) {
	if c.loading || len(c.slides) == 0 {
		return domain.Slide{}, false
	}
	return c.slides[c.nav.Index()], true
}

// GoToNext requests the next slide (arrow button).
func (c *Controller) GoToNext() { c.nav.RequestDirection(Next) }

// GoToPrev requests the previous slide (arrow button).
func (c *Controller) GoToPrev() { c.nav.RequestDirection(Prev) }

// SetIndex jumps to slide i (progress dot).
func (c *Controller) SetIndex(i int) { c.nav.SetIndex(i) }

// BindToElement attaches input listeners to surface, disposing any previous
// binding first. The returned function is idempotent.
func (c *Controller) BindToElement(surface Target) func() {
	if c.unbind != nil {
		c.unbind()
		c.unbind = nil
	}
	if c.destroyed {
		return func() {}
	}
	unbind := c.binder.Bind(surface, c.global)
	c.bindGen++
	gen := c.bindGen
	c.unbind = unbind
	return func() {
		unbind()
		if c.bindGen == gen {
			c.unbind = nil
		}
	}
}

// Observe feeds an intersection sample of the host section.
func (c *Controller) Observe(s Intersection) {
	if c.destroyed {
		return
	}
	c.monitor.Observe(s)
}

// SetLoading marks the slide source as fetching.
func (c *Controller) SetLoading(loading bool) {
	c.loading = loading
}

// SetSlides replaces the slide list, recomputing total and re-clamping the index.
func (c *Controller) SetSlides(slides []domain.Slide, loading bool) {
	c.slides = slides
	c.loading = loading
	c.nav.SetTotal(len(slides))
	if c.bus != nil && !loading {
		c.bus.Publish(eventbus.SlidesLoadedEvent{Count: len(slides)})
	}
}

// Frame describes what to render now.
func (c *Controller) Frame() Frame {
	f := Frame{
		Index:   c.nav.Index(),
		Total:   c.nav.Total(),
		Active:  c.active,
		AtStart: c.nav.AtStart(),
		AtEnd:   c.nav.AtEnd(),
	}
	switch {
	case c.loading:
		f.State = FrameLoading
	case len(c.slides) == 0:
		f.State = FrameEmpty
	default:
		f.State = FrameSlide
		f.Slide = c.slides[f.Index]
	}
	return f
}

// Destroy cancels pending timers and detaches listeners. Nothing fires
// afterwards. Calling it again is a no-op.
func (c *Controller) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	c.monitor.Stop()
	c.handoff.Stop()
	if c.unbind != nil {
		c.unbind()
		c.unbind = nil
	}
	c.active = false
	c.nav.EndTouch()
	c.log.Debug("carousel destroyed")
}

func (c *Controller) setActive(active bool) {
	if c.destroyed && active {
		return
	}
	if c.active == active {
		return
	}
	c.active = active
	if !active {
		c.nav.EndTouch()
	}
	c.log.Debug("carousel active changed", zap.Bool("active", active))
	if c.bus == nil {
		return
	}
	if active {
		c.bus.Publish(eventbus.CarouselActivatedEvent{Index: c.nav.Index()})
	} else {
		c.bus.Publish(eventbus.CarouselDeactivatedEvent{Index: c.nav.Index()})
	}
}

func (c *Controller) exit(dir Direction) {
	if c.handoff.Exit(dir) && c.bus != nil {
		c.bus.Publish(eventbus.SectionExitedEvent{Direction: dir.String()})
	}
}

func (c *Controller) indexChanged(from, to int) {
	if c.bus == nil {
		return
	}
	ev := eventbus.SlideChangedEvent{OldIndex: from, NewIndex: to}
	if to < len(c.slides) {
		ev.SlideID = c.slides[to].ID
	}
	c.bus.Publish(ev)
}

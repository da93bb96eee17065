package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"atelier/internal/carousel"
	"atelier/internal/config"
	"atelier/internal/domain"
	"atelier/internal/eventbus"
	"atelier/internal/ui/input"
	"atelier/internal/ui/views"
)

const (
	scrollTickInterval = 16 * time.Millisecond
	statusTTL          = 4 * time.Second
	// maxObserveRounds bounds the sample/scroll feedback loop within one update.
	maxObserveRounds = 4
)

// SlideSource provides the catalogue as slides.
type SlideSource interface {
	Slides(ctx context.Context) ([]domain.Slide, error)
}

// Options wires the host page.
type Options struct {
	Config *config.Config
	Source SlideSource
	Bus    eventbus.EventBus
	Logger *zap.Logger
	// Clock drives gesture cooldowns; nil uses the wall clock.
	Clock carousel.Clock
}

// dragState tracks a left-button drag standing in for a touch gesture.
type dragState struct {
	active    bool
	onSurface bool
	lastRow   int
}

// Model is the host page: intro, gallery carousel and about sections.
type Model struct {
	display config.DisplayConfig
	source  SlideSource
	bus     eventbus.EventBus
	log     *zap.Logger

	layout   *Layout
	tracker  intersectionTracker
	sched    *teaScheduler
	cmds     []tea.Cmd
	carousel *carousel.Controller
	surface  *carousel.EventTarget
	global   *carousel.EventTarget
	unbind   func()

	inputHandler *input.Handler
	renderer     *views.Renderer
	help         help.Model
	spinner      spinner.Model

	width  int
	height int
	drag   dragState

	loadGen   uint64
	status    string
	statusErr bool
	statusSeq uint64
	showHelp  bool

	pager   *StoryPager
	program *tea.Program
}

// NewModel creates the host page and mounts the carousel on its gallery.
func NewModel(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	m := &Model{
		display:      cfg.Display,
		source:       opts.Source,
		bus:          opts.Bus,
		log:          log.Named("ui"),
		layout:       NewLayout(cfg.Display.ShowIntro, cfg.Display.ShowAbout),
		surface:      carousel.NewEventTarget(),
		global:       carousel.NewEventTarget(),
		inputHandler: input.New(),
		renderer:     views.NewRenderer(),
		help:         help.New(),
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		pager:        &StoryPager{},
	}
	m.sched = newTeaScheduler(m.enqueue)

	m.carousel = carousel.New(carousel.Options{
		Config:    cfg.CarouselSettings(),
		Page:      m,
		Scheduler: m.sched,
		Clock:     opts.Clock,
		Global:    m.global,
		Bus:       opts.Bus,
		Logger:    log,
	})
	m.unbind = m.carousel.BindToElement(m.surface)

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.program = p
}

// Carousel exposes the mounted controller.
func (m *Model) Carousel() *carousel.Controller { return m.carousel }

// Init starts the spinner and the first catalogue fetch.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadSlides(true))
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.relayout()

	case slidesLoadedMsg:
		m.handleSlides(msg)

	case timerFiredMsg:
		m.sched.Fire(msg.id)

	case scrollTickMsg:
		if m.layout.Step(msg.gen) {
			m.enqueue(scrollTick(msg.gen))
		}

	case EventMsg:
		m.handleEvent(msg.Event)

	case spinner.TickMsg:
		if m.carousel.Loading() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			m.enqueue(cmd)
		}

	case tea.KeyMsg:
		m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case storyClosedMsg:
		if msg.err != nil {
			m.log.Warn("story pager failed", zap.String("title", msg.title), zap.Error(msg.err))
			m.setStatus(fmt.Sprintf("Could not open story: %v", msg.err), true)
		}

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
	}

	m.syncIntersection()
	return m, m.drain()
}

// View renders the visible page and footer.
func (m *Model) View() string {
	l := m.layout
	return m.renderer.Render(views.ViewState{
		Width:         m.width,
		Height:        m.height,
		Title:         m.display.Title,
		Tagline:       m.display.Tagline,
		About:         m.display.About,
		IntroRows:     l.Height(SectionIntro),
		GalleryRows:   l.Height(SectionGallery),
		AboutRows:     l.Height(SectionAbout),
		Offset:        l.Offset(),
		Frame:         m.carousel.Frame(),
		Spinner:       m.spinner.View(),
		StatusMessage: m.status,
		StatusIsError: m.statusErr,
		ShowHelp:      m.showHelp,
		HelpModel:     m.help,
		Keys:          m.inputHandler.Keys(),
	})
}

// Close tears the carousel down. Pending timers and listeners are released.
func (m *Model) Close() {
	if m.unbind != nil {
		m.unbind()
		m.unbind = nil
	}
	m.carousel.Destroy()
}

// ScrollIntoView implements carousel.Page.
func (m *Model) ScrollIntoView(smooth bool) {
	m.scrollTo(m.layout.Start(SectionGallery), smooth)
}

// HasSibling implements carousel.Page.
func (m *Model) HasSibling(dir carousel.Direction) bool {
	if dir == carousel.Next {
		return m.layout.Has(SectionAbout)
	}
	return m.layout.Has(SectionIntro)
}

// ScrollToSibling implements carousel.Page.
func (m *Model) ScrollToSibling(dir carousel.Direction, smooth bool) {
	if dir == carousel.Next {
		m.scrollTo(m.layout.Start(SectionAbout), smooth)
		return
	}
	m.scrollTo(m.layout.Start(SectionIntro), smooth)
}

// SlideIndex implements input types.Context.
func (m *Model) SlideIndex() int { return m.carousel.Index() }

// SlideTotal implements input types.Context.
func (m *Model) SlideTotal() int { return m.carousel.Total() }

// CarouselActive implements input types.Context.
func (m *Model) CarouselActive() bool { return m.carousel.Active() }

func (m *Model) enqueue(cmd tea.Cmd) {
	if cmd != nil {
		m.cmds = append(m.cmds, cmd)
	}
}

func (m *Model) drain() tea.Cmd {
	if len(m.cmds) == 0 {
		return nil
	}
	cmds := m.cmds
	m.cmds = nil
	return tea.Batch(cmds...)
}

func scrollTick(gen uint64) tea.Cmd {
	return tea.Tick(scrollTickInterval, func(time.Time) tea.Msg {
		return scrollTickMsg{gen: gen}
	})
}

func (m *Model) scrollTo(row int, smooth bool) {
	if !smooth {
		m.layout.ScrollTo(row)
		return
	}
	if gen, ok := m.layout.Animate(row); ok {
		m.enqueue(scrollTick(gen))
	}
}

func (m *Model) relayout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	viewport := max(m.height-1, 1)
	m.layout.Resize(viewport,
		m.renderer.IntroRows(m.display.Title, m.display.Tagline, m.width),
		m.renderer.AboutRows(m.display.About, m.width))
}

// syncIntersection feeds the carousel a visibility sample whenever the
// gallery crosses a threshold. A sample can scroll the page, which can
// produce another sample, so it loops a bounded number of times.
func (m *Model) syncIntersection() {
	if m.width == 0 || m.height == 0 {
		return
	}
	for i := 0; i < maxObserveRounds; i++ {
		sample, changed := m.tracker.Sample(m.layout.Intersection())
		if !changed {
			return
		}
		m.carousel.Observe(sample)
	}
}

func (m *Model) loadSlides(initial bool) tea.Cmd {
	if m.source == nil {
		m.carousel.SetSlides(nil, false)
		return nil
	}
	m.loadGen++
	gen := m.loadGen
	if initial {
		m.carousel.SetLoading(true)
	}
	source := m.source
	return func() tea.Msg {
		slides, err := source.Slides(context.Background())
		return slidesLoadedMsg{gen: gen, slides: slides, err: err}
	}
}

func (m *Model) handleSlides(msg slidesLoadedMsg) {
	if msg.gen != m.loadGen {
		return
	}
	if msg.err != nil {
		m.log.Error("loading slides failed", zap.Error(msg.err))
		m.carousel.SetSlides(nil, false)
		m.setStatus(fmt.Sprintf("Could not load the catalogue: %v", msg.err), true)
		return
	}
	m.log.Debug("slides loaded", zap.Int("count", len(msg.slides)))
	m.carousel.SetSlides(msg.slides, false)
}

func (m *Model) handleEvent(e eventbus.DomainEvent) {
	switch ev := e.(type) {
	case eventbus.CatalogChangedEvent:
		m.setStatus(fmt.Sprintf("Catalogue updated: %d new, %d changed, %d removed", ev.Created, ev.Updated, ev.Removed), false)
		m.enqueue(m.loadSlides(false))
	case eventbus.ErrorEvent:
		m.setStatus(ev.Message+": "+errString(ev.Err), true)
	}
}

func errString(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
	m.statusSeq++
	seq := m.statusSeq
	m.enqueue(tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	}))
}

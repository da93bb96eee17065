package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"atelier/internal/carousel"
	inputtypes "atelier/internal/ui/input/types"
)

func arrowKey(msg tea.KeyMsg) (carousel.Key, bool) {
	switch msg.Type {
	case tea.KeyUp:
		return carousel.KeyArrowUp, true
	case tea.KeyDown:
		return carousel.KeyArrowDown, true
	case tea.KeyLeft:
		return carousel.KeyArrowLeft, true
	case tea.KeyRight:
		return carousel.KeyArrowRight, true
	}
	return "", false
}

// handleKey offers arrow keys to the carousel first; whatever it leaves
// unhandled goes through the page bindings.
func (m *Model) handleKey(msg tea.KeyMsg) {
	if k, ok := arrowKey(msg); ok && !m.showHelp {
		ev := &carousel.Event{Kind: carousel.EventKey, Key: k}
		m.global.Dispatch(ev)
		if ev.DefaultPrevented() {
			return
		}
	}

	for _, action := range m.inputHandler.HandleKey(msg, m) {
		m.apply(action)
	}
}

func (m *Model) apply(action inputtypes.Action) {
	switch a := action.(type) {
	case inputtypes.ScrollPageAction:
		m.layout.ScrollBy(a.Rows + a.Pages*m.layout.Viewport())
	case inputtypes.JumpPageAction:
		if a.Bottom {
			m.layout.ScrollTo(m.layout.MaxOffset())
		} else {
			m.layout.ScrollTo(0)
		}
	case inputtypes.NavigateSlideAction:
		if a.Forward {
			m.carousel.GoToNext()
		} else {
			m.carousel.GoToPrev()
		}
	case inputtypes.GoToSlideAction:
		m.carousel.SetIndex(a.Index)
	case inputtypes.OpenStoryAction:
		m.enqueue(m.openStory())
	case inputtypes.ReloadAction:
		m.enqueue(m.loadSlides(false))
	case inputtypes.ToggleHelpAction:
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	case inputtypes.QuitAction:
		m.Close()
		m.enqueue(tea.Quit)
	}
}

func (m *Model) openStory() tea.Cmd {
	slide, ok := m.carousel.Current()
	if !ok {
		return nil
	}
	width := m.width
	pager := m.pager
	return func() tea.Msg {
		content, err := RenderStory(slide, width)
		if err == nil {
			err = pager.Show(content)
		}
		return storyClosedMsg{title: slide.Title, err: err}
	}
}

// handleMouse maps the wheel and left-button drags onto carousel wheel and
// touch events. Events over the gallery go to the carousel surface first;
// the page scrolls only when the carousel did not claim them.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	section, onPage := m.layout.SectionAt(msg.Y)
	overGallery := onPage && section == SectionGallery

	switch {
	case msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown:
		if msg.Action != tea.MouseActionPress {
			return
		}
		sign := 1
		if msg.Button == tea.MouseButtonWheelUp {
			sign = -1
		}
		if overGallery {
			ev := &carousel.Event{Kind: carousel.EventWheel, DeltaY: float64(sign) * m.display.WheelDelta}
			m.surface.Dispatch(ev)
			if ev.DefaultPrevented() {
				return
			}
		}
		m.layout.ScrollBy(sign * m.display.ScrollStep)

	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		m.drag = dragState{active: true, onSurface: overGallery, lastRow: msg.Y}
		if overGallery {
			m.surface.Dispatch(&carousel.Event{Kind: carousel.EventTouchStart, Y: m.touchY(msg.Y)})
		}

	case msg.Action == tea.MouseActionMotion && m.drag.active:
		delta := m.drag.lastRow - msg.Y
		m.drag.lastRow = msg.Y
		if m.drag.onSurface {
			ev := &carousel.Event{Kind: carousel.EventTouchMove, Y: m.touchY(msg.Y)}
			m.surface.Dispatch(ev)
			if ev.DefaultPrevented() {
				return
			}
		}
		m.layout.ScrollBy(delta)

	case msg.Action == tea.MouseActionRelease && m.drag.active:
		if m.drag.onSurface {
			m.surface.Dispatch(&carousel.Event{Kind: carousel.EventTouchEnd, Y: m.touchY(msg.Y)})
		}
		m.log.Debug("drag ended", zap.Bool("on_surface", m.drag.onSurface))
		m.drag = dragState{}
	}
}

// touchY converts a terminal row into touch units.
func (m *Model) touchY(row int) float64 {
	return float64(row) * m.display.RowUnits
}

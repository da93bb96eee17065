package input

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"atelier/internal/ui/input/types"
)

// Handler routes key presses to the handler for the current mode.
type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	keys        KeyMap
}

// New creates a handler in normal mode with the default key map.
func New() *Handler {
	keys := DefaultKeyMap()
	h := &Handler{
		currentMode: types.ModeNormal,
		modes:       make(map[types.Mode]types.ModeHandler),
		keys:        keys,
	}

	h.modes[types.ModeNormal] = &normalMode{keys: keys}
	h.modes[types.ModeHelp] = &helpMode{keys: keys}

	return h
}

// HandleKey maps a key to actions, applying mode changes itself.
func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) []types.Action {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)
	if !consumed {
		return nil
	}

	var out []types.Action
	for _, action := range actions {
		if changeMode, ok := action.(types.ChangeModeAction); ok {
			h.currentMode = changeMode.Mode
			continue
		}
		out = append(out, action)
	}
	return out
}

// CurrentMode returns the active input mode.
func (h *Handler) CurrentMode() types.Mode {
	return h.currentMode
}

// Keys returns the bindings for help rendering.
func (h *Handler) Keys() KeyMap {
	return h.keys
}

type normalMode struct {
	keys KeyMap
}

func (m *normalMode) Name() string { return "NORMAL" }

func (m *normalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return []types.Action{types.QuitAction{}}, true
	case key.Matches(msg, k.Help):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeHelp}, types.ToggleHelpAction{}}, true
	case key.Matches(msg, k.Up):
		return []types.Action{types.ScrollPageAction{Rows: -1}}, true
	case key.Matches(msg, k.Down):
		return []types.Action{types.ScrollPageAction{Rows: 1}}, true
	case key.Matches(msg, k.PageUp):
		return []types.Action{types.ScrollPageAction{Pages: -1}}, true
	case key.Matches(msg, k.PageDown):
		return []types.Action{types.ScrollPageAction{Pages: 1}}, true
	case key.Matches(msg, k.Top):
		return []types.Action{types.JumpPageAction{Bottom: false}}, true
	case key.Matches(msg, k.Bottom):
		return []types.Action{types.JumpPageAction{Bottom: true}}, true
	}

	if ctx.SlideTotal() == 0 {
		if key.Matches(msg, k.Reload) {
			return []types.Action{types.ReloadAction{}}, true
		}
		return nil, false
	}

	switch {
	case key.Matches(msg, k.Prev):
		return []types.Action{types.NavigateSlideAction{Forward: false}}, true
	case key.Matches(msg, k.Next):
		return []types.Action{types.NavigateSlideAction{Forward: true}}, true
	case key.Matches(msg, k.First):
		return []types.Action{types.GoToSlideAction{Index: 0}}, true
	case key.Matches(msg, k.Last):
		return []types.Action{types.GoToSlideAction{Index: ctx.SlideTotal() - 1}}, true
	case key.Matches(msg, k.Jump):
		n := int(msg.String()[0] - '1')
		if n >= ctx.SlideTotal() {
			return nil, true
		}
		return []types.Action{types.GoToSlideAction{Index: n}}, true
	case key.Matches(msg, k.Story):
		return []types.Action{types.OpenStoryAction{}}, true
	case key.Matches(msg, k.Reload):
		return []types.Action{types.ReloadAction{}}, true
	}
	return nil, false
}

type helpMode struct {
	keys KeyMap
}

func (m *helpMode) Name() string { return "HELP" }

// HandleKey swallows everything while the help overlay is open.
func (m *helpMode) HandleKey(msg tea.KeyMsg, _ types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Close), msg.String() == "q":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}, types.ToggleHelpAction{}}, true
	case msg.String() == "ctrl+c":
		return []types.Action{types.QuitAction{}}, true
	}
	return nil, true
}

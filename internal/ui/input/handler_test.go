package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"atelier/internal/ui/input/types"
)

type fakeContext struct {
	index, total int
	active       bool
}

func (c fakeContext) SlideIndex() int      { return c.index }
func (c fakeContext) SlideTotal() int      { return c.total }
func (c fakeContext) CarouselActive() bool { return c.active }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNormalModeScroll(t *testing.T) {
	h := New()
	ctx := fakeContext{total: 3}

	assert.Equal(t, []types.Action{types.ScrollPageAction{Rows: 1}}, h.HandleKey(tea.KeyMsg{Type: tea.KeyDown}, ctx))
	assert.Equal(t, []types.Action{types.ScrollPageAction{Rows: -1}}, h.HandleKey(runes("k"), ctx))
	assert.Equal(t, []types.Action{types.ScrollPageAction{Pages: 1}}, h.HandleKey(tea.KeyMsg{Type: tea.KeyPgDown}, ctx))
	assert.Equal(t, []types.Action{types.JumpPageAction{Bottom: true}}, h.HandleKey(runes("G"), ctx))
}

func TestNormalModeSlides(t *testing.T) {
	h := New()
	ctx := fakeContext{index: 1, total: 4}

	assert.Equal(t, []types.Action{types.NavigateSlideAction{Forward: true}}, h.HandleKey(runes("l"), ctx))
	assert.Equal(t, []types.Action{types.NavigateSlideAction{Forward: false}}, h.HandleKey(runes("h"), ctx))
	assert.Equal(t, []types.Action{types.GoToSlideAction{Index: 3}}, h.HandleKey(tea.KeyMsg{Type: tea.KeyEnd}, ctx))
	assert.Equal(t, []types.Action{types.GoToSlideAction{Index: 0}}, h.HandleKey(tea.KeyMsg{Type: tea.KeyHome}, ctx))
	assert.Equal(t, []types.Action{types.GoToSlideAction{Index: 2}}, h.HandleKey(runes("3"), ctx))
	assert.Empty(t, h.HandleKey(runes("9"), ctx), "jump beyond the catalogue is ignored")
	assert.Equal(t, []types.Action{types.OpenStoryAction{}}, h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, ctx))
}

func TestNormalModeWithoutSlides(t *testing.T) {
	h := New()
	ctx := fakeContext{}

	assert.Empty(t, h.HandleKey(runes("l"), ctx))
	assert.Empty(t, h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, ctx))
	assert.Equal(t, []types.Action{types.ReloadAction{}}, h.HandleKey(runes("r"), ctx))
}

func TestHelpModeSwallowsKeys(t *testing.T) {
	h := New()
	ctx := fakeContext{total: 2}

	actions := h.HandleKey(runes("?"), ctx)
	assert.Equal(t, []types.Action{types.ToggleHelpAction{}}, actions)
	assert.Equal(t, types.ModeHelp, h.CurrentMode())

	assert.Empty(t, h.HandleKey(runes("l"), ctx))

	actions = h.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, ctx)
	assert.Equal(t, []types.Action{types.ToggleHelpAction{}}, actions)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}

func TestQuit(t *testing.T) {
	h := New()

	assert.Equal(t, []types.Action{types.QuitAction{}}, h.HandleKey(runes("q"), fakeContext{}))
	assert.Equal(t, []types.Action{types.QuitAction{}}, h.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlC}, fakeContext{}))
}

func TestKeyMapHelp(t *testing.T) {
	k := DefaultKeyMap()

	assert.NotEmpty(t, k.ShortHelp())
	assert.Len(t, k.FullHelp(), 3)
}

package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"atelier/internal/carousel"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int // whole terminal, including the footer

	Title   string
	Tagline string
	About   string

	// Section heights in page rows; zero hides a section.
	IntroRows   int
	GalleryRows int
	AboutRows   int
	Offset      int

	Frame   carousel.Frame
	Spinner string

	StatusMessage string
	StatusIsError bool

	ShowHelp  bool
	HelpModel help.Model
	Keys      help.KeyMap
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Styles exposes the renderer's styles.
func (r *Renderer) Styles() *Styles { return r.styles }

// IntroRows is the natural height of the intro section at width.
func (r *Renderer) IntroRows(title, tagline string, width int) int {
	return lipgloss.Height(r.styles.IntroContent(title, tagline, width))
}

// AboutRows is the natural height of the about section at width.
func (r *Renderer) AboutRows(about string, width int) int {
	return lipgloss.Height(r.styles.AboutContent(about, width))
}

// Render draws the visible slice of the page plus the footer.
func (r *Renderer) Render(state ViewState) string {
	if state.Width <= 0 || state.Height <= 0 {
		return ""
	}
	viewport := max(state.Height-1, 1)

	var lines []string
	if state.IntroRows > 0 {
		lines = append(lines, fit(Block(r.styles.IntroContent(state.Title, state.Tagline, state.Width), state.Width, state.IntroRows), state.IntroRows)...)
	}
	lines = append(lines, fit(r.styles.RenderGallery(state.Frame, state.Width, state.GalleryRows, state.Spinner), state.GalleryRows)...)
	if state.AboutRows > 0 {
		lines = append(lines, fit(Block(r.styles.AboutContent(state.About, state.Width), state.Width, state.AboutRows), state.AboutRows)...)
	}

	start := min(max(state.Offset, 0), len(lines))
	end := min(start+viewport, len(lines))
	visible := lines[start:end]
	for len(visible) < viewport {
		visible = append(visible, "")
	}
	page := strings.Join(visible, "\n")

	if state.ShowHelp {
		page = r.overlay(state.HelpModel.FullHelpView(state.Keys.FullHelp()), state.Width, viewport)
	}

	return page + "\n" + r.footer(state)
}

func (r *Renderer) footer(state ViewState) string {
	if state.StatusMessage != "" {
		style := r.styles.Status
		if state.StatusIsError {
			style = r.styles.StatusError
		}
		return style.MaxWidth(state.Width).Render(state.StatusMessage)
	}
	if state.Keys == nil {
		return ""
	}
	return state.HelpModel.ShortHelpView(state.Keys.ShortHelp())
}

// overlay centers content in a bordered box over a blank page.
func (r *Renderer) overlay(content string, width, height int) string {
	box := r.styles.HelpBox.Render(content)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// fit pads or cuts a block to exactly rows lines so page rows line up with
// the layout.
func fit(block string, rows int) []string {
	lines := strings.Split(block, "\n")
	if len(lines) > rows {
		return lines[:rows]
	}
	for len(lines) < rows {
		lines = append(lines, "")
	}
	return lines
}

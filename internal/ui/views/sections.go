package views

import (
	"github.com/charmbracelet/lipgloss"
)

// IntroContent is the natural-height intro block.
func (s *Styles) IntroContent(title, tagline string, width int) string {
	return lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Render(title),
		s.Tagline.Width(min(width, 60)).Align(lipgloss.Center).Render(tagline),
		"",
		s.Hint.Render("↓ scroll to the gallery"),
	)
}

// AboutContent is the natural-height about block.
func (s *Styles) AboutContent(about string, width int) string {
	return lipgloss.JoinVertical(lipgloss.Center,
		s.Section.Render("About the studio"),
		"",
		lipgloss.NewStyle().Width(min(width, 60)).Render(about),
		"",
		s.Hint.Render("↑ scroll back to the gallery"),
	)
}

// Block places content centered in exactly width x height.
func Block(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

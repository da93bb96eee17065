package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Tagline       lipgloss.Style
	Section       lipgloss.Style
	Dim           lipgloss.Style
	Card          lipgloss.Style
	CardActive    lipgloss.Style
	Collection    lipgloss.Style
	ArtTitle      lipgloss.Style
	Price         lipgloss.Style
	Image         lipgloss.Style
	Dot           lipgloss.Style
	DotActive     lipgloss.Style
	Counter       lipgloss.Style
	Hint          lipgloss.Style
	Status        lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	HelpBox       lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Tagline: lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Italic(true),
		Section: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Dim:     lipgloss.NewStyle().Faint(true),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(1, 3),
		CardActive: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(1, 3),
		Collection:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true), // amber
		ArtTitle:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
		Price:         lipgloss.NewStyle().Foreground(lipgloss.Color("78")), // green
		Image:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		Dot:           lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		DotActive:     lipgloss.NewStyle().Foreground(lipgloss.Color("99")),
		Counter:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Hint:          lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Status:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		HelpBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(1, 2),
	}
}

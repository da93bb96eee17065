package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"atelier/internal/carousel"
)

// maxDots is the largest catalogue drawn as individual progress dots.
const maxDots = 15

// FormatPrice renders a price for display. Zero means the work is not listed.
func FormatPrice(p float64) string {
	if p <= 0 {
		return "Price on request"
	}
	return "$" + humanize.CommafWithDigits(p, 2)
}

// ProgressDots draws one dot per slide with the current one highlighted.
func (s *Styles) ProgressDots(index, total int) string {
	if total <= 0 || total > maxDots {
		return ""
	}
	var b strings.Builder
	for i := 0; i < total; i++ {
		if i > 0 {
			b.WriteString(" ")
		}
		if i == index {
			b.WriteString(s.DotActive.Render("●"))
		} else {
			b.WriteString(s.Dot.Render("○"))
		}
	}
	return b.String()
}

// CounterText renders "n / total".
func (s *Styles) CounterText(index, total int) string {
	return s.Counter.Render(fmt.Sprintf("%d / %d", index+1, total))
}

// RenderGallery draws the carousel section into exactly width x height.
func (s *Styles) RenderGallery(f carousel.Frame, width, height int, spinner string) string {
	var body string
	switch f.State {
	case carousel.FrameLoading:
		body = strings.TrimSpace(spinner + " Loading works…")
	case carousel.FrameEmpty:
		body = lipgloss.JoinVertical(lipgloss.Center,
			"No works in the catalogue yet.",
			s.Hint.Render("atelier import <seed.yaml>"))
	default:
		body = s.renderSlide(f, width)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (s *Styles) renderSlide(f carousel.Frame, width int) string {
	cardWidth := min(max(width-8, 20), 72)
	inner := cardWidth - 8

	lines := []string{
		s.Collection.Render(strings.ToUpper(f.Slide.CollectionLabel)),
		s.ArtTitle.Render(truncate(f.Slide.Title, inner)),
		"",
	}
	if f.Slide.ImageRef != "" {
		lines = append(lines, s.Image.Render(truncate("▧ "+f.Slide.ImageRef, inner)))
	}
	if excerpt := Excerpt(f.Slide.Story); excerpt != "" {
		lines = append(lines, s.Dim.Render(truncate(excerpt, inner)))
	}
	lines = append(lines, "", s.Price.Render(FormatPrice(f.Slide.Price)))

	card := s.Card
	if f.Active {
		card = s.CardActive
	}
	box := card.Width(cardWidth).Render(strings.Join(lines, "\n"))

	progress := s.CounterText(f.Index, f.Total)
	if dots := s.ProgressDots(f.Index, f.Total); dots != "" {
		progress = dots + "   " + progress
	}

	hint := "scroll or ↓ to enter the gallery"
	if f.Active {
		switch {
		case f.AtEnd:
			hint = "last work · keep scrolling to continue"
		case f.AtStart:
			hint = "first work · scroll up to go back"
		default:
			hint = "scroll, drag or use arrows · enter for story"
		}
	}

	return lipgloss.JoinVertical(lipgloss.Center, box, "", progress, s.Hint.Render(hint))
}

// Excerpt returns the first line of prose from a markdown story.
func Excerpt(story string) string {
	for _, line := range strings.Split(story, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "#>*- ")
		if line != "" {
			return line
		}
	}
	return ""
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}

package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/noborus/ov/oviewer"

	"atelier/internal/domain"
	"atelier/internal/ui/views"
)

// storyMarkdown assembles the long-form page for one slide.
func storyMarkdown(s domain.Slide) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", s.Title)
	if s.CollectionLabel != "" {
		fmt.Fprintf(&b, "*%s*\n\n", s.CollectionLabel)
	}
	fmt.Fprintf(&b, "**%s**\n\n", views.FormatPrice(s.Price))
	if s.ImageRef != "" {
		fmt.Fprintf(&b, "`%s`\n\n", s.ImageRef)
	}
	if story := strings.TrimSpace(s.Story); story != "" {
		b.WriteString(story)
		b.WriteString("\n")
	}
	return b.String()
}

// RenderStory renders a slide's story as styled terminal text.
func RenderStory(s domain.Slide, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(min(width, 100)),
	)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(storyMarkdown(s))
	if err != nil {
		return "", fmt.Errorf("rendering story: %w", err)
	}
	return out, nil
}

// storyClosedMsg contains the result of a story pager command
type storyClosedMsg struct {
	title string
	err   error
}

// StoryPager shows long content in the ov pager, handing it the terminal
// for the duration.
type StoryPager struct {
	program *tea.Program
}

// Show blocks until the pager exits.
func (p *StoryPager) Show(content string) error {
	if p == nil || p.program == nil {
		return fmt.Errorf("program not set")
	}

	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		// let ov finish with the tty before bubbletea takes it back
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

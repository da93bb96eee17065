package ui

import "atelier/internal/carousel"

// Section is one block of the host page, top to bottom.
type Section int

const (
	SectionIntro Section = iota
	SectionGallery
	SectionAbout
	sectionCount
)

func (s Section) String() string {
	switch s {
	case SectionIntro:
		return "intro"
	case SectionGallery:
		return "gallery"
	case SectionAbout:
		return "about"
	}
	return "unknown"
}

// Layout is the row geometry of the page and its scroll offset. Every
// present section is at least one viewport tall so that scrolling to a
// sibling hides the gallery completely.
type Layout struct {
	present  [sectionCount]bool
	heights  [sectionCount]int
	viewport int
	offset   int

	// animation toward target; gen invalidates stale ticks
	gen       uint64
	animating bool
	target    int
}

// NewLayout creates a page layout. The gallery is always present.
func NewLayout(showIntro, showAbout bool) *Layout {
	l := &Layout{}
	l.present[SectionIntro] = showIntro
	l.present[SectionGallery] = true
	l.present[SectionAbout] = showAbout
	return l
}

// Resize sets the viewport height and the natural content height of the
// intro and about sections, then clamps the offset.
func (l *Layout) Resize(viewport, introRows, aboutRows int) {
	if viewport < 1 {
		viewport = 1
	}
	l.viewport = viewport
	l.heights[SectionGallery] = viewport
	l.heights[SectionIntro] = 0
	l.heights[SectionAbout] = 0
	if l.present[SectionIntro] {
		l.heights[SectionIntro] = max(introRows, viewport)
	}
	if l.present[SectionAbout] {
		l.heights[SectionAbout] = max(aboutRows, viewport)
	}
	l.clamp()
	if l.animating {
		l.target = l.clampRow(l.target)
	}
}

// Has reports whether the section is rendered.
func (l *Layout) Has(s Section) bool { return l.present[s] }

// Height returns the section's row count.
func (l *Layout) Height(s Section) int { return l.heights[s] }

// Start returns the page row where the section begins.
func (l *Layout) Start(s Section) int {
	row := 0
	for i := Section(0); i < s; i++ {
		row += l.heights[i]
	}
	return row
}

// Total returns the page height in rows.
func (l *Layout) Total() int { return l.Start(sectionCount) }

// Viewport returns the visible height.
func (l *Layout) Viewport() int { return l.viewport }

// Offset returns the first visible page row.
func (l *Layout) Offset() int { return l.offset }

// MaxOffset returns the largest valid offset.
func (l *Layout) MaxOffset() int {
	return max(l.Total()-l.viewport, 0)
}

// ScrollBy moves the offset and cancels any animation.
func (l *Layout) ScrollBy(delta int) {
	l.ScrollTo(l.offset + delta)
}

// ScrollTo jumps to row and cancels any animation.
func (l *Layout) ScrollTo(row int) {
	l.CancelAnimation()
	l.offset = l.clampRow(row)
}

// SectionAt returns the section shown at viewport row y.
func (l *Layout) SectionAt(y int) (Section, bool) {
	if y < 0 || y >= l.viewport {
		return 0, false
	}
	row := l.offset + y
	start := 0
	for s := Section(0); s < sectionCount; s++ {
		if row < start+l.heights[s] {
			return s, true
		}
		start += l.heights[s]
	}
	return 0, false
}

// Visible returns how many rows of the section are in the viewport.
func (l *Layout) Visible(s Section) int {
	top := max(l.Start(s), l.offset)
	bottom := min(l.Start(s)+l.heights[s], l.offset+l.viewport)
	return max(bottom-top, 0)
}

// Intersection samples the gallery's visibility.
func (l *Layout) Intersection() carousel.Intersection {
	h := l.heights[SectionGallery]
	if h == 0 {
		return carousel.Intersection{}
	}
	visible := l.Visible(SectionGallery)
	return carousel.Intersection{
		IsIntersecting: visible > 0,
		Ratio:          float64(visible) / float64(h),
	}
}

// Animate starts a smooth scroll toward row. It returns the generation the
// caller must tick with, or false when already there.
func (l *Layout) Animate(row int) (uint64, bool) {
	row = l.clampRow(row)
	l.gen++
	if row == l.offset {
		l.animating = false
		return 0, false
	}
	l.animating = true
	l.target = row
	return l.gen, true
}

// Step advances an animation by one tick. It reports whether another tick
// is needed; stale generations are ignored.
func (l *Layout) Step(gen uint64) bool {
	if !l.animating || gen != l.gen {
		return false
	}
	diff := l.target - l.offset
	step := diff / 3
	if step == 0 {
		step = diff
	}
	l.offset += step
	if l.offset == l.target {
		l.animating = false
		return false
	}
	return true
}

// Animating reports whether a smooth scroll is in flight.
func (l *Layout) Animating() bool { return l.animating }

// CancelAnimation stops any in-flight smooth scroll.
func (l *Layout) CancelAnimation() {
	l.gen++
	l.animating = false
}

func (l *Layout) clamp() {
	l.offset = l.clampRow(l.offset)
}

func (l *Layout) clampRow(row int) int {
	return min(max(row, 0), l.MaxOffset())
}

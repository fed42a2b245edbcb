package window

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/tuiwin/internal/geometry"
	"github.com/Gaurav-Gosain/tuiwin/internal/theme"
	"github.com/charmbracelet/x/ansi"
)

const (
	buttonGlyph    = "●"
	maximizedGlyph = "◆"
)

// Render draws the frame at its current size. Each returned line is exactly
// the frame's width in cells. A frame narrower or shorter than two cells
// renders nothing.
func (f *Frame) Render(p theme.Palette) []string {
	size := f.geo.Size()
	w, h := size.Width, size.Height
	if w < 2 || h < 2 || !f.Visible() {
		return nil
	}

	borderColor := p.Border
	if f.geo.Mode() != geometry.Idle {
		borderColor = p.ActiveBorder
	}
	border := lipgloss.NewStyle().Foreground(borderColor)
	inner := w - 2

	lines := make([]string, 0, h)
	lines = append(lines, border.Render("╭"+strings.Repeat("─", inner)+"╮"))

	side := border.Render("│")
	lines = append(lines, side+fit(f.titleBar(p, inner), inner)+side)

	for i := range h - 3 {
		var body string
		if i < len(f.Body) {
			body = f.Body[i]
		}
		lines = append(lines, side+fit(body, inner)+side)
	}

	lines = append(lines, border.Render("╰"+strings.Repeat("─", inner)+"╯"))
	return lines[:h]
}

func (f *Frame) titleBar(p theme.Palette, width int) string {
	maximize := buttonGlyph
	if f.maximized {
		maximize = maximizedGlyph
	}

	var b strings.Builder
	b.WriteString(" ")
	b.WriteString(lipgloss.NewStyle().Foreground(p.Close).Render(buttonGlyph))
	b.WriteString(" ")
	b.WriteString(lipgloss.NewStyle().Foreground(p.Minimize).Render(buttonGlyph))
	b.WriteString(" ")
	b.WriteString(lipgloss.NewStyle().Foreground(p.Maximize).Render(maximize))
	b.WriteString(" ")

	if room := width - MaximizeCol - 1; room > 0 && f.Title != "" {
		title := ansi.Truncate(f.Title, room, "…")
		pad := (room - ansi.StringWidth(title)) / 2
		b.WriteString(strings.Repeat(" ", pad))
		b.WriteString(lipgloss.NewStyle().Foreground(p.Title).Bold(true).Render(title))
	}
	return b.String()
}

// DockLabel is the one-line representation of a minimized frame.
func (f *Frame) DockLabel(p theme.Palette) string {
	return lipgloss.NewStyle().Foreground(p.Muted).Render("[") +
		lipgloss.NewStyle().Foreground(p.Title).Render(f.Title) +
		lipgloss.NewStyle().Foreground(p.Muted).Render("]")
}

// fit truncates or pads s to exactly width cells.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "")
	if n := ansi.StringWidth(s); n < width {
		s += strings.Repeat(" ", width-n)
	}
	return s
}

package app

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/Gaurav-Gosain/tuiwin/internal/config"
	"github.com/Gaurav-Gosain/tuiwin/internal/geometry"
	"github.com/Gaurav-Gosain/tuiwin/internal/pool"
	"github.com/charmbracelet/x/ansi"
)

var introLines = []string{
	"",
	"  Drag the title bar to move.",
	"  Drag an edge or corner to resize.",
	"  Double-click the title to maximize.",
}

// refreshBody rebuilds the window contents.
func (m *Model) refreshBody() {
	lines := append([]string(nil), introLines...)
	if !m.showHelp {
		lines = append(lines, "", fmt.Sprintf("  Press %s for keys.", m.registry.GetKeysForDisplay(config.ActionToggleHelp)))
		m.Frame.Body = lines
		return
	}
	lines = append(lines, "")
	for _, l := range strings.Split(m.helpTable(), "\n") {
		lines = append(lines, "  "+l)
	}
	m.Frame.Body = lines
}

func (m *Model) helpTable() string {
	rows := make([][]string, 0, len(config.ActionDescriptions))
	for _, b := range config.GetKeybindings(m.registry) {
		rows = append(rows, []string{b.Key, b.Description})
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(m.palette.Title)
	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(m.palette.Muted)).
		Headers("KEY", "ACTION").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header.Padding(0, 1)
			}
			return cell
		})
	return t.Render()
}

// View implements tea.Model.
func (m *Model) View() tea.View {
	var view tea.View
	view.SetContent(m.Render())
	view.AltScreen = true
	view.MouseMode = tea.MouseModeAllMotion
	return view
}

// Render draws the desktop, the window and the status bar.
func (m *Model) Render() string {
	desktop := m.Viewport()
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	rows := pool.GetLineSlice()
	defer pool.PutLineSlice(rows)

	blank := strings.Repeat(" ", m.width)
	for range desktop.Height {
		*rows = append(*rows, blank)
	}

	r := m.Frame.Geometry().Rect()
	for i, line := range m.Frame.Render(m.palette) {
		y := r.Y + i
		if y < 0 || y >= desktop.Height {
			continue
		}
		(*rows)[y] = overlay(line, r.X, m.width)
	}

	if m.height > desktop.Height {
		*rows = append(*rows, m.statusBar())
	}

	sb := pool.GetStringBuilder()
	defer pool.PutStringBuilder(sb)
	for i, row := range *rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(row)
	}
	return sb.String()
}

// overlay places line at column x of a blank row width cells wide.
func overlay(line string, x, width int) string {
	if x >= width {
		return strings.Repeat(" ", width)
	}
	return fitWidth(strings.Repeat(" ", max(0, x))+line, width)
}

func fitWidth(s string, width int) string {
	s = ansi.Truncate(s, width, "")
	if n := ansi.StringWidth(s); n < width {
		s += strings.Repeat(" ", width-n)
	}
	return s
}

func (m *Model) statusBar() string {
	muted := lipgloss.NewStyle().Foreground(m.palette.Muted)

	var left string
	if m.Frame.Minimized() {
		left = m.Frame.DockLabel(m.palette) + muted.Render(" click to restore")
	}

	geo := m.Frame.Geometry()
	mode := geo.Mode().String()
	if dir := geo.ActiveResizeDirection(); dir != geometry.DirNone {
		mode += " " + dir.String()
	}
	if m.Frame.Maximized() {
		mode += " (maximized)"
	}
	right := muted.Render(fmt.Sprintf("%s  %s  %s ", m.position, m.size, mode))

	if !m.cfg.Appearance.ShowStatusBar && left == "" {
		return strings.Repeat(" ", m.width)
	}
	gap := m.width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 1 {
		return fitWidth(left+" "+right, m.width)
	}
	return left + strings.Repeat(" ", gap) + right
}

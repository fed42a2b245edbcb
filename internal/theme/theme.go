// Package theme provides the window chrome colors for tuiwin.
package theme

import (
	"errors"
	"fmt"
	"image/color"

	"charm.land/lipgloss/v2"
	tint "github.com/lrstanley/bubbletint/v2"
)

// ErrUnknownTheme is returned when a theme name is not in the registry.
var ErrUnknownTheme = errors.New("unknown theme")

var enabled bool

// Initialize sets up the theme registry with the specified theme name.
// Call it at startup and again when the configuration is reloaded.
// If themeName is empty, theming is disabled and the fallback palette is used.
// An unknown name keeps theming on with the registry's default tint and
// returns ErrUnknownTheme.
func Initialize(themeName string) error {
	if themeName == "" {
		enabled = false
		return nil
	}

	enabled = true
	tint.NewDefaultRegistry()

	if ok := tint.SetTintID(themeName); !ok {
		return fmt.Errorf("%w: %q (using %s)", ErrUnknownTheme, themeName, tint.Current().ID)
	}

	return nil
}

// IsEnabled returns true if theming is enabled
func IsEnabled() bool {
	return enabled
}

// Current returns the currently active theme.
// Returns nil if theming is disabled.
func Current() *tint.Tint {
	if !enabled {
		return nil
	}
	return tint.Current()
}

// Palette holds the colors used to draw a window.
type Palette struct {
	Border       color.Color
	ActiveBorder color.Color
	Title        color.Color
	Muted        color.Color
	Close        color.Color
	Minimize     color.Color
	Maximize     color.Color
}

// Fallback is the palette used when theming is disabled. The traffic lights
// use the classic red/yellow/green.
var Fallback = Palette{
	Border:       lipgloss.Color("8"),
	ActiveBorder: lipgloss.Color("12"),
	Title:        lipgloss.Color("15"),
	Muted:        lipgloss.Color("8"),
	Close:        lipgloss.Color("#ff5f57"),
	Minimize:     lipgloss.Color("#febc2e"),
	Maximize:     lipgloss.Color("#28c840"),
}

// CurrentPalette maps the active theme onto window chrome colors.
func CurrentPalette() Palette {
	t := Current()
	if t == nil {
		return Fallback
	}
	return Palette{
		Border:       t.BrightBlack,
		ActiveBorder: t.Blue,
		Title:        t.White,
		Muted:        t.BrightBlack,
		Close:        t.Red,
		Minimize:     t.Yellow,
		Maximize:     t.Green,
	}
}

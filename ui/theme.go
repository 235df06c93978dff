package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ApplyTheme configures the shared renderer from the configured theme
// name. "dark" and "light" force the background assumption the adaptive
// styles key off, "auto" keeps terminal detection, and "mono" drops all
// color output.
func ApplyTheme(name string) error {
	switch name {
	case "", "auto":
		// Keep what lipgloss detected from the terminal.
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
	case "mono":
		lipgloss.SetColorProfile(termenv.Ascii)
	default:
		return fmt.Errorf("unknown theme %q (have: auto, dark, light, mono)", name)
	}
	return nil
}

// ThemeNames lists the accepted theme names for config validation and
// error messages.
func ThemeNames() []string {
	return []string{"auto", "dark", "light", "mono"}
}

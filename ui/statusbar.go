package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"spritepad/ui/colorsel"
)

var (
	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "236", Dark: "252"}).
			Background(lipgloss.AdaptiveColor{Light: "252", Dark: "236"})
	statusFlashStyle = lipgloss.NewStyle().Bold(true)
)

// StatusBar is the bottom readout: current color on the left, transient
// command feedback on the right.
type StatusBar struct {
	sel   *colorsel.Selector
	width int
	flash string
}

func NewStatusBar(sel *colorsel.Selector) *StatusBar {
	return &StatusBar{sel: sel, width: 80}
}

func (s *StatusBar) SetWidth(w int) {
	s.width = w
}

// SetFlash replaces the right-hand message. The host clears it again
// after a short timer.
func (s *StatusBar) SetFlash(msg string) {
	s.flash = msg
}

func (s *StatusBar) ClearFlash() {
	s.flash = ""
}

func (s *StatusBar) Flash() string {
	return s.flash
}

func (s *StatusBar) View() string {
	pal := s.sel.Palette()
	c := s.sel.Color()

	swatch := lipgloss.NewStyle().
		Background(lipgloss.Color(c.Hex(pal))).
		Render("  ")
	if c.Model == colorsel.ModelMask {
		swatch = maskCellStyle.Render("░░")
	}

	left := fmt.Sprintf("%s %s  %s  %s", swatch, c.Hex(pal), s.sel.IndexLabel(), s.sel.Model())
	if !s.sel.PaletteLocked() {
		left += "  editing"
	}

	right := ""
	if s.flash != "" {
		right = statusFlashStyle.Render(s.flash)
	}

	pad := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if pad < 1 {
		pad = 1
	}
	line := truncate.String(left+strings.Repeat(" ", pad)+right, uint(s.width))
	return statusBarStyle.Width(s.width).Render(line)
}

package overlay

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TextOverlay is a scrollable read-only panel used for the help screen
// and the console log.
type TextOverlay struct {
	Title     string
	Dismissed bool
	OnDismiss func()

	vp     viewport.Model
	width  int
	height int
}

func NewTextOverlay(title, content string) *TextOverlay {
	vp := viewport.New(60, 16)
	vp.SetContent(content)
	return &TextOverlay{
		Title:  title,
		vp:     vp,
		width:  66,
		height: 21,
	}
}

func (t *TextOverlay) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.vp.Width = width - 6
	t.vp.Height = height - 5
	if t.vp.Height < 1 {
		t.vp.Height = 1
	}
}

// SetContent replaces the panel text and keeps the scroll position.
func (t *TextOverlay) SetContent(content string) {
	t.vp.SetContent(content)
}

// GotoBottom scrolls to the end. The console tails its log with this.
func (t *TextOverlay) GotoBottom() {
	t.vp.GotoBottom()
}

// HandleKeyPress processes a key press and reports whether the overlay
// should close. Scrolling keys are forwarded to the viewport.
func (t *TextOverlay) HandleKeyPress(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "esc", "q":
		t.Dismissed = true
		if t.OnDismiss != nil {
			t.OnDismiss()
		}
		return true
	default:
		t.vp, _ = t.vp.Update(msg)
		return false
	}
}

// View renders the panel with a scroll indicator in the footer.
func (t *TextOverlay) View() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2)

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("62")).
		Bold(true)

	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))

	footer := fmt.Sprintf("%3.0f%%  esc to close", t.vp.ScrollPercent()*100)
	content := titleStyle.Render(t.Title) + "\n" + t.vp.View() + "\n" + footerStyle.Render(footer)
	return style.Render(content)
}

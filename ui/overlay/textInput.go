package overlay

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TextInputOverlay is a one-line prompt used when a command needs an
// argument it was invoked without.
type TextInputOverlay struct {
	input     textinput.Model
	Title     string
	Submitted bool
	Canceled  bool

	// OnSubmit receives the entered value. OnCancel fires when the
	// prompt is dismissed without submitting.
	OnSubmit func(value string)
	OnCancel func()

	width int
}

// NewTextInputOverlay creates a prompt with the given title and initial
// value. The title is typically the command's prompt text.
func NewTextInputOverlay(title, initialValue string) *TextInputOverlay {
	ti := textinput.New()
	ti.SetValue(initialValue)
	ti.CursorEnd()
	ti.Focus()
	ti.CharLimit = 0

	return &TextInputOverlay{
		input: ti,
		Title: title,
		width: 40,
	}
}

func (t *TextInputOverlay) SetSize(width int) {
	t.width = width
}

// Init starts the cursor blink.
func (t *TextInputOverlay) Init() tea.Cmd {
	return textinput.Blink
}

// HandleKeyPress processes a key press and reports whether the overlay
// should close.
func (t *TextInputOverlay) HandleKeyPress(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyEsc:
		t.Canceled = true
		if t.OnCancel != nil {
			t.OnCancel()
		}
		return true
	case tea.KeyEnter:
		t.Submitted = true
		if t.OnSubmit != nil {
			t.OnSubmit(t.Value())
		}
		return true
	default:
		t.input, _ = t.input.Update(msg)
		return false
	}
}

// Value returns the current input text.
func (t *TextInputOverlay) Value() string {
	return t.input.Value()
}

// IsSubmitted reports whether the prompt was submitted.
func (t *TextInputOverlay) IsSubmitted() bool {
	return t.Submitted
}

// IsCanceled reports whether the prompt was dismissed.
func (t *TextInputOverlay) IsCanceled() bool {
	return t.Canceled
}

// View renders the prompt.
func (t *TextInputOverlay) View() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2)

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("62")).
		Bold(true).
		MarginBottom(1)

	t.input.Width = t.width - 8

	content := titleStyle.Render(t.Title) + "\n" + t.input.View()
	return style.Render(content)
}

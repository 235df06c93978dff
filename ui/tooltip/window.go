package tooltip

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"spritepad/keys"
)

// DefaultMaxWidth bounds the popup's outer width when the host does not
// configure one.
const DefaultMaxWidth = 40

var windowStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.AdaptiveColor{Light: "240", Dark: "244"}).
	Padding(0, 1)

// Child is one extra content row rendered inside a tip popup, below the
// text: a chord hint, a swatch strip.
type Child interface {
	// PreferredSize measures the child under the given width limit.
	PreferredSize(maxWidth int) Size

	// Render draws the child at the popup's final inner width.
	Render(width int) string
}

// StaticChild is a fixed pre-rendered child, possibly multi-line.
type StaticChild string

func (c StaticChild) PreferredSize(maxWidth int) Size {
	s := string(c)
	return Size{W: lipgloss.Width(s), H: lipgloss.Height(s)}
}

func (c StaticChild) Render(width int) string {
	return string(c)
}

// TipWindow is the popup: word-wrapped text plus optional children inside
// a border. Size is measured from the current content on demand, never
// cached, so content changes take effect on the next placement.
type TipWindow struct {
	text     string
	children []Child
	maxWidth int
	arrow    Align
}

func NewTipWindow(text string) *TipWindow {
	return &TipWindow{text: text, maxWidth: DefaultMaxWidth}
}

func (w *TipWindow) SetText(text string) {
	w.text = text
}

// SetMaxWidth bounds the popup's outer width. Values too small to hold
// the border and padding fall back to the default.
func (w *TipWindow) SetMaxWidth(mw int) {
	if mw <= insetW {
		mw = DefaultMaxWidth
	}
	w.maxWidth = mw
}

// AddChild appends a content row below the text.
func (w *TipWindow) AddChild(c Child) {
	w.children = append(w.children, c)
}

// SetArrowAlign records which side the popup ended up on, for rendering.
func (w *TipWindow) SetArrowAlign(a Align) {
	w.arrow = a
}

func (w *TipWindow) ArrowAlign() Align {
	return w.arrow
}

// Border plus one cell of padding on each side.
const (
	insetW = 4
	insetH = 2
)

// PreferredSize is the fitted content size plus the border insets: width
// is the wider of the wrapped text and the widest child, height is the
// text height plus the sum of the children's heights.
func (w *TipWindow) PreferredSize() Size {
	inner := w.innerSize()
	return Size{W: inner.W + insetW, H: inner.H + insetH}
}

func (w *TipWindow) innerSize() Size {
	avail := w.availWidth()
	wrapped := wordwrap.String(w.text, avail)
	width := lipgloss.Width(wrapped)
	height := lipgloss.Height(wrapped)
	for _, c := range w.children {
		cs := c.PreferredSize(avail)
		if cs.W > width {
			width = cs.W
		}
		height += cs.H
	}
	return Size{W: width, H: height}
}

func (w *TipWindow) availWidth() int {
	avail := w.maxWidth - insetW
	if avail < 1 {
		avail = 1
	}
	return avail
}

// View renders the bordered popup at its preferred size. The style width
// covers content plus padding; the border sits outside it.
func (w *TipWindow) View() string {
	inner := w.innerSize()
	parts := []string{wordwrap.String(w.text, w.availWidth())}
	for _, c := range w.children {
		parts = append(parts, c.Render(inner.W))
	}
	body := lipgloss.JoinVertical(lipgloss.Left, parts...)
	return windowStyle.Width(inner.W + 2).Render(body)
}

// HandleKey reports whether the key should close the popup. Modifier-only
// chatter keeps it open; any real key closes it.
func (w *TipWindow) HandleKey(msg tea.KeyMsg) bool {
	return !keys.IsModifierOnly(msg)
}

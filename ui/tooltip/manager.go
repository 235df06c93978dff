package tooltip

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Handle is an opaque, stable widget identity issued by the host's layout
// registry. The manager only ever holds handles, never widget references.
type Handle int

// Geometry is the lookup capability the host provides: widget bounds by
// handle and the total display size, in cell coordinates. A handle with
// no current bounds simply has no tooltip this frame.
type Geometry interface {
	WidgetBounds(h Handle) (Rect, bool)
	DisplaySize() Size
}

// TipInfo describes one widget's tooltip.
type TipInfo struct {
	Text  string
	Align Align
	Extra []Child
}

// DefaultDelay is how long the pointer must rest on a widget before its
// tip appears.
const DefaultDelay = 300 * time.Millisecond

// TickMsg is delivered when a hover delay elapses. Gen ties the message
// to the hover that armed it; a dismissal or newer hover bumps the
// manager's generation, so stale ticks fall through harmlessly.
type TickMsg struct {
	Gen uint64
}

// State is the manager's lifecycle position.
type State int

const (
	StateIdle State = iota
	StatePending
	StateShown
)

// Manager owns the tooltip session. At most one exists at a time: either
// a timer is pending for the hovered widget or its popup is open. All
// methods run on the event loop; the delay is a cooperative tea.Cmd, not
// a goroutine the manager tracks.
type Manager struct {
	tips     map[Handle]TipInfo
	geom     Geometry
	delay    time.Duration
	maxWidth int
	enabled  bool
	ctx      context.Context

	state  State
	target Handle
	info   TipInfo
	gen    uint64

	window *TipWindow
	pos    Point
}

func NewManager(ctx context.Context, geom Geometry) *Manager {
	return &Manager{
		tips:     make(map[Handle]TipInfo),
		geom:     geom,
		delay:    DefaultDelay,
		maxWidth: DefaultMaxWidth,
		enabled:  true,
		ctx:      ctx,
	}
}

// AddTip registers or replaces the tooltip for h.
func (m *Manager) AddTip(h Handle, info TipInfo) {
	m.tips[h] = info
}

// RemoveTip unregisters h. An in-flight session for h is not cancelled
// here; the manager copied the info at hover time and a vanished widget
// is caught by the bounds lookup when the timer fires.
func (m *Manager) RemoveTip(h Handle) {
	delete(m.tips, h)
}

// SetDelay adjusts the hover delay. Non-positive values restore the
// default.
func (m *Manager) SetDelay(d time.Duration) {
	if d <= 0 {
		d = DefaultDelay
	}
	m.delay = d
}

// SetMaxWidth bounds popup width for subsequent shows.
func (m *Manager) SetMaxWidth(w int) {
	if w <= insetW {
		w = DefaultMaxWidth
	}
	m.maxWidth = w
}

// SetEnabled turns tooltips on or off. Turning them off dismisses any
// active session.
func (m *Manager) SetEnabled(enabled bool) {
	m.enabled = enabled
	if !enabled {
		m.Dismiss()
	}
}

func (m *Manager) Enabled() bool {
	return m.enabled
}

func (m *Manager) State() State {
	return m.state
}

// MouseEnter starts a hover session for h. Any previous session is
// replaced: the last hover-enter wins. The returned command sleeps for
// the delay and delivers a TickMsg; it is nil when h has no tip or
// tooltips are off, in which case only the replacement happens.
func (m *Manager) MouseEnter(h Handle) tea.Cmd {
	m.Dismiss()
	info, ok := m.tips[h]
	if !ok || !m.enabled {
		return nil
	}
	m.state = StatePending
	m.target = h
	m.info = info
	gen := m.gen
	delay := m.delay
	ctx := m.ctx
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(delay):
			return TickMsg{Gen: gen}
		}
	}
}

// Dismiss unconditionally ends the session: the popup closes and any
// pending timer is invalidated. Key-down, mouse-down, and mouse-leave
// all land here, whatever the current state.
func (m *Manager) Dismiss() {
	m.gen++
	m.state = StateIdle
	m.window = nil
}

// KeyDown routes a key press. A pending timer always stops. While the
// popup is open its own handler decides: modifier-only chatter keeps it,
// anything else closes it.
func (m *Manager) KeyDown(msg tea.KeyMsg) {
	switch m.state {
	case StatePending:
		m.Dismiss()
	case StateShown:
		if m.window.HandleKey(msg) {
			m.Dismiss()
		}
	}
}

// Tick handles a fired hover delay. Stale generations are dropped. The
// placement search runs exactly once; when nothing fits the session ends
// with no popup, which is a documented no-op rather than an error.
func (m *Manager) Tick(msg TickMsg) {
	if msg.Gen != m.gen || m.state != StatePending {
		return
	}
	target, ok := m.geom.WidgetBounds(m.target)
	if !ok {
		m.state = StateIdle
		return
	}
	w := NewTipWindow(m.info.Text)
	w.SetMaxWidth(m.maxWidth)
	for _, c := range m.info.Extra {
		w.AddChild(c)
	}
	pos, align, ok := Place(target, m.geom.DisplaySize(), w.PreferredSize(), m.info.Align)
	if !ok {
		m.state = StateIdle
		return
	}
	w.SetArrowAlign(align)
	m.window = w
	m.pos = pos
	m.state = StateShown
}

// Popup returns the open popup's rendered view and origin. ok is false
// unless a popup is currently shown.
func (m *Manager) Popup() (view string, pos Point, ok bool) {
	if m.state != StateShown || m.window == nil {
		return "", Point{}, false
	}
	return m.window.View(), m.pos, true
}

package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"spritepad/cmd"
	"spritepad/keys"
)

var (
	menuTitleStyle     = lipgloss.NewStyle().Padding(0, 1)
	menuOpenTitleStyle = lipgloss.NewStyle().Padding(0, 1).Reverse(true)
	menuBoxStyle       = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.AdaptiveColor{Light: "240", Dark: "244"})
	menuItemStyle     = lipgloss.NewStyle().Padding(0, 1)
	menuHoverStyle    = lipgloss.NewStyle().Padding(0, 1).Reverse(true)
	menuDisabledStyle = lipgloss.NewStyle().Padding(0, 1).Faint(true)
)

// Menu is one top-level menu: a title and the command names it lists, in
// order. An empty name renders as a separator.
type Menu struct {
	Title string
	Items []string
}

// MenuBar renders the top menu row and at most one open dropdown. Item
// enablement, check marks and chord hints are resolved through the
// registry at render time, so the dropdown always reflects current state.
type MenuBar struct {
	reg   *cmd.Registry
	ctx   *cmd.Context
	menus []Menu
	width int

	open  int // open menu ordinal, -1 when closed
	hover int // highlighted row in the open dropdown, -1 when none
}

func NewMenuBar(reg *cmd.Registry, ctx *cmd.Context, menus []Menu) *MenuBar {
	return &MenuBar{
		reg:   reg,
		ctx:   ctx,
		menus: menus,
		width: 80,
		open:  -1,
		hover: -1,
	}
}

func (m *MenuBar) SetWidth(w int) {
	m.width = w
}

func (m *MenuBar) Menus() []Menu {
	return m.menus
}

func (m *MenuBar) IsOpen() bool {
	return m.open >= 0
}

// Open opens menu i with the first real item highlighted.
func (m *MenuBar) Open(i int) {
	if i < 0 || i >= len(m.menus) {
		return
	}
	m.open = i
	m.hover = -1
	m.moveHover(1)
}

func (m *MenuBar) Close() {
	m.open = -1
	m.hover = -1
}

// moveHover steps the dropdown highlight by delta, skipping separators
// and wrapping at the ends.
func (m *MenuBar) moveHover(delta int) {
	items := m.menus[m.open].Items
	if len(items) == 0 {
		return
	}
	h := m.hover
	if h < 0 && delta < 0 {
		h = 0
	}
	for range items {
		h = (h + delta + len(items)) % len(items)
		if items[h] != "" {
			m.hover = h
			return
		}
	}
}

func (m *MenuBar) hoverName() string {
	if m.open < 0 || m.hover < 0 {
		return ""
	}
	items := m.menus[m.open].Items
	if m.hover >= len(items) {
		return ""
	}
	return items[m.hover]
}

// HandleKey processes a key while a menu is open. It returns the name of
// the command to dispatch, if any, and whether the key was consumed.
// Choosing a disabled item keeps the menu open.
func (m *MenuBar) HandleKey(msg tea.KeyMsg) (run string, handled bool) {
	if m.open < 0 {
		return "", false
	}
	switch {
	case key.Matches(msg, keys.GlobalkeyBindings[keys.KeyEsc]):
		m.Close()
	case key.Matches(msg, keys.GlobalkeyBindings[keys.KeyLeft]):
		m.Open((m.open - 1 + len(m.menus)) % len(m.menus))
	case key.Matches(msg, keys.GlobalkeyBindings[keys.KeyRight]):
		m.Open((m.open + 1) % len(m.menus))
	case key.Matches(msg, keys.GlobalkeyBindings[keys.KeyUp]):
		m.moveHover(-1)
	case key.Matches(msg, keys.GlobalkeyBindings[keys.KeyDown]):
		m.moveHover(1)
	case key.Matches(msg, keys.GlobalkeyBindings[keys.KeyEnter]):
		name := m.hoverName()
		if name == "" {
			break
		}
		if !m.reg.IsEnabled(m.ctx, m.reg.FindByName(name), "") {
			break
		}
		m.Close()
		return name, true
	default:
		return "", false
	}
	return "", true
}

// HandleMouse processes mouse input in screen coordinates; the bar owns
// row 0 and the open dropdown sits directly below it. It returns the
// command to dispatch, if any, and whether the event was consumed.
func (m *MenuBar) HandleMouse(x, y int, press bool) (run string, handled bool) {
	if y == 0 {
		i := m.TitleAt(x)
		if i < 0 {
			if press {
				m.Close()
			}
			return "", false
		}
		switch {
		case press && m.open == i:
			m.Close()
		case press:
			m.Open(i)
		case m.open >= 0 && m.open != i:
			// Sliding along the bar with a menu open switches menus.
			m.Open(i)
		}
		return "", true
	}

	if m.open < 0 {
		return "", false
	}
	row, ok := m.dropdownRowAt(x, y)
	if !ok {
		if press {
			m.Close()
		}
		return "", false
	}
	items := m.menus[m.open].Items
	if items[row] == "" {
		return "", true
	}
	m.hover = row
	if !press {
		return "", true
	}
	name := items[row]
	if !m.reg.IsEnabled(m.ctx, m.reg.FindByName(name), "") {
		return "", true
	}
	m.Close()
	return name, true
}

// TitleAt returns the menu ordinal under bar column x, or -1.
func (m *MenuBar) TitleAt(x int) int {
	for i := range m.menus {
		tx, _, tw, _ := m.TitleRect(i)
		if x >= tx && x < tx+tw {
			return i
		}
	}
	return -1
}

// TitleRect returns menu i's title rectangle in screen cells. Hover
// targets register these with the tooltip engine.
func (m *MenuBar) TitleRect(i int) (x, y, w, h int) {
	cx := 0
	for j, menu := range m.menus {
		w := lipgloss.Width(menuTitleStyle.Render(menu.Title))
		if j == i {
			return cx, 0, w, 1
		}
		cx += w
	}
	return 0, 0, 0, 0
}

func (m *MenuBar) dropdownRowAt(x, y int) (int, bool) {
	dx, dw := m.dropdownFrame()
	items := m.menus[m.open].Items
	row := y - 2
	if row < 0 || row >= len(items) {
		return 0, false
	}
	if x < dx || x >= dx+dw {
		return 0, false
	}
	return row, true
}

// dropdownFrame returns the open dropdown's x offset and outer width,
// clamped so the box stays on screen.
func (m *MenuBar) dropdownFrame() (x, w int) {
	w = m.dropdownInnerWidth() + 4
	x, _, _, _ = m.TitleRect(m.open)
	if x+w > m.width {
		x = m.width - w
	}
	if x < 0 {
		x = 0
	}
	return x, w
}

// dropdownInnerWidth sizes rows from names and chord hints only, so the
// box width does not jump as enablement changes.
func (m *MenuBar) dropdownInnerWidth() int {
	w := lipgloss.Width(m.menus[m.open].Title)
	for _, name := range m.menus[m.open].Items {
		if name == "" {
			continue
		}
		need := 2 + lipgloss.Width(name)
		if hint := m.reg.KeyHint(m.reg.FindByName(name)); hint != "" {
			need += 2 + lipgloss.Width(hint)
		}
		if need > w {
			w = need
		}
	}
	return w
}

// View renders the title row padded to the bar width.
func (m *MenuBar) View() string {
	var titles []string
	for i, menu := range m.menus {
		style := menuTitleStyle
		if i == m.open {
			style = menuOpenTitleStyle
		}
		titles = append(titles, style.Render(menu.Title))
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, titles...)
	if w := lipgloss.Width(bar); w < m.width {
		bar += strings.Repeat(" ", m.width-w)
	}
	return bar
}

// DropdownView renders the open dropdown and returns it with the x
// offset the host should composite it at, one row below the bar.
func (m *MenuBar) DropdownView() (view string, x int) {
	if m.open < 0 {
		return "", 0
	}
	innerW := m.dropdownInnerWidth()
	items := m.menus[m.open].Items
	rows := make([]string, 0, len(items))
	for i, name := range items {
		rows = append(rows, m.renderItem(name, i == m.hover, innerW))
	}
	x, _ = m.dropdownFrame()
	return menuBoxStyle.Render(strings.Join(rows, "\n")), x
}

func (m *MenuBar) renderItem(name string, hovered bool, innerW int) string {
	if name == "" {
		return menuItemStyle.Render(strings.Repeat("─", innerW))
	}
	c := m.reg.FindByName(name)
	marker := "  "
	if m.reg.IsChecked(m.ctx, c, "") {
		marker = "✓ "
	}
	hint := m.reg.KeyHint(c)
	pad := innerW - lipgloss.Width(marker+name) - lipgloss.Width(hint)
	if pad < 1 {
		pad = 1
	}
	row := marker + name + strings.Repeat(" ", pad) + hint
	switch {
	case hovered:
		return menuHoverStyle.Render(row)
	case !m.reg.IsEnabled(m.ctx, c, ""):
		return menuDisabledStyle.Render(row)
	default:
		return menuItemStyle.Render(row)
	}
}

package colorsel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"spritepad/keys"
)

// ControlKind distinguishes the selector's interactive regions.
type ControlKind int

const (
	ControlTab ControlKind = iota
	ControlSlider
	ControlLock
)

// ControlRegion is one interactive region in selector-local coordinates.
// The host uses these for mouse routing and as tooltip targets.
type ControlRegion struct {
	Kind  ControlKind
	Index int // tab: Model ordinal; slider: channel index
	X     int
	Y     int
	W     int
	H     int
}

func (r ControlRegion) contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Channel describes one slider of a color model.
type Channel struct {
	Label string
	Max   int
}

var modelChannels = map[Model][]Channel{
	ModelRGB:  {{Label: "R", Max: 255}, {Label: "G", Max: 255}, {Label: "B", Max: 255}},
	ModelHSV:  {{Label: "H", Max: 360}, {Label: "S", Max: 100}, {Label: "V", Max: 100}},
	ModelGray: {{Label: "V", Max: 255}},
}

// tabModels is the tab display order.
var tabModels = []Model{ModelRGB, ModelHSV, ModelGray, ModelMask}

const (
	sliderLabelWidth = 2
	sliderValueWidth = 4
	swatchWidth      = 6
)

var (
	tabStyle       = lipgloss.NewStyle().Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Reverse(true)
	labelStyle     = lipgloss.NewStyle().Bold(true)
	mutedStyle     = lipgloss.NewStyle().Faint(true)
	lockStyle      = lipgloss.NewStyle().Padding(0, 1).Reverse(true)
)

// Selector is the color editing panel: model tabs, channel sliders, the
// palette lock, and the index readout. It also owns the palette entry
// selection the grid renders.
type Selector struct {
	color  Color
	model  Model
	locked bool
	index  int // selected palette entry, -1 when none
	anchor int // selection range anchor, -1 when no range

	pal     Palette
	focus   int // focused slider row
	width   int
	regions []ControlRegion

	// OnChange fires after every color, selection, lock or model change.
	OnChange func()
}

// NewSelector builds a selector over pal. The palette starts locked.
func NewSelector(pal Palette) *Selector {
	s := &Selector{
		color:  NewRGB(0, 0, 0),
		model:  ModelRGB,
		locked: true,
		index:  -1,
		anchor: -1,
		pal:    pal,
		width:  36,
	}
	s.layout()
	return s
}

func (s *Selector) Color() Color        { return s.color }
func (s *Selector) Model() Model        { return s.model }
func (s *Selector) PaletteLocked() bool { return s.locked }
func (s *Selector) Index() int          { return s.index }
func (s *Selector) Palette() Palette    { return s.pal }

func (s *Selector) SetWidth(w int) {
	if w < sliderLabelWidth+sliderValueWidth+8 {
		w = sliderLabelWidth + sliderValueWidth + 8
	}
	s.width = w
	s.layout()
}

// SetPaletteLocked flips the palette lock. The lock tooltip text follows.
func (s *Selector) SetPaletteLocked(locked bool) {
	if s.locked == locked {
		return
	}
	s.locked = locked
	s.changed()
}

// LockTip returns the lock control's tooltip text for the current state.
func (s *Selector) LockTip() string {
	if s.locked {
		return "Press here to edit the palette"
	}
	return "Press here to lock the palette"
}

// IndexLabel renders the readout: "Index=3" when a palette entry is
// selected, "None" otherwise.
func (s *Selector) IndexLabel() string {
	if s.index < 0 {
		return "None"
	}
	return fmt.Sprintf("Index=%d", s.index)
}

// SetColor adopts c and switches the visible tab to match its model.
// Index colors keep an RGB or HSV tab when one is already active.
func (s *Selector) SetColor(c Color) {
	s.color = c
	switch c.Model {
	case ModelIndex:
		if s.model != ModelRGB && s.model != ModelHSV {
			s.model = ModelRGB
		}
		if c.Index >= 0 && c.Index < s.pal.Len() {
			s.index = c.Index
			s.anchor = -1
		}
	case ModelMask:
		s.model = ModelMask
	default:
		s.model = c.Model
	}
	s.layout()
	s.changed()
}

// SetModel switches the visible tab. Switching to Mask selects the mask
// color itself; the other tabs only change how the color is edited.
func (s *Selector) SetModel(m Model) {
	if s.model == m {
		return
	}
	s.model = m
	s.focus = 0
	if m == ModelMask {
		s.color = NewMask()
	}
	s.layout()
	s.changed()
}

// SelectIndex picks a palette entry as the current color.
func (s *Selector) SelectIndex(i int) {
	if i < 0 || i >= s.pal.Len() {
		return
	}
	s.SetColor(NewIndex(i))
}

// ExtendSelection grows the selection range from the anchor to i.
func (s *Selector) ExtendSelection(i int) {
	if i < 0 || i >= s.pal.Len() {
		return
	}
	if s.anchor < 0 {
		if s.index < 0 {
			s.SelectIndex(i)
			return
		}
		s.anchor = s.index
	}
	s.index = i
	s.color = NewIndex(i)
	s.changed()
}

// Selection returns the selected palette range with lo <= hi.
func (s *Selector) Selection() (lo, hi int, ok bool) {
	if s.index < 0 {
		return 0, 0, false
	}
	if s.anchor < 0 {
		return s.index, s.index, true
	}
	lo, hi = s.anchor, s.index
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi, true
}

// Selected reports whether palette entry i is inside the selection range.
func (s *Selector) Selected(i int) bool {
	lo, hi, ok := s.Selection()
	return ok && i >= lo && i <= hi
}

// Channels returns the active model's slider channels.
func (s *Selector) Channels() []Channel {
	return modelChannels[s.model]
}

// channelValues derives the slider positions from the current color.
func (s *Selector) channelValues() []int {
	switch s.model {
	case ModelRGB:
		r, g, b := s.color.RGB(s.pal)
		return []int{int(r), int(g), int(b)}
	case ModelHSV:
		h, sat, v := s.color.HSV(s.pal)
		return []int{int(h + 0.5), int(sat + 0.5), int(v + 0.5)}
	case ModelGray:
		r, g, b := s.color.RGB(s.pal)
		return []int{Luminance(r, g, b)}
	default:
		return nil
	}
}

// setChannel rebuilds the color from the active model's sliders with
// channel i moved to v, then applies the lock policy.
func (s *Selector) setChannel(i, v int) {
	chans := modelChannels[s.model]
	if i < 0 || i >= len(chans) {
		return
	}
	vals := s.channelValues()
	vals[i] = min(max(v, 0), chans[i].Max)
	switch s.model {
	case ModelRGB:
		s.color = NewRGB(uint8(vals[0]), uint8(vals[1]), uint8(vals[2]))
	case ModelHSV:
		s.color = NewHSV(float64(vals[0]), float64(vals[1]), float64(vals[2]))
	case ModelGray:
		s.color = NewGray(uint8(vals[0]))
	default:
		return
	}
	s.applyEdit()
}

// applyEdit routes a slider edit through the palette lock: locked edits
// select the nearest existing entry, unlocked edits overwrite the selected
// entries in place.
func (s *Selector) applyEdit() {
	r, g, b := s.color.RGB(s.pal)
	if s.locked {
		s.index = BestFit(s.pal, r, g, b)
		s.anchor = -1
	} else if lo, hi, ok := s.Selection(); ok {
		for i := lo; i <= hi; i++ {
			s.pal.Set(i, r, g, b)
		}
	}
	s.changed()
}

// HandleKey processes a key while the selector panel has focus and reports
// whether it was consumed.
func (s *Selector) HandleKey(msg tea.KeyMsg) bool {
	chans := modelChannels[s.model]
	switch {
	case key.Matches(msg, keys.GlobalkeyBindings[keys.KeyUp]):
		if len(chans) == 0 {
			return false
		}
		s.focus = (s.focus - 1 + len(chans)) % len(chans)
		return true
	case key.Matches(msg, keys.GlobalkeyBindings[keys.KeyDown]):
		if len(chans) == 0 {
			return false
		}
		s.focus = (s.focus + 1) % len(chans)
		return true
	case key.Matches(msg, keys.GlobalkeyBindings[keys.KeyLeft]):
		s.adjust(-1)
		return true
	case key.Matches(msg, keys.GlobalkeyBindings[keys.KeyRight]):
		s.adjust(1)
		return true
	case key.Matches(msg, keys.GlobalkeyBindings[keys.KeyShiftLeft]):
		s.adjust(-10)
		return true
	case key.Matches(msg, keys.GlobalkeyBindings[keys.KeyShiftRight]):
		s.adjust(10)
		return true
	}
	return false
}

func (s *Selector) adjust(delta int) {
	vals := s.channelValues()
	if s.focus >= len(vals) {
		return
	}
	s.setChannel(s.focus, vals[s.focus]+delta)
}

// HandleMouse processes a press or drag at selector-local coordinates and
// reports whether a control was hit. Tabs and the lock react to presses
// only; sliders also follow drags.
func (s *Selector) HandleMouse(x, y int, press bool) bool {
	for _, reg := range s.regions {
		if !reg.contains(x, y) {
			continue
		}
		switch reg.Kind {
		case ControlTab:
			if press {
				s.SetModel(Model(reg.Index))
			}
		case ControlLock:
			if press {
				s.SetPaletteLocked(!s.locked)
			}
		case ControlSlider:
			s.focus = reg.Index
			barX := reg.X + sliderLabelWidth
			barW := reg.W - sliderLabelWidth - sliderValueWidth
			if barW > 1 {
				chans := modelChannels[s.model]
				v := (x - barX) * chans[reg.Index].Max / (barW - 1)
				s.setChannel(reg.Index, v)
			}
		}
		return true
	}
	return false
}

// Regions returns the interactive regions of the current layout.
func (s *Selector) Regions() []ControlRegion {
	return s.regions
}

// layout recomputes the control regions for the current width and model.
func (s *Selector) layout() {
	s.regions = s.regions[:0]

	// Tab row.
	x := 0
	for _, m := range tabModels {
		w := lipgloss.Width(tabStyle.Render(m.String()))
		s.regions = append(s.regions, ControlRegion{
			Kind: ControlTab, Index: int(m), X: x, Y: 0, W: w, H: 1,
		})
		x += w
	}

	// Slider rows start under the tabs and a blank line.
	for i := range modelChannels[s.model] {
		s.regions = append(s.regions, ControlRegion{
			Kind: ControlSlider, Index: i, X: 0, Y: 2 + i, W: s.width, H: 1,
		})
	}

	lockY := 2 + len(modelChannels[s.model]) + 2
	if s.model == ModelMask {
		lockY = 2 + 1 + 2
	}
	s.regions = append(s.regions, ControlRegion{
		Kind: ControlLock, Index: 0, X: 0, Y: lockY, W: lockWidth(s.locked), H: 1,
	})
}

func lockWidth(locked bool) int {
	if locked {
		return lipgloss.Width(lockStyle.Render("Locked"))
	}
	return lipgloss.Width(lockStyle.Render("Unlocked"))
}

// View renders the panel. Row positions match the regions computed by
// layout.
func (s *Selector) View() string {
	var b strings.Builder

	// Tabs.
	var tabs []string
	for _, m := range tabModels {
		style := tabStyle
		if m == s.model {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(m.String()))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	// Sliders, or the mask note.
	chans := modelChannels[s.model]
	if s.model == ModelMask {
		b.WriteString(mutedStyle.Render("Transparent color selected"))
		b.WriteString("\n")
	} else {
		vals := s.channelValues()
		for i, ch := range chans {
			b.WriteString(s.renderSlider(ch, vals[i], i == s.focus))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	// Swatch and readout.
	swatch := lipgloss.NewStyle().
		Background(lipgloss.Color(s.color.Hex(s.pal))).
		Render(strings.Repeat(" ", swatchWidth))
	if s.color.Model == ModelMask {
		swatch = mutedStyle.Render(strings.Repeat("░", swatchWidth))
	}
	b.WriteString(swatch)
	b.WriteString(" ")
	b.WriteString(s.color.Hex(s.pal))
	b.WriteString("  ")
	b.WriteString(mutedStyle.Render(s.IndexLabel()))
	b.WriteString("\n")

	// Lock button.
	if s.locked {
		b.WriteString(lockStyle.Render("Locked"))
	} else {
		b.WriteString(lockStyle.Render("Unlocked"))
	}

	return b.String()
}

func (s *Selector) renderSlider(ch Channel, v int, focused bool) string {
	barW := s.width - sliderLabelWidth - sliderValueWidth
	if barW < 1 {
		barW = 1
	}
	filled := 0
	if ch.Max > 0 {
		filled = v * barW / ch.Max
	}
	filled = min(max(filled, 0), barW)

	label := ch.Label + " "
	if focused {
		label = labelStyle.Render(label)
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barW-filled)
	return fmt.Sprintf("%s%s%4d", label, bar, v)
}

func (s *Selector) changed() {
	if s.OnChange != nil {
		s.OnChange()
	}
}

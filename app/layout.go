package app

import (
	"spritepad/ui"
	"spritepad/ui/colorsel"
	"spritepad/ui/tooltip"
)

// Fixed screen offsets: the menu bar owns row 0, row 1 stays blank, and
// the working area starts on row 2 with a one-cell left margin.
const (
	contentX = 1
	contentY = 2
	panelGap = 2
)

// Handle ranges. Each hoverable widget keeps a stable handle across
// relayouts so the tooltip side table survives resizes.
const (
	handleCellBase tooltip.Handle = 100 + iota*400
	handleTabBase
	handleSliderBase
	handleLock
)

func cellHandle(i int) tooltip.Handle {
	return handleCellBase + tooltip.Handle(i)
}

// layout places the fixed widgets on screen and resolves between screen
// positions and widget identities: rectangle lookup for the tooltip
// engine, hit-testing for hover synthesis and mouse routing.
type layout struct {
	width, height int

	grid *ui.PaletteGrid
	sel  *colorsel.Selector

	gridPos tooltip.Point
	selPos  tooltip.Point
}

func newLayout(grid *ui.PaletteGrid, sel *colorsel.Selector) *layout {
	l := &layout{grid: grid, sel: sel}
	l.resize(80, 24)
	return l
}

func (l *layout) resize(w, h int) {
	l.width = w
	l.height = h
	l.gridPos = tooltip.Point{X: contentX, Y: contentY}
	l.selPos = tooltip.Point{X: contentX + l.grid.Width() + panelGap, Y: contentY}
}

// DisplaySize implements tooltip.Geometry.
func (l *layout) DisplaySize() tooltip.Size {
	return tooltip.Size{W: l.width, H: l.height}
}

// WidgetBounds implements tooltip.Geometry. A handle whose widget is not
// part of the current layout, such as a slider of an inactive model,
// reports no bounds and its tooltip simply does not show.
func (l *layout) WidgetBounds(h tooltip.Handle) (tooltip.Rect, bool) {
	if h >= handleCellBase && h < handleCellBase+tooltip.Handle(l.sel.Palette().Len()) {
		x, y, w, hh := l.grid.CellRect(int(h - handleCellBase))
		return tooltip.Rect{X: l.gridPos.X + x, Y: l.gridPos.Y + y, W: w, H: hh}, true
	}
	for _, reg := range l.sel.Regions() {
		if l.regionHandle(reg) != h {
			continue
		}
		return tooltip.Rect{
			X: l.selPos.X + reg.X,
			Y: l.selPos.Y + reg.Y,
			W: reg.W,
			H: reg.H,
		}, true
	}
	return tooltip.Rect{}, false
}

// hitTest returns the hoverable widget under a screen position.
func (l *layout) hitTest(x, y int) (tooltip.Handle, bool) {
	if i := l.grid.CellAt(x-l.gridPos.X, y-l.gridPos.Y); i >= 0 {
		return cellHandle(i), true
	}
	lx, ly := x-l.selPos.X, y-l.selPos.Y
	for _, reg := range l.sel.Regions() {
		if lx >= reg.X && lx < reg.X+reg.W && ly >= reg.Y && ly < reg.Y+reg.H {
			return l.regionHandle(reg), true
		}
	}
	return 0, false
}

func (l *layout) regionHandle(reg colorsel.ControlRegion) tooltip.Handle {
	switch reg.Kind {
	case colorsel.ControlTab:
		return handleTabBase + tooltip.Handle(reg.Index)
	case colorsel.ControlSlider:
		return handleSliderBase + tooltip.Handle(reg.Index)
	default:
		return handleLock
	}
}

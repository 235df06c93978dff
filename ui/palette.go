package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"spritepad/keys"
	"spritepad/ui/colorsel"
)

// GridColumns is the palette grid width in cells. Sixteen columns lays a
// 256-entry palette out as the conventional 16x16 block.
const GridColumns = 16

const cellWidth = 2

var maskCellStyle = lipgloss.NewStyle().Faint(true)

// PaletteGrid renders the palette as a swatch grid and handles grid-local
// input. Selection state lives in the selector so the sliders, status bar
// and ramp commands all see the same range.
type PaletteGrid struct {
	sel *colorsel.Selector
}

func NewPaletteGrid(sel *colorsel.Selector) *PaletteGrid {
	return &PaletteGrid{sel: sel}
}

func (g *PaletteGrid) pal() colorsel.Palette { return g.sel.Palette() }

// Rows returns the number of grid rows for the current palette.
func (g *PaletteGrid) Rows() int {
	return (g.pal().Len() + GridColumns - 1) / GridColumns
}

func (g *PaletteGrid) Width() int  { return GridColumns * cellWidth }
func (g *PaletteGrid) Height() int { return g.Rows() }

// CellRect returns cell i's rectangle in grid-local cells.
func (g *PaletteGrid) CellRect(i int) (x, y, w, h int) {
	return (i % GridColumns) * cellWidth, i / GridColumns, cellWidth, 1
}

// CellAt returns the palette index under a grid-local position, or -1.
func (g *PaletteGrid) CellAt(x, y int) int {
	if x < 0 || y < 0 || x >= g.Width() {
		return -1
	}
	i := y*GridColumns + x/cellWidth
	if i >= g.pal().Len() {
		return -1
	}
	return i
}

// CellTip returns cell i's hover text, e.g. "Index 17 #33ccff".
func (g *PaletteGrid) CellTip(i int) string {
	if i == 0 {
		return "Index 0 mask"
	}
	cr, cg, cb := g.pal().Get(i)
	return fmt.Sprintf("Index %d #%02x%02x%02x", i, cr, cg, cb)
}

// HandleKey processes a key while the grid has focus and reports whether
// it was consumed. With no selection, the first navigation key lands on
// entry 0.
func (g *PaletteGrid) HandleKey(msg tea.KeyMsg) bool {
	last := g.pal().Len() - 1
	if last < 0 {
		return false
	}
	idx := g.sel.Index()
	if idx < 0 {
		if gridNavKey(msg) {
			g.sel.SelectIndex(0)
			return true
		}
		return false
	}
	switch {
	case key.Matches(msg, keys.GlobalkeyBindings[keys.KeyLeft]):
		g.sel.SelectIndex(max(idx-1, 0))
	case key.Matches(msg, keys.GlobalkeyBindings[keys.KeyRight]):
		g.sel.SelectIndex(min(idx+1, last))
	case key.Matches(msg, keys.GlobalkeyBindings[keys.KeyUp]):
		if idx-GridColumns >= 0 {
			g.sel.SelectIndex(idx - GridColumns)
		}
	case key.Matches(msg, keys.GlobalkeyBindings[keys.KeyDown]):
		if idx+GridColumns <= last {
			g.sel.SelectIndex(idx + GridColumns)
		}
	case key.Matches(msg, keys.GlobalkeyBindings[keys.KeyShiftLeft]):
		g.sel.ExtendSelection(max(idx-1, 0))
	case key.Matches(msg, keys.GlobalkeyBindings[keys.KeyShiftRight]):
		g.sel.ExtendSelection(min(idx+1, last))
	case key.Matches(msg, keys.GlobalkeyBindings[keys.KeyShiftUp]):
		if idx-GridColumns >= 0 {
			g.sel.ExtendSelection(idx - GridColumns)
		}
	case key.Matches(msg, keys.GlobalkeyBindings[keys.KeyShiftDown]):
		if idx+GridColumns <= last {
			g.sel.ExtendSelection(idx + GridColumns)
		}
	case key.Matches(msg, keys.GlobalkeyBindings[keys.KeyHome]):
		g.sel.SelectIndex(0)
	case key.Matches(msg, keys.GlobalkeyBindings[keys.KeyEnd]):
		g.sel.SelectIndex(last)
	default:
		return false
	}
	return true
}

func gridNavKey(msg tea.KeyMsg) bool {
	for _, name := range []keys.KeyName{
		keys.KeyUp, keys.KeyDown, keys.KeyLeft, keys.KeyRight,
		keys.KeyShiftUp, keys.KeyShiftDown, keys.KeyShiftLeft, keys.KeyShiftRight,
		keys.KeyHome, keys.KeyEnd,
	} {
		if key.Matches(msg, keys.GlobalkeyBindings[name]) {
			return true
		}
	}
	return false
}

// HandleMouse processes a press or drag at grid-local coordinates and
// reports whether it landed on a cell. Drags and shift-presses extend the
// selection instead of replacing it.
func (g *PaletteGrid) HandleMouse(x, y int, press, shift bool) bool {
	i := g.CellAt(x, y)
	if i < 0 {
		return false
	}
	if press && !shift {
		g.sel.SelectIndex(i)
	} else {
		g.sel.ExtendSelection(i)
	}
	return true
}

// View renders the grid. Selected cells carry bracket markers in a
// foreground chosen to stay readable on the entry color.
func (g *PaletteGrid) View() string {
	pal := g.pal()
	rows := g.Rows()
	var b strings.Builder
	for row := 0; row < rows; row++ {
		if row > 0 {
			b.WriteString("\n")
		}
		for col := 0; col < GridColumns; col++ {
			i := row*GridColumns + col
			if i >= pal.Len() {
				b.WriteString(strings.Repeat(" ", cellWidth))
				continue
			}
			b.WriteString(g.renderCell(i))
		}
	}
	return b.String()
}

func (g *PaletteGrid) renderCell(i int) string {
	if i == 0 {
		cell := "░░"
		if g.sel.Selected(0) {
			cell = "[]"
		}
		return maskCellStyle.Render(cell)
	}
	cr, cg, cb := g.pal().Get(i)
	style := lipgloss.NewStyle().
		Background(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", cr, cg, cb)))
	if !g.sel.Selected(i) {
		return style.Render("  ")
	}
	fg := "#ffffff"
	if colorsel.Luminance(cr, cg, cb) >= 128 {
		fg = "#000000"
	}
	return style.Foreground(lipgloss.Color(fg)).Render("[]")
}

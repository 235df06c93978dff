package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"spritepad/ui/colorsel"
)

func newStatusFixture(t *testing.T) (*colorsel.Selector, *StatusBar) {
	t.Helper()
	sel := colorsel.NewSelector(colorsel.DefaultPalette())
	bar := NewStatusBar(sel)
	bar.SetWidth(60)
	return sel, bar
}

func TestStatusBarShowsColorAndModel(t *testing.T) {
	_, bar := newStatusFixture(t)

	view := bar.View()
	assert.Contains(t, view, "#000000")
	assert.Contains(t, view, "None")
	assert.Contains(t, view, "RGB")
}

func TestStatusBarShowsSelectedIndex(t *testing.T) {
	sel, bar := newStatusFixture(t)
	sel.SelectIndex(5)

	assert.Contains(t, bar.View(), "Index=5")
}

func TestStatusBarFlashLifecycle(t *testing.T) {
	_, bar := newStatusFixture(t)

	bar.SetFlash("Copied #112233")
	assert.Contains(t, bar.View(), "Copied #112233")
	assert.Equal(t, "Copied #112233", bar.Flash())

	bar.ClearFlash()
	assert.NotContains(t, bar.View(), "Copied")
	assert.Empty(t, bar.Flash())
}

func TestStatusBarShowsEditingWhenUnlocked(t *testing.T) {
	sel, bar := newStatusFixture(t)

	assert.NotContains(t, bar.View(), "editing")
	sel.SetPaletteLocked(false)
	assert.Contains(t, bar.View(), "editing")
}

func TestStatusBarMaskSwatch(t *testing.T) {
	sel, bar := newStatusFixture(t)
	sel.SetModel(colorsel.ModelMask)

	assert.Contains(t, bar.View(), "░░")
}

func TestStatusBarWidth(t *testing.T) {
	_, bar := newStatusFixture(t)
	assert.Equal(t, 60, lipgloss.Width(bar.View()))
}

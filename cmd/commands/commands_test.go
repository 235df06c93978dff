package commands

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"spritepad/cmd"
	"spritepad/console"
	"spritepad/ui/colorsel"
)

type stubSurface struct {
	flashes  []string
	prompts  []string
	tips     bool
	consoles int
	helps    int
	palettes int
}

func (s *stubSurface) Flash(format string, args ...any) {
	s.flashes = append(s.flashes, fmt.Sprintf(format, args...))
}
func (s *stubSurface) ShowConsole()        { s.consoles++ }
func (s *stubSurface) ShowHelp()           { s.helps++ }
func (s *stubSurface) ShowCommandPalette() { s.palettes++ }
func (s *stubSurface) PromptArg(title, command string) {
	s.prompts = append(s.prompts, title+"/"+command)
}
func (s *stubSurface) SetTooltipsEnabled(enabled bool) { s.tips = enabled }
func (s *stubSurface) TooltipsEnabled() bool           { return s.tips }

type fixture struct {
	reg     *cmd.Registry
	ctx     *cmd.Context
	cons    *console.Console
	sel     *colorsel.Selector
	pal     *colorsel.TablePalette
	surface *stubSurface
}

func newFixture() *fixture {
	pal := colorsel.NewTablePalette(8)
	pal.Set(1, 255, 0, 0)
	pal.Set(2, 0, 255, 0)
	pal.Set(3, 0, 0, 255)
	pal.Set(4, 255, 255, 255)
	sel := colorsel.NewSelector(pal)
	cons := console.New()
	surface := &stubSurface{tips: true}
	reg := cmd.NewRegistry()
	RegisterAll(reg)
	return &fixture{
		reg:     reg,
		ctx:     cmd.NewContext(cons, sel, pal, surface),
		cons:    cons,
		sel:     sel,
		pal:     pal,
		surface: surface,
	}
}

func (f *fixture) run(t *testing.T, name, arg string) tea.Cmd {
	t.Helper()
	c := f.reg.FindByName(name)
	if c == nil {
		t.Fatalf("command %s not registered", name)
	}
	return f.reg.Execute(f.ctx, c, arg)
}

func (f *fixture) enabled(name string) bool {
	return f.reg.IsEnabled(f.ctx, f.reg.FindByName(name), "")
}

func (f *fixture) checked(name string) bool {
	return f.reg.IsChecked(f.ctx, f.reg.FindByName(name), "")
}

func lastLine(c *console.Console) string {
	lines := c.Lines()
	if len(lines) == 0 {
		return ""
	}
	return lines[len(lines)-1]
}

func TestDefaultChordsNameRealCommands(t *testing.T) {
	f := newFixture()
	for name := range defaultChords {
		assert.NotNil(t, f.reg.FindByName(name), "chord table names %s", name)
	}
}

func TestRegisterAllBindsDefaults(t *testing.T) {
	f := newFixture()

	testCases := []struct {
		msg  tea.KeyMsg
		want string
	}{
		{tea.KeyMsg{Type: tea.KeyCtrlQ}, "QuitApp"},
		{tea.KeyMsg{Type: tea.KeyF2}, "RgbModel"},
		{tea.KeyMsg{Type: tea.KeyF1}, "ShowHelp"},
		{tea.KeyMsg{Type: tea.KeyCtrlP}, "CommandPalette"},
	}
	for _, tc := range testCases {
		c := f.reg.FindByKey(tc.msg)
		if assert.NotNil(t, c, "key for %s", tc.want) {
			assert.Equal(t, tc.want, c.Name())
		}
	}

	// SortPalette ships unbound, reachable through menus only.
	assert.Nil(t, f.reg.Chords("SortPalette"))
}

func TestRegistrationOrderFollowsMenus(t *testing.T) {
	f := newFixture()

	var names []string
	for _, c := range f.reg.Commands() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{
		"NewPalette", "QuitApp",
		"CopyColor", "PasteColor", "SetColor", "SwatchRamp",
		"RgbModel", "HsvModel", "GrayModel", "MaskModel",
		"ToggleTips", "ShowConsole", "CommandPalette",
		"LockPalette", "SortPalette",
		"ReloadKeys", "ShowHelp",
	}, names)

	// Registration order doubles as the dispatch tie-break order, so the
	// categories must come out grouped in menu order.
	last := -1
	for _, c := range f.reg.Commands() {
		p := cmd.GetCategoryPriority(c.Category())
		assert.GreaterOrEqual(t, p, last, "%s out of menu order", c.Name())
		last = p
	}

	assert.Equal(t, cmd.CategoryEdit, f.reg.FindByName("SwatchRamp").Category())
}

func TestEveryCommandDescribesItself(t *testing.T) {
	f := newFixture()
	for _, c := range f.reg.Commands() {
		assert.NotEmpty(t, c.Name())
		assert.NotEmpty(t, c.Description(), "%s has no description", c.Name())
		assert.NotEmpty(t, string(c.Category()), "%s has no category", c.Name())
	}
}

func TestQuitDefersWork(t *testing.T) {
	f := newFixture()
	assert.NotNil(t, f.run(t, "QuitApp", ""))
}

func TestSetColorWithArgument(t *testing.T) {
	f := newFixture()

	f.run(t, "SetColor", "rgb{10,20,30}")

	assert.Equal(t, "rgb{10,20,30}", f.sel.Color().String())
	assert.Contains(t, lastLine(f.cons), "color set to rgb{10,20,30}")
}

func TestSetColorWithoutArgumentPrompts(t *testing.T) {
	f := newFixture()

	f.run(t, "SetColor", "")

	assert.Equal(t, []string{"Set color/SetColor"}, f.surface.prompts)
	assert.Equal(t, "rgb{0,0,0}", f.sel.Color().String())
}

func TestSetColorBadArgumentReported(t *testing.T) {
	f := newFixture()

	f.run(t, "SetColor", "rgb{999}")

	assert.Contains(t, lastLine(f.cons), "SetColor:")
	assert.Equal(t, "rgb{0,0,0}", f.sel.Color().String())
}

func TestModelCommandsTrackChecked(t *testing.T) {
	f := newFixture()

	assert.True(t, f.checked("RgbModel"))
	assert.False(t, f.checked("HsvModel"))

	f.run(t, "HsvModel", "")

	assert.Equal(t, colorsel.ModelHSV, f.sel.Model())
	assert.True(t, f.checked("HsvModel"))
	assert.False(t, f.checked("RgbModel"))
}

func TestMaskModelSelectsMaskColor(t *testing.T) {
	f := newFixture()

	f.run(t, "MaskModel", "")

	assert.Equal(t, colorsel.ModelMask, f.sel.Model())
	assert.Equal(t, "mask", f.sel.Color().String())
}

func TestToggleTips(t *testing.T) {
	f := newFixture()
	assert.True(t, f.checked("ToggleTips"))

	f.run(t, "ToggleTips", "")
	assert.False(t, f.surface.tips)
	assert.False(t, f.checked("ToggleTips"))
	assert.Equal(t, []string{"tooltips off"}, f.surface.flashes)

	f.run(t, "ToggleTips", "")
	assert.True(t, f.surface.tips)
	assert.Equal(t, "tooltips on", f.surface.flashes[1])
}

func TestLockPaletteToggle(t *testing.T) {
	f := newFixture()
	assert.True(t, f.checked("LockPalette"))

	f.run(t, "LockPalette", "")

	assert.False(t, f.sel.PaletteLocked())
	assert.False(t, f.checked("LockPalette"))
	assert.Contains(t, lastLine(f.cons), "palette unlocked")
}

func TestNewPaletteRequiresUnlockedPalette(t *testing.T) {
	f := newFixture()
	assert.False(t, f.enabled("NewPalette"))

	f.sel.SetPaletteLocked(false)
	assert.True(t, f.enabled("NewPalette"))

	f.run(t, "NewPalette", "")

	r, g, b := f.pal.Get(6)
	assert.Equal(t, [3]uint8{0, 0, 255}, [3]uint8{r, g, b})
	assert.Contains(t, lastLine(f.cons), "palette reset to the default preset")
}

func TestNewPaletteGrayPreset(t *testing.T) {
	f := newFixture()
	f.sel.SetPaletteLocked(false)

	f.run(t, "NewPalette", "gray")

	r, g, b := f.pal.Get(7)
	assert.Equal(t, [3]uint8{7, 7, 7}, [3]uint8{r, g, b})
}

func TestNewPaletteUnknownPresetReported(t *testing.T) {
	f := newFixture()
	f.sel.SetPaletteLocked(false)

	f.run(t, "NewPalette", "nope")

	assert.Contains(t, lastLine(f.cons), "NewPalette:")
	r, g, b := f.pal.Get(1)
	assert.Equal(t, [3]uint8{255, 0, 0}, [3]uint8{r, g, b})
}

func TestSwatchRampGating(t *testing.T) {
	f := newFixture()
	assert.False(t, f.enabled("SwatchRamp"), "locked palette")

	f.sel.SetPaletteLocked(false)
	assert.False(t, f.enabled("SwatchRamp"), "no selection")

	f.sel.SelectIndex(1)
	assert.False(t, f.enabled("SwatchRamp"), "single entry")

	f.sel.ExtendSelection(4)
	assert.True(t, f.enabled("SwatchRamp"))
}

func TestSwatchRampBlendsInteriorEntries(t *testing.T) {
	f := newFixture()
	f.sel.SetPaletteLocked(false)
	f.sel.SelectIndex(1) // red
	f.sel.ExtendSelection(4)

	f.run(t, "SwatchRamp", "")

	r, g, b := f.pal.Get(2)
	assert.Equal(t, [3]uint8{255, 85, 85}, [3]uint8{r, g, b})
	r, g, b = f.pal.Get(3)
	assert.Equal(t, [3]uint8{255, 170, 170}, [3]uint8{r, g, b})

	// Endpoints stay put.
	r, g, b = f.pal.Get(1)
	assert.Equal(t, [3]uint8{255, 0, 0}, [3]uint8{r, g, b})
	r, g, b = f.pal.Get(4)
	assert.Equal(t, [3]uint8{255, 255, 255}, [3]uint8{r, g, b})

	assert.Contains(t, lastLine(f.cons), "ramp across entries 1..4")
}

func TestSortPaletteOrdersByLuminance(t *testing.T) {
	f := newFixture()
	f.sel.SetPaletteLocked(false)
	f.pal.Set(0, 9, 9, 9) // sentinel for the mask slot

	f.run(t, "SortPalette", "")

	want := [][3]uint8{
		{9, 9, 9}, // mask entry untouched
		{0, 0, 0},
		{0, 0, 0},
		{0, 0, 0},
		{0, 0, 255},
		{255, 0, 0},
		{0, 255, 0},
		{255, 255, 255},
	}
	for i, w := range want {
		r, g, b := f.pal.Get(i)
		assert.Equal(t, w, [3]uint8{r, g, b}, "entry %d", i)
	}
	assert.Contains(t, lastLine(f.cons), "sorted 7 palette entries")
}

func TestSortPaletteDisabledWhileLocked(t *testing.T) {
	f := newFixture()
	assert.False(t, f.enabled("SortPalette"))
}

func TestSurfaceCommands(t *testing.T) {
	f := newFixture()

	f.run(t, "ShowConsole", "")
	f.run(t, "ShowHelp", "")
	f.run(t, "CommandPalette", "")

	assert.Equal(t, 1, f.surface.consoles)
	assert.Equal(t, 1, f.surface.helps)
	assert.Equal(t, 1, f.surface.palettes)
}

func TestReloadKeys(t *testing.T) {
	f := newFixture()

	f.run(t, "ReloadKeys", "")
	assert.Contains(t, lastLine(f.cons), "key reload not available")

	reloads := 0
	f.ctx.ReloadKeys = func() error {
		reloads++
		return nil
	}
	f.run(t, "ReloadKeys", "")

	assert.Equal(t, 1, reloads)
	assert.Contains(t, lastLine(f.cons), "key bindings reloaded")
}

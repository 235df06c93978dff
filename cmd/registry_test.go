package cmd

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

// recordingSink counts span activity for dispatch tests.
type recordingSink struct {
	opens  int
	closes int
	lines  []string
}

func (s *recordingSink) Open()  { s.opens++ }
func (s *recordingSink) Close() { s.closes++ }
func (s *recordingSink) Printf(format string, args ...any) {
	s.lines = append(s.lines, fmt.Sprintf(format, args...))
}

// testCommand is a controllable command for registry tests.
type testCommand struct {
	Base
	enabled  bool
	checked  bool
	err      error
	deferCmd tea.Cmd
	runs     int
	lastArg  string
}

func newTestCommand(name string) *testCommand {
	return &testCommand{Base: NewBase(name, "test command "+name, CategorySystem), enabled: true}
}

func (c *testCommand) Run(ctx *Context, arg string) error {
	c.runs++
	c.lastArg = arg
	if c.deferCmd != nil {
		ctx.Defer(c.deferCmd)
	}
	return c.err
}

func (c *testCommand) Enabled(*Context, string) bool { return c.enabled }
func (c *testCommand) Checked(*Context, string) bool { return c.checked }

func newTestContext() (*Context, *recordingSink) {
	sink := &recordingSink{}
	return NewContext(sink, nil, nil, nil), sink
}

func TestFindByName(t *testing.T) {
	r := NewRegistry()
	a := newTestCommand("Alpha")
	b := newTestCommand("Beta")
	r.Register(a)
	r.Register(b)

	assert.Equal(t, Command(a), r.FindByName("Alpha"))
	assert.Equal(t, Command(b), r.FindByName("Beta"))
	assert.Nil(t, r.FindByName("Gamma"))
	assert.Nil(t, r.FindByName(""))
}

func TestFindByKey(t *testing.T) {
	r := NewRegistry()
	a := newTestCommand("Alpha")
	r.Register(a).BindKey("<Ctrl+Z>")
	r.Register(newTestCommand("Unbound"))

	assert.Equal(t, Command(a), r.FindByKey(tea.KeyMsg{Type: tea.KeyCtrlZ}))
	assert.Nil(t, r.FindByKey(tea.KeyMsg{Type: tea.KeyCtrlX}))
	assert.Nil(t, r.FindByKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("z")}))
}

func TestFindByKeyFirstRegisteredWins(t *testing.T) {
	r := NewRegistry()
	first := newTestCommand("First")
	second := newTestCommand("Second")
	r.Register(first).BindKey("<Ctrl+Z>")
	r.Register(second).BindKey("<Ctrl+Z>")

	assert.Equal(t, Command(first), r.FindByKey(tea.KeyMsg{Type: tea.KeyCtrlZ}))
}

func TestFindByKeyMatchesEveryBoundChord(t *testing.T) {
	r := NewRegistry()
	a := newTestCommand("Alpha")
	r.Register(a).BindKey("<Ctrl+S> <F2>")

	assert.Equal(t, Command(a), r.FindByKey(tea.KeyMsg{Type: tea.KeyCtrlS}))
	assert.Equal(t, Command(a), r.FindByKey(tea.KeyMsg{Type: tea.KeyF2}))
}

func TestIsEnabled(t *testing.T) {
	r := NewRegistry()
	ctx, _ := newTestContext()
	c := newTestCommand("Alpha")
	r.Register(c)

	assert.True(t, r.IsEnabled(ctx, c, ""))
	c.enabled = false
	assert.False(t, r.IsEnabled(ctx, c, ""))

	// A missing command is not a veto.
	assert.True(t, r.IsEnabled(ctx, nil, ""))
}

func TestIsChecked(t *testing.T) {
	r := NewRegistry()
	ctx, _ := newTestContext()
	c := newTestCommand("Alpha")
	r.Register(c)

	assert.False(t, r.IsChecked(ctx, c, ""))
	c.checked = true
	assert.True(t, r.IsChecked(ctx, c, ""))
	assert.False(t, r.IsChecked(ctx, nil, ""))
}

func TestExecuteBracketsConsole(t *testing.T) {
	r := NewRegistry()
	ctx, sink := newTestContext()
	c := newTestCommand("Alpha")
	r.Register(c)

	r.Execute(ctx, c, "arg")

	assert.Equal(t, 1, c.runs)
	assert.Equal(t, "arg", c.lastArg)
	assert.Equal(t, 1, sink.opens)
	assert.Equal(t, 1, sink.closes)
}

func TestExecuteNilCommandStillCyclesConsole(t *testing.T) {
	r := NewRegistry()
	ctx, sink := newTestContext()

	cmd := r.Execute(ctx, nil, "")

	assert.Nil(t, cmd)
	assert.Equal(t, 1, sink.opens)
	assert.Equal(t, 1, sink.closes)
}

func TestExecuteSkipsDisabledCommand(t *testing.T) {
	r := NewRegistry()
	ctx, sink := newTestContext()
	c := newTestCommand("Alpha")
	c.enabled = false
	r.Register(c)

	r.Execute(ctx, c, "")

	assert.Equal(t, 0, c.runs)
	assert.Equal(t, 1, sink.opens)
	assert.Equal(t, 1, sink.closes)
}

func TestExecuteReportsErrorsToConsole(t *testing.T) {
	r := NewRegistry()
	ctx, sink := newTestContext()
	c := newTestCommand("Alpha")
	c.err = errors.New("boom")
	r.Register(c)

	cmd := r.Execute(ctx, c, "")

	assert.Nil(t, cmd)
	assert.Equal(t, 1, sink.closes)
	if assert.Len(t, sink.lines, 1) {
		assert.True(t, strings.Contains(sink.lines[0], "Alpha"))
		assert.True(t, strings.Contains(sink.lines[0], "boom"))
	}
}

func TestExecuteReturnsDeferredWork(t *testing.T) {
	r := NewRegistry()
	ctx, _ := newTestContext()
	c := newTestCommand("Alpha")
	c.deferCmd = tea.Quit
	r.Register(c)

	cmd := r.Execute(ctx, c, "")

	assert.NotNil(t, cmd)
}

func TestBindKeyUnknownCommand(t *testing.T) {
	r := NewRegistry()

	err := r.BindKey(newTestCommand("Ghost"), "<Ctrl+Z>")
	assert.Error(t, err)

	err = r.BindKey(nil, "<Ctrl+Z>")
	assert.Error(t, err)
}

func TestBindKeyBadSpecLeavesCommandUnbound(t *testing.T) {
	r := NewRegistry()
	c := newTestCommand("Alpha")
	r.Register(c)

	err := r.BindKey(c, "Ctrl+Z")

	assert.Error(t, err)
	assert.Nil(t, r.FindByKey(tea.KeyMsg{Type: tea.KeyCtrlZ}))
	assert.Equal(t, "", r.KeyHint(c))
}

func TestBindKeyAppends(t *testing.T) {
	r := NewRegistry()
	c := newTestCommand("Alpha")
	r.Register(c)

	assert.NoError(t, r.BindKey(c, "<Ctrl+Z>"))
	assert.NoError(t, r.BindKey(c, "<F6>"))

	assert.Len(t, r.Chords("Alpha"), 2)
	// The hint sticks with the first bound chord.
	assert.Equal(t, "Ctrl+Z", r.KeyHint(c))
	assert.Equal(t, Command(c), r.FindByKey(tea.KeyMsg{Type: tea.KeyF6}))
}

func TestResetAllKeys(t *testing.T) {
	r := NewRegistry()
	a := newTestCommand("Alpha")
	b := newTestCommand("Beta")
	r.Register(a).BindKey("<Ctrl+Z>")
	r.Register(b).BindKey("<F2>")

	r.ResetAllKeys()

	assert.Nil(t, r.FindByKey(tea.KeyMsg{Type: tea.KeyCtrlZ}))
	assert.Nil(t, r.FindByKey(tea.KeyMsg{Type: tea.KeyF2}))
	assert.Equal(t, "", r.KeyHint(a))
	assert.Nil(t, r.Chords("Beta"))

	// Resetting an already clear table changes nothing.
	r.ResetAllKeys()
	assert.Nil(t, r.FindByKey(tea.KeyMsg{Type: tea.KeyCtrlZ}))

	// Rebinding after a reset works.
	assert.NoError(t, r.BindKey(a, "<Ctrl+Y>"))
	assert.Equal(t, Command(a), r.FindByKey(tea.KeyMsg{Type: tea.KeyCtrlY}))
}

func TestCommandsKeepDeclarationOrder(t *testing.T) {
	r := NewRegistry()
	names := []string{"One", "Two", "Three", "Four"}
	for _, n := range names {
		r.Register(newTestCommand(n))
	}

	got := make([]string, 0, len(names))
	for _, c := range r.Commands() {
		got = append(got, c.Name())
	}
	assert.Equal(t, names, got)
}

func TestRegistrationPanicsOnBadDefaultChord(t *testing.T) {
	r := NewRegistry()

	assert.Panics(t, func() {
		r.Register(newTestCommand("Alpha")).BindKey("not a chord")
	})
}

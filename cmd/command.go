package cmd

import (
	tea "github.com/charmbracelet/bubbletea"

	"spritepad/ui/colorsel"
)

// Command is one user-invokable action. Commands answer three questions at
// dispatch time: whether they may run, whether they render checked in menus,
// and what running them does. Concrete commands embed Base and override
// what they need.
type Command interface {
	Name() string
	Description() string
	Category() Category

	// Run performs the action. Errors are reported to the console by the
	// dispatcher; they never abort the event loop.
	Run(ctx *Context, arg string) error

	// Enabled reports whether the command may run right now. Menus gray
	// out disabled entries and the dispatcher skips them.
	Enabled(ctx *Context, arg string) bool

	// Checked reports whether menus render the entry with a check mark.
	Checked(ctx *Context, arg string) bool
}

// Base provides the default command behavior: running does nothing, the
// command is always enabled and never checked.
type Base struct {
	name        string
	description string
	category    Category
}

func NewBase(name, description string, category Category) Base {
	return Base{name: name, description: description, category: category}
}

func (b Base) Name() string                  { return b.name }
func (b Base) Description() string           { return b.description }
func (b Base) Category() Category            { return b.category }
func (b Base) Run(*Context, string) error    { return nil }
func (b Base) Enabled(*Context, string) bool { return true }
func (b Base) Checked(*Context, string) bool { return false }

// Sink is the console collaborator bracketing every dispatch. Spans nest
// and may produce no output at all.
type Sink interface {
	Open()
	Close()
	Printf(format string, args ...any)
}

// Surface is what commands may ask of the host UI.
type Surface interface {
	// Flash shows a transient message in the status bar.
	Flash(format string, args ...any)

	ShowConsole()
	ShowHelp()
	ShowCommandPalette()

	// PromptArg opens a one-line input overlay; on submit the named
	// command is dispatched again with the entered text as its argument.
	PromptArg(title, command string)

	SetTooltipsEnabled(enabled bool)
	TooltipsEnabled() bool
}

// Context is handed to every command invocation. It carries the
// collaborators commands act on and collects event-loop work they queue
// via Defer.
type Context struct {
	Console  Sink
	Selector *colorsel.Selector
	Palette  colorsel.Palette
	UI       Surface

	// ReloadKeys re-applies key-binding configuration. Wired by the host;
	// nil when key reloading is unavailable.
	ReloadKeys func() error

	pending []tea.Cmd
}

func NewContext(sink Sink, sel *colorsel.Selector, pal colorsel.Palette, ui Surface) *Context {
	return &Context{Console: sink, Selector: sel, Palette: pal, UI: ui}
}

// Defer queues a tea.Cmd to run after the current dispatch returns.
func (c *Context) Defer(cmd tea.Cmd) {
	if cmd != nil {
		c.pending = append(c.pending, cmd)
	}
}

// begin resets the deferred-work queue for a fresh dispatch.
func (c *Context) begin() {
	c.pending = nil
}

// finish drains the deferred-work queue into a single batch.
func (c *Context) finish() tea.Cmd {
	switch len(c.pending) {
	case 0:
		return nil
	case 1:
		return c.pending[0]
	default:
		return tea.Batch(c.pending...)
	}
}

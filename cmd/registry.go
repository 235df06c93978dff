package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"spritepad/keys"
	"spritepad/log"
)

// entry pairs a command with its lazily allocated accelerator.
type entry struct {
	cmd   Command
	accel *keys.Accel
}

// Registry owns the application's fixed command table. Commands register
// once at startup, in a significant order: lookups scan the table front to
// back, so the first registered match wins when two commands share a chord.
type Registry struct {
	entries []entry
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends cmd to the table and returns a handle for fluent
// chord binding.
func (r *Registry) Register(cmd Command) *Registration {
	r.entries = append(r.entries, entry{cmd: cmd})
	return &Registration{registry: r, cmd: cmd}
}

// Registration provides a fluent interface for binding default chords at
// registration time.
type Registration struct {
	registry *Registry
	cmd      Command
}

// BindKey binds a chord spec to the command. Registration-time specs come
// from the built-in command table, so a malformed one panics.
func (reg *Registration) BindKey(spec string) *Registration {
	if err := reg.registry.BindKey(reg.cmd, spec); err != nil {
		panic(fmt.Sprintf("register %s: %v", reg.cmd.Name(), err))
	}
	return reg
}

// FindByName returns the command with the given name, or nil. Not finding
// a command is a normal outcome, not an error.
func (r *Registry) FindByName(name string) Command {
	if name == "" {
		return nil
	}
	for _, e := range r.entries {
		if e.cmd.Name() == name {
			return e.cmd
		}
	}
	return nil
}

// FindByKey returns the first registered command whose accelerator matches
// msg, or nil. Commands without accelerators never match.
func (r *Registry) FindByKey(msg tea.KeyMsg) Command {
	for _, e := range r.entries {
		if e.accel.Matches(msg) {
			return e.cmd
		}
	}
	return nil
}

// IsEnabled reports whether cmd may run. A nil command is enabled: callers
// probe availability before dispatch and absence is not a veto.
func (r *Registry) IsEnabled(ctx *Context, cmd Command, arg string) bool {
	if cmd == nil {
		return true
	}
	return cmd.Enabled(ctx, arg)
}

// IsChecked reports whether menus render cmd with a check mark. A nil
// command is never checked.
func (r *Registry) IsChecked(ctx *Context, cmd Command, arg string) bool {
	if cmd == nil {
		return false
	}
	return cmd.Checked(ctx, arg)
}

// Execute dispatches cmd. The console span opens before the enablement
// check and closes after the command returns, no matter what: spans with
// no output are fine, and a failed command must not leave the span open.
// Run errors are reported to the console and logged, never propagated.
// The returned tea.Cmd carries any event-loop work the command deferred.
func (r *Registry) Execute(ctx *Context, cmd Command, arg string) tea.Cmd {
	ctx.Console.Open()
	defer ctx.Console.Close()

	ctx.begin()
	if cmd != nil && cmd.Enabled(ctx, arg) {
		if err := cmd.Run(ctx, arg); err != nil {
			ctx.Console.Printf("%s: %v", cmd.Name(), err)
			log.ErrorLog.Printf("command %s failed: %v", cmd.Name(), err)
		}
	}
	return ctx.finish()
}

// BindKey parses a chord spec and appends its chords to cmd's accelerator,
// allocating the accelerator on first use.
func (r *Registry) BindKey(cmd Command, spec string) error {
	if cmd == nil {
		return fmt.Errorf("bind %q: no command", spec)
	}
	for i := range r.entries {
		e := &r.entries[i]
		if e.cmd.Name() != cmd.Name() {
			continue
		}
		chords, err := keys.ParseSpec(spec)
		if err != nil {
			return fmt.Errorf("bind %s: %w", cmd.Name(), err)
		}
		if e.accel == nil {
			e.accel = &keys.Accel{}
		}
		e.accel.Add(chords...)
		return nil
	}
	return fmt.Errorf("bind %s: command not registered", cmd.Name())
}

// ResetAllKeys clears every command's accelerator. Safe to call when
// nothing is bound.
func (r *Registry) ResetAllKeys() {
	for i := range r.entries {
		r.entries[i].accel = nil
	}
}

// Commands returns the registered commands in declaration order.
func (r *Registry) Commands() []Command {
	out := make([]Command, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.cmd
	}
	return out
}

// KeyHint returns the display form of cmd's first chord, or "" when the
// command has no accelerator.
func (r *Registry) KeyHint(cmd Command) string {
	if cmd == nil {
		return ""
	}
	for _, e := range r.entries {
		if e.cmd.Name() == cmd.Name() {
			return e.accel.Hint()
		}
	}
	return ""
}

// Chords returns a copy of the chords bound to the named command.
func (r *Registry) Chords(name string) []keys.Chord {
	for _, e := range r.entries {
		if e.cmd.Name() == name {
			return e.accel.Chords()
		}
	}
	return nil
}

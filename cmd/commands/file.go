package commands

import (
	tea "github.com/charmbracelet/bubbletea"

	"spritepad/cmd"
	"spritepad/ui/colorsel"
)

type newPaletteCommand struct{ cmd.Base }

// NewPaletteCommand replaces the palette with a built-in preset. The
// argument names the preset; empty means the default one.
func NewPaletteCommand() cmd.Command {
	return newPaletteCommand{cmd.NewBase(
		"NewPalette",
		"Replace the palette with a built-in preset",
		cmd.CategoryFile,
	)}
}

func (c newPaletteCommand) Enabled(ctx *cmd.Context, arg string) bool {
	return !ctx.Selector.PaletteLocked()
}

func (c newPaletteCommand) Run(ctx *cmd.Context, arg string) error {
	preset, err := colorsel.PresetPalette(arg)
	if err != nil {
		return err
	}
	colorsel.CopyInto(ctx.Palette, preset)
	name := arg
	if name == "" {
		name = "default"
	}
	ctx.Console.Printf("palette reset to the %s preset", name)
	return nil
}

type quitCommand struct{ cmd.Base }

// QuitCommand ends the program after the current dispatch unwinds.
func QuitCommand() cmd.Command {
	return quitCommand{cmd.NewBase("QuitApp", "Quit spritepad", cmd.CategoryFile)}
}

func (c quitCommand) Run(ctx *cmd.Context, arg string) error {
	ctx.Defer(tea.Quit)
	return nil
}

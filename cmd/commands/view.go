package commands

import (
	"spritepad/cmd"
	"spritepad/ui/colorsel"
)

// modelCommand switches the color panel to one model tab. One instance is
// registered per model; the active one renders checked.
type modelCommand struct {
	cmd.Base
	model colorsel.Model
}

func newModelCommand(name string, model colorsel.Model) cmd.Command {
	return modelCommand{
		Base:  cmd.NewBase(name, "Edit colors as "+model.String(), cmd.CategoryView),
		model: model,
	}
}

func RgbModelCommand() cmd.Command  { return newModelCommand("RgbModel", colorsel.ModelRGB) }
func HsvModelCommand() cmd.Command  { return newModelCommand("HsvModel", colorsel.ModelHSV) }
func GrayModelCommand() cmd.Command { return newModelCommand("GrayModel", colorsel.ModelGray) }
func MaskModelCommand() cmd.Command { return newModelCommand("MaskModel", colorsel.ModelMask) }

func (c modelCommand) Checked(ctx *cmd.Context, arg string) bool {
	return ctx.Selector.Model() == c.model
}

func (c modelCommand) Run(ctx *cmd.Context, arg string) error {
	ctx.Selector.SetModel(c.model)
	return nil
}

type toggleTipsCommand struct{ cmd.Base }

// ToggleTipsCommand turns hover tooltips on and off.
func ToggleTipsCommand() cmd.Command {
	return toggleTipsCommand{cmd.NewBase(
		"ToggleTips",
		"Show or hide hover tooltips",
		cmd.CategoryView,
	)}
}

func (c toggleTipsCommand) Checked(ctx *cmd.Context, arg string) bool {
	return ctx.UI.TooltipsEnabled()
}

func (c toggleTipsCommand) Run(ctx *cmd.Context, arg string) error {
	enabled := !ctx.UI.TooltipsEnabled()
	ctx.UI.SetTooltipsEnabled(enabled)
	if enabled {
		ctx.UI.Flash("tooltips on")
	} else {
		ctx.UI.Flash("tooltips off")
	}
	return nil
}

type showConsoleCommand struct{ cmd.Base }

// ShowConsoleCommand raises the console overlay.
func ShowConsoleCommand() cmd.Command {
	return showConsoleCommand{cmd.NewBase(
		"ShowConsole",
		"Show the console",
		cmd.CategoryView,
	)}
}

func (c showConsoleCommand) Run(ctx *cmd.Context, arg string) error {
	ctx.UI.ShowConsole()
	return nil
}

type commandPaletteCommand struct{ cmd.Base }

// CommandPaletteCommand opens the fuzzy command launcher.
func CommandPaletteCommand() cmd.Command {
	return commandPaletteCommand{cmd.NewBase(
		"CommandPalette",
		"Search and run any command",
		cmd.CategoryView,
	)}
}

func (c commandPaletteCommand) Run(ctx *cmd.Context, arg string) error {
	ctx.UI.ShowCommandPalette()
	return nil
}

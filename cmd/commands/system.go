package commands

import (
	"fmt"

	"spritepad/cmd"
)

type reloadKeysCommand struct{ cmd.Base }

// ReloadKeysCommand re-applies the key-binding configuration without a
// restart. The file watcher does this automatically; the command covers
// hosts where watching is unavailable.
func ReloadKeysCommand() cmd.Command {
	return reloadKeysCommand{cmd.NewBase(
		"ReloadKeys",
		"Reload key bindings from the config file",
		cmd.CategorySystem,
	)}
}

func (c reloadKeysCommand) Run(ctx *cmd.Context, arg string) error {
	if ctx.ReloadKeys == nil {
		return fmt.Errorf("key reload not available")
	}
	if err := ctx.ReloadKeys(); err != nil {
		return err
	}
	ctx.Console.Printf("key bindings reloaded")
	return nil
}

type showHelpCommand struct{ cmd.Base }

// ShowHelpCommand raises the help overlay.
func ShowHelpCommand() cmd.Command {
	return showHelpCommand{cmd.NewBase(
		"ShowHelp",
		"Show the help screen",
		cmd.CategorySystem,
	)}
}

func (c showHelpCommand) Run(ctx *cmd.Context, arg string) error {
	ctx.UI.ShowHelp()
	return nil
}

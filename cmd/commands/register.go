package commands

import (
	"fmt"

	"spritepad/cmd"
)

// defaultChords maps command names to their built-in chord specs.
// Commands absent here ship unbound and are reachable through menus and
// the command palette.
var defaultChords = map[string]string{
	"NewPalette":     "<Ctrl+N>",
	"QuitApp":        "<Ctrl+Q>",
	"CopyColor":      "<Ctrl+C>",
	"PasteColor":     "<Ctrl+V>",
	"SetColor":       "<Ctrl+G>",
	"SwatchRamp":     "<Ctrl+R>",
	"RgbModel":       "<F2>",
	"HsvModel":       "<F3>",
	"GrayModel":      "<F4>",
	"MaskModel":      "<F5>",
	"ToggleTips":     "<Ctrl+T>",
	"ShowConsole":    "<F10>",
	"CommandPalette": "<Ctrl+P>",
	"LockPalette":    "<Ctrl+L>",
	"ReloadKeys":     "<Ctrl+K>",
	"ShowHelp":       "<F1>",
}

// RegisterAll installs the built-in command table and binds the default
// chords. Registration order is menu order, and it is the tie-break order
// when two commands end up sharing a chord.
func RegisterAll(r *cmd.Registry) {
	for _, c := range []cmd.Command{
		NewPaletteCommand(),
		QuitCommand(),
		CopyColorCommand(),
		PasteColorCommand(),
		SetColorCommand(),
		SwatchRampCommand(),
		RgbModelCommand(),
		HsvModelCommand(),
		GrayModelCommand(),
		MaskModelCommand(),
		ToggleTipsCommand(),
		ShowConsoleCommand(),
		CommandPaletteCommand(),
		LockPaletteCommand(),
		SortPaletteCommand(),
		ReloadKeysCommand(),
		ShowHelpCommand(),
	} {
		r.Register(c)
	}
	BindDefaults(r)
}

// BindDefaults binds the built-in chords. ApplyKeyConfig calls this after
// resetting the table, before layering user overrides on top.
func BindDefaults(r *cmd.Registry) {
	for _, c := range r.Commands() {
		spec, ok := defaultChords[c.Name()]
		if !ok {
			continue
		}
		if err := r.BindKey(c, spec); err != nil {
			panic(fmt.Sprintf("default chord for %s: %v", c.Name(), err))
		}
	}
}

package commands

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/lucasb-eyer/go-colorful"

	"spritepad/cmd"
	"spritepad/ui/colorsel"
)

type copyColorCommand struct{ cmd.Base }

// CopyColorCommand puts the current color on the system clipboard in its
// textual form, so it can be pasted back or into another tool.
func CopyColorCommand() cmd.Command {
	return copyColorCommand{cmd.NewBase(
		"CopyColor",
		"Copy the current color to the clipboard",
		cmd.CategoryEdit,
	)}
}

func (c copyColorCommand) Run(ctx *cmd.Context, arg string) error {
	text := ctx.Selector.Color().String()
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("copy color: %w", err)
	}
	ctx.UI.Flash("copied %s", text)
	return nil
}

type pasteColorCommand struct{ cmd.Base }

// PasteColorCommand adopts a color from the clipboard. It is enabled only
// while the clipboard holds something ParseColor understands.
func PasteColorCommand() cmd.Command {
	return pasteColorCommand{cmd.NewBase(
		"PasteColor",
		"Paste a color from the clipboard",
		cmd.CategoryEdit,
	)}
}

func (c pasteColorCommand) Enabled(ctx *cmd.Context, arg string) bool {
	text, err := clipboard.ReadAll()
	if err != nil {
		return false
	}
	_, err = colorsel.ParseColor(text)
	return err == nil
}

func (c pasteColorCommand) Run(ctx *cmd.Context, arg string) error {
	text, err := clipboard.ReadAll()
	if err != nil {
		return fmt.Errorf("paste color: %w", err)
	}
	color, err := colorsel.ParseColor(text)
	if err != nil {
		return fmt.Errorf("paste color: %w", err)
	}
	ctx.Selector.SetColor(color)
	ctx.UI.Flash("pasted %s", color.String())
	return nil
}

type setColorCommand struct{ cmd.Base }

// SetColorCommand sets the current color from a textual form. Without an
// argument it prompts for one and dispatches itself again.
func SetColorCommand() cmd.Command {
	return setColorCommand{cmd.NewBase(
		"SetColor",
		"Set the current color from text",
		cmd.CategoryEdit,
	)}
}

func (c setColorCommand) Run(ctx *cmd.Context, arg string) error {
	if arg == "" {
		ctx.UI.PromptArg("Set color", c.Name())
		return nil
	}
	color, err := colorsel.ParseColor(arg)
	if err != nil {
		return err
	}
	ctx.Selector.SetColor(color)
	ctx.Console.Printf("color set to %s", color.String())
	return nil
}

type swatchRampCommand struct{ cmd.Base }

// SwatchRampCommand fills the selected palette range with a linear blend
// between its endpoint entries.
func SwatchRampCommand() cmd.Command {
	return swatchRampCommand{cmd.NewBase(
		"SwatchRamp",
		"Blend a color ramp across the selected entries",
		cmd.CategoryEdit,
	)}
}

func (c swatchRampCommand) Enabled(ctx *cmd.Context, arg string) bool {
	if ctx.Selector.PaletteLocked() {
		return false
	}
	lo, hi, ok := ctx.Selector.Selection()
	return ok && hi-lo >= 1
}

func (c swatchRampCommand) Run(ctx *cmd.Context, arg string) error {
	lo, hi, ok := ctx.Selector.Selection()
	if !ok || hi-lo < 1 {
		return nil
	}
	r1, g1, b1 := ctx.Palette.Get(lo)
	r2, g2, b2 := ctx.Palette.Get(hi)
	from := colorful.Color{R: float64(r1) / 255, G: float64(g1) / 255, B: float64(b1) / 255}
	to := colorful.Color{R: float64(r2) / 255, G: float64(g2) / 255, B: float64(b2) / 255}
	for i := lo + 1; i < hi; i++ {
		t := float64(i-lo) / float64(hi-lo)
		r, g, b := from.BlendRgb(to, t).RGB255()
		ctx.Palette.Set(i, r, g, b)
	}
	ctx.Console.Printf("ramp across entries %d..%d", lo, hi)
	return nil
}

package commands

import (
	"sort"

	"spritepad/cmd"
	"spritepad/ui/colorsel"
)

type lockPaletteCommand struct{ cmd.Base }

// LockPaletteCommand toggles the palette lock. While locked, edits select
// existing entries instead of rewriting them.
func LockPaletteCommand() cmd.Command {
	return lockPaletteCommand{cmd.NewBase(
		"LockPalette",
		"Lock or unlock the palette for editing",
		cmd.CategoryPalette,
	)}
}

func (c lockPaletteCommand) Checked(ctx *cmd.Context, arg string) bool {
	return ctx.Selector.PaletteLocked()
}

func (c lockPaletteCommand) Run(ctx *cmd.Context, arg string) error {
	locked := !ctx.Selector.PaletteLocked()
	ctx.Selector.SetPaletteLocked(locked)
	if locked {
		ctx.Console.Printf("palette locked")
	} else {
		ctx.Console.Printf("palette unlocked")
	}
	return nil
}

type sortPaletteCommand struct{ cmd.Base }

// SortPaletteCommand orders the palette by luminance. The mask entry
// stays put.
func SortPaletteCommand() cmd.Command {
	return sortPaletteCommand{cmd.NewBase(
		"SortPalette",
		"Sort palette entries by luminance",
		cmd.CategoryPalette,
	)}
}

func (c sortPaletteCommand) Enabled(ctx *cmd.Context, arg string) bool {
	return !ctx.Selector.PaletteLocked()
}

func (c sortPaletteCommand) Run(ctx *cmd.Context, arg string) error {
	n := ctx.Palette.Len()
	if n <= 2 {
		return nil
	}
	entries := make([][3]uint8, 0, n-1)
	for i := 1; i < n; i++ {
		r, g, b := ctx.Palette.Get(i)
		entries = append(entries, [3]uint8{r, g, b})
	}
	sort.SliceStable(entries, func(a, b int) bool {
		ea, eb := entries[a], entries[b]
		return colorsel.Luminance(ea[0], ea[1], ea[2]) < colorsel.Luminance(eb[0], eb[1], eb[2])
	})
	for i, e := range entries {
		ctx.Palette.Set(i+1, e[0], e[1], e[2])
	}
	ctx.Console.Printf("sorted %d palette entries", len(entries))
	return nil
}

package app

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"spritepad/cmd"
	"spritepad/keys"
)

var (
	helpSectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	helpNameStyle    = lipgloss.NewStyle().Bold(true)
	helpHintStyle    = lipgloss.NewStyle().Faint(true)
	helpDescStyle    = lipgloss.NewStyle()
)

// helpContent builds the help screen from the registry: one section per
// command category in display order, each row showing the command name,
// its current chord hint, and its description, followed by the fixed UI
// navigation keys. Generated on every open so rebound chords and
// enablement stay truthful.
func helpContent(reg *cmd.Registry, ctx *cmd.Context) string {
	var sections []string

	for _, cat := range cmd.CategoryOrder {
		if cmd.IsHiddenCategory(cat) {
			continue
		}
		var rows []string
		for _, c := range reg.Commands() {
			if c.Category() != cat {
				continue
			}
			rows = append(rows, helpRow(c.Name(), reg.KeyHint(c), c.Description(), reg.IsEnabled(ctx, c, "")))
		}
		if len(rows) == 0 {
			continue
		}
		sections = append(sections,
			helpSectionStyle.Render(string(cat))+"\n"+strings.Join(rows, "\n"))
	}

	sections = append(sections, uiKeysSection())
	return strings.Join(sections, "\n\n")
}

// helpRow formats one aligned help line. Disabled commands render dim so
// the screen mirrors the menus.
func helpRow(name, hint, desc string, enabled bool) string {
	if !enabled {
		return helpHintStyle.Render(fmt.Sprintf("  %-15s %-12s %s", name, hint, desc))
	}
	return fmt.Sprintf("  %s %s %s",
		helpNameStyle.Render(fmt.Sprintf("%-15s", name)),
		helpHintStyle.Render(fmt.Sprintf("%-12s", hint)),
		helpDescStyle.Render(desc),
	)
}

// uiKeysSection lists the fixed widget navigation keys, grouped by their
// help categories.
func uiKeysSection() string {
	var rows []string
	for _, cat := range []keys.HelpCategory{
		keys.HelpCategoryNavigation, keys.HelpCategorySelection, keys.HelpCategoryOther,
	} {
		names := keys.GetKeysInCategory(cat)
		sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
		for _, name := range names {
			binding, ok := keys.GlobalkeyBindings[name]
			if !ok {
				continue
			}
			rows = append(rows, fmt.Sprintf("  %s %s",
				helpHintStyle.Render(fmt.Sprintf("%-14s", binding.Help().Key)),
				keys.GetKeyHelp(name).Description,
			))
		}
	}
	return helpSectionStyle.Render("Keys") + "\n" + strings.Join(rows, "\n")
}

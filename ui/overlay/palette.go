package overlay

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"spritepad/cmd"
	"spritepad/ui/fuzzy"
)

var (
	paletteFrameStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62")).
				Padding(1, 2)
	paletteTitleStyle = lipgloss.NewStyle().
				Bold(true).
				MarginBottom(1)
	paletteInputStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(0, 1)
	paletteItemStyle     = lipgloss.NewStyle().Padding(0, 1)
	paletteSelectedStyle = lipgloss.NewStyle().Padding(0, 1).Reverse(true)
	paletteDisabledStyle = lipgloss.NewStyle().Padding(0, 1).Faint(true)
	paletteMatchStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FFFF"))
	paletteHintStyle     = lipgloss.NewStyle().Faint(true)
)

// CommandPalette is the fuzzy command launcher: a text input over the
// whole command table, searched on every keystroke. Disabled commands
// are listed grayed out and cannot be run.
type CommandPalette struct {
	input    textinput.Model
	reg      *cmd.Registry
	ctx      *cmd.Context
	results  []fuzzy.Result
	selected int
	width    int
	height   int

	// OnRun dispatches the chosen command by name after the palette
	// closes.
	OnRun    func(name string)
	OnCancel func()
}

// commandItem adapts a registry command for searching. Matching runs on
// the name so highlight indices line up with the displayed text.
type commandItem struct {
	c cmd.Command
}

func (i commandItem) SearchText() string  { return i.c.Name() }
func (i commandItem) DisplayText() string { return i.c.Name() }
func (i commandItem) ID() string          { return i.c.Name() }

func NewCommandPalette(reg *cmd.Registry, ctx *cmd.Context) *CommandPalette {
	ti := textinput.New()
	ti.Placeholder = "Type a command name"
	ti.Focus()

	p := &CommandPalette{
		input:  ti,
		reg:    reg,
		ctx:    ctx,
		width:  44,
		height: 16,
	}
	p.refresh()
	return p
}

func (p *CommandPalette) Init() tea.Cmd {
	return textinput.Blink
}

func (p *CommandPalette) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// Results exposes the current matches, best first.
func (p *CommandPalette) Results() []fuzzy.Result {
	return p.results
}

// Selected returns the currently highlighted command, or nil when the
// result list is empty.
func (p *CommandPalette) Selected() cmd.Command {
	if p.selected < 0 || p.selected >= len(p.results) {
		return nil
	}
	return p.results[p.selected].Item.(commandItem).c
}

// refresh recomputes the result list for the current query.
func (p *CommandPalette) refresh() {
	items := make([]fuzzy.Item, 0, len(p.reg.Commands()))
	for _, c := range p.reg.Commands() {
		items = append(items, commandItem{c: c})
	}
	p.results = fuzzy.Search(p.input.Value(), items)
	p.selected = 0
}

// HandleKeyPress processes a key press. It reports whether the palette
// should close.
func (p *CommandPalette) HandleKeyPress(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyEsc:
		if p.OnCancel != nil {
			p.OnCancel()
		}
		return true
	case tea.KeyEnter:
		c := p.Selected()
		if c == nil || !p.reg.IsEnabled(p.ctx, c, "") {
			return false
		}
		if p.OnRun != nil {
			p.OnRun(c.Name())
		}
		return true
	case tea.KeyUp:
		if p.selected > 0 {
			p.selected--
		} else if len(p.results) > 0 {
			p.selected = len(p.results) - 1
		}
		return false
	case tea.KeyDown:
		if p.selected < len(p.results)-1 {
			p.selected++
		} else {
			p.selected = 0
		}
		return false
	case tea.KeyTab:
		if c := p.Selected(); c != nil {
			p.input.SetValue(c.Name())
			p.input.CursorEnd()
			p.refresh()
		}
		return false
	default:
		p.input, _ = p.input.Update(msg)
		p.refresh()
		return false
	}
}

// View renders the palette frame, input, and result list.
func (p *CommandPalette) View() string {
	var sb strings.Builder
	sb.WriteString(paletteTitleStyle.Render("Command Palette"))
	sb.WriteString("\n")

	innerWidth := p.width - 6
	if innerWidth < 20 {
		innerWidth = 20
	}
	p.input.Width = innerWidth - 4
	sb.WriteString(paletteInputStyle.Width(innerWidth).Render(p.input.View()))
	sb.WriteString("\n\n")

	maxVisible := p.height - 7
	if maxVisible < 1 {
		maxVisible = 1
	}

	if len(p.results) == 0 {
		sb.WriteString(paletteHintStyle.Render(p.noMatchLine()))
		sb.WriteString("\n")
		return paletteFrameStyle.Render(sb.String())
	}

	start := 0
	if p.selected >= maxVisible {
		start = p.selected - maxVisible + 1
	}
	end := start + maxVisible
	if end > len(p.results) {
		end = len(p.results)
	}

	for i := start; i < end; i++ {
		sb.WriteString(p.renderRow(i, innerWidth))
		sb.WriteString("\n")
	}
	if rest := len(p.results) - end; rest > 0 {
		sb.WriteString(paletteHintStyle.Render(fmt.Sprintf("… and %d more", rest)))
		sb.WriteString("\n")
	}
	return paletteFrameStyle.Render(sb.String())
}

func (p *CommandPalette) renderRow(i, width int) string {
	r := p.results[i]
	c := r.Item.(commandItem).c
	enabled := p.reg.IsEnabled(p.ctx, c, "")

	marker := "  "
	if p.reg.IsChecked(p.ctx, c, "") {
		marker = "✓ "
	}

	name := c.Name()
	label := marker + name
	if enabled && i != p.selected {
		label = marker + highlightName(name, r.Matches)
	}

	hint := p.reg.KeyHint(c)
	pad := width - 2 - lipgloss.Width(marker+name) - lipgloss.Width(hint)
	if pad < 1 {
		pad = 1
	}
	row := label + strings.Repeat(" ", pad) + paletteHintStyle.Render(hint)

	switch {
	case i == p.selected:
		return paletteSelectedStyle.Render(row)
	case !enabled:
		return paletteDisabledStyle.Render(row)
	default:
		return paletteItemStyle.Render(row)
	}
}

// noMatchLine proposes the closest command name when the query matches
// nothing at all.
func (p *CommandPalette) noMatchLine() string {
	query := p.input.Value()
	best := ""
	bestDist := 4
	for _, c := range p.reg.Commands() {
		d := levenshtein.ComputeDistance(strings.ToLower(query), strings.ToLower(c.Name()))
		if d < bestDist {
			best, bestDist = c.Name(), d
		}
	}
	if best == "" {
		return "No matching command"
	}
	return fmt.Sprintf("No matching command. Did you mean %s?", best)
}

// highlightName re-renders the matched characters in the accent color.
func highlightName(name string, matches []int) string {
	if len(matches) == 0 {
		return name
	}
	set := make(map[int]bool, len(matches))
	for _, idx := range matches {
		set[idx] = true
	}
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		if set[i] {
			b.WriteString(paletteMatchStyle.Render(name[i : i+1]))
		} else {
			b.WriteString(name[i : i+1])
		}
	}
	return b.String()
}

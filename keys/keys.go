package keys

import (
	"github.com/charmbracelet/bubbles/key"
)

type KeyName int

const (
	KeyUp KeyName = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEsc

	KeyTab // Tab is a special keybinding for switching between panels.

	// Selection keybindings
	KeyShiftUp
	KeyShiftDown
	KeyShiftLeft
	KeyShiftRight
	KeyHome
	KeyEnd
	KeyPgUp
	KeyPgDown

	KeyMenu // Activate the menu bar
)

// GlobalKeyStringsMap is a global, immutable map string to keybinding.
var GlobalKeyStringsMap = map[string]KeyName{
	"up":          KeyUp,
	"k":           KeyUp,
	"down":        KeyDown,
	"j":           KeyDown,
	"left":        KeyLeft,
	"h":           KeyLeft,
	"right":       KeyRight,
	"l":           KeyRight,
	"shift+up":    KeyShiftUp,
	"shift+down":  KeyShiftDown,
	"shift+left":  KeyShiftLeft,
	"shift+right": KeyShiftRight,
	"home":        KeyHome,
	"end":         KeyEnd,
	"pgup":        KeyPgUp,
	"pgdown":      KeyPgDown,
	"enter":       KeyEnter,
	"tab":         KeyTab,
	"f9":          KeyMenu,
	"esc":         KeyEsc,
}

// GlobalkeyBindings is a global, immutable map of KeyName to keybinding.
var GlobalkeyBindings = map[KeyName]key.Binding{
	KeyUp: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	KeyDown: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	KeyLeft: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "left"),
	),
	KeyRight: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "right"),
	),
	KeyShiftUp: key.NewBinding(
		key.WithKeys("shift+up"),
		key.WithHelp("shift+↑", "extend selection up"),
	),
	KeyShiftDown: key.NewBinding(
		key.WithKeys("shift+down"),
		key.WithHelp("shift+↓", "extend selection down"),
	),
	KeyShiftLeft: key.NewBinding(
		key.WithKeys("shift+left"),
		key.WithHelp("shift+←", "extend selection left"),
	),
	KeyShiftRight: key.NewBinding(
		key.WithKeys("shift+right"),
		key.WithHelp("shift+→", "extend selection right"),
	),
	KeyHome: key.NewBinding(
		key.WithKeys("home"),
		key.WithHelp("home", "first entry"),
	),
	KeyEnd: key.NewBinding(
		key.WithKeys("end"),
		key.WithHelp("end", "last entry"),
	),
	KeyPgUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "scroll up"),
	),
	KeyPgDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdown", "scroll down"),
	),
	KeyEnter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("↵", "choose"),
	),
	KeyTab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch panel"),
	),
	KeyMenu: key.NewBinding(
		key.WithKeys("f9"),
		key.WithHelp("f9", "menu"),
	),

	// General keybinding
	KeyEsc: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

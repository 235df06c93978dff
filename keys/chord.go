package keys

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Chord is a single parsed modifier+key combination.
type Chord struct {
	Ctrl  bool
	Alt   bool
	Shift bool
	Key   string // canonical lower-case key name: "z", "f2", "enter", " "
}

// namedKeys maps the names accepted inside a chord spec to canonical
// bubbletea key names.
var namedKeys = map[string]string{
	"space":     " ",
	"plus":      "+",
	"enter":     "enter",
	"return":    "enter",
	"esc":       "esc",
	"escape":    "esc",
	"tab":       "tab",
	"backspace": "backspace",
	"delete":    "delete",
	"del":       "delete",
	"insert":    "insert",
	"ins":       "insert",
	"home":      "home",
	"end":       "end",
	"pgup":      "pgup",
	"pageup":    "pgup",
	"pgdn":      "pgdown",
	"pgdown":    "pgdown",
	"pagedown":  "pgdown",
	"up":        "up",
	"down":      "down",
	"left":      "left",
	"right":     "right",
}

// displayKeys maps canonical key names to their menu display form.
var displayKeys = map[string]string{
	" ":         "Space",
	"enter":     "Enter",
	"esc":       "Esc",
	"tab":       "Tab",
	"backspace": "Backspace",
	"delete":    "Del",
	"insert":    "Ins",
	"home":      "Home",
	"end":       "End",
	"pgup":      "PgUp",
	"pgdown":    "PgDn",
	"up":        "Up",
	"down":      "Down",
	"left":      "Left",
	"right":     "Right",
}

// ParseSpec parses a chord spec like "<Ctrl+Z>" or "<Ctrl+S> <F2>" into its
// chords. Each chord is bracketed; multiple chords are separated by
// whitespace. Modifier and key names are case-insensitive.
func ParseSpec(spec string) ([]Chord, error) {
	var chords []Chord
	s := spec
	for {
		s = strings.TrimLeft(s, " \t")
		if s == "" {
			break
		}
		if s[0] != '<' {
			return nil, fmt.Errorf("chord spec %q: expected '<'", spec)
		}
		end := strings.IndexByte(s, '>')
		if end < 0 {
			return nil, fmt.Errorf("chord spec %q: missing '>'", spec)
		}
		c, err := parseChord(s[1:end])
		if err != nil {
			return nil, fmt.Errorf("chord spec %q: %w", spec, err)
		}
		chords = append(chords, c)
		s = s[end+1:]
	}
	if len(chords) == 0 {
		return nil, fmt.Errorf("chord spec %q: no chords", spec)
	}
	return chords, nil
}

func parseChord(body string) (Chord, error) {
	var c Chord
	haveKey := false
	for _, tok := range strings.Split(body, "+") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return c, fmt.Errorf("empty token in chord %q", body)
		}
		switch strings.ToLower(tok) {
		case "ctrl", "control":
			c.Ctrl = true
		case "alt":
			c.Alt = true
		case "shift":
			c.Shift = true
		default:
			if haveKey {
				return c, fmt.Errorf("more than one key in chord %q", body)
			}
			k, err := normalizeKey(tok)
			if err != nil {
				return c, err
			}
			c.Key = k
			haveKey = true
		}
	}
	if !haveKey {
		return c, fmt.Errorf("chord %q has no key", body)
	}
	return c, nil
}

func normalizeKey(tok string) (string, error) {
	low := strings.ToLower(tok)
	if k, ok := namedKeys[low]; ok {
		return k, nil
	}
	if len(low) >= 2 && low[0] == 'f' {
		if n, err := strconv.Atoi(low[1:]); err == nil && n >= 1 && n <= 20 {
			return low, nil
		}
	}
	if utf8.RuneCountInString(tok) == 1 {
		return strings.ToLower(tok), nil
	}
	return "", fmt.Errorf("unknown key %q", tok)
}

// teaName compiles the chord into the key name bubbletea reports for it.
// Shifted letters arrive as their uppercase rune; everything else keeps an
// explicit modifier prefix.
func (c Chord) teaName() string {
	k := c.Key
	letter := len(k) == 1 && k[0] >= 'a' && k[0] <= 'z'
	switch {
	case c.Shift && letter && !c.Ctrl:
		k = strings.ToUpper(k)
	case c.Shift:
		k = "shift+" + k
	}
	if c.Ctrl {
		if k == " " {
			// Terminals report ctrl+space as NUL.
			k = "@"
		}
		k = "ctrl+" + k
	}
	if c.Alt {
		k = "alt+" + k
	}
	return k
}

// String returns the menu display form, e.g. "Ctrl+Shift+Z" or "F2".
func (c Chord) String() string {
	var b strings.Builder
	if c.Ctrl {
		b.WriteString("Ctrl+")
	}
	if c.Alt {
		b.WriteString("Alt+")
	}
	if c.Shift {
		b.WriteString("Shift+")
	}
	k := c.Key
	if d, ok := displayKeys[k]; ok {
		k = d
	} else {
		k = strings.ToUpper(k)
	}
	b.WriteString(k)
	return b.String()
}

// Accel is a command's accelerator: the set of chords that trigger it.
// Accels are allocated lazily on first bind; a nil *Accel matches nothing.
type Accel struct {
	chords  []Chord
	binding key.Binding
}

func NewAccel(chords ...Chord) *Accel {
	a := &Accel{}
	a.Add(chords...)
	return a
}

// Add appends chords and recompiles the underlying binding.
func (a *Accel) Add(chords ...Chord) {
	a.chords = append(a.chords, chords...)
	names := make([]string, len(a.chords))
	for i, c := range a.chords {
		names[i] = c.teaName()
	}
	a.binding = key.NewBinding(key.WithKeys(names...), key.WithHelp(a.Hint(), ""))
}

// Matches reports whether msg triggers this accelerator.
func (a *Accel) Matches(msg tea.KeyMsg) bool {
	if a == nil || len(a.chords) == 0 {
		return false
	}
	return key.Matches(msg, a.binding)
}

// Chords returns a copy of the bound chords.
func (a *Accel) Chords() []Chord {
	if a == nil {
		return nil
	}
	return slices.Clone(a.chords)
}

// Keys returns the compiled bubbletea key names, in bind order.
func (a *Accel) Keys() []string {
	if a == nil || len(a.chords) == 0 {
		return nil
	}
	return a.binding.Keys()
}

// Hint returns the display form of the first chord, e.g. "Ctrl+Q". Menus
// show only the first chord even when several are bound.
func (a *Accel) Hint() string {
	if a == nil || len(a.chords) == 0 {
		return ""
	}
	return a.chords[0].String()
}

// IsModifierOnly reports whether msg carries no base key, only modifier
// chatter. Tooltip popups ignore these instead of closing. Terminals do
// not report bare modifier presses, so for live input this is always
// false; the classification exists for the popup layer's key contract
// and for synthesized messages in tests.
func IsModifierOnly(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyRunes && len(msg.Runes) == 0
}

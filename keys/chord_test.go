package keys

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestParseSpec(t *testing.T) {
	testCases := []struct {
		name     string
		spec     string
		expected []Chord
	}{
		{
			name:     "single chord with ctrl",
			spec:     "<Ctrl+Z>",
			expected: []Chord{{Ctrl: true, Key: "z"}},
		},
		{
			name:     "lowercase names",
			spec:     "<ctrl+q>",
			expected: []Chord{{Ctrl: true, Key: "q"}},
		},
		{
			name:     "function key without modifiers",
			spec:     "<F2>",
			expected: []Chord{{Key: "f2"}},
		},
		{
			name:     "all three modifiers",
			spec:     "<Ctrl+Alt+Shift+X>",
			expected: []Chord{{Ctrl: true, Alt: true, Shift: true, Key: "x"}},
		},
		{
			name:     "named key",
			spec:     "<Alt+Enter>",
			expected: []Chord{{Alt: true, Key: "enter"}},
		},
		{
			name:     "space key",
			spec:     "<Space>",
			expected: []Chord{{Key: " "}},
		},
		{
			name:     "plus key spelled out",
			spec:     "<Ctrl+Plus>",
			expected: []Chord{{Ctrl: true, Key: "+"}},
		},
		{
			name: "multiple chords separated by whitespace",
			spec: "<Ctrl+S> <F2>",
			expected: []Chord{
				{Ctrl: true, Key: "s"},
				{Key: "f2"},
			},
		},
		{
			name:     "alias names normalize",
			spec:     "<Control+Return>",
			expected: []Chord{{Ctrl: true, Key: "enter"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			chords, err := ParseSpec(tc.spec)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, chords)
		})
	}
}

func TestParseSpecErrors(t *testing.T) {
	testCases := []struct {
		name string
		spec string
	}{
		{name: "empty spec", spec: ""},
		{name: "whitespace only", spec: "   "},
		{name: "missing brackets", spec: "Ctrl+Z"},
		{name: "unterminated chord", spec: "<Ctrl+Z"},
		{name: "empty chord", spec: "<>"},
		{name: "trailing separator", spec: "<Ctrl+>"},
		{name: "modifiers without key", spec: "<Ctrl+Shift>"},
		{name: "unknown key name", spec: "<Ctrl+Bogus>"},
		{name: "two keys in one chord", spec: "<A+B>"},
		{name: "out of range function key", spec: "<F21>"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseSpec(tc.spec)
			assert.Error(t, err)
		})
	}
}

func TestChordTeaName(t *testing.T) {
	testCases := []struct {
		name     string
		chord    Chord
		expected string
	}{
		{name: "plain letter", chord: Chord{Key: "z"}, expected: "z"},
		{name: "ctrl letter", chord: Chord{Ctrl: true, Key: "z"}, expected: "ctrl+z"},
		{name: "shift letter becomes uppercase", chord: Chord{Shift: true, Key: "z"}, expected: "Z"},
		{name: "alt shift letter keeps uppercase", chord: Chord{Alt: true, Shift: true, Key: "z"}, expected: "alt+Z"},
		{name: "ctrl shift keeps prefix", chord: Chord{Ctrl: true, Shift: true, Key: "z"}, expected: "ctrl+shift+z"},
		{name: "alt ctrl ordering", chord: Chord{Ctrl: true, Alt: true, Key: "a"}, expected: "alt+ctrl+a"},
		{name: "shift arrow", chord: Chord{Shift: true, Key: "up"}, expected: "shift+up"},
		{name: "ctrl space is NUL", chord: Chord{Ctrl: true, Key: " "}, expected: "ctrl+@"},
		{name: "function key", chord: Chord{Key: "f10"}, expected: "f10"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.chord.teaName())
		})
	}
}

func TestChordString(t *testing.T) {
	testCases := []struct {
		name     string
		chord    Chord
		expected string
	}{
		{name: "ctrl letter", chord: Chord{Ctrl: true, Key: "q"}, expected: "Ctrl+Q"},
		{name: "all modifiers", chord: Chord{Ctrl: true, Alt: true, Shift: true, Key: "x"}, expected: "Ctrl+Alt+Shift+X"},
		{name: "function key", chord: Chord{Key: "f2"}, expected: "F2"},
		{name: "named key", chord: Chord{Alt: true, Key: "enter"}, expected: "Alt+Enter"},
		{name: "space", chord: Chord{Key: " "}, expected: "Space"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.chord.String())
		})
	}
}

func TestAccelMatches(t *testing.T) {
	accel := NewAccel(Chord{Ctrl: true, Key: "z"}, Chord{Key: "f2"})

	assert.True(t, accel.Matches(tea.KeyMsg{Type: tea.KeyCtrlZ}))
	assert.True(t, accel.Matches(tea.KeyMsg{Type: tea.KeyF2}))
	assert.False(t, accel.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("z")}))
	assert.False(t, accel.Matches(tea.KeyMsg{Type: tea.KeyF3}))
}

func TestAccelMatchesUppercaseRune(t *testing.T) {
	accel := NewAccel(Chord{Shift: true, Key: "s"})

	assert.True(t, accel.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("S")}))
	assert.False(t, accel.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")}))
}

func TestNilAccelMatchesNothing(t *testing.T) {
	var accel *Accel

	assert.False(t, accel.Matches(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, "", accel.Hint())
	assert.Nil(t, accel.Chords())
	assert.Nil(t, accel.Keys())
}

func TestAccelHint(t *testing.T) {
	accel := NewAccel(Chord{Ctrl: true, Key: "p"}, Chord{Key: "f12"})

	// Only the first chord shows up in menus.
	assert.Equal(t, "Ctrl+P", accel.Hint())
	assert.Equal(t, []string{"ctrl+p", "f12"}, accel.Keys())
}

func TestIsModifierOnly(t *testing.T) {
	assert.True(t, IsModifierOnly(tea.KeyMsg{Type: tea.KeyRunes}))
	assert.False(t, IsModifierOnly(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")}))
	assert.False(t, IsModifierOnly(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.False(t, IsModifierOnly(tea.KeyMsg{Type: tea.KeyEsc}))
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateDefaultsWhenMissing(t *testing.T) {
	s := loadStateFrom(t.TempDir())

	assert.Equal(t, "#000000", s.LastColor)
	assert.Equal(t, "rgb", s.ActiveModel)
	assert.True(t, s.PaletteLocked)
	assert.Equal(t, -1, s.SelectedIndex)
	assert.Empty(t, s.RecentColors)
	assert.False(t, s.HelpSeen)
}

func TestStateRoundTrip(t *testing.T) {
	dir := t.TempDir()

	s := loadStateFrom(dir)
	s.LastColor = "#ff8800"
	s.ActiveModel = "hsv"
	s.PaletteLocked = false
	s.SelectedIndex = 12
	s.HelpSeen = true
	s.AddRecentColor("#112233")
	s.AddRecentColor("#445566")
	require.NoError(t, SaveState(s))

	loaded := loadStateFrom(dir)
	assert.Equal(t, "#ff8800", loaded.LastColor)
	assert.Equal(t, "hsv", loaded.ActiveModel)
	assert.False(t, loaded.PaletteLocked)
	assert.Equal(t, 12, loaded.SelectedIndex)
	assert.Equal(t, []string{"#445566", "#112233"}, loaded.RecentColors)
	assert.True(t, loaded.HelpSeen)
}

func TestStateSanitizesStrayValues(t *testing.T) {
	dir := t.TempDir()
	raw := `{"last_color": "", "active_model": "", "selected_index": -9, "recent_colors": null}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, StateFileName), []byte(raw), 0644))

	s := loadStateFrom(dir)

	assert.Equal(t, "#000000", s.LastColor)
	assert.Equal(t, "rgb", s.ActiveModel)
	assert.Equal(t, -1, s.SelectedIndex)
	assert.NotNil(t, s.RecentColors)
}

func TestStateGarbageFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, StateFileName), []byte("zzz"), 0644))

	s := loadStateFrom(dir)
	assert.Equal(t, "#000000", s.LastColor)
	assert.Equal(t, -1, s.SelectedIndex)
}

func TestStateRecentRingMovesRepeatsToFront(t *testing.T) {
	s := newState("")

	s.AddRecentColor("#111111")
	s.AddRecentColor("#222222")
	s.AddRecentColor("#111111")

	assert.Equal(t, []string{"#111111", "#222222"}, s.RecentColors)
}

func TestStateRecentRingCaps(t *testing.T) {
	s := newState("")
	for i := 0; i < 12; i++ {
		s.AddRecentColor(fmt.Sprintf("#%06x", i))
	}

	assert.Len(t, s.RecentColors, maxRecentColors)
	assert.Equal(t, fmt.Sprintf("#%06x", 11), s.RecentColors[0])
}

func TestStateRefreshPicksUpExternalWrite(t *testing.T) {
	dir := t.TempDir()

	first := loadStateFrom(dir)
	second := loadStateFrom(dir)

	second.LastColor = "#123456"
	require.NoError(t, SaveState(second))

	require.NoError(t, first.RefreshState())
	assert.Equal(t, "#123456", first.LastColor)
}

func TestStateSaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, SaveState(loadStateFrom(dir)))

	_, err := os.Stat(filepath.Join(dir, StateFileName+".tmp"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, StateFileName))
	assert.NoError(t, err)
}

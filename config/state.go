package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"spritepad/log"
)

const (
	StateFileName = "state.json"
	// LockFileName is the name of the lock file
	LockFileName = "state.lock"
	// DefaultLockTimeout is the default timeout for acquiring locks
	DefaultLockTimeout = 5 * time.Second
)

// maxRecentColors caps the paste ring.
const maxRecentColors = 8

// State is the workbench state that persists between sessions. Unlike
// Config it is written by the application, not edited by the user.
type State struct {
	// LastColor is the color active at exit, as "#rrggbb".
	LastColor string `json:"last_color"`
	// ActiveModel is the selector tab at exit: rgb, hsv, gray or mask.
	ActiveModel string `json:"active_model"`
	// PaletteLocked records the palette lock position.
	PaletteLocked bool `json:"palette_locked"`
	// SelectedIndex is the palette entry selected at exit, -1 for none.
	SelectedIndex int `json:"selected_index"`
	// RecentColors is the ring of recently copied colors, newest first.
	RecentColors []string `json:"recent_colors"`
	// HelpSeen records that the help screen has been shown at least once.
	HelpSeen bool `json:"help_seen"`

	// Lock file for coordinating state access across processes
	lockFile    *flock.Flock  `json:"-"`
	lockTimeout time.Duration `json:"-"`
	dir         string        `json:"-"`
}

// DefaultState returns the default state.
func DefaultState() *State {
	configDir, err := GetConfigDir()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		// Return a minimal state without locking if we can't get the config dir.
		return newState("")
	}
	return newState(configDir)
}

func newState(dir string) *State {
	s := &State{
		LastColor:     "#000000",
		ActiveModel:   "rgb",
		PaletteLocked: true,
		SelectedIndex: -1,
		RecentColors:  []string{},
		dir:           dir,
	}
	if dir != "" {
		s.lockFile = flock.New(filepath.Join(dir, LockFileName))
		s.lockTimeout = DefaultLockTimeout
	}
	return s
}

// LoadState loads the state from disk with locking. If it cannot be done,
// we return the default state.
func LoadState() *State {
	state := DefaultState()
	if err := state.loadFromDisk(); err != nil {
		log.WarningLog.Printf("failed to load state from disk: %v", err)
	}
	return state
}

// loadStateFrom loads state rooted at dir, for tests.
func loadStateFrom(dir string) *State {
	state := newState(dir)
	if err := state.loadFromDisk(); err != nil {
		log.WarningLog.Printf("failed to load state from disk: %v", err)
	}
	return state
}

// loadFromDisk loads state from disk with a shared read lock.
func (s *State) loadFromDisk() error {
	if s.lockFile == nil {
		log.WarningLog.Printf("lock file not initialized, loading state without locking")
		return s.loadFromDiskWithoutLocking()
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.lockTimeout)
	defer cancel()

	locked, err := s.lockFile.TryRLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to acquire read lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("could not acquire read lock within timeout")
	}
	defer s.lockFile.Unlock()

	return s.loadFromDiskWithoutLocking()
}

func (s *State) loadFromDiskWithoutLocking() error {
	if s.dir == "" {
		return fmt.Errorf("no state directory")
	}

	data, err := os.ReadFile(filepath.Join(s.dir, StateFileName))
	if err != nil {
		if os.IsNotExist(err) {
			// First run, keep the defaults.
			return nil
		}
		return fmt.Errorf("failed to read state file: %w", err)
	}

	var newState State
	if err := json.Unmarshal(data, &newState); err != nil {
		return fmt.Errorf("failed to parse state file: %w", err)
	}

	// Adopt the value fields but keep the lock file and timeout.
	s.LastColor = newState.LastColor
	s.ActiveModel = newState.ActiveModel
	s.PaletteLocked = newState.PaletteLocked
	s.SelectedIndex = newState.SelectedIndex
	s.RecentColors = newState.RecentColors
	s.HelpSeen = newState.HelpSeen
	s.sanitize()

	return nil
}

// sanitize repairs values a stray editor or older version may have left.
func (s *State) sanitize() {
	if s.LastColor == "" {
		s.LastColor = "#000000"
	}
	if s.ActiveModel == "" {
		s.ActiveModel = "rgb"
	}
	if s.SelectedIndex < -1 {
		s.SelectedIndex = -1
	}
	if s.RecentColors == nil {
		s.RecentColors = []string{}
	}
	if len(s.RecentColors) > maxRecentColors {
		s.RecentColors = s.RecentColors[:maxRecentColors]
	}
}

// SaveState saves the state to disk with locking.
func SaveState(state *State) error {
	return state.saveToDisk()
}

// saveToDisk saves state to disk with an exclusive write lock.
func (s *State) saveToDisk() error {
	if s.lockFile == nil {
		log.WarningLog.Printf("lock file not initialized, saving state without locking")
		return s.saveToDiskWithoutLocking()
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.lockTimeout)
	defer cancel()

	locked, err := s.lockFile.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to acquire write lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("could not acquire write lock within timeout")
	}
	defer s.lockFile.Unlock()

	return s.saveToDiskWithoutLocking()
}

func (s *State) saveToDiskWithoutLocking() error {
	if s.dir == "" {
		return fmt.Errorf("no state directory")
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	// Write to a temporary file first to ensure atomicity.
	statePath := filepath.Join(s.dir, StateFileName)
	tmpPath := statePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary state file: %w", err)
	}
	if err := os.Rename(tmpPath, statePath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to atomically update state file: %w", err)
	}
	return nil
}

// AddRecentColor pushes hex onto the recent-color ring, newest first.
// Re-copying a color moves it to the front instead of duplicating it.
func (s *State) AddRecentColor(hex string) {
	out := make([]string, 0, maxRecentColors)
	out = append(out, hex)
	for _, c := range s.RecentColors {
		if c == hex {
			continue
		}
		out = append(out, c)
		if len(out) == maxRecentColors {
			break
		}
	}
	s.RecentColors = out
}

// RefreshState reloads state from disk to pick up changes made by another
// process.
func (s *State) RefreshState() error {
	return s.loadFromDisk()
}

// Close releases any locks held by this state.
func (s *State) Close() error {
	if s.lockFile != nil {
		return s.lockFile.Unlock()
	}
	return nil
}

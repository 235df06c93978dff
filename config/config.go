package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"spritepad/log"
)

const ConfigFileName = "config.json"

// Defaults applied to missing or out-of-range config values.
const (
	DefaultTooltipDelayMS  = 300
	DefaultTooltipMaxWidth = 40
	minTooltipMaxWidth     = 10
)

// Config holds the user-editable settings. State the application writes
// on its own lives in State instead.
type Config struct {
	// TooltipDelayMS is the hover delay before a tooltip opens.
	TooltipDelayMS int `json:"tooltip_delay_ms"`
	// TooltipMaxWidth is the wrap width for tooltip text, in cells.
	TooltipMaxWidth int `json:"tooltip_max_width"`
	// TooltipsEnabled toggles hover tooltips globally.
	TooltipsEnabled bool `json:"tooltips_enabled"`
	// Theme forces the color theme: auto, dark, light or mono.
	Theme string `json:"theme"`
	// Keys maps command names to chord specs like "<Ctrl+Q>". A listed
	// command replaces its default accelerator; an empty list unbinds it.
	Keys map[string][]string `json:"keys"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		TooltipDelayMS:  DefaultTooltipDelayMS,
		TooltipMaxWidth: DefaultTooltipMaxWidth,
		TooltipsEnabled: true,
		Theme:           "auto",
		Keys:            map[string][]string{},
	}
}

// TooltipDelay returns the hover delay as a duration.
func (c *Config) TooltipDelay() time.Duration {
	return time.Duration(c.TooltipDelayMS) * time.Millisecond
}

// normalize pulls out-of-range values back to their defaults so a hand
// edited config cannot wedge the UI.
func (c *Config) normalize() {
	if c.TooltipDelayMS <= 0 {
		c.TooltipDelayMS = DefaultTooltipDelayMS
	}
	if c.TooltipMaxWidth < minTooltipMaxWidth {
		c.TooltipMaxWidth = DefaultTooltipMaxWidth
	}
	if c.Theme == "" {
		c.Theme = "auto"
	}
	if c.Keys == nil {
		c.Keys = map[string][]string{}
	}
}

// GetConfigDir returns the path to the application's configuration directory
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config home directory: %w", err)
	}
	return filepath.Join(homeDir, ".spritepad"), nil
}

// GetConfigPath returns the full path of the config file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, ConfigFileName), nil
}

// LoadConfig loads the configuration, creating the file with defaults on
// first run. Errors degrade to defaults; the app must come up regardless.
func LoadConfig() *Config {
	configPath, err := GetConfigPath()
	if err != nil {
		log.ErrorLog.Printf("failed to get config path: %v", err)
		return DefaultConfig()
	}
	return loadConfig(configPath)
}

func loadConfig(configPath string) *Config {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			defaultCfg := DefaultConfig()
			if saveErr := saveConfig(configPath, defaultCfg); saveErr != nil {
				log.WarningLog.Printf("failed to save default config: %v", saveErr)
			}
			return defaultCfg
		}
		log.WarningLog.Printf("failed to read config file: %v", err)
		return DefaultConfig()
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		log.ErrorLog.Printf("failed to parse config file: %v", err)
		return DefaultConfig()
	}
	cfg.normalize()
	return cfg
}

// SaveConfig writes the configuration to disk.
func SaveConfig(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	return saveConfig(configPath, cfg)
}

// saveConfig writes through a temporary file and renames it into place,
// so watchers and concurrent readers never see a half-written file.
func saveConfig(configPath string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tmpPath := configPath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary config file: %w", err)
	}
	if err := os.Rename(tmpPath, configPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to atomically update config file: %w", err)
	}
	return nil
}

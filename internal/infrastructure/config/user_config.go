package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// UserConfig holds per-user planning preferences from ~/.aeroroute/config.json.
// Nothing secret belongs here.
type UserConfig struct {
	// Used by `plan` when --aircraft is omitted
	DefaultAircraft string `json:"default_aircraft,omitempty"`

	// Used by `plan` when --mode is omitted
	DefaultMode string `json:"default_mode,omitempty"`
}

// UserConfigHandler reads and writes the preferences file
type UserConfigHandler struct {
	path string
}

// NewUserConfigHandler uses ~/.aeroroute
func NewUserConfigHandler() (*UserConfigHandler, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return NewUserConfigHandlerAt(filepath.Join(home, ".aeroroute"))
}

// NewUserConfigHandlerAt keeps config.json under dir, creating dir if needed
func NewUserConfigHandlerAt(dir string) (*UserConfigHandler, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}
	return &UserConfigHandler{path: filepath.Join(dir, "config.json")}, nil
}

// Load returns the stored preferences; no file means no preferences
func (h *UserConfigHandler) Load() (*UserConfig, error) {
	var uc UserConfig
	data, err := os.ReadFile(h.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &uc, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read user config: %w", err)
	}
	if err := json.Unmarshal(data, &uc); err != nil {
		return nil, fmt.Errorf("failed to parse user config %s: %w", h.path, err)
	}
	return &uc, nil
}

// Save replaces the file atomically so a crash never leaves half a document
func (h *UserConfigHandler) Save(uc *UserConfig) error {
	data, err := json.MarshalIndent(uc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user config: %w", err)
	}
	tmp := h.path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write user config: %w", err)
	}
	if err := os.Rename(tmp, h.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write user config: %w", err)
	}
	return nil
}

// SetDefaults overwrites only the non-empty arguments
func (h *UserConfigHandler) SetDefaults(aircraftID, mode string) error {
	return h.update(func(uc *UserConfig) {
		if aircraftID != "" {
			uc.DefaultAircraft = aircraftID
		}
		if mode != "" {
			uc.DefaultMode = mode
		}
	})
}

func (h *UserConfigHandler) ClearDefaults() error {
	return h.Save(&UserConfig{})
}

func (h *UserConfigHandler) update(fn func(*UserConfig)) error {
	uc, err := h.Load()
	if err != nil {
		return err
	}
	fn(uc)
	return h.Save(uc)
}

func (h *UserConfigHandler) GetConfigPath() string {
	return h.path
}

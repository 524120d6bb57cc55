package config

import (
	"time"

	"github.com/marcus/refile/internal/format"
)

// Config is the root configuration structure.
type Config struct {
	Vault      VaultConfig      `json:"vault"`
	Send       SendConfig       `json:"send"`
	Formatting FormattingConfig `json:"formatting"`
	Keymap     KeymapConfig     `json:"keymap"`
	UI         UIConfig         `json:"ui"`
}

// VaultConfig configures the note vault.
type VaultConfig struct {
	Root           string `json:"root"`           // vault root directory (supports ~ expansion)
	DefaultTarget  string `json:"defaultTarget"`  // relative path of the default destination note
	DefaultHeading string `json:"defaultHeading"` // heading name used when none is picked
}

// SendConfig configures send behavior.
type SendConfig struct {
	Mode string `json:"mode"` // "copy" or "move"
}

// FormattingConfig configures source-context formatting of sent text.
type FormattingConfig struct {
	Enabled   bool             `json:"enabled"`
	Templates format.Templates `json:"templates"`
}

// KeymapConfig holds key binding overrides.
type KeymapConfig struct {
	Overrides map[string]string `json:"overrides"`
}

// UIConfig configures UI appearance.
type UIConfig struct {
	ShowFooter    bool          `json:"showFooter"`
	ShowBar       bool          `json:"showBar"`       // show the floating bar on startup
	MouseEnabled  bool          `json:"mouseEnabled"`  // enable mouse capture
	ToastDuration time.Duration `json:"toastDuration"` // how long toasts stay visible
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Vault: VaultConfig{
			Root:           "~/notes",
			DefaultTarget:  "inbox.md",
			DefaultHeading: "Inbox",
		},
		Send: SendConfig{
			Mode: "copy",
		},
		Formatting: FormattingConfig{
			Enabled:   true,
			Templates: format.DefaultTemplates(),
		},
		Keymap: KeymapConfig{
			Overrides: make(map[string]string),
		},
		UI: UIConfig{
			ShowFooter:    true,
			ShowBar:       true,
			MouseEnabled:  true,
			ToastDuration: 2 * time.Second,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Send.Mode != "copy" && c.Send.Mode != "move" {
		c.Send.Mode = "copy"
	}
	if c.UI.ToastDuration <= 0 {
		c.UI.ToastDuration = 2 * time.Second
	}
	return nil
}

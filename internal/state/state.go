// Package state persists session preferences across runs.
package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// State holds persistent user preferences.
type State struct {
	ShowBar  bool `json:"showBar"`        // floating bar visibility
	BarX     int  `json:"barX,omitempty"` // bar position, columns from the left
	BarY     int  `json:"barY,omitempty"` // bar position, rows from the top
	CopyMode bool `json:"copyMode"`       // true = copy, false = move

	// Target lock: when LockedTarget is non-empty, sends go there
	// regardless of which note is active.
	LockedTarget  string `json:"lockedTarget,omitempty"`  // vault-relative path
	TargetHeading string `json:"targetHeading,omitempty"` // heading name within the target
}

var (
	current *State
	mu      sync.RWMutex
	path    string
	loaded  bool // true when a state file was actually read
)

// Init loads state from the default location.
func Init() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	return InitWithDir(filepath.Join(home, ".config", "refile"))
}

// InitWithDir loads state from a specified directory.
// This is primarily for testing to avoid reading real user state.
func InitWithDir(dir string) error {
	path = filepath.Join(dir, "state.json")
	return Load()
}

// Load reads state from disk.
func Load() error {
	mu.Lock()
	defer mu.Unlock()

	current = &State{
		ShowBar:  true, // default
		CopyMode: true,
	}

	loaded = false
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil // no state file yet, use defaults
	}
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, current); err != nil {
		return err
	}
	loaded = true
	return nil
}

// Loaded reports whether a state file existed at Init time. Callers use
// this to tell persisted preferences apart from built-in defaults.
func Loaded() bool {
	mu.RLock()
	defer mu.RUnlock()
	return loaded
}

// Save writes state to disk.
func Save() error {
	mu.RLock()
	defer mu.RUnlock()

	if current == nil {
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetShowBar returns whether the floating bar is visible.
func GetShowBar() bool {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return true
	}
	return current.ShowBar
}

// SetShowBar saves the floating bar visibility.
func SetShowBar(show bool) error {
	mu.Lock()
	if current == nil {
		current = &State{}
	}
	current.ShowBar = show
	mu.Unlock()
	return Save()
}

// GetBarPos returns the saved bar position.
// Returns (0, 0) if no position is saved (use default placement).
func GetBarPos() (x, y int) {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return 0, 0
	}
	return current.BarX, current.BarY
}

// SetBarPos saves the bar position.
func SetBarPos(x, y int) error {
	mu.Lock()
	if current == nil {
		current = &State{}
	}
	current.BarX = x
	current.BarY = y
	mu.Unlock()
	return Save()
}

// GetCopyMode returns whether sends copy rather than move.
func GetCopyMode() bool {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return true
	}
	return current.CopyMode
}

// SetCopyMode saves the copy/move preference.
func SetCopyMode(copy bool) error {
	mu.Lock()
	if current == nil {
		current = &State{}
	}
	current.CopyMode = copy
	mu.Unlock()
	return Save()
}

// GetLockedTarget returns the locked target path, or "" when unlocked.
func GetLockedTarget() string {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return ""
	}
	return current.LockedTarget
}

// SetLockedTarget saves the locked target path. Empty unlocks.
func SetLockedTarget(rel string) error {
	mu.Lock()
	if current == nil {
		current = &State{}
	}
	current.LockedTarget = rel
	mu.Unlock()
	return Save()
}

// GetTargetHeading returns the saved target heading name.
func GetTargetHeading() string {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return ""
	}
	return current.TargetHeading
}

// SetTargetHeading saves the target heading name.
func SetTargetHeading(name string) error {
	mu.Lock()
	if current == nil {
		current = &State{}
	}
	current.TargetHeading = name
	mu.Unlock()
	return Save()
}

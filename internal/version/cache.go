package version

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// cacheTTL is how long a successful check result stays fresh.
const cacheTTL = 24 * time.Hour

// testCacheDir overrides the cache location in tests.
var testCacheDir string

// CacheEntry is one persisted update-check result.
type CacheEntry struct {
	LatestVersion  string    `json:"latestVersion"`
	CurrentVersion string    `json:"currentVersion"`
	CheckedAt      time.Time `json:"checkedAt"`
	HasUpdate      bool      `json:"hasUpdate"`
}

// SetTestCacheDir redirects the cache to dir. Call ResetTestCacheDir when done.
func SetTestCacheDir(dir string) { testCacheDir = dir }

// ResetTestCacheDir restores the default cache location.
func ResetTestCacheDir() { testCacheDir = "" }

func cachePath() (string, error) {
	if testCacheDir != "" {
		return filepath.Join(testCacheDir, "update-check.json"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "refile", "update-check.json"), nil
}

// LoadCache reads the persisted check result.
func LoadCache() (*CacheEntry, error) {
	path, err := cachePath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entry CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// SaveCache persists a check result.
func SaveCache(entry *CacheEntry) error {
	path, err := cachePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// IsCacheValid reports whether a cached result still applies: fresh enough
// and recorded against the same running version.
func IsCacheValid(entry *CacheEntry, currentVersion string) bool {
	if entry == nil {
		return false
	}
	if entry.CurrentVersion != currentVersion {
		return false
	}
	return time.Since(entry.CheckedAt) < cacheTTL
}

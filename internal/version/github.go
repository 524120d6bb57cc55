package version

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// releasesURL points at the GitHub "latest release" endpoint. A var so
// tests can point it at a local server.
var releasesURL = "https://api.github.com/repos/marcus/refile/releases/latest"

const checkTimeout = 5 * time.Second

// Release is the subset of the GitHub release payload we read.
type Release struct {
	TagName     string    `json:"tag_name"`
	Body        string    `json:"body"`
	HTMLURL     string    `json:"html_url"`
	PublishedAt time.Time `json:"published_at"`
}

// CheckResult is the outcome of one update check.
type CheckResult struct {
	CurrentVersion string
	LatestVersion  string
	UpdateURL      string
	ReleaseNotes   string
	HasUpdate      bool
	Error          error
}

// isDevVersion reports whether the running build has no release identity,
// in which case update checks are skipped entirely.
func isDevVersion(v string) bool {
	return v == "" || v == "unknown" || strings.HasPrefix(v, "devel")
}

// Check fetches the latest release and compares it against currentVersion.
// Development builds never report an update and never hit the network.
func Check(currentVersion string) CheckResult {
	result := CheckResult{CurrentVersion: currentVersion}
	if isDevVersion(currentVersion) {
		return result
	}

	client := &http.Client{Timeout: checkTimeout}
	resp, err := client.Get(releasesURL)
	if err != nil {
		result.Error = fmt.Errorf("fetch latest release: %w", err)
		return result
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		result.Error = fmt.Errorf("fetch latest release: status %d", resp.StatusCode)
		return result
	}

	var rel Release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		result.Error = fmt.Errorf("decode release: %w", err)
		return result
	}

	result.LatestVersion = rel.TagName
	result.UpdateURL = rel.HTMLURL
	result.ReleaseNotes = rel.Body
	result.HasUpdate = rel.TagName != "" &&
		strings.TrimPrefix(rel.TagName, "v") != strings.TrimPrefix(currentVersion, "v")
	return result
}

package version

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestUpdateCommand(t *testing.T) {
	tests := []struct {
		name     string
		version  string
		method   InstallMethod
		contains []string
	}{
		{
			name:     "go install",
			version:  "v1.0.0",
			method:   InstallMethodGo,
			contains: []string{"go install", "v1.0.0", "github.com/marcus/refile"},
		},
		{
			name:     "go install with ldflags",
			version:  "v2.1.3",
			method:   InstallMethodGo,
			contains: []string{"-ldflags", "v2.1.3"},
		},
		{
			name:     "homebrew",
			version:  "v1.0.0",
			method:   InstallMethodHomebrew,
			contains: []string{"brew upgrade refile"},
		},
		{
			name:     "binary download",
			version:  "v1.0.0",
			method:   InstallMethodBinary,
			contains: []string{"https://github.com/marcus/refile/releases/tag/v1.0.0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := updateCommand(tt.version, tt.method)
			for _, want := range tt.contains {
				if !strings.Contains(cmd, want) {
					t.Errorf("updateCommand(%q, %q) = %q, want to contain %q", tt.version, tt.method, cmd, want)
				}
			}
		})
	}
}

func TestCheck_DevelopmentVersion(t *testing.T) {
	// Development versions should return empty result without making HTTP calls
	devVersions := []string{"", "unknown", "devel", "devel+abc123"}

	for _, v := range devVersions {
		t.Run(v, func(t *testing.T) {
			result := Check(v)
			if result.HasUpdate {
				t.Errorf("Check(%q) should not have update for dev version", v)
			}
			if result.Error != nil {
				t.Errorf("Check(%q) should not error for dev version: %v", v, result.Error)
			}
		})
	}
}

func withReleaseServer(t *testing.T, status int, body string) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	old := releasesURL
	releasesURL = server.URL
	t.Cleanup(func() { releasesURL = old })
}

func TestCheck_APIErrors(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		wantErr    bool
	}{
		{
			name:       "404 not found",
			statusCode: http.StatusNotFound,
			body:       `{"message": "Not Found"}`,
			wantErr:    true,
		},
		{
			name:       "429 rate limited",
			statusCode: http.StatusTooManyRequests,
			body:       `{"message": "rate limit exceeded"}`,
			wantErr:    true,
		},
		{
			name:       "500 server error",
			statusCode: http.StatusInternalServerError,
			body:       `{"message": "Internal Server Error"}`,
			wantErr:    true,
		},
		{
			name:       "200 success",
			statusCode: http.StatusOK,
			body:       `{"tag_name": "v1.0.0", "html_url": "https://github.com/marcus/refile/releases/tag/v1.0.0"}`,
			wantErr:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withReleaseServer(t, tt.statusCode, tt.body)

			result := Check("v0.9.0")
			if (result.Error != nil) != tt.wantErr {
				t.Errorf("Check error = %v, wantErr %v", result.Error, tt.wantErr)
			}
		})
	}
}

func TestCheck_InvalidJSON(t *testing.T) {
	withReleaseServer(t, http.StatusOK, `{invalid json`)

	result := Check("v0.9.0")
	if result.Error == nil {
		t.Error("Check should fail on malformed JSON")
	}
}

func TestCheck_UpdateDetection(t *testing.T) {
	tests := []struct {
		name       string
		current    string
		latestTag  string
		wantUpdate bool
	}{
		{"newer release", "v1.0.0", "v1.1.0", true},
		{"same release", "v1.1.0", "v1.1.0", false},
		{"same release without v prefix", "1.1.0", "v1.1.0", false},
		{"empty tag", "v1.0.0", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withReleaseServer(t, http.StatusOK,
				`{"tag_name": "`+tt.latestTag+`", "html_url": "https://example.com"}`)

			result := Check(tt.current)
			if result.Error != nil {
				t.Fatalf("unexpected error: %v", result.Error)
			}
			if result.HasUpdate != tt.wantUpdate {
				t.Errorf("HasUpdate = %v, want %v", result.HasUpdate, tt.wantUpdate)
			}
		})
	}
}

func TestCacheRoundTrip(t *testing.T) {
	SetTestCacheDir(t.TempDir())
	defer ResetTestCacheDir()

	entry := &CacheEntry{
		LatestVersion:  "v1.2.0",
		CurrentVersion: "v1.0.0",
		CheckedAt:      time.Now(),
		HasUpdate:      true,
	}
	if err := SaveCache(entry); err != nil {
		t.Fatalf("SaveCache failed: %v", err)
	}

	loaded, err := LoadCache()
	if err != nil {
		t.Fatalf("LoadCache failed: %v", err)
	}
	if loaded.LatestVersion != "v1.2.0" || !loaded.HasUpdate {
		t.Errorf("loaded entry = %+v", loaded)
	}
}

func TestIsCacheValid(t *testing.T) {
	fresh := &CacheEntry{CurrentVersion: "v1.0.0", CheckedAt: time.Now()}
	stale := &CacheEntry{CurrentVersion: "v1.0.0", CheckedAt: time.Now().Add(-25 * time.Hour)}

	if !IsCacheValid(fresh, "v1.0.0") {
		t.Error("fresh entry for the same version should be valid")
	}
	if IsCacheValid(fresh, "v1.1.0") {
		t.Error("entry recorded against a different version should be invalid")
	}
	if IsCacheValid(stale, "v1.0.0") {
		t.Error("entry past the TTL should be invalid")
	}
	if IsCacheValid(nil, "v1.0.0") {
		t.Error("nil entry should be invalid")
	}
}

package version

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// UpdateAvailableMsg is sent when a newer refile release exists.
type UpdateAvailableMsg struct {
	CurrentVersion string
	LatestVersion  string
	UpdateCommand  string
	ReleaseNotes   string
	ReleaseURL     string
	InstallMethod  InstallMethod
}

// updateCommand generates the update command based on install method.
func updateCommand(version string, method InstallMethod) string {
	switch method {
	case InstallMethodHomebrew:
		return "brew upgrade refile"
	case InstallMethodBinary:
		return fmt.Sprintf("https://github.com/marcus/refile/releases/tag/%s", version)
	default:
		return fmt.Sprintf(
			"go install -ldflags \"-X main.Version=%s\" github.com/marcus/refile/cmd/refile@%s",
			version, version,
		)
	}
}

// CheckAsync returns a Bubble Tea command that checks for updates in the
// background, consulting the on-disk cache first.
func CheckAsync(currentVersion string) tea.Cmd {
	return func() tea.Msg {
		method := DetectInstallMethod()

		if cached, err := LoadCache(); err == nil && IsCacheValid(cached, currentVersion) {
			if cached.HasUpdate {
				return UpdateAvailableMsg{
					CurrentVersion: currentVersion,
					LatestVersion:  cached.LatestVersion,
					UpdateCommand:  updateCommand(cached.LatestVersion, method),
					InstallMethod:  method,
				}
			}
			return nil
		}

		result := Check(currentVersion)

		// Only cache successful checks, so network blips retry next launch.
		if result.Error == nil {
			_ = SaveCache(&CacheEntry{
				LatestVersion:  result.LatestVersion,
				CurrentVersion: currentVersion,
				CheckedAt:      time.Now(),
				HasUpdate:      result.HasUpdate,
			})
		}

		if result.HasUpdate {
			return UpdateAvailableMsg{
				CurrentVersion: currentVersion,
				LatestVersion:  result.LatestVersion,
				UpdateCommand:  updateCommand(result.LatestVersion, method),
				ReleaseNotes:   result.ReleaseNotes,
				ReleaseURL:     result.UpdateURL,
				InstallMethod:  method,
			}
		}
		return nil
	}
}

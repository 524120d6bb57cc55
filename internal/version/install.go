package version

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

// InstallMethod represents how refile was installed.
type InstallMethod string

const (
	InstallMethodHomebrew InstallMethod = "homebrew"
	InstallMethodGo       InstallMethod = "go"
	InstallMethodBinary   InstallMethod = "binary"
)

// detectors run in order; the first probe that claims the install wins.
// Binary is the fallback when none do.
var detectors = []struct {
	method InstallMethod
	probe  func() bool
}{
	{InstallMethodHomebrew, brewOwnsInstall},
	{InstallMethodGo, runningFromGoBin},
}

var (
	detectedMethod     InstallMethod
	detectedMethodOnce sync.Once
)

// DetectInstallMethod determines how refile was installed. The result is
// cached for the lifetime of the process.
func DetectInstallMethod() InstallMethod {
	detectedMethodOnce.Do(func() {
		detectedMethod = detectInstallMethod()
	})
	return detectedMethod
}

func detectInstallMethod() InstallMethod {
	for _, d := range detectors {
		if d.probe() {
			return d.method
		}
	}
	return InstallMethodBinary
}

func brewOwnsInstall() bool {
	if runtime.GOOS != "darwin" && runtime.GOOS != "linux" {
		return false
	}
	out, err := exec.Command("brew", "list", "--formula", "marcus/tap/refile").CombinedOutput()
	return err == nil && len(bytes.TrimSpace(out)) > 0
}

func runningFromGoBin() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return inGoBin(exe, goBinDirs())
}

// goBinDirs lists the directories `go install` may place binaries in.
func goBinDirs() []string {
	var dirs []string
	if gobin := os.Getenv("GOBIN"); gobin != "" {
		dirs = append(dirs, gobin)
	}
	if gopath := os.Getenv("GOPATH"); gopath != "" {
		dirs = append(dirs, filepath.Join(gopath, "bin"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, "go", "bin"))
	}
	return dirs
}

func inGoBin(exe string, dirs []string) bool {
	dir := filepath.Dir(exe)
	for _, d := range dirs {
		if dir == d {
			return true
		}
	}
	sep := string(filepath.Separator)
	return strings.Contains(exe, sep+filepath.Join("go", "bin")+sep)
}

package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/refile/internal/app"
	"github.com/marcus/refile/internal/config"
	"github.com/marcus/refile/internal/keymap"
	"github.com/marcus/refile/internal/send"
	"github.com/marcus/refile/internal/state"
	"github.com/marcus/refile/internal/vault"
)

// Version is set at build time via ldflags
var Version = ""

var (
	configPath   = flag.String("config", "", "path to config file")
	vaultRoot    = flag.String("vault", "", "vault root directory (overrides config)")
	debugFlag    = flag.Bool("debug", false, "enable debug logging")
	versionFlag  = flag.Bool("version", false, "print version and exit")
	shortVersion = flag.Bool("v", false, "print version and exit (short)")
)

func main() {
	flag.Parse()

	// Handle version flag
	if *versionFlag || *shortVersion {
		fmt.Printf("refile version %s\n", effectiveVersion(Version))
		os.Exit(0)
	}

	// Setup logging
	logLevel := slog.LevelInfo
	if *debugFlag {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *vaultRoot != "" {
		cfg.Vault.Root = config.ExpandPath(*vaultRoot)
	}

	// Load persistent state (ignore errors - state is optional)
	_ = state.Init()

	// Open the vault
	store, err := vault.NewStore(cfg.Vault.Root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open vault %s: %v\n", cfg.Vault.Root, err)
		os.Exit(1)
	}

	// Watch the vault for outside edits
	events, stopWatch, err := vault.Watch(store.Root())
	if err != nil {
		logger.Warn("vault watch unavailable", "err", err)
		events = nil
	} else {
		defer stopWatch()
	}

	// Key bindings with user overrides
	km := keymap.NewRegistry()
	keymap.RegisterDefaults(km)
	for key, cmdID := range cfg.Keymap.Overrides {
		km.SetUserOverride(key, cmdID)
	}

	svc := send.NewService(store, cfg.Formatting.Templates, cfg.Formatting.Enabled)

	// Optional positional arg: vault-relative note to open
	initialPath := flag.Arg(0)

	model := app.New(store, svc, km, cfg, events, initialPath).
		WithVersion(effectiveVersion(Version))
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.MouseEnabled {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(model, opts...)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// effectiveVersion returns the version string, with fallback to build info.
func effectiveVersion(v string) string {
	if v != "" {
		return v
	}

	// Try to get version from Go build info
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	// Check module version
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	// Fall back to VCS info
	var revision string
	var dirty bool

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}

	if revision != "" {
		ver := "devel+" + revision
		if len(ver) > 20 {
			ver = ver[:20]
		}
		if dirty {
			ver += "+dirty"
		}
		return ver
	}

	return "devel"
}

func init() {
	// Customize usage output
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: refile [options] [note.md]\n\n")
		fmt.Fprintf(os.Stderr, "A TUI for refiling notes under markdown headings.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
}

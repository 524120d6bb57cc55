package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/refile/internal/msg"
	"github.com/marcus/refile/internal/vault"
)

// Message types for tea.Cmd
type (
	// TickMsg is sent on each clock tick.
	TickMsg time.Time

	// ErrorMsg represents an error condition.
	ErrorMsg struct {
		Err error
	}

	// DocLoadedMsg carries a freshly read document.
	DocLoadedMsg struct {
		RelPath string
		Doc     vault.Doc
	}

	// SendDoneMsg reports a completed send for toast display.
	SendDoneMsg struct {
		Target  string // vault-relative target path
		Heading string
		Moved   bool
	}

	// HeadingsLoadedMsg carries the target outline for the heading picker.
	HeadingsLoadedMsg struct {
		Target string
		Names  []string
	}

	// FilesLoadedMsg carries the vault listing for the file picker.
	FilesLoadedMsg struct {
		Files   []string
		Locking bool
	}

	// PreviewLoadedMsg carries rendered preview content.
	PreviewLoadedMsg struct {
		Title string
		Lines []string
	}
)

// tickCmd returns a command that ticks every second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// ReportError returns a command to report an error.
func ReportError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Err: err}
	}
}

// loadDocument reads a document from the vault.
func (m Model) loadDocument(rel string) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		doc, err := store.Read(rel)
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("open %s: %w", rel, err)}
		}
		return DocLoadedMsg{RelPath: rel, Doc: doc}
	}
}

// loadHeadings reads the target document and extracts its outline.
func (m Model) loadHeadings(target string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		names, err := svc.TargetHeadings(target)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return HeadingsLoadedMsg{Target: target, Names: names}
	}
}

// loadFiles lists the vault's markdown documents.
func (m Model) loadFiles(locking bool) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		files, err := store.List()
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("list vault: %w", err)}
		}
		return FilesLoadedMsg{Files: files, Locking: locking}
	}
}

// waitForVaultEvent blocks on the watcher channel and resurfaces changes
// as messages. Re-issued after each delivery.
func waitForVaultEvent(events <-chan vault.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return msg.DocChangedMsg{Path: ev.Path}
	}
}

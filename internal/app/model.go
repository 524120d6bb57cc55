// Package app holds the root Bubble Tea model for refile.
package app

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/refile/internal/buffer"
	"github.com/marcus/refile/internal/config"
	"github.com/marcus/refile/internal/keymap"
	"github.com/marcus/refile/internal/mouse"
	"github.com/marcus/refile/internal/note"
	"github.com/marcus/refile/internal/send"
	"github.com/marcus/refile/internal/state"
	"github.com/marcus/refile/internal/vault"
	"github.com/marcus/refile/internal/version"
)

// ModalKind identifies an app-level modal with explicit priority ordering.
// Lower values = higher priority (checked first for rendering and input routing).
type ModalKind int

const (
	ModalNone          ModalKind = iota // No modal open
	ModalHelp                           // Help overlay (highest priority)
	ModalPreview                        // Target document preview
	ModalHeadingPicker                  // Heading picker
	ModalFilePicker                     // Target file picker (lowest priority)
)

// activeModal returns the highest-priority open modal.
// This is the single source of truth for which modal is currently active.
func (m *Model) activeModal() ModalKind {
	switch {
	case m.showHelp:
		return ModalHelp
	case m.showPreview:
		return ModalPreview
	case m.showHeadingPicker:
		return ModalHeadingPicker
	case m.showFilePicker:
		return ModalFilePicker
	default:
		return ModalNone
	}
}

// hasModal returns true if any app-level modal is open.
func (m *Model) hasModal() bool {
	return m.activeModal() != ModalNone
}

// Model is the root Bubble Tea model for the refile application.
type Model struct {
	// Configuration
	cfg *config.Config

	// Keymap
	keymap *keymap.Registry

	// Vault and send service
	store *vault.Store
	svc   *send.Service

	// Active document
	relPath string // vault-relative path
	doc     vault.Doc
	buf     *buffer.Buffer
	outline note.Outline

	// Cursor and viewport
	cursor int
	scroll int

	// Visual line selection
	selecting bool
	selStart  int

	// Target
	lockedTarget  string // vault-relative, "" = follow active document
	targetHeading string
	copyMode      bool

	// Floating bar
	showBar  bool
	barX     int
	barY     int
	barHover string // hovered bar region id, "" = none

	// Bar position at drag start, anchor for drag deltas
	dragBarX int
	dragBarY int

	// Mouse
	mouse *mouse.Handler

	// Heading picker modal
	showHeadingPicker     bool
	headingPickerCursor   int
	headingPickerScroll   int
	headingPickerInput    textinput.Model
	headingPickerFiltered []string
	headingPickerAll      []string

	// File picker modal
	showFilePicker     bool
	filePickerCursor   int
	filePickerScroll   int
	filePickerInput    textinput.Model
	filePickerFiltered []string
	filePickerAll      []string
	filePickerLocking  bool // true when the pick also locks the target

	// Target preview modal
	showPreview   bool
	previewTitle  string
	previewLines  []string
	previewScroll int

	// Help overlay
	showHelp bool

	// Vault change notifications
	watchEvents <-chan vault.Event

	// Running build version, "" disables the startup update check
	appVersion string

	// Status/toast messages
	statusMsg     string
	statusExpiry  time.Time
	statusIsError bool

	// UI state
	width, height int
	showFooter    bool
	ready         bool

	// Error handling
	lastError error
}

// New creates a new application model. initialPath optionally names the
// vault-relative document to open on startup (empty = config default).
func New(store *vault.Store, svc *send.Service, km *keymap.Registry, cfg *config.Config, watch <-chan vault.Event, initialPath string) Model {
	rel := initialPath
	if rel == "" {
		rel = cfg.Vault.DefaultTarget
	}

	heading := state.GetTargetHeading()
	if heading == "" {
		heading = cfg.Vault.DefaultHeading
	}

	barX, barY := state.GetBarPos()

	// Config names the default send mode; saved session state wins once
	// the user has toggled it.
	copyMode := cfg.Send.Mode != "move"
	if state.Loaded() {
		copyMode = state.GetCopyMode()
	}

	return Model{
		cfg:           cfg,
		keymap:        km,
		store:         store,
		svc:           svc,
		relPath:       rel,
		lockedTarget:  state.GetLockedTarget(),
		targetHeading: heading,
		copyMode:      copyMode,
		showBar:       state.GetShowBar() && cfg.UI.ShowBar,
		barX:          barX,
		barY:          barY,
		mouse:         mouse.NewHandler(),
		showFooter:    cfg.UI.ShowFooter,
		watchEvents:   watch,
	}
}

// WithVersion sets the running build version, enabling the background
// update check on startup.
func (m Model) WithVersion(v string) Model {
	m.appVersion = v
	return m
}

// Init initializes the model and returns initial commands.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(),
		m.loadDocument(m.relPath),
	}
	if m.watchEvents != nil {
		cmds = append(cmds, waitForVaultEvent(m.watchEvents))
	}
	if m.appVersion != "" {
		cmds = append(cmds, version.CheckAsync(m.appVersion))
	}
	return tea.Batch(cmds...)
}

// targetPath resolves where sends currently go: the locked target when
// set, otherwise the active document.
func (m *Model) targetPath() string {
	if m.lockedTarget != "" {
		return m.lockedTarget
	}
	return m.relPath
}

// sameDocTarget reports whether sends land in the active document.
func (m *Model) sameDocTarget() bool {
	return m.targetPath() == m.relPath
}

// selectionRange returns the inclusive selected line range in ascending
// order. Valid only while selecting.
func (m *Model) selectionRange() (start, end int) {
	if m.selStart <= m.cursor {
		return m.selStart, m.cursor
	}
	return m.cursor, m.selStart
}

// ShowToast displays a temporary status message.
func (m *Model) ShowToast(msg string, duration time.Duration, isError bool) {
	m.statusMsg = msg
	m.statusExpiry = time.Now().Add(duration)
	m.statusIsError = isError
}

// ClearToast clears any expired toast message.
func (m *Model) ClearToast() {
	if m.statusMsg != "" && time.Now().After(m.statusExpiry) {
		m.statusMsg = ""
		m.statusIsError = false
	}
}

// visibleLines returns how many document rows fit on screen.
func (m *Model) visibleLines() int {
	rows := m.height - 1 // header
	if m.showFooter {
		rows--
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

// clampCursor keeps the cursor inside the buffer and the viewport around it.
func (m *Model) clampCursor() {
	if m.buf == nil {
		m.cursor = 0
		m.scroll = 0
		return
	}
	max := m.buf.Len() - 1
	if max < 0 {
		max = 0
	}
	if m.cursor > max {
		m.cursor = max
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	visible := m.visibleLines()
	if m.cursor < m.scroll {
		m.scroll = m.cursor
	}
	if m.cursor >= m.scroll+visible {
		m.scroll = m.cursor - visible + 1
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

// resetHeadingPicker resets the heading picker modal state.
func (m *Model) resetHeadingPicker() {
	m.showHeadingPicker = false
	m.headingPickerCursor = 0
	m.headingPickerScroll = 0
	m.headingPickerFiltered = nil
	m.headingPickerAll = nil
}

// initHeadingPicker initializes the heading picker with the target
// document's outline.
func (m *Model) initHeadingPicker(names []string) {
	ti := textinput.New()
	ti.Placeholder = "Filter headings..."
	ti.Focus()
	ti.CharLimit = 80
	ti.Width = 40
	m.headingPickerInput = ti
	m.headingPickerAll = names
	m.headingPickerFiltered = names
	m.headingPickerCursor = 0
	m.headingPickerScroll = 0
	m.showHeadingPicker = true

	// Set cursor to current heading if present
	for i, name := range names {
		if name == m.targetHeading {
			m.headingPickerCursor = i
			break
		}
	}
}

// resetFilePicker resets the file picker modal state.
func (m *Model) resetFilePicker() {
	m.showFilePicker = false
	m.filePickerCursor = 0
	m.filePickerScroll = 0
	m.filePickerFiltered = nil
	m.filePickerAll = nil
	m.filePickerLocking = false
}

// initFilePicker initializes the target file picker with the vault listing.
func (m *Model) initFilePicker(files []string, locking bool) {
	ti := textinput.New()
	ti.Placeholder = "Filter notes..."
	ti.Focus()
	ti.CharLimit = 120
	ti.Width = 40
	m.filePickerInput = ti
	m.filePickerAll = files
	m.filePickerFiltered = files
	m.filePickerCursor = 0
	m.filePickerScroll = 0
	m.filePickerLocking = locking
	m.showFilePicker = true

	// Set cursor to the current target if listed
	for i, f := range files {
		if f == m.targetPath() {
			m.filePickerCursor = i
			break
		}
	}
}

// bufferFromDoc builds the editable line buffer for a loaded document.
func bufferFromDoc(doc vault.Doc) *buffer.Buffer {
	return buffer.FromText(doc.Text)
}

// filterItems filters picker items using a case-insensitive substring match.
func filterItems(all []string, query string) []string {
	if query == "" {
		return all
	}
	q := strings.ToLower(query)
	var matches []string
	for _, item := range all {
		if strings.Contains(strings.ToLower(item), q) {
			matches = append(matches, item)
		}
	}
	return matches
}

// ensureCursorVisible adjusts scroll to keep a picker cursor in view.
// Returns the new scroll offset.
func ensureCursorVisible(cursor, scroll, maxVisible int) int {
	if cursor < scroll {
		return cursor
	}
	if cursor >= scroll+maxVisible {
		return cursor - maxVisible + 1
	}
	return scroll
}

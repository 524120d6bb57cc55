package app

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/refile/internal/format"
	"github.com/marcus/refile/internal/msg"
	"github.com/marcus/refile/internal/note"
	"github.com/marcus/refile/internal/send"
	"github.com/marcus/refile/internal/state"
	"github.com/marcus/refile/internal/target"
	"github.com/marcus/refile/internal/ui"
	"github.com/marcus/refile/internal/vault"
	"github.com/marcus/refile/internal/version"
)

// Update handles all messages and returns the updated model and commands.
func (m Model) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := teaMsg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(v)

	case tea.MouseMsg:
		return m.handleMouseMsg(v)

	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		m.ready = true
		m.barX, m.barY = ui.ClampPanelPos(m.barX, m.barY, barWidth(&m), barHeight, m.width, m.height)
		m.clampCursor()
		return m, nil

	case TickMsg:
		m.ClearToast()
		return m, tickCmd()

	case msg.ToastMsg:
		m.ShowToast(v.Message, v.Duration, v.IsError)
		return m, nil

	case version.UpdateAvailableMsg:
		m.ShowToast(
			fmt.Sprintf("refile %s available (running %s): %s", v.LatestVersion, v.CurrentVersion, v.UpdateCommand),
			3*m.cfg.UI.ToastDuration, false)
		return m, nil

	case DocLoadedMsg:
		if v.RelPath != m.relPath {
			m.selecting = false
		}
		m.relPath = v.RelPath
		m.doc = v.Doc
		m.buf = bufferFromDoc(v.Doc)
		m.outline = note.ParseOutline(v.Doc.Text)
		m.clampCursor()
		return m, nil

	case msg.DocChangedMsg:
		var cmds []tea.Cmd
		if m.watchEvents != nil {
			cmds = append(cmds, waitForVaultEvent(m.watchEvents))
		}
		if v.Path == m.store.Abs(m.relPath) {
			cmds = append(cmds,
				m.loadDocument(m.relPath),
				msg.ShowToast(m.relPath+" changed on disk, reloaded", m.cfg.UI.ToastDuration))
		}
		return m, tea.Batch(cmds...)

	case SendDoneMsg:
		verb := "Copied"
		if v.Moved {
			verb = "Moved"
		}
		m.ShowToast(fmt.Sprintf("%s to %s › %s", verb, v.Target, v.Heading), m.cfg.UI.ToastDuration, false)
		return m, nil

	case HeadingsLoadedMsg:
		if len(v.Names) == 0 {
			m.ShowToast(fmt.Sprintf("No headings in %s", v.Target), m.cfg.UI.ToastDuration, true)
			return m, nil
		}
		m.initHeadingPicker(v.Names)
		return m, nil

	case FilesLoadedMsg:
		if len(v.Files) == 0 {
			m.ShowToast("Vault has no notes", m.cfg.UI.ToastDuration, true)
			return m, nil
		}
		m.initFilePicker(v.Files, v.Locking)
		return m, nil

	case PreviewLoadedMsg:
		m.previewTitle = v.Title
		m.previewLines = v.Lines
		m.previewScroll = 0
		m.showPreview = true
		return m, nil

	case ErrorMsg:
		m.lastError = v.Err
		m.ShowToast("Error: "+v.Err.Error(), m.cfg.UI.ToastDuration, true)
		return m, nil
	}

	return m, nil
}

// activeContext returns the keymap context for the current input state.
func (m *Model) activeContext() string {
	switch m.activeModal() {
	case ModalHeadingPicker:
		return "heading-picker"
	case ModalFilePicker:
		return "file-picker"
	case ModalPreview:
		return "preview"
	}
	if m.selecting {
		return "selection"
	}
	return "document"
}

// handleKeyMsg processes keyboard input.
func (m Model) handleKeyMsg(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c always quits
	if key.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Help overlay swallows everything; a few keys close it
	if m.showHelp {
		switch key.String() {
		case "esc", "q", "?":
			m.showHelp = false
		}
		return m, nil
	}

	switch m.activeModal() {
	case ModalHeadingPicker:
		return m.handleHeadingPickerKey(key)
	case ModalFilePicker:
		return m.handleFilePickerKey(key)
	}

	ctx := m.activeContext()
	if cmd, ok := m.keymap.Lookup(key.String(), ctx); ok {
		return m.executeCommand(cmd)
	}
	return m, nil
}

// executeCommand dispatches a named command.
func (m Model) executeCommand(cmd string) (tea.Model, tea.Cmd) {
	switch cmd {
	case "quit":
		return m, tea.Quit

	case "back":
		switch {
		case m.showPreview:
			m.showPreview = false
		case m.selecting:
			m.selecting = false
		}
		return m, nil

	case "toggle-bar":
		m.showBar = !m.showBar
		if err := state.SetShowBar(m.showBar); err != nil {
			return m, ReportError(err)
		}
		return m, nil

	case "toggle-help":
		m.showHelp = true
		return m, nil

	// Cursor movement
	case "cursor-down":
		m.cursor++
		m.clampCursor()
		return m, nil
	case "cursor-up":
		m.cursor--
		m.clampCursor()
		return m, nil
	case "cursor-top":
		m.cursor = 0
		m.clampCursor()
		return m, nil
	case "cursor-bottom":
		if m.buf != nil {
			m.cursor = m.buf.Len() - 1
		}
		m.clampCursor()
		return m, nil
	case "page-down":
		m.cursor += m.visibleLines()
		m.clampCursor()
		return m, nil
	case "page-up":
		m.cursor -= m.visibleLines()
		m.clampCursor()
		return m, nil

	// Selection
	case "toggle-select":
		m.selecting = true
		m.selStart = m.cursor
		return m, nil
	case "clear-select":
		m.selecting = false
		return m, nil

	// Sends
	case "send-line":
		return m.sendLine()
	case "send-selection":
		return m.sendSelection()
	case "send-clipboard":
		return m.sendClipboard()

	case "toggle-copy-mode":
		m.copyMode = !m.copyMode
		if err := state.SetCopyMode(m.copyMode); err != nil {
			return m, ReportError(err)
		}
		label := "Move mode"
		if m.copyMode {
			label = "Copy mode"
		}
		m.ShowToast(label, m.cfg.UI.ToastDuration, false)
		return m, nil

	case "toggle-lock":
		if m.lockedTarget != "" {
			m.lockedTarget = ""
			m.ShowToast("Target unlocked", m.cfg.UI.ToastDuration, false)
		} else {
			m.lockedTarget = m.relPath
			m.ShowToast("Target locked: "+m.lockedTarget, m.cfg.UI.ToastDuration, false)
		}
		if err := state.SetLockedTarget(m.lockedTarget); err != nil {
			return m, ReportError(err)
		}
		return m, nil

	case "pick-heading":
		return m, m.loadHeadings(m.targetPath())
	case "pick-target":
		return m, m.loadFiles(true)
	case "open-file":
		return m, m.loadFiles(false)

	case "preview-target":
		return m, m.renderPreview(m.targetPath())
	case "close-preview":
		m.showPreview = false
		return m, nil

	// Preview scrolling
	case "scroll-down":
		m.previewScroll = m.clampPreviewScroll(m.previewScroll + 1)
		return m, nil
	case "scroll-up":
		m.previewScroll = m.clampPreviewScroll(m.previewScroll - 1)
		return m, nil
	case "scroll-top":
		m.previewScroll = 0
		return m, nil
	case "scroll-bottom":
		m.previewScroll = m.clampPreviewScroll(len(m.previewLines))
		return m, nil

	case "refresh":
		return m, m.loadDocument(m.relPath)

	// Picker commands arrive here only via mouse; keys go through the
	// dedicated picker handlers.
	case "cancel":
		m.resetHeadingPicker()
		m.resetFilePicker()
		return m, nil
	}

	return m, nil
}

// sourceContext describes where the sent text came from, for formatting.
func (m *Model) sourceContext() format.Context {
	return format.Context{Kind: format.KindDocument, File: m.relPath}
}

// resolveTarget resolves and validates the send destination.
func (m *Model) resolveTarget() (string, error) {
	return target.Resolve(m.lockedTarget, m.relPath)
}

// sendLine sends the cursor line to the target heading.
func (m Model) sendLine() (tea.Model, tea.Cmd) {
	if m.buf == nil {
		return m, nil
	}
	tgt, err := m.resolveTarget()
	if err != nil {
		return m.sendFailed(err)
	}
	heading := m.targetHeading

	if m.copyMode || tgt != m.relPath {
		text, ok := m.buf.Line(m.cursor)
		if !ok {
			return m, nil
		}
		if m.copyMode {
			if err := m.svc.CopyToHeading(tgt, heading, text, m.sourceContext()); err != nil {
				return m.sendFailed(err)
			}
		} else {
			// Cross-document move: target insert first, then drop the
			// source line and persist the source.
			if err := m.svc.MoveAcrossDocs(tgt, heading, m.buf, m.cursor, m.sourceContext()); err != nil {
				return m.sendFailed(err)
			}
			if err := m.persistBuffer(); err != nil {
				return m.sendFailed(err)
			}
		}
		return m.sendSucceeded(tgt, heading, !m.copyMode)
	}

	// Same-document move
	cursor, err := m.svc.MoveWithinDoc(m.buf, m.cursor, heading, m.sourceContext())
	if err != nil {
		return m.sendFailed(err)
	}
	if err := m.persistBuffer(); err != nil {
		return m.sendFailed(err)
	}
	m.cursor = cursor
	return m.sendSucceeded(tgt, heading, true)
}

// sendSelection sends the selected line range to the target heading.
func (m Model) sendSelection() (tea.Model, tea.Cmd) {
	if m.buf == nil || !m.selecting {
		return m, nil
	}
	tgt, err := m.resolveTarget()
	if err != nil {
		return m.sendFailed(err)
	}
	heading := m.targetHeading
	start, end := m.selectionRange()
	text := strings.Join(m.buf.Lines()[start:end+1], "\n")
	if strings.TrimSpace(text) == "" {
		return m.sendFailed(send.ErrEmptySource)
	}

	if m.copyMode {
		if err := m.svc.CopyToHeading(tgt, heading, text, m.sourceContext()); err != nil {
			return m.sendFailed(err)
		}
		m.selecting = false
		return m.sendSucceeded(tgt, heading, false)
	}

	if tgt != m.relPath {
		if err := m.svc.CopyToHeading(tgt, heading, text, m.sourceContext()); err != nil {
			return m.sendFailed(err)
		}
		for i := end; i >= start; i-- {
			m.buf.DeleteLine(i)
		}
	} else {
		if err := m.moveRangeWithin(start, end, heading, text); err != nil {
			return m.sendFailed(err)
		}
	}
	if err := m.persistBuffer(); err != nil {
		return m.sendFailed(err)
	}
	m.selecting = false
	m.clampCursor()
	return m.sendSucceeded(tgt, heading, true)
}

// moveRangeWithin relocates a line range inside the active buffer. Mirrors
// the single-line move ordering: insert first when the destination is above
// the range, delete first when it is below.
func (m *Model) moveRangeWithin(start, end int, heading, text string) error {
	insertLine, err := note.ResolveInsertLine(note.ParseOutline(m.buf.Text()), heading, m.buf.Len())
	if err != nil {
		return err
	}
	if insertLine > start && insertLine <= end {
		return errors.New("destination is inside the selection")
	}

	formatted := m.svc.Format(text, m.sourceContext())
	n := end - start + 1

	if insertLine <= start {
		m.buf.InsertLine(insertLine, formatted)
		for i := 0; i < n; i++ {
			m.buf.DeleteLine(start + 1)
		}
		m.cursor = insertLine
		return nil
	}

	for i := 0; i < n; i++ {
		m.buf.DeleteLine(start)
	}
	m.buf.InsertLine(insertLine-n, formatted)
	m.cursor = start
	return nil
}

// sendClipboard sends the system clipboard contents to the target heading.
// Clipboard sends are always copies; there is no source to remove.
func (m Model) sendClipboard() (tea.Model, tea.Cmd) {
	tgt, err := m.resolveTarget()
	if err != nil {
		return m.sendFailed(err)
	}
	heading := m.targetHeading

	text, err := send.ClipboardText()
	if err != nil {
		return m.sendFailed(err)
	}
	if err := m.svc.CopyToHeading(tgt, heading, text, send.ClipboardContext(text)); err != nil {
		return m.sendFailed(err)
	}
	return m.sendSucceeded(tgt, heading, false)
}

// persistBuffer writes the mutated active buffer back to the vault. On a
// write conflict the buffer is abandoned and the document reloaded from
// disk, so the view never diverges from the file.
func (m *Model) persistBuffer() error {
	err := m.store.Write(m.doc, m.buf.Text())
	if err == nil {
		return nil
	}
	if errors.Is(err, vault.ErrModified) {
		return fmt.Errorf("%s changed on disk, reloaded", m.relPath)
	}
	return err
}

// sendFailed surfaces a send error and reloads the active document so any
// partial in-memory mutation is discarded.
func (m Model) sendFailed(err error) (tea.Model, tea.Cmd) {
	m.lastError = err
	m.ShowToast("Send failed: "+err.Error(), m.cfg.UI.ToastDuration, true)
	return m, m.loadDocument(m.relPath)
}

// sendSucceeded shows the outcome and refreshes the active document.
func (m Model) sendSucceeded(tgt, heading string, moved bool) (tea.Model, tea.Cmd) {
	return m, tea.Batch(
		m.loadDocument(m.relPath),
		func() tea.Msg {
			return SendDoneMsg{Target: tgt, Heading: heading, Moved: moved}
		},
	)
}

// handleHeadingPickerKey processes keys while the heading picker is open.
func (m Model) handleHeadingPickerKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.resetHeadingPicker()
		return m, nil
	case "enter":
		if m.headingPickerCursor < len(m.headingPickerFiltered) {
			m.targetHeading = m.headingPickerFiltered[m.headingPickerCursor]
			m.resetHeadingPicker()
			if err := state.SetTargetHeading(m.targetHeading); err != nil {
				return m, ReportError(err)
			}
			m.ShowToast("Heading: "+m.targetHeading, m.cfg.UI.ToastDuration, false)
		}
		return m, nil
	case "up", "ctrl+p":
		if m.headingPickerCursor > 0 {
			m.headingPickerCursor--
		}
		m.headingPickerScroll = ensureCursorVisible(m.headingPickerCursor, m.headingPickerScroll, pickerMaxVisible)
		return m, nil
	case "down", "ctrl+n":
		if m.headingPickerCursor < len(m.headingPickerFiltered)-1 {
			m.headingPickerCursor++
		}
		m.headingPickerScroll = ensureCursorVisible(m.headingPickerCursor, m.headingPickerScroll, pickerMaxVisible)
		return m, nil
	}

	var cmd tea.Cmd
	m.headingPickerInput, cmd = m.headingPickerInput.Update(key)
	m.headingPickerFiltered = filterItems(m.headingPickerAll, m.headingPickerInput.Value())
	if m.headingPickerCursor >= len(m.headingPickerFiltered) {
		m.headingPickerCursor = 0
		m.headingPickerScroll = 0
	}
	return m, cmd
}

// handleFilePickerKey processes keys while the file picker is open.
func (m Model) handleFilePickerKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.resetFilePicker()
		return m, nil
	case "enter":
		if m.filePickerCursor < len(m.filePickerFiltered) {
			picked := m.filePickerFiltered[m.filePickerCursor]
			locking := m.filePickerLocking
			m.resetFilePicker()
			if locking {
				m.lockedTarget = picked
				if err := state.SetLockedTarget(picked); err != nil {
					return m, ReportError(err)
				}
				m.ShowToast("Target locked: "+picked, m.cfg.UI.ToastDuration, false)
				return m, nil
			}
			return m, m.loadDocument(picked)
		}
		return m, nil
	case "up", "ctrl+p":
		if m.filePickerCursor > 0 {
			m.filePickerCursor--
		}
		m.filePickerScroll = ensureCursorVisible(m.filePickerCursor, m.filePickerScroll, pickerMaxVisible)
		return m, nil
	case "down", "ctrl+n":
		if m.filePickerCursor < len(m.filePickerFiltered)-1 {
			m.filePickerCursor++
		}
		m.filePickerScroll = ensureCursorVisible(m.filePickerCursor, m.filePickerScroll, pickerMaxVisible)
		return m, nil
	}

	var cmd tea.Cmd
	m.filePickerInput, cmd = m.filePickerInput.Update(key)
	m.filePickerFiltered = filterItems(m.filePickerAll, m.filePickerInput.Value())
	if m.filePickerCursor >= len(m.filePickerFiltered) {
		m.filePickerCursor = 0
		m.filePickerScroll = 0
	}
	return m, cmd
}

// clampPreviewScroll keeps the preview viewport inside its content.
func (m *Model) clampPreviewScroll(scroll int) int {
	max := len(m.previewLines) - m.previewVisible()
	if max < 0 {
		max = 0
	}
	if scroll > max {
		scroll = max
	}
	if scroll < 0 {
		scroll = 0
	}
	return scroll
}

package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/marcus/refile/internal/note"
	"github.com/marcus/refile/internal/styles"
	"github.com/marcus/refile/internal/ui"
)

const (
	minWidth  = 40
	minHeight = 10

	pickerMaxVisible = 8
)

// View renders the full application.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	// Show warning if terminal is too small
	if m.width < minWidth || m.height < minHeight {
		warn := fmt.Sprintf("Terminal too small (%dx%d)\nMinimum: %dx%d",
			m.width, m.height, minWidth, minHeight)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			styles.Muted.Render(warn))
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderDocument())
	if m.showFooter {
		b.WriteString("\n")
		b.WriteString(m.renderFooter())
	}

	bg := b.String()

	// The bar floats over the live document, undimmed
	if m.showBar && !m.hasModal() {
		bg = ui.OverlayAt(bg, m.renderBar(), m.barX, m.barY, m.width, m.height)
	}

	// Overlay modals (priority order via activeModal)
	switch m.activeModal() {
	case ModalHelp:
		return m.renderHelpOverlay(bg)
	case ModalPreview:
		return m.renderPreviewOverlay(bg)
	case ModalHeadingPicker:
		return m.renderPickerOverlay(bg, "Pick Heading", m.headingPickerInput.View(),
			m.headingPickerFiltered, len(m.headingPickerAll),
			m.headingPickerCursor, m.headingPickerScroll)
	case ModalFilePicker:
		title := "Open Note"
		if m.filePickerLocking {
			title = "Lock Target"
		}
		return m.renderPickerOverlay(bg, title, m.filePickerInput.View(),
			m.filePickerFiltered, len(m.filePickerAll),
			m.filePickerCursor, m.filePickerScroll)
	}

	return bg
}

// renderHeader renders the top status line: document, target, mode.
func (m Model) renderHeader() string {
	var parts []string
	parts = append(parts, styles.BarTitle.Render(" refile "))
	parts = append(parts, styles.BarText.Render(m.relPath))

	tgt := m.targetPath()
	tgtChip := styles.BarChip
	label := "→ " + tgt
	if m.lockedTarget != "" {
		tgtChip = styles.BarChipActive
		label = "🔒 " + tgt
	}
	parts = append(parts, tgtChip.Render(label))

	if m.targetHeading != "" {
		parts = append(parts, styles.BarChip.Render("» "+m.targetHeading))
	}

	mode := styles.BarChip.Render("copy")
	if !m.copyMode {
		mode = styles.BarChipActive.Render("move")
	}
	parts = append(parts, mode)

	line := strings.Join(parts, " ")
	if w := lipgloss.Width(line); w < m.width {
		line += strings.Repeat(" ", m.width-w)
	}
	return line
}

// renderDocument renders the active note with line numbers, the cursor
// line, and the selection highlight.
func (m Model) renderDocument() string {
	rows := m.visibleLines()
	if m.buf == nil {
		return strings.Repeat("\n", rows-1)
	}

	selStart, selEnd := -1, -1
	if m.selecting {
		selStart, selEnd = m.selectionRange()
	}

	numWidth := len(fmt.Sprintf("%d", m.buf.Len()))
	if numWidth < 3 {
		numWidth = 3
	}
	contentWidth := m.width - numWidth - 1

	var b strings.Builder
	for row := 0; row < rows; row++ {
		if row > 0 {
			b.WriteString("\n")
		}
		i := m.scroll + row
		text, ok := m.buf.Line(i)
		if !ok {
			continue
		}

		num := fmt.Sprintf("%*d", numWidth, i+1)
		numStyle := styles.LineNumber
		if i == m.cursor {
			numStyle = styles.LineNumberCursor
		}

		line := runewidth.Truncate(text, contentWidth, "…")
		lineStyle := lineStyleFor(m.outline, i)
		switch {
		case m.selecting && i >= selStart && i <= selEnd:
			lineStyle = styles.SelectedLine
		case i == m.cursor:
			lineStyle = styles.CursorLine
		}

		b.WriteString(numStyle.Render(num))
		b.WriteString(" ")
		b.WriteString(lineStyle.Render(line))
	}
	return b.String()
}

// lineStyleFor highlights heading lines of the outline.
func lineStyleFor(outline note.Outline, i int) lipgloss.Style {
	for _, h := range outline {
		if h.Line == i {
			return styles.DocHeading
		}
	}
	return styles.Body
}

// renderFooter renders key hints, or the active toast in their place.
func (m Model) renderFooter() string {
	if m.statusMsg != "" {
		style := styles.ToastSuccess
		if m.statusIsError {
			style = styles.ToastError
		}
		return style.Render(m.statusMsg)
	}

	hints := []struct{ key, desc string }{
		{"s", "send line"},
		{"v", "select"},
		{"c", "clipboard"},
		{"h", "heading"},
		{"t", "target"},
		{"m", "mode"},
		{"p", "preview"},
		{"?", "help"},
		{"q", "quit"},
	}
	var b strings.Builder
	for _, h := range hints {
		b.WriteString(styles.KeyHint.Render(h.key))
		b.WriteString(styles.Muted.Render(" " + h.desc + "  "))
	}
	return b.String()
}

// renderPickerOverlay renders a filterable list picker modal.
func (m Model) renderPickerOverlay(content, title, input string, items []string, total, cursor, scroll int) string {
	var b strings.Builder
	b.WriteString(styles.Title.Render(title))
	b.WriteString("\n\n")
	b.WriteString(input)
	b.WriteString("\n")

	if len(items) < total {
		b.WriteString(styles.Muted.Render(fmt.Sprintf("%d of %d", len(items), total)))
	}
	b.WriteString("\n")

	if len(items) == 0 {
		b.WriteString("\n")
		b.WriteString(styles.Muted.Render("No matches"))
		b.WriteString("\n")
	}

	visibleCount := len(items)
	if visibleCount > pickerMaxVisible {
		visibleCount = pickerMaxVisible
	}

	if scroll > 0 {
		b.WriteString(styles.Muted.Render(fmt.Sprintf("  ↑ %d more above", scroll)))
		b.WriteString("\n")
	}

	for i := scroll; i < scroll+visibleCount && i < len(items); i++ {
		style := styles.ListItemNormal
		prefix := "  "
		if i == cursor {
			style = styles.ListItemSelected
			prefix = styles.ListCursor.Render("→ ")
		}
		b.WriteString(prefix)
		b.WriteString(style.Render(items[i]))
		b.WriteString("\n")
	}

	if remaining := len(items) - (scroll + visibleCount); remaining > 0 {
		b.WriteString(styles.Muted.Render(fmt.Sprintf("  ↓ %d more below", remaining)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.KeyHint.Render("enter"))
	b.WriteString(styles.Muted.Render(" select  "))
	b.WriteString(styles.KeyHint.Render("↑/↓"))
	b.WriteString(styles.Muted.Render(" navigate  "))
	b.WriteString(styles.KeyHint.Render("esc"))
	b.WriteString(styles.Muted.Render(" cancel"))

	modal := styles.ModalBox.Render(b.String())
	return ui.OverlayModal(content, modal, m.width, m.height)
}

// renderPreviewOverlay renders the glamour preview of the target document.
func (m Model) renderPreviewOverlay(content string) string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Preview: " + m.previewTitle))
	b.WriteString("\n\n")

	visible := m.previewVisible()
	end := m.previewScroll + visible
	if end > len(m.previewLines) {
		end = len(m.previewLines)
	}
	for i := m.previewScroll; i < end; i++ {
		b.WriteString(m.previewLines[i])
		b.WriteString("\n")
	}

	if remaining := len(m.previewLines) - end; remaining > 0 {
		b.WriteString(styles.Muted.Render(fmt.Sprintf("↓ %d more", remaining)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.KeyHint.Render("j/k"))
	b.WriteString(styles.Muted.Render(" scroll  "))
	b.WriteString(styles.KeyHint.Render("esc"))
	b.WriteString(styles.Muted.Render(" close"))

	modal := styles.ModalBox.Render(b.String())
	return ui.OverlayModal(content, modal, m.width, m.height)
}

// renderHelpOverlay renders key bindings grouped by context.
func (m Model) renderHelpOverlay(content string) string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Key Bindings"))
	b.WriteString("\n")

	sections := []struct{ title, context string }{
		{"Document", "document"},
		{"Selection", "selection"},
		{"Pickers", "heading-picker"},
		{"Preview", "preview"},
		{"Global", "global"},
	}
	for _, s := range sections {
		bindings := m.keymap.BindingsForContext(s.context)
		if len(bindings) == 0 {
			continue
		}
		b.WriteString("\n")
		b.WriteString(styles.BarTitle.Render(s.title))
		b.WriteString("\n")
		for _, bd := range bindings {
			b.WriteString(fmt.Sprintf("  %-10s %s\n", bd.Key, bd.Command))
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.Muted.Render("esc to close"))

	modal := styles.ModalBox.Render(b.String())
	return ui.OverlayModal(content, modal, m.width, m.height)
}

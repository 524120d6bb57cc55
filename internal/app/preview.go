package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

// previewWidth returns the content width of the preview modal.
func (m *Model) previewWidth() int {
	w := m.width - 12
	if w > 100 {
		w = 100
	}
	if w < 20 {
		w = 20
	}
	return w
}

// previewVisible returns how many rendered lines fit in the preview modal.
func (m *Model) previewVisible() int {
	rows := m.height - 8
	if rows < 4 {
		rows = 4
	}
	return rows
}

// renderPreview reads the target document and renders it with glamour.
func (m Model) renderPreview(rel string) tea.Cmd {
	store := m.store
	width := m.previewWidth()
	return func() tea.Msg {
		doc, err := store.Read(rel)
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("preview %s: %w", rel, err)}
		}

		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("markdown renderer: %w", err)}
		}

		out, err := renderer.Render(doc.Text)
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("render %s: %w", rel, err)}
		}

		return PreviewLoadedMsg{
			Title: rel,
			Lines: strings.Split(strings.TrimRight(out, "\n"), "\n"),
		}
	}
}

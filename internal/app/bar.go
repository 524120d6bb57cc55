package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/marcus/refile/internal/mouse"
	"github.com/marcus/refile/internal/state"
	"github.com/marcus/refile/internal/styles"
	"github.com/marcus/refile/internal/ui"
)

// The bar is a single row of buttons inside a rounded border, so it always
// occupies three terminal rows.
const barHeight = 3

const barGrip = "≡"

// barButton is one clickable segment of the floating bar.
type barButton struct {
	id      string // mouse region id, doubles as identity for hover
	label   string
	command string // dispatched through executeCommand on click
}

// barButtons returns the bar segments in display order. Labels reflect the
// current mode and target so the bar reads as a status line too.
func (m *Model) barButtons() []barButton {
	mode := "Move"
	if m.copyMode {
		mode = "Copy"
	}
	lock := "Lock"
	if m.lockedTarget != "" {
		lock = "Locked"
	}
	heading := m.targetHeading
	if heading == "" {
		heading = "(no heading)"
	}
	return []barButton{
		{id: "bar-grip", label: barGrip},
		{id: "bar-line", label: "Line", command: "send-line"},
		{id: "bar-sel", label: "Sel", command: "send-selection"},
		{id: "bar-clip", label: "Clip", command: "send-clipboard"},
		{id: "bar-mode", label: mode, command: "toggle-copy-mode"},
		{id: "bar-heading", label: "» " + heading, command: "pick-heading"},
		{id: "bar-lock", label: lock, command: "toggle-lock"},
		{id: "bar-close", label: "×", command: "toggle-bar"},
	}
}

// barWidth returns the full rendered width of the bar including its border.
func barWidth(m *Model) int {
	w := 2 // border
	for _, b := range m.barButtons() {
		w += runewidth.StringWidth(b.label) + 2 // BarButton pads one cell each side
	}
	return w
}

// renderBar renders the floating bar.
func (m *Model) renderBar() string {
	var segs []string
	for _, b := range m.barButtons() {
		style := styles.BarButton
		switch {
		case b.id == m.barHover && b.command != "":
			style = styles.BarButtonHover
		case b.id == "bar-mode" && !m.copyMode,
			b.id == "bar-lock" && m.lockedTarget != "":
			style = styles.BarButtonActive
		case b.id == "bar-grip":
			style = styles.BarGrip.Padding(0, 1)
		}
		segs = append(segs, style.Render(b.label))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, segs...)
	return styles.BarFrame.Render(row)
}

// rebuildHitMap registers the current mouse regions: one per bar button
// plus the document area. Called before every mouse event so regions track
// the latest layout.
func (m *Model) rebuildHitMap() {
	m.mouse.Clear()

	headerRows := 1
	docRows := m.visibleLines()
	m.mouse.HitMap.AddRect("doc", 0, headerRows, m.width, docRows, nil)

	if m.showBar && !m.hasModal() {
		x := m.barX + 1 // inside the border
		y := m.barY + 1
		for _, b := range m.barButtons() {
			w := runewidth.StringWidth(b.label) + 2
			m.mouse.HitMap.AddRect(b.id, x, y, w, 1, b.command)
			x += w
		}
	}
}

// handleMouseMsg processes mouse input.
func (m Model) handleMouseMsg(mv tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.cfg.UI.MouseEnabled || m.hasModal() {
		return m, nil
	}

	m.rebuildHitMap()
	action := m.mouse.HandleMouse(mv)

	switch action.Type {
	case mouse.ActionClick, mouse.ActionDoubleClick:
		if action.Region == nil {
			return m, nil
		}
		switch action.Region.ID {
		case "bar-grip":
			m.mouse.StartDrag(action.X, action.Y, "bar-grip", 0)
			m.dragBarX, m.dragBarY = m.barX, m.barY
			return m, nil
		case "doc":
			m.cursor = m.scroll + (action.Y - 1)
			m.clampCursor()
			if action.IsDoubleClick {
				return m.executeCommand("send-line")
			}
			return m, nil
		default:
			if cmd, ok := action.Region.Data.(string); ok && cmd != "" {
				return m.executeCommand(cmd)
			}
		}

	case mouse.ActionDrag:
		if m.mouse.DragRegion() == "bar-grip" {
			m.barX, m.barY = ui.ClampPanelPos(
				m.dragBarX+action.DragDX, m.dragBarY+action.DragDY,
				barWidth(&m), barHeight, m.width, m.height)
		}
		return m, nil

	case mouse.ActionDragEnd:
		if err := state.SetBarPos(m.barX, m.barY); err != nil {
			return m, ReportError(err)
		}
		return m, nil

	case mouse.ActionScrollUp, mouse.ActionScrollDown:
		m.scroll += action.Delta
		maxScroll := 0
		if m.buf != nil {
			maxScroll = m.buf.Len() - m.visibleLines()
		}
		if m.scroll > maxScroll {
			m.scroll = maxScroll
		}
		if m.scroll < 0 {
			m.scroll = 0
		}
		// Keep the cursor inside the viewport
		if m.cursor < m.scroll {
			m.cursor = m.scroll
		}
		if m.cursor >= m.scroll+m.visibleLines() {
			m.cursor = m.scroll + m.visibleLines() - 1
		}
		return m, nil

	case mouse.ActionHover:
		m.barHover = ""
		if action.Region != nil && strings.HasPrefix(action.Region.ID, "bar-") {
			m.barHover = action.Region.ID
		}
		return m, nil
	}

	return m, nil
}

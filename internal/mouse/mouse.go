// Package mouse provides hit testing and drag tracking for mouse-driven UI.
package mouse

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// doubleClickWindow is the maximum delay between two clicks on the same
// region for them to count as a double click.
const doubleClickWindow = 400 * time.Millisecond

// Rect is a rectangular screen region. W and H are exclusive extents.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the point lies inside the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is a named clickable area with optional associated data.
type Region struct {
	ID   string
	Rect Rect
	Data any
}

// HitMap maps screen coordinates to registered regions.
// Regions added later win over earlier ones when they overlap.
type HitMap struct {
	regions []Region
}

// NewHitMap creates an empty hit map.
func NewHitMap() *HitMap {
	return &HitMap{}
}

// Add registers a region.
func (h *HitMap) Add(id string, r Rect, data any) {
	h.regions = append(h.regions, Region{ID: id, Rect: r, Data: data})
}

// AddRect registers a region from raw coordinates.
func (h *HitMap) AddRect(id string, x, y, w, hgt int, data any) {
	h.Add(id, Rect{X: x, Y: y, W: w, H: hgt}, data)
}

// Test returns the topmost region containing the point, or nil.
func (h *HitMap) Test(x, y int) *Region {
	for i := len(h.regions) - 1; i >= 0; i-- {
		if h.regions[i].Rect.Contains(x, y) {
			r := h.regions[i]
			return &r
		}
	}
	return nil
}

// Regions returns a copy of all registered regions.
func (h *HitMap) Regions() []Region {
	out := make([]Region, len(h.regions))
	copy(out, h.regions)
	return out
}

// Clear removes all regions.
func (h *HitMap) Clear() {
	h.regions = h.regions[:0]
}

// ActionType classifies a processed mouse event.
type ActionType int

const (
	ActionNone ActionType = iota
	ActionClick
	ActionDoubleClick
	ActionScrollUp
	ActionScrollDown
	ActionScrollLeft
	ActionScrollRight
	ActionDrag
	ActionDragEnd
	ActionHover
)

// Action is the result of handling one mouse event.
type Action struct {
	Type           ActionType
	Region         *Region // hit region, nil on miss
	Delta          int     // scroll amount (negative = up)
	DragDX, DragDY int     // drag deltas relative to drag start
	IsDoubleClick  bool
	X, Y           int
}

// ClickResult is returned by HandleClick.
type ClickResult struct {
	Region        *Region
	IsDoubleClick bool
}

// Handler combines a hit map with click and drag state.
type Handler struct {
	HitMap *HitMap

	lastClickTime   time.Time
	lastClickRegion string

	dragging       bool
	dragRegion     string
	dragStartX     int
	dragStartY     int
	dragStartValue int
}

// NewHandler creates a handler with an empty hit map.
func NewHandler() *Handler {
	return &Handler{HitMap: NewHitMap()}
}

// Clear resets the hit map. Call before re-registering regions on render.
func (h *Handler) Clear() {
	h.HitMap.Clear()
}

// HandleClick performs a hit test and tracks double clicks.
func (h *Handler) HandleClick(x, y int) ClickResult {
	region := h.HitMap.Test(x, y)

	var isDouble bool
	now := time.Now()
	if region != nil && region.ID == h.lastClickRegion && now.Sub(h.lastClickTime) <= doubleClickWindow {
		isDouble = true
		// Reset so a triple click starts a fresh sequence.
		h.lastClickRegion = ""
	} else if region != nil {
		h.lastClickRegion = region.ID
		h.lastClickTime = now
	} else {
		h.lastClickRegion = ""
	}

	return ClickResult{Region: region, IsDoubleClick: isDouble}
}

// StartDrag begins tracking a drag from the given origin. value is an
// arbitrary caller quantity (pane width, bar position) captured at drag
// start so deltas can be applied to it.
func (h *Handler) StartDrag(x, y int, region string, value int) {
	h.dragging = true
	h.dragRegion = region
	h.dragStartX = x
	h.dragStartY = y
	h.dragStartValue = value
}

// EndDrag stops drag tracking.
func (h *Handler) EndDrag() {
	h.dragging = false
	h.dragRegion = ""
}

// IsDragging reports whether a drag is in progress.
func (h *Handler) IsDragging() bool { return h.dragging }

// DragRegion returns the region ID the drag started on.
func (h *Handler) DragRegion() string { return h.dragRegion }

// DragStartValue returns the caller value captured at drag start.
func (h *Handler) DragStartValue() int { return h.dragStartValue }

// DragDelta returns the offset of the point from the drag origin.
func (h *Handler) DragDelta(x, y int) (dx, dy int) {
	return x - h.dragStartX, y - h.dragStartY
}

// HandleMouse translates a raw tea mouse message into an Action.
func (h *Handler) HandleMouse(msg tea.MouseMsg) Action {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if msg.Shift {
				return Action{Type: ActionScrollLeft, Delta: -3, X: msg.X, Y: msg.Y}
			}
			return Action{Type: ActionScrollUp, Delta: -3, X: msg.X, Y: msg.Y}
		case tea.MouseButtonWheelDown:
			if msg.Shift {
				return Action{Type: ActionScrollRight, Delta: 3, X: msg.X, Y: msg.Y}
			}
			return Action{Type: ActionScrollDown, Delta: 3, X: msg.X, Y: msg.Y}
		case tea.MouseButtonWheelLeft:
			// Mac natural scrolling: wheel-left means content right.
			return Action{Type: ActionScrollRight, Delta: 3, X: msg.X, Y: msg.Y}
		case tea.MouseButtonWheelRight:
			return Action{Type: ActionScrollLeft, Delta: -3, X: msg.X, Y: msg.Y}
		case tea.MouseButtonLeft:
			result := h.HandleClick(msg.X, msg.Y)
			if result.Region == nil {
				return Action{Type: ActionNone, X: msg.X, Y: msg.Y}
			}
			if result.IsDoubleClick {
				return Action{Type: ActionDoubleClick, Region: result.Region, IsDoubleClick: true, X: msg.X, Y: msg.Y}
			}
			return Action{Type: ActionClick, Region: result.Region, X: msg.X, Y: msg.Y}
		}

	case tea.MouseActionMotion:
		if h.dragging {
			dx, dy := h.DragDelta(msg.X, msg.Y)
			return Action{Type: ActionDrag, DragDX: dx, DragDY: dy, X: msg.X, Y: msg.Y}
		}
		return Action{Type: ActionHover, Region: h.HitMap.Test(msg.X, msg.Y), X: msg.X, Y: msg.Y}

	case tea.MouseActionRelease:
		if h.dragging {
			h.EndDrag()
			return Action{Type: ActionDragEnd, X: msg.X, Y: msg.Y}
		}
	}

	return Action{Type: ActionNone, X: msg.X, Y: msg.Y}
}

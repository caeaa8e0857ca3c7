// Package mouse maps terminal cells to the named regions of the sheet.
package mouse

// Region IDs registered by the sheet renderer.
const (
	RegionHandle       = "handle"
	RegionHeader       = "header"
	RegionTool         = "tool"
	RegionChat         = "chat"
	RegionChip         = "chip"
	RegionInput        = "input"
	RegionStatus       = "status"
	RegionDrawer       = "drawer"
	RegionDrawerEntry  = "drawer-entry"
	RegionDrawerClose  = "drawer-close"
	RegionModal        = "modal"
	RegionModalConfirm = "modal-confirm"
	RegionModalCancel  = "modal-cancel"
)

// Rect represents a rectangular region.
type Rect struct {
	X, Y, W, H int
}

// Contains returns true if the point (x, y) is within the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is a named rectangular hit region with associated data.
type Region struct {
	ID   string
	Rect Rect
	Data any
}

// HitMap tracks hit regions for mouse click detection.
type HitMap struct {
	regions []Region
}

// NewHitMap creates a new empty HitMap.
func NewHitMap() *HitMap {
	return &HitMap{
		regions: make([]Region, 0, 32),
	}
}

// Clear removes all regions from the hit map.
func (h *HitMap) Clear() {
	h.regions = h.regions[:0]
}

// Add adds a new region to the hit map. Empty rects are skipped.
func (h *HitMap) Add(id string, rect Rect, data any) {
	if rect.W <= 0 || rect.H <= 0 {
		return
	}
	h.regions = append(h.regions, Region{
		ID:   id,
		Rect: rect,
		Data: data,
	})
}

// AddRect adds a region using individual coordinates.
func (h *HitMap) AddRect(id string, x, y, w, height int, data any) {
	h.Add(id, Rect{X: x, Y: y, W: w, H: height}, data)
}

// Test returns the topmost region containing the point, or nil if none.
func (h *HitMap) Test(x, y int) *Region {
	// Later regions are drawn over earlier ones
	for i := len(h.regions) - 1; i >= 0; i-- {
		if h.regions[i].Rect.Contains(x, y) {
			return &h.regions[i]
		}
	}
	return nil
}

// Within reports whether the topmost region at (x, y) has one of ids.
func (h *HitMap) Within(x, y int, ids ...string) bool {
	r := h.Test(x, y)
	if r == nil {
		return false
	}
	for _, id := range ids {
		if r.ID == id {
			return true
		}
	}
	return false
}

// Regions returns a copy of all registered regions.
func (h *HitMap) Regions() []Region {
	return append([]Region(nil), h.regions...)
}

package app

import (
	"errors"

	"github.com/wilbur182/campusdesk/internal/gesture"
	"github.com/wilbur182/campusdesk/internal/mouse"
)

var errNotCaptured = errors.New("app: pointer is not captured")

// captureSurface models pointer capture for the terminal. While a pointer is
// captured, motion and release belong to the sheet wherever they land.
type captureSurface struct {
	id       int
	captured bool
}

func (s *captureSurface) SetCapture(id int) error {
	s.id = id
	s.captured = true
	return nil
}

func (s *captureSurface) ReleaseCapture(id int) error {
	if !s.captured || s.id != id {
		return errNotCaptured
	}
	s.captured = false
	return nil
}

// Captured reports whether a pointer is held by the sheet.
func (s *captureSurface) Captured() bool { return s.captured }

// grabbable reports whether ev landed on the handle, header or tools.
func (m *Model) grabbable(ev gesture.PointerEvent) bool {
	return m.hits.Within(int(ev.X), m.pointer.Row(ev.Y),
		mouse.RegionHandle, mouse.RegionHeader, mouse.RegionTool, mouse.RegionChip, mouse.RegionStatus)
}

// inInput reports whether ev landed in the message input row.
func (m *Model) inInput(ev gesture.PointerEvent) bool {
	return m.hits.Within(int(ev.X), m.pointer.Row(ev.Y), mouse.RegionInput)
}

// inSheet reports whether a terminal row belongs to the bottom sheet.
func (m *Model) inSheet(y int) bool {
	return y >= m.sheetTop
}

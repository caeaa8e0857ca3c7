// Package gesture turns raw pointer and wheel input on the bottom sheet into
// discrete expand/collapse intents.
package gesture

import (
	"go.uber.org/zap"
)

const (
	// DragThreshold is the vertical travel a tracked pointer must exceed
	// before the gesture resolves.
	DragThreshold = 24

	// WheelThreshold is the scroll delta magnitude a wheel event must exceed.
	WheelThreshold = 10
)

// PointerType identifies the device that produced a pointer event.
type PointerType int

const (
	PointerMouse PointerType = iota
	PointerTouch
	PointerPen
)

// PointerEvent is a single pointer-down/move/up sample.
type PointerEvent struct {
	ID      int
	Type    PointerType
	Primary bool
	Button  int // 0 is the primary button
	X, Y    float64
}

// Surface is the draggable area that can capture a pointer.
type Surface interface {
	SetCapture(id int) error
	ReleaseCapture(id int) error
}

// Sheet receives the intents produced by the controller.
type Sheet interface {
	Expand()
	Collapse()
	Collapsed() bool
}

// Predicate classifies where a pointer event landed.
type Predicate func(ev PointerEvent) bool

// State is the phase of the current gesture.
type State int

const (
	StateIdle State = iota
	StateTracking
	StateResolved
)

func (s State) String() string {
	switch s {
	case StateTracking:
		return "tracking"
	case StateResolved:
		return "resolved"
	default:
		return "idle"
	}
}

// Options configures a Controller.
type Options struct {
	Surface   Surface
	Grabbable Predicate
	InInput   Predicate
	Logger    *zap.Logger
}

// pointerGesture is reset on every gesture end and populated on a
// qualifying start.
type pointerGesture struct {
	trackedID *int
	startY    float64
	resolved  bool
}

// Controller is the drag/wheel state machine for one sheet.
type Controller struct {
	sheet     Sheet
	surface   Surface
	grabbable Predicate
	inInput   Predicate
	log       *zap.Logger

	gesture pointerGesture
}

// New creates a controller bound to sheet.
func New(sheet Sheet, opts Options) *Controller {
	c := &Controller{
		sheet:     sheet,
		surface:   opts.Surface,
		grabbable: opts.Grabbable,
		inInput:   opts.InInput,
		log:       opts.Logger,
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	if c.grabbable == nil {
		c.grabbable = func(PointerEvent) bool { return false }
	}
	if c.inInput == nil {
		c.inInput = func(PointerEvent) bool { return false }
	}
	return c
}

// State reports the current gesture phase.
func (c *Controller) State() State {
	switch {
	case c.gesture.trackedID == nil:
		return StateIdle
	case c.gesture.resolved:
		return StateResolved
	default:
		return StateTracking
	}
}

// trackedPointer returns the pointer being tracked, if any.
func (c *Controller) trackedPointer() (int, bool) {
	if c.gesture.trackedID == nil {
		return 0, false
	}
	return *c.gesture.trackedID, true
}

// PointerDown starts tracking when the event qualifies as a drag start.
func (c *Controller) PointerDown(ev PointerEvent) {
	if !ev.Primary || (ev.Type == PointerMouse && ev.Button != 0) {
		return
	}
	if c.inInput(ev) {
		return
	}
	if !c.grabbable(ev) {
		return
	}
	id := ev.ID
	c.gesture = pointerGesture{trackedID: &id, startY: ev.Y}
}

// PointerMove resolves the gesture once the tracked pointer has travelled
// past DragThreshold. It reports whether default scrolling should be
// suppressed for this event.
func (c *Controller) PointerMove(ev PointerEvent) bool {
	if !c.tracks(ev.ID) {
		return false
	}

	delta := ev.Y - c.gesture.startY
	if !c.gesture.resolved && abs(delta) > DragThreshold {
		c.gesture.resolved = true
		c.capture(ev.ID)
		if delta > 0 {
			c.sheet.Collapse()
		} else {
			c.sheet.Expand()
		}
	}

	return c.gesture.resolved
}

// PointerUp ends the gesture for the tracked pointer.
func (c *Controller) PointerUp(ev PointerEvent) { c.end(ev.ID) }

// PointerCancel ends the gesture for the tracked pointer.
func (c *Controller) PointerCancel(ev PointerEvent) { c.end(ev.ID) }

// LostCapture ends the gesture when the surface loses the captured pointer.
func (c *Controller) LostCapture(ev PointerEvent) { c.end(ev.ID) }

// Wheel maps a vertical scroll delta to an intent. It never touches the
// drag state.
func (c *Controller) Wheel(deltaY float64) {
	switch {
	case deltaY > WheelThreshold:
		c.sheet.Collapse()
	case deltaY < -WheelThreshold:
		c.sheet.Expand()
	}
}

// Toggle flips the sheet based on its last known state.
func (c *Controller) Toggle() {
	if c.sheet.Collapsed() {
		c.sheet.Expand()
		return
	}
	c.sheet.Collapse()
}

func (c *Controller) tracks(id int) bool {
	return c.gesture.trackedID != nil && *c.gesture.trackedID == id
}

func (c *Controller) end(id int) {
	if !c.tracks(id) {
		return
	}
	c.release(id)
	c.gesture = pointerGesture{}
}

func (c *Controller) capture(id int) {
	if c.surface == nil {
		return
	}
	if err := c.surface.SetCapture(id); err != nil {
		c.log.Debug("pointer capture failed", zap.Int("pointer", id), zap.Error(err))
	}
}

func (c *Controller) release(id int) {
	if c.surface == nil {
		return
	}
	if err := c.surface.ReleaseCapture(id); err != nil {
		c.log.Debug("pointer release failed", zap.Int("pointer", id), zap.Error(err))
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

package gesture

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSheet struct {
	collapsed bool
	calls     []string
}

func (s *fakeSheet) Expand() {
	s.collapsed = false
	s.calls = append(s.calls, "expand")
}

func (s *fakeSheet) Collapse() {
	s.collapsed = true
	s.calls = append(s.calls, "collapse")
}

func (s *fakeSheet) Collapsed() bool { return s.collapsed }

type fakeSurface struct {
	captured   []int
	released   []int
	captureErr error
	releaseErr error
}

func (f *fakeSurface) SetCapture(id int) error {
	f.captured = append(f.captured, id)
	return f.captureErr
}

func (f *fakeSurface) ReleaseCapture(id int) error {
	f.released = append(f.released, id)
	return f.releaseErr
}

func always(PointerEvent) bool { return true }
func never(PointerEvent) bool  { return false }

func newTestController(grab, input Predicate) (*Controller, *fakeSheet, *fakeSurface) {
	sheet := &fakeSheet{}
	surface := &fakeSurface{}
	c := New(sheet, Options{Surface: surface, Grabbable: grab, InInput: input})
	return c, sheet, surface
}

func down(y float64) PointerEvent {
	return PointerEvent{ID: 7, Type: PointerTouch, Primary: true, Y: y}
}

func move(id int, y float64) PointerEvent {
	return PointerEvent{ID: id, Type: PointerTouch, Primary: true, Y: y}
}

func TestDragDownCollapsesOnce(t *testing.T) {
	c, sheet, surface := newTestController(always, never)

	c.PointerDown(down(100))
	require.Equal(t, StateTracking, c.State())

	assert.True(t, c.PointerMove(move(7, 140)))
	assert.Equal(t, []string{"collapse"}, sheet.calls)
	assert.Equal(t, StateResolved, c.State())
	assert.Equal(t, []int{7}, surface.captured)

	assert.True(t, c.PointerMove(move(7, 200)))
	assert.Equal(t, []string{"collapse"}, sheet.calls, "no second intent within one gesture")

	c.PointerUp(move(7, 200))
	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, []int{7}, surface.released)
	_, ok := c.trackedPointer()
	assert.False(t, ok)
}

func TestDragUpExpands(t *testing.T) {
	c, sheet, _ := newTestController(always, never)
	sheet.collapsed = true

	c.PointerDown(down(100))
	c.PointerMove(move(7, 70))

	assert.Equal(t, []string{"expand"}, sheet.calls)
}

func TestMoveWithinThresholdDoesNothing(t *testing.T) {
	c, sheet, surface := newTestController(always, never)

	c.PointerDown(down(100))
	assert.False(t, c.PointerMove(move(7, 124)), "exactly the threshold does not resolve")
	assert.False(t, c.PointerMove(move(7, 76)))

	assert.Empty(t, sheet.calls)
	assert.Empty(t, surface.captured)
	assert.Equal(t, StateTracking, c.State())
}

func TestDownOutsideGrabbableRegionIsIgnored(t *testing.T) {
	c, sheet, _ := newTestController(never, never)

	c.PointerDown(down(100))
	c.PointerMove(move(7, 300))

	assert.Equal(t, StateIdle, c.State())
	assert.Empty(t, sheet.calls)
}

func TestDownInsideInputRegionIsIgnored(t *testing.T) {
	c, sheet, _ := newTestController(always, always)

	c.PointerDown(down(100))
	c.PointerMove(move(7, 300))

	assert.Equal(t, StateIdle, c.State())
	assert.Empty(t, sheet.calls)
}

func TestDownRequiresPrimaryPointerAndButton(t *testing.T) {
	tests := []struct {
		name string
		ev   PointerEvent
		want State
	}{
		{"secondary touch", PointerEvent{ID: 1, Type: PointerTouch, Primary: false}, StateIdle},
		{"mouse right button", PointerEvent{ID: 1, Type: PointerMouse, Primary: true, Button: 2}, StateIdle},
		{"mouse left button", PointerEvent{ID: 1, Type: PointerMouse, Primary: true, Button: 0}, StateTracking},
		{"pen with barrel button", PointerEvent{ID: 1, Type: PointerPen, Primary: true, Button: 5}, StateTracking},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, _ := newTestController(always, never)
			c.PointerDown(tt.ev)
			assert.Equal(t, tt.want, c.State())
		})
	}
}

func TestMoveFromOtherPointerIsIgnored(t *testing.T) {
	c, sheet, _ := newTestController(always, never)

	c.PointerDown(down(100))
	assert.False(t, c.PointerMove(move(8, 300)))
	c.PointerUp(move(8, 300))

	assert.Empty(t, sheet.calls)
	assert.Equal(t, StateTracking, c.State(), "foreign pointer up leaves tracking intact")
}

func TestEndTransitionsAreIdempotent(t *testing.T) {
	for name, end := range map[string]func(*Controller, PointerEvent){
		"up":           (*Controller).PointerUp,
		"cancel":       (*Controller).PointerCancel,
		"lost capture": (*Controller).LostCapture,
	} {
		t.Run(name, func(t *testing.T) {
			c, _, surface := newTestController(always, never)
			c.PointerDown(down(100))

			end(c, move(7, 100))
			end(c, move(7, 100))

			assert.Equal(t, StateIdle, c.State())
			assert.Equal(t, []int{7}, surface.released)
		})
	}
}

func TestCaptureFailureDoesNotAbortResolution(t *testing.T) {
	sheet := &fakeSheet{}
	surface := &fakeSurface{
		captureErr: errors.New("no capture"),
		releaseErr: errors.New("not captured"),
	}
	c := New(sheet, Options{Surface: surface, Grabbable: always})

	c.PointerDown(down(0))
	assert.True(t, c.PointerMove(move(7, 50)))
	c.PointerUp(move(7, 50))

	assert.Equal(t, []string{"collapse"}, sheet.calls)
	assert.Equal(t, StateIdle, c.State())
}

func TestNilSurfaceIsTolerated(t *testing.T) {
	sheet := &fakeSheet{}
	c := New(sheet, Options{Grabbable: always})

	c.PointerDown(down(0))
	c.PointerMove(move(7, -30))
	c.PointerCancel(move(7, -30))

	assert.Equal(t, []string{"expand"}, sheet.calls)
	assert.Equal(t, StateIdle, c.State())
}

func TestNewGestureAfterEndCanResolveAgain(t *testing.T) {
	c, sheet, _ := newTestController(always, never)

	c.PointerDown(down(100))
	c.PointerMove(move(7, 140))
	c.PointerUp(move(7, 140))

	c.PointerDown(down(140))
	c.PointerMove(move(7, 100))

	assert.Equal(t, []string{"collapse", "expand"}, sheet.calls)
}

func TestWheel(t *testing.T) {
	tests := []struct {
		delta float64
		want  []string
	}{
		{15, []string{"collapse"}},
		{-15, []string{"expand"}},
		{5, nil},
		{10, nil},
		{-10, nil},
	}
	for _, tt := range tests {
		c, sheet, _ := newTestController(always, never)
		c.Wheel(tt.delta)
		assert.Equal(t, tt.want, sheet.calls, "delta %v", tt.delta)
	}
}

func TestWheelDoesNotTouchTracking(t *testing.T) {
	c, sheet, _ := newTestController(always, never)

	c.PointerDown(down(100))
	c.Wheel(40)
	require.Equal(t, StateTracking, c.State())

	c.PointerMove(move(7, 60))
	assert.Equal(t, []string{"collapse", "expand"}, sheet.calls)
}

func TestToggle(t *testing.T) {
	c, sheet, _ := newTestController(always, never)

	c.Toggle()
	c.Toggle()

	assert.Equal(t, []string{"collapse", "expand"}, sheet.calls)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "tracking", StateTracking.String())
	assert.Equal(t, "resolved", StateResolved.String())
}

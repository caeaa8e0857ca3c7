package gesture

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func mouse(action tea.MouseAction, button tea.MouseButton, y int) tea.MouseMsg {
	return tea.MouseMsg{X: 4, Y: y, Action: action, Button: button}
}

func TestTeaAdapterDragTwoRowsCollapses(t *testing.T) {
	c, sheet, _ := newTestController(always, never)
	a := NewTeaAdapter(c)

	assert.False(t, a.HandleMouse(mouse(tea.MouseActionPress, tea.MouseButtonLeft, 10)))
	assert.False(t, a.HandleMouse(mouse(tea.MouseActionMotion, tea.MouseButtonLeft, 11)), "16 units is under threshold")
	assert.True(t, a.HandleMouse(mouse(tea.MouseActionMotion, tea.MouseButtonLeft, 12)))
	assert.True(t, a.HandleMouse(mouse(tea.MouseActionRelease, tea.MouseButtonNone, 12)))

	assert.Equal(t, []string{"collapse"}, sheet.calls)
	assert.Equal(t, StateIdle, c.State())
}

func TestTeaAdapterRightButtonDoesNotTrack(t *testing.T) {
	c, sheet, _ := newTestController(always, never)
	a := NewTeaAdapter(c)

	a.HandleMouse(mouse(tea.MouseActionPress, tea.MouseButtonRight, 10))
	a.HandleMouse(mouse(tea.MouseActionMotion, tea.MouseButtonRight, 2))

	assert.Equal(t, StateIdle, c.State())
	assert.Empty(t, sheet.calls)
}

func TestTeaAdapterWheel(t *testing.T) {
	c, sheet, _ := newTestController(always, never)
	a := NewTeaAdapter(c)

	a.HandleMouse(mouse(tea.MouseActionPress, tea.MouseButtonWheelDown, 3))
	a.HandleMouse(mouse(tea.MouseActionPress, tea.MouseButtonWheelUp, 3))
	a.HandleMouse(mouse(tea.MouseActionPress, tea.MouseButtonWheelLeft, 3))

	assert.Equal(t, []string{"collapse", "expand"}, sheet.calls)
	assert.Equal(t, StateIdle, c.State())
}

func TestTeaAdapterSmallWheelStepIgnored(t *testing.T) {
	c, sheet, _ := newTestController(always, never)
	a := NewTeaAdapter(c)
	a.WheelStep = 5

	a.HandleMouse(mouse(tea.MouseActionPress, tea.MouseButtonWheelDown, 3))

	assert.Empty(t, sheet.calls)
}

func TestTeaAdapterCancel(t *testing.T) {
	c, _, surface := newTestController(always, never)
	a := NewTeaAdapter(c)

	a.HandleMouse(mouse(tea.MouseActionPress, tea.MouseButtonLeft, 10))
	a.Cancel()

	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, []int{TerminalPointerID}, surface.released)
}

func TestTeaAdapterRow(t *testing.T) {
	a := &TeaAdapter{RowUnits: 16}
	assert.Equal(t, 3, a.Row(48))

	a.RowUnits = 0
	assert.Equal(t, 2, a.Row(32), "zero falls back to the default scale")
}

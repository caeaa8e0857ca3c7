package gesture

import (
	tea "github.com/charmbracelet/bubbletea"
)

// TerminalPointerID is the identifier given to the terminal mouse. Terminals
// report a single pointer, so every event shares it.
const TerminalPointerID = 1

const (
	DefaultRowUnits  = 16
	DefaultWheelStep = 15
)

// TeaAdapter feeds bubbletea mouse messages into a Controller. Terminal rows
// are scaled by RowUnits so the drag threshold keeps its meaning in cells.
type TeaAdapter struct {
	Controller *Controller
	RowUnits   float64
	WheelStep  float64
}

// NewTeaAdapter wraps c with the default scaling.
func NewTeaAdapter(c *Controller) *TeaAdapter {
	return &TeaAdapter{
		Controller: c,
		RowUnits:   DefaultRowUnits,
		WheelStep:  DefaultWheelStep,
	}
}

// HandleMouse routes msg to the controller. It returns true when the event
// belongs to a resolved drag and must not reach scrollable content.
func (a *TeaAdapter) HandleMouse(msg tea.MouseMsg) bool {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.Controller.Wheel(-a.WheelStep)
			return false
		case tea.MouseButtonWheelDown:
			a.Controller.Wheel(a.WheelStep)
			return false
		case tea.MouseButtonWheelLeft, tea.MouseButtonWheelRight:
			return false
		}
		a.Controller.PointerDown(a.event(msg))
		return false

	case tea.MouseActionMotion:
		return a.Controller.PointerMove(a.event(msg))

	case tea.MouseActionRelease:
		resolved := a.Controller.State() == StateResolved
		a.Controller.PointerUp(a.event(msg))
		return resolved
	}
	return false
}

// Cancel aborts the tracked gesture, e.g. when the terminal loses focus.
func (a *TeaAdapter) Cancel() {
	a.Controller.PointerCancel(PointerEvent{ID: TerminalPointerID, Type: PointerMouse, Primary: true})
}

func (a *TeaAdapter) event(msg tea.MouseMsg) PointerEvent {
	return PointerEvent{
		ID:      TerminalPointerID,
		Type:    PointerMouse,
		Primary: true,
		Button:  buttonIndex(msg.Button),
		X:       float64(msg.X),
		Y:       float64(msg.Y) * a.rowUnits(),
	}
}

func (a *TeaAdapter) rowUnits() float64 {
	if a.RowUnits <= 0 {
		return DefaultRowUnits
	}
	return a.RowUnits
}

// buttonIndex maps terminal buttons onto DOM-style indices.
func buttonIndex(b tea.MouseButton) int {
	switch b {
	case tea.MouseButtonLeft, tea.MouseButtonNone:
		return 0
	case tea.MouseButtonMiddle:
		return 1
	case tea.MouseButtonRight:
		return 2
	case tea.MouseButtonBackward:
		return 3
	case tea.MouseButtonForward:
		return 4
	default:
		return 5
	}
}

// Row converts a scaled Y back to the terminal row it came from.
func (a *TeaAdapter) Row(y float64) int {
	return int(y / a.rowUnits())
}

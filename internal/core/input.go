package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone       Action = iota
	ActionStart             // S - start the clock
	ActionConfirm           // Enter - confirm selection in menu
	ActionBack              // B, Escape - go back to menu
	ActionRestart           // R - reset the board
	ActionQuit              // Q, Ctrl+C - exit game/session
	ActionPause             // P - pause/unpause game
	ActionToggleGrid        // 0 - debug grid overlay
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionStart:
		return "Start"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionToggleGrid:
		return "ToggleGrid"
	default:
		return "Unknown"
	}
}

// Pointer is a mouse button press or release at a screen cell.
type Pointer struct {
	X, Y  int
	Press bool
}

// InputFrame holds the input collected for one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
	// Pointers lists mouse events in arrival order.
	Pointers []Pointer
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// AddPointer appends a mouse event.
func (f *InputFrame) AddPointer(x, y int, press bool) {
	f.Pointers = append(f.Pointers, Pointer{X: x, Y: y, Press: press})
}

// Clear resets all input for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
	f.Pointers = f.Pointers[:0]
}

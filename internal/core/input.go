package core

// Action is a platform-level intent, decoupled from the key that caused it.
// The autopilot steers itself, so actions only control the session.
type Action int

const (
	ActionNone    Action = iota
	ActionPause          // P, Space - pause/unpause
	ActionRestart        // R - start a new game
	ActionFaster         // + - more moves per second
	ActionSlower         // - - fewer moves per second
	ActionQuit           // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionFaster:
		return "Faster"
	case ActionSlower:
		return "Slower"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame holds the actions triggered during one tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{Actions: make(map[Action]bool)}
}

// Set marks an action as triggered.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the action was triggered.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Clear resets the frame for the next tick.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}

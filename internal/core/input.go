package core

// Action represents a semantic control intent, abstracted from physical key presses.
// The simulation core only ever sees intents, never raw keys.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow
	ActionDown           // S, Down arrow
	ActionLeft           // A, Left arrow - move player left
	ActionRight          // D, Right arrow - move player right
	ActionShoot          // Space - fire a projectile
	ActionConfirm        // Enter - start / continue on overlay screens
	ActionPause          // P, Escape - pause/unpause game
	ActionRetry          // R - retry a failed level, restart a finished game
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionShoot:
		return "Shoot"
	case ActionConfirm:
		return "Confirm"
	case ActionPause:
		return "Pause"
	case ActionRetry:
		return "Retry"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// BackgroundMode selects the decoration the canvas draws behind the scene.
type BackgroundMode int

const (
	BackgroundNone BackgroundMode = iota
	BackgroundStars
	BackgroundStarsMovingDown
	BackgroundStarsMovingUp
	BackgroundStarsMovingLeft
	BackgroundStarsMovingRight
)

// ParseBackgroundMode maps a definition name to a BackgroundMode.
// The empty string and unknown names map to BackgroundNone.
func ParseBackgroundMode(name string) BackgroundMode {
	switch name {
	case "stars":
		return BackgroundStars
	case "stars_moving_down":
		return BackgroundStarsMovingDown
	case "stars_moving_up":
		return BackgroundStarsMovingUp
	case "stars_moving_left":
		return BackgroundStarsMovingLeft
	case "stars_moving_right":
		return BackgroundStarsMovingRight
	default:
		return BackgroundNone
	}
}

// Controls is the per-frame control intent signal consumed by the simulation step.
type Controls struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool
	Shoot bool
}

// InputFrame represents the actions triggered during one frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
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
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Controls projects the frame onto the movement/shoot intents.
func (f InputFrame) Controls() Controls {
	return Controls{
		Up:    f.Has(ActionUp),
		Down:  f.Has(ActionDown),
		Left:  f.Has(ActionLeft),
		Right: f.Has(ActionRight),
		Shoot: f.Has(ActionShoot),
	}
}

package core

// Action represents a semantic trainer action, abstracted from physical key presses.
// Pointer input is not an action: clicks carry a position and go straight to
// the session machine.
type Action int

const (
	ActionNone       Action = iota
	ActionStart             // Space, Enter - start or restart a session
	ActionScores            // H - toggle the high score overlay on the start screen
	ActionScreenshot        // Ctrl+S - dump the screen buffer to a file
	ActionQuit              // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionStart:
		return "Start"
	case ActionScores:
		return "Scores"
	case ActionScreenshot:
		return "Screenshot"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

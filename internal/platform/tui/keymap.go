package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-reflex/internal/core"
)

// KeyMapper translates Bubble Tea key messages to trainer actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action (may be ActionNone).
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.Action {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return core.ActionQuit
	case " ", "enter":
		return core.ActionStart
	case "h", "tab":
		return core.ActionScores
	case "ctrl+s":
		return core.ActionScreenshot
	}
	return core.ActionNone
}

// MapMouse converts a left-button press to a playfield point. It reports false
// for other mouse events and for presses outside the playfield.
func (km *KeyMapper) MapMouse(msg tea.MouseMsg, l Layout) (core.Point, bool) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return core.Point{}, false
	}
	return l.CellToPlayfield(msg.X, msg.Y)
}

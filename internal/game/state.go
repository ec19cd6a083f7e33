// Package game provides the main game loop and state management.
package game

// State represents the current game state.
type State int

const (
	// StateMenu is the title screen.
	StateMenu State = iota
	// StateWordEntry is where the player spells their next team.
	StateWordEntry
	// StateBattle plays a battle back step by step.
	StateBattle
	// StateGameOver follows a lost battle until the run is reset.
	StateGameOver
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StateWordEntry:
		return "word_entry"
	case StateBattle:
		return "battle"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Package battle provides the step-driven word battle state machine.
package battle

import (
	"github.com/samdwyer/wordbattle/internal/entity"
)

// Side identifies one of the two teams.
type Side int

const (
	// SidePlayer is the team built from the player's word.
	SidePlayer Side = iota
	// SideOpponent is the team built from the opponent's word.
	SideOpponent
)

// Other returns the opposing side.
func (s Side) Other() Side {
	if s == SidePlayer {
		return SideOpponent
	}
	return SidePlayer
}

// String returns a human-readable side name.
func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "player"
	case SideOpponent:
		return "opponent"
	default:
		return "unknown"
	}
}

// Phase represents the current phase of a turn.
type Phase int

const (
	// PhaseAction - the defending side casts support abilities
	PhaseAction Phase = iota
	// PhaseAttack - the attacking side hits the defenders
	PhaseAttack
	// PhaseOver - the battle has ended
	PhaseOver
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseAction:
		return "action"
	case PhaseAttack:
		return "attack"
	case PhaseOver:
		return "over"
	default:
		return "unknown"
	}
}

// Outcome is the terminal result from the player's point of view.
type Outcome int

const (
	// OutcomeNone - the battle is still running
	OutcomeNone Outcome = iota
	// OutcomeWin - the opponent team was wiped
	OutcomeWin
	// OutcomeLose - the player team was wiped
	OutcomeLose
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeWin:
		return "win"
	case OutcomeLose:
		return "lose"
	default:
		return "unknown"
	}
}

// State holds all mutable state of one battle.
type State struct {
	Player   *entity.Team
	Opponent *entity.Team

	AttackingSide      Side  // Whose attack phase is next
	Phase              Phase // Current phase
	Cursor             int   // Next position to consider in the acting team
	OpeningBuffPending bool  // One-shot buff for the side that does not move first
	Turn               int   // Completed turn count
	Outcome            Outcome
}

// Team returns the team for a side.
func (s *State) Team(side Side) *entity.Team {
	if side == SidePlayer {
		return s.Player
	}
	return s.Opponent
}

// Defender returns the side that acts in the action phase and is hit in
// the attack phase.
func (s *State) Defender() Side {
	return s.AttackingSide.Other()
}

// ActingSide returns the side whose combatants the cursor walks.
func (s *State) ActingSide() Side {
	if s.Phase == PhaseAction {
		return s.Defender()
	}
	return s.AttackingSide
}

// IsOver returns true once the battle has ended.
func (s *State) IsOver() bool {
	return s.Phase == PhaseOver
}

// Survivors returns the player's living letters in team order.
func (s *State) Survivors() []string {
	return s.Player.AliveLetters()
}

// Clone returns a deep copy of the state.
func (s *State) Clone() *State {
	out := *s
	out.Player = s.Player.Clone()
	out.Opponent = s.Opponent.Clone()
	return &out
}

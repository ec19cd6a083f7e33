package ui

import "github.com/samdwyer/wordbattle/internal/entity"

// HUD is the run status shown above word entry and battles.
type HUD struct {
	Gold  int
	Level int
}

// MenuView is the title screen.
type MenuView struct {
	Wins, Losses int
	BestLevel    int
	HasHistory   bool
}

// WordEntryView is the word input screen.
type WordEntryView struct {
	HUD
	Input     string
	Cost      int
	Affording bool
	Message   string
	Milestone bool
}

// BattleView is a snapshot of a battle in playback.
type BattleView struct {
	HUD
	Player   *entity.Team
	Opponent *entity.Team
	// PlayerAttacking is true when the player side attacks this turn.
	PlayerAttacking bool
	Turn            int
	Log             []string
	Footer          string
}

// GameOverView is shown after a lost battle.
type GameOverView struct {
	Level        int
	PlayerWord   string
	OpponentWord string
}

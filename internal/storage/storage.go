// Package storage defines persistence contracts for finished battles.
package storage

import (
	"context"
	"time"
)

// BattleRecord is one finished battle as stored in the history.
type BattleRecord struct {
	ID           string
	PlayerWord   string
	OpponentWord string
	Outcome      string
	Survivors    []string
	Reward       int
	Steps        int
	Turns        int
	Level        int // Player level the battle was fought at
	PlayedAt     time.Time
}

// Summary aggregates the recorded history.
type Summary struct {
	Wins      int
	Losses    int
	BestLevel int
	GoldWon   int
}

// BattleRecorder persists finished battles.
type BattleRecorder interface {
	// RecordBattle stores rec and returns it with ID and PlayedAt filled in.
	RecordBattle(ctx context.Context, rec BattleRecord) (BattleRecord, error)
}

// BattleLister reads back recorded battles.
type BattleLister interface {
	// ListBattles returns up to limit battles, most recent first.
	ListBattles(ctx context.Context, limit int) ([]BattleRecord, error)
	Summary(ctx context.Context) (Summary, error)
}

// Store is a composite interface for battle history concerns.
type Store interface {
	BattleRecorder
	BattleLister
	Close() error
}

package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/samdwyer/wordbattle/internal/storage"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil && err != sql.ErrConnDone {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestOpenTwiceAppliesMigrationsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	first, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	second, err := Open(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer second.Close()

	var count int
	if err := second.sqlDB.QueryRow("SELECT COUNT(*) FROM " + migrationTable).Scan(&count); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 applied migration, got %d", count)
	}
}

func TestRecordBattleAssignsIDAndTime(t *testing.T) {
	store := openTempStore(t)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	rec, err := store.RecordBattle(context.Background(), storage.BattleRecord{
		PlayerWord:   "rates",
		OpponentWord: "lemon",
		Outcome:      "win",
		Survivors:    []string{"r", "a", "e"},
		Reward:       7,
		Steps:        42,
		Turns:        3,
		Level:        2,
	})
	if err != nil {
		t.Fatalf("record battle: %v", err)
	}
	if _, err := uuid.Parse(rec.ID); err != nil {
		t.Errorf("expected uuid id, got %q: %v", rec.ID, err)
	}
	if !rec.PlayedAt.Equal(fixed) {
		t.Errorf("expected played_at %v, got %v", fixed, rec.PlayedAt)
	}

	list, err := store.ListBattles(context.Background(), 10)
	if err != nil {
		t.Fatalf("list battles: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 battle, got %d", len(list))
	}
	got := list[0]
	if !got.PlayedAt.Equal(rec.PlayedAt) {
		t.Errorf("stored played_at = %v, want %v", got.PlayedAt, rec.PlayedAt)
	}
	got.PlayedAt, rec.PlayedAt = time.Time{}, time.Time{}
	if !reflect.DeepEqual(got, rec) {
		t.Errorf("stored battle = %+v, want %+v", got, rec)
	}
}

func TestRecordBattleValidation(t *testing.T) {
	store := openTempStore(t)

	tests := []storage.BattleRecord{
		{OpponentWord: "lemon", Outcome: "win"},
		{PlayerWord: "rates", Outcome: "win"},
		{PlayerWord: "rates", OpponentWord: "lemon"},
	}
	for _, rec := range tests {
		if _, err := store.RecordBattle(context.Background(), rec); err == nil {
			t.Errorf("expected error for %+v", rec)
		}
	}
}

func TestRecordBattleCancelledContext(t *testing.T) {
	store := openTempStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.RecordBattle(ctx, storage.BattleRecord{PlayerWord: "rates", OpponentWord: "lemon", Outcome: "win"})
	if err == nil || !strings.Contains(err.Error(), "canceled") {
		t.Errorf("expected context canceled error, got %v", err)
	}
}

func TestListBattlesMostRecentFirst(t *testing.T) {
	store := openTempStore(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, word := range []string{"alpha", "bravo", "delta"} {
		_, err := store.RecordBattle(context.Background(), storage.BattleRecord{
			PlayerWord:   word,
			OpponentWord: "lemon",
			Outcome:      "lose",
			Level:        1,
			PlayedAt:     base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("record battle: %v", err)
		}
	}

	list, err := store.ListBattles(context.Background(), 2)
	if err != nil {
		t.Fatalf("list battles: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 battles, got %d", len(list))
	}
	if list[0].PlayerWord != "delta" || list[1].PlayerWord != "bravo" {
		t.Errorf("expected delta then bravo, got %s then %s", list[0].PlayerWord, list[1].PlayerWord)
	}
	if len(list[0].Survivors) != 0 {
		t.Errorf("expected no survivors, got %v", list[0].Survivors)
	}
}

func TestSummary(t *testing.T) {
	store := openTempStore(t)

	summary, err := store.Summary(context.Background())
	if err != nil {
		t.Fatalf("summary on empty store: %v", err)
	}
	if summary != (storage.Summary{}) {
		t.Errorf("expected empty summary, got %+v", summary)
	}

	records := []storage.BattleRecord{
		{PlayerWord: "rates", OpponentWord: "lemon", Outcome: "win", Reward: 7, Level: 1},
		{PlayerWord: "queue", OpponentWord: "lemon", Outcome: "win", Reward: 5, Level: 2},
		{PlayerWord: "house", OpponentWord: "lemon", Outcome: "lose", Level: 3},
	}
	for _, rec := range records {
		if _, err := store.RecordBattle(context.Background(), rec); err != nil {
			t.Fatalf("record battle: %v", err)
		}
	}

	summary, err = store.Summary(context.Background())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	want := storage.Summary{Wins: 2, Losses: 1, BestLevel: 3, GoldWon: 12}
	if summary != want {
		t.Errorf("summary = %+v, want %+v", summary, want)
	}
}

func TestExtractUpMigration(t *testing.T) {
	content := "-- +migrate Up\nCREATE TABLE t (id INTEGER);\n-- +migrate Down\nDROP TABLE t;\n"
	up := extractUpMigration(content)
	if !strings.Contains(up, "CREATE TABLE t") || strings.Contains(up, "DROP TABLE") {
		t.Errorf("extractUpMigration() = %q", up)
	}
	if got := extractUpMigration("SELECT 1;"); got != "SELECT 1;" {
		t.Errorf("extractUpMigration(no markers) = %q", got)
	}
}

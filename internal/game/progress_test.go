package game

import (
	"errors"
	"strings"
	"testing"

	"github.com/samdwyer/wordbattle/internal/battle"
	apperrors "github.com/samdwyer/wordbattle/internal/errors"
	"github.com/samdwyer/wordbattle/internal/gamedata"
	"github.com/samdwyer/wordbattle/internal/words"
)

func newTestProgress(t *testing.T) (*Progress, *words.Dictionary) {
	t.Helper()
	dict, err := words.Parse(strings.NewReader("rates\nlemon\nqueue\n"))
	if err != nil {
		t.Fatalf("words.Parse() error = %v", err)
	}
	return NewProgress(gamedata.MustLoadCatalog(), DefaultStartingGold), dict
}

func TestNewProgress(t *testing.T) {
	p, _ := newTestProgress(t)

	if p.Gold != 10 || p.Level != 1 {
		t.Errorf("NewProgress() = gold %d level %d, want 10 and 1", p.Gold, p.Level)
	}
	for _, letter := range []string{"a", "m", "z"} {
		if !p.IsUnlocked(letter) {
			t.Errorf("IsUnlocked(%q) = false, want true", letter)
		}
	}
}

func TestWordCost(t *testing.T) {
	p, _ := newTestProgress(t)

	tests := []struct {
		word string
		want int
	}{
		{"rates", 8}, // r1 a2 t1 e3 s1
		{"lemon", 6}, // l1 e3 m1 o0 n1
		{"queue", 11},
		{"", 0},
	}
	for _, tt := range tests {
		if got := p.WordCost(tt.word); got != tt.want {
			t.Errorf("WordCost(%q) = %d, want %d", tt.word, got, tt.want)
		}
	}
}

func TestCheckWordOrder(t *testing.T) {
	p, dict := newTestProgress(t)

	tests := []struct {
		name string
		word string
		gold int
		lock string
		want error
	}{
		{"ok", "rates", 10, "", nil},
		{"not in dictionary", "zzzzz", 10, "", apperrors.ErrNotInDictionary},
		{"wrong length", "rate", 10, "", apperrors.ErrNotInDictionary},
		{"locked before gold", "queue", 0, "q", apperrors.ErrLetterLocked},
		{"not enough gold", "queue", 10, "", apperrors.ErrNotEnoughGold},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p.Reset()
			p.Gold = tt.gold
			if tt.lock != "" {
				p.Lock(tt.lock)
			}

			err := p.CheckWord(tt.word, dict)
			if tt.want == nil {
				if err != nil {
					t.Errorf("CheckWord(%q) error = %v, want nil", tt.word, err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("CheckWord(%q) error = %v, want %v", tt.word, err, tt.want)
			}
		})
	}
}

func TestSpend(t *testing.T) {
	p, dict := newTestProgress(t)

	if err := p.Spend("rates", dict); err != nil {
		t.Fatalf("Spend(rates) error = %v", err)
	}
	if p.Gold != 2 {
		t.Errorf("Gold after rates = %d, want 2", p.Gold)
	}
	if err := p.Spend("lemon", dict); !errors.Is(err, apperrors.ErrNotEnoughGold) {
		t.Errorf("Spend(lemon) with 2 gold error = %v, want not enough gold", err)
	}
	if p.Gold != 2 {
		t.Errorf("failed Spend changed gold to %d", p.Gold)
	}
}

func TestApplyResult(t *testing.T) {
	p, _ := newTestProgress(t)

	if p.ApplyResult(battle.Result{Outcome: battle.OutcomeLose}) {
		t.Error("ApplyResult(lose) reported a milestone")
	}
	if p.Level != 1 || p.Gold != 10 {
		t.Errorf("loss changed progress: level %d gold %d", p.Level, p.Gold)
	}

	p.ApplyResult(battle.Result{Outcome: battle.OutcomeWin, Reward: 5})
	if p.Level != 2 || p.Gold != 15 {
		t.Errorf("after win: level %d gold %d, want 2 and 15", p.Level, p.Gold)
	}

	p.Level = MilestoneInterval - 1
	if !p.ApplyResult(battle.Result{Outcome: battle.OutcomeWin, Reward: 1}) {
		t.Errorf("reaching level %d should be a milestone", MilestoneInterval)
	}

	p.Reset()
	if p.Level != 1 || p.Gold != 10 {
		t.Errorf("Reset() = level %d gold %d, want 1 and 10", p.Level, p.Gold)
	}
}

func TestUnlockUnknownLetter(t *testing.T) {
	p, _ := newTestProgress(t)
	p.Lock("q")
	p.Unlock("?")
	if p.IsUnlocked("?") {
		t.Error("Unlock should ignore letters outside the catalog")
	}
	p.Unlock("q")
	if !p.IsUnlocked("q") {
		t.Error("Unlock(q) did not restore q")
	}
}

func TestDisplayMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{apperrors.ErrNotEnoughGold, "Not enough gold!"},
		{apperrors.ErrLetterLocked, "Letter locked!"},
		{apperrors.ErrNotInDictionary, "Not a valid word!"},
		{apperrors.ErrInvalidWord, "Not a valid word!"},
	}
	for _, tt := range tests {
		if got := DisplayMessage(tt.err); got != tt.want {
			t.Errorf("DisplayMessage(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

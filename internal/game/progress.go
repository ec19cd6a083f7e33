package game

import (
	"errors"
	"fmt"

	"github.com/samdwyer/wordbattle/internal/battle"
	"github.com/samdwyer/wordbattle/internal/entity"
	apperrors "github.com/samdwyer/wordbattle/internal/errors"
	"github.com/samdwyer/wordbattle/internal/gamedata"
	"github.com/samdwyer/wordbattle/internal/words"
)

const (
	// DefaultStartingGold is the balance of a fresh run.
	DefaultStartingGold = 10
	// MilestoneInterval marks every Nth level as a celebration.
	MilestoneInterval = 10
)

// Progress is the run state carried between battles: gold, level and the
// letters the player may spell with.
type Progress struct {
	Gold  int
	Level int

	startingGold int
	unlocked     map[string]bool
	catalog      *gamedata.Catalog
}

// NewProgress starts a run with every catalog letter unlocked.
func NewProgress(catalog *gamedata.Catalog, startingGold int) *Progress {
	p := &Progress{
		startingGold: startingGold,
		catalog:      catalog,
	}
	p.Reset()
	return p
}

// Reset restores the starting state of a run.
func (p *Progress) Reset() {
	p.Gold = p.startingGold
	p.Level = 1
	p.unlocked = make(map[string]bool, p.catalog.Count())
	for _, letter := range p.catalog.Letters() {
		p.unlocked[letter] = true
	}
}

// WordCost returns the sum of catalog costs of the word's letters.
func (p *Progress) WordCost(word string) int {
	cost := 0
	for _, r := range word {
		cost += p.catalog.Cost(string(r))
	}
	return cost
}

// CanAfford reports whether the current gold covers the word's cost.
func (p *Progress) CanAfford(word string) bool {
	return p.WordCost(word) <= p.Gold
}

// Unlock makes a letter available to the player.
func (p *Progress) Unlock(letter string) {
	if p.catalog.Has(letter) {
		p.unlocked[letter] = true
	}
}

// Lock removes a letter from the player's set.
func (p *Progress) Lock(letter string) {
	delete(p.unlocked, letter)
}

// IsUnlocked reports whether the player may use letter.
func (p *Progress) IsUnlocked(letter string) bool {
	return p.unlocked[letter]
}

// CheckWord validates a player word in the order the player sees problems:
// shape, dictionary, locked letters, then gold.
func (p *Progress) CheckWord(word string, dict *words.Dictionary) error {
	if len(word) != entity.WordLength || !dict.IsValid(word) {
		return apperrors.WithMetadata(apperrors.CodeNotInDictionary,
			fmt.Sprintf("%q is not a valid word", word),
			map[string]string{"word": word})
	}
	for _, r := range word {
		if !p.IsUnlocked(string(r)) {
			return apperrors.WithMetadata(apperrors.CodeLetterLocked,
				fmt.Sprintf("letter %q is locked", string(r)),
				map[string]string{"word": word, "letter": string(r)})
		}
	}
	if !p.CanAfford(word) {
		return apperrors.WithMetadata(apperrors.CodeNotEnoughGold,
			fmt.Sprintf("%q costs %d, have %d", word, p.WordCost(word), p.Gold),
			map[string]string{"word": word})
	}
	return nil
}

// Spend validates the word and pays its cost.
func (p *Progress) Spend(word string, dict *words.Dictionary) error {
	if err := p.CheckWord(word, dict); err != nil {
		return err
	}
	p.Gold -= p.WordCost(word)
	return nil
}

// ApplyResult applies a finished battle. A win raises the level and pays the
// reward; it reports whether the new level is a milestone. A loss ends the
// run and leaves progress untouched until Reset.
func (p *Progress) ApplyResult(result battle.Result) (milestone bool) {
	if result.Outcome != battle.OutcomeWin {
		return false
	}
	p.Level++
	p.Gold += result.Reward
	return p.IsMilestone()
}

// IsMilestone reports whether the current level is a milestone level.
func (p *Progress) IsMilestone() bool {
	return p.Level%MilestoneInterval == 0
}

// DisplayMessage maps a word check error to the text shown to the player.
func DisplayMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, apperrors.ErrNotEnoughGold):
		return "Not enough gold!"
	case errors.Is(err, apperrors.ErrLetterLocked):
		return "Letter locked!"
	default:
		return "Not a valid word!"
	}
}

package entity

import (
	"fmt"
	"strings"

	apperrors "github.com/samdwyer/wordbattle/internal/errors"
	"github.com/samdwyer/wordbattle/internal/gamedata"
)

const (
	// MaxTeamSize is the largest team a word can produce.
	MaxTeamSize = 5
	// WordLength is the exact length of a playable word.
	WordLength = 5
)

// Team is an ordered set of combatants representing one word. The order is
// the word's left-to-right character order and is the addressing scheme for
// targeting and neighbor lookup.
type Team struct {
	Word       string
	Combatants []*Combatant
}

// BuildTeam resolves every character of word through the catalog and returns
// a team at full health. It accepts words of length 1..MaxTeamSize; use
// ValidateWord to enforce the exact playable length.
func BuildTeam(word string, catalog *gamedata.Catalog) (*Team, error) {
	letters := []rune(word)
	if len(letters) == 0 || len(letters) > MaxTeamSize {
		return nil, apperrors.WithMetadata(apperrors.CodeInvalidWord,
			fmt.Sprintf("word %q must have 1 to %d letters, got %d", word, MaxTeamSize, len(letters)),
			map[string]string{"word": word})
	}

	team := &Team{
		Word:       word,
		Combatants: make([]*Combatant, 0, len(letters)),
	}
	for i, r := range letters {
		def, err := catalog.Lookup(string(r))
		if err != nil {
			return nil, &apperrors.Error{
				Code:     apperrors.CodeInvalidWord,
				Message:  fmt.Sprintf("word %q: position %d", word, i),
				Metadata: map[string]string{"word": word, "letter": string(r)},
				Cause:    err,
			}
		}
		team.Combatants = append(team.Combatants, NewCombatant(def, i))
	}
	return team, nil
}

// ValidateWord checks the external input contract: exactly WordLength
// lowercase letters, each resolvable in the catalog.
func ValidateWord(word string, catalog *gamedata.Catalog) error {
	letters := []rune(word)
	if len(letters) != WordLength {
		return apperrors.WithMetadata(apperrors.CodeInvalidWord,
			fmt.Sprintf("word %q must have exactly %d letters, got %d", word, WordLength, len(letters)),
			map[string]string{"word": word})
	}
	for i, r := range letters {
		if !catalog.Has(string(r)) {
			return &apperrors.Error{
				Code:     apperrors.CodeInvalidWord,
				Message:  fmt.Sprintf("word %q: position %d", word, i),
				Metadata: map[string]string{"word": word, "letter": string(r)},
				Cause: apperrors.WithMetadata(apperrors.CodeUnknownLetter,
					fmt.Sprintf("unknown letter %q", string(r)),
					map[string]string{"letter": string(r)}),
			}
		}
	}
	return nil
}

// Len returns the number of combatants.
func (t *Team) Len() int { return len(t.Combatants) }

// At returns the combatant at index i, or nil when out of range.
func (t *Team) At(i int) *Combatant {
	if i < 0 || i >= len(t.Combatants) {
		return nil
	}
	return t.Combatants[i]
}

// AliveCount returns the number of living combatants.
func (t *Team) AliveCount() int {
	count := 0
	for _, c := range t.Combatants {
		if c.IsAlive() {
			count++
		}
	}
	return count
}

// IsDefeated returns true when no combatant is alive.
func (t *Team) IsDefeated() bool {
	return t.AliveCount() == 0
}

// FirstAlive returns the index of the first living combatant, or -1.
func (t *Team) FirstAlive() int {
	for i, c := range t.Combatants {
		if c.IsAlive() {
			return i
		}
	}
	return -1
}

// NearestAliveLeft scans left from index i and returns the first living
// combatant's index, or -1.
func (t *Team) NearestAliveLeft(i int) int {
	for j := i - 1; j >= 0; j-- {
		if t.Combatants[j].IsAlive() {
			return j
		}
	}
	return -1
}

// NearestAliveRight scans right from index i and returns the first living
// combatant's index, or -1.
func (t *Team) NearestAliveRight(i int) int {
	for j := i + 1; j < len(t.Combatants); j++ {
		if t.Combatants[j].IsAlive() {
			return j
		}
	}
	return -1
}

// Neighbors returns the nearest living left and right neighbors of index i,
// left first. Zero, one or two indices may be returned.
func (t *Team) Neighbors(i int) []int {
	neighbors := make([]int, 0, 2)
	if left := t.NearestAliveLeft(i); left >= 0 {
		neighbors = append(neighbors, left)
	}
	if right := t.NearestAliveRight(i); right >= 0 {
		neighbors = append(neighbors, right)
	}
	return neighbors
}

// Letters returns every combatant's current letter in team order.
func (t *Team) Letters() []string {
	letters := make([]string, len(t.Combatants))
	for i, c := range t.Combatants {
		letters[i] = c.Letter()
	}
	return letters
}

// AliveLetters returns the current letters of living combatants in team order.
func (t *Team) AliveLetters() []string {
	letters := make([]string, 0, len(t.Combatants))
	for _, c := range t.Combatants {
		if c.IsAlive() {
			letters = append(letters, c.Letter())
		}
	}
	return letters
}

// ClearTemporaryHealth resets temporary health on every combatant.
func (t *Team) ClearTemporaryHealth() {
	for _, c := range t.Combatants {
		c.ClearTemporaryHealth()
	}
}

// Clone returns a deep copy of the team.
func (t *Team) Clone() *Team {
	out := &Team{
		Word:       t.Word,
		Combatants: make([]*Combatant, len(t.Combatants)),
	}
	for i, c := range t.Combatants {
		out.Combatants[i] = c.Clone()
	}
	return out
}

// String renders the team as its current letters, dead ones as '_'.
func (t *Team) String() string {
	var b strings.Builder
	for _, c := range t.Combatants {
		if c.IsAlive() {
			b.WriteString(c.Letter())
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

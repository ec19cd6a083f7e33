package gamedata

import "strings"

// =============================================================================
// LETTER CATALOG DESIGN
// =============================================================================
//
// Overview:
// ---------
// Every lowercase letter a-z is a combatant archetype. Its stats and ability
// tags are data, loaded from letters.json at startup (or from an override file)
// and never mutated afterwards.
//
// Stats:
// ------
//   - health: maximum (and starting) health, > 0
//   - damage: damage dealt per hit, > 0
//   - cost:   gold paid to field the letter, refunded to survivors on a win
//   - type:   vowel | consonant (informational)
//
// Tags:
// -----
//   - shielding:     action phase, shield nearest living left/right neighbors
//   - healing:       action phase, +1 health to nearest living left/right neighbors
//   - double:        two hits per attack step
//   - target-left:   primary target is the defender at index 0
//   - target-right:  primary target is the defender at the last index
//   - revenant-<x>:  on death, comes back as letter <x> at the same position
//
// A letter performs at most one action-phase ability. shielding wins over
// healing when both are present.
//
// JSON Schema:
// ------------
// {
//   "letters": {
//     "e": {"health": 2, "damage": 2, "cost": 3, "type": "vowel", "tags": ["shielding"]}
//   }
// }

// LetterType classifies a letter.
type LetterType string

const (
	Vowel     LetterType = "vowel"
	Consonant LetterType = "consonant"
)

// Tag is an ability tag attached to a letter.
type Tag string

const (
	TagShielding   Tag = "shielding"
	TagHealing     Tag = "healing"
	TagDouble      Tag = "double"
	TagTargetLeft  Tag = "target-left"
	TagTargetRight Tag = "target-right"

	// RevenantPrefix starts a revenant-<letter> tag.
	RevenantPrefix = "revenant-"
)

// Revenant returns the letter named by a revenant-<letter> tag.
func (t Tag) Revenant() (string, bool) {
	s := string(t)
	if !strings.HasPrefix(s, RevenantPrefix) {
		return "", false
	}
	return strings.TrimPrefix(s, RevenantPrefix), true
}

// Known reports whether t is one of the recognised tags. The revenant target
// itself is checked against the catalog separately.
func (t Tag) Known() bool {
	switch t {
	case TagShielding, TagHealing, TagDouble, TagTargetLeft, TagTargetRight:
		return true
	}
	_, ok := t.Revenant()
	return ok
}

// LetterDef defines a letter's stats and tags.
type LetterDef struct {
	Letter string     `json:"-" yaml:"-"`          // Catalog key, filled in on load
	Health int        `json:"health" yaml:"health"` // Maximum health
	Damage int        `json:"damage" yaml:"damage"` // Damage per hit
	Cost   int        `json:"cost" yaml:"cost"`     // Gold cost / survivor refund
	Type   LetterType `json:"type" yaml:"type"`
	Tags   []Tag      `json:"tags" yaml:"tags"`
}

// HasTag reports whether the letter carries tag.
func (d *LetterDef) HasTag(tag Tag) bool {
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// RevenantLetter returns the letter this one resurrects into, if any.
func (d *LetterDef) RevenantLetter() (string, bool) {
	for _, t := range d.Tags {
		if letter, ok := t.Revenant(); ok {
			return letter, true
		}
	}
	return "", false
}

// HitsPerAttack returns how many hits the letter lands per attack step.
func (d *LetterDef) HitsPerAttack() int {
	if d.HasTag(TagDouble) {
		return 2
	}
	return 1
}

// LettersFile represents the structure of letters.json.
type LettersFile struct {
	Letters map[string]LetterDef `json:"letters" yaml:"letters"`
}

// LoadLetters loads letter definitions from the embedded letters.json file.
func LoadLetters() (map[string]LetterDef, error) {
	file, err := Load[LettersFile]("letters.json")
	if err != nil {
		return nil, err
	}
	return file.Letters, nil
}

package gamedata

import (
	"fmt"
	"sort"

	apperrors "github.com/samdwyer/wordbattle/internal/errors"
)

// Alphabet is the full set of letters a shipped catalog must define.
const Alphabet = "abcdefghijklmnopqrstuvwxyz"

// Catalog holds validated letter definitions and provides lookup utilities.
// It is immutable after construction and safe to share between battles.
type Catalog struct {
	letters map[string]*LetterDef
	keys    []string
}

// NewCatalog validates the definitions and builds a catalog from them.
// The configured letter set is exactly the set of keys in defs; use
// NewCompleteCatalog to additionally require every letter a-z.
func NewCatalog(defs map[string]LetterDef) (*Catalog, error) {
	if len(defs) == 0 {
		return nil, apperrors.New(apperrors.CodeCatalogInvalid, "catalog defines no letters")
	}

	catalog := &Catalog{
		letters: make(map[string]*LetterDef, len(defs)),
		keys:    make([]string, 0, len(defs)),
	}
	for key, def := range defs {
		if err := validateEntry(key, def); err != nil {
			return nil, err
		}
		def.Letter = key
		def.Tags = append([]Tag(nil), def.Tags...)
		catalog.letters[key] = &def
		catalog.keys = append(catalog.keys, key)
	}
	sort.Strings(catalog.keys)

	for _, key := range catalog.keys {
		def := catalog.letters[key]
		if target, ok := def.RevenantLetter(); ok {
			if _, exists := catalog.letters[target]; !exists {
				return nil, apperrors.WithMetadata(apperrors.CodeDanglingRevenant,
					fmt.Sprintf("letter %q: revenant tag references unknown letter %q", key, target),
					map[string]string{"letter": key, "revenant": target})
			}
		}
	}
	if err := catalog.checkRevenantCycles(); err != nil {
		return nil, err
	}

	return catalog, nil
}

// NewCompleteCatalog builds a catalog and requires all of a-z to be defined.
func NewCompleteCatalog(defs map[string]LetterDef) (*Catalog, error) {
	catalog, err := NewCatalog(defs)
	if err != nil {
		return nil, err
	}
	for _, r := range Alphabet {
		if _, ok := catalog.letters[string(r)]; !ok {
			return nil, apperrors.WithMetadata(apperrors.CodeCatalogInvalid,
				fmt.Sprintf("catalog is missing letter %q", string(r)),
				map[string]string{"letter": string(r)})
		}
	}
	return catalog, nil
}

// LoadCatalog loads and validates the catalog from the embedded letters.json.
func LoadCatalog() (*Catalog, error) {
	letters, err := LoadLetters()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeCatalogInvalid, "load letters.json", err)
	}
	return NewCompleteCatalog(letters)
}

// MustLoadCatalog loads the embedded catalog, panicking on error.
func MustLoadCatalog() *Catalog {
	catalog, err := LoadCatalog()
	if err != nil {
		panic(err)
	}
	return catalog
}

// Lookup returns the definition for a single lowercase letter.
func (c *Catalog) Lookup(letter string) (LetterDef, error) {
	def, ok := c.letters[letter]
	if !ok {
		return LetterDef{}, apperrors.WithMetadata(apperrors.CodeUnknownLetter,
			fmt.Sprintf("unknown letter %q", letter),
			map[string]string{"letter": letter})
	}
	return def.clone(), nil
}

// Has reports whether letter is part of the configured set.
func (c *Catalog) Has(letter string) bool {
	_, ok := c.letters[letter]
	return ok
}

// Cost returns the cost of a letter, or 0 if it is unknown.
func (c *Catalog) Cost(letter string) int {
	if def, ok := c.letters[letter]; ok {
		return def.Cost
	}
	return 0
}

// Letters returns the configured letters in alphabetical order.
func (c *Catalog) Letters() []string {
	return append([]string(nil), c.keys...)
}

// All returns all letter definitions in alphabetical order.
func (c *Catalog) All() []LetterDef {
	all := make([]LetterDef, 0, len(c.keys))
	for _, key := range c.keys {
		all = append(all, c.letters[key].clone())
	}
	return all
}

// Count returns the number of letters in the catalog.
func (c *Catalog) Count() int {
	return len(c.keys)
}

// clone returns a copy that shares no memory with the catalog.
func (d *LetterDef) clone() LetterDef {
	out := *d
	out.Tags = append([]Tag(nil), d.Tags...)
	return out
}

// validateEntry checks a single catalog entry in isolation.
func validateEntry(key string, def LetterDef) error {
	invalid := func(format string, args ...any) error {
		return apperrors.WithMetadata(apperrors.CodeCatalogInvalid,
			fmt.Sprintf("letter %q: ", key)+fmt.Sprintf(format, args...),
			map[string]string{"letter": key})
	}

	if len(key) != 1 || key[0] < 'a' || key[0] > 'z' {
		return invalid("key must be a single lowercase letter a-z")
	}
	if def.Health <= 0 {
		return invalid("health must be > 0, got %d", def.Health)
	}
	if def.Damage <= 0 {
		return invalid("damage must be > 0, got %d", def.Damage)
	}
	if def.Cost < 0 {
		return invalid("cost must be >= 0, got %d", def.Cost)
	}
	if def.Type != Vowel && def.Type != Consonant {
		return invalid("type must be %q or %q, got %q", Vowel, Consonant, def.Type)
	}

	revenants := 0
	for _, tag := range def.Tags {
		if !tag.Known() {
			return invalid("unknown tag %q", tag)
		}
		if _, ok := tag.Revenant(); ok {
			revenants++
		}
	}
	if revenants > 1 {
		return invalid("at most one revenant tag allowed, got %d", revenants)
	}
	if def.HasTag(TagTargetLeft) && def.HasTag(TagTargetRight) {
		return invalid("target-left and target-right are mutually exclusive")
	}
	return nil
}

// checkRevenantCycles rejects revenant chains that loop back on themselves,
// since a combatant on such a chain could never stay dead.
func (c *Catalog) checkRevenantCycles() error {
	for _, start := range c.keys {
		seen := map[string]bool{start: true}
		current := start
		for {
			next, ok := c.letters[current].RevenantLetter()
			if !ok {
				break
			}
			if seen[next] {
				return apperrors.WithMetadata(apperrors.CodeCatalogInvalid,
					fmt.Sprintf("letter %q: revenant chain loops back to %q", start, next),
					map[string]string{"letter": start, "revenant": next})
			}
			seen[next] = true
			current = next
		}
	}
	return nil
}

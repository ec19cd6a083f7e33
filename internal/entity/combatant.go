// Package entity provides the battle-ready combatants and teams built from words.
package entity

import (
	"github.com/samdwyer/wordbattle/internal/gamedata"
)

// Combatant is one letter's battle-state instance.
type Combatant struct {
	Def        gamedata.LetterDef // Current letter definition (replaced on resurrection)
	Position   int                // Index in the team, fixed for the whole battle
	Health     int                // Current health, 0..MaxHealth
	MaxHealth  int                // Maximum health from the letter definition
	TempHealth int                // Decaying buffer consumed before Health
	Shielded   bool               // Absorbs the next hit in full

	// Resurrections counts how many times this slot came back from the dead.
	Resurrections int
}

// NewCombatant creates a combatant at full health for the given letter.
func NewCombatant(def gamedata.LetterDef, position int) *Combatant {
	return &Combatant{
		Def:       def,
		Position:  position,
		Health:    def.Health,
		MaxHealth: def.Health,
	}
}

// Letter returns the combatant's current letter.
func (c *Combatant) Letter() string { return c.Def.Letter }

// IsAlive returns true if the combatant has health remaining.
func (c *Combatant) IsAlive() bool { return c.Health > 0 }

// IsWounded returns true if the combatant is alive and below max health.
func (c *Combatant) IsWounded() bool { return c.IsAlive() && c.Health < c.MaxHealth }

// TakeDamage applies an unshielded hit. Temporary health absorbs first; the
// remainder comes off Health, which never drops below zero. It returns the
// amount taken from temporary health and the amount dealt to health.
func (c *Combatant) TakeDamage(amount int) (tempDamage, healthDamage int) {
	if amount <= 0 {
		return 0, 0
	}
	tempDamage = min(c.TempHealth, amount)
	c.TempHealth -= tempDamage
	healthDamage = amount - tempDamage

	c.Health -= healthDamage
	if c.Health < 0 {
		c.Health = 0
	}
	return tempDamage, healthDamage
}

// Heal restores health and returns actual amount healed.
func (c *Combatant) Heal(amount int) int {
	if amount <= 0 || !c.IsAlive() {
		return 0
	}
	actual := amount
	if c.Health+actual > c.MaxHealth {
		actual = c.MaxHealth - c.Health
	}
	c.Health += actual
	return actual
}

// AddTemporaryHealth grants a temporary health buffer.
func (c *Combatant) AddTemporaryHealth(amount int) {
	if amount > 0 {
		c.TempHealth += amount
	}
}

// ClearTemporaryHealth drops any remaining temporary health and returns how
// much was discarded.
func (c *Combatant) ClearTemporaryHealth() int {
	dropped := c.TempHealth
	c.TempHealth = 0
	return dropped
}

// GrantShield shields the combatant. Shields do not stack.
func (c *Combatant) GrantShield() { c.Shielded = true }

// ConsumeShield removes the shield and reports whether there was one.
func (c *Combatant) ConsumeShield() bool {
	had := c.Shielded
	c.Shielded = false
	return had
}

// Resurrect replaces the combatant in place with a fresh instance of def.
// The position is kept.
func (c *Combatant) Resurrect(def gamedata.LetterDef) {
	c.Def = def
	c.Health = def.Health
	c.MaxHealth = def.Health
	c.TempHealth = 0
	c.Shielded = false
	c.Resurrections++
}

// Clone returns a deep copy of the combatant.
func (c *Combatant) Clone() *Combatant {
	out := *c
	out.Def.Tags = append([]gamedata.Tag(nil), c.Def.Tags...)
	return &out
}

// Package combat resolves tag-driven abilities and hits between letter combatants.
package combat

import (
	"fmt"

	apperrors "github.com/samdwyer/wordbattle/internal/errors"
	"github.com/samdwyer/wordbattle/internal/entity"
	"github.com/samdwyer/wordbattle/internal/gamedata"
)

// AbilityKind is the support ability a combatant performs in the action phase.
type AbilityKind int

const (
	// AbilityNone - the combatant has no support tag and passes
	AbilityNone AbilityKind = iota
	// AbilityShield - shields the nearest living neighbors
	AbilityShield
	// AbilityHeal - heals the nearest living wounded neighbors by HealAmount
	AbilityHeal
)

// HealAmount is the health restored to each neighbor by the healing ability.
const HealAmount = 1

// String returns a human-readable ability name.
func (k AbilityKind) String() string {
	switch k {
	case AbilityNone:
		return "none"
	case AbilityShield:
		return "shield"
	case AbilityHeal:
		return "heal"
	default:
		return "unknown"
	}
}

// AbilityResult contains the outcome of an action-phase ability.
type AbilityResult struct {
	Kind     AbilityKind
	Affected []int // Positions that received the effect
}

// HitResult contains the outcome of a single hit.
type HitResult struct {
	Target        int  // Position of the defender that was hit
	ShieldBlocked bool // Hit absorbed by a shield
	TempDamage    int  // Taken from temporary health
	HealthDamage  int  // Dealt to health after temporary health
	Killed        bool // Target died from this hit
}

// EffectResolver applies abilities, hits and resurrections.
type EffectResolver struct {
	catalog *gamedata.Catalog
}

// NewEffectResolver creates a new effect resolver.
func NewEffectResolver(catalog *gamedata.Catalog) *EffectResolver {
	return &EffectResolver{
		catalog: catalog,
	}
}

// SelectAbility picks the single ability a letter performs.
// A letter carrying both shielding and healing only shields.
func SelectAbility(def gamedata.LetterDef) AbilityKind {
	switch {
	case def.HasTag(gamedata.TagShielding):
		return AbilityShield
	case def.HasTag(gamedata.TagHealing):
		return AbilityHeal
	default:
		return AbilityNone
	}
}

// ResolveAbility performs the caster's ability on its own team.
func (r *EffectResolver) ResolveAbility(team *entity.Team, caster int) AbilityResult {
	c := team.At(caster)
	if c == nil || !c.IsAlive() {
		return AbilityResult{Kind: AbilityNone}
	}

	result := AbilityResult{Kind: SelectAbility(c.Def), Affected: []int{}}
	switch result.Kind {
	case AbilityShield:
		for _, i := range team.Neighbors(caster) {
			team.At(i).GrantShield()
			result.Affected = append(result.Affected, i)
		}
	case AbilityHeal:
		for _, i := range team.Neighbors(caster) {
			if team.At(i).Heal(HealAmount) > 0 {
				result.Affected = append(result.Affected, i)
			}
		}
	}
	return result
}

// PrimaryTarget returns the index an attacker aims at before retargeting.
func PrimaryTarget(attacker *entity.Combatant, defenders *entity.Team) int {
	switch {
	case attacker.Def.HasTag(gamedata.TagTargetLeft):
		return 0
	case attacker.Def.HasTag(gamedata.TagTargetRight):
		return defenders.Len() - 1
	default:
		return attacker.Position
	}
}

// SelectTarget returns the defender index the attacker hits, or -1 if the
// whole defending team is dead. A dead or missing primary target falls back
// to the first living defender.
func SelectTarget(attacker *entity.Combatant, defenders *entity.Team) int {
	primary := PrimaryTarget(attacker, defenders)
	if target := defenders.At(primary); target != nil && target.IsAlive() {
		return primary
	}
	return defenders.FirstAlive()
}

// ResolveHit applies one hit of the attacker's damage to the target.
func (r *EffectResolver) ResolveHit(attacker, target *entity.Combatant) HitResult {
	result := HitResult{Target: target.Position}
	if target.ConsumeShield() {
		result.ShieldBlocked = true
		return result
	}

	result.TempDamage, result.HealthDamage = target.TakeDamage(attacker.Def.Damage)
	result.Killed = !target.IsAlive()
	return result
}

// CalculateHit previews a hit without applying it.
func CalculateHit(attacker, target *entity.Combatant) HitResult {
	preview := target.Clone()
	result := HitResult{Target: target.Position}
	if preview.ConsumeShield() {
		result.ShieldBlocked = true
		return result
	}
	result.TempDamage, result.HealthDamage = preview.TakeDamage(attacker.Def.Damage)
	result.Killed = !preview.IsAlive()
	return result
}

// CanResurrect reports whether a dead combatant carries a revenant tag.
func CanResurrect(c *entity.Combatant) bool {
	if c.IsAlive() {
		return false
	}
	_, ok := c.Def.RevenantLetter()
	return ok
}

// Resurrect replaces a dead revenant combatant in place with its revenant
// letter. It returns the new letter and false when there is nothing to do.
func (r *EffectResolver) Resurrect(c *entity.Combatant) (string, bool, error) {
	if !CanResurrect(c) {
		return "", false, nil
	}
	letter, _ := c.Def.RevenantLetter()
	def, err := r.catalog.Lookup(letter)
	if err != nil {
		return "", false, apperrors.Wrap(apperrors.CodeDanglingRevenant,
			fmt.Sprintf("resurrect %q at position %d", c.Letter(), c.Position), err)
	}
	c.Resurrect(def)
	return letter, true, nil
}

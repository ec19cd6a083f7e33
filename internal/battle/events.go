package battle

import (
	"fmt"
	"strings"

	"github.com/samdwyer/wordbattle/internal/combat"
)

// EventKind identifies the variant of an Event.
type EventKind string

const (
	KindTempHealthGranted EventKind = "temp_health_granted"
	KindAbilityUsed       EventKind = "ability_used"
	KindAttacked          EventKind = "attacked"
	KindDied              EventKind = "died"
	KindResurrected       EventKind = "resurrected"
	KindTurnFlipped       EventKind = "turn_flipped"
	KindBattleEnded       EventKind = "battle_ended"
)

// Event is one resolved step of a battle. Use a type switch on the concrete
// event types to inspect details.
type Event interface {
	Kind() EventKind
	// TeamSide is the side the event belongs to: the caster's, attacker's,
	// dying or resurrected combatant's side, the new attacking side for
	// TurnFlipped and the winner for BattleEnded.
	TeamSide() Side
	fmt.Stringer
}

// TempHealthGranted is the opening buff.
type TempHealthGranted struct {
	Side      Side
	Positions []int
	Amount    int
}

// AbilityUsed is one action-phase combatant step.
type AbilityUsed struct {
	Side     Side
	Caster   int
	Letter   string
	Ability  combat.AbilityKind
	Affected []int
}

// Attacked is one hit. A double attacker produces two, with Hit 1 and 2.
type Attacked struct {
	Side          Side // Attacker's side
	Attacker      int
	Letter        string
	Target        int
	TargetLetter  string
	Hit           int
	ShieldBlocked bool
	TempDamage    int
	HealthDamage  int
}

// Died announces a combatant death.
type Died struct {
	Side     Side
	Position int
	Letter   string
}

// Resurrected announces a revenant replacement at the same position.
type Resurrected struct {
	Side      Side
	Position  int
	OldLetter string
	NewLetter string
}

// TurnFlipped ends an attack phase. Temporary health was cleared on both
// teams and Side now attacks.
type TurnFlipped struct {
	Side Side
	Turn int
}

// BattleEnded is the final event.
type BattleEnded struct {
	Side    Side // Winner
	Outcome Outcome
}

func (TempHealthGranted) Kind() EventKind { return KindTempHealthGranted }
func (AbilityUsed) Kind() EventKind       { return KindAbilityUsed }
func (Attacked) Kind() EventKind          { return KindAttacked }
func (Died) Kind() EventKind              { return KindDied }
func (Resurrected) Kind() EventKind       { return KindResurrected }
func (TurnFlipped) Kind() EventKind       { return KindTurnFlipped }
func (BattleEnded) Kind() EventKind       { return KindBattleEnded }

func (e TempHealthGranted) TeamSide() Side { return e.Side }
func (e AbilityUsed) TeamSide() Side       { return e.Side }
func (e Attacked) TeamSide() Side          { return e.Side }
func (e Died) TeamSide() Side              { return e.Side }
func (e Resurrected) TeamSide() Side       { return e.Side }
func (e TurnFlipped) TeamSide() Side       { return e.Side }
func (e BattleEnded) TeamSide() Side       { return e.Side }

func (e TempHealthGranted) String() string {
	return fmt.Sprintf("%s letters gain %d temporary health", e.Side, e.Amount)
}

func (e AbilityUsed) String() string {
	switch e.Ability {
	case combat.AbilityShield:
		return fmt.Sprintf("%s %s shields %s", e.Side, upper(e.Letter), positions(e.Affected))
	case combat.AbilityHeal:
		return fmt.Sprintf("%s %s heals %s", e.Side, upper(e.Letter), positions(e.Affected))
	default:
		return fmt.Sprintf("%s %s waits", e.Side, upper(e.Letter))
	}
}

func (e Attacked) String() string {
	prefix := fmt.Sprintf("%s %s hits %s", e.Side, upper(e.Letter), upper(e.TargetLetter))
	if e.ShieldBlocked {
		return prefix + ", blocked by shield"
	}
	if e.TempDamage > 0 {
		return fmt.Sprintf("%s for %d (%d absorbed)", prefix, e.TempDamage+e.HealthDamage, e.TempDamage)
	}
	return fmt.Sprintf("%s for %d", prefix, e.HealthDamage)
}

func (e Died) String() string {
	return fmt.Sprintf("%s %s dies", e.Side, upper(e.Letter))
}

func (e Resurrected) String() string {
	return fmt.Sprintf("%s %s rises as %s", e.Side, upper(e.OldLetter), upper(e.NewLetter))
}

func (e TurnFlipped) String() string {
	return fmt.Sprintf("turn %d: %s attacks", e.Turn+1, e.Side)
}

func (e BattleEnded) String() string {
	return fmt.Sprintf("battle over: %s wins", e.Side)
}

func upper(letter string) string { return strings.ToUpper(letter) }

func positions(ps []int) string {
	if len(ps) == 0 {
		return "nobody"
	}
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = fmt.Sprintf("#%d", p+1)
	}
	return strings.Join(parts, " and ")
}

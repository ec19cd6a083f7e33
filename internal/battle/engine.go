package battle

import (
	"fmt"

	"github.com/samdwyer/wordbattle/internal/combat"
	"github.com/samdwyer/wordbattle/internal/entity"
	apperrors "github.com/samdwyer/wordbattle/internal/errors"
	"github.com/samdwyer/wordbattle/internal/gamedata"
)

// =============================================================================
// Step model
// =============================================================================
//
// AdvanceStep resolves exactly one logical step and returns one event:
//
//   - the opening buff (TempHealthGranted), once, before any action
//   - one defender's action-phase ability (AbilityUsed, kind none for letters
//     without a support tag)
//   - one hit (Attacked); a double attacker spends two steps and its second
//     target is chosen after the first hit fully resolved
//   - a death (Died), a resurrection (Resurrected) or the end (BattleEnded)
//   - the end of an attack phase (TurnFlipped)
//
// Deaths, resurrections and the battle end are queued by the step that caused
// them and drained first-in first-out before the cursor moves on.

// OpeningBuffAmount is the temporary health granted by the opening buff.
const OpeningBuffAmount = 1

// Options configures a battle.
type Options struct {
	// FirstMover attacks in the first turn. Its opponent receives the
	// opening buff and acts first. Defaults to SidePlayer.
	FirstMover Side
}

type pendingKind int

const (
	pendingDeath pendingKind = iota
	pendingResurrection
	pendingEnd
)

type pending struct {
	kind     pendingKind
	side     Side
	position int
	outcome  Outcome
}

// Engine drives one battle. It owns its State exclusively and is not safe for
// concurrent use; run separate engines for concurrent battles.
type Engine struct {
	state    *State
	catalog  *gamedata.Catalog
	resolver *combat.EffectResolver

	queue    []pending
	active   int // Position of the attacker with hits left, -1 if none
	hitsLeft int
	steps    int
}

// New creates an engine from two teams. The teams are deep-copied so the
// caller's values are never mutated.
func New(player, opponent *entity.Team, catalog *gamedata.Catalog, opts Options) *Engine {
	return &Engine{
		state: &State{
			Player:             player.Clone(),
			Opponent:           opponent.Clone(),
			AttackingSide:      opts.FirstMover,
			Phase:              PhaseAction,
			OpeningBuffPending: true,
		},
		catalog:  catalog,
		resolver: combat.NewEffectResolver(catalog),
		active:   -1,
	}
}

// NewFromWords validates both words and builds an engine from them.
func NewFromWords(playerWord, opponentWord string, catalog *gamedata.Catalog, opts Options) (*Engine, error) {
	teams := make([]*entity.Team, 0, 2)
	for _, word := range []string{playerWord, opponentWord} {
		if err := entity.ValidateWord(word, catalog); err != nil {
			return nil, err
		}
		team, err := entity.BuildTeam(word, catalog)
		if err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return New(teams[0], teams[1], catalog, opts), nil
}

// State returns a snapshot of the current battle state.
func (e *Engine) State() *State {
	return e.state.Clone()
}

// Done returns true once BattleEnded has been emitted.
func (e *Engine) Done() bool {
	return e.state.IsOver()
}

// Outcome returns the terminal outcome, or OutcomeNone while running.
func (e *Engine) Outcome() Outcome {
	return e.state.Outcome
}

// Steps returns the number of events emitted so far.
func (e *Engine) Steps() int {
	return e.steps
}

// AdvanceStep resolves the next step and returns its event. Calling it after
// BattleEnded is an invariant violation.
func (e *Engine) AdvanceStep() (Event, error) {
	if e.state.IsOver() {
		return nil, apperrors.WithMetadata(apperrors.CodeBattleOver,
			"advance step after battle ended",
			map[string]string{"outcome": e.state.Outcome.String()})
	}
	ev, err := e.step()
	if err != nil {
		return nil, err
	}
	e.steps++
	return ev, nil
}

func (e *Engine) step() (Event, error) {
	if len(e.queue) > 0 {
		next := e.queue[0]
		e.queue = e.queue[1:]
		return e.resolvePending(next)
	}

	if e.state.OpeningBuffPending {
		return e.openingBuff(), nil
	}

	if e.state.Phase == PhaseAction {
		if ev := e.nextAction(); ev != nil {
			return ev, nil
		}
		e.state.Phase = PhaseAttack
		e.state.Cursor = 0
	}

	if ev := e.nextHit(); ev != nil {
		return ev, nil
	}
	return e.flipTurn(), nil
}

// openingBuff grants temporary health to every combatant of the side that
// does not move first.
func (e *Engine) openingBuff() Event {
	side := e.state.Defender()
	team := e.state.Team(side)
	positions := make([]int, 0, team.Len())
	for _, c := range team.Combatants {
		if c.IsAlive() {
			c.AddTemporaryHealth(OpeningBuffAmount)
			positions = append(positions, c.Position)
		}
	}
	e.state.OpeningBuffPending = false
	return TempHealthGranted{Side: side, Positions: positions, Amount: OpeningBuffAmount}
}

// nextAction resolves the next living defender's ability, or returns nil when
// the action phase is complete.
func (e *Engine) nextAction() Event {
	side := e.state.Defender()
	team := e.state.Team(side)
	for i := e.state.Cursor; i < team.Len(); i++ {
		c := team.At(i)
		if !c.IsAlive() {
			continue
		}
		e.state.Cursor = i + 1
		result := e.resolver.ResolveAbility(team, i)
		return AbilityUsed{
			Side:     side,
			Caster:   i,
			Letter:   c.Letter(),
			Ability:  result.Kind,
			Affected: result.Affected,
		}
	}
	return nil
}

// nextHit resolves one hit of the current attacker, or returns nil when the
// attack phase is complete.
func (e *Engine) nextHit() Event {
	attackers := e.state.Team(e.state.AttackingSide)
	defenderSide := e.state.Defender()
	defenders := e.state.Team(defenderSide)

	for {
		if e.hitsLeft == 0 {
			e.active = -1
			for i := e.state.Cursor; i < attackers.Len(); i++ {
				if attackers.At(i).IsAlive() {
					e.active = i
					e.hitsLeft = attackers.At(i).Def.HitsPerAttack()
					e.state.Cursor = i + 1
					break
				}
			}
			if e.active < 0 {
				e.state.Cursor = attackers.Len()
				return nil
			}
		}

		attacker := attackers.At(e.active)
		hitNumber := attacker.Def.HitsPerAttack() - e.hitsLeft + 1
		e.hitsLeft--

		targetIdx := combat.SelectTarget(attacker, defenders)
		if targetIdx < 0 {
			// Nothing left to hit; termination is queued elsewhere.
			e.hitsLeft = 0
			continue
		}

		target := defenders.At(targetIdx)
		targetLetter := target.Letter()
		hit := e.resolver.ResolveHit(attacker, target)
		if hit.Killed {
			e.queue = append(e.queue, pending{kind: pendingDeath, side: defenderSide, position: targetIdx})
		}
		return Attacked{
			Side:          e.state.AttackingSide,
			Attacker:      e.active,
			Letter:        attacker.Letter(),
			Target:        targetIdx,
			TargetLetter:  targetLetter,
			Hit:           hitNumber,
			ShieldBlocked: hit.ShieldBlocked,
			TempDamage:    hit.TempDamage,
			HealthDamage:  hit.HealthDamage,
		}
	}
}

// flipTurn ends the attack phase: temporary health is cleared on both teams
// and the other side attacks next.
func (e *Engine) flipTurn() Event {
	e.state.Player.ClearTemporaryHealth()
	e.state.Opponent.ClearTemporaryHealth()

	e.state.AttackingSide = e.state.Defender()
	e.state.Phase = PhaseAction
	e.state.Cursor = 0
	e.state.Turn++
	e.active = -1
	e.hitsLeft = 0

	return TurnFlipped{Side: e.state.AttackingSide, Turn: e.state.Turn}
}

func (e *Engine) resolvePending(p pending) (Event, error) {
	switch p.kind {
	case pendingDeath:
		c := e.state.Team(p.side).At(p.position)
		ev := Died{Side: p.side, Position: p.position, Letter: c.Letter()}
		if combat.CanResurrect(c) {
			e.queue = append(e.queue, pending{kind: pendingResurrection, side: p.side, position: p.position})
		}
		e.checkTermination()
		return ev, nil

	case pendingResurrection:
		c := e.state.Team(p.side).At(p.position)
		old := c.Letter()
		letter, ok, err := e.resolver.Resurrect(c)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperrors.Newf(apperrors.CodeInternal,
				"%s position %d: resurrection queued for %q but not possible", p.side, p.position, old)
		}
		e.checkTermination()
		return Resurrected{Side: p.side, Position: p.position, OldLetter: old, NewLetter: letter}, nil

	case pendingEnd:
		e.state.Phase = PhaseOver
		e.state.Outcome = p.outcome
		e.queue = nil
		return BattleEnded{Side: p.side, Outcome: p.outcome}, nil

	default:
		return nil, apperrors.New(apperrors.CodeInternal, fmt.Sprintf("unknown pending step %d", p.kind))
	}
}

// checkTermination queues the battle end when a team has no living
// combatants and no resurrection on the way.
func (e *Engine) checkTermination() {
	for _, p := range e.queue {
		if p.kind == pendingEnd {
			return
		}
	}

	switch {
	case e.wiped(SidePlayer):
		e.queue = append(e.queue, pending{kind: pendingEnd, side: SideOpponent, outcome: OutcomeLose})
	case e.wiped(SideOpponent):
		e.queue = append(e.queue, pending{kind: pendingEnd, side: SidePlayer, outcome: OutcomeWin})
	}
}

func (e *Engine) wiped(side Side) bool {
	if !e.state.Team(side).IsDefeated() {
		return false
	}
	for _, p := range e.queue {
		if p.kind == pendingResurrection && p.side == side {
			return false
		}
	}
	return true
}

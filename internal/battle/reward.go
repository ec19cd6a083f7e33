package battle

import (
	apperrors "github.com/samdwyer/wordbattle/internal/errors"
	"github.com/samdwyer/wordbattle/internal/gamedata"
)

// DefaultBaseReward is the flat gold paid for any win.
const DefaultBaseReward = 1

// Result is the terminal summary of a battle.
type Result struct {
	Outcome   Outcome
	Survivors []string // Player letters alive at the end, in team order
	Reward    int
	Steps     int
	Turns     int
}

// ComputeReward returns baseReward plus the catalog cost of every survivor.
func ComputeReward(survivors []string, catalog *gamedata.Catalog, baseReward int) int {
	reward := baseReward
	for _, letter := range survivors {
		reward += catalog.Cost(letter)
	}
	return reward
}

// Reward computes the payout of a finished battle: zero on a loss.
func Reward(state *State, catalog *gamedata.Catalog, baseReward int) (int, error) {
	if !state.IsOver() {
		return 0, apperrors.New(apperrors.CodeBattleNotOver, "reward requested before battle ended")
	}
	if state.Outcome != OutcomeWin {
		return 0, nil
	}
	return ComputeReward(state.Survivors(), catalog, baseReward), nil
}

// Result summarizes a finished battle.
func (e *Engine) Result(baseReward int) (Result, error) {
	reward, err := Reward(e.state, e.catalog, baseReward)
	if err != nil {
		return Result{}, err
	}
	result := Result{
		Outcome:   e.state.Outcome,
		Survivors: []string{},
		Reward:    reward,
		Steps:     e.steps,
		Turns:     e.state.Turn,
	}
	if e.state.Outcome == OutcomeWin {
		result.Survivors = e.state.Survivors()
	}
	return result, nil
}

package game

import (
	"context"
	"log"
	"math/rand"
	"strings"

	"github.com/samdwyer/wordbattle/internal/battle"
	"github.com/samdwyer/wordbattle/internal/storage"
)

// RunHeadless simulates a single battle between cfg.PlayerWord and
// cfg.OpponentWord, printing every event to logger. An empty opponent word is
// drawn from the dictionary with the configured seed. Player words only need
// catalog letters, not dictionary membership.
func RunHeadless(ctx context.Context, cfg Config, deps Deps, logger *log.Logger) (battle.Result, error) {
	playerWord := strings.ToLower(strings.TrimSpace(cfg.PlayerWord))
	opponentWord := strings.ToLower(strings.TrimSpace(cfg.OpponentWord))
	if opponentWord == "" {
		rng := rand.New(rand.NewSource(cfg.ResolvedSeed()))
		opponentWord = deps.Dictionary.Random(rng)
	}

	engine, err := battle.NewFromWords(playerWord, opponentWord, deps.Catalog, battle.Options{})
	if err != nil {
		return battle.Result{}, err
	}

	logger.Printf("%s vs %s", strings.ToUpper(playerWord), strings.ToUpper(opponentWord))
	step := 0
	result, err := battle.Simulate(ctx, engine, battle.SimulateOptions{
		BaseReward: cfg.BaseReward,
		OnEvent: func(ev battle.Event) {
			step++
			logger.Printf("%4d  %s", step, ev)
		},
	})
	if err != nil {
		return battle.Result{}, err
	}

	survivors := strings.ToUpper(strings.Join(result.Survivors, ""))
	if survivors == "" {
		survivors = "-"
	}
	logger.Printf("outcome=%s survivors=%s reward=%d steps=%d turns=%d",
		result.Outcome, survivors, result.Reward, result.Steps, result.Turns)

	recordBattle(ctx, deps.History, storage.BattleRecord{
		PlayerWord:   playerWord,
		OpponentWord: opponentWord,
		Outcome:      result.Outcome.String(),
		Survivors:    result.Survivors,
		Reward:       result.Reward,
		Steps:        result.Steps,
		Turns:        result.Turns,
	})
	return result, nil
}

package game

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/wordbattle/internal/battle"
	"github.com/samdwyer/wordbattle/internal/storage"
	"github.com/samdwyer/wordbattle/internal/telemetry"
	"github.com/samdwyer/wordbattle/internal/ui"
)

// minStepDelay keeps the pacer ticker valid when StepDelay is 0.
const minStepDelay = time.Millisecond

// stepTick is posted by the pacer to advance the battle by one step.
type stepTick struct {
	battle int // Sequence number of the battle the tick belongs to
}

// playback holds a battle being shown on screen.
type playback struct {
	seq          int
	engine       *battle.Engine
	playerWord   string
	opponentWord string
	level        int // Level the battle was fought at

	log    []string
	done   bool
	result battle.Result

	stop chan struct{}
}

// view snapshots the battle for the renderer.
func (p *playback) view(hud ui.HUD) ui.BattleView {
	state := p.engine.State()
	v := ui.BattleView{
		HUD:             hud,
		Player:          state.Player,
		Opponent:        state.Opponent,
		PlayerAttacking: state.AttackingSide == battle.SidePlayer,
		Turn:            state.Turn,
		Log:             p.log,
		Footer:          "[s] skip",
	}
	if p.done {
		switch p.result.Outcome {
		case battle.OutcomeWin:
			v.Footer = fmt.Sprintf("Victory! +%d gold   [Enter] continue", p.result.Reward)
		default:
			v.Footer = "Defeat.   [Enter] continue"
		}
	}
	return v
}

// startBattle builds the engine and starts the pacer.
func (g *Game) startBattle(ctx context.Context, playerWord, opponentWord string) error {
	engine, err := battle.NewFromWords(playerWord, opponentWord, g.catalog, battle.Options{FirstMover: battle.SidePlayer})
	if err != nil {
		return err
	}

	tracer := telemetry.Tracer("game")
	_, span := tracer.Start(ctx, "battle.start")
	span.SetAttributes(
		attribute.String("player_word", playerWord),
		attribute.String("opponent_word", opponentWord),
		attribute.Int("level", g.progress.Level),
		attribute.Int("gold", g.progress.Gold),
	)
	span.End()

	seq := 1
	if g.playback != nil {
		seq = g.playback.seq + 1
	}
	g.stopPlayback()
	g.playback = &playback{
		seq:          seq,
		engine:       engine,
		playerWord:   playerWord,
		opponentWord: opponentWord,
		level:        g.progress.Level,
		stop:         make(chan struct{}),
	}
	g.state = StateBattle
	go pace(g.screen, g.cfg.StepDelay, seq, g.playback.stop)
	return nil
}

// pace posts a stepTick every delay until stop is closed.
func pace(screen *ui.Screen, delay time.Duration, seq int, stop <-chan struct{}) {
	if delay < minStepDelay {
		delay = minStepDelay
	}
	ticker := time.NewTicker(delay)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			// A full event queue drops the tick; the next one catches up.
			_ = screen.PostEvent(tcell.NewEventInterrupt(stepTick{battle: seq}))
		}
	}
}

// stopPlayback stops the pacer of the current battle, if any.
func (g *Game) stopPlayback() {
	if g.playback == nil || g.playback.stop == nil {
		return
	}
	close(g.playback.stop)
	g.playback.stop = nil
}

// handleTick advances the current battle by one step. Ticks from earlier
// battles are ignored.
func (g *Game) handleTick(ctx context.Context, tick stepTick) {
	if g.state != StateBattle || g.playback == nil || g.playback.done || tick.battle != g.playback.seq {
		return
	}
	g.advance(ctx)
}

// advance resolves one battle step, finishing the battle when it ends.
func (g *Game) advance(ctx context.Context) {
	p := g.playback
	engine := p.engine

	if engine.Steps() >= battle.DefaultMaxSteps {
		// Neither side can finish the other; it counts as a loss.
		p.log = append(p.log, "stalemate")
		g.finishBattle(ctx, battle.Result{
			Outcome:   battle.OutcomeLose,
			Survivors: []string{},
			Steps:     engine.Steps(),
			Turns:     engine.State().Turn,
		})
		return
	}

	tracer := telemetry.Tracer("game")
	_, span := tracer.Start(ctx, "battle.step")
	ev, err := engine.AdvanceStep()
	if err != nil {
		span.RecordError(err)
		span.End()
		log.Printf("advance battle: %v", err)
		g.stopPlayback()
		p.done = true
		return
	}
	span.SetAttributes(battle.EventAttributes(engine.Steps(), ev)...)
	span.End()

	p.log = append(p.log, ev.String())

	if engine.Done() {
		result, err := engine.Result(g.cfg.BaseReward)
		if err != nil {
			log.Printf("battle result: %v", err)
			g.stopPlayback()
			p.done = true
			return
		}
		g.finishBattle(ctx, result)
	}
}

// skipBattle resolves the rest of the battle at once.
func (g *Game) skipBattle(ctx context.Context) {
	for g.playback != nil && !g.playback.done {
		g.advance(ctx)
	}
}

// finishBattle settles progress and records the battle.
func (g *Game) finishBattle(ctx context.Context, result battle.Result) {
	p := g.playback
	g.stopPlayback()
	p.done = true
	p.result = result

	g.milestone = g.progress.ApplyResult(result)

	recordBattle(ctx, g.history, storage.BattleRecord{
		PlayerWord:   p.playerWord,
		OpponentWord: p.opponentWord,
		Outcome:      result.Outcome.String(),
		Survivors:    result.Survivors,
		Reward:       result.Reward,
		Steps:        result.Steps,
		Turns:        result.Turns,
		Level:        p.level,
	})
	g.refreshSummary(ctx)
}

func (g *Game) handleBattleKey(ctx context.Context, ev *tcell.EventKey) {
	p := g.playback
	switch ev.Key() {
	case tcell.KeyEnter:
		if !p.done {
			return
		}
		if p.result.Outcome == battle.OutcomeWin {
			milestone := g.milestone
			g.enterWordEntry()
			g.milestone = milestone
			return
		}
		g.lost = p
		g.state = StateGameOver
	case tcell.KeyRune:
		switch ev.Rune() {
		case 's', 'S':
			g.skipBattle(ctx)
		}
	}
}

package battle

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	apperrors "github.com/samdwyer/wordbattle/internal/errors"
	"github.com/samdwyer/wordbattle/internal/telemetry"
)

// DefaultMaxSteps bounds a simulated battle. Two all-shield teams never hurt
// each other, so every run needs a cap.
const DefaultMaxSteps = 2000

// SimulateOptions configures Simulate.
type SimulateOptions struct {
	MaxSteps   int         // Zero means DefaultMaxSteps
	BaseReward int         // Flat win payout passed to Result
	OnEvent    func(Event) // Called for every event in order, may be nil
}

// Simulate advances the engine until the battle ends and returns its result.
// It fails with a step limit error if the battle does not end within
// MaxSteps, and returns ctx.Err() if ctx is cancelled between steps.
func Simulate(ctx context.Context, engine *Engine, opts SimulateOptions) (Result, error) {
	maxSteps := opts.MaxSteps
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}

	tracer := telemetry.Tracer("battle")
	_, span := tracer.Start(ctx, "battle.start")
	span.SetAttributes(
		attribute.String("player_word", engine.state.Player.Word),
		attribute.String("opponent_word", engine.state.Opponent.Word),
		attribute.String("first_mover", engine.state.AttackingSide.String()),
		attribute.Int("max_steps", maxSteps),
	)
	span.End()

	for !engine.Done() {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if engine.Steps() >= maxSteps {
			return Result{}, apperrors.WithMetadata(apperrors.CodeStepLimit,
				"battle did not end within the step limit",
				map[string]string{
					"player":   engine.state.Player.String(),
					"opponent": engine.state.Opponent.String(),
				})
		}

		_, stepSpan := tracer.Start(ctx, "battle.step")
		ev, err := engine.AdvanceStep()
		if err != nil {
			stepSpan.RecordError(err)
			stepSpan.SetStatus(codes.Error, err.Error())
			stepSpan.End()
			return Result{}, err
		}
		stepSpan.SetAttributes(EventAttributes(engine.Steps(), ev)...)
		stepSpan.End()

		if opts.OnEvent != nil {
			opts.OnEvent(ev)
		}
	}

	result, err := engine.Result(opts.BaseReward)
	if err != nil {
		return Result{}, err
	}

	_, endSpan := tracer.Start(ctx, "battle.end")
	endSpan.SetAttributes(
		attribute.String("outcome", result.Outcome.String()),
		attribute.String("survivors", strings.Join(result.Survivors, "")),
		attribute.Int("reward", result.Reward),
		attribute.Int("steps", result.Steps),
		attribute.Int("turns", result.Turns),
	)
	endSpan.End()

	return result, nil
}

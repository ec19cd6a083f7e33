package game

import (
	"context"
	"log"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/wordbattle/internal/storage"
	"github.com/samdwyer/wordbattle/internal/telemetry"
)

// recordBattle saves a finished battle when history is enabled. Failures are
// logged; history never interrupts play.
func recordBattle(ctx context.Context, history storage.BattleRecorder, rec storage.BattleRecord) {
	if history == nil {
		return
	}

	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "history.record")
	defer span.End()
	span.SetAttributes(
		attribute.String("player_word", rec.PlayerWord),
		attribute.String("opponent_word", rec.OpponentWord),
		attribute.String("outcome", rec.Outcome),
		attribute.String("survivors", strings.Join(rec.Survivors, "")),
	)

	saved, err := history.RecordBattle(ctx, rec)
	if err != nil {
		span.RecordError(err)
		log.Printf("record battle: %v", err)
		return
	}
	span.SetAttributes(attribute.String("battle_id", saved.ID))
}

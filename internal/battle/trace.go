package battle

import (
	"go.opentelemetry.io/otel/attribute"
)

// EventAttributes flattens an event into span attributes.
func EventAttributes(step int, ev Event) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.Int("step", step),
		attribute.String("kind", string(ev.Kind())),
		attribute.String("side", ev.TeamSide().String()),
	}

	switch e := ev.(type) {
	case TempHealthGranted:
		attrs = append(attrs,
			attribute.IntSlice("positions", e.Positions),
			attribute.Int("amount", e.Amount),
		)
	case AbilityUsed:
		attrs = append(attrs,
			attribute.Int("caster", e.Caster),
			attribute.String("letter", e.Letter),
			attribute.String("ability", e.Ability.String()),
			attribute.IntSlice("affected", e.Affected),
		)
	case Attacked:
		attrs = append(attrs,
			attribute.Int("attacker", e.Attacker),
			attribute.String("letter", e.Letter),
			attribute.Int("target", e.Target),
			attribute.Int("hit", e.Hit),
			attribute.Bool("shield_blocked", e.ShieldBlocked),
			attribute.Int("temp_damage", e.TempDamage),
			attribute.Int("health_damage", e.HealthDamage),
		)
	case Died:
		attrs = append(attrs,
			attribute.Int("position", e.Position),
			attribute.String("letter", e.Letter),
		)
	case Resurrected:
		attrs = append(attrs,
			attribute.Int("position", e.Position),
			attribute.String("old_letter", e.OldLetter),
			attribute.String("new_letter", e.NewLetter),
		)
	case TurnFlipped:
		attrs = append(attrs, attribute.Int("turn", e.Turn))
	case BattleEnded:
		attrs = append(attrs, attribute.String("outcome", e.Outcome.String()))
	}
	return attrs
}

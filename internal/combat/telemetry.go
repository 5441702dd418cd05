package combat

import (
	"context"

	"github.com/yohamta/donburi"

	"github.com/pythonsnake602/MiniBit/internal/state"
	"github.com/pythonsnake602/MiniBit/logging"
	loggingcombat "github.com/pythonsnake602/MiniBit/logging/combat"
)

// HitTelemetryRecorderConfig captures the dependencies required to publish
// combat hit telemetry events.
type HitTelemetryRecorderConfig struct {
	Publisher    logging.Publisher
	LookupEntity func(donburi.Entity) logging.EntityRef
}

// NewHitTelemetryRecorder constructs a hook that emits a combat.hit event for
// every accepted hit.
func NewHitTelemetryRecorder(cfg HitTelemetryRecorderConfig) func(Hit) {
	if cfg.Publisher == nil {
		return nil
	}
	lookup := lookupOrEmpty(cfg.LookupEntity)

	return func(hit Hit) {
		payload := loggingcombat.HitPayload{
			Match:     hit.Match.String(),
			VelocityX: hit.Velocity.X,
			VelocityY: hit.Velocity.Y,
			VelocityZ: hit.Velocity.Z,
			Boosted:   hit.Boosted,
		}
		loggingcombat.Hit(
			context.Background(),
			cfg.Publisher,
			uint64(max(hit.Tick, 0)),
			lookup(hit.Attacker),
			lookup(hit.Victim),
			payload,
			nil,
		)
	}
}

// KnockoutTelemetryRecorderConfig captures the dependencies required to
// publish combat knockout telemetry events.
type KnockoutTelemetryRecorderConfig struct {
	Publisher    logging.Publisher
	LookupEntity func(donburi.Entity) logging.EntityRef
}

// NewKnockoutTelemetryRecorder constructs a hook that emits combat.knockout
// when a hit produced an end request.
func NewKnockoutTelemetryRecorder(cfg KnockoutTelemetryRecorderConfig) func(Hit, state.EndGameEvent) {
	if cfg.Publisher == nil {
		return nil
	}
	lookup := lookupOrEmpty(cfg.LookupEntity)

	return func(hit Hit, end state.EndGameEvent) {
		payload := loggingcombat.KnockoutPayload{
			Match: end.Match.String(),
			Loser: end.Loser,
			Cause: string(end.Cause),
		}
		loggingcombat.Knockout(
			context.Background(),
			cfg.Publisher,
			uint64(max(hit.Tick, 0)),
			lookup(hit.Attacker),
			lookup(hit.Victim),
			payload,
			nil,
		)
	}
}

func lookupOrEmpty(lookup func(donburi.Entity) logging.EntityRef) func(donburi.Entity) logging.EntityRef {
	if lookup == nil {
		return func(donburi.Entity) logging.EntityRef { return logging.EntityRef{} }
	}
	return lookup
}

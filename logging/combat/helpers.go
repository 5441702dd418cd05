package combat

import (
	"context"

	"github.com/pythonsnake602/MiniBit/logging"
)

const (
	// EventHit is emitted when an attack passes the combat gate and knockback is applied.
	EventHit logging.EventType = "combat.hit"
	// EventKnockout is emitted when a hit causes the victim's team to lose the match.
	EventKnockout logging.EventType = "combat.knockout"
)

// HitPayload captures the knockback written to the victim.
type HitPayload struct {
	Match     string  `json:"match"`
	VelocityX float64 `json:"velocityX"`
	VelocityY float64 `json:"velocityY"`
	VelocityZ float64 `json:"velocityZ"`
	Boosted   bool    `json:"boosted"`
}

// KnockoutPayload records which team lost and how.
type KnockoutPayload struct {
	Match string `json:"match"`
	Loser uint8  `json:"loser"`
	Cause string `json:"cause"`
}

// Hit publishes an accepted hit.
func Hit(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, target logging.EntityRef, payload HitPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	event := logging.Event{
		Type:     EventHit,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityDebug,
		Category: logging.CategoryCombat,
		Payload:  payload,
		Extra:    extra,
	}
	pub.Publish(ctx, event)
}

// Knockout publishes the hit that decided a match.
func Knockout(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, target logging.EntityRef, payload KnockoutPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	event := logging.Event{
		Type:     EventKnockout,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Payload:  payload,
		Extra:    extra,
	}
	pub.Publish(ctx, event)
}

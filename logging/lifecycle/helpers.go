package lifecycle

import (
	"context"

	"github.com/pythonsnake602/MiniBit/logging"
)

const (
	// EventPlayerJoined is emitted when a participant is admitted to a mode server.
	EventPlayerJoined logging.EventType = "lifecycle.player_joined"
	// EventPlayerLeft is emitted when a participant leaves a mode server.
	EventPlayerLeft logging.EventType = "lifecycle.player_left"
	// EventMatchStarted is emitted once a match's start has been applied.
	EventMatchStarted logging.EventType = "lifecycle.match_started"
	// EventMatchEnded is emitted when the coordinator absorbs the first end for a match.
	EventMatchEnded logging.EventType = "lifecycle.match_ended"
)

// PlayerJoinedPayload captures spawn metadata for a new participant.
type PlayerJoinedPayload struct {
	NetworkID int32   `json:"networkId"`
	SpawnX    float64 `json:"spawnX"`
	SpawnY    float64 `json:"spawnY"`
	SpawnZ    float64 `json:"spawnZ"`
}

// PlayerLeftPayload captures the reason a participant left.
type PlayerLeftPayload struct {
	Reason string `json:"reason"`
}

// MatchStartedPayload lists the members of a match in team order.
type MatchStartedPayload struct {
	Arena   int      `json:"arena"`
	Members []string `json:"members"`
}

// MatchEndedPayload records the outcome of a match.
type MatchEndedPayload struct {
	Loser         uint8    `json:"loser"`
	Cause         string   `json:"cause"`
	Members       []string `json:"members"`
	DurationTicks int64    `json:"durationTicks"`
}

// PlayerJoined publishes a join event.
func PlayerJoined(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload PlayerJoinedPayload, extra map[string]any) {
	publish(ctx, pub, logging.Event{
		Type:    EventPlayerJoined,
		Tick:    tick,
		Actor:   actor,
		Payload: payload,
		Extra:   extra,
	})
}

// PlayerLeft publishes a leave event.
func PlayerLeft(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload PlayerLeftPayload, extra map[string]any) {
	publish(ctx, pub, logging.Event{
		Type:    EventPlayerLeft,
		Tick:    tick,
		Actor:   actor,
		Payload: payload,
		Extra:   extra,
	})
}

// MatchStarted publishes a match start.
func MatchStarted(ctx context.Context, pub logging.Publisher, tick uint64, match logging.EntityRef, payload MatchStartedPayload, extra map[string]any) {
	publish(ctx, pub, logging.Event{
		Type:    EventMatchStarted,
		Tick:    tick,
		Actor:   match,
		Payload: payload,
		Extra:   extra,
	})
}

// MatchEnded publishes a match end.
func MatchEnded(ctx context.Context, pub logging.Publisher, tick uint64, match logging.EntityRef, payload MatchEndedPayload, extra map[string]any) {
	publish(ctx, pub, logging.Event{
		Type:    EventMatchEnded,
		Tick:    tick,
		Actor:   match,
		Payload: payload,
		Extra:   extra,
	})
}

func publish(ctx context.Context, pub logging.Publisher, event logging.Event) {
	if pub == nil {
		return
	}
	event.Severity = logging.SeverityInfo
	event.Category = logging.CategoryLifecycle
	pub.Publish(ctx, event)
}

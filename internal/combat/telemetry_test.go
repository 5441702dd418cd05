package combat

import (
	"context"
	"testing"

	"github.com/yohamta/donburi"

	"github.com/pythonsnake602/MiniBit/internal/state"
	"github.com/pythonsnake602/MiniBit/logging"
	loggingcombat "github.com/pythonsnake602/MiniBit/logging/combat"
)

type capturePublisher struct {
	events []logging.Event
}

func (p *capturePublisher) Publish(ctx context.Context, event logging.Event) {
	p.events = append(p.events, event)
}

func TestNewHitTelemetryRecorder(t *testing.T) {
	pub := &capturePublisher{}
	store := state.NewStore()
	a, _ := store.Spawn("caster", state.Vec3{})
	b, _ := store.Spawn("victim", state.Vec3{})

	recorder := NewHitTelemetryRecorder(HitTelemetryRecorderConfig{
		Publisher: pub,
		LookupEntity: func(entity donburi.Entity) logging.EntityRef {
			id, _ := store.Identity(entity)
			return logging.PlayerRef("mapped-" + id.Name)
		},
	})
	if recorder == nil {
		t.Fatalf("expected recorder")
	}

	match := state.NewMatchID()
	recorder(Hit{Tick: 42, Attacker: a, Victim: b, Velocity: state.Vec3{X: 1, Y: 6.432, Z: 2}, Boosted: true, Match: match})

	if len(pub.events) != 1 {
		t.Fatalf("expected one event, got %d", len(pub.events))
	}
	event := pub.events[0]
	if event.Type != loggingcombat.EventHit {
		t.Fatalf("unexpected event type %q", event.Type)
	}
	if event.Tick != 42 {
		t.Fatalf("unexpected tick %d", event.Tick)
	}
	if event.Actor.ID != "mapped-caster" || event.Actor.Kind != logging.EntityKindPlayer {
		t.Fatalf("unexpected actor ref: %+v", event.Actor)
	}
	if len(event.Targets) != 1 || event.Targets[0].ID != "mapped-victim" {
		t.Fatalf("unexpected targets: %+v", event.Targets)
	}
	payload, ok := event.Payload.(loggingcombat.HitPayload)
	if !ok {
		t.Fatalf("unexpected payload type %T", event.Payload)
	}
	if payload.Match != match.String() || !payload.Boosted || payload.VelocityY != 6.432 {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestNewKnockoutTelemetryRecorder(t *testing.T) {
	pub := &capturePublisher{}

	// LookupEntity omitted to exercise the default path.
	recorder := NewKnockoutTelemetryRecorder(KnockoutTelemetryRecorderConfig{Publisher: pub})
	if recorder == nil {
		t.Fatalf("expected recorder")
	}

	match := state.NewMatchID()
	recorder(Hit{Tick: 7}, state.EndGameEvent{Match: match, Loser: 1, Cause: state.EndCauseKnockout})

	if len(pub.events) != 1 {
		t.Fatalf("expected one event, got %d", len(pub.events))
	}
	event := pub.events[0]
	if event.Type != loggingcombat.EventKnockout || event.Severity != logging.SeverityInfo {
		t.Fatalf("unexpected event %+v", event)
	}
	if event.Actor != (logging.EntityRef{}) {
		t.Fatalf("expected empty actor ref, got %+v", event.Actor)
	}
	payload, ok := event.Payload.(loggingcombat.KnockoutPayload)
	if !ok {
		t.Fatalf("unexpected payload type %T", event.Payload)
	}
	if payload.Loser != 1 || payload.Cause != "knockout" || payload.Match != match.String() {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestTelemetryRecordersNilPublisher(t *testing.T) {
	if recorder := NewHitTelemetryRecorder(HitTelemetryRecorderConfig{}); recorder != nil {
		t.Fatalf("expected nil recorder when publisher missing")
	}
	if recorder := NewKnockoutTelemetryRecorder(KnockoutTelemetryRecorderConfig{}); recorder != nil {
		t.Fatalf("expected nil recorder when publisher missing")
	}
}

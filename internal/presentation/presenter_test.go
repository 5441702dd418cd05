package presentation

import (
	"testing"

	"github.com/yohamta/donburi"

	"github.com/pythonsnake602/MiniBit/internal/state"
)

type captureSink struct {
	names []string
	cues  []Cue
}

func (s *captureSink) Deliver(name string, cue Cue) {
	s.names = append(s.names, name)
	s.cues = append(s.cues, cue)
}

func TestDispatcherResolvesTargets(t *testing.T) {
	store := state.NewStore()
	alice, err := store.Spawn("alice", state.Vec3{})
	if err != nil {
		t.Fatalf("spawn failed: %v", err)
	}
	sink := &captureSink{}
	presenter := NewDispatcher(func(entity donburi.Entity) (string, bool) {
		id, ok := store.Identity(entity)
		if !ok {
			return "", false
		}
		return id.Name, true
	}, sink)

	presenter.SendMessage(alice, "hello")
	presenter.SendMessage(donburi.Null, "dropped")

	if len(sink.cues) != 1 {
		t.Fatalf("expected a single delivered cue, got %d", len(sink.cues))
	}
	if sink.names[0] != "alice" || sink.cues[0].Text != "hello" || sink.cues[0].Kind != CueMessage {
		t.Fatalf("unexpected delivery: %q %+v", sink.names[0], sink.cues[0])
	}
}

func TestRecorderFiltersByTargetAndKind(t *testing.T) {
	store := state.NewStore()
	a, _ := store.Spawn("a", state.Vec3{})
	b, _ := store.Spawn("b", state.Vec3{})

	recorder := NewRecorder()
	p := Multi(recorder.Presenter(), Nop{})
	p.PlaySound(a, SoundPlayerHurt, state.Vec3{X: 1})
	p.DamageTilt(a, 2, 90)
	p.SetVelocity(b, state.Vec3{Y: 6.432})

	if got := len(recorder.Cues()); got != 3 {
		t.Fatalf("expected 3 cues, got %d", got)
	}
	tilts := recorder.For(a, CueTilt)
	if len(tilts) != 1 || tilts[0].Source != 2 || tilts[0].Yaw != 90 {
		t.Fatalf("unexpected tilt cues: %+v", tilts)
	}
	velocities := recorder.For(b, CueVelocity)
	if len(velocities) != 1 || velocities[0].Velocity.Y != 6.432 {
		t.Fatalf("unexpected velocity cues: %+v", velocities)
	}
	recorder.Reset()
	if len(recorder.Cues()) != 0 {
		t.Fatalf("expected reset to clear cues")
	}
}

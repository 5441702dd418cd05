package proto

import (
	"encoding/json"
	"testing"

	"github.com/pythonsnake602/MiniBit/internal/presentation"
	"github.com/pythonsnake602/MiniBit/internal/sim"
	"github.com/pythonsnake602/MiniBit/internal/state"
)

func TestClientCommand(t *testing.T) {
	t.Run("move command", func(t *testing.T) {
		cmd, ok := ClientCommand(ClientMessage{Type: TypeMove, X: 1.5, Y: 64, Z: -0.25, Yaw: 90})
		if !ok {
			t.Fatalf("expected move command to be recognized")
		}
		if cmd.Type != sim.CommandMove || cmd.Move == nil {
			t.Fatalf("expected move payload, got %+v", cmd)
		}
		if cmd.Move.X != 1.5 || cmd.Move.Y != 64 || cmd.Move.Z != -0.25 || cmd.Move.Yaw != 90 {
			t.Fatalf("unexpected move payload: %+v", cmd.Move)
		}
	})

	t.Run("sprint command", func(t *testing.T) {
		cmd, ok := ClientCommand(ClientMessage{Type: TypeSprint, Started: true})
		if !ok || cmd.Sprint == nil || !cmd.Sprint.Started {
			t.Fatalf("unexpected sprint command: %+v", cmd)
		}
	})

	t.Run("interact defaults to attack", func(t *testing.T) {
		cmd, ok := ClientCommand(ClientMessage{Type: TypeInteract, Target: "B"})
		if !ok || cmd.Interact == nil {
			t.Fatalf("expected interact payload")
		}
		if cmd.Interact.Target != "B" || cmd.Interact.Kind != "attack" {
			t.Fatalf("unexpected interact payload: %+v", cmd.Interact)
		}
	})

	t.Run("interact requires target", func(t *testing.T) {
		if _, ok := ClientCommand(ClientMessage{Type: TypeInteract}); ok {
			t.Fatalf("expected empty target to be rejected")
		}
	})

	t.Run("join and leave carry no payload", func(t *testing.T) {
		for _, typ := range []string{TypeJoin, TypeLeave} {
			cmd, ok := ClientCommand(ClientMessage{Type: typ})
			if !ok {
				t.Fatalf("expected %s to be recognized", typ)
			}
			if cmd.Move != nil || cmd.Sprint != nil || cmd.Interact != nil {
				t.Fatalf("expected no payloads, got %+v", cmd)
			}
		}
	})

	t.Run("unknown payload", func(t *testing.T) {
		if _, ok := ClientCommand(ClientMessage{Type: "heartbeat"}); ok {
			t.Fatalf("expected unknown type to be ignored")
		}
	})
}

func TestDecodeClientMessageRejectsFutureVersion(t *testing.T) {
	msg, err := DecodeClientMessage([]byte(`{"type":"move","x":2}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Ver != Version || msg.X != 2 {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if _, err := DecodeClientMessage([]byte(`{"ver":9,"type":"move"}`)); err == nil {
		t.Fatalf("expected version mismatch error")
	}
	if _, err := DecodeClientMessage([]byte(`{`)); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestEncodeCue(t *testing.T) {
	velocity := state.Vec3{X: 8, Y: 6.432}
	encoded, err := EncodeCue(presentation.Cue{Kind: presentation.CueVelocity, Target: 7, Velocity: &velocity})
	if err != nil {
		t.Fatalf("encode cue: %v", err)
	}
	var decoded struct {
		Ver  int            `json:"ver"`
		Type string         `json:"type"`
		Cue  map[string]any `json:"cue"`
	}
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("decode cue: %v", err)
	}
	if decoded.Ver != Version || decoded.Type != TypeCue {
		t.Fatalf("unexpected frame header: %+v", decoded)
	}
	if decoded.Cue["kind"] != "velocity" {
		t.Fatalf("unexpected kind: %v", decoded.Cue["kind"])
	}
	if _, leaked := decoded.Cue["Target"]; leaked {
		t.Fatalf("expected entity handle to stay server side")
	}
}

func TestEncodeMatchUpdateInlinesFields(t *testing.T) {
	loser := uint8(1)
	encoded, err := EncodeMatchUpdate(MatchUpdate{Match: "m1", State: "ended", Loser: &loser, Cause: "fall_out", Tick: 51})
	if err != nil {
		t.Fatalf("encode match update: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("decode match update: %v", err)
	}
	if decoded["type"] != TypeMatch || decoded["state"] != "ended" || decoded["loser"] != float64(1) {
		t.Fatalf("unexpected payload: %v", decoded)
	}
	if _, ok := decoded["members"]; ok {
		t.Fatalf("expected empty members to be omitted")
	}
}

func TestEncodeCommandReject(t *testing.T) {
	encoded, err := EncodeCommandReject(CommandReject{Reason: "queue_full", Retry: true})
	if err != nil {
		t.Fatalf("encode reject: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("decode reject: %v", err)
	}
	if decoded["type"] != "commandReject" || decoded["reason"] != "queue_full" || decoded["retry"] != true {
		t.Fatalf("unexpected payload: %v", decoded)
	}
	if _, ok := decoded["tick"]; ok {
		t.Fatalf("expected zero tick to be omitted")
	}
}

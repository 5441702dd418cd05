package intake

import (
	"testing"
	"time"

	"github.com/pythonsnake602/MiniBit/internal/net/proto"
	"github.com/pythonsnake602/MiniBit/internal/sim"
)

type stubQueue struct {
	commands []sim.Command
	accept   bool
	reason   string
}

func (q *stubQueue) Enqueue(cmd sim.Command) (bool, string) {
	if !q.accept {
		return false, q.reason
	}
	q.commands = append(q.commands, cmd)
	return true, ""
}

func TestStageClientCommandStampsOrigin(t *testing.T) {
	queue := &stubQueue{accept: true}
	now := time.Unix(1700, 0)
	ctx := CommandContext{
		Queue:     queue,
		HasPlayer: func(id string) bool { return id == "A" },
		Tick:      func() uint64 { return 100 },
		Now:       func() time.Time { return now },
	}

	cmd, ok, reason := StageClientCommand(ctx, "A", proto.ClientMessage{Type: proto.TypeInteract, Target: "B"})
	if !ok {
		t.Fatalf("expected command to be staged, got %q", reason)
	}
	if cmd.ActorID != "A" || cmd.OriginTick != 100 || !cmd.IssuedAt.Equal(now) {
		t.Fatalf("unexpected origin metadata: %+v", cmd)
	}
	if len(queue.commands) != 1 || queue.commands[0].Interact.Target != "B" {
		t.Fatalf("expected queued interact, got %+v", queue.commands)
	}
}

func TestStageClientCommandRejections(t *testing.T) {
	cases := []struct {
		name   string
		player string
		msg    proto.ClientMessage
		queue  *stubQueue
		want   string
	}{
		{"unknown type", "A", proto.ClientMessage{Type: "heartbeat"}, &stubQueue{accept: true}, RejectInvalidCommand},
		{"bad interaction kind", "A", proto.ClientMessage{Type: proto.TypeInteract, Target: "B", Kind: "hug"}, &stubQueue{accept: true}, RejectInvalidCommand},
		{"self target", "A", proto.ClientMessage{Type: proto.TypeInteract, Target: "A"}, &stubQueue{accept: true}, RejectSelfTarget},
		{"unknown actor", "ghost", proto.ClientMessage{Type: proto.TypeMove}, &stubQueue{accept: true}, RejectUnknownActor},
		{"queue full", "A", proto.ClientMessage{Type: proto.TypeSprint, Started: true}, &stubQueue{reason: sim.CommandRejectQueueFull}, sim.CommandRejectQueueFull},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := CommandContext{Queue: tc.queue, HasPlayer: func(id string) bool { return id == "A" }}
			_, ok, reason := StageClientCommand(ctx, tc.player, tc.msg)
			if ok || reason != tc.want {
				t.Fatalf("expected rejection %q, got ok=%v reason=%q", tc.want, ok, reason)
			}
		})
	}
}

func TestStageClientCommandAllowsJoinBeforeSpawn(t *testing.T) {
	queue := &stubQueue{accept: true}
	ctx := CommandContext{Queue: queue, HasPlayer: func(string) bool { return false }}
	if _, ok, reason := StageClientCommand(ctx, "new", proto.ClientMessage{Type: proto.TypeJoin}); !ok {
		t.Fatalf("expected join to be staged, got %q", reason)
	}
	if _, ok, _ := StageClientCommand(CommandContext{}, "new", proto.ClientMessage{Type: proto.TypeJoin}); ok {
		t.Fatalf("expected missing queue to reject")
	}
}

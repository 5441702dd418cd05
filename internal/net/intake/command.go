package intake

import (
	"time"

	"github.com/pythonsnake602/MiniBit/internal/combat"
	"github.com/pythonsnake602/MiniBit/internal/net/proto"
	"github.com/pythonsnake602/MiniBit/internal/sim"
)

const (
	// RejectInvalidCommand marks payloads that do not decode to a command.
	RejectInvalidCommand = "invalid_command"
	// RejectUnknownActor marks commands from sessions without a participant.
	RejectUnknownActor = "unknown_actor"
	// RejectSelfTarget marks interactions aimed at the sender.
	RejectSelfTarget = "self_target"
)

// Enqueuer accepts staged commands for the next tick.
type Enqueuer interface {
	Enqueue(sim.Command) (bool, string)
}

type CommandContext struct {
	Queue     Enqueuer
	HasPlayer func(string) bool
	Tick      func() uint64
	Now       func() time.Time
}

// StageClientCommand validates msg and pushes it onto the tick queue. Joins
// are accepted from sessions that have no participant yet.
func StageClientCommand(ctx CommandContext, playerID string, msg proto.ClientMessage) (sim.Command, bool, string) {
	var zero sim.Command

	command, ok := proto.ClientCommand(msg)
	if !ok {
		return zero, false, RejectInvalidCommand
	}

	switch command.Type {
	case sim.CommandJoin, sim.CommandLeave:
	case sim.CommandMove:
		if command.Move == nil {
			return zero, false, RejectInvalidCommand
		}
	case sim.CommandSprint:
		if command.Sprint == nil {
			return zero, false, RejectInvalidCommand
		}
	case sim.CommandInteract:
		if command.Interact == nil {
			return zero, false, RejectInvalidCommand
		}
		if _, known := combat.ParseInteractionKind(command.Interact.Kind); !known {
			return zero, false, RejectInvalidCommand
		}
		if command.Interact.Target == playerID {
			return zero, false, RejectSelfTarget
		}
	default:
		return zero, false, RejectInvalidCommand
	}

	if command.Type != sim.CommandJoin && ctx.HasPlayer != nil && !ctx.HasPlayer(playerID) {
		return zero, false, RejectUnknownActor
	}

	command.ActorID = playerID
	if ctx.Tick != nil {
		command.OriginTick = ctx.Tick()
	}
	if ctx.Now != nil {
		command.IssuedAt = ctx.Now()
	} else {
		command.IssuedAt = time.Now()
	}

	if ctx.Queue == nil {
		return zero, false, sim.CommandRejectQueueFull
	}
	if ok, reason := ctx.Queue.Enqueue(command); !ok {
		return zero, false, reason
	}

	return command, true, ""
}

package game

import (
	"context"

	"github.com/pythonsnake602/MiniBit/internal/combat"
	"github.com/pythonsnake602/MiniBit/internal/duels"
	"github.com/pythonsnake602/MiniBit/internal/sim"
	"github.com/pythonsnake602/MiniBit/internal/state"
	"github.com/pythonsnake602/MiniBit/logging"
	"github.com/pythonsnake602/MiniBit/logging/lifecycle"
	"github.com/pythonsnake602/MiniBit/logging/simulation"
)

// LeaveReason values recorded on lifecycle.player_left.
const (
	LeaveQuit       = "quit"
	LeaveDisconnect = "disconnect"
)

// Step runs one tick: staged commands first, then every pipeline stage.
func (s *Server) Step(ctx context.Context, tick sim.LoopTickContext, commands []sim.Command) {
	s.tick = tick.Tick
	s.current.Store(tick.Tick)
	s.coord.Begin(int64(tick.Tick))
	s.sprints = s.sprints[:0]
	s.interactions = s.interactions[:0]
	s.hits = s.hits[:0]

	frame := &sim.Frame{Ctx: ctx, Tick: tick.Tick, Now: tick.Now, Commands: commands}
	s.applyCommands(frame)
	s.pipeline.Run(frame)
}

func (s *Server) applyCommands(frame *sim.Frame) {
	for _, cmd := range frame.Commands {
		switch cmd.Type {
		case sim.CommandJoin:
			s.join(frame, cmd.ActorID)
		case sim.CommandLeave:
			reason := LeaveQuit
			if cmd.Leave != nil && cmd.Leave.Reason != "" {
				reason = cmd.Leave.Reason
			}
			s.leave(frame, cmd.ActorID, reason)
		case sim.CommandMove:
			s.move(cmd)
		case sim.CommandSprint:
			if entity, ok := s.store.Lookup(cmd.ActorID); ok && cmd.Sprint != nil {
				s.sprints = append(s.sprints, combat.SprintEvent{Entity: entity, Started: cmd.Sprint.Started})
			}
		case sim.CommandInteract:
			s.interact(cmd)
		}
	}
}

func (s *Server) join(frame *sim.Frame, name string) {
	if _, exists := s.store.Lookup(name); exists {
		return
	}
	lobby := s.settings.Lobby
	spawn := state.Vec3{X: lobby.X, Y: lobby.Y, Z: lobby.Z}
	entity, err := s.store.Spawn(name, spawn)
	if err != nil {
		s.logger.Printf("[%s] join %q rejected: %v", s.mode, name, err)
		return
	}
	if pos, ok := s.store.Position(entity); ok {
		pos.Yaw = lobby.Yaw
	}
	s.rosterMu.Lock()
	s.roster[name] = struct{}{}
	s.rosterMu.Unlock()

	id, _ := s.store.Identity(entity)
	lifecycle.PlayerJoined(frame.Context(), s.pub, frame.Tick, logging.PlayerRef(name), lifecycle.PlayerJoinedPayload{
		NetworkID: id.NetworkID,
		SpawnX:    spawn.X,
		SpawnY:    spawn.Y,
		SpawnZ:    spawn.Z,
	}, nil)
	s.metrics.Store(MetricParticipants, uint64(s.store.Len()))

	if _, err := s.coord.Admit(entity); err != nil {
		s.logger.Printf("[%s] admit %q failed: %v", s.mode, name, err)
	}
}

func (s *Server) leave(frame *sim.Frame, name, reason string) {
	entity, ok := s.store.Lookup(name)
	if !ok {
		return
	}
	s.coord.Leave(entity)
	s.store.Despawn(entity)
	s.rosterMu.Lock()
	delete(s.roster, name)
	s.rosterMu.Unlock()
	lifecycle.PlayerLeft(frame.Context(), s.pub, frame.Tick, logging.PlayerRef(name), lifecycle.PlayerLeftPayload{Reason: reason}, nil)
	s.metrics.Store(MetricParticipants, uint64(s.store.Len()))
}

func (s *Server) move(cmd sim.Command) {
	if cmd.Move == nil {
		return
	}
	entity, ok := s.store.Lookup(cmd.ActorID)
	if !ok {
		return
	}
	next := state.Vec3{X: cmd.Move.X, Y: cmd.Move.Y, Z: cmd.Move.Z}
	if !next.IsFinite() {
		return
	}
	if pos, ok := s.store.Position(entity); ok {
		pos.Value = next
		pos.Yaw = cmd.Move.Yaw
	}
}

func (s *Server) interact(cmd sim.Command) {
	if cmd.Interact == nil {
		return
	}
	attacker, ok := s.store.Lookup(cmd.ActorID)
	if !ok {
		return
	}
	victim, ok := s.store.Lookup(cmd.Interact.Target)
	if !ok {
		return
	}
	kind, _ := combat.ParseInteractionKind(cmd.Interact.Kind)
	s.interactions = append(s.interactions, combat.Interaction{Attacker: attacker, Victim: victim, Kind: kind})
}

func (s *Server) sprintStage(*sim.Frame) {
	combat.HandleSprintEvents(s.sprints, s.store)
}

func (s *Server) combatStage(*sim.Frame) {
	report := s.resolver.Resolve(int64(s.tick), s.interactions)
	s.hits = append(s.hits, report.Accepted...)
}

func (s *Server) endOfMatchStage(*sim.Frame) {
	world := s.store.World()
	for _, knockout := range s.rules.CheckEnd(s.env(), s.hits) {
		if s.onKnockout != nil {
			s.onKnockout(knockout.Hit, knockout.End)
		}
		state.EndGame.Publish(world, knockout.End)
	}
}

func (s *Server) outOfBoundsStage(*sim.Frame) {
	world := s.store.World()
	for _, end := range s.rules.CheckBounds(s.env()) {
		state.EndGame.Publish(world, end)
	}
}

func (s *Server) lifecycleStage(*sim.Frame) {
	s.coord.ProcessEvents()
}

func (s *Server) afterStep(result sim.LoopStepResult) {
	sample := s.bench.Record(result)
	mspt := sim.Millis(result.Duration)
	s.metrics.Observe(MetricTickDuration, mspt)
	ctx := context.Background()
	if sample.Overrun {
		simulation.TickBudgetOverrun(ctx, s.pub, result.Tick, simulation.TickBudgetOverrunPayload{
			DurationMillis: result.Duration.Milliseconds(),
			BudgetMillis:   result.Budget.Milliseconds(),
			Ratio:          float64(result.Duration) / float64(result.Budget),
			Streak:         sample.Streak,
		}, nil)
	}
	if sample.Report != nil {
		simulation.TickReport(ctx, s.pub, result.Tick, simulation.TickReportPayload{
			Ticks:         sample.Report.Ticks,
			AverageMSPT:   sim.Millis(sample.Report.Average),
			MaxMSPT:       sim.Millis(sample.Report.Max),
			ActiveMatches: s.coord.ActiveMatches(),
			Participants:  s.store.CountInMatch(),
		}, nil)
	}
	s.publishDiagnostics(mspt)
}

func (s *Server) announce(match duels.Match) {
	if s.notifier == nil {
		return
	}
	update := MatchUpdate{
		Match:   match.ID.String(),
		State:   match.State.String(),
		Members: make([]string, 0, len(match.Members)),
		Tick:    s.tick,
	}
	for _, entity := range match.Members {
		if name, ok := s.nameOf(entity); ok {
			update.Members = append(update.Members, name)
		}
	}
	if match.State == duels.MatchEnded {
		loser := match.Loser
		update.Loser = &loser
		update.Cause = string(match.Cause)
	}
	s.notifier.NotifyMatch(update.Members, update)
}

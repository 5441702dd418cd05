// Package game runs one mode server: the participant store, the combat
// engine, the mode's rule set and the match coordinator, all driven by a
// single fixed-rate tick goroutine.
package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/yohamta/donburi"

	"github.com/pythonsnake602/MiniBit/internal/combat"
	"github.com/pythonsnake602/MiniBit/internal/config"
	"github.com/pythonsnake602/MiniBit/internal/duels"
	"github.com/pythonsnake602/MiniBit/internal/minigame"
	"github.com/pythonsnake602/MiniBit/internal/presentation"
	"github.com/pythonsnake602/MiniBit/internal/sim"
	"github.com/pythonsnake602/MiniBit/internal/state"
	"github.com/pythonsnake602/MiniBit/internal/telemetry"
	"github.com/pythonsnake602/MiniBit/logging"
)

const (
	MetricTickDuration = "minibit.tick.duration"
	MetricParticipants = "minibit.participants"

	defaultCommandCapacity = 1024
	defaultPerActorLimit   = 32
)

// MatchNotifier is told about match transitions, addressed by member name.
type MatchNotifier interface {
	NotifyMatch(members []string, update MatchUpdate)
}

// MatchUpdate is a match transition as seen by transports.
type MatchUpdate struct {
	Match   string
	State   string
	Members []string
	Loser   *uint8
	Cause   string
	Tick    uint64
}

// Config wires a Server to its mode settings and collaborators.
type Config struct {
	Mode     string
	Settings config.ModeConfig
	// Rules defaults to the catalog entry for Mode.
	Rules     minigame.RuleSet
	Logger    telemetry.Logger
	Publisher logging.Publisher
	Metrics   telemetry.Metrics
	Clock     logging.Clock
	// Sink delivers cues to connected participants by name.
	Sink presentation.Sink
	// Observer receives every cue in addition to Sink.
	Observer presentation.Presenter
	Notifier MatchNotifier

	CommandCapacity int
	PerActorLimit   int
}

// Server is one mode server.
type Server struct {
	mode     string
	settings config.ModeConfig
	store    *state.Store
	rules    minigame.RuleSet
	coord    *duels.Coordinator
	resolver *combat.Resolver
	pipeline *sim.Pipeline
	loop     *sim.Loop
	cues     presentation.Presenter
	pub      logging.Publisher
	metrics  telemetry.Metrics
	logger   telemetry.Logger
	notifier MatchNotifier

	onHit      func(combat.Hit)
	onKnockout func(combat.Hit, state.EndGameEvent)
	bench      sim.Bench

	// Tick-scoped scratch, owned by the tick goroutine.
	tick         uint64
	sprints      []combat.SprintEvent
	interactions []combat.Interaction
	hits         []combat.Hit

	current atomic.Uint64

	rosterMu sync.RWMutex
	roster   map[string]struct{}

	diagMu      sync.RWMutex
	diagnostics Diagnostics
}

// NewServer assembles a mode server. It does not start ticking until Run.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Mode == "" {
		return nil, errors.New("game: mode is required")
	}
	rules := cfg.Rules
	if rules == nil {
		var err error
		if rules, err = minigame.DefaultCatalog().New(cfg.Mode, cfg.Settings); err != nil {
			return nil, err
		}
	}

	s := &Server{
		mode:     cfg.Mode,
		settings: cfg.Settings,
		store:    state.NewStore(),
		rules:    rules,
		pub:      logging.ForMode(cfg.Publisher, cfg.Mode),
		metrics:  cfg.Metrics,
		logger:   cfg.Logger,
		notifier: cfg.Notifier,
		roster:   make(map[string]struct{}),
	}
	if cfg.Publisher == nil {
		s.pub = logging.NopPublisher()
	}
	if s.metrics == nil {
		s.metrics = telemetry.NopMetrics{}
	}
	if s.logger == nil {
		s.logger = telemetry.LoggerFunc(nil)
	}

	presenters := []presentation.Presenter{presentation.NewDispatcher(s.nameOf, cfg.Sink)}
	if cfg.Observer != nil {
		presenters = append(presenters, cfg.Observer)
	}
	s.cues = presentation.Multi(presenters...)

	coord, err := duels.NewCoordinator(s.store, rules, duels.Config{
		PlayersPerMatch: cfg.Settings.PlayersPerMatch,
		Spawns:          spawnPoints(cfg.Settings.Spawns),
		Lobby:           state.Vec3{X: cfg.Settings.Lobby.X, Y: cfg.Settings.Lobby.Y, Z: cfg.Settings.Lobby.Z},
		Arenas:          cfg.Settings.Arenas,
		ArenaSpacing:    cfg.Settings.ArenaSpacing,
		Rematch:         cfg.Settings.Rematch,
	}, duels.Options{
		Cues:      s.cues,
		Publisher: s.pub,
		Metrics:   s.metrics,
		Observer:  s.announce,
	})
	if err != nil {
		return nil, fmt.Errorf("game: %s coordinator: %w", cfg.Mode, err)
	}
	s.coord = coord

	lookup := func(entity donburi.Entity) logging.EntityRef {
		name, _ := s.nameOf(entity)
		return logging.PlayerRef(name)
	}
	hitTelemetry := combat.NewHitTelemetryRecorder(combat.HitTelemetryRecorderConfig{Publisher: s.pub, LookupEntity: lookup})
	s.onKnockout = combat.NewKnockoutTelemetryRecorder(combat.KnockoutTelemetryRecorderConfig{Publisher: s.pub, LookupEntity: lookup})
	s.onHit = func(hit combat.Hit) {
		s.rules.ApplyHit(s.env(), hit)
		if hitTelemetry != nil {
			hitTelemetry(hit)
		}
	}
	s.resolver = combat.NewResolver(combat.ResolverConfig{
		Store:   s.store,
		Gate:    rules.Gate(),
		Cues:    s.cues,
		Metrics: s.metrics,
		OnHit:   s.onHit,
	})

	s.pipeline, err = sim.NewPipeline(sim.Stages{
		sim.StageSprint:      s.sprintStage,
		sim.StageCombat:      s.combatStage,
		sim.StageEndOfMatch:  s.endOfMatchStage,
		sim.StageOutOfBounds: s.outOfBoundsStage,
		sim.StageLifecycle:   s.lifecycleStage,
	})
	if err != nil {
		return nil, err
	}

	capacity := cfg.CommandCapacity
	if capacity <= 0 {
		capacity = defaultCommandCapacity
	}
	perActor := cfg.PerActorLimit
	if perActor <= 0 {
		perActor = defaultPerActorLimit
	}
	opts := []sim.LoopOption{
		sim.WithLogger(s.logger),
		sim.WithMetrics(s.metrics),
		sim.WithMode(cfg.Mode),
	}
	if cfg.Clock != nil {
		opts = append(opts, sim.WithClock(cfg.Clock))
	}
	s.loop = sim.NewLoop(sim.LoopConfig{
		TickRate:        cfg.Settings.TickRate,
		CatchupMaxTicks: 2,
		CommandCapacity: capacity,
		PerActorLimit:   perActor,
		WarningStep:     capacity / 2,
	}, sim.LoopHooks{
		Step:      s.Step,
		AfterStep: s.afterStep,
		NextTick:  func() uint64 { return s.current.Add(1) },
		OnQueueWarning: func(length int) {
			s.logger.Printf("[%s] command queue at %d", s.mode, length)
		},
	}, opts...)

	s.publishDiagnostics(0)
	return s, nil
}

func spawnPoints(spawns []config.Spawn) []duels.SpawnPoint {
	out := make([]duels.SpawnPoint, 0, len(spawns))
	for _, spawn := range spawns {
		out = append(out, duels.SpawnPoint{
			Offset: state.Vec3{X: spawn.X, Y: spawn.Y, Z: spawn.Z},
			Yaw:    spawn.Yaw,
		})
	}
	return out
}

// Mode names the rule set this server runs.
func (s *Server) Mode() string { return s.mode }

// Settings returns the mode settings the server was built with.
func (s *Server) Settings() config.ModeConfig { return s.settings }

// Address is the listen address from the mode settings.
func (s *Server) Address() string { return s.settings.Address }

// Tick returns the last tick started.
func (s *Server) Tick() uint64 { return s.current.Load() }

// Store exposes the participant store. Callers other than the tick goroutine
// must not touch it while Run is active.
func (s *Server) Store() *state.Store { return s.store }

// Coordinator exposes the match coordinator under the same rule as Store.
func (s *Server) Coordinator() *duels.Coordinator { return s.coord }

// ObserveStages registers a callback invoked before each pipeline stage.
func (s *Server) ObserveStages(fn func(sim.Stage)) { s.pipeline.Observe(fn) }

// Enqueue stages a command for the next tick. Safe for concurrent use.
func (s *Server) Enqueue(cmd sim.Command) (bool, string) {
	return s.loop.Enqueue(cmd)
}

// HasPlayer reports whether name has joined. Safe for concurrent use.
func (s *Server) HasPlayer(name string) bool {
	s.rosterMu.RLock()
	defer s.rosterMu.RUnlock()
	_, ok := s.roster[name]
	return ok
}

// Run ticks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Printf("[%s] simulation running at %d ticks per second", s.mode, s.settings.TickRate)
	err := s.loop.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (s *Server) env() minigame.Env {
	return minigame.Env{Store: s.store, Cues: s.cues, Tick: int64(s.tick)}
}

func (s *Server) nameOf(entity donburi.Entity) (string, bool) {
	id, ok := s.store.Identity(entity)
	if !ok {
		return "", false
	}
	return id.Name, true
}

// Package duels is the in-process match lifecycle coordinator. It owns match
// identity, membership and arenas, and is the single source of truth for
// whether a match has already ended.
package duels

import (
	"context"
	"errors"
	"fmt"

	"github.com/yohamta/donburi"

	"github.com/pythonsnake602/MiniBit/internal/minigame"
	"github.com/pythonsnake602/MiniBit/internal/presentation"
	"github.com/pythonsnake602/MiniBit/internal/state"
	"github.com/pythonsnake602/MiniBit/internal/telemetry"
	"github.com/pythonsnake602/MiniBit/logging"
	"github.com/pythonsnake602/MiniBit/logging/lifecycle"
)

const (
	MetricMatchesStarted   = "minibit.matches.started"
	MetricMatchesEnded     = "minibit.matches.ended"
	MetricDuplicateEnds    = "minibit.matches.duplicate_ends"
	MetricMatchesActive    = "minibit.matches.active"
	MessageWon             = "You won!"
	MessageLost            = "You lost!"
	defaultPlayersPerMatch = 2
	defaultRetainedHistory = 64
)

var (
	ErrStaleEntity   = errors.New("duels: entity is not present")
	ErrAlreadyQueued = errors.New("duels: entity already belongs to a match")
)

// Config shapes the matches a coordinator forms.
type Config struct {
	PlayersPerMatch int
	Spawns          []SpawnPoint
	Lobby           state.Vec3
	Arenas          int
	ArenaSpacing    float64
	Rematch         bool
	// History bounds how many ended matches are kept for diagnostics.
	History int
}

// Coordinator forms matches from admitted participants, starts them once
// full, and tears them down on the first end request.
type Coordinator struct {
	store   *state.Store
	rules   minigame.RuleSet
	cues    presentation.Presenter
	pub     logging.Publisher
	metrics telemetry.Metrics
	observe func(Match)
	cfg     Config

	matches  map[state.MatchID]*Match
	memberOf map[donburi.Entity]state.MatchID
	forming  *Match
	waiting  []*Match
	arenas   *arenas
	history  []state.MatchID
	active   int
	tick     int64
}

// Options carries the optional collaborators of a Coordinator.
type Options struct {
	Cues      presentation.Presenter
	Publisher logging.Publisher
	Metrics   telemetry.Metrics
	// Observer sees each match once after it starts and once after it ends.
	Observer func(Match)
}

// NewCoordinator subscribes the coordinator to the store's start and end
// queues.
func NewCoordinator(store *state.Store, rules minigame.RuleSet, cfg Config, opts Options) (*Coordinator, error) {
	if store == nil {
		return nil, errors.New("duels: store is required")
	}
	if rules == nil {
		return nil, errors.New("duels: rule set is required")
	}
	if cfg.PlayersPerMatch <= 0 {
		cfg.PlayersPerMatch = defaultPlayersPerMatch
	}
	if len(cfg.Spawns) < 2 {
		return nil, fmt.Errorf("duels: need at least 2 spawns, got %d", len(cfg.Spawns))
	}
	if cfg.History <= 0 {
		cfg.History = defaultRetainedHistory
	}
	c := &Coordinator{
		store:    store,
		rules:    rules,
		cues:     opts.Cues,
		pub:      opts.Publisher,
		metrics:  opts.Metrics,
		observe:  opts.Observer,
		cfg:      cfg,
		matches:  make(map[state.MatchID]*Match),
		memberOf: make(map[donburi.Entity]state.MatchID),
		arenas:   newArenas(cfg.Arenas, cfg.ArenaSpacing),
	}
	if c.cues == nil {
		c.cues = presentation.Nop{}
	}
	if c.pub == nil {
		c.pub = logging.NopPublisher()
	}
	if c.metrics == nil {
		c.metrics = telemetry.NopMetrics{}
	}

	world := store.World()
	state.EndGame.Subscribe(world, func(_ donburi.World, ev state.EndGameEvent) {
		c.AbsorbEnd(ev)
	})
	state.StartGame.Subscribe(world, func(_ donburi.World, ev state.StartGameEvent) {
		c.applyStart(ev)
	})
	return c, nil
}

// Begin records the tick that subsequent calls belong to.
func (c *Coordinator) Begin(tick int64) {
	c.tick = tick
}

func (c *Coordinator) teams() int {
	return min(len(c.cfg.Spawns), c.cfg.PlayersPerMatch)
}

func (c *Coordinator) env() minigame.Env {
	return minigame.Env{Store: c.store, Cues: c.cues, Tick: c.tick}
}

// Admit queues an idle participant into the forming match, creating one when
// needed. A match that reaches PlayersPerMatch members is started as soon as
// an arena is free.
func (c *Coordinator) Admit(entity donburi.Entity) (state.MatchID, error) {
	if !c.store.Valid(entity) {
		return state.MatchID{}, ErrStaleEntity
	}
	if id, queued := c.memberOf[entity]; queued {
		return id, ErrAlreadyQueued
	}
	if c.forming == nil {
		c.forming = &Match{ID: state.NewMatchID(), State: MatchForming, Arena: -1}
		c.matches[c.forming.ID] = c.forming
	}
	match := c.forming
	match.Members = append(match.Members, entity)
	c.memberOf[entity] = match.ID
	if game, ok := c.store.GameState(entity); ok {
		game.Team = teamOf(len(match.Members)-1, c.teams())
	}

	if len(match.Members) >= c.cfg.PlayersPerMatch {
		c.forming = nil
		c.waiting = append(c.waiting, match)
		c.startWaiting()
	}
	return match.ID, nil
}

// startWaiting places full matches into free arenas and publishes their start.
func (c *Coordinator) startWaiting() {
	for len(c.waiting) > 0 {
		arena, ok := c.arenas.acquire()
		if !ok {
			return
		}
		match := c.waiting[0]
		c.waiting = c.waiting[1:]
		match.Arena = arena

		origin := c.arenas.origin(arena)
		teams := c.teams()
		for i, entity := range match.Members {
			spawn := c.cfg.Spawns[int(teamOf(i, teams))]
			target := origin.Add(spawn.Offset)
			if pos, ok := c.store.Position(entity); ok {
				pos.Value = target
				pos.Yaw = spawn.Yaw
			}
			if vel, ok := c.store.Velocity(entity); ok {
				vel.Value = state.Vec3{}
			}
			c.cues.Teleport(entity, target)
		}
		state.StartGame.Publish(c.store.World(), state.StartGameEvent{Match: match.ID})
	}
}

// applyStart assigns membership and runs the mode's start hook. Combat state
// is reset to baseline so hits from a previous match cannot carry over.
func (c *Coordinator) applyStart(ev state.StartGameEvent) {
	match, ok := c.matches[ev.Match]
	if !ok || match.State != MatchForming || match.Arena < 0 {
		return
	}
	members := c.liveMembers(match)
	teams := c.teams()
	for i, entity := range match.Members {
		if game, ok := c.store.GameState(entity); ok {
			game.Match = state.InMatch(match.ID)
			game.Team = teamOf(i, teams)
		}
		if combat, ok := c.store.Combat(entity); ok {
			combat.Reset()
		}
	}
	c.rules.OnMatchStart(c.env(), members)

	match.State = MatchActive
	match.StartedTick = c.tick
	c.active++
	c.metrics.Add(MetricMatchesStarted, 1)
	c.metrics.Store(MetricMatchesActive, uint64(c.active))

	lifecycle.MatchStarted(context.Background(), c.pub, uint64(max(c.tick, 0)), logging.MatchRef(match.ID.String()),
		lifecycle.MatchStartedPayload{Arena: match.Arena, Members: c.names(match.Members)}, nil)
	c.notify(match)
}

func (c *Coordinator) notify(match *Match) {
	if c.observe == nil {
		return
	}
	c.observe(match.clone())
}

// AbsorbEnd ends the match named by ev. Only the first event for an active
// match has an effect; later, unknown or premature events return false.
func (c *Coordinator) AbsorbEnd(ev state.EndGameEvent) bool {
	return c.end(ev, nil)
}

func (c *Coordinator) end(ev state.EndGameEvent, leaver *donburi.Entity) bool {
	match, ok := c.matches[ev.Match]
	if !ok || match.State != MatchActive {
		c.metrics.Add(MetricDuplicateEnds, 1)
		return false
	}

	match.State = MatchEnded
	match.EndedTick = c.tick
	match.Loser = ev.Loser
	match.Cause = ev.Cause
	c.active--

	members := c.liveMembers(match)
	c.rules.OnMatchEnd(c.env(), members)

	teams := c.teams()
	for i, entity := range match.Members {
		delete(c.memberOf, entity)
		if !c.store.Valid(entity) {
			continue
		}
		if game, ok := c.store.GameState(entity); ok {
			game.Match = state.NoMatch
			game.Team = 0
		}
		if teamOf(i, teams) == ev.Loser {
			c.cues.SendMessage(entity, MessageLost)
		} else {
			c.cues.SendMessage(entity, MessageWon)
		}
		if pos, ok := c.store.Position(entity); ok {
			pos.Value = c.cfg.Lobby
		}
		c.cues.Teleport(entity, c.cfg.Lobby)
	}
	c.arenas.release(match.Arena)

	c.metrics.Add(MetricMatchesEnded, 1)
	c.metrics.Store(MetricMatchesActive, uint64(c.active))
	lifecycle.MatchEnded(context.Background(), c.pub, uint64(max(c.tick, 0)), logging.MatchRef(match.ID.String()),
		lifecycle.MatchEndedPayload{
			Loser:         ev.Loser,
			Cause:         string(ev.Cause),
			Members:       c.names(match.Members),
			DurationTicks: match.EndedTick - match.StartedTick,
		}, nil)
	c.notify(match)

	c.retain(match.ID)
	if c.cfg.Rematch {
		for _, entity := range members {
			if leaver != nil && entity == *leaver {
				continue
			}
			_, _ = c.Admit(entity)
		}
	}
	c.startWaiting()
	return true
}

// Leave removes a participant. Leaving an active match ends it with the
// leaver's team as loser; leaving a match that has not started only drops
// the member and sends the match back to forming.
func (c *Coordinator) Leave(entity donburi.Entity) {
	id, ok := c.memberOf[entity]
	if !ok {
		return
	}
	match := c.matches[id]
	switch match.State {
	case MatchForming:
		delete(c.memberOf, entity)
		match.remove(entity)
		c.requeue(match)
	case MatchActive:
		team := teamOf(match.indexOf(entity), c.teams())
		c.end(state.EndGameEvent{Match: id, Loser: team, Cause: state.EndCauseDisconnect}, &entity)
	}
}

// requeue returns a match that lost a member before starting to the forming
// slot, merging it into the current forming match when there is one.
func (c *Coordinator) requeue(match *Match) {
	for i, waiting := range c.waiting {
		if waiting == match {
			c.waiting = append(c.waiting[:i], c.waiting[i+1:]...)
			break
		}
	}
	if match.Arena >= 0 {
		// Start was published but not applied yet.
		c.arenas.release(match.Arena)
		match.Arena = -1
	}

	switch {
	case c.forming == match:
		if len(match.Members) == 0 {
			c.forming = nil
			delete(c.matches, match.ID)
			return
		}
		c.reteam(match)
	case c.forming == nil:
		c.forming = match
		c.reteam(match)
	default:
		members := match.Members
		match.Members = nil
		delete(c.matches, match.ID)
		for _, entity := range members {
			delete(c.memberOf, entity)
			_, _ = c.Admit(entity)
		}
	}
}

func (c *Coordinator) reteam(match *Match) {
	teams := c.teams()
	for i, entity := range match.Members {
		if game, ok := c.store.GameState(entity); ok {
			game.Team = teamOf(i, teams)
		}
	}
}

// ProcessEvents drains the end queue and then the start queue. An end
// published earlier in the tick is therefore absorbed before any start that
// the resulting teardown triggers.
func (c *Coordinator) ProcessEvents() {
	world := c.store.World()
	state.EndGame.ProcessEvents(world)
	state.StartGame.ProcessEvents(world)
}

func (c *Coordinator) retain(id state.MatchID) {
	c.history = append(c.history, id)
	for len(c.history) > c.cfg.History {
		delete(c.matches, c.history[0])
		c.history = c.history[1:]
	}
}

func (c *Coordinator) liveMembers(match *Match) []donburi.Entity {
	out := make([]donburi.Entity, 0, len(match.Members))
	for _, entity := range match.Members {
		if c.store.Valid(entity) {
			out = append(out, entity)
		}
	}
	return out
}

func (c *Coordinator) names(members []donburi.Entity) []string {
	out := make([]string, 0, len(members))
	for _, entity := range members {
		if id, ok := c.store.Identity(entity); ok {
			out = append(out, id.Name)
		}
	}
	return out
}

// Members returns the member set of a match in join order.
func (c *Coordinator) Members(id state.MatchID) []donburi.Entity {
	match, ok := c.matches[id]
	if !ok {
		return nil
	}
	return append([]donburi.Entity(nil), match.Members...)
}

// State reports the lifecycle phase of a match.
func (c *Coordinator) State(id state.MatchID) (MatchState, bool) {
	match, ok := c.matches[id]
	if !ok {
		return 0, false
	}
	return match.State, true
}

// Match returns a copy of the coordinator's record.
func (c *Coordinator) Match(id state.MatchID) (Match, bool) {
	match, ok := c.matches[id]
	if !ok {
		return Match{}, false
	}
	return match.clone(), true
}

// MatchOf returns the match an entity is queued in or playing.
func (c *Coordinator) MatchOf(entity donburi.Entity) (state.MatchID, bool) {
	id, ok := c.memberOf[entity]
	return id, ok
}

// ActiveMatches reports the number of matches currently in play.
func (c *Coordinator) ActiveMatches() int {
	return c.active
}

// FreeArenas reports how many arenas are unassigned.
func (c *Coordinator) FreeArenas() int {
	return c.arenas.free()
}

// Summaries lists every known match for diagnostics.
func (c *Coordinator) Summaries() []Summary {
	out := make([]Summary, 0, len(c.matches))
	for _, match := range c.matches {
		summary := Summary{
			ID:          match.ID.String(),
			State:       match.State.String(),
			Arena:       match.Arena,
			Members:     c.names(match.Members),
			StartedTick: match.StartedTick,
		}
		if match.State == MatchEnded {
			loser := match.Loser
			summary.EndedTick = match.EndedTick
			summary.Loser = &loser
			summary.Cause = string(match.Cause)
		}
		out = append(out, summary)
	}
	return out
}

package combat

import (
	"github.com/yohamta/donburi"

	"github.com/pythonsnake602/MiniBit/internal/presentation"
	"github.com/pythonsnake602/MiniBit/internal/state"
	"github.com/pythonsnake602/MiniBit/internal/telemetry"
)

const (
	MetricHitsAccepted = "minibit.combat.hits.accepted"
	MetricHitsRejected = "minibit.combat.hits.rejected"
	MetricHitsSkipped  = "minibit.combat.hits.skipped"
)

// Hit describes an accepted interaction after knockback was applied.
type Hit struct {
	Tick         int64
	Attacker     donburi.Entity
	Victim       donburi.Entity
	Velocity     state.Vec3
	Boosted      bool
	Match        state.MatchID
	AttackerTeam uint8
	VictimTeam   uint8
}

// Report summarises one Resolve call.
type Report struct {
	Accepted []Hit
	Rejected int
	Skipped  int
}

// ResolverConfig wires a Resolver to its collaborators.
type ResolverConfig struct {
	Store   *state.Store
	Gate    Gate
	Cues    presentation.Presenter
	Metrics telemetry.Metrics
	// OnHit runs after the hit's state changes are committed, before the next
	// interaction is resolved.
	OnHit func(Hit)
}

// Resolver drives the per-tick interaction feed through the gate and the
// knockback model.
type Resolver struct {
	store   *state.Store
	gate    Gate
	cues    presentation.Presenter
	metrics telemetry.Metrics
	onHit   func(Hit)
}

func NewResolver(cfg ResolverConfig) *Resolver {
	cues := cfg.Cues
	if cues == nil {
		cues = presentation.Nop{}
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = telemetry.NopMetrics{}
	}
	return &Resolver{
		store:   cfg.Store,
		gate:    cfg.Gate,
		cues:    cues,
		metrics: metrics,
		onHit:   cfg.OnHit,
	}
}

// Resolve processes interactions in feed order. Stale handles and self hits
// are skipped; illegal interactions are rejected without side effects.
func (r *Resolver) Resolve(tick int64, interactions []Interaction) Report {
	var report Report
	for _, interaction := range interactions {
		hit, outcome := r.resolveOne(tick, interaction)
		switch outcome {
		case outcomeAccepted:
			report.Accepted = append(report.Accepted, hit)
			if r.onHit != nil {
				r.onHit(hit)
			}
		case outcomeRejected:
			report.Rejected++
		default:
			report.Skipped++
		}
	}
	if n := len(report.Accepted); n > 0 {
		r.metrics.Add(MetricHitsAccepted, uint64(n))
	}
	if report.Rejected > 0 {
		r.metrics.Add(MetricHitsRejected, uint64(report.Rejected))
	}
	if report.Skipped > 0 {
		r.metrics.Add(MetricHitsSkipped, uint64(report.Skipped))
	}
	return report
}

type outcome uint8

const (
	outcomeSkipped outcome = iota
	outcomeRejected
	outcomeAccepted
)

func (r *Resolver) resolveOne(tick int64, in Interaction) (Hit, outcome) {
	if in.Attacker == in.Victim {
		return Hit{}, outcomeSkipped
	}
	attacker, attackerGame, attackerCombat, ok := r.attackerView(in.Attacker)
	if !ok {
		return Hit{}, outcomeSkipped
	}
	victim, victimGame, victimCombat, ok := r.victimView(in.Victim)
	if !ok {
		return Hit{}, outcomeSkipped
	}

	if !r.gate.Allow(in.Kind, tick, victimCombat.LastAttackedTick, attackerGame, victimGame) {
		return Hit{}, outcomeRejected
	}

	victimCombat.LastAttackedTick = tick
	velocity := ApplyCombatEffects(attacker, victim, r.cues)
	if vel, ok := r.store.Velocity(in.Victim); ok {
		vel.Value = velocity
	}
	r.cues.SetVelocity(in.Victim, velocity)
	attackerCombat.HasBonusKnockback = false

	return Hit{
		Tick:         tick,
		Attacker:     in.Attacker,
		Victim:       in.Victim,
		Velocity:     velocity,
		Boosted:      attacker.HasBonusKnockback,
		Match:        victimGame.Match.ID,
		AttackerTeam: attackerGame.Team,
		VictimTeam:   victimGame.Team,
	}, outcomeAccepted
}

func (r *Resolver) attackerView(entity donburi.Entity) (AttackerView, state.PlayerGameState, *state.CombatState, bool) {
	id, ok := r.store.Identity(entity)
	if !ok {
		return AttackerView{}, state.PlayerGameState{}, nil, false
	}
	pos, _ := r.store.Position(entity)
	game, _ := r.store.GameState(entity)
	combat, _ := r.store.Combat(entity)
	view := AttackerView{
		Entity:            entity,
		NetworkID:         id.NetworkID,
		Position:          pos.Value,
		Yaw:               pos.Yaw,
		HasBonusKnockback: combat.HasBonusKnockback,
	}
	return view, *game, combat, true
}

func (r *Resolver) victimView(entity donburi.Entity) (VictimView, state.PlayerGameState, *state.CombatState, bool) {
	id, ok := r.store.Identity(entity)
	if !ok {
		return VictimView{}, state.PlayerGameState{}, nil, false
	}
	pos, _ := r.store.Position(entity)
	game, _ := r.store.GameState(entity)
	combat, _ := r.store.Combat(entity)
	view := VictimView{
		Entity:    entity,
		NetworkID: id.NetworkID,
		Position:  pos.Value,
	}
	return view, *game, combat, true
}

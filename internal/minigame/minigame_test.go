package minigame

import (
	"errors"
	"testing"

	"github.com/yohamta/donburi"

	"github.com/pythonsnake602/MiniBit/internal/combat"
	"github.com/pythonsnake602/MiniBit/internal/config"
	"github.com/pythonsnake602/MiniBit/internal/presentation"
	"github.com/pythonsnake602/MiniBit/internal/state"
)

type duel struct {
	store    *state.Store
	match    state.MatchID
	attacker donburi.Entity
	victim   donburi.Entity
	resolver *combat.Resolver
	cues     *presentation.Recorder
}

func newDuel(t *testing.T) *duel {
	t.Helper()
	store := state.NewStore()
	match := state.NewMatchID()
	spawn := func(name string, pos state.Vec3, team uint8) donburi.Entity {
		entity, err := store.Spawn(name, pos)
		if err != nil {
			t.Fatalf("spawn %s: %v", name, err)
		}
		game, _ := store.GameState(entity)
		game.Match = state.InMatch(match)
		game.Team = team
		return entity
	}
	cues := presentation.NewRecorder()
	return &duel{
		store:    store,
		match:    match,
		attacker: spawn("attacker", state.Vec3{Y: 64}, 0),
		victim:   spawn("victim", state.Vec3{Y: 64, Z: 1}, 1),
		resolver: combat.NewResolver(combat.ResolverConfig{Store: store, Cues: cues.Presenter()}),
		cues:     cues,
	}
}

func (d *duel) env(tick int64) Env {
	return Env{Store: d.store, Cues: d.cues.Presenter(), Tick: tick}
}

// hit lands one accepted hit per call, spaced past the cooldown.
func (d *duel) hit(t *testing.T, rules RuleSet, tick int64) []Knockout {
	t.Helper()
	report := d.resolver.Resolve(tick, []combat.Interaction{{Attacker: d.attacker, Victim: d.victim, Kind: combat.InteractionAttack}})
	if len(report.Accepted) != 1 {
		t.Fatalf("expected hit at tick %d to be accepted, got %+v", tick, report)
	}
	env := d.env(tick)
	for _, hit := range report.Accepted {
		rules.ApplyHit(env, hit)
	}
	return rules.CheckEnd(env, report.Accepted)
}

func TestBoxingEndsOnFifthHit(t *testing.T) {
	d := newDuel(t)
	rules := NewBoxing(DefaultHitsToWin, 0, combat.Gate{})
	rules.OnMatchStart(d.env(0), []donburi.Entity{d.attacker, d.victim})

	for i := int64(1); i <= 4; i++ {
		if ends := d.hit(t, rules, i*10); len(ends) != 0 {
			t.Fatalf("expected no end after %d hits, got %+v", i, ends)
		}
	}
	ends := d.hit(t, rules, 50)
	if len(ends) != 1 {
		t.Fatalf("expected exactly one end on the fifth hit, got %d", len(ends))
	}
	end := ends[0].End
	if end.Match != d.match || end.Loser != 1 || end.Cause != state.EndCauseKnockout {
		t.Fatalf("unexpected end %+v", end)
	}
	if got := d.cues.For(d.victim, presentation.CueMessage); len(got) != 1 || got[0].Text != MessageKnockedOut {
		t.Fatalf("unexpected victim messages %+v", got)
	}
	if got := d.cues.For(d.attacker, presentation.CueMessage); len(got) != 1 || got[0].Text != MessageKnockedOutFoe {
		t.Fatalf("unexpected attacker messages %+v", got)
	}

	rules.OnMatchEnd(d.env(51), []donburi.Entity{d.attacker, d.victim})
	counter, _ := boxingState(d.store, d.victim)
	if counter.Hits != 0 {
		t.Fatalf("expected hits to reset at match end, got %d", counter.Hits)
	}
}

func TestBoxingCounterDefaultsWhenAbsent(t *testing.T) {
	d := newDuel(t)
	rules := NewBoxing(2, 0, combat.Gate{})
	// No start hook ran: the counter is attached lazily on the first hit.
	d.hit(t, rules, 10)
	if ends := d.hit(t, rules, 20); len(ends) != 1 {
		t.Fatalf("expected end on second hit, got %+v", ends)
	}
}

func TestClassicDamageThreshold(t *testing.T) {
	cases := []struct {
		name   string
		health float64
		ends   int
		left   float64
	}{
		{name: "at threshold", health: 5.83, ends: 1, left: 0},
		{name: "below threshold", health: 2, ends: 1, left: 0},
		{name: "just above threshold", health: 5.84, ends: 0, left: 5.84 - 5.83},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := newDuel(t)
			rules := NewClassic(DefaultDamage, 20, 0, combat.Gate{})
			health, _ := d.store.Health(d.victim)
			health.Value = tc.health

			ends := d.hit(t, rules, 100)
			if len(ends) != tc.ends {
				t.Fatalf("expected %d ends, got %+v", tc.ends, ends)
			}
			if diff := health.Value - tc.left; diff > 1e-9 || diff < -1e-9 {
				t.Fatalf("expected %.4f health left, got %.4f", tc.left, health.Value)
			}
		})
	}
}

func TestClassicFullHealthNeedsFourHits(t *testing.T) {
	d := newDuel(t)
	rules := NewClassic(DefaultDamage, 20, 0, combat.Gate{})
	rules.OnMatchStart(d.env(0), []donburi.Entity{d.attacker, d.victim})

	for i := int64(1); i <= 3; i++ {
		if ends := d.hit(t, rules, i*10); len(ends) != 0 {
			t.Fatalf("expected no end after %d hits", i)
		}
	}
	if ends := d.hit(t, rules, 40); len(ends) != 1 {
		t.Fatalf("expected fourth hit to end the match, got %+v", ends)
	}
}

func TestClassicHooksSeedAndClearInventory(t *testing.T) {
	d := newDuel(t)
	rules := NewClassic(DefaultDamage, 20, 0, combat.Gate{})
	members := []donburi.Entity{d.attacker, d.victim}

	health, _ := d.store.Health(d.victim)
	health.Value = 3
	inv, _ := d.store.Inventory(d.victim)
	inv.SetSlot(0, state.ItemStack{Kind: "leftover", Count: 3})

	rules.OnMatchStart(d.env(0), members)
	if health.Value != 20 {
		t.Fatalf("expected health reset at start, got %v", health.Value)
	}
	if inv.Slot(state.HotbarStart).Kind != state.ItemIronSword || inv.Count() != 1 {
		t.Fatalf("expected only the sword after start, got %d items", inv.Count())
	}

	health.Value = 1
	rules.OnMatchEnd(d.env(10), members)
	if health.Value != 20 {
		t.Fatalf("expected health reset at end, got %v", health.Value)
	}
	if inv.Count() != 0 {
		t.Fatalf("expected inventory cleared at end, got %d items", inv.Count())
	}
}

func TestSumoHasNoCombatWinCondition(t *testing.T) {
	d := newDuel(t)
	rules := NewSumo(0, combat.Gate{})
	for i := int64(1); i <= 10; i++ {
		if ends := d.hit(t, rules, i*10); len(ends) != 0 {
			t.Fatalf("expected sumo hits to never end a match")
		}
	}
	health, _ := d.store.Health(d.victim)
	if health.Value != state.DefaultMaxHealth {
		t.Fatalf("expected sumo to leave health untouched, got %v", health.Value)
	}
}

func TestFallOutReportsOnlyMatchMembersBelowVoid(t *testing.T) {
	d := newDuel(t)
	if _, err := d.store.Spawn("lobby", state.Vec3{Y: -10}); err != nil {
		t.Fatalf("spawn lobby: %v", err)
	}
	pos, _ := d.store.Position(d.victim)
	pos.Value.Y = -1

	ends := FallOut{VoidLevel: 0}.Check(d.env(5))
	if len(ends) != 1 {
		t.Fatalf("expected one fall out, got %+v", ends)
	}
	if ends[0].Match != d.match || ends[0].Loser != 1 || ends[0].Cause != state.EndCauseFallOut {
		t.Fatalf("unexpected end %+v", ends[0])
	}

	pos.Value.Y = 0
	if ends := (FallOut{VoidLevel: 0}).Check(d.env(6)); len(ends) != 0 {
		t.Fatalf("expected y=0 to be in bounds, got %+v", ends)
	}
}

func TestCatalog(t *testing.T) {
	catalog := DefaultCatalog()
	mode := config.ModeConfig{CooldownTicks: 15, TeamAware: true, HitsToWin: 3, MaxHealth: 20}
	for _, name := range config.ModeNames {
		rules, err := catalog.New(name, mode)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", name, err)
		}
		if rules.Name() != name {
			t.Fatalf("expected rule set %q, got %q", name, rules.Name())
		}
		if gate := rules.Gate(); gate.Cooldown != 15 || !gate.TeamAware {
			t.Fatalf("expected gate from config, got %+v", gate)
		}
	}
	if _, err := catalog.New("bedwars", mode); !errors.Is(err, config.ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
}

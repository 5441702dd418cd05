package combat

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/pythonsnake602/MiniBit/internal/state"
)

func drawRef(t *rapid.T, pool []state.MatchID, label string) state.MatchRef {
	if !rapid.Bool().Draw(t, label+"Present") {
		return state.NoMatch
	}
	return state.InMatch(rapid.SampledFrom(pool).Draw(t, label))
}

func TestShouldProcessCombatIsolatesMatches(t *testing.T) {
	pool := []state.MatchID{state.NewMatchID(), state.NewMatchID(), state.NewMatchID()}
	rapid.Check(t, func(t *rapid.T) {
		attacker := drawRef(t, pool, "attacker")
		victim := drawRef(t, pool, "victim")
		tick := rapid.Int64Range(0, 1<<40).Draw(t, "tick")
		last := rapid.Int64Range(state.NeverAttacked, tick).Draw(t, "last")

		got := ShouldProcessCombat(InteractionAttack, tick, last, attacker, victim)
		if !state.SameMatch(attacker, victim) && got {
			t.Fatalf("accepted hit across matches %+v -> %+v", attacker, victim)
		}
		if !attacker.OK && got {
			t.Fatalf("accepted hit from lobby entity")
		}
	})
}

func TestShouldProcessCombatEnforcesCooldown(t *testing.T) {
	match := state.InMatch(state.NewMatchID())
	rapid.Check(t, func(t *rapid.T) {
		last := rapid.Int64Range(0, 1<<40).Draw(t, "last")
		elapsed := rapid.Int64Range(0, 40).Draw(t, "elapsed")
		got := ShouldProcessCombat(InteractionAttack, last+elapsed, last, match, match)
		if got != (elapsed >= CooldownTicks) {
			t.Fatalf("elapsed %d: expected accepted=%v, got %v", elapsed, elapsed >= CooldownTicks, got)
		}
	})
}

func TestShouldProcessCombatOnlyAcceptsAttacks(t *testing.T) {
	match := state.InMatch(state.NewMatchID())
	for _, kind := range []InteractionKind{InteractionUnknown, InteractionInteract, InteractionInteractAt} {
		if ShouldProcessCombat(kind, 100, state.NeverAttacked, match, match) {
			t.Fatalf("expected %s to be rejected", kind)
		}
	}
	if !ShouldProcessCombat(InteractionAttack, 100, state.NeverAttacked, match, match) {
		t.Fatalf("expected first attack in a match to be accepted")
	}
}

func TestShouldProcessCombatWithTeamsRejectsTeammates(t *testing.T) {
	match := state.InMatch(state.NewMatchID())
	if ShouldProcessCombatWithTeams(InteractionAttack, 100, 0, 1, 1, match, match) {
		t.Fatalf("expected teammates to be unable to hit each other")
	}
	if !ShouldProcessCombatWithTeams(InteractionAttack, 100, 0, 0, 1, match, match) {
		t.Fatalf("expected opponents to be able to hit each other")
	}
	if ShouldProcessCombatWithTeams(InteractionAttack, 100, 95, 0, 1, match, match) {
		t.Fatalf("expected cooldown to apply to team variant")
	}
}

func TestGateAllow(t *testing.T) {
	match := state.InMatch(state.NewMatchID())
	other := state.InMatch(state.NewMatchID())
	red := state.PlayerGameState{Match: match, Team: 0}
	blue := state.PlayerGameState{Match: match, Team: 1}
	redAgain := state.PlayerGameState{Match: match, Team: 0}
	stranger := state.PlayerGameState{Match: other, Team: 1}

	cases := []struct {
		name     string
		gate     Gate
		tick     int64
		last     int64
		attacker state.PlayerGameState
		victim   state.PlayerGameState
		want     bool
	}{
		{name: "opponents", gate: Gate{}, tick: 100, last: 90, attacker: red, victim: blue, want: true},
		{name: "cooldown", gate: Gate{}, tick: 100, last: 91, attacker: red, victim: blue, want: false},
		{name: "custom cooldown", gate: Gate{Cooldown: 20}, tick: 100, last: 85, attacker: red, victim: blue, want: false},
		{name: "free for all teammates", gate: Gate{}, tick: 100, last: 0, attacker: red, victim: redAgain, want: true},
		{name: "team aware teammates", gate: Gate{TeamAware: true}, tick: 100, last: 0, attacker: red, victim: redAgain, want: false},
		{name: "cross match", gate: Gate{}, tick: 100, last: 0, attacker: red, victim: stranger, want: false},
		{name: "lobby", gate: Gate{}, tick: 100, last: 0, attacker: state.PlayerGameState{}, victim: state.PlayerGameState{}, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.gate.Allow(InteractionAttack, tc.tick, tc.last, tc.attacker, tc.victim); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestParseInteractionKind(t *testing.T) {
	for _, kind := range []InteractionKind{InteractionAttack, InteractionInteract, InteractionInteractAt} {
		parsed, ok := ParseInteractionKind(kind.String())
		if !ok || parsed != kind {
			t.Fatalf("expected %s to round trip, got %v %v", kind, parsed, ok)
		}
	}
	if _, ok := ParseInteractionKind("punch"); ok {
		t.Fatalf("expected unknown label to fail")
	}
}

package combat

import "github.com/pythonsnake602/MiniBit/internal/state"

// CooldownTicks is the minimum number of ticks between accepted hits on the
// same victim.
const CooldownTicks int64 = 10

// ShouldProcessCombat reports whether an interaction is a legal hit: it must
// be an attack, the victim's cooldown must have elapsed, and both parties must
// belong to the same match.
func ShouldProcessCombat(kind InteractionKind, currentTick, victimLastAttackedTick int64, attackerMatch, victimMatch state.MatchRef) bool {
	return kind == InteractionAttack &&
		cooldownElapsed(currentTick, victimLastAttackedTick, CooldownTicks) &&
		state.SameMatch(attackerMatch, victimMatch)
}

// ShouldProcessCombatWithTeams is ShouldProcessCombat for team modes, which
// additionally reject hits between members of the same team.
func ShouldProcessCombatWithTeams(kind InteractionKind, currentTick, victimLastAttackedTick int64, attackerTeam, victimTeam uint8, attackerMatch, victimMatch state.MatchRef) bool {
	return ShouldProcessCombat(kind, currentTick, victimLastAttackedTick, attackerMatch, victimMatch) &&
		attackerTeam != victimTeam
}

// Gate applies a mode's legality policy. The zero value uses CooldownTicks and
// ignores teams.
type Gate struct {
	Cooldown  int64
	TeamAware bool
}

// Allow evaluates the gate for one attacker and victim pair.
func (g Gate) Allow(kind InteractionKind, currentTick, victimLastAttackedTick int64, attacker, victim state.PlayerGameState) bool {
	cooldown := g.Cooldown
	if cooldown <= 0 {
		cooldown = CooldownTicks
	}
	if kind != InteractionAttack {
		return false
	}
	if !cooldownElapsed(currentTick, victimLastAttackedTick, cooldown) {
		return false
	}
	if !state.SameMatch(attacker.Match, victim.Match) {
		return false
	}
	if g.TeamAware && attacker.Team == victim.Team {
		return false
	}
	return true
}

func cooldownElapsed(currentTick, last, cooldown int64) bool {
	return currentTick-last >= cooldown
}

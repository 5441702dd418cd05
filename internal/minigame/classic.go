package minigame

import (
	"github.com/yohamta/donburi"

	"github.com/pythonsnake602/MiniBit/internal/combat"
	"github.com/pythonsnake602/MiniBit/internal/state"
)

// DefaultDamage is the health removed by one classic hit.
const DefaultDamage = 5.83

// FixedDamage removes Amount health per hit. A hit that would leave the
// victim at or below zero drains the pool instead.
type FixedDamage struct {
	Amount float64
}

func (d FixedDamage) ApplyHit(env Env, hit combat.Hit) {
	health, ok := env.Store.Health(hit.Victim)
	if !ok {
		return
	}
	if health.Value > d.Amount {
		health.Value -= d.Amount
		return
	}
	health.Value = 0
}

// HealthDepleted ends the match when a victim hit this tick has no health left.
type HealthDepleted struct{}

func (HealthDepleted) Check(env Env, hits []combat.Hit) []Knockout {
	var out []Knockout
	seen := make(map[donburi.Entity]struct{}, len(hits))
	for _, hit := range hits {
		if _, dup := seen[hit.Victim]; dup {
			continue
		}
		health, ok := env.Store.Health(hit.Victim)
		if !ok || health.Value > 0 {
			continue
		}
		seen[hit.Victim] = struct{}{}
		out = append(out, Knockout{
			Hit: hit,
			End: state.EndGameEvent{Match: hit.Match, Loser: hit.VictimTeam, Cause: state.EndCauseKnockout},
		})
	}
	return out
}

// ResetHealth refills every member to maxHealth.
func ResetHealth(maxHealth float64) Hook {
	return func(env Env, members []donburi.Entity) {
		for _, entity := range members {
			if health, ok := env.Store.Health(entity); ok {
				health.Max = maxHealth
				health.Reset()
			}
		}
	}
}

// SeedKit places an iron sword in the first hotbar slot.
func SeedKit(env Env, members []donburi.Entity) {
	for _, entity := range members {
		if inv, ok := env.Store.Inventory(entity); ok {
			inv.SetSlot(state.HotbarStart, state.ItemStack{Kind: state.ItemIronSword, Count: 1})
		}
	}
}

// ClearInventory empties every slot of every member.
func ClearInventory(env Env, members []donburi.Entity) {
	for _, entity := range members {
		if inv, ok := env.Store.Inventory(entity); ok {
			inv.Clear()
		}
	}
}

// NewClassic builds the classic rule set.
func NewClassic(damage, maxHealth, voidLevel float64, gate combat.Gate) *Mode {
	return &Mode{
		Label:  "classic",
		Policy: gate,
		Damage: FixedDamage{Amount: damage},
		Win:    HealthDepleted{},
		Bounds: FallOut{VoidLevel: voidLevel},
		Start:  Hooks(ResetHealth(maxHealth), ClearInventory, SeedKit),
		End:    Hooks(ResetHealth(maxHealth), ClearInventory),
	}
}

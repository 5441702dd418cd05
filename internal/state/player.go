package state

import (
	"math"

	"github.com/yohamta/donburi"
)

// NeverAttacked is the cooldown baseline for an entity that has not been hit
// during its current match. Any tick is far enough past it to accept a hit.
const NeverAttacked int64 = math.MinInt32

// DefaultMaxHealth matches a vanilla player health pool.
const DefaultMaxHealth = 20.0

// Identity names the participant for transports and logs.
type Identity struct {
	Name      string
	NetworkID int32
}

// Position is the world position plus the look yaw reported by the client.
type Position struct {
	Value Vec3
	Yaw   float32
}

// Velocity is the last velocity impulse written to the entity.
type Velocity struct {
	Value Vec3
}

// Health is the health pool used by damage-based modes.
type Health struct {
	Value float64
	Max   float64
}

// Reset restores the pool to its maximum, defaulting the maximum when unset.
func (h *Health) Reset() {
	if h.Max <= 0 {
		h.Max = DefaultMaxHealth
	}
	h.Value = h.Max
}

// CombatState is attached 1:1 to every participant. It is mutated only by the
// combat package.
type CombatState struct {
	LastAttackedTick  int64
	HasBonusKnockback bool
}

// Reset restores the combat baseline used when an entity enters a match.
func (c *CombatState) Reset() {
	c.LastAttackedTick = NeverAttacked
	c.HasBonusKnockback = false
}

var (
	IdentityComponent        = donburi.NewComponentType[Identity]()
	PositionComponent        = donburi.NewComponentType[Position]()
	VelocityComponent        = donburi.NewComponentType[Velocity]()
	HealthComponent          = donburi.NewComponentType[Health](Health{Value: DefaultMaxHealth, Max: DefaultMaxHealth})
	CombatStateComponent     = donburi.NewComponentType[CombatState](CombatState{LastAttackedTick: NeverAttacked})
	PlayerGameStateComponent = donburi.NewComponentType[PlayerGameState]()
	InventoryComponent       = donburi.NewComponentType[Inventory]()
)

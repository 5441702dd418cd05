package combat

import (
	"math"

	"github.com/yohamta/donburi"

	"github.com/pythonsnake602/MiniBit/internal/presentation"
	"github.com/pythonsnake602/MiniBit/internal/state"
)

// KnockbackProfile is the magnitude of the impulse applied to a victim.
type KnockbackProfile struct {
	XZ float64
	Y  float64
}

var (
	BaseKnockback  = KnockbackProfile{XZ: 8.0, Y: 6.432}
	BonusKnockback = KnockbackProfile{XZ: 18.0, Y: 8.432}
)

// ProfileFor selects the profile for an attacker's sprint bonus.
func ProfileFor(bonus bool) KnockbackProfile {
	if bonus {
		return BonusKnockback
	}
	return BaseKnockback
}

// AttackerView is the read-only slice of the attacker needed to resolve a hit.
type AttackerView struct {
	Entity            donburi.Entity
	NetworkID         int32
	Position          state.Vec3
	Yaw               float32
	HasBonusKnockback bool
}

// VictimView is the read-only slice of the victim needed to resolve a hit.
type VictimView struct {
	Entity    donburi.Entity
	NetworkID int32
	Position  state.Vec3
}

var fallbackDirection = state.Vec2{X: 0, Z: 1}

// KnockbackDirection returns the unit XZ direction from attacker to victim.
// Co-located parties use the attacker's facing, then +Z.
func KnockbackDirection(attacker AttackerView, victim VictimView) state.Vec2 {
	if dir, ok := victim.Position.XZ().Sub(attacker.Position.XZ()).Normalize(); ok {
		return dir
	}
	yaw := float64(attacker.Yaw)
	if !math.IsNaN(yaw) && !math.IsInf(yaw, 0) {
		if dir, ok := state.DirectionFromYaw(attacker.Yaw).Normalize(); ok {
			return dir
		}
	}
	return fallbackDirection
}

// Knockback scales the direction by the attacker's profile.
func Knockback(dir state.Vec2, bonus bool) state.Vec3 {
	profile := ProfileFor(bonus)
	return state.Vec3{X: dir.X * profile.XZ, Y: profile.Y, Z: dir.Z * profile.XZ}
}

// ApplyCombatEffects computes the victim's knockback velocity and fires the
// hit feedback cues: a hurt sound at the victim's position and a damage tilt
// for each party, oriented toward the other. The caller writes the velocity
// and clears the attacker's bonus.
func ApplyCombatEffects(attacker AttackerView, victim VictimView, cues presentation.Presenter) state.Vec3 {
	dir := KnockbackDirection(attacker, victim)
	velocity := Knockback(dir, attacker.HasBonusKnockback)

	if cues != nil {
		toAttacker := state.Vec2{X: -dir.X, Z: -dir.Z}

		cues.PlaySound(victim.Entity, presentation.SoundPlayerHurt, victim.Position)
		cues.DamageTilt(victim.Entity, 0, toAttacker.YawToward())
		cues.PlaySound(attacker.Entity, presentation.SoundPlayerHurt, victim.Position)
		cues.DamageTilt(attacker.Entity, victim.NetworkID, dir.YawToward())
	}
	return velocity
}

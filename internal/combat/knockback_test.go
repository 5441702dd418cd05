package combat

import (
	"math"
	"testing"

	"go.uber.org/mock/gomock"
	"pgregory.net/rapid"

	"github.com/pythonsnake602/MiniBit/internal/presentation"
	"github.com/pythonsnake602/MiniBit/internal/presentation/mocks"
	"github.com/pythonsnake602/MiniBit/internal/state"
)

func TestKnockbackProfiles(t *testing.T) {
	dir := state.Vec2{X: 0.6, Z: 0.8}

	boosted := Knockback(dir, true)
	if !approx(boosted.X, 0.6*18.0) || !approx(boosted.Z, 0.8*18.0) || boosted.Y != 8.432 {
		t.Fatalf("unexpected boosted knockback %+v", boosted)
	}
	base := Knockback(dir, false)
	if !approx(base.X, 0.6*8.0) || !approx(base.Z, 0.8*8.0) || base.Y != 6.432 {
		t.Fatalf("unexpected base knockback %+v", base)
	}
}

func TestApplyCombatEffectsScalesUnitDirection(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		attacker := AttackerView{
			Position:          state.Vec3{X: rapid.Float64Range(-1e4, 1e4).Draw(t, "ax"), Y: 64, Z: rapid.Float64Range(-1e4, 1e4).Draw(t, "az")},
			Yaw:               float32(rapid.Float64Range(-360, 360).Draw(t, "yaw")),
			HasBonusKnockback: rapid.Bool().Draw(t, "bonus"),
		}
		victim := VictimView{
			Position: state.Vec3{X: rapid.Float64Range(-1e4, 1e4).Draw(t, "vx"), Y: 64, Z: rapid.Float64Range(-1e4, 1e4).Draw(t, "vz")},
		}
		velocity := ApplyCombatEffects(attacker, victim, nil)
		if !velocity.IsFinite() {
			t.Fatalf("non-finite velocity %+v", velocity)
		}
		profile := ProfileFor(attacker.HasBonusKnockback)
		if velocity.Y != profile.Y {
			t.Fatalf("expected vertical %v, got %v", profile.Y, velocity.Y)
		}
		if horizontal := math.Hypot(velocity.X, velocity.Z); math.Abs(horizontal-profile.XZ) > 1e-6 {
			t.Fatalf("expected horizontal magnitude %v, got %v", profile.XZ, horizontal)
		}
	})
}

func TestKnockbackDirectionFallbacks(t *testing.T) {
	pos := state.Vec3{X: 5, Y: 64, Z: 5}

	t.Run("attacker yaw", func(t *testing.T) {
		dir := KnockbackDirection(AttackerView{Position: pos, Yaw: 90}, VictimView{Position: pos})
		if !approx(dir.X, -1) || !approx(dir.Z, 0) {
			t.Fatalf("expected yaw 90 to point toward -X, got %+v", dir)
		}
	})

	t.Run("non-finite yaw", func(t *testing.T) {
		dir := KnockbackDirection(AttackerView{Position: pos, Yaw: float32(math.NaN())}, VictimView{Position: pos})
		if dir != (state.Vec2{X: 0, Z: 1}) {
			t.Fatalf("expected +Z fallback, got %+v", dir)
		}
	})

	t.Run("non-finite position", func(t *testing.T) {
		nan := state.Vec3{X: math.NaN(), Y: 64, Z: 0}
		velocity := ApplyCombatEffects(AttackerView{Position: nan}, VictimView{Position: pos}, nil)
		if !velocity.IsFinite() {
			t.Fatalf("expected finite velocity, got %+v", velocity)
		}
	})

	t.Run("vertical offset only", func(t *testing.T) {
		above := state.Vec3{X: 5, Y: 70, Z: 5}
		velocity := ApplyCombatEffects(AttackerView{Position: pos}, VictimView{Position: above}, nil)
		if !approx(velocity.Z, 8.0) || !approx(velocity.X, 0) {
			t.Fatalf("expected base knockback along +Z, got %+v", velocity)
		}
	})
}

func TestApplyCombatEffectsFiresCuesOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	cues := mocks.NewMockPresenter(ctrl)

	store := state.NewStore()
	a, _ := store.Spawn("a", state.Vec3{})
	b, _ := store.Spawn("b", state.Vec3{})

	attacker := AttackerView{Entity: a, NetworkID: 1, Position: state.Vec3{X: 0, Y: 64, Z: 0}}
	victim := VictimView{Entity: b, NetworkID: 2, Position: state.Vec3{X: 0, Y: 64, Z: 3}}

	cues.EXPECT().PlaySound(b, presentation.SoundPlayerHurt, victim.Position).Times(1)
	cues.EXPECT().PlaySound(a, presentation.SoundPlayerHurt, victim.Position).Times(1)
	// Victim is knocked toward +Z, so it looks back toward -Z at its attacker.
	cues.EXPECT().DamageTilt(b, int32(0), float32(180)).Times(1)
	cues.EXPECT().DamageTilt(a, int32(2), float32(0)).Times(1)

	ApplyCombatEffects(attacker, victim, cues)
}

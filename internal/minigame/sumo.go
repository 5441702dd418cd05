package minigame

import "github.com/pythonsnake602/MiniBit/internal/combat"

// NewSumo builds the sumo rule set: pure knockback, lose by falling out.
func NewSumo(voidLevel float64, gate combat.Gate) *Mode {
	return &Mode{
		Label:  "sumo",
		Policy: gate,
		Damage: NoDamage{},
		Bounds: FallOut{VoidLevel: voidLevel},
	}
}

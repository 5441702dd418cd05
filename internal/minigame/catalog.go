package minigame

import (
	"fmt"

	"github.com/pythonsnake602/MiniBit/internal/combat"
	"github.com/pythonsnake602/MiniBit/internal/config"
)

// Constructor builds a rule set from its mode configuration.
type Constructor func(cfg config.ModeConfig) RuleSet

// Catalog maps mode names to rule set constructors.
type Catalog map[string]Constructor

// DefaultCatalog holds every built-in mode.
func DefaultCatalog() Catalog {
	return Catalog{
		config.ModeSumo: func(cfg config.ModeConfig) RuleSet {
			return NewSumo(cfg.VoidLevel, gateFor(cfg))
		},
		config.ModeBoxing: func(cfg config.ModeConfig) RuleSet {
			return NewBoxing(clampHits(cfg.HitsToWin), cfg.VoidLevel, gateFor(cfg))
		},
		config.ModeClassic: func(cfg config.ModeConfig) RuleSet {
			damage := cfg.Damage
			if damage <= 0 {
				damage = DefaultDamage
			}
			return NewClassic(damage, cfg.MaxHealth, cfg.VoidLevel, gateFor(cfg))
		},
	}
}

// New builds the named rule set.
func (c Catalog) New(name string, cfg config.ModeConfig) (RuleSet, error) {
	ctor, ok := c[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownMode, name)
	}
	return ctor(cfg), nil
}

func gateFor(cfg config.ModeConfig) combat.Gate {
	return combat.Gate{Cooldown: cfg.CooldownTicks, TeamAware: cfg.TeamAware}
}

func clampHits(hits int) uint8 {
	switch {
	case hits <= 0:
		return DefaultHitsToWin
	case hits > 255:
		return 255
	default:
		return uint8(hits)
	}
}

// Package minigame holds the per-mode rule sets. Every mode shares the combat
// engine and differs only in its damage model, win condition and match hooks.
package minigame

import (
	"github.com/yohamta/donburi"

	"github.com/pythonsnake602/MiniBit/internal/combat"
	"github.com/pythonsnake602/MiniBit/internal/presentation"
	"github.com/pythonsnake602/MiniBit/internal/state"
)

// Env is the tick-scoped view handed to rule set callbacks.
type Env struct {
	Store *state.Store
	Cues  presentation.Presenter
	Tick  int64
}

func (e Env) cues() presentation.Presenter {
	if e.Cues == nil {
		return presentation.Nop{}
	}
	return e.Cues
}

// Knockout is an end request caused by a specific hit.
type Knockout struct {
	Hit combat.Hit
	End state.EndGameEvent
}

// RuleSet is the policy a mode server runs on top of the combat engine.
type RuleSet interface {
	Name() string
	Gate() combat.Gate
	// ApplyHit runs the damage model for an accepted hit.
	ApplyHit(env Env, hit combat.Hit)
	// CheckEnd evaluates combat-time win conditions against this tick's hits.
	CheckEnd(env Env, hits []combat.Hit) []Knockout
	// CheckBounds evaluates boundary win conditions for every match member.
	CheckBounds(env Env) []state.EndGameEvent
	OnMatchStart(env Env, members []donburi.Entity)
	OnMatchEnd(env Env, members []donburi.Entity)
}

// DamageModel applies the effect of a hit beyond knockback.
type DamageModel interface {
	ApplyHit(env Env, hit combat.Hit)
}

// WinCondition decides whether this tick's hits end a match.
type WinCondition interface {
	Check(env Env, hits []combat.Hit) []Knockout
}

// Boundary decides whether members left the playable area.
type Boundary interface {
	Check(env Env) []state.EndGameEvent
}

// Hook runs for every member of a match at start or end.
type Hook func(env Env, members []donburi.Entity)

// Mode composes capability slots into a RuleSet. Nil slots are no-ops.
type Mode struct {
	Label  string
	Policy combat.Gate
	Damage DamageModel
	Win    WinCondition
	Bounds Boundary
	Start  Hook
	End    Hook
}

var _ RuleSet = (*Mode)(nil)

func (m *Mode) Name() string { return m.Label }

func (m *Mode) Gate() combat.Gate { return m.Policy }

func (m *Mode) ApplyHit(env Env, hit combat.Hit) {
	if m.Damage != nil {
		m.Damage.ApplyHit(env, hit)
	}
}

func (m *Mode) CheckEnd(env Env, hits []combat.Hit) []Knockout {
	if m.Win == nil || len(hits) == 0 {
		return nil
	}
	return m.Win.Check(env, hits)
}

func (m *Mode) CheckBounds(env Env) []state.EndGameEvent {
	if m.Bounds == nil {
		return nil
	}
	return m.Bounds.Check(env)
}

func (m *Mode) OnMatchStart(env Env, members []donburi.Entity) {
	if m.Start != nil {
		m.Start(env, members)
	}
}

func (m *Mode) OnMatchEnd(env Env, members []donburi.Entity) {
	if m.End != nil {
		m.End(env, members)
	}
}

// Hooks chains hooks in order.
func Hooks(hooks ...Hook) Hook {
	return func(env Env, members []donburi.Entity) {
		for _, hook := range hooks {
			if hook != nil {
				hook(env, members)
			}
		}
	}
}

// NoDamage is the damage model of pure knockback modes.
type NoDamage struct{}

func (NoDamage) ApplyHit(Env, combat.Hit) {}

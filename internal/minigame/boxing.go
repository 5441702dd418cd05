package minigame

import (
	"github.com/yohamta/donburi"

	"github.com/pythonsnake602/MiniBit/internal/combat"
	"github.com/pythonsnake602/MiniBit/internal/state"
)

const (
	MessageKnockedOut    = "You have been knocked out!"
	MessageKnockedOutFoe = "You have knocked out your opponent!"
	DefaultHitsToWin     = 5
)

// BoxingState counts accepted hits taken by a participant in the current match.
type BoxingState struct {
	Hits uint8
}

var BoxingStateComponent = donburi.NewComponentType[BoxingState]()

func boxingState(store *state.Store, entity donburi.Entity) (*BoxingState, bool) {
	return state.Component(store, entity, BoxingStateComponent, BoxingState{})
}

// HitCounter counts hits on the victim instead of removing health.
type HitCounter struct{}

func (HitCounter) ApplyHit(env Env, hit combat.Hit) {
	counter, ok := boxingState(env.Store, hit.Victim)
	if !ok {
		return
	}
	if counter.Hits < ^uint8(0) {
		counter.Hits++
	}
}

// HitsToKnockout ends the match once a victim has taken Hits accepted hits.
type HitsToKnockout struct {
	Hits uint8
}

func (w HitsToKnockout) Check(env Env, hits []combat.Hit) []Knockout {
	limit := w.Hits
	if limit == 0 {
		limit = DefaultHitsToWin
	}
	var out []Knockout
	seen := make(map[donburi.Entity]struct{}, len(hits))
	for _, hit := range hits {
		if _, dup := seen[hit.Victim]; dup {
			continue
		}
		counter, ok := boxingState(env.Store, hit.Victim)
		if !ok || counter.Hits < limit {
			continue
		}
		seen[hit.Victim] = struct{}{}
		env.cues().SendMessage(hit.Victim, MessageKnockedOut)
		env.cues().SendMessage(hit.Attacker, MessageKnockedOutFoe)
		out = append(out, Knockout{
			Hit: hit,
			End: state.EndGameEvent{Match: hit.Match, Loser: hit.VictimTeam, Cause: state.EndCauseKnockout},
		})
	}
	return out
}

// ResetHits restores every member's counter to zero.
func ResetHits(env Env, members []donburi.Entity) {
	for _, entity := range members {
		if counter, ok := boxingState(env.Store, entity); ok {
			*counter = BoxingState{}
		}
	}
}

// NewBoxing builds the boxing rule set.
func NewBoxing(hitsToWin uint8, voidLevel float64, gate combat.Gate) *Mode {
	return &Mode{
		Label:  "boxing",
		Policy: gate,
		Damage: HitCounter{},
		Win:    HitsToKnockout{Hits: hitsToWin},
		Bounds: FallOut{VoidLevel: voidLevel},
		Start:  ResetHits,
		End:    ResetHits,
	}
}

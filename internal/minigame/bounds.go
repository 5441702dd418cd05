package minigame

import "github.com/pythonsnake602/MiniBit/internal/state"

// FallOut ends a match for every member whose height drops below VoidLevel.
// It fires on every tick the member stays below; the coordinator keeps only
// the first end per match.
type FallOut struct {
	VoidLevel float64
}

func (f FallOut) Check(env Env) []state.EndGameEvent {
	var out []state.EndGameEvent
	for _, entity := range env.Store.Players() {
		game, ok := env.Store.GameState(entity)
		if !ok || !game.InMatch() {
			continue
		}
		pos, ok := env.Store.Position(entity)
		if !ok || !(pos.Value.Y < f.VoidLevel) {
			continue
		}
		out = append(out, state.EndGameEvent{
			Match: game.Match.ID,
			Loser: game.Team,
			Cause: state.EndCauseFallOut,
		})
	}
	return out
}

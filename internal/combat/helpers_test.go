package combat

import (
	"math"
	"testing"

	"github.com/yohamta/donburi"

	"github.com/pythonsnake602/MiniBit/internal/state"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func spawnInMatch(t *testing.T, store *state.Store, name string, pos state.Vec3, match state.MatchRef, team uint8) donburi.Entity {
	t.Helper()
	entity, err := store.Spawn(name, pos)
	if err != nil {
		t.Fatalf("spawn %s: %v", name, err)
	}
	game, _ := store.GameState(entity)
	game.Match = match
	game.Team = team
	return entity
}

package combat

import "github.com/pythonsnake602/MiniBit/internal/state"

// HandleSprintEvents applies sprint transitions in feed order and returns the
// number applied. Events for stale handles are skipped.
func HandleSprintEvents(events []SprintEvent, store *state.Store) int {
	applied := 0
	for _, ev := range events {
		combat, ok := store.Combat(ev.Entity)
		if !ok {
			continue
		}
		combat.HasBonusKnockback = ev.Started
		applied++
	}
	return applied
}

package combat

import (
	"strings"

	"github.com/yohamta/donburi"
)

// InteractionKind classifies a client interaction with another entity. Only
// attacks are ever eligible for combat.
type InteractionKind uint8

const (
	InteractionUnknown InteractionKind = iota
	InteractionAttack
	InteractionInteract
	InteractionInteractAt
)

// String returns the wire label of the kind.
func (k InteractionKind) String() string {
	switch k {
	case InteractionAttack:
		return "attack"
	case InteractionInteract:
		return "interact"
	case InteractionInteractAt:
		return "interact_at"
	default:
		return "unknown"
	}
}

// ParseInteractionKind maps a wire label onto a kind.
func ParseInteractionKind(label string) (InteractionKind, bool) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "attack":
		return InteractionAttack, true
	case "interact":
		return InteractionInteract, true
	case "interact_at":
		return InteractionInteractAt, true
	default:
		return InteractionUnknown, false
	}
}

// Interaction is one entry of the per-tick interaction feed.
type Interaction struct {
	Attacker donburi.Entity
	Victim   donburi.Entity
	Kind     InteractionKind
}

// SprintEvent is one entry of the per-tick sprint transition feed.
type SprintEvent struct {
	Entity  donburi.Entity
	Started bool
}

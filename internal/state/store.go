package state

import (
	"errors"
	"fmt"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
	"github.com/yohamta/donburi/query"
)

var (
	// ErrDuplicateName indicates a participant with the same name is present.
	ErrDuplicateName = errors.New("state: participant name already present")
	// ErrEmptyName indicates Spawn was called without a name.
	ErrEmptyName = errors.New("state: participant name is empty")
)

var matchMembers = query.NewQuery(filter.Contains(PositionComponent, PlayerGameStateComponent))

// Store owns the per-mode world and indexes participants by name. Handles are
// generational, so a handle kept past Despawn reports as invalid instead of
// aliasing a newer participant.
type Store struct {
	world   donburi.World
	byName  map[string]donburi.Entity
	order   []donburi.Entity
	nextNet int32
}

// NewStore constructs an empty store.
func NewStore() *Store {
	return &Store{
		world:  donburi.NewWorld(),
		byName: make(map[string]donburi.Entity),
	}
}

// World exposes the underlying world for event queues.
func (s *Store) World() donburi.World {
	return s.world
}

// Spawn creates a participant with baseline components at the given position.
func (s *Store) Spawn(name string, pos Vec3) (donburi.Entity, error) {
	if name == "" {
		return donburi.Null, ErrEmptyName
	}
	if _, exists := s.byName[name]; exists {
		return donburi.Null, fmt.Errorf("spawn %q: %w", name, ErrDuplicateName)
	}
	entity := s.world.Create(
		IdentityComponent,
		PositionComponent,
		VelocityComponent,
		HealthComponent,
		CombatStateComponent,
		PlayerGameStateComponent,
		InventoryComponent,
	)
	entry := s.world.Entry(entity)

	s.nextNet++
	IdentityComponent.Set(entry, &Identity{Name: name, NetworkID: s.nextNet})
	PositionComponent.Set(entry, &Position{Value: pos})
	VelocityComponent.Set(entry, &Velocity{})
	HealthComponent.Set(entry, &Health{Value: DefaultMaxHealth, Max: DefaultMaxHealth})
	CombatStateComponent.Set(entry, &CombatState{LastAttackedTick: NeverAttacked})
	PlayerGameStateComponent.Set(entry, &PlayerGameState{})
	InventoryComponent.Set(entry, &Inventory{})

	s.byName[name] = entity
	s.order = append(s.order, entity)
	return entity, nil
}

// Despawn removes the participant. It returns false for stale handles.
func (s *Store) Despawn(entity donburi.Entity) bool {
	if !s.Valid(entity) {
		return false
	}
	if id, ok := s.Identity(entity); ok {
		delete(s.byName, id.Name)
	}
	for i, candidate := range s.order {
		if candidate == entity {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.world.Remove(entity)
	return true
}

// Lookup resolves a participant by name.
func (s *Store) Lookup(name string) (donburi.Entity, bool) {
	entity, ok := s.byName[name]
	if !ok || !s.Valid(entity) {
		return donburi.Null, false
	}
	return entity, true
}

// Valid reports whether the handle still names a live participant.
func (s *Store) Valid(entity donburi.Entity) bool {
	if entity == donburi.Null {
		return false
	}
	return s.world.Valid(entity)
}

// Players returns live participants in spawn order.
func (s *Store) Players() []donburi.Entity {
	out := make([]donburi.Entity, 0, len(s.order))
	for _, entity := range s.order {
		if s.Valid(entity) {
			out = append(out, entity)
		}
	}
	return out
}

// Len reports the number of live participants.
func (s *Store) Len() int {
	return len(s.byName)
}

// CountInMatch reports how many participants currently belong to a match.
func (s *Store) CountInMatch() int {
	count := 0
	matchMembers.Each(s.world, func(entry *donburi.Entry) {
		if PlayerGameStateComponent.Get(entry).InMatch() {
			count++
		}
	})
	return count
}

func (s *Store) Identity(entity donburi.Entity) (*Identity, bool) {
	return lookup(s, entity, IdentityComponent, Identity{})
}

func (s *Store) Position(entity donburi.Entity) (*Position, bool) {
	return lookup(s, entity, PositionComponent, Position{})
}

func (s *Store) Velocity(entity donburi.Entity) (*Velocity, bool) {
	return lookup(s, entity, VelocityComponent, Velocity{})
}

func (s *Store) Health(entity donburi.Entity) (*Health, bool) {
	return lookup(s, entity, HealthComponent, Health{Value: DefaultMaxHealth, Max: DefaultMaxHealth})
}

func (s *Store) Combat(entity donburi.Entity) (*CombatState, bool) {
	return lookup(s, entity, CombatStateComponent, CombatState{LastAttackedTick: NeverAttacked})
}

func (s *Store) GameState(entity donburi.Entity) (*PlayerGameState, bool) {
	return lookup(s, entity, PlayerGameStateComponent, PlayerGameState{})
}

func (s *Store) Inventory(entity donburi.Entity) (*Inventory, bool) {
	return lookup(s, entity, InventoryComponent, Inventory{})
}

// Component returns a mode-specific component, attaching the baseline when the
// participant does not carry it yet.
func Component[T any](s *Store, entity donburi.Entity, ctype *donburi.ComponentType[T], baseline T) (*T, bool) {
	return lookup(s, entity, ctype, baseline)
}

func lookup[T any](s *Store, entity donburi.Entity, ctype *donburi.ComponentType[T], baseline T) (*T, bool) {
	if s == nil || !s.Valid(entity) {
		return nil, false
	}
	entry := s.world.Entry(entity)
	if !entry.HasComponent(ctype) {
		donburi.Add(entry, ctype, &baseline)
	}
	return ctype.Get(entry), true
}

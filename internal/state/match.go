package state

import "github.com/google/uuid"

// MatchID identifies one concurrent match instance. It is comparable and
// carries no behaviour beyond equality and printing.
type MatchID struct {
	id uuid.UUID
}

// NewMatchID allocates a fresh random match identifier.
func NewMatchID() MatchID {
	return MatchID{id: uuid.New()}
}

// String renders the identifier for logs and transport messages.
func (m MatchID) String() string {
	return m.id.String()
}

// IsZero reports whether the identifier was never allocated.
func (m MatchID) IsZero() bool {
	return m.id == uuid.Nil
}

// MatchRef is an optional reference to a match. The zero value means the
// entity is not part of any match (lobby state).
type MatchRef struct {
	ID MatchID
	OK bool
}

// InMatch wraps an identifier into a present reference.
func InMatch(id MatchID) MatchRef {
	return MatchRef{ID: id, OK: true}
}

// NoMatch is the absent reference.
var NoMatch = MatchRef{}

// SameMatch reports whether both references are present and equal. Two absent
// references never compare as the same match.
func SameMatch(a, b MatchRef) bool {
	return a.OK && b.OK && a.ID == b.ID
}

// PlayerGameState is written by the lifecycle coordinator on join and leave and
// read by everything else.
type PlayerGameState struct {
	Match MatchRef
	Team  uint8
}

// InMatch reports whether the entity currently belongs to a match.
func (g PlayerGameState) InMatch() bool {
	return g.Match.OK
}

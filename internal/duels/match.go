package duels

import (
	"github.com/yohamta/donburi"

	"github.com/pythonsnake602/MiniBit/internal/state"
)

// MatchState is the lifecycle phase of a match.
type MatchState uint8

const (
	MatchForming MatchState = iota
	MatchActive
	MatchEnded
)

func (s MatchState) String() string {
	switch s {
	case MatchForming:
		return "forming"
	case MatchActive:
		return "active"
	case MatchEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Match is the coordinator's record of one match instance.
type Match struct {
	ID      state.MatchID
	State   MatchState
	Members []donburi.Entity
	Arena   int

	StartedTick int64
	EndedTick   int64
	Loser       uint8
	Cause       state.EndCause
}

// teamOf returns the team of the member at index i of the join order.
func teamOf(i, teams int) uint8 {
	if teams <= 0 {
		return 0
	}
	return uint8(i % teams)
}

func (m *Match) clone() Match {
	copied := *m
	copied.Members = append([]donburi.Entity(nil), m.Members...)
	return copied
}

func (m *Match) indexOf(entity donburi.Entity) int {
	for i, member := range m.Members {
		if member == entity {
			return i
		}
	}
	return -1
}

func (m *Match) remove(entity donburi.Entity) bool {
	i := m.indexOf(entity)
	if i < 0 {
		return false
	}
	m.Members = append(m.Members[:i], m.Members[i+1:]...)
	return true
}

// Summary is a read-only view used by diagnostics.
type Summary struct {
	ID          string   `json:"id"`
	State       string   `json:"state"`
	Arena       int      `json:"arena"`
	Members     []string `json:"members"`
	StartedTick int64    `json:"startedTick"`
	EndedTick   int64    `json:"endedTick,omitempty"`
	Loser       *uint8   `json:"loser,omitempty"`
	Cause       string   `json:"cause,omitempty"`
}

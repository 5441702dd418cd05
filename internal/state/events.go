package state

import "github.com/yohamta/donburi/features/events"

// EndCause records which detector requested the end of a match.
type EndCause string

const (
	EndCauseKnockout     EndCause = "knockout"
	EndCauseFallOut      EndCause = "fall_out"
	EndCauseWinCondition EndCause = "win_condition"
	EndCauseDisconnect   EndCause = "disconnect"
)

// StartGameEvent fires once when a match's participants are finalized.
type StartGameEvent struct {
	Match MatchID
}

// EndGameEvent requests the end of a match. Several may be queued for the same
// match in one tick; the lifecycle coordinator keeps the first.
type EndGameEvent struct {
	Match MatchID
	Loser uint8
	Cause EndCause
}

var (
	StartGame = events.NewEventType[StartGameEvent]()
	EndGame   = events.NewEventType[EndGameEvent]()
)

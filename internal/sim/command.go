package sim

import "time"

// CommandType enumerates the supported simulation commands.
type CommandType string

const (
	CommandJoin     CommandType = "Join"
	CommandLeave    CommandType = "Leave"
	CommandMove     CommandType = "Move"
	CommandSprint   CommandType = "Sprint"
	CommandInteract CommandType = "Interact"
)

// MoveCommand carries the client-reported position and look yaw.
type MoveCommand struct {
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	Z   float64 `json:"z"`
	Yaw float32 `json:"yaw"`
}

// SprintCommand toggles the sprint state of the actor.
type SprintCommand struct {
	Started bool `json:"started"`
}

// InteractCommand targets another participant by name.
type InteractCommand struct {
	Target string `json:"target"`
	Kind   string `json:"kind"`
}

// LeaveCommand records why the actor left.
type LeaveCommand struct {
	Reason string `json:"reason"`
}

// Command represents an intent captured for processing on the next tick.
type Command struct {
	OriginTick uint64           `json:"originTick"`
	ActorID    string           `json:"actorId"`
	Type       CommandType      `json:"type"`
	IssuedAt   time.Time        `json:"issuedAt"`
	Move       *MoveCommand     `json:"move,omitempty"`
	Sprint     *SprintCommand   `json:"sprint,omitempty"`
	Interact   *InteractCommand `json:"interact,omitempty"`
	Leave      *LeaveCommand    `json:"leave,omitempty"`
}

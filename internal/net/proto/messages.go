package proto

import (
	"encoding/json"
	"fmt"

	"github.com/pythonsnake602/MiniBit/internal/presentation"
	"github.com/pythonsnake602/MiniBit/internal/sim"
)

const (
	// Version tracks the wire-protocol revision expected by clients.
	Version = 1

	typeCommandReject = "commandReject"
	typeJoined        = "joined"
	typeCue           = "cue"
	typeMatch         = "match"
)

// Client message type identifiers.
const (
	TypeJoin     = "join"
	TypeMove     = "move"
	TypeSprint   = "sprint"
	TypeInteract = "interact"
	TypeLeave    = "leave"
)

// Exported aliases for outbound message type identifiers.
const (
	TypeJoined = typeJoined
	TypeCue    = typeCue
	TypeMatch  = typeMatch
)

// ClientMessage captures an inbound websocket message from the client.
type ClientMessage struct {
	Ver        int     `json:"ver,omitempty"`
	Type       string  `json:"type"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Yaw        float32 `json:"yaw"`
	Started    bool    `json:"started"`
	Target     string  `json:"target"`
	Kind       string  `json:"kind"`
	CommandSeq *uint64 `json:"seq,omitempty"`
}

// DecodeClientMessage converts raw websocket payloads into a structured message.
func DecodeClientMessage(payload []byte) (ClientMessage, error) {
	var msg ClientMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return msg, err
	}
	if msg.Ver == 0 {
		msg.Ver = Version
	}
	if msg.Ver != Version {
		return msg, fmt.Errorf("unsupported client protocol version %d", msg.Ver)
	}
	return msg, nil
}

// ClientCommand captures the structured simulation command carried by a
// websocket message. Origin metadata is populated when the command is staged.
func ClientCommand(msg ClientMessage) (sim.Command, bool) {
	switch msg.Type {
	case TypeJoin:
		return sim.Command{Type: sim.CommandJoin}, true
	case TypeLeave:
		return sim.Command{Type: sim.CommandLeave}, true
	case TypeMove:
		return sim.Command{
			Type: sim.CommandMove,
			Move: &sim.MoveCommand{X: msg.X, Y: msg.Y, Z: msg.Z, Yaw: msg.Yaw},
		}, true
	case TypeSprint:
		return sim.Command{
			Type:   sim.CommandSprint,
			Sprint: &sim.SprintCommand{Started: msg.Started},
		}, true
	case TypeInteract:
		if msg.Target == "" {
			return sim.Command{}, false
		}
		kind := msg.Kind
		if kind == "" {
			kind = "attack"
		}
		return sim.Command{
			Type:     sim.CommandInteract,
			Interact: &sim.InteractCommand{Target: msg.Target, Kind: kind},
		}, true
	default:
		return sim.Command{}, false
	}
}

// CommandReject notifies the client that a command was refused.
type CommandReject struct {
	Seq    uint64
	Reason string
	Retry  bool
	Tick   uint64
}

// EncodeCommandReject renders a command rejection response.
func EncodeCommandReject(msg CommandReject) ([]byte, error) {
	frame := struct {
		Ver    int    `json:"ver"`
		Type   string `json:"type"`
		Seq    uint64 `json:"seq,omitempty"`
		Reason string `json:"reason"`
		Retry  bool   `json:"retry,omitempty"`
		Tick   uint64 `json:"tick,omitempty"`
	}{
		Ver:    Version,
		Type:   typeCommandReject,
		Seq:    msg.Seq,
		Reason: msg.Reason,
		Retry:  msg.Retry,
		Tick:   msg.Tick,
	}
	return json.Marshal(frame)
}

// Joined acknowledges a session and names the mode it joined.
type Joined struct {
	ID   string
	Mode string
}

// EncodeJoined renders the session acknowledgement.
func EncodeJoined(msg Joined) ([]byte, error) {
	frame := struct {
		Ver  int    `json:"ver"`
		Type string `json:"type"`
		ID   string `json:"id"`
		Mode string `json:"mode"`
	}{
		Ver:  Version,
		Type: typeJoined,
		ID:   msg.ID,
		Mode: msg.Mode,
	}
	return json.Marshal(frame)
}

// EncodeCue renders a presentation cue addressed to the session.
func EncodeCue(cue presentation.Cue) ([]byte, error) {
	frame := struct {
		Ver  int              `json:"ver"`
		Type string           `json:"type"`
		Cue  presentation.Cue `json:"cue"`
	}{
		Ver:  Version,
		Type: typeCue,
		Cue:  cue,
	}
	return json.Marshal(frame)
}

// MatchUpdate announces a lifecycle transition to the members of a match.
type MatchUpdate struct {
	Match   string   `json:"match"`
	State   string   `json:"state"`
	Members []string `json:"members,omitempty"`
	Loser   *uint8   `json:"loser,omitempty"`
	Cause   string   `json:"cause,omitempty"`
	Tick    uint64   `json:"t"`
}

// EncodeMatchUpdate renders a match lifecycle payload.
func EncodeMatchUpdate(msg MatchUpdate) ([]byte, error) {
	frame := struct {
		Ver  int    `json:"ver"`
		Type string `json:"type"`
		MatchUpdate
	}{
		Ver:         Version,
		Type:        typeMatch,
		MatchUpdate: msg,
	}
	return json.Marshal(frame)
}

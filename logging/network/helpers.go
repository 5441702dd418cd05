package network

import (
	"context"

	"github.com/pythonsnake602/MiniBit/logging"
)

const (
	// EventSessionOpened is emitted when a websocket session attaches to a name.
	EventSessionOpened logging.EventType = "network.session_opened"
	// EventSessionClosed is emitted when the current session for a name ends.
	EventSessionClosed logging.EventType = "network.session_closed"
	// EventCommandRejected is emitted when intake refuses a client command.
	EventCommandRejected logging.EventType = "network.command_rejected"
)

// SessionOpenedPayload describes a newly attached session.
type SessionOpenedPayload struct {
	Remote   string `json:"remote,omitempty"`
	Replaced bool   `json:"replaced,omitempty"`
}

// SessionClosedPayload describes why a session ended.
type SessionClosedPayload struct {
	Reason string `json:"reason"`
}

// CommandRejectedPayload captures a refused command.
type CommandRejectedPayload struct {
	Seq     uint64 `json:"seq,omitempty"`
	Command string `json:"command"`
	Reason  string `json:"reason"`
}

// SessionOpened publishes an info event for a new session.
func SessionOpened(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload SessionOpenedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	event := logging.Event{
		Type:     EventSessionOpened,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: "network",
		Payload:  payload,
		Extra:    extra,
	}
	pub.Publish(ctx, event)
}

// SessionClosed publishes an info event when a session ends.
func SessionClosed(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload SessionClosedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	event := logging.Event{
		Type:     EventSessionClosed,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: "network",
		Payload:  payload,
		Extra:    extra,
	}
	pub.Publish(ctx, event)
}

// CommandRejected publishes a debug event for a refused command.
func CommandRejected(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload CommandRejectedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	event := logging.Event{
		Type:     EventCommandRejected,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityDebug,
		Category: "network",
		Payload:  payload,
		Extra:    extra,
	}
	pub.Publish(ctx, event)
}

// Package ws serves the websocket transport of a mode server.
package ws

import (
	"context"
	nethttp "net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pythonsnake602/MiniBit/internal/game"
	"github.com/pythonsnake602/MiniBit/internal/net/intake"
	"github.com/pythonsnake602/MiniBit/internal/net/proto"
	"github.com/pythonsnake602/MiniBit/internal/sim"
	"github.com/pythonsnake602/MiniBit/internal/telemetry"
	"github.com/pythonsnake602/MiniBit/logging"
	"github.com/pythonsnake602/MiniBit/logging/network"
)

// Engine is the mode server surface the transport talks to.
type Engine interface {
	Enqueue(sim.Command) (bool, string)
	HasPlayer(name string) bool
	Tick() uint64
	Mode() string
}

type HandlerConfig struct {
	Logger    telemetry.Logger
	Publisher logging.Publisher
	Now       func() time.Time
}

type Handler struct {
	hub      *Hub
	engine   Engine
	logger   telemetry.Logger
	pub      logging.Publisher
	now      func() time.Time
	upgrader websocket.Upgrader
}

func NewHandler(hub *Hub, engine Engine, cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = telemetry.LoggerFunc(nil)
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	pub := cfg.Publisher
	if pub == nil {
		pub = logging.NopPublisher()
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *nethttp.Request) bool {
			return true
		},
	}

	return &Handler{
		hub:      hub,
		engine:   engine,
		logger:   logger,
		pub:      pub,
		now:      now,
		upgrader: upgrader,
	}
}

func (h *Handler) Handle(w nethttp.ResponseWriter, r *nethttp.Request) {
	playerID := r.URL.Query().Get("id")
	if playerID == "" {
		nethttp.Error(w, "missing id", nethttp.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("upgrade failed for %s: %v", playerID, err)
		return
	}

	sess, replaced := h.hub.attach(playerID, conn)
	network.SessionOpened(r.Context(), h.pub, h.engine.Tick(), logging.PlayerRef(playerID), network.SessionOpenedPayload{
		Remote:   r.RemoteAddr,
		Replaced: replaced,
	}, nil)
	defer h.disconnect(sess)

	joined, err := proto.EncodeJoined(proto.Joined{ID: playerID, Mode: h.engine.Mode()})
	if err != nil {
		h.logger.Printf("failed to encode join ack for %s: %v", playerID, err)
		return
	}
	if !sess.enqueue(joined) {
		return
	}

	staging := intake.CommandContext{
		Queue:     h.engine,
		HasPlayer: h.engine.HasPlayer,
		Tick:      h.engine.Tick,
		Now:       h.now,
	}

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return
		}

		msg, err := proto.DecodeClientMessage(payload)
		if err != nil {
			h.logger.Printf("discarding malformed message from %s: %v", playerID, err)
			continue
		}

		seq := uint64(0)
		if msg.CommandSeq != nil {
			seq = *msg.CommandSeq
		}
		if seq > 0 {
			if last := sess.LastCommandSeq(); last > 0 && seq <= last {
				continue
			}
		}

		_, ok, reason := intake.StageClientCommand(staging, playerID, msg)
		if ok {
			if seq > 0 {
				sess.StoreLastCommandSeq(seq)
			}
			continue
		}
		network.CommandRejected(r.Context(), h.pub, h.engine.Tick(), logging.PlayerRef(playerID), network.CommandRejectedPayload{
			Seq:     seq,
			Command: msg.Type,
			Reason:  reason,
		}, nil)
		if seq == 0 {
			continue
		}
		reject, err := proto.EncodeCommandReject(proto.CommandReject{
			Seq:    seq,
			Reason: reason,
			Retry:  reason == sim.CommandRejectQueueLimit || reason == sim.CommandRejectQueueFull,
			Tick:   h.engine.Tick(),
		})
		if err != nil {
			h.logger.Printf("failed to encode reject for %s: %v", playerID, err)
			continue
		}
		if !sess.enqueue(reject) {
			return
		}
	}
}

// disconnect leaves the simulation unless a newer session took over the name.
func (h *Handler) disconnect(sess *session) {
	if !h.hub.detach(sess) {
		return
	}
	network.SessionClosed(context.Background(), h.pub, h.engine.Tick(), logging.PlayerRef(sess.name), network.SessionClosedPayload{
		Reason: game.LeaveDisconnect,
	}, nil)
	h.engine.Enqueue(sim.Command{
		OriginTick: h.engine.Tick(),
		ActorID:    sess.name,
		Type:       sim.CommandLeave,
		IssuedAt:   h.now(),
		Leave:      &sim.LeaveCommand{Reason: game.LeaveDisconnect},
	})
}

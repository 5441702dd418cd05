package ws

import (
	"sync"

	"github.com/gorilla/websocket"

	"github.com/pythonsnake602/MiniBit/internal/game"
	"github.com/pythonsnake602/MiniBit/internal/net/proto"
	"github.com/pythonsnake602/MiniBit/internal/presentation"
	"github.com/pythonsnake602/MiniBit/internal/telemetry"
)

const (
	MetricSessions = "minibit.ws.sessions"
	MetricDropped  = "minibit.ws.dropped"
)

type HubConfig struct {
	Logger  telemetry.Logger
	Metrics telemetry.Metrics
}

// Hub routes outbound frames to connected participants by name. It satisfies
// presentation.Sink and game.MatchNotifier.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*session
	logger   telemetry.Logger
	metrics  telemetry.Metrics
}

var (
	_ presentation.Sink  = (*Hub)(nil)
	_ game.MatchNotifier = (*Hub)(nil)
)

func NewHub(cfg HubConfig) *Hub {
	hub := &Hub{
		sessions: make(map[string]*session),
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
	}
	if hub.logger == nil {
		hub.logger = telemetry.LoggerFunc(nil)
	}
	if hub.metrics == nil {
		hub.metrics = telemetry.NopMetrics{}
	}
	return hub
}

// attach registers conn under name, closing any previous session for the
// same name. It reports whether a previous session was replaced.
func (h *Hub) attach(name string, conn *websocket.Conn) (*session, bool) {
	next := newSession(name, conn)
	h.mu.Lock()
	previous := h.sessions[name]
	h.sessions[name] = next
	count := len(h.sessions)
	h.mu.Unlock()
	if previous != nil {
		previous.close()
	}
	h.metrics.Store(MetricSessions, uint64(count))
	return next, previous != nil
}

// detach removes s if it is still the current session for its name. It
// reports whether s was current.
func (h *Hub) detach(s *session) bool {
	h.mu.Lock()
	current := h.sessions[s.name] == s
	if current {
		delete(h.sessions, s.name)
	}
	count := len(h.sessions)
	h.mu.Unlock()
	s.close()
	h.metrics.Store(MetricSessions, uint64(count))
	return current
}

// Connected reports whether name has a live session.
func (h *Hub) Connected(name string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.sessions[name]
	return ok
}

// Len returns the number of live sessions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Deliver sends cue to the session registered under name, if any.
func (h *Hub) Deliver(name string, cue presentation.Cue) {
	data, err := proto.EncodeCue(cue)
	if err != nil {
		h.logger.Printf("failed to encode %s cue for %s: %v", cue.Kind, name, err)
		return
	}
	h.send(name, data)
}

// NotifyMatch sends a match update to every connected member.
func (h *Hub) NotifyMatch(members []string, update game.MatchUpdate) {
	data, err := proto.EncodeMatchUpdate(proto.MatchUpdate{
		Match:   update.Match,
		State:   update.State,
		Members: update.Members,
		Loser:   update.Loser,
		Cause:   update.Cause,
		Tick:    update.Tick,
	})
	if err != nil {
		h.logger.Printf("failed to encode match %s update: %v", update.Match, err)
		return
	}
	for _, name := range members {
		h.send(name, data)
	}
}

func (h *Hub) send(name string, data []byte) bool {
	h.mu.RLock()
	s := h.sessions[name]
	h.mu.RUnlock()
	if s == nil {
		return false
	}
	if !s.enqueue(data) {
		h.metrics.Add(MetricDropped, 1)
		return false
	}
	return true
}

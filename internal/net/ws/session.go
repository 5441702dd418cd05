package ws

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

const (
	sessionBacklog = 64
	writeWait      = 5 * time.Second
)

// session owns one websocket connection. Frames are queued and written by a
// single goroutine so the tick goroutine never blocks on a slow client.
type session struct {
	name    string
	conn    *websocket.Conn
	send    chan []byte
	done    chan struct{}
	once    sync.Once
	lastSeq atomic.Uint64
}

func newSession(name string, conn *websocket.Conn) *session {
	s := &session{
		name: name,
		conn: conn,
		send: make(chan []byte, sessionBacklog),
		done: make(chan struct{}),
	}
	go s.writePump()
	return s
}

// enqueue queues a frame. It reports false when the session is closed or its
// backlog is full.
func (s *session) enqueue(data []byte) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.send <- data:
		return true
	case <-s.done:
		return false
	default:
		return false
	}
}

func (s *session) LastCommandSeq() uint64 { return s.lastSeq.Load() }

func (s *session) StoreLastCommandSeq(seq uint64) { s.lastSeq.Store(seq) }

func (s *session) close() {
	s.once.Do(func() {
		close(s.done)
		s.conn.Close()
	})
}

func (s *session) writePump() {
	for {
		select {
		case <-s.done:
			return
		case data := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				s.close()
				return
			}
		}
	}
}

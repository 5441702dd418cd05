package sinks

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/pythonsnake602/MiniBit/logging"
)

func TestConsoleSinkRendersEvent(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(&buf, logging.ConsoleConfig{})

	err := sink.Write(logging.Event{
		Type:     "combat.knockout",
		Tick:     42,
		Time:     time.Unix(0, 0).UTC(),
		Mode:     "boxing",
		Actor:    logging.PlayerRef("alice"),
		Targets:  []logging.EntityRef{logging.PlayerRef("bob")},
		Severity: logging.SeverityInfo,
	})
	if err != nil {
		t.Fatalf("unexpected write error: %v", err)
	}

	line := buf.String()
	for _, want := range []string{"combat.knockout", "tick=42", "mode=boxing", "actor=player:alice", "player:bob"} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected output to contain %q, got %q", want, line)
		}
	}
}

func TestMemorySinkFiltersByType(t *testing.T) {
	sink := NewMemorySink()
	_ = sink.Write(logging.Event{Type: "a"})
	_ = sink.Write(logging.Event{Type: "b"})
	_ = sink.Write(logging.Event{Type: "a", Tick: 2})

	got := sink.OfType("a")
	if len(got) != 2 || got[1].Tick != 2 {
		t.Fatalf("unexpected filtered events: %+v", got)
	}
	sink.Reset()
	if len(sink.Events()) != 0 {
		t.Fatalf("expected reset to clear retained events")
	}
}

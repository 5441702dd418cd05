package game

import "github.com/pythonsnake602/MiniBit/internal/duels"

// Diagnostics is a point-in-time view of a mode server, refreshed after
// every tick.
type Diagnostics struct {
	Mode            string          `json:"mode"`
	Tick            uint64          `json:"tick"`
	Entities        int             `json:"entities"`
	InMatch         int             `json:"inMatch"`
	ActiveMatches   int             `json:"activeMatches"`
	FreeArenas      int             `json:"freeArenas"`
	PendingCommands int             `json:"pendingCommands"`
	LastMSPT        float64         `json:"lastMspt"`
	Matches         []duels.Summary `json:"matches"`
}

// Diagnostics returns the latest snapshot. Safe for concurrent use.
func (s *Server) Diagnostics() Diagnostics {
	s.diagMu.RLock()
	defer s.diagMu.RUnlock()
	snapshot := s.diagnostics
	snapshot.Matches = append([]duels.Summary(nil), s.diagnostics.Matches...)
	snapshot.PendingCommands = s.loop.Pending()
	return snapshot
}

func (s *Server) publishDiagnostics(mspt float64) {
	snapshot := Diagnostics{
		Mode:          s.mode,
		Tick:          s.tick,
		Entities:      s.store.Len(),
		InMatch:       s.store.CountInMatch(),
		ActiveMatches: s.coord.ActiveMatches(),
		FreeArenas:    s.coord.FreeArenas(),
		LastMSPT:      mspt,
		Matches:       s.coord.Summaries(),
	}
	s.diagMu.Lock()
	s.diagnostics = snapshot
	s.diagMu.Unlock()
}

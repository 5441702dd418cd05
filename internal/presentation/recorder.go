package presentation

import (
	"sync"

	"github.com/yohamta/donburi"
)

// Recorder keeps every cue in memory, in call order.
type Recorder struct {
	mu   sync.Mutex
	cues []Cue
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// Presenter returns the recorder as a Presenter.
func (r *Recorder) Presenter() Presenter {
	return Emitter(r.record)
}

func (r *Recorder) record(cue Cue) {
	r.mu.Lock()
	r.cues = append(r.cues, cue)
	r.mu.Unlock()
}

// Cues returns a copy of every recorded cue.
func (r *Recorder) Cues() []Cue {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Cue(nil), r.cues...)
}

// For returns the cues addressed to target, optionally filtered by kind.
func (r *Recorder) For(target donburi.Entity, kinds ...CueKind) []Cue {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Cue
	for _, cue := range r.cues {
		if cue.Target != target {
			continue
		}
		if len(kinds) > 0 && !containsKind(kinds, cue.Kind) {
			continue
		}
		out = append(out, cue)
	}
	return out
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	r.cues = nil
	r.mu.Unlock()
}

func containsKind(kinds []CueKind, kind CueKind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

package presentation

import "github.com/yohamta/donburi"

// Sink receives cues addressed by participant name.
type Sink interface {
	Deliver(name string, cue Cue)
}

// Resolver maps an entity to the name used by the transport.
type Resolver func(donburi.Entity) (string, bool)

// NewDispatcher builds a Presenter that resolves each target and hands the cue
// to sink. Cues for unknown targets are dropped.
func NewDispatcher(resolve Resolver, sink Sink) Presenter {
	if resolve == nil || sink == nil {
		return Nop{}
	}
	return Emitter(func(cue Cue) {
		name, ok := resolve(cue.Target)
		if !ok {
			return
		}
		sink.Deliver(name, cue)
	})
}

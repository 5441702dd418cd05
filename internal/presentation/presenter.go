// Package presentation carries the client-visible cues produced by the
// simulation. Cues are fire-and-forget; nothing in the simulation waits on
// delivery.
package presentation

import (
	"github.com/yohamta/donburi"

	"github.com/pythonsnake602/MiniBit/internal/state"
)

//go:generate go tool mockgen -destination=./mocks/presenter_mock.go -package=mocks . Presenter

// Sound names a client sound effect.
type Sound string

const (
	SoundPlayerHurt Sound = "entity.player.hurt"
	SoundLevelUp    Sound = "entity.player.levelup"
)

// Presenter receives cues addressed to participants.
type Presenter interface {
	PlaySound(target donburi.Entity, sound Sound, at state.Vec3)
	DamageTilt(target donburi.Entity, source int32, yaw float32)
	SetVelocity(target donburi.Entity, velocity state.Vec3)
	SendMessage(target donburi.Entity, text string)
	Teleport(target donburi.Entity, position state.Vec3)
}

// CueKind discriminates Cue payloads.
type CueKind string

const (
	CueSound    CueKind = "sound"
	CueTilt     CueKind = "tilt"
	CueVelocity CueKind = "velocity"
	CueMessage  CueKind = "message"
	CueTeleport CueKind = "teleport"
)

// Cue is the transport representation of one presenter call.
type Cue struct {
	Kind     CueKind        `json:"kind"`
	Target   donburi.Entity `json:"-"`
	Sound    Sound          `json:"sound,omitempty"`
	At       *state.Vec3    `json:"at,omitempty"`
	Source   int32          `json:"source,omitempty"`
	Yaw      float32        `json:"yaw,omitempty"`
	Velocity *state.Vec3    `json:"velocity,omitempty"`
	Text     string         `json:"text,omitempty"`
}

// Nop discards every cue.
type Nop struct{}

func (Nop) PlaySound(donburi.Entity, Sound, state.Vec3) {}
func (Nop) DamageTilt(donburi.Entity, int32, float32)   {}
func (Nop) SetVelocity(donburi.Entity, state.Vec3)      {}
func (Nop) SendMessage(donburi.Entity, string)          {}
func (Nop) Teleport(donburi.Entity, state.Vec3)         {}

// Emitter adapts a function receiving Cue values into a Presenter.
type Emitter func(Cue)

func (e Emitter) emit(cue Cue) {
	if e != nil {
		e(cue)
	}
}

func (e Emitter) PlaySound(target donburi.Entity, sound Sound, at state.Vec3) {
	e.emit(Cue{Kind: CueSound, Target: target, Sound: sound, At: &at})
}

func (e Emitter) DamageTilt(target donburi.Entity, source int32, yaw float32) {
	e.emit(Cue{Kind: CueTilt, Target: target, Source: source, Yaw: yaw})
}

func (e Emitter) SetVelocity(target donburi.Entity, velocity state.Vec3) {
	e.emit(Cue{Kind: CueVelocity, Target: target, Velocity: &velocity})
}

func (e Emitter) SendMessage(target donburi.Entity, text string) {
	e.emit(Cue{Kind: CueMessage, Target: target, Text: text})
}

func (e Emitter) Teleport(target donburi.Entity, position state.Vec3) {
	e.emit(Cue{Kind: CueTeleport, Target: target, At: &position})
}

// Multi forwards every cue to each presenter in order.
func Multi(presenters ...Presenter) Presenter {
	return Emitter(func(cue Cue) {
		for _, p := range presenters {
			if p != nil {
				Deliver(p, cue)
			}
		}
	})
}

// Deliver replays a Cue against a Presenter.
func Deliver(p Presenter, cue Cue) {
	switch cue.Kind {
	case CueSound:
		p.PlaySound(cue.Target, cue.Sound, deref(cue.At))
	case CueTilt:
		p.DamageTilt(cue.Target, cue.Source, cue.Yaw)
	case CueVelocity:
		p.SetVelocity(cue.Target, deref(cue.Velocity))
	case CueMessage:
		p.SendMessage(cue.Target, cue.Text)
	case CueTeleport:
		p.Teleport(cue.Target, deref(cue.At))
	}
}

func deref(v *state.Vec3) state.Vec3 {
	if v == nil {
		return state.Vec3{}
	}
	return *v
}

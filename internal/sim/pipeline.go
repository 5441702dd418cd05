package sim

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pythonsnake602/MiniBit/internal/telemetry"
)

// Stage names one step of the per-tick pipeline.
type Stage uint8

const (
	StageSprint Stage = iota
	StageCombat
	StageEndOfMatch
	StageOutOfBounds
	StageLifecycle
	stageCount
)

// StageOrder is the fixed order every tick runs its stages in. Events
// published by a stage are visible to every later stage of the same tick.
var StageOrder = [stageCount]Stage{
	StageSprint,
	StageCombat,
	StageEndOfMatch,
	StageOutOfBounds,
	StageLifecycle,
}

func (s Stage) String() string {
	switch s {
	case StageSprint:
		return "sprint"
	case StageCombat:
		return "combat"
	case StageEndOfMatch:
		return "end_of_match"
	case StageOutOfBounds:
		return "out_of_bounds"
	case StageLifecycle:
		return "lifecycle"
	default:
		return fmt.Sprintf("stage(%d)", uint8(s))
	}
}

// ErrNilStage indicates a pipeline was built without one of its stages.
var ErrNilStage = errors.New("sim: stage is nil")

// Frame is the tick-scoped input shared by every stage.
type Frame struct {
	Ctx      context.Context
	Tick     uint64
	Now      time.Time
	Commands []Command
}

// Context returns the frame context, defaulting to Background.
func (f *Frame) Context() context.Context {
	if f == nil || f.Ctx == nil {
		return context.Background()
	}
	return f.Ctx
}

// StageFunc runs one stage against the frame.
type StageFunc func(frame *Frame)

// Stages binds a function to each stage.
type Stages map[Stage]StageFunc

// Pipeline runs its stages in StageOrder, each under its own trace span.
type Pipeline struct {
	stages  [stageCount]StageFunc
	observe func(Stage)
}

// NewPipeline requires a function for every stage in StageOrder.
func NewPipeline(stages Stages) (*Pipeline, error) {
	p := &Pipeline{}
	for _, stage := range StageOrder {
		fn := stages[stage]
		if fn == nil {
			return nil, fmt.Errorf("%w: %s", ErrNilStage, stage)
		}
		p.stages[stage] = fn
	}
	return p, nil
}

// Observe registers a callback invoked before each stage runs.
func (p *Pipeline) Observe(fn func(Stage)) {
	if p != nil {
		p.observe = fn
	}
}

// Run executes every stage for one tick.
func (p *Pipeline) Run(frame *Frame) {
	if p == nil || frame == nil {
		return
	}
	parent := frame.Context()
	for _, stage := range StageOrder {
		if p.observe != nil {
			p.observe(stage)
		}
		ctx, span := telemetry.StartStage(parent, stage.String())
		frame.Ctx = ctx
		p.stages[stage](frame)
		span.End()
	}
	frame.Ctx = parent
}

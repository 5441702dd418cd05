package sim

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPipelineRunsStagesInOrder(t *testing.T) {
	var order []Stage
	stages := Stages{}
	for _, stage := range StageOrder {
		stages[stage] = func(frame *Frame) {
			order = append(order, stage)
			if frame.Context() == nil {
				t.Fatalf("expected stage context")
			}
		}
	}
	pipeline, err := NewPipeline(stages)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var observed []Stage
	pipeline.Observe(func(stage Stage) { observed = append(observed, stage) })
	pipeline.Run(&Frame{Tick: 1})

	want := []Stage{StageSprint, StageCombat, StageEndOfMatch, StageOutOfBounds, StageLifecycle}
	if len(order) != len(want) || len(observed) != len(want) {
		t.Fatalf("expected %d stages, got %v", len(want), order)
	}
	for i := range want {
		if order[i] != want[i] || observed[i] != want[i] {
			t.Fatalf("expected stage %s at %d, got %s", want[i], i, order[i])
		}
	}
}

func TestPipelineRequiresEveryStage(t *testing.T) {
	_, err := NewPipeline(Stages{StageSprint: func(*Frame) {}})
	if !errors.Is(err, ErrNilStage) {
		t.Fatalf("expected ErrNilStage, got %v", err)
	}
}

func TestStageString(t *testing.T) {
	if StageOutOfBounds.String() != "out_of_bounds" {
		t.Fatalf("unexpected name %q", StageOutOfBounds.String())
	}
	if Stage(42).String() != "stage(42)" {
		t.Fatalf("unexpected name %q", Stage(42).String())
	}
}

func TestLoopEnqueueEnforcesPerActorLimit(t *testing.T) {
	var drops []string
	loop := NewLoop(LoopConfig{CommandCapacity: 8, PerActorLimit: 2}, LoopHooks{
		OnCommandDrop: func(reason string, _ Command) { drops = append(drops, reason) },
	})
	for i := 0; i < 3; i++ {
		loop.Enqueue(Command{ActorID: "A", Type: CommandMove})
	}
	if ok, _ := loop.Enqueue(Command{ActorID: "B", Type: CommandMove}); !ok {
		t.Fatalf("expected other actors to be unaffected")
	}
	if len(drops) != 1 || drops[0] != CommandRejectQueueLimit {
		t.Fatalf("expected one queue_limit drop, got %v", drops)
	}
	if loop.Pending() != 3 {
		t.Fatalf("expected 3 pending commands, got %d", loop.Pending())
	}

	var got []Command
	loop.hooks.Step = func(_ context.Context, _ LoopTickContext, commands []Command) { got = commands }
	result := loop.Advance(context.Background(), LoopTickContext{Tick: 1})
	if len(got) != 3 || len(result.Commands) != 3 {
		t.Fatalf("expected step to receive staged commands, got %d", len(got))
	}
	if ok, _ := loop.Enqueue(Command{ActorID: "A"}); !ok {
		t.Fatalf("expected per-actor budget to reset after a tick")
	}
}

func TestLoopEnqueueReportsFullBuffer(t *testing.T) {
	loop := NewLoop(LoopConfig{CommandCapacity: 1}, LoopHooks{})
	loop.Enqueue(Command{ActorID: "A"})
	ok, reason := loop.Enqueue(Command{ActorID: "B"})
	if ok || reason != CommandRejectQueueFull {
		t.Fatalf("expected queue_full, got %v %q", ok, reason)
	}
}

func TestLoopRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	steps := make(chan LoopStepResult, 16)
	loop := NewLoop(LoopConfig{TickRate: 200}, LoopHooks{
		AfterStep: func(result LoopStepResult) {
			select {
			case steps <- result:
			default:
			}
		},
	})
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	select {
	case result := <-steps:
		if result.Tick != 1 || result.Budget != 5*time.Millisecond {
			t.Fatalf("unexpected first tick: %+v", result)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("expected a tick")
	}
	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("expected loop to stop")
	}
}

func TestBenchReportsWindowAndStreak(t *testing.T) {
	bench := Bench{Window: 3}
	budget := 50 * time.Millisecond

	first := bench.Record(LoopStepResult{Duration: 60 * time.Millisecond, Budget: budget})
	second := bench.Record(LoopStepResult{Duration: 70 * time.Millisecond, Budget: budget})
	if !first.Overrun || second.Streak != 2 {
		t.Fatalf("expected overrun streak, got %+v %+v", first, second)
	}
	third := bench.Record(LoopStepResult{Duration: 20 * time.Millisecond, Budget: budget})
	if third.Overrun || third.Streak != 0 {
		t.Fatalf("expected streak reset, got %+v", third)
	}
	if third.Report == nil {
		t.Fatalf("expected report after window")
	}
	if third.Report.Ticks != 3 || third.Report.Max != 70*time.Millisecond || third.Report.Average != 50*time.Millisecond {
		t.Fatalf("unexpected report: %+v", *third.Report)
	}
	if Millis(third.Report.Average) != 50 {
		t.Fatalf("unexpected millis %v", Millis(third.Report.Average))
	}
	if bench.Record(LoopStepResult{}).Report != nil {
		t.Fatalf("expected window to restart")
	}
}

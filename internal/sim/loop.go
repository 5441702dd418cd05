package sim

import (
	"context"
	"sync"
	"time"

	"github.com/pythonsnake602/MiniBit/internal/telemetry"
	"github.com/pythonsnake602/MiniBit/logging"
)

const (
	// CommandRejectQueueLimit indicates a command was dropped due to per-actor
	// queue throttling.
	CommandRejectQueueLimit = "queue_limit"
	// CommandRejectQueueFull indicates the global command buffer is saturated.
	CommandRejectQueueFull = "queue_full"

	defaultTickRate = 20
)

// LoopConfig tunes the command buffer and tick loop orchestration.
type LoopConfig struct {
	TickRate        int
	CatchupMaxTicks int
	CommandCapacity int
	PerActorLimit   int
	WarningStep     int
}

// LoopTickContext describes the tick about to run.
type LoopTickContext struct {
	Tick  uint64
	Now   time.Time
	Delta float64
}

// LoopStepResult summarises one executed tick.
type LoopStepResult struct {
	Tick         uint64
	Now          time.Time
	Delta        float64
	Commands     []Command
	Duration     time.Duration
	Budget       time.Duration
	ClampedDelta bool
	MaxDelta     float64
}

// LoopHooks are the callbacks the loop drives. Step is required to do any
// work; every other hook is optional.
type LoopHooks struct {
	Step           func(ctx context.Context, tick LoopTickContext, commands []Command)
	AfterStep      func(LoopStepResult)
	NextTick       func() uint64
	OnCommandDrop  func(reason string, cmd Command)
	OnQueueWarning func(length int)
}

// LoopOption configures NewLoop.
type LoopOption func(*Loop)

// WithLogger routes backpressure warnings.
func WithLogger(logger telemetry.Logger) LoopOption {
	return func(l *Loop) { l.logger = logger }
}

// WithMetrics routes buffer gauges.
func WithMetrics(metrics telemetry.Metrics) LoopOption {
	return func(l *Loop) { l.metrics = metrics }
}

// WithClock overrides the wall clock.
func WithClock(clock logging.Clock) LoopOption {
	return func(l *Loop) { l.clock = clock }
}

// WithMode stamps tick spans with the mode name.
func WithMode(mode string) LoopOption {
	return func(l *Loop) { l.mode = mode }
}

// Loop coordinates command ingestion and the fixed-timestep simulation runner.
type Loop struct {
	buffer  *CommandBuffer
	hooks   LoopHooks
	config  LoopConfig
	logger  telemetry.Logger
	metrics telemetry.Metrics
	clock   logging.Clock
	mode    string

	tick          uint64
	queueMu       sync.Mutex
	perActorCount map[string]int
	dropCounts    map[string]uint64
}

// NewLoop constructs a loop with a ring-buffer queue sized by cfg.
func NewLoop(cfg LoopConfig, hooks LoopHooks, opts ...LoopOption) *Loop {
	if cfg.TickRate <= 0 {
		cfg.TickRate = defaultTickRate
	}
	loop := &Loop{
		hooks:         hooks,
		config:        cfg,
		metrics:       telemetry.NopMetrics{},
		clock:         logging.SystemClock,
		perActorCount: make(map[string]int),
		dropCounts:    make(map[string]uint64),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(loop)
		}
	}
	loop.buffer = NewCommandBuffer(cfg.CommandCapacity, loop.metrics)
	return loop
}

// Budget reports the wall time allotted to a single tick.
func (l *Loop) Budget() time.Duration {
	return time.Second / time.Duration(l.config.TickRate)
}

// Pending reports the number of staged commands.
func (l *Loop) Pending() int {
	if l == nil {
		return 0
	}
	return l.buffer.Len()
}

// Enqueue stages a command, enforcing per-actor throttling and capacity limits.
func (l *Loop) Enqueue(cmd Command) (bool, string) {
	if l == nil {
		return false, CommandRejectQueueFull
	}
	reason := ""
	var dropCount uint64
	l.queueMu.Lock()
	if l.config.PerActorLimit > 0 && cmd.ActorID != "" {
		count := l.perActorCount[cmd.ActorID]
		if count >= l.config.PerActorLimit {
			reason = CommandRejectQueueLimit
			dropCount = l.incrementDropLocked(cmd.ActorID)
		} else {
			l.perActorCount[cmd.ActorID] = count + 1
		}
	}
	if reason == "" {
		if !l.buffer.Push(cmd) {
			reason = CommandRejectQueueFull
			dropCount = l.incrementDropLocked(cmd.ActorID)
		} else if l.config.WarningStep > 0 {
			length := l.buffer.Len()
			if length >= l.config.WarningStep && length%l.config.WarningStep == 0 {
				l.queueMu.Unlock()
				l.warnQueue(length)
				return true, ""
			}
		}
	}
	l.queueMu.Unlock()
	if reason != "" {
		l.reportDrop(reason, cmd, dropCount)
		return false, reason
	}
	return true, ""
}

// Advance executes a single simulation step using the staged commands.
func (l *Loop) Advance(ctx context.Context, tick LoopTickContext) LoopStepResult {
	if l == nil {
		return LoopStepResult{}
	}
	commands := l.drainCommands()
	ctx, span := telemetry.StartTick(ctx, l.mode, tick.Tick)
	if l.hooks.Step != nil {
		l.hooks.Step(ctx, tick, commands)
	}
	span.End()
	return LoopStepResult{
		Tick:     tick.Tick,
		Now:      tick.Now,
		Delta:    tick.Delta,
		Commands: commands,
	}
}

// Run drives the fixed-timestep loop until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	if l == nil {
		return nil
	}
	budget := l.Budget()
	ticker := time.NewTicker(budget)
	defer ticker.Stop()

	last := l.clock.Now()
	budgetSeconds := budget.Seconds()
	maxDt := budgetSeconds
	if l.config.CatchupMaxTicks > 1 {
		maxDt = budgetSeconds * float64(l.config.CatchupMaxTicks)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			now := l.clock.Now()
			dt := now.Sub(last).Seconds()
			clamped := false
			if dt <= 0 {
				dt = budgetSeconds
			} else if dt > maxDt {
				dt = maxDt
				clamped = true
			}
			last = now

			start := l.clock.Now()
			result := l.Advance(ctx, LoopTickContext{Tick: l.nextTick(), Now: now, Delta: dt})
			result.Duration = l.clock.Now().Sub(start)
			result.Budget = budget
			result.ClampedDelta = clamped
			result.MaxDelta = maxDt

			if l.hooks.AfterStep != nil {
				l.hooks.AfterStep(result)
			}
		}
	}
}

func (l *Loop) nextTick() uint64 {
	if l.hooks.NextTick != nil {
		return l.hooks.NextTick()
	}
	l.tick++
	return l.tick
}

func (l *Loop) drainCommands() []Command {
	l.queueMu.Lock()
	defer l.queueMu.Unlock()
	commands := l.buffer.Drain()
	if len(l.perActorCount) > 0 {
		clear(l.perActorCount)
	}
	return commands
}

func (l *Loop) incrementDropLocked(actorID string) uint64 {
	if actorID == "" {
		return 0
	}
	count := l.dropCounts[actorID] + 1
	l.dropCounts[actorID] = count
	return count
}

func (l *Loop) warnQueue(length int) {
	if l.hooks.OnQueueWarning != nil {
		l.hooks.OnQueueWarning(length)
	}
}

func (l *Loop) reportDrop(reason string, cmd Command, count uint64) {
	if l.hooks.OnCommandDrop != nil {
		l.hooks.OnCommandDrop(reason, cmd)
	}
	// Log on powers of two so a flooding client cannot flood the log.
	if count > 0 && count&(count-1) == 0 && l.logger != nil {
		l.logger.Printf(
			"[backpressure] dropping command actor=%s type=%s reason=%s count=%d limit=%d",
			cmd.ActorID,
			cmd.Type,
			reason,
			count,
			l.config.PerActorLimit,
		)
	}
}

package sim

import "time"

// BenchReport summarises a window of tick durations.
type BenchReport struct {
	Ticks   uint64
	Average time.Duration
	Max     time.Duration
}

// Millis converts a duration to fractional milliseconds.
func Millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// Bench accumulates tick durations and tracks consecutive budget overruns.
// The zero value reports every 100 ticks.
type Bench struct {
	Window uint64

	ticks  uint64
	total  time.Duration
	max    time.Duration
	streak uint64
}

// BenchSample is the outcome of recording one tick.
type BenchSample struct {
	Overrun bool
	Streak  uint64
	Report  *BenchReport
}

// Record adds a tick. Report is set once per window.
func (b *Bench) Record(result LoopStepResult) BenchSample {
	window := b.Window
	if window == 0 {
		window = 100
	}
	var sample BenchSample
	if result.Budget > 0 && result.Duration > result.Budget {
		b.streak++
		sample.Overrun = true
	} else {
		b.streak = 0
	}
	sample.Streak = b.streak

	b.ticks++
	b.total += result.Duration
	if result.Duration > b.max {
		b.max = result.Duration
	}
	if b.ticks >= window {
		sample.Report = &BenchReport{
			Ticks:   b.ticks,
			Average: b.total / time.Duration(b.ticks),
			Max:     b.max,
		}
		b.ticks, b.total, b.max = 0, 0, 0
	}
	return sample
}

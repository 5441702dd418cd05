package simulation

import (
	"context"

	"github.com/pythonsnake602/MiniBit/logging"
)

const (
	// EventTickBudgetOverrun is emitted when a tick takes longer than its budget.
	EventTickBudgetOverrun logging.EventType = "simulation.tick_budget_overrun"
	// EventTickReport is emitted periodically with the average milliseconds per tick.
	EventTickReport logging.EventType = "simulation.tick_report"
)

// TickBudgetOverrunPayload captures timing details for a tick budget breach.
type TickBudgetOverrunPayload struct {
	DurationMillis int64   `json:"durationMillis"`
	BudgetMillis   int64   `json:"budgetMillis"`
	Ratio          float64 `json:"ratio"`
	Streak         uint64  `json:"streak"`
}

// TickReportPayload summarises a window of ticks.
type TickReportPayload struct {
	Ticks         uint64  `json:"ticks"`
	AverageMSPT   float64 `json:"averageMspt"`
	MaxMSPT       float64 `json:"maxMspt"`
	ActiveMatches int     `json:"activeMatches"`
	Participants  int     `json:"participants"`
}

// TickBudgetOverrun publishes a warning when the simulation exceeds the configured tick budget.
func TickBudgetOverrun(ctx context.Context, pub logging.Publisher, tick uint64, payload TickBudgetOverrunPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventTickBudgetOverrun,
		Tick:     tick,
		Actor:    logging.EntityRef{Kind: logging.EntityKindServer},
		Severity: logging.SeverityWarn,
		Category: logging.CategorySimulation,
		Payload:  payload,
		Extra:    extra,
	})
}

// TickReport publishes the periodic tick timing summary.
func TickReport(ctx context.Context, pub logging.Publisher, tick uint64, payload TickReportPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventTickReport,
		Tick:     tick,
		Actor:    logging.EntityRef{Kind: logging.EntityKindServer},
		Severity: logging.SeverityInfo,
		Category: logging.CategorySimulation,
		Payload:  payload,
		Extra:    extra,
	})
}

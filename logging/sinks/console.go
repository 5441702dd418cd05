package sinks

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/pythonsnake602/MiniBit/logging"
)

// ConsoleSink renders events as human readable lines on a zerolog console writer.
type ConsoleSink struct {
	logger zerolog.Logger
}

func NewConsoleSink(w io.Writer, cfg logging.ConsoleConfig) *ConsoleSink {
	if w == nil {
		w = io.Discard
	}
	writer := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.UseColor,
	}
	return &ConsoleSink{logger: zerolog.New(writer)}
}

func (s *ConsoleSink) Write(event logging.Event) error {
	entry := s.logger.WithLevel(zerologLevel(event.Severity)).
		Time(zerolog.TimestampFieldName, event.Time).
		Uint64("tick", event.Tick)
	if event.Mode != "" {
		entry = entry.Str("mode", event.Mode)
	}
	if ref := formatEntity(event.Actor); ref != "" {
		entry = entry.Str("actor", ref)
	}
	if len(event.Targets) > 0 {
		targets := zerolog.Arr()
		for _, target := range event.Targets {
			targets = targets.Str(formatEntity(target))
		}
		entry = entry.Array("targets", targets)
	}
	if event.Payload != nil {
		entry = entry.Interface("payload", event.Payload)
	}
	if len(event.Extra) > 0 {
		entry = entry.Fields(event.Extra)
	}
	entry.Msg(string(event.Type))
	return nil
}

func (s *ConsoleSink) Close(context.Context) error {
	return nil
}

func zerologLevel(sev logging.Severity) zerolog.Level {
	switch sev {
	case logging.SeverityDebug:
		return zerolog.DebugLevel
	case logging.SeverityInfo:
		return zerolog.InfoLevel
	case logging.SeverityWarn:
		return zerolog.WarnLevel
	case logging.SeverityError:
		return zerolog.ErrorLevel
	default:
		return zerolog.NoLevel
	}
}

func formatEntity(ref logging.EntityRef) string {
	if ref.ID == "" {
		return string(ref.Kind)
	}
	if ref.Kind == "" {
		return ref.ID
	}
	return string(ref.Kind) + ":" + ref.ID
}

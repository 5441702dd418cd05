// Package app assembles and runs every enabled mode server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pythonsnake602/MiniBit/internal/config"
	"github.com/pythonsnake602/MiniBit/internal/game"
	servernet "github.com/pythonsnake602/MiniBit/internal/net"
	"github.com/pythonsnake602/MiniBit/internal/net/ws"
	"github.com/pythonsnake602/MiniBit/internal/observability"
	"github.com/pythonsnake602/MiniBit/internal/telemetry"
	"github.com/pythonsnake602/MiniBit/logging"
	loggingSinks "github.com/pythonsnake602/MiniBit/logging/sinks"
)

const shutdownTimeout = 5 * time.Second

type Config struct {
	Logger   telemetry.Logger
	Settings config.Config
}

// Run starts every enabled mode server and blocks until ctx is cancelled or
// one of them fails.
func Run(ctx context.Context, cfg Config) error {
	telemetryLogger := cfg.Logger
	if telemetryLogger == nil {
		telemetryLogger = telemetry.LoggerFunc(nil)
	}
	settings := cfg.Settings

	modes := settings.Enabled()
	if len(modes) == 0 {
		return config.ErrNoModes
	}

	logConfig, err := loggingConfig(settings)
	if err != nil {
		return err
	}
	sinks, err := openSinks(logConfig)
	if err != nil {
		return err
	}
	router, err := logging.NewRouter(logging.SystemClock, logConfig, sinks)
	if err != nil {
		return fmt.Errorf("failed to construct logging router: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if cerr := router.Close(closeCtx); cerr != nil {
			telemetryLogger.Printf("failed to close logging router: %v", cerr)
		}
	}()

	shutdownTracing, err := telemetry.SetupTracing(ctx, telemetry.TracingConfig{
		Enabled:     settings.Telemetry.Tracing,
		Endpoint:    settings.Telemetry.Endpoint,
		ServiceName: settings.Telemetry.ServiceName,
	})
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if cerr := shutdownTracing(closeCtx); cerr != nil {
			telemetryLogger.Printf("failed to flush traces: %v", cerr)
		}
	}()

	observabilityCfg := observability.Config{EnablePprof: settings.Telemetry.Pprof}

	group, groupCtx := errgroup.WithContext(ctx)
	for _, mode := range modes {
		modeSettings, _ := settings.Mode(mode)

		var metrics telemetry.Metrics = telemetry.NewCounters()
		if settings.Telemetry.Metrics {
			metrics = telemetry.Multi(metrics, telemetry.NewOtelMetrics(mode))
		}

		hub := ws.NewHub(ws.HubConfig{Logger: telemetryLogger, Metrics: metrics})
		srv, err := game.NewServer(game.Config{
			Mode:      mode,
			Settings:  modeSettings,
			Logger:    telemetryLogger,
			Publisher: router,
			Metrics:   metrics,
			Sink:      hub,
			Notifier:  hub,
		})
		if err != nil {
			return err
		}

		httpSrv := &http.Server{
			Addr: srv.Address(),
			Handler: servernet.NewHTTPHandler(srv, hub, servernet.HTTPHandlerConfig{
				Logger:        telemetryLogger,
				Publisher:     logging.ForMode(router, mode),
				Observability: observabilityCfg,
			}),
		}

		group.Go(func() error {
			return srv.Run(groupCtx)
		})
		group.Go(func() error {
			telemetryLogger.Printf("[%s] listening on %s", mode, httpSrv.Addr)
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("%s server failed: %w", mode, err)
			}
			return nil
		})
		group.Go(func() error {
			<-groupCtx.Done()
			closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return httpSrv.Shutdown(closeCtx)
		})
	}

	return group.Wait()
}

func loggingConfig(settings config.Config) (logging.Config, error) {
	logConfig := logging.DefaultConfig()
	severity, err := logging.ParseSeverity(settings.Logging.Level)
	if err != nil {
		return logConfig, fmt.Errorf("%w: logging.level: %v", config.ErrInvalid, err)
	}
	logConfig.MinimumSeverity = severity
	if len(settings.Logging.Sinks) > 0 {
		logConfig.EnabledSinks = settings.Logging.Sinks
	}
	if settings.Logging.BufferSize > 0 {
		logConfig.BufferSize = settings.Logging.BufferSize
	}
	logConfig.Console.UseColor = settings.Logging.Color
	if settings.Logging.JSONPath != "" {
		logConfig.JSON.FilePath = settings.Logging.JSONPath
	}
	if !filepath.IsAbs(logConfig.JSON.FilePath) {
		logConfig.JSON.FilePath = filepath.Join(settings.DataPath, logConfig.JSON.FilePath)
	}
	return logConfig, nil
}

func openSinks(cfg logging.Config) ([]logging.NamedSink, error) {
	var sinks []logging.NamedSink
	for _, name := range cfg.EnabledSinks {
		switch name {
		case "console":
			sinks = append(sinks, logging.NamedSink{Name: name, Sink: loggingSinks.NewConsoleSink(os.Stdout, cfg.Console)})
		case "json":
			if err := os.MkdirAll(filepath.Dir(cfg.JSON.FilePath), 0o755); err != nil {
				return nil, fmt.Errorf("failed to create log directory: %w", err)
			}
			file, err := os.OpenFile(cfg.JSON.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if err != nil {
				return nil, fmt.Errorf("failed to open json log: %w", err)
			}
			sinks = append(sinks, logging.NamedSink{Name: name, Sink: loggingSinks.NewJSON(file, cfg.JSON.FlushInterval)})
		default:
			return nil, fmt.Errorf("%w: unknown logging sink %q", config.ErrInvalid, name)
		}
	}
	return sinks, nil
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/pythonsnake602/MiniBit/internal/app"
	"github.com/pythonsnake602/MiniBit/internal/config"
	"github.com/pythonsnake602/MiniBit/internal/telemetry"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	flags := pflag.NewFlagSet("minibit", pflag.ExitOnError)
	configPath := flags.StringP("config", "c", "", "path to config.yml")
	flags.String("data-path", "", "directory for persistent data and json logs")
	flags.Parse(os.Args[1:])

	settings, err := config.Load(*configPath, flags)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, app.Config{
		Logger:   telemetry.WrapLogger(logger),
		Settings: settings,
	}); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

package net

import (
	"encoding/json"
	nethttp "net/http"
	"net/http/pprof"
	"time"

	"github.com/pythonsnake602/MiniBit/internal/game"
	"github.com/pythonsnake602/MiniBit/internal/net/ws"
	"github.com/pythonsnake602/MiniBit/internal/observability"
	"github.com/pythonsnake602/MiniBit/internal/telemetry"
	"github.com/pythonsnake602/MiniBit/logging"
)

type HTTPHandlerConfig struct {
	Logger        telemetry.Logger
	Publisher     logging.Publisher
	Observability observability.Config
	Now           func() time.Time
}

// NewHTTPHandler serves one mode server: the websocket endpoint, a plain
// health probe and the diagnostics snapshot.
func NewHTTPHandler(srv *game.Server, hub *ws.Hub, cfg HTTPHandlerConfig) nethttp.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = telemetry.LoggerFunc(nil)
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	mux := nethttp.NewServeMux()

	mux.HandleFunc("/health", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/diagnostics", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		settings := srv.Settings()
		payload := struct {
			Status     string           `json:"status"`
			ServerTime int64            `json:"serverTime"`
			TickRate   int              `json:"tickRate"`
			Sessions   int              `json:"sessions"`
			Server     game.Diagnostics `json:"server"`
		}{
			Status:     "ok",
			ServerTime: now().UnixMilli(),
			TickRate:   settings.TickRate,
			Sessions:   hub.Len(),
			Server:     srv.Diagnostics(),
		}

		data, err := json.Marshal(payload)
		if err != nil {
			httpError(w, "failed to encode", nethttp.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	})

	wsHandler := ws.NewHandler(hub, srv, ws.HandlerConfig{Logger: logger, Publisher: cfg.Publisher, Now: now})
	mux.HandleFunc("/ws", wsHandler.Handle)

	if cfg.Observability.EnablePprof {
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}

	return mux
}

func httpError(w nethttp.ResponseWriter, msg string, code int) {
	nethttp.Error(w, msg, code)
}

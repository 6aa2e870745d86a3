package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/k1networth/itdesk/internal/shared/config"
	"github.com/k1networth/itdesk/internal/shared/httpx"
	"github.com/k1networth/itdesk/internal/shared/logger"
	"github.com/k1networth/itdesk/internal/ticket"
)

const appName = "ticket-service"

func main() {
	cfg := config.Load()
	log := logger.New(appName, cfg.AppEnv, cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Error("config_error", slog.String("err", err.Error()))
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := ticket.OpenStore(ctx, cfg.Storage)
	if err != nil {
		log.Error("store_open_failed", slog.String("driver", cfg.Storage.Driver), slog.String("err", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("store_close_failed", slog.String("err", err.Error()))
		}
	}()
	log.Info("store_open", slog.String("driver", cfg.Storage.Driver))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	ticketH := &ticket.Handler{
		Log:     log,
		Store:   store,
		Metrics: ticket.NewMetrics(reg),
	}

	handler := httpx.NewRouter(httpx.RouterConfig{
		Log:      log,
		Metrics:  httpx.NewMetrics(reg),
		Gatherer: reg,
		Ready:    store.Ping,
		Routes:   []httpx.Routes{ticketH},
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Info("http_listen", slog.String("addr", srv.Addr))

	go func() {
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http_server_error", slog.String("err", err.Error()))
			stop()
		}
	}()

	httpx.WaitAndShutdown(ctx, log, srv, cfg.ShutdownTimeout)
}

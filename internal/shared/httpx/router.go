package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes is implemented by feature handlers that mount themselves on the mux.
type Routes interface {
	Register(mux *http.ServeMux)
}

type RouterConfig struct {
	Log *slog.Logger
	// Metrics and Gatherer are optional; /metrics is served only with a Gatherer.
	Metrics  *Metrics
	Gatherer prometheus.Gatherer
	// Ready backs /readyz; nil means always ready.
	Ready  func(ctx context.Context) error
	Routes []Routes
}

func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /healthz", WithRoute("/healthz", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})))

	mux.Handle("GET /readyz", WithRoute("/readyz", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cfg.Ready != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := cfg.Ready(ctx); err != nil {
				cfg.Log.Warn("readiness_failed", slog.String("err", err.Error()))
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("not ready"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})))

	if cfg.Gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	for _, rt := range cfg.Routes {
		rt.Register(mux)
	}

	var h http.Handler = mux
	if cfg.Metrics != nil {
		h = cfg.Metrics.Middleware(h)
	}
	h = AccessLog(cfg.Log)(h)
	h = RequestID(h)

	return h
}

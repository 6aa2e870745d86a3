package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// WaitAndShutdown blocks until ctx is cancelled, then drains srv within timeout.
func WaitAndShutdown(ctx context.Context, log *slog.Logger, srv *http.Server, timeout time.Duration) {
	<-ctx.Done()

	log.Info("shutdown_start")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown_failed", slog.String("err", err.Error()))
		return
	}

	log.Info("shutdown_done")
}

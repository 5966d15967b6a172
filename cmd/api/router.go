package main

import (
	"context"
	"net/http"
	"time"

	"bookhub/internal/book"
	"bookhub/internal/config"
	"bookhub/internal/httpx"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// pinger reports whether the record store is reachable.
type pinger interface {
	Ping(ctx context.Context) error
}

// newRouter registers the catalog routes under cfg.BasePath and the operational routes at
// the root, then wraps them in the middleware chain. The returned stop function releases
// the rate limiter.
func newRouter(cfg config.HTTPConfig, books *book.HTTPHandler, store pinger, reg *prometheus.Registry, log *zap.Logger) (http.Handler, func()) {
	base := cfg.BasePath

	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			log.Warn("readiness check failed", zap.Error(err))
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	router.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	router.HandleFunc("GET "+base+"/books", books.List)
	router.HandleFunc("GET "+base+"/books/search", books.Search)
	router.HandleFunc("GET "+base+"/books/{id}", books.GetByID)
	router.HandleFunc("GET "+base+"/genres", books.Genres)
	router.HandleFunc("GET "+base+"/genres/{genre}/books", books.ListByGenre)

	metrics := httpx.NewMetrics(reg)
	rateLimiter := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.TrustedProxyPrefixes())

	handler := httpx.Chain(router,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(log),
		httpx.RecoveryMiddleware(log),
		httpx.CORSMiddleware(cfg.CORSOrigins),
		httpx.SecurityHeadersMiddleware(cfg.EnableHSTS),
		rateLimiter.Middleware,
		metrics.Middleware,
	)
	return handler, rateLimiter.Stop
}

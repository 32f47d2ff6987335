package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/chronomap/georetrieve/internal/config"
	logpkg "github.com/chronomap/georetrieve/internal/logger"
	"github.com/chronomap/georetrieve/internal/metrics"
	cacherepo "github.com/chronomap/georetrieve/internal/repository/analytics"
	"github.com/chronomap/georetrieve/internal/transport/backend"
	"github.com/chronomap/georetrieve/internal/transport/ipapi"
	"github.com/chronomap/georetrieve/internal/transport/web"
	analyticsuc "github.com/chronomap/georetrieve/internal/usecase/analytics"
	healthuc "github.com/chronomap/georetrieve/internal/usecase/health"
	locateuc "github.com/chronomap/georetrieve/internal/usecase/locate"
	searchuc "github.com/chronomap/georetrieve/internal/usecase/search"
	suggestuc "github.com/chronomap/georetrieve/internal/usecase/suggest"
	"github.com/chronomap/georetrieve/internal/version"
)

func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting georetrieve server",
		zap.String("version", version.Human()),
		zap.String("built_at", version.BuiltAt),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("backend", cfg.Backend.BaseURL),
		zap.Bool("cache_enabled", cfg.Cache.Enabled()),
	)

	metrics.RegisterBackendMetrics()

	be := backend.New(&backend.Config{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: time.Duration(cfg.Backend.TimeoutSec) * time.Second,
		Logger:  logger,
	})

	// Optional analytics cache. Pass nil interface (not typed nil
	// pointer!) downstream when it is not configured.
	var cache *cacherepo.Cache
	if cfg.Cache.Enabled() {
		cache, err = cacherepo.NewCache(cacherepo.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
			TTL:      time.Duration(cfg.Cache.TTLSec) * time.Second,
		})
		if err != nil {
			logger.Fatal("Failed to connect analytics cache", zap.Error(err))
		}
		defer cache.Close()
	}
	var cacher analyticsuc.Cacher
	var cachePinger healthuc.CachePinger
	if cache != nil {
		cacher = cache
		cachePinger = cache
	}

	// Optional IP geolocation.
	var locator locateuc.Locator
	if cfg.Geolocate.ProviderURL != "" {
		locator = ipapi.New(&ipapi.Config{
			URL:     cfg.Geolocate.ProviderURL,
			Timeout: time.Duration(cfg.Geolocate.TimeoutSec) * time.Second,
			Logger:  logger,
		})
	}

	searchSvc := searchuc.New(be, logger)
	suggestSvc := suggestuc.New(be, cfg.Backend.AutocompleteSize, logger)
	locateSvc := locateuc.New(locator, logger)
	analyticsSvc := analyticsuc.New(be, cacher, logger)
	healthSvc := healthuc.New(be, cachePinger)

	server, err := web.NewServer(searchSvc, suggestSvc, locateSvc, analyticsSvc, healthSvc, logger)
	if err != nil {
		logger.Fatal("Failed to create web server", zap.Error(err))
	}

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}

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

	"nurture/internal/activity"
	"nurture/internal/bootstrap"
	"nurture/internal/chat"
	chathandler "nurture/internal/chat/handler"
	chatmetrics "nurture/internal/chat/metrics"
	"nurture/internal/evaluation"
	evalhandler "nurture/internal/evaluation/handler"
	evalmetrics "nurture/internal/evaluation/metrics"
	"nurture/internal/platform/config"
	"nurture/internal/platform/httpserver"
	"nurture/internal/platform/logger"
	"nurture/internal/platform/metrics"
	"nurture/internal/platform/redis"
	"nurture/internal/ratelimit"
	rlmetrics "nurture/internal/ratelimit/metrics"
	rlmiddleware "nurture/internal/ratelimit/middleware"
	"nurture/internal/ratelimit/store/bucket"
	httptransport "nurture/internal/transport/http"
)

const (
	shutdownTimeout = 10 * time.Second
	sweepInterval   = time.Minute
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal packages.
func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogFormat, cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalogs, err := bootstrap.LoadCatalogs(ctx, cfg.Catalog)
	if err != nil {
		bootstrap.LogViolations(ctx, log, err)
		os.Exit(1)
	}

	appMetrics := metrics.New()
	appMetrics.SetCatalogEntries("milestones", catalogs.Milestones.Len())
	appMetrics.SetCatalogEntries("activity_buckets", catalogs.Activities.Len())
	appMetrics.SetCatalogEntries("recommendations", len(catalogs.Records))

	engine := evaluation.NewEngine(catalogs.Milestones, catalogs.Activities)
	picker := activity.NewPicker(catalogs.Records, nil)
	responder := chat.NewResponder(catalogs.Milestones, engine, catalogs.Activities, picker)

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		// The limiter runs in memory when Redis is unreachable at start-up.
		log.WarnContext(ctx, "redis unavailable, using in-memory rate limiting", "error", err)
		redisClient = nil
	}

	memStore := bucket.NewInMemoryBucketStore()
	limiter, err := newLimiter(cfg.RateLimit, redisClient, memStore, log)
	if err != nil {
		log.ErrorContext(ctx, "failed to build rate limiter", "error", err)
		os.Exit(1)
	}
	go sweep(ctx, memStore)

	routerCfg := httptransport.Config{
		Logger:         log,
		Metrics:        appMetrics,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Evaluation:     evalhandler.New(engine, catalogs.Milestones, log, evalmetrics.New()),
		Chat:           chathandler.New(responder, log, chatmetrics.New()),
		ChatLimit: rlmiddleware.New(limiter, log,
			rlmiddleware.WithDisabled(!cfg.RateLimit.Enabled),
		).RateLimit("chat"),
	}
	if redisClient != nil {
		routerCfg.Redis = redisClient
	}

	srv := httpserver.New(cfg.Addr, httptransport.NewRouter(routerCfg))

	go func() {
		log.InfoContext(ctx, "starting nurture",
			"addr", cfg.Addr,
			"milestones", catalogs.Milestones.Len(),
			"redis", redisClient != nil,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	log.Info("server stopped")
}

// newLimiter prefers Redis with the in-memory store as circuit-breaker
// fallback, and uses memory alone when Redis is not configured.
func newLimiter(cfg config.RateLimitConfig, client *redis.Client, mem *bucket.InMemoryBucketStore, log *slog.Logger) (*ratelimit.Limiter, error) {
	opts := []ratelimit.Option{
		ratelimit.WithLogger(log),
		ratelimit.WithMetrics(rlmetrics.New()),
	}
	if client == nil {
		return ratelimit.New(mem, cfg.Limit, cfg.Window, opts...)
	}
	opts = append(opts, ratelimit.WithFallback(mem))
	return ratelimit.New(bucket.NewRedisBucketStore(client.Client), cfg.Limit, cfg.Window, opts...)
}

func sweep(ctx context.Context, store *bucket.InMemoryBucketStore) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			store.Sweep(now)
		}
	}
}

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
	"go.uber.org/zap"

	"github.com/reelchat/reelchat/internal/config"
	"github.com/reelchat/reelchat/internal/db"
	dbMemory "github.com/reelchat/reelchat/internal/db/memory"
	dbRedis "github.com/reelchat/reelchat/internal/db/redis"
	"github.com/reelchat/reelchat/internal/domain"
	logpkg "github.com/reelchat/reelchat/internal/logger"
	"github.com/reelchat/reelchat/internal/metrics"
	"github.com/reelchat/reelchat/internal/repository/catalog"
	"github.com/reelchat/reelchat/internal/repository/embcache"
	chiTransport "github.com/reelchat/reelchat/internal/transport/chi"
	openaiEmb "github.com/reelchat/reelchat/internal/transport/openai"
	chatuc "github.com/reelchat/reelchat/internal/usecase/chat"
	embeddinguc "github.com/reelchat/reelchat/internal/usecase/embedding"
	healthuc "github.com/reelchat/reelchat/internal/usecase/health"
	intentuc "github.com/reelchat/reelchat/internal/usecase/intent"
	matchuc "github.com/reelchat/reelchat/internal/usecase/match"
	semanticuc "github.com/reelchat/reelchat/internal/usecase/semantic"
	"github.com/reelchat/reelchat/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting reelchat server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("catalog_path", cfg.Catalog.Path),
	)

	// Load the static catalog once; it is read-only for the process lifetime.
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		logger.Fatal("Failed to load catalog", zap.Error(err))
	}
	logger.Info("Catalog loaded",
		zap.Int("records", cat.Len()),
		zap.Strings("categories", cat.Categories()),
	)

	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterChatMetrics()

	ctx := context.Background()

	// Embedding cache store: memory by default, redis when configured.
	store := buildCacheStore(ctx, cfg, logger)
	if store != nil {
		defer store.Close()
	}

	// Build embedder chain — composition root.
	// Missing API key is a valid state: semantic ranking stays disabled.
	embedder := buildEmbedder(cfg, store, logger)

	matcher := matchuc.New(cat).
		WithThreshold(cfg.Matching.Threshold).
		WithWeights(matchuc.Weights{
			Title:       cfg.Matching.TitleWeight,
			Director:    cfg.Matching.DirectorWeight,
			Description: cfg.Matching.DescriptionWeight,
		})

	ranker := semanticuc.New(cat, embedder, logger)
	ranker.BuildCache(ctx)

	classifier := intentuc.New(cat)

	chatSvc, err := chatuc.New(cat, matcher, ranker, classifier, logger)
	if err != nil {
		logger.Fatal("Failed to create chat service", zap.Error(err))
	}

	healthSvc := healthuc.New(cat, newEmbeddingHealthChecker(embedder))

	server := chiTransport.NewServer(chatSvc, healthSvc, logger)

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

// buildCacheStore picks the embedding cache backend. A dead redis degrades
// to the in-memory store rather than aborting startup.
func buildCacheStore(ctx context.Context, cfg config.Config, logger *zap.Logger) db.Store {
	if cfg.Embedding.Provider.APIKey == "" {
		return nil
	}

	if cfg.Embedding.Cache.Backend == "redis" {
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Embedding.Cache.Addrs,
			Password: cfg.Embedding.Cache.Password,
		})
		if err == nil {
			if err = db.WaitForReady(ctx, store, 10*time.Second); err == nil {
				logger.Info("Using redis embedding cache", zap.Strings("addrs", cfg.Embedding.Cache.Addrs))
				return store
			}
			store.Close()
		}
		logger.Warn("Redis embedding cache unavailable, using memory", zap.Error(err))
	}

	return dbMemory.NewStore()
}

// buildEmbedder assembles the decorator chain: OpenAI -> Cached -> Instrumented.
// Returns nil when no provider is configured, which disables semantic ranking.
func buildEmbedder(cfg config.Config, store db.Store, logger *zap.Logger) domain.Embedder {
	prov := cfg.Embedding.Provider
	if prov.APIKey == "" {
		logger.Info("No embedding provider configured, semantic ranking disabled")
		return nil
	}

	base := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     prov.APIKey,
		BaseURL:    prov.BaseURL,
		Model:      prov.Model,
		Dimensions: prov.Dimensions,
		Timeout:    time.Duration(cfg.Embedding.TimeoutSec) * time.Second,
		Provider:   prov.Name,
		Logger:     logger,
	})

	var embedder domain.Embedder = base
	if store != nil {
		embedder = embcache.New(base, store, metrics.EmbeddingCacheTotal, logger)
	}

	// Pass nil interface (not typed nil pointer!) if budget is not configured.
	var budget embeddinguc.BudgetChecker
	budgetCfg := prov.Budget
	if budgetCfg.DailyTokenLimit > 0 || budgetCfg.MonthlyTokenLimit > 0 {
		action := embeddinguc.BudgetActionWarn
		if budgetCfg.Action == "reject" {
			action = embeddinguc.BudgetActionReject
		}
		budget = embeddinguc.NewBudgetTracker(
			prov.Name, budgetCfg.DailyTokenLimit, budgetCfg.MonthlyTokenLimit, action, logger,
		)
	}

	return embeddinguc.NewInstrumentedEmbedder(embedder, prov.Name, prov.Model, budget, logger)
}

// embeddingHealthChecker adapts domain.Embedder to health.EmbeddingChecker.
type embeddingHealthChecker struct {
	embedder domain.Embedder
}

func newEmbeddingHealthChecker(embedder domain.Embedder) healthuc.EmbeddingChecker {
	if embedder == nil {
		return nil
	}
	return &embeddingHealthChecker{embedder: embedder}
}

func (h *embeddingHealthChecker) HealthCheck(ctx context.Context) error {
	if hc, ok := h.embedder.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("embedding health check: %w", err)
		}
	}
	return nil
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a
// plain text stacktrace.
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

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}

package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"cybernewshub/internal/common/pagination"
	"cybernewshub/internal/feeds"
	"cybernewshub/internal/geo"
	hhttp "cybernewshub/internal/handler/http"
	pgRepo "cybernewshub/internal/infra/adapter/persistence/postgres"
	"cybernewshub/internal/infra/classifier"
	"cybernewshub/internal/infra/db"
	"cybernewshub/internal/infra/fetcher"
	"cybernewshub/internal/observability/logging"
	artUC "cybernewshub/internal/usecase/article"
	"cybernewshub/internal/usecase/classify"
	"cybernewshub/internal/usecase/ingest"
	"cybernewshub/pkg/config"
)

func main() {
	logger := logging.NewLogger()
	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	catalog, err := feeds.Load()
	if err != nil {
		logger.Error("failed to load feed catalog", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("feed catalog loaded", slog.Int("sources", catalog.Len()))

	ingestCfg, err := ingest.LoadConfig()
	if err != nil {
		logger.Error("failed to load ingest configuration", slog.Any("error", err))
		os.Exit(1)
	}

	fetchCfg, err := fetcher.LoadFeedFetchConfig()
	if err != nil {
		logger.Error("failed to load fetch configuration", slog.Any("error", err))
		os.Exit(1)
	}

	detector := geo.NewDetector()
	keyword := classify.NewKeywordClassifier()
	chain := buildClassifierChain(logger, keyword)

	articleRepo := pgRepo.NewArticleRepo(database)
	cacheRepo := pgRepo.NewFeedCacheRepo(database)

	ingestSvc := ingest.NewService(catalog, fetcher.NewRSS(fetchCfg),
		articleRepo, cacheRepo, chain, detector, ingestCfg)
	articleSvc := artUC.NewService(articleRepo, catalog, detector, keyword)

	handler := hhttp.NewRouter(hhttp.RouterDeps{
		DB:            database,
		Version:       getVersion(),
		Articles:      articleSvc,
		Ingest:        ingestSvc,
		Catalog:       catalog,
		Bounds:        ingestCfg,
		PaginationCfg: pagination.LoadFromEnv(),
		Logger:        logger,
	})

	runServer(logger, handler)
}

// initDatabase opens the database connection and runs migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// buildClassifierChain assembles the categorization tiers from the
// environment. Unconfigured tiers are simply absent; the keyword tier is
// always last so the chain never fails.
//
// Environment variables:
//   - CLASSIFIER_TYPE: "groq" (default) or "claude" for the LLM tier
//   - GROQ_API_KEY / ANTHROPIC_API_KEY: LLM credentials; missing key skips the tier
//   - LOCAL_CLASSIFIER_URL: zero-shot inference endpoint; empty skips the tier
func buildClassifierChain(logger *slog.Logger, keyword *classify.KeywordClassifier) *classify.Chain {
	var tiers []classify.Classifier

	switch config.GetEnvString("CLASSIFIER_TYPE", "groq") {
	case "claude":
		if claude := classifier.NewClaude(os.Getenv("ANTHROPIC_API_KEY"), classifier.DefaultClaudeConfig()); claude != nil {
			tiers = append(tiers, claude)
			logger.Info("classifier tier enabled", slog.String("tier", claude.Name()))
		}
	default:
		if groq := classifier.NewGroq(os.Getenv("GROQ_API_KEY"), classifier.DefaultGroqConfig()); groq != nil {
			tiers = append(tiers, groq)
			logger.Info("classifier tier enabled", slog.String("tier", groq.Name()))
		}
	}

	if local := classifier.NewLocal(classifier.DefaultLocalConfig(os.Getenv("LOCAL_CLASSIFIER_URL"))); local != nil {
		tiers = append(tiers, local)
		logger.Info("classifier tier enabled", slog.String("tier", local.Name()))
	}

	tiers = append(tiers, keyword)
	return classify.NewChain(tiers...)
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	if version := os.Getenv("VERSION"); version != "" {
		return version
	}
	return "dev"
}

// runServer starts the HTTP server and blocks until shutdown.
func runServer(logger *slog.Logger, handler http.Handler) {
	addr := config.GetEnvString("LISTEN_ADDR", ":8080")
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      5 * time.Minute, // the ingestion trigger can run for minutes
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("api server starting", slog.String("addr", addr))
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("api server failed", slog.Any("error", err))
			os.Exit(1)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("api server stopped")
}

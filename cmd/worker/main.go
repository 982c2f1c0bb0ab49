// The worker runs the ingestion pipeline on a cron schedule and exposes
// health and Prometheus metrics endpoints for operations.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/robfig/cron/v3"

	"cybernewshub/internal/feeds"
	"cybernewshub/internal/geo"
	pgRepo "cybernewshub/internal/infra/adapter/persistence/postgres"
	"cybernewshub/internal/infra/classifier"
	"cybernewshub/internal/infra/db"
	"cybernewshub/internal/infra/fetcher"
	workerPkg "cybernewshub/internal/infra/worker"
	"cybernewshub/internal/observability/logging"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	workerMetrics := workerPkg.NewWorkerMetrics()
	workerMetrics.MustRegister()
	workerCfg, err := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	if err != nil {
		logger.Error("failed to load worker configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", workerCfg.CronSchedule),
		slog.String("timezone", workerCfg.Timezone),
		slog.Duration("fetch_timeout", workerCfg.FetchTimeout),
		slog.Int("max_workers", workerCfg.MaxWorkers),
		slog.Bool("only_recent", workerCfg.OnlyRecent),
		slog.Int("health_port", workerCfg.HealthPort),
		slog.Int("metrics_port", workerCfg.MetricsPort))

	startMetricsServer(ctx, logger, workerCfg.MetricsPort)

	healthAddr := fmt.Sprintf(":%d", workerCfg.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()

	svc, err := setupIngestService(logger, database)
	if err != nil {
		logger.Error("failed to set up ingestion service", slog.Any("error", err))
		os.Exit(1)
	}

	runScheduler(ctx, logger, svc, workerCfg, workerMetrics, healthServer)
}

// initDatabase opens the database connection and waits until the API's
// migrations have created the schema.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()

	const probe = "SELECT 1 FROM articles LIMIT 1"
	for attempt := 1; attempt <= 10; attempt++ {
		if _, err := database.Exec(probe); err == nil {
			return database
		}
		logger.Info("waiting for migrations, retrying in 3s", slog.Int("attempt", attempt))
		time.Sleep(3 * time.Second)
	}

	logger.Error("migrations did not complete in time")
	os.Exit(1)
	return nil
}

// setupIngestService wires the full ingestion pipeline.
func setupIngestService(logger *slog.Logger, database *sql.DB) (*ingest.Service, error) {
	catalog, err := feeds.Load()
	if err != nil {
		return nil, fmt.Errorf("load feed catalog: %w", err)
	}
	logger.Info("feed catalog loaded", slog.Int("sources", catalog.Len()))

	ingestCfg, err := ingest.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load ingest configuration: %w", err)
	}

	fetchCfg, err := fetcher.LoadFeedFetchConfig()
	if err != nil {
		return nil, fmt.Errorf("load fetch configuration: %w", err)
	}

	keyword := classify.NewKeywordClassifier()
	chain := buildClassifierChain(logger, keyword)

	return ingest.NewService(
		catalog,
		fetcher.NewRSS(fetchCfg),
		pgRepo.NewArticleRepo(database),
		pgRepo.NewFeedCacheRepo(database),
		chain,
		geo.NewDetector(),
		ingestCfg,
	), nil
}

// buildClassifierChain assembles the categorization tiers from the
// environment, mirroring the API binary's wiring.
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

// runScheduler registers the cron job and blocks until a shutdown signal.
func runScheduler(
	ctx context.Context,
	logger *slog.Logger,
	svc *ingest.Service,
	cfg *workerPkg.WorkerConfig,
	metrics *workerPkg.WorkerMetrics,
	healthServer *workerPkg.HealthServer,
) {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		os.Exit(1)
	}

	scheduler := cron.New(cron.WithLocation(location))
	_, err = scheduler.AddFunc(cfg.CronSchedule, func() {
		runIngestion(ctx, logger, svc, cfg, metrics)
	})
	if err != nil {
		logger.Error("failed to register cron job", slog.Any("error", err))
		os.Exit(1)
	}

	scheduler.Start()
	healthServer.SetReady(true)
	logger.Info("scheduler started",
		slog.String("schedule", cfg.CronSchedule),
		slog.String("timezone", cfg.Timezone))

	// Run once at startup if requested, so a fresh deployment has data
	// before the first scheduled tick.
	if config.GetEnvBool("FETCH_ON_START", false) {
		go runIngestion(ctx, logger, svc, cfg, metrics)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop
	logger.Info("shutdown signal received", slog.String("signal", sig.String()))

	healthServer.SetReady(false)
	cronCtx := scheduler.Stop() // lets an in-flight run finish
	select {
	case <-cronCtx.Done():
	case <-time.After(cfg.FetchTimeout):
		logger.Warn("timed out waiting for in-flight run")
	}
	logger.Info("worker stopped")
}

// runIngestion executes one scheduled ingestion run.
func runIngestion(ctx context.Context, logger *slog.Logger, svc *ingest.Service, cfg *workerPkg.WorkerConfig, metrics *workerPkg.WorkerMetrics) {
	runCtx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout)
	defer cancel()

	start := time.Now()
	logger.Info("scheduled ingestion run starting")

	report, err := svc.FetchFeeds(runCtx, ingest.Params{
		MaxWorkers: cfg.MaxWorkers,
		OnlyRecent: cfg.OnlyRecent,
		RecentDays: cfg.RecentDays,
	})
	duration := time.Since(start)
	metrics.RecordRunDuration(duration.Seconds())

	if err != nil {
		metrics.RecordRun("failure")
		logger.Error("scheduled ingestion run failed",
			slog.Duration("duration", duration),
			slog.Any("error", err))
		return
	}

	metrics.RecordRun("success")
	metrics.RecordArticlesStored(report.NewArticles)
	metrics.RecordLastSuccess()
	logger.Info("scheduled ingestion run completed",
		slog.Duration("duration", duration),
		slog.Int("new_articles", report.NewArticles),
		slog.Int("successful_feeds", report.SuccessfulFeeds),
		slog.Int("cached_feeds", report.CachedFeeds),
		slog.Int("failed_feeds", report.FailedFeeds))
}

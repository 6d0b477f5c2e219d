package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/yizinity/journal/internal/config"
	"github.com/yizinity/journal/internal/database"
	"github.com/yizinity/journal/internal/events"
	"github.com/yizinity/journal/internal/modules/accounts"
	"github.com/yizinity/journal/internal/modules/analytics"
	"github.com/yizinity/journal/internal/modules/charts"
	"github.com/yizinity/journal/internal/modules/insights"
	"github.com/yizinity/journal/internal/modules/journal"
	"github.com/yizinity/journal/internal/scheduler"
	"github.com/yizinity/journal/internal/server"
	"github.com/yizinity/journal/pkg/logger"
)

func main() {
	// Load configuration first so the logger picks up the right level
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New(logger.Config{Level: "info", Pretty: true})
		fallback.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting trading journal")

	// Initialize database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Events
	eventManager := events.NewManager(log)

	// Repositories
	tradeRepo := journal.NewTradeRepository(db.Conn(), log)
	accountRepo := accounts.NewAccountRepository(db.Conn(), log)

	// Services
	accountService := accounts.NewService(accountRepo, eventManager, log)
	analyticsService := analytics.NewService(tradeRepo, accountRepo, eventManager, log)

	var generator insights.Generator
	if cfg.GeminiAPIKey != "" {
		generator, err = insights.NewGeminiGenerator(context.Background(), cfg.GeminiAPIKey, cfg.InsightsModel)
		if err != nil {
			log.Error().Err(err).Msg("Failed to initialize Gemini client, insights degraded")
			generator = nil
		}
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set, insight endpoints return placeholders")
	}
	insightsService := insights.NewService(generator, tradeRepo, accountRepo, eventManager, log)

	// Scheduler and background jobs
	sched := scheduler.New(log)
	sched.Start()
	defer sched.Stop()

	if err := registerJobs(sched, db, insightsService, log); err != nil {
		log.Fatal().Err(err).Msg("Failed to register jobs")
	}

	// HTTP server
	srv := server.New(server.Config{
		Port:     cfg.Port,
		Log:      log,
		DB:       db,
		DevMode:  cfg.DevMode,
		Journal:  journal.NewHandlers(tradeRepo, accountRepo, eventManager, log),
		Accounts: accounts.NewHandlers(accountRepo, accountService, eventManager, log),
		Metrics:  analytics.NewHandlers(analyticsService, log),
		Charts:   charts.NewHandlers(tradeRepo, log),
		Insights: insights.NewHandlers(insightsService, tradeRepo, db.Conn(), log),
		System:   server.NewSystemHandlers(log, db),
	})

	// Start server in goroutine
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

func registerJobs(sched *scheduler.Scheduler, db *database.DB, insightsService *insights.Service, log zerolog.Logger) error {
	// Nightly strategy digest at 3 AM
	if err := sched.AddJob("0 0 3 * * *", insights.NewDigestJob(db.Conn(), insightsService, log)); err != nil {
		return err
	}

	// Weekly database maintenance, Sunday 4 AM
	return sched.AddJob("0 0 4 * * SUN", scheduler.NewMaintenanceJob(db, log))
}

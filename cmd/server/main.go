package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"tabashir-engine/internal/api/routes"
	"tabashir-engine/internal/background"
	"tabashir-engine/internal/config"
	"tabashir-engine/internal/jobs"
	"tabashir-engine/internal/logging"
	"tabashir-engine/internal/matches"
	"tabashir-engine/internal/store"
	"tabashir-engine/internal/translation"
	"tabashir-engine/pkg/utils"
)

func main() {
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logging.InitializeLogging(cfg); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.CloseLogging()

	logger := logging.GetGlobalLogger()
	logger.Info("Starting Tabashir Job Engine")

	ctx := context.Background()

	pool, err := store.NewPostgresPool(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", map[string]interface{}{"error": err.Error()})
	}
	defer pool.Close()

	jobStore := store.NewJobStore(pool)
	rankingStore := store.NewRankingStore(pool)
	clientStore := store.NewClientStore(pool)

	// Redis is optional: without it translation loses its cross-instance
	// lock and dead-letter list but still works.
	redisClient := utils.NewRedisClient(cfg)
	var locker translation.Locker
	var deadLetter background.DeadLetterSink
	if err := redisClient.Ping(ctx); err != nil {
		logger.Warn("Redis unreachable, translation locks and dead-letter list disabled", map[string]interface{}{
			"error": err.Error(),
		})
		redisClient.Close()
		redisClient = nil
	} else {
		locker = redisClient
		deadLetter = redisClient
		defer redisClient.Close()
	}

	translationSvc := translation.NewService(cfg, jobStore, locker)
	if err := translationSvc.Start(); err != nil {
		logger.Fatal("Failed to start translation service", map[string]interface{}{"error": err.Error()})
	}
	defer translationSvc.Stop()

	taskManager := background.NewTaskManager(cfg, jobStore, translationSvc, deadLetter)
	if err := taskManager.Start(ctx); err != nil {
		logger.Fatal("Failed to start task manager", map[string]interface{}{"error": err.Error()})
	}

	jobService := jobs.NewService(jobStore, clientStore, translationSvc, taskManager)
	matchService := matches.NewService(rankingStore)

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	e.Server.IdleTimeout = cfg.Server.IdleTimeout

	routes.SetupRoutes(e, routes.Dependencies{
		Config:         cfg,
		Pool:           pool,
		Redis:          redisClient,
		JobService:     jobService,
		MatchService:   matchService,
		TranslationSvc: translationSvc,
		TaskManager:    taskManager,
	})

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := taskManager.Stop(shutdownCtx); err != nil {
			logger.Error("Error stopping task manager", map[string]interface{}{"error": err.Error()})
		}

		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error shutting down server", map[string]interface{}{"error": err.Error()})
		}

		logger.Info("Server shutdown complete")
	}()

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.WithField("address", address).Info("Server starting")

	if err := e.Start(address); err != nil && err != http.ErrServerClosed {
		logger.Fatal("Server failed to start", map[string]interface{}{"error": err.Error()})
	}
}

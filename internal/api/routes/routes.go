// Package routes wires the HTTP surface.
package routes

import (
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"tabashir-engine/internal/api/handlers"
	"tabashir-engine/internal/api/middleware"
	"tabashir-engine/internal/background"
	"tabashir-engine/internal/config"
	"tabashir-engine/internal/jobs"
	"tabashir-engine/internal/matches"
	"tabashir-engine/internal/translation"
	"tabashir-engine/pkg/utils"
)

// Dependencies carries everything the route handlers need.
type Dependencies struct {
	Config         *config.Config
	Pool           *pgxpool.Pool
	Redis          *utils.RedisClient
	JobService     *jobs.Service
	MatchService   *matches.Service
	TranslationSvc *translation.Service
	TaskManager    background.TaskManager
}

// SetupRoutes configures all API routes
func SetupRoutes(e *echo.Echo, deps Dependencies) {
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSConfig())
	// Posting routes get extra time for synchronous Arabic translation.
	e.Use(middleware.SelectiveTimeoutConfig(deps.Config.Server.ReadTimeout, 2*time.Minute))

	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler)
		health.GET("/live", handlers.LivenessHandler)
		health.GET("/ready", handlers.ReadinessHandler(deps.Pool, deps.Redis, deps.TranslationSvc, deps.TaskManager))
	}

	e.GET("/status", handlers.StatusHandler(deps.TaskManager))

	v1 := e.Group("/api/v1")
	{
		jobsGroup := v1.Group("/jobs")
		{
			jobsGroup.GET("", handlers.ListJobsHandler(deps.JobService))
			jobsGroup.POST("", handlers.CreateJobHandler(deps.JobService))
			jobsGroup.GET("/matched", handlers.MatchedJobsHandler(deps.MatchService))
			jobsGroup.GET("/applied", handlers.AppliedJobsHandler(deps.MatchService))
			jobsGroup.GET("/applied/count", handlers.AppliedJobsCountHandler(deps.MatchService))
			jobsGroup.GET("/monthly-count", handlers.MonthlyCountHandler(deps.JobService))
			jobsGroup.GET("/:id", handlers.GetJobHandler(deps.JobService))
			jobsGroup.PUT("/:id", handlers.UpdateJobHandler(deps.JobService))
		}
	}

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"service": "Tabashir Job Engine",
			"version": "1.0.0",
			"status":  "running",
		})
	})
}

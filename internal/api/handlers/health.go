package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	"tabashir-engine/internal/background"
	"tabashir-engine/internal/translation"
	"tabashir-engine/pkg/models"
	"tabashir-engine/pkg/utils"
)

var startTime = time.Now()

const version = "1.0.0"

// HealthHandler handles health check requests
func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   version,
		Uptime:    time.Since(startTime),
		Checks: map[string]string{
			"api": "ok",
		},
	})
}

// LivenessHandler handles liveness probe requests
func LivenessHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   version,
		Uptime:    time.Since(startTime),
	})
}

// StatusHandler reports operational detail beyond the health probes,
// including a breakdown of background translation tasks.
func StatusHandler(taskManager background.TaskManager) echo.HandlerFunc {
	return func(c echo.Context) error {
		checks := map[string]string{
			"api": "operational",
		}

		if taskManager != nil && taskManager.IsHealthy() {
			checks["background_tasks"] = "operational"
			if tasks, err := taskManager.ListTasks(c.Request().Context()); err == nil {
				counts := make(map[background.TaskStatus]int)
				for _, task := range tasks {
					counts[task.Status]++
				}
				checks["tasks_accepted"] = strconv.Itoa(counts[background.TaskStatusAccepted])
				checks["tasks_processing"] = strconv.Itoa(counts[background.TaskStatusProcessing])
				checks["tasks_succeeded"] = strconv.Itoa(counts[background.TaskStatusSuccess])
				checks["tasks_failed"] = strconv.Itoa(counts[background.TaskStatusFailure])
			}
		} else {
			checks["background_tasks"] = "stopped"
		}

		return c.JSON(http.StatusOK, models.HealthResponse{
			Status:    "operational",
			Timestamp: time.Now(),
			Version:   version,
			Uptime:    time.Since(startTime),
			Checks:    checks,
		})
	}
}

// ReadinessHandler checks the dependencies a request actually needs:
// database, Redis, the translation provider, and the task manager.
func ReadinessHandler(pool *pgxpool.Pool, redisClient *utils.RedisClient, translationSvc *translation.Service, taskManager background.TaskManager) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		checks := make(map[string]string)
		status := "ready"
		code := http.StatusOK

		if pool == nil {
			checks["database"] = "not configured"
			status, code = "not ready", http.StatusServiceUnavailable
		} else if err := pool.Ping(ctx); err != nil {
			checks["database"] = "unreachable"
			status, code = "not ready", http.StatusServiceUnavailable
		} else {
			checks["database"] = "ok"
		}

		// Redis and the translator degrade gracefully, so they report but
		// never fail readiness.
		if redisClient == nil {
			checks["redis"] = "not configured"
		} else if err := redisClient.Ping(ctx); err != nil {
			checks["redis"] = "unreachable"
		} else {
			checks["redis"] = "ok"
		}

		if translationSvc != nil && translationSvc.IsHealthy() {
			checks["translator"] = translationSvc.ProviderName()
		} else {
			checks["translator"] = "unavailable"
		}

		if taskManager != nil && taskManager.IsHealthy() {
			checks["background_tasks"] = "ok"
		} else {
			checks["background_tasks"] = "stopped"
		}

		return c.JSON(code, models.HealthResponse{
			Status:    status,
			Timestamp: time.Now(),
			Version:   version,
			Uptime:    time.Since(startTime),
			Checks:    checks,
		})
	}
}

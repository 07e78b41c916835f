// Package handlers contains the Echo HTTP handlers.
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"tabashir-engine/internal/jobs"
	"tabashir-engine/internal/logging"
	"tabashir-engine/internal/store"
	"tabashir-engine/pkg/models"
	"tabashir-engine/pkg/utils"
)

var validate = validator.New()

// ListJobsHandler serves the filtered, sorted, paginated posting feed.
func ListJobsHandler(jobService *jobs.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.LogWithRequestID(requestID)

		params := models.ListJobsParams{
			Email:      c.QueryParam("email"),
			Search:     c.QueryParam("search"),
			Location:   c.QueryParam("location"),
			Experience: c.QueryParam("experience"),
			Attendance: c.QueryParam("attendance"),
			Sort:       models.ParseSortKey(c.QueryParam("sort")),
			Locale:     models.ParseLocale(c.QueryParam("lang")),
			Page:       utils.ParsePositiveInt(c.QueryParam("page"), 1),
			Limit:      utils.ParsePositiveInt(c.QueryParam("limit"), models.DefaultPageLimit),
		}

		resp, err := jobService.List(c.Request().Context(), params)
		if err != nil {
			logger.WithField("error", err.Error()).Error("Job listing failed")
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "listing_failed",
				Message:   "Failed to list jobs",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		return c.JSON(http.StatusOK, resp)
	}
}

// GetJobHandler serves a single posting in the requested locale.
func GetJobHandler(jobService *jobs.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.LogWithRequestID(requestID)

		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || id < 1 {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "invalid_job_id",
				Message:   "Job id must be a positive integer",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		locale := models.ParseLocale(c.QueryParam("lang"))

		resp, err := jobService.Get(c.Request().Context(), id, locale)
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:     "job_not_found",
				Message:   "No job exists with the given id",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}
		if err != nil {
			logger.WithFields(map[string]interface{}{
				"job_id": id,
				"error":  err.Error(),
			}).Error("Job retrieval failed")
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "retrieval_failed",
				Message:   "Failed to fetch job",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		return c.JSON(http.StatusOK, resp)
	}
}

// CreateJobHandler accepts a new posting and queues its translation.
func CreateJobHandler(jobService *jobs.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.LogWithRequestID(requestID)

		var req models.CreateJobRequest
		if err := c.Bind(&req); err != nil {
			logger.WithField("error", err.Error()).Error("Failed to bind create request")
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "invalid_request",
				Message:   "Invalid request format",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		if err := validate.Struct(&req); err != nil {
			logger.WithField("error", err.Error()).Error("Create request validation failed")
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "validation_failed",
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		resp, err := jobService.Create(c.Request().Context(), req)
		if err != nil {
			logger.WithField("error", err.Error()).Error("Job creation failed")
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "creation_failed",
				Message:   "Failed to create job",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		logger.WithField("job_id", resp.JobID).Info("Job created")
		return c.JSON(http.StatusCreated, resp)
	}
}

// UpdateJobHandler applies a partial edit to a posting.
func UpdateJobHandler(jobService *jobs.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.LogWithRequestID(requestID)

		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || id < 1 {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "invalid_job_id",
				Message:   "Job id must be a positive integer",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		var req models.UpdateJobRequest
		if err := c.Bind(&req); err != nil {
			logger.WithField("error", err.Error()).Error("Failed to bind update request")
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "invalid_request",
				Message:   "Invalid request format",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		if err := validate.Struct(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "validation_failed",
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		resp, err := jobService.Update(c.Request().Context(), id, req)
		switch {
		case errors.Is(err, jobs.ErrNoFields):
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "no_fields",
				Message:   "Request contains no updatable fields",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		case errors.Is(err, store.ErrNotFound):
			return c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:     "job_not_found",
				Message:   "No job exists with the given id",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		case err != nil:
			logger.WithFields(map[string]interface{}{
				"job_id": id,
				"error":  err.Error(),
			}).Error("Job update failed")
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "update_failed",
				Message:   "Failed to update job",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		return c.JSON(http.StatusOK, resp)
	}
}

// MonthlyCountHandler serves the keyword demand histogram.
func MonthlyCountHandler(jobService *jobs.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.LogWithRequestID(requestID)

		keyword := c.QueryParam("keyword")
		if keyword == "" {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "missing_keyword",
				Message:   "keyword query parameter is required",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		resp, err := jobService.MonthlyCounts(c.Request().Context(), keyword)
		if err != nil {
			logger.WithField("error", err.Error()).Error("Monthly count query failed")
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "count_failed",
				Message:   "Failed to compute monthly counts",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		return c.JSON(http.StatusOK, resp)
	}
}

package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"tabashir-engine/internal/logging"
	"tabashir-engine/internal/matches"
	"tabashir-engine/pkg/models"
	"tabashir-engine/pkg/utils"
)

func missingEmailResponse(c echo.Context, requestID string) error {
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:     "missing_email",
		Message:   "email query parameter is required",
		RequestID: requestID,
		Timestamp: time.Now(),
	})
}

// MatchedJobsHandler serves a candidate's rankings ordered by score.
func MatchedJobsHandler(matchService *matches.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.LogWithRequestID(requestID)

		email := c.QueryParam("email")
		if email == "" {
			return missingEmailResponse(c, requestID)
		}

		params := models.MatchedJobsParams{
			Email: email,
			Page:  utils.ParsePositiveInt(c.QueryParam("page"), 1),
			Limit: utils.ParsePositiveInt(c.QueryParam("limit"), models.DefaultPageLimit),
		}

		resp, err := matchService.MatchedJobs(c.Request().Context(), params)
		if err != nil {
			logger.WithField("error", err.Error()).Error("Matched jobs retrieval failed")
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "matched_jobs_failed",
				Message:   "Failed to fetch matched jobs",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		return c.JSON(http.StatusOK, resp)
	}
}

// AppliedJobsHandler lists the postings a candidate applied to.
func AppliedJobsHandler(matchService *matches.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.LogWithRequestID(requestID)

		email := c.QueryParam("email")
		if email == "" {
			return missingEmailResponse(c, requestID)
		}

		resp, err := matchService.AppliedJobs(c.Request().Context(), email)
		if err != nil {
			logger.WithField("error", err.Error()).Error("Applied jobs retrieval failed")
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "applied_jobs_failed",
				Message:   "Failed to fetch applied jobs",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		return c.JSON(http.StatusOK, resp)
	}
}

// AppliedJobsCountHandler serves the distinct applied-posting count.
func AppliedJobsCountHandler(matchService *matches.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.LogWithRequestID(requestID)

		email := c.QueryParam("email")
		if email == "" {
			return missingEmailResponse(c, requestID)
		}

		resp, err := matchService.AppliedJobsCount(c.Request().Context(), email)
		if err != nil {
			logger.WithField("error", err.Error()).Error("Applied jobs count failed")
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "applied_count_failed",
				Message:   "Failed to count applied jobs",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		return c.JSON(http.StatusOK, resp)
	}
}

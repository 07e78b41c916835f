package middleware

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// TimeoutConfig returns timeout middleware configuration
func TimeoutConfig(timeout time.Duration) echo.MiddlewareFunc {
	return middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: timeout,
	})
}

// SelectiveTimeoutConfig applies the default timeout to most endpoints and
// a longer one to the posting surfaces, whose Arabic reads may wait on a
// synchronous translation call.
func SelectiveTimeoutConfig(defaultTimeout, extendedTimeout time.Duration) echo.MiddlewareFunc {
	standard := middleware.TimeoutWithConfig(middleware.TimeoutConfig{Timeout: defaultTimeout})
	extended := middleware.TimeoutWithConfig(middleware.TimeoutConfig{Timeout: extendedTimeout})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		standardNext := standard(next)
		extendedNext := extended(next)

		return func(c echo.Context) error {
			if strings.HasPrefix(c.Path(), "/api/v1/jobs") {
				return extendedNext(c)
			}
			return standardNext(c)
		}
	}
}

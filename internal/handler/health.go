package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/frontdesk/internal/middleware"
	"github.com/deppfellow/frontdesk/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const (
	// APITitle is the human-readable service name reported by GET /.
	APITitle = "Multi-Sector Front Desk Management API"

	// APIVersion is the public API version.
	APIVersion = "1.0.0"
)

// HealthHandler serves the system endpoints used by load balancers and
// uptime monitors.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// Root returns basic service information.
func (h *HealthHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": APITitle,
		"version": APIVersion,
	})
}

// Endpoints returns the map of available resource endpoints.
func (h *HealthHandler) Endpoints(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"endpoints": map[string]string{
			"providers": "/providers",
			"bookings":  "/bookings",
			"docs":      "/docs",
			"status":    "/status",
		},
	})
}

// CheckHealth probes the database and, when configured, Redis.
//
// It returns 200 when every enabled check passes and 503 when the database
// is unreachable. A failing Redis is reported but keeps the service
// healthy, since rate limiting fails open without it.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	obs := h.server.Config.Observability
	checks := make(map[string]interface{})
	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"version":     APIVersion,
		"checks":      checks,
	}

	isHealthy := true

	if obs.CheckEnabled("database") {
		result, err := h.runCheck(c.Request().Context(), "database", logger, h.server.DB.Ping)
		checks["database"] = result
		if err != nil {
			isHealthy = false
		}
	}

	if h.server.Redis != nil && obs.CheckEnabled("redis") {
		result, _ := h.runCheck(c.Request().Context(), "redis", logger, func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		})
		checks["redis"] = result
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordHealthEvent(map[string]interface{}{
			"check_type":        "overall",
			"operation":         "health_check",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

// runCheck runs one dependency probe under the configured timeout.
func (h *HealthHandler) runCheck(
	ctx context.Context,
	name string,
	logger zerolog.Logger,
	probe func(ctx context.Context) error,
) (map[string]interface{}, error) {
	ctx, cancel := context.WithTimeout(ctx, h.server.Config.Observability.HealthChecks.Timeout)
	defer cancel()

	checkStart := time.Now()
	err := probe(ctx)
	elapsed := time.Since(checkStart)

	if err != nil {
		logger.Error().
			Err(err).
			Str("check", name).
			Dur("response_time", elapsed).
			Msg("dependency health check failed")

		h.recordHealthEvent(map[string]interface{}{
			"check_type":       name,
			"operation":        "health_check",
			"error_type":       name + "_unhealthy",
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})

		return map[string]interface{}{
			"status":        "unhealthy",
			"response_time": elapsed.String(),
			"error":         err.Error(),
		}, err
	}

	return map[string]interface{}{
		"status":        "healthy",
		"response_time": elapsed.String(),
	}, nil
}

func (h *HealthHandler) recordHealthEvent(attrs map[string]interface{}) {
	if h.server.LoggerService == nil || h.server.LoggerService.GetApplication() == nil {
		return
	}
	h.server.LoggerService.GetApplication().RecordCustomEvent("HealthCheckError", attrs)
}

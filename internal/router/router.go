// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"github.com/deppfellow/frontdesk/internal/handler"
	"github.com/deppfellow/frontdesk/internal/middleware"
	"github.com/deppfellow/frontdesk/internal/server"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// NewRouter builds the Echo instance with the global middleware chain, the
// system routes and the API resource groups.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Pre(echoMiddleware.RemoveTrailingSlash())

	// Order matters: the request id must exist before the logger is
	// enhanced, and the New Relic transaction before tracing attributes.
	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)

	// Throttle before a database connection is checked out.
	api := []echo.MiddlewareFunc{
		middlewares.RateLimit.Limit(),
		middlewares.Session.Attach(),
	}

	registerProviderRoutes(router.Group("/providers", api...), h.Provider)
	registerBookingRoutes(router.Group("/bookings", api...), h.Booking)

	return router
}

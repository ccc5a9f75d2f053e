// Package handler is the first layer after the router.
//
// It binds and validates requests through the validation package, builds
// the per-request services over the request's database session and writes
// the response. Errors are returned to the global error handler.
package handler

import (
	"github.com/deppfellow/frontdesk/internal/server"
)

// Handlers groups all HTTP handlers so the router receives one value.
type Handlers struct {
	Health   *HealthHandler
	OpenAPI  *OpenAPIHandler
	Provider *ProviderHandler
	Booking  *BookingHandler
}

// NewHandlers constructs the handler container. Services are not passed
// in: each request builds its own over its database session.
func NewHandlers(s *server.Server) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		OpenAPI:  NewOpenAPIHandler(s),
		Provider: NewProviderHandler(s),
		Booking:  NewBookingHandler(s),
	}
}

// Package service contains the business logic.
//
// It sits between the handler and repository layers. It receives
// validated data from the handler, enforces business rules, and calls
// repository methods to interact with the data. Rule failures are
// returned as *errs.DomainError; store failures pass through untouched.
package service

import (
	"time"

	"github.com/deppfellow/frontdesk/internal/repository"
)

// Services groups the business services built over one set of repositories.
type Services struct {
	Provider *ProviderService
	Booking  *BookingService
}

// NewServices builds the services for a single request.
func NewServices(repos *repository.Repositories) *Services {
	return &Services{
		Provider: NewProviderService(repos),
		Booking:  NewBookingService(repos),
	}
}

func utcNow() time.Time {
	return time.Now().UTC()
}

package service

import (
	"context"
	"time"

	"github.com/deppfellow/frontdesk/internal/errs"
	"github.com/deppfellow/frontdesk/internal/lib/optional"
	"github.com/deppfellow/frontdesk/internal/model"
	"github.com/deppfellow/frontdesk/internal/repository"
	"github.com/google/uuid"
)

const bookingEntity = "Booking"

// CreateBookingInput is the data needed to book an appointment. There is
// no status: new bookings always start pending.
type CreateBookingInput struct {
	ProviderID  uuid.UUID
	ClientName  string
	ClientPhone string
	ClientEmail *string
	ServiceType *string
	ScheduledAt time.Time
	Notes       *string
}

type BookingService struct {
	repos *repository.Repositories
	now   func() time.Time
}

func NewBookingService(repos *repository.Repositories) *BookingService {
	return &BookingService{repos: repos, now: utcNow}
}

// CreateBooking checks, in order, that the provider exists, that it is
// active and that the slot is strictly in the future, then stores the
// booking as pending. The checks and the insert share one transaction
// holding a share lock on the provider row.
func (s *BookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*model.Booking, error) {
	var booking *model.Booking

	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		provider, err := tx.Provider.GetByIDForShare(ctx, in.ProviderID)
		if err != nil {
			return err
		}
		if provider == nil {
			return errs.NewRuleViolation("PROVIDER_NOT_FOUND", "Provider with ID %s not found", in.ProviderID)
		}
		if !provider.IsActive {
			return errs.NewRuleViolation("PROVIDER_INACTIVE", "Provider is not active and cannot accept bookings")
		}
		if !in.ScheduledAt.After(s.now()) {
			return errs.NewRuleViolation("BOOKING_NOT_IN_FUTURE", "Scheduled time must be in the future")
		}

		booking = &model.Booking{
			ProviderID:  in.ProviderID,
			ClientName:  in.ClientName,
			ClientPhone: in.ClientPhone,
			ClientEmail: in.ClientEmail,
			ServiceType: in.ServiceType,
			ScheduledAt: in.ScheduledAt.UTC(),
			Status:      model.BookingStatusPending,
			Notes:       in.Notes,
		}
		return tx.Booking.Create(ctx, booking)
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *BookingService) GetBooking(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	booking, err := s.repos.Booking.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, errs.NewNotFound(bookingEntity, id)
	}
	return booking, nil
}

func (s *BookingService) ListBookings(ctx context.Context, filter repository.BookingFilter) ([]model.Booking, error) {
	return s.repos.Booking.List(ctx, filter)
}

// UpdateBooking applies a partial update. Any status may move to any other.
func (s *BookingService) UpdateBooking(ctx context.Context, id uuid.UUID, patch repository.BookingPatch) (*model.Booking, error) {
	booking, err := s.repos.Booking.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, errs.NewNotFound(bookingEntity, id)
	}
	return booking, nil
}

// CancelBooking sets the status to cancelled whatever it was before.
func (s *BookingService) CancelBooking(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	return s.UpdateBooking(ctx, id, repository.BookingPatch{
		Status: optional.Of(model.BookingStatusCancelled),
	})
}

func (s *BookingService) DeleteBooking(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repos.Booking.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return errs.NewNotFound(bookingEntity, id)
	}
	return nil
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/deppfellow/frontdesk/internal/errs"
	"github.com/deppfellow/frontdesk/internal/lib/optional"
	"github.com/deppfellow/frontdesk/internal/model"
	"github.com/deppfellow/frontdesk/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)

func newFrozenServices(t *testing.T) *Services {
	t.Helper()
	services := newTestServices(t)
	services.Booking.now = func() time.Time { return fixedNow }
	return services
}

func registerClinic(t *testing.T, services *Services) *model.Provider {
	t.Helper()
	provider, err := services.Provider.RegisterProvider(context.Background(), RegisterProviderInput{
		Name:   "City Clinic",
		Sector: "medical",
	})
	require.NoError(t, err)
	return provider
}

func bookingInput(providerID uuid.UUID, at time.Time) CreateBookingInput {
	return CreateBookingInput{
		ProviderID:  providerID,
		ClientName:  "John Doe",
		ClientPhone: "+1234567890",
		ScheduledAt: at,
	}
}

func requireRuleViolation(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)

	var domainErr *errs.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, errs.KindRuleViolation, domainErr.Kind)
	assert.Equal(t, code, domainErr.Code)
}

func countBookings(t *testing.T, services *Services) int {
	t.Helper()
	bookings, err := services.Booking.ListBookings(context.Background(), repository.BookingFilter{})
	require.NoError(t, err)
	return len(bookings)
}

func TestBookingService_CreateBookingStartsPending(t *testing.T) {
	services := newFrozenServices(t)
	provider := registerClinic(t, services)

	in := bookingInput(provider.ID, fixedNow.Add(7*24*time.Hour))
	in.ServiceType = optional.Of("consultation").Ptr()

	booking, err := services.Booking.CreateBooking(context.Background(), in)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, booking.ID)
	assert.Equal(t, model.BookingStatusPending, booking.Status)
	assert.Equal(t, provider.ID, booking.ProviderID)
	assert.Equal(t, "consultation", *booking.ServiceType)

	stored, err := services.Booking.GetBooking(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusPending, stored.Status)
	assert.True(t, stored.ScheduledAt.Equal(in.ScheduledAt))
}

func TestBookingService_CreateBookingRejectsPastAndNow(t *testing.T) {
	services := newFrozenServices(t)
	provider := registerClinic(t, services)
	ctx := context.Background()

	for _, at := range []time.Time{fixedNow.Add(-time.Hour), fixedNow, fixedNow.Add(-365 * 24 * time.Hour)} {
		_, err := services.Booking.CreateBooking(ctx, bookingInput(provider.ID, at))
		requireRuleViolation(t, err, "BOOKING_NOT_IN_FUTURE")
		assert.Equal(t, "Scheduled time must be in the future", err.Error())
	}

	assert.Zero(t, countBookings(t, services))

	_, err := services.Booking.CreateBooking(ctx, bookingInput(provider.ID, fixedNow.Add(time.Second)))
	require.NoError(t, err)
}

func TestBookingService_CreateBookingUnknownProvider(t *testing.T) {
	services := newFrozenServices(t)
	missing := uuid.New()

	_, err := services.Booking.CreateBooking(context.Background(), bookingInput(missing, fixedNow.Add(time.Hour)))
	requireRuleViolation(t, err, "PROVIDER_NOT_FOUND")
	assert.Equal(t, "Provider with ID "+missing.String()+" not found", err.Error())
	assert.Zero(t, countBookings(t, services))
}

func TestBookingService_CreateBookingInactiveProvider(t *testing.T) {
	services := newFrozenServices(t)
	provider := registerClinic(t, services)
	ctx := context.Background()

	_, err := services.Provider.UpdateProvider(ctx, provider.ID, repository.ProviderPatch{IsActive: optional.Of(false)})
	require.NoError(t, err)

	_, err = services.Booking.CreateBooking(ctx, bookingInput(provider.ID, fixedNow.Add(time.Hour)))
	requireRuleViolation(t, err, "PROVIDER_INACTIVE")
	assert.Equal(t, "Provider is not active and cannot accept bookings", err.Error())
	assert.Zero(t, countBookings(t, services))
}

func TestBookingService_CreateBookingRuleOrder(t *testing.T) {
	services := newFrozenServices(t)
	provider := registerClinic(t, services)
	ctx := context.Background()

	_, err := services.Provider.UpdateProvider(ctx, provider.ID, repository.ProviderPatch{IsActive: optional.Of(false)})
	require.NoError(t, err)

	// Inactive provider and a past time: the provider check wins.
	_, err = services.Booking.CreateBooking(ctx, bookingInput(provider.ID, fixedNow.Add(-time.Hour)))
	requireRuleViolation(t, err, "PROVIDER_INACTIVE")

	// Unknown provider and a past time: existence wins.
	_, err = services.Booking.CreateBooking(ctx, bookingInput(uuid.New(), fixedNow.Add(-time.Hour)))
	requireRuleViolation(t, err, "PROVIDER_NOT_FOUND")
}

func TestBookingService_UpdateKeepsAbsentFieldsAndBumpsUpdatedAt(t *testing.T) {
	services := newFrozenServices(t)
	provider := registerClinic(t, services)
	ctx := context.Background()

	in := bookingInput(provider.ID, fixedNow.Add(48*time.Hour))
	in.Notes = optional.Of("allergic to latex").Ptr()
	booking, err := services.Booking.CreateBooking(ctx, in)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	updated, err := services.Booking.UpdateBooking(ctx, booking.ID, repository.BookingPatch{
		Status: optional.Of(model.BookingStatusConfirmed),
	})
	require.NoError(t, err)

	assert.Equal(t, model.BookingStatusConfirmed, updated.Status)
	assert.Equal(t, booking.ClientName, updated.ClientName)
	assert.Equal(t, booking.ClientPhone, updated.ClientPhone)
	assert.Equal(t, "allergic to latex", *updated.Notes)
	assert.True(t, updated.ScheduledAt.Equal(booking.ScheduledAt))
	assert.True(t, updated.UpdatedAt.After(booking.UpdatedAt))
}

func TestBookingService_AnyStatusTransitionIsAllowed(t *testing.T) {
	services := newFrozenServices(t)
	provider := registerClinic(t, services)
	ctx := context.Background()

	booking, err := services.Booking.CreateBooking(ctx, bookingInput(provider.ID, fixedNow.Add(time.Hour)))
	require.NoError(t, err)

	sequence := []model.BookingStatus{
		model.BookingStatusCompleted,
		model.BookingStatusPending,
		model.BookingStatusCancelled,
		model.BookingStatusConfirmed,
	}
	for _, status := range sequence {
		updated, err := services.Booking.UpdateBooking(ctx, booking.ID, repository.BookingPatch{Status: optional.Of(status)})
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}
}

func TestBookingService_CancelIsIdempotentAndUnguarded(t *testing.T) {
	services := newFrozenServices(t)
	provider := registerClinic(t, services)
	ctx := context.Background()

	booking, err := services.Booking.CreateBooking(ctx, bookingInput(provider.ID, fixedNow.Add(time.Hour)))
	require.NoError(t, err)

	_, err = services.Booking.UpdateBooking(ctx, booking.ID, repository.BookingPatch{
		Status: optional.Of(model.BookingStatusCompleted),
	})
	require.NoError(t, err)

	for range 2 {
		cancelled, err := services.Booking.CancelBooking(ctx, booking.ID)
		require.NoError(t, err)
		assert.Equal(t, model.BookingStatusCancelled, cancelled.Status)
	}
}

func TestBookingService_NotFound(t *testing.T) {
	services := newFrozenServices(t)
	ctx := context.Background()
	id := uuid.New()

	_, err := services.Booking.GetBooking(ctx, id)
	assert.True(t, errs.IsKind(err, errs.KindNotFound))
	assert.Equal(t, "Booking with ID "+id.String()+" not found", err.Error())

	_, err = services.Booking.UpdateBooking(ctx, id, repository.BookingPatch{Notes: optional.Of("x")})
	assert.True(t, errs.IsKind(err, errs.KindNotFound))

	_, err = services.Booking.CancelBooking(ctx, id)
	assert.True(t, errs.IsKind(err, errs.KindNotFound))

	err = services.Booking.DeleteBooking(ctx, id)
	assert.True(t, errs.IsKind(err, errs.KindNotFound))
}

func TestBookingService_DeleteBooking(t *testing.T) {
	services := newFrozenServices(t)
	provider := registerClinic(t, services)
	ctx := context.Background()

	booking, err := services.Booking.CreateBooking(ctx, bookingInput(provider.ID, fixedNow.Add(time.Hour)))
	require.NoError(t, err)

	require.NoError(t, services.Booking.DeleteBooking(ctx, booking.ID))

	err = services.Booking.DeleteBooking(ctx, booking.ID)
	assert.True(t, errs.IsKind(err, errs.KindNotFound))
}

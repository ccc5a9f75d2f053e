package handler

import (
	"time"

	"github.com/deppfellow/frontdesk/internal/lib/optional"
	"github.com/deppfellow/frontdesk/internal/model"
	"github.com/deppfellow/frontdesk/internal/repository"
	"github.com/deppfellow/frontdesk/internal/server"
	"github.com/deppfellow/frontdesk/internal/service"
	"github.com/deppfellow/frontdesk/internal/validation"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// DefaultPageLimit is the page size when a list request sets no limit.
const DefaultPageLimit = 100

const bookingStatusTag = "oneof=pending confirmed completed cancelled"

// BookingIDRequest addresses a single booking by path id.
type BookingIDRequest struct {
	ID string `param:"id" json:"-" validate:"required,uuid"`
}

func (r *BookingIDRequest) Validate() error {
	return validation.Struct(r)
}

// CreateBookingRequest is the booking payload. It has no status field;
// bookings always start pending.
type CreateBookingRequest struct {
	ProviderID  string  `json:"provider_id" validate:"required,uuid"`
	ClientName  string  `json:"client_name" validate:"required,notblank,max=255"`
	ClientPhone string  `json:"client_phone" validate:"required,notblank,max=50"`
	ClientEmail *string `json:"client_email" validate:"omitempty,email,max=255"`
	ServiceType *string `json:"service_type" validate:"omitempty,max=100"`
	ScheduledAt string  `json:"scheduled_at" validate:"required,iso8601"`
	Notes       *string `json:"notes"`

	scheduledAt time.Time
}

func (r *CreateBookingRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}

	t, err := validation.ParseTime(r.ScheduledAt)
	if err != nil {
		return err
	}
	r.scheduledAt = t
	return nil
}

// ListBookingsRequest holds the list query parameters. from_date and
// to_date bound scheduled_at inclusively.
type ListBookingsRequest struct {
	Skip       int    `query:"skip" validate:"min=0"`
	Limit      int    `query:"limit" validate:"min=1,max=100"`
	ProviderID string `query:"provider_id" validate:"omitempty,uuid"`
	Status     string `query:"status" validate:"omitempty,oneof=pending confirmed completed cancelled"`
	FromDate   string `query:"from_date" validate:"omitempty,iso8601"`
	ToDate     string `query:"to_date" validate:"omitempty,iso8601"`

	from *time.Time
	to   *time.Time
}

func (r *ListBookingsRequest) SetDefaults() {
	r.Limit = DefaultPageLimit
}

func (r *ListBookingsRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}

	var err error
	if r.from, err = validation.ParseOptionalTime(r.FromDate); err != nil {
		return err
	}
	if r.to, err = validation.ParseOptionalTime(r.ToDate); err != nil {
		return err
	}
	return nil
}

func (r *ListBookingsRequest) filter() repository.BookingFilter {
	f := repository.BookingFilter{
		From:  r.from,
		To:    r.to,
		Skip:  r.Skip,
		Limit: r.Limit,
	}
	if r.ProviderID != "" {
		id := uuid.MustParse(r.ProviderID)
		f.ProviderID = &id
	}
	if r.Status != "" {
		status := model.BookingStatus(r.Status)
		f.Status = &status
	}
	return f
}

// UpdateBookingRequest is a partial update. Omitted fields are left
// untouched; optional fields may be cleared with null.
type UpdateBookingRequest struct {
	ID          string                 `param:"id" json:"-"`
	ClientName  optional.Field[string] `json:"client_name"`
	ClientPhone optional.Field[string] `json:"client_phone"`
	ClientEmail optional.Field[string] `json:"client_email"`
	ServiceType optional.Field[string] `json:"service_type"`
	ScheduledAt optional.Field[string] `json:"scheduled_at"`
	Status      optional.Field[string] `json:"status"`
	Notes       optional.Field[string] `json:"notes"`

	scheduledAt time.Time
}

func (r *UpdateBookingRequest) Validate() error {
	var check validation.Checker
	check.Var("id", r.ID, "required,uuid")
	validation.CheckOptional(&check, "client_name", r.ClientName, "notblank,max=255", false)
	validation.CheckOptional(&check, "client_phone", r.ClientPhone, "notblank,max=50", false)
	validation.CheckOptional(&check, "client_email", r.ClientEmail, "email,max=255", true)
	validation.CheckOptional(&check, "service_type", r.ServiceType, "max=100", true)
	validation.CheckOptional(&check, "scheduled_at", r.ScheduledAt, "iso8601", false)
	validation.CheckOptional(&check, "status", r.Status, bookingStatusTag, false)
	validation.CheckOptional(&check, "notes", r.Notes, "", true)
	if err := check.Err(); err != nil {
		return err
	}

	if r.ScheduledAt.Present() {
		t, err := validation.ParseTime(r.ScheduledAt.Value)
		if err != nil {
			return err
		}
		r.scheduledAt = t
	}
	return nil
}

func (r *UpdateBookingRequest) patch() repository.BookingPatch {
	p := repository.BookingPatch{
		ClientName:  r.ClientName,
		ClientPhone: r.ClientPhone,
		ClientEmail: r.ClientEmail,
		ServiceType: r.ServiceType,
		Notes:       r.Notes,
	}
	if r.ScheduledAt.Present() {
		p.ScheduledAt = optional.Of(r.scheduledAt)
	}
	if r.Status.Present() {
		p.Status = optional.Of(model.BookingStatus(r.Status.Value))
	}
	return p
}

type BookingHandler struct {
	Handler
}

func NewBookingHandler(s *server.Server) *BookingHandler {
	return &BookingHandler{Handler: NewHandler(s)}
}

func (h *BookingHandler) CreateBooking(c echo.Context, req *CreateBookingRequest) (*model.Booking, error) {
	services, err := h.services(c)
	if err != nil {
		return nil, err
	}

	return services.Booking.CreateBooking(c.Request().Context(), service.CreateBookingInput{
		ProviderID:  uuid.MustParse(req.ProviderID),
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		ServiceType: req.ServiceType,
		ScheduledAt: req.scheduledAt,
		Notes:       req.Notes,
	})
}

func (h *BookingHandler) ListBookings(c echo.Context, req *ListBookingsRequest) ([]model.Booking, error) {
	services, err := h.services(c)
	if err != nil {
		return nil, err
	}

	return services.Booking.ListBookings(c.Request().Context(), req.filter())
}

func (h *BookingHandler) GetBooking(c echo.Context, req *BookingIDRequest) (*model.Booking, error) {
	services, err := h.services(c)
	if err != nil {
		return nil, err
	}

	return services.Booking.GetBooking(c.Request().Context(), uuid.MustParse(req.ID))
}

func (h *BookingHandler) UpdateBooking(c echo.Context, req *UpdateBookingRequest) (*model.Booking, error) {
	services, err := h.services(c)
	if err != nil {
		return nil, err
	}

	return services.Booking.UpdateBooking(c.Request().Context(), uuid.MustParse(req.ID), req.patch())
}

func (h *BookingHandler) CancelBooking(c echo.Context, req *BookingIDRequest) (*model.Booking, error) {
	services, err := h.services(c)
	if err != nil {
		return nil, err
	}

	return services.Booking.CancelBooking(c.Request().Context(), uuid.MustParse(req.ID))
}

func (h *BookingHandler) DeleteBooking(c echo.Context, req *BookingIDRequest) error {
	services, err := h.services(c)
	if err != nil {
		return err
	}

	return services.Booking.DeleteBooking(c.Request().Context(), uuid.MustParse(req.ID))
}

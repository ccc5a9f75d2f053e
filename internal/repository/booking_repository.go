package repository

import (
	"context"
	"time"

	"github.com/deppfellow/frontdesk/internal/lib/optional"
	"github.com/deppfellow/frontdesk/internal/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// BookingFilter narrows BookingRepository.List. Filters are ANDed; nil
// disables one. From and To are both inclusive.
type BookingFilter struct {
	ProviderID *uuid.UUID
	Status     *model.BookingStatus
	From       *time.Time
	To         *time.Time
	Skip       int
	Limit      int
}

// BookingPatch carries the fields of a partial update. Only set fields are written.
type BookingPatch struct {
	ClientName  optional.Field[string]
	ClientPhone optional.Field[string]
	ClientEmail optional.Field[string]
	ServiceType optional.Field[string]
	ScheduledAt optional.Field[time.Time]
	Status      optional.Field[model.BookingStatus]
	Notes       optional.Field[string]
}

func (p BookingPatch) columns() map[string]any {
	columns := map[string]any{}
	setColumn(columns, "client_name", p.ClientName)
	setColumn(columns, "client_phone", p.ClientPhone)
	setColumn(columns, "client_email", p.ClientEmail)
	setColumn(columns, "service_type", p.ServiceType)
	if p.ScheduledAt.Present() {
		columns["scheduled_at"] = p.ScheduledAt.Value.UTC()
	}
	if p.Status.Present() {
		columns["status"] = string(p.Status.Value)
	}
	setColumn(columns, "notes", p.Notes)
	return columns
}

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	if err := r.db.WithContext(ctx).Omit("Provider").Create(booking).Error; err != nil {
		return errors.Wrap(err, "create booking")
	}
	return nil
}

// GetByID returns (nil, nil) when no booking has the id.
func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	var booking model.Booking
	err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "get booking")
	}
	return &booking, nil
}

// List returns bookings ordered by scheduled time, earliest first.
func (r *BookingRepository) List(ctx context.Context, filter BookingFilter) ([]model.Booking, error) {
	q := r.db.WithContext(ctx).Model(&model.Booking{})

	if filter.ProviderID != nil {
		q = q.Where("provider_id = ?", *filter.ProviderID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", string(*filter.Status))
	}
	if filter.From != nil {
		q = q.Where("scheduled_at >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		q = q.Where("scheduled_at <= ?", filter.To.UTC())
	}

	q = paginate(q, filter.Skip, filter.Limit)

	bookings := []model.Booking{}
	if err := q.Order("scheduled_at ASC").Order("created_at ASC").Find(&bookings).Error; err != nil {
		return nil, errors.Wrap(err, "list bookings")
	}
	return bookings, nil
}

// Update writes the set fields of patch and returns the fresh record, or
// (nil, nil) when the booking does not exist. An empty patch writes
// nothing and returns the current record.
func (r *BookingRepository) Update(ctx context.Context, id uuid.UUID, patch BookingPatch) (*model.Booking, error) {
	var booking model.Booking

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booking, "id = ?", id).Error; err != nil {
			return err
		}

		columns := patch.columns()
		if len(columns) == 0 {
			return nil
		}

		if err := tx.Model(&booking).Updates(columns).Error; err != nil {
			return err
		}
		return tx.First(&booking, "id = ?", id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "update booking")
	}
	return &booking, nil
}

// Delete removes the booking and reports whether it existed.
func (r *BookingRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.Booking{}, "id = ?", id)
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "delete booking")
	}
	return res.RowsAffected > 0, nil
}

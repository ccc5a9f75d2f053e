package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// BookingStatuses lists every status in lifecycle order.
var BookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusCompleted,
	BookingStatusCancelled,
}

func (s BookingStatus) Valid() bool {
	for _, status := range BookingStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Booking is a client appointment with a provider.
type Booking struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	ProviderID  uuid.UUID     `gorm:"type:uuid;not null;index" json:"provider_id"`
	ClientName  string        `gorm:"type:varchar(255);not null" json:"client_name"`
	ClientPhone string        `gorm:"type:varchar(50);not null" json:"client_phone"`
	ClientEmail *string       `gorm:"type:varchar(255)" json:"client_email"`
	ServiceType *string       `gorm:"type:varchar(100)" json:"service_type"`
	ScheduledAt time.Time     `gorm:"not null;index" json:"scheduled_at"`
	Status      BookingStatus `gorm:"type:varchar(32);not null;index" json:"status"`
	Notes       *string       `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`

	// No cascade: a provider with bookings cannot be deleted.
	Provider *Provider `gorm:"foreignKey:ProviderID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT" json:"-"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	b.ScheduledAt = b.ScheduledAt.UTC()
	return nil
}

func (b *Booking) AfterFind(tx *gorm.DB) error {
	b.ScheduledAt = b.ScheduledAt.UTC()
	b.CreatedAt = b.CreatedAt.UTC()
	b.UpdatedAt = b.UpdatedAt.UTC()
	return nil
}

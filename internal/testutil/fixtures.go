package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/deppfellow/frontdesk/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewTestProvider returns an active provider with default values.
func NewTestProvider() *model.Provider {
	return &model.Provider{
		Name:     "City Clinic",
		Sector:   "medical",
		IsActive: true,
	}
}

// NewTestBooking returns a pending booking one week ahead for providerID.
func NewTestBooking(providerID uuid.UUID) *model.Booking {
	return &model.Booking{
		ProviderID:  providerID,
		ClientName:  "John Doe",
		ClientPhone: "+1234567890",
		ScheduledAt: time.Now().UTC().Add(7 * 24 * time.Hour).Truncate(time.Second),
		Status:      model.BookingStatusPending,
	}
}

// InsertProvider persists p directly, bypassing services.
func InsertProvider(t *testing.T, db *gorm.DB, p *model.Provider) *model.Provider {
	t.Helper()

	if err := db.WithContext(context.Background()).Create(p).Error; err != nil {
		t.Fatalf("insert provider: %v", err)
	}
	return p
}

// InsertBooking persists b directly, bypassing services.
func InsertBooking(t *testing.T, db *gorm.DB, b *model.Booking) *model.Booking {
	t.Helper()

	if err := db.WithContext(context.Background()).Omit("Provider").Create(b).Error; err != nil {
		t.Fatalf("insert booking: %v", err)
	}
	return b
}

// StrPtr returns a pointer to s.
func StrPtr(s string) *string {
	return &s
}

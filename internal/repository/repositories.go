// Package repository handles all interactions with the database.
//
// Repositories translate CRUD intents into GORM queries and hold no
// business rules. They are cheap to build and are constructed per request
// on top of the request's database session.
package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ErrStillReferenced is returned when a delete is refused because other
// records still point at the row.
var ErrStillReferenced = errors.New("record is still referenced")

// Repositories groups every repository bound to one GORM handle.
type Repositories struct {
	Provider *ProviderRepository
	Booking  *BookingRepository

	db *gorm.DB
}

// NewRepositories binds all repositories to db (a request session or a
// transaction).
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Provider: NewProviderRepository(db),
		Booking:  NewBookingRepository(db),
		db:       db,
	}
}

// Transaction runs fn with repositories bound to a single transaction.
// It commits when fn returns nil and rolls back otherwise.
func (r *Repositories) Transaction(ctx context.Context, fn func(repos *Repositories) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}

// isForeignKeyViolation reports whether err is the store rejecting a write
// that would break a foreign key. Drivers word this differently, so the
// dialect translates the error first.
func isForeignKeyViolation(db *gorm.DB, err error) bool {
	if translator, ok := db.Dialector.(gorm.ErrorTranslator); ok {
		err = translator.Translate(err)
	}
	return errors.Is(err, gorm.ErrForeignKeyViolated)
}

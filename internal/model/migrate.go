package model

import "gorm.io/gorm"

// AutoMigrate builds the schema from the models. PostgreSQL deployments use
// the SQL migrations in internal/database instead; this serves SQLite.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Provider{},
		&Booking{},
	)
}

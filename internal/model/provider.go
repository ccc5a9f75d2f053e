// Package model holds the persisted records and their GORM mappings.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Provider is a business that accepts bookings (clinic, garage, salon...).
type Provider struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string    `gorm:"type:varchar(255);not null;index" json:"name"`
	Sector   string    `gorm:"type:varchar(100);not null;index" json:"sector"`
	Phone    *string   `gorm:"type:varchar(50)" json:"phone"`
	Email    *string   `gorm:"type:varchar(255)" json:"email"`
	Address  *string   `gorm:"type:text" json:"address"`
	IsActive bool      `gorm:"not null" json:"is_active"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (p *Provider) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p *Provider) AfterFind(tx *gorm.DB) error {
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return nil
}

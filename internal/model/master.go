package model

import (
	"time"

	"github.com/google/uuid"
)

// Vehicle and Driver are master data owned by the fleet screens. This
// core only references their ids from allocations and never mutates
// them.

type Vehicle struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Plate     string    `gorm:"uniqueIndex;not null"`
	Capacity  int       `gorm:"not null;default:0"`
	OwnerType string    `gorm:"type:varchar(20);not null;default:'OWN'"` // OWN | SUBCONTRACTOR
	Active    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Driver struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName      string    `gorm:"not null;index"`
	LicenseNumber *string   `gorm:"type:varchar(30)"`
	Phone         *string   `gorm:"type:varchar(20)"`
	Active        bool      `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

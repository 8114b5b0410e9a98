package model

import (
	"time"

	"github.com/google/uuid"
)

// Allocation is the fact that a vehicle/driver served (or was booked to
// serve) a route time block on one date. LineNumber disambiguates
// multiple simultaneous assignments to the same slot. Quantity > 0
// marks the slot as realized; a zero-quantity row is a placeholder.
// Rows under a locked period are immutable until an explicit unlock.
type Allocation struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ContractID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_allocation_key;index"`
	RouteID         uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_allocation_key"`
	TripDate        time.Time  `gorm:"type:date;not null;uniqueIndex:idx_allocation_key;index"`
	ServiceCategory string     `gorm:"type:varchar(30);not null;uniqueIndex:idx_allocation_key"`
	TimeBlock       string     `gorm:"type:varchar(30);not null;uniqueIndex:idx_allocation_key"`
	LineNumber      int        `gorm:"not null;default:1;uniqueIndex:idx_allocation_key"`
	VehicleID       *uuid.UUID `gorm:"type:uuid;index"`
	DriverID        *uuid.UUID `gorm:"type:uuid;index"`
	Quantity        int        `gorm:"not null;default:0"`
	TimeText        string     `gorm:"type:varchar(15)"` // free-text override, "HH:MM" or "HH:MM-HH:MM"
	Note            *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Route RouteDefinition `gorm:"foreignKey:RouteID"`
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// PeriodLock freezes one (contract, month, service category) scope once
// attendance is verified. While Locked, every mutation entry point for
// plans and allocations in scope must refuse writes. Lock and unlock
// can alternate indefinitely; each transition overwrites the previous
// audit fields.
type PeriodLock struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ContractID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_period_lock_key"`
	Month           string    `gorm:"type:varchar(7);not null;uniqueIndex:idx_period_lock_key"`
	ServiceCategory string    `gorm:"type:varchar(30);not null;uniqueIndex:idx_period_lock_key"`
	Locked          bool      `gorm:"not null;default:false"`
	LockedAt        *time.Time
	LockedBy        *string `gorm:"type:varchar(100)"`
	UnlockedAt      *time.Time
	UnlockedBy      *string `gorm:"type:varchar(100)"`
	UnlockReason    *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

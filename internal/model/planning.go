package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Month keys everywhere are "YYYY-MM" strings (e.g. "2024-03").

// PlannedSlot is a recurring commitment: route X serves time block Y on
// every applicable day of the month. One allocation per calendar day is
// expected before the period can be locked.
type PlannedSlot struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ContractID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_planned_slot_key"`
	RouteID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_planned_slot_key"`
	Month           string    `gorm:"type:varchar(7);not null;uniqueIndex:idx_planned_slot_key"`
	ServiceCategory string    `gorm:"type:varchar(30);not null;uniqueIndex:idx_planned_slot_key"`
	TimeBlock       string    `gorm:"type:varchar(30);not null;uniqueIndex:idx_planned_slot_key"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Route RouteDefinition `gorm:"foreignKey:RouteID"`
}

// PlannedTariff is the month-scoped planning price for one (route,
// time block). The accrual engine prices line items from this table,
// not from the effective-dated tariff history.
type PlannedTariff struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ContractID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_planned_tariff_key"`
	RouteID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_planned_tariff_key"`
	Month           string          `gorm:"type:varchar(7);not null;uniqueIndex:idx_planned_tariff_key"`
	ServiceCategory string          `gorm:"type:varchar(30);not null;uniqueIndex:idx_planned_tariff_key"`
	TimeBlock       string          `gorm:"type:varchar(30);not null;uniqueIndex:idx_planned_tariff_key"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CustomTimeBlock anchors a contract's custom block codes ("C1", "C2")
// to concrete clock times for one month. At most two per scope.
type CustomTimeBlock struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ContractID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_custom_block_key"`
	Month           string    `gorm:"type:varchar(7);not null;uniqueIndex:idx_custom_block_key"`
	ServiceCategory string    `gorm:"type:varchar(30);not null;uniqueIndex:idx_custom_block_key"`
	Code            string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_custom_block_key"` // "C1" | "C2"
	TimeText        string    `gorm:"type:varchar(15);not null"`                                  // "HH:MM" or "HH:MM-HH:MM"
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

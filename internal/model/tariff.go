package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tariff is one row of the effective-dated contract price history.
// The history is append-only; resolution always picks the row with the
// greatest EffectiveFrom not after the trip date.
type Tariff struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ContractID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_tariff_key"`
	RouteID            uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_tariff_key"`
	ServiceCategory    string          `gorm:"type:varchar(30);not null;uniqueIndex:idx_tariff_key"`
	PricingCategory    PricingCategory `gorm:"type:varchar(20);not null;uniqueIndex:idx_tariff_key"`
	EffectiveFrom      time.Time       `gorm:"type:date;not null;uniqueIndex:idx_tariff_key"`
	Price              decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SubcontractorPrice decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// PricingModelChange records when a contract switched between
// shift-based and non-shift settlement. Same latest-at-or-before
// lookup rule as the tariff history.
type PricingModelChange struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ContractID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_pricing_model_key"`
	EffectiveFrom time.Time `gorm:"type:date;not null;uniqueIndex:idx_pricing_model_key"`
	Model         string    `gorm:"type:varchar(20);not null"` // SHIFT | NON_SHIFT
	CreatedAt     time.Time
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Customer is master data maintained by the surrounding CRUD screens.
// This core only reads it — DefaultPricingModel is the contract-level
// fallback when a contract has no dated pricing-model history.
type Customer struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name                string    `gorm:"not null;index"`
	TaxNumber           *string   `gorm:"type:varchar(20)"`
	DefaultPricingModel *string   `gorm:"type:varchar(20)"` // SHIFT | NON_SHIFT
	Active              bool      `gorm:"not null;default:true"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Contract is the customer agreement every planning and settlement row
// hangs off. ServiceCategories lists the transport kinds it covers
// (e.g. STUDENT, STAFF).
type Contract struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerID        uuid.UUID      `gorm:"type:uuid;not null;index"`
	Number            string         `gorm:"uniqueIndex;not null"`
	StartDate         time.Time      `gorm:"type:date;not null"`
	EndDate           time.Time      `gorm:"type:date;not null"`
	ServiceCategories pq.StringArray `gorm:"type:text[];not null"`
	// LegacyPriceMatrix carries the pre-tariff-table price records some
	// old contracts still rely on: a JSON array of
	// {route, movement, price, subcontractor_price} objects. Consulted
	// only when the structured tariff history has no matching row.
	LegacyPriceMatrix datatypes.JSON `gorm:"type:jsonb"`
	Active            bool           `gorm:"not null;default:true"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Customer Customer `gorm:"foreignKey:CustomerID"`
}

// LegacyPriceEntry is one record of Contract.LegacyPriceMatrix.
type LegacyPriceEntry struct {
	Route              string          `json:"route"`
	Movement           string          `json:"movement"`
	Price              decimal.Decimal `json:"price"`
	SubcontractorPrice decimal.Decimal `json:"subcontractor_price"`
}

// RouteDefinition is a named service route under one contract and
// service category. Administrative edits aside, routes are immutable
// once allocations reference them.
type RouteDefinition struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ContractID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_route_contract_category"`
	ServiceCategory string          `gorm:"type:varchar(30);not null;index:idx_route_contract_category"`
	Name            string          `gorm:"not null"`
	MovementType    PricingCategory `gorm:"type:varchar(20);not null;default:'SINGLE_LEG'"`
	DistanceKM      decimal.Decimal `gorm:"type:decimal(8,2);not null;default:0"`
	Active          bool            `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Contract Contract `gorm:"foreignKey:ContractID"`
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Accrual (hakediş) is the month-end settlement document for one
// contract/period/service-category scope, optionally narrowed to a
// single route. RouteFilterID uses uuid.Nil as the "whole contract"
// sentinel so the uniqueness key stays NOT NULL.
// Status: DRAFT | APPROVED | INVOICED (strictly forward), or a custom
// string stored verbatim.
type Accrual struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ContractID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_accrual_key"`
	Period          string          `gorm:"type:varchar(7);not null;uniqueIndex:idx_accrual_key"`
	ServiceCategory string          `gorm:"type:varchar(30);not null;uniqueIndex:idx_accrual_key"`
	RouteFilterID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_accrual_key"`
	Status          string          `gorm:"type:varchar(30);not null;default:'DRAFT'"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	DeductionAmount decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	NetAmount       decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	ApprovedAt      *time.Time
	InvoicedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time

	LineItems  []AccrualLineItem    `gorm:"foreignKey:AccrualID"`
	Deductions []AccrualDeduction   `gorm:"foreignKey:AccrualID"`
	Documents  []SupportingDocument `gorm:"foreignKey:AccrualID"`
}

// AccrualLineItem is one priced trip inside an accrual. The whole set
// is replaced on every recalculation — items are never patched
// individually.
type AccrualLineItem struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AccrualID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	TripDate           time.Time       `gorm:"type:date;not null"`
	RouteID            uuid.UUID       `gorm:"type:uuid;not null"`
	VehicleID          *uuid.UUID      `gorm:"type:uuid"`
	DriverID           *uuid.UUID      `gorm:"type:uuid"`
	WorkType           string          `gorm:"type:varchar(30)"`
	Quantity           int             `gorm:"not null"`
	UnitPrice          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Amount             decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Description        *string
	SourceAllocationID uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt          time.Time
}

// AccrualDeduction reduces the accrual's net amount (penalties, fuel
// advances, withholdings).
type AccrualDeduction struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AccrualID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type        string          `gorm:"type:varchar(30);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Description *string
	CreatedAt   time.Time
}

// SupportingDocument is an attachment backing the accrual (signed
// attendance sheets, inspection reports). Only the file reference is
// stored here.
type SupportingDocument struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AccrualID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Type        string    `gorm:"type:varchar(30);not null"`
	FilePath    string    `gorm:"not null"`
	Description *string
	UploadedAt  time.Time
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type UpsertTariffRequest struct {
	ContractID      string `json:"contract_id" validate:"required,uuid"`
	RouteID         string `json:"route_id" validate:"required,uuid"`
	ServiceCategory string `json:"service_category" validate:"required"`
	// PricingCategory accepts free text; it is normalized to
	// SINGLE_LEG / PAIRED / OVERTIME before storage.
	PricingCategory    string          `json:"pricing_category" validate:"required"`
	EffectiveFrom      string          `json:"effective_from" validate:"required,datetime=2006-01-02"`
	Price              decimal.Decimal `json:"price" validate:"min=0"`
	SubcontractorPrice decimal.Decimal `json:"subcontractor_price" validate:"min=0"`
}

type TariffResponse struct {
	ID                 string          `json:"id"`
	RouteID            string          `json:"route_id"`
	ServiceCategory    string          `json:"service_category"`
	PricingCategory    string          `json:"pricing_category"`
	EffectiveFrom      time.Time       `json:"effective_from"`
	Price              decimal.Decimal `json:"price"`
	SubcontractorPrice decimal.Decimal `json:"subcontractor_price"`
}

// ResolvedPriceResponse mirrors service.ResolvedPrice; Defined is false
// when no tariff resolves (price renders as zero).
type ResolvedPriceResponse struct {
	Defined            bool            `json:"defined"`
	Price              decimal.Decimal `json:"price"`
	SubcontractorPrice decimal.Decimal `json:"subcontractor_price"`
	EffectiveFrom      *time.Time      `json:"effective_from,omitempty"`
	Source             string          `json:"source,omitempty"`
}

type PricingModelResponse struct {
	Model string `json:"model"` // SHIFT | NON_SHIFT
}

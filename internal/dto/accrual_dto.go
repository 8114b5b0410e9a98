package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CalculateAccrualRequest struct {
	ContractID      string  `json:"contract_id" validate:"required,uuid"`
	Period          string  `json:"period" validate:"required,datetime=2006-01"`
	ServiceCategory string  `json:"service_category" validate:"required"`
	RouteID         *string `json:"route_id" validate:"omitempty,uuid"` // nil = whole contract
}

type SetStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type AddDeductionRequest struct {
	Type        string          `json:"type" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"min=0"`
	Description *string         `json:"description"`
}

type AddDocumentRequest struct {
	Type        string  `json:"type" validate:"required"`
	FilePath    string  `json:"file_path" validate:"required"`
	Description *string `json:"description"`
}

type LineItemResponse struct {
	ID                 string          `json:"id"`
	TripDate           time.Time       `json:"trip_date"`
	RouteID            string          `json:"route_id"`
	VehicleID          *string         `json:"vehicle_id,omitempty"`
	DriverID           *string         `json:"driver_id,omitempty"`
	WorkType           string          `json:"work_type"`
	Quantity           int             `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	Amount             decimal.Decimal `json:"amount"`
	Description        *string         `json:"description,omitempty"`
	SourceAllocationID string          `json:"source_allocation_id"`
}

type DeductionResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description *string         `json:"description,omitempty"`
}

type DocumentResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	FilePath    string    `json:"file_path"`
	Description *string   `json:"description,omitempty"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

type AccrualResponse struct {
	ID              string          `json:"id"`
	ContractID      string          `json:"contract_id"`
	Period          string          `json:"period"`
	ServiceCategory string          `json:"service_category"`
	RouteFilterID   *string         `json:"route_filter_id,omitempty"` // absent = whole contract
	Status          string          `json:"status"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	DeductionAmount decimal.Decimal `json:"deduction_amount"`
	NetAmount       decimal.Decimal `json:"net_amount"`
	ApprovedAt      *time.Time      `json:"approved_at,omitempty"`
	InvoicedAt      *time.Time      `json:"invoiced_at,omitempty"`

	LineItems  []LineItemResponse  `json:"line_items,omitempty"`
	Deductions []DeductionResponse `json:"deductions,omitempty"`
	Documents  []DocumentResponse  `json:"documents,omitempty"`
}

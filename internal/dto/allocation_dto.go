package dto

import "time"

// UpsertAllocationRequest writes one daily-entry row. Dates are
// "YYYY-MM-DD". VehicleID/DriverID are optional — a placeholder row
// (quantity 0) may carry neither.
type UpsertAllocationRequest struct {
	ContractID      string  `json:"contract_id" validate:"required,uuid"`
	RouteID         string  `json:"route_id" validate:"required,uuid"`
	TripDate        string  `json:"trip_date" validate:"required,datetime=2006-01-02"`
	ServiceCategory string  `json:"service_category" validate:"required"`
	TimeBlock       string  `json:"time_block" validate:"required"`
	LineNumber      int     `json:"line_number" validate:"min=0"`
	VehicleID       *string `json:"vehicle_id" validate:"omitempty,uuid"`
	DriverID        *string `json:"driver_id" validate:"omitempty,uuid"`
	Quantity        int     `json:"quantity" validate:"min=0"`
	TimeText        string  `json:"time_text"`
	Note            *string `json:"note"`
}

type DeleteAllocationRequest struct {
	ContractID      string `json:"contract_id" validate:"required,uuid"`
	RouteID         string `json:"route_id" validate:"required,uuid"`
	TripDate        string `json:"trip_date" validate:"required,datetime=2006-01-02"`
	ServiceCategory string `json:"service_category" validate:"required"`
	TimeBlock       string `json:"time_block" validate:"required"`
	LineNumber      int    `json:"line_number" validate:"min=1"`
}

type AllocationResponse struct {
	ID              string    `json:"id"`
	ContractID      string    `json:"contract_id"`
	RouteID         string    `json:"route_id"`
	RouteName       string    `json:"route_name,omitempty"`
	TripDate        time.Time `json:"trip_date"`
	ServiceCategory string    `json:"service_category"`
	TimeBlock       string    `json:"time_block"`
	LineNumber      int       `json:"line_number"`
	VehicleID       *string   `json:"vehicle_id,omitempty"`
	DriverID        *string   `json:"driver_id,omitempty"`
	Quantity        int       `json:"quantity"`
	TimeText        string    `json:"time_text,omitempty"`
	Note            *string   `json:"note,omitempty"`
}

// ConflictResponse is returned with HTTP 409 when an upsert is declined,
// and by the advisory conflict endpoint.
type ConflictResponse struct {
	Resource   string             `json:"resource"` // "vehicle" | "driver"
	Window     string             `json:"window"`
	Allocation AllocationResponse `json:"allocation"`
}

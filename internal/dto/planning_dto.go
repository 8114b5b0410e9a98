package dto

import "github.com/shopspring/decimal"

type UpsertSlotRequest struct {
	ContractID      string `json:"contract_id" validate:"required,uuid"`
	RouteID         string `json:"route_id" validate:"required,uuid"`
	Month           string `json:"month" validate:"required,datetime=2006-01"`
	ServiceCategory string `json:"service_category" validate:"required"`
	TimeBlock       string `json:"time_block" validate:"required"`
}

type DeleteSlotRequest = UpsertSlotRequest

type SlotResponse struct {
	ID              string `json:"id"`
	ContractID      string `json:"contract_id"`
	RouteID         string `json:"route_id"`
	RouteName       string `json:"route_name,omitempty"`
	Month           string `json:"month"`
	ServiceCategory string `json:"service_category"`
	TimeBlock       string `json:"time_block"`
}

type UpsertPlannedTariffRequest struct {
	ContractID      string          `json:"contract_id" validate:"required,uuid"`
	RouteID         string          `json:"route_id" validate:"required,uuid"`
	Month           string          `json:"month" validate:"required,datetime=2006-01"`
	ServiceCategory string          `json:"service_category" validate:"required"`
	TimeBlock       string          `json:"time_block" validate:"required"`
	UnitPrice       decimal.Decimal `json:"unit_price" validate:"min=0"`
}

type PlannedTariffResponse struct {
	ID              string          `json:"id"`
	RouteID         string          `json:"route_id"`
	Month           string          `json:"month"`
	ServiceCategory string          `json:"service_category"`
	TimeBlock       string          `json:"time_block"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
}

type UpsertCustomBlockRequest struct {
	ContractID      string `json:"contract_id" validate:"required,uuid"`
	Month           string `json:"month" validate:"required,datetime=2006-01"`
	ServiceCategory string `json:"service_category" validate:"required"`
	Code            string `json:"code" validate:"required,oneof=C1 C2"`
	TimeText        string `json:"time_text" validate:"required"`
}

type CustomBlockResponse struct {
	ID              string `json:"id"`
	Month           string `json:"month"`
	ServiceCategory string `json:"service_category"`
	Code            string `json:"code"`
	TimeText        string `json:"time_text"`
}

type CopyMonthRequest struct {
	ContractID string `json:"contract_id" validate:"required,uuid"`
	FromMonth  string `json:"from_month" validate:"required,datetime=2006-01"`
	ToMonth    string `json:"to_month" validate:"required,datetime=2006-01"`
}

type SyncRangeRequest struct {
	ContractID string `json:"contract_id" validate:"required,uuid"`
	StartDate  string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate    string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

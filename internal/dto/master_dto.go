package dto

import "github.com/shopspring/decimal"

type VehicleResponse struct {
	ID        string `json:"id"`
	Plate     string `json:"plate"`
	Capacity  int    `json:"capacity"`
	OwnerType string `json:"owner_type"`
}

type DriverResponse struct {
	ID            string  `json:"id"`
	FullName      string  `json:"full_name"`
	LicenseNumber *string `json:"license_number,omitempty"`
	Phone         *string `json:"phone,omitempty"`
}

type ContractResponse struct {
	ID                string   `json:"id"`
	CustomerID        string   `json:"customer_id"`
	CustomerName      string   `json:"customer_name,omitempty"`
	Number            string   `json:"number"`
	StartDate         string   `json:"start_date"`
	EndDate           string   `json:"end_date"`
	ServiceCategories []string `json:"service_categories"`
	Active            bool     `json:"active"`
}

type RouteResponse struct {
	ID              string          `json:"id"`
	ContractID      string          `json:"contract_id"`
	ServiceCategory string          `json:"service_category"`
	Name            string          `json:"name"`
	MovementType    string          `json:"movement_type"`
	DistanceKM      decimal.Decimal `json:"distance_km"`
}

package dto

import "time"

type LockRequest struct {
	ContractID      string `json:"contract_id" validate:"required,uuid"`
	Month           string `json:"month" validate:"required,datetime=2006-01"`
	ServiceCategory string `json:"service_category" validate:"required"`
}

type UnlockRequest struct {
	ContractID      string `json:"contract_id" validate:"required,uuid"`
	Month           string `json:"month" validate:"required,datetime=2006-01"`
	ServiceCategory string `json:"service_category" validate:"required"`
	Reason          string `json:"reason" validate:"required"`
}

type MissingSlotResponse struct {
	RouteID   string    `json:"route_id"`
	RouteName string    `json:"route_name"`
	TimeBlock string    `json:"time_block"`
	Date      time.Time `json:"date"`
}

// LockAttemptResponse: Locked false + Missing explains the declined
// attempt (capped list).
type LockAttemptResponse struct {
	Locked  bool                  `json:"locked"`
	Missing []MissingSlotResponse `json:"missing,omitempty"`
}

type LockStatusResponse struct {
	ContractID      string     `json:"contract_id"`
	Month           string     `json:"month"`
	ServiceCategory string     `json:"service_category"`
	Locked          bool       `json:"locked"`
	LockedAt        *time.Time `json:"locked_at,omitempty"`
	LockedBy        *string    `json:"locked_by,omitempty"`
	UnlockedAt      *time.Time `json:"unlocked_at,omitempty"`
	UnlockedBy      *string    `json:"unlocked_by,omitempty"`
	UnlockReason    *string    `json:"unlock_reason,omitempty"`
}

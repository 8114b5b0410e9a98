package service

import (
	"context"
	"time"

	"github.com/AyhanErcan70/SATTUP-sub000/internal/model"
	"github.com/AyhanErcan70/SATTUP-sub000/internal/repository"
	"github.com/AyhanErcan70/SATTUP-sub000/internal/timeblock"

	"github.com/google/uuid"
)

// AllocationRef identifies one allocation row by its natural key within
// a contract/date/category scope. Used to exclude the row being edited
// from its own conflict check.
type AllocationRef struct {
	RouteID    uuid.UUID
	TimeBlock  string
	LineNumber int
}

// ConflictQuery describes a candidate assignment to validate.
type ConflictQuery struct {
	ContractID      uuid.UUID
	TripDate        time.Time
	ServiceCategory string
	TimeBlock       string
	TimeText        string
	VehicleID       *uuid.UUID
	DriverID        *uuid.UUID
	Excluding       *AllocationRef
}

// ConflictInfo reports the existing allocation a candidate overlaps
// with, and which resource collided.
type ConflictInfo struct {
	Allocation model.Allocation
	Window     timeblock.Range
	Resource   string // "vehicle" | "driver"
}

type ConflictService interface {
	// FindConflict returns the overlapping allocation for the candidate,
	// or nil when none exists or the candidate's window cannot be
	// parsed (free-form times are exempt from the check). Pure read.
	FindConflict(ctx context.Context, q ConflictQuery) (*ConflictInfo, error)
}

type conflictService struct {
	allocations repository.AllocationRepository
	planning    repository.PlanningRepository
}

func NewConflictService(allocations repository.AllocationRepository, planning repository.PlanningRepository) ConflictService {
	return &conflictService{allocations: allocations, planning: planning}
}

// customBlockMap loads the contract's per-month custom block anchors
// ("C1" → "06:45") so both the candidate and the stored rows resolve
// custom codes the same way.
func (s *conflictService) customBlockMap(ctx context.Context, contractID uuid.UUID, month, serviceCategory string) (map[string]string, error) {
	blocks, err := s.planning.ListCustomBlocks(ctx, contractID, month, serviceCategory)
	if err != nil {
		return nil, err
	}
	m := make(map[string]string, len(blocks))
	for _, b := range blocks {
		m[b.Code] = b.TimeText
	}
	return m, nil
}

func (s *conflictService) FindConflict(ctx context.Context, q ConflictQuery) (*ConflictInfo, error) {
	if q.VehicleID == nil && q.DriverID == nil {
		return nil, nil
	}

	custom, err := s.customBlockMap(ctx, q.ContractID, model.MonthKey(q.TripDate), q.ServiceCategory)
	if err != nil {
		return nil, err
	}

	candidate, ok := timeblock.ParseWithCustom(q.TimeBlock, q.TimeText, custom)
	if !ok {
		// Unresolvable window: the check cannot be evaluated, not a failure.
		return nil, nil
	}

	rows, err := s.allocations.ListForDay(ctx, q.ContractID, q.TripDate, q.ServiceCategory, q.VehicleID, q.DriverID)
	if err != nil {
		return nil, err
	}

	var best *ConflictInfo
	for _, row := range rows {
		if q.Excluding != nil &&
			row.RouteID == q.Excluding.RouteID &&
			row.TimeBlock == q.Excluding.TimeBlock &&
			row.LineNumber == q.Excluding.LineNumber {
			continue
		}

		window, ok := timeblock.ParseWithCustom(row.TimeBlock, row.TimeText, custom)
		if !ok {
			continue
		}
		if !candidate.Overlaps(window) {
			continue
		}

		// Deterministic winner among multiple conflicts: earliest window,
		// then lowest line number.
		if best == nil ||
			window.Start < best.Window.Start ||
			(window.Start == best.Window.Start && row.LineNumber < best.Allocation.LineNumber) {
			info := ConflictInfo{Allocation: row, Window: window, Resource: conflictResource(q, row)}
			best = &info
		}
	}
	return best, nil
}

func conflictResource(q ConflictQuery, row model.Allocation) string {
	if q.VehicleID != nil && row.VehicleID != nil && *q.VehicleID == *row.VehicleID {
		return "vehicle"
	}
	return "driver"
}

package service

import (
	"context"
	"errors"
	"time"

	"github.com/AyhanErcan70/SATTUP-sub000/internal/model"
	"github.com/AyhanErcan70/SATTUP-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// maxMissingReport bounds the missing-slot list returned by a failed
// lock attempt, so a severely incomplete month does not produce an
// unbounded response.
const maxMissingReport = 20

// PeriodScope identifies one lockable (contract, month, category) unit.
type PeriodScope struct {
	ContractID      uuid.UUID
	Month           string // "YYYY-MM"
	ServiceCategory string
}

// MissingSlot is one planned slot-day without an allocation row.
type MissingSlot struct {
	RouteID   uuid.UUID `json:"route_id"`
	RouteName string    `json:"route_name"`
	TimeBlock string    `json:"time_block"`
	Date      time.Time `json:"date"`
}

// LockResult reports a lock attempt. Locked == false means the
// completeness check declined it and Missing explains why (capped at
// maxMissingReport entries).
type LockResult struct {
	Locked  bool          `json:"locked"`
	Missing []MissingSlot `json:"missing,omitempty"`
}

type PeriodLockService interface {
	IsLocked(ctx context.Context, scope PeriodScope) (bool, error)
	Lock(ctx context.Context, scope PeriodScope, actingUser string) (*LockResult, error)
	// Unlock requires a non-empty audit reason. Admin privilege is
	// enforced by the route layer before this is reached.
	Unlock(ctx context.Context, scope PeriodScope, actingAdmin, reason string) error
	Status(ctx context.Context, scope PeriodScope) (*model.PeriodLock, error)
}

type periodLockService struct {
	locks       repository.PeriodLockRepository
	planning    repository.PlanningRepository
	allocations repository.AllocationRepository
}

func NewPeriodLockService(
	locks repository.PeriodLockRepository,
	planning repository.PlanningRepository,
	allocations repository.AllocationRepository,
) PeriodLockService {
	return &periodLockService{locks: locks, planning: planning, allocations: allocations}
}

func (s *periodLockService) IsLocked(ctx context.Context, scope PeriodScope) (bool, error) {
	l, err := s.locks.Find(ctx, scope.ContractID, scope.Month, scope.ServiceCategory)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return l.Locked, nil
}

func (s *periodLockService) Status(ctx context.Context, scope PeriodScope) (*model.PeriodLock, error) {
	l, err := s.locks.Find(ctx, scope.ContractID, scope.Month, scope.ServiceCategory)
	if err != nil {
		if isNotFound(err) {
			// Never-locked scopes read as an unlocked zero record.
			return &model.PeriodLock{
				ContractID:      scope.ContractID,
				Month:           scope.Month,
				ServiceCategory: scope.ServiceCategory,
			}, nil
		}
		return nil, err
	}
	return l, nil
}

func (s *periodLockService) Lock(ctx context.Context, scope PeriodScope, actingUser string) (*LockResult, error) {
	missing, err := s.validateCompleteness(ctx, scope)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return &LockResult{Locked: false, Missing: missing}, nil
	}

	now := time.Now()
	lock := &model.PeriodLock{
		ContractID:      scope.ContractID,
		Month:           scope.Month,
		ServiceCategory: scope.ServiceCategory,
		Locked:          true,
		LockedAt:        &now,
		LockedBy:        &actingUser,
	}
	if err := s.locks.Save(ctx, lock); err != nil {
		return nil, err
	}

	log.Info().
		Str("contract_id", scope.ContractID.String()).
		Str("month", scope.Month).
		Str("category", scope.ServiceCategory).
		Str("by", actingUser).
		Msg("period locked")
	return &LockResult{Locked: true}, nil
}

func (s *periodLockService) Unlock(ctx context.Context, scope PeriodScope, actingAdmin, reason string) error {
	if len(reason) == 0 {
		return errors.New("unlock reason is required")
	}

	current, err := s.locks.Find(ctx, scope.ContractID, scope.Month, scope.ServiceCategory)
	if err != nil {
		if isNotFound(err) {
			return errors.New("period is not locked")
		}
		return err
	}
	if !current.Locked {
		return errors.New("period is not locked")
	}

	now := time.Now()
	current.Locked = false
	current.UnlockedAt = &now
	current.UnlockedBy = &actingAdmin
	current.UnlockReason = &reason
	if err := s.locks.Save(ctx, current); err != nil {
		return err
	}

	log.Info().
		Str("contract_id", scope.ContractID.String()).
		Str("month", scope.Month).
		Str("category", scope.ServiceCategory).
		Str("by", actingAdmin).
		Str("reason", reason).
		Msg("period unlocked")
	return nil
}

// validateCompleteness checks every planned slot against every calendar
// day of the month: a missing allocation row blocks the lock. A row
// with quantity zero still counts as present — the plan asked for a
// record per day, not necessarily a realized trip. A month with no
// planned slots is trivially complete.
func (s *periodLockService) validateCompleteness(ctx context.Context, scope PeriodScope) ([]MissingSlot, error) {
	slots, err := s.planning.ListSlots(ctx, scope.ContractID, scope.Month, scope.ServiceCategory)
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return nil, nil
	}

	first, last, err := model.MonthRange(scope.Month)
	if err != nil {
		return nil, err
	}

	rows, err := s.allocations.ListInRange(ctx, scope.ContractID, scope.ServiceCategory, first, last,
		repository.AllocationFilter{})
	if err != nil {
		return nil, err
	}

	type slotDay struct {
		route uuid.UUID
		block string
		day   int
	}
	present := make(map[slotDay]bool, len(rows))
	for _, a := range rows {
		present[slotDay{a.RouteID, a.TimeBlock, a.TripDate.Day()}] = true
	}

	var missing []MissingSlot
	days := last.Day()
	for _, slot := range slots {
		for day := 1; day <= days; day++ {
			if present[slotDay{slot.RouteID, slot.TimeBlock, day}] {
				continue
			}
			missing = append(missing, MissingSlot{
				RouteID:   slot.RouteID,
				RouteName: slot.Route.Name,
				TimeBlock: slot.TimeBlock,
				Date:      first.AddDate(0, 0, day-1),
			})
			if len(missing) >= maxMissingReport {
				return missing, nil
			}
		}
	}
	return missing, nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/AyhanErcan70/SATTUP-sub000/internal/model"
	"github.com/AyhanErcan70/SATTUP-sub000/internal/repository"

	"github.com/google/uuid"
)

// ErrPeriodLocked is wrapped into every write refused because the
// target (contract, month, category) scope is frozen.
type ErrPeriodLocked struct {
	Month string
}

func (e ErrPeriodLocked) Error() string {
	return fmt.Sprintf("period %s is locked; unlock it before editing", e.Month)
}

type AllocationService interface {
	// Upsert validates the lock state and resource conflicts, then
	// writes. A non-nil ConflictInfo means the write was declined
	// because of an overlapping assignment.
	Upsert(ctx context.Context, a *model.Allocation) (*ConflictInfo, error)
	Delete(ctx context.Context, contractID, routeID uuid.UUID, tripDate time.Time,
		serviceCategory, timeBlock string, lineNumber int) error
	ListInRange(ctx context.Context, contractID uuid.UUID, serviceCategory string,
		from, to time.Time, filter repository.AllocationFilter) ([]model.Allocation, error)
}

type allocationService struct {
	allocations repository.AllocationRepository
	periods     PeriodLockService
	conflicts   ConflictService
}

func NewAllocationService(
	allocations repository.AllocationRepository,
	periods PeriodLockService,
	conflicts ConflictService,
) AllocationService {
	return &allocationService{allocations: allocations, periods: periods, conflicts: conflicts}
}

func (s *allocationService) guardLock(ctx context.Context, contractID uuid.UUID, tripDate time.Time, serviceCategory string) error {
	month := model.MonthKey(tripDate)
	locked, err := s.periods.IsLocked(ctx, PeriodScope{
		ContractID: contractID, Month: month, ServiceCategory: serviceCategory,
	})
	if err != nil {
		return err
	}
	if locked {
		return ErrPeriodLocked{Month: month}
	}
	return nil
}

func (s *allocationService) Upsert(ctx context.Context, a *model.Allocation) (*ConflictInfo, error) {
	if err := s.guardLock(ctx, a.ContractID, a.TripDate, a.ServiceCategory); err != nil {
		return nil, err
	}
	if a.LineNumber < 1 {
		a.LineNumber = 1
	}

	// Placeholders hold no resource, so they cannot conflict.
	if a.Quantity > 0 {
		conflict, err := s.conflicts.FindConflict(ctx, ConflictQuery{
			ContractID:      a.ContractID,
			TripDate:        a.TripDate,
			ServiceCategory: a.ServiceCategory,
			TimeBlock:       a.TimeBlock,
			TimeText:        a.TimeText,
			VehicleID:       a.VehicleID,
			DriverID:        a.DriverID,
			Excluding: &AllocationRef{
				RouteID:    a.RouteID,
				TimeBlock:  a.TimeBlock,
				LineNumber: a.LineNumber,
			},
		})
		if err != nil {
			return nil, err
		}
		if conflict != nil {
			return conflict, nil
		}
	}

	return nil, s.allocations.Upsert(ctx, a)
}

func (s *allocationService) Delete(ctx context.Context, contractID, routeID uuid.UUID, tripDate time.Time,
	serviceCategory, timeBlock string, lineNumber int) error {
	if err := s.guardLock(ctx, contractID, tripDate, serviceCategory); err != nil {
		return err
	}
	return s.allocations.Delete(ctx, contractID, routeID, tripDate, serviceCategory, timeBlock, lineNumber)
}

func (s *allocationService) ListInRange(ctx context.Context, contractID uuid.UUID, serviceCategory string,
	from, to time.Time, filter repository.AllocationFilter) ([]model.Allocation, error) {
	return s.allocations.ListInRange(ctx, contractID, serviceCategory, from, to, filter)
}

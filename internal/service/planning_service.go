package service

import (
	"context"
	"errors"

	"github.com/AyhanErcan70/SATTUP-sub000/internal/model"
	"github.com/AyhanErcan70/SATTUP-sub000/internal/repository"
	"github.com/AyhanErcan70/SATTUP-sub000/internal/timeblock"

	"github.com/google/uuid"
)

// PlanningService is the mutation front for the month template. Every
// write checks the period lock first; the repository upserts carry the
// uniqueness invariants.
type PlanningService interface {
	UpsertSlot(ctx context.Context, s *model.PlannedSlot) error
	DeleteSlot(ctx context.Context, contractID, routeID uuid.UUID, month, serviceCategory, timeBlock string) error
	ListSlots(ctx context.Context, contractID uuid.UUID, month, serviceCategory string) ([]model.PlannedSlot, error)

	UpsertPlannedTariff(ctx context.Context, t *model.PlannedTariff) error
	ListPlannedTariffs(ctx context.Context, contractID uuid.UUID, month, serviceCategory string) ([]model.PlannedTariff, error)

	UpsertCustomBlock(ctx context.Context, b *model.CustomTimeBlock) error
	ListCustomBlocks(ctx context.Context, contractID uuid.UUID, month, serviceCategory string) ([]model.CustomTimeBlock, error)
}

type planningService struct {
	planning repository.PlanningRepository
	periods  PeriodLockService
}

func NewPlanningService(planning repository.PlanningRepository, periods PeriodLockService) PlanningService {
	return &planningService{planning: planning, periods: periods}
}

func (s *planningService) guardLock(ctx context.Context, contractID uuid.UUID, month, serviceCategory string) error {
	if _, err := model.ParseMonth(month); err != nil {
		return err
	}
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

func (s *planningService) UpsertSlot(ctx context.Context, slot *model.PlannedSlot) error {
	if slot.TimeBlock == "" {
		return errors.New("time block is required")
	}
	if err := s.guardLock(ctx, slot.ContractID, slot.Month, slot.ServiceCategory); err != nil {
		return err
	}
	return s.planning.UpsertSlot(ctx, slot)
}

func (s *planningService) DeleteSlot(ctx context.Context, contractID, routeID uuid.UUID, month, serviceCategory, timeBlock string) error {
	if err := s.guardLock(ctx, contractID, month, serviceCategory); err != nil {
		return err
	}
	return s.planning.DeleteSlot(ctx, contractID, routeID, month, serviceCategory, timeBlock)
}

func (s *planningService) ListSlots(ctx context.Context, contractID uuid.UUID, month, serviceCategory string) ([]model.PlannedSlot, error) {
	return s.planning.ListSlots(ctx, contractID, month, serviceCategory)
}

func (s *planningService) UpsertPlannedTariff(ctx context.Context, t *model.PlannedTariff) error {
	if t.TimeBlock == "" {
		return errors.New("time block is required")
	}
	if err := s.guardLock(ctx, t.ContractID, t.Month, t.ServiceCategory); err != nil {
		return err
	}
	return s.planning.UpsertTariff(ctx, t)
}

func (s *planningService) ListPlannedTariffs(ctx context.Context, contractID uuid.UUID, month, serviceCategory string) ([]model.PlannedTariff, error) {
	return s.planning.ListTariffs(ctx, contractID, month, serviceCategory)
}

func (s *planningService) UpsertCustomBlock(ctx context.Context, b *model.CustomTimeBlock) error {
	if b.Code != "C1" && b.Code != "C2" {
		return errors.New("custom block code must be C1 or C2")
	}
	if _, ok := timeblock.Parse(b.TimeText, ""); !ok {
		return errors.New("custom block time must be HH:MM or HH:MM-HH:MM")
	}
	if err := s.guardLock(ctx, b.ContractID, b.Month, b.ServiceCategory); err != nil {
		return err
	}
	return s.planning.UpsertCustomBlock(ctx, b)
}

func (s *planningService) ListCustomBlocks(ctx context.Context, contractID uuid.UUID, month, serviceCategory string) ([]model.CustomTimeBlock, error) {
	return s.planning.ListCustomBlocks(ctx, contractID, month, serviceCategory)
}

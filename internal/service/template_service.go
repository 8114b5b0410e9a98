package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AyhanErcan70/SATTUP-sub000/internal/model"
	"github.com/AyhanErcan70/SATTUP-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrNoSeedMonth is returned by SyncAcrossDateRange when the contract
// has no planned slots anywhere to replicate from.
var ErrNoSeedMonth = errors.New("no month with planned slots to replicate from")

type TemplateService interface {
	// CopyMonth replicates the planning template (slots, planned
	// tariffs, custom time blocks) into another month. Upserts on the
	// natural keys, so re-running is idempotent. Realized allocations
	// are never copied.
	CopyMonth(ctx context.Context, contractID uuid.UUID, fromMonth, toMonth string) error
	// SyncAcrossDateRange fills every month touched by [start, end]
	// that lacks a plan, replicating from a seed month. Locked target
	// scopes are skipped, not failed.
	SyncAcrossDateRange(ctx context.Context, contractID uuid.UUID, start, end time.Time) error
}

type templateService struct {
	planning repository.PlanningRepository
	periods  PeriodLockService
}

func NewTemplateService(planning repository.PlanningRepository, periods PeriodLockService) TemplateService {
	return &templateService{planning: planning, periods: periods}
}

func (s *templateService) CopyMonth(ctx context.Context, contractID uuid.UUID, fromMonth, toMonth string) error {
	if _, err := model.ParseMonth(fromMonth); err != nil {
		return err
	}
	if _, err := model.ParseMonth(toMonth); err != nil {
		return err
	}
	if fromMonth == toMonth {
		return errors.New("source and target month are the same")
	}

	slots, err := s.planning.ListSlots(ctx, contractID, fromMonth, "")
	if err != nil {
		return err
	}
	tariffs, err := s.planning.ListTariffs(ctx, contractID, fromMonth, "")
	if err != nil {
		return err
	}
	blocks, err := s.planning.ListCustomBlocks(ctx, contractID, fromMonth, "")
	if err != nil {
		return err
	}

	// A locked target scope refuses the whole copy for that category.
	for _, category := range distinctCategories(slots, tariffs, blocks) {
		locked, err := s.periods.IsLocked(ctx, PeriodScope{
			ContractID: contractID, Month: toMonth, ServiceCategory: category,
		})
		if err != nil {
			return err
		}
		if locked {
			return fmt.Errorf("period %s/%s is locked", toMonth, category)
		}
	}

	for _, slot := range slots {
		copy := model.PlannedSlot{
			ContractID:      slot.ContractID,
			RouteID:         slot.RouteID,
			Month:           toMonth,
			ServiceCategory: slot.ServiceCategory,
			TimeBlock:       slot.TimeBlock,
		}
		if err := s.planning.UpsertSlot(ctx, &copy); err != nil {
			return err
		}
	}

	for _, tariff := range tariffs {
		copy := model.PlannedTariff{
			ContractID:      tariff.ContractID,
			RouteID:         tariff.RouteID,
			Month:           toMonth,
			ServiceCategory: tariff.ServiceCategory,
			TimeBlock:       tariff.TimeBlock,
			UnitPrice:       tariff.UnitPrice,
		}
		if err := s.planning.UpsertTariff(ctx, &copy); err != nil {
			return err
		}
	}

	for _, block := range blocks {
		copy := model.CustomTimeBlock{
			ContractID:      block.ContractID,
			Month:           toMonth,
			ServiceCategory: block.ServiceCategory,
			Code:            block.Code,
			TimeText:        block.TimeText,
		}
		if err := s.planning.UpsertCustomBlock(ctx, &copy); err != nil {
			return err
		}
	}

	log.Info().
		Str("contract_id", contractID.String()).
		Str("from", fromMonth).
		Str("to", toMonth).
		Int("slots", len(slots)).
		Int("tariffs", len(tariffs)).
		Msg("month template copied")
	return nil
}

func (s *templateService) SyncAcrossDateRange(ctx context.Context, contractID uuid.UUID, start, end time.Time) error {
	months := model.MonthKeysBetween(start, end)
	if len(months) == 0 {
		return errors.New("empty date range")
	}

	planned, err := s.planning.MonthsWithSlots(ctx, contractID)
	if err != nil {
		return err
	}
	if len(planned) == 0 {
		return ErrNoSeedMonth
	}
	hasPlan := make(map[string]bool, len(planned))
	for _, m := range planned {
		hasPlan[m] = true
	}

	// Seed: earliest planned month inside the range; otherwise the most
	// recent planned month before it (a renewal extends an old plan
	// forward), otherwise whatever the contract has.
	seed := ""
	for _, m := range months {
		if hasPlan[m] {
			seed = m
			break
		}
	}
	if seed == "" {
		for _, m := range planned {
			if m < months[0] {
				seed = m
			}
		}
	}
	if seed == "" {
		seed = planned[0]
	}

	for _, month := range months {
		if month == seed || hasPlan[month] {
			continue
		}
		if err := s.CopyMonth(ctx, contractID, seed, month); err != nil {
			// Locked or otherwise unwritable months are skipped so one
			// frozen period does not block the rest of the renewal.
			log.Warn().
				Str("contract_id", contractID.String()).
				Str("month", month).
				Err(err).
				Msg("sync skipped month")
		}
	}
	return nil
}

func distinctCategories(slots []model.PlannedSlot, tariffs []model.PlannedTariff, blocks []model.CustomTimeBlock) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(category string) {
		if !seen[category] {
			seen[category] = true
			out = append(out, category)
		}
	}
	for _, s := range slots {
		add(s.ServiceCategory)
	}
	for _, t := range tariffs {
		add(t.ServiceCategory)
	}
	for _, b := range blocks {
		add(b.ServiceCategory)
	}
	return out
}

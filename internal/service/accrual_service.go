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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AccrualService interface {
	// Calculate (re)builds the accrual for the scope: header upserted
	// (DRAFT on first creation, existing status untouched), line items
	// replaced wholesale from realized allocations priced by the
	// month's planned tariffs, totals recomputed. routeFilter nil means
	// the whole contract.
	Calculate(ctx context.Context, contractID uuid.UUID, period, serviceCategory string,
		routeFilter *uuid.UUID) (uuid.UUID, error)
	RecomputeTotals(ctx context.Context, accrualID uuid.UUID) error
	// SetStatus stamps approved-at / invoiced-at the first time those
	// statuses are reached; re-setting them never moves the timestamp.
	// Unknown statuses are stored verbatim with no timestamp effects.
	SetStatus(ctx context.Context, accrualID uuid.UUID, status string) error

	Get(ctx context.Context, accrualID uuid.UUID) (*model.Accrual, error)
	List(ctx context.Context, contractID uuid.UUID, period string) ([]model.Accrual, error)

	AddDeduction(ctx context.Context, accrualID uuid.UUID, dedType string, amount decimal.Decimal, description *string) error
	RemoveDeduction(ctx context.Context, accrualID, deductionID uuid.UUID) error
	AddDocument(ctx context.Context, accrualID uuid.UUID, docType, filePath string, description *string) error
	RemoveDocument(ctx context.Context, accrualID, documentID uuid.UUID) error
}

type accrualService struct {
	accruals    repository.AccrualRepository
	allocations repository.AllocationRepository
	planning    repository.PlanningRepository
}

func NewAccrualService(
	accruals repository.AccrualRepository,
	allocations repository.AllocationRepository,
	planning repository.PlanningRepository,
) AccrualService {
	return &accrualService{accruals: accruals, allocations: allocations, planning: planning}
}

func (s *accrualService) Calculate(ctx context.Context, contractID uuid.UUID, period, serviceCategory string,
	routeFilter *uuid.UUID) (uuid.UUID, error) {
	first, last, err := model.MonthRange(period)
	if err != nil {
		return uuid.Nil, err
	}

	// Absent filter normalized to the sentinel so "whole contract" is a
	// single unique document per scope.
	routeFilterID := uuid.Nil
	if routeFilter != nil {
		routeFilterID = *routeFilter
	}

	allocations, err := s.allocations.ListInRange(ctx, contractID, serviceCategory, first, last,
		repository.AllocationFilter{RouteID: routeFilterID, RealizedOnly: true})
	if err != nil {
		return uuid.Nil, err
	}

	tariffs, err := s.planning.ListTariffs(ctx, contractID, period, serviceCategory)
	if err != nil {
		return uuid.Nil, err
	}
	type priceKey struct {
		route uuid.UUID
		block string
	}
	prices := make(map[priceKey]decimal.Decimal, len(tariffs))
	for _, t := range tariffs {
		prices[priceKey{t.RouteID, t.TimeBlock}] = t.UnitPrice
	}

	header, err := s.accruals.FindByKey(ctx, contractID, period, serviceCategory, routeFilterID)
	if err != nil {
		if !isNotFound(err) {
			return uuid.Nil, err
		}
		header = &model.Accrual{
			ContractID:      contractID,
			Period:          period,
			ServiceCategory: serviceCategory,
			RouteFilterID:   routeFilterID,
			Status:          model.AccrualDraft,
		}
	}

	deductions, err := s.accruals.ListDeductions(ctx, nil, header.ID)
	if err != nil {
		return uuid.Nil, err
	}

	txErr := s.accruals.InTx(ctx, func(tx *gorm.DB) error {
		if header.ID == uuid.Nil {
			if err := s.accruals.Create(ctx, tx, header); err != nil {
				return err
			}
		}

		items := make([]model.AccrualLineItem, 0, len(allocations))
		total := decimal.Zero
		for _, a := range allocations {
			unitPrice := prices[priceKey{a.RouteID, a.TimeBlock}] // zero when no planned tariff exists
			amount := unitPrice.Mul(decimal.NewFromInt(int64(a.Quantity)))
			description := fmt.Sprintf("%s %s", a.Route.Name, a.TimeBlock)
			items = append(items, model.AccrualLineItem{
				AccrualID:          header.ID,
				TripDate:           a.TripDate,
				RouteID:            a.RouteID,
				VehicleID:          a.VehicleID,
				DriverID:           a.DriverID,
				WorkType:           string(a.Route.MovementType),
				Quantity:           a.Quantity,
				UnitPrice:          unitPrice,
				Amount:             amount,
				Description:        &description,
				SourceAllocationID: a.ID,
			})
			total = total.Add(amount)
		}

		if err := s.accruals.ReplaceLineItems(ctx, tx, header.ID, items); err != nil {
			return err
		}

		deduction := sumDeductions(deductions)
		header.TotalAmount = total
		header.DeductionAmount = deduction
		header.NetAmount = total.Sub(deduction)
		return s.accruals.Save(ctx, tx, header)
	})
	if txErr != nil {
		return uuid.Nil, txErr
	}

	log.Info().
		Str("accrual_id", header.ID.String()).
		Str("period", period).
		Int("line_items", len(allocations)).
		Str("total", header.TotalAmount.String()).
		Msg("accrual calculated")
	return header.ID, nil
}

func (s *accrualService) RecomputeTotals(ctx context.Context, accrualID uuid.UUID) error {
	return s.accruals.InTx(ctx, func(tx *gorm.DB) error {
		return s.recomputeTotalsTx(ctx, tx, accrualID)
	})
}

// recomputeTotalsTx rederives the header amounts from the current line
// items and deductions. Totals are never stored independently of their
// inputs. All reads go through tx so a deduction written moments ago in
// the same transaction is already counted.
func (s *accrualService) recomputeTotalsTx(ctx context.Context, tx *gorm.DB, accrualID uuid.UUID) error {
	header, err := s.accruals.FindHeader(ctx, tx, accrualID)
	if err != nil {
		return err
	}
	items, err := s.accruals.ListLineItems(ctx, tx, accrualID)
	if err != nil {
		return err
	}
	deductions, err := s.accruals.ListDeductions(ctx, tx, accrualID)
	if err != nil {
		return err
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}
	deduction := sumDeductions(deductions)

	header.TotalAmount = total
	header.DeductionAmount = deduction
	header.NetAmount = total.Sub(deduction)
	return s.accruals.Save(ctx, tx, header)
}

func (s *accrualService) SetStatus(ctx context.Context, accrualID uuid.UUID, status string) error {
	header, err := s.accruals.FindHeader(ctx, nil, accrualID)
	if err != nil {
		return err
	}

	// Known statuses only move forward; custom strings bypass the
	// ordering (and the timestamps) entirely.
	if rank, known := statusRank(status); known {
		if current, currentKnown := statusRank(header.Status); currentKnown && rank < current {
			return fmt.Errorf("cannot move accrual from %s back to %s", header.Status, status)
		}
	}

	now := time.Now()
	switch status {
	case model.AccrualApproved:
		if header.ApprovedAt == nil {
			header.ApprovedAt = &now
		}
	case model.AccrualInvoiced:
		if header.InvoicedAt == nil {
			header.InvoicedAt = &now
		}
	}
	header.Status = status
	return s.accruals.Save(ctx, nil, header)
}

func statusRank(status string) (int, bool) {
	switch status {
	case model.AccrualDraft:
		return 0, true
	case model.AccrualApproved:
		return 1, true
	case model.AccrualInvoiced:
		return 2, true
	default:
		return 0, false
	}
}

func (s *accrualService) Get(ctx context.Context, accrualID uuid.UUID) (*model.Accrual, error) {
	a, err := s.accruals.FindByID(ctx, accrualID)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.New("accrual not found")
		}
		return nil, err
	}
	return a, nil
}

func (s *accrualService) List(ctx context.Context, contractID uuid.UUID, period string) ([]model.Accrual, error) {
	return s.accruals.List(ctx, contractID, period)
}

func (s *accrualService) AddDeduction(ctx context.Context, accrualID uuid.UUID, dedType string,
	amount decimal.Decimal, description *string) error {
	if dedType == "" {
		return errors.New("deduction type is required")
	}
	return s.accruals.InTx(ctx, func(tx *gorm.DB) error {
		d := &model.AccrualDeduction{
			AccrualID:   accrualID,
			Type:        dedType,
			Amount:      amount,
			Description: description,
		}
		if err := s.accruals.AddDeduction(ctx, tx, d); err != nil {
			return err
		}
		// Same transaction as the mutation: the document can never be
		// read with a deduction its net amount does not reflect.
		return s.recomputeTotalsTx(ctx, tx, accrualID)
	})
}

func (s *accrualService) RemoveDeduction(ctx context.Context, accrualID, deductionID uuid.UUID) error {
	return s.accruals.InTx(ctx, func(tx *gorm.DB) error {
		if err := s.accruals.DeleteDeduction(ctx, tx, accrualID, deductionID); err != nil {
			return err
		}
		return s.recomputeTotalsTx(ctx, tx, accrualID)
	})
}

func (s *accrualService) AddDocument(ctx context.Context, accrualID uuid.UUID, docType, filePath string, description *string) error {
	if filePath == "" {
		return errors.New("file reference is required")
	}
	return s.accruals.AddDocument(ctx, &model.SupportingDocument{
		AccrualID:   accrualID,
		Type:        docType,
		FilePath:    filePath,
		Description: description,
		UploadedAt:  time.Now(),
	})
}

func (s *accrualService) RemoveDocument(ctx context.Context, accrualID, documentID uuid.UUID) error {
	return s.accruals.DeleteDocument(ctx, accrualID, documentID)
}

func sumDeductions(deductions []model.AccrualDeduction) decimal.Decimal {
	sum := decimal.Zero
	for _, d := range deductions {
		sum = sum.Add(d.Amount)
	}
	return sum
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AyhanErcan70/SATTUP-sub000/internal/model"
	"github.com/AyhanErcan70/SATTUP-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ResolvedPrice is the outcome of a successful tariff lookup.
// Source tells whether the structured history or the contract's legacy
// price matrix answered.
type ResolvedPrice struct {
	Price              decimal.Decimal `json:"price"`
	SubcontractorPrice decimal.Decimal `json:"subcontractor_price"`
	EffectiveFrom      *time.Time      `json:"effective_from,omitempty"`
	Source             string          `json:"source"` // "TARIFF" | "LEGACY"
}

// UpsertTariffInput carries a validated tariff write.
type UpsertTariffInput struct {
	ContractID         uuid.UUID
	RouteID            uuid.UUID
	ServiceCategory    string
	PricingCategory    string
	EffectiveFrom      time.Time
	Price              decimal.Decimal
	SubcontractorPrice decimal.Decimal
}

type TariffService interface {
	// ResolvePrice returns nil (not an error) when no tariff is defined
	// for the key — callers render that as price zero.
	ResolvePrice(ctx context.Context, contractID uuid.UUID, serviceCategory string, routeID uuid.UUID,
		pricingCategory model.PricingCategory, tripDate time.Time) (*ResolvedPrice, error)
	// ResolvePricingModel never fails business-wise: dated history,
	// then the customer-level default, then SHIFT.
	ResolvePricingModel(ctx context.Context, contractID uuid.UUID, tripDate time.Time) (string, error)
	UpsertTariff(ctx context.Context, in UpsertTariffInput) error
	ListHistory(ctx context.Context, contractID, routeID uuid.UUID, serviceCategory string) ([]model.Tariff, error)
}

type tariffService struct {
	tariffs   repository.TariffRepository
	contracts repository.ContractRepository
	periods   PeriodLockService
}

func NewTariffService(tariffs repository.TariffRepository, contracts repository.ContractRepository, periods PeriodLockService) TariffService {
	return &tariffService{tariffs: tariffs, contracts: contracts, periods: periods}
}

func (s *tariffService) ResolvePrice(ctx context.Context, contractID uuid.UUID, serviceCategory string,
	routeID uuid.UUID, pricingCategory model.PricingCategory, tripDate time.Time) (*ResolvedPrice, error) {
	if pricingCategory == "" {
		return nil, nil
	}

	t, err := s.tariffs.FindLatest(ctx, contractID, routeID, serviceCategory, pricingCategory, tripDate)
	if err == nil {
		eff := t.EffectiveFrom
		return &ResolvedPrice{
			Price:              t.Price,
			SubcontractorPrice: t.SubcontractorPrice,
			EffectiveFrom:      &eff,
			Source:             "TARIFF",
		}, nil
	}
	if !isNotFound(err) {
		return nil, err
	}

	// No structured row at or before the trip date: some pre-migration
	// contracts still carry their prices as a free-form matrix on the
	// contract record. Try that before giving up.
	return s.resolveLegacy(ctx, contractID, routeID, pricingCategory)
}

func (s *tariffService) resolveLegacy(ctx context.Context, contractID, routeID uuid.UUID,
	pricingCategory model.PricingCategory) (*ResolvedPrice, error) {
	contract, err := s.contracts.FindByID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if len(contract.LegacyPriceMatrix) == 0 {
		return nil, nil
	}

	route, err := s.contracts.FindRouteByID(ctx, routeID)
	if err != nil {
		return nil, err
	}

	var entries []model.LegacyPriceEntry
	if err := json.Unmarshal(contract.LegacyPriceMatrix, &entries); err != nil {
		// A corrupt matrix is treated as "no tariff defined" rather than
		// failing the whole lookup; the operator sees price zero.
		return nil, nil
	}

	for _, e := range entries {
		if !strings.EqualFold(strings.TrimSpace(e.Route), strings.TrimSpace(route.Name)) {
			continue
		}
		if model.NormalizePricingCategory(e.Movement) != pricingCategory {
			continue
		}
		return &ResolvedPrice{
			Price:              e.Price,
			SubcontractorPrice: e.SubcontractorPrice,
			Source:             "LEGACY",
		}, nil
	}
	return nil, nil
}

func (s *tariffService) ResolvePricingModel(ctx context.Context, contractID uuid.UUID, tripDate time.Time) (string, error) {
	change, err := s.tariffs.FindLatestModelChange(ctx, contractID, tripDate)
	if err == nil {
		return change.Model, nil
	}
	if !isNotFound(err) {
		return "", err
	}

	// Contracts older than the dated history fall back to the customer
	// default, then to SHIFT. Both fallbacks are load-bearing for
	// pre-existing data and must stay exactly as they are.
	contract, err := s.contracts.FindByID(ctx, contractID)
	if err != nil {
		return "", err
	}
	if contract.Customer.DefaultPricingModel != nil && *contract.Customer.DefaultPricingModel != "" {
		return *contract.Customer.DefaultPricingModel, nil
	}
	return model.PricingModelShift, nil
}

func (s *tariffService) UpsertTariff(ctx context.Context, in UpsertTariffInput) error {
	category := model.PricingCategory(strings.TrimSpace(string(model.NormalizePricingCategory(in.PricingCategory))))
	if strings.TrimSpace(in.PricingCategory) == "" {
		return errors.New("pricing category is required")
	}
	if in.EffectiveFrom.IsZero() {
		return errors.New("effective-from date is required")
	}

	month := model.MonthKey(in.EffectiveFrom)
	locked, err := s.periods.IsLocked(ctx, PeriodScope{
		ContractID: in.ContractID, Month: month, ServiceCategory: in.ServiceCategory,
	})
	if err != nil {
		return err
	}
	if locked {
		return fmt.Errorf("period %s is locked for this contract and category", month)
	}

	return s.tariffs.Upsert(ctx, &model.Tariff{
		ContractID:         in.ContractID,
		RouteID:            in.RouteID,
		ServiceCategory:    in.ServiceCategory,
		PricingCategory:    category,
		EffectiveFrom:      model.DateOnly(in.EffectiveFrom),
		Price:              in.Price,
		SubcontractorPrice: in.SubcontractorPrice,
	})
}

func (s *tariffService) ListHistory(ctx context.Context, contractID, routeID uuid.UUID, serviceCategory string) ([]model.Tariff, error) {
	return s.tariffs.ListHistory(ctx, contractID, routeID, serviceCategory)
}

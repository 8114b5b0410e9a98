package repository

import (
	"context"
	"time"

	"github.com/AyhanErcan70/SATTUP-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TariffRepository interface {
	Upsert(ctx context.Context, t *model.Tariff) error
	// FindLatest returns the tariff row with the greatest effective-from
	// not after the trip date, or gorm.ErrRecordNotFound.
	FindLatest(ctx context.Context, contractID, routeID uuid.UUID, serviceCategory string,
		pricingCategory model.PricingCategory, tripDate time.Time) (*model.Tariff, error)
	ListHistory(ctx context.Context, contractID, routeID uuid.UUID, serviceCategory string) ([]model.Tariff, error)

	FindLatestModelChange(ctx context.Context, contractID uuid.UUID, tripDate time.Time) (*model.PricingModelChange, error)
	CreateModelChange(ctx context.Context, c *model.PricingModelChange) error
}

type tariffRepo struct{ db *gorm.DB }

func NewTariffRepository(db *gorm.DB) TariffRepository { return &tariffRepo{db: db} }

func (r *tariffRepo) Upsert(ctx context.Context, t *model.Tariff) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "contract_id"}, {Name: "route_id"}, {Name: "service_category"},
			{Name: "pricing_category"}, {Name: "effective_from"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"price", "subcontractor_price", "updated_at"}),
	}).Create(t).Error
}

func (r *tariffRepo) FindLatest(ctx context.Context, contractID, routeID uuid.UUID, serviceCategory string,
	pricingCategory model.PricingCategory, tripDate time.Time) (*model.Tariff, error) {
	var t model.Tariff
	err := r.db.WithContext(ctx).
		Where("contract_id = ? AND route_id = ? AND service_category = ? AND pricing_category = ? AND pricing_category <> '' AND effective_from <= ?",
			contractID, routeID, serviceCategory, pricingCategory, model.DateOnly(tripDate)).
		Order("effective_from DESC").
		First(&t).Error
	return &t, err
}

func (r *tariffRepo) ListHistory(ctx context.Context, contractID, routeID uuid.UUID, serviceCategory string) ([]model.Tariff, error) {
	var rows []model.Tariff
	q := r.db.WithContext(ctx).Where("contract_id = ?", contractID)
	if routeID != uuid.Nil {
		q = q.Where("route_id = ?", routeID)
	}
	if serviceCategory != "" {
		q = q.Where("service_category = ?", serviceCategory)
	}
	err := q.Order("effective_from DESC").Find(&rows).Error
	return rows, err
}

func (r *tariffRepo) FindLatestModelChange(ctx context.Context, contractID uuid.UUID, tripDate time.Time) (*model.PricingModelChange, error) {
	var c model.PricingModelChange
	err := r.db.WithContext(ctx).
		Where("contract_id = ? AND effective_from <= ?", contractID, model.DateOnly(tripDate)).
		Order("effective_from DESC").
		First(&c).Error
	return &c, err
}

func (r *tariffRepo) CreateModelChange(ctx context.Context, c *model.PricingModelChange) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "contract_id"}, {Name: "effective_from"}},
		DoUpdates: clause.AssignmentColumns([]string{"model"}),
	}).Create(c).Error
}

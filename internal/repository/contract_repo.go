package repository

import (
	"context"

	"github.com/AyhanErcan70/SATTUP-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContractRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Contract, error)
	ListActive(ctx context.Context) ([]model.Contract, error)
	ListRoutes(ctx context.Context, contractID uuid.UUID, serviceCategory string) ([]model.RouteDefinition, error)
	FindRouteByID(ctx context.Context, id uuid.UUID) (*model.RouteDefinition, error)
}

type contractRepo struct{ db *gorm.DB }

func NewContractRepository(db *gorm.DB) ContractRepository { return &contractRepo{db: db} }

func (r *contractRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Contract, error) {
	var c model.Contract
	err := r.db.WithContext(ctx).Preload("Customer").First(&c, "id = ?", id).Error
	return &c, err
}

func (r *contractRepo) ListActive(ctx context.Context) ([]model.Contract, error) {
	var cs []model.Contract
	err := r.db.WithContext(ctx).Where("active = true").Order("number ASC").Find(&cs).Error
	return cs, err
}

func (r *contractRepo) ListRoutes(ctx context.Context, contractID uuid.UUID, serviceCategory string) ([]model.RouteDefinition, error) {
	var routes []model.RouteDefinition
	q := r.db.WithContext(ctx).Where("contract_id = ? AND active = true", contractID)
	if serviceCategory != "" {
		q = q.Where("service_category = ?", serviceCategory)
	}
	err := q.Order("name ASC").Find(&routes).Error
	return routes, err
}

func (r *contractRepo) FindRouteByID(ctx context.Context, id uuid.UUID) (*model.RouteDefinition, error) {
	var route model.RouteDefinition
	err := r.db.WithContext(ctx).First(&route, "id = ?", id).Error
	return &route, err
}

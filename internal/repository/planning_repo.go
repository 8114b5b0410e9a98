package repository

import (
	"context"

	"github.com/AyhanErcan70/SATTUP-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PlanningRepository persists the month template: planned slots,
// planned tariffs, and the custom time-block anchors. All writes are
// upserts on the entities' natural keys, so template replication and
// form re-submits are idempotent.
type PlanningRepository interface {
	UpsertSlot(ctx context.Context, s *model.PlannedSlot) error
	DeleteSlot(ctx context.Context, contractID, routeID uuid.UUID, month, serviceCategory, timeBlock string) error
	ListSlots(ctx context.Context, contractID uuid.UUID, month, serviceCategory string) ([]model.PlannedSlot, error)
	MonthsWithSlots(ctx context.Context, contractID uuid.UUID) ([]string, error)

	UpsertTariff(ctx context.Context, t *model.PlannedTariff) error
	ListTariffs(ctx context.Context, contractID uuid.UUID, month, serviceCategory string) ([]model.PlannedTariff, error)

	UpsertCustomBlock(ctx context.Context, b *model.CustomTimeBlock) error
	ListCustomBlocks(ctx context.Context, contractID uuid.UUID, month, serviceCategory string) ([]model.CustomTimeBlock, error)
}

type planningRepo struct{ db *gorm.DB }

func NewPlanningRepository(db *gorm.DB) PlanningRepository { return &planningRepo{db: db} }

var slotKey = []clause.Column{
	{Name: "contract_id"}, {Name: "route_id"}, {Name: "month"},
	{Name: "service_category"}, {Name: "time_block"},
}

func (r *planningRepo) UpsertSlot(ctx context.Context, s *model.PlannedSlot) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   slotKey,
		DoUpdates: clause.AssignmentColumns([]string{"updated_at"}),
	}).Create(s).Error
}

func (r *planningRepo) DeleteSlot(ctx context.Context, contractID, routeID uuid.UUID, month, serviceCategory, timeBlock string) error {
	return r.db.WithContext(ctx).
		Where("contract_id = ? AND route_id = ? AND month = ? AND service_category = ? AND time_block = ?",
			contractID, routeID, month, serviceCategory, timeBlock).
		Delete(&model.PlannedSlot{}).Error
}

func (r *planningRepo) ListSlots(ctx context.Context, contractID uuid.UUID, month, serviceCategory string) ([]model.PlannedSlot, error) {
	var slots []model.PlannedSlot
	q := r.db.WithContext(ctx).Where("contract_id = ? AND month = ?", contractID, month)
	if serviceCategory != "" {
		q = q.Where("service_category = ?", serviceCategory)
	}
	err := q.Preload("Route").Order("time_block ASC").Find(&slots).Error
	return slots, err
}

// MonthsWithSlots returns, in ascending order, every month key for
// which the contract has at least one planned slot. Used by the
// replicator's seed-month discovery.
func (r *planningRepo) MonthsWithSlots(ctx context.Context, contractID uuid.UUID) ([]string, error) {
	var months []string
	err := r.db.WithContext(ctx).Model(&model.PlannedSlot{}).
		Distinct("month").
		Where("contract_id = ?", contractID).
		Order("month ASC").
		Pluck("month", &months).Error
	return months, err
}

func (r *planningRepo) UpsertTariff(ctx context.Context, t *model.PlannedTariff) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "contract_id"}, {Name: "route_id"}, {Name: "month"},
			{Name: "service_category"}, {Name: "time_block"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"unit_price", "updated_at"}),
	}).Create(t).Error
}

func (r *planningRepo) ListTariffs(ctx context.Context, contractID uuid.UUID, month, serviceCategory string) ([]model.PlannedTariff, error) {
	var tariffs []model.PlannedTariff
	q := r.db.WithContext(ctx).Where("contract_id = ? AND month = ?", contractID, month)
	if serviceCategory != "" {
		q = q.Where("service_category = ?", serviceCategory)
	}
	err := q.Order("time_block ASC").Find(&tariffs).Error
	return tariffs, err
}

func (r *planningRepo) UpsertCustomBlock(ctx context.Context, b *model.CustomTimeBlock) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "contract_id"}, {Name: "month"},
			{Name: "service_category"}, {Name: "code"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"time_text", "updated_at"}),
	}).Create(b).Error
}

func (r *planningRepo) ListCustomBlocks(ctx context.Context, contractID uuid.UUID, month, serviceCategory string) ([]model.CustomTimeBlock, error) {
	var blocks []model.CustomTimeBlock
	q := r.db.WithContext(ctx).Where("contract_id = ? AND month = ?", contractID, month)
	if serviceCategory != "" {
		q = q.Where("service_category = ?", serviceCategory)
	}
	err := q.Order("code ASC").Find(&blocks).Error
	return blocks, err
}

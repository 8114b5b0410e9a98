package repository

import (
	"context"

	"github.com/AyhanErcan70/SATTUP-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PeriodLockRepository interface {
	// Find returns gorm.ErrRecordNotFound for scopes never locked —
	// callers treat that as UNLOCKED.
	Find(ctx context.Context, contractID uuid.UUID, month, serviceCategory string) (*model.PeriodLock, error)
	Save(ctx context.Context, l *model.PeriodLock) error
}

type periodLockRepo struct{ db *gorm.DB }

func NewPeriodLockRepository(db *gorm.DB) PeriodLockRepository { return &periodLockRepo{db: db} }

func (r *periodLockRepo) Find(ctx context.Context, contractID uuid.UUID, month, serviceCategory string) (*model.PeriodLock, error) {
	var l model.PeriodLock
	err := r.db.WithContext(ctx).
		Where("contract_id = ? AND month = ? AND service_category = ?", contractID, month, serviceCategory).
		First(&l).Error
	return &l, err
}

func (r *periodLockRepo) Save(ctx context.Context, l *model.PeriodLock) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "contract_id"}, {Name: "month"}, {Name: "service_category"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"locked", "locked_at", "locked_by", "unlocked_at", "unlocked_by", "unlock_reason", "updated_at",
		}),
	}).Create(l).Error
}

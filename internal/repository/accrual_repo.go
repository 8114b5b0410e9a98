package repository

import (
	"context"

	"github.com/AyhanErcan70/SATTUP-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccrualRepository interface {
	// InTx runs fn inside one database transaction. Reads that must see
	// fn's uncommitted writes take the tx handle fn receives; a nil tx
	// reads committed state.
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error

	FindByID(ctx context.Context, id uuid.UUID) (*model.Accrual, error)
	// FindHeader loads the accrual row without its child collections,
	// for callers that save the header back (saving a preloaded
	// aggregate would write the children too).
	FindHeader(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Accrual, error)
	FindByKey(ctx context.Context, contractID uuid.UUID, period, serviceCategory string, routeFilterID uuid.UUID) (*model.Accrual, error)
	List(ctx context.Context, contractID uuid.UUID, period string) ([]model.Accrual, error)
	Create(ctx context.Context, tx *gorm.DB, a *model.Accrual) error
	Save(ctx context.Context, tx *gorm.DB, a *model.Accrual) error
	// ReplaceLineItems deletes the accrual's current item set and
	// inserts the new one. Must run inside the caller's transaction so
	// a reader never sees a half-replaced document.
	ReplaceLineItems(ctx context.Context, tx *gorm.DB, accrualID uuid.UUID, items []model.AccrualLineItem) error
	ListLineItems(ctx context.Context, tx *gorm.DB, accrualID uuid.UUID) ([]model.AccrualLineItem, error)

	AddDeduction(ctx context.Context, tx *gorm.DB, d *model.AccrualDeduction) error
	DeleteDeduction(ctx context.Context, tx *gorm.DB, accrualID, deductionID uuid.UUID) error
	ListDeductions(ctx context.Context, tx *gorm.DB, accrualID uuid.UUID) ([]model.AccrualDeduction, error)

	AddDocument(ctx context.Context, d *model.SupportingDocument) error
	DeleteDocument(ctx context.Context, accrualID, documentID uuid.UUID) error
	ListDocuments(ctx context.Context, accrualID uuid.UUID) ([]model.SupportingDocument, error)
}

type accrualRepo struct{ db *gorm.DB }

func NewAccrualRepository(db *gorm.DB) AccrualRepository { return &accrualRepo{db: db} }

func (r *accrualRepo) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

// tx falls back to the repo's own handle so read paths can share the
// same helpers.
func (r *accrualRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *accrualRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Accrual, error) {
	var a model.Accrual
	err := r.db.WithContext(ctx).
		Preload("LineItems").Preload("Deductions").Preload("Documents").
		First(&a, "id = ?", id).Error
	return &a, err
}

func (r *accrualRepo) FindHeader(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Accrual, error) {
	var a model.Accrual
	err := r.conn(tx).WithContext(ctx).First(&a, "id = ?", id).Error
	return &a, err
}

func (r *accrualRepo) FindByKey(ctx context.Context, contractID uuid.UUID, period, serviceCategory string, routeFilterID uuid.UUID) (*model.Accrual, error) {
	var a model.Accrual
	err := r.db.WithContext(ctx).
		Where("contract_id = ? AND period = ? AND service_category = ? AND route_filter_id = ?",
			contractID, period, serviceCategory, routeFilterID).
		First(&a).Error
	return &a, err
}

func (r *accrualRepo) List(ctx context.Context, contractID uuid.UUID, period string) ([]model.Accrual, error) {
	q := r.db.WithContext(ctx).Model(&model.Accrual{})
	if contractID != uuid.Nil {
		q = q.Where("contract_id = ?", contractID)
	}
	if period != "" {
		q = q.Where("period = ?", period)
	}
	var rows []model.Accrual
	err := q.Order("period DESC, created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *accrualRepo) Create(ctx context.Context, tx *gorm.DB, a *model.Accrual) error {
	return r.conn(tx).WithContext(ctx).Create(a).Error
}

func (r *accrualRepo) Save(ctx context.Context, tx *gorm.DB, a *model.Accrual) error {
	return r.conn(tx).WithContext(ctx).Save(a).Error
}

func (r *accrualRepo) ReplaceLineItems(ctx context.Context, tx *gorm.DB, accrualID uuid.UUID, items []model.AccrualLineItem) error {
	conn := r.conn(tx).WithContext(ctx)
	if err := conn.Where("accrual_id = ?", accrualID).Delete(&model.AccrualLineItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return conn.Create(&items).Error
}

func (r *accrualRepo) ListLineItems(ctx context.Context, tx *gorm.DB, accrualID uuid.UUID) ([]model.AccrualLineItem, error) {
	var items []model.AccrualLineItem
	err := r.conn(tx).WithContext(ctx).
		Where("accrual_id = ?", accrualID).
		Order("trip_date ASC, created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *accrualRepo) AddDeduction(ctx context.Context, tx *gorm.DB, d *model.AccrualDeduction) error {
	return r.conn(tx).WithContext(ctx).Create(d).Error
}

func (r *accrualRepo) DeleteDeduction(ctx context.Context, tx *gorm.DB, accrualID, deductionID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Where("id = ? AND accrual_id = ?", deductionID, accrualID).
		Delete(&model.AccrualDeduction{}).Error
}

func (r *accrualRepo) ListDeductions(ctx context.Context, tx *gorm.DB, accrualID uuid.UUID) ([]model.AccrualDeduction, error) {
	var rows []model.AccrualDeduction
	err := r.conn(tx).WithContext(ctx).Where("accrual_id = ?", accrualID).Order("created_at ASC").Find(&rows).Error
	return rows, err
}

func (r *accrualRepo) AddDocument(ctx context.Context, d *model.SupportingDocument) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *accrualRepo) DeleteDocument(ctx context.Context, accrualID, documentID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND accrual_id = ?", documentID, accrualID).
		Delete(&model.SupportingDocument{}).Error
}

func (r *accrualRepo) ListDocuments(ctx context.Context, accrualID uuid.UUID) ([]model.SupportingDocument, error) {
	var rows []model.SupportingDocument
	err := r.db.WithContext(ctx).Where("accrual_id = ?", accrualID).Order("uploaded_at ASC").Find(&rows).Error
	return rows, err
}

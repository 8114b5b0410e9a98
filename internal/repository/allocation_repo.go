package repository

import (
	"context"
	"time"

	"github.com/AyhanErcan70/SATTUP-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AllocationFilter narrows ListInRange. Zero values mean "no filter".
type AllocationFilter struct {
	RouteID      uuid.UUID
	RealizedOnly bool // quantity > 0
}

type AllocationRepository interface {
	Upsert(ctx context.Context, a *model.Allocation) error
	Delete(ctx context.Context, contractID, routeID uuid.UUID, tripDate time.Time,
		serviceCategory, timeBlock string, lineNumber int) error
	// ListForDay returns allocations for one contract/date/category where
	// the given vehicle or driver appears, in stored order. Rows with
	// quantity == 0 are excluded (placeholders hold no resource).
	ListForDay(ctx context.Context, contractID uuid.UUID, tripDate time.Time, serviceCategory string,
		vehicleID, driverID *uuid.UUID) ([]model.Allocation, error)
	ListInRange(ctx context.Context, contractID uuid.UUID, serviceCategory string,
		from, to time.Time, filter AllocationFilter) ([]model.Allocation, error)
}

type allocationRepo struct{ db *gorm.DB }

func NewAllocationRepository(db *gorm.DB) AllocationRepository { return &allocationRepo{db: db} }

func (r *allocationRepo) Upsert(ctx context.Context, a *model.Allocation) error {
	a.TripDate = model.DateOnly(a.TripDate)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "contract_id"}, {Name: "route_id"}, {Name: "trip_date"},
			{Name: "service_category"}, {Name: "time_block"}, {Name: "line_number"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"vehicle_id", "driver_id", "quantity", "time_text", "note", "updated_at",
		}),
	}).Create(a).Error
}

func (r *allocationRepo) Delete(ctx context.Context, contractID, routeID uuid.UUID, tripDate time.Time,
	serviceCategory, timeBlock string, lineNumber int) error {
	return r.db.WithContext(ctx).
		Where("contract_id = ? AND route_id = ? AND trip_date = ? AND service_category = ? AND time_block = ? AND line_number = ?",
			contractID, routeID, model.DateOnly(tripDate), serviceCategory, timeBlock, lineNumber).
		Delete(&model.Allocation{}).Error
}

func (r *allocationRepo) ListForDay(ctx context.Context, contractID uuid.UUID, tripDate time.Time,
	serviceCategory string, vehicleID, driverID *uuid.UUID) ([]model.Allocation, error) {
	if vehicleID == nil && driverID == nil {
		return nil, nil
	}
	q := r.db.WithContext(ctx).
		Where("contract_id = ? AND trip_date = ? AND service_category = ? AND quantity > 0",
			contractID, model.DateOnly(tripDate), serviceCategory)
	switch {
	case vehicleID != nil && driverID != nil:
		q = q.Where("vehicle_id = ? OR driver_id = ?", *vehicleID, *driverID)
	case vehicleID != nil:
		q = q.Where("vehicle_id = ?", *vehicleID)
	default:
		q = q.Where("driver_id = ?", *driverID)
	}
	var rows []model.Allocation
	err := q.Preload("Route").Find(&rows).Error
	return rows, err
}

func (r *allocationRepo) ListInRange(ctx context.Context, contractID uuid.UUID, serviceCategory string,
	from, to time.Time, filter AllocationFilter) ([]model.Allocation, error) {
	q := r.db.WithContext(ctx).
		Where("contract_id = ? AND service_category = ? AND trip_date BETWEEN ? AND ?",
			contractID, serviceCategory, model.DateOnly(from), model.DateOnly(to))
	if filter.RouteID != uuid.Nil {
		q = q.Where("route_id = ?", filter.RouteID)
	}
	if filter.RealizedOnly {
		q = q.Where("quantity > 0")
	}
	var rows []model.Allocation
	err := q.Preload("Route").
		Order("trip_date ASC, time_block ASC, line_number ASC").
		Find(&rows).Error
	return rows, err
}

package repository

import (
	"context"

	"github.com/AyhanErcan70/SATTUP-sub000/internal/model"

	"gorm.io/gorm"
)

// MasterDataRepository is the read-only view onto the fleet master
// data maintained elsewhere. Daily entry screens use it to populate
// vehicle/driver pickers.
type MasterDataRepository interface {
	ListActiveVehicles(ctx context.Context) ([]model.Vehicle, error)
	ListActiveDrivers(ctx context.Context) ([]model.Driver, error)
}

type masterRepo struct{ db *gorm.DB }

func NewMasterDataRepository(db *gorm.DB) MasterDataRepository { return &masterRepo{db: db} }

func (r *masterRepo) ListActiveVehicles(ctx context.Context) ([]model.Vehicle, error) {
	var vs []model.Vehicle
	err := r.db.WithContext(ctx).Where("active = true").Order("plate ASC").Find(&vs).Error
	return vs, err
}

func (r *masterRepo) ListActiveDrivers(ctx context.Context) ([]model.Driver, error) {
	var ds []model.Driver
	err := r.db.WithContext(ctx).Where("active = true").Order("full_name ASC").Find(&ds).Error
	return ds, err
}

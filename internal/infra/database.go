package infra

import (
	"fmt"

	"github.com/AyhanErcan70/SATTUP-sub000/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs
// AutoMigrate for all tables, then applies the idempotent SQL patches
// AutoMigrate cannot express.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations creates or updates the schema. Also used by
// integration tests against a throwaway database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Customer{},
		&model.Contract{},
		&model.RouteDefinition{},
		&model.Vehicle{},
		&model.Driver{},
		&model.User{},
		&model.PlannedSlot{},
		&model.PlannedTariff{},
		&model.CustomTimeBlock{},
		&model.Tariff{},
		&model.PricingModelChange{},
		&model.Allocation{},
		&model.PeriodLock{},
		&model.Accrual{},
		&model.AccrualLineItem{},
		&model.AccrualDeduction{},
		&model.SupportingDocument{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot fully
// handle. Each statement is guarded so re-running is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Zero-quantity allocations are audit leftovers; the entry
		// screens only scan positive rows, so keep them off the hot path.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_allocations_realized') THEN
		    CREATE INDEX idx_allocations_realized
		        ON allocations (contract_id, trip_date)
		        WHERE quantity > 0;
		  END IF;
		END $$`,
		// Effective-dated tariff lookups walk this ordering on every
		// price resolution.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_tariffs_effective_lookup') THEN
		    CREATE INDEX idx_tariffs_effective_lookup
		        ON tariffs (contract_id, route_id, effective_from DESC);
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/AyhanErcan70/SATTUP-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func seedAllocation(repo *fakeAllocationRepo, contractID, routeID uuid.UUID, day time.Time,
	block string, line int, vehicleID, driverID *uuid.UUID) {
	_ = repo.Upsert(context.Background(), &model.Allocation{
		ContractID:      contractID,
		RouteID:         routeID,
		TripDate:        day,
		ServiceCategory: "STUDENT",
		TimeBlock:       block,
		LineNumber:      line,
		VehicleID:       vehicleID,
		DriverID:        driverID,
		Quantity:        1,
	})
}

func TestFindConflictVehicleOverlap(t *testing.T) {
	alloc := &fakeAllocationRepo{}
	svc := NewConflictService(alloc, &fakePlanningRepo{})

	contractID := uuid.New()
	routeA := uuid.New()
	vehicle := uuid.New()
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	seedAllocation(alloc, contractID, routeA, day, "08:00-09:00", 1, &vehicle, nil)

	conflict, err := svc.FindConflict(context.Background(), ConflictQuery{
		ContractID:      contractID,
		TripDate:        day,
		ServiceCategory: "STUDENT",
		TimeBlock:       "08:30-09:30",
		VehicleID:       &vehicle,
	})
	require.NoError(t, err)
	require.NotNil(t, conflict)
	assert.Equal(t, routeA, conflict.Allocation.RouteID)
	assert.Equal(t, "vehicle", conflict.Resource)

	// Touching windows never conflict (half-open intervals).
	conflict, err = svc.FindConflict(context.Background(), ConflictQuery{
		ContractID:      contractID,
		TripDate:        day,
		ServiceCategory: "STUDENT",
		TimeBlock:       "09:00-10:00",
		VehicleID:       &vehicle,
	})
	require.NoError(t, err)
	assert.Nil(t, conflict)

	// A different vehicle is free to take the same window.
	other := uuid.New()
	conflict, err = svc.FindConflict(context.Background(), ConflictQuery{
		ContractID:      contractID,
		TripDate:        day,
		ServiceCategory: "STUDENT",
		TimeBlock:       "08:30-09:30",
		VehicleID:       &other,
	})
	require.NoError(t, err)
	assert.Nil(t, conflict)
}

func TestFindConflictNoResourcesSkipsCheck(t *testing.T) {
	svc := NewConflictService(&fakeAllocationRepo{}, &fakePlanningRepo{})

	conflict, err := svc.FindConflict(context.Background(), ConflictQuery{
		ContractID:      uuid.New(),
		TripDate:        time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		ServiceCategory: "STUDENT",
		TimeBlock:       "08:00",
	})
	require.NoError(t, err)
	assert.Nil(t, conflict)
}

func TestFindConflictUnparseableCandidateIsExempt(t *testing.T) {
	alloc := &fakeAllocationRepo{}
	svc := NewConflictService(alloc, &fakePlanningRepo{})

	contractID := uuid.New()
	vehicle := uuid.New()
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	seedAllocation(alloc, contractID, uuid.New(), day, "08:00-09:00", 1, &vehicle, nil)

	conflict, err := svc.FindConflict(context.Background(), ConflictQuery{
		ContractID:      contractID,
		TripDate:        day,
		ServiceCategory: "STUDENT",
		TimeBlock:       "MORNING RUN",
		VehicleID:       &vehicle,
	})
	require.NoError(t, err)
	assert.Nil(t, conflict)
}

func TestFindConflictExcludesOwnRow(t *testing.T) {
	alloc := &fakeAllocationRepo{}
	svc := NewConflictService(alloc, &fakePlanningRepo{})

	contractID := uuid.New()
	routeID := uuid.New()
	driver := uuid.New()
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	seedAllocation(alloc, contractID, routeID, day, "08:00-09:00", 2, nil, &driver)

	// Re-editing the identical row must not conflict with itself.
	conflict, err := svc.FindConflict(context.Background(), ConflictQuery{
		ContractID:      contractID,
		TripDate:        day,
		ServiceCategory: "STUDENT",
		TimeBlock:       "08:00-09:00",
		DriverID:        &driver,
		Excluding:       &AllocationRef{RouteID: routeID, TimeBlock: "08:00-09:00", LineNumber: 2},
	})
	require.NoError(t, err)
	assert.Nil(t, conflict)
}

func TestFindConflictDeterministicWinner(t *testing.T) {
	alloc := &fakeAllocationRepo{}
	svc := NewConflictService(alloc, &fakePlanningRepo{})

	contractID := uuid.New()
	routeEarly, routeLate := uuid.New(), uuid.New()
	vehicle := uuid.New()
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	// Seed the later window first so storage order disagrees with the
	// expected winner.
	seedAllocation(alloc, contractID, routeLate, day, "09:00-11:00", 1, &vehicle, nil)
	seedAllocation(alloc, contractID, routeEarly, day, "08:00-10:00", 1, &vehicle, nil)

	conflict, err := svc.FindConflict(context.Background(), ConflictQuery{
		ContractID:      contractID,
		TripDate:        day,
		ServiceCategory: "STUDENT",
		TimeBlock:       "08:30-12:00",
		VehicleID:       &vehicle,
	})
	require.NoError(t, err)
	require.NotNil(t, conflict)
	assert.Equal(t, routeEarly, conflict.Allocation.RouteID)
	assert.Equal(t, 8*60, conflict.Window.Start)

	// Same start minute: the lower line number wins.
	seedAllocation(alloc, contractID, routeLate, day, "08:00-10:00", 3, &vehicle, nil)
	conflict, err = svc.FindConflict(context.Background(), ConflictQuery{
		ContractID:      contractID,
		TripDate:        day,
		ServiceCategory: "STUDENT",
		TimeBlock:       "08:30-12:00",
		VehicleID:       &vehicle,
	})
	require.NoError(t, err)
	require.NotNil(t, conflict)
	assert.Equal(t, 1, conflict.Allocation.LineNumber)
}

func TestFindConflictResolvesCustomBlocks(t *testing.T) {
	alloc := &fakeAllocationRepo{}
	planning := &fakePlanningRepo{}
	svc := NewConflictService(alloc, planning)

	contractID := uuid.New()
	vehicle := uuid.New()
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	_ = planning.UpsertCustomBlock(context.Background(), &model.CustomTimeBlock{
		ContractID:      contractID,
		Month:           "2024-03",
		ServiceCategory: "STUDENT",
		Code:            "C1",
		TimeText:        "06:45-07:45",
	})
	seedAllocation(alloc, contractID, uuid.New(), day, "C1", 1, &vehicle, nil)

	conflict, err := svc.FindConflict(context.Background(), ConflictQuery{
		ContractID:      contractID,
		TripDate:        day,
		ServiceCategory: "STUDENT",
		TimeBlock:       "07:00-07:30",
		VehicleID:       &vehicle,
	})
	require.NoError(t, err)
	require.NotNil(t, conflict)
	assert.Equal(t, "C1", conflict.Allocation.TimeBlock)
	assert.Equal(t, 6*60+45, conflict.Window.Start)
}

func TestFindConflictMidnightWrap(t *testing.T) {
	alloc := &fakeAllocationRepo{}
	svc := NewConflictService(alloc, &fakePlanningRepo{})

	contractID := uuid.New()
	driver := uuid.New()
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	seedAllocation(alloc, contractID, uuid.New(), day, "23:30-00:30", 1, nil, &driver)

	conflict, err := svc.FindConflict(context.Background(), ConflictQuery{
		ContractID:      contractID,
		TripDate:        day,
		ServiceCategory: "STUDENT",
		TimeBlock:       "00:00-01:00",
		DriverID:        &driver,
	})
	require.NoError(t, err)
	require.NotNil(t, conflict)
	assert.Equal(t, "driver", conflict.Resource)
}

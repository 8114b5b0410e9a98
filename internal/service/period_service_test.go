package service

import (
	"context"
	"testing"

	"github.com/AyhanErcan70/SATTUP-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPeriodFixture() (PeriodLockService, *fakePlanningRepo, *fakeAllocationRepo) {
	planning := &fakePlanningRepo{}
	allocations := &fakeAllocationRepo{}
	svc := NewPeriodLockService(newFakePeriodLockRepo(), planning, allocations)
	return svc, planning, allocations
}

func fillMonth(t *testing.T, allocations *fakeAllocationRepo, contractID, routeID uuid.UUID,
	month, block string, skipDays ...int) {
	t.Helper()
	skip := map[int]bool{}
	for _, d := range skipDays {
		skip[d] = true
	}
	first, last, err := model.MonthRange(month)
	require.NoError(t, err)
	for day := 1; day <= last.Day(); day++ {
		if skip[day] {
			continue
		}
		require.NoError(t, allocations.Upsert(context.Background(), &model.Allocation{
			ContractID:      contractID,
			RouteID:         routeID,
			TripDate:        first.AddDate(0, 0, day-1),
			ServiceCategory: "STUDENT",
			TimeBlock:       block,
			LineNumber:      1,
			Quantity:        1,
		}))
	}
}

func TestLockDeclinedWhenDaysMissing(t *testing.T) {
	svc, planning, allocations := newPeriodFixture()

	contractID, routeID := uuid.New(), uuid.New()
	scope := PeriodScope{ContractID: contractID, Month: "2024-04", ServiceCategory: "STUDENT"}

	require.NoError(t, planning.UpsertSlot(context.Background(), &model.PlannedSlot{
		ContractID: contractID, RouteID: routeID, Month: "2024-04",
		ServiceCategory: "STUDENT", TimeBlock: "08:00",
		Route: model.RouteDefinition{ID: routeID, Name: "Hat 1"},
	}))

	// April has 30 days; leave the 12th and 25th empty.
	fillMonth(t, allocations, contractID, routeID, "2024-04", "08:00", 12, 25)

	result, err := svc.Lock(context.Background(), scope, "supervisor1")
	require.NoError(t, err)
	assert.False(t, result.Locked)
	require.Len(t, result.Missing, 2)
	assert.Equal(t, 12, result.Missing[0].Date.Day())
	assert.Equal(t, 25, result.Missing[1].Date.Day())
	assert.Equal(t, "Hat 1", result.Missing[0].RouteName)

	locked, err := svc.IsLocked(context.Background(), scope)
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestLockSucceedsWhenComplete(t *testing.T) {
	svc, planning, allocations := newPeriodFixture()

	contractID, routeID := uuid.New(), uuid.New()
	scope := PeriodScope{ContractID: contractID, Month: "2024-04", ServiceCategory: "STUDENT"}

	require.NoError(t, planning.UpsertSlot(context.Background(), &model.PlannedSlot{
		ContractID: contractID, RouteID: routeID, Month: "2024-04",
		ServiceCategory: "STUDENT", TimeBlock: "08:00",
	}))
	fillMonth(t, allocations, contractID, routeID, "2024-04", "08:00")

	result, err := svc.Lock(context.Background(), scope, "supervisor1")
	require.NoError(t, err)
	assert.True(t, result.Locked)
	assert.Empty(t, result.Missing)

	locked, err := svc.IsLocked(context.Background(), scope)
	require.NoError(t, err)
	assert.True(t, locked)

	status, err := svc.Status(context.Background(), scope)
	require.NoError(t, err)
	require.NotNil(t, status.LockedBy)
	assert.Equal(t, "supervisor1", *status.LockedBy)
}

func TestZeroQuantityRowStillCountsAsPresent(t *testing.T) {
	svc, planning, allocations := newPeriodFixture()

	contractID, routeID := uuid.New(), uuid.New()
	scope := PeriodScope{ContractID: contractID, Month: "2024-04", ServiceCategory: "STUDENT"}

	require.NoError(t, planning.UpsertSlot(context.Background(), &model.PlannedSlot{
		ContractID: contractID, RouteID: routeID, Month: "2024-04",
		ServiceCategory: "STUDENT", TimeBlock: "08:00",
	}))
	first, last, err := model.MonthRange("2024-04")
	require.NoError(t, err)
	for day := 1; day <= last.Day(); day++ {
		require.NoError(t, allocations.Upsert(context.Background(), &model.Allocation{
			ContractID: contractID, RouteID: routeID,
			TripDate: first.AddDate(0, 0, day-1), ServiceCategory: "STUDENT",
			TimeBlock: "08:00", LineNumber: 1, Quantity: 0,
		}))
	}

	result, err := svc.Lock(context.Background(), scope, "supervisor1")
	require.NoError(t, err)
	assert.True(t, result.Locked)
}

func TestLockEmptyPlanIsTriviallyComplete(t *testing.T) {
	svc, _, _ := newPeriodFixture()
	scope := PeriodScope{ContractID: uuid.New(), Month: "2024-04", ServiceCategory: "STUDENT"}

	result, err := svc.Lock(context.Background(), scope, "supervisor1")
	require.NoError(t, err)
	assert.True(t, result.Locked)
}

func TestMissingReportIsCapped(t *testing.T) {
	svc, planning, _ := newPeriodFixture()

	contractID, routeID := uuid.New(), uuid.New()
	require.NoError(t, planning.UpsertSlot(context.Background(), &model.PlannedSlot{
		ContractID: contractID, RouteID: routeID, Month: "2024-04",
		ServiceCategory: "STUDENT", TimeBlock: "08:00",
	}))

	// Nothing allocated at all: 30 days missing, report capped at 20.
	result, err := svc.Lock(context.Background(),
		PeriodScope{ContractID: contractID, Month: "2024-04", ServiceCategory: "STUDENT"}, "supervisor1")
	require.NoError(t, err)
	assert.False(t, result.Locked)
	assert.Len(t, result.Missing, maxMissingReport)
}

func TestUnlockRequiresReasonAndLockedState(t *testing.T) {
	svc, _, _ := newPeriodFixture()
	scope := PeriodScope{ContractID: uuid.New(), Month: "2024-04", ServiceCategory: "STUDENT"}

	assert.Error(t, svc.Unlock(context.Background(), scope, "admin1", ""))
	assert.Error(t, svc.Unlock(context.Background(), scope, "admin1", "late correction"))

	_, err := svc.Lock(context.Background(), scope, "supervisor1")
	require.NoError(t, err)

	require.NoError(t, svc.Unlock(context.Background(), scope, "admin1", "late correction"))

	locked, err := svc.IsLocked(context.Background(), scope)
	require.NoError(t, err)
	assert.False(t, locked)

	status, err := svc.Status(context.Background(), scope)
	require.NoError(t, err)
	require.NotNil(t, status.UnlockReason)
	assert.Equal(t, "late correction", *status.UnlockReason)

	// Unlocking an already unlocked scope fails.
	assert.Error(t, svc.Unlock(context.Background(), scope, "admin1", "again"))
}

func TestLockUnlockCycle(t *testing.T) {
	svc, _, _ := newPeriodFixture()
	scope := PeriodScope{ContractID: uuid.New(), Month: "2024-05", ServiceCategory: "STAFF"}

	for i := 0; i < 3; i++ {
		result, err := svc.Lock(context.Background(), scope, "supervisor1")
		require.NoError(t, err)
		require.True(t, result.Locked)
		require.NoError(t, svc.Unlock(context.Background(), scope, "admin1", "cycle"))
	}
	locked, err := svc.IsLocked(context.Background(), scope)
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestStatusNeverLockedScope(t *testing.T) {
	svc, _, _ := newPeriodFixture()
	scope := PeriodScope{ContractID: uuid.New(), Month: "2024-04", ServiceCategory: "STUDENT"}

	status, err := svc.Status(context.Background(), scope)
	require.NoError(t, err)
	assert.False(t, status.Locked)
	assert.Nil(t, status.LockedAt)
	assert.Equal(t, scope.Month, status.Month)
}

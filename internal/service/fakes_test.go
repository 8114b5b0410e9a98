package service

import (
	"context"
	"sort"
	"time"

	"github.com/AyhanErcan70/SATTUP-sub000/internal/model"
	"github.com/AyhanErcan70/SATTUP-sub000/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes. They mirror the GORM implementations'
// filtering and ordering so service tests exercise the same contracts.

// ── planning ─────────────────────────────────────────────────────────

type fakePlanningRepo struct {
	slots   []model.PlannedSlot
	tariffs []model.PlannedTariff
	blocks  []model.CustomTimeBlock
}

func (f *fakePlanningRepo) UpsertSlot(_ context.Context, s *model.PlannedSlot) error {
	for i, ex := range f.slots {
		if ex.ContractID == s.ContractID && ex.RouteID == s.RouteID && ex.Month == s.Month &&
			ex.ServiceCategory == s.ServiceCategory && ex.TimeBlock == s.TimeBlock {
			route := ex.Route
			f.slots[i] = *s
			f.slots[i].ID = ex.ID
			f.slots[i].Route = route
			return nil
		}
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	f.slots = append(f.slots, *s)
	return nil
}

func (f *fakePlanningRepo) DeleteSlot(_ context.Context, contractID, routeID uuid.UUID, month, serviceCategory, timeBlock string) error {
	out := f.slots[:0]
	for _, s := range f.slots {
		if s.ContractID == contractID && s.RouteID == routeID && s.Month == month &&
			s.ServiceCategory == serviceCategory && s.TimeBlock == timeBlock {
			continue
		}
		out = append(out, s)
	}
	f.slots = out
	return nil
}

func (f *fakePlanningRepo) ListSlots(_ context.Context, contractID uuid.UUID, month, serviceCategory string) ([]model.PlannedSlot, error) {
	var out []model.PlannedSlot
	for _, s := range f.slots {
		if s.ContractID != contractID || s.Month != month {
			continue
		}
		if serviceCategory != "" && s.ServiceCategory != serviceCategory {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TimeBlock < out[j].TimeBlock })
	return out, nil
}

func (f *fakePlanningRepo) MonthsWithSlots(_ context.Context, contractID uuid.UUID) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, s := range f.slots {
		if s.ContractID == contractID && !seen[s.Month] {
			seen[s.Month] = true
			out = append(out, s.Month)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (f *fakePlanningRepo) UpsertTariff(_ context.Context, t *model.PlannedTariff) error {
	for i, ex := range f.tariffs {
		if ex.ContractID == t.ContractID && ex.RouteID == t.RouteID && ex.Month == t.Month &&
			ex.ServiceCategory == t.ServiceCategory && ex.TimeBlock == t.TimeBlock {
			f.tariffs[i].UnitPrice = t.UnitPrice
			return nil
		}
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	f.tariffs = append(f.tariffs, *t)
	return nil
}

func (f *fakePlanningRepo) ListTariffs(_ context.Context, contractID uuid.UUID, month, serviceCategory string) ([]model.PlannedTariff, error) {
	var out []model.PlannedTariff
	for _, t := range f.tariffs {
		if t.ContractID != contractID || t.Month != month {
			continue
		}
		if serviceCategory != "" && t.ServiceCategory != serviceCategory {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TimeBlock < out[j].TimeBlock })
	return out, nil
}

func (f *fakePlanningRepo) UpsertCustomBlock(_ context.Context, b *model.CustomTimeBlock) error {
	for i, ex := range f.blocks {
		if ex.ContractID == b.ContractID && ex.Month == b.Month &&
			ex.ServiceCategory == b.ServiceCategory && ex.Code == b.Code {
			f.blocks[i].TimeText = b.TimeText
			return nil
		}
	}
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	f.blocks = append(f.blocks, *b)
	return nil
}

func (f *fakePlanningRepo) ListCustomBlocks(_ context.Context, contractID uuid.UUID, month, serviceCategory string) ([]model.CustomTimeBlock, error) {
	var out []model.CustomTimeBlock
	for _, b := range f.blocks {
		if b.ContractID != contractID || b.Month != month {
			continue
		}
		if serviceCategory != "" && b.ServiceCategory != serviceCategory {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// ── allocations ──────────────────────────────────────────────────────

type fakeAllocationRepo struct {
	rows []model.Allocation
}

func allocationKeyMatch(a, b model.Allocation) bool {
	return a.ContractID == b.ContractID && a.RouteID == b.RouteID &&
		a.TripDate.Equal(b.TripDate) && a.ServiceCategory == b.ServiceCategory &&
		a.TimeBlock == b.TimeBlock && a.LineNumber == b.LineNumber
}

func (f *fakeAllocationRepo) Upsert(_ context.Context, a *model.Allocation) error {
	a.TripDate = model.DateOnly(a.TripDate)
	for i, ex := range f.rows {
		if allocationKeyMatch(ex, *a) {
			route := ex.Route
			f.rows[i] = *a
			f.rows[i].ID = ex.ID
			f.rows[i].Route = route
			return nil
		}
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	f.rows = append(f.rows, *a)
	return nil
}

func (f *fakeAllocationRepo) Delete(_ context.Context, contractID, routeID uuid.UUID, tripDate time.Time,
	serviceCategory, timeBlock string, lineNumber int) error {
	key := model.Allocation{
		ContractID: contractID, RouteID: routeID, TripDate: model.DateOnly(tripDate),
		ServiceCategory: serviceCategory, TimeBlock: timeBlock, LineNumber: lineNumber,
	}
	out := f.rows[:0]
	for _, r := range f.rows {
		if allocationKeyMatch(r, key) {
			continue
		}
		out = append(out, r)
	}
	f.rows = out
	return nil
}

func (f *fakeAllocationRepo) ListForDay(_ context.Context, contractID uuid.UUID, tripDate time.Time,
	serviceCategory string, vehicleID, driverID *uuid.UUID) ([]model.Allocation, error) {
	if vehicleID == nil && driverID == nil {
		return nil, nil
	}
	day := model.DateOnly(tripDate)
	var out []model.Allocation
	for _, r := range f.rows {
		if r.ContractID != contractID || !r.TripDate.Equal(day) ||
			r.ServiceCategory != serviceCategory || r.Quantity <= 0 {
			continue
		}
		vehicleHit := vehicleID != nil && r.VehicleID != nil && *r.VehicleID == *vehicleID
		driverHit := driverID != nil && r.DriverID != nil && *r.DriverID == *driverID
		if vehicleHit || driverHit {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAllocationRepo) ListInRange(_ context.Context, contractID uuid.UUID, serviceCategory string,
	from, to time.Time, filter repository.AllocationFilter) ([]model.Allocation, error) {
	lo, hi := model.DateOnly(from), model.DateOnly(to)
	var out []model.Allocation
	for _, r := range f.rows {
		if r.ContractID != contractID || r.ServiceCategory != serviceCategory {
			continue
		}
		if r.TripDate.Before(lo) || r.TripDate.After(hi) {
			continue
		}
		if filter.RouteID != uuid.Nil && r.RouteID != filter.RouteID {
			continue
		}
		if filter.RealizedOnly && r.Quantity <= 0 {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.TripDate.Equal(b.TripDate) {
			return a.TripDate.Before(b.TripDate)
		}
		if a.TimeBlock != b.TimeBlock {
			return a.TimeBlock < b.TimeBlock
		}
		return a.LineNumber < b.LineNumber
	})
	return out, nil
}

// ── period locks ─────────────────────────────────────────────────────

type fakePeriodLockRepo struct {
	locks map[string]*model.PeriodLock
}

func newFakePeriodLockRepo() *fakePeriodLockRepo {
	return &fakePeriodLockRepo{locks: map[string]*model.PeriodLock{}}
}

func lockKey(contractID uuid.UUID, month, serviceCategory string) string {
	return contractID.String() + "|" + month + "|" + serviceCategory
}

func (f *fakePeriodLockRepo) Find(_ context.Context, contractID uuid.UUID, month, serviceCategory string) (*model.PeriodLock, error) {
	l, ok := f.locks[lockKey(contractID, month, serviceCategory)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *l
	return &cp, nil
}

func (f *fakePeriodLockRepo) Save(_ context.Context, l *model.PeriodLock) error {
	cp := *l
	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}
	f.locks[lockKey(l.ContractID, l.Month, l.ServiceCategory)] = &cp
	return nil
}

// ── tariffs ──────────────────────────────────────────────────────────

type fakeTariffRepo struct {
	tariffs []model.Tariff
	changes []model.PricingModelChange
}

func (f *fakeTariffRepo) Upsert(_ context.Context, t *model.Tariff) error {
	for i, ex := range f.tariffs {
		if ex.ContractID == t.ContractID && ex.RouteID == t.RouteID &&
			ex.ServiceCategory == t.ServiceCategory && ex.PricingCategory == t.PricingCategory &&
			ex.EffectiveFrom.Equal(t.EffectiveFrom) {
			f.tariffs[i].Price = t.Price
			f.tariffs[i].SubcontractorPrice = t.SubcontractorPrice
			return nil
		}
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	f.tariffs = append(f.tariffs, *t)
	return nil
}

func (f *fakeTariffRepo) FindLatest(_ context.Context, contractID, routeID uuid.UUID, serviceCategory string,
	pricingCategory model.PricingCategory, tripDate time.Time) (*model.Tariff, error) {
	day := model.DateOnly(tripDate)
	var best *model.Tariff
	for i := range f.tariffs {
		t := &f.tariffs[i]
		if t.ContractID != contractID || t.RouteID != routeID ||
			t.ServiceCategory != serviceCategory || t.PricingCategory != pricingCategory ||
			t.PricingCategory == "" || t.EffectiveFrom.After(day) {
			continue
		}
		if best == nil || t.EffectiveFrom.After(best.EffectiveFrom) {
			best = t
		}
	}
	if best == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *best
	return &cp, nil
}

func (f *fakeTariffRepo) ListHistory(_ context.Context, contractID, routeID uuid.UUID, serviceCategory string) ([]model.Tariff, error) {
	var out []model.Tariff
	for _, t := range f.tariffs {
		if t.ContractID != contractID {
			continue
		}
		if routeID != uuid.Nil && t.RouteID != routeID {
			continue
		}
		if serviceCategory != "" && t.ServiceCategory != serviceCategory {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EffectiveFrom.After(out[j].EffectiveFrom) })
	return out, nil
}

func (f *fakeTariffRepo) FindLatestModelChange(_ context.Context, contractID uuid.UUID, tripDate time.Time) (*model.PricingModelChange, error) {
	day := model.DateOnly(tripDate)
	var best *model.PricingModelChange
	for i := range f.changes {
		c := &f.changes[i]
		if c.ContractID != contractID || c.EffectiveFrom.After(day) {
			continue
		}
		if best == nil || c.EffectiveFrom.After(best.EffectiveFrom) {
			best = c
		}
	}
	if best == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *best
	return &cp, nil
}

func (f *fakeTariffRepo) CreateModelChange(_ context.Context, c *model.PricingModelChange) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	f.changes = append(f.changes, *c)
	return nil
}

// ── contracts ────────────────────────────────────────────────────────

type fakeContractRepo struct {
	contracts map[uuid.UUID]*model.Contract
	routes    map[uuid.UUID]*model.RouteDefinition
}

func newFakeContractRepo() *fakeContractRepo {
	return &fakeContractRepo{
		contracts: map[uuid.UUID]*model.Contract{},
		routes:    map[uuid.UUID]*model.RouteDefinition{},
	}
}

func (f *fakeContractRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Contract, error) {
	c, ok := f.contracts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (f *fakeContractRepo) ListActive(_ context.Context) ([]model.Contract, error) {
	var out []model.Contract
	for _, c := range f.contracts {
		if c.Active {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeContractRepo) ListRoutes(_ context.Context, contractID uuid.UUID, serviceCategory string) ([]model.RouteDefinition, error) {
	var out []model.RouteDefinition
	for _, r := range f.routes {
		if r.ContractID != contractID || !r.Active {
			continue
		}
		if serviceCategory != "" && r.ServiceCategory != serviceCategory {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeContractRepo) FindRouteByID(_ context.Context, id uuid.UUID) (*model.RouteDefinition, error) {
	r, ok := f.routes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r, nil
}

// ── accruals ─────────────────────────────────────────────────────────

// accrualState is one version of the accrual tables. The fake keeps a
// committed version plus, while a transaction runs, a pending copy, so
// it reproduces READ COMMITTED: reads on a nil handle never see another
// transaction's uncommitted writes, reads on the tx handle see its own.
type accrualState struct {
	headers    map[uuid.UUID]*model.Accrual
	items      map[uuid.UUID][]model.AccrualLineItem
	deductions map[uuid.UUID][]model.AccrualDeduction
	documents  map[uuid.UUID][]model.SupportingDocument
}

func newAccrualState() *accrualState {
	return &accrualState{
		headers:    map[uuid.UUID]*model.Accrual{},
		items:      map[uuid.UUID][]model.AccrualLineItem{},
		deductions: map[uuid.UUID][]model.AccrualDeduction{},
		documents:  map[uuid.UUID][]model.SupportingDocument{},
	}
}

func (s *accrualState) clone() *accrualState {
	cp := newAccrualState()
	for id, h := range s.headers {
		hc := *h
		cp.headers[id] = &hc
	}
	for id, rows := range s.items {
		cp.items[id] = append([]model.AccrualLineItem(nil), rows...)
	}
	for id, rows := range s.deductions {
		cp.deductions[id] = append([]model.AccrualDeduction(nil), rows...)
	}
	for id, rows := range s.documents {
		cp.documents[id] = append([]model.SupportingDocument(nil), rows...)
	}
	return cp
}

type fakeAccrualRepo struct {
	committed *accrualState
	pending   *accrualState
	txHandle  *gorm.DB
}

func newFakeAccrualRepo() *fakeAccrualRepo {
	return &fakeAccrualRepo{committed: newAccrualState()}
}

func (f *fakeAccrualRepo) InTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	f.pending = f.committed.clone()
	f.txHandle = &gorm.DB{} // identity token only, never dereferenced
	err := fn(f.txHandle)
	if err == nil {
		f.committed = f.pending
	}
	f.pending, f.txHandle = nil, nil
	return err
}

func (f *fakeAccrualRepo) state(tx *gorm.DB) *accrualState {
	if tx != nil && tx == f.txHandle {
		return f.pending
	}
	return f.committed
}

func (f *fakeAccrualRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Accrual, error) {
	st := f.committed
	h, ok := st.headers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *h
	cp.LineItems = append([]model.AccrualLineItem(nil), st.items[id]...)
	cp.Deductions = append([]model.AccrualDeduction(nil), st.deductions[id]...)
	cp.Documents = append([]model.SupportingDocument(nil), st.documents[id]...)
	return &cp, nil
}

func (f *fakeAccrualRepo) FindHeader(_ context.Context, tx *gorm.DB, id uuid.UUID) (*model.Accrual, error) {
	h, ok := f.state(tx).headers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *h
	return &cp, nil
}

func (f *fakeAccrualRepo) FindByKey(_ context.Context, contractID uuid.UUID, period, serviceCategory string, routeFilterID uuid.UUID) (*model.Accrual, error) {
	for _, h := range f.committed.headers {
		if h.ContractID == contractID && h.Period == period &&
			h.ServiceCategory == serviceCategory && h.RouteFilterID == routeFilterID {
			cp := *h
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAccrualRepo) List(_ context.Context, contractID uuid.UUID, period string) ([]model.Accrual, error) {
	var out []model.Accrual
	for _, h := range f.committed.headers {
		if contractID != uuid.Nil && h.ContractID != contractID {
			continue
		}
		if period != "" && h.Period != period {
			continue
		}
		out = append(out, *h)
	}
	return out, nil
}

func (f *fakeAccrualRepo) Create(_ context.Context, tx *gorm.DB, a *model.Accrual) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	cp := *a
	f.state(tx).headers[a.ID] = &cp
	return nil
}

func (f *fakeAccrualRepo) Save(_ context.Context, tx *gorm.DB, a *model.Accrual) error {
	cp := *a
	f.state(tx).headers[a.ID] = &cp
	return nil
}

func (f *fakeAccrualRepo) ReplaceLineItems(_ context.Context, tx *gorm.DB, accrualID uuid.UUID, items []model.AccrualLineItem) error {
	cp := make([]model.AccrualLineItem, len(items))
	copy(cp, items)
	for i := range cp {
		if cp[i].ID == uuid.Nil {
			cp[i].ID = uuid.New()
		}
	}
	f.state(tx).items[accrualID] = cp
	return nil
}

func (f *fakeAccrualRepo) ListLineItems(_ context.Context, tx *gorm.DB, accrualID uuid.UUID) ([]model.AccrualLineItem, error) {
	return append([]model.AccrualLineItem(nil), f.state(tx).items[accrualID]...), nil
}

func (f *fakeAccrualRepo) AddDeduction(_ context.Context, tx *gorm.DB, d *model.AccrualDeduction) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	st := f.state(tx)
	st.deductions[d.AccrualID] = append(st.deductions[d.AccrualID], *d)
	return nil
}

func (f *fakeAccrualRepo) DeleteDeduction(_ context.Context, tx *gorm.DB, accrualID, deductionID uuid.UUID) error {
	st := f.state(tx)
	rows := st.deductions[accrualID]
	out := make([]model.AccrualDeduction, 0, len(rows))
	for _, d := range rows {
		if d.ID == deductionID {
			continue
		}
		out = append(out, d)
	}
	st.deductions[accrualID] = out
	return nil
}

func (f *fakeAccrualRepo) ListDeductions(_ context.Context, tx *gorm.DB, accrualID uuid.UUID) ([]model.AccrualDeduction, error) {
	return append([]model.AccrualDeduction(nil), f.state(tx).deductions[accrualID]...), nil
}

func (f *fakeAccrualRepo) AddDocument(_ context.Context, d *model.SupportingDocument) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	f.committed.documents[d.AccrualID] = append(f.committed.documents[d.AccrualID], *d)
	return nil
}

func (f *fakeAccrualRepo) DeleteDocument(_ context.Context, accrualID, documentID uuid.UUID) error {
	rows := f.committed.documents[accrualID]
	out := make([]model.SupportingDocument, 0, len(rows))
	for _, d := range rows {
		if d.ID == documentID {
			continue
		}
		out = append(out, d)
	}
	f.committed.documents[accrualID] = out
	return nil
}

func (f *fakeAccrualRepo) ListDocuments(_ context.Context, accrualID uuid.UUID) ([]model.SupportingDocument, error) {
	return append([]model.SupportingDocument(nil), f.committed.documents[accrualID]...), nil
}

// ── users ────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo { return &fakeUserRepo{users: map[uuid.UUID]*model.User{}} }

func (f *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username && u.Active {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

package services

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"equipment-dashboard/internal/entities"
	apperrors "equipment-dashboard/pkg/errors"
	"equipment-dashboard/pkg/types"
)

// fakeTx runs fn without a transaction. Tests that need rollback semantics assert
// that nothing was written before the failing step instead.
type fakeTx struct{ runs int }

func (f *fakeTx) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	f.runs++
	return fn(nil)
}

type fakeActivityRepo struct {
	mu        sync.Mutex
	entries   []entities.ActivityLogEntry
	err       error
	recentErr error
}

func (f *fakeActivityRepo) CreateEntry(ctx context.Context, tx pgx.Tx, entry entities.ActivityLogEntry) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	entry.ID = uint64(len(f.entries) + 1)
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeActivityRepo) GetEntries(ctx context.Context, filter types.Filter) ([]entities.ActivityLogEntry, uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.entries, uint64(len(f.entries)), nil
}

func (f *fakeActivityRepo) GetRecent(ctx context.Context, limit uint64) ([]entities.ActivityLogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.recentErr != nil {
		return nil, f.recentErr
	}
	if uint64(len(f.entries)) > limit {
		return f.entries[:limit], nil
	}
	return f.entries, nil
}

type fakeEquipmentRepo struct {
	rows       map[uint64]entities.Equipment
	usage      []entities.EquipmentUsage
	maintained map[uint64]time.Time
	nextID     uint64
	creates    int
}

func newFakeEquipmentRepo(seed ...entities.Equipment) *fakeEquipmentRepo {
	f := &fakeEquipmentRepo{rows: map[uint64]entities.Equipment{}, maintained: map[uint64]time.Time{}}
	for _, e := range seed {
		f.rows[e.ID] = e
		if e.ID > f.nextID {
			f.nextID = e.ID
		}
	}
	return f
}

func (f *fakeEquipmentRepo) GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error) {
	out := make([]entities.Equipment, 0, len(f.rows))
	for _, e := range f.rows {
		out = append(out, e)
	}
	return out, uint64(len(out)), nil
}

func (f *fakeEquipmentRepo) FindEquipment(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Equipment, error) {
	e, ok := f.rows[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &e, nil
}

func (f *fakeEquipmentRepo) FindBySerialNumber(ctx context.Context, tx pgx.Tx, serial string) (*entities.Equipment, error) {
	for _, e := range f.rows {
		if e.SerialNumber == serial {
			found := e
			return &found, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeEquipmentRepo) CreateEquipment(ctx context.Context, tx pgx.Tx, equipment entities.Equipment) (uint64, error) {
	f.nextID++
	f.creates++
	equipment.ID = f.nextID
	f.rows[equipment.ID] = equipment
	return equipment.ID, nil
}

func (f *fakeEquipmentRepo) UpdateEquipment(ctx context.Context, tx pgx.Tx, equipment entities.Equipment) error {
	if _, ok := f.rows[equipment.ID]; !ok {
		return apperrors.ErrNotFound
	}
	f.rows[equipment.ID] = equipment
	return nil
}

func (f *fakeEquipmentRepo) DeleteEquipment(ctx context.Context, tx pgx.Tx, id uint64) error {
	if _, ok := f.rows[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeEquipmentRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id uint64, status entities.EquipmentStatus, userID uint64) error {
	e, ok := f.rows[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	e.Status = status
	f.rows[id] = e
	return nil
}

func (f *fakeEquipmentRepo) MarkMaintained(ctx context.Context, tx pgx.Tx, id uint64, date time.Time, userID uint64) error {
	e, ok := f.rows[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	e.Status = entities.EquipmentAvailable
	f.rows[id] = e
	f.maintained[id] = date
	return nil
}

func (f *fakeEquipmentRepo) CreateUsage(ctx context.Context, tx pgx.Tx, usage entities.EquipmentUsage) (uint64, error) {
	f.usage = append(f.usage, usage)
	return uint64(len(f.usage)), nil
}

type fakeInventoryRepo struct {
	items        map[uint64]entities.InventoryItem
	transactions []entities.InventoryTransaction
	nextID       uint64
}

func newFakeInventoryRepo(seed ...entities.InventoryItem) *fakeInventoryRepo {
	f := &fakeInventoryRepo{items: map[uint64]entities.InventoryItem{}}
	for _, i := range seed {
		f.items[i.ID] = i
		if i.ID > f.nextID {
			f.nextID = i.ID
		}
	}
	return f
}

func (f *fakeInventoryRepo) GetItems(ctx context.Context, filter types.Filter) ([]entities.InventoryItem, uint64, error) {
	out := make([]entities.InventoryItem, 0, len(f.items))
	for _, i := range f.items {
		out = append(out, i)
	}
	return out, uint64(len(out)), nil
}

func (f *fakeInventoryRepo) FindItem(ctx context.Context, tx pgx.Tx, id uint64) (*entities.InventoryItem, error) {
	i, ok := f.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &i, nil
}

func (f *fakeInventoryRepo) FindItemForUpdate(ctx context.Context, tx pgx.Tx, id uint64) (*entities.InventoryItem, error) {
	return f.FindItem(ctx, tx, id)
}

func (f *fakeInventoryRepo) CreateItem(ctx context.Context, tx pgx.Tx, item entities.InventoryItem) (uint64, error) {
	f.nextID++
	item.ID = f.nextID
	f.items[item.ID] = item
	return item.ID, nil
}

func (f *fakeInventoryRepo) UpdateItem(ctx context.Context, tx pgx.Tx, item entities.InventoryItem) error {
	f.items[item.ID] = item
	return nil
}

func (f *fakeInventoryRepo) DeleteItem(ctx context.Context, tx pgx.Tx, id uint64) error {
	delete(f.items, id)
	return nil
}

func (f *fakeInventoryRepo) SetQuantity(ctx context.Context, tx pgx.Tx, id uint64, quantity int, userID uint64) error {
	i, ok := f.items[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	i.Quantity = quantity
	f.items[id] = i
	return nil
}

func (f *fakeInventoryRepo) CreateTransaction(ctx context.Context, tx pgx.Tx, t entities.InventoryTransaction) (uint64, error) {
	t.ID = uint64(len(f.transactions) + 1)
	f.transactions = append(f.transactions, t)
	return t.ID, nil
}

func (f *fakeInventoryRepo) GetTransactions(ctx context.Context, itemID uint64, filter types.Filter) ([]entities.InventoryTransaction, uint64, error) {
	var out []entities.InventoryTransaction
	for _, t := range f.transactions {
		if t.ItemID == itemID {
			out = append(out, t)
		}
	}
	return out, uint64(len(out)), nil
}

type fakeMaintenanceRepo struct {
	records map[uint64]entities.MaintenanceSchedule
	nextID  uint64
}

func newFakeMaintenanceRepo(seed ...entities.MaintenanceSchedule) *fakeMaintenanceRepo {
	f := &fakeMaintenanceRepo{records: map[uint64]entities.MaintenanceSchedule{}}
	for _, m := range seed {
		f.records[m.ID] = m
		if m.ID > f.nextID {
			f.nextID = m.ID
		}
	}
	return f
}

func (f *fakeMaintenanceRepo) GetMaintenance(ctx context.Context, filter types.Filter) ([]entities.MaintenanceSchedule, uint64, error) {
	out := make([]entities.MaintenanceSchedule, 0, len(f.records))
	for _, m := range f.records {
		out = append(out, m)
	}
	return out, uint64(len(out)), nil
}

func (f *fakeMaintenanceRepo) FindMaintenance(ctx context.Context, tx pgx.Tx, id uint64) (*entities.MaintenanceSchedule, error) {
	m, ok := f.records[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &m, nil
}

func (f *fakeMaintenanceRepo) FindMaintenanceForUpdate(ctx context.Context, tx pgx.Tx, id uint64) (*entities.MaintenanceSchedule, error) {
	return f.FindMaintenance(ctx, tx, id)
}

func (f *fakeMaintenanceRepo) CreateMaintenance(ctx context.Context, tx pgx.Tx, m entities.MaintenanceSchedule) (uint64, error) {
	f.nextID++
	m.ID = f.nextID
	f.records[m.ID] = m
	return m.ID, nil
}

func (f *fakeMaintenanceRepo) UpdateMaintenance(ctx context.Context, tx pgx.Tx, m entities.MaintenanceSchedule) error {
	f.records[m.ID] = m
	return nil
}

func (f *fakeMaintenanceRepo) DeleteMaintenance(ctx context.Context, tx pgx.Tx, id uint64) error {
	delete(f.records, id)
	return nil
}

func (f *fakeMaintenanceRepo) ListScheduledBetween(ctx context.Context, from, to time.Time) ([]entities.MaintenanceSchedule, error) {
	var out []entities.MaintenanceSchedule
	for id := uint64(1); id <= f.nextID; id++ {
		m, ok := f.records[id]
		if !ok || m.ScheduledDate.Before(from) || m.ScheduledDate.After(to) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

type fakeEventRepo struct {
	events []entities.CalendarEvent
}

func (f *fakeEventRepo) CreateEvent(ctx context.Context, tx pgx.Tx, event entities.CalendarEvent) (uint64, error) {
	event.ID = uint64(len(f.events) + 1)
	f.events = append(f.events, event)
	return event.ID, nil
}

func (f *fakeEventRepo) DeleteEvent(ctx context.Context, tx pgx.Tx, id uint64) error {
	for i, ev := range f.events {
		if ev.ID == id {
			f.events = append(f.events[:i], f.events[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (f *fakeEventRepo) ListBetween(ctx context.Context, from, to time.Time) ([]entities.CalendarEvent, error) {
	var out []entities.CalendarEvent
	for _, ev := range f.events {
		if !ev.EventDate.Before(from) && !ev.EventDate.After(to) {
			out = append(out, ev)
		}
	}
	return out, nil
}

type fakeSettingsRepo struct {
	themes map[uint64]string
	err    error
	reads  int
}

func (f *fakeSettingsRepo) GetOrCreateTheme(ctx context.Context, userID uint64, defaultTheme string) (string, error) {
	f.reads++
	if f.err != nil {
		return "", f.err
	}
	if t, ok := f.themes[userID]; ok {
		return t, nil
	}
	f.themes[userID] = defaultTheme
	return defaultTheme, nil
}

func (f *fakeSettingsRepo) UpsertTheme(ctx context.Context, userID uint64, theme string) error {
	if f.err != nil {
		return f.err
	}
	f.themes[userID] = theme
	return nil
}

type fakeReportRepo struct {
	rows    []map[string]any
	err     error
	filters []entities.ReportFilter
}

func (f *fakeReportRepo) FetchReport(ctx context.Context, filter entities.ReportFilter) ([]map[string]any, error) {
	f.filters = append(f.filters, filter)
	return f.rows, f.err
}

// fakeDashboardRepo fails the overdue count with failWith, and every count with failAll.
type fakeDashboardRepo struct {
	mu       sync.Mutex
	calls    int
	failWith error
	failAll  error

	upcomingFrom, upcomingTo time.Time
	monthFrom, monthTo       time.Time
}

func (f *fakeDashboardRepo) hit() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.failAll
}

func (f *fakeDashboardRepo) CountEquipmentByStatus(ctx context.Context) (map[string]int64, error) {
	if err := f.hit(); err != nil {
		return nil, err
	}
	return map[string]int64{"Available": 3, "In Use": 1, "Maintenance": 1, "Out of Order": 0, "Retired": 0}, nil
}

func (f *fakeDashboardRepo) CountUpcomingMaintenance(ctx context.Context, from, to time.Time) (int64, error) {
	if err := f.hit(); err != nil {
		return 0, err
	}
	f.mu.Lock()
	f.upcomingFrom, f.upcomingTo = from, to
	f.mu.Unlock()
	return 2, nil
}

func (f *fakeDashboardRepo) CountOverdueMaintenance(ctx context.Context, today time.Time) (int64, error) {
	if err := f.hit(); err != nil {
		return 0, err
	}
	return 1, f.failWith
}

func (f *fakeDashboardRepo) CountCompletedMaintenance(ctx context.Context, from, to time.Time) (int64, error) {
	if err := f.hit(); err != nil {
		return 0, err
	}
	f.mu.Lock()
	f.monthFrom, f.monthTo = from, to
	f.mu.Unlock()
	return 4, nil
}

func (f *fakeDashboardRepo) InventorySummary(ctx context.Context) (int64, float64, error) {
	if err := f.hit(); err != nil {
		return 0, 0, err
	}
	return 2, 1250.5, nil
}

type fakeUserRepo struct {
	users map[string]entities.User
}

func (f *fakeUserRepo) FindUserByID(ctx context.Context, id uint64) (*entities.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			found := u
			return &found, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeUserRepo) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, tx pgx.Tx, user entities.User) (uint64, error) {
	user.ID = uint64(len(f.users) + 1)
	f.users[user.Email] = user
	return user.ID, nil
}

func dtoFilter() types.Filter {
	return types.Filter{Limit: 20, Page: 1, WithPagination: true}
}

package store

import (
	"context" // Context accepted for interface parity
	"fmt"     // Error formatting
	"sort"    // Newest-first ordering
	"sync"    // Guards the in-memory records
	"time"    // Default timestamps

	"github.com/shopspring/decimal" // Exact currency values

	"pooltable_tracker/internal/domain" // Importing domain models
)

// MemoryStore keeps all records in process memory. It is created empty and
// filled by the caller, usually with db.Fixtures.
type MemoryStore struct {
	mu          sync.RWMutex              // Atomic holds the write lock
	accounts    map[string]domain.Account // Keyed by account number
	tables      []domain.PoolTable        // Registration order
	tableIndex  map[string]int            // Device ID to index in tables
	ledger      []domain.LedgerEntry      // Append-only, insertion order
	withdrawals []domain.Withdrawal       // Append-only, insertion order
	tickets     []domain.SupportTicket    // Filed support tickets
	nextID      uint                      // Last assigned row ID
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts:   make(map[string]domain.Account),
		tableIndex: make(map[string]int),
	}
}

func (m *MemoryStore) id() uint {
	m.nextID++
	return m.nextID
}

// Account finds an account by its number
func (m *MemoryStore) Account(_ context.Context, accountNumber string) (*domain.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.accounts[accountNumber]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return &a, nil
}

// CreateAccount inserts an account, rejecting duplicate numbers
func (m *MemoryStore) CreateAccount(_ context.Context, account *domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.accounts[account.AccountNumber]; ok {
		return fmt.Errorf("account %s already exists", account.AccountNumber)
	}
	account.ID = m.id() // Assign the next row ID
	m.accounts[account.AccountNumber] = *account
	return nil
}

// TablesByAccount lists the account's tables in registration order
func (m *MemoryStore) TablesByAccount(_ context.Context, accountNumber string) ([]domain.PoolTable, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tablesOf(accountNumber), nil
}

// tablesOf copies the account's tables; callers hold the lock
func (m *MemoryStore) tablesOf(accountNumber string) []domain.PoolTable {
	out := make([]domain.PoolTable, 0)
	for _, t := range m.tables {
		if t.AccountNumber == accountNumber {
			out = append(out, t)
		}
	}
	return out
}

// Table finds a table by device id
func (m *MemoryStore) Table(_ context.Context, deviceID string) (*domain.PoolTable, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i, ok := m.tableIndex[deviceID]
	if !ok {
		return nil, domain.ErrDeviceNotFound
	}
	t := m.tables[i] // Copy so callers cannot mutate the store
	return &t, nil
}

// CreateTable registers a table, filling in timestamps and status
func (m *MemoryStore) CreateTable(_ context.Context, table *domain.PoolTable) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tableIndex[table.DeviceID]; ok {
		return fmt.Errorf("device %s already exists", table.DeviceID)
	}
	now := time.Now()
	table.ID = m.id()
	if table.RegisteredAt.IsZero() {
		table.RegisteredAt = now
	}
	if table.LastUpdated.IsZero() {
		table.LastUpdated = now
	}
	if table.Status == "" {
		table.Status = domain.TableActive
	}
	m.tableIndex[table.DeviceID] = len(m.tables)
	m.tables = append(m.tables, *table)
	return nil
}

// AppendPayment records a game payment against a table. It is used to seed
// fixtures; payments are otherwise written by the devices themselves.
func (m *MemoryStore) AppendPayment(_ context.Context, entry domain.LedgerEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry.ID = m.id()
	m.ledger = append(m.ledger, entry)
	return nil
}

// LedgerByAccount lists the account's ledger, most recent first
func (m *MemoryStore) LedgerByAccount(_ context.Context, accountNumber string) ([]domain.LedgerEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.LedgerEntry, 0)
	for _, e := range m.ledger {
		if e.AccountNumber == accountNumber {
			out = append(out, e)
		}
	}
	// Stable sort keeps same-time entries in insertion order
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// WithdrawalsByAccount lists the account's withdrawals, most recent first
func (m *MemoryStore) WithdrawalsByAccount(_ context.Context, accountNumber string) ([]domain.Withdrawal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Withdrawal, 0)
	for _, w := range m.withdrawals {
		if w.AccountNumber == accountNumber {
			out = append(out, w)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// CreateTicket files a support ticket
func (m *MemoryStore) CreateTicket(_ context.Context, ticket *domain.SupportTicket) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	ticket.ID = m.id()
	ticket.CreatedAt = now
	ticket.UpdatedAt = now
	m.tickets = append(m.tickets, *ticket)
	return nil
}

// Atomic holds the store's write lock for the duration of fn. Writes are
// staged on the transaction and only applied when fn returns nil.
func (m *MemoryStore) Atomic(ctx context.Context, fn func(tx Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &memoryTx{store: m, staged: make(map[string]domain.PoolTable)}
	if err := fn(tx); err != nil {
		return err
	}
	// A cancelled request discards the staged writes
	if err := ctx.Err(); err != nil {
		return err
	}
	tx.commit()
	return nil
}

type memoryTx struct {
	store       *MemoryStore                // Owning store, locked by Atomic
	staged      map[string]domain.PoolTable // Pending table writes by device ID
	ledger      []domain.LedgerEntry        // Pending ledger entries
	withdrawals []domain.Withdrawal         // Pending withdrawals
}

// current returns the staged copy of a table if one exists
func (tx *memoryTx) current(deviceID string) (domain.PoolTable, bool) {
	if t, ok := tx.staged[deviceID]; ok {
		return t, true
	}
	i, ok := tx.store.tableIndex[deviceID]
	if !ok {
		return domain.PoolTable{}, false
	}
	return tx.store.tables[i], true
}

func (tx *memoryTx) TablesForUpdate(_ context.Context, accountNumber string) ([]domain.PoolTable, error) {
	tables := tx.store.tablesOf(accountNumber)
	for i := range tables {
		if t, ok := tx.staged[tables[i].DeviceID]; ok {
			tables[i] = t
		}
	}
	return tables, nil
}

func (tx *memoryTx) TableForUpdate(_ context.Context, deviceID string) (*domain.PoolTable, error) {
	t, ok := tx.current(deviceID)
	if !ok {
		return nil, domain.ErrDeviceNotFound
	}
	return &t, nil
}

func (tx *memoryTx) SetBalance(_ context.Context, deviceID string, balance decimal.Decimal, at time.Time) error {
	t, ok := tx.current(deviceID)
	if !ok {
		return domain.ErrDeviceNotFound
	}
	t.Balance = balance
	t.LastUpdated = at
	tx.staged[deviceID] = t
	return nil
}

func (tx *memoryTx) UpdateTable(_ context.Context, table *domain.PoolTable) error {
	if _, ok := tx.current(table.DeviceID); !ok {
		return domain.ErrDeviceNotFound
	}
	tx.staged[table.DeviceID] = *table
	return nil
}

func (tx *memoryTx) AppendLedger(_ context.Context, entries ...domain.LedgerEntry) error {
	tx.ledger = append(tx.ledger, entries...)
	return nil
}

func (tx *memoryTx) AppendWithdrawal(_ context.Context, w *domain.Withdrawal) error {
	tx.withdrawals = append(tx.withdrawals, *w)
	return nil
}

// commit applies the staged writes in order
func (tx *memoryTx) commit() {
	m := tx.store
	for deviceID, t := range tx.staged {
		m.tables[m.tableIndex[deviceID]] = t
	}
	for _, e := range tx.ledger {
		e.ID = m.id()
		m.ledger = append(m.ledger, e)
	}
	for _, w := range tx.withdrawals {
		w.ID = m.id()
		m.withdrawals = append(m.withdrawals, w)
	}
}

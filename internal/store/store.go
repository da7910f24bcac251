// Package store holds the persistence contracts used by the services and
// their two implementations: a fixture-seeded in-memory store and a MySQL
// store backed by GORM.
package store

import (
	"context" // Context for blocking calls
	"time"    // Update timestamps

	"github.com/shopspring/decimal" // Exact currency values

	"pooltable_tracker/internal/domain" // Importing domain models
)

// Store is the read/write contract the services depend on.
type Store interface {
	Account(ctx context.Context, accountNumber string) (*domain.Account, error)
	CreateAccount(ctx context.Context, account *domain.Account) error

	TablesByAccount(ctx context.Context, accountNumber string) ([]domain.PoolTable, error)
	Table(ctx context.Context, deviceID string) (*domain.PoolTable, error)
	CreateTable(ctx context.Context, table *domain.PoolTable) error

	LedgerByAccount(ctx context.Context, accountNumber string) ([]domain.LedgerEntry, error)
	WithdrawalsByAccount(ctx context.Context, accountNumber string) ([]domain.Withdrawal, error)

	CreateTicket(ctx context.Context, ticket *domain.SupportTicket) error

	// Atomic runs fn in a single transaction: either every write made
	// through tx is applied, or none is.
	Atomic(ctx context.Context, fn func(tx Tx) error) error
}

// Tx is the write side of a store transaction.
type Tx interface {
	// TablesForUpdate returns the account's tables in registration order
	// and keeps them locked until the transaction ends.
	TablesForUpdate(ctx context.Context, accountNumber string) ([]domain.PoolTable, error)
	// TableForUpdate locks and returns a single table.
	TableForUpdate(ctx context.Context, deviceID string) (*domain.PoolTable, error)
	SetBalance(ctx context.Context, deviceID string, balance decimal.Decimal, at time.Time) error
	UpdateTable(ctx context.Context, table *domain.PoolTable) error
	AppendLedger(ctx context.Context, entries ...domain.LedgerEntry) error
	AppendWithdrawal(ctx context.Context, w *domain.Withdrawal) error
}

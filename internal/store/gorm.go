package store

import (
	"context" // Context for queries
	"errors"  // Error inspection
	"fmt"     // Error wrapping
	"time"    // Update timestamps

	"github.com/shopspring/decimal" // Exact currency values
	"gorm.io/gorm"                  // GORM ORM library
	"gorm.io/gorm/clause"           // Row locking clauses

	"pooltable_tracker/internal/domain" // Importing domain models
)

// GormStore persists records in MySQL through GORM
type GormStore struct {
	DB *gorm.DB // Open connection
}

// NewGormStore wraps an open GORM connection
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

// notFound swaps GORM's missing-row error for a domain sentinel
func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

// Account finds an account by its number
func (s *GormStore) Account(ctx context.Context, accountNumber string) (*domain.Account, error) {
	var account domain.Account // Account to load
	// Query account by account number
	if err := s.DB.WithContext(ctx).Where("account_number = ?", accountNumber).First(&account).Error; err != nil {
		return nil, notFound(err, domain.ErrAccountNotFound)
	}
	return &account, nil
}

// CreateAccount inserts an account
func (s *GormStore) CreateAccount(ctx context.Context, account *domain.Account) error {
	if err := s.DB.WithContext(ctx).Create(account).Error; err != nil {
		return fmt.Errorf("error creating account: %w", err)
	}
	return nil
}

// TablesByAccount lists the account's tables in registration order
func (s *GormStore) TablesByAccount(ctx context.Context, accountNumber string) ([]domain.PoolTable, error) {
	var tables []domain.PoolTable // Tables to load
	// Query tables by owner, oldest first
	if err := s.DB.WithContext(ctx).Where("account_number = ?", accountNumber).Order("id").Find(&tables).Error; err != nil {
		return nil, fmt.Errorf("error fetching tables: %w", err)
	}
	return tables, nil
}

// Table finds a table by device id
func (s *GormStore) Table(ctx context.Context, deviceID string) (*domain.PoolTable, error) {
	var table domain.PoolTable // Table to load
	if err := s.DB.WithContext(ctx).Where("device_id = ?", deviceID).First(&table).Error; err != nil {
		return nil, notFound(err, domain.ErrDeviceNotFound)
	}
	return &table, nil
}

// CreateTable inserts a table, active unless a status is given
func (s *GormStore) CreateTable(ctx context.Context, table *domain.PoolTable) error {
	if table.Status == "" {
		table.Status = domain.TableActive // Default status
	}
	if err := s.DB.WithContext(ctx).Create(table).Error; err != nil {
		return fmt.Errorf("error creating table: %w", err)
	}
	return nil
}

// AppendPayment records a game payment entry
func (s *GormStore) AppendPayment(ctx context.Context, entry domain.LedgerEntry) error {
	if err := s.DB.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("error inserting payment: %w", err)
	}
	return nil
}

// LedgerByAccount lists the account's ledger, most recent first
func (s *GormStore) LedgerByAccount(ctx context.Context, accountNumber string) ([]domain.LedgerEntry, error) {
	var entries []domain.LedgerEntry // Entries to load
	err := s.DB.WithContext(ctx).
		Where("account_number = ?", accountNumber).
		Order("created_at desc, id asc"). // Same-time entries keep insertion order
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("error fetching ledger: %w", err)
	}
	return entries, nil
}

// WithdrawalsByAccount lists the account's withdrawals, most recent first
func (s *GormStore) WithdrawalsByAccount(ctx context.Context, accountNumber string) ([]domain.Withdrawal, error) {
	var withdrawals []domain.Withdrawal // Withdrawals to load
	err := s.DB.WithContext(ctx).
		Where("account_number = ?", accountNumber).
		Order("created_at desc, id asc").
		Find(&withdrawals).Error
	if err != nil {
		return nil, fmt.Errorf("error fetching withdrawals: %w", err)
	}
	return withdrawals, nil
}

// CreateTicket inserts a support ticket
func (s *GormStore) CreateTicket(ctx context.Context, ticket *domain.SupportTicket) error {
	if err := s.DB.WithContext(ctx).Create(ticket).Error; err != nil {
		return fmt.Errorf("error creating ticket: %w", err)
	}
	return nil
}

// Atomic runs fn inside a database transaction, rolled back when fn fails
func (s *GormStore) Atomic(ctx context.Context, fn func(tx Tx) error) error {
	return s.DB.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		return fn(&gormTx{db: db}) // Returning an error rolls back
	})
}

// gormTx runs writes on an open transaction
type gormTx struct {
	db *gorm.DB
}

func (tx *gormTx) TablesForUpdate(ctx context.Context, accountNumber string) ([]domain.PoolTable, error) {
	var tables []domain.PoolTable // Tables to lock
	err := tx.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}). // SELECT ... FOR UPDATE
		Where("account_number = ?", accountNumber).
		Order("id").
		Find(&tables).Error
	if err != nil {
		return nil, fmt.Errorf("error locking tables: %w", err)
	}
	return tables, nil
}

func (tx *gormTx) TableForUpdate(ctx context.Context, deviceID string) (*domain.PoolTable, error) {
	var table domain.PoolTable // Table to lock
	err := tx.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}). // SELECT ... FOR UPDATE
		Where("device_id = ?", deviceID).
		First(&table).Error
	if err != nil {
		return nil, notFound(err, domain.ErrDeviceNotFound)
	}
	return &table, nil
}

func (tx *gormTx) SetBalance(ctx context.Context, deviceID string, balance decimal.Decimal, at time.Time) error {
	result := tx.db.WithContext(ctx).
		Model(&domain.PoolTable{}).
		Where("device_id = ?", deviceID).
		UpdateColumns(map[string]any{"balance": balance, "last_updated": at})
	if result.Error != nil {
		return fmt.Errorf("error updating balance of %s: %w", deviceID, result.Error)
	}
	// No row means the device vanished
	if result.RowsAffected == 0 {
		return domain.ErrDeviceNotFound
	}
	return nil
}

func (tx *gormTx) UpdateTable(ctx context.Context, table *domain.PoolTable) error {
	err := tx.db.WithContext(ctx).
		Model(&domain.PoolTable{}).
		Where("device_id = ?", table.DeviceID).
		UpdateColumns(map[string]any{
			"name":               table.Name,
			"location":           table.Location,
			"status":             table.Status,
			"balance":            table.Balance,
			"daily_earnings":     table.DailyEarnings,
			"daily_games_played": table.DailyGamesPlayed,
			"total_games_played": table.TotalGamesPlayed,
			"last_updated":       table.LastUpdated,
		}).Error
	if err != nil {
		return fmt.Errorf("error updating table %s: %w", table.DeviceID, err)
	}
	return nil
}

func (tx *gormTx) AppendLedger(ctx context.Context, entries ...domain.LedgerEntry) error {
	if len(entries) == 0 {
		return nil // Nothing to insert
	}
	// Insert all entries in one statement
	if err := tx.db.WithContext(ctx).Create(&entries).Error; err != nil {
		return fmt.Errorf("error inserting ledger entries: %w", err)
	}
	return nil
}

func (tx *gormTx) AppendWithdrawal(ctx context.Context, w *domain.Withdrawal) error {
	if err := tx.db.WithContext(ctx).Create(w).Error; err != nil {
		return fmt.Errorf("error inserting withdrawal: %w", err)
	}
	return nil
}

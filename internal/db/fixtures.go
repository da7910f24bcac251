package db

import (
	"context" // Context for store calls
	"fmt"     // Error wrapping
	"time"    // Fixture timestamps

	"github.com/shopspring/decimal" // Exact currency values
	"github.com/sirupsen/logrus"    // Logging
	"golang.org/x/crypto/bcrypt"    // Credential hashing

	"pooltable_tracker/internal/domain" // Importing domain models
)

// Seeder is the write surface fixtures need
type Seeder interface {
	CreateAccount(ctx context.Context, account *domain.Account) error
	CreateTable(ctx context.Context, table *domain.PoolTable) error
	AppendPayment(ctx context.Context, entry domain.LedgerEntry) error
}

// Fixture credentials of the sample account
const (
	FixtureAccount  = "ACC001"
	FixturePassword = "password123"
)

// Seed loads the sample account, its two tables and their recent payments
func Seed(ctx context.Context, s Seeder, bcryptCost int) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(FixturePassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("error hashing fixture password: %w", err)
	}
	account := domain.Account{
		AccountNumber: FixtureAccount,
		Password:      string(hash),
		Name:          "Joseph Kiprotich",
		Email:         "joseph@kentronicssolutions.com",
		PhoneNumber:   "+254700123456",
	}
	if err := s.CreateAccount(ctx, &account); err != nil {
		return err
	}

	now := time.Now()
	tables := []domain.PoolTable{
		{
			DeviceID:         "PT001",
			SerialNumber:     "KT2024001",
			Name:             "Pool Table Alpha",
			Location:         "Downtown Sports Bar",
			AccountNumber:    FixtureAccount,
			Balance:          decimal.RequireFromString("12500.00"),
			DailyEarnings:    decimal.RequireFromString("800.00"),
			DailyGamesPlayed: 8,
			TotalGamesPlayed: 245,
			Status:           domain.TableActive,
			RegisteredAt:     time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC),
			LastUpdated:      now,
		},
		{
			DeviceID:         "PT002",
			SerialNumber:     "KT2024002",
			Name:             "Pool Table Beta",
			Location:         "Westside Recreation Center",
			AccountNumber:    FixtureAccount,
			Balance:          decimal.RequireFromString("8750.00"),
			DailyEarnings:    decimal.RequireFromString("500.00"),
			DailyGamesPlayed: 5,
			TotalGamesPlayed: 182,
			Status:           domain.TableActive,
			RegisteredAt:     time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC),
			LastUpdated:      now,
		},
	}
	for i := range tables {
		if err := s.CreateTable(ctx, &tables[i]); err != nil {
			return err
		}
	}

	payments := []domain.LedgerEntry{
		{
			TransactionID:  "TXN001234",
			DeviceID:       "PT001",
			PayerName:      "John Kiprotich",
			PayerPhone:     "+254700123456",
			RunningBalance: tables[0].Balance,
			CreatedAt:      now,
		},
		{
			TransactionID:  "TXN001235",
			DeviceID:       "PT002",
			PayerName:      "Mary Wanjiku",
			PayerPhone:     "+254722987654",
			RunningBalance: tables[1].Balance,
			CreatedAt:      now.Add(-2 * time.Hour),
		},
	}
	for _, p := range payments {
		p.AccountNumber = FixtureAccount
		p.Type = domain.EntryPayment
		p.Status = domain.StatusGamePlayed
		p.Amount = decimal.NewFromInt(100)
		if err := s.AppendPayment(ctx, p); err != nil {
			return err
		}
	}

	logrus.WithFields(logrus.Fields{
		"account": FixtureAccount, // Seeded account
		"tables":  len(tables),    // Seeded tables
	}).Info("Fixtures seeded")
	return nil
}

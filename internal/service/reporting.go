package service

import (
	"context" // Context for store reads

	"github.com/shopspring/decimal" // Exact currency values

	"pooltable_tracker/internal/domain" // Importing domain models
)

// RecentEntries is how many ledger entries the dashboard shows.
const RecentEntries = 10

// Dashboard is everything the landing page shows for an account.
type Dashboard struct {
	Account            domain.Account       `json:"user"`
	Summary            domain.Summary       `json:"summary"`
	Tables             []domain.PoolTable   `json:"poolTables"`
	RecentTransactions []domain.LedgerEntry `json:"recentTransactions"`
}

// SummarizeTables folds tables into account totals.
func SummarizeTables(tables []domain.PoolTable) domain.Summary {
	sum := domain.Summary{TotalBalance: decimal.Zero, DailyEarnings: decimal.Zero} // Zero totals, not nulls
	for _, t := range tables {
		sum.TotalBalance = sum.TotalBalance.Add(t.Balance)
		sum.DailyEarnings = sum.DailyEarnings.Add(t.DailyEarnings)
		sum.DailyGames += t.DailyGamesPlayed
		sum.TotalTables++
		if t.Status == domain.TableActive {
			sum.ActiveTables++
		}
	}
	return sum
}

// Summarize returns the totals over the account's tables. An account without
// tables gets a zero summary.
func (s *Service) Summarize(ctx context.Context, accountNumber string) (domain.Summary, error) {
	tables, err := s.store.TablesByAccount(ctx, accountNumber)
	if err != nil {
		return domain.Summary{}, err
	}
	return SummarizeTables(tables), nil
}

// Dashboard loads the account, its tables with their summary and the most
// recent ledger entries.
func (s *Service) Dashboard(ctx context.Context, accountNumber string) (*Dashboard, error) {
	account, err := s.store.Account(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	tables, err := s.store.TablesByAccount(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	entries, err := s.store.LedgerByAccount(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	// Ledger is newest first, keep the head
	if len(entries) > RecentEntries {
		entries = entries[:RecentEntries]
	}
	return &Dashboard{
		Account:            *account,
		Summary:            SummarizeTables(tables),
		Tables:             tables,
		RecentTransactions: entries,
	}, nil
}

package service

import (
	"context" // Context for store reads
	"strings" // Case-insensitive search

	"pooltable_tracker/internal/domain" // Importing domain models
)

// DateGroup holds the ledger entries of one calendar day.
type DateGroup struct {
	Date         string               `json:"date"`
	Transactions []domain.LedgerEntry `json:"transactions"`
}

// DateLayout formats the day key of a DateGroup.
const DateLayout = "2006-01-02"

// MatchEntry reports whether e passes every set field of f.
func MatchEntry(e domain.LedgerEntry, f domain.LedgerFilter) bool {
	if f.DeviceID != "" && e.DeviceID != f.DeviceID {
		return false
	}
	if f.Type != "" && e.Type != f.Type {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search) // Names and IDs match case-insensitively
		// Phone numbers match as typed
		if !strings.Contains(e.PayerPhone, f.Search) &&
			!strings.Contains(strings.ToLower(e.TransactionID), q) &&
			!strings.Contains(strings.ToLower(e.PayerName), q) {
			return false
		}
	}
	return true
}

// FilterLedger keeps the entries matching f, preserving order.
func FilterLedger(entries []domain.LedgerEntry, f domain.LedgerFilter) []domain.LedgerEntry {
	out := make([]domain.LedgerEntry, 0, len(entries))
	for _, e := range entries {
		if MatchEntry(e, f) {
			out = append(out, e)
		}
	}
	return out
}

// ListLedger returns the account's ledger entries matching f, most recent first.
func (s *Service) ListLedger(ctx context.Context, accountNumber string, f domain.LedgerFilter) ([]domain.LedgerEntry, error) {
	entries, err := s.store.LedgerByAccount(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	return FilterLedger(entries, f), nil
}

// GroupByDate buckets entries by calendar day. Groups appear in the order their
// first entry does, and entries keep their order inside a group.
func GroupByDate(entries []domain.LedgerEntry) []DateGroup {
	groups := make([]DateGroup, 0) // Empty list, not null
	index := make(map[string]int)  // Day to position in groups
	for _, e := range entries {
		day := e.CreatedAt.Format(DateLayout)
		i, ok := index[day]
		if !ok {
			i = len(groups)
			index[day] = i
			groups = append(groups, DateGroup{Date: day})
		}
		groups[i].Transactions = append(groups[i].Transactions, e)
	}
	return groups
}

// ListWithdrawals returns the account's withdrawals, most recent first.
func (s *Service) ListWithdrawals(ctx context.Context, accountNumber string) ([]domain.Withdrawal, error) {
	return s.store.WithdrawalsByAccount(ctx, accountNumber)
}

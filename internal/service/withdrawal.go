package service

import (
	"context" // Context for store calls
	"errors"  // Error classification
	"fmt"     // Error wrapping
	"sort"    // Table ordering
	"strconv" // Step numbering

	"github.com/shopspring/decimal" // Exact currency arithmetic
	"github.com/sirupsen/logrus"    // Logging
	"golang.org/x/crypto/bcrypt"    // Credential comparison

	"pooltable_tracker/internal/domain" // Importing domain models
	"pooltable_tracker/internal/store"  // Store contract
	"pooltable_tracker/internal/utils"  // Identifier generation
)

// WithdrawalRequest asks to move Amount out of an account's tables
type WithdrawalRequest struct {
	AccountNumber string          // Account to withdraw from
	Amount        decimal.Decimal // Requested amount
	Password      string          // Account credential, re-checked on every withdrawal
}

// Allocate splits amount over tables, draining the fullest table first.
// Ties keep the order of tables. Tables with no balance are skipped and the
// result stops once amount is covered; any uncovered remainder is left to
// the caller to reject.
func Allocate(tables []domain.PoolTable, amount decimal.Decimal) []domain.Allocation {
	ordered := make([]domain.PoolTable, len(tables))
	copy(ordered, tables)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Balance.GreaterThan(ordered[j].Balance)
	})

	remaining := amount
	var steps []domain.Allocation
	for _, t := range ordered {
		if !remaining.IsPositive() {
			break
		}
		if !t.Balance.IsPositive() {
			continue
		}
		delta := decimal.Min(t.Balance, remaining)
		steps = append(steps, domain.Allocation{
			DeviceID:      t.DeviceID,
			Amount:        delta,
			BalanceBefore: t.Balance,
			BalanceAfter:  t.Balance.Sub(delta),
		})
		remaining = remaining.Sub(delta)
	}
	return steps
}

// Allocations rebuilds the per-table split from the ledger entries of a withdrawal
func Allocations(entries []domain.LedgerEntry) []domain.Allocation {
	out := make([]domain.Allocation, 0, len(entries))
	for _, e := range entries {
		delta := e.Amount.Neg()
		out = append(out, domain.Allocation{
			DeviceID:      e.DeviceID,
			Amount:        delta,
			BalanceBefore: e.RunningBalance.Add(delta),
			BalanceAfter:  e.RunningBalance,
		})
	}
	return out
}

func (s *Service) validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", domain.ErrInvalidAmount)
	}
	if !twoPlaces(amount) {
		return fmt.Errorf("%w: at most two decimal places", domain.ErrInvalidAmount)
	}
	if amount.LessThan(s.minWithdrawal) {
		return fmt.Errorf("%w: minimum withdrawal amount is %s", domain.ErrInvalidAmount, s.minWithdrawal.StringFixed(2))
	}
	return nil
}

// authenticate loads the account and checks the supplied credential against it
func (s *Service) authenticate(ctx context.Context, accountNumber, password string) (*domain.Account, error) {
	account, err := s.store.Account(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: invalid password", domain.ErrUnauthorized)
	}
	return account, nil
}

// Withdraw deducts req.Amount from the account's tables and records it.
// Either every table update and ledger append is stored, or none is.
func (s *Service) Withdraw(ctx context.Context, req WithdrawalRequest) (*domain.Withdrawal, []domain.LedgerEntry, error) {
	log := logrus.WithFields(logrus.Fields{
		"account": req.AccountNumber, // Account number
		"amount":  req.Amount,        // Requested amount
	})
	if err := s.validateAmount(req.Amount); err != nil {
		log.WithError(err).Warn("Withdrawal rejected")
		return nil, nil, err
	}

	unlock := s.locker.Lock(req.AccountNumber)
	defer unlock()

	account, err := s.authenticate(ctx, req.AccountNumber, req.Password)
	if err != nil {
		log.WithError(err).Warn("Withdrawal rejected")
		return nil, nil, err
	}

	now := s.now()
	withdrawal := domain.Withdrawal{
		WithdrawalID:  utils.NewID(utils.PrefixWithdrawal),
		AccountNumber: account.AccountNumber,
		Amount:        req.Amount,
		Status:        domain.WithdrawalCompleted,
		CreatedAt:     now,
	}
	var entries []domain.LedgerEntry

	err = s.store.Atomic(ctx, func(tx store.Tx) error {
		tables, err := tx.TablesForUpdate(ctx, account.AccountNumber)
		if err != nil {
			return err
		}
		total := decimal.Zero
		for _, t := range tables {
			total = total.Add(t.Balance)
		}
		if total.LessThan(req.Amount) {
			return fmt.Errorf("%w: available %s, requested %s", domain.ErrInsufficientFunds, total.StringFixed(2), req.Amount.StringFixed(2))
		}

		entries = entries[:0]
		for i, step := range Allocate(tables, req.Amount) {
			if err := tx.SetBalance(ctx, step.DeviceID, step.BalanceAfter, now); err != nil {
				return err
			}
			entries = append(entries, domain.LedgerEntry{
				TransactionID:  withdrawal.WithdrawalID + "-" + strconv.Itoa(i+1),
				AccountNumber:  account.AccountNumber,
				DeviceID:       step.DeviceID,
				WithdrawalID:   withdrawal.WithdrawalID,
				Type:           domain.EntryWithdrawal,
				Status:         domain.StatusWithdrawal,
				Amount:         step.Amount.Neg(),
				RunningBalance: step.BalanceAfter,
				PayerName:      account.Name,
				PayerPhone:     account.PhoneNumber,
				CreatedAt:      now,
			})
		}
		if err := tx.AppendLedger(ctx, entries...); err != nil {
			return err
		}
		return tx.AppendWithdrawal(ctx, &withdrawal)
	})
	if err != nil {
		entry := log.WithError(err)
		if errors.Is(err, domain.ErrInsufficientFunds) {
			entry.Warn("Withdrawal rejected")
		} else {
			entry.Error("Withdrawal failed")
		}
		return nil, nil, err
	}

	tables := make([]string, len(entries))
	for i, e := range entries {
		tables[i] = e.DeviceID
	}
	log.WithFields(logrus.Fields{
		"withdrawal_id": withdrawal.WithdrawalID, // Withdrawal identifier
		"tables":        tables,                  // Tables drained, in order
	}).Info("Withdrawal completed")
	return &withdrawal, entries, nil
}

package service

import (
	"context" // Context for store calls
	"fmt"     // Error wrapping

	"github.com/shopspring/decimal" // Exact currency arithmetic
	"github.com/sirupsen/logrus"    // Logging

	"pooltable_tracker/internal/domain" // Importing domain models
	"pooltable_tracker/internal/store"  // Store contract
	"pooltable_tracker/internal/utils"  // Identifier generation
)

// Devices lists the account's tables in registration order
func (s *Service) Devices(ctx context.Context, accountNumber string) ([]domain.PoolTable, error) {
	return s.store.TablesByAccount(ctx, accountNumber)
}

// Device returns one table, hiding tables of other accounts
func (s *Service) Device(ctx context.Context, accountNumber, deviceID string) (*domain.PoolTable, error) {
	t, err := s.store.Table(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if t.AccountNumber != accountNumber {
		return nil, domain.ErrDeviceNotFound
	}
	return t, nil
}

// DeviceBalance returns the withdrawable balance of one table
func (s *Service) DeviceBalance(ctx context.Context, accountNumber, deviceID string) (decimal.Decimal, error) {
	t, err := s.Device(ctx, accountNumber, deviceID)
	if err != nil {
		return decimal.Zero, err
	}
	return t.Balance, nil
}

func validatePatch(p domain.DevicePatch) error {
	if p.Empty() {
		return fmt.Errorf("%w: nothing to update", domain.ErrValidation)
	}
	if p.Status != nil && !p.Status.Valid() {
		return fmt.Errorf("%w: status must be active or inactive", domain.ErrValidation)
	}
	money := map[string]*decimal.Decimal{"balance": p.Balance, "dailyEarnings": p.DailyEarnings}
	for name, v := range money {
		if v != nil && (v.IsNegative() || !twoPlaces(*v)) {
			return fmt.Errorf("%w: %s must be a non-negative amount with at most two decimals", domain.ErrValidation, name)
		}
	}
	counts := map[string]*int{"gamesPlayed": p.TotalGamesPlayed, "dailyGamesPlayed": p.DailyGamesPlayed}
	for name, v := range counts {
		if v != nil && *v < 0 {
			return fmt.Errorf("%w: %s must not be negative", domain.ErrValidation, name)
		}
	}
	return nil
}

// UpdateDevice applies a partial update to one of the account's tables.
// A balance change is recorded as an adjustment ledger entry of the difference.
func (s *Service) UpdateDevice(ctx context.Context, accountNumber, deviceID string, patch domain.DevicePatch) (*domain.PoolTable, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	unlock := s.locker.Lock(accountNumber)
	defer unlock()

	account, err := s.store.Account(ctx, accountNumber)
	if err != nil {
		return nil, err
	}

	var updated domain.PoolTable
	var diff decimal.Decimal
	err = s.store.Atomic(ctx, func(tx store.Tx) error {
		t, err := tx.TableForUpdate(ctx, deviceID)
		if err != nil {
			return err
		}
		if t.AccountNumber != accountNumber {
			return domain.ErrDeviceNotFound
		}
		before := t.Balance
		patch.Apply(t)
		t.LastUpdated = s.now()
		if err := tx.UpdateTable(ctx, t); err != nil {
			return err
		}
		updated = *t

		diff = t.Balance.Sub(before)
		if diff.IsZero() {
			return nil
		}
		entryType := domain.EntryPayment
		if diff.IsNegative() {
			entryType = domain.EntryWithdrawal
		}
		return tx.AppendLedger(ctx, domain.LedgerEntry{
			TransactionID:  utils.NewID(utils.PrefixAdjustment),
			AccountNumber:  accountNumber,
			DeviceID:       deviceID,
			Type:           entryType,
			Status:         domain.StatusAdjustment,
			Amount:         diff,
			RunningBalance: t.Balance,
			PayerName:      account.Name,
			PayerPhone:     account.PhoneNumber,
			CreatedAt:      t.LastUpdated,
		})
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account": accountNumber, // Account number
			"device":  deviceID,      // Device identifier
		}).WithError(err).Warn("Device update failed")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"account":    accountNumber, // Account number
		"device":     deviceID,      // Device identifier
		"adjustment": diff,          // Balance difference, zero when untouched
	}).Info("Device updated")
	return &updated, nil
}

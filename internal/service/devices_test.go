package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pooltable_tracker/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func TestDeviceOwnership(t *testing.T) {
	svc, st := newTestService(t, "300")
	ctx := context.Background()
	require.NoError(t, st.CreateTable(ctx, &domain.PoolTable{DeviceID: "OTHER", AccountNumber: "ACC002", Balance: dec("5")}))

	b, err := svc.DeviceBalance(ctx, testAccount, "PT1")
	require.NoError(t, err)
	assert.True(t, b.Equal(dec("300")))

	_, err = svc.Device(ctx, testAccount, "OTHER")
	assert.ErrorIs(t, err, domain.ErrDeviceNotFound)
	_, err = svc.Device(ctx, testAccount, "MISSING")
	assert.ErrorIs(t, err, domain.ErrDeviceNotFound)
	_, err = svc.UpdateDevice(ctx, testAccount, "OTHER", domain.DevicePatch{Name: ptr("mine")})
	assert.ErrorIs(t, err, domain.ErrDeviceNotFound)

	devices, err := svc.Devices(ctx, testAccount)
	require.NoError(t, err)
	assert.Len(t, devices, 1)
}

func TestUpdateDeviceProfile(t *testing.T) {
	svc, st := newTestService(t, "300")
	ctx := context.Background()

	updated, err := svc.UpdateDevice(ctx, testAccount, "PT1", domain.DevicePatch{
		Name:     ptr("Corner Table"),
		Status:   ptr(domain.TableInactive),
		Location: ptr("Back room"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Corner Table", updated.Name)
	assert.Equal(t, domain.TableInactive, updated.Status)
	assert.True(t, updated.Balance.Equal(dec("300")))

	ledger, err := st.LedgerByAccount(ctx, testAccount)
	require.NoError(t, err)
	assert.Empty(t, ledger)
}

func TestUpdateDeviceBalanceRecordsAdjustment(t *testing.T) {
	svc, st := newTestService(t, "300")
	ctx := context.Background()

	_, err := svc.UpdateDevice(ctx, testAccount, "PT1", domain.DevicePatch{Balance: ptr(dec("250.50"))})
	require.NoError(t, err)
	assert.Equal(t, []string{"250.50"}, balances(t, st))

	ledger, err := st.LedgerByAccount(ctx, testAccount)
	require.NoError(t, err)
	require.Len(t, ledger, 1)
	assert.Equal(t, domain.EntryWithdrawal, ledger[0].Type)
	assert.Equal(t, domain.StatusAdjustment, ledger[0].Status)
	assert.True(t, ledger[0].Amount.Equal(dec("-49.50")))
	assert.True(t, ledger[0].RunningBalance.Equal(dec("250.50")))
}

func TestUpdateDeviceValidation(t *testing.T) {
	tests := []struct {
		name  string
		patch domain.DevicePatch
	}{
		{"empty", domain.DevicePatch{}},
		{"unknown status", domain.DevicePatch{Status: ptr(domain.TableStatus("broken"))}},
		{"negative balance", domain.DevicePatch{Balance: ptr(dec("-1"))}},
		{"three decimals", domain.DevicePatch{DailyEarnings: ptr(dec("1.005"))}},
		{"negative games", domain.DevicePatch{TotalGamesPlayed: ptr(-1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, st := newTestService(t, "300")
			_, err := svc.UpdateDevice(context.Background(), testAccount, "PT1", tt.patch)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Equal(t, []string{"300.00"}, balances(t, st))
		})
	}
}

package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"pooltable_tracker/internal/domain"
	"pooltable_tracker/internal/store"
)

func TestSeed(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	require.NoError(t, Seed(ctx, st, bcrypt.MinCost))

	account, err := st.Account(ctx, FixtureAccount)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(FixturePassword)))

	tables, err := st.TablesByAccount(ctx, FixtureAccount)
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, "PT001", tables[0].DeviceID)
	assert.Equal(t, "12500.00", tables[0].Balance.StringFixed(2))
	assert.Equal(t, 245, tables[0].TotalGamesPlayed)
	assert.Equal(t, "8750.00", tables[1].Balance.StringFixed(2))

	ledger, err := st.LedgerByAccount(ctx, FixtureAccount)
	require.NoError(t, err)
	require.Len(t, ledger, 2)
	assert.Equal(t, domain.EntryPayment, ledger[0].Type)
	assert.Equal(t, "TXN001234", ledger[0].TransactionID)
	assert.Equal(t, "PT001", ledger[0].DeviceID)

	assert.Error(t, Seed(ctx, st, bcrypt.MinCost), "seeding twice must fail")
}

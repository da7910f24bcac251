package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"pooltable_tracker/internal/config"
	"pooltable_tracker/internal/domain"
	"pooltable_tracker/internal/store"
)

const (
	testAccount  = "ACC001"
	testPassword = "password123"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testConfig() *config.Config {
	return &config.Config{
		MinWithdrawal: decimal.NewFromInt(100),
		JWTSecret:     "test-secret",
		JWTTTL:        time.Hour,
		BcryptCost:    bcrypt.MinCost,
	}
}

// seedStore creates the test account with one table per balance, named PT1, PT2, ...
func seedStore(t *testing.T, balances ...string) *store.MemoryStore {
	t.Helper()
	ctx := context.Background()
	st := store.NewMemoryStore()

	hash, err := HashPassword(testPassword, bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, st.CreateAccount(ctx, &domain.Account{
		AccountNumber: testAccount,
		Password:      hash,
		Name:          "Test Holder",
		PhoneNumber:   "+254700000000",
	}))
	for i, b := range balances {
		require.NoError(t, st.CreateTable(ctx, &domain.PoolTable{
			DeviceID:         "PT" + strconv.Itoa(i+1),
			Name:             "Table " + strconv.Itoa(i+1),
			AccountNumber:    testAccount,
			Balance:          dec(b),
			DailyEarnings:    dec("10.00"),
			DailyGamesPlayed: 1,
		}))
	}
	return st
}

func newTestService(t *testing.T, balances ...string) (*Service, *store.MemoryStore) {
	st := seedStore(t, balances...)
	return New(st, testConfig()), st
}

func balances(t *testing.T, st store.Store) []string {
	t.Helper()
	tables, err := st.TablesByAccount(context.Background(), testAccount)
	require.NoError(t, err)
	out := make([]string, len(tables))
	for i, tb := range tables {
		out[i] = tb.Balance.StringFixed(2)
	}
	return out
}

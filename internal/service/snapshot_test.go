package service

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"pooltable_tracker/internal/domain"
	"pooltable_tracker/internal/store"
)

// snapshotStore runs transactions without row locks. Each one reads the
// committed tables, waits up to rendezvous for a second reader, and only then
// applies its buffered writes. Two withdrawals reaching it together both see
// the same balances, so only the service's account lock keeps them apart.
type snapshotStore struct {
	*store.MemoryStore
	rendezvous time.Duration

	mu      sync.Mutex
	readers int
	paired  chan struct{} // Closed once two transactions have read
}

func newSnapshotStore(mem *store.MemoryStore, rendezvous time.Duration) *snapshotStore {
	return &snapshotStore{MemoryStore: mem, rendezvous: rendezvous, paired: make(chan struct{})}
}

func (s *snapshotStore) waitForPeer() {
	s.mu.Lock()
	s.readers++
	if s.readers == 2 {
		close(s.paired)
	}
	s.mu.Unlock()

	select {
	case <-s.paired:
	case <-time.After(s.rendezvous):
	}
}

func (s *snapshotStore) Atomic(ctx context.Context, fn func(tx store.Tx) error) error {
	tx := &snapshotTx{store: s}
	if err := fn(tx); err != nil {
		return err
	}
	return s.MemoryStore.Atomic(ctx, func(inner store.Tx) error {
		for _, write := range tx.writes {
			if err := write(inner); err != nil {
				return err
			}
		}
		return nil
	})
}

type snapshotTx struct {
	store  *snapshotStore
	writes []func(store.Tx) error
}

func (tx *snapshotTx) TablesForUpdate(ctx context.Context, accountNumber string) ([]domain.PoolTable, error) {
	tables, err := tx.store.TablesByAccount(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	tx.store.waitForPeer()
	return tables, nil
}

func (tx *snapshotTx) TableForUpdate(ctx context.Context, deviceID string) (*domain.PoolTable, error) {
	return tx.store.Table(ctx, deviceID)
}

func (tx *snapshotTx) SetBalance(ctx context.Context, deviceID string, balance decimal.Decimal, at time.Time) error {
	tx.writes = append(tx.writes, func(inner store.Tx) error { return inner.SetBalance(ctx, deviceID, balance, at) })
	return nil
}

func (tx *snapshotTx) UpdateTable(ctx context.Context, table *domain.PoolTable) error {
	t := *table
	tx.writes = append(tx.writes, func(inner store.Tx) error { return inner.UpdateTable(ctx, &t) })
	return nil
}

func (tx *snapshotTx) AppendLedger(ctx context.Context, entries ...domain.LedgerEntry) error {
	tx.writes = append(tx.writes, func(inner store.Tx) error { return inner.AppendLedger(ctx, entries...) })
	return nil
}

func (tx *snapshotTx) AppendWithdrawal(ctx context.Context, w *domain.Withdrawal) error {
	tx.writes = append(tx.writes, func(inner store.Tx) error { return inner.AppendWithdrawal(ctx, w) })
	return nil
}

func TestSnapshotStoreOvercommitsWithoutAccountLock(t *testing.T) {
	mem := seedStore(t, "300", "100", "50")
	st := newSnapshotStore(mem, time.Second)
	ctx := context.Background()

	// Each transaction checks funds and records a 300 withdrawal, with no account lock
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = st.Atomic(ctx, func(tx store.Tx) error {
				tables, err := tx.TablesForUpdate(ctx, testAccount)
				if err != nil {
					return err
				}
				total := decimal.Zero
				for _, tb := range tables {
					total = total.Add(tb.Balance)
				}
				if total.LessThan(dec("300")) {
					return domain.ErrInsufficientFunds
				}
				return tx.AppendWithdrawal(ctx, &domain.Withdrawal{WithdrawalID: "WD" + strconv.Itoa(i), AccountNumber: testAccount, Amount: dec("300")})
			})
		}(i)
	}
	wg.Wait()

	// 600 was committed against 450 of funds
	withdrawals, err := mem.WithdrawalsByAccount(ctx, testAccount)
	assert.NoError(t, err)
	assert.Len(t, withdrawals, 2)
}

func TestAccountLockSerializesWithdrawals(t *testing.T) {
	mem := seedStore(t, "300", "100", "50")
	svc := New(newSnapshotStore(mem, 200*time.Millisecond), testConfig())

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = svc.Withdraw(context.Background(), WithdrawalRequest{AccountNumber: testAccount, Amount: dec("300"), Password: testPassword})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, []string{"0.00", "100.00", "50.00"}, balances(t, mem))

	withdrawals, err := mem.WithdrawalsByAccount(context.Background(), testAccount)
	assert.NoError(t, err)
	assert.Len(t, withdrawals, 1)
}

package service

import "sync" // Per-account mutexes

// AccountLocker serializes operations per account. Locks for different
// accounts never block each other.
type AccountLocker struct {
	mu    sync.Mutex              // Guards locks
	locks map[string]*accountLock // Live locks by account number
}

// accountLock is dropped from the map once nobody holds or waits on it
type accountLock struct {
	sync.Mutex
	refs int // Holders plus waiters
}

// NewAccountLocker returns an empty locker.
func NewAccountLocker() *AccountLocker {
	return &AccountLocker{locks: make(map[string]*accountLock)}
}

// Lock blocks until the account is free and returns the matching unlock.
func (l *AccountLocker) Lock(accountNumber string) (unlock func()) {
	l.mu.Lock()
	lk, ok := l.locks[accountNumber]
	if !ok {
		lk = &accountLock{}
		l.locks[accountNumber] = lk
	}
	lk.refs++ // Register before blocking so the entry survives
	l.mu.Unlock()

	lk.Lock() // Wait for the account
	return func() {
		lk.Unlock()
		l.mu.Lock()
		lk.refs--
		// Last user removes the entry
		if lk.refs == 0 {
			delete(l.locks, accountNumber)
		}
		l.mu.Unlock()
	}
}

package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccountLockerBlocksSameAccount(t *testing.T) {
	l := NewAccountLocker()
	unlock := l.Lock("ACC001")

	acquired := make(chan func())
	go func() { acquired <- l.Lock("ACC001") }()

	select {
	case <-acquired:
		t.Fatal("second lock on the same account did not block")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()
	select {
	case second := <-acquired:
		second()
	case <-time.After(time.Second):
		t.Fatal("second lock was not granted after unlock")
	}
	assert.Empty(t, l.locks)
}

func TestAccountLockerIndependentAccounts(t *testing.T) {
	l := NewAccountLocker()
	unlockA := l.Lock("ACC001")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		l.Lock("ACC002")()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on another account was blocked")
	}
	assert.Len(t, l.locks, 1)
}

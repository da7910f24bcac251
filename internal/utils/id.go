package utils

import (
	"math/rand" // Entropy source for ULIDs
	"sync"      // Guards the monotonic reader
	"time"      // Timestamp component

	"github.com/oklog/ulid/v2" // Sortable unique identifiers
)

var (
	idEntropy   = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	idEntropyMu sync.Mutex
)

// ID prefixes
const (
	PrefixWithdrawal = "WD"
	PrefixAdjustment = "ADJ"
	PrefixTicket     = "TKT"
)

// NewID returns prefix followed by a ULID: a millisecond timestamp and a random suffix
func NewID(prefix string) string {
	idEntropyMu.Lock()
	defer idEntropyMu.Unlock()
	return prefix + ulid.MustNew(ulid.Timestamp(time.Now()), idEntropy).String()
}

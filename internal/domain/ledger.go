package domain

import (
	"time" // Timestamps

	"github.com/shopspring/decimal" // Exact currency arithmetic
)

// EntryType separates payments from withdrawals
type EntryType string

// Entry types
const (
	EntryPayment    EntryType = "payment"
	EntryWithdrawal EntryType = "withdrawal"
)

// Entry statuses
const (
	StatusGamePlayed  = "game_played"
	StatusPaymentOnly = "payment_only"
	StatusWithdrawal  = "withdrawal"
	StatusAdjustment  = "adjustment"
)

// LedgerEntry Model, append-only
type LedgerEntry struct {
	ID             uint            `gorm:"primaryKey" json:"id"`                              // Primary key
	TransactionID  string          `gorm:"uniqueIndex;size:64;not null" json:"transactionId"` // Unique transaction identifier
	AccountNumber  string          `gorm:"index;size:50;not null" json:"accountNumber"`       // Owning account
	DeviceID       string          `gorm:"index;size:20" json:"deviceId"`                     // Table the entry applies to
	WithdrawalID   string          `gorm:"index;size:64" json:"withdrawalId,omitempty"`       // Withdrawal this step belongs to
	Type           EntryType       `gorm:"size:20;not null" json:"type"`                      // payment or withdrawal
	Status         string          `gorm:"size:20;not null" json:"status"`                    // game_played, payment_only, withdrawal, adjustment
	Amount         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`         // Signed amount, negative for withdrawals
	RunningBalance decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"runningBalance"` // Table balance after this entry
	PayerName      string          `gorm:"size:100" json:"payerName"`                         // Payer, or account holder for withdrawals
	PayerPhone     string          `gorm:"size:20" json:"payerPhone"`                         // Payer phone
	CreatedAt      time.Time       `gorm:"index" json:"transactionDate"`                      // Time of the event
}

// LedgerFilter narrows a ledger listing, zero values match everything
type LedgerFilter struct {
	Search   string    // Phone, transaction id or payer name substring
	DeviceID string    // Exact device identifier
	Type     EntryType // Exact entry type
}

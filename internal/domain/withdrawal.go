package domain

import (
	"time" // Timestamps

	"github.com/shopspring/decimal" // Exact currency arithmetic
)

// WithdrawalCompleted is the only status a stored withdrawal can have
const WithdrawalCompleted = "completed"

// Withdrawal Model
type Withdrawal struct {
	ID            uint            `gorm:"primaryKey" json:"id"`                             // Primary key
	WithdrawalID  string          `gorm:"uniqueIndex;size:64;not null" json:"withdrawalId"` // Unique withdrawal identifier
	AccountNumber string          `gorm:"index;size:50;not null" json:"accountNumber"`      // Owning account
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`        // Total amount withdrawn
	Status        string          `gorm:"size:20;not null;default:completed" json:"status"` // Always completed once stored
	CreatedAt     time.Time       `gorm:"index" json:"withdrawalDate"`                      // Time of the withdrawal
}

// Allocation is the share of a withdrawal taken from one table
type Allocation struct {
	DeviceID      string          `json:"deviceId"`      // Table drained
	Amount        decimal.Decimal `json:"amount"`        // Amount taken
	BalanceBefore decimal.Decimal `json:"balanceBefore"` // Table balance before
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`  // Table balance after
}

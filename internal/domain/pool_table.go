package domain

import (
	"time" // Timestamps

	"github.com/shopspring/decimal" // Exact currency arithmetic
)

// TableStatus is the operational status of a pool table
type TableStatus string

// Table statuses
const (
	TableActive   TableStatus = "active"
	TableInactive TableStatus = "inactive"
)

// Valid reports whether s is a known status
func (s TableStatus) Valid() bool {
	return s == TableActive || s == TableInactive
}

// PoolTable Model, one balance record per physical table
type PoolTable struct {
	ID               uint            `gorm:"primaryKey" json:"id"`                                       // Primary key
	DeviceID         string          `gorm:"uniqueIndex;size:20;not null" json:"deviceId"`               // Unique device identifier
	SerialNumber     string          `gorm:"size:50" json:"serialNumber"`                                // Hardware serial
	Name             string          `gorm:"size:100" json:"name"`                                       // Display name
	Location         string          `gorm:"size:255" json:"location"`                                   // Where the table is installed
	AccountNumber    string          `gorm:"index;size:50;not null" json:"accountNumber"`                // Owning account
	Balance          decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"balance"`       // Withdrawable balance, never negative
	DailyEarnings    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"dailyEarnings"` // Earnings today
	DailyGamesPlayed int             `gorm:"not null;default:0" json:"dailyGamesPlayed"`                 // Games today
	TotalGamesPlayed int             `gorm:"not null;default:0" json:"totalGamesPlayed"`                 // Lifetime games
	Status           TableStatus     `gorm:"size:20;not null;default:active" json:"status"`              // active or inactive
	RegisteredAt     time.Time       `gorm:"autoCreateTime" json:"registrationDate"`                     // Registration timestamp
	LastUpdated      time.Time       `gorm:"autoUpdateTime" json:"lastUpdated"`                          // Last mutation timestamp
}

// DevicePatch carries a partial update of a table, nil fields are left untouched
type DevicePatch struct {
	Name             *string          `json:"name"`
	Location         *string          `json:"location"`
	Status           *TableStatus     `json:"status"`
	Balance          *decimal.Decimal `json:"balance"`
	TotalGamesPlayed *int             `json:"gamesPlayed"`
	DailyEarnings    *decimal.Decimal `json:"dailyEarnings"`
	DailyGamesPlayed *int             `json:"dailyGamesPlayed"`
}

// Empty reports whether the patch changes nothing
func (p DevicePatch) Empty() bool {
	return p.Name == nil && p.Location == nil && p.Status == nil && p.Balance == nil &&
		p.TotalGamesPlayed == nil && p.DailyEarnings == nil && p.DailyGamesPlayed == nil
}

// Apply copies the set fields of the patch onto t
func (p DevicePatch) Apply(t *PoolTable) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Location != nil {
		t.Location = *p.Location
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Balance != nil {
		t.Balance = *p.Balance
	}
	if p.TotalGamesPlayed != nil {
		t.TotalGamesPlayed = *p.TotalGamesPlayed
	}
	if p.DailyEarnings != nil {
		t.DailyEarnings = *p.DailyEarnings
	}
	if p.DailyGamesPlayed != nil {
		t.DailyGamesPlayed = *p.DailyGamesPlayed
	}
}

package domain

import "github.com/shopspring/decimal" // Exact currency arithmetic

// Summary holds the dashboard totals for one account
type Summary struct {
	TotalBalance  decimal.Decimal `json:"totalBalance"`  // Sum of table balances
	DailyEarnings decimal.Decimal `json:"dailyEarnings"` // Sum of daily earnings
	DailyGames    int             `json:"dailyGames"`    // Sum of daily games played
	TotalTables   int             `json:"totalTables"`   // Number of tables
	ActiveTables  int             `json:"activeTables"`  // Number of active tables
}

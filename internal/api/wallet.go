package api

import (
	"fmt"      // Error wrapping
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/redis/go-redis/v9"  // Redis client
	"github.com/shopspring/decimal" // Exact currency values
	"github.com/sirupsen/logrus"    // Logging

	"pooltable_tracker/internal/domain"     // Importing domain models
	"pooltable_tracker/internal/middleware" // Caller identity
	"pooltable_tracker/internal/service"    // Account operations
	"pooltable_tracker/internal/utils"      // Cache helpers
)

// WithdrawRequest represents a withdrawal request; the account may be named either way
type WithdrawRequest struct {
	AccountNumber string          `json:"accountNumber"`               // Account number
	AccountNo     string          `json:"accountNo"`                   // Account number, legacy field name
	Amount        decimal.Decimal `json:"amount"`                      // Withdrawal amount
	Password      string          `json:"password" binding:"required"` // Account password
}

func (r WithdrawRequest) account() string {
	if r.AccountNumber != "" {
		return r.AccountNumber
	}
	return r.AccountNo
}

// ledgerFilter reads the search, device_id and type query parameters
func ledgerFilter(c *gin.Context) (domain.LedgerFilter, bool) {
	f := domain.LedgerFilter{
		Search:   c.Query("search"),                 // Phone, id or name substring
		DeviceID: c.Query("device_id"),              // Exact device
		Type:     domain.EntryType(c.Query("type")), // payment or withdrawal
	}
	if f.Type != "" && f.Type != domain.EntryPayment && f.Type != domain.EntryWithdrawal {
		respondError(c, fmt.Errorf("%w: type must be payment or withdrawal", domain.ErrValidation))
		return f, false
	}
	return f, true
}

// writeLedger responds with the filtered ledger, grouped by day when group=date
func writeLedger(c *gin.Context, svc *service.Service, account string, f domain.LedgerFilter) {
	entries, err := svc.ListLedger(c.Request.Context(), account, f)
	if err != nil {
		respondError(c, err)
		return
	}
	if c.Query("group") == "date" {
		c.JSON(http.StatusOK, gin.H{"success": true, "groups": service.GroupByDate(entries)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "transactions": entries})
}

// TransactionsHandler lists the caller's ledger entries
func TransactionsHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, ok := ledgerFilter(c)
		if !ok {
			return
		}
		writeLedger(c, svc, middleware.AccountNumber(c), filter)
	}
}

// ListWithdrawalsHandler lists the caller's withdrawals, most recent first
func ListWithdrawalsHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		withdrawals, err := svc.ListWithdrawals(c.Request.Context(), middleware.AccountNumber(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "withdrawals": withdrawals})
	}
}

// WithdrawHandler withdraws from the caller's tables, fullest table first
func WithdrawHandler(svc *service.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req WithdrawRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		caller := middleware.AccountNumber(c) // Authenticated account
		// The body may only name the caller's own account
		if acc := req.account(); acc != "" && acc != caller {
			fail(c, http.StatusUnauthorized, "Account does not match token")
			return
		}
		withdrawal, entries, err := svc.Withdraw(c.Request.Context(), service.WithdrawalRequest{
			AccountNumber: caller,       // Account to withdraw from
			Amount:        req.Amount,   // Requested amount
			Password:      req.Password, // Credential
		})
		if err != nil {
			respondError(c, err)
			return
		}
		// Invalidate cached views of the account
		if err := utils.InvalidateAccount(c.Request.Context(), rdb, caller); err != nil {
			logrus.WithField("account", caller).WithError(err).Warn("Cache invalidation failed")
		}
		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"withdrawal":  withdrawal,
			"allocations": service.Allocations(entries),
			"message":     "Withdrawal of " + withdrawal.Amount.StringFixed(2) + " completed",
		})
	}
}

package api

import (
	"net/http" // HTTP status codes
	"time"     // Cache TTL

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client

	"pooltable_tracker/internal/domain"     // Importing domain models
	"pooltable_tracker/internal/middleware" // Caller identity
	"pooltable_tracker/internal/service"    // Account operations
	"pooltable_tracker/internal/utils"      // Cache helpers
)

// DashboardHandler returns profile, totals, tables and recent entries
func DashboardHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := svc.Dashboard(c.Request.Context(), middleware.AccountNumber(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":            true,
			"user":               d.Account,            // Profile
			"summary":            d.Summary,            // Totals
			"poolTables":         d.Tables,             // Tables
			"recentTransactions": d.RecentTransactions, // Latest ledger entries
		})
	}
}

// SummaryHandler returns the account totals, read through the Redis cache
func SummaryHandler(svc *service.Service, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()                                 // Context for store and Redis operations
		account := middleware.AccountNumber(c)                     // Authenticated account
		cacheKey := utils.SummaryCacheKey(account)                 // Cache key for summary
		var summary domain.Summary                                 // Summary to return
		found, err := utils.GetCache(ctx, rdb, cacheKey, &summary) // Try to get from cache
		// If found in cache, return it
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"success": true, "summary": summary, "cached": true})
			return
		}
		version := utils.CacheVersion(ctx, rdb, account) // Read before the store so a concurrent invalidation wins
		summary, err = svc.Summarize(ctx, account)
		if err != nil {
			respondError(c, err)
			return
		}
		_, _ = utils.SetCacheIfUnchanged(ctx, rdb, account, version, cacheKey, summary, ttl) // Cache the summary
		c.JSON(http.StatusOK, gin.H{"success": true, "summary": summary, "cached": false})
	}
}

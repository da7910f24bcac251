package api

import (
	"net/http" // HTTP status codes
	"time"     // Cache TTL

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging

	"pooltable_tracker/internal/domain"     // Importing domain models
	"pooltable_tracker/internal/middleware" // Caller identity
	"pooltable_tracker/internal/service"    // Account operations
	"pooltable_tracker/internal/utils"      // Cache helpers
)

// ListDevicesHandler returns the caller's tables, read through the Redis cache
func ListDevicesHandler(svc *service.Service, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()                                 // Context for store and Redis operations
		account := middleware.AccountNumber(c)                     // Authenticated account
		cacheKey := utils.DevicesCacheKey(account)                 // Cache key for the device list
		var devices []domain.PoolTable                             // Tables to return
		found, err := utils.GetCache(ctx, rdb, cacheKey, &devices) // Try to get from cache
		// If found in cache, return it
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"success": true, "devices": devices, "cached": true})
			return
		}
		version := utils.CacheVersion(ctx, rdb, account) // Read before the store so a concurrent invalidation wins
		devices, err = svc.Devices(ctx, account)
		if err != nil {
			respondError(c, err)
			return
		}
		_, _ = utils.SetCacheIfUnchanged(ctx, rdb, account, version, cacheKey, devices, ttl) // Cache the list
		c.JSON(http.StatusOK, gin.H{"success": true, "devices": devices, "cached": false})
	}
}

// GetDeviceHandler returns one of the caller's tables
func GetDeviceHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		device, err := svc.Device(c.Request.Context(), middleware.AccountNumber(c), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "device": device})
	}
}

// DeviceBalanceHandler returns the withdrawable balance of one table
func DeviceBalanceHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID := c.Param("id") // Device identifier from the path
		balance, err := svc.DeviceBalance(c.Request.Context(), middleware.AccountNumber(c), deviceID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "deviceId": deviceID, "balance": balance})
	}
}

// UpdateDeviceHandler applies a partial update to one of the caller's tables
func UpdateDeviceHandler(svc *service.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch domain.DevicePatch // Bind JSON request to struct
		if !bindJSON(c, &patch) {
			return
		}
		account := middleware.AccountNumber(c) // Authenticated account
		device, err := svc.UpdateDevice(c.Request.Context(), account, c.Param("id"), patch)
		if err != nil {
			respondError(c, err)
			return
		}
		// Invalidate cached views of the account
		if err := utils.InvalidateAccount(c.Request.Context(), rdb, account); err != nil {
			logrus.WithField("account", account).WithError(err).Warn("Cache invalidation failed")
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "device": device})
	}
}

// DeviceTransactionsHandler lists the ledger of one table
func DeviceTransactionsHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()             // Context for store operations
		account := middleware.AccountNumber(c) // Authenticated account
		deviceID := c.Param("id")              // Device identifier from the path
		// Hide tables of other accounts
		if _, err := svc.Device(ctx, account, deviceID); err != nil {
			respondError(c, err)
			return
		}
		filter, ok := ledgerFilter(c)
		if !ok {
			return
		}
		filter.DeviceID = deviceID
		writeLedger(c, svc, account, filter)
	}
}

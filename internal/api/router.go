package api

import (
	"net/http" // HTTP status codes
	"time"     // Cache TTL

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client

	"pooltable_tracker/internal/middleware" // Authentication
	"pooltable_tracker/internal/service"    // Account operations
)

// SessionVerifier verifies and revokes session tokens
type SessionVerifier interface {
	middleware.TokenVerifier
	Revoker
}

// Deps are the collaborators the handlers need
type Deps struct {
	Service  *service.Service // Account operations
	Sessions SessionVerifier  // Token verification and logout
	Redis    *redis.Client    // Optional cache, nil disables it
	CacheTTL time.Duration    // Lifetime of cached views
}

// RegisterRoutes mounts every endpoint on r
func RegisterRoutes(r *gin.Engine, d Deps) {
	svc := d.Service

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Auth routes
	r.POST("/login", LoginHandler(svc))      // Login endpoint
	r.POST("/auth/login", LoginHandler(svc)) // Login endpoint, legacy path

	// Account routes (protected by JWT)
	authed := r.Group("")
	authed.Use(middleware.JWTAuthMiddleware(d.Sessions), middleware.AccountMatchMiddleware())
	authed.POST("/logout", LogoutHandler(d.Sessions))                        // Logout endpoint
	authed.GET("/dashboard", DashboardHandler(svc))                          // Dashboard endpoint
	authed.GET("/summary", SummaryHandler(svc, d.Redis, d.CacheTTL))         // Summary endpoint
	authed.GET("/devices", ListDevicesHandler(svc, d.Redis, d.CacheTTL))     // Device list endpoint
	authed.GET("/pool-tables", ListDevicesHandler(svc, d.Redis, d.CacheTTL)) // Device list endpoint, dashboard path
	authed.GET("/devices/:id", GetDeviceHandler(svc))                        // Device endpoint
	authed.GET("/devices/:id/balance", DeviceBalanceHandler(svc))            // Device balance endpoint
	authed.POST("/devices/:id", UpdateDeviceHandler(svc, d.Redis))           // Device update endpoint
	authed.GET("/devices/:id/transactions", DeviceTransactionsHandler(svc))  // Device ledger endpoint
	authed.GET("/transactions", TransactionsHandler(svc))                    // Ledger endpoint
	authed.GET("/withdrawals", ListWithdrawalsHandler(svc))                  // Withdrawal history endpoint
	authed.GET("/withdraw", ListWithdrawalsHandler(svc))                     // Withdrawal history endpoint, plugin path
	authed.POST("/withdraw", WithdrawHandler(svc, d.Redis))                  // Withdrawal endpoint
	authed.POST("/withdrawals", WithdrawHandler(svc, d.Redis))               // Withdrawal endpoint, dashboard path
	authed.POST("/support-tickets", SupportTicketHandler(svc))               // Support ticket endpoint
}

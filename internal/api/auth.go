package api

import (
	"context"  // Context for revocation
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging

	"pooltable_tracker/internal/middleware" // Context keys
	"pooltable_tracker/internal/service"    // Account operations
)

// Request struct for login
type LoginRequest struct {
	AccountID string `json:"accountId" binding:"required"` // Account number must be provided
	Password  string `json:"password" binding:"required"`  // Password must be provided
}

// Revoker invalidates session tokens before they expire
type Revoker interface {
	Revoke(ctx context.Context, token string) error
}

// LoginHandler authenticates an account and returns a JWT token
func LoginHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		token, account, err := svc.Login(c.Request.Context(), req.AccountID, req.Password)
		if err != nil {
			// Unknown accounts and wrong passwords look the same
			respondError(c, err)
			return
		}
		logrus.WithField("account", account.AccountNumber).Info("Login")
		// Return the token and the profile
		c.JSON(http.StatusOK, gin.H{"success": true, "token": token, "user": account})
	}
}

// LogoutHandler revokes the caller's token
func LogoutHandler(revoker Revoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetString(middleware.TokenKey) // Token stored by the JWT middleware
		if err := revoker.Revoke(c.Request.Context(), token); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out"})
	}
}

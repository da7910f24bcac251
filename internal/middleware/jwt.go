package middleware

import (
	"context"  // Context for token verification
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"github.com/gin-gonic/gin" // Gin web framework

	"pooltable_tracker/internal/domain" // Identity type
)

// Context keys set by JWTAuthMiddleware
const (
	IdentityKey      = "identity"      // *domain.Identity of the caller
	AccountNumberKey = "accountNumber" // Account number of the caller
	TokenKey         = "token"         // Raw bearer token
)

// TokenVerifier resolves a bearer token to the caller's identity
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*domain.Identity, error)
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": message})
}

// JWTAuthMiddleware validates bearer tokens and stores the caller's identity
func JWTAuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			// If not, abort with unauthorized status
			unauthorized(c, "Missing or invalid Authorization header")
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")           // Extract the token string
		identity, err := verifier.Verify(c.Request.Context(), tokenStr) // Verify the token
		if err != nil {
			// If verification fails, abort with unauthorized status
			unauthorized(c, "Invalid or expired token")
			return
		}
		c.Set(IdentityKey, identity)                    // Store identity in context
		c.Set(AccountNumberKey, identity.AccountNumber) // Store account number in context
		c.Set(TokenKey, tokenStr)                       // Store token for logout
		c.Next()                                        // Proceed to the next handler
	}
}

// AccountNumber returns the authenticated account number, empty if none
func AccountNumber(c *gin.Context) string {
	return c.GetString(AccountNumberKey)
}

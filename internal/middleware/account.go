package middleware

import (
	"github.com/gin-gonic/gin" // Gin web framework
)

// accountParams are the query parameters a client may name its account with
var accountParams = []string{"account_no", "accountNumber"}

// AccountMatchMiddleware rejects requests whose account query parameter names
// a different account than the token's
func AccountMatchMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := AccountNumber(c) // Get account number from context
		// Check if an identity was set by JWTAuthMiddleware
		if caller == "" {
			unauthorized(c, "Unauthorized")
			return
		}
		for _, p := range accountParams {
			// If the client names another account, abort
			if v := c.Query(p); v != "" && v != caller {
				unauthorized(c, "Account does not match token")
				return
			}
		}
		c.Next() // Proceed to the next handler
	}
}

package api

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework

	"pooltable_tracker/internal/middleware" // Caller identity
	"pooltable_tracker/internal/service"    // Account operations
)

// SupportTicketHandler opens a support ticket for the caller
func SupportTicketHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.TicketRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		ticket, err := svc.OpenTicket(c.Request.Context(), middleware.AccountNumber(c), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "ticket": ticket})
	}
}

package api

import (
	"errors"   // Error classification
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin"               // Gin web framework
	"github.com/go-playground/validator/v10" // Field validation errors
	"github.com/sirupsen/logrus"             // Logging

	"pooltable_tracker/internal/domain" // Sentinel errors
)

// fail writes the failure body shared by every endpoint
func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// respondError maps a service error to its HTTP status and message.
// Internal errors are logged and replaced by a generic message.
func respondError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		details := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			details[fe.Field()] = fe.Tag() // Failed rule per field
		}
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Validation failed", "details": details})
	case errors.Is(err, domain.ErrValidation):
		fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInsufficientFunds):
		fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		fail(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, domain.ErrAccountNotFound):
		fail(c, http.StatusNotFound, "Account not found")
	case errors.Is(err, domain.ErrDeviceNotFound):
		fail(c, http.StatusNotFound, "Device not found")
	case errors.Is(err, domain.ErrNotFound):
		fail(c, http.StatusNotFound, "Not found")
	default:
		logrus.WithFields(logrus.Fields{
			"path":  c.FullPath(), // Route
			"error": err.Error(),  // Error message
		}).Error("Request failed")
		fail(c, http.StatusInternalServerError, "Internal server error")
	}
}

// bindJSON binds the request body, reporting failures as validation errors
func bindJSON(c *gin.Context, dest any) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			respondError(c, err)
		} else {
			fail(c, http.StatusBadRequest, "Invalid request")
		}
		return false
	}
	return true
}

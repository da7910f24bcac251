package domain

import (
	"errors" // Sentinel errors
	"fmt"    // Wrapping
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrInvalidAmount     = fmt.Errorf("%w: invalid amount", ErrValidation)
	ErrUnauthorized      = errors.New("unauthorized")
	ErrNotFound          = errors.New("not found")
	ErrAccountNotFound   = fmt.Errorf("account %w", ErrNotFound)
	ErrDeviceNotFound    = fmt.Errorf("device %w", ErrNotFound)
	ErrInsufficientFunds = errors.New("insufficient funds")
)

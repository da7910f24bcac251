package service

import (
	"context" // Context for store calls
	"errors"  // Error classification

	"golang.org/x/crypto/bcrypt" // Password hashing

	"pooltable_tracker/internal/domain" // Importing domain models
	"pooltable_tracker/internal/utils"  // JWT helpers
)

// HashPassword hashes a credential for storage
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Login checks the credential and issues a session token.
// Unknown accounts and wrong passwords both report ErrUnauthorized.
func (s *Service) Login(ctx context.Context, accountNumber, password string) (string, *domain.Account, error) {
	account, err := s.authenticate(ctx, accountNumber, password)
	if errors.Is(err, domain.ErrNotFound) {
		return "", nil, domain.ErrUnauthorized
	}
	if err != nil {
		return "", nil, err
	}
	token, err := utils.GenerateJWT(account.AccountNumber, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, err
	}
	return token, account, nil
}

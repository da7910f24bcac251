// Package service implements the account operations behind the HTTP layer:
// withdrawals, reporting, ledger queries, device updates, support tickets and
// login. Handlers call it; it only talks to a store.Store.
package service

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"pooltable_tracker/internal/config"
	"pooltable_tracker/internal/store"
)

// Service bundles the store with the settings the operations need.
type Service struct {
	store         store.Store
	locker        *AccountLocker
	validate      *validator.Validate
	minWithdrawal decimal.Decimal
	jwtSecret     string
	jwtTTL        time.Duration
	now           func() time.Time
}

// New builds a Service on top of st.
func New(st store.Store, cfg *config.Config) *Service {
	v := validator.New()
	v.SetTagName("binding") // same tags gin binds with
	return &Service{
		store:         st,
		locker:        NewAccountLocker(),
		validate:      v,
		minWithdrawal: cfg.MinWithdrawal,
		jwtSecret:     cfg.JWTSecret,
		jwtTTL:        cfg.JWTTTL,
		now:           time.Now,
	}
}

// twoPlaces reports whether d has at most two decimal places.
func twoPlaces(d decimal.Decimal) bool {
	return d.Equal(d.Round(2))
}

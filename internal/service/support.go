package service

import (
	"context" // Context for validation and storage
	"errors"  // Joining validation errors

	"github.com/sirupsen/logrus" // Structured logging

	"pooltable_tracker/internal/domain" // Importing domain models
	"pooltable_tracker/internal/utils"  // ID generation
)

// TicketRequest is a new support request.
type TicketRequest struct {
	UserEmail string `json:"userEmail" binding:"required,email"`
	Subject   string `json:"subject" binding:"required,max=200"`
	Message   string `json:"message" binding:"required"`
}

// OpenTicket validates req and stores it as an open ticket.
func (s *Service) OpenTicket(ctx context.Context, accountNumber string, req TicketRequest) (*domain.SupportTicket, error) {
	// Validate request fields
	if err := s.validate.StructCtx(ctx, req); err != nil {
		return nil, errors.Join(domain.ErrValidation, err)
	}
	ticket := domain.SupportTicket{
		TicketID:      utils.NewID(utils.PrefixTicket),
		AccountNumber: accountNumber,
		UserEmail:     req.UserEmail,
		Subject:       req.Subject,
		Message:       req.Message,
		Status:        domain.TicketOpen, // New tickets start open
	}
	// Persist the ticket
	if err := s.store.CreateTicket(ctx, &ticket); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"account": accountNumber,   // Account number
		"ticket":  ticket.TicketID, // Ticket identifier
	}).Info("Support ticket opened")
	return &ticket, nil
}

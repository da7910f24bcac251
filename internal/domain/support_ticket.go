package domain

import "time" // Timestamps

// TicketOpen is the status of a newly created ticket
const TicketOpen = "open"

// SupportTicket Model
type SupportTicket struct {
	ID            uint      `gorm:"primaryKey" json:"id"`                         // Primary key
	TicketID      string    `gorm:"uniqueIndex;size:64;not null" json:"ticketId"` // Unique ticket identifier
	AccountNumber string    `gorm:"index;size:50;not null" json:"accountNumber"`  // Owning account
	UserEmail     string    `gorm:"size:255;not null" json:"userEmail"`           // Reply address
	Subject       string    `gorm:"size:200;not null" json:"subject"`             // Short subject
	Message       string    `gorm:"type:text;not null" json:"message"`            // Body
	Status        string    `gorm:"size:20;not null;default:open" json:"status"`  // open
	CreatedAt     time.Time `json:"createdAt"`                                    // Creation time
	UpdatedAt     time.Time `json:"updatedAt"`                                    // Last update time
}

package domain

// Account Model
type Account struct {
	ID            uint   `gorm:"primaryKey" json:"id"`                              // Primary key
	AccountNumber string `gorm:"uniqueIndex;size:50;not null" json:"accountNumber"` // Unique account number, also the login id
	Password      string `gorm:"not null" json:"-"`                                 // Hashed credential
	Name          string `gorm:"size:100;not null" json:"name"`                     // Display name of the account holder
	Email         string `gorm:"size:255" json:"email,omitempty"`                   // Contact email
	PhoneNumber   string `gorm:"size:20" json:"phoneNumber"`                        // Contact phone
}

// Identity is the authenticated caller resolved from a session token
type Identity struct {
	AccountNumber string // Account the token was issued for
	TokenID       string // Token identifier, used for revocation
}

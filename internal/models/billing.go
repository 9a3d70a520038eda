package models

import "time"

// Recipient identifies who receives an order.
type Recipient struct {
	FirstName    string `json:"first_name" validate:"required,min=2,max=100"`
	LastName     string `json:"last_name" validate:"required,min=2,max=100"`
	MobileNumber string `json:"mobile_number" validate:"required,min=7,max=20"`
}

// Address is a shipping/billing address.
type Address struct {
	Street  string `json:"street" validate:"required,max=200"`
	City    string `json:"city" validate:"required,max=100"`
	State   string `json:"state" validate:"required,max=100"`
	Country string `json:"country" validate:"required,max=100"`
}

// BillingInformation is a user's single saved billing record, upserted when
// the client opts to persist billing details during checkout.
type BillingInformation struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"uniqueIndex;type:varchar(36)"`
	Recipient Recipient `json:"recipient" gorm:"embedded;embeddedPrefix:recipient_"`
	Address   Address   `json:"address" gorm:"embedded;embeddedPrefix:address_"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

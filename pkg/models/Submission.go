package models

import (
	"fmt"
	"time"
)

var (
	ErrInvalidLimit = fmt.Errorf("limit must be greater than zero")
)

type BaseModel struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

type ContactSubmission struct {
	BaseModel

	Reference string `json:"reference"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
}

type DonationPledge struct {
	BaseModel

	Reference string  `json:"reference"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
}

type NewsletterSubscriber struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

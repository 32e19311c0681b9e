package models

import "strings"

const DefaultDonationCurrency = "BDT"

type DonationForm struct {
	Name     string  `json:"name" validate:"min=2"`
	Email    string  `json:"email" validate:"required,contains=@,contains=."`
	Phone    string  `json:"phone,omitempty"`
	Amount   float64 `json:"amount" validate:"gt=0"`
	Currency string  `json:"currency,omitempty"`
}

func (f DonationForm) Normalize() DonationForm {
	currency := strings.ToUpper(strings.TrimSpace(f.Currency))

	if currency == "" {
		currency = DefaultDonationCurrency
	}

	return DonationForm{
		Name:     strings.TrimSpace(f.Name),
		Email:    strings.ToLower(strings.TrimSpace(f.Email)),
		Phone:    strings.TrimSpace(f.Phone),
		Amount:   f.Amount,
		Currency: currency,
	}
}

package models

import "strings"

type SubscribeForm struct {
	Email string `json:"email" validate:"required,contains=@"`
}

func (f SubscribeForm) Normalize() SubscribeForm {
	return SubscribeForm{
		Email: strings.TrimSpace(f.Email),
	}
}

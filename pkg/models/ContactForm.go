package models

import "strings"

var ContactSubjects = []string{
	"volunteer",
	"partnership",
	"programs",
	"general",
	"other",
}

type ContactForm struct {
	Name    string `json:"name" validate:"min=2"`
	Email   string `json:"email" validate:"required,contains=@,contains=."`
	Subject string `json:"subject" validate:"oneof=volunteer partnership programs general other"`
	Message string `json:"message" validate:"min=10"`
}

/*
Normalize trims the free-text fields and lower-cases the email. Validation
runs against the normalized values.
*/
func (f ContactForm) Normalize() ContactForm {
	return ContactForm{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.ToLower(strings.TrimSpace(f.Email)),
		Subject: f.Subject,
		Message: strings.TrimSpace(f.Message),
	}
}

package models

type Email struct {
	To      []string
	Subject string
	HTML    string
	Text    string
	ReplyTo string
	Tags    map[string]string
}

type EmailResult struct {
	MessageID string
}

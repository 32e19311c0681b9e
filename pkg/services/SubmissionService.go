package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rfberaldo/sqlz"
	"github.com/unitedhandsbd/website/pkg/models"
)

const (
	contactReferencePrefix  = "CT-"
	donationReferencePrefix = "DN-"
)

type SubmissionServicer interface {
	RecordContact(ctx context.Context, form models.ContactForm) (models.ContactSubmission, error)
	RecordDonation(ctx context.Context, form models.DonationForm) (models.DonationPledge, error)
	RecordSubscriber(ctx context.Context, email string) error
	IsSubscribed(ctx context.Context, email string) (bool, error)
	RecentContacts(ctx context.Context, limit int) ([]models.ContactSubmission, error)
}

type SubmissionServiceConfig struct {
	DB *sqlz.DB
}

type SubmissionService struct {
	db *sqlz.DB
}

func NewSubmissionService(config SubmissionServiceConfig) SubmissionService {
	return SubmissionService{
		db: config.DB,
	}
}

func (s SubmissionService) RecordContact(ctx context.Context, form models.ContactForm) (models.ContactSubmission, error) {
	var (
		err error
	)

	result := models.ContactSubmission{
		Reference: newReference(contactReferencePrefix),
		Name:      form.Name,
		Email:     form.Email,
		Subject:   form.Subject,
		Message:   form.Message,
	}

	sql := `
INSERT INTO contact_submissions (
   reference
   , name
   , email
   , subject
   , message
) VALUES (?, ?, ?, ?, ?)
`

	params := []any{
		result.Reference,
		result.Name,
		result.Email,
		result.Subject,
		result.Message,
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	if _, err = s.db.Exec(ctx, sql, params...); err != nil {
		return result, fmt.Errorf("error recording contact submission from '%s': %w", form.Email, err)
	}

	return result, nil
}

func (s SubmissionService) RecordDonation(ctx context.Context, form models.DonationForm) (models.DonationPledge, error) {
	var (
		err error
	)

	result := models.DonationPledge{
		Reference: newReference(donationReferencePrefix),
		Name:      form.Name,
		Email:     form.Email,
		Phone:     form.Phone,
		Amount:    form.Amount,
		Currency:  form.Currency,
	}

	if result.Currency == "" {
		result.Currency = models.DefaultDonationCurrency
	}

	sql := `
INSERT INTO donation_pledges (
   reference
   , name
   , email
   , phone
   , amount
   , currency
) VALUES (?, ?, ?, ?, ?, ?)
`

	params := []any{
		result.Reference,
		result.Name,
		result.Email,
		result.Phone,
		result.Amount,
		result.Currency,
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	if _, err = s.db.Exec(ctx, sql, params...); err != nil {
		return result, fmt.Errorf("error recording donation pledge from '%s': %w", form.Email, err)
	}

	return result, nil
}

/*
RecordSubscriber archives a newsletter address. Recording the same address
twice is not an error.
*/
func (s SubmissionService) RecordSubscriber(ctx context.Context, email string) error {
	var (
		err error
	)

	sql := `
INSERT INTO newsletter_subscribers (email) VALUES (?)
ON CONFLICT (email) DO NOTHING
`

	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	if _, err = s.db.Exec(ctx, sql, normalizeEmail(email)); err != nil {
		return fmt.Errorf("error recording newsletter subscriber '%s': %w", email, err)
	}

	return nil
}

func (s SubmissionService) IsSubscribed(ctx context.Context, email string) (bool, error) {
	var (
		err        error
		subscriber models.NewsletterSubscriber
	)

	sql := `
SELECT
   id
   , email
FROM newsletter_subscribers
WHERE 1=1
   AND email = ?
`

	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	if err = s.db.QueryRow(ctx, &subscriber, sql, normalizeEmail(email)); err != nil {
		if sqlz.IsNotFound(err) {
			return false, nil
		}

		return false, fmt.Errorf("error checking newsletter subscriber '%s': %w", email, err)
	}

	return true, nil
}

func (s SubmissionService) RecentContacts(ctx context.Context, limit int) ([]models.ContactSubmission, error) {
	var (
		err error
	)

	result := []models.ContactSubmission{}

	if limit <= 0 {
		return result, models.ErrInvalidLimit
	}

	sql := `
SELECT
   id
   , created_at
   , reference
   , name
   , email
   , subject
   , message
FROM contact_submissions
ORDER BY id DESC
LIMIT ?
`

	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	if err = s.db.Query(ctx, &result, sql, limit); err != nil {
		return result, fmt.Errorf("error querying recent contact submissions: %w", err)
	}

	return result, nil
}

func newReference(prefix string) string {
	return prefix + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

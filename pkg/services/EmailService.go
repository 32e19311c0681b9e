package services

import (
	"context"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"net/url"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/unitedhandsbd/website/pkg/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	DefaultEmailFrom  = "United Hands Bangladesh <noreply@unitedhandsbd.org>"
	DefaultAdminEmail = "support@unitedhandsbd.org"

	templateContactConfirmation  = "contact-confirmation"
	templateContactNotification  = "contact-notification"
	templateDonationReceipt      = "donation-receipt"
	templateDonationNotification = "donation-notification"
)

//go:embed templates/email
var emailTemplateFS embed.FS

type EmailServicer interface {
	SendContactConfirmation(ctx context.Context, form models.ContactForm) (models.EmailResult, error)
	SendContactNotification(ctx context.Context, form models.ContactForm) (models.EmailResult, error)
	SendDonationReceipt(ctx context.Context, form models.DonationForm) (models.EmailResult, error)
	SendDonationNotification(ctx context.Context, form models.DonationForm) (models.EmailResult, error)
}

type EmailServiceConfig struct {
	AdminEmail string
	Now        func() time.Time
	Sender     EmailSender
}

type EmailService struct {
	adminEmail    string
	now           func() time.Time
	sender        EmailSender
	htmlTemplates map[string]*htmltemplate.Template
	textTemplates map[string]*texttemplate.Template
}

type emailTemplateData struct {
	Name     string
	Email    string
	Subject  string
	Message  string
	Phone    string
	PhoneURL htmltemplate.URL
	Amount   string
	Currency string
	Date     string
}

func NewEmailService(config EmailServiceConfig) (EmailService, error) {
	var (
		err error
	)

	result := EmailService{
		adminEmail:    config.AdminEmail,
		now:           config.Now,
		sender:        config.Sender,
		htmlTemplates: map[string]*htmltemplate.Template{},
		textTemplates: map[string]*texttemplate.Template{},
	}

	if result.adminEmail == "" {
		result.adminEmail = DefaultAdminEmail
	}

	if result.now == nil {
		result.now = time.Now
	}

	names := []string{
		templateContactConfirmation,
		templateContactNotification,
		templateDonationReceipt,
		templateDonationNotification,
	}

	for _, name := range names {
		if result.htmlTemplates[name], err = htmltemplate.ParseFS(emailTemplateFS, "templates/email/layout.html", "templates/email/"+name+".html"); err != nil {
			return result, fmt.Errorf("error parsing html email template '%s': %w", name, err)
		}

		if result.textTemplates[name], err = texttemplate.ParseFS(emailTemplateFS, "templates/email/footer.txt", "templates/email/"+name+".txt"); err != nil {
			return result, fmt.Errorf("error parsing text email template '%s': %w", name, err)
		}
	}

	return result, nil
}

func (s EmailService) SendContactConfirmation(ctx context.Context, form models.ContactForm) (models.EmailResult, error) {
	data := emailTemplateData{
		Name:    form.Name,
		Email:   form.Email,
		Subject: form.Subject,
		Message: form.Message,
	}

	return s.send(ctx, templateContactConfirmation, data, models.Email{
		To:      []string{form.Email},
		Subject: "Thank you for contacting United Hands Bangladesh",
		Tags:    map[string]string{"type": templateContactConfirmation},
	})
}

func (s EmailService) SendContactNotification(ctx context.Context, form models.ContactForm) (models.EmailResult, error) {
	data := emailTemplateData{
		Name:    form.Name,
		Email:   form.Email,
		Subject: form.Subject,
		Message: form.Message,
	}

	return s.send(ctx, templateContactNotification, data, models.Email{
		To:      []string{s.adminEmail},
		Subject: fmt.Sprintf("New Contact: %s", form.Subject),
		ReplyTo: form.Email,
		Tags:    map[string]string{"type": templateContactNotification},
	})
}

func (s EmailService) SendDonationReceipt(ctx context.Context, form models.DonationForm) (models.EmailResult, error) {
	data := s.donationData(form, "January 2, 2006")

	return s.send(ctx, templateDonationReceipt, data, models.Email{
		To:      []string{form.Email},
		Subject: "Thank you for your donation - United Hands Bangladesh",
		Tags:    map[string]string{"type": templateDonationReceipt},
	})
}

func (s EmailService) SendDonationNotification(ctx context.Context, form models.DonationForm) (models.EmailResult, error) {
	data := s.donationData(form, "Monday, January 2, 2006 at 3:04 PM")

	return s.send(ctx, templateDonationNotification, data, models.Email{
		To:      []string{s.adminEmail},
		Subject: fmt.Sprintf("New Donation: %s %s", data.Amount, data.Currency),
		ReplyTo: form.Email,
		Tags:    map[string]string{"type": templateDonationNotification},
	})
}

func (s EmailService) donationData(form models.DonationForm, dateLayout string) emailTemplateData {
	currency := form.Currency

	if currency == "" {
		currency = models.DefaultDonationCurrency
	}

	data := emailTemplateData{
		Name:     form.Name,
		Email:    form.Email,
		Phone:    form.Phone,
		Amount:   FormatAmount(form.Amount),
		Currency: currency,
		Date:     s.now().Format(dateLayout),
	}

	if form.Phone != "" {
		data.PhoneURL = htmltemplate.URL("tel:" + url.PathEscape(form.Phone))
	}

	return data
}

func (s EmailService) send(ctx context.Context, templateName string, data emailTemplateData, email models.Email) (models.EmailResult, error) {
	var (
		err      error
		htmlBody strings.Builder
		textBody strings.Builder
	)

	if err = s.htmlTemplates[templateName].ExecuteTemplate(&htmlBody, "layout", data); err != nil {
		return models.EmailResult{}, fmt.Errorf("error rendering html template '%s': %w", templateName, err)
	}

	if err = s.textTemplates[templateName].ExecuteTemplate(&textBody, templateName+".txt", data); err != nil {
		return models.EmailResult{}, fmt.Errorf("error rendering text template '%s': %w", templateName, err)
	}

	email.HTML = htmlBody.String()
	email.Text = strings.TrimSpace(textBody.String())

	return s.sender.Send(ctx, email)
}

/*
FormatAmount renders a donation amount with Bangladeshi English digit
grouping and no forced fraction digits.
*/
func FormatAmount(amount float64) string {
	p := message.NewPrinter(language.MustParse("en-BD"))
	return p.Sprint(number.Decimal(amount, number.MaxFractionDigits(2)))
}

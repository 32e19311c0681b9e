package services

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/resend/resend-go/v3"
	"github.com/unitedhandsbd/website/pkg/models"
)

const mockMessageIDPrefix = "mock-"

var (
	textPolicy     *bluemonday.Policy
	textPolicyOnce sync.Once

	blankLines = regexp.MustCompile(`\n\s*\n+`)
	spaceRuns  = regexp.MustCompile(`[ \t]+`)
)

/*
EmailSender delivers a fully rendered email. Implementations return the
provider's message ID.
*/
type EmailSender interface {
	Send(ctx context.Context, email models.Email) (models.EmailResult, error)
}

type ResendSenderConfig struct {
	APIKey string
	From   string
}

type ResendSender struct {
	client *resend.Client
	from   string
}

func NewResendSender(config ResendSenderConfig) ResendSender {
	from := config.From

	if from == "" {
		from = DefaultEmailFrom
	}

	return ResendSender{
		client: resend.NewClient(config.APIKey),
		from:   from,
	}
}

func (s ResendSender) Send(ctx context.Context, email models.Email) (models.EmailResult, error) {
	var (
		err      error
		response *resend.SendEmailResponse
	)

	text := email.Text

	if text == "" {
		text = HTMLToText(email.HTML)
	}

	request := &resend.SendEmailRequest{
		From:    s.from,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    text,
		ReplyTo: email.ReplyTo,
		Tags:    resendTags(email.Tags),
	}

	if response, err = s.client.Emails.SendWithContext(ctx, request); err != nil {
		return models.EmailResult{}, fmt.Errorf("error sending email '%s' through resend: %w", email.Subject, err)
	}

	slog.Info("email sent", "to", strings.Join(email.To, ","), "subject", email.Subject, "messageID", response.Id)
	return models.EmailResult{MessageID: response.Id}, nil
}

func resendTags(tags map[string]string) []resend.Tag {
	if len(tags) == 0 {
		return nil
	}

	names := make([]string, 0, len(tags))

	for name := range tags {
		names = append(names, name)
	}

	sort.Strings(names)
	result := make([]resend.Tag, 0, len(names))

	for _, name := range names {
		result = append(result, resend.Tag{Name: name, Value: tags[name]})
	}

	return result
}

/*
LogSender stands in for a real provider when no API key is configured. It
logs a preview of each email and reports a mock message ID.
*/
type LogSender struct{}

func (LogSender) Send(ctx context.Context, email models.Email) (models.EmailResult, error) {
	preview := email.Text

	if preview == "" {
		preview = HTMLToText(email.HTML)
	}

	if len(preview) > 200 {
		preview = preview[:200] + "..."
	}

	id := mockMessageIDPrefix + uuid.NewString()

	slog.Warn("email provider not configured, logging email instead",
		"to", strings.Join(email.To, ","),
		"subject", email.Subject,
		"replyTo", email.ReplyTo,
		"preview", preview,
		"messageID", id,
	)

	return models.EmailResult{MessageID: id}, nil
}

/*
HTMLToText strips all markup from an HTML body, unescapes entities, and
collapses whitespace so the result reads as a plain-text email.
*/
func HTMLToText(body string) string {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})

	text := html.UnescapeString(textPolicy.Sanitize(body))
	lines := strings.Split(text, "\n")

	for i, line := range lines {
		lines[i] = strings.TrimSpace(spaceRuns.ReplaceAllString(line, " "))
	}

	text = strings.Join(lines, "\n")
	text = blankLines.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}

package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const DefaultMailerLiteURL = "https://connect.mailerlite.com/api"

type NewsletterServicer interface {
	Subscribe(ctx context.Context, email string) error
	Configured() bool
}

type NewsletterServiceConfig struct {
	APIKey     string
	APIURL     string
	GroupID    string
	HttpClient *http.Client
}

type NewsletterService struct {
	apiKey     string
	apiURL     string
	groupID    string
	httpClient *http.Client
}

type mailerLiteSubscriber struct {
	Email  string   `json:"email"`
	Groups []string `json:"groups,omitempty"`
}

func NewNewsletterService(config NewsletterServiceConfig) NewsletterService {
	result := NewsletterService{
		apiKey:     config.APIKey,
		apiURL:     strings.TrimRight(config.APIURL, "/"),
		groupID:    config.GroupID,
		httpClient: config.HttpClient,
	}

	if result.apiURL == "" {
		result.apiURL = DefaultMailerLiteURL
	}

	if result.httpClient == nil {
		result.httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return result
}

func (s NewsletterService) Configured() bool {
	return s.apiKey != ""
}

/*
Subscribe adds the address to the MailerLite group. When no API key is
configured the subscription is only logged.
*/
func (s NewsletterService) Subscribe(ctx context.Context, email string) error {
	var (
		err      error
		body     []byte
		request  *http.Request
		response *http.Response
	)

	if !s.Configured() {
		slog.Info("newsletter provider not configured, logging subscription", "email", email)
		return nil
	}

	payload := mailerLiteSubscriber{Email: email}

	if s.groupID != "" {
		payload.Groups = []string{s.groupID}
	}

	if body, err = json.Marshal(payload); err != nil {
		return fmt.Errorf("error encoding subscriber '%s': %w", email, err)
	}

	if request, err = http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL+"/subscribers", bytes.NewReader(body)); err != nil {
		return fmt.Errorf("error building subscribe request: %w", err)
	}

	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")
	request.Header.Set("Authorization", "Bearer "+s.apiKey)

	if response, err = s.httpClient.Do(request); err != nil {
		return fmt.Errorf("error calling newsletter provider: %w", err)
	}

	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(response.Body, 4096))
		return fmt.Errorf("newsletter provider returned %d: %s", response.StatusCode, strings.TrimSpace(string(b)))
	}

	slog.Info("newsletter subscription added", "email", email)
	return nil
}

package contact

import (
	"log/slog"
	"net/http"

	"github.com/unitedhandsbd/website/cmd/website/internal/responses"
	"github.com/unitedhandsbd/website/pkg/models"
	"github.com/unitedhandsbd/website/pkg/services"
	"golang.org/x/sync/errgroup"
)

const (
	contactSuccessMessage = "Thank you for your message. We will get back to you soon!"
	contactFailureMessage = "Failed to submit contact form. Please try again."
)

var contactValidationMessages = map[string]string{
	"Name":    "Valid name is required (minimum 2 characters)",
	"Email":   "Valid email address is required",
	"Subject": "Valid subject is required",
	"Message": "Message must be at least 10 characters",
}

type ContactHandlers interface {
	SubmitContact(w http.ResponseWriter, r *http.Request)
}

type ContactControllerConfig struct {
	EmailService      services.EmailServicer
	SubmissionService services.SubmissionServicer
}

type ContactController struct {
	emailService      services.EmailServicer
	submissionService services.SubmissionServicer
}

func NewContactController(config ContactControllerConfig) ContactController {
	return ContactController{
		emailService:      config.EmailService,
		submissionService: config.SubmissionService,
	}
}

/*
POST /api/contact
*/
func (c ContactController) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var (
		err  error
		form models.ContactForm
	)

	if err = responses.DecodeJSON(r, &form); err != nil {
		slog.Error("error decoding contact form", "error", err)
		responses.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	form = form.Normalize()

	if message, ok := responses.Validate(form, contactValidationMessages, "Invalid request body"); !ok {
		responses.WriteError(w, http.StatusBadRequest, message)
		return
	}

	if c.submissionService != nil {
		if submission, err := c.submissionService.RecordContact(r.Context(), form); err != nil {
			slog.Error("error archiving contact submission", "email", form.Email, "error", err)
		} else {
			slog.Info("contact submission archived", "reference", submission.Reference)
		}
	}

	g, ctx := errgroup.WithContext(r.Context())

	g.Go(func() error {
		if _, err := c.emailService.SendContactConfirmation(ctx, form); err != nil {
			slog.Error("error sending contact confirmation", "email", form.Email, "error", err)
		}

		return nil
	})

	g.Go(func() error {
		_, err := c.emailService.SendContactNotification(ctx, form)
		return err
	})

	if err = g.Wait(); err != nil {
		slog.Error("error sending contact notification", "email", form.Email, "error", err)
		responses.WriteError(w, http.StatusInternalServerError, contactFailureMessage)
		return
	}

	responses.WriteSuccess(w, contactSuccessMessage)
}

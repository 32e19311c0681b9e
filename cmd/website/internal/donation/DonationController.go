package donation

import (
	"log/slog"
	"net/http"

	"github.com/unitedhandsbd/website/cmd/website/internal/responses"
	"github.com/unitedhandsbd/website/pkg/models"
	"github.com/unitedhandsbd/website/pkg/services"
	"golang.org/x/sync/errgroup"
)

const (
	donationSuccessMessage = "Thank you for your donation pledge. Our team will contact you shortly."
	donationFailureMessage = "Failed to submit donation. Please try again."
)

var donationValidationMessages = map[string]string{
	"Name":   "Valid name is required (minimum 2 characters)",
	"Email":  "Valid email address is required",
	"Amount": "Donation amount must be greater than zero",
}

type DonationHandlers interface {
	SubmitDonation(w http.ResponseWriter, r *http.Request)
}

type DonationControllerConfig struct {
	EmailService      services.EmailServicer
	SubmissionService services.SubmissionServicer
}

type DonationController struct {
	emailService      services.EmailServicer
	submissionService services.SubmissionServicer
}

type donationResponse struct {
	responses.SuccessResponse

	Reference string `json:"reference,omitempty"`
}

func NewDonationController(config DonationControllerConfig) DonationController {
	return DonationController{
		emailService:      config.EmailService,
		submissionService: config.SubmissionService,
	}
}

/*
POST /api/donate
*/
func (c DonationController) SubmitDonation(w http.ResponseWriter, r *http.Request) {
	var (
		err       error
		form      models.DonationForm
		reference string
	)

	if err = responses.DecodeJSON(r, &form); err != nil {
		slog.Error("error decoding donation form", "error", err)
		responses.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	form = form.Normalize()

	if message, ok := responses.Validate(form, donationValidationMessages, "Invalid request body"); !ok {
		responses.WriteError(w, http.StatusBadRequest, message)
		return
	}

	if c.submissionService != nil {
		if pledge, err := c.submissionService.RecordDonation(r.Context(), form); err != nil {
			slog.Error("error archiving donation pledge", "email", form.Email, "error", err)
		} else {
			reference = pledge.Reference
		}
	}

	g, ctx := errgroup.WithContext(r.Context())

	g.Go(func() error {
		if _, err := c.emailService.SendDonationReceipt(ctx, form); err != nil {
			slog.Error("error sending donation receipt", "email", form.Email, "error", err)
		}

		return nil
	})

	g.Go(func() error {
		_, err := c.emailService.SendDonationNotification(ctx, form)
		return err
	})

	if err = g.Wait(); err != nil {
		slog.Error("error sending donation notification", "email", form.Email, "error", err)
		responses.WriteError(w, http.StatusInternalServerError, donationFailureMessage)
		return
	}

	slog.Info("donation pledge received", "reference", reference, "amount", form.Amount, "currency", form.Currency)

	responses.WriteJSON(w, http.StatusOK, donationResponse{
		SuccessResponse: responses.SuccessResponse{Success: true, Message: donationSuccessMessage},
		Reference:       reference,
	})
}

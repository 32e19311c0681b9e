package newsletter

import (
	"log/slog"
	"net/http"

	"github.com/unitedhandsbd/website/cmd/website/internal/responses"
	"github.com/unitedhandsbd/website/pkg/models"
	"github.com/unitedhandsbd/website/pkg/services"
)

const (
	subscribeSuccessMessage = "Subscribed successfully"
	subscribeInvalidMessage = "Valid email required"
	subscribeFailureMessage = "Subscription failed"
)

type NewsletterHandlers interface {
	Subscribe(w http.ResponseWriter, r *http.Request)
}

type NewsletterControllerConfig struct {
	NewsletterService services.NewsletterServicer
	SubmissionService services.SubmissionServicer
}

type NewsletterController struct {
	newsletterService services.NewsletterServicer
	submissionService services.SubmissionServicer
}

func NewNewsletterController(config NewsletterControllerConfig) NewsletterController {
	return NewsletterController{
		newsletterService: config.NewsletterService,
		submissionService: config.SubmissionService,
	}
}

/*
POST /api/subscribe
*/
func (c NewsletterController) Subscribe(w http.ResponseWriter, r *http.Request) {
	var (
		err        error
		form       models.SubscribeForm
		subscribed bool
	)

	if err = responses.DecodeJSON(r, &form); err != nil {
		slog.Error("error decoding subscribe form", "error", err)
		responses.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	form = form.Normalize()

	if message, ok := responses.Validate(form, nil, subscribeInvalidMessage); !ok {
		responses.WriteError(w, http.StatusBadRequest, message)
		return
	}

	if c.submissionService != nil {
		if subscribed, err = c.submissionService.IsSubscribed(r.Context(), form.Email); err != nil {
			slog.Error("error checking existing subscription", "email", form.Email, "error", err)
		}

		if subscribed {
			slog.Info("address already subscribed", "email", form.Email)
			responses.WriteSuccess(w, subscribeSuccessMessage)
			return
		}
	}

	if err = c.newsletterService.Subscribe(r.Context(), form.Email); err != nil {
		slog.Error("error subscribing to newsletter", "email", form.Email, "error", err)
		responses.WriteError(w, http.StatusInternalServerError, subscribeFailureMessage)
		return
	}

	if c.submissionService != nil {
		if err = c.submissionService.RecordSubscriber(r.Context(), form.Email); err != nil {
			slog.Error("error archiving newsletter subscriber", "email", form.Email, "error", err)
		}
	}

	responses.WriteSuccess(w, subscribeSuccessMessage)
}

package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/adampresley/adamgokit/mux"
	"github.com/rfberaldo/sqlz"
	"github.com/unitedhandsbd/website/cmd/website/internal/configuration"
	"github.com/unitedhandsbd/website/cmd/website/internal/contact"
	"github.com/unitedhandsbd/website/cmd/website/internal/donation"
	"github.com/unitedhandsbd/website/cmd/website/internal/gallery"
	"github.com/unitedhandsbd/website/cmd/website/internal/newsletter"
	"github.com/unitedhandsbd/website/pkg/database"
	"github.com/unitedhandsbd/website/pkg/services"
)

var (
	Version string = "development"
	appName string = "unitedhandsbd"

	config configuration.Config

	/* Services */
	db                *sqlz.DB
	emailSender       services.EmailSender
	emailService      services.EmailServicer
	facebookClient    services.FacebookClienter
	galleryService    services.GalleryServicer
	newsletterService services.NewsletterServicer
	submissionService services.SubmissionServicer

	/* Controllers */
	contactController    contact.ContactHandlers
	donationController   donation.DonationHandlers
	galleryController    gallery.GalleryHandlers
	newsletterController newsletter.NewsletterHandlers
)

func main() {
	var (
		err error
	)

	config = configuration.LoadConfig()
	setupLogger(&config, Version)

	slog.Info("configuration loaded",
		slog.String("app", appName),
		slog.String("version", Version),
		slog.String("loglevel", config.LogLevel),
		slog.String("host", config.Host),
		slog.String("facebookPageID", config.FacebookPageID),
		slog.Bool("emailConfigured", config.ResendApiKey != ""),
		slog.Bool("newsletterConfigured", config.MailerLiteApiKey != ""),
	)

	slog.Debug("setting up...")

	/*
	 * Setup services
	 */
	if db, err = database.Connect(config.DSN); err != nil {
		panic(err)
	}

	if err = database.Migrate(db); err != nil {
		panic(err)
	}

	httpClient := &http.Client{
		Timeout: time.Duration(config.HttpClientTimeout) * time.Second,
	}

	if config.ResendApiKey == "" {
		slog.Warn("RESEND_API_KEY is not set, emails will be logged only")
		emailSender = services.LogSender{}
	} else {
		emailSender = services.NewResendSender(services.ResendSenderConfig{
			APIKey: config.ResendApiKey,
			From:   config.EmailFrom,
		})
	}

	if emailService, err = services.NewEmailService(services.EmailServiceConfig{
		AdminEmail: config.AdminEmail,
		Sender:     emailSender,
	}); err != nil {
		panic(err)
	}

	facebookClient = services.NewFacebookClient(services.FacebookClientConfig{
		BaseURL:    config.FacebookGraphURL,
		HttpClient: httpClient,
	})

	galleryService = services.NewGalleryService(services.GalleryServiceConfig{
		FacebookClient: facebookClient,
	})

	newsletterService = services.NewNewsletterService(services.NewsletterServiceConfig{
		APIKey:     config.MailerLiteApiKey,
		APIURL:     config.MailerLiteApiURL,
		GroupID:    config.MailerLiteGroupID,
		HttpClient: httpClient,
	})

	submissionService = services.NewSubmissionService(services.SubmissionServiceConfig{
		DB: db,
	})

	/*
	 * Setup controllers
	 */
	contactController = contact.NewContactController(contact.ContactControllerConfig{
		EmailService:      emailService,
		SubmissionService: submissionService,
	})

	donationController = donation.NewDonationController(donation.DonationControllerConfig{
		EmailService:      emailService,
		SubmissionService: submissionService,
	})

	galleryController = gallery.NewGalleryController(gallery.GalleryControllerConfig{
		AccessToken:    config.FacebookAccessToken,
		DefaultLimit:   config.GalleryDefaultLimit,
		GalleryService: galleryService,
		MaxLimit:       config.GalleryMaxLimit,
		PageID:         config.FacebookPageID,
	})

	newsletterController = newsletter.NewNewsletterController(newsletter.NewsletterControllerConfig{
		NewsletterService: newsletterService,
		SubmissionService: submissionService,
	})

	/*
	 * Setup router and http server
	 */
	slog.Debug("setting up routes...")

	requestLogger := newRequestLoggerMiddleware([]string{
		"/heartbeat",
	})

	routes := []mux.Route{
		{Path: "GET /heartbeat", HandlerFunc: heartbeat},
		{Path: "GET /api/gallery", HandlerFunc: galleryController.GetGallery, Middlewares: []mux.MiddlewareFunc{requestLogger}},
		{Path: "POST /api/contact", HandlerFunc: contactController.SubmitContact, Middlewares: []mux.MiddlewareFunc{requestLogger}},
		{Path: "POST /api/subscribe", HandlerFunc: newsletterController.Subscribe, Middlewares: []mux.MiddlewareFunc{requestLogger}},
		{Path: "POST /api/donate", HandlerFunc: donationController.SubmitDonation, Middlewares: []mux.MiddlewareFunc{requestLogger}},
	}

	routerConfig := mux.RouterConfig{
		Address:          config.Host,
		Debug:            Version == "development",
		HttpWriteTimeout: 60,
	}

	m := mux.SetupRouter(routerConfig, routes)
	httpServer, quit := mux.SetupServer(routerConfig, m)

	/*
	 * Wait for graceful shutdown
	 */
	slog.Info("server started")

	<-quit

	mux.Shutdown(httpServer)
	slog.Info("server stopped")
}

func heartbeat(w http.ResponseWriter, r *http.Request) {
	httphelpers.TextOK(w, "OK")
}

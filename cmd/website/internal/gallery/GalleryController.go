package gallery

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/unitedhandsbd/website/cmd/website/internal/responses"
	"github.com/unitedhandsbd/website/pkg/models"
	"github.com/unitedhandsbd/website/pkg/services"
)

type GalleryHandlers interface {
	GetGallery(w http.ResponseWriter, r *http.Request)
}

type GalleryControllerConfig struct {
	AccessToken    string
	DefaultLimit   int
	GalleryService services.GalleryServicer
	MaxLimit       int
	PageID         string
}

type GalleryController struct {
	accessToken    string
	defaultLimit   int
	galleryService services.GalleryServicer
	maxLimit       int
	pageID         string
}

func NewGalleryController(config GalleryControllerConfig) GalleryController {
	result := GalleryController{
		accessToken:    config.AccessToken,
		defaultLimit:   config.DefaultLimit,
		galleryService: config.GalleryService,
		maxLimit:       config.MaxLimit,
		pageID:         config.PageID,
	}

	if result.defaultLimit <= 0 {
		result.defaultLimit = models.DefaultGalleryLimit
	}

	if result.maxLimit < result.defaultLimit {
		result.maxLimit = result.defaultLimit
	}

	return result
}

/*
GET /api/gallery
*/
func (c GalleryController) GetGallery(w http.ResponseWriter, r *http.Request) {
	var (
		err    error
		since  time.Time
		images []models.GalleryImage
	)

	if c.pageID == "" || c.accessToken == "" {
		slog.Warn("gallery requested but facebook page is not configured")
		responses.WriteJSON(w, http.StatusOK, []models.GalleryImage{})
		return
	}

	limit := httphelpers.GetFromRequest[int](r, "limit")

	if limit <= 0 {
		limit = c.defaultLimit
	}

	if limit > c.maxLimit {
		limit = c.maxLimit
	}

	sinceParam := httphelpers.GetFromRequest[string](r, "since")

	if sinceParam != "" {
		if since, err = time.Parse(time.RFC3339, sinceParam); err != nil {
			responses.WriteError(w, http.StatusBadRequest, "Invalid since parameter")
			return
		}

		images = c.galleryService.PhotosSince(r.Context(), c.pageID, c.accessToken, since, limit)
	} else {
		images = c.galleryService.Aggregate(r.Context(), c.pageID, c.accessToken, limit)
	}

	w.Header().Set("Cache-Control", "public, max-age=300")
	responses.WriteJSON(w, http.StatusOK, images)
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/unitedhandsbd/website/pkg/models"
)

const (
	pagePhotosPageSize = 50
	albumPhotoLimit    = 50

	pagePhotoFallbackAlt = "United Hands Bangladesh community photo"

	idealMinWidth = 800
	idealMaxWidth = 1600
)

type GalleryServicer interface {
	Aggregate(ctx context.Context, pageID, accessToken string, limit int) []models.GalleryImage
	PhotosSince(ctx context.Context, pageID, accessToken string, since time.Time, limit int) []models.GalleryImage
}

type GalleryServiceConfig struct {
	FacebookClient FacebookClienter
}

type GalleryService struct {
	facebookClient FacebookClienter
}

/*
FetchResult is what one sub-fetch contributed. When Err is set, Items is
empty: a failed collection contributes nothing, but never aborts the others.
*/
type FetchResult[T any] struct {
	Items []T
	Err   error
}

func (r FetchResult[T]) OK() bool {
	return r.Err == nil
}

/*
photoCollection is one photo-bearing source: either the page's own uploads
or a single album. Name is empty for page uploads.
*/
type photoCollection struct {
	name        string
	firstURL    string
	limit       int
	fallbackAlt string
}

func NewGalleryService(config GalleryServiceConfig) GalleryService {
	return GalleryService{
		facebookClient: config.FacebookClient,
	}
}

/*
Aggregate gathers the page's uploaded photos followed by the photos of every
non-system album, and returns at most limit unique images, newest first.
Upstream failures are logged and never returned.
*/
func (s GalleryService) Aggregate(ctx context.Context, pageID, accessToken string, limit int) []models.GalleryImage {
	if limit <= 0 {
		limit = models.DefaultGalleryLimit
	}

	l := slog.With("pageID", pageID, "limit", limit)

	result := make([]models.GalleryImage, 0, limit)
	seen := map[string]struct{}{}

	add := func(images []models.GalleryImage) {
		for _, img := range images {
			if len(result) >= limit {
				return
			}

			if _, ok := seen[img.ID]; ok {
				continue
			}

			seen[img.ID] = struct{}{}
			result = append(result, img)
		}
	}

	pagePhotos := s.listPagePhotos(ctx, pageID, accessToken, limit)

	if !pagePhotos.OK() {
		l.Error("error fetching page photos", "error", pagePhotos.Err)
	}

	add(pagePhotos.Items)

	albums := s.listAlbums(ctx, pageID, accessToken)

	if !albums.OK() {
		l.Error("error fetching albums", "error", albums.Err)
	}

	for _, album := range albums.Items {
		if len(result) >= limit {
			break
		}

		if album.IsSystemAlbum() {
			continue
		}

		albumPhotos := s.listAlbumPhotos(ctx, album, accessToken)

		if !albumPhotos.OK() {
			l.Error("error fetching album photos", "albumID", album.ID, "albumName", album.Name, "error", albumPhotos.Err)
			continue
		}

		add(albumPhotos.Items)
	}

	sortNewestFirst(result)

	l.Info("gallery aggregated", "images", len(result), "albums", len(albums.Items))
	return result
}

/*
PhotosSince returns the page's uploaded photos created strictly after since.
*/
func (s GalleryService) PhotosSince(ctx context.Context, pageID, accessToken string, since time.Time, limit int) []models.GalleryImage {
	if limit <= 0 {
		limit = models.DefaultGalleryLimit
	}

	pagePhotos := s.listPagePhotos(ctx, pageID, accessToken, limit)

	if !pagePhotos.OK() {
		slog.Error("error fetching page photos", "pageID", pageID, "error", pagePhotos.Err)
	}

	result := []models.GalleryImage{}

	for _, img := range pagePhotos.Items {
		if img.CreatedTime().After(since) {
			result = append(result, img)
		}
	}

	sortNewestFirst(result)
	return result
}

func (s GalleryService) listAlbums(ctx context.Context, pageID, accessToken string) FetchResult[models.FacebookAlbum] {
	var (
		err  error
		page models.FacebookAlbumPage
	)

	albums := []models.FacebookAlbum{}

	for next := s.facebookClient.AlbumsURL(pageID, accessToken); next != ""; next = page.NextURL() {
		if page, err = s.facebookClient.GetAlbumPage(ctx, next); err != nil {
			return FetchResult[models.FacebookAlbum]{Err: fmt.Errorf("error listing albums for page %s: %w", pageID, err)}
		}

		albums = append(albums, page.Data...)
	}

	return FetchResult[models.FacebookAlbum]{Items: albums}
}

func (s GalleryService) listPagePhotos(ctx context.Context, pageID, accessToken string, limit int) FetchResult[models.GalleryImage] {
	return s.listPhotos(ctx, photoCollection{
		firstURL:    s.facebookClient.PagePhotosURL(pageID, accessToken, pagePhotosPageSize),
		limit:       limit,
		fallbackAlt: pagePhotoFallbackAlt,
	})
}

func (s GalleryService) listAlbumPhotos(ctx context.Context, album models.FacebookAlbum, accessToken string) FetchResult[models.GalleryImage] {
	return s.listPhotos(ctx, photoCollection{
		name:        album.Name,
		firstURL:    s.facebookClient.AlbumPhotosURL(album.ID, accessToken, albumPhotoLimit),
		limit:       albumPhotoLimit,
		fallbackAlt: fmt.Sprintf("Photo from %s", album.Name),
	})
}

/*
listPhotos walks one collection's cursor pages until the cursor runs out or
the collection has contributed its limit.
*/
func (s GalleryService) listPhotos(ctx context.Context, collection photoCollection) FetchResult[models.GalleryImage] {
	var (
		err  error
		page models.FacebookPhotoPage
	)

	images := []models.GalleryImage{}
	next := collection.firstURL

	for next != "" && len(images) < collection.limit {
		if page, err = s.facebookClient.GetPhotoPage(ctx, next); err != nil {
			return FetchResult[models.GalleryImage]{Err: err}
		}

		for _, photo := range page.Data {
			if len(images) >= collection.limit {
				break
			}

			if img, ok := normalizePhoto(photo, collection); ok {
				images = append(images, img)
			}
		}

		next = page.NextURL()
	}

	return FetchResult[models.GalleryImage]{Items: images}
}

func normalizePhoto(photo models.FacebookPhoto, collection photoCollection) (models.GalleryImage, bool) {
	if len(photo.Images) == 0 {
		return models.GalleryImage{}, false
	}

	best := BestRendition(photo.Images)
	alt := photo.Name

	if alt == "" {
		alt = collection.fallbackAlt
	}

	return models.GalleryImage{
		ID:        models.GalleryImageIDPrefix + photo.ID,
		Src:       best.Source,
		Alt:       alt,
		Category:  Categorize(collection.name, photo.Name),
		CreatedAt: photo.CreatedTime,
		Width:     best.Width,
		Height:    best.Height,
	}, true
}

/*
BestRendition prefers the largest rendition between 800 and 1600 pixels
wide, falling back to the largest overall. renditions must not be empty.
*/
func BestRendition(renditions []models.FacebookPhotoRendition) models.FacebookPhotoRendition {
	sorted := make([]models.FacebookPhotoRendition, len(renditions))
	copy(sorted, renditions)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Area() > sorted[j].Area()
	})

	for _, r := range sorted {
		if r.Width >= idealMinWidth && r.Width <= idealMaxWidth {
			return r
		}
	}

	return sorted[0]
}

// Categorize labels a photo from its collection name and caption.
func Categorize(collectionName, caption string) string {
	text := strings.ToLower(collectionName + " " + caption)

	for _, rule := range models.CategoryRules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(text, keyword) {
				return rule.Category
			}
		}
	}

	return models.CategoryCommunity
}

func sortNewestFirst(images []models.GalleryImage) {
	sort.SliceStable(images, func(i, j int) bool {
		return images[i].CreatedTime().After(images[j].CreatedTime())
	})
}

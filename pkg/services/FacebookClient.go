package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
	"github.com/unitedhandsbd/website/pkg/models"
)

const (
	DefaultGraphURL = "https://graph.facebook.com/v21.0"

	photoFields = "id,images,name,created_time"
	albumFields = "id,name,count"
)

/*
FacebookClienter is the transport side of the gallery. It knows how to
address the Graph API and fetch a single cursor page. Walking the cursors is
left to the caller.
*/
type FacebookClienter interface {
	AlbumsURL(pageID, accessToken string) string
	PagePhotosURL(pageID, accessToken string, pageSize int) string
	AlbumPhotosURL(albumID, accessToken string, pageSize int) string
	GetAlbumPage(ctx context.Context, pageURL string) (models.FacebookAlbumPage, error)
	GetPhotoPage(ctx context.Context, pageURL string) (models.FacebookPhotoPage, error)
}

type FacebookClientConfig struct {
	BaseURL    string
	HttpClient *http.Client
}

type FacebookClient struct {
	baseURL    string
	httpClient *http.Client
}

/*
FetchError is returned for any failed Graph API request: transport errors,
non-2xx responses, and undecodable bodies.
*/
type FetchError struct {
	Resource   string
	StatusCode int
	Body       string
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to fetch %s: status %d: %s", e.Resource, e.StatusCode, e.Body)
	}

	return fmt.Sprintf("failed to fetch %s: %v", e.Resource, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func NewFacebookClient(config FacebookClientConfig) FacebookClient {
	baseURL := strings.TrimRight(config.BaseURL, "/")

	if baseURL == "" {
		baseURL = DefaultGraphURL
	}

	httpClient := config.HttpClient

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return FacebookClient{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

func (c FacebookClient) AlbumsURL(pageID, accessToken string) string {
	q := url.Values{}
	q.Set("fields", albumFields)
	q.Set("access_token", accessToken)

	return fmt.Sprintf("%s/%s/albums?%s", c.baseURL, url.PathEscape(pageID), q.Encode())
}

func (c FacebookClient) PagePhotosURL(pageID, accessToken string, pageSize int) string {
	q := url.Values{}
	q.Set("type", "uploaded")
	q.Set("fields", photoFields)
	q.Set("limit", fmt.Sprint(pageSize))
	q.Set("access_token", accessToken)

	return fmt.Sprintf("%s/%s/photos?%s", c.baseURL, url.PathEscape(pageID), q.Encode())
}

func (c FacebookClient) AlbumPhotosURL(albumID, accessToken string, pageSize int) string {
	q := url.Values{}
	q.Set("fields", photoFields)
	q.Set("limit", fmt.Sprint(pageSize))
	q.Set("access_token", accessToken)

	return fmt.Sprintf("%s/%s/photos?%s", c.baseURL, url.PathEscape(albumID), q.Encode())
}

func (c FacebookClient) GetAlbumPage(ctx context.Context, pageURL string) (models.FacebookAlbumPage, error) {
	result := models.FacebookAlbumPage{}
	err := c.get(ctx, "albums", pageURL, &result)
	return result, err
}

func (c FacebookClient) GetPhotoPage(ctx context.Context, pageURL string) (models.FacebookPhotoPage, error) {
	result := models.FacebookPhotoPage{}
	err := c.get(ctx, "photos", pageURL, &result)
	return result, err
}

func (c FacebookClient) get(ctx context.Context, resource, pageURL string, dest any) error {
	var (
		err      error
		request  *http.Request
		response *http.Response
		body     []byte
	)

	if request, err = http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil); err != nil {
		return &FetchError{Resource: resource, Err: err}
	}

	request.Header.Set("Accept", "application/json")

	if response, err = c.httpClient.Do(request); err != nil {
		return &FetchError{Resource: resource, Err: err}
	}

	defer response.Body.Close()

	if body, err = io.ReadAll(response.Body); err != nil {
		return &FetchError{Resource: resource, StatusCode: response.StatusCode, Err: err}
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return &FetchError{
			Resource:   resource,
			StatusCode: response.StatusCode,
			Body:       string(body),
			Err:        fmt.Errorf("unexpected status %s", response.Status),
		}
	}

	if err = json.Unmarshal(body, dest); err != nil {
		return &FetchError{Resource: resource, StatusCode: response.StatusCode, Err: fmt.Errorf("error decoding response: %w", err)}
	}

	return nil
}

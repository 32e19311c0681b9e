package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFacebookClient_URLs(t *testing.T) {
	t.Parallel()

	client := NewFacebookClient(FacebookClientConfig{BaseURL: "https://graph.example.org/v21.0/"})

	tests := []struct {
		name      string
		got       string
		wantPath  string
		wantQuery map[string]string
	}{
		{
			name:     "albums",
			got:      client.AlbumsURL("page1", "secret"),
			wantPath: "/v21.0/page1/albums",
			wantQuery: map[string]string{
				"fields":       "id,name,count",
				"access_token": "secret",
			},
		},
		{
			name:     "page photos",
			got:      client.PagePhotosURL("page1", "secret", 50),
			wantPath: "/v21.0/page1/photos",
			wantQuery: map[string]string{
				"type":         "uploaded",
				"fields":       "id,images,name,created_time",
				"limit":        "50",
				"access_token": "secret",
			},
		},
		{
			name:     "album photos",
			got:      client.AlbumPhotosURL("a1", "secret", 25),
			wantPath: "/v21.0/a1/photos",
			wantQuery: map[string]string{
				"fields":       "id,images,name,created_time",
				"limit":        "25",
				"access_token": "secret",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			u, err := url.Parse(tt.got)
			require.NoError(t, err)
			require.Equal(t, "graph.example.org", u.Host)
			require.Equal(t, tt.wantPath, u.Path)

			for key, want := range tt.wantQuery {
				require.Equal(t, want, u.Query().Get(key), key)
			}
		})
	}
}

func TestFacebookClient_DefaultBaseURL(t *testing.T) {
	t.Parallel()

	client := NewFacebookClient(FacebookClientConfig{})
	require.Contains(t, client.AlbumsURL("p", "t"), "https://graph.facebook.com/v21.0/p/albums?")
}

func TestFacebookClient_GetPhotoPage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"data": [
				{"id": "1", "name": "Eid gifts", "created_time": "2023-04-21T08:00:00+0000",
				 "images": [{"source": "https://cdn.example.org/1.jpg", "width": 960, "height": 720}]}
			],
			"paging": {"cursors": {"before": "x", "after": "y"}, "next": "https://graph.example.org/next"}
		}`))
	}))
	t.Cleanup(server.Close)

	client := NewFacebookClient(FacebookClientConfig{BaseURL: server.URL, HttpClient: server.Client()})

	page, err := client.GetPhotoPage(context.Background(), server.URL+"/page1/photos")
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	require.Equal(t, "Eid gifts", page.Data[0].Name)
	require.Equal(t, 960, page.Data[0].Images[0].Width)
	require.Equal(t, "https://graph.example.org/next", page.NextURL())
}

func TestFacebookClient_GetAlbumPageWithoutPaging(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": [{"id": "a1", "name": "Winter Relief", "count": 12}]}`))
	}))
	t.Cleanup(server.Close)

	client := NewFacebookClient(FacebookClientConfig{BaseURL: server.URL, HttpClient: server.Client()})

	page, err := client.GetAlbumPage(context.Background(), server.URL+"/page1/albums")
	require.NoError(t, err)
	require.Equal(t, 12, page.Data[0].Count)
	require.Empty(t, page.NextURL())
}

func TestFacebookClient_FetchErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "non-2xx carries status and body",
			status:     http.StatusBadRequest,
			body:       `{"error":{"message":"Invalid OAuth access token."}}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":{"message":"Invalid OAuth access token."}}`,
		},
		{
			name:       "undecodable body",
			status:     http.StatusOK,
			body:       `<html>not json</html>`,
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(server.Close)

			client := NewFacebookClient(FacebookClientConfig{BaseURL: server.URL, HttpClient: server.Client()})
			_, err := client.GetAlbumPage(context.Background(), server.URL+"/page1/albums")

			var fetchErr *FetchError
			require.ErrorAs(t, err, &fetchErr)
			require.Equal(t, "albums", fetchErr.Resource)
			require.Equal(t, tt.wantStatus, fetchErr.StatusCode)
			require.Equal(t, tt.wantBody, fetchErr.Body)
		})
	}
}

func TestFacebookClient_TransportError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewFacebookClient(FacebookClientConfig{BaseURL: server.URL})
	_, err := client.GetPhotoPage(context.Background(), server.URL+"/page1/photos")

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	require.Zero(t, fetchErr.StatusCode)
	require.NotNil(t, errors.Unwrap(err))
}

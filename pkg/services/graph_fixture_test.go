package services

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/unitedhandsbd/website/pkg/models"
)

const fixtureToken = "token"

/*
fakeGraph serves albums and photos in cursor pages the way the Graph API
does. Collections listed in failing answer with a 500.
*/
type fakeGraph struct {
	server  *httptest.Server
	albums  [][]models.FacebookAlbum
	photos  map[string][][]models.FacebookPhoto
	failing map[string]bool

	mu       sync.Mutex
	requests []string
}

func newFakeGraph(t *testing.T) *fakeGraph {
	t.Helper()

	g := &fakeGraph{
		photos:  map[string][][]models.FacebookPhoto{},
		failing: map[string]bool{},
	}

	g.server = httptest.NewServer(http.HandlerFunc(g.serve))
	t.Cleanup(g.server.Close)

	return g
}

func (g *fakeGraph) client() FacebookClient {
	return NewFacebookClient(FacebookClientConfig{
		BaseURL:    g.server.URL,
		HttpClient: g.server.Client(),
	})
}

func (g *fakeGraph) requested(path string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, r := range g.requests {
		if r == path {
			return true
		}
	}

	return false
}

func (g *fakeGraph) requestCount(path string) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	count := 0

	for _, r := range g.requests {
		if r == path {
			count++
		}
	}

	return count
}

func (g *fakeGraph) serve(w http.ResponseWriter, r *http.Request) {
	g.mu.Lock()
	g.requests = append(g.requests, r.URL.Path)
	g.mu.Unlock()

	query := r.URL.Query()

	if query.Get("access_token") != fixtureToken {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid OAuth access token."}}`))
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")

	if len(parts) != 2 {
		http.NotFound(w, r)
		return
	}

	id, kind := parts[0], parts[1]

	if g.failing[id] || g.failing[id+"/"+kind] {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"An unknown error has occurred."}}`))
		return
	}

	pageIndex, _ := strconv.Atoi(query.Get("page"))
	next := ""

	var data any

	switch kind {
	case "albums":
		if pageIndex < len(g.albums) {
			data = g.albums[pageIndex]
		}

		if pageIndex+1 < len(g.albums) {
			next = g.nextURL(id, kind, pageIndex+1)
		}

	case "photos":
		pages := g.photos[id]

		if pageIndex < len(pages) {
			data = pages[pageIndex]
		}

		if pageIndex+1 < len(pages) {
			next = g.nextURL(id, kind, pageIndex+1)
		}

	default:
		http.NotFound(w, r)
		return
	}

	if data == nil {
		data = []any{}
	}

	body := map[string]any{"data": data}

	if next != "" {
		body["paging"] = map[string]any{
			"cursors": map[string]string{"before": "b", "after": "a"},
			"next":    next,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}

func (g *fakeGraph) nextURL(id, kind string, page int) string {
	return fmt.Sprintf("%s/%s/%s?page=%d&access_token=%s", g.server.URL, id, kind, page, fixtureToken)
}

func photo(id, createdTime, caption string, renditions ...models.FacebookPhotoRendition) models.FacebookPhoto {
	if len(renditions) == 0 && id != "" {
		renditions = []models.FacebookPhotoRendition{
			{Source: "https://cdn.example.org/" + id + "-large.jpg", Width: 2048, Height: 1536},
			{Source: "https://cdn.example.org/" + id + ".jpg", Width: 1200, Height: 900},
			{Source: "https://cdn.example.org/" + id + "-small.jpg", Width: 320, Height: 240},
		}
	}

	return models.FacebookPhoto{
		ID:          id,
		Images:      renditions,
		Name:        caption,
		CreatedTime: createdTime,
	}
}

/*
standardFixture models a page with two pages of uploads (one photo without
renditions), a system album, and four regular albums spread over two album
pages, one of which always fails.
*/
func standardFixture(t *testing.T) *fakeGraph {
	g := newFakeGraph(t)

	g.photos["page1"] = [][]models.FacebookPhoto{
		{
			photo("p1", "2023-05-01T10:00:00+0000", "Community gathering"),
			{ID: "p2", CreatedTime: "2023-05-02T10:00:00+0000"},
		},
		{
			photo("p3", "2023-06-01T10:00:00+0000", ""),
		},
	}

	g.albums = [][]models.FacebookAlbum{
		{
			{ID: "a0", Name: "Profile Pictures", Count: 1},
			{ID: "a1", Name: "Medical Camp 2023", Count: 2},
			{ID: "a2", Name: "Food Drive"},
			{ID: "a3", Name: "Broken Album"},
		},
		{
			{ID: "a5", Name: "Cover Photos"},
			{ID: "a4", Name: "School Visit"},
		},
	}

	g.photos["a0"] = [][]models.FacebookPhoto{{photo("p9", "2024-01-01T10:00:00+0000", "new profile picture")}}
	g.photos["a5"] = [][]models.FacebookPhoto{{photo("p10", "2024-01-02T10:00:00+0000", "")}}
	g.photos["a1"] = [][]models.FacebookPhoto{
		{
			photo("p1", "2023-05-01T10:00:00+0000", "Community gathering"),
			photo("p4", "2023-07-01T10:00:00+0000", "distributing medicine"),
		},
	}
	g.photos["a2"] = [][]models.FacebookPhoto{{photo("p5", "2023-04-01T10:00:00+0000", "")}}
	g.photos["a4"] = [][]models.FacebookPhoto{{photo("p6", "2023-08-01T10:00:00+0000", "")}}
	g.failing["a3"] = true

	return g
}

func galleryIDs(images []models.GalleryImage) []string {
	result := make([]string, 0, len(images))

	for _, img := range images {
		result = append(result, img.ID)
	}

	return result
}

package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/unitedhandsbd/website/pkg/models"
)

func newTestGalleryService(g *fakeGraph) GalleryService {
	return NewGalleryService(GalleryServiceConfig{
		FacebookClient: g.client(),
	})
}

func requireGalleryInvariants(t *testing.T, images []models.GalleryImage, limit int) {
	t.Helper()

	require.LessOrEqual(t, len(images), limit)

	seen := map[string]bool{}

	for i, img := range images {
		require.False(t, seen[img.ID], "duplicate id %s", img.ID)
		seen[img.ID] = true

		if i > 0 {
			require.False(t, img.CreatedTime().After(images[i-1].CreatedTime()), "%s is newer than %s", img.ID, images[i-1].ID)
		}
	}
}

func TestBestRendition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		renditions []models.FacebookPhotoRendition
		want       models.FacebookPhotoRendition
	}{
		{
			name: "largest in range beats larger out of range",
			renditions: []models.FacebookPhotoRendition{
				{Source: "a", Width: 800, Height: 600},
				{Source: "b", Width: 1920, Height: 1080},
				{Source: "c", Width: 400, Height: 300},
			},
			want: models.FacebookPhotoRendition{Source: "a", Width: 800, Height: 600},
		},
		{
			name: "falls back to largest overall",
			renditions: []models.FacebookPhotoRendition{
				{Source: "a", Width: 3000, Height: 2000},
				{Source: "b", Width: 200, Height: 150},
			},
			want: models.FacebookPhotoRendition{Source: "a", Width: 3000, Height: 2000},
		},
		{
			name: "range is inclusive at the top",
			renditions: []models.FacebookPhotoRendition{
				{Source: "a", Width: 1600, Height: 1200},
				{Source: "b", Width: 1000, Height: 750},
			},
			want: models.FacebookPhotoRendition{Source: "a", Width: 1600, Height: 1200},
		},
		{
			name: "picks the largest of several qualifying",
			renditions: []models.FacebookPhotoRendition{
				{Source: "a", Width: 960, Height: 720},
				{Source: "b", Width: 1280, Height: 960},
				{Source: "c", Width: 2048, Height: 1536},
			},
			want: models.FacebookPhotoRendition{Source: "b", Width: 1280, Height: 960},
		},
		{
			name: "single rendition",
			renditions: []models.FacebookPhotoRendition{
				{Source: "a", Width: 100, Height: 100},
			},
			want: models.FacebookPhotoRendition{Source: "a", Width: 100, Height: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, BestRendition(tt.renditions))
		})
	}
}

func TestBestRendition_DoesNotReorderInput(t *testing.T) {
	t.Parallel()

	renditions := []models.FacebookPhotoRendition{
		{Source: "small", Width: 400, Height: 300},
		{Source: "large", Width: 1920, Height: 1080},
	}

	_ = BestRendition(renditions)
	require.Equal(t, "small", renditions[0].Source)
}

func TestCategorize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		collection string
		caption    string
		want       string
	}{
		{name: "healthcare keyword in album name", collection: "Medical Camp 2023", caption: "distributing medicine", want: models.CategoryHealthcare},
		{name: "no keywords", collection: "Spring 2024", caption: "smiles all around", want: models.CategoryCommunity},
		{name: "camp alone does not match", collection: "Camp", caption: "", want: models.CategoryCommunity},
		{name: "case insensitive", collection: "", caption: "New SCHOOL building", want: models.CategoryEducation},
		{name: "healthcare outranks volunteers", collection: "Volunteer Team", caption: "free clinic day", want: models.CategoryHealthcare},
		{name: "education outranks food", collection: "Student lunch food drive", caption: "", want: models.CategoryEducation},
		{name: "food distribution", collection: "Flood Relief", caption: "", want: models.CategoryFoodDistribution},
		{name: "legal aid", collection: "", caption: "know your rights workshop", want: models.CategoryLegalAid},
		{name: "events", collection: "Annual Celebration", caption: "", want: models.CategoryEvents},
		{name: "volunteers", collection: "", caption: "our volunteer crew", want: models.CategoryVolunteers},
		{name: "empty input", collection: "", caption: "", want: models.CategoryCommunity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, Categorize(tt.collection, tt.caption))
		})
	}
}

func TestAggregate_CollectsDeduplicatesAndSorts(t *testing.T) {
	t.Parallel()

	g := standardFixture(t)
	service := newTestGalleryService(g)

	images := service.Aggregate(context.Background(), "page1", fixtureToken, 200)

	require.Equal(t, []string{"fb_p6", "fb_p4", "fb_p3", "fb_p1", "fb_p5"}, galleryIDs(images))
	requireGalleryInvariants(t, images, 200)

	byID := map[string]models.GalleryImage{}
	for _, img := range images {
		byID[img.ID] = img
	}

	require.Equal(t, "distributing medicine", byID["fb_p4"].Alt)
	require.Equal(t, models.CategoryHealthcare, byID["fb_p4"].Category)
	require.Equal(t, "Photo from Food Drive", byID["fb_p5"].Alt)
	require.Equal(t, models.CategoryFoodDistribution, byID["fb_p5"].Category)
	require.Equal(t, "United Hands Bangladesh community photo", byID["fb_p3"].Alt)
	require.Equal(t, models.CategoryCommunity, byID["fb_p3"].Category)
	require.Equal(t, models.CategoryEducation, byID["fb_p6"].Category)

	require.Equal(t, "https://cdn.example.org/p1.jpg", byID["fb_p1"].Src)
	require.Equal(t, 1200, byID["fb_p1"].Width)
	require.Equal(t, 900, byID["fb_p1"].Height)
	require.Equal(t, "2023-05-01T10:00:00+0000", byID["fb_p1"].CreatedAt)

	require.False(t, g.requested("/a0/photos"), "system album must not be fetched")
	require.False(t, g.requested("/a5/photos"), "system album must not be fetched")
	require.True(t, g.requested("/a4/photos"), "albums on the second page must be followed")
}

func TestAggregate_SkipsPhotosWithoutRenditions(t *testing.T) {
	t.Parallel()

	g := standardFixture(t)
	images := newTestGalleryService(g).Aggregate(context.Background(), "page1", fixtureToken, 200)

	require.NotContains(t, galleryIDs(images), "fb_p2")
}

func TestAggregate_RespectsLimit(t *testing.T) {
	t.Parallel()

	g := standardFixture(t)
	images := newTestGalleryService(g).Aggregate(context.Background(), "page1", fixtureToken, 3)

	require.Equal(t, []string{"fb_p4", "fb_p3", "fb_p1"}, galleryIDs(images))
	require.False(t, g.requested("/a2/photos"), "no further albums once the limit is reached")
}

func TestAggregate_DefaultLimitStopsPagination(t *testing.T) {
	t.Parallel()

	g := newFakeGraph(t)

	pages := [][]models.FacebookPhoto{}
	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	for p := 0; p < 6; p++ {
		page := []models.FacebookPhoto{}

		for i := 0; i < 50; i++ {
			n := p*50 + i
			created := base.Add(time.Duration(n) * time.Hour).Format("2006-01-02T15:04:05-0700")
			page = append(page, photo(fmt.Sprintf("bulk%d", n), created, ""))
		}

		pages = append(pages, page)
	}

	g.photos["page1"] = pages

	images := newTestGalleryService(g).Aggregate(context.Background(), "page1", fixtureToken, 0)

	require.Len(t, images, models.DefaultGalleryLimit)
	require.Equal(t, 4, g.requestCount("/page1/photos"))
	require.Equal(t, "fb_bulk199", images[0].ID)
	requireGalleryInvariants(t, images, models.DefaultGalleryLimit)
}

func TestAggregate_AlbumListFailureReturnsPagePhotos(t *testing.T) {
	t.Parallel()

	g := standardFixture(t)
	g.failing["page1/albums"] = true

	images := newTestGalleryService(g).Aggregate(context.Background(), "page1", fixtureToken, 200)

	require.Equal(t, []string{"fb_p3", "fb_p1"}, galleryIDs(images))
}

func TestAggregate_PagePhotoFailureStillCollectsAlbums(t *testing.T) {
	t.Parallel()

	g := standardFixture(t)
	g.failing["page1/photos"] = true

	images := newTestGalleryService(g).Aggregate(context.Background(), "page1", fixtureToken, 200)

	require.Equal(t, []string{"fb_p6", "fb_p4", "fb_p1", "fb_p5"}, galleryIDs(images))
}

func TestAggregate_FollowsAlbumPagination(t *testing.T) {
	t.Parallel()

	g := standardFixture(t)
	g.photos["a2"] = [][]models.FacebookPhoto{
		{photo("p7", "2023-03-01T10:00:00+0000", "")},
		{photo("p8", "2023-03-02T10:00:00+0000", "")},
	}
	g.failing["a3"] = false
	g.photos["a3"] = [][]models.FacebookPhoto{{photo("p11", "2023-02-01T10:00:00+0000", "")}}

	images := newTestGalleryService(g).Aggregate(context.Background(), "page1", fixtureToken, 200)
	require.Contains(t, galleryIDs(images), "fb_p7")
	require.Contains(t, galleryIDs(images), "fb_p8")
	require.Contains(t, galleryIDs(images), "fb_p11")
}

func TestAggregate_InvalidTokenDegradesToEmpty(t *testing.T) {
	t.Parallel()

	g := standardFixture(t)
	images := newTestGalleryService(g).Aggregate(context.Background(), "page1", "expired", 200)

	require.NotNil(t, images)
	require.Empty(t, images)
}

func TestAggregate_IsDeterministic(t *testing.T) {
	t.Parallel()

	g := standardFixture(t)
	service := newTestGalleryService(g)

	first := service.Aggregate(context.Background(), "page1", fixtureToken, 200)
	second := service.Aggregate(context.Background(), "page1", fixtureToken, 200)

	require.Equal(t, galleryIDs(first), galleryIDs(second))
}

func TestAggregate_CancelledContext(t *testing.T) {
	t.Parallel()

	g := standardFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	images := newTestGalleryService(g).Aggregate(ctx, "page1", fixtureToken, 200)
	require.Empty(t, images)
}

func TestPhotosSince(t *testing.T) {
	t.Parallel()

	g := standardFixture(t)
	since := time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC)

	images := newTestGalleryService(g).PhotosSince(context.Background(), "page1", fixtureToken, since, 100)

	require.Equal(t, []string{"fb_p3"}, galleryIDs(images))
}

package models

/*
System album names. These are managed by Facebook rather than curated by
the page, so they never contribute to the gallery.
*/
const (
	SystemAlbumProfilePictures = "Profile Pictures"
	SystemAlbumCoverPhotos     = "Cover Photos"
)

type FacebookAlbum struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count,omitempty"`
}

func (a FacebookAlbum) IsSystemAlbum() bool {
	return a.Name == SystemAlbumProfilePictures || a.Name == SystemAlbumCoverPhotos
}

type FacebookAlbumPage struct {
	Data   []FacebookAlbum `json:"data"`
	Paging *FacebookPaging `json:"paging,omitempty"`
}

func (p FacebookAlbumPage) NextURL() string {
	if p.Paging == nil {
		return ""
	}

	return p.Paging.Next
}

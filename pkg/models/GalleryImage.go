package models

import "time"

const (
	GalleryImageIDPrefix = "fb_"
	DefaultGalleryLimit  = 200
)

/*
GalleryImage is a photo normalized for the website gallery. CreatedAt is the
upstream ISO 8601 timestamp, kept verbatim.
*/
type GalleryImage struct {
	ID        string `json:"id"`
	Src       string `json:"src"`
	Alt       string `json:"alt"`
	Category  string `json:"category"`
	CreatedAt string `json:"createdAt"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

/*
CreatedTime parses CreatedAt. The Graph API emits offsets without a colon
(2023-05-01T10:00:00+0000), so that layout is tried before RFC 3339. An
unparseable timestamp yields the zero time.
*/
func (g GalleryImage) CreatedTime() time.Time {
	for _, layout := range []string{"2006-01-02T15:04:05-0700", time.RFC3339, time.RFC3339Nano} {
		if t, err := time.Parse(layout, g.CreatedAt); err == nil {
			return t
		}
	}

	return time.Time{}
}

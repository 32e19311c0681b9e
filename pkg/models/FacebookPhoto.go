package models

type FacebookPhoto struct {
	ID          string                   `json:"id"`
	Images      []FacebookPhotoRendition `json:"images"`
	Name        string                   `json:"name,omitempty"`
	CreatedTime string                   `json:"created_time"`
}

// FacebookPhotoRendition is one resolution of a photo as served by the Graph API.
type FacebookPhotoRendition struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func (r FacebookPhotoRendition) Area() int {
	return r.Width * r.Height
}

type FacebookPhotoPage struct {
	Data   []FacebookPhoto `json:"data"`
	Paging *FacebookPaging `json:"paging,omitempty"`
}

func (p FacebookPhotoPage) NextURL() string {
	if p.Paging == nil {
		return ""
	}

	return p.Paging.Next
}

type FacebookPaging struct {
	Cursors *FacebookCursors `json:"cursors,omitempty"`
	Next    string           `json:"next,omitempty"`
}

type FacebookCursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

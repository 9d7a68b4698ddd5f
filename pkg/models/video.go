package models

// VideoInfo is the metadata snapshot returned alongside a transcript
type VideoInfo struct {
	VideoID      string `json:"video_id"`
	Title        string `json:"title"`
	AuthorName   string `json:"author_name,omitempty"`
	AuthorURL    string `json:"author_url,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	URL          string `json:"url"`
	Source       string `json:"source"`
}

// VideoInfoSource constants
const (
	VideoInfoSourceOEmbed   = "oembed"
	VideoInfoSourcePage     = "page"
	VideoInfoSourceFallback = "fallback"
)

// UnknownVideoTitle is used when no metadata source answered
const UnknownVideoTitle = "Unknown title"

package render

import "strings"

// Video providers
const (
	ProviderYouTube = "youtube"
	ProviderVimeo   = "vimeo"
	ProviderNone    = ""
)

// Video is the playable form of a media URL.
type Video struct {
	URL          string
	Provider     string
	ID           string
	EmbedURL     string
	ThumbnailURL string // empty means show a placeholder icon
}

// Embeddable returns true if the video can be shown in a player frame.
// Otherwise it is rendered as a plain outbound link.
func (v Video) Embeddable() bool {
	return v.EmbedURL != ""
}

// ResolveVideo recognizes YouTube and Vimeo URLs by fixed split points.
func ResolveVideo(url string) Video {
	v := Video{URL: url}

	switch {
	case strings.Contains(url, "youtube.com/watch?v="):
		v.Provider, v.ID = ProviderYouTube, between(url, "v=", "&")
	case strings.Contains(url, "youtu.be/"):
		v.Provider, v.ID = ProviderYouTube, between(url, "youtu.be/", "?")
	case strings.Contains(url, "vimeo.com/"):
		v.Provider, v.ID = ProviderVimeo, between(url, "vimeo.com/", "?")
	}

	if v.ID == "" {
		return Video{URL: url}
	}

	switch v.Provider {
	case ProviderYouTube:
		v.EmbedURL = "https://www.youtube.com/embed/" + v.ID
		v.ThumbnailURL = "https://img.youtube.com/vi/" + v.ID + "/hqdefault.jpg"
	case ProviderVimeo:
		v.EmbedURL = "https://player.vimeo.com/video/" + v.ID
	}
	return v
}

// between returns the text after the first start marker up to the next end marker.
func between(s, start, end string) string {
	_, rest, ok := strings.Cut(s, start)
	if !ok {
		return ""
	}
	id, _, _ := strings.Cut(rest, end)
	return id
}

// ThumbnailURL returns the YouTube thumbnail of url, or "" for anything else.
func ThumbnailURL(url string) string {
	return ResolveVideo(url).ThumbnailURL
}

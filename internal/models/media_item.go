package models

import (
	"time"

	"github.com/google/uuid"
)

// Media type constants
const (
	MediaVideo    = "video"
	MediaImage    = "image"
	MediaDocument = "document"
)

// MediaItem is a video (or legacy image/document) attached to a card.
type MediaItem struct {
	ID           uuid.UUID `json:"id"`
	CardID       uuid.UUID `json:"card_id"`
	Type         string    `json:"type"`
	URL          string    `json:"url"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ThumbnailURL string    `json:"thumbnail_url"`
	DisplayOrder int       `json:"display_order"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsVideo returns true if the item is a video.
func (m *MediaItem) IsVideo() bool {
	return m.Type == MediaVideo
}

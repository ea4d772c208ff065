package models

import (
	"time"

	"github.com/google/uuid"
)

// SocialLink is a platform profile link shown on a card.
type SocialLink struct {
	ID           uuid.UUID `json:"id"`
	CardID       uuid.UUID `json:"card_id"`
	Platform     string    `json:"platform"`
	Username     string    `json:"username"`
	URL          string    `json:"url"`
	DisplayOrder int       `json:"display_order"`
	IsActive     bool      `json:"is_active"`
	IsAutoSynced bool      `json:"is_auto_synced"` // username tracks the owner's global username
	CreatedAt    time.Time `json:"created_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// ReviewLink points visitors to an external review page.
type ReviewLink struct {
	ID        uuid.UUID `json:"id"`
	CardID    uuid.UUID `json:"card_id"`
	Title     string    `json:"title"`
	ReviewURL string    `json:"review_url"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

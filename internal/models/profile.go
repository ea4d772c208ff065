package models

import (
	"time"

	"github.com/google/uuid"
)

// Role constants
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Profile represents a card owner authenticated via OIDC.
type Profile struct {
	ID             uuid.UUID `json:"id"`
	Sub            string    `json:"sub"` // OIDC subject identifier
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	AvatarURL      string    `json:"avatar_url"`
	GlobalUsername string    `json:"global_username"` // drives social link auto-sync
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DisplayName returns the name, falling back to the local part of the email.
func (p *Profile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	for i := 0; i < len(p.Email); i++ {
		if p.Email[i] == '@' {
			return p.Email[:i]
		}
	}
	return p.Email
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Shape constants
const (
	ShapeRectangle = "rectangle"
	ShapeRounded   = "rounded"
	ShapeCircle    = "circle"
	ShapeHexagon   = "hexagon"
)

// Layout style constants
const (
	StyleModern   = "modern"
	StyleClassic  = "classic"
	StyleMinimal  = "minimal"
	StyleCreative = "creative"
)

// Alignment constants
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// Theme holds the color scheme of a card. Stored as JSONB.
type Theme struct {
	Name       string `json:"name,omitempty" yaml:"name"`
	Primary    string `json:"primary" yaml:"primary"`
	Secondary  string `json:"secondary" yaml:"secondary"`
	Background string `json:"background" yaml:"background"`
	Text       string `json:"text" yaml:"text"`
}

// Layout holds the arrangement options of a card. Stored as JSONB.
type Layout struct {
	Style     string `json:"style"`
	Alignment string `json:"alignment"`
	Font      string `json:"font"`
}

// DefaultTheme is substituted at render time when a card has no theme.
var DefaultTheme = Theme{
	Name:       "Default",
	Primary:    "#3B82F6",
	Secondary:  "#1E40AF",
	Background: "#FFFFFF",
	Text:       "#1F2937",
}

// DefaultLayout is substituted at render time when a card has no layout.
var DefaultLayout = Layout{
	Style:     StyleModern,
	Alignment: AlignCenter,
	Font:      "Inter",
}

// Card is a user's digital business card, publicly addressable by slug.
type Card struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Position    string    `json:"position"`
	Bio         string    `json:"bio"`
	AvatarURL   string    `json:"avatar_url"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	WhatsApp    string    `json:"whatsapp"`
	Website     string    `json:"website"`
	Address     string    `json:"address"`
	MapLink     string    `json:"map_link"`
	Theme       *Theme    `json:"theme"`  // nil when never chosen
	Shape       string    `json:"shape"`
	Layout      *Layout   `json:"layout"` // nil when never chosen
	IsPublished bool      `json:"is_published"`
	ViewCount   int64     `json:"view_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsPublic returns true if the card may be served on the public route.
func (c *Card) IsPublic() bool {
	return c.IsPublished && c.Slug != ""
}

// ResolvedTheme returns the card theme with defaults filled in.
// The card itself is not modified.
func (c *Card) ResolvedTheme() Theme {
	if c.Theme == nil {
		return DefaultTheme
	}
	t := *c.Theme
	if t.Primary == "" {
		t.Primary = DefaultTheme.Primary
	}
	if t.Secondary == "" {
		t.Secondary = DefaultTheme.Secondary
	}
	if t.Background == "" {
		t.Background = DefaultTheme.Background
	}
	if t.Text == "" {
		t.Text = DefaultTheme.Text
	}
	return t
}

// ResolvedLayout returns the card layout with defaults filled in.
func (c *Card) ResolvedLayout() Layout {
	if c.Layout == nil {
		return DefaultLayout
	}
	l := *c.Layout
	if l.Style == "" {
		l.Style = DefaultLayout.Style
	}
	if l.Alignment == "" {
		l.Alignment = DefaultLayout.Alignment
	}
	if l.Font == "" {
		l.Font = DefaultLayout.Font
	}
	return l
}

// CardWithOwner is a card joined with its owner's name and email for the operator console.
type CardWithOwner struct {
	Card
	OwnerName  string `json:"owner_name"`
	OwnerEmail string `json:"owner_email"`
}

package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"

	"cardlink/internal/cardview"
	"cardlink/internal/models"
)

// CardAssembler builds the public view of a card. *cardview.Assembler satisfies it.
type CardAssembler interface {
	Assemble(ctx context.Context, slug string, visit cardview.Visit) (*cardview.ViewModel, error)
}

// PublishedCardFinder looks up a published card without counting a view.
type PublishedCardFinder interface {
	GetPublishedCardBySlug(ctx context.Context, slug string) (*models.Card, error)
}

// ProfileStore persists owner profiles.
type ProfileStore interface {
	UpsertProfile(ctx context.Context, p *models.Profile) error
	UpdateProfile(ctx context.Context, id uuid.UUID, name, globalUsername string) error
	ListSocialLinksByOwner(ctx context.Context, userID uuid.UUID) ([]models.SocialLink, error)
	UpdateSocialLinks(ctx context.Context, links []models.SocialLink) error
}

// AdminStore is everything the owner admin reads and writes.
// Lookups and mutations are scoped to the owning user or card.
type AdminStore interface {
	ListCardsByUser(ctx context.Context, userID uuid.UUID) ([]models.Card, error)
	GetOwnedCard(ctx context.Context, id, userID uuid.UUID) (*models.Card, error)
	CreateCard(ctx context.Context, card *models.Card) error
	UpdateCard(ctx context.Context, card *models.Card) error
	SetCardPublished(ctx context.Context, id, userID uuid.UUID, published bool) error
	SetCardAvatar(ctx context.Context, cardID, userID uuid.UUID, avatarURL string) error
	DeleteOwnedCard(ctx context.Context, id, userID uuid.UUID) error

	ListSocialLinks(ctx context.Context, cardID uuid.UUID) ([]models.SocialLink, error)
	GetSocialLink(ctx context.Context, id, cardID uuid.UUID) (*models.SocialLink, error)
	CreateSocialLink(ctx context.Context, l *models.SocialLink) error
	CreateSocialLinks(ctx context.Context, links []models.SocialLink) error
	UpdateSocialLink(ctx context.Context, l *models.SocialLink) error
	DeleteSocialLink(ctx context.Context, id, cardID uuid.UUID) error
	ReorderSocialLinks(ctx context.Context, cardID uuid.UUID, ids []uuid.UUID) error

	ListMediaItems(ctx context.Context, cardID uuid.UUID) ([]models.MediaItem, error)
	CreateMediaItem(ctx context.Context, m *models.MediaItem) error
	UpdateMediaItemTitle(ctx context.Context, id, cardID uuid.UUID, title string) error
	ToggleMediaItem(ctx context.Context, id, cardID uuid.UUID) error
	DeleteMediaItem(ctx context.Context, id, cardID uuid.UUID) error

	ListReviewLinks(ctx context.Context, cardID uuid.UUID) ([]models.ReviewLink, error)
	CreateReviewLink(ctx context.Context, r *models.ReviewLink) error
	UpdateReviewLinkTitle(ctx context.Context, id, cardID uuid.UUID, title string) error
	ToggleReviewLink(ctx context.Context, id, cardID uuid.UUID) error
	DeleteReviewLink(ctx context.Context, id, cardID uuid.UUID) error
}

// AvatarService stores card avatars. *storage.Avatars satisfies it.
type AvatarService interface {
	Upload(ctx context.Context, userID uuid.UUID, data []byte) (string, error)
	Remove(ctx context.Context, avatarURL string) error
}

// ConsoleStore is the platform-wide data the operator console manages.
type ConsoleStore interface {
	GetPlatformAnalytics(ctx context.Context, now time.Time) (*models.PlatformAnalytics, error)
	ListProfiles(ctx context.Context) ([]models.Profile, error)
	ListCardsWithOwners(ctx context.Context) ([]models.CardWithOwner, error)
	ToggleCardPublished(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteCard(ctx context.Context, id uuid.UUID) error
	DeleteProfile(ctx context.Context, id uuid.UUID) error
}

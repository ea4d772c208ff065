package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"cardlink/internal/models"
)

// cardColumns is the standard column list for card queries.
const cardColumns = `id, user_id, slug, title, company, position, bio, avatar_url,
	email, phone, whatsapp, website, address, map_link, theme, shape, layout,
	is_published, view_count, created_at, updated_at`

func cardDest(c *models.Card) []any {
	return []any{
		&c.ID,
		&c.UserID,
		&c.Slug,
		&c.Title,
		&c.Company,
		&c.Position,
		&c.Bio,
		&c.AvatarURL,
		&c.Email,
		&c.Phone,
		&c.WhatsApp,
		&c.Website,
		&c.Address,
		&c.MapLink,
		&c.Theme,
		&c.Shape,
		&c.Layout,
		&c.IsPublished,
		&c.ViewCount,
		&c.CreatedAt,
		&c.UpdatedAt,
	}
}

// scanCard scans a row into a Card struct.
func scanCard(row pgx.Row) (*models.Card, error) {
	var card models.Card
	err := row.Scan(cardDest(&card)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCardNotFound
	}
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// scanCards scans multiple rows into a slice of Cards.
func scanCards(rows pgx.Rows) ([]models.Card, error) {
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		var card models.Card
		if err := rows.Scan(cardDest(&card)...); err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, rows.Err()
}

func shapeOrDefault(shape string) string {
	if shape == "" {
		return models.ShapeRectangle
	}
	return shape
}

// CreateCard creates a new card for card.UserID.
func (d *DB) CreateCard(ctx context.Context, card *models.Card) error {
	query := `
		INSERT INTO business_cards (user_id, slug, title, company, position, bio, avatar_url,
			email, phone, whatsapp, website, address, map_link, theme, shape, layout, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id, shape, view_count, created_at, updated_at
	`

	err := d.Pool.QueryRow(ctx, query,
		card.UserID,
		card.Slug,
		card.Title,
		card.Company,
		card.Position,
		card.Bio,
		card.AvatarURL,
		card.Email,
		card.Phone,
		card.WhatsApp,
		card.Website,
		card.Address,
		card.MapLink,
		card.Theme,
		shapeOrDefault(card.Shape),
		card.Layout,
		card.IsPublished,
	).Scan(&card.ID, &card.Shape, &card.ViewCount, &card.CreatedAt, &card.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateSlug
		}
		return fmt.Errorf("failed to create card: %w", err)
	}
	return nil
}

// UpdateCard updates the editable fields of a card owned by card.UserID.
func (d *DB) UpdateCard(ctx context.Context, card *models.Card) error {
	query := `
		UPDATE business_cards SET
			slug = $3, title = $4, company = $5, position = $6, bio = $7, avatar_url = $8,
			email = $9, phone = $10, whatsapp = $11, website = $12, address = $13, map_link = $14,
			theme = $15, shape = $16, layout = $17, is_published = $18, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at
	`

	err := d.Pool.QueryRow(ctx, query,
		card.ID,
		card.UserID,
		card.Slug,
		card.Title,
		card.Company,
		card.Position,
		card.Bio,
		card.AvatarURL,
		card.Email,
		card.Phone,
		card.WhatsApp,
		card.Website,
		card.Address,
		card.MapLink,
		card.Theme,
		shapeOrDefault(card.Shape),
		card.Layout,
		card.IsPublished,
	).Scan(&card.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrCardNotFound
	}
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateSlug
		}
		return fmt.Errorf("failed to update card: %w", err)
	}
	return nil
}

// SetCardAvatar replaces the avatar URL of an owned card.
func (d *DB) SetCardAvatar(ctx context.Context, cardID, userID uuid.UUID, avatarURL string) error {
	result, err := d.Pool.Exec(ctx, `
		UPDATE business_cards SET avatar_url = $3, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
	`, cardID, userID, avatarURL)
	if err != nil {
		return fmt.Errorf("failed to set avatar: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrCardNotFound
	}
	return nil
}

// GetCardByID retrieves a card by its UUID regardless of owner.
func (d *DB) GetCardByID(ctx context.Context, id uuid.UUID) (*models.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM business_cards WHERE id = $1`
	return scanCard(d.Pool.QueryRow(ctx, query, id))
}

// GetOwnedCard retrieves a card only if userID owns it.
func (d *DB) GetOwnedCard(ctx context.Context, id, userID uuid.UUID) (*models.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM business_cards WHERE id = $1 AND user_id = $2`
	return scanCard(d.Pool.QueryRow(ctx, query, id, userID))
}

// GetPublishedCardBySlug retrieves a published card by slug.
// Drafts are indistinguishable from missing cards.
func (d *DB) GetPublishedCardBySlug(ctx context.Context, slug string) (*models.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM business_cards WHERE slug = $1 AND is_published`
	return scanCard(d.Pool.QueryRow(ctx, query, slug))
}

// ListCardsByUser returns the cards owned by userID, newest first.
func (d *DB) ListCardsByUser(ctx context.Context, userID uuid.UUID) ([]models.Card, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT `+cardColumns+` FROM business_cards
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return scanCards(rows)
}

// ListCardsWithOwners returns every card joined with its owner, newest first.
func (d *DB) ListCardsWithOwners(ctx context.Context) ([]models.CardWithOwner, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT c.id, c.user_id, c.slug, c.title, c.company, c.position, c.bio, c.avatar_url,
			c.email, c.phone, c.whatsapp, c.website, c.address, c.map_link, c.theme, c.shape, c.layout,
			c.is_published, c.view_count, c.created_at, c.updated_at,
			p.name, p.email
		FROM business_cards c
		JOIN profiles p ON p.id = c.user_id
		ORDER BY c.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	var cards []models.CardWithOwner
	for rows.Next() {
		var c models.CardWithOwner
		dest := append(cardDest(&c.Card), &c.OwnerName, &c.OwnerEmail)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// SetCardPublished sets the publish flag of an owned card.
func (d *DB) SetCardPublished(ctx context.Context, id, userID uuid.UUID, published bool) error {
	result, err := d.Pool.Exec(ctx, `
		UPDATE business_cards SET is_published = $3, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
	`, id, userID, published)
	if err != nil {
		return fmt.Errorf("failed to set published: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrCardNotFound
	}
	return nil
}

// ToggleCardPublished flips the publish flag of any card and returns the new value.
func (d *DB) ToggleCardPublished(ctx context.Context, id uuid.UUID) (bool, error) {
	var published bool
	err := d.Pool.QueryRow(ctx, `
		UPDATE business_cards SET is_published = NOT is_published, updated_at = NOW()
		WHERE id = $1
		RETURNING is_published
	`, id).Scan(&published)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, ErrCardNotFound
	}
	if err != nil {
		return false, fmt.Errorf("failed to toggle published: %w", err)
	}
	return published, nil
}

// DeleteOwnedCard deletes a card owned by userID.
func (d *DB) DeleteOwnedCard(ctx context.Context, id, userID uuid.UUID) error {
	result, err := d.Pool.Exec(ctx, `DELETE FROM business_cards WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrCardNotFound
	}
	return nil
}

// DeleteCard deletes any card.
func (d *DB) DeleteCard(ctx context.Context, id uuid.UUID) error {
	result, err := d.Pool.Exec(ctx, `DELETE FROM business_cards WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrCardNotFound
	}
	return nil
}

// IncrementCardViewCount increments the aggregate view counter of a card.
func (d *DB) IncrementCardViewCount(ctx context.Context, id uuid.UUID) error {
	_, err := d.Pool.Exec(ctx, `UPDATE business_cards SET view_count = view_count + 1 WHERE id = $1`, id)
	return err
}

// CardViewCount is the aggregate view counter of one card.
type CardViewCount struct {
	Slug  string
	Views int64
}

// GetCardViewCounts returns the view counter of every card.
func (d *DB) GetCardViewCounts(ctx context.Context) ([]CardViewCount, error) {
	rows, err := d.Pool.Query(ctx, `SELECT slug, view_count FROM business_cards ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("failed to query view counts: %w", err)
	}
	defer rows.Close()

	var counts []CardViewCount
	for rows.Next() {
		var c CardViewCount
		if err := rows.Scan(&c.Slug, &c.Views); err != nil {
			return nil, fmt.Errorf("failed to scan view count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

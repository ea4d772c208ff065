package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"cardlink/internal/models"
)

const socialLinkColumns = `id, card_id, platform, username, url, display_order, is_active, is_auto_synced, created_at`

func socialLinkDest(l *models.SocialLink) []any {
	return []any{
		&l.ID,
		&l.CardID,
		&l.Platform,
		&l.Username,
		&l.URL,
		&l.DisplayOrder,
		&l.IsActive,
		&l.IsAutoSynced,
		&l.CreatedAt,
	}
}

func scanSocialLinks(rows pgx.Rows) ([]models.SocialLink, error) {
	defer rows.Close()

	var links []models.SocialLink
	for rows.Next() {
		var l models.SocialLink
		if err := rows.Scan(socialLinkDest(&l)...); err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

// ListSocialLinks returns every social link of a card in display order.
func (d *DB) ListSocialLinks(ctx context.Context, cardID uuid.UUID) ([]models.SocialLink, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT `+socialLinkColumns+` FROM social_links
		WHERE card_id = $1
		ORDER BY display_order, created_at
	`, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list social links: %w", err)
	}
	return scanSocialLinks(rows)
}

// GetActiveSocialLinks returns the active social links of a card in display order.
func (d *DB) GetActiveSocialLinks(ctx context.Context, cardID uuid.UUID) ([]models.SocialLink, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT `+socialLinkColumns+` FROM social_links
		WHERE card_id = $1 AND is_active
		ORDER BY display_order, created_at
	`, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active social links: %w", err)
	}
	return scanSocialLinks(rows)
}

// ListSocialLinksByOwner returns the social links across every card of userID.
func (d *DB) ListSocialLinksByOwner(ctx context.Context, userID uuid.UUID) ([]models.SocialLink, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT s.id, s.card_id, s.platform, s.username, s.url, s.display_order, s.is_active, s.is_auto_synced, s.created_at
		FROM social_links s
		JOIN business_cards c ON c.id = s.card_id
		WHERE c.user_id = $1
		ORDER BY s.card_id, s.display_order
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owner social links: %w", err)
	}
	return scanSocialLinks(rows)
}

// GetSocialLink retrieves a social link belonging to cardID.
func (d *DB) GetSocialLink(ctx context.Context, id, cardID uuid.UUID) (*models.SocialLink, error) {
	var l models.SocialLink
	err := d.Pool.QueryRow(ctx, `
		SELECT `+socialLinkColumns+` FROM social_links WHERE id = $1 AND card_id = $2
	`, id, cardID).Scan(socialLinkDest(&l)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSocialLinkNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func insertSocialLink(ctx context.Context, q interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}, l *models.SocialLink) error {
	return q.QueryRow(ctx, `
		INSERT INTO social_links (card_id, platform, username, url, display_order, is_active, is_auto_synced)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`,
		l.CardID,
		l.Platform,
		l.Username,
		l.URL,
		l.DisplayOrder,
		l.IsActive,
		l.IsAutoSynced,
	).Scan(&l.ID, &l.CreatedAt)
}

// CreateSocialLink inserts a social link. A card holds at most one link
// per platform.
func (d *DB) CreateSocialLink(ctx context.Context, l *models.SocialLink) error {
	if err := insertSocialLink(ctx, d.Pool, l); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicatePlatform
		}
		return fmt.Errorf("failed to create social link: %w", err)
	}
	return nil
}

// CreateSocialLinks inserts a batch of social links in one transaction.
func (d *DB) CreateSocialLinks(ctx context.Context, links []models.SocialLink) error {
	if len(links) == 0 {
		return nil
	}

	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for i := range links {
		if err := insertSocialLink(ctx, tx, &links[i]); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: %s", ErrDuplicatePlatform, links[i].Platform)
			}
			return fmt.Errorf("failed to create social link %s: %w", links[i].Platform, err)
		}
	}

	return tx.Commit(ctx)
}

// UpdateSocialLink persists the mutable fields of a social link.
func (d *DB) UpdateSocialLink(ctx context.Context, l *models.SocialLink) error {
	result, err := d.Pool.Exec(ctx, `
		UPDATE social_links SET username = $3, url = $4, is_active = $5, is_auto_synced = $6
		WHERE id = $1 AND card_id = $2
	`, l.ID, l.CardID, l.Username, l.URL, l.IsActive, l.IsAutoSynced)
	if err != nil {
		return fmt.Errorf("failed to update social link: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrSocialLinkNotFound
	}
	return nil
}

// UpdateSocialLinks persists a batch of reconciled social links in one transaction.
func (d *DB) UpdateSocialLinks(ctx context.Context, links []models.SocialLink) error {
	if len(links) == 0 {
		return nil
	}

	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, l := range links {
		if _, err := tx.Exec(ctx, `
			UPDATE social_links SET username = $3, url = $4, is_auto_synced = $5
			WHERE id = $1 AND card_id = $2
		`, l.ID, l.CardID, l.Username, l.URL, l.IsAutoSynced); err != nil {
			return fmt.Errorf("failed to update social link %s: %w", l.ID, err)
		}
	}

	return tx.Commit(ctx)
}

// DeleteSocialLink removes a social link from a card.
func (d *DB) DeleteSocialLink(ctx context.Context, id, cardID uuid.UUID) error {
	result, err := d.Pool.Exec(ctx, `DELETE FROM social_links WHERE id = $1 AND card_id = $2`, id, cardID)
	if err != nil {
		return fmt.Errorf("failed to delete social link: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrSocialLinkNotFound
	}
	return nil
}

// ReorderSocialLinks assigns display_order by position in ids.
// Every id must belong to cardID.
func (d *DB) ReorderSocialLinks(ctx context.Context, cardID uuid.UUID, ids []uuid.UUID) error {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for i, id := range ids {
		result, err := tx.Exec(ctx, `
			UPDATE social_links SET display_order = $3 WHERE id = $1 AND card_id = $2
		`, id, cardID, i)
		if err != nil {
			return fmt.Errorf("failed to reorder social links: %w", err)
		}
		if result.RowsAffected() == 0 {
			return ErrSocialLinkNotFound
		}
	}

	return tx.Commit(ctx)
}

package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"cardlink/internal/models"
)

const reviewLinkColumns = `id, card_id, title, review_url, is_active, created_at`

func scanReviewLinks(rows pgx.Rows) ([]models.ReviewLink, error) {
	defer rows.Close()

	var reviews []models.ReviewLink
	for rows.Next() {
		var r models.ReviewLink
		if err := rows.Scan(&r.ID, &r.CardID, &r.Title, &r.ReviewURL, &r.IsActive, &r.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

// ListReviewLinks returns every review link of a card, newest first.
func (d *DB) ListReviewLinks(ctx context.Context, cardID uuid.UUID) ([]models.ReviewLink, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT `+reviewLinkColumns+` FROM review_links WHERE card_id = $1 ORDER BY created_at DESC
	`, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list review links: %w", err)
	}
	return scanReviewLinks(rows)
}

// GetActiveReviewLinks returns the active review links of a card, newest first.
func (d *DB) GetActiveReviewLinks(ctx context.Context, cardID uuid.UUID) ([]models.ReviewLink, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT `+reviewLinkColumns+` FROM review_links WHERE card_id = $1 AND is_active ORDER BY created_at DESC
	`, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active review links: %w", err)
	}
	return scanReviewLinks(rows)
}

// CreateReviewLink inserts a review link.
func (d *DB) CreateReviewLink(ctx context.Context, r *models.ReviewLink) error {
	err := d.Pool.QueryRow(ctx, `
		INSERT INTO review_links (card_id, title, review_url, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, r.CardID, r.Title, r.ReviewURL, r.IsActive).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create review link: %w", err)
	}
	return nil
}

// UpdateReviewLinkTitle changes the title of a review link.
func (d *DB) UpdateReviewLinkTitle(ctx context.Context, id, cardID uuid.UUID, title string) error {
	result, err := d.Pool.Exec(ctx, `UPDATE review_links SET title = $3 WHERE id = $1 AND card_id = $2`, id, cardID, title)
	if err != nil {
		return fmt.Errorf("failed to update review link: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrReviewLinkNotFound
	}
	return nil
}

// ToggleReviewLink flips the active flag of a review link.
func (d *DB) ToggleReviewLink(ctx context.Context, id, cardID uuid.UUID) error {
	result, err := d.Pool.Exec(ctx, `UPDATE review_links SET is_active = NOT is_active WHERE id = $1 AND card_id = $2`, id, cardID)
	if err != nil {
		return fmt.Errorf("failed to toggle review link: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrReviewLinkNotFound
	}
	return nil
}

// DeleteReviewLink removes a review link from a card.
func (d *DB) DeleteReviewLink(ctx context.Context, id, cardID uuid.UUID) error {
	result, err := d.Pool.Exec(ctx, `DELETE FROM review_links WHERE id = $1 AND card_id = $2`, id, cardID)
	if err != nil {
		return fmt.Errorf("failed to delete review link: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrReviewLinkNotFound
	}
	return nil
}

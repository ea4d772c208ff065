package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"cardlink/internal/models"
)

const mediaItemColumns = `id, card_id, type, url, title, description, thumbnail_url, display_order, is_active, created_at`

func scanMediaItems(rows pgx.Rows) ([]models.MediaItem, error) {
	defer rows.Close()

	var items []models.MediaItem
	for rows.Next() {
		var m models.MediaItem
		if err := rows.Scan(
			&m.ID,
			&m.CardID,
			&m.Type,
			&m.URL,
			&m.Title,
			&m.Description,
			&m.ThumbnailURL,
			&m.DisplayOrder,
			&m.IsActive,
			&m.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// ListMediaItems returns every media item of a card in display order.
func (d *DB) ListMediaItems(ctx context.Context, cardID uuid.UUID) ([]models.MediaItem, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT `+mediaItemColumns+` FROM media_items
		WHERE card_id = $1
		ORDER BY display_order, created_at
	`, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list media items: %w", err)
	}
	return scanMediaItems(rows)
}

// GetActiveMediaItems returns the active media items of a card in display order.
func (d *DB) GetActiveMediaItems(ctx context.Context, cardID uuid.UUID) ([]models.MediaItem, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT `+mediaItemColumns+` FROM media_items
		WHERE card_id = $1 AND is_active
		ORDER BY display_order, created_at
	`, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active media items: %w", err)
	}
	return scanMediaItems(rows)
}

// CreateMediaItem appends a media item to the end of the card's list.
func (d *DB) CreateMediaItem(ctx context.Context, m *models.MediaItem) error {
	if m.Type == "" {
		m.Type = models.MediaVideo
	}
	err := d.Pool.QueryRow(ctx, `
		INSERT INTO media_items (card_id, type, url, title, description, thumbnail_url, display_order, is_active)
		VALUES ($1, $2, $3, $4, $5, $6,
			(SELECT COALESCE(MAX(display_order) + 1, 0) FROM media_items WHERE card_id = $1), $7)
		RETURNING id, display_order, created_at
	`,
		m.CardID,
		m.Type,
		m.URL,
		m.Title,
		m.Description,
		m.ThumbnailURL,
		m.IsActive,
	).Scan(&m.ID, &m.DisplayOrder, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create media item: %w", err)
	}
	return nil
}

// UpdateMediaItemTitle changes the title of a media item.
func (d *DB) UpdateMediaItemTitle(ctx context.Context, id, cardID uuid.UUID, title string) error {
	result, err := d.Pool.Exec(ctx, `UPDATE media_items SET title = $3 WHERE id = $1 AND card_id = $2`, id, cardID, title)
	if err != nil {
		return fmt.Errorf("failed to update media item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrMediaItemNotFound
	}
	return nil
}

// ToggleMediaItem flips the active flag of a media item.
func (d *DB) ToggleMediaItem(ctx context.Context, id, cardID uuid.UUID) error {
	result, err := d.Pool.Exec(ctx, `UPDATE media_items SET is_active = NOT is_active WHERE id = $1 AND card_id = $2`, id, cardID)
	if err != nil {
		return fmt.Errorf("failed to toggle media item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrMediaItemNotFound
	}
	return nil
}

// DeleteMediaItem removes a media item from a card.
func (d *DB) DeleteMediaItem(ctx context.Context, id, cardID uuid.UUID) error {
	result, err := d.Pool.Exec(ctx, `DELETE FROM media_items WHERE id = $1 AND card_id = $2`, id, cardID)
	if err != nil {
		return fmt.Errorf("failed to delete media item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrMediaItemNotFound
	}
	return nil
}

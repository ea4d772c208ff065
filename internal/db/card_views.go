package db

import (
	"context"
	"fmt"
	"time"

	"cardlink/internal/models"
)

// RecordCardView appends one view event.
func (d *DB) RecordCardView(ctx context.Context, v *models.CardView) error {
	viewedAt := v.ViewedAt
	if viewedAt.IsZero() {
		viewedAt = time.Now()
	}
	err := d.Pool.QueryRow(ctx, `
		INSERT INTO card_views (card_id, visitor_ip, user_agent, referrer, device_type, viewed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, viewed_at
	`, v.CardID, v.VisitorIP, v.UserAgent, v.Referrer, v.DeviceType, viewedAt).Scan(&v.ID, &v.ViewedAt)
	if err != nil {
		return fmt.Errorf("failed to record card view: %w", err)
	}
	return nil
}

// PruneCardViews deletes view events older than before and returns how many were removed.
func (d *DB) PruneCardViews(ctx context.Context, before time.Time) (int64, error) {
	result, err := d.Pool.Exec(ctx, `DELETE FROM card_views WHERE viewed_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("failed to prune card views: %w", err)
	}
	return result.RowsAffected(), nil
}

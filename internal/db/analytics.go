package db

import (
	"context"
	"fmt"
	"time"

	"cardlink/internal/models"
)

// growthMonths is the number of calendar months in the user growth series.
const growthMonths = 6

// GetPlatformAnalytics aggregates platform-wide counters relative to now.
func (d *DB) GetPlatformAnalytics(ctx context.Context, now time.Time) (*models.PlatformAnalytics, error) {
	var a models.PlatformAnalytics

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	err := d.Pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM profiles),
			(SELECT COUNT(*) FROM business_cards),
			(SELECT COUNT(*) FROM business_cards WHERE is_published),
			(SELECT COALESCE(SUM(view_count), 0)::BIGINT FROM business_cards),
			(SELECT COUNT(*) FROM profiles WHERE created_at >= $1),
			(SELECT COUNT(*) FROM card_views WHERE device_type = 'mobile'),
			(SELECT COUNT(*) FROM card_views WHERE device_type = 'desktop')
	`, monthStart).Scan(
		&a.TotalUsers,
		&a.TotalCards,
		&a.PublishedCards,
		&a.TotalViews,
		&a.NewUsersThisMonth,
		&a.MobileViews,
		&a.DesktopViews,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query analytics: %w", err)
	}

	growthStart := monthStart.AddDate(0, -(growthMonths - 1), 0)
	rows, err := d.Pool.Query(ctx, `
		SELECT to_char(date_trunc('month', created_at), 'YYYY-MM') AS month, COUNT(*)
		FROM profiles
		WHERE created_at >= $1
		GROUP BY month
	`, growthStart)
	if err != nil {
		return nil, fmt.Errorf("failed to query user growth: %w", err)
	}
	defer rows.Close()

	byMonth := make(map[string]int64)
	for rows.Next() {
		var month string
		var n int64
		if err := rows.Scan(&month, &n); err != nil {
			return nil, fmt.Errorf("failed to scan user growth: %w", err)
		}
		byMonth[month] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	a.UserGrowth = GrowthSeries(now, growthMonths, byMonth)
	return &a, nil
}

// GrowthSeries returns one entry per calendar month ending with the month of
// now, oldest first. counts is keyed by "YYYY-MM"; missing months are zero.
func GrowthSeries(now time.Time, months int, counts map[string]int64) []models.MonthlyCount {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	series := make([]models.MonthlyCount, 0, months)
	for i := months - 1; i >= 0; i-- {
		m := first.AddDate(0, -i, 0)
		series = append(series, models.MonthlyCount{
			Month: m.Format("Jan 2006"),
			Users: counts[m.Format("2006-01")],
		})
	}
	return series
}

package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cardlink/migrations"
)

// DB wraps a pgxpool connection pool.
type DB struct {
	Pool *pgxpool.Pool
}

// New creates a new database connection pool.
func New(ctx context.Context, connString string) (*DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// RunMigrations runs all embedded SQL migrations.
func (d *DB) RunMigrations(connString string) error {
	sourceDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, connString)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

// Ping checks the connection.
func (d *DB) Ping(ctx context.Context) error {
	return d.Pool.Ping(ctx)
}

// Close closes the connection pool.
func (d *DB) Close() {
	d.Pool.Close()
}

// SeedDevCard inserts a published demo card for development. Skips it if the slug exists.
func (d *DB) SeedDevCard(ctx context.Context) error {
	owner := `
		INSERT INTO profiles (sub, email, name, global_username)
		VALUES ('dev-seed', 'demo@example.com', 'Demo User', 'demo')
		ON CONFLICT (sub) DO UPDATE SET updated_at = NOW()
		RETURNING id
	`
	var ownerID string
	if err := d.Pool.QueryRow(ctx, owner).Scan(&ownerID); err != nil {
		return fmt.Errorf("failed to seed profile: %w", err)
	}

	card := `
		INSERT INTO business_cards (user_id, slug, title, position, company, bio, email, website, is_published)
		VALUES ($1, 'demo', 'Demo User', 'Developer', 'Example Inc', 'Hello from the demo card.', 'demo@example.com', 'example.com', true)
		ON CONFLICT (slug) DO NOTHING
		RETURNING id
	`
	var cardID string
	err := d.Pool.QueryRow(ctx, card, ownerID).Scan(&cardID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to seed card: %w", err)
	}

	socials := []struct{ platform, url string }{
		{"GitHub", "https://github.com/demo"},
		{"LinkedIn", "https://linkedin.com/in/demo"},
	}
	for i, s := range socials {
		if _, err := d.Pool.Exec(ctx, `
			INSERT INTO social_links (card_id, platform, username, url, display_order, is_auto_synced)
			VALUES ($1, $2, 'demo', $3, $4, true)
		`, cardID, s.platform, s.url, i); err != nil {
			return fmt.Errorf("failed to seed social link %s: %w", s.platform, err)
		}
	}

	return nil
}

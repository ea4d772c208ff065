package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"cardlink/internal/models"
)

const profileColumns = `id, sub, email, name, avatar_url, global_username, role, created_at, updated_at`

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var p models.Profile
	err := row.Scan(
		&p.ID,
		&p.Sub,
		&p.Email,
		&p.Name,
		&p.AvatarURL,
		&p.GlobalUsername,
		&p.Role,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpsertProfile creates or updates a profile based on its OIDC subject.
// Name and global username are only set on insert; owners edit them afterwards.
func (d *DB) UpsertProfile(ctx context.Context, p *models.Profile) error {
	query := `
		INSERT INTO profiles (sub, email, name, avatar_url, role)
		VALUES ($1, $2, $3, $4, COALESCE($5, 'user'))
		ON CONFLICT (sub) DO UPDATE SET
			email = EXCLUDED.email,
			avatar_url = EXCLUDED.avatar_url,
			updated_at = NOW()
		RETURNING ` + profileColumns

	got, err := scanProfile(d.Pool.QueryRow(ctx, query,
		p.Sub,
		p.Email,
		p.Name,
		p.AvatarURL,
		nullIfEmpty(p.Role),
	))
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	*p = *got
	return nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// GetProfileBySub retrieves a profile by its OIDC subject identifier.
func (d *DB) GetProfileBySub(ctx context.Context, sub string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE sub = $1`
	return scanProfile(d.Pool.QueryRow(ctx, query, sub))
}

// GetProfileByID retrieves a profile by its UUID.
func (d *DB) GetProfileByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	return scanProfile(d.Pool.QueryRow(ctx, query, id))
}

// UpdateProfile updates the owner-editable profile fields.
func (d *DB) UpdateProfile(ctx context.Context, id uuid.UUID, name, globalUsername string) error {
	result, err := d.Pool.Exec(ctx, `
		UPDATE profiles SET name = $2, global_username = $3, updated_at = NOW()
		WHERE id = $1
	`, id, name, globalUsername)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// ListProfiles returns all profiles, newest first.
func (d *DB) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	rows, err := d.Pool.Query(ctx, `SELECT `+profileColumns+` FROM profiles ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

// DeleteProfile deletes a profile. Its cards and their content cascade.
func (d *DB) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	result, err := d.Pool.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrProfileNotFound
	}
	return nil
}

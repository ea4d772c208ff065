package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"cardlink/internal/cardview"
)

// Domain-level database error sentinels.
var (
	// Card errors. ErrCardNotFound is shared with the view assembler so a
	// store miss is recognized as a missing card.
	ErrCardNotFound  = cardview.ErrCardNotFound
	ErrDuplicateSlug = errors.New("slug already taken")

	// Profile errors
	ErrProfileNotFound = errors.New("profile not found")

	// Card content errors
	ErrSocialLinkNotFound = errors.New("social link not found")
	ErrDuplicatePlatform  = errors.New("platform already on card")
	ErrMediaItemNotFound  = errors.New("media item not found")
	ErrReviewLinkNotFound = errors.New("review link not found")
)

// isUniqueViolation reports a Postgres unique_violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

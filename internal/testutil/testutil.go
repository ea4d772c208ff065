// Package testutil provides helpers for tests that run against a real database.
package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"

	"cardlink/internal/db"
	"cardlink/internal/models"
)

// TestDB connects to TEST_DATABASE_URL, runs migrations and empties the
// tables. The test is skipped when the variable is not set.
func TestDB(t *testing.T) *db.DB {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	database, err := db.New(ctx, connString)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := database.RunMigrations(connString); err != nil {
		database.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	cleanupTestData(ctx, database)
	t.Cleanup(func() {
		cleanupTestData(ctx, database)
		database.Close()
	})

	return database
}

// cleanupTestData removes all rows. Cards, their content and view
// events cascade from profiles.
func cleanupTestData(ctx context.Context, database *db.DB) {
	database.Pool.Exec(ctx, "DELETE FROM profiles")
}

// CreateTestProfile inserts a profile with the given subject and global username.
func CreateTestProfile(t *testing.T, database *db.DB, sub, globalUsername string) *models.Profile {
	t.Helper()
	ctx := context.Background()

	p := &models.Profile{Sub: sub, Email: sub + "@example.com", Name: "Test User " + sub}
	if err := database.UpsertProfile(ctx, p); err != nil {
		t.Fatalf("failed to create test profile: %v", err)
	}
	if globalUsername != "" {
		if err := database.UpdateProfile(ctx, p.ID, p.Name, globalUsername); err != nil {
			t.Fatalf("failed to set global username: %v", err)
		}
		p.GlobalUsername = globalUsername
	}
	return p
}

// CreateTestCard inserts a card owned by owner.
func CreateTestCard(t *testing.T, database *db.DB, owner uuid.UUID, slug string, published bool) *models.Card {
	t.Helper()

	c := &models.Card{UserID: owner, Slug: slug, Title: "Card " + slug, IsPublished: published}
	if err := database.CreateCard(context.Background(), c); err != nil {
		t.Fatalf("failed to create test card: %v", err)
	}
	return c
}

// CreateTestSocialLink inserts an active social link on card.
func CreateTestSocialLink(t *testing.T, database *db.DB, cardID uuid.UUID, platform, username, url string, order int) *models.SocialLink {
	t.Helper()

	l := &models.SocialLink{
		CardID:       cardID,
		Platform:     platform,
		Username:     username,
		URL:          url,
		DisplayOrder: order,
		IsActive:     true,
	}
	if err := database.CreateSocialLink(context.Background(), l); err != nil {
		t.Fatalf("failed to create test social link: %v", err)
	}
	return l
}

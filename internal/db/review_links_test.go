package db

import (
	"context"
	"testing"
	"time"

	"cardlink/internal/models"
)

func TestReviewLinks_NewestFirst(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	p := createTestProfile(t, db, "review-sub")
	card := createTestCard(t, db, p.ID, "reviewed", true)

	older := &models.ReviewLink{CardID: card.ID, Title: "Older", ReviewURL: "https://g.page/older", IsActive: true}
	newer := &models.ReviewLink{CardID: card.ID, Title: "Newer", ReviewURL: "https://g.page/newer", IsActive: true}
	hidden := &models.ReviewLink{CardID: card.ID, Title: "Hidden", ReviewURL: "https://g.page/hidden", IsActive: false}
	for _, r := range []*models.ReviewLink{older, newer, hidden} {
		if err := db.CreateReviewLink(ctx, r); err != nil {
			t.Fatalf("CreateReviewLink() error = %v", err)
		}
	}

	now := time.Now()
	ages := map[*models.ReviewLink]time.Duration{older: 48 * time.Hour, newer: time.Hour, hidden: 0}
	for r, age := range ages {
		if _, err := db.Pool.Exec(ctx, `UPDATE review_links SET created_at = $1 WHERE id = $2`, now.Add(-age), r.ID); err != nil {
			t.Fatalf("failed to backdate review link: %v", err)
		}
	}

	active, err := db.GetActiveReviewLinks(ctx, card.ID)
	if err != nil {
		t.Fatalf("GetActiveReviewLinks() error = %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("GetActiveReviewLinks() len = %d, want 2", len(active))
	}
	if active[0].Title != "Newer" || active[1].Title != "Older" {
		t.Errorf("GetActiveReviewLinks() order = %s, %s, want Newer, Older", active[0].Title, active[1].Title)
	}

	all, err := db.ListReviewLinks(ctx, card.ID)
	if err != nil {
		t.Fatalf("ListReviewLinks() error = %v", err)
	}
	if len(all) != 3 || all[0].Title != "Hidden" || all[2].Title != "Older" {
		t.Errorf("ListReviewLinks() returned %d links, want Hidden first and Older last", len(all))
	}
}

package handlers

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"
	"github.com/gofiber/template/html/v3"
	"github.com/google/uuid"

	"cardlink/internal/config"
	"cardlink/internal/db"
	"cardlink/internal/models"
)

// testViews are minimal templates that echo the fields the tests assert on.
var testViews = fstest.MapFS{
	"layouts/card.html":      {Data: []byte(`{{embed}}`)},
	"card/desktop.html":      {Data: []byte(`desktop:{{.Page.Title}}`)},
	"card/mobile.html":       {Data: []byte(`mobile:{{.Page.Title}}`)},
	"card/not_found.html":    {Data: []byte(`not found:{{.Slug}}`)},
	"admin/index.html":       {Data: []byte(`cards:{{len .Cards}}`)},
	"admin/card_new.html":    {Data: []byte(`new error:{{.Error}}`)},
	"admin/card_edit.html":   {Data: []byte(`edit:{{.Card.Slug}} error:{{.Error}}`)},
	"admin/profile.html":     {Data: []byte(`profile error:{{.Error}}`)},
	"console/login.html":     {Data: []byte(`login error:{{.Error}}`)},
	"console/dashboard.html": {Data: []byte(`users:{{.Analytics.TotalUsers}}`)},
	"console/users.html":     {Data: []byte(`users:{{len .Users}}`)},
	"console/cards.html":     {Data: []byte(`cards:{{len .Cards}}`)},
}

func testConfig() *config.Config {
	return &config.Config{
		BaseURL:           "https://cards.example.com",
		SiteTitle:         "CardLink",
		ConsoleSessionTTL: time.Hour,
	}
}

// newTestApp builds an app with templates and sessions. When profile is
// set every request is signed in as that owner.
func newTestApp(t *testing.T, profile *models.Profile) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{
		Views: html.NewFileSystem(http.FS(testViews), ".html"),
	})
	sessionMiddleware, _ := session.NewWithStore(session.Config{CookieHTTPOnly: true})
	app.Use(sessionMiddleware)
	if profile != nil {
		app.Use(func(c fiber.Ctx) error {
			c.Locals("profile", profile)
			return c.Next()
		})
	}
	return app
}

// memStore is an in-memory store satisfying every handler store interface.
type memStore struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*models.Profile
	cards    map[uuid.UUID]*models.Card
	links    map[uuid.UUID]*models.SocialLink
	media    map[uuid.UUID]*models.MediaItem
	reviews  map[uuid.UUID]*models.ReviewLink
	views    []models.CardView
}

func newMemStore() *memStore {
	return &memStore{
		profiles: map[uuid.UUID]*models.Profile{},
		cards:    map[uuid.UUID]*models.Card{},
		links:    map[uuid.UUID]*models.SocialLink{},
		media:    map[uuid.UUID]*models.MediaItem{},
		reviews:  map[uuid.UUID]*models.ReviewLink{},
	}
}

func (s *memStore) addProfile(p models.Profile) *models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	s.profiles[p.ID] = &p
	return &p
}

func (s *memStore) addCard(c models.Card) *models.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	s.cards[c.ID] = &c
	cp := c
	return &cp
}

func (s *memStore) addLink(l models.SocialLink) models.SocialLink {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	s.links[l.ID] = &l
	return l
}

func (s *memStore) card(id uuid.UUID) models.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.cards[id]
}

// Profiles

func (s *memStore) UpsertProfile(_ context.Context, p *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.profiles {
		if existing.Sub == p.Sub {
			existing.Email = p.Email
			*p = *existing
			return nil
		}
	}
	p.ID = uuid.New()
	cp := *p
	s.profiles[p.ID] = &cp
	return nil
}

func (s *memStore) UpdateProfile(_ context.Context, id uuid.UUID, name, globalUsername string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return db.ErrProfileNotFound
	}
	p.Name = name
	p.GlobalUsername = globalUsername
	return nil
}

func (s *memStore) ListProfiles(_ context.Context) ([]models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Profile
	for _, p := range s.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (s *memStore) DeleteProfile(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[id]; !ok {
		return db.ErrProfileNotFound
	}
	delete(s.profiles, id)
	for cid, c := range s.cards {
		if c.UserID == id {
			delete(s.cards, cid)
		}
	}
	return nil
}

// Cards

func (s *memStore) ListCardsByUser(_ context.Context, userID uuid.UUID) ([]models.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Card
	for _, c := range s.cards {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *memStore) ListCardsWithOwners(_ context.Context) ([]models.CardWithOwner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.CardWithOwner
	for _, c := range s.cards {
		row := models.CardWithOwner{Card: *c}
		if p, ok := s.profiles[c.UserID]; ok {
			row.OwnerName = p.Name
			row.OwnerEmail = p.Email
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *memStore) GetOwnedCard(_ context.Context, id, userID uuid.UUID) (*models.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cards[id]
	if !ok || c.UserID != userID {
		return nil, db.ErrCardNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *memStore) GetPublishedCardBySlug(_ context.Context, slug string) (*models.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.cards {
		if c.Slug == slug && c.IsPublished {
			cp := *c
			return &cp, nil
		}
	}
	return nil, db.ErrCardNotFound
}

func (s *memStore) slugTaken(slug string, except uuid.UUID) bool {
	for _, c := range s.cards {
		if c.Slug == slug && c.ID != except {
			return true
		}
	}
	return false
}

func (s *memStore) CreateCard(_ context.Context, card *models.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.slugTaken(card.Slug, uuid.Nil) {
		return db.ErrDuplicateSlug
	}
	card.ID = uuid.New()
	cp := *card
	s.cards[card.ID] = &cp
	return nil
}

func (s *memStore) UpdateCard(_ context.Context, card *models.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.cards[card.ID]
	if !ok || existing.UserID != card.UserID {
		return db.ErrCardNotFound
	}
	if s.slugTaken(card.Slug, card.ID) {
		return db.ErrDuplicateSlug
	}
	cp := *card
	s.cards[card.ID] = &cp
	return nil
}

func (s *memStore) SetCardPublished(_ context.Context, id, userID uuid.UUID, published bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cards[id]
	if !ok || c.UserID != userID {
		return db.ErrCardNotFound
	}
	c.IsPublished = published
	return nil
}

func (s *memStore) ToggleCardPublished(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cards[id]
	if !ok {
		return false, db.ErrCardNotFound
	}
	c.IsPublished = !c.IsPublished
	return c.IsPublished, nil
}

func (s *memStore) SetCardAvatar(_ context.Context, cardID, userID uuid.UUID, avatarURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cards[cardID]
	if !ok || c.UserID != userID {
		return db.ErrCardNotFound
	}
	c.AvatarURL = avatarURL
	return nil
}

func (s *memStore) DeleteOwnedCard(_ context.Context, id, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cards[id]
	if !ok || c.UserID != userID {
		return db.ErrCardNotFound
	}
	delete(s.cards, id)
	return nil
}

func (s *memStore) DeleteCard(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cards[id]; !ok {
		return db.ErrCardNotFound
	}
	delete(s.cards, id)
	return nil
}

func (s *memStore) IncrementCardViewCount(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.cards[id]; ok {
		c.ViewCount++
	}
	return nil
}

func (s *memStore) RecordCardView(_ context.Context, v *models.CardView) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.views = append(s.views, *v)
	return nil
}

func (s *memStore) GetPlatformAnalytics(_ context.Context, _ time.Time) (*models.PlatformAnalytics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &models.PlatformAnalytics{
		TotalUsers: int64(len(s.profiles)),
		TotalCards: int64(len(s.cards)),
		TotalViews: int64(len(s.views)),
	}, nil
}

// Social links

func (s *memStore) socialLinks(cardID uuid.UUID, activeOnly bool) []models.SocialLink {
	var out []models.SocialLink
	for _, l := range s.links {
		if l.CardID == cardID && (!activeOnly || l.IsActive) {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out
}

func (s *memStore) ListSocialLinks(_ context.Context, cardID uuid.UUID) ([]models.SocialLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.socialLinks(cardID, false), nil
}

func (s *memStore) GetActiveSocialLinks(_ context.Context, cardID uuid.UUID) ([]models.SocialLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.socialLinks(cardID, true), nil
}

func (s *memStore) ListSocialLinksByOwner(_ context.Context, userID uuid.UUID) ([]models.SocialLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.SocialLink
	for _, l := range s.links {
		if c, ok := s.cards[l.CardID]; ok && c.UserID == userID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (s *memStore) GetSocialLink(_ context.Context, id, cardID uuid.UUID) (*models.SocialLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.links[id]
	if !ok || l.CardID != cardID {
		return nil, db.ErrSocialLinkNotFound
	}
	cp := *l
	return &cp, nil
}

func (s *memStore) CreateSocialLink(_ context.Context, l *models.SocialLink) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.links {
		if existing.CardID == l.CardID && existing.Platform == l.Platform {
			return db.ErrDuplicatePlatform
		}
	}
	l.ID = uuid.New()
	cp := *l
	s.links[l.ID] = &cp
	return nil
}

func (s *memStore) CreateSocialLinks(ctx context.Context, links []models.SocialLink) error {
	for i := range links {
		if err := s.CreateSocialLink(ctx, &links[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *memStore) UpdateSocialLink(_ context.Context, l *models.SocialLink) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.links[l.ID]
	if !ok || existing.CardID != l.CardID {
		return db.ErrSocialLinkNotFound
	}
	cp := *l
	s.links[l.ID] = &cp
	return nil
}

func (s *memStore) UpdateSocialLinks(ctx context.Context, links []models.SocialLink) error {
	for i := range links {
		if err := s.UpdateSocialLink(ctx, &links[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *memStore) DeleteSocialLink(_ context.Context, id, cardID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.links[id]
	if !ok || l.CardID != cardID {
		return db.ErrSocialLinkNotFound
	}
	delete(s.links, id)
	return nil
}

func (s *memStore) ReorderSocialLinks(_ context.Context, cardID uuid.UUID, ids []uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		if l, ok := s.links[id]; !ok || l.CardID != cardID {
			return db.ErrSocialLinkNotFound
		}
	}
	for i, id := range ids {
		s.links[id].DisplayOrder = i
	}
	return nil
}

// Media items

func (s *memStore) ListMediaItems(_ context.Context, cardID uuid.UUID) ([]models.MediaItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.MediaItem
	for _, m := range s.media {
		if m.CardID == cardID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (s *memStore) GetActiveMediaItems(ctx context.Context, cardID uuid.UUID) ([]models.MediaItem, error) {
	all, _ := s.ListMediaItems(ctx, cardID)
	var out []models.MediaItem
	for _, m := range all {
		if m.IsActive {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *memStore) CreateMediaItem(_ context.Context, m *models.MediaItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = uuid.New()
	cp := *m
	s.media[m.ID] = &cp
	return nil
}

func (s *memStore) mediaItem(id, cardID uuid.UUID) (*models.MediaItem, error) {
	m, ok := s.media[id]
	if !ok || m.CardID != cardID {
		return nil, db.ErrMediaItemNotFound
	}
	return m, nil
}

func (s *memStore) UpdateMediaItemTitle(_ context.Context, id, cardID uuid.UUID, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.mediaItem(id, cardID)
	if err != nil {
		return err
	}
	m.Title = title
	return nil
}

func (s *memStore) ToggleMediaItem(_ context.Context, id, cardID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.mediaItem(id, cardID)
	if err != nil {
		return err
	}
	m.IsActive = !m.IsActive
	return nil
}

func (s *memStore) DeleteMediaItem(_ context.Context, id, cardID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.mediaItem(id, cardID); err != nil {
		return err
	}
	delete(s.media, id)
	return nil
}

// Review links

func (s *memStore) ListReviewLinks(_ context.Context, cardID uuid.UUID) ([]models.ReviewLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.ReviewLink
	for _, r := range s.reviews {
		if r.CardID == cardID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *memStore) GetActiveReviewLinks(ctx context.Context, cardID uuid.UUID) ([]models.ReviewLink, error) {
	all, _ := s.ListReviewLinks(ctx, cardID)
	var out []models.ReviewLink
	for _, r := range all {
		if r.IsActive {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memStore) CreateReviewLink(_ context.Context, r *models.ReviewLink) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = uuid.New()
	cp := *r
	s.reviews[r.ID] = &cp
	return nil
}

func (s *memStore) reviewLink(id, cardID uuid.UUID) (*models.ReviewLink, error) {
	r, ok := s.reviews[id]
	if !ok || r.CardID != cardID {
		return nil, db.ErrReviewLinkNotFound
	}
	return r, nil
}

func (s *memStore) UpdateReviewLinkTitle(_ context.Context, id, cardID uuid.UUID, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, err := s.reviewLink(id, cardID)
	if err != nil {
		return err
	}
	r.Title = title
	return nil
}

func (s *memStore) ToggleReviewLink(_ context.Context, id, cardID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, err := s.reviewLink(id, cardID)
	if err != nil {
		return err
	}
	r.IsActive = !r.IsActive
	return nil
}

func (s *memStore) DeleteReviewLink(_ context.Context, id, cardID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.reviewLink(id, cardID); err != nil {
		return err
	}
	delete(s.reviews, id)
	return nil
}

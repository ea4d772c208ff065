// Package cardview assembles the public view-model of a card from the card
// record and its active social links, media items and reviews.
package cardview

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"cardlink/internal/logging"
	"cardlink/internal/models"
)

var (
	// ErrCardNotFound is returned when no published card has the slug.
	ErrCardNotFound = errors.New("card not found or not published")

	// ErrUpstream marks a failed primary lookup. Errors carrying it also
	// match ErrCardNotFound.
	ErrUpstream = errors.New("card lookup failed")
)

// Assembly outcomes reported to the OnAssemble hook.
const (
	OutcomeOK            = "ok"
	OutcomeNotFound      = "not_found"
	OutcomeUpstreamError = "upstream_error"
)

const defaultTrackTimeout = 5 * time.Second

// Store is the persistence the assembler reads from and tracks views into.
// The lookup must return ErrCardNotFound (or an error wrapping it) when no
// published card matches.
type Store interface {
	GetPublishedCardBySlug(ctx context.Context, slug string) (*models.Card, error)
	GetActiveSocialLinks(ctx context.Context, cardID uuid.UUID) ([]models.SocialLink, error)
	GetActiveMediaItems(ctx context.Context, cardID uuid.UUID) ([]models.MediaItem, error)
	GetActiveReviewLinks(ctx context.Context, cardID uuid.UUID) ([]models.ReviewLink, error)
	IncrementCardViewCount(ctx context.Context, cardID uuid.UUID) error
	RecordCardView(ctx context.Context, view *models.CardView) error
}

// Visit describes the client requesting a card.
type Visit struct {
	IP        string
	UserAgent string
	Referrer  string
}

// ViewModel is the denormalized, render-ready card.
type ViewModel struct {
	Card        *models.Card
	Theme       models.Theme
	Layout      models.Layout
	SocialLinks []models.SocialLink
	MediaItems  []models.MediaItem
	Reviews     []models.ReviewLink
}

// Response converts the view-model to its JSON form.
func (vm *ViewModel) Response() models.PublicCardResponse {
	return models.PublicCardResponse{
		Card:        vm.Card,
		Theme:       vm.Theme,
		Layout:      vm.Layout,
		SocialLinks: nonNil(vm.SocialLinks),
		MediaItems:  nonNil(vm.MediaItems),
		Reviews:     nonNil(vm.Reviews),
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Assembler builds view-models and records views.
type Assembler struct {
	store        Store
	trackTimeout time.Duration
	onAssemble   func(outcome string)
	now          func() time.Time

	pending sync.WaitGroup
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithTrackTimeout bounds the detached view-tracking writes.
func WithTrackTimeout(d time.Duration) Option {
	return func(a *Assembler) { a.trackTimeout = d }
}

// WithOutcomeHook registers a callback invoked once per assembly with its outcome.
func WithOutcomeHook(fn func(outcome string)) Option {
	return func(a *Assembler) { a.onAssemble = fn }
}

// WithClock overrides the time source for view records.
func WithClock(now func() time.Time) Option {
	return func(a *Assembler) { a.now = now }
}

// NewAssembler creates an assembler over store.
func NewAssembler(store Store, opts ...Option) *Assembler {
	a := &Assembler{
		store:        store,
		trackTimeout: defaultTrackTimeout,
		onAssemble:   func(string) {},
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble resolves a published card by slug and gathers its related
// records. A missing card is the only failure; related fetch errors are
// logged and yield empty lists. Every successful call records one view.
func (a *Assembler) Assemble(ctx context.Context, slug string, visit Visit) (*ViewModel, error) {
	card, err := a.store.GetPublishedCardBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, ErrCardNotFound) {
			a.onAssemble(OutcomeNotFound)
			return nil, ErrCardNotFound
		}
		logging.Log.Error("card lookup failed", zap.String("slug", slug), zap.Error(err))
		a.onAssemble(OutcomeUpstreamError)
		return nil, fmt.Errorf("%w: %w: %v", ErrCardNotFound, ErrUpstream, err)
	}
	if card == nil || !card.IsPublic() {
		a.onAssemble(OutcomeNotFound)
		return nil, ErrCardNotFound
	}

	vm := &ViewModel{
		Card:   card,
		Theme:  card.ResolvedTheme(),
		Layout: card.ResolvedLayout(),
	}

	var g errgroup.Group
	g.Go(func() error {
		links, err := a.store.GetActiveSocialLinks(ctx, card.ID)
		if err != nil {
			logRelatedError("social links", card, err)
			return nil
		}
		vm.SocialLinks = links
		return nil
	})
	g.Go(func() error {
		items, err := a.store.GetActiveMediaItems(ctx, card.ID)
		if err != nil {
			logRelatedError("media items", card, err)
			return nil
		}
		vm.MediaItems = items
		return nil
	})
	g.Go(func() error {
		reviews, err := a.store.GetActiveReviewLinks(ctx, card.ID)
		if err != nil {
			logRelatedError("review links", card, err)
			return nil
		}
		vm.Reviews = reviews
		return nil
	})
	_ = g.Wait()

	a.onAssemble(OutcomeOK)
	a.track(card.ID, visit)
	return vm, nil
}

func logRelatedError(what string, card *models.Card, err error) {
	logging.Log.Warn("failed to load "+what,
		zap.String("card_id", card.ID.String()),
		zap.String("slug", card.Slug),
		zap.Error(err),
	)
}

// track increments the view counter and appends a view event in the
// background. The two writes are independent and never fail the caller.
func (a *Assembler) track(cardID uuid.UUID, visit Visit) {
	view := &models.CardView{
		CardID:     cardID,
		VisitorIP:  visit.IP,
		UserAgent:  visit.UserAgent,
		Referrer:   visit.Referrer,
		DeviceType: models.ClassifyDevice(visit.UserAgent),
		ViewedAt:   a.now(),
	}

	a.pending.Add(1)
	go func() {
		defer a.pending.Done()

		ctx, cancel := context.WithTimeout(context.Background(), a.trackTimeout)
		defer cancel()

		if err := a.store.IncrementCardViewCount(ctx, cardID); err != nil {
			logging.Log.Error("failed to increment view count", zap.String("card_id", cardID.String()), zap.Error(err))
		}
		if err := a.store.RecordCardView(ctx, view); err != nil {
			logging.Log.Error("failed to record card view", zap.String("card_id", cardID.String()), zap.Error(err))
		}
	}()
}

// Wait blocks until all pending view-tracking writes have finished.
func (a *Assembler) Wait() {
	a.pending.Wait()
}

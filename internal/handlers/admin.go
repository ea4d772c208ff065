package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"cardlink/internal/config"
	"cardlink/internal/db"
	"cardlink/internal/logging"
	"cardlink/internal/middleware"
	"cardlink/internal/models"
	"cardlink/internal/socials"
	"cardlink/internal/validation"
)

// AdminHandler handles the owner's card management.
type AdminHandler struct {
	store   AdminStore
	avatars AvatarService // nil when object storage is not configured
	cfg     *config.Config
}

// NewAdminHandler creates a new admin handler. avatars may be nil.
func NewAdminHandler(store AdminStore, avatars AvatarService, cfg *config.Config) *AdminHandler {
	return &AdminHandler{store: store, avatars: avatars, cfg: cfg}
}

// Index lists the owner's cards.
func (h *AdminHandler) Index(c fiber.Ctx) error {
	profile := middleware.CurrentProfile(c)
	if profile == nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	cards, err := h.store.ListCardsByUser(c.Context(), profile.ID)
	if err != nil {
		return err
	}

	return c.Render("admin/index", MergeBranding(fiber.Map{
		"Profile": profile,
		"Cards":   cards,
		"BaseURL": strings.TrimRight(h.cfg.BaseURL, "/"),
	}, h.cfg))
}

// NewCard renders an empty card form.
func (h *AdminHandler) NewCard(c fiber.Ctx) error {
	profile := middleware.CurrentProfile(c)
	if profile == nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	return c.Render("admin/card_new", MergeBranding(fiber.Map{
		"Profile": profile,
		"Card":    &models.Card{Shape: models.ShapeRounded},
		"Themes":  h.cfg.ThemePresets(),
	}, h.cfg))
}

// CreateCard saves a new card for the owner.
func (h *AdminHandler) CreateCard(c fiber.Ctx) error {
	profile := middleware.CurrentProfile(c)
	if profile == nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	form := cardFormFrom(c)
	card := &models.Card{UserID: profile.ID}
	form.Apply(card)

	if err := form.Validate(); err != nil {
		return h.renderCardForm(c, "admin/card_new", profile, card, validation.FirstError(err))
	}

	if err := h.store.CreateCard(c.Context(), card); err != nil {
		if errors.Is(err, db.ErrDuplicateSlug) {
			return h.renderCardForm(c, "admin/card_new", profile, card, "slug: \""+card.Slug+"\" is already taken")
		}
		return err
	}

	logging.Log.Info("card created", zap.String("user_id", profile.ID.String()), zap.String("slug", card.Slug))
	return c.Redirect().To("/admin/cards/" + card.ID.String())
}

// EditCard renders the editor for one card and its related records.
func (h *AdminHandler) EditCard(c fiber.Ctx) error {
	profile, card, err := h.ownedCard(c)
	if err != nil {
		return err
	}
	return h.renderEditor(c, fiber.StatusOK, profile, card, "")
}

// UpdateCard saves the card form.
func (h *AdminHandler) UpdateCard(c fiber.Ctx) error {
	profile, card, err := h.ownedCard(c)
	if err != nil {
		return err
	}

	form := cardFormFrom(c)
	form.Apply(card)

	if err := form.Validate(); err != nil {
		return h.renderEditor(c, fiber.StatusBadRequest, profile, card, validation.FirstError(err))
	}

	if err := h.store.UpdateCard(c.Context(), card); err != nil {
		if errors.Is(err, db.ErrDuplicateSlug) {
			return h.renderEditor(c, fiber.StatusConflict, profile, card, "slug: \""+card.Slug+"\" is already taken")
		}
		return storeError(err)
	}

	return c.Redirect().To("/admin/cards/" + card.ID.String() + "?saved=1")
}

// TogglePublish flips the published state of a card.
func (h *AdminHandler) TogglePublish(c fiber.Ctx) error {
	profile, card, err := h.ownedCard(c)
	if err != nil {
		return err
	}

	if err := h.store.SetCardPublished(c.Context(), card.ID, profile.ID, !card.IsPublished); err != nil {
		return storeError(err)
	}

	return c.Redirect().To("/admin")
}

// DeleteCard removes a card and everything attached to it.
func (h *AdminHandler) DeleteCard(c fiber.Ctx) error {
	profile, card, err := h.ownedCard(c)
	if err != nil {
		return err
	}

	if err := h.store.DeleteOwnedCard(c.Context(), card.ID, profile.ID); err != nil {
		return storeError(err)
	}
	if card.AvatarURL != "" && h.avatars != nil {
		h.removeAvatar(c, card.AvatarURL)
	}

	logging.Log.Info("card deleted", zap.String("user_id", profile.ID.String()), zap.String("slug", card.Slug))
	return c.Redirect().To("/admin")
}

// ownedCard loads the :id card of the signed-in owner. Cards of other
// owners are reported as not found.
func (h *AdminHandler) ownedCard(c fiber.Ctx) (*models.Profile, *models.Card, error) {
	profile := middleware.CurrentProfile(c)
	if profile == nil {
		return nil, nil, fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := paramID(c, "id")
	if err != nil {
		return nil, nil, err
	}

	card, err := h.store.GetOwnedCard(c.Context(), id, profile.ID)
	if err != nil {
		return nil, nil, storeError(err)
	}
	return profile, card, nil
}

func (h *AdminHandler) renderCardForm(c fiber.Ctx, view string, profile *models.Profile, card *models.Card, msg string) error {
	return c.Status(fiber.StatusBadRequest).Render(view, MergeBranding(fiber.Map{
		"Profile": profile,
		"Card":    card,
		"Themes":  h.cfg.ThemePresets(),
		"Error":   msg,
	}, h.cfg))
}

// renderEditor renders the full card editor. Related lists that fail to load
// are shown empty.
func (h *AdminHandler) renderEditor(c fiber.Ctx, status int, profile *models.Profile, card *models.Card, msg string) error {
	ctx := c.Context()

	links, err := h.store.ListSocialLinks(ctx, card.ID)
	if err != nil {
		logging.Log.Warn("failed to load social links", zap.String("card_id", card.ID.String()), zap.Error(err))
	}
	media, err := h.store.ListMediaItems(ctx, card.ID)
	if err != nil {
		logging.Log.Warn("failed to load media items", zap.String("card_id", card.ID.String()), zap.Error(err))
	}
	reviews, err := h.store.ListReviewLinks(ctx, card.ID)
	if err != nil {
		logging.Log.Warn("failed to load review links", zap.String("card_id", card.ID.String()), zap.Error(err))
	}

	return c.Status(status).Render("admin/card_edit", MergeBranding(fiber.Map{
		"Profile":        profile,
		"Card":           card,
		"Theme":          card.ResolvedTheme(),
		"Layout":         card.ResolvedLayout(),
		"SocialLinks":    links,
		"MediaItems":     media,
		"Reviews":        reviews,
		"Platforms":      socials.Platforms(),
		"Themes":         h.cfg.ThemePresets(),
		"StorageEnabled": h.avatars != nil,
		"CardURL":        strings.TrimRight(h.cfg.BaseURL, "/") + "/c/" + card.Slug,
		"Saved":          c.Query("saved") == "1",
		"Error":          msg,
	}, h.cfg))
}

// childError reports a failed edit of a related record. HTMX requests get
// an inline fragment; full page posts get the editor back.
func (h *AdminHandler) childError(c fiber.Ctx, profile *models.Profile, card *models.Card, msg string) error {
	if isHTMX(c) {
		return htmxError(c, msg)
	}
	return h.renderEditor(c, fiber.StatusBadRequest, profile, card, msg)
}

func backToEditor(c fiber.Ctx, card *models.Card) error {
	if isHTMX(c) {
		c.Set("HX-Redirect", "/admin/cards/"+card.ID.String())
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Redirect().To("/admin/cards/" + card.ID.String())
}

func cardFormFrom(c fiber.Ctx) validation.CardForm {
	v := func(key string) string { return strings.TrimSpace(c.FormValue(key)) }
	return validation.CardForm{
		Slug:        validation.NormalizeSlug(v("slug")),
		Title:       v("title"),
		Company:     v("company"),
		Position:    v("position"),
		Bio:         v("bio"),
		Email:       v("email"),
		Phone:       v("phone"),
		WhatsApp:    v("whatsapp"),
		Website:     v("website"),
		Address:     v("address"),
		MapLink:     v("map_link"),
		Shape:       v("shape"),
		ThemeName:   v("theme_name"),
		Primary:     v("primary"),
		Secondary:   v("secondary"),
		Background:  v("background"),
		Text:        v("text"),
		Style:       v("style"),
		Alignment:   v("alignment"),
		Font:        v("font"),
		IsPublished: c.FormValue("is_published") == "on" || c.FormValue("is_published") == "true",
	}
}

// storeError maps store sentinels to HTTP errors.
func storeError(err error) error {
	switch {
	case errors.Is(err, db.ErrCardNotFound):
		return fiber.NewError(fiber.StatusNotFound, "card not found")
	case errors.Is(err, db.ErrSocialLinkNotFound):
		return fiber.NewError(fiber.StatusNotFound, "social link not found")
	case errors.Is(err, db.ErrMediaItemNotFound):
		return fiber.NewError(fiber.StatusNotFound, "media item not found")
	case errors.Is(err, db.ErrReviewLinkNotFound):
		return fiber.NewError(fiber.StatusNotFound, "review link not found")
	case errors.Is(err, db.ErrProfileNotFound):
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	case errors.Is(err, db.ErrDuplicateSlug):
		return fiber.NewError(fiber.StatusConflict, "slug is already taken")
	}
	return err
}

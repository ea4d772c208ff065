package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"cardlink/internal/db"
	"cardlink/internal/logging"
	"cardlink/internal/socials"
	"cardlink/internal/validation"
)

// AddSocialLink appends a social link to a card. The URL is derived from
// the username, and the link starts auto-synced when it matches the
// owner's global username.
func (h *AdminHandler) AddSocialLink(c fiber.Ctx) error {
	profile, card, err := h.ownedCard(c)
	if err != nil {
		return err
	}

	form := validation.SocialLinkForm{
		Platform: strings.TrimSpace(c.FormValue("platform")),
		Username: strings.TrimSpace(c.FormValue("username")),
	}
	if err := form.Validate(); err != nil {
		return h.childError(c, profile, card, validation.FirstError(err))
	}

	existing, err := h.store.ListSocialLinks(c.Context(), card.ID)
	if err != nil {
		return err
	}

	link := socials.NewLink(card.ID, form.Platform, form.Username, profile.GlobalUsername, len(existing))
	if err := h.store.CreateSocialLink(c.Context(), &link); err != nil {
		if errors.Is(err, db.ErrDuplicatePlatform) {
			return h.childError(c, profile, card, form.Platform+" is already on this card")
		}
		return err
	}

	return backToEditor(c, card)
}

// UpdateSocialLink changes the username of a link by hand.
func (h *AdminHandler) UpdateSocialLink(c fiber.Ctx) error {
	profile, card, err := h.ownedCard(c)
	if err != nil {
		return err
	}

	linkID, err := paramID(c, "linkID")
	if err != nil {
		return err
	}

	link, err := h.store.GetSocialLink(c.Context(), linkID, card.ID)
	if err != nil {
		return storeError(err)
	}

	form := validation.SocialLinkForm{
		Platform: link.Platform,
		Username: strings.TrimSpace(c.FormValue("username")),
	}
	if err := form.Validate(); err != nil {
		return h.childError(c, profile, card, validation.FirstError(err))
	}

	edited := socials.ApplyManualEdit(*link, form.Username, profile.GlobalUsername)
	if err := h.store.UpdateSocialLink(c.Context(), &edited); err != nil {
		return storeError(err)
	}

	return backToEditor(c, card)
}

// ToggleSocialLink shows or hides a link on the public card.
func (h *AdminHandler) ToggleSocialLink(c fiber.Ctx) error {
	_, card, err := h.ownedCard(c)
	if err != nil {
		return err
	}

	linkID, err := paramID(c, "linkID")
	if err != nil {
		return err
	}

	link, err := h.store.GetSocialLink(c.Context(), linkID, card.ID)
	if err != nil {
		return storeError(err)
	}

	link.IsActive = !link.IsActive
	if err := h.store.UpdateSocialLink(c.Context(), link); err != nil {
		return storeError(err)
	}

	return backToEditor(c, card)
}

// DeleteSocialLink removes a link from a card.
func (h *AdminHandler) DeleteSocialLink(c fiber.Ctx) error {
	_, card, err := h.ownedCard(c)
	if err != nil {
		return err
	}

	linkID, err := paramID(c, "linkID")
	if err != nil {
		return err
	}

	if err := h.store.DeleteSocialLink(c.Context(), linkID, card.ID); err != nil {
		return storeError(err)
	}

	return backToEditor(c, card)
}

// ReorderSocialLinks stores a new link order. The "order" form value is a
// comma-separated list of link IDs, first shown first.
func (h *AdminHandler) ReorderSocialLinks(c fiber.Ctx) error {
	profile, card, err := h.ownedCard(c)
	if err != nil {
		return err
	}

	var ids []uuid.UUID
	for _, raw := range strings.Split(c.FormValue("order"), ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return h.childError(c, profile, card, "invalid link order")
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return h.childError(c, profile, card, "link order is empty")
	}

	if err := h.store.ReorderSocialLinks(c.Context(), card.ID, ids); err != nil {
		return storeError(err)
	}

	return backToEditor(c, card)
}

// SyncSocialLinks adds one auto-synced link for every eligible platform the
// card is missing, using the owner's global username.
func (h *AdminHandler) SyncSocialLinks(c fiber.Ctx) error {
	profile, card, err := h.ownedCard(c)
	if err != nil {
		return err
	}

	if profile.GlobalUsername == "" {
		return h.childError(c, profile, card, "set a global username on your profile first")
	}

	existing, err := h.store.ListSocialLinks(c.Context(), card.ID)
	if err != nil {
		return err
	}

	generated := socials.BulkGenerate(card.ID, profile.GlobalUsername, existing)
	if err := h.store.CreateSocialLinks(c.Context(), generated); err != nil {
		if errors.Is(err, db.ErrDuplicatePlatform) {
			return h.childError(c, profile, card, "social links changed while syncing, try again")
		}
		return err
	}

	logging.Log.Info("social links generated",
		zap.String("card_id", card.ID.String()),
		zap.Int("created", len(generated)),
	)
	return backToEditor(c, card)
}

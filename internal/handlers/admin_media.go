package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"cardlink/internal/models"
	"cardlink/internal/render"
	"cardlink/internal/validation"
)

// AddMediaItem appends a media item to a card. Items default to video, and
// a YouTube thumbnail is filled in when none was given.
func (h *AdminHandler) AddMediaItem(c fiber.Ctx) error {
	profile, card, err := h.ownedCard(c)
	if err != nil {
		return err
	}

	form := validation.MediaItemForm{
		Type:         strings.TrimSpace(c.FormValue("type")),
		URL:          strings.TrimSpace(c.FormValue("url")),
		Title:        strings.TrimSpace(c.FormValue("title")),
		Description:  strings.TrimSpace(c.FormValue("description")),
		ThumbnailURL: strings.TrimSpace(c.FormValue("thumbnail_url")),
	}
	if err := form.Validate(); err != nil {
		return h.childError(c, profile, card, validation.FirstError(err))
	}

	item := &models.MediaItem{
		CardID:       card.ID,
		Type:         form.Type,
		URL:          form.URL,
		Title:        form.Title,
		Description:  form.Description,
		ThumbnailURL: form.ThumbnailURL,
		IsActive:     true,
	}
	if item.Type == "" {
		item.Type = models.MediaVideo
	}
	if item.ThumbnailURL == "" && item.IsVideo() {
		item.ThumbnailURL = render.ThumbnailURL(item.URL)
	}

	if err := h.store.CreateMediaItem(c.Context(), item); err != nil {
		return err
	}

	return backToEditor(c, card)
}

// RetitleMediaItem changes the title of a media item.
func (h *AdminHandler) RetitleMediaItem(c fiber.Ctx) error {
	profile, card, err := h.ownedCard(c)
	if err != nil {
		return err
	}

	itemID, err := paramID(c, "itemID")
	if err != nil {
		return err
	}

	form := validation.TitleForm{Title: strings.TrimSpace(c.FormValue("title"))}
	if err := form.Validate(); err != nil {
		return h.childError(c, profile, card, validation.FirstError(err))
	}

	if err := h.store.UpdateMediaItemTitle(c.Context(), itemID, card.ID, form.Title); err != nil {
		return storeError(err)
	}

	return backToEditor(c, card)
}

// ToggleMediaItem shows or hides a media item on the public card.
func (h *AdminHandler) ToggleMediaItem(c fiber.Ctx) error {
	_, card, err := h.ownedCard(c)
	if err != nil {
		return err
	}

	itemID, err := paramID(c, "itemID")
	if err != nil {
		return err
	}

	if err := h.store.ToggleMediaItem(c.Context(), itemID, card.ID); err != nil {
		return storeError(err)
	}

	return backToEditor(c, card)
}

// DeleteMediaItem removes a media item from a card.
func (h *AdminHandler) DeleteMediaItem(c fiber.Ctx) error {
	_, card, err := h.ownedCard(c)
	if err != nil {
		return err
	}

	itemID, err := paramID(c, "itemID")
	if err != nil {
		return err
	}

	if err := h.store.DeleteMediaItem(c.Context(), itemID, card.ID); err != nil {
		return storeError(err)
	}

	return backToEditor(c, card)
}

// AddReviewLink appends a review link to a card.
func (h *AdminHandler) AddReviewLink(c fiber.Ctx) error {
	profile, card, err := h.ownedCard(c)
	if err != nil {
		return err
	}

	form := validation.ReviewLinkForm{
		Title:     strings.TrimSpace(c.FormValue("title")),
		ReviewURL: strings.TrimSpace(c.FormValue("review_url")),
	}
	if err := form.Validate(); err != nil {
		return h.childError(c, profile, card, validation.FirstError(err))
	}

	review := &models.ReviewLink{
		CardID:    card.ID,
		Title:     form.Title,
		ReviewURL: form.ReviewURL,
		IsActive:  true,
	}
	if err := h.store.CreateReviewLink(c.Context(), review); err != nil {
		return err
	}

	return backToEditor(c, card)
}

// RetitleReviewLink changes the title of a review link.
func (h *AdminHandler) RetitleReviewLink(c fiber.Ctx) error {
	profile, card, err := h.ownedCard(c)
	if err != nil {
		return err
	}

	reviewID, err := paramID(c, "reviewID")
	if err != nil {
		return err
	}

	form := validation.TitleForm{Title: strings.TrimSpace(c.FormValue("title"))}
	if err := form.Validate(); err != nil {
		return h.childError(c, profile, card, validation.FirstError(err))
	}
	if form.Title == "" {
		return h.childError(c, profile, card, "title: title is required")
	}

	if err := h.store.UpdateReviewLinkTitle(c.Context(), reviewID, card.ID, form.Title); err != nil {
		return storeError(err)
	}

	return backToEditor(c, card)
}

// ToggleReviewLink shows or hides a review link on the public card.
func (h *AdminHandler) ToggleReviewLink(c fiber.Ctx) error {
	_, card, err := h.ownedCard(c)
	if err != nil {
		return err
	}

	reviewID, err := paramID(c, "reviewID")
	if err != nil {
		return err
	}

	if err := h.store.ToggleReviewLink(c.Context(), reviewID, card.ID); err != nil {
		return storeError(err)
	}

	return backToEditor(c, card)
}

// DeleteReviewLink removes a review link from a card.
func (h *AdminHandler) DeleteReviewLink(c fiber.Ctx) error {
	_, card, err := h.ownedCard(c)
	if err != nil {
		return err
	}

	reviewID, err := paramID(c, "reviewID")
	if err != nil {
		return err
	}

	if err := h.store.DeleteReviewLink(c.Context(), reviewID, card.ID); err != nil {
		return storeError(err)
	}

	return backToEditor(c, card)
}

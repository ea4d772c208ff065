package handlers

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"cardlink/internal/logging"
	"cardlink/internal/storage"
)

// UploadAvatar stores a new avatar image for a card and replaces the old one.
func (h *AdminHandler) UploadAvatar(c fiber.Ctx) error {
	profile, card, err := h.ownedCard(c)
	if err != nil {
		return err
	}
	if h.avatars == nil {
		return fiber.NewError(fiber.StatusNotImplemented, "avatar storage is not configured")
	}

	fh, err := c.FormFile("avatar")
	if err != nil {
		return h.childError(c, profile, card, "avatar: choose an image to upload")
	}
	if fh.Size > storage.MaxAvatarSize {
		return h.childError(c, profile, card, "avatar: "+storage.ErrAvatarTooLarge.Error())
	}

	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, storage.MaxAvatarSize+1))
	if err != nil {
		return err
	}

	url, err := h.avatars.Upload(c.Context(), profile.ID, data)
	if err != nil {
		if errors.Is(err, storage.ErrAvatarTooLarge) || errors.Is(err, storage.ErrAvatarEmpty) || errors.Is(err, storage.ErrUnsupportedAvatar) {
			return h.childError(c, profile, card, "avatar: "+err.Error())
		}
		return err
	}

	if err := h.store.SetCardAvatar(c.Context(), card.ID, profile.ID, url); err != nil {
		return storeError(err)
	}

	if card.AvatarURL != "" {
		h.removeAvatar(c, card.AvatarURL)
	}

	return backToEditor(c, card)
}

// RemoveAvatar clears a card's avatar and deletes the stored image.
func (h *AdminHandler) RemoveAvatar(c fiber.Ctx) error {
	profile, card, err := h.ownedCard(c)
	if err != nil {
		return err
	}

	if card.AvatarURL == "" {
		return backToEditor(c, card)
	}

	if err := h.store.SetCardAvatar(c.Context(), card.ID, profile.ID, ""); err != nil {
		return storeError(err)
	}
	if h.avatars != nil {
		h.removeAvatar(c, card.AvatarURL)
	}

	return backToEditor(c, card)
}

// removeAvatar deletes an old avatar object. Avatars that were not uploaded
// here (such as OIDC pictures) are left alone.
func (h *AdminHandler) removeAvatar(c fiber.Ctx, url string) {
	err := h.avatars.Remove(c.Context(), url)
	if err != nil && !errors.Is(err, storage.ErrForeignAvatar) {
		logging.Log.Warn("failed to remove avatar", zap.String("url", url), zap.Error(err))
	}
}

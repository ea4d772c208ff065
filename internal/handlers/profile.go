package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"cardlink/internal/config"
	"cardlink/internal/logging"
	"cardlink/internal/middleware"
	"cardlink/internal/socials"
	"cardlink/internal/validation"
)

// ProfileHandler handles the owner's profile page.
type ProfileHandler struct {
	profiles ProfileStore
	cfg      *config.Config
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profiles ProfileStore, cfg *config.Config) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, cfg: cfg}
}

// Show renders the profile form.
func (h *ProfileHandler) Show(c fiber.Ctx) error {
	profile := middleware.CurrentProfile(c)
	if profile == nil {
		return c.Redirect().To("/login")
	}

	return c.Render("admin/profile", MergeBranding(fiber.Map{
		"Profile": profile,
		"Saved":   c.Query("saved") == "1",
	}, h.cfg))
}

// Update saves the name and global username. Changing the global username
// re-derives every auto-synced social link on all of the owner's cards.
func (h *ProfileHandler) Update(c fiber.Ctx) error {
	profile := middleware.CurrentProfile(c)
	if profile == nil {
		return c.Redirect().To("/login")
	}

	form := validation.ProfileForm{
		Name:           strings.TrimSpace(c.FormValue("name")),
		GlobalUsername: strings.TrimSpace(c.FormValue("global_username")),
	}
	if err := form.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).Render("admin/profile", MergeBranding(fiber.Map{
			"Profile": profile,
			"Form":    form,
			"Error":   validation.FirstError(err),
		}, h.cfg))
	}

	if err := h.profiles.UpdateProfile(c.Context(), profile.ID, form.Name, form.GlobalUsername); err != nil {
		return err
	}

	oldName := profile.GlobalUsername
	if oldName != form.GlobalUsername {
		links, err := h.profiles.ListSocialLinksByOwner(c.Context(), profile.ID)
		if err != nil {
			return err
		}
		changed := socials.Reconcile(oldName, form.GlobalUsername, links)
		if err := h.profiles.UpdateSocialLinks(c.Context(), changed); err != nil {
			return err
		}
		logging.Log.Info("global username changed",
			zap.String("user_id", profile.ID.String()),
			zap.Int("links_synced", len(changed)),
		)
	}

	return c.Redirect().To("/admin/profile?saved=1")
}

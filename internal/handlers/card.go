package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"cardlink/internal/cardview"
	"cardlink/internal/config"
	"cardlink/internal/export"
	"cardlink/internal/logging"
	"cardlink/internal/models"
	"cardlink/internal/render"
)

const (
	minQRSize = 128
	maxQRSize = 1024
)

// CardHandler serves public cards.
type CardHandler struct {
	assembler CardAssembler
	cards     PublishedCardFinder
	cfg       *config.Config
}

// NewCardHandler creates a new public card handler.
func NewCardHandler(assembler CardAssembler, cards PublishedCardFinder, cfg *config.Config) *CardHandler {
	return &CardHandler{assembler: assembler, cards: cards, cfg: cfg}
}

// Show renders the card at /c/:slug. The layout follows the visitor's
// device unless ?view=desktop or ?view=mobile asks for another.
func (h *CardHandler) Show(c fiber.Ctx) error {
	slug := strings.ToLower(c.Params("slug"))

	vm, err := h.assembler.Assemble(c.Context(), slug, visitFrom(c))
	if err != nil {
		status := fiber.StatusNotFound
		if errors.Is(err, cardview.ErrUpstream) {
			status = fiber.StatusServiceUnavailable
		} else if !errors.Is(err, cardview.ErrCardNotFound) {
			return err
		}
		return c.Status(status).Render("card/not_found", MergeBranding(fiber.Map{
			"Slug": slug,
		}, h.cfg))
	}

	variant := c.Query("view")
	if variant == "" {
		variant = models.ClassifyDevice(c.Get(fiber.HeaderUserAgent))
	}
	page := render.NewPage(vm, h.cfg.BaseURL, variant)

	return c.Render("card/"+page.Variant, MergeBranding(fiber.Map{
		"Page":     page,
		"Sections": page.Sections(),
	}, h.cfg), "layouts/card")
}

// QRCode serves a PNG QR code pointing at the card's public URL.
// Fetching it does not count as a view.
func (h *CardHandler) QRCode(c fiber.Ctx) error {
	slug := strings.ToLower(c.Params("slug"))

	card, err := h.cards.GetPublishedCardBySlug(c.Context(), slug)
	if err != nil {
		if errors.Is(err, cardview.ErrCardNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "card not found")
		}
		return err
	}
	if !card.IsPublic() {
		return fiber.NewError(fiber.StatusNotFound, "card not found")
	}

	size := fiber.Query[int](c, "size", export.DefaultQRSize)
	if size < minQRSize || size > maxQRSize {
		size = export.DefaultQRSize
	}

	png, err := export.QRCodePNG(strings.TrimRight(h.cfg.BaseURL, "/")+"/c/"+card.Slug, size)
	if err != nil {
		logging.Log.Error("failed to generate QR code", zap.String("slug", slug), zap.Error(err))
		return err
	}

	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderCacheControl, "public, max-age=3600")
	return c.Send(png)
}

func visitFrom(c fiber.Ctx) cardview.Visit {
	return cardview.Visit{
		IP:        c.IP(),
		UserAgent: c.Get(fiber.HeaderUserAgent),
		Referrer:  c.Get(fiber.HeaderReferer),
	}
}

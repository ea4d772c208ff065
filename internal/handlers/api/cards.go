package api

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"

	"cardlink/internal/cardview"
)

// CardAssembler builds the public view of a card.
type CardAssembler interface {
	Assemble(ctx context.Context, slug string, visit cardview.Visit) (*cardview.ViewModel, error)
}

// CardHandler serves public cards as JSON.
type CardHandler struct {
	assembler CardAssembler
}

// NewCardHandler creates a new API card handler.
func NewCardHandler(assembler CardAssembler) *CardHandler {
	return &CardHandler{assembler: assembler}
}

// Get returns the assembled card for :slug. Each call counts one view.
func (h *CardHandler) Get(c fiber.Ctx) error {
	slug := strings.ToLower(c.Params("slug"))

	vm, err := h.assembler.Assemble(c.Context(), slug, cardview.Visit{
		IP:        c.IP(),
		UserAgent: c.Get(fiber.HeaderUserAgent),
		Referrer:  c.Get(fiber.HeaderReferer),
	})
	if err != nil {
		switch {
		case errors.Is(err, cardview.ErrUpstream):
			return jsonError(c, fiber.StatusServiceUnavailable, "card is temporarily unavailable")
		case errors.Is(err, cardview.ErrCardNotFound):
			return jsonError(c, fiber.StatusNotFound, "card not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to load card")
	}

	return jsonSuccess(c, vm.Response())
}

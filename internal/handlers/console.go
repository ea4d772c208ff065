package handlers

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"cardlink/internal/config"
	"cardlink/internal/export"
	"cardlink/internal/logging"
	"cardlink/internal/middleware"
	"cardlink/internal/models"
	"cardlink/internal/validation"
)

// ConsoleHandler handles the operator console.
type ConsoleHandler struct {
	store ConsoleStore
	cfg   *config.Config
	now   func() time.Time
}

// NewConsoleHandler creates a new console handler.
func NewConsoleHandler(store ConsoleStore, cfg *config.Config) *ConsoleHandler {
	return &ConsoleHandler{store: store, cfg: cfg, now: time.Now}
}

// LoginPage renders the operator login form.
func (h *ConsoleHandler) LoginPage(c fiber.Ctx) error {
	return c.Render("console/login", MergeBranding(fiber.Map{}, h.cfg))
}

// Login checks operator credentials and starts an operator session.
func (h *ConsoleHandler) Login(c fiber.Ctx) error {
	form := validation.ConsoleLoginForm{
		Username: strings.TrimSpace(c.FormValue("username")),
		Password: c.FormValue("password"),
	}
	if err := form.Validate(); err != nil {
		return h.loginFailed(c, fiber.StatusBadRequest, form.Username, validation.FirstError(err))
	}

	op := h.cfg.FindOperator(form.Username)
	if op == nil || bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(form.Password)) != nil {
		logging.Log.Warn("operator login failed", zap.String("username", form.Username), zap.String("ip", c.IP()))
		return h.loginFailed(c, fiber.StatusUnauthorized, form.Username, "invalid username or password")
	}

	sess := session.FromContext(c)
	if sess == nil {
		return fiber.NewError(fiber.StatusInternalServerError, "session not available")
	}
	// A session id issued before login must not carry operator rights.
	if err := sess.Regenerate(); err != nil {
		return fmt.Errorf("failed to regenerate session: %w", err)
	}
	middleware.StartOperatorSession(sess, models.NewOperatorSession(op.Username, h.now(), h.cfg.ConsoleSessionTTL))

	logging.Log.Info("operator logged in", zap.String("username", op.Username))
	return c.Redirect().To("/console")
}

func (h *ConsoleHandler) loginFailed(c fiber.Ctx, status int, username, msg string) error {
	return c.Status(status).Render("console/login", MergeBranding(fiber.Map{
		"Username": username,
		"Error":    msg,
	}, h.cfg))
}

// Logout ends the operator session.
func (h *ConsoleHandler) Logout(c fiber.Ctx) error {
	if sess := session.FromContext(c); sess != nil {
		middleware.EndOperatorSession(sess)
	}
	return c.Redirect().To("/console/login")
}

// Dashboard renders the platform analytics.
func (h *ConsoleHandler) Dashboard(c fiber.Ctx) error {
	op, _ := middleware.CurrentOperator(c)

	stats, err := h.store.GetPlatformAnalytics(c.Context(), h.now())
	if err != nil {
		return err
	}

	return c.Render("console/dashboard", MergeBranding(fiber.Map{
		"Operator":  op,
		"Analytics": stats,
	}, h.cfg))
}

// Users lists all profiles.
func (h *ConsoleHandler) Users(c fiber.Ctx) error {
	op, _ := middleware.CurrentOperator(c)

	profiles, err := h.store.ListProfiles(c.Context())
	if err != nil {
		return err
	}

	return c.Render("console/users", MergeBranding(fiber.Map{
		"Operator": op,
		"Users":    profiles,
	}, h.cfg))
}

// Cards lists all cards with their owners.
func (h *ConsoleHandler) Cards(c fiber.Ctx) error {
	op, _ := middleware.CurrentOperator(c)

	cards, err := h.store.ListCardsWithOwners(c.Context())
	if err != nil {
		return err
	}

	return c.Render("console/cards", MergeBranding(fiber.Map{
		"Operator": op,
		"Cards":    cards,
		"BaseURL":  strings.TrimRight(h.cfg.BaseURL, "/"),
	}, h.cfg))
}

// ToggleCard flips the published state of any card.
func (h *ConsoleHandler) ToggleCard(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	published, err := h.store.ToggleCardPublished(c.Context(), id)
	if err != nil {
		return storeError(err)
	}

	op, _ := middleware.CurrentOperator(c)
	logging.Log.Info("operator toggled card",
		zap.String("operator", op.Username),
		zap.String("card_id", id.String()),
		zap.Bool("published", published),
	)
	return c.Redirect().To("/console/cards")
}

// DeleteCard removes any card.
func (h *ConsoleHandler) DeleteCard(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.store.DeleteCard(c.Context(), id); err != nil {
		return storeError(err)
	}

	op, _ := middleware.CurrentOperator(c)
	logging.Log.Info("operator deleted card", zap.String("operator", op.Username), zap.String("card_id", id.String()))
	return c.Redirect().To("/console/cards")
}

// DeleteUser removes a profile and, by cascade, all of its cards.
func (h *ConsoleHandler) DeleteUser(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.store.DeleteProfile(c.Context(), id); err != nil {
		return storeError(err)
	}

	op, _ := middleware.CurrentOperator(c)
	logging.Log.Info("operator deleted user", zap.String("operator", op.Username), zap.String("user_id", id.String()))
	return c.Redirect().To("/console/users")
}

// Export downloads users or cards as CSV or XLSX, e.g. /console/export/cards.xlsx.
func (h *ConsoleHandler) Export(c fiber.Ctx) error {
	var table export.Table
	switch c.Params("table") {
	case "users":
		profiles, err := h.store.ListProfiles(c.Context())
		if err != nil {
			return err
		}
		table = export.UsersTable(profiles)
	case "cards":
		cards, err := h.store.ListCardsWithOwners(c.Context())
		if err != nil {
			return err
		}
		table = export.CardsTable(cards)
	default:
		return fiber.ErrNotFound
	}

	var buf bytes.Buffer
	format := c.Params("format")
	switch format {
	case "csv":
		if err := export.WriteCSV(&buf, table); err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	case "xlsx":
		if err := export.WriteXLSX(&buf, table); err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	default:
		return fiber.ErrNotFound
	}

	filename := strings.ToLower(table.Name) + "-" + h.now().UTC().Format("2006-01-02") + "." + format
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

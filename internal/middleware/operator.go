package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"cardlink/internal/models"
)

const (
	sessionOperatorUser    = "operator_user"
	sessionOperatorIssued  = "operator_issued_at"
	sessionOperatorExpires = "operator_expires_at"
)

// StartOperatorSession stores op in the session.
func StartOperatorSession(sess *session.Middleware, op models.OperatorSession) {
	sess.Set(sessionOperatorUser, op.Username)
	sess.Set(sessionOperatorIssued, op.IssuedAt.UTC().Format(time.RFC3339))
	sess.Set(sessionOperatorExpires, op.ExpiresAt.UTC().Format(time.RFC3339))
}

// EndOperatorSession removes the operator login from the session.
// An owner login in the same session is kept.
func EndOperatorSession(sess *session.Middleware) {
	sess.Delete(sessionOperatorUser)
	sess.Delete(sessionOperatorIssued)
	sess.Delete(sessionOperatorExpires)
}

// LoadOperatorSession reads the operator login from the session.
func LoadOperatorSession(sess *session.Middleware) (models.OperatorSession, bool) {
	user, _ := sess.Get(sessionOperatorUser).(string)
	issuedRaw, _ := sess.Get(sessionOperatorIssued).(string)
	expiresRaw, _ := sess.Get(sessionOperatorExpires).(string)
	if user == "" || expiresRaw == "" {
		return models.OperatorSession{}, false
	}

	expires, err := time.Parse(time.RFC3339, expiresRaw)
	if err != nil {
		return models.OperatorSession{}, false
	}
	issued, _ := time.Parse(time.RFC3339, issuedRaw)

	return models.OperatorSession{Username: user, IssuedAt: issued, ExpiresAt: expires}, true
}

// OperatorMiddleware guards the operator console.
type OperatorMiddleware struct {
	enabled bool
	now     func() time.Time
}

// NewOperatorMiddleware creates the console guard. A disabled console answers 404.
func NewOperatorMiddleware(enabled bool) *OperatorMiddleware {
	return &OperatorMiddleware{enabled: enabled, now: time.Now}
}

// RequireEnabled hides every console route when no operator is configured.
func (m *OperatorMiddleware) RequireEnabled(c fiber.Ctx) error {
	if !m.enabled {
		return fiber.ErrNotFound
	}
	return c.Next()
}

// RequireOperator checks the operator session on every request and
// redirects to the console login when it is missing or expired.
func (m *OperatorMiddleware) RequireOperator(c fiber.Ctx) error {
	if !m.enabled {
		return fiber.ErrNotFound
	}

	sess := session.FromContext(c)
	if sess == nil {
		return c.Redirect().To("/console/login")
	}

	op, ok := LoadOperatorSession(sess)
	if !ok || op.Expired(m.now()) {
		EndOperatorSession(sess)
		return c.Redirect().To("/console/login")
	}

	c.Locals("operator", op)
	return c.Next()
}

// CurrentOperator returns the operator loaded by RequireOperator.
func CurrentOperator(c fiber.Ctx) (models.OperatorSession, bool) {
	op, ok := c.Locals("operator").(models.OperatorSession)
	return op, ok
}

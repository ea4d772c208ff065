package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"cardlink/internal/models"
)

// Session keys shared with the auth handlers.
const (
	SessionUserSub       = "user_sub"
	SessionRedirectAfter = "redirect_after_login"
)

// ProfileLoader resolves the signed-in owner.
type ProfileLoader interface {
	GetProfileBySub(ctx context.Context, sub string) (*models.Profile, error)
}

// AuthMiddleware handles owner authentication via sessions.
type AuthMiddleware struct {
	profiles ProfileLoader
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(profiles ProfileLoader) *AuthMiddleware {
	return &AuthMiddleware{profiles: profiles}
}

// RequireAuth ensures the owner is authenticated, redirecting to /login if not.
func (m *AuthMiddleware) RequireAuth(c fiber.Ctx) error {
	sess := session.FromContext(c)
	if sess == nil {
		return c.Redirect().To("/login")
	}

	userSub, _ := sess.Get(SessionUserSub).(string)
	if userSub == "" {
		if c.Method() == fiber.MethodGet {
			sess.Set(SessionRedirectAfter, c.OriginalURL())
		}
		return c.Redirect().To("/login")
	}

	profile, err := m.profiles.GetProfileBySub(c.Context(), userSub)
	if err != nil {
		sess.Destroy()
		return c.Redirect().To("/login")
	}

	c.Locals("profile", profile)
	return c.Next()
}

// OptionalAuth loads the owner if authenticated, but doesn't require authentication.
func (m *AuthMiddleware) OptionalAuth(c fiber.Ctx) error {
	sess := session.FromContext(c)
	if sess == nil {
		return c.Next()
	}

	userSub, _ := sess.Get(SessionUserSub).(string)
	if userSub == "" {
		return c.Next()
	}

	if profile, err := m.profiles.GetProfileBySub(c.Context(), userSub); err == nil {
		c.Locals("profile", profile)
	}

	return c.Next()
}

// CurrentProfile returns the owner loaded by RequireAuth or OptionalAuth.
func CurrentProfile(c fiber.Ctx) *models.Profile {
	p, _ := c.Locals("profile").(*models.Profile)
	return p
}

package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/meals-service/internal/domain"
	apperrors "github.com/spec-kit/meals-service/pkg/util"
)

const principalKey = "auth_principal"

// SessionMiddleware validates the session cookie and loads the caller.
type SessionMiddleware struct {
	sessions *SessionManager
}

// NewSessionMiddleware constructs middleware.
func NewSessionMiddleware(sessions *SessionManager) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions}
}

// Handle enforces authentication for protected routes. The acting identity
// and role always come from the validated session, never from request
// payload fields, so the read scope cannot be overridden by the client.
func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	token := c.Cookies(CookieSession)
	user, err := m.sessions.Validate(c.UserContext(), token)
	if err != nil {
		return apperrors.MapError(err)
	}
	c.Locals(principalKey, user)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated user.
func PrincipalFromContext(c *fiber.Ctx) (*domain.User, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	user, ok := val.(*domain.User)
	return user, ok
}

// RequireRole ensures the authenticated caller has the given role.
func RequireRole(role domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthenticated("session required")
		}
		if user.Role != role {
			return apperrors.NewDomainError("FORBIDDEN", "insufficient role", fiber.StatusForbidden, nil)
		}
		return c.Next()
	}
}

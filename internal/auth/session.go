package auth

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/meals-service/internal/domain"
	"github.com/spec-kit/meals-service/internal/repository"
	apperrors "github.com/spec-kit/meals-service/pkg/util"
)

// Session cookie names, fixed by the client contract.
const (
	CookieSession  = "sessionId"
	CookieUserType = "userType"
)

// SessionManager issues and validates opaque session tokens. A user has at
// most one valid token: issuing a new one overwrites the stored value, so the
// previous token stops validating immediately. The store never expires
// tokens; the 30-minute horizon is enforced only by the cookie lifetime, so a
// stale-but-unrotated token past that window still authenticates (known
// staleness window, kept deliberately).
type SessionManager struct {
	users repository.UserRepository
	ttl   time.Duration
}

// NewSessionManager builds the manager with the configured cookie TTL.
func NewSessionManager(users repository.UserRepository, ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &SessionManager{users: users, ttl: ttl}
}

// Issue generates a fresh token and persists it onto the user record,
// rotating out any prior session for that user.
func (m *SessionManager) Issue(ctx context.Context, userName string) (string, error) {
	token := uuid.NewString()
	if err := m.users.SetSessionToken(ctx, userName, token); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", apperrors.NewUserNotFound(userName)
		}
		return "", err
	}
	return token, nil
}

// Validate resolves a token to the user that holds it. No match covers both
// "never logged in" and "rotated out".
func (m *SessionManager) Validate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, apperrors.NewUnauthenticated("missing session")
	}
	user, err := m.users.GetBySessionToken(ctx, token)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewUnauthenticated("invalid session")
		}
		return nil, err
	}
	return user, nil
}

// TTL returns the cookie lifetime for issued sessions.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// SetSessionCookies writes the HTTP-only session cookies onto the response.
func (m *SessionManager) SetSessionCookies(c *fiber.Ctx, token string, role domain.Role) {
	expires := time.Now().Add(m.ttl)
	c.Cookie(&fiber.Cookie{
		Name:     CookieSession,
		Value:    token,
		Expires:  expires,
		HTTPOnly: true,
	})
	c.Cookie(&fiber.Cookie{
		Name:     CookieUserType,
		Value:    string(role),
		Expires:  expires,
		HTTPOnly: true,
	})
}

// ClearSessionCookies expires the session cookies client-side. Logout is
// soft: the stored token stays valid until the next login rotates it.
func (m *SessionManager) ClearSessionCookies(c *fiber.Ctx) {
	expired := time.Now().Add(-time.Hour)
	c.Cookie(&fiber.Cookie{Name: CookieSession, Value: "", Expires: expired, HTTPOnly: true})
	c.Cookie(&fiber.Cookie{Name: CookieUserType, Value: "", Expires: expired, HTTPOnly: true})
}

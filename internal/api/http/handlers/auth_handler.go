package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/meals-service/internal/api/dto"
	"github.com/spec-kit/meals-service/internal/auth"
	"github.com/spec-kit/meals-service/internal/domain"
	"github.com/spec-kit/meals-service/internal/service"
)

// AuthHandler exposes signup, login, auto-login and logout.
type AuthHandler struct {
	service  *service.AuthService
	sessions *auth.SessionManager
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, sessions *auth.SessionManager) *AuthHandler {
	return &AuthHandler{service: authService, sessions: sessions}
}

// Signup handles POST /signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.service.Signup(c.UserContext(), service.SignupInput{
		UserName:    req.UserName,
		Password:    req.Password,
		Role:        domain.Role(req.Role),
		Coordinates: req.Coordinates,
	})
	if err != nil {
		return err
	}

	h.sessions.SetSessionCookies(c, result.Token, result.User.Role)
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success":     true,
		"role":        result.User.Role,
		"coordinates": result.User.Coordinates,
	})
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.service.Login(c.UserContext(), req.UserName, req.Password)
	if err != nil {
		return err
	}

	h.sessions.SetSessionCookies(c, result.Token, result.User.Role)
	return c.JSON(fiber.Map{
		"success":     true,
		"role":        result.User.Role,
		"coordinates": result.User.Coordinates,
	})
}

// AutoLogin handles GET /login, authenticating from the session cookie.
func (h *AuthHandler) AutoLogin(c *fiber.Ctx) error {
	user, err := h.service.AutoLogin(c.UserContext(), c.Cookies(auth.CookieSession))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"role":        user.Role,
		"userName":    user.UserName,
		"coordinates": user.Coordinates,
	})
}

// Logout handles GET /logout. Cookie clearing only: the stored token stays
// valid until the next login rotates it.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.sessions.ClearSessionCookies(c)
	return c.JSON(fiber.Map{"success": true})
}

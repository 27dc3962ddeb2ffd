package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/meals-service/internal/api/dto"
	"github.com/spec-kit/meals-service/internal/auth"
	"github.com/spec-kit/meals-service/internal/repository"
	"github.com/spec-kit/meals-service/internal/service"
	apperrors "github.com/spec-kit/meals-service/pkg/util"
)

// ProfileHandler exposes the authenticated user's own profile.
type ProfileHandler struct {
	service *service.AuthService
}

// NewProfileHandler constructs handler.
func NewProfileHandler(authService *service.AuthService) *ProfileHandler {
	return &ProfileHandler{service: authService}
}

// Get handles GET /profile.
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("session required")
	}
	return c.JSON(fiber.Map{"success": true, "result": principal})
}

// Update handles POST /updateprofile.
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("session required")
	}

	var req dto.ProfileUpdateRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.service.UpdateProfile(c.UserContext(), principal.UserName, repository.ProfileUpdate{
		Bio:                req.Bio,
		Coordinates:        req.Coordinates,
		ProfilePicturePath: req.ProfilePicturePath,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "result": user})
}

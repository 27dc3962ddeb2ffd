package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/meals-service/internal/api/dto"
	"github.com/spec-kit/meals-service/internal/auth"
	"github.com/spec-kit/meals-service/internal/domain"
	"github.com/spec-kit/meals-service/internal/service"
	apperrors "github.com/spec-kit/meals-service/pkg/util"
)

// MealsHandler exposes the meal catalog. Browsing and search are public;
// when the caller has a valid session with coordinates, results carry a
// distance annotation.
type MealsHandler struct {
	service  *service.MealService
	sessions *auth.SessionManager
}

// NewMealsHandler constructs handler.
func NewMealsHandler(mealService *service.MealService, sessions *auth.SessionManager) *MealsHandler {
	return &MealsHandler{service: mealService, sessions: sessions}
}

// Create handles POST /addmeal, chefs only.
func (h *MealsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("session required")
	}

	var req dto.CreateMealRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}

	meal, err := h.service.Create(c.UserContext(), principal, service.MealCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Ingredients: req.Ingredients,
		Diet:        req.Diet,
		ImagePath:   req.ImagePath,
		Coordinates: req.Coordinates,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"success": true, "result": meal})
}

// List handles GET /getmeals.
func (h *MealsHandler) List(c *fiber.Ctx) error {
	meals, err := h.service.ListForViewer(c.UserContext(), h.viewerCoordinates(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "result": meals})
}

// Search handles POST /searchmeals.
func (h *MealsHandler) Search(c *fiber.Ctx) error {
	var req dto.SearchMealsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	meals, err := h.service.Search(c.UserContext(), req.Term, h.viewerCoordinates(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "result": meals})
}

// Delete handles POST /deletemeal, chefs only, owner scoped.
func (h *MealsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("session required")
	}

	var req dto.DeleteMealRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.service.Delete(c.UserContext(), req.ID, principal.UserName); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "msg": "Meal deleted."})
}

// viewerCoordinates resolves the caller's location from an optional session.
func (h *MealsHandler) viewerCoordinates(c *fiber.Ctx) *domain.Coordinates {
	token := c.Cookies(auth.CookieSession)
	if token == "" {
		return nil
	}
	user, err := h.sessions.Validate(c.UserContext(), token)
	if err != nil {
		return nil
	}
	return user.Coordinates
}

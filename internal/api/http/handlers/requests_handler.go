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

// RequestsHandler manages the order lifecycle endpoints. All of them run
// behind the session middleware; the acting identity comes from the session,
// so the userName/role body fields older clients send cannot widen the scope.
type RequestsHandler struct {
	service *service.RequestService
}

// NewRequestsHandler constructs handler.
func NewRequestsHandler(requestService *service.RequestService) *RequestsHandler {
	return &RequestsHandler{service: requestService}
}

// Place handles POST /placerequest.
func (h *RequestsHandler) Place(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("session required")
	}
	if principal.Role != domain.RoleClient {
		return apperrors.NewDomainError("FORBIDDEN", "only clients place requests", http.StatusForbidden, nil)
	}

	var req dto.PlaceRequestRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	if _, err := h.service.Place(c.UserContext(), service.PlaceRequestInput{
		UserName:  principal.UserName,
		ChefName:  req.ChefName,
		MealTitle: req.MealTitle,
		Quantity:  quantity,
		Notes:     req.Notes,
	}); err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"msg":     "Request placed.",
	})
}

// List handles POST /getrequests.
func (h *RequestsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("session required")
	}
	var req dto.GetRequestsRequest
	_ = c.BodyParser(&req) // compatibility fields, session identity wins

	result, err := h.service.List(c.UserContext(), principal.UserName, principal.Role)
	if err != nil {
		return err
	}
	if len(result) == 0 {
		return apperrors.NewNotFound("No requests found.")
	}
	return c.JSON(fiber.Map{"success": true, "result": result})
}

// UpdateStatus handles POST /updaterequeststatus.
func (h *RequestsHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("session required")
	}
	var req dto.UpdateRequestStatusRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.service.UpdateStatus(c.UserContext(), req.ID,
		domain.RequestStatus(*req.Status), principal.UserName, principal.Role)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "result": result})
}

// Delete handles POST /deleterequest.
func (h *RequestsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("session required")
	}
	var req dto.DeleteRequestRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.service.Delete(c.UserContext(), req.ID, principal.UserName, principal.Role)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "result": result})
}

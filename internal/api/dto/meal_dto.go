package dto

import "github.com/spec-kit/meals-service/internal/domain"

// CreateMealRequest payload for a new catalog entry.
type CreateMealRequest struct {
	Title       string              `json:"title" validate:"required"`
	Description string              `json:"description"`
	Price       float64             `json:"price" validate:"required,gt=0"`
	Ingredients []string            `json:"ingredients,omitempty"`
	Diet        string              `json:"diet,omitempty"`
	ImagePath   string              `json:"imagePath,omitempty"`
	Coordinates *domain.Coordinates `json:"coordinates,omitempty"`
}

// SearchMealsRequest payload for catalog text search.
type SearchMealsRequest struct {
	Term string `json:"term"`
}

// DeleteMealRequest payload.
type DeleteMealRequest struct {
	ID string `json:"_id" validate:"required"`
}

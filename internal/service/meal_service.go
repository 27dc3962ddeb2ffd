package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/spec-kit/meals-service/internal/domain"
	"github.com/spec-kit/meals-service/internal/events"
	"github.com/spec-kit/meals-service/internal/geo"
	"github.com/spec-kit/meals-service/internal/repository"
	apperrors "github.com/spec-kit/meals-service/pkg/util"
)

// MealService manages the chef-owned meal catalog.
type MealService struct {
	meals      repository.MealRepository
	dispatcher events.Dispatcher
}

// MealDependencies bundles requirements for the meal service.
type MealDependencies struct {
	MealRepo   repository.MealRepository
	Dispatcher events.Dispatcher
}

// NewMealService constructs the service.
func NewMealService(deps MealDependencies) *MealService {
	return &MealService{meals: deps.MealRepo, dispatcher: deps.Dispatcher}
}

// MealCreateInput describes a new catalog entry.
type MealCreateInput struct {
	Title       string
	Description string
	Price       float64
	Ingredients []string
	Diet        string
	ImagePath   string
	Coordinates *domain.Coordinates
}

// Create lists a meal under the chef's name. Meal coordinates default to the
// chef's own location when the payload carries none.
func (s *MealService) Create(ctx context.Context, chef *domain.User, input MealCreateInput) (*domain.Meal, error) {
	coordinates := input.Coordinates
	if coordinates == nil {
		coordinates = chef.Coordinates
	}

	meal := &domain.Meal{
		ChefName:    chef.UserName,
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Ingredients: input.Ingredients,
		Diet:        input.Diet,
		ImagePath:   input.ImagePath,
		Coordinates: coordinates,
	}
	if err := s.meals.Insert(ctx, meal); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventMealCreated,
			Actor:     events.Actor{UserName: chef.UserName, Role: chef.Role},
			Timestamp: time.Now().UTC(),
			Payload:   events.MealCreatedPayload{ChefName: chef.UserName, Title: meal.Title, Price: meal.Price},
		})
	}
	return meal, nil
}

// ListForViewer returns the full catalog, annotated with the distance from
// the viewer when both sides carry coordinates.
func (s *MealService) ListForViewer(ctx context.Context, viewer *domain.Coordinates) ([]domain.Meal, error) {
	meals, err := s.meals.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	annotateDistance(meals, viewer)
	return meals, nil
}

// ListByChef returns a chef's own catalog entries.
func (s *MealService) ListByChef(ctx context.Context, chefName string) ([]domain.Meal, error) {
	return s.meals.ListByChef(ctx, chefName)
}

// Search matches the term against title, description and ingredients,
// case-insensitively, and annotates distances for the viewer.
func (s *MealService) Search(ctx context.Context, term string, viewer *domain.Coordinates) ([]domain.Meal, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.ListForViewer(ctx, viewer)
	}
	meals, err := s.meals.Search(ctx, term)
	if err != nil {
		return nil, err
	}
	annotateDistance(meals, viewer)
	return meals, nil
}

// Delete removes a meal owned by the chef.
func (s *MealService) Delete(ctx context.Context, id string, chefName string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.NewValidationError("invalid meal id", nil)
	}
	deleted, err := s.meals.Delete(ctx, oid, chefName)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return apperrors.NewNotFound("No meal was deleted")
	}
	return nil
}

func annotateDistance(meals []domain.Meal, viewer *domain.Coordinates) {
	if viewer == nil {
		return
	}
	for i := range meals {
		if meals[i].Coordinates == nil {
			continue
		}
		distance := geo.DistanceKm(*viewer, *meals[i].Coordinates)
		meals[i].DistanceKm = &distance
	}
}

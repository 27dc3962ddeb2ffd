package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/meals-service/internal/domain"
	"github.com/spec-kit/meals-service/internal/events"
	"github.com/spec-kit/meals-service/internal/repository"
	apperrors "github.com/spec-kit/meals-service/pkg/util"
)

// RequestService coordinates the order lifecycle. Reads are scoped by the
// actor's role; mutations match the request id together with the actor's
// ownership, so neither party can touch another tenant's orders.
type RequestService struct {
	requests   repository.RequestRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// RequestDependencies bundles repositories for the request service.
type RequestDependencies struct {
	RequestRepo repository.RequestRepository
	UserRepo    repository.UserRepository
	Dispatcher  events.Dispatcher
}

// NewRequestService constructs the service.
func NewRequestService(deps RequestDependencies) *RequestService {
	return &RequestService{
		requests:   deps.RequestRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// PlaceRequestInput describes a new order.
type PlaceRequestInput struct {
	UserName  string
	ChefName  string
	MealTitle string
	Quantity  int
	Notes     string
}

// Place creates an order between an existing client and an existing chef,
// always starting at status 0 (placed). Identical repeat orders are allowed.
func (s *RequestService) Place(ctx context.Context, input PlaceRequestInput) (*domain.Request, error) {
	client, err := s.getExistingUser(ctx, input.UserName)
	if err != nil {
		return nil, err
	}
	chef, err := s.getExistingUser(ctx, input.ChefName)
	if err != nil {
		return nil, err
	}
	if chef.Role != domain.RoleChef {
		return nil, apperrors.NewValidationError("chefName must refer to a chef account", nil)
	}

	request := &domain.Request{
		UserName:      client.UserName,
		ChefName:      chef.UserName,
		MealTitle:     input.MealTitle,
		Quantity:      input.Quantity,
		Notes:         input.Notes,
		RequestStatus: domain.RequestStatusPlaced,
	}
	if err := s.requests.Insert(ctx, request); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventRequestPlaced,
		RequestID: request.ID.Hex(),
		Actor:     events.Actor{UserName: client.UserName, Role: client.Role},
		Timestamp: time.Now().UTC(),
		Payload: events.RequestPlacedPayload{
			ChefName:  request.ChefName,
			MealTitle: request.MealTitle,
			Quantity:  request.Quantity,
		},
	})
	return request, nil
}

// List returns the actor's view of the order book: a client sees the orders
// it placed, a chef sees the orders addressed to it, anyone else sees
// nothing. This query filter is the sole read-authorization boundary.
func (s *RequestService) List(ctx context.Context, actorUserName string, role domain.Role) ([]domain.Request, error) {
	switch role {
	case domain.RoleClient:
		return s.requests.ListByClient(ctx, actorUserName)
	case domain.RoleChef:
		return s.requests.ListByChef(ctx, actorUserName)
	default:
		return []domain.Request{}, nil
	}
}

// UpdateStatus sets an in-range status on a request the actor owns, then
// returns the actor's refreshed scoped list. There is no ordering constraint
// between statuses: any owned request may move to any in-range value.
func (s *RequestService) UpdateStatus(ctx context.Context, id string, status domain.RequestStatus, actorUserName string, role domain.Role) ([]domain.Request, error) {
	oid, err := parseRequestID(id)
	if err != nil {
		return nil, err
	}
	if !status.InRange() {
		return nil, apperrors.NewValidationError("status must be between 0 and 5", nil)
	}

	matched, err := s.requests.UpdateStatus(ctx, oid, actorUserName, status)
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		return nil, apperrors.NewNotFound("Request was not updated.")
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventRequestStatusChanged,
		RequestID: id,
		Actor:     events.Actor{UserName: actorUserName, Role: role},
		Timestamp: time.Now().UTC(),
		Payload:   events.RequestStatusChangedPayload{NewStatus: status},
	})
	return s.List(ctx, actorUserName, role)
}

// Delete removes a request the actor owns and returns the refreshed scoped
// list.
func (s *RequestService) Delete(ctx context.Context, id string, actorUserName string, role domain.Role) ([]domain.Request, error) {
	oid, err := parseRequestID(id)
	if err != nil {
		return nil, err
	}

	deleted, err := s.requests.Delete(ctx, oid, actorUserName)
	if err != nil {
		return nil, err
	}
	if deleted == 0 {
		return nil, apperrors.NewNotFound("No request was deleted")
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventRequestDeleted,
		RequestID: id,
		Actor:     events.Actor{UserName: actorUserName, Role: role},
		Timestamp: time.Now().UTC(),
	})
	return s.List(ctx, actorUserName, role)
}

func (s *RequestService) getExistingUser(ctx context.Context, userName string) (*domain.User, error) {
	user, err := s.users.GetByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewUserNotFound(userName)
		}
		return nil, err
	}
	return user, nil
}

func (s *RequestService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func parseRequestID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperrors.NewValidationError("invalid request id", nil)
	}
	return oid, nil
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/spec-kit/meals-service/internal/domain"
	"github.com/spec-kit/meals-service/internal/events"
	apperrors "github.com/spec-kit/meals-service/pkg/util"
)

func newRequestService(requests *fakeRequestRepo, users *fakeUserRepo) *RequestService {
	return NewRequestService(RequestDependencies{
		RequestRepo: requests,
		UserRepo:    users,
		Dispatcher:  events.NewInMemoryDispatcher(),
	})
}

func marketplaceUsers() *fakeUserRepo {
	return newFakeUserRepo(
		&domain.User{UserName: "alice", Role: domain.RoleClient},
		&domain.User{UserName: "carol", Role: domain.RoleClient},
		&domain.User{UserName: "bob", Role: domain.RoleChef},
	)
}

func TestPlace(t *testing.T) {
	svc := newRequestService(newFakeRequestRepo(), marketplaceUsers())

	request, err := svc.Place(context.Background(), PlaceRequestInput{
		UserName: "alice", ChefName: "bob", MealTitle: "ramen", Quantity: 2,
	})
	require.NoError(t, err)
	assert.False(t, request.ID.IsZero())
	assert.Equal(t, domain.RequestStatusPlaced, request.RequestStatus)
	assert.Equal(t, "alice", request.UserName)
	assert.Equal(t, "bob", request.ChefName)
}

func TestPlaceAllowsIdenticalDuplicates(t *testing.T) {
	svc := newRequestService(newFakeRequestRepo(), marketplaceUsers())
	input := PlaceRequestInput{UserName: "alice", ChefName: "bob", MealTitle: "ramen", Quantity: 1}

	first, err := svc.Place(context.Background(), input)
	require.NoError(t, err)
	second, err := svc.Place(context.Background(), input)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	result, err := svc.List(context.Background(), "alice", domain.RoleClient)
	require.NoError(t, err)
	assert.Len(t, result, 2)
}

func TestPlaceValidation(t *testing.T) {
	svc := newRequestService(newFakeRequestRepo(), marketplaceUsers())

	tests := []struct {
		name     string
		input    PlaceRequestInput
		wantCode string
	}{
		{"unknown client", PlaceRequestInput{UserName: "ghost", ChefName: "bob", MealTitle: "ramen"}, "USER_NOT_FOUND"},
		{"unknown chef", PlaceRequestInput{UserName: "alice", ChefName: "ghost", MealTitle: "ramen"}, "USER_NOT_FOUND"},
		{"chef is actually a client", PlaceRequestInput{UserName: "alice", ChefName: "carol", MealTitle: "ramen"}, "VALIDATION_FAILED"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Place(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, apperrors.ToDomainError(err).Code)
		})
	}
}

func TestListScoping(t *testing.T) {
	svc := newRequestService(newFakeRequestRepo(), marketplaceUsers())

	_, err := svc.Place(context.Background(), PlaceRequestInput{UserName: "alice", ChefName: "bob", MealTitle: "ramen"})
	require.NoError(t, err)
	_, err = svc.Place(context.Background(), PlaceRequestInput{UserName: "carol", ChefName: "bob", MealTitle: "pho"})
	require.NoError(t, err)

	aliceView, err := svc.List(context.Background(), "alice", domain.RoleClient)
	require.NoError(t, err)
	require.Len(t, aliceView, 1)
	assert.Equal(t, "alice", aliceView[0].UserName)

	bobView, err := svc.List(context.Background(), "bob", domain.RoleChef)
	require.NoError(t, err)
	assert.Len(t, bobView, 2)
	for _, r := range bobView {
		assert.Equal(t, "bob", r.ChefName)
	}

	// a chef listing under the client scope sees only its own placed orders
	bobAsClient, err := svc.List(context.Background(), "bob", domain.RoleClient)
	require.NoError(t, err)
	assert.Empty(t, bobAsClient)

	unknownRole, err := svc.List(context.Background(), "alice", domain.Role("admin"))
	require.NoError(t, err)
	assert.Empty(t, unknownRole)
}

func TestUpdateStatus(t *testing.T) {
	svc := newRequestService(newFakeRequestRepo(), marketplaceUsers())
	placed, err := svc.Place(context.Background(), PlaceRequestInput{UserName: "alice", ChefName: "bob", MealTitle: "ramen"})
	require.NoError(t, err)

	result, err := svc.UpdateStatus(context.Background(), placed.ID.Hex(),
		domain.RequestStatusPreparing, "bob", domain.RoleChef)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, domain.RequestStatusPreparing, result[0].RequestStatus)

	// no ordering constraint: moving backwards is allowed
	result, err = svc.UpdateStatus(context.Background(), placed.ID.Hex(),
		domain.RequestStatusPlaced, "alice", domain.RoleClient)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, domain.RequestStatusPlaced, result[0].RequestStatus)
}

func TestUpdateStatusRejectsOutOfRange(t *testing.T) {
	svc := newRequestService(newFakeRequestRepo(), marketplaceUsers())
	placed, err := svc.Place(context.Background(), PlaceRequestInput{UserName: "alice", ChefName: "bob", MealTitle: "ramen"})
	require.NoError(t, err)

	for _, status := range []domain.RequestStatus{-1, 6, 42} {
		_, err := svc.UpdateStatus(context.Background(), placed.ID.Hex(), status, "alice", domain.RoleClient)
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
	}
}

func TestUpdateStatusMisses(t *testing.T) {
	svc := newRequestService(newFakeRequestRepo(), marketplaceUsers())
	placed, err := svc.Place(context.Background(), PlaceRequestInput{UserName: "alice", ChefName: "bob", MealTitle: "ramen"})
	require.NoError(t, err)

	// absent id
	_, err = svc.UpdateStatus(context.Background(), primitive.NewObjectID().Hex(),
		domain.RequestStatusAccepted, "alice", domain.RoleClient)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)

	// malformed id
	_, err = svc.UpdateStatus(context.Background(), "not-an-id",
		domain.RequestStatusAccepted, "alice", domain.RoleClient)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	// an outsider never matches the owner filter
	_, err = svc.UpdateStatus(context.Background(), placed.ID.Hex(),
		domain.RequestStatusAccepted, "carol", domain.RoleClient)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestDelete(t *testing.T) {
	svc := newRequestService(newFakeRequestRepo(), marketplaceUsers())
	placed, err := svc.Place(context.Background(), PlaceRequestInput{UserName: "alice", ChefName: "bob", MealTitle: "ramen"})
	require.NoError(t, err)

	_, err = svc.Delete(context.Background(), placed.ID.Hex(), "carol", domain.RoleClient)
	require.Error(t, err, "outsider must not delete")

	result, err := svc.Delete(context.Background(), placed.ID.Hex(), "alice", domain.RoleClient)
	require.NoError(t, err)
	assert.Empty(t, result)

	_, err = svc.Delete(context.Background(), placed.ID.Hex(), "alice", domain.RoleClient)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestPublishesLifecycleEvents(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	var seen []events.EventType
	for _, et := range []events.EventType{events.EventRequestPlaced, events.EventRequestStatusChanged, events.EventRequestDeleted} {
		eventType := et
		dispatcher.Subscribe(eventType, func(_ context.Context, e events.Event) error {
			seen = append(seen, e.Type)
			return nil
		})
	}

	svc := NewRequestService(RequestDependencies{
		RequestRepo: newFakeRequestRepo(),
		UserRepo:    marketplaceUsers(),
		Dispatcher:  dispatcher,
	})

	placed, err := svc.Place(context.Background(), PlaceRequestInput{UserName: "alice", ChefName: "bob", MealTitle: "ramen"})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(context.Background(), placed.ID.Hex(), domain.RequestStatusReady, "bob", domain.RoleChef)
	require.NoError(t, err)
	_, err = svc.Delete(context.Background(), placed.ID.Hex(), "alice", domain.RoleClient)
	require.NoError(t, err)

	assert.Equal(t, []events.EventType{
		events.EventRequestPlaced,
		events.EventRequestStatusChanged,
		events.EventRequestDeleted,
	}, seen)
}

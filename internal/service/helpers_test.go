package service

import (
	"context"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/meals-service/internal/domain"
	"github.com/spec-kit/meals-service/internal/repository"
)

// In-memory repository fakes mirroring the Mongo filter semantics, including
// the owner filter on request mutations.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		copied := *u
		repo.users[u.UserName] = &copied
	}
	return repo
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.UserName]; exists {
		return mongo.CommandError{Code: 11000, Message: "duplicate key"}
	}
	user.ID = primitive.NewObjectID()
	copied := *user
	r.users[user.UserName] = &copied
	return nil
}

func (r *fakeUserRepo) GetByUserName(_ context.Context, userName string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userName]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetBySessionToken(_ context.Context, token string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.SessionToken == token && token != "" {
			copied := *user
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) SetSessionToken(_ context.Context, userName, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userName]
	if !ok {
		return mongo.ErrNoDocuments
	}
	user.SessionToken = token
	return nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, userName string, update repository.ProfileUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userName]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if update.Bio != nil {
		user.Bio = *update.Bio
	}
	if update.Coordinates != nil {
		user.Coordinates = update.Coordinates
	}
	if update.ProfilePicturePath != nil {
		user.ProfilePicturePath = *update.ProfilePicturePath
	}
	return nil
}

type fakeRequestRepo struct {
	mu   sync.Mutex
	docs map[primitive.ObjectID]*domain.Request
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{docs: make(map[primitive.ObjectID]*domain.Request)}
}

func (r *fakeRequestRepo) Insert(_ context.Context, request *domain.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	request.ID = primitive.NewObjectID()
	copied := *request
	r.docs[request.ID] = &copied
	return nil
}

func (r *fakeRequestRepo) ListByClient(_ context.Context, userName string) ([]domain.Request, error) {
	return r.list(func(doc *domain.Request) bool { return doc.UserName == userName }), nil
}

func (r *fakeRequestRepo) ListByChef(_ context.Context, chefName string) ([]domain.Request, error) {
	return r.list(func(doc *domain.Request) bool { return doc.ChefName == chefName }), nil
}

func (r *fakeRequestRepo) list(match func(*domain.Request) bool) []domain.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Request
	for _, doc := range r.docs {
		if match(doc) {
			result = append(result, *doc)
		}
	}
	return result
}

func (r *fakeRequestRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, actor string, status domain.RequestStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok || (doc.UserName != actor && doc.ChefName != actor) {
		return 0, nil
	}
	doc.RequestStatus = status
	return 1, nil
}

func (r *fakeRequestRepo) Delete(_ context.Context, id primitive.ObjectID, actor string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok || (doc.UserName != actor && doc.ChefName != actor) {
		return 0, nil
	}
	delete(r.docs, id)
	return 1, nil
}

type fakeMealRepo struct {
	mu   sync.Mutex
	docs map[primitive.ObjectID]*domain.Meal
}

func newFakeMealRepo() *fakeMealRepo {
	return &fakeMealRepo{docs: make(map[primitive.ObjectID]*domain.Meal)}
}

func (r *fakeMealRepo) Insert(_ context.Context, meal *domain.Meal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	meal.ID = primitive.NewObjectID()
	copied := *meal
	r.docs[meal.ID] = &copied
	return nil
}

func (r *fakeMealRepo) ListAll(_ context.Context) ([]domain.Meal, error) {
	return r.list(func(*domain.Meal) bool { return true }), nil
}

func (r *fakeMealRepo) ListByChef(_ context.Context, chefName string) ([]domain.Meal, error) {
	return r.list(func(doc *domain.Meal) bool { return doc.ChefName == chefName }), nil
}

func (r *fakeMealRepo) Search(_ context.Context, term string) ([]domain.Meal, error) {
	needle := strings.ToLower(term)
	return r.list(func(doc *domain.Meal) bool {
		if strings.Contains(strings.ToLower(doc.Title), needle) ||
			strings.Contains(strings.ToLower(doc.Description), needle) {
			return true
		}
		for _, ingredient := range doc.Ingredients {
			if strings.Contains(strings.ToLower(ingredient), needle) {
				return true
			}
		}
		return false
	}), nil
}

func (r *fakeMealRepo) list(match func(*domain.Meal) bool) []domain.Meal {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Meal
	for _, doc := range r.docs {
		if match(doc) {
			result = append(result, *doc)
		}
	}
	return result
}

func (r *fakeMealRepo) Delete(_ context.Context, id primitive.ObjectID, chefName string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok || doc.ChefName != chefName {
		return 0, nil
	}
	delete(r.docs, id)
	return 1, nil
}

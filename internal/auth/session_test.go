package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/meals-service/internal/domain"
	"github.com/spec-kit/meals-service/internal/repository"
	apperrors "github.com/spec-kit/meals-service/pkg/util"
)

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
		if user.SessionToken == token {
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

func TestIssueAndValidate(t *testing.T) {
	repo := newFakeUserRepo(&domain.User{UserName: "alice", Role: domain.RoleClient})
	m := NewSessionManager(repo, 30*time.Minute)

	token, err := m.Issue(context.Background(), "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	user, err := m.Validate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.UserName)
	assert.Equal(t, domain.RoleClient, user.Role)
}

func TestIssueRotatesPriorToken(t *testing.T) {
	repo := newFakeUserRepo(&domain.User{UserName: "alice", Role: domain.RoleClient})
	m := NewSessionManager(repo, 30*time.Minute)

	first, err := m.Issue(context.Background(), "alice")
	require.NoError(t, err)
	second, err := m.Issue(context.Background(), "alice")
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	_, err = m.Validate(context.Background(), first)
	require.Error(t, err, "rotated token must stop validating")

	user, err := m.Validate(context.Background(), second)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.UserName)
}

func TestIssueUnknownUser(t *testing.T) {
	m := NewSessionManager(newFakeUserRepo(), 30*time.Minute)

	_, err := m.Issue(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, "USER_NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestValidateRejectsMissingOrUnknownToken(t *testing.T) {
	repo := newFakeUserRepo(&domain.User{UserName: "alice", SessionToken: "current"})
	m := NewSessionManager(repo, 30*time.Minute)

	for _, token := range []string{"", "never-issued"} {
		_, err := m.Validate(context.Background(), token)
		require.Error(t, err)
		assert.Equal(t, "UNAUTHENTICATED", apperrors.ToDomainError(err).Code)
	}
}

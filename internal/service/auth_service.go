package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/meals-service/internal/auth"
	"github.com/spec-kit/meals-service/internal/domain"
	"github.com/spec-kit/meals-service/internal/ratelimit"
	"github.com/spec-kit/meals-service/internal/repository"
	apperrors "github.com/spec-kit/meals-service/pkg/util"
)

// AuthService coordinates signup, login and auto-login flows.
type AuthService struct {
	users    repository.UserRepository
	sessions *auth.SessionManager
	hasher   *auth.Hasher
	limiter  *ratelimit.Limiter
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo repository.UserRepository
	Sessions *auth.SessionManager
	Hasher   *auth.Hasher
	Limiter  *ratelimit.Limiter
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	return &AuthService{
		users:    deps.UserRepo,
		sessions: deps.Sessions,
		hasher:   deps.Hasher,
		limiter:  deps.Limiter,
	}
}

// SignupInput describes a new account.
type SignupInput struct {
	UserName    string
	Password    string
	Role        domain.Role
	Coordinates *domain.Coordinates
}

// SessionResult pairs an authenticated user with a freshly issued token.
type SessionResult struct {
	User  *domain.User
	Token string
}

// Signup creates an account and issues its first session. The userName is
// the unique key; a taken name fails with DUPLICATE_USER. The role is fixed
// here and never changes afterwards.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*SessionResult, error) {
	if !input.Role.Valid() {
		return nil, apperrors.NewValidationError("role must be client or chef", nil)
	}
	if !s.limiter.Allow(ctx, "signup:"+input.UserName) {
		return nil, apperrors.NewTooManyAttempts()
	}

	if _, err := s.users.GetByUserName(ctx, input.UserName); err == nil {
		return nil, apperrors.NewDuplicateUser()
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	salt := s.hasher.GenerateSalt()
	user := &domain.User{
		UserName:     input.UserName,
		PasswordHash: s.hasher.HashPassword(input.Password, salt),
		Salt:         salt,
		Role:         input.Role,
		Coordinates:  input.Coordinates,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.NewDuplicateUser()
		}
		return nil, err
	}

	token, err := s.sessions.Issue(ctx, user.UserName)
	if err != nil {
		return nil, err
	}
	user.SessionToken = token
	return &SessionResult{User: user, Token: token}, nil
}

// Login verifies credentials and rotates the user's session.
func (s *AuthService) Login(ctx context.Context, userName, password string) (*SessionResult, error) {
	if !s.limiter.Allow(ctx, "login:"+userName) {
		return nil, apperrors.NewTooManyAttempts()
	}

	user, err := s.users.GetByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewUserNotFound(userName)
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.Salt, user.PasswordHash) {
		return nil, apperrors.NewInvalidCredentials()
	}

	token, err := s.sessions.Issue(ctx, user.UserName)
	if err != nil {
		return nil, err
	}
	user.SessionToken = token
	return &SessionResult{User: user, Token: token}, nil
}

// AutoLogin resolves a presented session token back to its user.
func (s *AuthService) AutoLogin(ctx context.Context, token string) (*domain.User, error) {
	return s.sessions.Validate(ctx, token)
}

// UpdateProfile applies profile changes for the authenticated user.
func (s *AuthService) UpdateProfile(ctx context.Context, userName string, update repository.ProfileUpdate) (*domain.User, error) {
	if err := s.users.UpdateProfile(ctx, userName, update); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewUserNotFound(userName)
		}
		return nil, err
	}
	return s.users.GetByUserName(ctx, userName)
}

package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/meals-service/internal/domain"
	"github.com/spec-kit/meals-service/internal/persistence"
)

// ProfileUpdate carries the mutable profile fields. Nil fields are left
// untouched; userName and role are immutable and never updatable here.
type ProfileUpdate struct {
	Bio                *string
	Coordinates        *domain.Coordinates
	ProfilePicturePath *string
}

// UserRepository defines persistence access for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByUserName(ctx context.Context, userName string) (*domain.User, error)
	GetBySessionToken(ctx context.Context, token string) (*domain.User, error)
	SetSessionToken(ctx context.Context, userName, token string) error
	UpdateProfile(ctx context.Context, userName string, update ProfileUpdate) error
}

type userRepository struct {
	collection *mongo.Collection
}

// NewUserRepository returns a Mongo-backed implementation. A nil database
// yields a disconnected repository whose operations fail with
// persistence.ErrNotConnected.
func NewUserRepository(db *mongo.Database) UserRepository {
	repo := &userRepository{}
	if db != nil {
		repo.collection = db.Collection(persistence.CollectionUsers)
	}
	return repo
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if r.collection == nil {
		return persistence.ErrNotConnected
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	res, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

func (r *userRepository) GetByUserName(ctx context.Context, userName string) (*domain.User, error) {
	if r.collection == nil {
		return nil, persistence.ErrNotConnected
	}
	var user domain.User
	if err := r.collection.FindOne(ctx, bson.M{"userName": userName}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetBySessionToken(ctx context.Context, token string) (*domain.User, error) {
	if r.collection == nil {
		return nil, persistence.ErrNotConnected
	}
	var user domain.User
	if err := r.collection.FindOne(ctx, bson.M{"sessionToken": token}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) SetSessionToken(ctx context.Context, userName, token string) error {
	if r.collection == nil {
		return persistence.ErrNotConnected
	}
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"userName": userName},
		bson.M{"$set": bson.M{"sessionToken": token, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, userName string, update ProfileUpdate) error {
	if r.collection == nil {
		return persistence.ErrNotConnected
	}
	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Bio != nil {
		set["bio"] = *update.Bio
	}
	if update.Coordinates != nil {
		set["coordinates"] = *update.Coordinates
	}
	if update.ProfilePicturePath != nil {
		set["profilePicturePath"] = *update.ProfilePicturePath
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"userName": userName}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

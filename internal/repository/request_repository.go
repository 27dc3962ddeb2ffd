package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spec-kit/meals-service/internal/domain"
	"github.com/spec-kit/meals-service/internal/persistence"
)

// RequestRepository encapsulates request (order) persistence. Mutations take
// the acting party's userName and match it against both owner fields, so a
// request can only ever be touched by its client or its chef.
type RequestRepository interface {
	Insert(ctx context.Context, request *domain.Request) error
	ListByClient(ctx context.Context, userName string) ([]domain.Request, error)
	ListByChef(ctx context.Context, chefName string) ([]domain.Request, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, actor string, status domain.RequestStatus) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID, actor string) (int64, error)
}

type requestRepository struct {
	collection *mongo.Collection
}

// NewRequestRepository returns a Mongo-backed implementation. A nil database
// yields a disconnected repository whose operations fail with
// persistence.ErrNotConnected.
func NewRequestRepository(db *mongo.Database) RequestRepository {
	repo := &requestRepository{}
	if db != nil {
		repo.collection = db.Collection(persistence.CollectionRequests)
	}
	return repo
}

func (r *requestRepository) Insert(ctx context.Context, request *domain.Request) error {
	if r.collection == nil {
		return persistence.ErrNotConnected
	}
	now := time.Now().UTC()
	request.CreatedAt = now
	request.UpdatedAt = now

	res, err := r.collection.InsertOne(ctx, request)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		request.ID = oid
	}
	return nil
}

func (r *requestRepository) ListByClient(ctx context.Context, userName string) ([]domain.Request, error) {
	return r.list(ctx, bson.M{"userName": userName})
}

func (r *requestRepository) ListByChef(ctx context.Context, chefName string) ([]domain.Request, error) {
	return r.list(ctx, bson.M{"chefName": chefName})
}

func (r *requestRepository) list(ctx context.Context, filter bson.M) ([]domain.Request, error) {
	if r.collection == nil {
		return nil, persistence.ErrNotConnected
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var result []domain.Request
	if err := cursor.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func ownerFilter(id primitive.ObjectID, actor string) bson.M {
	return bson.M{
		"_id": id,
		"$or": []bson.M{
			{"userName": actor},
			{"chefName": actor},
		},
	}
}

func (r *requestRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, actor string, status domain.RequestStatus) (int64, error) {
	if r.collection == nil {
		return 0, persistence.ErrNotConnected
	}
	res, err := r.collection.UpdateOne(ctx,
		ownerFilter(id, actor),
		bson.M{"$set": bson.M{"requestStatus": status, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (r *requestRepository) Delete(ctx context.Context, id primitive.ObjectID, actor string) (int64, error) {
	if r.collection == nil {
		return 0, persistence.ErrNotConnected
	}
	res, err := r.collection.DeleteOne(ctx, ownerFilter(id, actor))
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

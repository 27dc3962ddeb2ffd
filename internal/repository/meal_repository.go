package repository

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spec-kit/meals-service/internal/domain"
	"github.com/spec-kit/meals-service/internal/persistence"
)

// MealRepository encapsulates meal catalog persistence.
type MealRepository interface {
	Insert(ctx context.Context, meal *domain.Meal) error
	ListAll(ctx context.Context) ([]domain.Meal, error)
	ListByChef(ctx context.Context, chefName string) ([]domain.Meal, error)
	Search(ctx context.Context, term string) ([]domain.Meal, error)
	Delete(ctx context.Context, id primitive.ObjectID, chefName string) (int64, error)
}

type mealRepository struct {
	collection *mongo.Collection
}

// NewMealRepository returns a Mongo-backed implementation. A nil database
// yields a disconnected repository whose operations fail with
// persistence.ErrNotConnected.
func NewMealRepository(db *mongo.Database) MealRepository {
	repo := &mealRepository{}
	if db != nil {
		repo.collection = db.Collection(persistence.CollectionMeals)
	}
	return repo
}

func (r *mealRepository) Insert(ctx context.Context, meal *domain.Meal) error {
	if r.collection == nil {
		return persistence.ErrNotConnected
	}
	meal.CreatedAt = time.Now().UTC()

	res, err := r.collection.InsertOne(ctx, meal)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		meal.ID = oid
	}
	return nil
}

func (r *mealRepository) ListAll(ctx context.Context) ([]domain.Meal, error) {
	return r.list(ctx, bson.M{})
}

func (r *mealRepository) ListByChef(ctx context.Context, chefName string) ([]domain.Meal, error) {
	return r.list(ctx, bson.M{"chefName": chefName})
}

func (r *mealRepository) Search(ctx context.Context, term string) ([]domain.Meal, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
	filter := bson.M{"$or": []bson.M{
		{"title": pattern},
		{"description": pattern},
		{"ingredients": pattern},
	}}
	return r.list(ctx, filter)
}

func (r *mealRepository) list(ctx context.Context, filter bson.M) ([]domain.Meal, error) {
	if r.collection == nil {
		return nil, persistence.ErrNotConnected
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var result []domain.Meal
	if err := cursor.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *mealRepository) Delete(ctx context.Context, id primitive.ObjectID, chefName string) (int64, error) {
	if r.collection == nil {
		return 0, persistence.ErrNotConnected
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "chefName": chefName})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

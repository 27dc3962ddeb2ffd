package persistence

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/spec-kit/meals-service/internal/config"
)

// Collection names used by the repositories.
const (
	CollectionUsers    = "users"
	CollectionRequests = "requests"
	CollectionMeals    = "meals"
)

// ErrNotConnected is returned by repository operations when the service
// booted without a document store (no MONGO_URI). It maps to a 503 at the
// edge, so the degraded process serves errors instead of crashing.
var ErrNotConnected = errors.New("document store not connected")

// Mongo wraps access to the document store.
type Mongo struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// NewMongo establishes a client when a URI is provided.
func NewMongo(ctx context.Context, cfg config.MongoConfig, logger *zap.Logger) (*Mongo, error) {
	if cfg.URI == "" {
		logger.Warn("MONGO_URI not provided; skipping database connection")
		return &Mongo{}, nil
	}

	connectTimeout := 10 * time.Second
	if cfg.ConnectTimeoutSec > 0 {
		connectTimeout = time.Duration(cfg.ConnectTimeoutSec) * time.Second
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(connectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	logger.Info("connected to mongodb", zap.String("database", cfg.Database))
	return &Mongo{Client: client, Database: client.Database(cfg.Database)}, nil
}

// EnsureIndexes creates the unique userName index and the request owner
// indexes. Safe to call repeatedly.
func (m *Mongo) EnsureIndexes(ctx context.Context, logger *zap.Logger) error {
	if m == nil || m.Database == nil {
		logger.Warn("no mongo database available; skipping index creation")
		return nil
	}

	users := m.Database.Collection(CollectionUsers)
	_, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userName", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	requests := m.Database.Collection(CollectionRequests)
	_, err = requests.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userName", Value: 1}}},
		{Keys: bson.D{{Key: "chefName", Value: 1}}},
	})
	if err != nil {
		return err
	}

	logger.Info("mongo indexes ensured")
	return nil
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) {
	if m != nil && m.Client != nil {
		_ = m.Client.Disconnect(ctx)
	}
}

// Ping verifies store connectivity.
func (m *Mongo) Ping(ctx context.Context) error {
	if m == nil || m.Client == nil {
		return errors.New("mongo client not configured")
	}
	return m.Client.Ping(ctx, readpref.Primary())
}

// DatabaseHandle returns the underlying database.
func (m *Mongo) DatabaseHandle() *mongo.Database {
	if m == nil {
		return nil
	}
	return m.Database
}

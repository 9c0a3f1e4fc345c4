package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Collection names
const (
	ColUsers     = "users"
	ColCreators  = "creators"
	ColCourses   = "courses"
	ColPurchases = "purchases"
)

// Store owns the process-wide MongoDB connection. It is created once at
// startup and closed on shutdown; repositories borrow collections from it.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens the MongoDB connection, verifies it and ensures indexes.
func Connect(uri, dbName string) (*Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("repository: connect failed: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("repository: ping failed: %w", err)
	}

	s := &Store{client: client, db: client.Database(dbName)}
	if err := s.ensureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("repository: ensure indexes failed: %w", err)
	}
	return s, nil
}

// Close disconnects the MongoDB client.
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *Store) col(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// ensureIndexes creates the unique email indexes. The store is the
// authoritative guard against duplicate emails; the pre-create lookup in
// the services only exists for a friendlier error path.
func (s *Store) ensureIndexes(ctx context.Context) error {
	type idx struct {
		col    string
		keys   bson.D
		unique bool
	}

	indexes := []idx{
		{ColUsers, bson.D{{Key: "email", Value: 1}}, true},
		{ColCreators, bson.D{{Key: "email", Value: 1}}, true},
		{ColCourses, bson.D{{Key: "creatorId", Value: 1}}, false},
		{ColPurchases, bson.D{{Key: "userId", Value: 1}}, false},
	}

	for _, i := range indexes {
		model := mongo.IndexModel{Keys: i.keys}
		if i.unique {
			model.Options = options.Index().SetUnique(true)
		}
		if _, err := s.col(i.col).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("index on %s: %w", i.col, err)
		}
	}
	return nil
}

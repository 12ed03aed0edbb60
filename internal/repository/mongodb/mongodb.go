package mongodb

import (
	"context"
	"fmt"

	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wijdennerhouma/App-JobConnect/pkg/repository"
)

// Store implements the repository interfaces on top of a mongo database.
type Store struct {
	db     *mongo.Database
	logger *slog.Logger
}

// Ensure Store implements the public interfaces.
var _ repository.UserRepo = (*Store)(nil)
var _ repository.JobRepo = (*Store)(nil)
var _ repository.ApplicationRepo = (*Store)(nil)
var _ repository.ResumeRepo = (*Store)(nil)
var _ repository.ConversationRepo = (*Store)(nil)
var _ repository.MessageRepo = (*Store)(nil)
var _ repository.NotificationRepo = (*Store)(nil)

func New(db *mongo.Database, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, logger: logger}
}

// insertOne persists doc and returns the generated object id.
func (s *Store) insertOne(ctx context.Context, collection string, doc any) (primitive.ObjectID, error) {
	res, err := s.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}

	return id, nil
}

// findOne decodes a single document into out, mapping ErrNoDocuments to
// a nil result.
func findOne[T any](ctx context.Context, s *Store, collection string, filter bson.M) (*T, error) {
	var out T
	err := s.db.Collection(collection).FindOne(ctx, filter).Decode(&out)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}

		return nil, err
	}

	return &out, nil
}

// findAll collects every document matching filter.
func findAll[T any](ctx context.Context, s *Store, collection string, filter bson.M, opts ...*options.FindOptions) ([]T, error) {
	cur, err := s.db.Collection(collection).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}

	var out []T
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// findByIDs batch-loads the documents whose _id is in ids.
func findByIDs[T any](ctx context.Context, s *Store, collection string, ids []primitive.ObjectID) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}

	return findAll[T](ctx, s, collection, bson.M{"_id": bson.M{"$in": ids}})
}

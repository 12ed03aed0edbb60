package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wijdennerhouma/App-JobConnect/internal/models"
)

const usersCollection = "users"

func (s *Store) CreateUser(ctx context.Context, u *models.User) (primitive.ObjectID, error) {
	if u == nil {
		return primitive.NilObjectID, fmt.Errorf("user is nil")
	}
	if u.SavedJobs == nil {
		u.SavedJobs = []primitive.ObjectID{}
	}

	return s.insertOne(ctx, usersCollection, u)
}

func (s *Store) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return findOne[models.User](ctx, s, usersCollection, bson.M{"_id": id})
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return findOne[models.User](ctx, s, usersCollection, bson.M{"email": email})
}

func (s *Store) UpdateUser(ctx context.Context, u *models.User) error {
	if u == nil {
		return fmt.Errorf("user is nil")
	}

	_, err := s.db.Collection(usersCollection).ReplaceOne(ctx, bson.M{"_id": u.ID}, u)
	return err
}

func (s *Store) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.db.Collection(usersCollection).DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// SearchUsers matches the name case-insensitively against query and only
// returns public profiles.
func (s *Store) SearchUsers(ctx context.Context, query string) ([]models.User, error) {
	filter := bson.M{
		"name":            primitive.Regex{Pattern: query, Options: "i"},
		"isPublicProfile": true,
	}

	return findAll[models.User](ctx, s, usersCollection, filter)
}

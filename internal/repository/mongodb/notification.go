package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wijdennerhouma/App-JobConnect/internal/models"
)

const notificationsCollection = "notifications"

func (s *Store) CreateNotification(ctx context.Context, n *models.Notification) (primitive.ObjectID, error) {
	if n == nil {
		return primitive.NilObjectID, fmt.Errorf("notification is nil")
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	return s.insertOne(ctx, notificationsCollection, n)
}

func (s *Store) ListNotificationsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	sort := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return findAll[models.Notification](ctx, s, notificationsCollection, bson.M{"userId": userID}, sort)
}

// MarkNotificationRead flips isRead and returns the updated record, or
// (nil, nil) when the id is unknown.
func (s *Store) MarkNotificationRead(ctx context.Context, id primitive.ObjectID) (*models.Notification, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	res := s.db.Collection(notificationsCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"isRead": true}},
		opts,
	)

	var n models.Notification
	if err := res.Decode(&n); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}

		return nil, err
	}

	return &n, nil
}

// Package notify persists notification records and forwards them to the
// push transport. Sends are "fire persisted, best-effort delivered":
// the record always lands in the store, delivery may silently fail.
package notify

import (
	"context"
	"time"

	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wijdennerhouma/App-JobConnect/internal/models"
	"github.com/wijdennerhouma/App-JobConnect/pkg/repository"
)

type Service struct {
	notifications repository.NotificationRepo
	users         repository.UserRepo
	dispatcher    *Dispatcher
	logger        *slog.Logger
}

func NewService(nr repository.NotificationRepo, ur repository.UserRepo, d *Dispatcher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{notifications: nr, users: ur, dispatcher: d, logger: logger}
}

// Send persists the notification, then queues push delivery if the user
// has a registered device token. The returned record is persisted even
// when delivery is impossible.
func (s *Service) Send(ctx context.Context, userID primitive.ObjectID, title, body string, relatedID *primitive.ObjectID, typ string) (*models.Notification, error) {
	n := &models.Notification{
		UserID:    userID,
		Title:     title,
		Body:      body,
		Type:      typ,
		RelatedID: relatedID,
		IsRead:    false,
		CreatedAt: time.Now().UTC(),
	}

	id, err := s.notifications.CreateNotification(ctx, n)
	if err != nil {
		return nil, err
	}
	n.ID = id

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		s.logger.Error("lookup user for push delivery", "err", err, "user_id", userID.Hex())
		return n, nil
	}
	if user == nil || user.FCMToken == "" {
		return n, nil
	}

	related := ""
	if relatedID != nil {
		related = relatedID.Hex()
	}
	s.dispatcher.Enqueue(Delivery{
		Token: user.FCMToken,
		Title: title,
		Body:  body,
		Data:  map[string]string{"type": typ, "relatedId": related},
	})

	return n, nil
}

package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wijdennerhouma/App-JobConnect/internal/models"
)

const (
	conversationsCollection = "conversations"
	messagesCollection      = "messages"
)

func (s *Store) CreateConversation(ctx context.Context, c *models.Conversation) (primitive.ObjectID, error) {
	if c == nil {
		return primitive.NilObjectID, fmt.Errorf("conversation is nil")
	}

	return s.insertOne(ctx, conversationsCollection, c)
}

func (s *Store) GetConversationByID(ctx context.Context, id primitive.ObjectID) (*models.Conversation, error) {
	return findOne[models.Conversation](ctx, s, conversationsCollection, bson.M{"_id": id})
}

// GetConversationByPair matches the participant set {a, b} regardless of
// the order messages were first sent in.
func (s *Store) GetConversationByPair(ctx context.Context, a, b primitive.ObjectID) (*models.Conversation, error) {
	filter := bson.M{"participants": bson.M{"$all": []primitive.ObjectID{a, b}}}
	return findOne[models.Conversation](ctx, s, conversationsCollection, filter)
}

func (s *Store) SetLastMessage(ctx context.Context, id primitive.ObjectID, text string, at time.Time) error {
	update := bson.M{"$set": bson.M{"lastMessage": text, "lastMessageDate": at}}
	_, err := s.db.Collection(conversationsCollection).UpdateByID(ctx, id, update)
	return err
}

func (s *Store) ListConversationsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Conversation, error) {
	sort := options.Find().SetSort(bson.D{{Key: "lastMessageDate", Value: -1}})
	return findAll[models.Conversation](ctx, s, conversationsCollection, bson.M{"participants": userID}, sort)
}

func (s *Store) ListAllConversations(ctx context.Context) ([]models.Conversation, error) {
	return findAll[models.Conversation](ctx, s, conversationsCollection, bson.M{})
}

func (s *Store) CreateMessage(ctx context.Context, m *models.Message) (primitive.ObjectID, error) {
	if m == nil {
		return primitive.NilObjectID, fmt.Errorf("message is nil")
	}

	return s.insertOne(ctx, messagesCollection, m)
}

func (s *Store) ListMessagesByConversation(ctx context.Context, conversationID primitive.ObjectID) ([]models.Message, error) {
	sort := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	return findAll[models.Message](ctx, s, messagesCollection, bson.M{"conversationId": conversationID}, sort)
}

func (s *Store) MarkMessagesRead(ctx context.Context, ids []primitive.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}

	filter := bson.M{"_id": bson.M{"$in": ids}}
	_, err := s.db.Collection(messagesCollection).UpdateMany(ctx, filter, bson.M{"$set": bson.M{"isRead": true}})
	return err
}

func (s *Store) ListAllMessages(ctx context.Context) ([]models.Message, error) {
	return findAll[models.Message](ctx, s, messagesCollection, bson.M{})
}

package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wijdennerhouma/App-JobConnect/internal/models"
	"github.com/wijdennerhouma/App-JobConnect/internal/notify"
	"github.com/wijdennerhouma/App-JobConnect/pkg/repository"
)

type ChatHandler struct {
	convRepo repository.ConversationRepo
	msgRepo  repository.MessageRepo
	userRepo repository.UserRepo
	notifier *notify.Service
}

// NewChatHandler creates a new ChatHandler with required dependencies.
func NewChatHandler(cr repository.ConversationRepo, mr repository.MessageRepo, ur repository.UserRepo, n *notify.Service) *ChatHandler {
	return &ChatHandler{convRepo: cr, msgRepo: mr, userRepo: ur, notifier: n}
}

type sendMessageRequest struct {
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content"`
}

func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	senderID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Content == "" {
		http.Error(w, "Content is required", http.StatusBadRequest)
		return
	}

	receiverID, err := primitive.ObjectIDFromHex(req.ReceiverID)
	if err != nil {
		http.Error(w, "invalid receiver id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	now := time.Now().UTC()

	// One conversation per participant pair, whichever side wrote first.
	conv, err := h.convRepo.GetConversationByPair(ctx, senderID, receiverID)
	if err != nil {
		http.Error(w, "Error loading conversation", http.StatusInternalServerError)
		return
	}
	if conv == nil {
		conv = &models.Conversation{
			Participants:    []primitive.ObjectID{senderID, receiverID},
			LastMessage:     req.Content,
			LastMessageDate: now,
		}
		id, err := h.convRepo.CreateConversation(ctx, conv)
		if err != nil {
			http.Error(w, "Error creating conversation", http.StatusInternalServerError)
			return
		}
		conv.ID = id
	} else {
		if err := h.convRepo.SetLastMessage(ctx, conv.ID, req.Content, now); err != nil {
			http.Error(w, "Error updating conversation", http.StatusInternalServerError)
			return
		}
		conv.LastMessage = req.Content
		conv.LastMessageDate = now
	}

	msg := models.Message{
		Sender:         senderID,
		Receiver:       receiverID,
		ConversationID: conv.ID,
		Content:        req.Content,
		IsRead:         false,
		Timestamp:      now,
	}
	msgID, err := h.msgRepo.CreateMessage(ctx, &msg)
	if err != nil {
		http.Error(w, "Error saving message", http.StatusInternalServerError)
		return
	}
	msg.ID = msgID

	h.notifyReceiver(r, senderID, receiverID, conv.ID)

	writeJSON(w, msg, http.StatusCreated)
}

// notifyReceiver pushes a "new message" notification. Best-effort only.
func (h *ChatHandler) notifyReceiver(r *http.Request, senderID, receiverID, convID primitive.ObjectID) {
	ctx := r.Context()

	senderName := "Utilisateur"
	if sender, err := h.userRepo.GetUserByID(ctx, senderID); err == nil && sender != nil {
		parts := []string{}
		for _, p := range []string{sender.FirstName, sender.Name} {
			if p != "" && p != "undefined" {
				parts = append(parts, p)
			}
		}
		if len(parts) > 0 {
			senderName = strings.Join(parts, " ")
		}
	}

	if _, err := h.notifier.Send(ctx, receiverID, "Nouveau message", "Message from: "+senderName, &convID, "new_message"); err != nil {
		logger.Error("message notification failed", "error", err, "conversation", convID.Hex())
	}
}

func (h *ChatHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	convs, err := h.convRepo.ListConversationsByUser(r.Context(), userID)
	if err != nil {
		http.Error(w, "Error loading conversations", http.StatusInternalServerError)
		return
	}
	if convs == nil {
		convs = []models.Conversation{}
	}

	writeJSON(w, convs, http.StatusOK)
}

// ListMessages returns a conversation's messages oldest first and marks
// the ones addressed to the caller as read.
func (h *ChatHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	convID, err := pathID(r, "conversationId")
	if err != nil {
		http.Error(w, "invalid conversation id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	msgs, err := h.msgRepo.ListMessagesByConversation(ctx, convID)
	if err != nil {
		http.Error(w, "Error loading messages", http.StatusInternalServerError)
		return
	}
	if msgs == nil {
		msgs = []models.Message{}
	}

	unread := []primitive.ObjectID{}
	for i := range msgs {
		if msgs[i].Receiver == userID && !msgs[i].IsRead {
			unread = append(unread, msgs[i].ID)
			msgs[i].IsRead = true
		}
	}
	if len(unread) > 0 {
		if err := h.msgRepo.MarkMessagesRead(ctx, unread); err != nil {
			http.Error(w, "Error marking messages read", http.StatusInternalServerError)
			return
		}
	}

	writeJSON(w, msgs, http.StatusOK)
}

func (h *ChatHandler) GetConversationWithUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	otherID, err := pathID(r, "otherUserId")
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	conv, err := h.convRepo.GetConversationByPair(r.Context(), userID, otherID)
	if err != nil {
		http.Error(w, "Error loading conversation", http.StatusInternalServerError)
		return
	}
	if conv == nil {
		http.Error(w, "Conversation not found", http.StatusNotFound)
		return
	}

	writeJSON(w, conv, http.StatusOK)
}

// DumpAll returns every conversation and message. Debug aid, keep it
// behind auth.
func (h *ChatHandler) DumpAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	convs, err := h.convRepo.ListAllConversations(ctx)
	if err != nil {
		http.Error(w, "Error loading conversations", http.StatusInternalServerError)
		return
	}
	msgs, err := h.msgRepo.ListAllMessages(ctx)
	if err != nil {
		http.Error(w, "Error loading messages", http.StatusInternalServerError)
		return
	}
	if convs == nil {
		convs = []models.Conversation{}
	}
	if msgs == nil {
		msgs = []models.Message{}
	}

	writeJSON(w, map[string]any{
		"conversations": convs,
		"messages":      msgs,
	}, http.StatusOK)
}

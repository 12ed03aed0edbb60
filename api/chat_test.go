package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/wijdennerhouma/App-JobConnect/internal/models"
)

func TestSendMessage_SingleConversationPerPair(t *testing.T) {
	env := newTestEnv(t)
	a := env.addUser(t, "Nadia", "nadia@example.com", models.RoleWorker, "secret123")
	b := env.addUser(t, "Acme", "acme@example.com", models.RoleEmployer, "secret123")
	tokenA := env.token(t, a.ID, a.Role)
	tokenB := env.token(t, b.ID, b.Role)

	rec := env.do(t, http.MethodPost, "/chat/send", tokenA, map[string]string{
		"receiverId": b.ID.Hex(),
		"content":    "bonjour",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("first send status = %d, body %s", rec.Code, rec.Body.String())
	}
	first := decodeBody[models.Message](t, rec)

	// Replying from the other side reuses the same conversation.
	rec = env.do(t, http.MethodPost, "/chat/send", tokenB, map[string]string{
		"receiverId": a.ID.Hex(),
		"content":    "salut",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("reply status = %d", rec.Code)
	}
	second := decodeBody[models.Message](t, rec)

	if first.ConversationID != second.ConversationID {
		t.Fatal("reply created a second conversation for the same pair")
	}

	convs, err := env.store.ListAllConversations(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(convs) != 1 {
		t.Fatalf("conversations = %d, want 1", len(convs))
	}
	if convs[0].LastMessage != "salut" {
		t.Fatalf("lastMessage = %q, want the newest content", convs[0].LastMessage)
	}
}

func TestSendMessage_Validation(t *testing.T) {
	env := newTestEnv(t)
	a := env.addUser(t, "Nadia", "nadia@example.com", models.RoleWorker, "secret123")
	token := env.token(t, a.ID, a.Role)

	rec := env.do(t, http.MethodPost, "/chat/send", token, map[string]string{
		"receiverId": "not-an-id",
		"content":    "hello",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad receiver status = %d, want 400", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/chat/send", token, map[string]string{
		"receiverId": a.ID.Hex(),
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty content status = %d, want 400", rec.Code)
	}
}

func TestSendMessage_NotifiesReceiver(t *testing.T) {
	env := newTestEnv(t)
	a := env.addUser(t, "Nadia", "nadia@example.com", models.RoleWorker, "secret123")
	a.FirstName = "Nadia"
	a.Name = "Ben Salah"
	if err := env.store.UpdateUser(context.Background(), a); err != nil {
		t.Fatal(err)
	}
	b := env.addUser(t, "Acme", "acme@example.com", models.RoleEmployer, "secret123")

	rec := env.do(t, http.MethodPost, "/chat/send", env.token(t, a.ID, a.Role), map[string]string{
		"receiverId": b.ID.Hex(),
		"content":    "bonjour",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("send status = %d", rec.Code)
	}

	notifications, err := env.store.ListNotificationsByUser(context.Background(), b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(notifications) != 1 {
		t.Fatalf("receiver notifications = %d, want 1", len(notifications))
	}
	n := notifications[0]
	if n.Type != "new_message" || n.Title != "Nouveau message" {
		t.Fatalf("notification = %+v", n)
	}
	if n.Body != "Message from: Nadia Ben Salah" {
		t.Fatalf("body = %q", n.Body)
	}
}

func TestListMessages_MarksOwnUnreadAsRead(t *testing.T) {
	env := newTestEnv(t)
	a := env.addUser(t, "Nadia", "nadia@example.com", models.RoleWorker, "secret123")
	b := env.addUser(t, "Acme", "acme@example.com", models.RoleEmployer, "secret123")
	tokenA := env.token(t, a.ID, a.Role)
	tokenB := env.token(t, b.ID, b.Role)

	rec := env.do(t, http.MethodPost, "/chat/send", tokenA, map[string]string{
		"receiverId": b.ID.Hex(),
		"content":    "bonjour",
	})
	msg := decodeBody[models.Message](t, rec)
	convID := msg.ConversationID

	// The sender reading the thread leaves the receiver's flag alone.
	rec = env.do(t, http.MethodGet, "/chat/messages/"+convID.Hex(), tokenA, nil)
	msgs := decodeBody[[]models.Message](t, rec)
	if len(msgs) != 1 || msgs[0].IsRead {
		t.Fatalf("sender view = %+v, message must stay unread", msgs)
	}

	// The receiver reading it flips the flag, and a second read is a
	// no-op.
	for i := 0; i < 2; i++ {
		rec = env.do(t, http.MethodGet, "/chat/messages/"+convID.Hex(), tokenB, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("read %d status = %d", i, rec.Code)
		}
		msgs = decodeBody[[]models.Message](t, rec)
		if len(msgs) != 1 || !msgs[0].IsRead {
			t.Fatalf("receiver view %d = %+v, want read", i, msgs)
		}
	}
}

func TestConversationEndpoints(t *testing.T) {
	env := newTestEnv(t)
	a := env.addUser(t, "Nadia", "nadia@example.com", models.RoleWorker, "secret123")
	b := env.addUser(t, "Acme", "acme@example.com", models.RoleEmployer, "secret123")
	c := env.addUser(t, "Sami", "sami@example.com", models.RoleWorker, "secret123")
	tokenA := env.token(t, a.ID, a.Role)

	env.do(t, http.MethodPost, "/chat/send", tokenA, map[string]string{
		"receiverId": b.ID.Hex(), "content": "bonjour",
	})

	rec := env.do(t, http.MethodGet, "/chat/conversations", tokenA, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("conversations status = %d", rec.Code)
	}
	if convs := decodeBody[[]models.Conversation](t, rec); len(convs) != 1 {
		t.Fatalf("conversations = %d, want 1", len(convs))
	}

	rec = env.do(t, http.MethodGet, "/chat/conversation/user/"+b.ID.Hex(), tokenA, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("pair lookup status = %d", rec.Code)
	}

	// No conversation with c yet.
	rec = env.do(t, http.MethodGet, "/chat/conversation/user/"+c.ID.Hex(), tokenA, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing pair status = %d, want 404", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/chat/debug/all", tokenA, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("debug dump status = %d", rec.Code)
	}
	dump := decodeBody[map[string][]map[string]any](t, rec)
	if len(dump["conversations"]) != 1 || len(dump["messages"]) != 1 {
		t.Fatalf("dump = %d conversations, %d messages", len(dump["conversations"]), len(dump["messages"]))
	}
}

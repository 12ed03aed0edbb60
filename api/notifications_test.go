package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wijdennerhouma/App-JobConnect/internal/models"
)

func TestListNotifications(t *testing.T) {
	env := newTestEnv(t)
	user := env.addUser(t, "Nadia", "nadia@example.com", models.RoleWorker, "secret123")
	other := env.addUser(t, "Sami", "sami@example.com", models.RoleWorker, "secret123")
	token := env.token(t, user.ID, user.Role)

	ctx := context.Background()
	older := &models.Notification{
		UserID:    user.ID,
		Title:     "older",
		CreatedAt: time.Now().Add(-time.Hour).UTC(),
	}
	newer := &models.Notification{
		UserID:    user.ID,
		Title:     "newer",
		CreatedAt: time.Now().UTC(),
	}
	foreign := &models.Notification{
		UserID:    other.ID,
		Title:     "not yours",
		CreatedAt: time.Now().UTC(),
	}
	for _, n := range []*models.Notification{older, newer, foreign} {
		if _, err := env.store.CreateNotification(ctx, n); err != nil {
			t.Fatal(err)
		}
	}

	rec := env.do(t, http.MethodGet, "/notifications", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	got := decodeBody[[]models.Notification](t, rec)
	if len(got) != 2 {
		t.Fatalf("notifications = %d, want only the caller's", len(got))
	}
	if got[0].Title != "newer" || got[1].Title != "older" {
		t.Fatalf("order = [%s, %s], want newest first", got[0].Title, got[1].Title)
	}
}

func TestMarkNotificationRead(t *testing.T) {
	env := newTestEnv(t)
	user := env.addUser(t, "Nadia", "nadia@example.com", models.RoleWorker, "secret123")
	token := env.token(t, user.ID, user.Role)

	id, err := env.store.CreateNotification(context.Background(), &models.Notification{
		UserID:    user.ID,
		Title:     "hello",
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatal(err)
	}

	rec := env.do(t, http.MethodPut, "/notifications/"+id.Hex()+"/read", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	n := decodeBody[models.Notification](t, rec)
	if !n.IsRead {
		t.Fatal("notification not marked read")
	}

	rec = env.do(t, http.MethodPut, "/notifications/"+primitive.NewObjectID().Hex()+"/read", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown notification status = %d, want 404", rec.Code)
	}
}

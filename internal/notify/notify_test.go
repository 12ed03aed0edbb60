package notify

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/goleak"

	"github.com/wijdennerhouma/App-JobConnect/internal/models"
	"github.com/wijdennerhouma/App-JobConnect/pkg/repository/mock"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// captureSender records sends and signals each one on a channel.
type captureSender struct {
	mu    sync.Mutex
	sends []Delivery
	errs  []error
	done  chan struct{}
}

func newCaptureSender(buffer int) *captureSender {
	return &captureSender{done: make(chan struct{}, buffer)}
}

func (c *captureSender) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sends = append(c.sends, Delivery{Token: token, Title: title, Body: body, Data: data})
	var err error
	if len(c.errs) > 0 {
		err = c.errs[0]
		c.errs = c.errs[1:]
	}
	c.done <- struct{}{}

	return err
}

func (c *captureSender) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sends)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSend_PersistsWithoutToken(t *testing.T) {
	store := mock.NewStore()
	sender := newCaptureSender(1)

	d := NewDispatcher(sender, discardLogger(), 1)
	d.Start(context.Background())
	defer d.Stop()

	svc := NewService(store, store, d, discardLogger())

	ctx := context.Background()
	user := &models.User{Name: "Nadia", Email: "nadia@example.com", Role: models.RoleWorker}
	userID, err := store.CreateUser(ctx, user)
	if err != nil {
		t.Fatal(err)
	}

	n, err := svc.Send(ctx, userID, "Titre", "Corps", nil, "test")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if n.IsRead {
		t.Fatal("new notification must start unread")
	}

	stored, err := store.ListNotificationsByUser(ctx, userID)
	if err != nil || len(stored) != 1 {
		t.Fatalf("persisted = %d, err %v", len(stored), err)
	}

	// No device token, so nothing may reach the sender.
	select {
	case <-sender.done:
		t.Fatal("push attempted for a user without a token")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSend_DeliversWithToken(t *testing.T) {
	store := mock.NewStore()
	sender := newCaptureSender(1)

	d := NewDispatcher(sender, discardLogger(), 1)
	d.Start(context.Background())
	defer d.Stop()

	svc := NewService(store, store, d, discardLogger())

	ctx := context.Background()
	user := &models.User{Name: "Nadia", Email: "nadia@example.com", Role: models.RoleWorker, FCMToken: "device-1"}
	userID, err := store.CreateUser(ctx, user)
	if err != nil {
		t.Fatal(err)
	}

	related := primitive.NewObjectID()
	if _, err := svc.Send(ctx, userID, "Titre", "Corps", &related, "application_new"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	select {
	case <-sender.done:
	case <-time.After(2 * time.Second):
		t.Fatal("push never reached the sender")
	}

	sender.mu.Lock()
	defer sender.mu.Unlock()
	got := sender.sends[0]
	if got.Token != "device-1" || got.Title != "Titre" {
		t.Fatalf("delivery = %+v", got)
	}
	if got.Data["type"] != "application_new" || got.Data["relatedId"] != related.Hex() {
		t.Fatalf("delivery data = %v", got.Data)
	}
}

func TestSend_PersistFailurePropagates(t *testing.T) {
	store := mock.NewStore()
	store.CreateNotificationErr = errors.New("store down")
	sender := newCaptureSender(1)

	d := NewDispatcher(sender, discardLogger(), 1)
	d.Start(context.Background())
	defer d.Stop()

	svc := NewService(store, store, d, discardLogger())

	userID := primitive.NewObjectID()
	if _, err := svc.Send(context.Background(), userID, "Titre", "Corps", nil, "test"); err == nil {
		t.Fatal("persist failure must surface to the caller")
	}
	if sender.count() != 0 {
		t.Fatal("push attempted although nothing was persisted")
	}
}

func TestDeliver_StopAbortsRetry(t *testing.T) {
	sender := newCaptureSender(4)
	sender.errs = []error{errors.New("transient")}

	d := NewDispatcher(sender, discardLogger(), 1)
	// Closed stop channel turns the backoff wait into an immediate
	// return, keeping the test fast; the in-flight attempt still runs.
	close(d.stop)

	d.deliver(context.Background(), Delivery{Token: "t", Title: "x"})

	if got := sender.count(); got != 1 {
		t.Fatalf("attempts = %d, want 1 before stop aborts the retry", got)
	}
}

func TestEnqueue_DropsWhenStopped(t *testing.T) {
	sender := newCaptureSender(1)
	d := NewDispatcher(sender, discardLogger(), 1)
	d.Start(context.Background())
	d.Stop()

	// Must not block or panic after shutdown.
	d.Enqueue(Delivery{Token: "t"})
}

func TestBackoffDuration(t *testing.T) {
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{30, 5 * time.Minute},
	}

	for _, tt := range tests {
		if got := backoffDuration(tt.attempt); got != tt.want {
			t.Errorf("backoffDuration(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

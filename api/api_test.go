package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"log/slog"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/goleak"
	"golang.org/x/crypto/bcrypt"

	"github.com/wijdennerhouma/App-JobConnect/internal/models"
	"github.com/wijdennerhouma/App-JobConnect/internal/notify"
	"github.com/wijdennerhouma/App-JobConnect/internal/push"
	"github.com/wijdennerhouma/App-JobConnect/pkg/repository/mock"
)

const testSecret = "test-secret"

func TestMain(m *testing.M) {
	SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	goleak.VerifyTestMain(m)
}

type testEnv struct {
	store  *mock.Store
	router *mux.Router
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := mock.NewStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	dispatcher := notify.NewDispatcher(push.Disabled{}, logger, 1)
	dispatcher.Start(context.Background())
	t.Cleanup(dispatcher.Stop)

	notifier := notify.NewService(store, store, dispatcher, logger)

	handlers := Handlers{
		Auth:          NewAuthHandler(store, store, store, testSecret, time.Hour),
		Uploads:       NewUploadsHandler(store, t.TempDir()),
		Jobs:          NewJobsHandler(store),
		Applications:  NewApplicationsHandler(store, store, store, notifier),
		Resumes:       NewResumesHandler(store),
		Chat:          NewChatHandler(store, store, store, notifier),
		Notifications: NewNotificationsHandler(store),
		System:        &SystemHandler{},
	}

	return &testEnv{store: store, router: SetupRoutes(handlers, testSecret, "test", "unknown")}
}

func (e *testEnv) token(t *testing.T, userID primitive.ObjectID, role string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   userID.Hex(),
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}

	return signed
}

// do performs a JSON request against the test router. An empty token
// leaves the Authorization header unset.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling request body: %v", err)
		}
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	return v
}

func (e *testEnv) addUser(t *testing.T, name, email, role, password string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}

	u := &models.User{
		Name:            name,
		Email:           email,
		Password:        string(hash),
		Role:            role,
		SavedJobs:       []primitive.ObjectID{},
		IsPublicProfile: true,
	}
	id, err := e.store.CreateUser(context.Background(), u)
	if err != nil {
		t.Fatalf("creating test user: %v", err)
	}
	u.ID = id

	return u
}

func (e *testEnv) addJob(t *testing.T, employerID primitive.ObjectID, title string) *models.Job {
	t.Helper()

	now := time.Now().UTC()
	j := &models.Job{
		Title:        title,
		Description:  "test job",
		EmployerID:   employerID,
		Price:        20,
		PricingType:  models.PricingPerHour,
		ApplicantIDs: []primitive.ObjectID{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	id, err := e.store.CreateJob(context.Background(), j)
	if err != nil {
		t.Fatalf("creating test job: %v", err)
	}
	j.ID = id

	return j
}

package api

import (
	"github.com/gorilla/mux"

	"github.com/wijdennerhouma/App-JobConnect/internal/models"
)

// Handlers bundles every handler the router wires up.
type Handlers struct {
	Auth          *AuthHandler
	Uploads       *UploadsHandler
	Jobs          *JobsHandler
	Applications  *ApplicationsHandler
	Resumes       *ResumesHandler
	Chat          *ChatHandler
	Notifications *NotificationsHandler
	System        *SystemHandler
}

// SetupRoutes builds the router. Signup, login, health, version and file
// serving stay open; everything else requires a bearer token.
func SetupRoutes(h Handlers, jwtSecret, version, buildTime string) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Open endpoints
	r.HandleFunc("/version", h.System.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", h.System.HealthHandler).Methods("GET")
	r.HandleFunc("/auth/signup", h.Auth.Signup).Methods("POST")
	r.HandleFunc("/auth/login", h.Auth.Login).Methods("POST")
	r.HandleFunc("/auth/upload-avatar", h.Uploads.UploadAvatar).Methods("POST")
	r.HandleFunc("/auth/upload-identity-pic", h.Uploads.UploadIdentityPic).Methods("POST")
	r.HandleFunc("/auth/avatar/{path}", h.Uploads.ServeAvatar).Methods("GET")
	r.HandleFunc("/auth/identityPic/{path}", h.Uploads.ServeIdentityPic).Methods("GET")

	auth := JWTAuthMiddlewareWithSecret(jwtSecret)

	// User endpoints
	users := r.PathPrefix("/auth").Subrouter()
	users.Use(auth)
	users.HandleFunc("/search", h.Auth.SearchUsers).Methods("GET")
	users.HandleFunc("/user/{id}", h.Auth.GetUser).Methods("GET")
	users.HandleFunc("/user/{id}", h.Auth.UpdateProfile).Methods("PATCH")
	users.HandleFunc("/user/{id}", h.Auth.DeleteUser).Methods("DELETE")
	users.HandleFunc("/user/{id}/avatar", h.Uploads.UpdateAvatar).Methods("POST")
	users.HandleFunc("/user/{id}/saved-jobs", h.Auth.GetSavedJobs).Methods("GET")
	users.HandleFunc("/user/{id}/saved-jobs/{jobId}", h.Auth.ToggleSavedJob).Methods("POST")
	users.HandleFunc("/user/{id}/toggle-2fa", h.Auth.ToggleTwoFactor).Methods("POST")
	users.HandleFunc("/user/{id}/change-password", h.Auth.ChangePassword).Methods("POST")

	// Job endpoints
	jobs := r.PathPrefix("/job").Subrouter()
	jobs.Use(auth)
	jobs.HandleFunc("/create", RequireRole(models.RoleEmployer, h.Jobs.Create)).Methods("POST")
	jobs.HandleFunc("", h.Jobs.List).Methods("GET")
	jobs.HandleFunc("/byCity", h.Jobs.ByCity).Methods("GET")
	jobs.HandleFunc("/byStartDate", h.Jobs.ByStartDate).Methods("GET")
	jobs.HandleFunc("/byPriceAndType", h.Jobs.ByPriceAndType).Methods("GET")
	jobs.HandleFunc("/byDateRange", h.Jobs.ByDateRange).Methods("GET")
	jobs.HandleFunc("/by-user", h.Jobs.ByApplicant).Methods("GET")
	jobs.HandleFunc("/{id}", h.Jobs.Get).Methods("GET")
	jobs.HandleFunc("/{id}", h.Jobs.Delete).Methods("DELETE")

	// Application endpoints
	apps := r.PathPrefix("/applications").Subrouter()
	apps.Use(auth)
	apps.HandleFunc("", h.Applications.Create).Methods("POST")
	apps.HandleFunc("", h.Applications.List).Methods("GET")
	apps.HandleFunc("/status/{status}", h.Applications.ByStatus).Methods("GET")
	apps.HandleFunc("/job/{jobId}", h.Applications.ByJob).Methods("GET")
	apps.HandleFunc("/byApplicant/{id}", h.Applications.ByApplicant).Methods("GET")
	apps.HandleFunc("/byEmployer/{id}", h.Applications.ByEmployer).Methods("GET")
	apps.HandleFunc("/{id}", h.Applications.Get).Methods("GET")
	apps.HandleFunc("/{id}/status", h.Applications.UpdateStatus).Methods("PATCH")
	apps.HandleFunc("/{id}", h.Applications.Delete).Methods("DELETE")

	// Resume endpoints
	resumes := r.PathPrefix("/resumes").Subrouter()
	resumes.Use(auth)
	resumes.HandleFunc("", h.Resumes.Create).Methods("POST")
	resumes.HandleFunc("/user/{userId}", h.Resumes.GetByUser).Methods("GET")
	resumes.HandleFunc("/{id}", h.Resumes.Get).Methods("GET")
	resumes.HandleFunc("/{id}", h.Resumes.Update).Methods("PUT")
	resumes.HandleFunc("/{id}", h.Resumes.Delete).Methods("DELETE")

	// Chat endpoints
	chat := r.PathPrefix("/chat").Subrouter()
	chat.Use(auth)
	chat.HandleFunc("/send", h.Chat.SendMessage).Methods("POST")
	chat.HandleFunc("/conversations", h.Chat.ListConversations).Methods("GET")
	chat.HandleFunc("/messages/{conversationId}", h.Chat.ListMessages).Methods("GET")
	chat.HandleFunc("/conversation/user/{otherUserId}", h.Chat.GetConversationWithUser).Methods("GET")
	chat.HandleFunc("/debug/all", h.Chat.DumpAll).Methods("GET")

	// Notification endpoints
	notifs := r.PathPrefix("/notifications").Subrouter()
	notifs.Use(auth)
	notifs.HandleFunc("", h.Notifications.List).Methods("GET")
	notifs.HandleFunc("/{id}/read", h.Notifications.MarkRead).Methods("PUT")

	return r
}

package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/qri-io/jsonschema"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/wijdennerhouma/App-JobConnect/internal/models"
	"github.com/wijdennerhouma/App-JobConnect/pkg/repository"
)

// signupSchemaJSON is the shape every signup payload must satisfy before
// any store round trip happens.
const signupSchemaJSON = `{
	"type": "object",
	"required": ["user"],
	"properties": {
		"user": {
			"type": "object",
			"required": ["name", "email", "password", "role"],
			"properties": {
				"name": {"type": "string", "minLength": 1},
				"email": {"type": "string", "minLength": 3},
				"password": {"type": "string", "minLength": 6},
				"role": {"type": "string", "enum": ["employer", "worker"]}
			}
		}
	}
}`

var signupSchema = mustSchema(signupSchemaJSON)

func mustSchema(src string) *jsonschema.Schema {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(src), rs); err != nil {
		panic(fmt.Sprintf("invalid embedded schema: %v", err))
	}
	return rs
}

type AuthHandler struct {
	userRepo      repository.UserRepo
	jobRepo       repository.JobRepo
	resumeRepo    repository.ResumeRepo
	jwtSecret     string
	tokenDuration time.Duration
}

// NewAuthHandler creates a new AuthHandler with required dependencies.
func NewAuthHandler(ur repository.UserRepo, jr repository.JobRepo, rr repository.ResumeRepo, jwtSecret string, tokenDuration time.Duration) *AuthHandler {
	return &AuthHandler{userRepo: ur, jobRepo: jr, resumeRepo: rr, jwtSecret: jwtSecret, tokenDuration: tokenDuration}
}

type signupUserPayload struct {
	Name        string `json:"name"`
	FirstName   string `json:"firstName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Country     string `json:"country"`
	PostalCode  string `json:"postalCode"`
	Bio         string `json:"bio"`
	Role        string `json:"role"`
}

type signupRequest struct {
	User   signupUserPayload `json:"user"`
	Resume *resumePayload    `json:"resume,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
	Role   string `json:"role"`

	IsTwoFactorEnabled *bool `json:"isTwoFactorEnabled,omitempty"`
}

func (h *AuthHandler) signToken(userID primitive.ObjectID, role string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   userID.Hex(),
		"role": role,
		"exp":  time.Now().Add(h.tokenDuration).Unix(),
	})

	return token.SignedString([]byte(h.jwtSecret))
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	keyErrs, err := signupSchema.ValidateBytes(ctx, body)
	if err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if len(keyErrs) > 0 {
		http.Error(w, keyErrs[0].Message, http.StatusBadRequest)
		return
	}

	var req signupRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	existing, err := h.userRepo.GetUserByEmail(ctx, req.User.Email)
	if err != nil {
		http.Error(w, "Error checking email", http.StatusInternalServerError)
		return
	}
	if existing != nil {
		http.Error(w, "User with this email already exists", http.StatusConflict)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.User.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Error hashing password", http.StatusInternalServerError)
		return
	}

	user := models.User{
		Name:            req.User.Name,
		FirstName:       req.User.FirstName,
		Email:           req.User.Email,
		Password:        string(hash),
		PhoneNumber:     req.User.PhoneNumber,
		Address:         req.User.Address,
		City:            req.User.City,
		Country:         req.User.Country,
		PostalCode:      req.User.PostalCode,
		Bio:             req.User.Bio,
		Role:            req.User.Role,
		SavedJobs:       []primitive.ObjectID{},
		IsPublicProfile: true,
	}

	userID, err := h.userRepo.CreateUser(ctx, &user)
	if err != nil {
		http.Error(w, "Error creating user", http.StatusInternalServerError)
		return
	}

	// Workers get their resume created alongside the account.
	if req.User.Role == models.RoleWorker && req.Resume != nil {
		resume, err := buildResume(ctx, h.resumeRepo, *req.Resume, userID)
		if err != nil {
			http.Error(w, "Error creating resume", http.StatusInternalServerError)
			return
		}
		user.ID = userID
		user.ResumeID = &resume.ID
		if err := h.userRepo.UpdateUser(ctx, &user); err != nil {
			http.Error(w, "Error linking resume", http.StatusInternalServerError)
			return
		}
	}

	tokenStr, err := h.signToken(userID, req.User.Role)
	if err != nil {
		http.Error(w, "Error signing token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, authResponse{Token: tokenStr, UserID: userID.Hex(), Role: req.User.Role}, http.StatusCreated)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, "Missing fields", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	user, err := h.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		http.Error(w, "Error looking up user", http.StatusInternalServerError)
		return
	}
	if user == nil {
		http.Error(w, "Account with this email does not exist", http.StatusNotFound)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		http.Error(w, "Incorrect password", http.StatusUnauthorized)
		return
	}

	tokenStr, err := h.signToken(user.ID, user.Role)
	if err != nil {
		http.Error(w, "Error signing token", http.StatusInternalServerError)
		return
	}

	twoFA := user.IsTwoFactorEnabled
	writeJSON(w, authResponse{
		Token:              tokenStr,
		UserID:             user.ID.Hex(),
		Role:               user.Role,
		IsTwoFactorEnabled: &twoFA,
	}, http.StatusOK)
}

func (h *AuthHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	user, err := h.userRepo.GetUserByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Error looking up user", http.StatusInternalServerError)
		return
	}
	if user == nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	writeJSON(w, user, http.StatusOK)
}

// updateUserRequest carries the mutable profile fields. The role and
// email stay fixed after signup.
type updateUserRequest struct {
	Name            *string `json:"name,omitempty"`
	FirstName       *string `json:"firstName,omitempty"`
	PhoneNumber     *string `json:"phoneNumber,omitempty"`
	Avatar          *string `json:"avatar,omitempty"`
	CinOrPassport   *string `json:"cinOrPassport,omitempty"`
	IdentityPic     *string `json:"identityPic,omitempty"`
	Address         *string `json:"address,omitempty"`
	City            *string `json:"city,omitempty"`
	Country         *string `json:"country,omitempty"`
	PostalCode      *string `json:"postalCode,omitempty"`
	Bio             *string `json:"bio,omitempty"`
	IsPublicProfile *bool   `json:"isPublicProfile,omitempty"`
	ShowEmail       *bool   `json:"showEmail,omitempty"`
	ShowPhoneNumber *bool   `json:"showPhoneNumber,omitempty"`
	FCMToken        *string `json:"fcmToken,omitempty"`
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	user, err := h.userRepo.GetUserByID(ctx, id)
	if err != nil {
		http.Error(w, "Error looking up user", http.StatusInternalServerError)
		return
	}
	if user == nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	applyString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	applyString(&user.Name, req.Name)
	applyString(&user.FirstName, req.FirstName)
	applyString(&user.PhoneNumber, req.PhoneNumber)
	applyString(&user.Avatar, req.Avatar)
	applyString(&user.CinOrPassport, req.CinOrPassport)
	applyString(&user.IdentityPic, req.IdentityPic)
	applyString(&user.Address, req.Address)
	applyString(&user.City, req.City)
	applyString(&user.Country, req.Country)
	applyString(&user.PostalCode, req.PostalCode)
	applyString(&user.Bio, req.Bio)
	applyString(&user.FCMToken, req.FCMToken)
	if req.IsPublicProfile != nil {
		user.IsPublicProfile = *req.IsPublicProfile
	}
	if req.ShowEmail != nil {
		user.ShowEmail = *req.ShowEmail
	}
	if req.ShowPhoneNumber != nil {
		user.ShowPhoneNumber = *req.ShowPhoneNumber
	}

	if err := h.userRepo.UpdateUser(ctx, user); err != nil {
		http.Error(w, "Error updating user", http.StatusInternalServerError)
		return
	}

	writeJSON(w, user, http.StatusOK)
}

func (h *AuthHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	user, err := h.userRepo.GetUserByID(ctx, id)
	if err != nil {
		http.Error(w, "Error looking up user", http.StatusInternalServerError)
		return
	}
	if user == nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	if err := h.userRepo.DeleteUser(ctx, id); err != nil {
		http.Error(w, "Error deleting user", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeJSON(w, []models.User{}, http.StatusOK)
		return
	}

	users, err := h.userRepo.SearchUsers(r.Context(), query)
	if err != nil {
		http.Error(w, "Error searching users", http.StatusInternalServerError)
		return
	}
	if users == nil {
		users = []models.User{}
	}

	writeJSON(w, users, http.StatusOK)
}

func (h *AuthHandler) GetSavedJobs(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	user, err := h.userRepo.GetUserByID(ctx, id)
	if err != nil {
		http.Error(w, "Error looking up user", http.StatusInternalServerError)
		return
	}
	if user == nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	jobs, err := h.jobRepo.ListJobsByIDs(ctx, user.SavedJobs)
	if err != nil {
		http.Error(w, "Error loading saved jobs", http.StatusInternalServerError)
		return
	}
	if jobs == nil {
		jobs = []models.Job{}
	}

	writeJSON(w, jobs, http.StatusOK)
}

type toggleSavedJobResponse struct {
	Saved     bool                 `json:"saved"`
	SavedJobs []primitive.ObjectID `json:"savedJobs"`
}

func (h *AuthHandler) ToggleSavedJob(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}
	jobID, err := pathID(r, "jobId")
	if err != nil {
		http.Error(w, "invalid job id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	user, err := h.userRepo.GetUserByID(ctx, id)
	if err != nil {
		http.Error(w, "Error looking up user", http.StatusInternalServerError)
		return
	}
	if user == nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	saved := false
	idx := -1
	for i, sj := range user.SavedJobs {
		if sj == jobID {
			idx = i
			break
		}
	}
	if idx >= 0 {
		user.SavedJobs = append(user.SavedJobs[:idx], user.SavedJobs[idx+1:]...)
	} else {
		user.SavedJobs = append(user.SavedJobs, jobID)
		saved = true
	}

	if err := h.userRepo.UpdateUser(ctx, user); err != nil {
		http.Error(w, "Error updating user", http.StatusInternalServerError)
		return
	}

	writeJSON(w, toggleSavedJobResponse{Saved: saved, SavedJobs: user.SavedJobs}, http.StatusOK)
}

func (h *AuthHandler) ToggleTwoFactor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	var req struct {
		Enable bool `json:"enable"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	user, err := h.userRepo.GetUserByID(ctx, id)
	if err != nil {
		http.Error(w, "Error looking up user", http.StatusInternalServerError)
		return
	}
	if user == nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	user.IsTwoFactorEnabled = req.Enable
	if err := h.userRepo.UpdateUser(ctx, user); err != nil {
		http.Error(w, "Error updating user", http.StatusInternalServerError)
		return
	}

	writeJSON(w, user, http.StatusOK)
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	var req struct {
		CurrentPass string `json:"currentPass"`
		NewPass     string `json:"newPass"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.CurrentPass == "" || req.NewPass == "" {
		http.Error(w, "Current and new passwords are required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	user, err := h.userRepo.GetUserByID(ctx, id)
	if err != nil {
		http.Error(w, "Error looking up user", http.StatusInternalServerError)
		return
	}
	if user == nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPass)) != nil {
		http.Error(w, "Current password is incorrect", http.StatusUnauthorized)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPass), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Error hashing password", http.StatusInternalServerError)
		return
	}

	user.Password = string(hash)
	if err := h.userRepo.UpdateUser(ctx, user); err != nil {
		http.Error(w, "Error updating user", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{"message": "password changed"}, http.StatusOK)
}

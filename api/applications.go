package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wijdennerhouma/App-JobConnect/internal/models"
	"github.com/wijdennerhouma/App-JobConnect/internal/notify"
	"github.com/wijdennerhouma/App-JobConnect/pkg/repository"
)

type ApplicationsHandler struct {
	appRepo  repository.ApplicationRepo
	jobRepo  repository.JobRepo
	userRepo repository.UserRepo
	notifier *notify.Service
}

// NewApplicationsHandler creates a new ApplicationsHandler with required dependencies.
func NewApplicationsHandler(ar repository.ApplicationRepo, jr repository.JobRepo, ur repository.UserRepo, n *notify.Service) *ApplicationsHandler {
	return &ApplicationsHandler{appRepo: ar, jobRepo: jr, userRepo: ur, notifier: n}
}

// applicationView is the joined shape all application reads return: the
// raw record plus the job and both parties resolved.
type applicationView struct {
	ID          primitive.ObjectID `json:"id"`
	Status      string             `json:"status"`
	CoverLetter string             `json:"coverLetter,omitempty"`
	Skills      []string           `json:"skills"`
	CreatedAt   time.Time          `json:"createdAt"`
	Job         *models.Job        `json:"job"`
	Applicant   *models.User       `json:"applicant"`
	Employer    *models.User       `json:"employer"`
}

// resolveApplication joins one application with its job and users. The
// second return reports whether every reference resolved; list handlers
// drop incomplete rows while single reads turn them into 404s.
func (h *ApplicationsHandler) resolveApplication(r *http.Request, app *models.Application) (*applicationView, bool, error) {
	ctx := r.Context()

	job, err := h.jobRepo.GetJobByID(ctx, app.JobID)
	if err != nil {
		return nil, false, err
	}
	applicant, err := h.userRepo.GetUserByID(ctx, app.ApplicantID)
	if err != nil {
		return nil, false, err
	}
	employer, err := h.userRepo.GetUserByID(ctx, app.EmployerID)
	if err != nil {
		return nil, false, err
	}

	skills := app.Skills
	if skills == nil {
		skills = []string{}
	}
	view := &applicationView{
		ID:          app.ID,
		Status:      app.Status,
		CoverLetter: app.CoverLetter,
		Skills:      skills,
		CreatedAt:   app.CreatedAt,
		Job:         job,
		Applicant:   applicant,
		Employer:    employer,
	}

	return view, job != nil && applicant != nil && employer != nil, nil
}

func (h *ApplicationsHandler) writeViews(w http.ResponseWriter, r *http.Request, apps []models.Application) {
	views := []applicationView{}
	for i := range apps {
		view, complete, err := h.resolveApplication(r, &apps[i])
		if err != nil {
			http.Error(w, "Error loading applications", http.StatusInternalServerError)
			return
		}
		if !complete {
			// Rows pointing at deleted jobs or accounts are dropped
			// from listings rather than failing the whole read.
			continue
		}
		views = append(views, *view)
	}

	writeJSON(w, views, http.StatusOK)
}

func (h *ApplicationsHandler) List(w http.ResponseWriter, r *http.Request) {
	apps, err := h.appRepo.ListApplications(r.Context())
	if err != nil {
		http.Error(w, "Error loading applications", http.StatusInternalServerError)
		return
	}
	h.writeViews(w, r, apps)
}

func (h *ApplicationsHandler) ByStatus(w http.ResponseWriter, r *http.Request) {
	status := mux.Vars(r)["status"]
	if !models.ValidStatus(status) {
		http.Error(w, "Invalid status", http.StatusBadRequest)
		return
	}

	apps, err := h.appRepo.ListApplicationsByStatus(r.Context(), status)
	if err != nil {
		http.Error(w, "Error loading applications", http.StatusInternalServerError)
		return
	}
	h.writeViews(w, r, apps)
}

func (h *ApplicationsHandler) ByJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathID(r, "jobId")
	if err != nil {
		http.Error(w, "invalid job id", http.StatusBadRequest)
		return
	}

	apps, err := h.appRepo.ListApplicationsByJob(r.Context(), jobID)
	if err != nil {
		http.Error(w, "Error loading applications", http.StatusInternalServerError)
		return
	}
	h.writeViews(w, r, apps)
}

func (h *ApplicationsHandler) ByApplicant(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	apps, err := h.appRepo.ListApplicationsByApplicant(r.Context(), userID)
	if err != nil {
		http.Error(w, "Error loading applications", http.StatusInternalServerError)
		return
	}
	h.writeViews(w, r, apps)
}

func (h *ApplicationsHandler) ByEmployer(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	apps, err := h.appRepo.ListApplicationsByEmployer(r.Context(), userID)
	if err != nil {
		http.Error(w, "Error loading applications", http.StatusInternalServerError)
		return
	}
	h.writeViews(w, r, apps)
}

func (h *ApplicationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid application id", http.StatusBadRequest)
		return
	}

	app, err := h.appRepo.GetApplicationByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Error loading application", http.StatusInternalServerError)
		return
	}
	if app == nil {
		http.Error(w, "Application not found", http.StatusNotFound)
		return
	}

	view, complete, err := h.resolveApplication(r, app)
	if err != nil {
		http.Error(w, "Error loading application", http.StatusInternalServerError)
		return
	}
	if !complete {
		http.Error(w, "Application not found", http.StatusNotFound)
		return
	}

	writeJSON(w, view, http.StatusOK)
}

type createApplicationRequest struct {
	JobID       string   `json:"jobId"`
	EmployerID  string   `json:"employerId"`
	CoverLetter string   `json:"coverLetter"`
	Skills      []string `json:"skills"`
}

func (h *ApplicationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	applicantID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req createApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	jobID, err := primitive.ObjectIDFromHex(req.JobID)
	if err != nil {
		http.Error(w, "invalid job id", http.StatusBadRequest)
		return
	}
	employerID, err := primitive.ObjectIDFromHex(req.EmployerID)
	if err != nil {
		http.Error(w, "invalid employer id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	skills := req.Skills
	if skills == nil {
		skills = []string{}
	}
	app := models.Application{
		JobID:       jobID,
		ApplicantID: applicantID,
		EmployerID:  employerID,
		Status:      models.StatusPending,
		CoverLetter: req.CoverLetter,
		Skills:      skills,
		CreatedAt:   time.Now().UTC(),
	}

	appID, err := h.appRepo.CreateApplication(ctx, &app)
	if err != nil {
		http.Error(w, "Error creating application", http.StatusInternalServerError)
		return
	}
	app.ID = appID

	job, err := h.jobRepo.GetJobByID(ctx, jobID)
	if err != nil {
		http.Error(w, "Error loading job", http.StatusInternalServerError)
		return
	}
	if job == nil {
		http.Error(w, "Job not found", http.StatusNotFound)
		return
	}

	if err := h.jobRepo.AppendApplicant(ctx, jobID, applicantID); err != nil {
		http.Error(w, "Error updating job", http.StatusInternalServerError)
		return
	}

	applicant, err := h.userRepo.GetUserByID(ctx, applicantID)
	if err == nil && applicant != nil {
		body := fmt.Sprintf("%s a postulé pour %s", applicant.Name, job.Title)
		if _, err := h.notifier.Send(ctx, job.EmployerID, "Nouvelle candidature", body, &appID, "application_new"); err != nil {
			logger.Error("application notification failed", "error", err, "application", appID.Hex())
		}
	}

	writeJSON(w, app, http.StatusCreated)
}

func (h *ApplicationsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid application id", http.StatusBadRequest)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if !models.ValidStatus(req.Status) {
		http.Error(w, "Invalid status", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	app, err := h.appRepo.GetApplicationByID(ctx, id)
	if err != nil {
		http.Error(w, "Error loading application", http.StatusInternalServerError)
		return
	}
	if app == nil {
		http.Error(w, "Application not found", http.StatusNotFound)
		return
	}

	if err := h.appRepo.SetApplicationStatus(ctx, id, req.Status); err != nil {
		http.Error(w, "Error updating application", http.StatusInternalServerError)
		return
	}
	app.Status = req.Status

	h.notifyStatusChange(r, app)

	writeJSON(w, app, http.StatusOK)
}

// notifyStatusChange tells the applicant about the new status. Delivery
// problems never fail the request.
func (h *ApplicationsHandler) notifyStatusChange(r *http.Request, app *models.Application) {
	ctx := r.Context()

	job, err := h.jobRepo.GetJobByID(ctx, app.JobID)
	if err != nil || job == nil {
		return
	}

	var title, body string
	switch app.Status {
	case models.StatusAccepted:
		title = "Félicitations !"
		body = fmt.Sprintf("Votre candidature pour %s a été acceptée.", job.Title)
	case models.StatusRejected:
		title = "Candidature refusée"
		body = fmt.Sprintf("Votre candidature pour %s n'a pas été retenue.", job.Title)
	default:
		title = "Mise à jour de candidature"
		body = fmt.Sprintf("Le statut de votre candidature pour %s a changé: %s", job.Title, app.Status)
	}

	if _, err := h.notifier.Send(ctx, app.ApplicantID, title, body, &app.ID, "application_status"); err != nil {
		logger.Error("status notification failed", "error", err, "application", app.ID.Hex())
	}
}

func (h *ApplicationsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid application id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	app, err := h.appRepo.GetApplicationByID(ctx, id)
	if err != nil {
		http.Error(w, "Error loading application", http.StatusInternalServerError)
		return
	}
	if app == nil {
		http.Error(w, "Application not found", http.StatusNotFound)
		return
	}

	if err := h.appRepo.DeleteApplication(ctx, id); err != nil {
		http.Error(w, "Error deleting application", http.StatusInternalServerError)
		return
	}

	writeJSON(w, app, http.StatusOK)
}

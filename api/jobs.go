package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wijdennerhouma/App-JobConnect/internal/models"
	"github.com/wijdennerhouma/App-JobConnect/pkg/repository"
)

type JobsHandler struct {
	jobRepo repository.JobRepo
}

// NewJobsHandler creates a new JobsHandler with required dependencies.
func NewJobsHandler(jr repository.JobRepo) *JobsHandler {
	return &JobsHandler{jobRepo: jr}
}

type createJobRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	Duration    string  `json:"duration"`
	Contract    string  `json:"contract"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	WorkHours   int     `json:"workHours"`
	Price       float64 `json:"price"`
	PricingType string  `json:"pricingType"`
	Address     string  `json:"address"`
}

func (h *JobsHandler) Create(w http.ResponseWriter, r *http.Request) {
	employerID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req createJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Title == "" || req.Description == "" {
		http.Error(w, "Title and description are required", http.StatusBadRequest)
		return
	}
	if req.Price <= 0 {
		http.Error(w, "Price must be positive", http.StatusBadRequest)
		return
	}
	if req.PricingType != models.PricingPerHour && req.PricingType != models.PricingPerDay {
		http.Error(w, "Invalid pricing type", http.StatusBadRequest)
		return
	}

	now := time.Now().UTC()
	job := models.Job{
		Title:        req.Title,
		Description:  req.Description,
		EmployerID:   employerID,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Duration:     req.Duration,
		Contract:     req.Contract,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		WorkHours:    req.WorkHours,
		Price:        req.Price,
		PricingType:  req.PricingType,
		Address:      req.Address,
		ApplicantIDs: []primitive.ObjectID{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	id, err := h.jobRepo.CreateJob(r.Context(), &job)
	if err != nil {
		http.Error(w, "Error creating job", http.StatusInternalServerError)
		return
	}
	job.ID = id

	writeJSON(w, job, http.StatusCreated)
}

func (h *JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobRepo.ListJobs(r.Context())
	if err != nil {
		http.Error(w, "Error loading jobs", http.StatusInternalServerError)
		return
	}

	writeJobs(w, jobs)
}

func (h *JobsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid job id", http.StatusBadRequest)
		return
	}

	job, err := h.jobRepo.GetJobByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Error loading job", http.StatusInternalServerError)
		return
	}
	if job == nil {
		http.Error(w, "Job not found", http.StatusNotFound)
		return
	}

	writeJSON(w, job, http.StatusOK)
}

func (h *JobsHandler) ByCity(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	if city == "" {
		http.Error(w, "city is required", http.StatusBadRequest)
		return
	}

	jobs, err := h.jobRepo.ListJobsByCity(r.Context(), city)
	if err != nil {
		http.Error(w, "Error loading jobs", http.StatusInternalServerError)
		return
	}

	writeJobs(w, jobs)
}

func (h *JobsHandler) ByStartDate(w http.ResponseWriter, r *http.Request) {
	startDate := r.URL.Query().Get("startDate")
	if startDate == "" {
		http.Error(w, "startDate is required", http.StatusBadRequest)
		return
	}

	jobs, err := h.jobRepo.ListJobsByStartDate(r.Context(), startDate)
	if err != nil {
		http.Error(w, "Error loading jobs", http.StatusInternalServerError)
		return
	}

	writeJobs(w, jobs)
}

func (h *JobsHandler) ByPriceAndType(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	minPrice, err := strconv.ParseFloat(q.Get("minPrice"), 64)
	if err != nil {
		http.Error(w, "invalid minPrice", http.StatusBadRequest)
		return
	}
	maxPrice, err := strconv.ParseFloat(q.Get("maxPrice"), 64)
	if err != nil {
		http.Error(w, "invalid maxPrice", http.StatusBadRequest)
		return
	}
	pricingType := q.Get("pricingType")
	if pricingType != models.PricingPerHour && pricingType != models.PricingPerDay {
		http.Error(w, "Invalid pricing type", http.StatusBadRequest)
		return
	}

	jobs, err := h.jobRepo.ListJobsByPriceAndType(r.Context(), minPrice, maxPrice, pricingType)
	if err != nil {
		http.Error(w, "Error loading jobs", http.StatusInternalServerError)
		return
	}

	writeJobs(w, jobs)
}

func (h *JobsHandler) ByDateRange(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start := q.Get("startDate")
	end := q.Get("endDate")
	if start == "" || end == "" {
		http.Error(w, "startDate and endDate are required", http.StatusBadRequest)
		return
	}

	jobs, err := h.jobRepo.ListJobsByDateRange(r.Context(), start, end)
	if err != nil {
		http.Error(w, "Error loading jobs", http.StatusInternalServerError)
		return
	}

	writeJobs(w, jobs)
}

func (h *JobsHandler) ByApplicant(w http.ResponseWriter, r *http.Request) {
	userID, err := primitive.ObjectIDFromHex(r.URL.Query().Get("userID"))
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	jobs, err := h.jobRepo.ListJobsByApplicant(r.Context(), userID)
	if err != nil {
		http.Error(w, "Error loading jobs", http.StatusInternalServerError)
		return
	}

	writeJobs(w, jobs)
}

func (h *JobsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid job id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	job, err := h.jobRepo.GetJobByID(ctx, id)
	if err != nil {
		http.Error(w, "Error loading job", http.StatusInternalServerError)
		return
	}
	if job == nil {
		http.Error(w, "Job not found", http.StatusNotFound)
		return
	}

	if err := h.jobRepo.DeleteJob(ctx, id); err != nil {
		http.Error(w, "Error deleting job", http.StatusInternalServerError)
		return
	}

	writeJSON(w, job, http.StatusOK)
}

func writeJobs(w http.ResponseWriter, jobs []models.Job) {
	if jobs == nil {
		jobs = []models.Job{}
	}
	writeJSON(w, jobs, http.StatusOK)
}

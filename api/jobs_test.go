package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/wijdennerhouma/App-JobConnect/internal/models"
)

func TestCreateJob(t *testing.T) {
	env := newTestEnv(t)
	employer := env.addUser(t, "Acme", "acme@example.com", models.RoleEmployer, "secret123")
	token := env.token(t, employer.ID, employer.Role)

	tests := []struct {
		name       string
		body       map[string]any
		wantStatus int
	}{
		{
			name: "valid job",
			body: map[string]any{
				"title":       "Painter",
				"description": "paint walls",
				"price":       20.5,
				"pricingType": models.PricingPerHour,
				"address":     "Tunis",
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "missing title",
			body: map[string]any{
				"description": "paint walls",
				"price":       20,
				"pricingType": models.PricingPerHour,
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "non-positive price",
			body: map[string]any{
				"title":       "Painter",
				"description": "paint walls",
				"price":       0,
				"pricingType": models.PricingPerHour,
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "bad pricing type",
			body: map[string]any{
				"title":       "Painter",
				"description": "paint walls",
				"price":       20,
				"pricingType": "per-week",
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/job/create", token, tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d, body %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantStatus != http.StatusCreated {
				return
			}

			job := decodeBody[models.Job](t, rec)
			if job.EmployerID != employer.ID {
				t.Fatalf("employerId = %s, want token subject %s", job.EmployerID.Hex(), employer.ID.Hex())
			}
			if job.ApplicantIDs == nil {
				t.Fatal("applicantIds not initialized")
			}
		})
	}
}

func TestJobSearches(t *testing.T) {
	env := newTestEnv(t)
	employer := env.addUser(t, "Acme", "acme@example.com", models.RoleEmployer, "secret123")
	token := env.token(t, employer.ID, employer.Role)

	mk := func(title, address, startDate string, price float64, pricingType string) *models.Job {
		j := env.addJob(t, employer.ID, title)
		j.Address = address
		j.StartDate = startDate
		j.Price = price
		j.PricingType = pricingType
		// The mock keeps pointers, mutation above is already visible.
		return j
	}
	mk("Painter", "Tunis Centre", "2026-09-01", 20, models.PricingPerHour)
	mk("Plumber", "Sfax", "2026-09-15", 150, models.PricingPerDay)
	mk("Electrician", "tunis nord", "2026-10-01", 30, models.PricingPerHour)

	tests := []struct {
		name      string
		path      string
		wantCount int
		wantCode  int
	}{
		{"by city case-insensitive", "/job/byCity?city=tunis", 2, http.StatusOK},
		{"by city no match", "/job/byCity?city=bizerte", 0, http.StatusOK},
		{"city missing", "/job/byCity", 0, http.StatusBadRequest},
		{"by start date", "/job/byStartDate?startDate=2026-09-15", 1, http.StatusOK},
		{"by price and type", "/job/byPriceAndType?minPrice=10&maxPrice=25&pricingType=per-hour", 1, http.StatusOK},
		{"price bad number", "/job/byPriceAndType?minPrice=abc&maxPrice=25&pricingType=per-hour", 0, http.StatusBadRequest},
		{"by date range", "/job/byDateRange?startDate=2026-09-01&endDate=2026-09-30", 2, http.StatusOK},
		{"all jobs", "/job", 3, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, tt.path, token, nil)
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d, body %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			if tt.wantCode != http.StatusOK {
				return
			}
			jobs := decodeBody[[]models.Job](t, rec)
			if len(jobs) != tt.wantCount {
				t.Fatalf("results = %d, want %d", len(jobs), tt.wantCount)
			}
		})
	}
}

func TestGetAndDeleteJob(t *testing.T) {
	env := newTestEnv(t)
	employer := env.addUser(t, "Acme", "acme@example.com", models.RoleEmployer, "secret123")
	token := env.token(t, employer.ID, employer.Role)
	job := env.addJob(t, employer.ID, "Painter")

	rec := env.do(t, http.MethodGet, "/job/"+job.ID.Hex(), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	rec = env.do(t, http.MethodDelete, "/job/"+job.ID.Hex(), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/job/"+job.ID.Hex(), token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestJobsByApplicant(t *testing.T) {
	env := newTestEnv(t)
	employer := env.addUser(t, "Acme", "acme@example.com", models.RoleEmployer, "secret123")
	worker := env.addUser(t, "Nadia", "nadia@example.com", models.RoleWorker, "secret123")
	job := env.addJob(t, employer.ID, "Painter")
	env.addJob(t, employer.ID, "Plumber")

	if err := env.store.AppendApplicant(context.Background(), job.ID, worker.ID); err != nil {
		t.Fatal(err)
	}

	token := env.token(t, worker.ID, worker.Role)
	rec := env.do(t, http.MethodGet, "/job/by-user?userID="+worker.ID.Hex(), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	jobs := decodeBody[[]models.Job](t, rec)
	if len(jobs) != 1 || jobs[0].Title != "Painter" {
		t.Fatalf("applied jobs = %+v, want the Painter job only", jobs)
	}
}

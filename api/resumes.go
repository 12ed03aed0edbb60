package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wijdennerhouma/App-JobConnect/internal/models"
	"github.com/wijdennerhouma/App-JobConnect/pkg/repository"
)

type ResumesHandler struct {
	resumeRepo repository.ResumeRepo
}

// NewResumesHandler creates a new ResumesHandler with required dependencies.
func NewResumesHandler(rr repository.ResumeRepo) *ResumesHandler {
	return &ResumesHandler{resumeRepo: rr}
}

// resumePayload is the write shape for resumes. Each section entry may
// be a bare hex id referencing an existing record, an object carrying
// an "id" (kept as-is), or an object without one (created fresh).
type resumePayload struct {
	UserID         string            `json:"userId"`
	File           string            `json:"file"`
	Education      []json.RawMessage `json:"education"`
	WorkExperience []json.RawMessage `json:"workExperience"`
	Skills         []json.RawMessage `json:"skills"`
	Certifications []json.RawMessage `json:"certifications"`
	Languages      []json.RawMessage `json:"languages"`
}

// resolveEntries turns a mixed section into id references, creating
// records for entries that have none. Malformed bare ids are skipped.
func resolveEntries(entries []json.RawMessage, create func(json.RawMessage) (primitive.ObjectID, error)) ([]primitive.ObjectID, error) {
	ids := []primitive.ObjectID{}
	for _, raw := range entries {
		var hex string
		if err := json.Unmarshal(raw, &hex); err == nil {
			if id, err := primitive.ObjectIDFromHex(hex); err == nil {
				ids = append(ids, id)
			}
			continue
		}

		var ref struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(raw, &ref); err != nil {
			return nil, fmt.Errorf("invalid resume entry: %w", err)
		}
		if ref.ID != "" {
			if id, err := primitive.ObjectIDFromHex(ref.ID); err == nil {
				ids = append(ids, id)
			}
			continue
		}

		id, err := create(raw)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// buildResume resolves every section of the payload and persists the
// resume document. Shared with worker signup.
func buildResume(ctx context.Context, repo repository.ResumeRepo, p resumePayload, userID primitive.ObjectID) (*models.Resume, error) {
	education, err := resolveEntries(p.Education, func(raw json.RawMessage) (primitive.ObjectID, error) {
		var e models.Education
		if err := json.Unmarshal(raw, &e); err != nil {
			return primitive.NilObjectID, err
		}
		return repo.CreateEducation(ctx, &e)
	})
	if err != nil {
		return nil, err
	}

	work, err := resolveEntries(p.WorkExperience, func(raw json.RawMessage) (primitive.ObjectID, error) {
		var we models.WorkExperience
		if err := json.Unmarshal(raw, &we); err != nil {
			return primitive.NilObjectID, err
		}
		return repo.CreateWorkExperience(ctx, &we)
	})
	if err != nil {
		return nil, err
	}

	skills, err := resolveEntries(p.Skills, func(raw json.RawMessage) (primitive.ObjectID, error) {
		var s models.Skill
		if err := json.Unmarshal(raw, &s); err != nil {
			return primitive.NilObjectID, err
		}
		return repo.CreateSkill(ctx, &s)
	})
	if err != nil {
		return nil, err
	}

	certs, err := resolveEntries(p.Certifications, func(raw json.RawMessage) (primitive.ObjectID, error) {
		var c models.Certification
		if err := json.Unmarshal(raw, &c); err != nil {
			return primitive.NilObjectID, err
		}
		return repo.CreateCertification(ctx, &c)
	})
	if err != nil {
		return nil, err
	}

	languages, err := resolveEntries(p.Languages, func(raw json.RawMessage) (primitive.ObjectID, error) {
		var l models.Language
		if err := json.Unmarshal(raw, &l); err != nil {
			return primitive.NilObjectID, err
		}
		return repo.CreateLanguage(ctx, &l)
	})
	if err != nil {
		return nil, err
	}

	resume := &models.Resume{
		UserID:         userID,
		File:           p.File,
		Education:      education,
		WorkExperience: work,
		Skills:         skills,
		Certifications: certs,
		Languages:      languages,
	}

	id, err := repo.CreateResume(ctx, resume)
	if err != nil {
		return nil, err
	}
	resume.ID = id

	return resume, nil
}

// populatedResume is the read shape: id lists replaced with the child
// documents they reference.
type populatedResume struct {
	ID             primitive.ObjectID      `json:"id"`
	UserID         primitive.ObjectID      `json:"userId"`
	File           string                  `json:"file,omitempty"`
	Education      []models.Education      `json:"education"`
	WorkExperience []models.WorkExperience `json:"workExperience"`
	Skills         []models.Skill          `json:"skills"`
	Certifications []models.Certification  `json:"certifications"`
	Languages      []models.Language       `json:"languages"`
}

func (h *ResumesHandler) populate(ctx context.Context, res *models.Resume) (*populatedResume, error) {
	education, err := h.resumeRepo.ListEducationByIDs(ctx, res.Education)
	if err != nil {
		return nil, err
	}
	work, err := h.resumeRepo.ListWorkExperienceByIDs(ctx, res.WorkExperience)
	if err != nil {
		return nil, err
	}
	skills, err := h.resumeRepo.ListSkillsByIDs(ctx, res.Skills)
	if err != nil {
		return nil, err
	}
	certs, err := h.resumeRepo.ListCertificationsByIDs(ctx, res.Certifications)
	if err != nil {
		return nil, err
	}
	languages, err := h.resumeRepo.ListLanguagesByIDs(ctx, res.Languages)
	if err != nil {
		return nil, err
	}

	return &populatedResume{
		ID:             res.ID,
		UserID:         res.UserID,
		File:           res.File,
		Education:      education,
		WorkExperience: work,
		Skills:         skills,
		Certifications: certs,
		Languages:      languages,
	}, nil
}

func (h *ResumesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p resumePayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	userID := primitive.NilObjectID
	if p.UserID != "" {
		var err error
		userID, err = primitive.ObjectIDFromHex(p.UserID)
		if err != nil {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}
	}

	resume, err := buildResume(r.Context(), h.resumeRepo, p, userID)
	if err != nil {
		http.Error(w, "Error creating resume", http.StatusInternalServerError)
		return
	}

	writeJSON(w, resume, http.StatusCreated)
}

func (h *ResumesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid resume id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	resume, err := h.resumeRepo.GetResumeByID(ctx, id)
	if err != nil {
		http.Error(w, "Error loading resume", http.StatusInternalServerError)
		return
	}
	if resume == nil {
		http.Error(w, "Resume not found", http.StatusNotFound)
		return
	}

	view, err := h.populate(ctx, resume)
	if err != nil {
		http.Error(w, "Error loading resume", http.StatusInternalServerError)
		return
	}

	writeJSON(w, view, http.StatusOK)
}

func (h *ResumesHandler) GetByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	resume, err := h.resumeRepo.GetResumeByUser(ctx, userID)
	if err != nil {
		http.Error(w, "Error loading resume", http.StatusInternalServerError)
		return
	}
	if resume == nil {
		http.Error(w, "Resume not found", http.StatusNotFound)
		return
	}

	view, err := h.populate(ctx, resume)
	if err != nil {
		http.Error(w, "Error loading resume", http.StatusInternalServerError)
		return
	}

	writeJSON(w, view, http.StatusOK)
}

func (h *ResumesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid resume id", http.StatusBadRequest)
		return
	}

	var p resumePayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	existing, err := h.resumeRepo.GetResumeByID(ctx, id)
	if err != nil {
		http.Error(w, "Error loading resume", http.StatusInternalServerError)
		return
	}
	if existing == nil {
		http.Error(w, "Resume not found", http.StatusNotFound)
		return
	}

	userID := existing.UserID
	if p.UserID != "" {
		parsed, err := primitive.ObjectIDFromHex(p.UserID)
		if err != nil {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}
		userID = parsed
	}

	education, err := resolveEntries(p.Education, func(raw json.RawMessage) (primitive.ObjectID, error) {
		var e models.Education
		if err := json.Unmarshal(raw, &e); err != nil {
			return primitive.NilObjectID, err
		}
		e.ResumeID = id
		return h.resumeRepo.CreateEducation(ctx, &e)
	})
	if err != nil {
		http.Error(w, "Error updating resume", http.StatusInternalServerError)
		return
	}
	work, err := resolveEntries(p.WorkExperience, func(raw json.RawMessage) (primitive.ObjectID, error) {
		var we models.WorkExperience
		if err := json.Unmarshal(raw, &we); err != nil {
			return primitive.NilObjectID, err
		}
		we.ResumeID = id
		return h.resumeRepo.CreateWorkExperience(ctx, &we)
	})
	if err != nil {
		http.Error(w, "Error updating resume", http.StatusInternalServerError)
		return
	}
	skills, err := resolveEntries(p.Skills, func(raw json.RawMessage) (primitive.ObjectID, error) {
		var s models.Skill
		if err := json.Unmarshal(raw, &s); err != nil {
			return primitive.NilObjectID, err
		}
		s.ResumeID = id
		return h.resumeRepo.CreateSkill(ctx, &s)
	})
	if err != nil {
		http.Error(w, "Error updating resume", http.StatusInternalServerError)
		return
	}
	certs, err := resolveEntries(p.Certifications, func(raw json.RawMessage) (primitive.ObjectID, error) {
		var c models.Certification
		if err := json.Unmarshal(raw, &c); err != nil {
			return primitive.NilObjectID, err
		}
		c.ResumeID = id
		return h.resumeRepo.CreateCertification(ctx, &c)
	})
	if err != nil {
		http.Error(w, "Error updating resume", http.StatusInternalServerError)
		return
	}
	languages, err := resolveEntries(p.Languages, func(raw json.RawMessage) (primitive.ObjectID, error) {
		var l models.Language
		if err := json.Unmarshal(raw, &l); err != nil {
			return primitive.NilObjectID, err
		}
		l.ResumeID = id
		return h.resumeRepo.CreateLanguage(ctx, &l)
	})
	if err != nil {
		http.Error(w, "Error updating resume", http.StatusInternalServerError)
		return
	}

	file := existing.File
	if p.File != "" {
		file = p.File
	}

	updated := &models.Resume{
		ID:             id,
		UserID:         userID,
		File:           file,
		Education:      education,
		WorkExperience: work,
		Skills:         skills,
		Certifications: certs,
		Languages:      languages,
	}
	if err := h.resumeRepo.UpdateResume(ctx, updated); err != nil {
		http.Error(w, "Error updating resume", http.StatusInternalServerError)
		return
	}

	view, err := h.populate(ctx, updated)
	if err != nil {
		http.Error(w, "Error loading resume", http.StatusInternalServerError)
		return
	}

	writeJSON(w, view, http.StatusOK)
}

func (h *ResumesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid resume id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	resume, err := h.resumeRepo.GetResumeByID(ctx, id)
	if err != nil {
		http.Error(w, "Error loading resume", http.StatusInternalServerError)
		return
	}
	if resume == nil {
		http.Error(w, "Resume not found", http.StatusNotFound)
		return
	}

	// Child records stay behind; only the resume document is removed.
	if err := h.resumeRepo.DeleteResume(ctx, id); err != nil {
		http.Error(w, "Error deleting resume", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Package mock provides an in-memory store implementing the repository
// interfaces for handler tests.
package mock

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wijdennerhouma/App-JobConnect/internal/models"
	"github.com/wijdennerhouma/App-JobConnect/pkg/repository"
)

type Store struct {
	mu sync.Mutex

	Users          map[primitive.ObjectID]*models.User
	Jobs           map[primitive.ObjectID]*models.Job
	Applications   map[primitive.ObjectID]*models.Application
	Resumes        map[primitive.ObjectID]*models.Resume
	Education      map[primitive.ObjectID]*models.Education
	WorkExperience map[primitive.ObjectID]*models.WorkExperience
	Skills         map[primitive.ObjectID]*models.Skill
	Certifications map[primitive.ObjectID]*models.Certification
	Languages      map[primitive.ObjectID]*models.Language
	Conversations  map[primitive.ObjectID]*models.Conversation
	Messages       map[primitive.ObjectID]*models.Message
	Notifications  map[primitive.ObjectID]*models.Notification

	// Error injection for failure-path tests.
	CreateUserErr         error
	CreateNotificationErr error
}

var _ repository.UserRepo = (*Store)(nil)
var _ repository.JobRepo = (*Store)(nil)
var _ repository.ApplicationRepo = (*Store)(nil)
var _ repository.ResumeRepo = (*Store)(nil)
var _ repository.ConversationRepo = (*Store)(nil)
var _ repository.MessageRepo = (*Store)(nil)
var _ repository.NotificationRepo = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		Users:          map[primitive.ObjectID]*models.User{},
		Jobs:           map[primitive.ObjectID]*models.Job{},
		Applications:   map[primitive.ObjectID]*models.Application{},
		Resumes:        map[primitive.ObjectID]*models.Resume{},
		Education:      map[primitive.ObjectID]*models.Education{},
		WorkExperience: map[primitive.ObjectID]*models.WorkExperience{},
		Skills:         map[primitive.ObjectID]*models.Skill{},
		Certifications: map[primitive.ObjectID]*models.Certification{},
		Languages:      map[primitive.ObjectID]*models.Language{},
		Conversations:  map[primitive.ObjectID]*models.Conversation{},
		Messages:       map[primitive.ObjectID]*models.Message{},
		Notifications:  map[primitive.ObjectID]*models.Notification{},
	}
}

// Users

func (s *Store) CreateUser(ctx context.Context, u *models.User) (primitive.ObjectID, error) {
	if s.CreateUserErr != nil {
		return primitive.NilObjectID, s.CreateUserErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.SavedJobs == nil {
		u.SavedJobs = []primitive.ObjectID{}
	}
	s.Users[u.ID] = u
	return u.ID, nil
}

func (s *Store) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Users[id], nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (s *Store) UpdateUser(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Users[u.ID] = u
	return nil
}

func (s *Store) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Users, id)
	return nil
}

func (s *Store) SearchUsers(ctx context.Context, query string) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.User{}
	q := strings.ToLower(query)
	for _, u := range s.Users {
		if u.IsPublicProfile && strings.Contains(strings.ToLower(u.Name), q) {
			out = append(out, *u)
		}
	}
	return out, nil
}

// Jobs

func (s *Store) CreateJob(ctx context.Context, j *models.Job) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if j.ID.IsZero() {
		j.ID = primitive.NewObjectID()
	}
	if j.ApplicantIDs == nil {
		j.ApplicantIDs = []primitive.ObjectID{}
	}
	now := time.Now().UTC()
	j.CreatedAt = now
	j.UpdatedAt = now
	s.Jobs[j.ID] = j
	return j.ID, nil
}

func (s *Store) GetJobByID(ctx context.Context, id primitive.ObjectID) (*models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Jobs[id], nil
}

func (s *Store) listJobs(match func(*models.Job) bool) []models.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Job{}
	for _, j := range s.Jobs {
		if match(j) {
			out = append(out, *j)
		}
	}
	return out
}

func (s *Store) ListJobs(ctx context.Context) ([]models.Job, error) {
	return s.listJobs(func(*models.Job) bool { return true }), nil
}

func (s *Store) ListJobsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Job, error) {
	want := map[primitive.ObjectID]bool{}
	for _, id := range ids {
		want[id] = true
	}
	return s.listJobs(func(j *models.Job) bool { return want[j.ID] }), nil
}

func (s *Store) ListJobsByCity(ctx context.Context, city string) ([]models.Job, error) {
	c := strings.ToLower(city)
	return s.listJobs(func(j *models.Job) bool {
		return strings.Contains(strings.ToLower(j.Address), c)
	}), nil
}

func (s *Store) ListJobsByStartDate(ctx context.Context, startDate string) ([]models.Job, error) {
	return s.listJobs(func(j *models.Job) bool { return j.StartDate == startDate }), nil
}

func (s *Store) ListJobsByPriceAndType(ctx context.Context, minPrice, maxPrice float64, pricingType string) ([]models.Job, error) {
	return s.listJobs(func(j *models.Job) bool {
		return j.Price >= minPrice && j.Price <= maxPrice && j.PricingType == pricingType
	}), nil
}

func (s *Store) ListJobsByDateRange(ctx context.Context, startDate, endDate string) ([]models.Job, error) {
	return s.listJobs(func(j *models.Job) bool {
		return j.StartDate >= startDate && j.EndDate <= endDate
	}), nil
}

func (s *Store) ListJobsByApplicant(ctx context.Context, userID primitive.ObjectID) ([]models.Job, error) {
	return s.listJobs(func(j *models.Job) bool {
		for _, id := range j.ApplicantIDs {
			if id == userID {
				return true
			}
		}
		return false
	}), nil
}

func (s *Store) AppendApplicant(ctx context.Context, jobID, userID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if j, ok := s.Jobs[jobID]; ok {
		j.ApplicantIDs = append(j.ApplicantIDs, userID)
		j.UpdatedAt = time.Now().UTC()
	}
	return nil
}

func (s *Store) DeleteJob(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Jobs, id)
	return nil
}

// Applications

func (s *Store) CreateApplication(ctx context.Context, a *models.Application) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	a.CreatedAt = time.Now().UTC()
	s.Applications[a.ID] = a
	return a.ID, nil
}

func (s *Store) GetApplicationByID(ctx context.Context, id primitive.ObjectID) (*models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Applications[id], nil
}

func (s *Store) listApplications(match func(*models.Application) bool) []models.Application {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Application{}
	for _, a := range s.Applications {
		if match(a) {
			out = append(out, *a)
		}
	}
	return out
}

func (s *Store) ListApplications(ctx context.Context) ([]models.Application, error) {
	return s.listApplications(func(*models.Application) bool { return true }), nil
}

func (s *Store) ListApplicationsByStatus(ctx context.Context, status string) ([]models.Application, error) {
	return s.listApplications(func(a *models.Application) bool { return a.Status == status }), nil
}

func (s *Store) ListApplicationsByJob(ctx context.Context, jobID primitive.ObjectID) ([]models.Application, error) {
	return s.listApplications(func(a *models.Application) bool { return a.JobID == jobID }), nil
}

func (s *Store) ListApplicationsByApplicant(ctx context.Context, applicantID primitive.ObjectID) ([]models.Application, error) {
	return s.listApplications(func(a *models.Application) bool { return a.ApplicantID == applicantID }), nil
}

func (s *Store) ListApplicationsByEmployer(ctx context.Context, employerID primitive.ObjectID) ([]models.Application, error) {
	return s.listApplications(func(a *models.Application) bool { return a.EmployerID == employerID }), nil
}

func (s *Store) SetApplicationStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.Applications[id]; ok {
		a.Status = status
	}
	return nil
}

func (s *Store) DeleteApplication(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Applications, id)
	return nil
}

// Resumes

func (s *Store) CreateResume(ctx context.Context, r *models.Resume) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	s.Resumes[r.ID] = r
	return r.ID, nil
}

func (s *Store) GetResumeByID(ctx context.Context, id primitive.ObjectID) (*models.Resume, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Resumes[id], nil
}

func (s *Store) GetResumeByUser(ctx context.Context, userID primitive.ObjectID) (*models.Resume, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.Resumes {
		if r.UserID == userID {
			return r, nil
		}
	}
	return nil, nil
}

func (s *Store) UpdateResume(ctx context.Context, r *models.Resume) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Resumes[r.ID] = r
	return nil
}

func (s *Store) DeleteResume(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Resumes, id)
	return nil
}

func (s *Store) CreateEducation(ctx context.Context, e *models.Education) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	s.Education[e.ID] = e
	return e.ID, nil
}

func (s *Store) CreateWorkExperience(ctx context.Context, w *models.WorkExperience) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w.ID.IsZero() {
		w.ID = primitive.NewObjectID()
	}
	s.WorkExperience[w.ID] = w
	return w.ID, nil
}

func (s *Store) CreateSkill(ctx context.Context, sk *models.Skill) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sk.ID.IsZero() {
		sk.ID = primitive.NewObjectID()
	}
	s.Skills[sk.ID] = sk
	return sk.ID, nil
}

func (s *Store) CreateCertification(ctx context.Context, c *models.Certification) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	s.Certifications[c.ID] = c
	return c.ID, nil
}

func (s *Store) CreateLanguage(ctx context.Context, l *models.Language) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l.ID.IsZero() {
		l.ID = primitive.NewObjectID()
	}
	s.Languages[l.ID] = l
	return l.ID, nil
}

func (s *Store) ListEducationByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Education, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Education{}
	for _, id := range ids {
		if e, ok := s.Education[id]; ok {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (s *Store) ListWorkExperienceByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.WorkExperience, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.WorkExperience{}
	for _, id := range ids {
		if w, ok := s.WorkExperience[id]; ok {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (s *Store) ListSkillsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Skill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Skill{}
	for _, id := range ids {
		if sk, ok := s.Skills[id]; ok {
			out = append(out, *sk)
		}
	}
	return out, nil
}

func (s *Store) ListCertificationsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Certification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Certification{}
	for _, id := range ids {
		if c, ok := s.Certifications[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *Store) ListLanguagesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Language, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Language{}
	for _, id := range ids {
		if l, ok := s.Languages[id]; ok {
			out = append(out, *l)
		}
	}
	return out, nil
}

// Conversations and messages

func (s *Store) CreateConversation(ctx context.Context, c *models.Conversation) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	s.Conversations[c.ID] = c
	return c.ID, nil
}

func (s *Store) GetConversationByID(ctx context.Context, id primitive.ObjectID) (*models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Conversations[id], nil
}

func (s *Store) GetConversationByPair(ctx context.Context, a, b primitive.ObjectID) (*models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.Conversations {
		if containsID(c.Participants, a) && containsID(c.Participants, b) {
			return c, nil
		}
	}
	return nil, nil
}

func (s *Store) SetLastMessage(ctx context.Context, id primitive.ObjectID, text string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.Conversations[id]; ok {
		c.LastMessage = text
		c.LastMessageDate = at
	}
	return nil
}

func (s *Store) ListConversationsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Conversation{}
	for _, c := range s.Conversations {
		if containsID(c.Participants, userID) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastMessageDate.After(out[j].LastMessageDate) })
	return out, nil
}

func (s *Store) ListAllConversations(ctx context.Context) ([]models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Conversation{}
	for _, c := range s.Conversations {
		out = append(out, *c)
	}
	return out, nil
}

func (s *Store) CreateMessage(ctx context.Context, m *models.Message) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	s.Messages[m.ID] = m
	return m.ID, nil
}

func (s *Store) ListMessagesByConversation(ctx context.Context, conversationID primitive.ObjectID) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Message{}
	for _, m := range s.Messages {
		if m.ConversationID == conversationID {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (s *Store) MarkMessagesRead(ctx context.Context, ids []primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		if m, ok := s.Messages[id]; ok {
			m.IsRead = true
		}
	}
	return nil
}

func (s *Store) ListAllMessages(ctx context.Context) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Message{}
	for _, m := range s.Messages {
		out = append(out, *m)
	}
	return out, nil
}

// Notifications

func (s *Store) CreateNotification(ctx context.Context, n *models.Notification) (primitive.ObjectID, error) {
	if s.CreateNotificationErr != nil {
		return primitive.NilObjectID, s.CreateNotificationErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	s.Notifications[n.ID] = n
	return n.ID, nil
}

func (s *Store) ListNotificationsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Notification{}
	for _, n := range s.Notifications {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) MarkNotificationRead(ctx context.Context, id primitive.ObjectID) (*models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.Notifications[id]
	if !ok {
		return nil, nil
	}
	n.IsRead = true
	return n, nil
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

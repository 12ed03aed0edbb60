package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wijdennerhouma/App-JobConnect/internal/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.
//
// Get methods return (nil, nil) when the document does not exist.

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) (primitive.ObjectID, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
	SearchUsers(ctx context.Context, query string) ([]models.User, error)
}

type JobRepo interface {
	CreateJob(ctx context.Context, j *models.Job) (primitive.ObjectID, error)
	GetJobByID(ctx context.Context, id primitive.ObjectID) (*models.Job, error)
	ListJobs(ctx context.Context) ([]models.Job, error)
	ListJobsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Job, error)
	ListJobsByCity(ctx context.Context, city string) ([]models.Job, error)
	ListJobsByStartDate(ctx context.Context, startDate string) ([]models.Job, error)
	ListJobsByPriceAndType(ctx context.Context, minPrice, maxPrice float64, pricingType string) ([]models.Job, error)
	ListJobsByDateRange(ctx context.Context, startDate, endDate string) ([]models.Job, error)
	ListJobsByApplicant(ctx context.Context, userID primitive.ObjectID) ([]models.Job, error)
	AppendApplicant(ctx context.Context, jobID, userID primitive.ObjectID) error
	DeleteJob(ctx context.Context, id primitive.ObjectID) error
}

type ApplicationRepo interface {
	CreateApplication(ctx context.Context, a *models.Application) (primitive.ObjectID, error)
	GetApplicationByID(ctx context.Context, id primitive.ObjectID) (*models.Application, error)
	ListApplications(ctx context.Context) ([]models.Application, error)
	ListApplicationsByStatus(ctx context.Context, status string) ([]models.Application, error)
	ListApplicationsByJob(ctx context.Context, jobID primitive.ObjectID) ([]models.Application, error)
	ListApplicationsByApplicant(ctx context.Context, applicantID primitive.ObjectID) ([]models.Application, error)
	ListApplicationsByEmployer(ctx context.Context, employerID primitive.ObjectID) ([]models.Application, error)
	SetApplicationStatus(ctx context.Context, id primitive.ObjectID, status string) error
	DeleteApplication(ctx context.Context, id primitive.ObjectID) error
}

type ResumeRepo interface {
	CreateResume(ctx context.Context, r *models.Resume) (primitive.ObjectID, error)
	GetResumeByID(ctx context.Context, id primitive.ObjectID) (*models.Resume, error)
	GetResumeByUser(ctx context.Context, userID primitive.ObjectID) (*models.Resume, error)
	UpdateResume(ctx context.Context, r *models.Resume) error
	DeleteResume(ctx context.Context, id primitive.ObjectID) error

	CreateEducation(ctx context.Context, e *models.Education) (primitive.ObjectID, error)
	CreateWorkExperience(ctx context.Context, w *models.WorkExperience) (primitive.ObjectID, error)
	CreateSkill(ctx context.Context, s *models.Skill) (primitive.ObjectID, error)
	CreateCertification(ctx context.Context, c *models.Certification) (primitive.ObjectID, error)
	CreateLanguage(ctx context.Context, l *models.Language) (primitive.ObjectID, error)

	ListEducationByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Education, error)
	ListWorkExperienceByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.WorkExperience, error)
	ListSkillsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Skill, error)
	ListCertificationsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Certification, error)
	ListLanguagesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Language, error)
}

type ConversationRepo interface {
	CreateConversation(ctx context.Context, c *models.Conversation) (primitive.ObjectID, error)
	GetConversationByID(ctx context.Context, id primitive.ObjectID) (*models.Conversation, error)
	// GetConversationByPair finds the conversation containing both
	// participants regardless of order.
	GetConversationByPair(ctx context.Context, a, b primitive.ObjectID) (*models.Conversation, error)
	SetLastMessage(ctx context.Context, id primitive.ObjectID, text string, at time.Time) error
	ListConversationsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Conversation, error)
	ListAllConversations(ctx context.Context) ([]models.Conversation, error)
}

type MessageRepo interface {
	CreateMessage(ctx context.Context, m *models.Message) (primitive.ObjectID, error)
	ListMessagesByConversation(ctx context.Context, conversationID primitive.ObjectID) ([]models.Message, error)
	MarkMessagesRead(ctx context.Context, ids []primitive.ObjectID) error
	ListAllMessages(ctx context.Context) ([]models.Message, error)
}

type NotificationRepo interface {
	CreateNotification(ctx context.Context, n *models.Notification) (primitive.ObjectID, error)
	ListNotificationsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, id primitive.ObjectID) (*models.Notification, error)
}

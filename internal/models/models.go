package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles.
const (
	RoleEmployer = "employer"
	RoleWorker   = "worker"
)

// Application statuses. Any status may be set from any other; the set
// itself is closed.
const (
	StatusPending        = "pending"
	StatusReviewed       = "reviewed"
	StatusAccepted       = "accepted"
	StatusRejected       = "rejected"
	StatusContractSigned = "contract_signed"
	StatusStarted        = "started"
	StatusFinished       = "finished"
)

// Job pricing kinds.
const (
	PricingPerHour = "per-hour"
	PricingPerDay  = "per-day"
)

// ValidStatus reports whether s is one of the known application statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusReviewed, StatusAccepted, StatusRejected,
		StatusContractSigned, StatusStarted, StatusFinished:
		return true
	}
	return false
}

type User struct {
	ID                 primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name               string               `json:"name" bson:"name"`
	FirstName          string               `json:"firstName,omitempty" bson:"firstName,omitempty"`
	Email              string               `json:"email" bson:"email"`
	Password           string               `json:"-" bson:"password"`
	PhoneNumber        string               `json:"phoneNumber,omitempty" bson:"phoneNumber,omitempty"`
	Avatar             string               `json:"avatar,omitempty" bson:"avatar,omitempty"`
	CinOrPassport      string               `json:"cinOrPassport,omitempty" bson:"cinOrPassport,omitempty"`
	IdentityPic        string               `json:"identityPic,omitempty" bson:"identityPic,omitempty"`
	Address            string               `json:"address,omitempty" bson:"address,omitempty"`
	City               string               `json:"city,omitempty" bson:"city,omitempty"`
	Country            string               `json:"country,omitempty" bson:"country,omitempty"`
	PostalCode         string               `json:"postalCode,omitempty" bson:"postalCode,omitempty"`
	Bio                string               `json:"bio,omitempty" bson:"bio,omitempty"`
	SavedJobs          []primitive.ObjectID `json:"savedJobs" bson:"savedJobs"`
	Role               string               `json:"role" bson:"role"`
	ResumeID           *primitive.ObjectID  `json:"resumeId,omitempty" bson:"resumeId,omitempty"`
	IsPublicProfile    bool                 `json:"isPublicProfile" bson:"isPublicProfile"`
	ShowEmail          bool                 `json:"showEmail" bson:"showEmail"`
	ShowPhoneNumber    bool                 `json:"showPhoneNumber" bson:"showPhoneNumber"`
	FCMToken           string               `json:"-" bson:"fcmToken,omitempty"`
	IsTwoFactorEnabled bool                 `json:"isTwoFactorEnabled" bson:"isTwoFactorEnabled"`
}

type Job struct {
	ID           primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Title        string               `json:"title" bson:"title"`
	Description  string               `json:"description" bson:"description"`
	StartTime    string               `json:"startTime" bson:"startTime"`
	EndTime      string               `json:"endTime" bson:"endTime"`
	Duration     string               `json:"duration" bson:"duration"`
	Contract     string               `json:"contract" bson:"contract"`
	EmployerID   primitive.ObjectID   `json:"employerId" bson:"employerId"`
	StartDate    string               `json:"startDate" bson:"startDate"`
	EndDate      string               `json:"endDate" bson:"endDate"`
	WorkHours    int                  `json:"workHours" bson:"workHours"`
	ApplicantIDs []primitive.ObjectID `json:"applicantIds" bson:"applicantIds"`
	Price        float64              `json:"price" bson:"price"`
	PricingType  string               `json:"pricingType" bson:"pricingType"`
	Address      string               `json:"address" bson:"address"`
	CreatedAt    time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt" bson:"updatedAt"`
}

type Application struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	JobID       primitive.ObjectID `json:"jobId" bson:"jobId"`
	ApplicantID primitive.ObjectID `json:"applicantId" bson:"applicantId"`
	EmployerID  primitive.ObjectID `json:"employerId" bson:"employerId"`
	Status      string             `json:"status" bson:"status"`
	CoverLetter string             `json:"coverLetter,omitempty" bson:"coverLetter,omitempty"`
	Skills      []string           `json:"skills,omitempty" bson:"skills,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
}

// Resume holds id references to its child records. Deleting a resume
// does not cascade to the children.
type Resume struct {
	ID             primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	UserID         primitive.ObjectID   `json:"userId" bson:"userId"`
	File           string               `json:"file,omitempty" bson:"file,omitempty"`
	Education      []primitive.ObjectID `json:"education" bson:"education"`
	WorkExperience []primitive.ObjectID `json:"workExperience" bson:"workExperience"`
	Skills         []primitive.ObjectID `json:"skills" bson:"skills"`
	Certifications []primitive.ObjectID `json:"certifications" bson:"certifications"`
	Languages      []primitive.ObjectID `json:"languages" bson:"languages"`
}

type Education struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	School    string             `json:"school,omitempty" bson:"school,omitempty"`
	Degree    string             `json:"degree,omitempty" bson:"degree,omitempty"`
	Field     string             `json:"field,omitempty" bson:"field,omitempty"`
	StartDate string             `json:"startDate,omitempty" bson:"startDate,omitempty"`
	EndDate   string             `json:"endDate,omitempty" bson:"endDate,omitempty"`
	ResumeID  primitive.ObjectID `json:"resumeId,omitempty" bson:"resumeId,omitempty"`
}

type WorkExperience struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	JobTitle    string             `json:"jobTitle,omitempty" bson:"jobTitle,omitempty"`
	Company     string             `json:"company,omitempty" bson:"company,omitempty"`
	StartDate   string             `json:"startDate,omitempty" bson:"startDate,omitempty"`
	EndDate     string             `json:"endDate,omitempty" bson:"endDate,omitempty"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	ResumeID    primitive.ObjectID `json:"resumeId,omitempty" bson:"resumeId,omitempty"`
}

type Skill struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name,omitempty" bson:"name,omitempty"`
	Proficiency string             `json:"proficiency,omitempty" bson:"proficiency,omitempty"`
	ResumeID    primitive.ObjectID `json:"resumeId,omitempty" bson:"resumeId,omitempty"`
}

type Certification struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name            string             `json:"name,omitempty" bson:"name,omitempty"`
	Issuer          string             `json:"issuer,omitempty" bson:"issuer,omitempty"`
	Date            string             `json:"date,omitempty" bson:"date,omitempty"`
	CredentialsLink string             `json:"credentialsLink,omitempty" bson:"credentialsLink,omitempty"`
	ResumeID        primitive.ObjectID `json:"resumeId,omitempty" bson:"resumeId,omitempty"`
}

type Language struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name,omitempty" bson:"name,omitempty"`
	Proficiency string             `json:"proficiency,omitempty" bson:"proficiency,omitempty"`
	ResumeID    primitive.ObjectID `json:"resumeId,omitempty" bson:"resumeId,omitempty"`
}

// Conversation is a two-participant chat thread keyed by the unordered
// participant pair.
type Conversation struct {
	ID              primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Participants    []primitive.ObjectID `json:"participants" bson:"participants"`
	LastMessage     string               `json:"lastMessage,omitempty" bson:"lastMessage,omitempty"`
	LastMessageDate time.Time            `json:"lastMessageDate" bson:"lastMessageDate"`
}

type Message struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Sender         primitive.ObjectID `json:"sender" bson:"sender"`
	Receiver       primitive.ObjectID `json:"receiver" bson:"receiver"`
	ConversationID primitive.ObjectID `json:"conversationId" bson:"conversationId"`
	Content        string             `json:"content" bson:"content"`
	IsRead         bool               `json:"isRead" bson:"isRead"`
	Timestamp      time.Time          `json:"timestamp" bson:"timestamp"`
}

type Notification struct {
	ID        primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID  `json:"userId" bson:"userId"`
	Title     string              `json:"title" bson:"title"`
	Body      string              `json:"body" bson:"body"`
	Type      string              `json:"type" bson:"type"`
	RelatedID *primitive.ObjectID `json:"relatedId,omitempty" bson:"relatedId,omitempty"`
	IsRead    bool                `json:"isRead" bson:"isRead"`
	CreatedAt time.Time           `json:"createdAt" bson:"createdAt"`
}

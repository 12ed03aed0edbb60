package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wijdennerhouma/App-JobConnect/internal/models"
)

const (
	resumesCollection         = "resumes"
	educationCollection       = "educations"
	workExperienceCollection  = "workexperiences"
	skillsCollection          = "skills"
	certificationsCollection  = "certifications"
	languagesCollection       = "languages"
)

func (s *Store) CreateResume(ctx context.Context, r *models.Resume) (primitive.ObjectID, error) {
	if r == nil {
		return primitive.NilObjectID, fmt.Errorf("resume is nil")
	}

	return s.insertOne(ctx, resumesCollection, r)
}

func (s *Store) GetResumeByID(ctx context.Context, id primitive.ObjectID) (*models.Resume, error) {
	return findOne[models.Resume](ctx, s, resumesCollection, bson.M{"_id": id})
}

func (s *Store) GetResumeByUser(ctx context.Context, userID primitive.ObjectID) (*models.Resume, error) {
	return findOne[models.Resume](ctx, s, resumesCollection, bson.M{"userId": userID})
}

func (s *Store) UpdateResume(ctx context.Context, r *models.Resume) error {
	if r == nil {
		return fmt.Errorf("resume is nil")
	}

	_, err := s.db.Collection(resumesCollection).ReplaceOne(ctx, bson.M{"_id": r.ID}, r)
	return err
}

// DeleteResume removes the resume record only. Child records are
// intentionally left in place.
func (s *Store) DeleteResume(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.db.Collection(resumesCollection).DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (s *Store) CreateEducation(ctx context.Context, e *models.Education) (primitive.ObjectID, error) {
	return s.insertOne(ctx, educationCollection, e)
}

func (s *Store) CreateWorkExperience(ctx context.Context, w *models.WorkExperience) (primitive.ObjectID, error) {
	return s.insertOne(ctx, workExperienceCollection, w)
}

func (s *Store) CreateSkill(ctx context.Context, sk *models.Skill) (primitive.ObjectID, error) {
	return s.insertOne(ctx, skillsCollection, sk)
}

func (s *Store) CreateCertification(ctx context.Context, c *models.Certification) (primitive.ObjectID, error) {
	return s.insertOne(ctx, certificationsCollection, c)
}

func (s *Store) CreateLanguage(ctx context.Context, l *models.Language) (primitive.ObjectID, error) {
	return s.insertOne(ctx, languagesCollection, l)
}

func (s *Store) ListEducationByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Education, error) {
	return findByIDs[models.Education](ctx, s, educationCollection, ids)
}

func (s *Store) ListWorkExperienceByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.WorkExperience, error) {
	return findByIDs[models.WorkExperience](ctx, s, workExperienceCollection, ids)
}

func (s *Store) ListSkillsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Skill, error) {
	return findByIDs[models.Skill](ctx, s, skillsCollection, ids)
}

func (s *Store) ListCertificationsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Certification, error) {
	return findByIDs[models.Certification](ctx, s, certificationsCollection, ids)
}

func (s *Store) ListLanguagesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Language, error) {
	return findByIDs[models.Language](ctx, s, languagesCollection, ids)
}

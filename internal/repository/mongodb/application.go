package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wijdennerhouma/App-JobConnect/internal/models"
)

const applicationsCollection = "applications"

func (s *Store) CreateApplication(ctx context.Context, a *models.Application) (primitive.ObjectID, error) {
	if a == nil {
		return primitive.NilObjectID, fmt.Errorf("application is nil")
	}
	a.CreatedAt = time.Now().UTC()

	return s.insertOne(ctx, applicationsCollection, a)
}

func (s *Store) GetApplicationByID(ctx context.Context, id primitive.ObjectID) (*models.Application, error) {
	return findOne[models.Application](ctx, s, applicationsCollection, bson.M{"_id": id})
}

func (s *Store) ListApplications(ctx context.Context) ([]models.Application, error) {
	return findAll[models.Application](ctx, s, applicationsCollection, bson.M{})
}

func (s *Store) ListApplicationsByStatus(ctx context.Context, status string) ([]models.Application, error) {
	return findAll[models.Application](ctx, s, applicationsCollection, bson.M{"status": status})
}

func (s *Store) ListApplicationsByJob(ctx context.Context, jobID primitive.ObjectID) ([]models.Application, error) {
	return findAll[models.Application](ctx, s, applicationsCollection, bson.M{"jobId": jobID})
}

func (s *Store) ListApplicationsByApplicant(ctx context.Context, applicantID primitive.ObjectID) ([]models.Application, error) {
	return findAll[models.Application](ctx, s, applicationsCollection, bson.M{"applicantId": applicantID})
}

func (s *Store) ListApplicationsByEmployer(ctx context.Context, employerID primitive.ObjectID) ([]models.Application, error) {
	return findAll[models.Application](ctx, s, applicationsCollection, bson.M{"employerId": employerID})
}

func (s *Store) SetApplicationStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	update := bson.M{"$set": bson.M{"status": status}}
	_, err := s.db.Collection(applicationsCollection).UpdateByID(ctx, id, update)
	return err
}

func (s *Store) DeleteApplication(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.db.Collection(applicationsCollection).DeleteOne(ctx, bson.M{"_id": id})
	return err
}

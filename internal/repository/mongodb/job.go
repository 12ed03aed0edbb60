package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wijdennerhouma/App-JobConnect/internal/models"
)

const jobsCollection = "jobs"

func (s *Store) CreateJob(ctx context.Context, j *models.Job) (primitive.ObjectID, error) {
	if j == nil {
		return primitive.NilObjectID, fmt.Errorf("job is nil")
	}
	if j.ApplicantIDs == nil {
		j.ApplicantIDs = []primitive.ObjectID{}
	}
	now := time.Now().UTC()
	j.CreatedAt = now
	j.UpdatedAt = now

	return s.insertOne(ctx, jobsCollection, j)
}

func (s *Store) GetJobByID(ctx context.Context, id primitive.ObjectID) (*models.Job, error) {
	return findOne[models.Job](ctx, s, jobsCollection, bson.M{"_id": id})
}

func (s *Store) ListJobs(ctx context.Context) ([]models.Job, error) {
	return findAll[models.Job](ctx, s, jobsCollection, bson.M{})
}

func (s *Store) ListJobsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Job, error) {
	return findByIDs[models.Job](ctx, s, jobsCollection, ids)
}

func (s *Store) ListJobsByCity(ctx context.Context, city string) ([]models.Job, error) {
	filter := bson.M{"address": primitive.Regex{Pattern: city, Options: "i"}}
	return findAll[models.Job](ctx, s, jobsCollection, filter)
}

func (s *Store) ListJobsByStartDate(ctx context.Context, startDate string) ([]models.Job, error) {
	return findAll[models.Job](ctx, s, jobsCollection, bson.M{"startDate": startDate})
}

func (s *Store) ListJobsByPriceAndType(ctx context.Context, minPrice, maxPrice float64, pricingType string) ([]models.Job, error) {
	filter := bson.M{
		"price":       bson.M{"$gte": minPrice, "$lte": maxPrice},
		"pricingType": pricingType,
	}

	return findAll[models.Job](ctx, s, jobsCollection, filter)
}

func (s *Store) ListJobsByDateRange(ctx context.Context, startDate, endDate string) ([]models.Job, error) {
	filter := bson.M{
		"startDate": bson.M{"$gte": startDate},
		"endDate":   bson.M{"$lte": endDate},
	}

	return findAll[models.Job](ctx, s, jobsCollection, filter)
}

func (s *Store) ListJobsByApplicant(ctx context.Context, userID primitive.ObjectID) ([]models.Job, error) {
	return findAll[models.Job](ctx, s, jobsCollection, bson.M{"applicantIds": userID})
}

// AppendApplicant pushes userID onto the job's applicant list. Duplicate
// entries are allowed; repeated applies append repeatedly.
func (s *Store) AppendApplicant(ctx context.Context, jobID, userID primitive.ObjectID) error {
	update := bson.M{
		"$push": bson.M{"applicantIds": userID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}

	_, err := s.db.Collection(jobsCollection).UpdateByID(ctx, jobID, update)
	return err
}

func (s *Store) DeleteJob(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.db.Collection(jobsCollection).DeleteOne(ctx, bson.M{"_id": id})
	return err
}

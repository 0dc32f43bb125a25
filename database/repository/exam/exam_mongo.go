package examRepo

import (
	"context"
	"fmt"
	"time"

	"visioncare/database"
	"visioncare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoExamRepo implements ExamRepository using MongoDB.
type MongoExamRepo struct {
	coll *mongo.Collection
}

// NewMongoExamRepo creates a new instance of ExamRepository using MongoDB.
func NewMongoExamRepo() ExamRepository {
	repo := &MongoExamRepo{coll: database.Collection("examenes")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create exam indexes: %v\n", err)
	}
	return repo
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

func (r *MongoExamRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "paciente_id", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoExamRepo) find(ctx context.Context, filter bson.M) ([]models.Exam, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "fecha", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve exams: %w", err)
	}
	defer cursor.Close(ctx)

	var exams []models.Exam
	for cursor.Next(ctx) {
		var e models.Exam
		if err := cursor.Decode(&e); err != nil {
			return nil, fmt.Errorf("failed to decode exam: %w", err)
		}
		exams = append(exams, e)
	}
	return exams, cursor.Err()
}

func (r *MongoExamRepo) GetAll(ctx context.Context) ([]models.Exam, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoExamRepo) GetByPatient(ctx context.Context, patientID string) ([]models.Exam, error) {
	return r.find(ctx, bson.M{"paciente_id": patientID})
}

func (r *MongoExamRepo) GetByID(ctx context.Context, id string) (*models.Exam, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var e models.Exam
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&e); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch exam with id %s: %w", id, err)
	}
	return &e, nil
}

func (r *MongoExamRepo) Create(ctx context.Context, exam *models.Exam) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	exam.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, exam); err != nil {
		return fmt.Errorf("failed to create exam: %w", err)
	}
	return nil
}

func (r *MongoExamRepo) UpdateFields(ctx context.Context, id string, fields bson.M) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update exam with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("exam with id %s not found", id)
	}
	return nil
}

func (r *MongoExamRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete exam with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("exam with id %s not found", id)
	}
	return nil
}

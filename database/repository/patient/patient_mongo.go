package patientRepo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"visioncare/database"
	"visioncare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPatientRepo implements PatientRepository using MongoDB.
type MongoPatientRepo struct {
	coll *mongo.Collection
}

// NewMongoPatientRepo creates a new instance of PatientRepository using MongoDB.
func NewMongoPatientRepo() PatientRepository {
	repo := &MongoPatientRepo{coll: database.Collection("pacientes")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create patient indexes: %v\n", err)
	}
	return repo
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

func (r *MongoPatientRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "usuario_id", Value: 1}}},
		{Keys: bson.D{{Key: "nombre", Value: 1}}},
		{Keys: bson.D{{Key: "documento", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoPatientRepo) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var p models.Patient
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch patient with id %s: %w", id, err)
	}
	return &p, nil
}

func (r *MongoPatientRepo) GetByUserID(ctx context.Context, userID string) (*models.Patient, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var p models.Patient
	if err := r.coll.FindOne(ctx, bson.M{"usuario_id": userID}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch patient for user %s: %w", userID, err)
	}
	return &p, nil
}

func (r *MongoPatientRepo) GetByIDs(ctx context.Context, ids []string) (map[string]models.Patient, error) {
	out := make(map[string]models.Patient, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve patients: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var p models.Patient
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode patient: %w", err)
		}
		out[p.ID] = p
	}
	return out, cursor.Err()
}

func (r *MongoPatientRepo) List(ctx context.Context, limit int) ([]models.Patient, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetLimit(int64(limit)).SetSort(bson.D{{Key: "nombre", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve patients: %w", err)
	}
	defer cursor.Close(ctx)

	var patients []models.Patient
	for cursor.Next(ctx) {
		var p models.Patient
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode patient: %w", err)
		}
		patients = append(patients, p)
	}
	return patients, cursor.Err()
}

func (r *MongoPatientRepo) searchField(ctx context.Context, field, q string, limit int) ([]models.Patient, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{field: bson.M{"$regex": regexp.QuoteMeta(q), "$options": "i"}}
	opts := options.Find().SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search patients by %s: %w", field, err)
	}
	defer cursor.Close(ctx)

	var patients []models.Patient
	for cursor.Next(ctx) {
		var p models.Patient
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode patient: %w", err)
		}
		patients = append(patients, p)
	}
	return patients, cursor.Err()
}

func (r *MongoPatientRepo) SearchByName(ctx context.Context, q string, limit int) ([]models.Patient, error) {
	return r.searchField(ctx, "nombre", q, limit)
}

func (r *MongoPatientRepo) SearchByDocument(ctx context.Context, q string, limit int) ([]models.Patient, error) {
	return r.searchField(ctx, "documento", q, limit)
}

func (r *MongoPatientRepo) Create(ctx context.Context, patient *models.Patient) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	patient.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, patient); err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *MongoPatientRepo) UpdateFields(ctx context.Context, id string, fields bson.M) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update patient with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("patient with id %s not found", id)
	}
	return nil
}

func (r *MongoPatientRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete patient with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("patient with id %s not found", id)
	}
	return nil
}

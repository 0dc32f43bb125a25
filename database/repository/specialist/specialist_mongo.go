package specialistRepo

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

// MongoSpecialistRepo implements SpecialistRepository using MongoDB.
type MongoSpecialistRepo struct {
	coll *mongo.Collection
}

// NewMongoSpecialistRepo creates a new instance of SpecialistRepository using MongoDB.
func NewMongoSpecialistRepo() SpecialistRepository {
	repo := &MongoSpecialistRepo{coll: database.Collection("especialistas")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create specialist indexes: %v\n", err)
	}
	return repo
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

func (r *MongoSpecialistRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "usuario_id", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoSpecialistRepo) GetByID(ctx context.Context, id string) (*models.Specialist, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var sp models.Specialist
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&sp); err != nil {
		return nil, fmt.Errorf("failed to fetch specialist with id %s: %w", id, err)
	}
	return &sp, nil
}

func (r *MongoSpecialistRepo) GetByUserID(ctx context.Context, userID string) (*models.Specialist, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	// Historical data occasionally holds more than one row per user; take
	// the first rather than failing the lookup.
	opts := options.FindOne().SetSort(bson.D{{Key: "id", Value: 1}})
	var sp models.Specialist
	if err := r.coll.FindOne(ctx, bson.M{"usuario_id": userID}, opts).Decode(&sp); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch specialist for user %s: %w", userID, err)
	}
	return &sp, nil
}

func (r *MongoSpecialistRepo) GetByIDs(ctx context.Context, ids []string) (map[string]models.Specialist, error) {
	out := make(map[string]models.Specialist, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve specialists: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var sp models.Specialist
		if err := cursor.Decode(&sp); err != nil {
			return nil, fmt.Errorf("failed to decode specialist: %w", err)
		}
		out[sp.ID] = sp
	}
	return out, cursor.Err()
}

func (r *MongoSpecialistRepo) GetAll(ctx context.Context) ([]models.Specialist, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve specialists: %w", err)
	}
	defer cursor.Close(ctx)

	var specialists []models.Specialist
	for cursor.Next(ctx) {
		var sp models.Specialist
		if err := cursor.Decode(&sp); err != nil {
			return nil, fmt.Errorf("failed to decode specialist: %w", err)
		}
		specialists = append(specialists, sp)
	}
	return specialists, cursor.Err()
}

func (r *MongoSpecialistRepo) Create(ctx context.Context, specialist *models.Specialist) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, specialist); err != nil {
		return fmt.Errorf("failed to create specialist: %w", err)
	}
	return nil
}

func (r *MongoSpecialistRepo) DeleteByUserID(ctx context.Context, userID string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, bson.M{"usuario_id": userID}); err != nil {
		return fmt.Errorf("failed to delete specialist for user %s: %w", userID, err)
	}
	return nil
}

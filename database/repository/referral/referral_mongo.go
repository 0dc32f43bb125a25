package referralRepo

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

// MongoReferralRepo implements ReferralRepository using MongoDB.
type MongoReferralRepo struct {
	coll *mongo.Collection
}

// NewMongoReferralRepo creates a new instance of ReferralRepository using MongoDB.
func NewMongoReferralRepo() ReferralRepository {
	repo := &MongoReferralRepo{coll: database.Collection("remisiones")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create referral indexes: %v\n", err)
	}
	return repo
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

func (r *MongoReferralRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "paciente_id", Value: 1}}},
		{Keys: bson.D{{Key: "especialista_id", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoReferralRepo) find(ctx context.Context, filter bson.M) ([]models.Referral, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "fecha", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve referrals: %w", err)
	}
	defer cursor.Close(ctx)

	var referrals []models.Referral
	for cursor.Next(ctx) {
		var ref models.Referral
		if err := cursor.Decode(&ref); err != nil {
			return nil, fmt.Errorf("failed to decode referral: %w", err)
		}
		referrals = append(referrals, ref)
	}
	return referrals, cursor.Err()
}

func (r *MongoReferralRepo) GetAll(ctx context.Context) ([]models.Referral, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoReferralRepo) GetByPatient(ctx context.Context, patientID string) ([]models.Referral, error) {
	return r.find(ctx, bson.M{"paciente_id": patientID})
}

func (r *MongoReferralRepo) GetBySpecialist(ctx context.Context, specialistID string) ([]models.Referral, error) {
	return r.find(ctx, bson.M{"especialista_id": specialistID})
}

func (r *MongoReferralRepo) GetByID(ctx context.Context, id string) (*models.Referral, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var ref models.Referral
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&ref); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch referral with id %s: %w", id, err)
	}
	return &ref, nil
}

func (r *MongoReferralRepo) Create(ctx context.Context, referral *models.Referral) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	referral.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, referral); err != nil {
		return fmt.Errorf("failed to create referral: %w", err)
	}
	return nil
}

func (r *MongoReferralRepo) UpdateFields(ctx context.Context, id string, fields bson.M) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update referral with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("referral with id %s not found", id)
	}
	return nil
}

func (r *MongoReferralRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete referral with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("referral with id %s not found", id)
	}
	return nil
}

package appointmentRepo

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

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo creates a new instance of AppointmentRepository using MongoDB.
func NewMongoAppointmentRepo() AppointmentRepository {
	repo := &MongoAppointmentRepo{coll: database.Collection("citas")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create appointment indexes: %v\n", err)
	}
	return repo
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

func (r *MongoAppointmentRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		// No two appointments for the same specialist, day and slot. This
		// index, not the availability computation, is what prevents a
		// read-then-write race from double-booking.
		{
			Keys: bson.D{
				{Key: "especialista_id", Value: 1},
				{Key: "fecha", Value: 1},
				{Key: "hora", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "paciente_id", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoAppointmentRepo) GetAll(ctx context.Context) ([]models.Appointment, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "fecha", Value: 1}, {Key: "hora", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appointments []models.Appointment
	for cursor.Next(ctx) {
		var a models.Appointment
		if err := cursor.Decode(&a); err != nil {
			return nil, fmt.Errorf("failed to decode appointment: %w", err)
		}
		appointments = append(appointments, a)
	}
	return appointments, cursor.Err()
}

func (r *MongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var a models.Appointment
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&a); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch appointment with id %s: %w", id, err)
	}
	return &a, nil
}

func (r *MongoAppointmentRepo) GetBySpecialistAndDate(ctx context.Context, specialistID, date string) ([]models.Appointment, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"especialista_id": specialistID, "fecha": date}
	opts := options.Find().SetSort(bson.D{{Key: "hora", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve appointments for specialist %s on %s: %w", specialistID, date, err)
	}
	defer cursor.Close(ctx)

	var appointments []models.Appointment
	for cursor.Next(ctx) {
		var a models.Appointment
		if err := cursor.Decode(&a); err != nil {
			return nil, fmt.Errorf("failed to decode appointment: %w", err)
		}
		appointments = append(appointments, a)
	}
	return appointments, cursor.Err()
}

func (r *MongoAppointmentRepo) Create(ctx context.Context, appointment *models.Appointment) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	appointment.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, appointment); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateSlot
		}
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *MongoAppointmentRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete appointment with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("appointment with id %s not found", id)
	}
	return nil
}

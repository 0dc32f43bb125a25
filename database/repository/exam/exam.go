package examRepo

import (
	"context"

	"visioncare/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ExamRepository defines methods for exam data access.
type ExamRepository interface {
	// GetAll retrieves all exams, newest first.
	GetAll(ctx context.Context) ([]models.Exam, error)
	// GetByPatient retrieves one patient's exams, newest first.
	GetByPatient(ctx context.Context, patientID string) ([]models.Exam, error)
	// GetByID retrieves an exam; (nil, nil) when none exists.
	GetByID(ctx context.Context, id string) (*models.Exam, error)
	// Create inserts a new exam record.
	Create(ctx context.Context, exam *models.Exam) error
	// UpdateFields applies a partial update of already-translated storage
	// columns.
	UpdateFields(ctx context.Context, id string, fields bson.M) error
	// Delete removes an exam record by its ID.
	Delete(ctx context.Context, id string) error
}

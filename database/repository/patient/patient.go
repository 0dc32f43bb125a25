package patientRepo

import (
	"context"

	"visioncare/models"

	"go.mongodb.org/mongo-driver/bson"
)

// PatientRepository defines methods for patient data access.
type PatientRepository interface {
	// GetByID retrieves a patient; (nil, nil) when none exists.
	GetByID(ctx context.Context, id string) (*models.Patient, error)
	// GetByUserID resolves the patient linked to a platform user;
	// (nil, nil) when the user has no patient record.
	GetByUserID(ctx context.Context, userID string) (*models.Patient, error)
	// GetByIDs retrieves the patients with the given IDs, keyed by ID.
	GetByIDs(ctx context.Context, ids []string) (map[string]models.Patient, error)
	// List retrieves up to limit patients.
	List(ctx context.Context, limit int) ([]models.Patient, error)
	// SearchByName finds patients whose name contains q, case-insensitive.
	SearchByName(ctx context.Context, q string, limit int) ([]models.Patient, error)
	// SearchByDocument finds patients whose document contains q.
	SearchByDocument(ctx context.Context, q string, limit int) ([]models.Patient, error)
	// Create inserts a new patient record.
	Create(ctx context.Context, patient *models.Patient) error
	// UpdateFields applies a partial update of already-translated storage
	// columns.
	UpdateFields(ctx context.Context, id string, fields bson.M) error
	// Delete removes a patient record by its ID.
	Delete(ctx context.Context, id string) error
}

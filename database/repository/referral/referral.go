package referralRepo

import (
	"context"

	"visioncare/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ReferralRepository defines methods for referral data access.
type ReferralRepository interface {
	// GetAll retrieves all referrals, newest first.
	GetAll(ctx context.Context) ([]models.Referral, error)
	// GetByPatient retrieves one patient's referrals, newest first.
	GetByPatient(ctx context.Context, patientID string) ([]models.Referral, error)
	// GetBySpecialist retrieves one specialist's referrals, newest first.
	GetBySpecialist(ctx context.Context, specialistID string) ([]models.Referral, error)
	// GetByID retrieves a referral; (nil, nil) when none exists.
	GetByID(ctx context.Context, id string) (*models.Referral, error)
	// Create inserts a new referral record.
	Create(ctx context.Context, referral *models.Referral) error
	// UpdateFields applies a partial update of already-translated storage
	// columns.
	UpdateFields(ctx context.Context, id string, fields bson.M) error
	// Delete removes a referral record by its ID.
	Delete(ctx context.Context, id string) error
}

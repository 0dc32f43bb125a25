package specialistRepo

import (
	"context"

	"visioncare/models"
)

// SpecialistRepository defines methods for specialist data access.
type SpecialistRepository interface {
	// GetByID retrieves a specialist by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Specialist, error)
	// GetByUserID resolves the specialist linked to a platform user;
	// (nil, nil) when the user has no specialist record.
	GetByUserID(ctx context.Context, userID string) (*models.Specialist, error)
	// GetByIDs retrieves the specialists with the given IDs, keyed by ID.
	GetByIDs(ctx context.Context, ids []string) (map[string]models.Specialist, error)
	// GetAll retrieves all specialists.
	GetAll(ctx context.Context) ([]models.Specialist, error)
	// Create inserts a new specialist record.
	Create(ctx context.Context, specialist *models.Specialist) error
	// DeleteByUserID removes the specialist linked to a user. Used to roll
	// back a half-finished registration.
	DeleteByUserID(ctx context.Context, userID string) error
}

package userRepo

import (
	"context"

	"visioncare/models"
)

// UserRepository defines methods for profile data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user by email; (nil, nil) when none exists.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByIDs retrieves the users with the given IDs, keyed by ID.
	GetByIDs(ctx context.Context, ids []string) (map[string]models.User, error)
	// GetAll retrieves all users, newest first.
	GetAll(ctx context.Context) ([]models.User, error)
	// Create inserts a new user record.
	Create(ctx context.Context, user *models.User) error
	// UpdateRole sets the stored role for a user.
	UpdateRole(ctx context.Context, id string, role models.Role) error
	// Delete removes a user record by its ID.
	Delete(ctx context.Context, id string) error
}

package appointmentRepo

import (
	"context"
	"errors"

	"visioncare/models"
)

// ErrDuplicateSlot is returned by Create when the (specialist, date, time)
// slot is already booked. The unique compound index is the authoritative
// guard; in-memory availability checks are advisory only.
var ErrDuplicateSlot = errors.New("appointment slot already booked")

// AppointmentRepository defines methods for appointment data access.
type AppointmentRepository interface {
	// GetAll retrieves all appointments ordered by date ascending.
	GetAll(ctx context.Context) ([]models.Appointment, error)
	// GetByID retrieves an appointment; (nil, nil) when none exists.
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	// GetBySpecialistAndDate retrieves the appointments for one specialist
	// on one day.
	GetBySpecialistAndDate(ctx context.Context, specialistID, date string) ([]models.Appointment, error)
	// Create inserts a new appointment. Returns ErrDuplicateSlot when the
	// slot is taken.
	Create(ctx context.Context, appointment *models.Appointment) error
	// Delete removes an appointment by its ID (cancellation is deletion).
	Delete(ctx context.Context, id string) error
}

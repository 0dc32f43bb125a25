package appointment

import (
	"context"

	"visioncare/models"
)

// ScheduleRequest carries the fields needed to book a slot.
type ScheduleRequest struct {
	PatientID    string `json:"paciente_id"`
	SpecialistID string `json:"especialista_id" binding:"required"`
	Date         string `json:"fecha" binding:"required"`
	Time         string `json:"hora" binding:"required"`
	Reason       string `json:"motivo"`
}

// AppointmentService is the booking and visibility surface for appointments.
type AppointmentService interface {
	// List returns the appointments the viewer may see, enriched for display
	// and annotated with the actions the viewer may take on each row.
	List(ctx context.Context, viewer models.Viewer) ([]models.AppointmentView, error)
	// Availability returns the free canonical slots for a specialist on a
	// date. Empty specialist or date yields no slots.
	Availability(ctx context.Context, specialistID, date string) ([]string, error)
	// Schedule books a slot on behalf of the viewer. Returns ErrSlotTaken
	// when the slot was booked concurrently, ErrNotPermitted when the
	// viewer's role does not allow booking, ErrInvalidInput on validation
	// failure.
	Schedule(ctx context.Context, viewer models.Viewer, req ScheduleRequest) (*models.Appointment, error)
	// Cancel deletes an appointment. The reason is required and logged; the
	// row itself is removed.
	Cancel(ctx context.Context, viewer models.Viewer, id, reason string) error
}

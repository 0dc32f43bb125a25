package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	appointmentRepo "visioncare/database/repository/appointment"
	"visioncare/models"
	"visioncare/services/directory"
	"visioncare/services/scheduling"
	"visioncare/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultAppointmentService implements AppointmentService.
type DefaultAppointmentService struct {
	Repo      appointmentRepo.AppointmentRepository
	Directory directory.Loader
	Policy    scheduling.Policy
}

// NewAppointmentService creates a new AppointmentService.
func NewAppointmentService(repo appointmentRepo.AppointmentRepository, dir directory.Loader, policy scheduling.Policy) AppointmentService {
	return &DefaultAppointmentService{Repo: repo, Directory: dir, Policy: policy}
}

func (s *DefaultAppointmentService) List(ctx context.Context, viewer models.Viewer) ([]models.AppointmentView, error) {
	all, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	scoped := s.Policy.Scope(all, viewer)

	patientIDs := make([]string, 0, len(scoped))
	specialistIDs := make([]string, 0, len(scoped))
	for _, a := range scoped {
		patientIDs = append(patientIDs, a.PatientID)
		specialistIDs = append(specialistIDs, a.SpecialistID)
	}
	dir, err := s.Directory.Load(ctx, patientIDs, specialistIDs)
	if err != nil {
		return nil, err
	}

	views := scheduling.EnrichAppointments(scoped, dir)
	for i := range views {
		views[i].Actions = s.Policy.Permissions(scoped[i], viewer).Strings()
	}
	return views, nil
}

func (s *DefaultAppointmentService) Availability(ctx context.Context, specialistID, date string) ([]string, error) {
	if specialistID == "" || date == "" {
		return []string{}, nil
	}
	taken, err := s.Repo.GetBySpecialistAndDate(ctx, specialistID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load booked slots: %w", err)
	}
	return scheduling.AvailableSlots(taken, specialistID, date), nil
}

func (s *DefaultAppointmentService) Schedule(ctx context.Context, viewer models.Viewer, req ScheduleRequest) (*models.Appointment, error) {
	if !s.Policy.CanSchedule(viewer) {
		return nil, ErrNotPermitted
	}

	// Patients book for themselves only; the linked patient ID wins over
	// whatever the request carries.
	if viewer.Role == models.RolePatient {
		req.PatientID = viewer.PatientID
	}

	if req.PatientID == "" || req.SpecialistID == "" || req.Date == "" || req.Time == "" {
		return nil, fmt.Errorf("%w: missing required fields", ErrInvalidInput)
	}
	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed date %q", ErrInvalidInput, req.Date)
	}
	if day.Format("2006-01-02") < time.Now().Format("2006-01-02") {
		return nil, fmt.Errorf("%w: date is in the past", ErrInvalidInput)
	}
	if !scheduling.IsCanonicalSlot(req.Time) {
		return nil, fmt.Errorf("%w: %q is not a bookable time", ErrInvalidInput, req.Time)
	}

	// Advisory pre-check. The unique index on the collection is what
	// actually decides a race; this only shortens the common failure path.
	booked, err := s.Repo.GetBySpecialistAndDate(ctx, req.SpecialistID, req.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to check availability: %w", err)
	}
	for _, a := range booked {
		if a.Time == req.Time {
			return nil, ErrSlotTaken
		}
	}

	appt := &models.Appointment{
		ID:           uuid.New().String(),
		PatientID:    req.PatientID,
		SpecialistID: req.SpecialistID,
		Date:         req.Date,
		Time:         req.Time,
		Reason:       req.Reason,
		Status:       models.AppointmentStatusScheduled,
	}
	if err := s.Repo.Create(ctx, appt); err != nil {
		if errors.Is(err, appointmentRepo.ErrDuplicateSlot) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	utils.GetLogger().Info("appointment scheduled",
		zap.String("appointmentID", appt.ID),
		zap.String("specialistID", appt.SpecialistID),
		zap.String("date", appt.Date),
		zap.String("time", appt.Time))
	return appt, nil
}

func (s *DefaultAppointmentService) Cancel(ctx context.Context, viewer models.Viewer, id, reason string) error {
	if reason == "" {
		return fmt.Errorf("%w: a cancellation reason is required", ErrInvalidInput)
	}

	appt, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load appointment: %w", err)
	}
	if appt == nil {
		return ErrNotFound
	}
	if !s.Policy.Permissions(*appt, viewer).Contains(scheduling.ActionCancel) {
		return ErrNotPermitted
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to cancel appointment: %w", err)
	}

	// Cancellation is deletion; the reason survives only in the log.
	utils.GetLogger().Info("appointment cancelled",
		zap.String("appointmentID", id),
		zap.String("cancelledBy", viewer.UserID),
		zap.String("reason", reason))
	return nil
}

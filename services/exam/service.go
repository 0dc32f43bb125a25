package exam

import (
	"context"
	"errors"
	"fmt"
	"time"

	examRepo "visioncare/database/repository/exam"
	"visioncare/models"
	"visioncare/services/directory"
	"visioncare/services/scheduling"
	"visioncare/services/storage"
	"visioncare/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

var (
	// ErrNotFound means the exam does not exist.
	ErrNotFound = errors.New("exam not found")
	// ErrNotPermitted means the viewer may not access the exam.
	ErrNotPermitted = errors.New("viewer is not permitted to access this exam")
	// ErrInvalidInput wraps validation failures of an exam payload.
	ErrInvalidInput = errors.New("invalid exam request")
)

// ExamService exposes clinical exam records and their stored PDFs.
type ExamService interface {
	// List returns the exams the viewer may see, enriched for display.
	List(ctx context.Context, viewer models.Viewer) ([]models.ExamView, error)
	// Create registers an exam. localPDFPath, when non-empty, is uploaded
	// and the resulting object path stored on the record.
	Create(ctx context.Context, exam *models.Exam, localPDFPath string) error
	// Update applies a partial edit keyed by visible form-field names; keys
	// are translated to stored columns through the static exam field map.
	// Unknown or non-editable fields are rejected.
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	// Delete removes the exam record and its stored PDF.
	Delete(ctx context.Context, id string) error
	// FileURL returns a short-lived signed URL for the exam's PDF. Patients
	// may only reach their own exams.
	FileURL(ctx context.Context, viewer models.Viewer, id string) (string, error)
}

// DefaultExamService implements ExamService.
type DefaultExamService struct {
	Repo      examRepo.ExamRepository
	Directory directory.Loader
	Storage   storage.StorageService
	URLTTL    time.Duration
}

// NewExamService creates a new ExamService.
func NewExamService(repo examRepo.ExamRepository, dir directory.Loader, store storage.StorageService, urlTTL time.Duration) ExamService {
	return &DefaultExamService{Repo: repo, Directory: dir, Storage: store, URLTTL: urlTTL}
}

func (s *DefaultExamService) List(ctx context.Context, viewer models.Viewer) ([]models.ExamView, error) {
	var (
		rows []models.Exam
		err  error
	)
	switch viewer.Role {
	case models.RoleAdmin, models.RoleSpecialist:
		rows, err = s.Repo.GetAll(ctx)
	case models.RolePatient:
		if viewer.PatientID == "" {
			return []models.ExamView{}, nil
		}
		rows, err = s.Repo.GetByPatient(ctx, viewer.PatientID)
	default:
		return []models.ExamView{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list exams: %w", err)
	}

	patientIDs := make([]string, 0, len(rows))
	specialistIDs := make([]string, 0, len(rows))
	for _, r := range rows {
		patientIDs = append(patientIDs, r.PatientID)
		specialistIDs = append(specialistIDs, r.SpecialistID)
	}
	dir, err := s.Directory.Load(ctx, patientIDs, specialistIDs)
	if err != nil {
		return nil, err
	}
	return scheduling.EnrichExams(rows, dir), nil
}

func (s *DefaultExamService) Create(ctx context.Context, exam *models.Exam, localPDFPath string) error {
	if exam.PatientID == "" {
		return fmt.Errorf("%w: patient is required", ErrInvalidInput)
	}
	if exam.Date == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if _, err := time.Parse("2006-01-02", exam.Date); err != nil {
		return fmt.Errorf("%w: malformed date %q", ErrInvalidInput, exam.Date)
	}

	if localPDFPath != "" {
		objectPath, err := s.Storage.UploadFile(ctx, localPDFPath, exam.PatientID)
		if err != nil {
			return fmt.Errorf("failed to upload exam file: %w", err)
		}
		exam.PDFPath = objectPath
	}

	if exam.ID == "" {
		exam.ID = uuid.New().String()
	}
	if err := s.Repo.Create(ctx, exam); err != nil {
		// The record failed after the file landed; remove the orphan.
		if exam.PDFPath != "" {
			if delErr := s.Storage.DeleteFile(ctx, exam.PDFPath); delErr != nil {
				utils.GetLogger().Warn("failed to remove orphaned exam file",
					zap.String("objectPath", exam.PDFPath), zap.Error(delErr))
			}
		}
		return fmt.Errorf("failed to create exam: %w", err)
	}
	return nil
}

func (s *DefaultExamService) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	columns := bson.M{}
	for visible, value := range fields {
		column, ok := models.ResolveEditableColumn(models.ExamFieldMap, visible)
		if !ok {
			return fmt.Errorf("%w: field %q is not editable", ErrInvalidInput, visible)
		}
		columns[column] = value
	}

	existing, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load exam: %w", err)
	}
	if existing == nil {
		return ErrNotFound
	}

	if err := s.Repo.UpdateFields(ctx, id, columns); err != nil {
		return fmt.Errorf("failed to update exam: %w", err)
	}
	return nil
}

func (s *DefaultExamService) Delete(ctx context.Context, id string) error {
	existing, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load exam: %w", err)
	}
	if existing == nil {
		return ErrNotFound
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete exam: %w", err)
	}

	// The row is gone; a leftover object only wastes bucket space, so a
	// failure here is logged rather than surfaced.
	if existing.PDFPath != "" {
		if err := s.Storage.DeleteFile(ctx, existing.PDFPath); err != nil {
			utils.GetLogger().Warn("failed to delete exam file",
				zap.String("examID", id),
				zap.String("objectPath", existing.PDFPath),
				zap.Error(err))
		}
	}
	return nil
}

func (s *DefaultExamService) FileURL(ctx context.Context, viewer models.Viewer, id string) (string, error) {
	exam, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("failed to load exam: %w", err)
	}
	if exam == nil {
		return "", ErrNotFound
	}

	switch viewer.Role {
	case models.RoleAdmin, models.RoleSpecialist:
	case models.RolePatient:
		if viewer.PatientID == "" || exam.PatientID != viewer.PatientID {
			return "", ErrNotPermitted
		}
	default:
		return "", ErrNotPermitted
	}

	if exam.PDFPath == "" {
		return "", fmt.Errorf("%w: exam has no stored file", ErrNotFound)
	}
	url, err := s.Storage.GetSignedURL(ctx, exam.PDFPath, s.URLTTL)
	if err != nil {
		return "", fmt.Errorf("failed to sign exam file URL: %w", err)
	}
	return url, nil
}

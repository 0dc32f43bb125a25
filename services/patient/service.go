package patient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	patientRepo "visioncare/database/repository/patient"
	"visioncare/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// SearchLimit caps search and listing results; the scheduling picker only
// ever shows a short list.
const SearchLimit = 10

var (
	// ErrNotFound means the patient does not exist.
	ErrNotFound = errors.New("patient not found")
	// ErrInvalidInput wraps validation failures of a patient payload.
	ErrInvalidInput = errors.New("invalid patient request")
)

// PatientService exposes the patient registry.
type PatientService interface {
	// List returns up to SearchLimit patients.
	List(ctx context.Context) ([]models.Patient, error)
	// Search finds patients by name first, then by document number when the
	// name search comes back empty. Blank queries return the plain listing.
	Search(ctx context.Context, q string) ([]models.Patient, error)
	// Create registers a new patient record.
	Create(ctx context.Context, patient *models.Patient) error
	// Update applies a partial edit keyed by visible form-field names; keys
	// are translated to stored columns through the static patient field
	// map. Unknown fields are rejected.
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	// Delete removes a patient record.
	Delete(ctx context.Context, id string) error
}

// DefaultPatientService implements PatientService.
type DefaultPatientService struct {
	Repo patientRepo.PatientRepository
}

// NewPatientService creates a new PatientService.
func NewPatientService(repo patientRepo.PatientRepository) PatientService {
	return &DefaultPatientService{Repo: repo}
}

func (s *DefaultPatientService) List(ctx context.Context) ([]models.Patient, error) {
	return s.Repo.List(ctx, SearchLimit)
}

func (s *DefaultPatientService) Search(ctx context.Context, q string) ([]models.Patient, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return s.List(ctx)
	}

	byName, err := s.Repo.SearchByName(ctx, q, SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search patients by name: %w", err)
	}
	if len(byName) > 0 {
		return byName, nil
	}

	byDocument, err := s.Repo.SearchByDocument(ctx, q, SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search patients by document: %w", err)
	}
	return byDocument, nil
}

func (s *DefaultPatientService) Create(ctx context.Context, patient *models.Patient) error {
	if strings.TrimSpace(patient.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(patient.Document) == "" {
		return fmt.Errorf("%w: document is required", ErrInvalidInput)
	}
	if patient.BirthDate != "" {
		if _, err := time.Parse("2006-01-02", patient.BirthDate); err != nil {
			return fmt.Errorf("%w: malformed birth date %q", ErrInvalidInput, patient.BirthDate)
		}
	}

	if patient.ID == "" {
		patient.ID = uuid.New().String()
	}
	if err := s.Repo.Create(ctx, patient); err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (s *DefaultPatientService) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	columns := bson.M{}
	for visible, value := range fields {
		column, ok := models.ResolveEditableColumn(models.PatientFieldMap, visible)
		if !ok {
			return fmt.Errorf("%w: field %q is not editable", ErrInvalidInput, visible)
		}
		if column == "fecha_nacimiento" {
			birthDate, ok := value.(string)
			if !ok {
				return fmt.Errorf("%w: malformed birth date %v", ErrInvalidInput, value)
			}
			if birthDate != "" {
				if _, err := time.Parse("2006-01-02", birthDate); err != nil {
					return fmt.Errorf("%w: malformed birth date %q", ErrInvalidInput, birthDate)
				}
			}
		}
		columns[column] = value
	}

	existing, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load patient: %w", err)
	}
	if existing == nil {
		return ErrNotFound
	}

	if err := s.Repo.UpdateFields(ctx, id, columns); err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}
	return nil
}

func (s *DefaultPatientService) Delete(ctx context.Context, id string) error {
	existing, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load patient: %w", err)
	}
	if existing == nil {
		return ErrNotFound
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}
	return nil
}

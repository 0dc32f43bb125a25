package referral

import (
	"context"
	"errors"
	"fmt"
	"time"

	referralRepo "visioncare/database/repository/referral"
	"visioncare/models"
	"visioncare/services/directory"
	"visioncare/services/scheduling"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

var (
	// ErrNotFound means the referral does not exist.
	ErrNotFound = errors.New("referral not found")
	// ErrInvalidInput wraps validation failures of a referral payload.
	ErrInvalidInput = errors.New("invalid referral request")
)

// ReferralService exposes specialty referrals.
type ReferralService interface {
	// List returns the referrals the viewer may see, enriched for display.
	List(ctx context.Context, viewer models.Viewer) ([]models.ReferralView, error)
	// Create registers a new referral. New referrals start pending.
	Create(ctx context.Context, referral *models.Referral) error
	// Update applies a partial edit keyed by visible form-field names; keys
	// are translated to stored columns through the static referral field
	// map. A status value outside the lifecycle set is rejected.
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	// Delete removes a referral record.
	Delete(ctx context.Context, id string) error
}

// DefaultReferralService implements ReferralService.
type DefaultReferralService struct {
	Repo      referralRepo.ReferralRepository
	Directory directory.Loader
}

// NewReferralService creates a new ReferralService.
func NewReferralService(repo referralRepo.ReferralRepository, dir directory.Loader) ReferralService {
	return &DefaultReferralService{Repo: repo, Directory: dir}
}

func (s *DefaultReferralService) List(ctx context.Context, viewer models.Viewer) ([]models.ReferralView, error) {
	var (
		rows []models.Referral
		err  error
	)
	switch viewer.Role {
	case models.RoleAdmin:
		rows, err = s.Repo.GetAll(ctx)
	case models.RoleSpecialist:
		if viewer.SpecialistID == "" {
			return []models.ReferralView{}, nil
		}
		rows, err = s.Repo.GetBySpecialist(ctx, viewer.SpecialistID)
	case models.RolePatient:
		if viewer.PatientID == "" {
			return []models.ReferralView{}, nil
		}
		rows, err = s.Repo.GetByPatient(ctx, viewer.PatientID)
	default:
		return []models.ReferralView{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list referrals: %w", err)
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
	return scheduling.EnrichReferrals(rows, dir), nil
}

func (s *DefaultReferralService) Create(ctx context.Context, referral *models.Referral) error {
	if referral.PatientID == "" {
		return fmt.Errorf("%w: patient is required", ErrInvalidInput)
	}
	if referral.SpecialistID == "" {
		return fmt.Errorf("%w: specialist is required", ErrInvalidInput)
	}
	if referral.Date == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if _, err := time.Parse("2006-01-02", referral.Date); err != nil {
		return fmt.Errorf("%w: malformed date %q", ErrInvalidInput, referral.Date)
	}

	if referral.ID == "" {
		referral.ID = uuid.New().String()
	}
	referral.Status = models.ReferralStatusPending
	if err := s.Repo.Create(ctx, referral); err != nil {
		return fmt.Errorf("failed to create referral: %w", err)
	}
	return nil
}

func (s *DefaultReferralService) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	columns := bson.M{}
	for visible, value := range fields {
		column, ok := models.ResolveEditableColumn(models.ReferralFieldMap, visible)
		if !ok {
			return fmt.Errorf("%w: field %q is not editable", ErrInvalidInput, visible)
		}
		if column == "estado" {
			status, ok := value.(string)
			if !ok || !models.IsReferralStatus(status) {
				return fmt.Errorf("%w: unknown referral status %v", ErrInvalidInput, value)
			}
		}
		columns[column] = value
	}

	existing, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load referral: %w", err)
	}
	if existing == nil {
		return ErrNotFound
	}

	if err := s.Repo.UpdateFields(ctx, id, columns); err != nil {
		return fmt.Errorf("failed to update referral: %w", err)
	}
	return nil
}

func (s *DefaultReferralService) Delete(ctx context.Context, id string) error {
	existing, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load referral: %w", err)
	}
	if existing == nil {
		return ErrNotFound
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete referral: %w", err)
	}
	return nil
}

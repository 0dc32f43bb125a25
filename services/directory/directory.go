package directory

import (
	"context"
	"fmt"

	patientRepo "visioncare/database/repository/patient"
	specialistRepo "visioncare/database/repository/specialist"
	userRepo "visioncare/database/repository/user"
	"visioncare/services/scheduling"
)

// Loader batch-fetches the rows a list response joins against. One round
// trip per collection regardless of how many rows are being enriched.
type Loader struct {
	Patients    patientRepo.PatientRepository
	Specialists specialistRepo.SpecialistRepository
	Users       userRepo.UserRepository
}

// Load fetches the patients and specialists with the given IDs, plus the
// users the specialists link to, and returns them as a NameDirectory.
// Duplicate and empty IDs are tolerated.
func (l Loader) Load(ctx context.Context, patientIDs, specialistIDs []string) (scheduling.NameDirectory, error) {
	dir := scheduling.NameDirectory{}

	patients, err := l.Patients.GetByIDs(ctx, dedupe(patientIDs))
	if err != nil {
		return dir, fmt.Errorf("failed to load patients: %w", err)
	}
	dir.Patients = patients

	specialists, err := l.Specialists.GetByIDs(ctx, dedupe(specialistIDs))
	if err != nil {
		return dir, fmt.Errorf("failed to load specialists: %w", err)
	}
	dir.Specialists = specialists

	userIDs := make([]string, 0, len(specialists))
	for _, sp := range specialists {
		userIDs = append(userIDs, sp.UserID)
	}
	users, err := l.Users.GetByIDs(ctx, dedupe(userIDs))
	if err != nil {
		return dir, fmt.Errorf("failed to load users: %w", err)
	}
	dir.Users = users

	return dir, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

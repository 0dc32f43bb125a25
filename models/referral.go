package models

import "time"

// Referral statuses, in lifecycle order. New referrals start pending and
// move through the set as the receiving specialty works them.
const (
	ReferralStatusPending    = "pendiente"
	ReferralStatusInProgress = "en proceso"
	ReferralStatusResolved   = "resuelta"
	ReferralStatusFinalized  = "finalizada"
)

// IsReferralStatus reports whether s is one of the known statuses.
func IsReferralStatus(s string) bool {
	switch s {
	case ReferralStatusPending, ReferralStatusInProgress, ReferralStatusResolved, ReferralStatusFinalized:
		return true
	}
	return false
}

// Referral sends a patient to another specialty.
type Referral struct {
	ID           string    `bson:"id" json:"id"`
	PatientID    string    `bson:"paciente_id" json:"paciente_id"`
	SpecialistID string    `bson:"especialista_id" json:"especialista_id"`
	Date         string    `bson:"fecha" json:"fecha"` // YYYY-MM-DD
	Specialty    string    `bson:"especialidad,omitempty" json:"especialidad,omitempty"`
	Reason       string    `bson:"motivo,omitempty" json:"motivo,omitempty"`
	Status       string    `bson:"estado" json:"estado"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

package scheduling

import "visioncare/models"

// NameDirectory carries the side-loaded rows enrichment joins against.
// Every list screen used to repeat this join with slightly different
// null-handling; this is the single shared version. Lookups that miss
// resolve to the empty string, never an error.
type NameDirectory struct {
	Patients    map[string]models.Patient
	Specialists map[string]models.Specialist
	Users       map[string]models.User
}

// SpecialistName resolves a specialist ID to the linked user's display name.
func (d NameDirectory) SpecialistName(specialistID string) string {
	sp, ok := d.Specialists[specialistID]
	if !ok {
		return ""
	}
	return d.Users[sp.UserID].Name
}

// PatientName resolves a patient ID to the patient's display name.
func (d NameDirectory) PatientName(patientID string) string {
	return d.Patients[patientID].Name
}

// Specialty resolves a specialist ID to its specialty.
func (d NameDirectory) Specialty(specialistID string) string {
	return d.Specialists[specialistID].Specialty
}

// EnrichAppointments produces display-ready appointment rows.
func EnrichAppointments(rows []models.Appointment, dir NameDirectory) []models.AppointmentView {
	out := make([]models.AppointmentView, len(rows))
	for i, r := range rows {
		out[i] = models.AppointmentView{
			Appointment:    r,
			PatientName:    dir.PatientName(r.PatientID),
			SpecialistName: dir.SpecialistName(r.SpecialistID),
			Specialty:      dir.Specialty(r.SpecialistID),
		}
	}
	return out
}

// EnrichExams produces display-ready exam rows.
func EnrichExams(rows []models.Exam, dir NameDirectory) []models.ExamView {
	out := make([]models.ExamView, len(rows))
	for i, r := range rows {
		out[i] = models.ExamView{
			Exam:           r,
			PatientName:    dir.PatientName(r.PatientID),
			SpecialistName: dir.SpecialistName(r.SpecialistID),
		}
	}
	return out
}

// EnrichReferrals produces display-ready referral rows. The specialty falls
// back to the value stored on the referral itself when the specialist row is
// missing.
func EnrichReferrals(rows []models.Referral, dir NameDirectory) []models.ReferralView {
	out := make([]models.ReferralView, len(rows))
	for i, r := range rows {
		specialty := dir.Specialty(r.SpecialistID)
		if specialty == "" {
			specialty = r.Specialty
		}
		out[i] = models.ReferralView{
			Referral:       r,
			PatientName:    dir.PatientName(r.PatientID),
			SpecialistName: dir.SpecialistName(r.SpecialistID),
			Specialty:      specialty,
		}
	}
	return out
}

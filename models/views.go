package models

// Display-ready rows: foreign keys joined to human-readable names, with the
// empty string standing in for any unresolved linkage. List screens render
// these directly.

// AppointmentView is an appointment enriched for display, plus the actions
// the requesting viewer may take on it.
type AppointmentView struct {
	Appointment
	PatientName    string   `json:"paciente_nombre"`
	SpecialistName string   `json:"doctor"`
	Specialty      string   `json:"especialidad"`
	Actions        []string `json:"actions,omitempty"`
}

// ExamView is an exam enriched with the patient and specialist names.
type ExamView struct {
	Exam
	PatientName    string `json:"paciente_nombre"`
	SpecialistName string `json:"especialista_nombre"`
}

// ReferralView is a referral enriched with patient and specialist names and
// the specialist's specialty.
type ReferralView struct {
	Referral
	PatientName    string `json:"nombre"`
	SpecialistName string `json:"especialista_nombre"`
	Specialty      string `json:"especialidad"`
}

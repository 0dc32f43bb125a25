package models

import "time"

// Appointment statuses. Cancellation deletes the row, so "agendada" is the
// only status a stored appointment carries today.
const AppointmentStatusScheduled = "agendada"

// Appointment is a booked slot. (SpecialistID, Date, Time) is unique among
// stored appointments; the appointment repository enforces it with a unique
// compound index.
type Appointment struct {
	ID           string    `bson:"id" json:"id"`
	PatientID    string    `bson:"paciente_id" json:"paciente_id"`
	SpecialistID string    `bson:"especialista_id" json:"especialista_id"`
	Date         string    `bson:"fecha" json:"fecha"` // YYYY-MM-DD
	Time         string    `bson:"hora" json:"hora"`   // one of the canonical slots
	Reason       string    `bson:"motivo,omitempty" json:"motivo,omitempty"`
	Status       string    `bson:"estado" json:"estado"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

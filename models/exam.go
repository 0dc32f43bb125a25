package models

import "time"

// Exam is a clinical exam record with an optional stored PDF. PDFPath is the
// object path inside the exams bucket, never a URL; previews are served
// through short-lived signed URLs generated on demand.
type Exam struct {
	ID           string    `bson:"id" json:"id"`
	PatientID    string    `bson:"paciente_id" json:"paciente_id"`
	SpecialistID string    `bson:"especialista_id,omitempty" json:"especialista_id,omitempty"`
	Date         string    `bson:"fecha" json:"fecha"` // YYYY-MM-DD
	Notes        string    `bson:"notas,omitempty" json:"notas,omitempty"`
	PDFPath      string    `bson:"pdf_path,omitempty" json:"pdf_path,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

package models

// Specialist links a platform user to a clinical specialty. Display names
// come from the joined user row, not from this record.
type Specialist struct {
	ID        string `bson:"id" json:"id"`
	UserID    string `bson:"usuario_id" json:"usuario_id"`
	Specialty string `bson:"especialidad" json:"especialidad"`
}

// SpecialistView is a specialist with the joined user name, as shown in
// scheduling dropdowns.
type SpecialistView struct {
	Specialist
	Name string `json:"nombre"`
}

package models

import "time"

// Patient is a clinical record, optionally linked to a platform user via
// UserID (patients that sign in see their own rows through that linkage).
type Patient struct {
	ID           string    `bson:"id" json:"id"`
	UserID       string    `bson:"usuario_id,omitempty" json:"usuario_id,omitempty"`
	Name         string    `bson:"nombre" json:"nombre"`
	Document     string    `bson:"documento" json:"documento"`
	Phone        string    `bson:"telefono,omitempty" json:"telefono,omitempty"`
	Address      string    `bson:"direccion,omitempty" json:"direccion,omitempty"`
	BirthDate    string    `bson:"fecha_nacimiento,omitempty" json:"fecha_nacimiento,omitempty"` // YYYY-MM-DD
	Observations string    `bson:"observaciones,omitempty" json:"observaciones,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

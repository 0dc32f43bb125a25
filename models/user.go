package models

import "time"

// User is a profile row in the usuarios collection. Field tags keep the
// column names the existing front end already speaks.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"nombre" json:"nombre"`
	Email        string    `bson:"email" json:"email"`
	Phone        string    `bson:"telefono,omitempty" json:"telefono,omitempty"`
	Role         Role      `bson:"rol" json:"rol"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	CreatedAt    time.Time `bson:"fecha_creacion" json:"fecha_creacion"`
}

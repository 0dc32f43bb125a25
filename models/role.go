package models

import "strings"

// Role is the closed set of viewer roles. Raw role strings from storage or
// tokens are normalized through ParseRole at the data-access boundary;
// business logic only ever compares Role values.
type Role string

const (
	RoleGuest      Role = "guest"
	RolePatient    Role = "patient"
	RoleSpecialist Role = "specialist"
	RoleAdmin      Role = "admin"
)

// ParseRole normalizes a stored role string into a Role. Historical data
// mixes casing and Spanish/English spellings (admin, administrador,
// especialista, ...). Anything unrecognized maps to RoleGuest, which every
// visibility rule treats as deny-all.
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin", "administrador", "administrator":
		return RoleAdmin
	case "especialista", "specialist":
		return RoleSpecialist
	case "paciente", "patient":
		return RolePatient
	default:
		return RoleGuest
	}
}

package models

import "testing"

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
	}{
		{"admin", RoleAdmin},
		{"Administrador", RoleAdmin},
		{"ADMINISTRATOR", RoleAdmin},
		{"  admin  ", RoleAdmin},
		{"especialista", RoleSpecialist},
		{"Specialist", RoleSpecialist},
		{"paciente", RolePatient},
		{"patient", RolePatient},
		{"", RoleGuest},
		{"doctor", RoleGuest},
		{"null", RoleGuest},
		{"admin ", RoleAdmin},
	}
	for _, c := range cases {
		if got := ParseRole(c.in); got != c.want {
			t.Fatalf("ParseRole(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

package models

// Viewer is the session-scoped identity of the actor behind a request. It is
// resolved exactly once at sign-in (role normalization plus the linked
// patient/specialist lookup) and cached; components receive it explicitly
// instead of re-fetching the profile per screen.
type Viewer struct {
	UserID       string `json:"userId"`
	Role         Role   `json:"role"`
	PatientID    string `json:"patientId,omitempty"`    // set when Role is RolePatient and a linked patient exists
	SpecialistID string `json:"specialistId,omitempty"` // set when Role is RoleSpecialist and a linked specialist exists
}

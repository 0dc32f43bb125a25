package scheduling

import "visioncare/models"

// Action is something a viewer may do with an appointment.
type Action string

const (
	ActionView   Action = "view"
	ActionCancel Action = "cancel"
	ActionCreate Action = "create"
)

// ActionSet is the ordered set of permitted actions.
type ActionSet []Action

// Contains reports whether a is in the set.
func (s ActionSet) Contains(a Action) bool {
	for _, x := range s {
		if x == a {
			return true
		}
	}
	return false
}

// Strings returns the set as plain strings for JSON responses.
func (s ActionSet) Strings() []string {
	out := make([]string, len(s))
	for i, a := range s {
		out[i] = string(a)
	}
	return out
}

// Policy holds the configurable parts of the role matrix.
//
// AdminCanCancel is a pending product decision: deployed variants of the
// appointments screen disagree on whether administrators may cancel, so it
// ships as a toggle defaulting to view-only.
type Policy struct {
	AdminCanCancel bool
}

// Scope filters appointments down to what the viewer is permitted to see.
//
//   - admin: everything
//   - specialist: rows for the specialist linked to the viewer
//   - patient: rows for the patient linked to the viewer
//   - guest or unrecognized role: nothing
//
// A patient or specialist viewer whose linkage was never resolved (empty
// linked ID) also sees nothing; a missing linkage degrades to deny-all, it
// is not an error.
func (p Policy) Scope(appointments []models.Appointment, viewer models.Viewer) []models.Appointment {
	switch viewer.Role {
	case models.RoleAdmin:
		return appointments
	case models.RoleSpecialist:
		if viewer.SpecialistID == "" {
			return []models.Appointment{}
		}
		out := make([]models.Appointment, 0, len(appointments))
		for _, a := range appointments {
			if a.SpecialistID == viewer.SpecialistID {
				out = append(out, a)
			}
		}
		return out
	case models.RolePatient:
		if viewer.PatientID == "" {
			return []models.Appointment{}
		}
		out := make([]models.Appointment, 0, len(appointments))
		for _, a := range appointments {
			if a.PatientID == viewer.PatientID {
				out = append(out, a)
			}
		}
		return out
	default:
		return []models.Appointment{}
	}
}

// Permissions returns the actions the viewer may take on one appointment.
// An appointment outside the viewer's scope yields the empty set.
func (p Policy) Permissions(a models.Appointment, viewer models.Viewer) ActionSet {
	switch viewer.Role {
	case models.RoleAdmin:
		if p.AdminCanCancel {
			return ActionSet{ActionView, ActionCancel}
		}
		return ActionSet{ActionView}
	case models.RoleSpecialist:
		if viewer.SpecialistID != "" && a.SpecialistID == viewer.SpecialistID {
			return ActionSet{ActionView}
		}
		return ActionSet{}
	case models.RolePatient:
		if viewer.PatientID != "" && a.PatientID == viewer.PatientID {
			return ActionSet{ActionView, ActionCancel, ActionCreate}
		}
		return ActionSet{}
	default:
		return ActionSet{}
	}
}

// CanSchedule reports whether the viewer may create appointments at all.
// Patients book for themselves, administrators for anyone; specialists do
// not book.
func (p Policy) CanSchedule(viewer models.Viewer) bool {
	switch viewer.Role {
	case models.RoleAdmin:
		return true
	case models.RolePatient:
		return viewer.PatientID != ""
	default:
		return false
	}
}

package scheduling

import (
	"testing"

	"visioncare/models"
)

var matrixRows = []models.Appointment{
	{ID: "c1", PatientID: "p1", SpecialistID: "s1", Date: "2025-11-01", Time: "08:00"},
	{ID: "c2", PatientID: "p1", SpecialistID: "s2", Date: "2025-11-01", Time: "09:00"},
	{ID: "c3", PatientID: "p2", SpecialistID: "s1", Date: "2025-11-02", Time: "10:00"},
	{ID: "c4", PatientID: "p3", SpecialistID: "s3", Date: "2025-11-02", Time: "11:00"},
}

func ids(rows []models.Appointment) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func TestScope_Admin(t *testing.T) {
	var p Policy
	got := p.Scope(matrixRows, models.Viewer{UserID: "u", Role: models.RoleAdmin})
	if len(got) != len(matrixRows) {
		t.Fatalf("admin must see all rows, got %v", ids(got))
	}
}

func TestScope_Patient(t *testing.T) {
	var p Policy
	viewer := models.Viewer{UserID: "u", Role: models.RolePatient, PatientID: "p1"}
	got := p.Scope(matrixRows, viewer)
	if len(got) != 2 || got[0].ID != "c1" || got[1].ID != "c2" {
		t.Fatalf("expected [c1 c2], got %v", ids(got))
	}
}

func TestScope_Specialist(t *testing.T) {
	var p Policy
	viewer := models.Viewer{UserID: "u", Role: models.RoleSpecialist, SpecialistID: "s1"}
	got := p.Scope(matrixRows, viewer)
	if len(got) != 2 || got[0].ID != "c1" || got[1].ID != "c3" {
		t.Fatalf("expected [c1 c3], got %v", ids(got))
	}
}

func TestScope_GuestAndUnresolved(t *testing.T) {
	var p Policy
	if got := p.Scope(matrixRows, models.Viewer{Role: models.RoleGuest}); len(got) != 0 {
		t.Fatalf("guest must see nothing, got %v", ids(got))
	}
	// Unknown role strings normalize to guest at the boundary; a raw value
	// that slips through is still denied.
	if got := p.Scope(matrixRows, models.Viewer{Role: models.Role("superuser")}); len(got) != 0 {
		t.Fatalf("unrecognized role must see nothing, got %v", ids(got))
	}
	// Patient with no resolved linkage sees nothing rather than erroring.
	if got := p.Scope(matrixRows, models.Viewer{Role: models.RolePatient}); len(got) != 0 {
		t.Fatalf("unlinked patient must see nothing, got %v", ids(got))
	}
	if got := p.Scope(matrixRows, models.Viewer{Role: models.RoleSpecialist}); len(got) != 0 {
		t.Fatalf("unlinked specialist must see nothing, got %v", ids(got))
	}
}

func TestScope_Idempotent(t *testing.T) {
	var p Policy
	viewers := []models.Viewer{
		{Role: models.RoleAdmin},
		{Role: models.RolePatient, PatientID: "p1"},
		{Role: models.RoleSpecialist, SpecialistID: "s1"},
		{Role: models.RoleGuest},
	}
	for _, v := range viewers {
		once := p.Scope(matrixRows, v)
		twice := p.Scope(once, v)
		if len(once) != len(twice) {
			t.Fatalf("role %s: scope not idempotent: %v vs %v", v.Role, ids(once), ids(twice))
		}
		for i := range once {
			if once[i].ID != twice[i].ID {
				t.Fatalf("role %s: scope not idempotent at %d", v.Role, i)
			}
		}
	}
}

func TestPermissions_Patient(t *testing.T) {
	var p Policy
	viewer := models.Viewer{Role: models.RolePatient, PatientID: "p1"}

	own := p.Permissions(matrixRows[0], viewer)
	if !own.Contains(ActionView) || !own.Contains(ActionCancel) || !own.Contains(ActionCreate) {
		t.Fatalf("patient on own row: expected view+cancel+create, got %v", own)
	}
	other := p.Permissions(matrixRows[2], viewer)
	if len(other) != 0 {
		t.Fatalf("patient on foreign row: expected no actions, got %v", other)
	}
}

func TestPermissions_Specialist(t *testing.T) {
	var p Policy
	viewer := models.Viewer{Role: models.RoleSpecialist, SpecialistID: "s1"}

	own := p.Permissions(matrixRows[0], viewer)
	if !own.Contains(ActionView) {
		t.Fatalf("specialist on own row: expected view, got %v", own)
	}
	if own.Contains(ActionCancel) || own.Contains(ActionCreate) {
		t.Fatalf("specialist must be view-only, got %v", own)
	}
	if got := p.Permissions(matrixRows[1], viewer); len(got) != 0 {
		t.Fatalf("specialist on foreign row: expected no actions, got %v", got)
	}
}

func TestPermissions_AdminCancelToggle(t *testing.T) {
	admin := models.Viewer{Role: models.RoleAdmin}

	viewOnly := Policy{}.Permissions(matrixRows[0], admin)
	if !viewOnly.Contains(ActionView) || viewOnly.Contains(ActionCancel) {
		t.Fatalf("default policy: admin is view-only, got %v", viewOnly)
	}

	withCancel := Policy{AdminCanCancel: true}.Permissions(matrixRows[0], admin)
	if !withCancel.Contains(ActionCancel) {
		t.Fatalf("AdminCanCancel: expected cancel permitted, got %v", withCancel)
	}
}

func TestCanSchedule(t *testing.T) {
	var p Policy
	cases := []struct {
		viewer models.Viewer
		want   bool
	}{
		{models.Viewer{Role: models.RoleAdmin}, true},
		{models.Viewer{Role: models.RolePatient, PatientID: "p1"}, true},
		{models.Viewer{Role: models.RolePatient}, false},
		{models.Viewer{Role: models.RoleSpecialist, SpecialistID: "s1"}, false},
		{models.Viewer{Role: models.RoleGuest}, false},
	}
	for _, c := range cases {
		if got := p.CanSchedule(c.viewer); got != c.want {
			t.Fatalf("CanSchedule(%s linked=%q%q) = %v, want %v",
				c.viewer.Role, c.viewer.PatientID, c.viewer.SpecialistID, got, c.want)
		}
	}
}

package patient

import (
	"context"
	"errors"
	"strings"
	"testing"

	"visioncare/models"

	"go.mongodb.org/mongo-driver/bson"
)

type fakePatientRepo struct {
	patients []models.Patient
	created  []models.Patient
	updates  map[string]bson.M
}

func (f *fakePatientRepo) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	for _, p := range f.patients {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, nil
}
func (f *fakePatientRepo) GetByUserID(ctx context.Context, userID string) (*models.Patient, error) {
	return nil, nil
}
func (f *fakePatientRepo) GetByIDs(ctx context.Context, ids []string) (map[string]models.Patient, error) {
	return nil, nil
}

func (f *fakePatientRepo) List(ctx context.Context, limit int) ([]models.Patient, error) {
	if len(f.patients) > limit {
		return f.patients[:limit], nil
	}
	return f.patients, nil
}

func (f *fakePatientRepo) SearchByName(ctx context.Context, q string, limit int) ([]models.Patient, error) {
	var out []models.Patient
	for _, p := range f.patients {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(q)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePatientRepo) SearchByDocument(ctx context.Context, q string, limit int) ([]models.Patient, error) {
	var out []models.Patient
	for _, p := range f.patients {
		if strings.Contains(p.Document, q) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePatientRepo) Create(ctx context.Context, patient *models.Patient) error {
	f.created = append(f.created, *patient)
	return nil
}

func (f *fakePatientRepo) UpdateFields(ctx context.Context, id string, fields bson.M) error {
	if f.updates == nil {
		f.updates = map[string]bson.M{}
	}
	f.updates[id] = fields
	return nil
}

func (f *fakePatientRepo) Delete(ctx context.Context, id string) error {
	for i, p := range f.patients {
		if p.ID == id {
			f.patients = append(f.patients[:i], f.patients[i+1:]...)
			return nil
		}
	}
	return errors.New("patient not found")
}

func TestSearchFallsBackToDocument(t *testing.T) {
	repo := &fakePatientRepo{patients: []models.Patient{
		{ID: "p1", Name: "Laura Gomez", Document: "1012345678"},
		{ID: "p2", Name: "Pedro Ruiz", Document: "52998877"},
	}}
	svc := NewPatientService(repo)

	got, err := svc.Search(context.Background(), "laura")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "p1" {
		t.Fatalf("name search = %+v, want p1", got)
	}

	// No name matches the digits; the document index answers instead.
	got, err = svc.Search(context.Background(), "52998")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "p2" {
		t.Fatalf("document search = %+v, want p2", got)
	}
}

func TestSearchBlankQueryLists(t *testing.T) {
	repo := &fakePatientRepo{patients: []models.Patient{
		{ID: "p1", Name: "Laura Gomez", Document: "1012345678"},
	}}
	svc := NewPatientService(repo)

	got, err := svc.Search(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("blank query returned %d rows, want the listing", len(got))
	}
}

func TestCreateValidatesAndAssignsID(t *testing.T) {
	repo := &fakePatientRepo{}
	svc := NewPatientService(repo)

	err := svc.Create(context.Background(), &models.Patient{Name: "  ", Document: "123"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank name: got %v, want ErrInvalidInput", err)
	}
	err = svc.Create(context.Background(), &models.Patient{Name: "Ana", Document: ""})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank document: got %v, want ErrInvalidInput", err)
	}
	err = svc.Create(context.Background(), &models.Patient{Name: "Ana", Document: "123", BirthDate: "01/02/1990"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bad birth date: got %v, want ErrInvalidInput", err)
	}

	p := &models.Patient{Name: "Ana Torres", Document: "123", BirthDate: "1990-02-01"}
	if err := svc.Create(context.Background(), p); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if p.ID == "" {
		t.Fatal("expected a generated patient ID")
	}
	if len(repo.created) != 1 {
		t.Fatalf("stored %d patients, want 1", len(repo.created))
	}
}

func TestUpdateTranslatesFieldNames(t *testing.T) {
	repo := &fakePatientRepo{patients: []models.Patient{
		{ID: "p1", Name: "Ana Torres", Document: "123"},
	}}
	svc := NewPatientService(repo)

	err := svc.Update(context.Background(), "p1", map[string]interface{}{
		"fechaNacimiento": "1990-02-01",
		"direccion":       "Calle 10 #4-21",
		"observaciones":   "alergia a la penicilina",
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	stored := repo.updates["p1"]
	if stored["fecha_nacimiento"] != "1990-02-01" {
		t.Fatalf("fechaNacimiento not remapped to fecha_nacimiento: %v", stored)
	}
	if stored["direccion"] != "Calle 10 #4-21" || stored["observaciones"] != "alergia a la penicilina" {
		t.Fatalf("fields not stored: %v", stored)
	}
	if _, ok := stored["fechaNacimiento"]; ok {
		t.Fatal("visible field name leaked into storage")
	}
}

func TestUpdateRejectsBadFields(t *testing.T) {
	repo := &fakePatientRepo{patients: []models.Patient{
		{ID: "p1", Name: "Ana Torres", Document: "123"},
	}}
	svc := NewPatientService(repo)

	for _, fields := range []map[string]interface{}{
		{"usuario_id": "u9"},                  // linkage is never editable
		{"id": "p9"},                          // identity is never editable
		{"correo": "x@y.co"},                  // unknown visible field
		{"fechaNacimiento": "01/02/1990"},     // malformed date
		{},                                    // nothing to do
	} {
		if err := svc.Update(context.Background(), "p1", fields); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("fields %v: got %v, want ErrInvalidInput", fields, err)
		}
	}
	if len(repo.updates) != 0 {
		t.Fatalf("rejected edits reached storage: %v", repo.updates)
	}

	err := svc.Update(context.Background(), "missing", map[string]interface{}{"nombre": "Ana"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing patient: got %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	repo := &fakePatientRepo{patients: []models.Patient{
		{ID: "p1", Name: "Ana Torres", Document: "123"},
	}}
	svc := NewPatientService(repo)

	if err := svc.Delete(context.Background(), "p1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if len(repo.patients) != 0 {
		t.Fatal("patient still stored after deletion")
	}

	if err := svc.Delete(context.Background(), "p1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

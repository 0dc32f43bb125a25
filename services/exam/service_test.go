package exam

import (
	"context"
	"errors"
	"testing"
	"time"

	"visioncare/models"
	"visioncare/services/directory"

	"go.mongodb.org/mongo-driver/bson"
)

type fakeExamRepo struct {
	exams      map[string]models.Exam
	updates    map[string]bson.M
	failCreate bool
}

func newFakeExamRepo(exams ...models.Exam) *fakeExamRepo {
	f := &fakeExamRepo{exams: map[string]models.Exam{}, updates: map[string]bson.M{}}
	for _, e := range exams {
		f.exams[e.ID] = e
	}
	return f
}

func (f *fakeExamRepo) GetAll(ctx context.Context) ([]models.Exam, error) {
	var out []models.Exam
	for _, e := range f.exams {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeExamRepo) GetByPatient(ctx context.Context, patientID string) ([]models.Exam, error) {
	var out []models.Exam
	for _, e := range f.exams {
		if e.PatientID == patientID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeExamRepo) GetByID(ctx context.Context, id string) (*models.Exam, error) {
	if e, ok := f.exams[id]; ok {
		return &e, nil
	}
	return nil, nil
}

func (f *fakeExamRepo) Create(ctx context.Context, exam *models.Exam) error {
	if f.failCreate {
		return errors.New("insert failed")
	}
	f.exams[exam.ID] = *exam
	return nil
}

func (f *fakeExamRepo) UpdateFields(ctx context.Context, id string, fields bson.M) error {
	f.updates[id] = fields
	return nil
}

func (f *fakeExamRepo) Delete(ctx context.Context, id string) error {
	delete(f.exams, id)
	return nil
}

type fakeStorage struct {
	uploaded []string
	deleted  []string
}

func (f *fakeStorage) UploadFile(ctx context.Context, localFilePath, destFolder string) (string, error) {
	f.uploaded = append(f.uploaded, localFilePath)
	return destFolder + "/stored_" + localFilePath, nil
}

func (f *fakeStorage) DeleteFile(ctx context.Context, objectPath string) error {
	f.deleted = append(f.deleted, objectPath)
	return nil
}

func (f *fakeStorage) GetSignedURL(ctx context.Context, objectPath string, expires time.Duration) (string, error) {
	return "https://signed.example/" + objectPath, nil
}

type fakePatientRepo struct{}

func (fakePatientRepo) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	return nil, nil
}
func (fakePatientRepo) GetByUserID(ctx context.Context, userID string) (*models.Patient, error) {
	return nil, nil
}
func (fakePatientRepo) GetByIDs(ctx context.Context, ids []string) (map[string]models.Patient, error) {
	out := make(map[string]models.Patient)
	for _, id := range ids {
		out[id] = models.Patient{ID: id, Name: "Paciente " + id}
	}
	return out, nil
}
func (fakePatientRepo) List(ctx context.Context, limit int) ([]models.Patient, error) {
	return nil, nil
}
func (fakePatientRepo) SearchByName(ctx context.Context, q string, limit int) ([]models.Patient, error) {
	return nil, nil
}
func (fakePatientRepo) SearchByDocument(ctx context.Context, q string, limit int) ([]models.Patient, error) {
	return nil, nil
}
func (fakePatientRepo) Create(ctx context.Context, patient *models.Patient) error { return nil }
func (fakePatientRepo) UpdateFields(ctx context.Context, id string, fields bson.M) error {
	return nil
}
func (fakePatientRepo) Delete(ctx context.Context, id string) error { return nil }

type fakeSpecialistRepo struct{}

func (fakeSpecialistRepo) GetByID(ctx context.Context, id string) (*models.Specialist, error) {
	return nil, nil
}
func (fakeSpecialistRepo) GetByUserID(ctx context.Context, userID string) (*models.Specialist, error) {
	return nil, nil
}
func (fakeSpecialistRepo) GetByIDs(ctx context.Context, ids []string) (map[string]models.Specialist, error) {
	return map[string]models.Specialist{}, nil
}
func (fakeSpecialistRepo) GetAll(ctx context.Context) ([]models.Specialist, error) {
	return nil, nil
}
func (fakeSpecialistRepo) Create(ctx context.Context, specialist *models.Specialist) error {
	return nil
}
func (fakeSpecialistRepo) DeleteByUserID(ctx context.Context, userID string) error { return nil }

type fakeUserRepo struct{}

func (fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error)    { return nil, nil }
func (fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, nil
}
func (fakeUserRepo) GetByIDs(ctx context.Context, ids []string) (map[string]models.User, error) {
	return map[string]models.User{}, nil
}
func (fakeUserRepo) GetAll(ctx context.Context) ([]models.User, error)       { return nil, nil }
func (fakeUserRepo) Create(ctx context.Context, user *models.User) error     { return nil }
func (fakeUserRepo) UpdateRole(ctx context.Context, id string, role models.Role) error {
	return nil
}
func (fakeUserRepo) Delete(ctx context.Context, id string) error { return nil }

func testLoader() directory.Loader {
	return directory.Loader{Patients: fakePatientRepo{}, Specialists: fakeSpecialistRepo{}, Users: fakeUserRepo{}}
}

func TestListScopedByRole(t *testing.T) {
	repo := newFakeExamRepo(
		models.Exam{ID: "e1", PatientID: "p1", Date: "2026-01-10"},
		models.Exam{ID: "e2", PatientID: "p2", Date: "2026-01-11"},
	)
	svc := NewExamService(repo, testLoader(), &fakeStorage{}, time.Hour)

	got, err := svc.List(context.Background(), models.Viewer{Role: models.RolePatient, PatientID: "p1"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "e1" {
		t.Fatalf("patient list = %+v, want only e1", got)
	}
	if got[0].PatientName == "" {
		t.Fatal("expected enriched patient name")
	}

	got, err = svc.List(context.Background(), models.Viewer{Role: models.RoleSpecialist, SpecialistID: "s1"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("specialist list has %d rows, want 2", len(got))
	}

	got, err = svc.List(context.Background(), models.Viewer{Role: models.RoleGuest})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("guest list has %d rows, want none", len(got))
	}
}

func TestCreateUploadsAndCleansUpOnFailure(t *testing.T) {
	repo := newFakeExamRepo()
	store := &fakeStorage{}
	svc := NewExamService(repo, testLoader(), store, time.Hour)

	exam := &models.Exam{PatientID: "p1", Date: "2026-03-01"}
	if err := svc.Create(context.Background(), exam, "resultado.pdf"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if exam.PDFPath != "p1/stored_resultado.pdf" {
		t.Fatalf("PDFPath = %q", exam.PDFPath)
	}
	if exam.ID == "" {
		t.Fatal("expected a generated exam ID")
	}

	repo.failCreate = true
	exam2 := &models.Exam{PatientID: "p1", Date: "2026-03-02"}
	if err := svc.Create(context.Background(), exam2, "otro.pdf"); err == nil {
		t.Fatal("expected Create to fail")
	}
	if len(store.deleted) != 1 || store.deleted[0] != "p1/stored_otro.pdf" {
		t.Fatalf("orphaned file not removed, deleted = %v", store.deleted)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := NewExamService(newFakeExamRepo(), testLoader(), &fakeStorage{}, time.Hour)

	for _, exam := range []*models.Exam{
		{Date: "2026-03-01"},                     // no patient
		{PatientID: "p1"},                        // no date
		{PatientID: "p1", Date: "01-03-2026"},    // malformed date
	} {
		if err := svc.Create(context.Background(), exam, ""); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("exam %+v: got %v, want ErrInvalidInput", exam, err)
		}
	}
}

func TestUpdateTranslatesFieldNames(t *testing.T) {
	repo := newFakeExamRepo(models.Exam{ID: "e1", PatientID: "p1", Date: "2026-01-10"})
	svc := NewExamService(repo, testLoader(), &fakeStorage{}, time.Hour)

	err := svc.Update(context.Background(), "e1", map[string]interface{}{
		"archivos": "p1/nuevo.pdf",
		"notas":    "control anual",
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	stored := repo.updates["e1"]
	if stored["pdf_path"] != "p1/nuevo.pdf" {
		t.Fatalf("archivos not remapped to pdf_path: %v", stored)
	}
	if stored["notas"] != "control anual" {
		t.Fatalf("notas not stored: %v", stored)
	}
	if _, ok := stored["archivos"]; ok {
		t.Fatal("visible field name leaked into storage")
	}
}

func TestUpdateRejectsUnknownAndLinkageFields(t *testing.T) {
	repo := newFakeExamRepo(models.Exam{ID: "e1", PatientID: "p1", Date: "2026-01-10"})
	svc := NewExamService(repo, testLoader(), &fakeStorage{}, time.Hour)

	for _, fields := range []map[string]interface{}{
		{"resultado": "x"},           // unknown visible field
		{"paciente": "p2"},           // linkage is never editable
		{"especialista": "s9"},       // linkage is never editable
		{},                           // nothing to do
	} {
		if err := svc.Update(context.Background(), "e1", fields); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("fields %v: got %v, want ErrInvalidInput", fields, err)
		}
	}
	if len(repo.updates) != 0 {
		t.Fatalf("rejected edits reached storage: %v", repo.updates)
	}
}

func TestDeleteRemovesStoredFile(t *testing.T) {
	repo := newFakeExamRepo(models.Exam{ID: "e1", PatientID: "p1", Date: "2026-01-10", PDFPath: "p1/x.pdf"})
	store := &fakeStorage{}
	svc := NewExamService(repo, testLoader(), store, time.Hour)

	if err := svc.Delete(context.Background(), "e1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if len(store.deleted) != 1 || store.deleted[0] != "p1/x.pdf" {
		t.Fatalf("stored file not removed, deleted = %v", store.deleted)
	}

	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestFileURLOwnership(t *testing.T) {
	repo := newFakeExamRepo(
		models.Exam{ID: "e1", PatientID: "p1", Date: "2026-01-10", PDFPath: "p1/x.pdf"},
		models.Exam{ID: "e2", PatientID: "p2", Date: "2026-01-11"},
	)
	svc := NewExamService(repo, testLoader(), &fakeStorage{}, time.Hour)

	url, err := svc.FileURL(context.Background(), models.Viewer{Role: models.RolePatient, PatientID: "p1"}, "e1")
	if err != nil {
		t.Fatalf("FileURL failed: %v", err)
	}
	if url != "https://signed.example/p1/x.pdf" {
		t.Fatalf("url = %q", url)
	}

	if _, err := svc.FileURL(context.Background(), models.Viewer{Role: models.RolePatient, PatientID: "p2"}, "e1"); !errors.Is(err, ErrNotPermitted) {
		t.Fatalf("foreign exam: got %v, want ErrNotPermitted", err)
	}
	if _, err := svc.FileURL(context.Background(), models.Viewer{Role: models.RoleGuest}, "e1"); !errors.Is(err, ErrNotPermitted) {
		t.Fatalf("guest: got %v, want ErrNotPermitted", err)
	}
	if _, err := svc.FileURL(context.Background(), models.Viewer{Role: models.RoleAdmin}, "e2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("no stored file: got %v, want ErrNotFound", err)
	}
	if _, err := svc.FileURL(context.Background(), models.Viewer{Role: models.RoleAdmin}, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing exam: got %v, want ErrNotFound", err)
	}
}

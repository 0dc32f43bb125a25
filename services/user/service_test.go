package user

import (
	"context"
	"errors"
	"testing"

	"visioncare/models"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	byID     map[string]models.User
	byEmail  map[string]models.User
	failNext bool
}

func newFakeUserRepo(users ...models.User) *fakeUserRepo {
	f := &fakeUserRepo{byID: map[string]models.User{}, byEmail: map[string]models.User{}}
	for _, u := range users {
		f.byID[u.ID] = u
		f.byEmail[u.Email] = u
	}
	return f
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := f.byID[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return &u, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByIDs(ctx context.Context, ids []string) (map[string]models.User, error) {
	out := make(map[string]models.User)
	for _, id := range ids {
		if u, ok := f.byID[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (f *fakeUserRepo) GetAll(ctx context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range f.byID {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	f.byID[user.ID] = *user
	f.byEmail[user.Email] = *user
	return nil
}

func (f *fakeUserRepo) UpdateRole(ctx context.Context, id string, role models.Role) error {
	u := f.byID[id]
	u.Role = role
	f.byID[id] = u
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	u, ok := f.byID[id]
	if !ok {
		return errors.New("user not found")
	}
	delete(f.byEmail, u.Email)
	delete(f.byID, id)
	return nil
}

type fakePatientRepo struct {
	byUserID map[string]models.Patient
	created  []models.Patient
	failNext bool
}

func (f *fakePatientRepo) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	return nil, nil
}

func (f *fakePatientRepo) GetByUserID(ctx context.Context, userID string) (*models.Patient, error) {
	if p, ok := f.byUserID[userID]; ok {
		return &p, nil
	}
	return nil, nil
}

func (f *fakePatientRepo) GetByIDs(ctx context.Context, ids []string) (map[string]models.Patient, error) {
	return nil, nil
}
func (f *fakePatientRepo) List(ctx context.Context, limit int) ([]models.Patient, error) {
	return nil, nil
}
func (f *fakePatientRepo) SearchByName(ctx context.Context, q string, limit int) ([]models.Patient, error) {
	return nil, nil
}
func (f *fakePatientRepo) SearchByDocument(ctx context.Context, q string, limit int) ([]models.Patient, error) {
	return nil, nil
}

func (f *fakePatientRepo) Create(ctx context.Context, patient *models.Patient) error {
	if f.failNext {
		f.failNext = false
		return errors.New("insert failed")
	}
	f.created = append(f.created, *patient)
	return nil
}

func (f *fakePatientRepo) UpdateFields(ctx context.Context, id string, fields bson.M) error {
	return nil
}
func (f *fakePatientRepo) Delete(ctx context.Context, id string) error { return nil }

type fakeSpecialistRepo struct {
	byUserID map[string]models.Specialist
	all      []models.Specialist
	created  []models.Specialist
	failNext bool
}

func (f *fakeSpecialistRepo) GetByID(ctx context.Context, id string) (*models.Specialist, error) {
	return nil, nil
}

func (f *fakeSpecialistRepo) GetByUserID(ctx context.Context, userID string) (*models.Specialist, error) {
	if s, ok := f.byUserID[userID]; ok {
		return &s, nil
	}
	return nil, nil
}

func (f *fakeSpecialistRepo) GetByIDs(ctx context.Context, ids []string) (map[string]models.Specialist, error) {
	return nil, nil
}

func (f *fakeSpecialistRepo) GetAll(ctx context.Context) ([]models.Specialist, error) {
	return f.all, nil
}

func (f *fakeSpecialistRepo) Create(ctx context.Context, specialist *models.Specialist) error {
	if f.failNext {
		f.failNext = false
		return errors.New("insert failed")
	}
	f.created = append(f.created, *specialist)
	return nil
}

func (f *fakeSpecialistRepo) DeleteByUserID(ctx context.Context, userID string) error { return nil }

type fakeSessionStore struct {
	saved map[string]models.Viewer
}

func (f *fakeSessionStore) Save(tokenHash string, viewer models.Viewer) error {
	if f.saved == nil {
		f.saved = map[string]models.Viewer{}
	}
	f.saved[tokenHash] = viewer
	return nil
}

func (f *fakeSessionStore) Delete(tokenHash string) error {
	delete(f.saved, tokenHash)
	return nil
}

func newTestService(users *fakeUserRepo, patients *fakePatientRepo, specialists *fakeSpecialistRepo, sessions *fakeSessionStore) UserService {
	if patients.byUserID == nil {
		patients.byUserID = map[string]models.Patient{}
	}
	if specialists.byUserID == nil {
		specialists.byUserID = map[string]models.Specialist{}
	}
	return NewUserService(users, patients, specialists, sessions)
}

func TestRegisterCreatesLinkedRecords(t *testing.T) {
	users := newFakeUserRepo()
	patients := &fakePatientRepo{}
	specialists := &fakeSpecialistRepo{}
	svc := newTestService(users, patients, specialists, &fakeSessionStore{})

	u, err := svc.Register(context.Background(), RegisterRequest{
		Name: "Ana Torres", Email: "Ana@Clinic.co", Password: "secret-pass", Role: "paciente", Document: "123",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if u.Email != "ana@clinic.co" {
		t.Fatalf("email not normalized: %q", u.Email)
	}
	if u.Role != models.RolePatient {
		t.Fatalf("role = %q", u.Role)
	}
	if len(patients.created) != 1 || patients.created[0].UserID != u.ID {
		t.Fatalf("patient record not linked: %+v", patients.created)
	}
	if u.PasswordHash == "secret-pass" || u.PasswordHash == "" {
		t.Fatal("password stored unhashed")
	}

	sp, err := svc.Register(context.Background(), RegisterRequest{
		Name: "Marta Diaz", Email: "marta@clinic.co", Password: "secret-pass", Role: "especialista", Specialty: "Retina",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if len(specialists.created) != 1 || specialists.created[0].UserID != sp.ID || specialists.created[0].Specialty != "Retina" {
		t.Fatalf("specialist record not linked: %+v", specialists.created)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(newFakeUserRepo(), &fakePatientRepo{}, &fakeSpecialistRepo{}, &fakeSessionStore{})

	cases := []RegisterRequest{
		{Email: "a@b.co", Password: "secret-pass"},                                       // no name
		{Name: "Ana", Email: "a@b.co", Password: "short"},                                // weak password
		{Name: "Ana", Email: "a@b.co", Password: "secret-pass", Role: "especialista"},    // no specialty
	}
	for i, req := range cases {
		if _, err := svc.Register(context.Background(), req); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: got %v, want ErrInvalidInput", i, err)
		}
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newFakeUserRepo(models.User{ID: "u1", Email: "ana@clinic.co"})
	svc := newTestService(users, &fakePatientRepo{}, &fakeSpecialistRepo{}, &fakeSessionStore{})

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name: "Ana", Email: "ana@clinic.co", Password: "secret-pass",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("got %v, want ErrEmailTaken", err)
	}
}

func TestRegisterRollsBackOnLinkedInsertFailure(t *testing.T) {
	users := newFakeUserRepo()
	specialists := &fakeSpecialistRepo{failNext: true}
	svc := newTestService(users, &fakePatientRepo{}, specialists, &fakeSessionStore{})

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name: "Marta", Email: "marta@clinic.co", Password: "secret-pass", Role: "especialista", Specialty: "Retina",
	})
	if err == nil {
		t.Fatal("expected Register to fail")
	}
	if len(users.byID) != 0 {
		t.Fatalf("profile survived the rollback: %v", users.byID)
	}
}

func TestAuthenticateResolvesViewerOnce(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret-pass"), bcrypt.MinCost)
	users := newFakeUserRepo(models.User{
		ID: "u1", Email: "ana@clinic.co", Role: "paciente", PasswordHash: string(hash),
	})
	patients := &fakePatientRepo{byUserID: map[string]models.Patient{
		"u1": {ID: "p1", UserID: "u1", Name: "Ana"},
	}}
	sessions := &fakeSessionStore{}
	svc := newTestService(users, patients, &fakeSpecialistRepo{}, sessions)

	res, err := svc.Authenticate(context.Background(), "Ana@Clinic.co ", "secret-pass")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if res.Token == "" {
		t.Fatal("expected a signed token")
	}
	if res.Viewer.Role != models.RolePatient || res.Viewer.PatientID != "p1" {
		t.Fatalf("viewer = %+v, want linked patient p1", res.Viewer)
	}
	if len(sessions.saved) != 1 {
		t.Fatalf("saved %d sessions, want 1", len(sessions.saved))
	}
	for _, v := range sessions.saved {
		if v.PatientID != "p1" {
			t.Fatalf("cached viewer = %+v", v)
		}
	}

	if _, err := svc.Authenticate(context.Background(), "ana@clinic.co", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Authenticate(context.Background(), "nobody@clinic.co", "secret-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: got %v, want ErrInvalidCredentials", err)
	}
}

func TestLogoutDropsCachedSession(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret-pass"), bcrypt.MinCost)
	users := newFakeUserRepo(models.User{
		ID: "u1", Email: "ana@clinic.co", Role: "paciente", PasswordHash: string(hash),
	})
	sessions := &fakeSessionStore{}
	svc := newTestService(users, &fakePatientRepo{}, &fakeSpecialistRepo{}, sessions)

	if _, err := svc.Authenticate(context.Background(), "ana@clinic.co", "secret-pass"); err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if len(sessions.saved) != 1 {
		t.Fatalf("saved %d sessions, want 1", len(sessions.saved))
	}

	var tokenHash string
	for k := range sessions.saved {
		tokenHash = k
	}
	if err := svc.Logout(tokenHash); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if len(sessions.saved) != 0 {
		t.Fatalf("session survived logout: %v", sessions.saved)
	}
}

func TestResolveViewerMissingLinkage(t *testing.T) {
	svc := newTestService(newFakeUserRepo(), &fakePatientRepo{}, &fakeSpecialistRepo{}, &fakeSessionStore{})

	v := svc.ResolveViewer(context.Background(), &models.User{ID: "u1", Role: "paciente"})
	if v.Role != models.RolePatient || v.PatientID != "" {
		t.Fatalf("viewer = %+v, want unlinked patient", v)
	}

	v = svc.ResolveViewer(context.Background(), &models.User{ID: "u2", Role: "algo raro"})
	if v.Role != models.RoleGuest {
		t.Fatalf("viewer role = %q, want guest", v.Role)
	}
}

func TestUpdateRole(t *testing.T) {
	users := newFakeUserRepo(models.User{ID: "u1", Email: "ana@clinic.co", Role: "paciente"})
	svc := newTestService(users, &fakePatientRepo{}, &fakeSpecialistRepo{}, &fakeSessionStore{})

	if err := svc.UpdateRole(context.Background(), "u1", "administrador"); err != nil {
		t.Fatalf("UpdateRole failed: %v", err)
	}
	if users.byID["u1"].Role != models.RoleAdmin {
		t.Fatalf("role = %q, want admin", users.byID["u1"].Role)
	}

	if err := svc.UpdateRole(context.Background(), "u1", "superuser"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown role: got %v, want ErrInvalidInput", err)
	}
	if err := svc.UpdateRole(context.Background(), "missing", "admin"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing user: got %v, want ErrNotFound", err)
	}
}

func TestListSpecialistsJoinsNames(t *testing.T) {
	users := newFakeUserRepo(models.User{ID: "u-s1", Name: "Dra. Marta Diaz"})
	specialists := &fakeSpecialistRepo{all: []models.Specialist{
		{ID: "s1", UserID: "u-s1", Specialty: "Optometria"},
		{ID: "s2", UserID: "u-gone", Specialty: "Retina"},
	}}
	svc := newTestService(users, &fakePatientRepo{}, specialists, &fakeSessionStore{})

	views, err := svc.ListSpecialists(context.Background())
	if err != nil {
		t.Fatalf("ListSpecialists failed: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("got %d specialists, want 2", len(views))
	}
	if views[0].Name != "Dra. Marta Diaz" {
		t.Fatalf("name = %q", views[0].Name)
	}
	if views[1].Name != "" {
		t.Fatalf("missing user should yield empty name, got %q", views[1].Name)
	}
}

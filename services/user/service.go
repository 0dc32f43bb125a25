package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	patientRepo "visioncare/database/repository/patient"
	specialistRepo "visioncare/database/repository/specialist"
	userRepo "visioncare/database/repository/user"
	"visioncare/models"
	"visioncare/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrEmailTaken means the email already belongs to a profile.
	ErrEmailTaken = errors.New("email is already registered")
	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNotFound means the user does not exist.
	ErrNotFound = errors.New("user not found")
	// ErrInvalidInput wraps validation failures of a user payload.
	ErrInvalidInput = errors.New("invalid user request")
)

// SessionStore persists resolved viewers keyed by token hash.
type SessionStore interface {
	Save(tokenHash string, viewer models.Viewer) error
	Delete(tokenHash string) error
}

// RegisterRequest carries a sign-up payload.
type RegisterRequest struct {
	Name      string `json:"nombre" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"telefono"`
	Password  string `json:"password" binding:"required"`
	Role      string `json:"rol"`
	Specialty string `json:"especialidad"` // required when registering a specialist
	Document  string `json:"documento"`    // required when registering a patient
}

// AuthResult is what a successful login produces: the signed token plus the
// viewer resolved for this session.
type AuthResult struct {
	Token  string        `json:"token"`
	User   *models.User  `json:"user"`
	Viewer models.Viewer `json:"viewer"`
}

// UserService owns profiles, registration and sign-in.
type UserService interface {
	// Register creates a profile plus the linked patient or specialist
	// record its role calls for. A failed linked insert rolls the profile
	// back.
	Register(ctx context.Context, req RegisterRequest) (*models.User, error)
	// Authenticate verifies credentials, resolves the viewer once, caches
	// it under the token hash and returns the signed token.
	Authenticate(ctx context.Context, email, password string) (*AuthResult, error)
	// Logout discards the viewer session cached under the token hash. The
	// token itself stays valid until it expires; without a session the next
	// request rebuilds the viewer from the database.
	Logout(tokenHash string) error
	// ResolveViewer builds the session viewer for a user: normalized role
	// plus the linked patient/specialist lookup. Missing linkage degrades
	// to an unlinked viewer, not an error.
	ResolveViewer(ctx context.Context, user *models.User) models.Viewer
	// GetByID retrieves one profile.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// ListUsers retrieves all profiles, newest first.
	ListUsers(ctx context.Context) ([]models.User, error)
	// UpdateRole changes a user's stored role.
	UpdateRole(ctx context.Context, id, role string) error
	// ListSpecialists returns all specialists with their display names.
	ListSpecialists(ctx context.Context) ([]models.SpecialistView, error)
}

// DefaultUserService implements UserService.
type DefaultUserService struct {
	Users       userRepo.UserRepository
	Patients    patientRepo.PatientRepository
	Specialists specialistRepo.SpecialistRepository
	Sessions    SessionStore
}

// NewUserService creates a new UserService.
func NewUserService(users userRepo.UserRepository, patients patientRepo.PatientRepository, specialists specialistRepo.SpecialistRepository, sessions SessionStore) UserService {
	return &DefaultUserService{Users: users, Patients: patients, Specialists: specialists, Sessions: sessions}
}

func (s *DefaultUserService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrInvalidInput)
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidInput)
	}

	role := models.ParseRole(req.Role)
	if role == models.RoleGuest {
		role = models.RolePatient
	}
	if role == models.RoleSpecialist && strings.TrimSpace(req.Specialty) == "" {
		return nil, fmt.Errorf("%w: specialty is required for specialists", ErrInvalidInput)
	}

	existing, err := s.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Role:         role,
		PasswordHash: string(hash),
	}
	if err := s.Users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// The linked record and the profile stand or fall together.
	switch role {
	case models.RoleSpecialist:
		sp := &models.Specialist{ID: uuid.New().String(), UserID: user.ID, Specialty: req.Specialty}
		if err := s.Specialists.Create(ctx, sp); err != nil {
			s.rollbackUser(ctx, user.ID)
			return nil, fmt.Errorf("failed to create specialist record: %w", err)
		}
	case models.RolePatient:
		p := &models.Patient{ID: uuid.New().String(), UserID: user.ID, Name: req.Name, Document: req.Document, Phone: req.Phone}
		if err := s.Patients.Create(ctx, p); err != nil {
			s.rollbackUser(ctx, user.ID)
			return nil, fmt.Errorf("failed to create patient record: %w", err)
		}
	}

	utils.GetLogger().Info("user registered",
		zap.String("userID", user.ID), zap.String("role", string(role)))
	return user, nil
}

func (s *DefaultUserService) rollbackUser(ctx context.Context, id string) {
	if err := s.Users.Delete(ctx, id); err != nil {
		utils.GetLogger().Error("failed to roll back user after linked insert failure",
			zap.String("userID", id), zap.Error(err))
	}
}

func (s *DefaultUserService) Authenticate(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID, user.Email, utils.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	viewer := s.ResolveViewer(ctx, user)
	if err := s.Sessions.Save(utils.HashToken(token), viewer); err != nil {
		return nil, fmt.Errorf("failed to save viewer session: %w", err)
	}

	return &AuthResult{Token: token, User: user, Viewer: viewer}, nil
}

func (s *DefaultUserService) Logout(tokenHash string) error {
	if err := s.Sessions.Delete(tokenHash); err != nil {
		return fmt.Errorf("failed to delete viewer session: %w", err)
	}
	return nil
}

func (s *DefaultUserService) ResolveViewer(ctx context.Context, user *models.User) models.Viewer {
	viewer := models.Viewer{UserID: user.ID, Role: models.ParseRole(string(user.Role))}

	switch viewer.Role {
	case models.RolePatient:
		p, err := s.Patients.GetByUserID(ctx, user.ID)
		if err != nil {
			utils.GetLogger().Warn("failed to resolve patient linkage",
				zap.String("userID", user.ID), zap.Error(err))
		} else if p != nil {
			viewer.PatientID = p.ID
		}
	case models.RoleSpecialist:
		sp, err := s.Specialists.GetByUserID(ctx, user.ID)
		if err != nil {
			utils.GetLogger().Warn("failed to resolve specialist linkage",
				zap.String("userID", user.ID), zap.Error(err))
		} else if sp != nil {
			viewer.SpecialistID = sp.ID
		}
	}
	return viewer
}

func (s *DefaultUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.Users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *DefaultUserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.Users.GetAll(ctx)
}

func (s *DefaultUserService) UpdateRole(ctx context.Context, id, role string) error {
	parsed := models.ParseRole(role)
	if parsed == models.RoleGuest {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}

	user, err := s.Users.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return ErrNotFound
	}

	if err := s.Users.UpdateRole(ctx, id, parsed); err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}

	// Existing sessions keep the old viewer until their token expires; the
	// change takes full effect on the user's next sign-in.
	utils.GetLogger().Info("user role updated",
		zap.String("userID", id), zap.String("role", string(parsed)))
	return nil
}

func (s *DefaultUserService) ListSpecialists(ctx context.Context) ([]models.SpecialistView, error) {
	specialists, err := s.Specialists.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list specialists: %w", err)
	}

	userIDs := make([]string, 0, len(specialists))
	for _, sp := range specialists {
		userIDs = append(userIDs, sp.UserID)
	}
	users, err := s.Users.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load specialist users: %w", err)
	}

	views := make([]models.SpecialistView, len(specialists))
	for i, sp := range specialists {
		views[i] = models.SpecialistView{Specialist: sp, Name: users[sp.UserID].Name}
	}
	return views, nil
}

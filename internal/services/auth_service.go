package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/yukikurage/tasknest-api/internal/constants"
	"github.com/yukikurage/tasknest-api/internal/models"
	"github.com/yukikurage/tasknest-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTaken        = errors.New("username already exists")
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// DashboardInvalidator drops cached statistics of a user.
type DashboardInvalidator interface {
	InvalidateDashboards(ctx context.Context, ownerID uint64)
}

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo    repository.UserRepository
	invalidator DashboardInvalidator
	validate    *validator.Validate
}

// NewAuthService creates a new AuthService. invalidator may be nil.
func NewAuthService(userRepo repository.UserRepository, invalidator DashboardInvalidator) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		invalidator: invalidator,
		validate:    validator.New(),
	}
}

// SignupInput represents the required information to create a new user.
type SignupInput struct {
	Username string
	Email    string
	Password string
}

// Signup creates a new user with a unique username and email.
func (s *AuthService) Signup(input SignupInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if len(username) < constants.MinUsernameLength || len(username) > constants.MaxUsernameLength {
		return nil, invalid("username", fmt.Sprintf("must be between %d and %d characters",
			constants.MinUsernameLength, constants.MaxUsernameLength))
	}

	email := strings.TrimSpace(input.Email)
	if err := s.validate.Var(email, "required,email,max=150"); err != nil {
		return nil, invalid("email", "must be a valid email address")
	}

	if len(input.Password) < constants.MinPasswordLength {
		return nil, invalid("password", fmt.Sprintf("must be at least %d characters", constants.MinPasswordLength))
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !isRecordNotFound(err) {
		return nil, &StorageError{Op: "check username", Err: err}
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !isRecordNotFound(err) {
		return nil, &StorageError{Op: "check email", Err: err}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, &StorageError{Op: "create user", Err: err}
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns the authenticated user.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(strings.TrimSpace(input.Email))
	if err != nil {
		if isRecordNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, &StorageError{Op: "find user", Err: err}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, &StorageError{Op: "find user", Err: err}
	}

	return user, nil
}

// DeleteAccount removes the user, their tasks and the tasks' comments.
func (s *AuthService) DeleteAccount(ctx context.Context, id uint64) error {
	if err := s.userRepo.DeleteWithTasks(id); err != nil {
		if isRecordNotFound(err) {
			return ErrUserNotFound
		}
		return &StorageError{Op: "delete account", Err: err}
	}

	if s.invalidator != nil {
		s.invalidator.InvalidateDashboards(ctx, id)
	}
	return nil
}

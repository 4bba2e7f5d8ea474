package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"innkeeper/internal/users/repository"
	"innkeeper/pkg/auth"
	"innkeeper/pkg/config"
	apperrors "innkeeper/pkg/errors"
	"innkeeper/pkg/model"
	"innkeeper/pkg/sanitizer"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 7

type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserService interface {
	Register(ctx context.Context, reg *Registration) (*model.User, string, error)
	Create(ctx context.Context, reg *Registration) (*model.User, error)
	Login(ctx context.Context, creds *Credentials) (*model.User, string, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.User, error)
	Update(ctx context.Context, id string, update *model.UserUpdate) (*model.User, error)
	Delete(ctx context.Context, id string) error
}

type userService struct {
	repo   repository.UserRepository
	tokens *auth.TokenManager
	cfg    *config.Config
}

func NewUserService(repo repository.UserRepository, tokens *auth.TokenManager, cfg *config.Config) UserService {
	return &userService{
		repo:   repo,
		tokens: tokens,
		cfg:    cfg,
	}
}

// Register creates a guest account and immediately issues a token, so a
// fresh signup can book without a second login round trip.
func (s *userService) Register(ctx context.Context, reg *Registration) (*model.User, string, error) {
	user, err := s.Create(ctx, reg)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID, auth.RoleUser)
	if err != nil {
		s.cfg.Log.Error("Failed to issue token", "user_id", user.ID, "error", err)
		return nil, "", apperrors.Internal("Failed to register user", err)
	}

	s.cfg.Log.Info("User registered", "id", user.ID, "username", user.Username)
	return user, token, nil
}

// Create persists an account without issuing a token. It backs both
// self-service registration and authenticated account creation.
func (s *userService) Create(ctx context.Context, reg *Registration) (*model.User, error) {
	reg.Username = sanitizer.TrimAndNormalize(reg.Username)
	reg.Email = sanitizer.NormalizeEmail(reg.Email)

	if err := validateRegistration(reg); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		s.cfg.Log.Error("Failed to hash password", "error", err)
		return nil, apperrors.Internal("Failed to create user", err)
	}

	user := &model.User{
		Username:     reg.Username,
		Email:        reg.Email,
		PasswordHash: string(hash),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict("Username or email already taken")
		}
		s.cfg.Log.Error("Failed to create user", "error", err)
		return nil, apperrors.Internal("Failed to create user", err)
	}

	return user, nil
}

// Login verifies credentials against the stored bcrypt hash. A missing
// account and a wrong password produce the same generic error so the
// response does not reveal which emails exist.
func (s *userService) Login(ctx context.Context, creds *Credentials) (*model.User, string, error) {
	email := sanitizer.NormalizeEmail(creds.Email)

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", apperrors.Unauthorized("Invalid login credentials")
		}
		s.cfg.Log.Error("Failed to look up user", "error", err)
		return nil, "", apperrors.Internal("Failed to log in", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, "", apperrors.Unauthorized("Invalid login credentials")
	}

	token, err := s.tokens.Issue(user.ID, auth.RoleUser)
	if err != nil {
		s.cfg.Log.Error("Failed to issue token", "user_id", user.ID, "error", err)
		return nil, "", apperrors.Internal("Failed to log in", err)
	}

	s.cfg.Log.Info("User logged in", "id", user.ID)
	return user, token, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "retrieve")
	}
	return user, nil
}

func (s *userService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.User, error) {
	users, err := s.repo.FindAll(ctx, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list users", "error", err)
		return nil, apperrors.Internal("Failed to retrieve users", err)
	}
	return users, nil
}

func (s *userService) Update(ctx context.Context, id string, update *model.UserUpdate) (*model.User, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}

	update.Username = sanitizer.TrimAndNormalize(update.Username)
	update.Email = sanitizer.NormalizeEmail(update.Email)

	if update.Username == "" && update.Email == "" {
		return nil, apperrors.InvalidInput("No updatable fields provided")
	}
	if update.Email != "" {
		if _, err := mail.ParseAddress(update.Email); err != nil {
			return nil, apperrors.Validation("Invalid email address", map[string]any{"email": update.Email})
		}
	}

	user, err := s.repo.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict("Username or email already taken")
		}
		return nil, s.mapRepoError(err, id, "update")
	}

	s.cfg.Log.Info("User updated", "id", id)
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("User ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapRepoError(err, id, "delete")
	}

	s.cfg.Log.Info("User deleted", "id", id)
	return nil
}

func (s *userService) mapRepoError(err error, id string, action string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFoundWithID("User", id)
	}
	if errors.Is(err, repository.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid user ID format")
	}
	return apperrors.Internal(fmt.Sprintf("Failed to %s user", action), err)
}

func validateRegistration(reg *Registration) error {
	fields := map[string]any{}
	if len(reg.Username) < 3 || len(reg.Username) > 50 {
		fields["username"] = "Username must be between 3 and 50 characters"
	}
	if _, err := mail.ParseAddress(reg.Email); err != nil {
		fields["email"] = "Invalid email address"
	}
	if len(reg.Password) < minPasswordLength {
		fields["password"] = fmt.Sprintf("Password must be at least %d characters", minPasswordLength)
	}
	if len(fields) == 0 {
		return nil
	}

	message := "Registration validation failed"
	if len(fields) == 1 {
		for _, v := range fields {
			message = v.(string)
		}
	}
	return apperrors.Validation(message, fields)
}

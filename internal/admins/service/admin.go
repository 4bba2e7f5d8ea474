package service

import (
	"context"
	"errors"

	"innkeeper/internal/admins/repository"
	"innkeeper/pkg/auth"
	"innkeeper/pkg/config"
	apperrors "innkeeper/pkg/errors"
	"innkeeper/pkg/model"

	"golang.org/x/crypto/bcrypt"
)

type AdminService interface {
	Setup(ctx context.Context) (*model.Admin, error)
	Login(ctx context.Context, username, password string) (*model.Admin, string, error)
}

type adminService struct {
	repo   repository.AdminRepository
	tokens *auth.TokenManager
	cfg    *config.Config
}

func NewAdminService(repo repository.AdminRepository, tokens *auth.TokenManager, cfg *config.Config) AdminService {
	return &adminService{
		repo:   repo,
		tokens: tokens,
		cfg:    cfg,
	}
}

// Setup bootstraps the single staff account from configured credentials. It
// runs once: any existing admin makes the call a 400. The unique index on
// username closes the gap between the count and the insert.
func (s *adminService) Setup(ctx context.Context) (*model.Admin, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to count admins", "error", err)
		return nil, apperrors.Internal("Failed to set up admin", err)
	}
	if count > 0 {
		return nil, apperrors.InvalidInput("Admin already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		s.cfg.Log.Error("Failed to hash admin password", "error", err)
		return nil, apperrors.Internal("Failed to set up admin", err)
	}

	admin := &model.Admin{
		Username:     s.cfg.AdminUsername,
		PasswordHash: string(hash),
	}

	if err := s.repo.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.InvalidInput("Admin already exists")
		}
		s.cfg.Log.Error("Failed to create admin", "error", err)
		return nil, apperrors.Internal("Failed to set up admin", err)
	}

	s.cfg.Log.Info("Admin account created", "username", admin.Username)
	return admin, nil
}

// Login checks staff credentials. Unknown usernames and wrong passwords are
// indistinguishable in the response.
func (s *adminService) Login(ctx context.Context, username, password string) (*model.Admin, string, error) {
	admin, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", apperrors.Unauthorized("Invalid login credentials")
		}
		s.cfg.Log.Error("Failed to look up admin", "error", err)
		return nil, "", apperrors.Internal("Failed to log in", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperrors.Unauthorized("Invalid login credentials")
	}

	token, err := s.tokens.Issue(admin.ID, auth.RoleAdmin)
	if err != nil {
		s.cfg.Log.Error("Failed to issue admin token", "admin_id", admin.ID, "error", err)
		return nil, "", apperrors.Internal("Failed to log in", err)
	}

	s.cfg.Log.Info("Admin logged in", "id", admin.ID)
	return admin, token, nil
}

package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"innkeeper/internal/users/repository"
	"innkeeper/pkg/auth"
	"innkeeper/pkg/config"
	apperrors "innkeeper/pkg/errors"
	"innkeeper/pkg/logger"
	"innkeeper/pkg/model"
)

type fakeUserRepository struct {
	mu     sync.Mutex
	nextID int
	users  map[string]*model.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*model.User)}
}

func (r *fakeUserRepository) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return repository.ErrDuplicate
		}
	}

	r.nextID++
	user.ID = fmt.Sprintf("user-%d", r.nextID)
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt

	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepository) FindByID(_ context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepository) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepository) FindByUsername(_ context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepository) FindAll(_ context.Context, limit int, offset int64) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []*model.User{}
	for _, user := range r.users {
		copied := *user
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeUserRepository) Update(_ context.Context, id string, update *model.UserUpdate) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if update.Username != "" {
		user.Username = update.Username
	}
	if update.Email != "" {
		user.Email = update.Email
	}
	user.UpdatedAt = time.Now().UTC()
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func newTestUserService(t *testing.T) (UserService, *fakeUserRepository, *auth.TokenManager) {
	t.Helper()
	cfg := &config.Config{
		Log: logger.New(logger.Config{Level: logger.ERROR, Output: io.Discard}),
	}
	repo := newFakeUserRepository()
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return NewUserService(repo, tokens, cfg), repo, tokens
}

func validRegistration() *Registration {
	return &Registration{
		Username: "janeguest",
		Email:    "jane@example.com",
		Password: "s3cret-pass",
	}
}

func TestRegister_IssuesUsableToken(t *testing.T) {
	svc, _, tokens := newTestUserService(t)

	user, token, err := svc.Register(context.Background(), validRegistration())
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.ID == "" {
		t.Error("expected assigned user ID")
	}
	if user.PasswordHash == "s3cret-pass" {
		t.Error("password stored in plaintext")
	}

	claims, err := tokens.Parse(token)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if claims.Subject != user.ID {
		t.Errorf("token subject = %q, want %q", claims.Subject, user.ID)
	}
	if claims.Role != auth.RoleUser {
		t.Errorf("token role = %q, want %q", claims.Role, auth.RoleUser)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc, _, _ := newTestUserService(t)

	tests := []struct {
		name   string
		mutate func(*Registration)
	}{
		{"short username", func(r *Registration) { r.Username = "ab" }},
		{"bad email", func(r *Registration) { r.Email = "not-an-email" }},
		{"short password", func(r *Registration) { r.Password = "short" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := validRegistration()
			tt.mutate(reg)

			_, _, err := svc.Register(context.Background(), reg)
			if err == nil {
				t.Fatal("Register() = nil, want validation error")
			}
			if appErr := apperrors.AsAppError(err); appErr.HTTPStatus != 400 {
				t.Errorf("HTTP status = %d, want 400", appErr.HTTPStatus)
			}
		})
	}
}

func TestCreate_NoTokenIssued(t *testing.T) {
	svc, repo, _ := newTestUserService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, validRegistration())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if user.ID == "" {
		t.Error("expected assigned user ID")
	}
	if user.PasswordHash == "s3cret-pass" {
		t.Error("password stored in plaintext")
	}

	stored, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if stored.Username != "janeguest" {
		t.Errorf("username = %q, want janeguest", stored.Username)
	}

	// The created account can log in with the supplied password.
	if _, _, err := svc.Login(ctx, &Credentials{Email: "jane@example.com", Password: "s3cret-pass"}); err != nil {
		t.Errorf("Login() after Create error = %v", err)
	}
}

func TestCreate_DuplicateUsername(t *testing.T) {
	svc, _, _ := newTestUserService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, validRegistration()); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	dup := validRegistration()
	dup.Email = "other@example.com"
	_, err := svc.Create(ctx, dup)
	if err == nil {
		t.Fatal("Create() = nil, want conflict")
	}
	if appErr := apperrors.AsAppError(err); appErr.HTTPStatus != 409 {
		t.Errorf("HTTP status = %d, want 409", appErr.HTTPStatus)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestUserService(t)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, validRegistration()); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	dup := validRegistration()
	dup.Username = "otherguest"
	_, _, err := svc.Register(ctx, dup)
	if err == nil {
		t.Fatal("Register() = nil, want conflict")
	}
	if appErr := apperrors.AsAppError(err); appErr.HTTPStatus != 409 {
		t.Errorf("HTTP status = %d, want 409", appErr.HTTPStatus)
	}
}

func TestLogin(t *testing.T) {
	svc, _, _ := newTestUserService(t)
	ctx := context.Background()

	registered, _, err := svc.Register(ctx, validRegistration())
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  bool
	}{
		{"correct credentials", "jane@example.com", "s3cret-pass", false},
		{"email is case-insensitive", "Jane@Example.COM", "s3cret-pass", false},
		{"wrong password", "jane@example.com", "wrong-pass", true},
		{"unknown email", "nobody@example.com", "s3cret-pass", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, token, err := svc.Login(ctx, &Credentials{Email: tt.email, Password: tt.password})
			if tt.wantErr {
				if err == nil {
					t.Fatal("Login() = nil, want error")
				}
				appErr := apperrors.AsAppError(err)
				if appErr.HTTPStatus != 401 {
					t.Errorf("HTTP status = %d, want 401", appErr.HTTPStatus)
				}
				// Same generic message whether the account exists or not.
				if appErr.Message != "Invalid login credentials" {
					t.Errorf("message = %q, want generic credentials message", appErr.Message)
				}
				return
			}
			if err != nil {
				t.Fatalf("Login() error = %v", err)
			}
			if user.ID != registered.ID {
				t.Errorf("user ID = %q, want %q", user.ID, registered.ID)
			}
			if token == "" {
				t.Error("expected a token")
			}
		})
	}
}

func TestUpdate(t *testing.T) {
	svc, _, _ := newTestUserService(t)
	ctx := context.Background()

	user, _, err := svc.Register(ctx, validRegistration())
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	updated, err := svc.Update(ctx, user.ID, &model.UserUpdate{Email: "new@example.com"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Email != "new@example.com" {
		t.Errorf("email = %q, want new@example.com", updated.Email)
	}

	if _, err := svc.Update(ctx, user.ID, &model.UserUpdate{}); err == nil {
		t.Error("Update() with no fields = nil, want error")
	}
	if _, err := svc.Update(ctx, user.ID, &model.UserUpdate{Email: "bad"}); err == nil {
		t.Error("Update() with bad email = nil, want error")
	}
}

func TestDelete(t *testing.T) {
	svc, _, _ := newTestUserService(t)
	ctx := context.Background()

	user, _, err := svc.Register(ctx, validRegistration())
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if err := svc.Delete(ctx, user.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	_, err = svc.GetByID(ctx, user.ID)
	if err == nil {
		t.Fatal("GetByID() after delete = nil, want not found")
	}
	if appErr := apperrors.AsAppError(err); appErr.HTTPStatus != 404 {
		t.Errorf("HTTP status = %d, want 404", appErr.HTTPStatus)
	}

	if err := svc.Delete(ctx, user.ID); err == nil {
		t.Error("second Delete() = nil, want not found")
	}
}

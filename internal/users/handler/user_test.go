package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"innkeeper/internal/users/service"
	"innkeeper/pkg/auth"
	"innkeeper/pkg/logger"
	"innkeeper/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type stubUserService struct {
	user  *model.User
	users []*model.User
	token string
	err   error
}

func (s *stubUserService) Register(_ context.Context, reg *service.Registration) (*model.User, string, error) {
	return s.user, s.token, s.err
}

func (s *stubUserService) Create(_ context.Context, reg *service.Registration) (*model.User, error) {
	return s.user, s.err
}

func (s *stubUserService) Login(_ context.Context, creds *service.Credentials) (*model.User, string, error) {
	return s.user, s.token, s.err
}

func (s *stubUserService) GetByID(_ context.Context, id string) (*model.User, error) {
	return s.user, s.err
}

func (s *stubUserService) GetAll(_ context.Context, limit int, offset int64) ([]*model.User, error) {
	return s.users, s.err
}

func (s *stubUserService) Update(_ context.Context, id string, update *model.UserUpdate) (*model.User, error) {
	return s.user, s.err
}

func (s *stubUserService) Delete(_ context.Context, id string) error {
	return s.err
}

func newTestRouter(t *testing.T, svc service.UserService) (*httprouter.Router, *auth.TokenManager) {
	t.Helper()
	log := logger.New(logger.Config{Level: logger.ERROR, Output: io.Discard})
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	router := httprouter.New()
	NewUserHandler(svc, tokens, log).RegisterRoutes(router)
	return router, tokens
}

func TestCreate_RequiresToken(t *testing.T) {
	stub := &stubUserService{user: &model.User{ID: "user-1", Username: "janeguest"}}
	router, tokens := newTestRouter(t, stub)

	body := `{"username":"janeguest","email":"jane@example.com","password":"s3cret-pass"}`

	r := httptest.NewRequest(http.MethodPost, "/api/v1/users", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status without token = %d, want 401", w.Code)
	}

	token, err := tokens.Issue("admin-1", auth.RoleAdmin)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	r = httptest.NewRequest(http.MethodPost, "/api/v1/users", strings.NewReader(body))
	r.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusCreated {
		t.Fatalf("status with token = %d, want 201; body: %s", w.Code, w.Body.String())
	}

	var created model.User
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("response is not a user: %v", err)
	}
	if created.ID != "user-1" {
		t.Errorf("created = %+v", created)
	}
	// No token in the create response; that is register's job.
	if strings.Contains(w.Body.String(), "token") {
		t.Errorf("create response leaked a token field: %s", w.Body.String())
	}
}

func TestRegister_ReturnsTokenAndUser(t *testing.T) {
	stub := &stubUserService{
		user:  &model.User{ID: "user-1", Username: "janeguest"},
		token: "signed-token",
	}
	router, _ := newTestRouter(t, stub)

	body := `{"username":"janeguest","email":"jane@example.com","password":"s3cret-pass"}`
	r := httptest.NewRequest(http.MethodPost, "/api/v1/users/register", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}

	var resp struct {
		Token string      `json:"token"`
		User  *model.User `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response not decodable: %v", err)
	}
	if resp.Token != "signed-token" || resp.User == nil || resp.User.ID != "user-1" {
		t.Errorf("response = %+v", resp)
	}
}

package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
)

func TestRequire(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, err := tm.Issue("user-123", RoleUser)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	var gotSubject, gotRole string
	protected := Require(tm, func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotSubject = Subject(r.Context())
		gotRole = Role(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"valid token", "Bearer " + token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"malformed token", "Bearer garbage", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotSubject, gotRole = "", ""

			r := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				r.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			protected(w, r, nil)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			if tt.wantStatus == http.StatusOK {
				if gotSubject != "user-123" || gotRole != RoleUser {
					t.Errorf("context subject/role = %q/%q", gotSubject, gotRole)
				}
			} else {
				if !strings.Contains(w.Body.String(), "Please authenticate.") {
					t.Errorf("401 body = %q, want generic message", w.Body.String())
				}
			}
		})
	}
}

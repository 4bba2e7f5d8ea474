package auth

import (
	"context"
	"net/http"
	"strings"

	httputil "innkeeper/pkg/http"

	"github.com/julienschmidt/httprouter"
)

type contextKey string

const (
	SubjectKey contextKey = "auth_subject"
	RoleKey    contextKey = "auth_role"
)

// Require wraps a route with bearer-token verification. The 401 body is the
// same whether the token is absent, malformed or expired.
func Require(tm *TokenManager, next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		claims, err := tm.Parse(bearerToken(r))
		if err != nil {
			writeUnauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), SubjectKey, claims.Subject)
		ctx = context.WithValue(ctx, RoleKey, claims.Role)
		next(w, r.WithContext(ctx), ps)
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func writeUnauthorized(w http.ResponseWriter) {
	_ = httputil.WriteJSON(w, http.StatusUnauthorized, httputil.ErrorResponse{
		Error: "Please authenticate.",
	})
}

// Subject returns the authenticated account id, if any.
func Subject(ctx context.Context) string {
	if v, ok := ctx.Value(SubjectKey).(string); ok {
		return v
	}
	return ""
}

// Role returns the authenticated role, if any.
func Role(ctx context.Context) string {
	if v, ok := ctx.Value(RoleKey).(string); ok {
		return v
	}
	return ""
}

package httpserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type ctxKey int

const subjectCtxKey ctxKey = iota

// Subject returns the verified subject identifier for the request, or ""
// for an anonymous request. Handlers pass it explicitly into the services;
// nothing below the HTTP layer reads it from context.
func Subject(ctx context.Context) string {
	s, _ := ctx.Value(subjectCtxKey).(string)
	return s
}

// Identity verifies an optional Bearer token and stashes its subject claim.
// A missing header leaves the request anonymous (the services reject
// anonymous mutations); a present-but-invalid token is rejected here.
func Identity(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				next.ServeHTTP(w, r)
				return
			}
			raw := strings.TrimPrefix(auth, "Bearer ")
			if raw == auth {
				writeProblem(w, http.StatusUnauthorized, "Unauthorized", "authorization header is not a bearer token")
				return
			}

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				writeProblem(w, http.StatusUnauthorized, "Unauthorized", "invalid token")
				return
			}
			sub, err := tok.Claims.GetSubject()
			if err != nil || sub == "" {
				writeProblem(w, http.StatusUnauthorized, "Unauthorized", "token has no subject")
				return
			}

			ctx := context.WithValue(r.Context(), subjectCtxKey, sub)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/flagsapp/flags-backend/api/responses"
	"github.com/flagsapp/flags-backend/pkg/auth"
	apperrors "github.com/flagsapp/flags-backend/pkg/errors"
	"github.com/flagsapp/flags-backend/pkg/logger"
)

// UserVerifier confirms a token subject still exists and reports the stored
// admin flag. Tokens held by deleted users fail here.
type UserVerifier interface {
	VerifyUser(ctx context.Context, userID string) (isAdmin bool, err error)
}

// Auth requires a valid bearer token, re-checks the subject against storage,
// and seeds the request context with the caller's identity.
func Auth(issuer *auth.TokenIssuer, verifier UserVerifier, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := bearerToken(r)
			if err != nil {
				responses.WriteError(r.Context(), w, logg, err)
				return
			}

			claims, err := issuer.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), w, logg, apperrors.Wrap(apperrors.CodeUnauthorized, err, "invalid bearer token"))
				return
			}

			isAdmin, err := verifier.VerifyUser(r.Context(), claims.UserID)
			if err != nil {
				responses.WriteError(r.Context(), w, logg, apperrors.Wrap(apperrors.CodeUnauthorized, err, "token subject no longer exists"))
				return
			}

			ctx := WithUser(r.Context(), claims.UserID, claims.Email, isAdmin)
			ctx = logg.WithUserID(ctx, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin gates admin-only routes; it must run after Auth.
func RequireAdmin(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !IsAdminFrom(r.Context()) {
				responses.WriteError(r.Context(), w, logg, apperrors.New(apperrors.CodeForbidden, "admin access required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", apperrors.New(apperrors.CodeUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", apperrors.New(apperrors.CodeUnauthorized, "malformed authorization header")
	}
	return parts[1], nil
}

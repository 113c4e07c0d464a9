package auth

import (
	"net/http"

	"github.com/flagsapp/flags-backend/api/responses"
	"github.com/flagsapp/flags-backend/api/validators"
	"github.com/flagsapp/flags-backend/internal/auth"
	"github.com/flagsapp/flags-backend/pkg/logger"
)

// Register creates an account and returns a session token.
func Register(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body auth.RegisterInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}

		session, err := svc.Register(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}
		responses.WriteData(w, http.StatusCreated, session)
	}
}

// Login exchanges credentials for a session token.
func Login(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body auth.LoginInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}

		session, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}
		responses.WriteData(w, http.StatusOK, session)
	}
}

package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/flagsapp/flags-backend/api/responses"
	"github.com/flagsapp/flags-backend/api/validators"
	"github.com/flagsapp/flags-backend/internal/hottakes"
	"github.com/flagsapp/flags-backend/internal/questions"
	"github.com/flagsapp/flags-backend/internal/users"
	"github.com/flagsapp/flags-backend/pkg/logger"
	"github.com/flagsapp/flags-backend/pkg/pagination"
	"github.com/flagsapp/flags-backend/pkg/types"
)

// SetAdminInput toggles another user's admin flag.
type SetAdminInput struct {
	IsAdmin *bool `json:"isAdmin" validate:"required"`
}

// CreateQuestion adds a questionnaire question.
func CreateQuestion(svc questions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body questions.CreateInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}

		question, err := svc.AdminCreate(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}
		responses.WriteData(w, http.StatusCreated, question)
	}
}

// UpdateQuestion patches a question's fields.
func UpdateQuestion(svc questions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body questions.UpdateInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}

		question, err := svc.AdminUpdate(r.Context(), chi.URLParam(r, "id"), body)
		if err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}
		responses.WriteData(w, http.StatusOK, question)
	}
}

// DeleteQuestion removes a question permanently.
func DeleteQuestion(svc questions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.AdminDelete(r.Context(), chi.URLParam(r, "id")); err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ListHotTakes pages through every hot take, active or not.
func ListHotTakes(svc hottakes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := pagination.ParseOffsetPage(r)
		takes, total, err := svc.AdminList(r.Context(), page.Limit, page.Offset)
		if err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}
		responses.WriteList(w, http.StatusOK, takes, types.OffsetPageMeta{
			Limit:  page.Limit,
			Offset: page.Offset,
			Total:  total,
		})
	}
}

// UpdateHotTake patches text, categories, or active status.
func UpdateHotTake(svc hottakes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body hottakes.AdminUpdateInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}

		take, err := svc.AdminUpdate(r.Context(), chi.URLParam(r, "id"), body)
		if err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}
		responses.WriteData(w, http.StatusOK, take)
	}
}

// ListUsers pages through all accounts.
func ListUsers(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := pagination.ParseOffsetPage(r)
		accounts, total, err := svc.ListUsers(r.Context(), page.Limit, page.Offset)
		if err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}
		responses.WriteList(w, http.StatusOK, accounts, types.OffsetPageMeta{
			Limit:  page.Limit,
			Offset: page.Offset,
			Total:  total,
		})
	}
}

// SetUserAdmin grants or revokes admin on another account.
func SetUserAdmin(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body SetAdminInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}

		if err := svc.SetAdmin(r.Context(), chi.URLParam(r, "id"), *body.IsAdmin); err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}
		responses.WriteData(w, http.StatusOK, map[string]bool{"isAdmin": *body.IsAdmin})
	}
}

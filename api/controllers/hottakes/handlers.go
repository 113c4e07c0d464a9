package hottakes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/flagsapp/flags-backend/api/middleware"
	"github.com/flagsapp/flags-backend/api/responses"
	"github.com/flagsapp/flags-backend/api/validators"
	"github.com/flagsapp/flags-backend/internal/feed"
	"github.com/flagsapp/flags-backend/internal/hottakes"
	respond "github.com/flagsapp/flags-backend/internal/responses"
	"github.com/flagsapp/flags-backend/pkg/logger"
	"github.com/flagsapp/flags-backend/pkg/pagination"
)

// Create posts a new hot take authored by the caller.
func Create(svc hottakes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body hottakes.CreateInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}

		take, err := svc.Create(r.Context(), middleware.UserIDFrom(r.Context()), body)
		if err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}
		responses.WriteData(w, http.StatusCreated, take)
	}
}

// Feed lists hot takes the caller has not responded to yet.
func Feed(svc feed.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := pagination.ParseOffsetPage(r)
		takes, err := svc.GetFeed(r.Context(), middleware.UserIDFrom(r.Context()), page.Limit, page.Offset)
		if err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}
		responses.WriteData(w, http.StatusOK, takes)
	}
}

// MyHotTakes lists the caller's own hot takes with response stats.
func MyHotTakes(svc hottakes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		takes, err := svc.ListOwned(r.Context(), middleware.UserIDFrom(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}
		responses.WriteData(w, http.StatusOK, takes)
	}
}

// ByCategory lists active hot takes in one category.
func ByCategory(svc hottakes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := pagination.ParseOffsetPage(r)
		category := chi.URLParam(r, "category")

		takes, err := svc.ListByCategory(r.Context(), category, page.Limit, page.Offset)
		if err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}
		responses.WriteData(w, http.StatusOK, takes)
	}
}

// SubmitResponse records the caller's stance on a hot take.
func SubmitResponse(svc respond.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body respond.SubmitInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}

		result, err := svc.Submit(r.Context(), middleware.UserIDFrom(r.Context()), body)
		if err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}
		responses.WriteData(w, http.StatusOK, result)
	}
}

package questions

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/flagsapp/flags-backend/api/middleware"
	"github.com/flagsapp/flags-backend/api/responses"
	"github.com/flagsapp/flags-backend/api/validators"
	"github.com/flagsapp/flags-backend/internal/questions"
	"github.com/flagsapp/flags-backend/pkg/logger"
)

// List returns all active questions in display order.
func List(svc questions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListActive(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}
		responses.WriteData(w, http.StatusOK, items)
	}
}

// ByCategory returns active questions in one category.
func ByCategory(svc questions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListActiveByCategory(r.Context(), chi.URLParam(r, "category"))
		if err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}
		responses.WriteData(w, http.StatusOK, items)
	}
}

// Submit upserts a batch of questionnaire answers for the caller.
func Submit(svc questions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body questions.SubmitAnswersInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}

		if err := svc.SubmitAnswers(r.Context(), middleware.UserIDFrom(r.Context()), body); err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}
		responses.WriteData(w, http.StatusOK, map[string]int{"recorded": len(body.Answers)})
	}
}

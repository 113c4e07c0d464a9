package profiles

import (
	"net/http"

	"github.com/flagsapp/flags-backend/api/middleware"
	"github.com/flagsapp/flags-backend/api/responses"
	"github.com/flagsapp/flags-backend/api/validators"
	"github.com/flagsapp/flags-backend/internal/matching"
	"github.com/flagsapp/flags-backend/internal/profiles"
	"github.com/flagsapp/flags-backend/pkg/logger"
)

// Get returns the caller's own profile.
func Get(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := svc.GetProfile(r.Context(), middleware.UserIDFrom(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}
		responses.WriteData(w, http.StatusOK, profile)
	}
}

// Update patches the caller's profile fields.
func Update(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body profiles.UpdateInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}

		profile, err := svc.UpdateProfile(r.Context(), middleware.UserIDFrom(r.Context()), body)
		if err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}
		responses.WriteData(w, http.StatusOK, profile)
	}
}

// SubmitInitialQuestionnaire records the onboarding payload.
func SubmitInitialQuestionnaire(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body profiles.InitialQuestionnaireInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}

		profile, err := svc.SubmitInitialQuestionnaire(r.Context(), middleware.UserIDFrom(r.Context()), body)
		if err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}
		responses.WriteData(w, http.StatusOK, profile)
	}
}

// QuestionnaireStatus reports whether onboarding is complete.
func QuestionnaireStatus(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := svc.QuestionnaireStatus(r.Context(), middleware.UserIDFrom(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}
		responses.WriteData(w, http.StatusOK, status)
	}
}

// Completion reports questionnaire coverage.
func Completion(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		completion, err := svc.Completion(r.Context(), middleware.UserIDFrom(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}
		responses.WriteData(w, http.StatusOK, completion)
	}
}

// ListAnswers returns the caller's questionnaire answers alongside the
// active questions.
func ListAnswers(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		answers, err := svc.ListAnswers(r.Context(), middleware.UserIDFrom(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}
		responses.WriteData(w, http.StatusOK, answers)
	}
}

// Matches ranks other users by questionnaire compatibility.
func Matches(svc matching.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := svc.GetMatches(r.Context(), middleware.UserIDFrom(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}
		responses.WriteData(w, http.StatusOK, matches)
	}
}

// HotTakeMatches ranks other users by hot take response compatibility.
func HotTakeMatches(svc matching.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := svc.GetHotTakeMatches(r.Context(), middleware.UserIDFrom(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), w, logg, err)
			return
		}
		responses.WriteData(w, http.StatusOK, matches)
	}
}

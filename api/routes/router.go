package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	admincontrollers "github.com/flagsapp/flags-backend/api/controllers/admin"
	authcontrollers "github.com/flagsapp/flags-backend/api/controllers/auth"
	healthcontrollers "github.com/flagsapp/flags-backend/api/controllers/health"
	hottakecontrollers "github.com/flagsapp/flags-backend/api/controllers/hottakes"
	profilecontrollers "github.com/flagsapp/flags-backend/api/controllers/profiles"
	questioncontrollers "github.com/flagsapp/flags-backend/api/controllers/questions"
	"github.com/flagsapp/flags-backend/api/middleware"
	internalauth "github.com/flagsapp/flags-backend/internal/auth"
	"github.com/flagsapp/flags-backend/internal/feed"
	"github.com/flagsapp/flags-backend/internal/hottakes"
	"github.com/flagsapp/flags-backend/internal/matching"
	"github.com/flagsapp/flags-backend/internal/profiles"
	"github.com/flagsapp/flags-backend/internal/questions"
	"github.com/flagsapp/flags-backend/internal/responses"
	"github.com/flagsapp/flags-backend/internal/users"
	pkgauth "github.com/flagsapp/flags-backend/pkg/auth"
	"github.com/flagsapp/flags-backend/pkg/config"
	"github.com/flagsapp/flags-backend/pkg/logger"
	"github.com/flagsapp/flags-backend/pkg/metrics"
)

// Deps carries everything the router needs wired in.
type Deps struct {
	Config *config.Config
	Logger *logger.Logger

	DB    healthcontrollers.Pinger
	Cache healthcontrollers.Pinger

	TokenIssuer  *pkgauth.TokenIssuer
	UserVerifier middleware.UserVerifier
	RateLimiter  *middleware.AuthRateLimiter

	AuthService     internalauth.Service
	UserService     users.Service
	ProfileService  profiles.Service
	HotTakeService  hottakes.Service
	FeedService     feed.Service
	ResponseService responses.Service
	QuestionService questions.Service
	MatchingService matching.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID,
		middleware.Logging(logg),
	)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins(),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", healthcontrollers.Live())
		r.Get("/ready", healthcontrollers.Ready(deps.DB, deps.Cache, logg))
	})

	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(deps.RateLimiter.Register).Post("/register", authcontrollers.Register(deps.AuthService, logg))
		r.With(deps.RateLimiter.Login).Post("/login", authcontrollers.Login(deps.AuthService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(deps.TokenIssuer, deps.UserVerifier, logg))
			r.Get("/profile", profilecontrollers.Get(deps.ProfileService, logg))
			r.Patch("/profile", profilecontrollers.Update(deps.ProfileService, logg))
		})
	})

	r.Route("/api/v1/hot-takes", func(r chi.Router) {
		r.Use(middleware.Auth(deps.TokenIssuer, deps.UserVerifier, logg))

		r.Get("/", hottakecontrollers.Feed(deps.FeedService, logg))
		r.Post("/", hottakecontrollers.Create(deps.HotTakeService, logg))
		r.Get("/my-hot-takes", hottakecontrollers.MyHotTakes(deps.HotTakeService, logg))
		r.Get("/category/{category}", hottakecontrollers.ByCategory(deps.HotTakeService, logg))
		r.Post("/responses", hottakecontrollers.SubmitResponse(deps.ResponseService, logg))
	})

	r.Route("/api/v1/profiles", func(r chi.Router) {
		r.Use(middleware.Auth(deps.TokenIssuer, deps.UserVerifier, logg))

		r.Get("/matches", profilecontrollers.Matches(deps.MatchingService, logg))
		r.Get("/matches/hot-takes", profilecontrollers.HotTakeMatches(deps.MatchingService, logg))
		r.Get("/completion", profilecontrollers.Completion(deps.ProfileService, logg))
		r.Get("/responses", profilecontrollers.ListAnswers(deps.ProfileService, logg))
		r.Post("/initial-questionnaire", profilecontrollers.SubmitInitialQuestionnaire(deps.ProfileService, logg))
		r.Get("/questionnaire-status", profilecontrollers.QuestionnaireStatus(deps.ProfileService, logg))
	})

	r.Route("/api/v1/questions", func(r chi.Router) {
		r.Use(middleware.Auth(deps.TokenIssuer, deps.UserVerifier, logg))

		r.Get("/", questioncontrollers.List(deps.QuestionService, logg))
		r.Get("/category/{category}", questioncontrollers.ByCategory(deps.QuestionService, logg))
		r.Post("/submit", questioncontrollers.Submit(deps.QuestionService, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(
			middleware.Auth(deps.TokenIssuer, deps.UserVerifier, logg),
			middleware.RequireAdmin(logg),
		)

		r.Post("/questions", admincontrollers.CreateQuestion(deps.QuestionService, logg))
		r.Patch("/questions/{id}", admincontrollers.UpdateQuestion(deps.QuestionService, logg))
		r.Delete("/questions/{id}", admincontrollers.DeleteQuestion(deps.QuestionService, logg))

		r.Get("/hot-takes", admincontrollers.ListHotTakes(deps.HotTakeService, logg))
		r.Patch("/hot-takes/{id}", admincontrollers.UpdateHotTake(deps.HotTakeService, logg))

		r.Get("/users", admincontrollers.ListUsers(deps.UserService, logg))
		r.Patch("/users/{id}", admincontrollers.SetUserAdmin(deps.UserService, logg))
	})

	return r
}

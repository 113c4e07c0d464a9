package health

import (
	"context"
	"net/http"

	"github.com/flagsapp/flags-backend/api/responses"
	apperrors "github.com/flagsapp/flags-backend/pkg/errors"
	"github.com/flagsapp/flags-backend/pkg/logger"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Live reports process liveness only.
func Live() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteData(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// Ready checks the database and, when configured, redis. A nil pinger is
// treated as an absent optional dependency.
func Ready(db Pinger, cache Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db == nil {
			responses.WriteError(r.Context(), w, logg, apperrors.New(apperrors.CodeDependency, "database unavailable"))
			return
		}
		if err := db.Ping(r.Context()); err != nil {
			responses.WriteError(r.Context(), w, logg, apperrors.Wrap(apperrors.CodeDependency, err, "database unavailable"))
			return
		}
		if cache != nil {
			if err := cache.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), w, logg, apperrors.Wrap(apperrors.CodeDependency, err, "redis unavailable"))
				return
			}
		}
		responses.WriteData(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/flagsapp/flags-backend/api/responses"
	apperrors "github.com/flagsapp/flags-backend/pkg/errors"
	"github.com/flagsapp/flags-backend/pkg/logger"
)

// Recoverer converts panics into 500 responses instead of dropping the
// connection.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}

					ctx := logg.WithFields(r.Context(), map[string]any{
						"request_id": RequestIDFrom(r.Context()),
						"method":     r.Method,
						"path":       r.URL.Path,
						"stack":      string(debug.Stack()),
					})
					logg.Error(ctx, "panic recovered", fmt.Errorf("panic: %v", rec))

					responses.WriteError(r.Context(), w, logg, apperrors.New(apperrors.CodeInternal, "panic recovered"))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

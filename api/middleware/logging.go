package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/flagsapp/flags-backend/pkg/logger"
	"github.com/flagsapp/flags-backend/pkg/metrics"
)

// Logging emits one structured line per request and feeds the request
// metrics. Route patterns come from chi so metric labels stay low-cardinality.
func Logging(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			ctx := logg.WithRequestID(r.Context(), RequestIDFrom(r.Context()))
			next.ServeHTTP(ww, r.WithContext(ctx))

			elapsed := time.Since(start)
			pattern := routePattern(r)

			metrics.ObserveRequest(pattern, r.Method, ww.Status(), elapsed)

			ctx = logg.WithFields(ctx, map[string]any{
				"method":  r.Method,
				"path":    r.URL.Path,
				"route":   pattern,
				"status":  ww.Status(),
				"bytes":   ww.BytesWritten(),
				"elapsed": elapsed.String(),
				"remote":  r.RemoteAddr,
			})
			if ww.Status() >= http.StatusInternalServerError {
				logg.Error(ctx, "request", nil)
			} else {
				logg.Info(ctx, "request")
			}
		})
	}
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}

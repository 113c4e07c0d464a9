package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/flagsapp/flags-backend/api/responses"
	"github.com/flagsapp/flags-backend/api/validators"
	"github.com/flagsapp/flags-backend/pkg/config"
	apperrors "github.com/flagsapp/flags-backend/pkg/errors"
	"github.com/flagsapp/flags-backend/pkg/logger"
	"github.com/flagsapp/flags-backend/pkg/redis"
)

// AuthRateLimiter throttles login and register attempts with fixed windows
// keyed per client IP and per submitted email. A nil redis client disables
// throttling, which keeps local dev and tests unaffected.
type AuthRateLimiter struct {
	rdb  *redis.Client
	cfg  config.AuthRateLimitConfig
	logg *logger.Logger
}

func NewAuthRateLimiter(rdb *redis.Client, cfg config.AuthRateLimitConfig, logg *logger.Logger) *AuthRateLimiter {
	return &AuthRateLimiter{rdb: rdb, cfg: cfg, logg: logg}
}

func (l *AuthRateLimiter) Login(next http.Handler) http.Handler {
	return l.limit("login", l.cfg.LoginWindow, int64(l.cfg.LoginIPLimit), int64(l.cfg.LoginEmailLimit), next)
}

func (l *AuthRateLimiter) Register(next http.Handler) http.Handler {
	return l.limit("register", l.cfg.RegisterWindow, int64(l.cfg.RegisterIPLimit), int64(l.cfg.RegisterEmailLimit), next)
}

func (l *AuthRateLimiter) limit(action string, window time.Duration, ipLimit, emailLimit int64, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if l.rdb == nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()

		ip := clientIP(r)
		allowed, err := l.rdb.FixedWindowAllow(ctx, redis.Key("ratelimit", action, "ip", ip), ipLimit, window)
		if err != nil {
			// Redis trouble should not lock users out.
			l.warnCheckFailed(ctx, action, err)
			next.ServeHTTP(w, r)
			return
		}
		if !allowed {
			responses.WriteError(ctx, w, l.logg, apperrors.New(apperrors.CodeRateLimit, "too many attempts from this address"))
			return
		}

		if email := peekEmail(r); email != "" {
			allowed, err = l.rdb.FixedWindowAllow(ctx, redis.Key("ratelimit", action, "email", email), emailLimit, window)
			if err != nil {
				l.warnCheckFailed(ctx, action, err)
			} else if !allowed {
				responses.WriteError(ctx, w, l.logg, apperrors.New(apperrors.CodeRateLimit, "too many attempts for this account"))
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

func (l *AuthRateLimiter) warnCheckFailed(ctx context.Context, action string, err error) {
	ctx = l.logg.WithFields(ctx, map[string]any{
		"action": action,
		"error":  err.Error(),
	})
	l.logg.Warn(ctx, "rate limit check failed, allowing request")
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// peekEmail reads the email out of the JSON body without consuming it for the
// downstream handler.
func peekEmail(r *http.Request) string {
	if r.Body == nil {
		return ""
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(raw))
	if err != nil {
		return ""
	}

	var payload struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	return validators.NormalizeEmail(payload.Email)
}

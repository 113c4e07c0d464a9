package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/flagsapp/flags-backend/pkg/auth"
	"github.com/flagsapp/flags-backend/pkg/config"
	"github.com/flagsapp/flags-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.ErrorLevel, Output: io.Discard})
}

func testIssuer() *auth.TokenIssuer {
	return auth.NewTokenIssuer(config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "flags-api",
		ExpirationMinutes: 60,
	})
}

func TestRequestIDMintsAndEchoes(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if seen == "" {
		t.Fatal("request id not seeded into context")
	}
	if got := rec.Header().Get("X-Request-ID"); got != seen {
		t.Fatalf("header %q != context %q", got, seen)
	}
}

func TestRequestIDAdoptsCallerID(t *testing.T) {
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := RequestIDFrom(r.Context()); got != "caller-id" {
			t.Fatalf("request id = %q", got)
		}
	}))

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("X-Request-ID", "caller-id")
	handler.ServeHTTP(httptest.NewRecorder(), r)
}

type fakeVerifier struct {
	isAdmin bool
	err     error
}

func (f fakeVerifier) VerifyUser(ctx context.Context, userID string) (bool, error) {
	return f.isAdmin, f.err
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	handler := Auth(testIssuer(), fakeVerifier{}, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler reached without token")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestAuthRejectsGarbageToken(t *testing.T) {
	handler := Auth(testIssuer(), fakeVerifier{}, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler reached with bad token")
	}))

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer not.a.jwt")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestAuthSeedsContext(t *testing.T) {
	issuer := testIssuer()
	raw, _, err := issuer.Issue("user-7", "ana@example.com", true)
	if err != nil {
		t.Fatal(err)
	}

	handler := Auth(issuer, fakeVerifier{isAdmin: true}, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserIDFrom(r.Context()) != "user-7" {
			t.Fatalf("user id = %q", UserIDFrom(r.Context()))
		}
		if UserEmailFrom(r.Context()) != "ana@example.com" {
			t.Fatalf("email = %q", UserEmailFrom(r.Context()))
		}
		if !IsAdminFrom(r.Context()) {
			t.Fatal("admin flag lost")
		}
	}))

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer "+raw)
	handler.ServeHTTP(httptest.NewRecorder(), r)
}

func TestAuthRejectsDeletedUser(t *testing.T) {
	issuer := testIssuer()
	raw, _, err := issuer.Issue("user-gone", "gone@example.com", false)
	if err != nil {
		t.Fatal(err)
	}

	handler := Auth(issuer, fakeVerifier{err: errors.New("not found")}, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler reached for deleted user")
	}))

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	handler := RequireAdmin(testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	r := httptest.NewRequest("GET", "/", nil)
	r = r.WithContext(WithUser(r.Context(), "user-1", "a@b.co", false))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("non-admin status = %d", rec.Code)
	}

	r = httptest.NewRequest("GET", "/", nil)
	r = r.WithContext(WithUser(r.Context(), "user-1", "a@b.co", true))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, r)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("admin status = %d", rec.Code)
	}
}

func TestRecovererTurnsPanicInto500(t *testing.T) {
	handler := Recoverer(testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRateLimiterDisabledWithoutRedis(t *testing.T) {
	limiter := NewAuthRateLimiter(nil, config.AuthRateLimitConfig{}, testLogger())
	handler := limiter.Login(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("POST", "/login", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
}

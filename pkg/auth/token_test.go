package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/flagsapp/flags-backend/pkg/config"
)

func testIssuer() *TokenIssuer {
	return NewTokenIssuer(config.JWTConfig{
		Secret:            "test-secret-0123456789",
		Issuer:            "flags-api",
		ExpirationMinutes: 60,
	})
}

func TestIssueAndParse(t *testing.T) {
	issuer := testIssuer()

	raw, expiresAt, err := issuer.Issue("user-1", "ana@example.com", true)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Fatal("token already expired")
	}

	claims, err := issuer.Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "ana@example.com" || !claims.IsAdmin {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if claims.Subject != "user-1" {
		t.Fatalf("subject = %q", claims.Subject)
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	issuer := testIssuer()
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	raw, _, err := issuer.Issue("user-1", "ana@example.com", false)
	if err != nil {
		t.Fatal(err)
	}

	issuer.now = time.Now
	if _, err := issuer.Parse(raw); err == nil {
		t.Fatal("expected expired token to fail")
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	raw, _, err := testIssuer().Issue("user-1", "ana@example.com", false)
	if err != nil {
		t.Fatal(err)
	}

	other := NewTokenIssuer(config.JWTConfig{
		Secret:            "a completely different secret",
		Issuer:            "flags-api",
		ExpirationMinutes: 60,
	})
	if _, err := other.Parse(raw); err == nil {
		t.Fatal("expected signature mismatch to fail")
	}
}

func TestParseRejectsNoneAlgorithm(t *testing.T) {
	claims := Claims{UserID: "user-1", RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    "flags-api",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := testIssuer().Parse(raw); err == nil {
		t.Fatal("expected alg=none token to fail")
	}
}

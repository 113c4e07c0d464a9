package auth

import (
	"context"
	"testing"

	pkgauth "github.com/flagsapp/flags-backend/pkg/auth"
	"github.com/flagsapp/flags-backend/pkg/config"
	"github.com/flagsapp/flags-backend/pkg/db/models"
	apperrors "github.com/flagsapp/flags-backend/pkg/errors"
)

type fakeUserStore struct {
	created   *models.User
	createErr error
	byEmail   map[string]*models.User
}

func (f *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	user.ID = "user-1"
	f.created = user
	return nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if user, ok := f.byEmail[email]; ok {
		return user, nil
	}
	return nil, apperrors.New(apperrors.CodeNotFound, "user not found")
}

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Verify(password, encoded string) (bool, error) {
	return encoded == "hashed:"+password, nil
}

func newTestService(t *testing.T, store *fakeUserStore) Service {
	t.Helper()

	issuer := pkgauth.NewTokenIssuer(config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "flags-api",
		ExpirationMinutes: 60,
	})
	svc, err := NewService(ServiceParams{UserRepo: store, Hasher: fakeHasher{}, Issuer: issuer})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestRegisterNormalizesEmailAndReturnsSession(t *testing.T) {
	store := &fakeUserStore{}
	svc := newTestService(t, store)

	session, err := svc.Register(context.Background(), RegisterInput{
		Email:    "  Ana@Example.COM ",
		Password: "longenough",
		Name:     "  Ana  ",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if store.created.Email != "ana@example.com" {
		t.Fatalf("stored email = %q", store.created.Email)
	}
	if store.created.Name != "Ana" {
		t.Fatalf("stored name = %q", store.created.Name)
	}
	if store.created.PasswordHash != "hashed:longenough" {
		t.Fatalf("password not hashed: %q", store.created.PasswordHash)
	}
	if session.Token == "" {
		t.Fatal("no token minted")
	}
	if session.User.Email != "ana@example.com" {
		t.Fatalf("session user email = %q", session.User.Email)
	}
}

func TestRegisterPropagatesConflict(t *testing.T) {
	store := &fakeUserStore{createErr: apperrors.New(apperrors.CodeConflict, "email already registered")}
	svc := newTestService(t, store)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "dup@example.com",
		Password: "longenough",
		Name:     "Dup",
	})
	appErr := apperrors.As(err)
	if appErr == nil || appErr.Code() != apperrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestLoginSuccess(t *testing.T) {
	store := &fakeUserStore{byEmail: map[string]*models.User{
		"ana@example.com": {ID: "user-1", Email: "ana@example.com", PasswordHash: "hashed:secretpw", Name: "Ana"},
	}}
	svc := newTestService(t, store)

	session, err := svc.Login(context.Background(), LoginInput{Email: "Ana@Example.com", Password: "secretpw"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if session.Token == "" || session.User.ID != "user-1" {
		t.Fatalf("unexpected session %+v", session)
	}
}

func TestLoginFailuresAreUniform(t *testing.T) {
	store := &fakeUserStore{byEmail: map[string]*models.User{
		"ana@example.com": {ID: "user-1", Email: "ana@example.com", PasswordHash: "hashed:secretpw"},
	}}
	svc := newTestService(t, store)

	_, unknownErr := svc.Login(context.Background(), LoginInput{Email: "ghost@example.com", Password: "whatever"})
	_, badPwErr := svc.Login(context.Background(), LoginInput{Email: "ana@example.com", Password: "wrong"})

	for _, err := range []error{unknownErr, badPwErr} {
		appErr := apperrors.As(err)
		if appErr == nil || appErr.Code() != apperrors.CodeUnauthorized {
			t.Fatalf("expected unauthorized, got %v", err)
		}
		if appErr.Message() != "invalid credentials" {
			t.Fatalf("message = %q", appErr.Message())
		}
	}
}

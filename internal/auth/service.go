package auth

import (
	"context"

	"github.com/flagsapp/flags-backend/api/validators"
	"github.com/flagsapp/flags-backend/internal/users"
	pkgauth "github.com/flagsapp/flags-backend/pkg/auth"
	"github.com/flagsapp/flags-backend/pkg/db/models"
	apperrors "github.com/flagsapp/flags-backend/pkg/errors"
)

// userStore is the slice of the users repository the auth flow needs.
type userStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// passwordHasher abstracts argon2id hashing for tests.
type passwordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

// ServiceParams groups dependencies for the auth service.
type ServiceParams struct {
	UserRepo userStore
	Hasher   passwordHasher
	Issuer   *pkgauth.TokenIssuer
}

// Service handles registration and login.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (SessionDTO, error)
	Login(ctx context.Context, input LoginInput) (SessionDTO, error)
}

type service struct {
	userRepo userStore
	hasher   passwordHasher
	issue    func(userID, email string, isAdmin bool) (string, error)
}

func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, apperrors.New(apperrors.CodeValidation, "user repo is required")
	}
	if params.Hasher == nil {
		return nil, apperrors.New(apperrors.CodeValidation, "password hasher is required")
	}
	if params.Issuer == nil {
		return nil, apperrors.New(apperrors.CodeValidation, "token issuer is required")
	}

	issuer := params.Issuer
	return &service{
		userRepo: params.UserRepo,
		hasher:   params.Hasher,
		issue: func(userID, email string, isAdmin bool) (string, error) {
			token, _, err := issuer.Issue(userID, email, isAdmin)
			return token, err
		},
	}, nil
}

// Register creates the account and immediately signs the user in.
func (s *service) Register(ctx context.Context, input RegisterInput) (SessionDTO, error) {
	email := validators.NormalizeEmail(input.Email)

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return SessionDTO{}, apperrors.Wrap(apperrors.CodeInternal, err, "hashing password")
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         validators.TrimmedString(input.Name),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return SessionDTO{}, err
	}

	return s.session(user)
}

// Login verifies credentials. Both unknown email and bad password come back
// as the same unauthorized error.
func (s *service) Login(ctx context.Context, input LoginInput) (SessionDTO, error) {
	email := validators.NormalizeEmail(input.Email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if appErr := apperrors.As(err); appErr != nil && appErr.Code() == apperrors.CodeNotFound {
			return SessionDTO{}, apperrors.New(apperrors.CodeUnauthorized, "invalid credentials")
		}
		return SessionDTO{}, err
	}

	ok, err := s.hasher.Verify(input.Password, user.PasswordHash)
	if err != nil {
		return SessionDTO{}, apperrors.Wrap(apperrors.CodeInternal, err, "verifying password")
	}
	if !ok {
		return SessionDTO{}, apperrors.New(apperrors.CodeUnauthorized, "invalid credentials")
	}

	return s.session(user)
}

func (s *service) session(user *models.User) (SessionDTO, error) {
	token, err := s.issue(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return SessionDTO{}, apperrors.Wrap(apperrors.CodeInternal, err, "minting token")
	}
	return SessionDTO{Token: token, User: users.ToDTO(user)}, nil
}

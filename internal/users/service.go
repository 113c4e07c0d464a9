package users

import (
	"context"

	apperrors "github.com/flagsapp/flags-backend/pkg/errors"
)

// ServiceParams groups dependencies for the users service.
type ServiceParams struct {
	UserRepo *Repository
}

// Service exposes account lookups used by the auth middleware and the admin
// surface.
type Service interface {
	VerifyUser(ctx context.Context, userID string) (isAdmin bool, err error)
	ListUsers(ctx context.Context, limit, offset int) ([]UserDTO, int64, error)
	SetAdmin(ctx context.Context, userID string, isAdmin bool) error
}

type service struct {
	userRepo *Repository
}

func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, apperrors.New(apperrors.CodeValidation, "user repo is required")
	}
	return &service{userRepo: params.UserRepo}, nil
}

// VerifyUser confirms the token subject still exists and returns the stored
// admin flag, which wins over whatever the token claims.
func (s *service) VerifyUser(ctx context.Context, userID string) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.IsAdmin, nil
}

func (s *service) ListUsers(ctx context.Context, limit, offset int) ([]UserDTO, int64, error) {
	rows, total, err := s.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	out := make([]UserDTO, 0, len(rows))
	for i := range rows {
		out = append(out, ToDTO(&rows[i]))
	}
	return out, total, nil
}

func (s *service) SetAdmin(ctx context.Context, userID string, isAdmin bool) error {
	return s.userRepo.UpdateFields(ctx, userID, map[string]any{"is_admin": isAdmin})
}

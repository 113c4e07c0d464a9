package responses

import (
	"context"

	"github.com/flagsapp/flags-backend/pkg/db/models"
	apperrors "github.com/flagsapp/flags-backend/pkg/errors"
)

// statementGetter confirms a statement exists before a response is written.
type statementGetter interface {
	GetByID(ctx context.Context, id string) (*models.HotTake, error)
}

// responseWriter is the slice of the repository the submit flow needs.
type responseWriter interface {
	Upsert(ctx context.Context, response *models.HotTakeResponse) error
}

// ServiceParams groups dependencies for the responses service.
type ServiceParams struct {
	ResponseRepo responseWriter
	HotTakeRepo  statementGetter
}

// Service records user responses to statements.
type Service interface {
	Submit(ctx context.Context, userID string, input SubmitInput) (SubmitResult, error)
}

type service struct {
	responseRepo responseWriter
	hotTakeRepo  statementGetter
}

func NewService(params ServiceParams) (Service, error) {
	if params.ResponseRepo == nil {
		return nil, apperrors.New(apperrors.CodeValidation, "response repo is required")
	}
	if params.HotTakeRepo == nil {
		return nil, apperrors.New(apperrors.CodeValidation, "hot take repo is required")
	}
	return &service{responseRepo: params.ResponseRepo, hotTakeRepo: params.HotTakeRepo}, nil
}

// Submit validates and upserts one response. Resubmitting overwrites the
// previous answer; the operation is idempotent.
func (s *service) Submit(ctx context.Context, userID string, input SubmitInput) (SubmitResult, error) {
	if _, err := s.hotTakeRepo.GetByID(ctx, input.HotTakeID); err != nil {
		return SubmitResult{}, err
	}

	response := &models.HotTakeResponse{
		HotTakeID:     input.HotTakeID,
		UserID:        userID,
		UserResponse:  input.UserResponse,
		IsDealbreaker: input.IsDealbreaker,
	}

	if input.MatchResponse != nil {
		rangeIn := *input.MatchResponse
		if rangeIn.Low > rangeIn.High {
			return SubmitResult{}, apperrors.New(apperrors.CodeValidation, "match range low exceeds high").
				WithDetails(map[string]string{"matchResponse": "low must not exceed high"})
		}
		response.MatchLow = &rangeIn.Low
		response.MatchHigh = &rangeIn.High
	}

	if err := s.responseRepo.Upsert(ctx, response); err != nil {
		return SubmitResult{}, err
	}

	return SubmitResult{HotTakeID: input.HotTakeID, Recorded: true}, nil
}

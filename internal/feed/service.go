package feed

import (
	"context"

	"github.com/flagsapp/flags-backend/internal/hottakes"
	apperrors "github.com/flagsapp/flags-backend/pkg/errors"
)

// statementLister is the slice of the hot takes repository the feed reads.
type statementLister interface {
	ListFeed(ctx context.Context, userID string, limit, offset int) ([]hottakes.FeedRow, error)
}

// ServiceParams groups dependencies for the feed service.
type ServiceParams struct {
	HotTakeRepo statementLister
}

// Service assembles the statement feed. Read-only: fetching the feed never
// writes response rows.
type Service interface {
	GetFeed(ctx context.Context, userID string, limit, offset int) ([]hottakes.HotTakeDTO, error)
}

type service struct {
	hotTakeRepo statementLister
}

func NewService(params ServiceParams) (Service, error) {
	if params.HotTakeRepo == nil {
		return nil, apperrors.New(apperrors.CodeValidation, "hot take repo is required")
	}
	return &service{hotTakeRepo: params.HotTakeRepo}, nil
}

// GetFeed returns unanswered, other-authored active statements, initial ones
// first, then newest first. An empty feed is a success.
func (s *service) GetFeed(ctx context.Context, userID string, limit, offset int) ([]hottakes.HotTakeDTO, error) {
	rows, err := s.hotTakeRepo.ListFeed(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	out := make([]hottakes.HotTakeDTO, 0, len(rows))
	for i := range rows {
		out = append(out, hottakes.RowToDTO(&rows[i]))
	}
	return out, nil
}

package hottakes

import (
	"context"

	"github.com/flagsapp/flags-backend/api/validators"
	"github.com/flagsapp/flags-backend/pkg/db/models"
	dbtypes "github.com/flagsapp/flags-backend/pkg/db/types"
	"github.com/flagsapp/flags-backend/pkg/enums"
	apperrors "github.com/flagsapp/flags-backend/pkg/errors"
)

// ServiceParams groups dependencies for the hot takes service.
type ServiceParams struct {
	HotTakeRepo *Repository
}

// Service exposes statement creation, the category listing, the owner view,
// and the admin surface.
type Service interface {
	Create(ctx context.Context, authorID string, input CreateInput) (HotTakeDTO, error)
	ListByCategory(ctx context.Context, category string, limit, offset int) ([]HotTakeDTO, error)
	ListOwned(ctx context.Context, authorID string) ([]OwnedHotTakeDTO, error)
	AdminList(ctx context.Context, limit, offset int) ([]HotTakeDTO, int64, error)
	AdminUpdate(ctx context.Context, id string, input AdminUpdateInput) (HotTakeDTO, error)
}

type service struct {
	hotTakeRepo *Repository
}

func NewService(params ServiceParams) (Service, error) {
	if params.HotTakeRepo == nil {
		return nil, apperrors.New(apperrors.CodeValidation, "hot take repo is required")
	}
	return &service{hotTakeRepo: params.HotTakeRepo}, nil
}

// Create validates the statement, applies the category fallback, and rejects
// duplicates by normalized text. The conflict carries the existing statement's
// text so clients can show what it collided with.
func (s *service) Create(ctx context.Context, authorID string, input CreateInput) (HotTakeDTO, error) {
	text := validators.TrimmedString(input.Text)
	if text == "" {
		return HotTakeDTO{}, apperrors.New(apperrors.CodeValidation, "hot take text is required")
	}

	categories, err := enums.NormalizeCategories(input.Categories)
	if err != nil {
		return HotTakeDTO{}, apperrors.Wrap(apperrors.CodeValidation, err, "invalid category").
			WithDetails(err.Error())
	}

	normalized := validators.NormalizeStatement(text)
	if existing, err := s.hotTakeRepo.GetByNormalizedText(ctx, normalized); err == nil {
		return HotTakeDTO{}, apperrors.New(apperrors.CodeConflict, "duplicate hot take").
			WithDetails(map[string]string{"existingText": existing.Text})
	} else if appErr := apperrors.As(err); appErr == nil || appErr.Code() != apperrors.CodeNotFound {
		return HotTakeDTO{}, err
	}

	take := &models.HotTake{
		Text:           text,
		NormalizedText: normalized,
		Categories:     dbtypes.StringArray(categoryStrings(categories)),
		AuthorID:       &authorID,
		IsActive:       true,
	}
	if err := s.hotTakeRepo.Create(ctx, take); err != nil {
		return HotTakeDTO{}, err
	}

	return toDTO(take, nil), nil
}

func (s *service) ListByCategory(ctx context.Context, category string, limit, offset int) ([]HotTakeDTO, error) {
	parsed, err := enums.ParseCategory(category)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeValidation, err, "invalid category").
			WithDetails(err.Error())
	}

	rows, err := s.hotTakeRepo.ListByCategory(ctx, string(parsed), limit, offset)
	if err != nil {
		return nil, err
	}
	return rowsToDTOs(rows), nil
}

func (s *service) ListOwned(ctx context.Context, authorID string) ([]OwnedHotTakeDTO, error) {
	rows, err := s.hotTakeRepo.ListOwnedWithStats(ctx, authorID)
	if err != nil {
		return nil, err
	}

	out := make([]OwnedHotTakeDTO, 0, len(rows))
	for i := range rows {
		out = append(out, OwnedHotTakeDTO{
			HotTakeDTO:      toDTO(&rows[i].HotTake, nil),
			TotalResponses:  rows[i].TotalResponses,
			AveragePosition: rows[i].AveragePosition,
			SkipCount:       rows[i].SkipCount,
		})
	}
	return out, nil
}

func (s *service) AdminList(ctx context.Context, limit, offset int) ([]HotTakeDTO, int64, error) {
	rows, total, err := s.hotTakeRepo.ListAll(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return rowsToDTOs(rows), total, nil
}

func (s *service) AdminUpdate(ctx context.Context, id string, input AdminUpdateInput) (HotTakeDTO, error) {
	fields := map[string]any{}

	if input.Text != nil {
		text := validators.TrimmedString(*input.Text)
		if text == "" {
			return HotTakeDTO{}, apperrors.New(apperrors.CodeValidation, "hot take text cannot be empty")
		}
		fields["text"] = text
		fields["normalized_text"] = validators.NormalizeStatement(text)
	}
	if input.Categories != nil {
		categories, err := enums.NormalizeCategories(*input.Categories)
		if err != nil {
			return HotTakeDTO{}, apperrors.Wrap(apperrors.CodeValidation, err, "invalid category").
				WithDetails(err.Error())
		}
		fields["categories"] = dbtypes.StringArray(categoryStrings(categories))
	}
	if input.IsActive != nil {
		fields["is_active"] = *input.IsActive
	}

	if len(fields) == 0 {
		return HotTakeDTO{}, apperrors.New(apperrors.CodeValidation, "no updatable fields provided")
	}

	if err := s.hotTakeRepo.UpdateFields(ctx, id, fields); err != nil {
		return HotTakeDTO{}, err
	}

	take, err := s.hotTakeRepo.GetByID(ctx, id)
	if err != nil {
		return HotTakeDTO{}, err
	}
	return toDTO(take, nil), nil
}

func rowsToDTOs(rows []FeedRow) []HotTakeDTO {
	out := make([]HotTakeDTO, 0, len(rows))
	for i := range rows {
		out = append(out, toDTO(&rows[i].HotTake, rows[i].AuthorName))
	}
	return out
}

func categoryStrings(categories []enums.Category) []string {
	out := make([]string, len(categories))
	for i, category := range categories {
		out[i] = string(category)
	}
	return out
}

package questions

import (
	"context"
	"fmt"

	"github.com/flagsapp/flags-backend/api/validators"
	"github.com/flagsapp/flags-backend/pkg/db/models"
	dbtypes "github.com/flagsapp/flags-backend/pkg/db/types"
	"github.com/flagsapp/flags-backend/pkg/enums"
	apperrors "github.com/flagsapp/flags-backend/pkg/errors"
)

// ServiceParams groups dependencies for the questions service.
type ServiceParams struct {
	QuestionRepo *Repository
	AnswerRepo   *AnswerRepository
}

// Service exposes the questionnaire: listing, answering, and the admin CRUD.
type Service interface {
	ListActive(ctx context.Context) ([]QuestionDTO, error)
	ListActiveByCategory(ctx context.Context, category string) ([]QuestionDTO, error)
	SubmitAnswers(ctx context.Context, userID string, input SubmitAnswersInput) error
	AdminCreate(ctx context.Context, input CreateInput) (QuestionDTO, error)
	AdminUpdate(ctx context.Context, id string, input UpdateInput) (QuestionDTO, error)
	AdminDelete(ctx context.Context, id string) error
}

type service struct {
	questionRepo *Repository
	answerRepo   *AnswerRepository
}

func NewService(params ServiceParams) (Service, error) {
	if params.QuestionRepo == nil {
		return nil, apperrors.New(apperrors.CodeValidation, "question repo is required")
	}
	if params.AnswerRepo == nil {
		return nil, apperrors.New(apperrors.CodeValidation, "answer repo is required")
	}
	return &service{questionRepo: params.QuestionRepo, answerRepo: params.AnswerRepo}, nil
}

func (s *service) ListActive(ctx context.Context) ([]QuestionDTO, error) {
	rows, err := s.questionRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return toDTOs(rows), nil
}

func (s *service) ListActiveByCategory(ctx context.Context, category string) ([]QuestionDTO, error) {
	rows, err := s.questionRepo.ListActiveByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	return toDTOs(rows), nil
}

// SubmitAnswers upserts the batch. Every answer's declared kind must match
// its question's type; the whole batch is rejected on the first mismatch.
func (s *service) SubmitAnswers(ctx context.Context, userID string, input SubmitAnswersInput) error {
	for _, item := range input.Answers {
		question, err := s.questionRepo.GetByID(ctx, item.QuestionID)
		if err != nil {
			return err
		}

		if err := item.Answer.Validate(); err != nil {
			return apperrors.Wrap(apperrors.CodeValidation, err, "invalid answer value").
				WithDetails(map[string]string{item.QuestionID: err.Error()})
		}
		if string(item.Answer.Kind) != question.Type {
			return apperrors.New(apperrors.CodeValidation, "answer type mismatch").
				WithDetails(map[string]string{
					item.QuestionID: fmt.Sprintf("question expects %q, got %q", question.Type, item.Answer.Kind),
				})
		}
		if item.Answer.Kind == enums.QuestionTypeMultipleChoice &&
			len(question.Options) > 0 &&
			!question.Options.Contains(*item.Answer.Choice) {
			return apperrors.New(apperrors.CodeValidation, "answer not among question options").
				WithDetails(map[string]string{item.QuestionID: "choice is not one of the question's options"})
		}

		answer := &models.QuestionnaireAnswer{
			UserID:     userID,
			QuestionID: item.QuestionID,
			Value:      item.Answer,
		}
		if err := s.answerRepo.Upsert(ctx, answer); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) AdminCreate(ctx context.Context, input CreateInput) (QuestionDTO, error) {
	questionType, err := enums.ParseQuestionType(input.Type)
	if err != nil {
		return QuestionDTO{}, apperrors.Wrap(apperrors.CodeValidation, err, "invalid question type").
			WithDetails(err.Error())
	}
	if questionType == enums.QuestionTypeMultipleChoice && len(input.Options) < 2 {
		return QuestionDTO{}, apperrors.New(apperrors.CodeValidation, "multiple-choice questions need at least two options")
	}

	question := &models.Question{
		Text:     validators.TrimmedString(input.Text),
		Type:     string(questionType),
		Category: validators.TrimmedString(input.Category),
		Options:  dbtypes.StringArray(input.Options),
		Weight:   1,
		IsActive: true,
	}
	if input.Weight != nil {
		question.Weight = *input.Weight
	}
	if input.Order != nil {
		question.Order = *input.Order
	}

	if err := s.questionRepo.Create(ctx, question); err != nil {
		return QuestionDTO{}, err
	}
	return ToDTO(question), nil
}

func (s *service) AdminUpdate(ctx context.Context, id string, input UpdateInput) (QuestionDTO, error) {
	fields := map[string]any{}

	if input.Text != nil {
		fields["text"] = validators.TrimmedString(*input.Text)
	}
	if input.Category != nil {
		fields["category"] = validators.TrimmedString(*input.Category)
	}
	if input.Options != nil {
		fields["options"] = dbtypes.StringArray(*input.Options)
	}
	if input.Weight != nil {
		fields["weight"] = *input.Weight
	}
	if input.Order != nil {
		fields["display_order"] = *input.Order
	}
	if input.IsActive != nil {
		fields["is_active"] = *input.IsActive
	}

	if len(fields) == 0 {
		return QuestionDTO{}, apperrors.New(apperrors.CodeValidation, "no updatable fields provided")
	}

	if err := s.questionRepo.UpdateFields(ctx, id, fields); err != nil {
		return QuestionDTO{}, err
	}

	question, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return QuestionDTO{}, err
	}
	return ToDTO(question), nil
}

func (s *service) AdminDelete(ctx context.Context, id string) error {
	return s.questionRepo.Delete(ctx, id)
}

func toDTOs(rows []models.Question) []QuestionDTO {
	out := make([]QuestionDTO, 0, len(rows))
	for i := range rows {
		out = append(out, ToDTO(&rows[i]))
	}
	return out
}

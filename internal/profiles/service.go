package profiles

import (
	"context"

	"github.com/flagsapp/flags-backend/api/validators"
	"github.com/flagsapp/flags-backend/internal/questions"
	"github.com/flagsapp/flags-backend/internal/users"
	"github.com/flagsapp/flags-backend/pkg/db/models"
	dbtypes "github.com/flagsapp/flags-backend/pkg/db/types"
	"github.com/flagsapp/flags-backend/pkg/enums"
	apperrors "github.com/flagsapp/flags-backend/pkg/errors"
)

type userStore interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateFields(ctx context.Context, id string, fields map[string]any) error
}

type questionStore interface {
	ListActive(ctx context.Context) ([]models.Question, error)
	CountActive(ctx context.Context) (int64, error)
}

type answerStore interface {
	ListByUser(ctx context.Context, userID string) ([]models.QuestionnaireAnswer, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}

// ServiceParams groups dependencies for the profiles service.
type ServiceParams struct {
	UserRepo     userStore
	QuestionRepo questionStore
	AnswerRepo   answerStore
}

// Service exposes the caller's own profile and questionnaire progress.
type Service interface {
	GetProfile(ctx context.Context, userID string) (users.UserDTO, error)
	UpdateProfile(ctx context.Context, userID string, input UpdateInput) (users.UserDTO, error)
	SubmitInitialQuestionnaire(ctx context.Context, userID string, input InitialQuestionnaireInput) (users.UserDTO, error)
	QuestionnaireStatus(ctx context.Context, userID string) (StatusDTO, error)
	Completion(ctx context.Context, userID string) (CompletionDTO, error)
	ListAnswers(ctx context.Context, userID string) ([]questions.AnsweredQuestionDTO, error)
}

type service struct {
	userRepo     userStore
	questionRepo questionStore
	answerRepo   answerStore
}

func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, apperrors.New(apperrors.CodeValidation, "user repo is required")
	}
	if params.QuestionRepo == nil {
		return nil, apperrors.New(apperrors.CodeValidation, "question repo is required")
	}
	if params.AnswerRepo == nil {
		return nil, apperrors.New(apperrors.CodeValidation, "answer repo is required")
	}
	return &service{
		userRepo:     params.UserRepo,
		questionRepo: params.QuestionRepo,
		answerRepo:   params.AnswerRepo,
	}, nil
}

func (s *service) GetProfile(ctx context.Context, userID string) (users.UserDTO, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return users.UserDTO{}, err
	}
	return users.ToDTO(user), nil
}

// UpdateProfile applies the whitelisted fields only; everything else on the
// account is immutable through this endpoint.
func (s *service) UpdateProfile(ctx context.Context, userID string, input UpdateInput) (users.UserDTO, error) {
	fields := map[string]any{}

	if input.Name != nil {
		name := validators.TrimmedString(*input.Name)
		if name == "" {
			return users.UserDTO{}, apperrors.New(apperrors.CodeValidation, "name cannot be empty")
		}
		fields["name"] = name
	}
	if input.Sex != nil {
		fields["sex"] = validators.TrimmedString(*input.Sex)
	}
	if input.InterestedIn != nil {
		fields["interested_in"] = validators.TrimmedString(*input.InterestedIn)
	}
	if input.Location != nil {
		fields["location"] = validators.TrimmedString(*input.Location)
	}
	if input.HotTake != nil {
		fields["hot_take"] = validators.TrimmedString(*input.HotTake)
	}

	if len(fields) == 0 {
		return users.UserDTO{}, apperrors.New(apperrors.CodeValidation, "no updatable fields provided")
	}

	if err := s.userRepo.UpdateFields(ctx, userID, fields); err != nil {
		return users.UserDTO{}, err
	}
	return s.GetProfile(ctx, userID)
}

// SubmitInitialQuestionnaire records the onboarding fields and marks the
// questionnaire complete.
func (s *service) SubmitInitialQuestionnaire(ctx context.Context, userID string, input InitialQuestionnaireInput) (users.UserDTO, error) {
	categories, err := enums.NormalizeCategories(input.ImportantCategories)
	if err != nil {
		return users.UserDTO{}, apperrors.Wrap(apperrors.CodeValidation, err, "invalid category").
			WithDetails(err.Error())
	}

	names := make([]string, len(categories))
	for i, category := range categories {
		names[i] = string(category)
	}

	fields := map[string]any{
		"name":                        validators.TrimmedString(input.Name),
		"sex":                         validators.TrimmedString(input.Sex),
		"location":                    validators.TrimmedString(input.Location),
		"interested_in":               validators.TrimmedString(input.InterestedIn),
		"hot_take":                    validators.TrimmedString(input.HotTake),
		"important_categories":        dbtypes.StringArray(names),
		"has_completed_questionnaire": true,
	}

	if err := s.userRepo.UpdateFields(ctx, userID, fields); err != nil {
		return users.UserDTO{}, err
	}
	return s.GetProfile(ctx, userID)
}

func (s *service) QuestionnaireStatus(ctx context.Context, userID string) (StatusDTO, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return StatusDTO{}, err
	}
	return StatusDTO{HasCompleted: user.HasCompletedQuestionnaire}, nil
}

// Completion reports answered coverage over active questions. No active
// questions means 100 percent.
func (s *service) Completion(ctx context.Context, userID string) (CompletionDTO, error) {
	total, err := s.questionRepo.CountActive(ctx)
	if err != nil {
		return CompletionDTO{}, err
	}

	answered, err := s.answerRepo.CountByUser(ctx, userID)
	if err != nil {
		return CompletionDTO{}, err
	}

	out := CompletionDTO{AnsweredQuestions: answered, TotalQuestions: total}
	if total == 0 {
		out.CompletionPercentage = 100
		return out, nil
	}
	out.CompletionPercentage = float64(answered) / float64(total) * 100
	return out, nil
}

// ListAnswers pairs every active question with the caller's answer; Answer is
// nil for unanswered questions.
func (s *service) ListAnswers(ctx context.Context, userID string) ([]questions.AnsweredQuestionDTO, error) {
	active, err := s.questionRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	answers, err := s.answerRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	byQuestion := map[string]*models.QuestionnaireAnswer{}
	for i := range answers {
		byQuestion[answers[i].QuestionID] = &answers[i]
	}

	out := make([]questions.AnsweredQuestionDTO, 0, len(active))
	for i := range active {
		item := questions.AnsweredQuestionDTO{Question: questions.ToDTO(&active[i])}
		if answer, ok := byQuestion[active[i].ID]; ok {
			value := answer.Value
			at := answer.UpdatedAt
			item.Answer = &value
			item.AnsweredAt = &at
		}
		out = append(out, item)
	}
	return out, nil
}

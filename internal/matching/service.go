package matching

import (
	"context"
	"sort"

	"github.com/flagsapp/flags-backend/internal/users"
	"github.com/flagsapp/flags-backend/pkg/db/models"
	dbtypes "github.com/flagsapp/flags-backend/pkg/db/types"
	apperrors "github.com/flagsapp/flags-backend/pkg/errors"
)

// MatchDTO pairs a candidate with their compatibility score.
type MatchDTO struct {
	User               users.UserDTO `json:"user"`
	CompatibilityScore float64       `json:"compatibilityScore"`
}

type userLister interface {
	ListOthers(ctx context.Context, excludeID string) ([]models.User, error)
}

type questionLister interface {
	ListActive(ctx context.Context) ([]models.Question, error)
}

type answerLister interface {
	ListAll(ctx context.Context) ([]models.QuestionnaireAnswer, error)
}

type responseLister interface {
	ListAll(ctx context.Context) ([]models.HotTakeResponse, error)
}

// ServiceParams groups dependencies for the matching service.
type ServiceParams struct {
	UserRepo     userLister
	QuestionRepo questionLister
	AnswerRepo   answerLister
	ResponseRepo responseLister
}

// Service ranks every other user against the caller.
type Service interface {
	GetMatches(ctx context.Context, userID string) ([]MatchDTO, error)
	GetHotTakeMatches(ctx context.Context, userID string) ([]MatchDTO, error)
}

type service struct {
	userRepo     userLister
	questionRepo questionLister
	answerRepo   answerLister
	responseRepo responseLister
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
	if params.ResponseRepo == nil {
		return nil, apperrors.New(apperrors.CodeValidation, "response repo is required")
	}
	return &service{
		userRepo:     params.UserRepo,
		questionRepo: params.QuestionRepo,
		answerRepo:   params.AnswerRepo,
		responseRepo: params.ResponseRepo,
	}, nil
}

// GetMatches scores every other user with the questionnaire scorer, highest
// first.
func (s *service) GetMatches(ctx context.Context, userID string) ([]MatchDTO, error) {
	others, err := s.userRepo.ListOthers(ctx, userID)
	if err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	answers, err := s.answerRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	byUser := groupAnswers(answers)
	mine := byUser[userID]

	matches := make([]MatchDTO, 0, len(others))
	for i := range others {
		other := &others[i]
		matches = append(matches, MatchDTO{
			User:               users.ToDTO(other),
			CompatibilityScore: QuestionnaireScore(questions, mine, byUser[other.ID]),
		})
	}

	sortMatches(matches)
	return matches, nil
}

// GetHotTakeMatches scores every other user with the response-based scorer,
// highest first.
func (s *service) GetHotTakeMatches(ctx context.Context, userID string) ([]MatchDTO, error) {
	others, err := s.userRepo.ListOthers(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses, err := s.responseRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	byUser := groupResponses(responses)
	mine := byUser[userID]

	matches := make([]MatchDTO, 0, len(others))
	for i := range others {
		other := &others[i]
		matches = append(matches, MatchDTO{
			User:               users.ToDTO(other),
			CompatibilityScore: ResponseScore(mine, byUser[other.ID]),
		})
	}

	sortMatches(matches)
	return matches, nil
}

// sortMatches orders by score descending with the user id as a deterministic
// tie breaker.
func sortMatches(matches []MatchDTO) {
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].CompatibilityScore != matches[j].CompatibilityScore {
			return matches[i].CompatibilityScore > matches[j].CompatibilityScore
		}
		return matches[i].User.ID < matches[j].User.ID
	})
}

func groupAnswers(answers []models.QuestionnaireAnswer) map[string]map[string]dbtypes.AnswerValue {
	out := map[string]map[string]dbtypes.AnswerValue{}
	for i := range answers {
		answer := &answers[i]
		if out[answer.UserID] == nil {
			out[answer.UserID] = map[string]dbtypes.AnswerValue{}
		}
		out[answer.UserID][answer.QuestionID] = answer.Value
	}
	return out
}

func groupResponses(responses []models.HotTakeResponse) map[string]map[string]models.HotTakeResponse {
	out := map[string]map[string]models.HotTakeResponse{}
	for i := range responses {
		response := &responses[i]
		if out[response.UserID] == nil {
			out[response.UserID] = map[string]models.HotTakeResponse{}
		}
		out[response.UserID][response.HotTakeID] = *response
	}
	return out
}

package matching

import (
	"github.com/flagsapp/flags-backend/pkg/db/models"
	dbtypes "github.com/flagsapp/flags-backend/pkg/db/types"
	"github.com/flagsapp/flags-backend/pkg/enums"
)

// QuestionnaireScore computes the weighted compatibility of two users over
// the questionnaire in [0,100]. Only questions answered by both count; no
// overlap scores 0. Symmetric and deterministic.
func QuestionnaireScore(questions []models.Question, a, b map[string]dbtypes.AnswerValue) float64 {
	var weightSum, weighted float64

	for i := range questions {
		question := &questions[i]
		answerA, okA := a[question.ID]
		answerB, okB := b[question.ID]
		if !okA || !okB {
			continue
		}

		weightSum += question.Weight
		weighted += question.Weight * answerSimilarity(enums.QuestionType(question.Type), answerA, answerB)
	}

	if weightSum == 0 {
		return 0
	}
	return weighted / weightSum * 100
}

// answerSimilarity maps two answers to [0,1] per question type. Answers whose
// kind does not match the question contribute nothing in common.
func answerSimilarity(questionType enums.QuestionType, a, b dbtypes.AnswerValue) float64 {
	switch questionType {
	case enums.QuestionTypeBoolean:
		if a.Bool == nil || b.Bool == nil {
			return 0
		}
		if *a.Bool == *b.Bool {
			return 1
		}
		return 0
	case enums.QuestionTypeMultipleChoice:
		if a.Choice == nil || b.Choice == nil {
			return 0
		}
		if *a.Choice == *b.Choice {
			return 1
		}
		return 0
	case enums.QuestionTypeNumber:
		if a.Number == nil || b.Number == nil {
			return 0
		}
		return clamp01(1 - abs(*a.Number-*b.Number)/10)
	case enums.QuestionTypeSlider:
		if a.Slider == nil || b.Slider == nil {
			return 0
		}
		return clamp01(1 - abs(*a.Slider-*b.Slider)/100)
	case enums.QuestionTypeText:
		if a.Text == nil || b.Text == nil {
			return 0
		}
		return 0.5
	default:
		return 0
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

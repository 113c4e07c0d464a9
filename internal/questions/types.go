package questions

import (
	"time"

	"github.com/flagsapp/flags-backend/pkg/db/models"
	dbtypes "github.com/flagsapp/flags-backend/pkg/db/types"
)

// CreateInput is the admin create payload.
type CreateInput struct {
	Text     string   `json:"text" validate:"required,min=1,max=500"`
	Type     string   `json:"type" validate:"required"`
	Category string   `json:"category" validate:"required"`
	Options  []string `json:"options"`
	Weight   *float64 `json:"weight" validate:"omitempty,gte=0,lte=10"`
	Order    *int     `json:"order" validate:"omitempty,gte=0"`
}

// UpdateInput is the admin patch payload; nil fields are left untouched.
type UpdateInput struct {
	Text     *string   `json:"text" validate:"omitempty,min=1,max=500"`
	Category *string   `json:"category"`
	Options  *[]string `json:"options"`
	Weight   *float64  `json:"weight" validate:"omitempty,gte=0,lte=10"`
	Order    *int      `json:"order" validate:"omitempty,gte=0"`
	IsActive *bool     `json:"isActive"`
}

// SubmitAnswersInput is the batch answer payload.
type SubmitAnswersInput struct {
	Answers []AnswerInput `json:"answers" validate:"required,min=1,dive"`
}

// AnswerInput pairs a question with its tagged answer value.
type AnswerInput struct {
	QuestionID string              `json:"questionId" validate:"required,uuid4"`
	Answer     dbtypes.AnswerValue `json:"answer"`
}

// QuestionDTO is the public shape of a question.
type QuestionDTO struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Type      string    `json:"type"`
	Category  string    `json:"category"`
	Options   []string  `json:"options"`
	Weight    float64   `json:"weight"`
	Order     int       `json:"order"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// AnsweredQuestionDTO pairs a question with the caller's answer; Answer is
// nil when unanswered.
type AnsweredQuestionDTO struct {
	Question   QuestionDTO          `json:"question"`
	Answer     *dbtypes.AnswerValue `json:"answer"`
	AnsweredAt *time.Time           `json:"answeredAt"`
}

// ToDTO converts a stored question into its public shape.
func ToDTO(question *models.Question) QuestionDTO {
	options := make([]string, len(question.Options))
	copy(options, question.Options)

	return QuestionDTO{
		ID:        question.ID,
		Text:      question.Text,
		Type:      question.Type,
		Category:  question.Category,
		Options:   options,
		Weight:    question.Weight,
		Order:     question.Order,
		IsActive:  question.IsActive,
		CreatedAt: question.CreatedAt,
	}
}

package questions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	dbtypes "github.com/flagsapp/flags-backend/pkg/db/types"
	"github.com/flagsapp/flags-backend/pkg/enums"
	apperrors "github.com/flagsapp/flags-backend/pkg/errors"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	gdb := openTestDB(t)
	svc, err := NewService(ServiceParams{
		QuestionRepo: NewRepository(gdb),
		AnswerRepo:   NewAnswerRepository(gdb),
	})
	require.NoError(t, err)
	return svc, gdb
}

func TestAdminCreateValidatesType(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AdminCreate(context.Background(), CreateInput{
		Text:     "q",
		Type:     "emoji",
		Category: "values",
	})
	appErr := apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code())
}

func TestAdminCreateMultipleChoiceNeedsOptions(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AdminCreate(context.Background(), CreateInput{
		Text:     "pick one",
		Type:     string(enums.QuestionTypeMultipleChoice),
		Category: "values",
		Options:  []string{"only one"},
	})
	appErr := apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code())
}

func TestSubmitAnswersTypeMismatch(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	question, err := svc.AdminCreate(ctx, CreateInput{Text: "q", Type: "boolean", Category: "values"})
	require.NoError(t, err)

	err = svc.SubmitAnswers(ctx, "user-1", SubmitAnswersInput{Answers: []AnswerInput{
		{QuestionID: question.ID, Answer: dbtypes.NumberAnswer(3)},
	}})
	appErr := apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code())
}

func TestSubmitAnswersChoiceMustBeAnOption(t *testing.T) {
	svc, gdb := newTestService(t)
	ctx := context.Background()

	question, err := svc.AdminCreate(ctx, CreateInput{
		Text:     "pets?",
		Type:     string(enums.QuestionTypeMultipleChoice),
		Category: "lifestyle",
		Options:  []string{"Dogs", "Cats"},
	})
	require.NoError(t, err)

	err = svc.SubmitAnswers(ctx, "user-1", SubmitAnswersInput{Answers: []AnswerInput{
		{QuestionID: question.ID, Answer: dbtypes.ChoiceAnswer("Fish")},
	}})
	appErr := apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code())

	require.NoError(t, svc.SubmitAnswers(ctx, "user-1", SubmitAnswersInput{Answers: []AnswerInput{
		{QuestionID: question.ID, Answer: dbtypes.ChoiceAnswer("Dogs")},
	}}))

	stored, err := NewAnswerRepository(gdb).ListByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Dogs", *stored[0].Value.Choice)
}

func TestSubmitAnswersUnknownQuestion(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.SubmitAnswers(context.Background(), "user-1", SubmitAnswersInput{Answers: []AnswerInput{
		{QuestionID: "00000000-0000-0000-0000-000000000000", Answer: dbtypes.BoolAnswer(true)},
	}})
	appErr := apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code())
}

func TestAdminUpdateAndDelete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	question, err := svc.AdminCreate(ctx, CreateInput{Text: "q", Type: "slider", Category: "values"})
	require.NoError(t, err)

	weight := 2.5
	inactive := false
	updated, err := svc.AdminUpdate(ctx, question.ID, UpdateInput{Weight: &weight, IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, 2.5, updated.Weight)
	assert.False(t, updated.IsActive)

	require.NoError(t, svc.AdminDelete(ctx, question.ID))
	err = svc.AdminDelete(ctx, question.ID)
	appErr := apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code())
}

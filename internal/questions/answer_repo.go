package questions

import (
	"context"

	"gorm.io/gorm"

	"github.com/flagsapp/flags-backend/pkg/db"
	"github.com/flagsapp/flags-backend/pkg/db/models"
	apperrors "github.com/flagsapp/flags-backend/pkg/errors"
)

// AnswerRepository encapsulates questionnaire answer persistence. The unique
// index on (user_id, question_id) makes re-submission an overwrite.
type AnswerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(gdb *gorm.DB) *AnswerRepository {
	return &AnswerRepository{db: gdb}
}

// Upsert records one answer, overwriting any previous answer to the same
// question.
func (r *AnswerRepository) Upsert(ctx context.Context, answer *models.QuestionnaireAnswer) error {
	var existing models.QuestionnaireAnswer
	err := r.db.WithContext(ctx).
		First(&existing, "user_id = ? AND question_id = ?", answer.UserID, answer.QuestionID).Error

	switch {
	case err == nil:
		updateErr := r.db.WithContext(ctx).
			Model(&models.QuestionnaireAnswer{}).
			Where("id = ?", existing.ID).
			Update("value", answer.Value).Error
		if updateErr != nil {
			return apperrors.Wrap(apperrors.CodeInternal, updateErr, "updating answer")
		}
		answer.ID = existing.ID
		return nil
	case db.IsNotFound(err):
		createErr := r.db.WithContext(ctx).Create(answer).Error
		if createErr == nil {
			return nil
		}
		if db.IsUniqueViolation(createErr) {
			// Lost the race; overwrite the winner.
			if err := r.db.WithContext(ctx).
				First(&existing, "user_id = ? AND question_id = ?", answer.UserID, answer.QuestionID).Error; err != nil {
				return apperrors.Wrap(apperrors.CodeInternal, err, "reloading answer after conflict")
			}
			answer.ID = existing.ID
			return r.db.WithContext(ctx).
				Model(&models.QuestionnaireAnswer{}).
				Where("id = ?", existing.ID).
				Update("value", answer.Value).Error
		}
		return apperrors.Wrap(apperrors.CodeInternal, createErr, "creating answer")
	default:
		return apperrors.Wrap(apperrors.CodeInternal, err, "loading answer")
	}
}

// ListByUser returns the user's answers.
func (r *AnswerRepository) ListByUser(ctx context.Context, userID string) ([]models.QuestionnaireAnswer, error) {
	var out []models.QuestionnaireAnswer
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&out).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "listing answers")
	}
	return out, nil
}

// CountByUser backs the completion percentage; only answers to active
// questions count.
func (r *AnswerRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.QuestionnaireAnswer{}).
		Joins("JOIN questions ON questions.id = questionnaire_answers.question_id").
		Where("questionnaire_answers.user_id = ? AND questions.is_active = ?", userID, true).
		Count(&total).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.CodeInternal, err, "counting answers")
	}
	return total, nil
}

// ListAll returns every answer; the questionnaire matcher groups them by user
// in memory.
func (r *AnswerRepository) ListAll(ctx context.Context) ([]models.QuestionnaireAnswer, error) {
	var out []models.QuestionnaireAnswer
	if err := r.db.WithContext(ctx).Find(&out).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "listing answers")
	}
	return out, nil
}

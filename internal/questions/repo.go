package questions

import (
	"context"

	"gorm.io/gorm"

	"github.com/flagsapp/flags-backend/pkg/db"
	"github.com/flagsapp/flags-backend/pkg/db/models"
	apperrors "github.com/flagsapp/flags-backend/pkg/errors"
)

// Repository encapsulates questionnaire question persistence.
type Repository struct {
	db *gorm.DB
}

func NewRepository(gdb *gorm.DB) *Repository {
	return &Repository{db: gdb}
}

func (r *Repository) Create(ctx context.Context, question *models.Question) error {
	if err := r.db.WithContext(ctx).Create(question).Error; err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "creating question")
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*models.Question, error) {
	var question models.Question
	err := r.db.WithContext(ctx).First(&question, "id = ?", id).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apperrors.Wrap(apperrors.CodeNotFound, err, "question not found")
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "loading question")
	}
	return &question, nil
}

// ListActive returns active questions in display order.
func (r *Repository) ListActive(ctx context.Context) ([]models.Question, error) {
	var out []models.Question
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("display_order ASC, created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "listing questions")
	}
	return out, nil
}

// ListActiveByCategory returns active questions in one category, in display
// order.
func (r *Repository) ListActiveByCategory(ctx context.Context, category string) ([]models.Question, error) {
	var out []models.Question
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND category = ?", true, category).
		Order("display_order ASC, created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "listing questions by category")
	}
	return out, nil
}

// CountActive backs the completion percentage.
func (r *Repository) CountActive(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Question{}).
		Where("is_active = ?", true).
		Count(&total).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.CodeInternal, err, "counting questions")
	}
	return total, nil
}

// UpdateFields applies a whitelisted column map to one question.
func (r *Repository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&models.Question{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.CodeInternal, result.Error, "updating question")
	}
	if result.RowsAffected == 0 {
		return apperrors.New(apperrors.CodeNotFound, "question not found")
	}
	return nil
}

// Delete removes a question; its answers cascade at the database level.
func (r *Repository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Question{}, "id = ?", id)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.CodeInternal, result.Error, "deleting question")
	}
	if result.RowsAffected == 0 {
		return apperrors.New(apperrors.CodeNotFound, "question not found")
	}
	return nil
}

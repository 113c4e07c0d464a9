package responses

import (
	"context"

	"gorm.io/gorm"

	"github.com/flagsapp/flags-backend/pkg/db"
	"github.com/flagsapp/flags-backend/pkg/db/models"
	apperrors "github.com/flagsapp/flags-backend/pkg/errors"
)

// Repository encapsulates hot take response persistence. The unique index on
// (hot_take_id, user_id) is the authority for the one-response rule.
type Repository struct {
	db *gorm.DB
}

func NewRepository(gdb *gorm.DB) *Repository {
	return &Repository{db: gdb}
}

// Upsert writes the user's response to a statement. An existing row is
// overwritten; a concurrent first insert losing the unique-index race falls
// back to the overwrite path.
func (r *Repository) Upsert(ctx context.Context, response *models.HotTakeResponse) error {
	var existing models.HotTakeResponse
	err := r.db.WithContext(ctx).
		First(&existing, "hot_take_id = ? AND user_id = ?", response.HotTakeID, response.UserID).Error

	switch {
	case err == nil:
		return r.overwrite(ctx, existing.ID, response)
	case db.IsNotFound(err):
		createErr := r.db.WithContext(ctx).Create(response).Error
		if createErr == nil {
			return nil
		}
		if !db.IsUniqueViolation(createErr) {
			return apperrors.Wrap(apperrors.CodeInternal, createErr, "creating response")
		}
		// Lost the race; the row exists now.
		if err := r.db.WithContext(ctx).
			First(&existing, "hot_take_id = ? AND user_id = ?", response.HotTakeID, response.UserID).Error; err != nil {
			return apperrors.Wrap(apperrors.CodeInternal, err, "reloading response after conflict")
		}
		return r.overwrite(ctx, existing.ID, response)
	default:
		return apperrors.Wrap(apperrors.CodeInternal, err, "loading response")
	}
}

func (r *Repository) overwrite(ctx context.Context, id string, response *models.HotTakeResponse) error {
	err := r.db.WithContext(ctx).
		Model(&models.HotTakeResponse{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"user_response":  response.UserResponse,
			"match_low":      response.MatchLow,
			"match_high":     response.MatchHigh,
			"is_dealbreaker": response.IsDealbreaker,
		}).Error
	if err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "updating response")
	}
	response.ID = id
	return nil
}

func (r *Repository) GetByTakeAndUser(ctx context.Context, hotTakeID, userID string) (*models.HotTakeResponse, error) {
	var out models.HotTakeResponse
	err := r.db.WithContext(ctx).
		First(&out, "hot_take_id = ? AND user_id = ?", hotTakeID, userID).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apperrors.Wrap(apperrors.CodeNotFound, err, "response not found")
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "loading response")
	}
	return &out, nil
}

// ListByUser returns every response the user has recorded.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]models.HotTakeResponse, error) {
	var out []models.HotTakeResponse
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&out).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "listing responses")
	}
	return out, nil
}

// ListAll returns every response; the response-based matcher groups them by
// user in memory.
func (r *Repository) ListAll(ctx context.Context) ([]models.HotTakeResponse, error) {
	var out []models.HotTakeResponse
	if err := r.db.WithContext(ctx).Find(&out).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "listing responses")
	}
	return out, nil
}

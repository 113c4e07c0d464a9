package users

import (
	"context"

	"gorm.io/gorm"

	"github.com/flagsapp/flags-backend/pkg/db"
	"github.com/flagsapp/flags-backend/pkg/db/models"
	apperrors "github.com/flagsapp/flags-backend/pkg/errors"
)

// Repository encapsulates user persistence.
type Repository struct {
	db *gorm.DB
}

func NewRepository(gdb *gorm.DB) *Repository {
	return &Repository{db: gdb}
}

// Create inserts a user; a duplicate email surfaces as a conflict. The email
// must already be normalized by the caller.
func (r *Repository) Create(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if err == nil {
		return nil
	}
	if db.IsUniqueViolation(err) {
		return apperrors.Wrap(apperrors.CodeConflict, err, "email already registered").
			WithDetails(map[string]string{"email": "already registered"})
	}
	return apperrors.Wrap(apperrors.CodeInternal, err, "creating user")
}

func (r *Repository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apperrors.Wrap(apperrors.CodeNotFound, err, "user not found")
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "loading user")
	}
	return &user, nil
}

// GetByEmail looks a user up by normalized email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apperrors.Wrap(apperrors.CodeNotFound, err, "user not found")
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "loading user")
	}
	return &user, nil
}

// UpdateFields applies a whitelisted column map to one user.
func (r *Repository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.CodeInternal, result.Error, "updating user")
	}
	if result.RowsAffected == 0 {
		return apperrors.New(apperrors.CodeNotFound, "user not found")
	}
	return nil
}

// List returns users ordered by creation time, newest first.
func (r *Repository) List(ctx context.Context, limit, offset int) ([]models.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.CodeInternal, err, "counting users")
	}

	var out []models.User
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&out).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(apperrors.CodeInternal, err, "listing users")
	}
	return out, total, nil
}

// ListOthers returns every user except the given one.
func (r *Repository) ListOthers(ctx context.Context, excludeID string) ([]models.User, error) {
	var out []models.User
	err := r.db.WithContext(ctx).
		Where("id <> ?", excludeID).
		Order("created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "listing users")
	}
	return out, nil
}

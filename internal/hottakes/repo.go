package hottakes

import (
	"context"

	"gorm.io/gorm"

	"github.com/flagsapp/flags-backend/pkg/db"
	"github.com/flagsapp/flags-backend/pkg/db/models"
	apperrors "github.com/flagsapp/flags-backend/pkg/errors"
)

// Repository encapsulates hot take persistence.
type Repository struct {
	db *gorm.DB
}

func NewRepository(gdb *gorm.DB) *Repository {
	return &Repository{db: gdb}
}

// Create inserts a statement. The unique index on normalized_text is the
// duplicate-guard authority; a violation surfaces as a conflict.
func (r *Repository) Create(ctx context.Context, take *models.HotTake) error {
	err := r.db.WithContext(ctx).Create(take).Error
	if err == nil {
		return nil
	}
	if db.IsUniqueViolation(err) {
		return apperrors.Wrap(apperrors.CodeConflict, err, "duplicate hot take")
	}
	return apperrors.Wrap(apperrors.CodeInternal, err, "creating hot take")
}

func (r *Repository) GetByID(ctx context.Context, id string) (*models.HotTake, error) {
	var take models.HotTake
	err := r.db.WithContext(ctx).First(&take, "id = ?", id).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apperrors.Wrap(apperrors.CodeNotFound, err, "hot take not found")
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "loading hot take")
	}
	return &take, nil
}

// GetByNormalizedText returns the statement matching the canonical text, or a
// not found error.
func (r *Repository) GetByNormalizedText(ctx context.Context, normalized string) (*models.HotTake, error) {
	var take models.HotTake
	err := r.db.WithContext(ctx).First(&take, "normalized_text = ?", normalized).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apperrors.Wrap(apperrors.CodeNotFound, err, "hot take not found")
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "loading hot take")
	}
	return &take, nil
}

// FeedRow carries a statement plus its author's name for annotation.
type FeedRow struct {
	models.HotTake
	AuthorName *string
}

// ListFeed returns active statements the user has neither written nor
// answered, initial statements first, newest first within each partition.
func (r *Repository) ListFeed(ctx context.Context, userID string, limit, offset int) ([]FeedRow, error) {
	var rows []FeedRow
	err := r.db.WithContext(ctx).
		Table("hot_takes").
		Select("hot_takes.*, users.name AS author_name").
		Joins("LEFT JOIN users ON users.id = hot_takes.author_id").
		Where("hot_takes.is_active = ?", true).
		Where("hot_takes.author_id IS NULL OR hot_takes.author_id <> ?", userID).
		Where("NOT EXISTS (SELECT 1 FROM hot_take_responses r WHERE r.hot_take_id = hot_takes.id AND r.user_id = ?)", userID).
		Order("hot_takes.is_initial DESC, hot_takes.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "listing feed")
	}
	return rows, nil
}

// ListByCategory returns active statements tagged with the category.
func (r *Repository) ListByCategory(ctx context.Context, category string, limit, offset int) ([]FeedRow, error) {
	var rows []FeedRow
	err := r.db.WithContext(ctx).
		Table("hot_takes").
		Select("hot_takes.*, users.name AS author_name").
		Joins("LEFT JOIN users ON users.id = hot_takes.author_id").
		Where("hot_takes.is_active = ?", true).
		Where(r.categoryClause(), `%"`+category+`"%`).
		Order("hot_takes.is_initial DESC, hot_takes.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "listing hot takes by category")
	}
	return rows, nil
}

// categoryClause matches a JSON-encoded category entry. Postgres stores the
// column as jsonb and needs the text cast; sqlite stores plain text.
func (r *Repository) categoryClause() string {
	if r.db.Dialector.Name() == "postgres" {
		return "hot_takes.categories::text LIKE ?"
	}
	return "hot_takes.categories LIKE ?"
}

// OwnedStatsRow aggregates response stats for one owned statement.
type OwnedStatsRow struct {
	models.HotTake
	TotalResponses  int64
	AveragePosition *float64
	SkipCount       int64
}

// ListOwnedWithStats returns the user's statements with response aggregates,
// newest first. A skip is a response with neither stance nor range.
func (r *Repository) ListOwnedWithStats(ctx context.Context, authorID string) ([]OwnedStatsRow, error) {
	var rows []OwnedStatsRow
	err := r.db.WithContext(ctx).
		Table("hot_takes").
		Select(`hot_takes.*,
			COUNT(r.id) AS total_responses,
			AVG(r.user_response) AS average_position,
			COALESCE(SUM(CASE WHEN r.id IS NOT NULL AND r.user_response IS NULL AND r.match_low IS NULL THEN 1 ELSE 0 END), 0) AS skip_count`).
		Joins("LEFT JOIN hot_take_responses r ON r.hot_take_id = hot_takes.id").
		Where("hot_takes.author_id = ?", authorID).
		Group("hot_takes.id").
		Order("hot_takes.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "listing owned hot takes")
	}
	return rows, nil
}

// ListAll returns every statement with author annotation, for the admin
// surface.
func (r *Repository) ListAll(ctx context.Context, limit, offset int) ([]FeedRow, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.HotTake{}).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.CodeInternal, err, "counting hot takes")
	}

	var rows []FeedRow
	err := r.db.WithContext(ctx).
		Table("hot_takes").
		Select("hot_takes.*, users.name AS author_name").
		Joins("LEFT JOIN users ON users.id = hot_takes.author_id").
		Order("hot_takes.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(apperrors.CodeInternal, err, "listing hot takes")
	}
	return rows, total, nil
}

// UpdateFields applies a whitelisted column map to one statement.
func (r *Repository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&models.HotTake{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		if db.IsUniqueViolation(result.Error) {
			return apperrors.Wrap(apperrors.CodeConflict, result.Error, "duplicate hot take")
		}
		return apperrors.Wrap(apperrors.CodeInternal, result.Error, "updating hot take")
	}
	if result.RowsAffected == 0 {
		return apperrors.New(apperrors.CodeNotFound, "hot take not found")
	}
	return nil
}

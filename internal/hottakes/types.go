package hottakes

import (
	"time"

	"github.com/flagsapp/flags-backend/pkg/db/models"
)

// anonymousAuthor is displayed when a statement's author deleted their
// account or the statement was seeded.
const anonymousAuthor = "Anonymous"

// CreateInput is the decoded create payload.
type CreateInput struct {
	Text       string   `json:"text" validate:"required,max=500"`
	Categories []string `json:"categories" validate:"omitempty,dive,min=1"`
}

// AdminUpdateInput is the admin patch payload; nil fields are left untouched.
type AdminUpdateInput struct {
	Text       *string   `json:"text" validate:"omitempty,min=1,max=500"`
	Categories *[]string `json:"categories"`
	IsActive   *bool     `json:"isActive"`
}

// HotTakeDTO is the public shape of a statement.
type HotTakeDTO struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	Categories []string  `json:"categories"`
	AuthorName string    `json:"authorName"`
	AuthorID   *string   `json:"authorId,omitempty"`
	IsActive   bool      `json:"isActive"`
	IsInitial  bool      `json:"isInitial"`
	CreatedAt  time.Time `json:"createdAt"`
}

// OwnedHotTakeDTO is a statement plus the response stats shown to its author.
type OwnedHotTakeDTO struct {
	HotTakeDTO
	TotalResponses  int64    `json:"totalResponses"`
	AveragePosition *float64 `json:"averagePosition"`
	SkipCount       int64    `json:"skipCount"`
}

// RowToDTO converts an annotated repository row into the public shape.
func RowToDTO(row *FeedRow) HotTakeDTO {
	return toDTO(&row.HotTake, row.AuthorName)
}

func toDTO(take *models.HotTake, authorName *string) HotTakeDTO {
	name := anonymousAuthor
	if authorName != nil && *authorName != "" {
		name = *authorName
	}

	categories := make([]string, len(take.Categories))
	copy(categories, take.Categories)

	return HotTakeDTO{
		ID:         take.ID,
		Text:       take.Text,
		Categories: categories,
		AuthorName: name,
		AuthorID:   take.AuthorID,
		IsActive:   take.IsActive,
		IsInitial:  take.IsInitial,
		CreatedAt:  take.CreatedAt,
	}
}

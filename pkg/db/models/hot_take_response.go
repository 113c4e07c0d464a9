package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HotTakeResponse records one user's stance on one hot take. At most one row
// exists per (hot_take_id, user_id) pair; writes go through an upsert.
type HotTakeResponse struct {
	ID        string  `gorm:"type:uuid;primaryKey"`
	HotTakeID string  `gorm:"type:uuid;not null;uniqueIndex:idx_response_take_user"`
	UserID    string  `gorm:"type:uuid;not null;uniqueIndex:idx_response_take_user;index"`
	HotTake   HotTake `gorm:"constraint:OnDelete:CASCADE"`
	User      User    `gorm:"constraint:OnDelete:CASCADE"`

	// UserResponse is the 1..5 stance; nil means "skipped".
	UserResponse *int

	// MatchLow/MatchHigh bound the stances the user accepts in a partner.
	// Both are set or both are nil.
	MatchLow  *int
	MatchHigh *int

	IsDealbreaker bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r *HotTakeResponse) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

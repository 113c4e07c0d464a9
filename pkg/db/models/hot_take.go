package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbtypes "github.com/flagsapp/flags-backend/pkg/db/types"
)

// HotTake is a statement users respond to. AuthorID is nulled when the author
// deletes their account; the take itself survives.
type HotTake struct {
	ID   string `gorm:"type:uuid;primaryKey"`
	Text string `gorm:"not null"`

	// NormalizedText backs the duplicate guard: lowercased, whitespace-trimmed.
	NormalizedText string `gorm:"uniqueIndex;not null"`

	Categories dbtypes.StringArray `gorm:"type:jsonb;not null"`

	AuthorID *string `gorm:"type:uuid;index"`
	Author   *User   `gorm:"constraint:OnDelete:SET NULL"`

	IsActive  bool `gorm:"not null;default:true"`
	IsInitial bool `gorm:"not null;default:false;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (h *HotTake) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbtypes "github.com/flagsapp/flags-backend/pkg/db/types"
)

type Question struct {
	ID       string `gorm:"type:uuid;primaryKey"`
	Text     string `gorm:"not null"`
	Type     string `gorm:"not null"`
	Category string `gorm:"not null;index"`

	// Options apply to multiple-choice questions only.
	Options dbtypes.StringArray `gorm:"type:jsonb"`

	Weight   float64 `gorm:"not null;default:1"`
	Order    int     `gorm:"column:display_order;not null;default:0"`
	IsActive bool    `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbtypes "github.com/flagsapp/flags-backend/pkg/db/types"
)

type User struct {
	ID           string `gorm:"type:uuid;primaryKey"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Name         string `gorm:"not null"`

	Sex          *string
	InterestedIn *string
	Location     *string
	HotTake      *string

	ImportantCategories dbtypes.StringArray `gorm:"type:jsonb"`

	HasCompletedQuestionnaire bool `gorm:"not null;default:false"`
	IsAdmin                   bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

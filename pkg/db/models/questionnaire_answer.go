package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbtypes "github.com/flagsapp/flags-backend/pkg/db/types"
)

type QuestionnaireAnswer struct {
	ID         string   `gorm:"type:uuid;primaryKey"`
	UserID     string   `gorm:"type:uuid;not null;uniqueIndex:idx_answer_user_question"`
	QuestionID string   `gorm:"type:uuid;not null;uniqueIndex:idx_answer_user_question;index"`
	User       User     `gorm:"constraint:OnDelete:CASCADE"`
	Question   Question `gorm:"constraint:OnDelete:CASCADE"`

	Value dbtypes.AnswerValue `gorm:"type:jsonb;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (a *QuestionnaireAnswer) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

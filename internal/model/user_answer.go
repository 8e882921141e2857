package model

import (
	"time"

	"gorm.io/gorm"
)

// UserAnswer is one persisted response unit: one user, one question, and one
// selected option or one short-answer text. A checkbox submission with N
// selections produces N rows. Rows are never updated once created.
type UserAnswer struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	UserID         uint           `json:"user_id" gorm:"not null;index"`
	User           User           `json:"user,omitempty" gorm:"foreignKey:UserID"`
	QuestionID     uint           `json:"question_id" gorm:"not null;index"`
	Question       Question       `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	AnswerOptionID *uint          `json:"answer_option_id,omitempty" gorm:"index"`
	AnswerOption   *AnswerOption  `json:"answer_option,omitempty" gorm:"foreignKey:AnswerOptionID"`
	ShortAnswer    *string        `json:"short_answer,omitempty" gorm:"type:text"`
	CreatedAt      time.Time      `json:"created_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

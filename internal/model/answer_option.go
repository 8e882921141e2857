package model

import (
	"time"

	"gorm.io/gorm"
)

// MaxOptionsPerQuestion caps the owner-defined choices on a single question.
const MaxOptionsPerQuestion = 5

// AnswerOption is an owner-defined choice on a selection question.
type AnswerOption struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	QuestionID uint           `json:"question_id" gorm:"not null;index"`
	Text       string         `json:"text" gorm:"not null;size:255"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

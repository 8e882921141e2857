package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	AnswerTypeMultiple    = "multiple"
	AnswerTypeCheckbox    = "checkbox"
	AnswerTypeShortAnswer = "short_answer"
)

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusCancelled = "cancelled"
)

// Question is a survey item published by an owner. It only accepts
// submissions after an admin moves it to "approved".
type Question struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	OwnerID    uint           `json:"owner_id" gorm:"not null;index"`
	Owner      User           `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Text       string         `json:"text" gorm:"type:text;not null"`
	AnswerType string         `json:"answer_type" gorm:"not null"` // "multiple", "checkbox", "short_answer"
	Status     string         `json:"status" gorm:"not null;default:'pending';index"`
	Options    []AnswerOption `json:"options,omitempty" gorm:"foreignKey:QuestionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// RequiresOptions reports whether the answer type is selection-based.
func (q *Question) RequiresOptions() bool {
	return q.AnswerType == AnswerTypeMultiple || q.AnswerType == AnswerTypeCheckbox
}

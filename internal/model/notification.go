package model

import "time"

const (
	NotificationQuestionCreated  = "question_created"
	NotificationAnswersSubmitted = "answers_submitted"
)

// Notification is an in-app notice persisted for a single recipient.
// Immutable once created except for ReadAt, which the recipient sets once.
type Notification struct {
	ID          string     `gorm:"primarykey;size:36" json:"id"`
	RecipientID uint       `json:"recipient_id" gorm:"not null;index"`
	Type        string     `json:"type" gorm:"not null"`
	Message     string     `json:"message" gorm:"type:text;not null"`
	QuestionID  *uint      `json:"question_id,omitempty" gorm:"index"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

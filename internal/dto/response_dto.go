package dto

import "time"

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type OptionResponse struct {
	ID         uint   `json:"id"`
	QuestionID uint   `json:"question_id"`
	Text       string `json:"text"`
}

type QuestionResponse struct {
	ID         uint             `json:"id"`
	OwnerID    uint             `json:"owner_id"`
	Text       string           `json:"text"`
	AnswerType string           `json:"answer_type"`
	Status     string           `json:"status"`
	Options    []OptionResponse `json:"options,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// QuestionListResponse is a paginated question listing.
type QuestionListResponse struct {
	Data    []QuestionResponse `json:"data"`
	Page    int                `json:"page"`
	PerPage int                `json:"per_page"`
	Total   int64              `json:"total"`
}

type UserAnswerResponse struct {
	ID             uint      `json:"id"`
	UserID         uint      `json:"user_id"`
	QuestionID     uint      `json:"question_id"`
	AnswerOptionID *uint     `json:"answer_option_id,omitempty"`
	OptionText     string    `json:"option_text,omitempty"`
	ShortAnswer    *string   `json:"short_answer,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// SubmissionResponse is returned after a successful batch submission.
type SubmissionResponse struct {
	Answers []UserAnswerResponse `json:"answers"`
}

// QuestionWithAnswersResponse is the owner's per-question view of what users
// submitted.
type QuestionWithAnswersResponse struct {
	Question         QuestionResponse     `json:"question"`
	SubmittedAnswers []UserAnswerResponse `json:"submitted_answers"`
}

type NotificationResponse struct {
	ID         string     `json:"id"`
	Type       string     `json:"type"`
	Message    string     `json:"message"`
	QuestionID *uint      `json:"question_id,omitempty"`
	ReadAt     *time.Time `json:"read_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

type StatisticsResponse struct {
	TotalUsers     int64 `json:"total_users"`
	TotalQuestions int64 `json:"total_questions"`
	TotalAnswers   int64 `json:"total_answers"`
}

type MonthlyAnswerStat struct {
	Month        int    `json:"month"`
	MonthName    string `json:"month_name"`
	TotalAnswers int64  `json:"total_answers"`
}

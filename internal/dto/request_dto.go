package dto

// CreateQuestionRequest is the owner payload for publishing a new question.
// Options are required for selection types and forbidden for short_answer;
// the service enforces that branching, binding only checks shape.
type CreateQuestionRequest struct {
	Text       string   `json:"text" binding:"required,min=10"`
	AnswerType string   `json:"answer_type" binding:"required,oneof=multiple checkbox short_answer"`
	Options    []string `json:"options" binding:"omitempty,max=5,dive,required,max=255"`
}

// UpdateQuestionRequest mirrors CreateQuestionRequest; edits are only
// accepted while the question is still pending.
type UpdateQuestionRequest struct {
	Text       string   `json:"text" binding:"required,min=10"`
	AnswerType string   `json:"answer_type" binding:"required,oneof=multiple checkbox short_answer"`
	Options    []string `json:"options" binding:"omitempty,max=5,dive,required,max=255"`
}

type AddOptionRequest struct {
	Text string `json:"text" binding:"required,max=255"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=approved cancelled"`
}

// SubmitAnswerItem is one per-question entry of a submission batch. Exactly
// one of OptionIDs/ShortAnswer must be set, matching the question's type.
type SubmitAnswerItem struct {
	QuestionID  uint   `json:"question_id" binding:"required"`
	OptionIDs   []uint `json:"option_ids"`
	ShortAnswer string `json:"short_answer"`
}

type SubmitAnswersRequest struct {
	Answers []SubmitAnswerItem `json:"answers" binding:"required,min=1,dive"`
}

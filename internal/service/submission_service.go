package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/hmtri1011/surveyhub/internal/dto"
	"github.com/hmtri1011/surveyhub/internal/errs"
	"github.com/hmtri1011/surveyhub/internal/event"
	"github.com/hmtri1011/surveyhub/internal/model"
	"github.com/hmtri1011/surveyhub/internal/repository"
	"github.com/rs/zerolog/log"
)

// Response is the decoded answer payload for one question: either free text
// or a set of selected option ids, never both.
type Response interface {
	isResponse()
}

// ShortText is a free-text answer to a short_answer question.
type ShortText string

// Selections holds the chosen option ids for a multiple/checkbox question.
type Selections []uint

func (ShortText) isResponse()  {}
func (Selections) isResponse() {}

// DecodeResponse turns the wire payload into its tagged form. Shape errors
// (both or neither variant populated) are caught here; whether the variant
// matches the question's answer type is checked against the question later.
func DecodeResponse(item dto.SubmitAnswerItem) (Response, error) {
	text := strings.TrimSpace(item.ShortAnswer)
	hasText := text != ""
	hasOptions := len(item.OptionIDs) > 0

	switch {
	case hasText && hasOptions:
		return nil, errs.Validation("answers", "provide either option_ids or short_answer, not both")
	case hasText:
		return ShortText(text), nil
	case hasOptions:
		return Selections(item.OptionIDs), nil
	default:
		return nil, errs.Validation("answers", "an answer payload is required")
	}
}

// SubmissionService validates and records a user's batch of answers. The
// whole batch commits atomically: a failure on any item persists nothing.
type SubmissionService interface {
	Submit(ctx context.Context, userID uint, req dto.SubmitAnswersRequest) (*dto.SubmissionResponse, error)
	ListUserAnswers(userID uint, page, perPage int) ([]dto.UserAnswerResponse, int64, error)
	DeleteAnswer(ctx context.Context, actorID uint, actorRole string, answerID uint) error
}

type submissionService struct {
	questionRepo   repository.QuestionRepository
	userAnswerRepo repository.UserAnswerRepository
	userRepo       repository.UserRepository
	dispatcher     *event.Dispatcher
}

func NewSubmissionService(
	questionRepo repository.QuestionRepository,
	userAnswerRepo repository.UserAnswerRepository,
	userRepo repository.UserRepository,
	dispatcher *event.Dispatcher,
) SubmissionService {
	return &submissionService{
		questionRepo:   questionRepo,
		userAnswerRepo: userAnswerRepo,
		userRepo:       userRepo,
		dispatcher:     dispatcher,
	}
}

// validateItem checks one batch entry against its question and returns the
// rows it should produce: one per selection, or one for the short answer.
func (s *submissionService) validateItem(userID uint, item dto.SubmitAnswerItem) ([]model.UserAnswer, *model.Question, error) {
	question, err := s.questionRepo.FindByIDWithOptions(item.QuestionID)
	if err != nil {
		return nil, nil, fmt.Errorf("question %d: %w", item.QuestionID, err)
	}
	if question.Status != model.StatusApproved {
		return nil, nil, errs.StateConflict("question", question.Status, "submissions are closed for this question")
	}

	response, err := DecodeResponse(item)
	if err != nil {
		return nil, nil, err
	}

	switch r := response.(type) {
	case ShortText:
		if question.AnswerType != model.AnswerTypeShortAnswer {
			return nil, nil, errs.Validation("short_answer", fmt.Sprintf("question %d expects a selection, not free text", question.ID))
		}
		text := string(r)
		return []model.UserAnswer{{
			UserID:      userID,
			QuestionID:  question.ID,
			ShortAnswer: &text,
		}}, question, nil

	case Selections:
		if !question.RequiresOptions() {
			return nil, nil, errs.Validation("option_ids", fmt.Sprintf("question %d expects free text, not a selection", question.ID))
		}
		// multiple is single-select; checkbox takes one or many.
		if question.AnswerType == model.AnswerTypeMultiple && len(r) != 1 {
			return nil, nil, errs.Validation("option_ids", fmt.Sprintf("question %d allows exactly one selection", question.ID))
		}

		valid := make(map[uint]bool, len(question.Options))
		for _, opt := range question.Options {
			valid[opt.ID] = true
		}
		seen := make(map[uint]bool, len(r))
		rows := make([]model.UserAnswer, 0, len(r))
		for _, optionID := range r {
			if !valid[optionID] {
				return nil, nil, errs.Validation("option_ids", fmt.Sprintf("option %d does not belong to question %d", optionID, question.ID))
			}
			if seen[optionID] {
				return nil, nil, errs.Validation("option_ids", fmt.Sprintf("option %d selected more than once", optionID))
			}
			seen[optionID] = true
			id := optionID
			rows = append(rows, model.UserAnswer{
				UserID:         userID,
				QuestionID:     question.ID,
				AnswerOptionID: &id,
			})
		}
		return rows, question, nil
	}
	return nil, nil, errs.Validation("answers", "unsupported answer payload")
}

func (s *submissionService) Submit(ctx context.Context, userID uint, req dto.SubmitAnswersRequest) (*dto.SubmissionResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, fmt.Errorf("submitting user %d: %w", userID, err)
	}

	var rows []model.UserAnswer
	questions := make(map[uint]*model.Question)

	// Fail fast: validate the whole batch before touching the store.
	for _, item := range req.Answers {
		itemRows, question, err := s.validateItem(user.ID, item)
		if err != nil {
			log.Warn().Err(err).Uint("userID", user.ID).Uint("questionID", item.QuestionID).Msg("Submit: batch item rejected")
			return nil, err
		}
		rows = append(rows, itemRows...)
		questions[question.ID] = question
	}

	// All rows commit in one transaction, or none do.
	rows, err = s.userAnswerRepo.CreateBatch(rows)
	if err != nil {
		log.Error().Err(err).Uint("userID", user.ID).Msg("Submit: transaction failed")
		return nil, fmt.Errorf("failed to persist submission batch: %w", err)
	}

	// Post-commit fan-out: one event per question, so each owner notice
	// points at the question it is about.
	perQuestion := make(map[uint]int)
	for _, row := range rows {
		perQuestion[row.QuestionID]++
	}
	events := make([]event.Event, 0, len(perQuestion))
	for questionID, count := range perQuestion {
		events = append(events, event.AnswersSubmitted{
			QuestionID:  questionID,
			OwnerID:     questions[questionID].OwnerID,
			UserID:      user.ID,
			UserName:    user.Name,
			AnswerCount: count,
		})
	}
	s.dispatcher.Dispatch(ctx, events...)

	resp := dto.SubmissionResponse{Answers: make([]dto.UserAnswerResponse, len(rows))}
	for i, row := range rows {
		resp.Answers[i] = dto.UserAnswerResponse{
			ID:             row.ID,
			UserID:         row.UserID,
			QuestionID:     row.QuestionID,
			AnswerOptionID: row.AnswerOptionID,
			ShortAnswer:    row.ShortAnswer,
			CreatedAt:      row.CreatedAt,
		}
		if row.AnswerOptionID != nil {
			for _, opt := range questions[row.QuestionID].Options {
				if opt.ID == *row.AnswerOptionID {
					resp.Answers[i].OptionText = opt.Text
					break
				}
			}
		}
	}
	return &resp, nil
}

func (s *submissionService) ListUserAnswers(userID uint, page, perPage int) ([]dto.UserAnswerResponse, int64, error) {
	answers, total, err := s.userAnswerRepo.FindAllByUser(userID, page, perPage)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("ListUserAnswers: repository error")
		return nil, 0, fmt.Errorf("error fetching submitted answers: %w", err)
	}
	return toUserAnswerResponses(answers), total, nil
}

// DeleteAnswer removes a submitted answer. Allowed for admins and for the
// owner of the question the answer belongs to.
func (s *submissionService) DeleteAnswer(ctx context.Context, actorID uint, actorRole string, answerID uint) error {
	answer, err := s.userAnswerRepo.FindByID(answerID)
	if err != nil {
		return err
	}
	if actorRole != model.RoleAdmin && answer.Question.OwnerID != actorID {
		return errs.ErrForbidden
	}
	return s.userAnswerRepo.Delete(answerID)
}

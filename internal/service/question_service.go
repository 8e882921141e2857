package service

import (
	"context"
	"fmt"

	"github.com/hmtri1011/surveyhub/internal/dto"
	"github.com/hmtri1011/surveyhub/internal/errs"
	"github.com/hmtri1011/surveyhub/internal/event"
	"github.com/hmtri1011/surveyhub/internal/model"
	"github.com/hmtri1011/surveyhub/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

// QuestionService covers the owner-facing question lifecycle: create, edit
// while pending, manage answer options, list, and cascade delete.
type QuestionService interface {
	CreateQuestion(ctx context.Context, ownerID uint, req dto.CreateQuestionRequest) (*dto.QuestionResponse, error)
	UpdateQuestion(ctx context.Context, ownerID, questionID uint, req dto.UpdateQuestionRequest) (*dto.QuestionResponse, error)
	DeleteQuestion(ctx context.Context, actorID uint, actorRole string, questionID uint) error
	AddOption(ctx context.Context, ownerID, questionID uint, req dto.AddOptionRequest) (*dto.OptionResponse, error)
	DeleteOption(ctx context.Context, ownerID, optionID uint) error
	ListQuestions(filter repository.QuestionFilter) (*dto.QuestionListResponse, error)
	ListSubmittedAnswers(ownerID uint) ([]dto.QuestionWithAnswersResponse, error)
}

type questionService struct {
	questionRepo   repository.QuestionRepository
	optionRepo     repository.AnswerOptionRepository
	userAnswerRepo repository.UserAnswerRepository
	userRepo       repository.UserRepository
	dispatcher     *event.Dispatcher
}

func NewQuestionService(
	questionRepo repository.QuestionRepository,
	optionRepo repository.AnswerOptionRepository,
	userAnswerRepo repository.UserAnswerRepository,
	userRepo repository.UserRepository,
	dispatcher *event.Dispatcher,
) QuestionService {
	return &questionService{
		questionRepo:   questionRepo,
		optionRepo:     optionRepo,
		userAnswerRepo: userAnswerRepo,
		userRepo:       userRepo,
		dispatcher:     dispatcher,
	}
}

// validateOptionsForType enforces the type/options branch: selection types
// need at least one option, short_answer must not carry any.
func validateOptionsForType(answerType string, options []string) error {
	switch answerType {
	case model.AnswerTypeMultiple, model.AnswerTypeCheckbox:
		if len(options) == 0 {
			return errs.Validation("options", "at least one option is required for selection questions")
		}
	case model.AnswerTypeShortAnswer:
		if len(options) > 0 {
			return errs.Validation("options", "short_answer questions cannot have options")
		}
	}
	if len(options) > model.MaxOptionsPerQuestion {
		return errs.Validation("options", fmt.Sprintf("a question can only have up to %d options", model.MaxOptionsPerQuestion))
	}
	return nil
}

func (s *questionService) CreateQuestion(ctx context.Context, ownerID uint, req dto.CreateQuestionRequest) (*dto.QuestionResponse, error) {
	if err := validateOptionsForType(req.AnswerType, req.Options); err != nil {
		return nil, err
	}

	question := model.Question{
		OwnerID:    ownerID,
		Text:       req.Text,
		AnswerType: req.AnswerType,
		Status:     model.StatusPending,
	}
	for _, text := range req.Options {
		question.Options = append(question.Options, model.AnswerOption{Text: text})
	}

	if err := s.questionRepo.Create(&question); err != nil {
		log.Error().Err(err).Uint("ownerID", ownerID).Msg("CreateQuestion: database error")
		return nil, fmt.Errorf("database error creating question: %w", err)
	}

	ownerName := ""
	if owner, err := s.userRepo.FindByID(ownerID); err == nil {
		ownerName = owner.Name
	}

	s.dispatcher.Dispatch(ctx, event.QuestionCreated{
		QuestionID: question.ID,
		OwnerID:    ownerID,
		OwnerName:  ownerName,
		Text:       question.Text,
	})

	var resp dto.QuestionResponse
	if err := copier.Copy(&resp, &question); err != nil {
		return nil, fmt.Errorf("error preparing question response: %w", err)
	}
	return &resp, nil
}

func (s *questionService) UpdateQuestion(ctx context.Context, ownerID, questionID uint, req dto.UpdateQuestionRequest) (*dto.QuestionResponse, error) {
	question, err := s.questionRepo.FindByIDWithOptions(questionID)
	if err != nil {
		return nil, err
	}
	if question.OwnerID != ownerID {
		return nil, errs.ErrForbidden
	}
	if question.Status != model.StatusPending {
		return nil, errs.StateConflict("question", question.Status, "structural edits are only allowed while pending")
	}
	if err := validateOptionsForType(req.AnswerType, req.Options); err != nil {
		return nil, err
	}

	question.Text = req.Text
	question.AnswerType = req.AnswerType
	options := make([]model.AnswerOption, 0, len(req.Options))
	for _, text := range req.Options {
		options = append(options, model.AnswerOption{Text: text})
	}
	if err := s.questionRepo.ReplaceOptions(question, options); err != nil {
		log.Error().Err(err).Uint("questionID", questionID).Msg("UpdateQuestion: transaction failed")
		return nil, fmt.Errorf("database error updating question: %w", err)
	}

	var resp dto.QuestionResponse
	if err := copier.Copy(&resp, question); err != nil {
		return nil, fmt.Errorf("error preparing question response: %w", err)
	}
	return &resp, nil
}

// DeleteQuestion cascades: submitted answers and options go in the same
// transaction as the question so no orphaned references survive.
func (s *questionService) DeleteQuestion(ctx context.Context, actorID uint, actorRole string, questionID uint) error {
	question, err := s.questionRepo.FindByID(questionID)
	if err != nil {
		return err
	}
	if actorRole != model.RoleAdmin && question.OwnerID != actorID {
		return errs.ErrForbidden
	}

	if err := s.questionRepo.DeleteCascade(questionID); err != nil {
		log.Error().Err(err).Uint("questionID", questionID).Msg("DeleteQuestion: cascade transaction failed")
		return fmt.Errorf("database error deleting question: %w", err)
	}
	return nil
}

// AddOption enforces the per-question cap with a count-then-insert inside one
// transaction, so concurrent adds cannot both pass the check.
func (s *questionService) AddOption(ctx context.Context, ownerID, questionID uint, req dto.AddOptionRequest) (*dto.OptionResponse, error) {
	question, err := s.questionRepo.FindByID(questionID)
	if err != nil {
		return nil, err
	}
	if question.OwnerID != ownerID {
		return nil, errs.ErrForbidden
	}
	if question.Status != model.StatusPending {
		return nil, errs.StateConflict("question", question.Status, "options can only be added while pending")
	}
	if !question.RequiresOptions() {
		return nil, errs.Validation("answer_type", "short_answer questions cannot have options")
	}

	option := model.AnswerOption{QuestionID: questionID, Text: req.Text}
	if err := s.optionRepo.CreateCapped(&option, model.MaxOptionsPerQuestion); err != nil {
		return nil, err
	}

	var resp dto.OptionResponse
	if err := copier.Copy(&resp, &option); err != nil {
		return nil, fmt.Errorf("error preparing option response: %w", err)
	}
	return &resp, nil
}

func (s *questionService) DeleteOption(ctx context.Context, ownerID, optionID uint) error {
	option, err := s.optionRepo.FindByID(optionID)
	if err != nil {
		return err
	}
	question, err := s.questionRepo.FindByID(option.QuestionID)
	if err != nil {
		return err
	}
	if question.OwnerID != ownerID {
		return errs.ErrForbidden
	}
	if question.Status != model.StatusPending {
		return errs.StateConflict("question", question.Status, "options can only be removed while pending")
	}
	return s.optionRepo.Delete(optionID)
}

func (s *questionService) ListQuestions(filter repository.QuestionFilter) (*dto.QuestionListResponse, error) {
	questions, total, err := s.questionRepo.FindFiltered(filter)
	if err != nil {
		log.Error().Err(err).Msg("ListQuestions: repository error")
		return nil, fmt.Errorf("error fetching questions: %w", err)
	}

	resp := dto.QuestionListResponse{
		Page:    filter.Page,
		PerPage: filter.PerPage,
		Total:   total,
	}
	if resp.Page < 1 {
		resp.Page = 1
	}
	if resp.PerPage < 1 {
		resp.PerPage = 15
	}
	if err := copier.Copy(&resp.Data, &questions); err != nil {
		return nil, fmt.Errorf("error preparing question list response: %w", err)
	}
	return &resp, nil
}

func (s *questionService) ListSubmittedAnswers(ownerID uint) ([]dto.QuestionWithAnswersResponse, error) {
	questions, err := s.questionRepo.FindAllByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("error fetching owner questions: %w", err)
	}

	result := make([]dto.QuestionWithAnswersResponse, 0, len(questions))
	for _, q := range questions {
		answers, err := s.userAnswerRepo.FindAllByQuestionID(q.ID)
		if err != nil {
			log.Error().Err(err).Uint("questionID", q.ID).Msg("ListSubmittedAnswers: failed to load answers")
			return nil, fmt.Errorf("error fetching submitted answers: %w", err)
		}

		var entry dto.QuestionWithAnswersResponse
		if err := copier.Copy(&entry.Question, &q); err != nil {
			return nil, fmt.Errorf("error preparing answers response: %w", err)
		}
		entry.SubmittedAnswers = toUserAnswerResponses(answers)
		result = append(result, entry)
	}
	return result, nil
}

func toUserAnswerResponses(answers []model.UserAnswer) []dto.UserAnswerResponse {
	resp := make([]dto.UserAnswerResponse, len(answers))
	for i, a := range answers {
		copier.Copy(&resp[i], &a)
		if a.AnswerOption != nil {
			resp[i].OptionText = a.AnswerOption.Text
		}
	}
	return resp
}

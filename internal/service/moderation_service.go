package service

import (
	"context"
	"fmt"

	"github.com/hmtri1011/surveyhub/internal/dto"
	"github.com/hmtri1011/surveyhub/internal/errs"
	"github.com/hmtri1011/surveyhub/internal/model"
	"github.com/hmtri1011/surveyhub/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

// ModerationService is the only component allowed to move a question through
// its status state machine: pending -> approved | cancelled.
type ModerationService interface {
	UpdateStatus(ctx context.Context, questionID uint, req dto.UpdateStatusRequest) (*dto.QuestionResponse, error)
}

type moderationService struct {
	questionRepo repository.QuestionRepository
}

func NewModerationService(questionRepo repository.QuestionRepository) ModerationService {
	return &moderationService{questionRepo: questionRepo}
}

func (s *moderationService) UpdateStatus(ctx context.Context, questionID uint, req dto.UpdateStatusRequest) (*dto.QuestionResponse, error) {
	question, err := s.questionRepo.FindByIDWithOptions(questionID)
	if err != nil {
		return nil, err
	}

	switch question.Status {
	case model.StatusPending:
		question.Status = req.Status
		if err := s.questionRepo.Update(question); err != nil {
			log.Error().Err(err).Uint("questionID", questionID).Msg("UpdateStatus: database error")
			return nil, fmt.Errorf("database error updating status: %w", err)
		}
		log.Info().Uint("questionID", questionID).Str("status", req.Status).Msg("Question status updated")
	case req.Status:
		// Re-requesting the current terminal status is a no-op.
	default:
		return nil, errs.StateConflict("question", question.Status, "status is terminal and cannot change")
	}

	var resp dto.QuestionResponse
	if err := copier.Copy(&resp, question); err != nil {
		return nil, fmt.Errorf("error preparing status response: %w", err)
	}
	return &resp, nil
}

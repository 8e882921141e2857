package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hmtri1011/surveyhub/internal/dto"
	"github.com/hmtri1011/surveyhub/internal/event"
	"github.com/hmtri1011/surveyhub/internal/model"
	"github.com/hmtri1011/surveyhub/internal/notifier"
	"github.com/hmtri1011/surveyhub/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

// NotificationService persists in-app notices for recipients and relays
// submission notices to the owner's outbound channel. It consumes domain
// events via Handle; every delivery is best-effort.
type NotificationService interface {
	event.Handler
	List(recipientID uint) ([]dto.NotificationResponse, error)
	MarkRead(recipientID uint, notificationID string) (*dto.NotificationResponse, error)
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	outbound         notifier.Notifier
}

func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	outbound notifier.Notifier,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		outbound:         outbound,
	}
}

func (s *notificationService) Handle(ctx context.Context, env event.Envelope) error {
	switch e := env.Event.(type) {
	case event.QuestionCreated:
		return s.handleQuestionCreated(e)
	case event.AnswersSubmitted:
		return s.handleAnswersSubmitted(ctx, e)
	default:
		return nil
	}
}

// handleQuestionCreated notifies every admin and every user that a new
// question exists. Recipients are independent; a failure for one batch is
// logged and does not touch the others.
func (s *notificationService) handleQuestionCreated(e event.QuestionCreated) error {
	message := fmt.Sprintf("A new question has been created by %s.", e.OwnerName)
	questionID := e.QuestionID

	var notifications []model.Notification
	for _, role := range []string{model.RoleAdmin, model.RoleUser} {
		recipients, err := s.userRepo.FindAllByRole(role)
		if err != nil {
			log.Error().Err(err).Str("role", role).Msg("QuestionCreated fan-out: failed to load recipients")
			continue
		}
		for _, recipient := range recipients {
			notifications = append(notifications, model.Notification{
				ID:          uuid.NewString(),
				RecipientID: recipient.ID,
				Type:        model.NotificationQuestionCreated,
				Message:     message,
				QuestionID:  &questionID,
			})
		}
	}

	if err := s.notificationRepo.CreateBatch(notifications); err != nil {
		return fmt.Errorf("failed to persist question-created notifications: %w", err)
	}
	log.Info().Uint("questionID", e.QuestionID).Int("recipients", len(notifications)).Msg("Question-created notifications stored")
	return nil
}

// handleAnswersSubmitted notifies the question's owner on two channels: a
// persisted in-app notification and one outbound message.
func (s *notificationService) handleAnswersSubmitted(ctx context.Context, e event.AnswersSubmitted) error {
	owner, err := s.userRepo.FindByID(e.OwnerID)
	if err != nil {
		return fmt.Errorf("failed to load owner %d for submission notice: %w", e.OwnerID, err)
	}

	questionID := e.QuestionID
	notification := model.Notification{
		ID:          uuid.NewString(),
		RecipientID: owner.ID,
		Type:        model.NotificationAnswersSubmitted,
		Message:     fmt.Sprintf("%s has submitted answers to your questions.", e.UserName),
		QuestionID:  &questionID,
	}
	if err := s.notificationRepo.Create(&notification); err != nil {
		log.Error().Err(err).Uint("ownerID", owner.ID).Msg("AnswersSubmitted fan-out: failed to persist notification")
	}

	// Outbound failures never reach the submitting user; the write already
	// committed.
	msg := notifier.Message{
		Recipient: owner.Email,
		Subject:   "New answers submitted",
		Body:      fmt.Sprintf("%s submitted %d answer(s) to your question.", e.UserName, e.AnswerCount),
	}
	if err := s.outbound.Send(ctx, msg); err != nil {
		log.Error().Err(err).Str("recipient", owner.Email).Msg("AnswersSubmitted fan-out: outbound delivery failed")
	}
	return nil
}

func (s *notificationService) List(recipientID uint) ([]dto.NotificationResponse, error) {
	notifications, err := s.notificationRepo.FindByRecipient(recipientID)
	if err != nil {
		return nil, fmt.Errorf("error fetching notifications: %w", err)
	}
	resp := make([]dto.NotificationResponse, len(notifications))
	for i := range notifications {
		copier.Copy(&resp[i], &notifications[i])
	}
	return resp, nil
}

// MarkRead sets ReadAt once. Marking an already-read notification again is a
// no-op that still succeeds; only the recipient can mark their own.
func (s *notificationService) MarkRead(recipientID uint, notificationID string) (*dto.NotificationResponse, error) {
	notification, err := s.notificationRepo.FindByIDForRecipient(notificationID, recipientID)
	if err != nil {
		return nil, err
	}

	if notification.ReadAt == nil {
		now := time.Now()
		notification.ReadAt = &now
		if err := s.notificationRepo.Update(notification); err != nil {
			return nil, fmt.Errorf("failed to mark notification read: %w", err)
		}
	}

	var resp dto.NotificationResponse
	if err := copier.Copy(&resp, notification); err != nil {
		return nil, fmt.Errorf("error preparing notification response: %w", err)
	}
	return &resp, nil
}

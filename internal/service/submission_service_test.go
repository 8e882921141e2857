package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hmtri1011/surveyhub/internal/dto"
	"github.com/hmtri1011/surveyhub/internal/errs"
	"github.com/hmtri1011/surveyhub/internal/event"
	"github.com/hmtri1011/surveyhub/internal/model"
)

type recordingHandler struct {
	events chan event.Event
}

func newRecordingHandler() *recordingHandler {
	return &recordingHandler{events: make(chan event.Event, 16)}
}

func (h *recordingHandler) Handle(_ context.Context, env event.Envelope) error {
	h.events <- env.Event
	return nil
}

func (h *recordingHandler) wait(t *testing.T) event.Event {
	t.Helper()
	select {
	case e := <-h.events:
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for dispatched event")
		return nil
	}
}

func submissionFixture() (*stubQuestionRepo, *stubUserAnswerRepo, *stubUserRepo, *event.Dispatcher, SubmissionService) {
	questionRepo := newStubQuestionRepo()
	answerRepo := &stubUserAnswerRepo{}
	userRepo := newStubUserRepo(
		model.User{ID: 1, Name: "Alice", Email: "alice@example.com", Role: model.RoleOwner},
		model.User{ID: 2, Name: "Bob", Email: "bob@example.com", Role: model.RoleUser},
	)
	dispatcher := event.NewDispatcher()
	svc := NewSubmissionService(questionRepo, answerRepo, userRepo, dispatcher)
	return questionRepo, answerRepo, userRepo, dispatcher, svc
}

func TestSubmitShortAnswer(t *testing.T) {
	questionRepo, answerRepo, _, _, svc := submissionFixture()
	questionRepo.seed(model.Question{
		ID: 10, OwnerID: 1, Text: "Describe your experience", AnswerType: model.AnswerTypeShortAnswer, Status: model.StatusApproved,
	})

	resp, err := svc.Submit(context.Background(), 2, dto.SubmitAnswersRequest{
		Answers: []dto.SubmitAnswerItem{{QuestionID: 10, ShortAnswer: "  It was great  "}},
	})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if len(resp.Answers) != 1 {
		t.Fatalf("response answers = %d, want 1", len(resp.Answers))
	}
	if len(answerRepo.answers) != 1 {
		t.Fatalf("persisted rows = %d, want 1", len(answerRepo.answers))
	}
	row := answerRepo.answers[0]
	if row.ShortAnswer == nil || *row.ShortAnswer != "It was great" {
		t.Fatalf("short answer not trimmed and stored: %+v", row.ShortAnswer)
	}
	if row.AnswerOptionID != nil {
		t.Fatalf("short answer row should not carry an option id")
	}
}

func TestSubmitCheckboxProducesOneRowPerSelection(t *testing.T) {
	questionRepo, answerRepo, _, _, svc := submissionFixture()
	questionRepo.seed(model.Question{
		ID: 10, OwnerID: 1, Text: "Pick all that apply", AnswerType: model.AnswerTypeCheckbox, Status: model.StatusApproved,
		Options: []model.AnswerOption{
			{ID: 1, QuestionID: 10, Text: "Red"},
			{ID: 2, QuestionID: 10, Text: "Green"},
			{ID: 3, QuestionID: 10, Text: "Blue"},
		},
	})

	resp, err := svc.Submit(context.Background(), 2, dto.SubmitAnswersRequest{
		Answers: []dto.SubmitAnswerItem{{QuestionID: 10, OptionIDs: []uint{1, 3}}},
	})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if len(answerRepo.answers) != 2 {
		t.Fatalf("persisted rows = %d, want 2", len(answerRepo.answers))
	}
	if len(resp.Answers) != 2 {
		t.Fatalf("response answers = %d, want 2", len(resp.Answers))
	}
	if resp.Answers[0].OptionText != "Red" || resp.Answers[1].OptionText != "Blue" {
		t.Fatalf("option texts = %q, %q; want Red, Blue", resp.Answers[0].OptionText, resp.Answers[1].OptionText)
	}
}

func TestSubmitMultipleRequiresExactlyOneSelection(t *testing.T) {
	questionRepo, answerRepo, _, _, svc := submissionFixture()
	questionRepo.seed(model.Question{
		ID: 10, OwnerID: 1, Text: "Pick your favourite", AnswerType: model.AnswerTypeMultiple, Status: model.StatusApproved,
		Options: []model.AnswerOption{
			{ID: 1, QuestionID: 10, Text: "Cats"},
			{ID: 2, QuestionID: 10, Text: "Dogs"},
		},
	})

	_, err := svc.Submit(context.Background(), 2, dto.SubmitAnswersRequest{
		Answers: []dto.SubmitAnswerItem{{QuestionID: 10, OptionIDs: []uint{1, 2}}},
	})
	if !errs.IsValidation(err) {
		t.Fatalf("expected validation error for two selections, got %v", err)
	}
	if len(answerRepo.answers) != 0 {
		t.Fatalf("persisted rows = %d, want 0", len(answerRepo.answers))
	}
}

func TestSubmitRejectsUnapprovedQuestion(t *testing.T) {
	questionRepo, answerRepo, _, _, svc := submissionFixture()
	questionRepo.seed(model.Question{
		ID: 10, OwnerID: 1, Text: "Still pending question", AnswerType: model.AnswerTypeShortAnswer, Status: model.StatusPending,
	})

	_, err := svc.Submit(context.Background(), 2, dto.SubmitAnswersRequest{
		Answers: []dto.SubmitAnswerItem{{QuestionID: 10, ShortAnswer: "too early"}},
	})
	if !errs.IsStateConflict(err) {
		t.Fatalf("expected state conflict for pending question, got %v", err)
	}
	if len(answerRepo.answers) != 0 {
		t.Fatalf("persisted rows = %d, want 0", len(answerRepo.answers))
	}
}

func TestSubmitTypeMismatch(t *testing.T) {
	questionRepo, _, _, _, svc := submissionFixture()
	questionRepo.seed(model.Question{
		ID: 10, OwnerID: 1, Text: "Pick all that apply", AnswerType: model.AnswerTypeCheckbox, Status: model.StatusApproved,
		Options: []model.AnswerOption{{ID: 1, QuestionID: 10, Text: "Red"}},
	})
	questionRepo.seed(model.Question{
		ID: 11, OwnerID: 1, Text: "Describe your experience", AnswerType: model.AnswerTypeShortAnswer, Status: model.StatusApproved,
	})

	_, err := svc.Submit(context.Background(), 2, dto.SubmitAnswersRequest{
		Answers: []dto.SubmitAnswerItem{{QuestionID: 10, ShortAnswer: "free text to a checkbox"}},
	})
	if !errs.IsValidation(err) {
		t.Fatalf("expected validation error for text to checkbox, got %v", err)
	}

	_, err = svc.Submit(context.Background(), 2, dto.SubmitAnswersRequest{
		Answers: []dto.SubmitAnswerItem{{QuestionID: 11, OptionIDs: []uint{1}}},
	})
	if !errs.IsValidation(err) {
		t.Fatalf("expected validation error for selection to short_answer, got %v", err)
	}
}

func TestSubmitRejectsBothPayloadVariants(t *testing.T) {
	questionRepo, _, _, _, svc := submissionFixture()
	questionRepo.seed(model.Question{
		ID: 10, OwnerID: 1, Text: "Pick all that apply", AnswerType: model.AnswerTypeCheckbox, Status: model.StatusApproved,
		Options: []model.AnswerOption{{ID: 1, QuestionID: 10, Text: "Red"}},
	})

	_, err := svc.Submit(context.Background(), 2, dto.SubmitAnswersRequest{
		Answers: []dto.SubmitAnswerItem{{QuestionID: 10, OptionIDs: []uint{1}, ShortAnswer: "both"}},
	})
	if !errs.IsValidation(err) {
		t.Fatalf("expected validation error for mixed payload, got %v", err)
	}

	_, err = svc.Submit(context.Background(), 2, dto.SubmitAnswersRequest{
		Answers: []dto.SubmitAnswerItem{{QuestionID: 10}},
	})
	if !errs.IsValidation(err) {
		t.Fatalf("expected validation error for empty payload, got %v", err)
	}
}

func TestSubmitRejectsForeignAndDuplicateOptions(t *testing.T) {
	questionRepo, answerRepo, _, _, svc := submissionFixture()
	questionRepo.seed(model.Question{
		ID: 10, OwnerID: 1, Text: "Pick all that apply", AnswerType: model.AnswerTypeCheckbox, Status: model.StatusApproved,
		Options: []model.AnswerOption{{ID: 1, QuestionID: 10, Text: "Red"}},
	})

	_, err := svc.Submit(context.Background(), 2, dto.SubmitAnswersRequest{
		Answers: []dto.SubmitAnswerItem{{QuestionID: 10, OptionIDs: []uint{99}}},
	})
	if !errs.IsValidation(err) {
		t.Fatalf("expected validation error for foreign option, got %v", err)
	}

	_, err = svc.Submit(context.Background(), 2, dto.SubmitAnswersRequest{
		Answers: []dto.SubmitAnswerItem{{QuestionID: 10, OptionIDs: []uint{1, 1}}},
	})
	if !errs.IsValidation(err) {
		t.Fatalf("expected validation error for duplicate option, got %v", err)
	}
	if len(answerRepo.answers) != 0 {
		t.Fatalf("persisted rows = %d, want 0", len(answerRepo.answers))
	}
}

// A batch where a later item fails must leave nothing behind, including the
// rows built for the earlier valid items.
func TestSubmitBatchIsAtomic(t *testing.T) {
	questionRepo, answerRepo, _, _, svc := submissionFixture()
	questionRepo.seed(model.Question{
		ID: 10, OwnerID: 1, Text: "Describe your experience", AnswerType: model.AnswerTypeShortAnswer, Status: model.StatusApproved,
	})
	questionRepo.seed(model.Question{
		ID: 11, OwnerID: 1, Text: "Cancelled question text", AnswerType: model.AnswerTypeShortAnswer, Status: model.StatusCancelled,
	})

	_, err := svc.Submit(context.Background(), 2, dto.SubmitAnswersRequest{
		Answers: []dto.SubmitAnswerItem{
			{QuestionID: 10, ShortAnswer: "valid item"},
			{QuestionID: 11, ShortAnswer: "closed question"},
		},
	})
	if err == nil {
		t.Fatal("expected error for batch containing a closed question")
	}
	if len(answerRepo.answers) != 0 {
		t.Fatalf("persisted rows = %d, want 0 after failed batch", len(answerRepo.answers))
	}
}

func TestSubmitStorageFailurePersistsNothing(t *testing.T) {
	questionRepo, answerRepo, _, _, svc := submissionFixture()
	questionRepo.seed(model.Question{
		ID: 10, OwnerID: 1, Text: "Describe your experience", AnswerType: model.AnswerTypeShortAnswer, Status: model.StatusApproved,
	})
	answerRepo.createErr = errors.New("connection reset")

	_, err := svc.Submit(context.Background(), 2, dto.SubmitAnswersRequest{
		Answers: []dto.SubmitAnswerItem{{QuestionID: 10, ShortAnswer: "will not stick"}},
	})
	if err == nil {
		t.Fatal("expected storage error to surface")
	}
	if len(answerRepo.answers) != 0 {
		t.Fatalf("persisted rows = %d, want 0", len(answerRepo.answers))
	}
}

func TestSubmitDispatchesOwnerEvent(t *testing.T) {
	questionRepo, _, _, dispatcher, svc := submissionFixture()
	questionRepo.seed(model.Question{
		ID: 10, OwnerID: 1, Text: "Pick all that apply", AnswerType: model.AnswerTypeCheckbox, Status: model.StatusApproved,
		Options: []model.AnswerOption{
			{ID: 1, QuestionID: 10, Text: "Red"},
			{ID: 2, QuestionID: 10, Text: "Green"},
		},
	})
	handler := newRecordingHandler()
	dispatcher.Register(handler)

	_, err := svc.Submit(context.Background(), 2, dto.SubmitAnswersRequest{
		Answers: []dto.SubmitAnswerItem{{QuestionID: 10, OptionIDs: []uint{1, 2}}},
	})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	e, ok := handler.wait(t).(event.AnswersSubmitted)
	if !ok {
		t.Fatalf("expected AnswersSubmitted event, got %T", e)
	}
	if e.OwnerID != 1 || e.UserID != 2 {
		t.Fatalf("event routing = owner %d user %d, want owner 1 user 2", e.OwnerID, e.UserID)
	}
	if e.UserName != "Bob" {
		t.Fatalf("event user name = %q, want Bob", e.UserName)
	}
	if e.AnswerCount != 2 {
		t.Fatalf("event answer count = %d, want 2", e.AnswerCount)
	}
}

// A batch spanning several questions of one owner produces one event per
// question, each carrying that question's id and row count.
func TestSubmitEmitsOneEventPerQuestion(t *testing.T) {
	questionRepo, _, _, dispatcher, svc := submissionFixture()
	questionRepo.seed(model.Question{
		ID: 10, OwnerID: 1, Text: "Describe your experience", AnswerType: model.AnswerTypeShortAnswer, Status: model.StatusApproved,
	})
	questionRepo.seed(model.Question{
		ID: 11, OwnerID: 1, Text: "Pick all that apply", AnswerType: model.AnswerTypeCheckbox, Status: model.StatusApproved,
		Options: []model.AnswerOption{
			{ID: 1, QuestionID: 11, Text: "Red"},
			{ID: 2, QuestionID: 11, Text: "Green"},
		},
	})
	handler := newRecordingHandler()
	dispatcher.Register(handler)

	_, err := svc.Submit(context.Background(), 2, dto.SubmitAnswersRequest{
		Answers: []dto.SubmitAnswerItem{
			{QuestionID: 10, ShortAnswer: "fine"},
			{QuestionID: 11, OptionIDs: []uint{1, 2}},
		},
	})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	counts := make(map[uint]int)
	for i := 0; i < 2; i++ {
		e, ok := handler.wait(t).(event.AnswersSubmitted)
		if !ok {
			t.Fatal("expected AnswersSubmitted event")
		}
		if e.OwnerID != 1 {
			t.Fatalf("event owner = %d, want 1", e.OwnerID)
		}
		counts[e.QuestionID] = e.AnswerCount
	}
	if counts[10] != 1 || counts[11] != 2 {
		t.Fatalf("per-question counts = %v, want question 10: 1, question 11: 2", counts)
	}
}

func TestDeleteAnswerAuthorization(t *testing.T) {
	_, answerRepo, _, _, svc := submissionFixture()
	answerRepo.answers = []model.UserAnswer{{
		ID: 7, UserID: 2, QuestionID: 10,
		Question: model.Question{ID: 10, OwnerID: 1},
	}}

	if err := svc.DeleteAnswer(context.Background(), 99, model.RoleOwner, 7); !errors.Is(err, errs.ErrForbidden) {
		t.Fatalf("expected forbidden for foreign owner, got %v", err)
	}
	if len(answerRepo.answers) != 1 {
		t.Fatalf("answer deleted despite forbidden actor")
	}

	if err := svc.DeleteAnswer(context.Background(), 1, model.RoleOwner, 7); err != nil {
		t.Fatalf("owning owner delete failed: %v", err)
	}
	if len(answerRepo.answers) != 0 {
		t.Fatalf("answer not deleted by owning owner")
	}
}

func TestDeleteAnswerAdminBypassesOwnership(t *testing.T) {
	_, answerRepo, _, _, svc := submissionFixture()
	answerRepo.answers = []model.UserAnswer{{
		ID: 7, UserID: 2, QuestionID: 10,
		Question: model.Question{ID: 10, OwnerID: 1},
	}}

	if err := svc.DeleteAnswer(context.Background(), 42, model.RoleAdmin, 7); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
	if len(answerRepo.answers) != 0 {
		t.Fatalf("answer not deleted by admin")
	}
}

func TestDecodeResponseVariants(t *testing.T) {
	r, err := DecodeResponse(dto.SubmitAnswerItem{QuestionID: 1, ShortAnswer: "  text  "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text, ok := r.(ShortText); !ok || string(text) != "text" {
		t.Fatalf("decoded = %#v, want trimmed ShortText", r)
	}

	r, err = DecodeResponse(dto.SubmitAnswerItem{QuestionID: 1, OptionIDs: []uint{3, 5}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel, ok := r.(Selections); !ok || len(sel) != 2 {
		t.Fatalf("decoded = %#v, want Selections of 2", r)
	}

	if _, err := DecodeResponse(dto.SubmitAnswerItem{QuestionID: 1, ShortAnswer: "   "}); !errs.IsValidation(err) {
		t.Fatalf("whitespace-only text should decode as empty payload, got %v", err)
	}
}

package event

import (
	"time"

	"github.com/google/uuid"
)

// Event is a domain fact emitted by a service after its transaction commits.
// Payloads form a closed set; Payload identifies which one an Envelope holds.
type Event interface {
	EventType() string
}

// QuestionCreated fires when an owner publishes a new question.
type QuestionCreated struct {
	QuestionID uint
	OwnerID    uint
	OwnerName  string
	Text       string
}

func (QuestionCreated) EventType() string { return "question.created" }

// AnswersSubmitted fires when a user's submission batch commits.
type AnswersSubmitted struct {
	QuestionID  uint
	OwnerID     uint
	UserID      uint
	UserName    string
	AnswerCount int
}

func (AnswersSubmitted) EventType() string { return "answers.submitted" }

// Envelope wraps an Event with dispatch metadata for logging and tracing.
type Envelope struct {
	ID         string
	OccurredAt time.Time
	Event      Event
}

func Wrap(e Event) Envelope {
	return Envelope{
		ID:         uuid.NewString(),
		OccurredAt: time.Now(),
		Event:      e,
	}
}

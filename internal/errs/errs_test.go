package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsValidationSeesWrappedErrors(t *testing.T) {
	err := Validation("options", "too many options")
	if !IsValidation(err) {
		t.Fatal("direct validation error not recognized")
	}
	wrapped := fmt.Errorf("question 7: %w", err)
	if !IsValidation(wrapped) {
		t.Fatal("wrapped validation error not recognized")
	}
	if IsValidation(errors.New("plain")) {
		t.Fatal("plain error misclassified as validation")
	}
	if IsValidation(nil) {
		t.Fatal("nil misclassified as validation")
	}
}

func TestIsStateConflictSeesWrappedErrors(t *testing.T) {
	err := StateConflict("question", "approved", "status is terminal")
	if !IsStateConflict(err) {
		t.Fatal("direct conflict error not recognized")
	}
	if !IsStateConflict(fmt.Errorf("moderation: %w", err)) {
		t.Fatal("wrapped conflict error not recognized")
	}
	if IsStateConflict(Validation("x", "y")) {
		t.Fatal("validation error misclassified as conflict")
	}
}

func TestSentinelsSurviveWrapping(t *testing.T) {
	if !errors.Is(fmt.Errorf("lookup: %w", ErrNotFound), ErrNotFound) {
		t.Fatal("wrapped ErrNotFound lost")
	}
	if !errors.Is(fmt.Errorf("actor: %w", ErrForbidden), ErrForbidden) {
		t.Fatal("wrapped ErrForbidden lost")
	}
}

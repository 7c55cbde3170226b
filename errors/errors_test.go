package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	err := NewNotFoundError("SNAPSHOT_NOT_FOUND", "no snapshot for x on 01-03-25", "No data.")
	if got := err.Error(); got != "[SNAPSHOT_NOT_FOUND] no snapshot for x on 01-03-25" {
		t.Errorf("Unexpected error string: %s", got)
	}

	wrapped := NewSystemError("SNAPSHOT_READ", "read failed", stderrors.New("disk on fire"))
	if got := wrapped.Error(); got != "[SNAPSHOT_READ] read failed: disk on fire" {
		t.Errorf("Unexpected error string: %s", got)
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := stderrors.New("inner")
	err := NewSystemError("CODE", "outer", inner)
	if !stderrors.Is(err, inner) {
		t.Error("Expected errors.Is to find the wrapped error")
	}
}

func TestAppError_GetUserMessage(t *testing.T) {
	withMsg := NewValidationError("CODE", "internal detail", "Please give a valid date.")
	if withMsg.GetUserMessage() != "Please give a valid date." {
		t.Errorf("Expected user message, got %s", withMsg.GetUserMessage())
	}

	withoutMsg := &AppError{Type: TypeSystem, Code: "CODE", Message: "fallback"}
	if withoutMsg.GetUserMessage() != "fallback" {
		t.Errorf("Expected fallback to Message, got %s", withoutMsg.GetUserMessage())
	}
}

func TestPredicates(t *testing.T) {
	t.Run("IsNotFound matches not-found", func(t *testing.T) {
		if !IsNotFound(NewNotFoundError("C", "m", "u")) {
			t.Error("Expected IsNotFound for a not-found error")
		}
	})

	t.Run("IsNotFound matches configuration errors", func(t *testing.T) {
		// A corrupt mapping reads as missing data.
		if !IsNotFound(NewConfigurationError("C", "m", nil)) {
			t.Error("Expected IsNotFound for a configuration error")
		}
	})

	t.Run("IsNotFound sees through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("context: %w", NewNotFoundError("C", "m", "u"))
		if !IsNotFound(wrapped) {
			t.Error("Expected IsNotFound through a wrap")
		}
	})

	t.Run("Other types do not match", func(t *testing.T) {
		if IsNotFound(NewValidationError("C", "m", "u")) {
			t.Error("Validation errors are not not-found")
		}
		if IsNotFound(stderrors.New("plain")) {
			t.Error("Plain errors are not not-found")
		}
	})

	t.Run("Type-specific predicates", func(t *testing.T) {
		if !IsValidation(NewValidationError("C", "m", "u")) {
			t.Error("Expected IsValidation")
		}
		if !IsUpstream(NewUpstreamError("C", "m", nil)) {
			t.Error("Expected IsUpstream")
		}
		if !IsNormalization(NewNormalizationError("C", "m", nil)) {
			t.Error("Expected IsNormalization")
		}
		if !IsConfiguration(NewConfigurationError("C", "m", nil)) {
			t.Error("Expected IsConfiguration")
		}
	})
}

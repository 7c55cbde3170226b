package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType classifies an application error.
type ErrorType int

const (
	TypeValidation ErrorType = iota
	TypeNotFound
	TypeUpstream
	TypeNormalization
	TypeConfiguration
	TypeSystem
)

// AppError is the structured error used throughout the bot. UserMsg is the
// plain-language text shown in Discord; Message and Internal are for logs.
type AppError struct {
	Type     ErrorType
	Code     string
	Message  string
	UserMsg  string
	Internal error
}

func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Internal)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Internal
}

// GetUserMessage returns the message to show the user.
func (e *AppError) GetUserMessage() string {
	if e.UserMsg != "" {
		return e.UserMsg
	}
	return e.Message
}

// Constructors

// NewValidationError reports malformed user input.
func NewValidationError(code, message, userMsg string) *AppError {
	return &AppError{
		Type:    TypeValidation,
		Code:    code,
		Message: message,
		UserMsg: userMsg,
	}
}

// NewNotFoundError reports a date or player with no resolvable snapshot.
func NewNotFoundError(code, message, userMsg string) *AppError {
	return &AppError{
		Type:    TypeNotFound,
		Code:    code,
		Message: message,
		UserMsg: userMsg,
	}
}

// NewUpstreamError reports a failed or non-success Hypixel API response.
func NewUpstreamError(code, message string, err error) *AppError {
	return &AppError{
		Type:     TypeUpstream,
		Code:     code,
		Message:  message,
		UserMsg:  "Error while talking to Hypixel. Please try again in a moment.",
		Internal: err,
	}
}

// NewNormalizationError reports a snapshot missing mandatory fields for a
// game mode. Never fatal to a rebuild; the snapshot is skipped.
func NewNormalizationError(code, message string, err error) *AppError {
	return &AppError{
		Type:     TypeNormalization,
		Code:     code,
		Message:  message,
		UserMsg:  "No usable data for that date.",
		Internal: err,
	}
}

// NewConfigurationError reports a corrupt mapping file or similar store
// damage. Reads treat it like NotFound, but it is logged at ERROR.
func NewConfigurationError(code, message string, err error) *AppError {
	return &AppError{
		Type:     TypeConfiguration,
		Code:     code,
		Message:  message,
		UserMsg:  "No data available for that date.",
		Internal: err,
	}
}

// NewSystemError reports an internal failure.
func NewSystemError(code, message string, err error) *AppError {
	return &AppError{
		Type:     TypeSystem,
		Code:     code,
		Message:  message,
		UserMsg:  "An internal error occurred. Please contact the bot admin.",
		Internal: err,
	}
}

// Predicates

func isType(err error, t ErrorType) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}

// IsNotFound reports whether err means "no resolvable snapshot". A corrupt
// mapping file counts: callers see it as missing data.
func IsNotFound(err error) bool {
	return isType(err, TypeNotFound) || isType(err, TypeConfiguration)
}

func IsValidation(err error) bool {
	return isType(err, TypeValidation)
}

func IsUpstream(err error) bool {
	return isType(err, TypeUpstream)
}

func IsNormalization(err error) bool {
	return isType(err, TypeNormalization)
}

func IsConfiguration(err error) bool {
	return isType(err, TypeConfiguration)
}

package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors.
var (
	ErrUserNotFound     = NewError(ErrCodeNotFound, "user not found")
	ErrQuestionNotFound = NewError(ErrCodeNotFound, "question not found")
	ErrAnswerNotFound   = NewError(ErrCodeNotFound, "answer not found")
	ErrTagNotFound      = NewError(ErrCodeNotFound, "tag not found")
	ErrSessionNotFound  = NewError(ErrCodeNotFound, "session not found")

	ErrInvalidVoteValue = NewError(ErrCodeInvalid, "vote value must be 1 or -1")
	ErrAnswerMismatch   = NewError(ErrCodeInvalid, "answer does not belong to this question")
	ErrInvalidPayload   = NewError(ErrCodeInvalid, "invalid payload")

	ErrSelfVote          = NewError(ErrCodeForbidden, "cannot vote on own content")
	ErrNotQuestionAuthor = NewError(ErrCodeForbidden, "only the question author can accept an answer")
	ErrUserBanned        = NewError(ErrCodeForbidden, "banned users cannot create content")
	ErrUserBannedLogin   = NewError(ErrCodeForbidden, "your account has been banned")
	ErrNotModerator      = NewError(ErrCodeForbidden, "moderator role required")

	ErrEmailTaken   = NewError(ErrCodeConflict, "user with this email already exists")
	ErrVoteConflict = NewError(ErrCodeConflict, "concurrent vote detected, retry")

	ErrUnauthorized = NewError(ErrCodeUnauthorized, "unauthorized")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}

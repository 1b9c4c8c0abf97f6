package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure the core can produce.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindInvalidArgument
	KindNotFound
	KindMissingParameters
	KindStorage
	KindConversationNotFound
	KindReasoning
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid_argument"
	case KindNotFound:
		return "not_found"
	case KindMissingParameters:
		return "missing_parameters"
	case KindStorage:
		return "storage"
	case KindConversationNotFound:
		return "conversation_not_found"
	case KindReasoning:
		return "reasoning"
	default:
		return "unknown"
	}
}

// Error carries a taxonomy kind next to a human-readable message.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// E builds a typed error.
func E(kind ErrorKind, msg string) error {
	return &Error{Kind: kind, Message: msg}
}

// Ef builds a typed error with a formatted message.
func Ef(kind ErrorKind, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind to an underlying error.
func Wrap(kind ErrorKind, msg string, cause error) error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// KindOf extracts the taxonomy kind, or KindUnknown for foreign errors.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}

func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

func IsInvalidArgument(err error) bool {
	return KindOf(err) == KindInvalidArgument
}

func IsConversationNotFound(err error) bool {
	return KindOf(err) == KindConversationNotFound
}

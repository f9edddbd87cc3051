package mini

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a fatal condition.
type ErrorKind string

const (
	KindUnknownIdentifier     ErrorKind = "UnknownIdentifier"
	KindExpectedIdentifier    ErrorKind = "ExpectedIdentifier"
	KindExpectedToken         ErrorKind = "ExpectedToken"
	KindUnexpectedToken       ErrorKind = "UnexpectedToken"
	KindUnexpectedEnd         ErrorKind = "UnexpectedEnd"
	KindInvalidInput          ErrorKind = "InvalidInput"
	KindDivisionByZero        ErrorKind = "DivisionByZero"
	KindUnsupportedAssignment ErrorKind = "UnsupportedAssignment"
	KindTypeMismatch          ErrorKind = "TypeMismatch"
	KindStepQuotaExceeded     ErrorKind = "StepQuotaExceeded"
)

// Sentinels usable with errors.Is against any *RuntimeError of the same kind.
var (
	ErrUnknownIdentifier     = &RuntimeError{Kind: KindUnknownIdentifier}
	ErrExpectedIdentifier    = &RuntimeError{Kind: KindExpectedIdentifier}
	ErrExpectedToken         = &RuntimeError{Kind: KindExpectedToken}
	ErrUnexpectedToken       = &RuntimeError{Kind: KindUnexpectedToken}
	ErrUnexpectedEnd         = &RuntimeError{Kind: KindUnexpectedEnd}
	ErrInvalidInput          = &RuntimeError{Kind: KindInvalidInput}
	ErrDivisionByZero        = &RuntimeError{Kind: KindDivisionByZero}
	ErrUnsupportedAssignment = &RuntimeError{Kind: KindUnsupportedAssignment}
	ErrTypeMismatch          = &RuntimeError{Kind: KindTypeMismatch}
	ErrStepQuotaExceeded     = &RuntimeError{Kind: KindStepQuotaExceeded}
)

// RuntimeError is the single error type produced by compilation and
// execution. Every instance aborts the run it belongs to.
type RuntimeError struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *RuntimeError) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is matches on Kind so callers can test against the package sentinels.
func (e *RuntimeError) Is(target error) bool {
	var other *RuntimeError
	if !errors.As(target, &other) {
		return false
	}
	return other.Kind == e.Kind
}

func (e *RuntimeError) Unwrap() error {
	return e.cause
}

func newError(kind ErrorKind, format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func wrapError(kind ErrorKind, cause error, format string, args ...any) *RuntimeError {
	err := newError(kind, format, args...)
	err.cause = cause
	return err
}

// KindOf returns the kind of a *RuntimeError anywhere in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var rt *RuntimeError
	if errors.As(err, &rt) {
		return rt.Kind, true
	}
	return "", false
}

func unexpectedEnd(want string) *RuntimeError {
	return newError(KindUnexpectedEnd, "expected %s, got end of input", want)
}

func unexpectedToken(tok Token, want string) *RuntimeError {
	return newError(KindUnexpectedToken, "expected %s, got %s", want, tokenLabel(tok))
}

func tokenLabel(tok Token) string {
	switch tok.Type {
	case TokenIdent:
		return fmt.Sprintf("identifier %q", tok.Literal)
	case TokenKeyword:
		return fmt.Sprintf("'%s'", tok.Literal)
	case TokenString:
		return "string"
	case TokenInt:
		return "integer"
	case TokenTrue:
		return "'true'"
	case TokenFalse:
		return "'false'"
	default:
		return fmt.Sprintf("%q", string(tok.Type))
	}
}
